package model

// Frame is the row-major view of a table. It holds the same data as the
// Table that produced it: Columns and Units are the per-column metadata, and
// each row's cells are string (text), float64 (numeric), or nil (missing).
type Frame struct {
	Columns []string
	Units   []string
	Rows    [][]any
}

// NumRows returns the number of data rows in the frame.
func (f *Frame) NumRows() int {
	return len(f.Rows)
}

// NumCols returns the number of columns in the frame.
func (f *Frame) NumCols() int {
	return len(f.Columns)
}
