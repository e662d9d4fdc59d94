package model

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Table is a columnar container: an ordered set of named, same-length
// columns. Source holds the name of the file the table was loaded from;
// merged tables have an empty Source.
type Table struct {
	Source string

	cols []*Column
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{}
}

// AddColumn appends a column to the table. It fails if a column with the
// same name already exists or if the column's length does not match the
// table's row count. The first column added defines the row count.
func (t *Table) AddColumn(c *Column) error {
	for _, existing := range t.cols {
		if existing.Name == c.Name {
			return fmt.Errorf("model: duplicate column name %q", c.Name)
		}
	}
	if len(t.cols) > 0 && c.Len() != t.NumRows() {
		return fmt.Errorf("model: column %q has %d rows, table has %d", c.Name, c.Len(), t.NumRows())
	}
	t.cols = append(t.cols, c)
	return nil
}

// NumRows returns the number of rows in the table.
func (t *Table) NumRows() int {
	if len(t.cols) == 0 {
		return 0
	}
	return t.cols[0].Len()
}

// NumCols returns the number of columns in the table.
func (t *Table) NumCols() int {
	return len(t.cols)
}

// Column returns the column with the given name, or nil if no such column
// exists.
func (t *Table) Column(name string) *Column {
	for _, c := range t.cols {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Columns returns the table's columns in order. The slice is a copy but the
// columns themselves are shared.
func (t *Table) Columns() []*Column {
	out := make([]*Column, len(t.cols))
	copy(out, t.cols)
	return out
}

// ColumnNames returns the ordered column names.
func (t *Table) ColumnNames() []string {
	out := make([]string, len(t.cols))
	for i, c := range t.cols {
		out[i] = c.Name
	}
	return out
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := &Table{Source: t.Source, cols: make([]*Column, len(t.cols))}
	for i, c := range t.cols {
		out.cols[i] = c.clone()
	}
	return out
}

// Frame returns the row-major view of the table. Cells are string for text
// columns, float64 for numeric columns, and nil where missing.
func (t *Table) Frame() *Frame {
	f := &Frame{
		Columns: t.ColumnNames(),
		Units:   make([]string, len(t.cols)),
		Rows:    make([][]any, t.NumRows()),
	}
	for j, c := range t.cols {
		f.Units[j] = c.Unit
	}
	for i := range f.Rows {
		row := make([]any, len(t.cols))
		for j, c := range t.cols {
			switch {
			case c.IsMissing(i):
				row[j] = nil
			case c.Type() == TypeNumeric:
				row[j] = c.Float(i)
			default:
				row[j] = c.Value(i)
			}
		}
		f.Rows[i] = row
	}
	return f
}

// WriteCSV writes the table to w in CSV format: one header row of column
// names followed by the data rows. Missing cells are written as empty
// fields; numeric cells use their shortest exact form.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.ColumnNames()); err != nil {
		return err
	}
	record := make([]string, len(t.cols))
	for i := 0; i < t.NumRows(); i++ {
		for j, c := range t.cols {
			record[j] = c.Value(i)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ToMarkdown converts the table to a Markdown table. Columns with a unit
// render it in the header as "name (unit)".
func (t *Table) ToMarkdown() string {
	if len(t.cols) == 0 {
		return ""
	}

	var sb strings.Builder

	for j, c := range t.cols {
		sb.WriteString("| ")
		sb.WriteString(c.Name)
		if c.Unit != "" {
			sb.WriteString(" (")
			sb.WriteString(c.Unit)
			sb.WriteString(")")
		}
		sb.WriteString(" ")
		if j == len(t.cols)-1 {
			sb.WriteString("|")
		}
	}
	sb.WriteString("\n")

	for j := range t.cols {
		sb.WriteString("|---")
		if j == len(t.cols)-1 {
			sb.WriteString("|")
		}
	}
	sb.WriteString("\n")

	for i := 0; i < t.NumRows(); i++ {
		for j, c := range t.cols {
			sb.WriteString("| ")
			sb.WriteString(strings.ReplaceAll(c.Value(i), "\n", " "))
			sb.WriteString(" ")
			if j == len(t.cols)-1 {
				sb.WriteString("|")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
