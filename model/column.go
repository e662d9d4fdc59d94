package model

import (
	"math"
	"strconv"
)

// ColumnType represents the element type of a column.
type ColumnType int

const (
	// TypeText indicates a column of text values.
	TypeText ColumnType = iota
	// TypeNumeric indicates a column of float64 values.
	TypeNumeric
)

// String returns the string representation of the column type.
func (t ColumnType) String() string {
	switch t {
	case TypeText:
		return "text"
	case TypeNumeric:
		return "numeric"
	default:
		return "unknown"
	}
}

// Column is a single named column of cells. New cells are appended as text;
// CoerceNumeric promotes the whole column to numeric when every non-missing
// cell parses as a number.
type Column struct {
	Name string
	Unit string

	typ     ColumnType
	values  []string
	missing []bool
	numbers []float64 // populated only when typ == TypeNumeric
}

// NewColumn creates an empty text column with the given name and unit.
func NewColumn(name, unit string) *Column {
	return &Column{Name: name, Unit: unit}
}

// Append adds a text cell to the column.
func (c *Column) Append(v string) {
	c.values = append(c.values, v)
	c.missing = append(c.missing, false)
	if c.typ == TypeNumeric {
		// A numeric column only grows through re-coercion; keep the
		// parallel slice aligned so accessors stay in bounds.
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			f = math.NaN()
		}
		c.numbers = append(c.numbers, f)
	}
}

// AppendMissing adds a missing cell to the column.
func (c *Column) AppendMissing() {
	c.values = append(c.values, "")
	c.missing = append(c.missing, true)
	if c.typ == TypeNumeric {
		c.numbers = append(c.numbers, math.NaN())
	}
}

// Len returns the number of cells in the column.
func (c *Column) Len() int {
	return len(c.values)
}

// Type returns the column's element type.
func (c *Column) Type() ColumnType {
	return c.typ
}

// IsMissing reports whether the cell at index i is a missing value.
func (c *Column) IsMissing(i int) bool {
	return c.missing[i]
}

// Value returns the cell at index i rendered as text. Missing cells render
// as the empty string; numeric cells render in their shortest exact form.
func (c *Column) Value(i int) string {
	if c.missing[i] {
		return ""
	}
	if c.typ == TypeNumeric {
		return strconv.FormatFloat(c.numbers[i], 'g', -1, 64)
	}
	return c.values[i]
}

// Float returns the cell at index i as a float64. It returns NaN for
// missing cells and for any cell of a text column.
func (c *Column) Float(i int) float64 {
	if c.typ != TypeNumeric || c.missing[i] {
		return math.NaN()
	}
	return c.numbers[i]
}

// Strings returns a copy of all cells rendered as text, with missing cells
// as empty strings.
func (c *Column) Strings() []string {
	out := make([]string, c.Len())
	for i := range out {
		out[i] = c.Value(i)
	}
	return out
}

// Floats returns a copy of the column's numeric values with NaN at missing
// cells. It returns nil for a text column.
func (c *Column) Floats() []float64 {
	if c.typ != TypeNumeric {
		return nil
	}
	out := make([]float64, len(c.numbers))
	copy(out, c.numbers)
	return out
}

// CoerceNumeric attempts to promote the column to numeric. The conversion is
// all-or-nothing: if any non-missing cell fails to parse as a float the
// column is left untouched and false is returned. Missing cells always count
// as parseable, so a wholly-missing column converts to a numeric column of
// NaNs. Coercing an already-numeric column is a no-op returning true.
func (c *Column) CoerceNumeric() bool {
	if c.typ == TypeNumeric {
		return true
	}
	nums := make([]float64, len(c.values))
	for i, v := range c.values {
		if c.missing[i] {
			nums[i] = math.NaN()
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return false
		}
		nums[i] = f
	}
	c.typ = TypeNumeric
	c.numbers = nums
	return true
}

// clone returns a deep copy of the column.
func (c *Column) clone() *Column {
	out := &Column{
		Name:    c.Name,
		Unit:    c.Unit,
		typ:     c.typ,
		values:  append([]string(nil), c.values...),
		missing: append([]bool(nil), c.missing...),
	}
	if c.numbers != nil {
		out.numbers = append([]float64(nil), c.numbers...)
	}
	return out
}
