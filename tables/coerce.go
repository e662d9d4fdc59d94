package tables

import (
	"github.com/tsawler/harvest/model"
)

// CoerceNumeric retypes every column of t whose non-missing values all
// parse as floats. Columns keep their text type in full when even one
// value does not parse; missing markers never block coercion, so a column
// of nothing but missing values comes out numeric (all NaN).
func CoerceNumeric(t *model.Table) {
	for _, c := range t.Columns() {
		c.CoerceNumeric()
	}
}
