package tables

import (
	"github.com/tsawler/harvest/model"
)

// AppendConstant broadcasts one header constant across every row of t as a
// new text column named after the constant's key. The constant's unit, when
// present, becomes the column unit. Appending to a zero-row table yields a
// zero-row column.
//
// A key that collides with an existing column is an error from the
// underlying table; deciding whether to skip or fail on collisions is the
// caller's policy.
func AppendConstant(t *model.Table, c model.Constant) error {
	col := model.NewColumn(c.Key, c.Unit)
	for i := 0; i < t.NumRows(); i++ {
		col.Append(c.Value)
	}
	return t.AddColumn(col)
}
