package tables

import (
	"errors"
	"fmt"

	"github.com/tsawler/harvest/model"
)

// ErrSchemaMismatch is returned by Concat in strict mode when two tables do
// not carry the same columns in the same order.
var ErrSchemaMismatch = errors.New("tables: column schema mismatch")

// Concat stacks tables row-wise in input order. In strict mode (fill false)
// every table must have exactly the columns of the first, in the same
// order; the first offender aborts the merge with ErrSchemaMismatch and no
// partial result. With fill enabled the output carries the union of all
// columns in first-seen order, and tables missing a column contribute
// missing values for it.
//
// The result is a fresh table of text columns; run CoerceNumeric on it to
// restore numeric typing. Unit metadata comes from the first table that
// carries each column. The result's Source is empty.
func Concat(list []*model.Table, fill bool) (*model.Table, error) {
	if len(list) == 0 {
		return model.NewTable(), nil
	}
	if fill {
		return concatFill(list)
	}
	return concatStrict(list)
}

func concatStrict(list []*model.Table) (*model.Table, error) {
	first := list[0]
	names := first.ColumnNames()

	for _, t := range list[1:] {
		if err := sameSchema(first, t, names); err != nil {
			return nil, err
		}
	}

	out := model.NewTable()
	for i, name := range names {
		col := model.NewColumn(name, first.Columns()[i].Unit)
		for _, t := range list {
			copyColumn(col, t.Column(name), t.NumRows())
		}
		if err := out.AddColumn(col); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func sameSchema(first, t *model.Table, names []string) error {
	got := t.ColumnNames()
	if len(got) != len(names) {
		return fmt.Errorf("%s has %d columns, %s has %d: %w",
			first.Source, len(names), t.Source, len(got), ErrSchemaMismatch)
	}
	for i := range names {
		if got[i] != names[i] {
			return fmt.Errorf("column %d is %q in %s but %q in %s: %w",
				i+1, names[i], first.Source, got[i], t.Source, ErrSchemaMismatch)
		}
	}
	return nil
}

func concatFill(list []*model.Table) (*model.Table, error) {
	var names []string
	units := make(map[string]string)
	seen := make(map[string]bool)
	for _, t := range list {
		for _, c := range t.Columns() {
			if !seen[c.Name] {
				seen[c.Name] = true
				names = append(names, c.Name)
				units[c.Name] = c.Unit
			}
		}
	}

	out := model.NewTable()
	for _, name := range names {
		col := model.NewColumn(name, units[name])
		for _, t := range list {
			copyColumn(col, t.Column(name), t.NumRows())
		}
		if err := out.AddColumn(col); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// copyColumn appends all of src onto dst as text, or rows missing values
// when the source table has no such column.
func copyColumn(dst, src *model.Column, rows int) {
	if src == nil {
		for i := 0; i < rows; i++ {
			dst.AppendMissing()
		}
		return
	}
	for i := 0; i < src.Len(); i++ {
		if src.IsMissing(i) {
			dst.AppendMissing()
		} else {
			dst.Append(src.Value(i))
		}
	}
}
