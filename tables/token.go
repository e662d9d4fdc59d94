package tables

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tsawler/harvest/model"
)

// Token extraction errors.
var (
	ErrColumnSelector = errors.New("tables: invalid column selector")
	ErrDelimiterCount = errors.New("tables: separator count varies between rows")
	ErrTokenPosition  = errors.New("tables: token position out of range")
)

// ExtractToken splits every value of a delimited text column on sep and
// appends the token at the given 1-based position as a new text column
// named newName.
//
// The separator must occur the same number of times in every non-missing
// value, otherwise the column is not uniformly delimited and the call fails
// with ErrDelimiterCount. The position must lie within the token count that
// the separator implies, otherwise ErrTokenPosition. The source column must
// exist and be a text column, otherwise ErrColumnSelector. Missing source
// values yield missing tokens.
func ExtractToken(t *model.Table, column, sep string, position int, newName string) error {
	if sep == "" {
		return fmt.Errorf("tables: separator must not be empty")
	}
	if position < 1 {
		return fmt.Errorf("position %d: %w", position, ErrTokenPosition)
	}

	src := t.Column(column)
	if src == nil {
		return fmt.Errorf("no column %q: %w", column, ErrColumnSelector)
	}
	if src.Type() != model.TypeText {
		return fmt.Errorf("column %q is %v, not %v: %w",
			column, src.Type(), model.TypeText, ErrColumnSelector)
	}

	// One pass to prove the column is uniformly delimited.
	count := -1
	for i := 0; i < src.Len(); i++ {
		if src.IsMissing(i) {
			continue
		}
		n := strings.Count(src.Value(i), sep)
		if count == -1 {
			count = n
			continue
		}
		if n != count {
			return fmt.Errorf("%q has %d separators, earlier rows have %d: %w",
				src.Value(i), n, count, ErrDelimiterCount)
		}
	}
	if count >= 0 && position > count+1 {
		return fmt.Errorf("position %d with %d tokens per value: %w",
			position, count+1, ErrTokenPosition)
	}

	out := model.NewColumn(newName, "")
	for i := 0; i < src.Len(); i++ {
		if src.IsMissing(i) {
			out.AppendMissing()
			continue
		}
		out.Append(strings.Split(src.Value(i), sep)[position-1])
	}
	return t.AddColumn(out)
}
