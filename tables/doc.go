// Package tables transforms parsed tables: it stacks per-file tables into
// one dataset, converts columns to numeric where every value allows it,
// broadcasts header constants as columns, and splits delimited text columns
// into tokens.
//
// # Stacking
//
// [Concat] appends tables row-wise. By default every table must carry the
// same columns in the same order; with fill enabled the result is the union
// of all columns, and rows from tables that lack a column get missing
// values there.
//
// # Coercion
//
// [CoerceNumeric] retypes each column whose every non-missing value parses
// as a float. A column with any unparseable value is left as text in full;
// there are no mixed columns.
//
// # Constants and Tokens
//
// [AppendConstant] broadcasts one header constant across all rows as a new
// column. [ExtractToken] splits a delimited text column ("exp1;goond;100")
// and appends the token at a fixed position as a new column.
//
// The functions here mutate or combine [model.Table] values and know
// nothing about files or formats; the loading pipeline in the root package
// drives them in order.
package tables
