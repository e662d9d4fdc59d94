// Package model provides the user-facing data containers for loaded
// simulation output.
//
// All parsing and merging operations ultimately produce these types, making
// them the primary API for consuming loaded data.
//
// # Tables and Columns
//
// The [Table] type is a columnar container: an ordered set of named,
// same-length [Column] values plus the name of the source file it was loaded
// from. Column names are unique within a table.
//
//	t := model.NewTable()
//	c := model.NewColumn("yield", "kg/ha")
//	c.Append("1021.5")
//	c.AppendMissing()
//	_ = t.AddColumn(c)
//
// Each [Column] starts life as text ([TypeText]). The numeric coercion pass
// (package tables) promotes a column to [TypeNumeric] only when every
// non-missing cell parses as a number; missing cells in a numeric column
// hold NaN.
//
// # Missing Values
//
// Data files mark missing cells with sentinel tokens. Inside a column a
// missing cell is tracked explicitly: [Column.IsMissing] reports it,
// [Column.Value] renders it as the empty string, and [Column.Float] returns
// NaN for it.
//
// # Constants
//
// A [Constant] is a file-scoped key/value metadata pair discovered in a
// file's header. The loader broadcasts constants into full columns, so they
// survive merging.
//
// # Frames
//
// The [Frame] type is the row-major view of a table: a header, a units row,
// and rows of cells typed string, float64, or nil (missing). A Frame holds
// the same data as the Table that produced it.
//
// # Export
//
// Tables export to CSV via [Table.WriteCSV] and to Markdown via
// [Table.ToMarkdown].
package model
