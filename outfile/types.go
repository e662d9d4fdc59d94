// Package outfile parses simulation report (.out) files.
//
// A report file is plain text with three regions. The header region holds
// constant lines of the form "key = value" (a "factors = a=b;c=d" line
// carries several constants at once), then a whitespace-delimited line of
// column names, then a line of column units. The body region holds one
// whitespace-delimited row per line, with "?" and "*" marking missing
// values.
//
// Use [Open] to open and parse a file, then [Reader.Table] to read the body
// into a [model.Table]. Constants from the header are reported on
// [Reader.Header]; attaching them as columns is the caller's decision.
package outfile

import (
	"github.com/tsawler/harvest/model"
)

// Header holds everything parsed from a report file before the first data
// row.
type Header struct {
	// Columns are the column names in file order.
	Columns []string

	// Units are the unit annotations, one per column, as printed in the
	// file.
	Units []string

	// Constants are the key/value pairs from the header region, in the
	// order discovered. Duplicate keys are preserved here; collapsing
	// them is the caller's decision.
	Constants []model.Constant

	// DataStart is the number of header lines, i.e. how many lines
	// precede the first data row.
	DataStart int

	// Skipped records factors segments that could not be parsed.
	Skipped []Skipped
}

// Skipped is a factors segment that was dropped because it had no "=".
type Skipped struct {
	Line    int
	Segment string
}
