// Package harvest provides a fluent API for loading simulation report
// files into merged, numerically typed tables.
//
// Basic usage:
//
//	table, warnings, err := harvest.Dir("results").Table()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", harvest.FormatWarnings(warnings))
//	}
//
// With options:
//
//	table, _, err := harvest.Dir("results").
//	    Filter("wheat*.out").
//	    Fill().
//	    ContinueOnError().
//	    Table()
//
// Every file contributes its data rows plus one column per header constant
// and a fileName column tagging each row with its origin. After merging,
// columns whose values all parse as numbers become numeric; everything
// else stays text.
//
// For advanced use cases, the lower-level outfile, metfile, reader, and
// tables packages are also available.
package harvest

import (
	"io"
)

// Open creates a Loader for a single report file.
//
// Example:
//
//	table, warnings, err := harvest.Open("results/wheat.out").Table()
func Open(path string) *Loader {
	return &Loader{
		sources: []string{path},
		options: DefaultOptions(),
	}
}

// Dir creates a Loader that scans a directory for report files. The scan
// is non-recursive, in lexical order, and keeps the files whose base names
// match the filter (default "*.out").
//
// Example:
//
//	table, warnings, err := harvest.Dir("results").Table()
func Dir(dir string) *Loader {
	return &Loader{
		sources: []string{dir},
		options: DefaultOptions(),
	}
}

// Files creates a Loader for an explicit list of files, loaded in the
// order given. The filter does not apply to explicitly listed files.
//
// Example:
//
//	table, _, err := harvest.Files("a.out", "b.out").Table()
func Files(paths ...string) *Loader {
	return &Loader{
		sources: append([]string(nil), paths...),
		options: DefaultOptions(),
	}
}

// FromReader creates a Loader for an already-open source. The name labels
// errors, routes the format by its extension, and fills the fileName
// column. The reader is consumed by the first terminal call.
//
// Example:
//
//	table, _, err := harvest.FromReader(resp.Body, "remote.out").Table()
func FromReader(r io.Reader, name string) *Loader {
	return &Loader{
		streams: []stream{{r: r, name: name}},
		options: DefaultOptions(),
	}
}

// New creates a Loader from an Options value. Each source may name a file
// or a directory; directories are scanned the way Dir scans them. The
// config package builds Loaders through New.
//
// Example:
//
//	opts := harvest.DefaultOptions()
//	opts.Fill = true
//	table, _, err := harvest.New(opts, "results").Table()
func New(opts Options, sources ...string) *Loader {
	l := &Loader{
		sources: append([]string(nil), sources...),
		options: opts,
	}
	l.err = validateOptions(opts)
	return l
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	loader := harvest.Must(config.Load("harvest.toml"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustTable is a helper that wraps a terminal operation and panics if the
// error is non-nil. It discards warnings and returns just the value. It is
// intended for use in scripts or tests where error handling would be
// cumbersome.
//
// Example:
//
//	table := harvest.MustTable(harvest.Dir("results").Table())
func MustTable[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
