package harvest

// Options holds configuration for loading report files. Every field has a
// fluent setter on [Loader]; the struct exists so callers and the config
// package can build a whole configuration in one place and hand it to
// [New]. The tags let configuration files overlay onto [DefaultOptions].
type Options struct {
	// Filter is a glob matched against base file names when scanning a
	// directory. Explicitly listed files bypass it.
	Filter string `toml:"filter" yaml:"filter"`

	// FileLimit caps how many files are loaded. Zero means no limit.
	FileLimit int `toml:"file_limit" yaml:"file_limit"`

	// Fill merges files with differing columns into the union schema,
	// padding absent columns with missing values. When false, all files
	// must share one schema.
	Fill bool `toml:"fill" yaml:"fill"`

	// AddConstants attaches header constants to each file's rows as
	// extra columns.
	AddConstants bool `toml:"add_constants" yaml:"add_constants"`

	// SkipEmpty turns empty input files into warnings instead of
	// errors.
	SkipEmpty bool `toml:"skip_empty" yaml:"skip_empty"`

	// ContinueOnError turns per-file load failures into warnings
	// instead of aborting the batch.
	ContinueOnError bool `toml:"continue_on_error" yaml:"continue_on_error"`

	// Encoding is the IANA charset name files are decoded with. Empty
	// means UTF-8; a byte order mark always wins.
	Encoding string `toml:"encoding" yaml:"encoding"`
}

// DefaultOptions returns the options used by the package-level
// constructors: load every *.out file, attach constants, fail fast.
func DefaultOptions() Options {
	return Options{
		Filter:       "*.out",
		AddConstants: true,
	}
}
