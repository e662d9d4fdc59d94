package harvest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar"

	"github.com/tsawler/harvest/format"
	"github.com/tsawler/harvest/metfile"
	"github.com/tsawler/harvest/model"
	"github.com/tsawler/harvest/outfile"
	"github.com/tsawler/harvest/reader"
	"github.com/tsawler/harvest/tables"
)

// ErrNoFiles is returned by terminal operations that find nothing to load:
// no file matched the filter, or every matched file was skipped.
var ErrNoFiles = errors.New("harvest: no files to load")

// fileNameColumn tags every row with the base name of the file it came
// from.
const fileNameColumn = "fileName"

// stream is an in-memory source registered with FromReader.
type stream struct {
	r    io.Reader
	name string
}

// Loader provides a fluent interface for loading report files. Each
// configuration method returns a new Loader instance, so a configured
// Loader can be shared and varied without affecting its parent.
type Loader struct {
	// Sources: paths (files or directories) and in-memory streams.
	sources []string
	streams []stream

	// Configuration
	options Options

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated before the terminal call
	warnings []Warning
}

// clone creates a copy of the Loader. Each chain method returns a new
// instance built from one of these.
func (l *Loader) clone() *Loader {
	return &Loader{
		sources:  append([]string(nil), l.sources...),
		streams:  append([]stream(nil), l.streams...),
		options:  l.options,
		err:      l.err,
		warnings: append([]Warning(nil), l.warnings...),
	}
}

// ============================================================================
// Configuration Methods (return new Loader instance)
// ============================================================================

// Filter sets the glob matched against base file names during directory
// scans. The default is "*.out". Doublestar syntax is accepted.
//
// Example:
//
//	table, _, err := harvest.Dir("results").Filter("wheat*.out").Table()
func (l *Loader) Filter(pattern string) *Loader {
	newLdr := l.clone()
	newLdr.options.Filter = pattern
	if _, err := doublestar.Match(pattern, "probe"); err != nil && newLdr.err == nil {
		newLdr.err = fmt.Errorf("harvest: filter %q: %w", pattern, err)
	}
	return newLdr
}

// FileLimit caps how many files are loaded, in discovery order. Zero means
// no limit.
//
// Example:
//
//	table, _, err := harvest.Dir("results").FileLimit(10).Table()
func (l *Loader) FileLimit(n int) *Loader {
	newLdr := l.clone()
	newLdr.options.FileLimit = n
	return newLdr
}

// Fill merges files with differing columns into the union schema, padding
// absent columns with missing values. Without it, files that do not share
// the first file's columns abort the load with tables.ErrSchemaMismatch.
//
// Example:
//
//	table, _, err := harvest.Dir("results").Fill().Table()
func (l *Loader) Fill() *Loader {
	newLdr := l.clone()
	newLdr.options.Fill = true
	return newLdr
}

// WithoutConstants leaves header constants out of the result instead of
// attaching them to each file's rows as columns.
//
// Example:
//
//	table, _, err := harvest.Dir("results").WithoutConstants().Table()
func (l *Loader) WithoutConstants() *Loader {
	newLdr := l.clone()
	newLdr.options.AddConstants = false
	return newLdr
}

// SkipEmpty turns empty input files into warnings instead of failing the
// batch.
//
// Example:
//
//	table, warnings, err := harvest.Dir("results").SkipEmpty().Table()
func (l *Loader) SkipEmpty() *Loader {
	newLdr := l.clone()
	newLdr.options.SkipEmpty = true
	return newLdr
}

// ContinueOnError turns per-file load failures into warnings and loads the
// rest. Misconfiguration, such as a bad filter or encoding name, still
// fails the batch.
//
// Example:
//
//	table, warnings, err := harvest.Dir("results").ContinueOnError().Table()
//	for _, w := range warnings {
//	    log.Println(w)
//	}
func (l *Loader) ContinueOnError() *Loader {
	newLdr := l.clone()
	newLdr.options.ContinueOnError = true
	return newLdr
}

// Encoding sets the charset files are decoded with, by IANA name
// ("latin1", "windows-1252"). The default is UTF-8. A byte order mark in a
// file always wins.
//
// Example:
//
//	table, _, err := harvest.Dir("results").Encoding("latin1").Table()
func (l *Loader) Encoding(name string) *Loader {
	newLdr := l.clone()
	newLdr.options.Encoding = name
	if err := reader.Lookup(name); err != nil && newLdr.err == nil {
		newLdr.err = err
	}
	return newLdr
}

// ============================================================================
// Terminal Operations (run the pipeline and return results)
// ============================================================================

// Table loads every source, stacks the per-file tables into one, and
// retypes columns numerically where possible. It returns the merged table,
// any warnings, and an error if loading failed.
//
// Example:
//
//	table, warnings, err := harvest.Dir("results").Table()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:\n" + harvest.FormatWarnings(warnings))
//	}
func (l *Loader) Table() (*model.Table, []Warning, error) {
	loaded, warnings, err := l.load()
	if err != nil {
		return nil, warnings, err
	}

	merged, err := tables.Concat(loaded, l.options.Fill)
	if err != nil {
		return nil, warnings, err
	}
	tables.CoerceNumeric(merged)
	return merged, warnings, nil
}

// Frame loads like Table but returns the row-major view: cells are
// float64, string, or nil for missing.
//
// Example:
//
//	frame, _, err := harvest.Dir("results").Frame()
//	for _, row := range frame.Rows {
//	    fmt.Println(row)
//	}
func (l *Loader) Frame() (*model.Frame, []Warning, error) {
	merged, warnings, err := l.Table()
	if err != nil {
		return nil, warnings, err
	}
	return merged.Frame(), warnings, nil
}

// Tables loads every source and returns the per-file tables, constants and
// file tags attached, without merging or numeric coercion. Row values are
// text exactly as they appear in the files.
//
// Example:
//
//	perFile, _, err := harvest.Dir("results").Tables()
//	for _, t := range perFile {
//	    fmt.Println(t.Source, t.NumRows())
//	}
func (l *Loader) Tables() ([]*model.Table, []Warning, error) {
	return l.load()
}

// ============================================================================
// Internal pipeline
// ============================================================================

// load resolves sources to files, parses each one, and decorates the
// per-file tables with constants and the file tag.
func (l *Loader) load() ([]*model.Table, []Warning, error) {
	if l.err != nil {
		return nil, nil, l.err
	}

	warnings := append([]Warning(nil), l.warnings...)

	paths, resolveWarnings, err := l.resolveSources()
	warnings = append(warnings, resolveWarnings...)
	if err != nil {
		return nil, warnings, err
	}
	if limit := l.options.FileLimit; limit > 0 && len(paths) > limit {
		paths = paths[:limit]
	}

	if len(paths) == 0 && len(l.streams) == 0 {
		return nil, warnings, fmt.Errorf("no sources matched: %w", ErrNoFiles)
	}

	var loaded []*model.Table
	for _, path := range paths {
		t, fileWarnings, err := l.loadFile(path)
		warnings = append(warnings, fileWarnings...)
		if err != nil {
			if !l.skippable(err) {
				return nil, warnings, err
			}
			warnings = append(warnings, Warning{File: path, Message: "skipped: " + err.Error()})
			continue
		}
		loaded = append(loaded, t)
	}
	for _, s := range l.streams {
		t, streamWarnings, err := l.loadStream(s)
		warnings = append(warnings, streamWarnings...)
		if err != nil {
			if !l.skippable(err) {
				return nil, warnings, err
			}
			warnings = append(warnings, Warning{File: s.name, Message: "skipped: " + err.Error()})
			continue
		}
		loaded = append(loaded, t)
	}

	if len(loaded) == 0 {
		return nil, warnings, fmt.Errorf("every file was skipped: %w", ErrNoFiles)
	}
	return loaded, warnings, nil
}

// validateOptions reports the first configuration problem in an Options
// value built outside the fluent setters.
func validateOptions(opts Options) error {
	if _, err := doublestar.Match(opts.Filter, "probe"); err != nil {
		return fmt.Errorf("harvest: filter %q: %w", opts.Filter, err)
	}
	return reader.Lookup(opts.Encoding)
}

// skippable reports whether a per-file failure may be demoted to a
// warning under the current options.
func (l *Loader) skippable(err error) bool {
	if l.options.ContinueOnError {
		return true
	}
	return l.options.SkipEmpty && errors.Is(err, outfile.ErrEmptyFile)
}

// resolveSources expands the configured paths into a file list. A path
// that names a directory is scanned, non-recursively, in lexical order;
// base names must match the filter. A path that names a file is taken as
// given, filter or not. The working directory is never changed.
func (l *Loader) resolveSources() ([]string, []Warning, error) {
	var paths []string
	var warnings []Warning

	for _, src := range l.sources {
		info, err := os.Stat(src)
		if err != nil {
			if l.options.ContinueOnError {
				warnings = append(warnings, Warning{File: src, Message: "skipped: " + err.Error()})
				continue
			}
			return nil, warnings, fmt.Errorf("harvest: %w", err)
		}

		if !info.IsDir() {
			paths = append(paths, src)
			continue
		}

		matched, err := l.scanDir(src)
		if err != nil {
			return nil, warnings, err
		}
		paths = append(paths, matched...)
	}
	return paths, warnings, nil
}

// scanDir lists the regular files in dir whose base names match the
// filter. os.ReadDir returns entries in lexical order, which fixes the row
// order of the merged result.
func (l *Loader) scanDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("harvest: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		ok, err := doublestar.Match(l.options.Filter, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("harvest: filter %q: %w", l.options.Filter, err)
		}
		if ok {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	return paths, nil
}

// loadFile opens, parses, and decorates a single file.
func (l *Loader) loadFile(path string) (*model.Table, []Warning, error) {
	src, err := reader.OpenEncoding(path, l.options.Encoding)
	if err != nil {
		return nil, nil, err
	}
	defer src.Close()

	return l.loadSource(src, path)
}

// loadStream parses and decorates an in-memory source.
func (l *Loader) loadStream(s stream) (*model.Table, []Warning, error) {
	src, err := reader.NewEncoding(s.r, s.name, l.options.Encoding)
	if err != nil {
		return nil, nil, err
	}
	return l.loadSource(src, s.name)
}

// loadSource parses one source, routing by format, and attaches constants
// and the file tag.
func (l *Loader) loadSource(src *reader.Reader, path string) (*model.Table, []Warning, error) {
	var (
		table  *model.Table
		header outfile.Header
	)

	switch format.Detect(path) {
	case format.Met:
		r, err := metfile.New(src)
		if err != nil {
			return nil, nil, err
		}
		if table, err = r.Table(); err != nil {
			return nil, nil, err
		}
		header = r.Header()

	default:
		r, err := outfile.New(src)
		if err != nil {
			return nil, nil, err
		}
		if table, err = r.Table(); err != nil {
			return nil, nil, err
		}
		header = r.Header()
	}

	warnings := l.decorate(table, header, path)
	return table, warnings, nil
}

// decorate appends constant columns and the file tag to a freshly parsed
// table, collecting warnings about anything it had to drop on the way.
func (l *Loader) decorate(t *model.Table, h outfile.Header, path string) []Warning {
	var warnings []Warning

	for _, s := range h.Skipped {
		warnings = append(warnings, Warning{
			File:    path,
			Line:    s.Line,
			Message: fmt.Sprintf("dropped factors segment %q: no key=value", s.Segment),
		})
	}

	if l.options.AddConstants {
		constants, dupWarnings := collapseConstants(h.Constants, path)
		warnings = append(warnings, dupWarnings...)

		for _, c := range constants {
			if t.Column(c.Key) != nil {
				warnings = append(warnings, Warning{
					File:    path,
					Message: fmt.Sprintf("constant %q collides with a data column, skipped", c.Key),
				})
				continue
			}
			if err := tables.AppendConstant(t, c); err != nil {
				warnings = append(warnings, Warning{File: path, Message: err.Error()})
			}
		}
	}

	if t.Column(fileNameColumn) != nil {
		warnings = append(warnings, Warning{
			File:    path,
			Message: fmt.Sprintf("column %q already exists, file tag skipped", fileNameColumn),
		})
		return warnings
	}
	tag := model.Constant{Key: fileNameColumn, Value: filepath.Base(path)}
	if err := tables.AppendConstant(t, tag); err != nil {
		warnings = append(warnings, Warning{File: path, Message: err.Error()})
	}
	return warnings
}

// collapseConstants resolves duplicate constant keys: the last value wins
// but the key keeps its first position, so column order tracks discovery
// order.
func collapseConstants(constants []model.Constant, path string) ([]model.Constant, []Warning) {
	index := make(map[string]int, len(constants))
	var out []model.Constant
	var warnings []Warning

	for _, c := range constants {
		if i, ok := index[c.Key]; ok {
			warnings = append(warnings, Warning{
				File:    path,
				Message: fmt.Sprintf("constant %q repeats, last value wins", c.Key),
			})
			out[i] = c
			continue
		}
		index[c.Key] = len(out)
		out = append(out, c)
	}
	return out, warnings
}
