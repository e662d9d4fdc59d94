// Package metfile parses weather (.met) files.
//
// A weather file carries the same header-then-body layout as a report file,
// with three extra conventions: "[section]" lines and "!" comment lines are
// skipped, constants may end in a parenthesised unit ("tav = 17.8 (oC)"),
// and the units line wraps every token in parentheses ("() (MJ/m^2) (oC)").
//
// Errors raise the same sentinels as the outfile package, so callers can
// errors.Is against outfile.ErrUnitsMismatch and friends regardless of
// which format they loaded.
package metfile

import (
	"fmt"
	"io"
	"strings"

	"github.com/tsawler/harvest/model"
	"github.com/tsawler/harvest/outfile"
	"github.com/tsawler/harvest/reader"
)

// Header is the same artifact the outfile package produces.
type Header = outfile.Header

// Sentinels shared with the outfile package.
var (
	ErrEmptyFile       = outfile.ErrEmptyFile
	ErrNoHeader        = outfile.ErrNoHeader
	ErrUnitsMismatch   = outfile.ErrUnitsMismatch
	ErrDuplicateColumn = outfile.ErrDuplicateColumn
	ErrRowWidth        = outfile.ErrRowWidth
)

// Reader reads one weather file: header first, then the body on demand.
type Reader struct {
	src         *reader.Reader
	header      Header
	pending     string
	pendingLine int
	hasPending  bool
}

// Open opens a weather file and parses its header.
func Open(filename string) (*Reader, error) {
	src, err := reader.Open(filename)
	if err != nil {
		return nil, err
	}

	r, err := New(src)
	if err != nil {
		src.Close()
		return nil, err
	}
	return r, nil
}

// OpenEncoding opens a weather file written in a known charset.
func OpenEncoding(filename, encodingName string) (*Reader, error) {
	src, err := reader.OpenEncoding(filename, encodingName)
	if err != nil {
		return nil, err
	}

	r, err := New(src)
	if err != nil {
		src.Close()
		return nil, err
	}
	return r, nil
}

// New parses the header from an already-open line reader. Closing the
// returned Reader closes src.
func New(src *reader.Reader) (*Reader, error) {
	header, pending, hasPending, err := parseHeader(src)
	if err != nil {
		return nil, err
	}

	return &Reader{
		src:         src,
		header:      header,
		pending:     pending,
		pendingLine: src.Line(),
		hasPending:  hasPending,
	}, nil
}

// Header returns the parsed file header.
func (r *Reader) Header() Header {
	return r.header
}

// Name returns the label of the underlying source.
func (r *Reader) Name() string {
	return r.src.Name()
}

// Close closes the underlying source.
func (r *Reader) Close() error {
	return r.src.Close()
}

// Table reads the body into a table of text columns. It reads the source to
// exhaustion and can only be called once.
func (r *Reader) Table() (*model.Table, error) {
	cols := make([]*model.Column, len(r.header.Columns))
	for i, name := range r.header.Columns {
		unit := ""
		if i < len(r.header.Units) {
			unit = r.header.Units[i]
		}
		cols[i] = model.NewColumn(name, unit)
	}

	if r.hasPending {
		if err := appendRow(cols, r.pending, r.src.Name(), r.pendingLine); err != nil {
			return nil, err
		}
		r.hasPending = false
	}
	for r.src.Scan() {
		if err := appendRow(cols, r.src.Text(), r.src.Name(), r.src.Line()); err != nil {
			return nil, err
		}
	}
	if err := r.src.Err(); err != nil {
		return nil, err
	}

	t := model.NewTable()
	t.Source = r.src.Name()
	for _, c := range cols {
		if err := t.AddColumn(c); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Parse reads a whole weather file from an io.Reader in one call.
func Parse(src io.Reader, name string) (*model.Table, Header, error) {
	r, err := New(reader.New(src, name))
	if err != nil {
		return nil, Header{}, err
	}

	t, err := r.Table()
	if err != nil {
		return nil, Header{}, err
	}
	return t, r.Header(), nil
}

func appendRow(cols []*model.Column, line, name string, lineNo int) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	if len(fields) != len(cols) {
		return fmt.Errorf("%s:%d: %d fields for %d columns: %w",
			name, lineNo, len(fields), len(cols), ErrRowWidth)
	}

	for i, f := range fields {
		if f == "?" || f == "*" {
			cols[i].AppendMissing()
		} else {
			cols[i].Append(f)
		}
	}
	return nil
}

// parseHeader consumes the header region of a weather file.
func parseHeader(src *reader.Reader) (Header, string, bool, error) {
	var h Header
	names, units := false, false
	sawAny := false

	for src.Scan() {
		sawAny = true
		line := src.Text()
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			// skipped

		case strings.HasPrefix(trimmed, "!"):
			// comment

		case strings.HasPrefix(trimmed, "["):
			// section marker

		case strings.Contains(line, "="):
			h.Constants = append(h.Constants, parseConstant(line))

		case !names:
			h.Columns = strings.Fields(line)
			if dup := firstDuplicate(h.Columns); dup != "" {
				return h, "", false, fmt.Errorf("%s:%d: column %q: %w",
					src.Name(), src.Line(), dup, ErrDuplicateColumn)
			}
			names = true

		case !units:
			h.Units = parseUnits(line)
			if len(h.Units) != len(h.Columns) {
				return h, "", false, fmt.Errorf("%s:%d: %d units for %d columns: %w",
					src.Name(), src.Line(), len(h.Units), len(h.Columns), ErrUnitsMismatch)
			}
			units = true

		default:
			return h, line, true, nil
		}

		h.DataStart = src.Line()
	}

	if err := src.Err(); err != nil {
		return h, "", false, err
	}

	switch {
	case !sawAny:
		return h, "", false, fmt.Errorf("%s: %w", src.Name(), ErrEmptyFile)
	case !names:
		return h, "", false, fmt.Errorf("%s: %w", src.Name(), ErrNoHeader)
	case !units:
		return h, "", false, fmt.Errorf("%s: missing units line for %d columns: %w",
			src.Name(), len(h.Columns), ErrUnitsMismatch)
	}

	return h, "", false, nil
}

// parseConstant splits a "key = value" line and lifts a trailing
// parenthesised unit out of the value: "tav = 17.8 (oC)" yields key "tav",
// value "17.8", unit "oC".
func parseConstant(line string) model.Constant {
	parts := strings.SplitN(line, " = ", 2)
	if len(parts) < 2 {
		parts = strings.SplitN(line, "=", 2)
	}

	c := model.Constant{
		Key:   strings.TrimSpace(parts[0]),
		Value: strings.TrimSpace(parts[1]),
	}

	if strings.HasSuffix(c.Value, ")") {
		if i := strings.LastIndex(c.Value, "("); i >= 0 {
			value := strings.TrimSpace(c.Value[:i])
			if value != "" {
				c.Unit = strings.TrimSpace(c.Value[i+1 : len(c.Value)-1])
				c.Value = value
			}
		}
	}
	return c
}

// parseUnits splits a units line and strips the surrounding parentheses
// from each token: "() (MJ/m^2)" yields "", "MJ/m^2".
func parseUnits(line string) []string {
	fields := strings.Fields(line)
	units := make([]string, len(fields))
	for i, f := range fields {
		if len(f) >= 2 && f[0] == '(' && f[len(f)-1] == ')' {
			f = f[1 : len(f)-1]
		}
		units[i] = f
	}
	return units
}

func firstDuplicate(names []string) string {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			return n
		}
		seen[n] = true
	}
	return ""
}
