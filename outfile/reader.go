package outfile

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tsawler/harvest/model"
	"github.com/tsawler/harvest/reader"
)

// Parse errors. The metfile package raises the same sentinels, so callers
// can errors.Is against these regardless of format.
var (
	ErrEmptyFile       = errors.New("outfile: file is empty")
	ErrNoHeader        = errors.New("outfile: no column header line")
	ErrUnitsMismatch   = errors.New("outfile: units do not match columns")
	ErrDuplicateColumn = errors.New("outfile: duplicate column name")
	ErrRowWidth        = errors.New("outfile: row width does not match header")
)

// Reader reads one report file: header first, then the body on demand.
type Reader struct {
	src         *reader.Reader
	header      Header
	pending     string // first data line, already consumed by the header scan
	pendingLine int
	hasPending  bool
}

// Open opens a report file and parses its header. The file is read as
// UTF-8; a leading byte order mark is honoured.
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

// OpenEncoding opens a report file written in a known charset. The encoding
// name is resolved against the IANA registry.
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

// New parses the header from an already-open line reader and returns a
// Reader positioned at the first data row. Closing the returned Reader
// closes src.
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

// Name returns the label of the underlying source, usually the file path.
func (r *Reader) Name() string {
	return r.src.Name()
}

// Close closes the underlying source.
func (r *Reader) Close() error {
	return r.src.Close()
}

// Table reads the body and returns it as a table of text columns, one per
// header column, with Source set to the reader's name. Constants are not
// attached. Table reads the source to exhaustion and can only be called
// once.
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

// appendRow splits one body line and appends its fields across cols.
// Whitespace-only lines are skipped; exporting tools often leave trailing
// blank lines.
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
		if isMissing(f) {
			cols[i].AppendMissing()
		} else {
			cols[i].Append(f)
		}
	}
	return nil
}

// isMissing reports whether a body token marks a missing value.
func isMissing(tok string) bool {
	return tok == "?" || tok == "*"
}

// Parse reads a whole report file from an io.Reader in one call: header,
// body, done. The name labels errors. It is a convenience for callers that
// do not need the two-phase Reader.
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
