package reader

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// maxLineBytes bounds a single line. Report files with several hundred
// columns produce rows far beyond bufio's 64K default.
const maxLineBytes = 1 << 20

// Reader scans a text source line by line, decoding it to UTF-8 and
// tracking the 1-based number of the current line.
type Reader struct {
	name    string
	file    *os.File // nil when wrapping a caller-owned io.Reader
	scanner *bufio.Scanner
	line    int
}

// Open opens a file for line reading. The contents are treated as UTF-8
// unless a byte order mark says otherwise.
func Open(filename string) (*Reader, error) {
	return OpenEncoding(filename, "")
}

// OpenEncoding opens a file whose charset is known in advance. The encoding
// name is resolved against the IANA registry; an empty name means UTF-8.
// A byte order mark in the file overrides the named encoding.
func OpenEncoding(filename, encodingName string) (*Reader, error) {
	enc, err := resolveEncoding(encodingName)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("reader: %w", err)
	}

	r := newReader(file, filename, enc)
	r.file = file
	return r, nil
}

// New wraps an existing io.Reader. The name labels errors and line
// positions; it is not opened. The stream is treated as UTF-8 unless a
// byte order mark says otherwise.
func New(r io.Reader, name string) *Reader {
	return newReader(r, name, unicode.UTF8)
}

// NewEncoding wraps an existing io.Reader with an explicit charset,
// resolved the same way as [OpenEncoding].
func NewEncoding(r io.Reader, name, encodingName string) (*Reader, error) {
	enc, err := resolveEncoding(encodingName)
	if err != nil {
		return nil, err
	}
	return newReader(r, name, enc), nil
}

func newReader(src io.Reader, name string, enc encoding.Encoding) *Reader {
	decoded := transform.NewReader(src, unicode.BOMOverride(enc.NewDecoder()))

	scanner := bufio.NewScanner(decoded)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	return &Reader{
		name:    name,
		scanner: scanner,
	}
}

// Lookup checks that an encoding name resolves, without opening anything.
// Callers validate configuration with it before touching files.
func Lookup(encodingName string) error {
	_, err := resolveEncoding(encodingName)
	return err
}

func resolveEncoding(name string) (encoding.Encoding, error) {
	if name == "" {
		return unicode.UTF8, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("reader: unknown encoding %q: %w", name, err)
	}
	if enc == nil {
		// The IANA index knows some names it has no decoder for.
		return nil, fmt.Errorf("reader: unsupported encoding %q", name)
	}
	return enc, nil
}

// Name returns the label given when the Reader was created, usually the
// file path.
func (r *Reader) Name() string {
	return r.name
}

// Scan advances to the next line. It returns false at end of input or on
// error; after it returns false, Err tells the two cases apart.
func (r *Reader) Scan() bool {
	if !r.scanner.Scan() {
		return false
	}
	r.line++
	return true
}

// Text returns the current line without its trailing newline. A trailing
// carriage return is stripped as well.
func (r *Reader) Text() string {
	return r.scanner.Text()
}

// Line returns the 1-based number of the line most recently returned by
// Text. It is zero before the first successful Scan.
func (r *Reader) Line() int {
	return r.line
}

// Err returns the first error hit while scanning, excluding io.EOF.
func (r *Reader) Err() error {
	if err := r.scanner.Err(); err != nil {
		return fmt.Errorf("reader: %s: %w", r.name, err)
	}
	return nil
}

// Close closes the underlying file. It is a no-op for Readers created with
// New or NewEncoding.
func (r *Reader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}
