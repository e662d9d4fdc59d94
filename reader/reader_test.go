package reader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("writing fixture %s: %v", name, err)
	}
	return path
}

func readAll(t *testing.T, r *Reader) []string {
	t.Helper()

	var lines []string
	for r.Scan() {
		lines = append(lines, r.Text())
	}
	if err := r.Err(); err != nil {
		t.Fatalf("scan error: %v", err)
	}
	return lines
}

func TestOpenReadsLines(t *testing.T) {
	path := writeFile(t, "plain.out", []byte("first\nsecond\nthird\n"))

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	lines := readAll(t, r)
	want := []string{"first", "second", "third"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i+1, lines[i], want[i])
		}
	}
	if r.Line() != 3 {
		t.Errorf("Line() after scan: got %d, want 3", r.Line())
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "no-such-file.out"))
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

func TestOpenStripsByteOrderMark(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("title = bom\nrest\n")...)
	path := writeFile(t, "bom.out", data)

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	lines := readAll(t, r)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0] != "title = bom" {
		t.Errorf("first line: got %q, want %q", lines[0], "title = bom")
	}
}

func TestOpenStripsCarriageReturns(t *testing.T) {
	path := writeFile(t, "crlf.out", []byte("one\r\ntwo\r\n"))

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	lines := readAll(t, r)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for i, line := range lines {
		if strings.ContainsRune(line, '\r') {
			t.Errorf("line %d still contains carriage return: %q", i+1, line)
		}
	}
}

func TestOpenEncodingLatin1(t *testing.T) {
	// "maxt (°C)" with the degree sign as the single Latin-1 byte 0xB0.
	data := []byte{'m', 'a', 'x', 't', ' ', '(', 0xB0, 'C', ')', '\n'}
	path := writeFile(t, "latin1.out", data)

	r, err := OpenEncoding(path, "latin1")
	if err != nil {
		t.Fatalf("OpenEncoding: %v", err)
	}
	defer r.Close()

	lines := readAll(t, r)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0] != "maxt (°C)" {
		t.Errorf("got %q, want %q", lines[0], "maxt (°C)")
	}
}

func TestOpenEncodingUnknownName(t *testing.T) {
	path := writeFile(t, "plain.out", []byte("x\n"))

	_, err := OpenEncoding(path, "no-such-charset")
	if err == nil {
		t.Fatal("expected error for unknown encoding, got nil")
	}
}

func TestLongLines(t *testing.T) {
	long := strings.Repeat("123.456 ", 40000) // ~320K, past bufio's default
	path := writeFile(t, "wide.out", []byte(long+"\n"))

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	lines := readAll(t, r)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0] != long {
		t.Errorf("long line was truncated: got %d bytes, want %d", len(lines[0]), len(long))
	}
}

func TestNewWrapsReader(t *testing.T) {
	r := New(strings.NewReader("a\nb\n"), "in-memory")

	if r.Name() != "in-memory" {
		t.Errorf("Name: got %q, want %q", r.Name(), "in-memory")
	}
	if r.Line() != 0 {
		t.Errorf("Line before first Scan: got %d, want 0", r.Line())
	}

	lines := readAll(t, r)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close on wrapped reader: %v", err)
	}
}

func TestLineNumbersTrackScans(t *testing.T) {
	r := New(strings.NewReader("a\nb\nc\n"), "in-memory")

	for want := 1; r.Scan(); want++ {
		if r.Line() != want {
			t.Errorf("Line: got %d, want %d", r.Line(), want)
		}
	}
}
