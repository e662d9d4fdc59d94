// Package reader provides decoded, line-oriented reading of report files.
//
// Report files produced by field-scale simulators are plain text, but the
// text is not always UTF-8: files written on older Windows installs often
// carry a legacy single-byte charset, and editors sometimes prepend a byte
// order mark. This package hides both concerns behind a line scanner.
//
// # Opening Files
//
// Use [Open] to read a file as UTF-8 (a leading BOM, when present, is
// honoured and stripped):
//
//	r, err := reader.Open("yield.out")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	for r.Scan() {
//	    fmt.Println(r.Line(), r.Text())
//	}
//	if err := r.Err(); err != nil {
//	    log.Fatal(err)
//	}
//
// Use [OpenEncoding] when the charset is known and is not UTF-8. Encoding
// names are resolved against the IANA registry, so "latin1", "ISO-8859-1"
// and "windows-1252" all work. A BOM in the file still wins over the named
// encoding.
//
// # Wrapping a Reader
//
// [New] and [NewEncoding] wrap an existing io.Reader instead of opening a
// file. The name argument only labels errors and never touches the
// filesystem.
//
// # Line Numbers
//
// Lines are numbered from 1. [Reader.Line] reports the number of the line
// most recently returned by [Reader.Text], which is how parse errors are
// tied back to a position in the source file. Trailing carriage returns are
// stripped, so files written on Windows read the same as files written
// anywhere else.
package reader
