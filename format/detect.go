// Package format provides file format detection for the harvest library.
package format

import (
	"path/filepath"
	"strings"
)

// Format represents a supported report file format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// Output indicates a simulation report file (.out).
	Output
	// Met indicates a weather file (.met).
	Met
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case Output:
		return "Output"
	case Met:
		return "Met"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case Output:
		return ".out"
	case Met:
		return ".met"
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".out":
		return Output
	case ".met":
		return Met
	default:
		return Unknown
	}
}
