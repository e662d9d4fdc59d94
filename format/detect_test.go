package format

import (
	"testing"
)

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{Output, "Output"},
		{Met, "Met"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_Extension(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{Output, ".out"},
		{Met, ".met"},
		{Unknown, ""},
	}

	for _, tt := range tests {
		if got := tt.format.Extension(); got != tt.want {
			t.Errorf("Format(%d).Extension() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"yield.out", Output},
		{"yield.OUT", Output},
		{"yield.Out", Output},
		{"goond.met", Met},
		{"goond.MET", Met},
		{"goond.Met", Met},
		{"report.sum", Unknown},
		{"report.csv", Unknown},
		{"report", Unknown},
		{"", Unknown},
		{"/path/to/wheat yield.out", Output},
		{"/path/to/station.met", Met},
		{"archive.out.bak", Unknown},
	}

	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}
