package outfile

import (
	"errors"
	"strings"
	"testing"

	"github.com/tsawler/harvest/reader"
)

func parse(t *testing.T, content string) (Header, string, bool, error) {
	t.Helper()
	return parseHeader(reader.New(strings.NewReader(content), "test.out"))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		state scanState
		want  lineKind
	}{
		{"blank", "", scanState{}, lineBlank},
		{"whitespace only", "   \t ", scanState{}, lineBlank},
		{"constant", "Title = wheat", scanState{}, lineConstant},
		{"constant without spaces", "Title=wheat", scanState{}, lineConstant},
		{"factors", "factors = Experiment=exp1;Met=goond", scanState{}, lineFactors},
		{"factors without marker spacing is a plain constant", "factors=x", scanState{}, lineConstant},
		{"first bare line is names", "Date biomass yield", scanState{}, lineNames},
		{"second bare line is units", "(dd/mm/yyyy) (kg/ha) (kg/ha)", scanState{names: true}, lineUnits},
		{"third bare line is data", "01/01/1990 1200.5 800.2", scanState{names: true, units: true}, lineData},
		{"constant after names still wins", "Title = late", scanState{names: true}, lineConstant},
		{"constant after units still wins", "Title = later", scanState{names: true, units: true}, lineConstant},
		{"blank after units", "", scanState{names: true, units: true}, lineBlank},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify(tt.line, tt.state); got != tt.want {
				t.Errorf("classify(%q, %+v) = %v, want %v", tt.line, tt.state, got, tt.want)
			}
		})
	}
}

func TestParseConstant(t *testing.T) {
	tests := []struct {
		line      string
		wantKey   string
		wantValue string
	}{
		{"Title = wheat run", "Title", "wheat run"},
		{"Title=wheat", "Title", "wheat"},
		{"  ApsimVersion = 7.10 r4158  ", "ApsimVersion", "7.10 r4158"},
		{"path = out=dir", "path", "out=dir"},
		{"empty = ", "empty", ""},
	}

	for _, tt := range tests {
		got := parseConstant(tt.line)
		if got.Key != tt.wantKey || got.Value != tt.wantValue {
			t.Errorf("parseConstant(%q) = (%q, %q), want (%q, %q)",
				tt.line, got.Key, got.Value, tt.wantKey, tt.wantValue)
		}
	}
}

func TestParseFactors(t *testing.T) {
	constants, skipped := parseFactors("factors = Experiment=exp1; Met = goond ;;broken;N=100", 3)

	wantKeys := []string{"Experiment", "Met", "N"}
	wantValues := []string{"exp1", "goond", "100"}
	if len(constants) != len(wantKeys) {
		t.Fatalf("got %d constants, want %d", len(constants), len(wantKeys))
	}
	for i := range wantKeys {
		if constants[i].Key != wantKeys[i] || constants[i].Value != wantValues[i] {
			t.Errorf("constant %d: got (%q, %q), want (%q, %q)",
				i, constants[i].Key, constants[i].Value, wantKeys[i], wantValues[i])
		}
	}

	if len(skipped) != 1 {
		t.Fatalf("got %d skipped segments, want 1", len(skipped))
	}
	if skipped[0].Segment != "broken" || skipped[0].Line != 3 {
		t.Errorf("skipped = %+v, want {Line: 3, Segment: %q}", skipped[0], "broken")
	}
}

func TestParseHeader(t *testing.T) {
	content := "ApsimVersion = 7.10 r4158\n" +
		"Title = wheat run\n" +
		"factors = Experiment=exp1;Met=goond\n" +
		"Date biomass yield\n" +
		"(dd/mm/yyyy) (kg/ha) (kg/ha)\n" +
		"01/01/1990 1200.5 800.2\n"

	h, pending, hasPending, err := parse(t, content)
	if err != nil {
		t.Fatalf("parseHeader: %v", err)
	}

	wantColumns := []string{"Date", "biomass", "yield"}
	if len(h.Columns) != len(wantColumns) {
		t.Fatalf("got %d columns, want %d", len(h.Columns), len(wantColumns))
	}
	for i := range wantColumns {
		if h.Columns[i] != wantColumns[i] {
			t.Errorf("column %d: got %q, want %q", i, h.Columns[i], wantColumns[i])
		}
	}

	wantUnits := []string{"(dd/mm/yyyy)", "(kg/ha)", "(kg/ha)"}
	for i := range wantUnits {
		if h.Units[i] != wantUnits[i] {
			t.Errorf("unit %d: got %q, want %q", i, h.Units[i], wantUnits[i])
		}
	}

	wantConstants := [][2]string{
		{"ApsimVersion", "7.10 r4158"},
		{"Title", "wheat run"},
		{"Experiment", "exp1"},
		{"Met", "goond"},
	}
	if len(h.Constants) != len(wantConstants) {
		t.Fatalf("got %d constants, want %d", len(h.Constants), len(wantConstants))
	}
	for i, want := range wantConstants {
		if h.Constants[i].Key != want[0] || h.Constants[i].Value != want[1] {
			t.Errorf("constant %d: got (%q, %q), want (%q, %q)",
				i, h.Constants[i].Key, h.Constants[i].Value, want[0], want[1])
		}
	}

	if h.DataStart != 5 {
		t.Errorf("DataStart: got %d, want 5", h.DataStart)
	}
	if !hasPending {
		t.Fatal("expected a pending data line")
	}
	if pending != "01/01/1990 1200.5 800.2" {
		t.Errorf("pending line: got %q", pending)
	}
}

func TestParseHeaderBlankLinesSkipped(t *testing.T) {
	content := "\nTitle = x\n\nDate yield\n\n() (kg/ha)\n\n1 2\n"

	h, pending, hasPending, err := parse(t, content)
	if err != nil {
		t.Fatalf("parseHeader: %v", err)
	}
	if h.DataStart != 7 {
		t.Errorf("DataStart: got %d, want 7", h.DataStart)
	}
	if !hasPending || pending != "1 2" {
		t.Errorf("pending: got (%q, %v), want (%q, true)", pending, hasPending, "1 2")
	}
}

func TestParseHeaderConstantBetweenNamesAndUnits(t *testing.T) {
	content := "Date yield\nTitle = placed late\n() (kg/ha)\n1 2\n"

	h, _, _, err := parse(t, content)
	if err != nil {
		t.Fatalf("parseHeader: %v", err)
	}
	if len(h.Constants) != 1 || h.Constants[0].Key != "Title" {
		t.Errorf("constants = %+v, want the late Title constant", h.Constants)
	}
	if len(h.Units) != 2 {
		t.Errorf("got %d units, want 2", len(h.Units))
	}
}

func TestParseHeaderErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"empty file", "", ErrEmptyFile},
		{"blank lines only", "\n\n\n", ErrNoHeader},
		{"constants only", "Title = x\nfactors = a=1\n", ErrNoHeader},
		{"names then EOF", "Title = x\nDate yield\n", ErrUnitsMismatch},
		{"units count off", "Date yield\n(kg/ha)\n", ErrUnitsMismatch},
		{"duplicate column", "Date yield yield\n", ErrDuplicateColumn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := parse(t, tt.content)
			if !errors.Is(err, tt.want) {
				t.Errorf("got error %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseHeaderErrorNamesFile(t *testing.T) {
	_, _, _, err := parse(t, "Date yield\n(kg/ha)\n")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "test.out:2") {
		t.Errorf("error %q does not name the file and line", err)
	}
}

func TestParseHeaderHeaderOnlyFile(t *testing.T) {
	h, _, hasPending, err := parse(t, "Date yield\n() (kg/ha)\n")
	if err != nil {
		t.Fatalf("parseHeader: %v", err)
	}
	if hasPending {
		t.Error("expected no pending data line")
	}
	if h.DataStart != 2 {
		t.Errorf("DataStart: got %d, want 2", h.DataStart)
	}
}
