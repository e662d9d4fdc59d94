package outfile

import (
	"fmt"
	"strings"

	"github.com/tsawler/harvest/model"
	"github.com/tsawler/harvest/reader"
)

// factorsMarker introduces a line carrying several constants at once.
const factorsMarker = "factors = "

// lineKind classifies one header-region line.
type lineKind int

const (
	lineBlank lineKind = iota
	lineFactors
	lineConstant
	lineNames
	lineUnits
	lineData
)

// scanState tracks which header lines have been seen so far.
type scanState struct {
	names bool
	units bool
}

// classify decides what a line is. The order of the rules is absolute:
// constant lines are recognised anywhere in the header region, even between
// the name and unit lines.
func classify(line string, st scanState) lineKind {
	switch {
	case strings.TrimSpace(line) == "":
		return lineBlank
	case strings.Contains(line, factorsMarker):
		return lineFactors
	case strings.Contains(line, "="):
		return lineConstant
	case !st.names:
		return lineNames
	case !st.units:
		return lineUnits
	default:
		return lineData
	}
}

// parseConstant splits a "key = value" line. Files written by older
// simulator builds omit the spaces around "=", so the bare form is the
// fallback.
func parseConstant(line string) model.Constant {
	parts := strings.SplitN(line, " = ", 2)
	if len(parts) < 2 {
		parts = strings.SplitN(line, "=", 2)
	}
	return model.Constant{
		Key:   strings.TrimSpace(parts[0]),
		Value: strings.TrimSpace(parts[1]),
	}
}

// parseFactors expands a "factors = a=b;c=d" line into its constants.
// Segments without an "=" cannot be parsed and are returned as Skipped.
func parseFactors(line string, lineNo int) ([]model.Constant, []Skipped) {
	rest := line[strings.Index(line, factorsMarker)+len(factorsMarker):]

	var constants []model.Constant
	var skipped []Skipped
	for _, seg := range strings.Split(rest, ";") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		kv := strings.SplitN(seg, "=", 2)
		if len(kv) < 2 {
			skipped = append(skipped, Skipped{Line: lineNo, Segment: seg})
			continue
		}
		constants = append(constants, model.Constant{
			Key:   strings.TrimSpace(kv[0]),
			Value: strings.TrimSpace(kv[1]),
		})
	}
	return constants, skipped
}

// firstDuplicate returns the first name that appears twice, or "".
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

// parseHeader consumes the header region of src. It returns the parsed
// Header and, when the region ended because a data line was scanned, that
// line (already consumed from src) so the body reader can start with it.
func parseHeader(src *reader.Reader) (Header, string, bool, error) {
	var h Header
	var st scanState
	sawAny := false

	for src.Scan() {
		sawAny = true
		line := src.Text()

		switch classify(line, st) {
		case lineBlank:
			// skipped

		case lineFactors:
			constants, skipped := parseFactors(line, src.Line())
			h.Constants = append(h.Constants, constants...)
			h.Skipped = append(h.Skipped, skipped...)

		case lineConstant:
			h.Constants = append(h.Constants, parseConstant(line))

		case lineNames:
			h.Columns = strings.Fields(line)
			if dup := firstDuplicate(h.Columns); dup != "" {
				return h, "", false, fmt.Errorf("%s:%d: column %q: %w",
					src.Name(), src.Line(), dup, ErrDuplicateColumn)
			}
			st.names = true

		case lineUnits:
			h.Units = strings.Fields(line)
			if len(h.Units) != len(h.Columns) {
				return h, "", false, fmt.Errorf("%s:%d: %d units for %d columns: %w",
					src.Name(), src.Line(), len(h.Units), len(h.Columns), ErrUnitsMismatch)
			}
			st.units = true

		case lineData:
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
	case !st.names:
		return h, "", false, fmt.Errorf("%s: %w", src.Name(), ErrNoHeader)
	case !st.units:
		return h, "", false, fmt.Errorf("%s: missing units line for %d columns: %w",
			src.Name(), len(h.Columns), ErrUnitsMismatch)
	}

	// Header-only file: valid, zero data rows.
	return h, "", false, nil
}
