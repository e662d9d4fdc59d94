package harvest

import (
	"fmt"
	"strings"
)

// Warning describes a non-fatal issue hit while loading, such as a
// duplicate constant key or a skipped empty file. Loading succeeded but the
// result may not be what the file's author intended.
type Warning struct {
	// File is the path or label of the affected source, when known.
	File string

	// Line is the 1-based line number, or zero when the warning is not
	// tied to a line.
	Line int

	// Message describes the issue.
	Message string
}

// String formats the warning as file:line: message, dropping the parts that
// are not set.
func (w Warning) String() string {
	switch {
	case w.File != "" && w.Line > 0:
		return fmt.Sprintf("%s:%d: %s", w.File, w.Line, w.Message)
	case w.File != "":
		return fmt.Sprintf("%s: %s", w.File, w.Message)
	default:
		return w.Message
	}
}

// FormatWarnings joins warnings into a newline-separated string for
// logging.
//
// Example:
//
//	table, warnings, err := harvest.Dir("results").Table()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:\n" + harvest.FormatWarnings(warnings))
//	}
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}

	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
