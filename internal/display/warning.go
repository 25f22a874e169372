// Package display renders user-facing messages for dsckit commands.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related files (optional)
	Suggestion string   // Action to take (optional)
}

// Render formats the warning as plain text.
func (w Warning) Render() string {
	var b strings.Builder

	b.WriteString("Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Files) > 0 {
		if len(w.Files) == 1 {
			b.WriteString("    Affected file:\n")
		} else {
			b.WriteString("    Affected files:\n")
		}
		for i, file := range w.Files {
			fmt.Fprintf(&b, "      %d. %s\n", i+1, file)
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	return b.String()
}

// Display writes the warning in yellow. Colors follow fatih/color's
// terminal detection, so redirected output stays plain.
func (w Warning) Display(out io.Writer) {
	color.New(color.FgYellow).Fprint(out, w.Render())
}

// WarnNoInputs reports a lint invocation without any input roots.
func WarnNoInputs() Warning {
	return Warning{
		Title:      "No markdown inputs were given",
		Message:    "The report will be empty",
		Suggestion: "Pass --dscresourcespath <dir> and/or --rootpath <dir>",
	}
}

// WarnFailedFiles reports files whose lint evaluation failed.
func WarnFailedFiles(files []string) Warning {
	return Warning{
		Title:   fmt.Sprintf("%d file(s) could not be linted", len(files)),
		Message: "Their report entries are empty",
		Files:   files,
	}
}
