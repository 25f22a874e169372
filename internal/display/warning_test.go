package display

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestWarningRender(t *testing.T) {
	tests := []struct {
		name     string
		warning  Warning
		expected string
	}{
		{
			name:     "title only",
			warning:  Warning{Title: "Something happened"},
			expected: "Warning: Something happened\n",
		},
		{
			name: "single file",
			warning: Warning{
				Title: "t",
				Files: []string{"a.md"},
			},
			expected: "Warning: t\n    Affected file:\n      1. a.md\n",
		},
		{
			name: "all fields",
			warning: Warning{
				Title:      "t",
				Message:    "m",
				Files:      []string{"a.md", "b.md"},
				Suggestion: "s",
			},
			expected: "Warning: t\n    m\n    Affected files:\n      1. a.md\n      2. b.md\n    Suggestion:\n    s\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.warning.Render())
		})
	}
}

func TestWarningDisplay_NoColor(t *testing.T) {
	saved := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = saved }()

	var buf bytes.Buffer
	Warning{Title: "plain"}.Display(&buf)

	assert.Equal(t, "Warning: plain\n", buf.String())
}

func TestWarningFactories(t *testing.T) {
	assert.Contains(t, WarnNoInputs().Suggestion, "--dscresourcespath")

	w := WarnFailedFiles([]string{"x.md", "y.md"})
	assert.Equal(t, "2 file(s) could not be linted", w.Title)
	assert.Equal(t, []string{"x.md", "y.md"}, w.Files)
}
