package mdlint

import (
	"fmt"
	"os"
	"sort"

	"github.com/yuin/goldmark"
)

// Options describes one lint invocation.
type Options struct {
	// Files are paths read from disk and linted in order.
	Files []string
	// Config selects and parameterises rules.
	Config Settings

	// sources maps a name to in-memory content; linted after Files, by name.
	sources map[string]string
}

// Linter runs a rule set over markdown documents.
type Linter struct {
	markdown goldmark.Markdown
	rules    []Rule
}

// New creates a Linter with the given rules, or the built-in rules when none are given.
func New(rules ...Rule) *Linter {
	if len(rules) == 0 {
		rules = BuiltinRules()
	}
	return &Linter{
		markdown: goldmark.New(),
		rules:    rules,
	}
}

// Lint evaluates every input named in opts. A file that cannot be read stops
// the invocation; the result gathered so far is returned with the error.
func (l *Linter) Lint(opts Options) (Result, error) {
	result := newResult()

	for _, path := range opts.Files {
		content, err := os.ReadFile(path)
		if err != nil {
			return result, fmt.Errorf("failed to read %s: %w", path, err)
		}
		result.add(path, l.check(NewDocument(path, content, l.markdown), opts.Config))
	}

	names := make([]string, 0, len(opts.sources))
	for name := range opts.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		doc := NewDocument(name, []byte(opts.sources[name]), l.markdown)
		result.add(name, l.check(doc, opts.Config))
	}

	return result, nil
}

func (l *Linter) check(doc *Document, settings Settings) []Violation {
	var found []Violation
	for _, r := range l.rules {
		if !settings.Enabled(r) {
			continue
		}
		for _, v := range r.Check(doc, settings.Params(r)) {
			v.RuleNames = r.Names()
			v.Description = r.Description()
			found = append(found, v)
		}
	}
	return found
}

var defaultLinter = New()

// Lint evaluates opts with the built-in rule set.
func Lint(opts Options) (Result, error) {
	return defaultLinter.Lint(opts)
}
