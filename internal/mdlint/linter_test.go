package mdlint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLint_Files(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.md")
	bad := filepath.Join(dir, "bad.md")
	require.NoError(t, os.WriteFile(good, []byte("# Good\n"), 0644))
	require.NoError(t, os.WriteFile(bad, []byte("Text \n"), 0644))

	result, err := Lint(Options{Files: []string{good, bad}, Config: DefaultSettings()})
	require.NoError(t, err)

	assert.Equal(t, []string{good, bad}, result.files)
	assert.Empty(t, result.violations[good])
	assert.Equal(t, 2, result.Count())

	expected := bad + ": 1: MD009/no-trailing-spaces Trailing spaces [Expected: 0 or 2; Actual: 1]\n" +
		bad + `: 1: MD041/first-line-heading/first-line-h1 First line in a file should be a top level heading [Context: "Text"]`
	assert.Equal(t, expected, result.String())
}

func TestLint_CleanResultStringIsEmpty(t *testing.T) {
	result, err := Lint(Options{sources: map[string]string{"a.md": "# A\n"}})
	require.NoError(t, err)

	assert.Equal(t, "", result.String())
	assert.Equal(t, 0, result.Count())
}

func TestLint_MissingFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.md")
	require.NoError(t, os.WriteFile(good, []byte("# Good\n"), 0644))

	result, err := Lint(Options{Files: []string{good, filepath.Join(dir, "missing.md")}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
	assert.Equal(t, []string{good}, result.files)
}

func TestLint_SourcesSortedByName(t *testing.T) {
	result, err := Lint(Options{sources: map[string]string{
		"b.md": "# B",
		"a.md": "# A",
	}})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.md", "b.md"}, result.files)
	assert.Equal(t,
		"a.md: 1: MD047/single-trailing-newline Files should end with a single newline character\n"+
			"b.md: 1: MD047/single-trailing-newline Files should end with a single newline character",
		result.String())
}

func TestLinter_CustomRules(t *testing.T) {
	always := NewRule([]string{"X001", "always"}, "Always fires", []string{"custom"},
		func(doc *Document, _ Params) []Violation {
			return []Violation{{Line: 1, Detail: doc.Path}}
		})

	linter := New(always)
	require.Len(t, linter.rules, 1)

	result, err := linter.Lint(Options{sources: map[string]string{"x.md": "anything"}})
	require.NoError(t, err)
	assert.Equal(t, "x.md: 1: X001/always Always fires [x.md]", result.String())

	disabled, err := ParseSettings([]byte(`{"custom": false}`))
	require.NoError(t, err)
	result, err = linter.Lint(Options{sources: map[string]string{"x.md": "anything"}, Config: disabled})
	require.NoError(t, err)
	assert.Equal(t, "", result.String())
}

func TestViolationOrdering(t *testing.T) {
	// MD009 and MD041 on line 1, MD047 on line 2: sorted by line then rule ID.
	result, err := Lint(Options{sources: map[string]string{"d.md": "Text \nend"}})
	require.NoError(t, err)

	found := result.violations["d.md"]
	require.Len(t, found, 3)
	assert.Equal(t, "MD009", found[0].RuleID())
	assert.Equal(t, "MD041", found[1].RuleID())
	assert.Equal(t, "MD047", found[2].RuleID())
	assert.Equal(t, 2, found[2].Line)
}
