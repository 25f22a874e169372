package mdlint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ruleByID(t *testing.T, id string) Rule {
	t.Helper()
	for _, r := range BuiltinRules() {
		if r.Names()[0] == id {
			return r
		}
	}
	t.Fatalf("rule %s not found", id)
	return nil
}

func TestParseSettings_Empty(t *testing.T) {
	settings, err := ParseSettings(nil)
	require.NoError(t, err)

	for _, r := range BuiltinRules() {
		assert.True(t, settings.Enabled(r), r.Names()[0])
	}
}

func TestParseSettings_DefaultFalse(t *testing.T) {
	settings, err := ParseSettings([]byte(`{"default": false, "MD013": true}`))
	require.NoError(t, err)

	assert.True(t, settings.Enabled(ruleByID(t, "MD013")))
	assert.False(t, settings.Enabled(ruleByID(t, "MD009")))
	assert.False(t, settings.Enabled(ruleByID(t, "MD041")))
}

func TestParseSettings_AliasesAndCase(t *testing.T) {
	settings, err := ParseSettings([]byte(`{"no-hard-tabs": false, "md047": false}`))
	require.NoError(t, err)

	assert.False(t, settings.Enabled(ruleByID(t, "MD010")))
	assert.False(t, settings.Enabled(ruleByID(t, "MD047")))
	assert.True(t, settings.Enabled(ruleByID(t, "MD009")))
}

func TestParseSettings_TagPrecedence(t *testing.T) {
	settings, err := ParseSettings([]byte(`{"whitespace": false, "MD009": true}`))
	require.NoError(t, err)

	assert.True(t, settings.Enabled(ruleByID(t, "MD009")), "rule key overrides tag")
	assert.False(t, settings.Enabled(ruleByID(t, "MD010")), "tag disables member rules")
	assert.True(t, settings.Enabled(ruleByID(t, "MD013")), "other rules follow default")
}

func TestParseSettings_ObjectEnablesWithParams(t *testing.T) {
	settings, err := ParseSettings([]byte(`{"default": false, "line-length": {"line_length": 120, "code_blocks": false}}`))
	require.NoError(t, err)

	md013 := ruleByID(t, "MD013")
	require.True(t, settings.Enabled(md013))

	params := settings.Params(md013)
	assert.Equal(t, 120, params.Int("line_length", 80))
	assert.False(t, params.Bool("code_blocks", true))
	assert.Equal(t, "fallback", params.String("missing", "fallback"))
}

func TestParseSettings_YAML(t *testing.T) {
	doc := `
default: true
MD013:
  line_length: 100
MD026:
  punctuation: ".!"
`
	settings, err := ParseSettings([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, 100, settings.Params(ruleByID(t, "MD013")).Int("line_length", 80))
	assert.Equal(t, ".!", settings.Params(ruleByID(t, "MD026")).String("punctuation", ""))
}

func TestParseSettings_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"default not bool", `{"default": "yes"}`},
		{"rule not bool or object", `{"MD013": 5}`},
		{"not a mapping", `[1, 2]`},
		{"malformed", `{"MD013": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSettings([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestParamsDefaults(t *testing.T) {
	rule := ruleByID(t, "MD013")
	params := DefaultSettings().Params(rule)

	assert.NotNil(t, params)
	assert.Equal(t, 80, params.Int("line_length", 80))
	assert.True(t, DefaultSettings().Enabled(rule))
}

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".markdownlint.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"default": false}`), 0644))

	settings, err := LoadSettings(path)
	require.NoError(t, err)
	assert.False(t, settings.Enabled(ruleByID(t, "MD001")))

	_, err = LoadSettings(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read lint settings")
}
