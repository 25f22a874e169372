package mdlint

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// defaultKey is the settings key toggling every rule.
const defaultKey = "default"

// Params holds the parameters configured for a single rule.
type Params map[string]any

// Int returns the integer parameter key, or def when absent or not numeric.
func (p Params) Int(key string, def int) int {
	switch v := p[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}

// Bool returns the boolean parameter key, or def when absent.
func (p Params) Bool(key string, def bool) bool {
	if v, ok := p[key].(bool); ok {
		return v
	}
	return def
}

// String returns the string parameter key, or def when absent.
func (p Params) String(key string, def string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return def
}

type ruleSetting struct {
	enabled bool
	params  Params
}

// Settings is a parsed rule-settings document.
// The zero value enables every rule with default parameters.
type Settings struct {
	defaultSet     bool
	defaultEnabled bool
	entries        map[string]ruleSetting // keyed by lower-cased name
}

// DefaultSettings returns settings that enable every rule.
func DefaultSettings() Settings {
	return Settings{}
}

// LoadSettings reads and parses the settings document at path.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read lint settings %s: %w", path, err)
	}

	settings, err := ParseSettings(data)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to parse lint settings %s: %w", path, err)
	}
	return settings, nil
}

// ParseSettings parses a JSON or YAML settings document.
// An empty document yields DefaultSettings.
func ParseSettings(data []byte) (Settings, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Settings{}, err
	}

	settings := Settings{entries: make(map[string]ruleSetting, len(raw))}
	for key, value := range raw {
		name := strings.ToLower(key)

		if name == defaultKey {
			enabled, ok := value.(bool)
			if !ok {
				return Settings{}, fmt.Errorf("%q must be a boolean, got %T", key, value)
			}
			settings.defaultSet = true
			settings.defaultEnabled = enabled
			continue
		}

		switch v := value.(type) {
		case bool:
			settings.entries[name] = ruleSetting{enabled: v}
		case map[string]any:
			settings.entries[name] = ruleSetting{enabled: true, params: Params(v)}
		case nil:
			settings.entries[name] = ruleSetting{enabled: false}
		default:
			return Settings{}, fmt.Errorf("setting %q must be a boolean or an object, got %T", key, value)
		}
	}
	return settings, nil
}

// lookupRule returns the setting for the rule's ID or one of its aliases.
func (s Settings) lookupRule(r Rule) (ruleSetting, bool) {
	for _, name := range r.Names() {
		if entry, ok := s.entries[strings.ToLower(name)]; ok {
			return entry, true
		}
	}
	return ruleSetting{}, false
}

// lookupTag returns the setting for the first of the rule's tags present.
func (s Settings) lookupTag(r Rule) (ruleSetting, bool) {
	for _, tag := range r.Tags() {
		if entry, ok := s.entries[strings.ToLower(tag)]; ok {
			return entry, true
		}
	}
	return ruleSetting{}, false
}

// Enabled reports whether r runs under these settings.
func (s Settings) Enabled(r Rule) bool {
	if entry, ok := s.lookupRule(r); ok {
		return entry.enabled
	}
	if entry, ok := s.lookupTag(r); ok {
		return entry.enabled
	}
	if s.defaultSet {
		return s.defaultEnabled
	}
	return true
}

// Params returns the parameters configured for r (never nil).
func (s Settings) Params(r Rule) Params {
	if entry, ok := s.lookupRule(r); ok && entry.params != nil {
		return entry.params
	}
	return Params{}
}
