package config

// LintOptions is the structured result of parsing the test-mdsyntax flags.
type LintOptions struct {
	// ResourcePaths are roots searched recursively for *.md (--dscresourcespath)
	ResourcePaths []string

	// RootPaths are roots whose top-level *.md files are linted (--rootpath)
	RootPaths []string

	// SettingsPath is the lint rule-settings file (--settingspath)
	SettingsPath string
}

// ResolveSettingsPath returns the settings path to load.
// An explicit value is returned verbatim; it is never validated here.
func (o LintOptions) ResolveSettingsPath(cfg *Config) string {
	if o.SettingsPath != "" {
		return o.SettingsPath
	}
	if cfg != nil && cfg.SettingsPath != "" {
		return cfg.SettingsPath
	}
	return DefaultSettingsPath
}

// Empty reports whether no input roots were given
func (o LintOptions) Empty() bool {
	return len(o.ResourcePaths) == 0 && len(o.RootPaths) == 0
}
