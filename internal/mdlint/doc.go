// Package mdlint evaluates markdown files against a configurable rule set and
// renders the findings in the markdownlint text format.
//
// # Settings
//
// Rule settings use the markdownlint configuration document:
//
//	{
//	    "default": true,
//	    "MD013": { "line_length": 120 },
//	    "no-hard-tabs": false,
//	    "whitespace": false
//	}
//
// "default" toggles every rule. A key may name a rule ID, a rule alias or a
// tag; rule keys take precedence over tag keys, which take precedence over
// "default". A rule set to an object is enabled with those parameters.
// JSON and YAML documents are both accepted.
//
// # Linting
//
//	settings, err := mdlint.LoadSettings("./.markdownlint.json")
//	if err != nil {
//	    return err
//	}
//	result, err := mdlint.Lint(mdlint.Options{
//	    Files:  []string{"README.md"},
//	    Config: settings,
//	})
//	fmt.Println(result.String())
//
// Result.String returns one line per violation:
//
//	README.md: 3: MD009/no-trailing-spaces Trailing spaces [Expected: 0 or 2; Actual: 1]
//
// and the empty string for clean input.
package mdlint
