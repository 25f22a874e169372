package mdlint

import "strings"

// Violation is a single rule finding.
type Violation struct {
	Line        int      // 1-based line number
	RuleNames   []string // rule ID followed by its aliases
	Description string   // rule description
	Detail      string   // optional detail, e.g. "Expected: 80; Actual: 95"
	Context     string   // optional source excerpt
}

// RuleID returns the primary rule identifier.
func (v Violation) RuleID() string {
	if len(v.RuleNames) == 0 {
		return ""
	}
	return v.RuleNames[0]
}

// String renders the violation for file in the markdownlint text format.
func (v Violation) String(file string) string {
	var sb strings.Builder
	sb.WriteString(file)
	sb.WriteString(": ")
	sb.WriteString(itoa(v.Line))
	sb.WriteString(": ")
	sb.WriteString(strings.Join(v.RuleNames, "/"))
	sb.WriteString(" ")
	sb.WriteString(v.Description)
	if v.Detail != "" {
		sb.WriteString(" [")
		sb.WriteString(v.Detail)
		sb.WriteString("]")
	}
	if v.Context != "" {
		sb.WriteString(` [Context: "`)
		sb.WriteString(v.Context)
		sb.WriteString(`"]`)
	}
	return sb.String()
}

// Rule is a single lint check.
type Rule interface {
	// Names returns the rule ID followed by its aliases.
	Names() []string
	// Description is the human-readable summary printed with each finding.
	Description() string
	// Tags group related rules so settings can toggle them together.
	Tags() []string
	// Check evaluates doc and returns findings with Line, Detail and Context set.
	Check(doc *Document, params Params) []Violation
}

// CheckFunc implements the evaluation part of a rule.
type CheckFunc func(doc *Document, params Params) []Violation

type rule struct {
	names       []string
	description string
	tags        []string
	check       CheckFunc
}

// NewRule builds a Rule from its metadata and check function.
func NewRule(names []string, description string, tags []string, check CheckFunc) Rule {
	return &rule{names: names, description: description, tags: tags, check: check}
}

func (r *rule) Names() []string     { return r.names }
func (r *rule) Description() string { return r.description }
func (r *rule) Tags() []string      { return r.tags }

func (r *rule) Check(doc *Document, params Params) []Violation {
	return r.check(doc, params)
}
