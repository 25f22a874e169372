package mdlint

import (
	"sort"
	"strconv"
	"strings"
)

// Result holds the violations found per file, in lint order. Each file's
// violations are sorted by line then rule ID.
type Result struct {
	files      []string
	violations map[string][]Violation
}

func newResult() Result {
	return Result{violations: make(map[string][]Violation)}
}

func (r *Result) add(file string, found []Violation) {
	if _, seen := r.violations[file]; !seen {
		r.files = append(r.files, file)
	}
	sort.SliceStable(found, func(i, j int) bool {
		if found[i].Line != found[j].Line {
			return found[i].Line < found[j].Line
		}
		return found[i].RuleID() < found[j].RuleID()
	})
	r.violations[file] = append(r.violations[file], found...)
}

// Count returns the total number of findings.
func (r Result) Count() int {
	total := 0
	for _, v := range r.violations {
		total += len(v)
	}
	return total
}

// String renders every finding, one per line, joined with "\n".
// A clean result renders as the empty string.
func (r Result) String() string {
	lines := make([]string, 0, r.Count())
	for _, file := range r.files {
		for _, v := range r.violations[file] {
			lines = append(lines, v.String(file))
		}
	}
	return strings.Join(lines, "\n")
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
