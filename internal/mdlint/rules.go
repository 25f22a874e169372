package mdlint

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var missingSpaceATXRegex = regexp.MustCompile(`^ {0,3}#{1,6}[^#\s]`)

const defaultPunctuation = ".,;:!。，；：！"

// BuiltinRules returns the rules evaluated by default, in ID order.
func BuiltinRules() []Rule {
	return []Rule{
		NewRule([]string{"MD001", "heading-increment"},
			"Heading levels should only increment by one level at a time",
			[]string{"headings"}, checkHeadingIncrement),
		NewRule([]string{"MD009", "no-trailing-spaces"},
			"Trailing spaces",
			[]string{"whitespace"}, checkTrailingSpaces),
		NewRule([]string{"MD010", "no-hard-tabs"},
			"Hard tabs",
			[]string{"whitespace", "hard_tab"}, checkHardTabs),
		NewRule([]string{"MD012", "no-multiple-blanks"},
			"Multiple consecutive blank lines",
			[]string{"whitespace", "blank_lines"}, checkMultipleBlanks),
		NewRule([]string{"MD013", "line-length"},
			"Line length",
			[]string{"line_length"}, checkLineLength),
		NewRule([]string{"MD018", "no-missing-space-atx"},
			"No space after hash on atx style heading",
			[]string{"headings", "atx", "spaces"}, checkMissingSpaceATX),
		NewRule([]string{"MD022", "blanks-around-headings"},
			"Headings should be surrounded by blank lines",
			[]string{"headings", "blank_lines"}, checkBlanksAroundHeadings),
		NewRule([]string{"MD025", "single-title", "single-h1"},
			"Multiple top-level headings in the same document",
			[]string{"headings"}, checkSingleTitle),
		NewRule([]string{"MD026", "no-trailing-punctuation"},
			"Trailing punctuation in heading",
			[]string{"headings"}, checkTrailingPunctuation),
		NewRule([]string{"MD040", "fenced-code-language"},
			"Fenced code blocks should have a language specified",
			[]string{"code", "language"}, checkFencedCodeLanguage),
		NewRule([]string{"MD041", "first-line-heading", "first-line-h1"},
			"First line in a file should be a top level heading",
			[]string{"headings"}, checkFirstLineHeading),
		NewRule([]string{"MD047", "single-trailing-newline"},
			"Files should end with a single newline character",
			[]string{"blank_lines"}, checkSingleTrailingNewline),
	}
}

func checkHeadingIncrement(doc *Document, _ Params) []Violation {
	var found []Violation
	prev := 0
	for _, h := range doc.Headings() {
		if prev > 0 && h.Level > prev+1 {
			found = append(found, Violation{
				Line:   h.Line,
				Detail: fmt.Sprintf("Expected: h%d; Actual: h%d", prev+1, h.Level),
			})
		}
		prev = h.Level
	}
	return found
}

func checkTrailingSpaces(doc *Document, params Params) []Violation {
	brSpaces := params.Int("br_spaces", 2)
	if brSpaces < 2 {
		brSpaces = 0
	}

	var found []Violation
	for i, line := range doc.Lines {
		n := i + 1
		if doc.InCode(n) || doc.InFrontMatter(n) {
			continue
		}
		trimmed := strings.TrimRight(line, " ")
		trailing := len(line) - len(trimmed)
		if trailing == 0 {
			continue
		}
		if brSpaces > 0 && trailing == brSpaces && trimmed != "" {
			continue
		}

		detail := fmt.Sprintf("Expected: 0; Actual: %d", trailing)
		if brSpaces > 0 {
			detail = fmt.Sprintf("Expected: 0 or %d; Actual: %d", brSpaces, trailing)
		}
		found = append(found, Violation{Line: n, Detail: detail})
	}
	return found
}

func checkHardTabs(doc *Document, params Params) []Violation {
	includeCode := params.Bool("code_blocks", true)

	var found []Violation
	for i, line := range doc.Lines {
		n := i + 1
		if doc.InFrontMatter(n) || (!includeCode && doc.InCode(n)) {
			continue
		}
		if idx := strings.IndexByte(line, '\t'); idx >= 0 {
			found = append(found, Violation{
				Line:   n,
				Detail: fmt.Sprintf("Column: %d", utf8.RuneCountInString(line[:idx])+1),
			})
		}
	}
	return found
}

func checkMultipleBlanks(doc *Document, params Params) []Violation {
	maximum := params.Int("maximum", 1)
	if maximum < 0 {
		maximum = 1
	}

	var found []Violation
	count := 0
	for i := range doc.Lines {
		n := i + 1
		if doc.InCode(n) || doc.InFrontMatter(n) || !doc.IsBlank(n) {
			count = 0
			continue
		}
		count++
		if count > maximum {
			found = append(found, Violation{
				Line:   n,
				Detail: fmt.Sprintf("Expected: %d; Actual: %d", maximum, count),
			})
		}
	}
	return found
}

func checkLineLength(doc *Document, params Params) []Violation {
	limit := params.Int("line_length", 80)
	if limit < 0 {
		limit = 80
	}
	includeCode := params.Bool("code_blocks", true)
	includeHeadings := params.Bool("headings", true)
	strict := params.Bool("strict", false)

	headingLines := make(map[int]bool)
	for _, h := range doc.Headings() {
		for n := h.Line; n <= h.EndLine; n++ {
			headingLines[n] = true
		}
	}

	var found []Violation
	for i, line := range doc.Lines {
		n := i + 1
		if doc.InFrontMatter(n) || (!includeCode && doc.InCode(n)) {
			continue
		}
		if !includeHeadings && headingLines[n] {
			continue
		}

		length := utf8.RuneCountInString(line)
		if length <= limit {
			continue
		}
		// Without strict mode, lines whose overflow has no whitespace (long URLs) pass.
		if !strict && !strings.ContainsAny(string([]rune(line)[min(limit, length):]), " \t") {
			continue
		}
		found = append(found, Violation{
			Line:   n,
			Detail: fmt.Sprintf("Expected: %d; Actual: %d", limit, length),
		})
	}
	return found
}

func checkMissingSpaceATX(doc *Document, _ Params) []Violation {
	var found []Violation
	for i, line := range doc.Lines {
		n := i + 1
		if doc.InCode(n) || doc.InFrontMatter(n) {
			continue
		}
		if missingSpaceATXRegex.MatchString(line) && !strings.HasPrefix(strings.TrimSpace(line), "#!") {
			found = append(found, Violation{Line: n, Context: contextOf(line)})
		}
	}
	return found
}

func checkBlanksAroundHeadings(doc *Document, params Params) []Violation {
	above := params.Int("lines_above", 1)
	below := params.Int("lines_below", 1)
	last := doc.LastLine()

	var found []Violation
	for _, h := range doc.Headings() {
		firstContent := doc.frontEnd + 1
		if h.Line > firstContent {
			if got := countBlank(doc, h.Line-1, -1, above); got < above {
				found = append(found, Violation{
					Line:    h.Line,
					Detail:  fmt.Sprintf("Expected: %d; Actual: %d; Above", above, got),
					Context: contextOf(doc.Line(h.Line)),
				})
			}
		}
		if h.EndLine < last {
			if got := countBlank(doc, h.EndLine+1, 1, below); got < below {
				found = append(found, Violation{
					Line:    h.Line,
					Detail:  fmt.Sprintf("Expected: %d; Actual: %d; Below", below, got),
					Context: contextOf(doc.Line(h.Line)),
				})
			}
		}
	}
	return found
}

// countBlank counts blank lines starting at n and moving by step, up to limit.
func countBlank(doc *Document, n, step, limit int) int {
	count := 0
	for count < limit && n >= 1 && n <= len(doc.Lines) && doc.IsBlank(n) {
		count++
		n += step
	}
	return count
}

func checkSingleTitle(doc *Document, params Params) []Violation {
	level := params.Int("level", 1)

	var found []Violation
	seen := false
	for _, h := range doc.Headings() {
		if h.Level != level {
			continue
		}
		if seen {
			found = append(found, Violation{Line: h.Line, Context: contextOf(doc.Line(h.Line))})
		}
		seen = true
	}
	return found
}

func checkTrailingPunctuation(doc *Document, params Params) []Violation {
	punctuation := params.String("punctuation", defaultPunctuation)
	if punctuation == "" {
		return nil
	}

	var found []Violation
	for _, h := range doc.Headings() {
		last, _ := utf8.DecodeLastRuneInString(h.Text)
		if last == utf8.RuneError || !strings.ContainsRune(punctuation, last) {
			continue
		}
		found = append(found, Violation{
			Line:   h.Line,
			Detail: fmt.Sprintf("Punctuation: '%c'", last),
		})
	}
	return found
}

func checkFencedCodeLanguage(doc *Document, _ Params) []Violation {
	var found []Violation
	for _, f := range doc.Fences() {
		if f.Info == "" {
			found = append(found, Violation{
				Line:    f.Line,
				Context: contextOf(doc.Line(f.Line)),
			})
		}
	}
	return found
}

func checkFirstLineHeading(doc *Document, params Params) []Violation {
	level := params.Int("level", 1)

	first := 0
	for n := doc.frontEnd + 1; n <= len(doc.Lines); n++ {
		if !doc.IsBlank(n) {
			first = n
			break
		}
	}
	if first == 0 {
		return nil
	}

	headings := doc.Headings()
	if len(headings) > 0 && headings[0].Line == first && headings[0].Level == level {
		return nil
	}
	return []Violation{{Line: first, Context: contextOf(doc.Line(first))}}
}

func checkSingleTrailingNewline(doc *Document, _ Params) []Violation {
	if len(doc.Source) == 0 || doc.Source[len(doc.Source)-1] == '\n' {
		return nil
	}
	return []Violation{{Line: len(doc.Lines)}}
}

// contextOf trims a source line for the Context field, capped at 30 runes.
func contextOf(line string) string {
	trimmed := strings.TrimSpace(line)
	runes := []rune(trimmed)
	if len(runes) > 30 {
		return string(runes[:30]) + "..."
	}
	return trimmed
}
