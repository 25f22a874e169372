package mdlint

import (
	"bytes"
	"regexp"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var fenceRegex = regexp.MustCompile("^(\\s*)(`{3,}|~{3,})(.*)$")

// Heading is a heading found in the document AST.
type Heading struct {
	Level   int    // 1-6
	Line    int    // 1-based line of the heading text
	EndLine int    // last line the heading occupies (setext underline)
	Text    string // heading content without markers
	ATX     bool   // "#" style rather than setext underline
}

// Fence is the opening line of a fenced code block.
type Fence struct {
	Line int    // 1-based line of the opening fence
	Info string // info string after the fence marker, trimmed
}

// Document is a markdown file prepared for rule evaluation.
// Line numbers are 1-based throughout.
type Document struct {
	Path   string
	Source []byte   // content with CRLF normalised to LF
	Lines  []string // Source split on LF; a trailing newline yields a final empty line
	Root   ast.Node

	lineStarts []int
	codeLines  map[int]bool
	headings   []Heading
	fences     []Fence
	frontEnd   int // last line of front matter, 0 when absent
}

// NewDocument normalises source, parses it with md and indexes the result.
func NewDocument(path string, source []byte, md goldmark.Markdown) *Document {
	normalized := bytes.ReplaceAll(source, []byte("\r\n"), []byte("\n"))

	doc := &Document{
		Path:      path,
		Source:    normalized,
		Lines:     strings.Split(string(normalized), "\n"),
		codeLines: make(map[int]bool),
	}
	doc.indexLineStarts()
	doc.frontEnd = frontMatterEnd(doc.Lines)

	// Front matter is blanked rather than removed so AST offsets keep
	// mapping to the original line numbers.
	parseSource := normalized
	if doc.frontEnd > 0 {
		parseSource = blankLines(normalized, doc.lineStarts, doc.frontEnd)
	}

	doc.Root = md.Parser().Parse(text.NewReader(parseSource))
	doc.scanFences()
	doc.collectAST(parseSource)
	return doc
}

func (d *Document) indexLineStarts() {
	d.lineStarts = []int{0}
	for i, b := range d.Source {
		if b == '\n' {
			d.lineStarts = append(d.lineStarts, i+1)
		}
	}
}

// LineAt converts a byte offset in Source into a 1-based line number.
func (d *Document) LineAt(offset int) int {
	return sort.Search(len(d.lineStarts), func(i int) bool {
		return d.lineStarts[i] > offset
	})
}

// Line returns the text of a 1-based line, or "" when out of range.
func (d *Document) Line(n int) string {
	if n < 1 || n > len(d.Lines) {
		return ""
	}
	return d.Lines[n-1]
}

// LastLine is the number of the last line holding content. A trailing
// newline does not count as an extra line.
func (d *Document) LastLine() int {
	n := len(d.Lines)
	if n > 1 && d.Lines[n-1] == "" {
		return n - 1
	}
	return n
}

// InCode reports whether line n belongs to a fenced or indented code block,
// fence lines included.
func (d *Document) InCode(n int) bool {
	return d.codeLines[n]
}

// InFrontMatter reports whether line n is part of a leading front matter block.
func (d *Document) InFrontMatter(n int) bool {
	return n >= 1 && n <= d.frontEnd
}

// Headings returns every heading in document order. Headings without any
// text (a bare "#") carry no position in the AST and are not reported.
func (d *Document) Headings() []Heading {
	return d.headings
}

// Fences returns the opening line of every fenced code block.
func (d *Document) Fences() []Fence {
	return d.fences
}

// IsBlank reports whether line n is empty or whitespace only.
func (d *Document) IsBlank(n int) bool {
	return strings.TrimSpace(d.Line(n)) == ""
}

// scanFences walks the lines tracking fence state, marking fence and content
// lines as code.
func (d *Document) scanFences() {
	var marker string
	open := false

	for i, line := range d.Lines {
		n := i + 1
		if d.InFrontMatter(n) {
			continue
		}

		matches := fenceRegex.FindStringSubmatch(line)
		if !open {
			if matches == nil {
				continue
			}
			marker = matches[2]
			open = true
			d.codeLines[n] = true
			d.fences = append(d.fences, Fence{Line: n, Info: strings.TrimSpace(matches[3])})
			continue
		}

		d.codeLines[n] = true
		if matches != nil && matches[2][0] == marker[0] && len(matches[2]) >= len(marker) && strings.TrimSpace(matches[3]) == "" {
			open = false
		}
	}
}

// collectAST records headings and indented code block lines.
func (d *Document) collectAST(source []byte) {
	_ = ast.Walk(d.Root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			if node.Lines().Len() == 0 {
				return ast.WalkSkipChildren, nil
			}
			first := node.Lines().At(0)
			last := node.Lines().At(node.Lines().Len() - 1)
			line := d.LineAt(first.Start)
			endLine := d.LineAt(last.Start)

			atx := strings.HasPrefix(strings.TrimLeft(d.Line(line), " \t>"), "#")
			if !atx {
				endLine++ // underline
			}

			d.headings = append(d.headings, Heading{
				Level:   node.Level,
				Line:    line,
				EndLine: endLine,
				Text:    segmentsText(node.Lines(), source),
				ATX:     atx,
			})
			return ast.WalkSkipChildren, nil
		case *ast.CodeBlock:
			for i := 0; i < node.Lines().Len(); i++ {
				d.codeLines[d.LineAt(node.Lines().At(i).Start)] = true
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
}

// segmentsText joins the raw text of every segment with a space.
func segmentsText(lines *text.Segments, source []byte) string {
	parts := make([]string, 0, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		parts = append(parts, strings.TrimSpace(string(seg.Value(source))))
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// frontMatterEnd returns the line closing a leading "---" block, or 0.
func frontMatterEnd(lines []string) int {
	if len(lines) == 0 || strings.TrimRight(lines[0], " \t") != "---" {
		return 0
	}
	for i := 1; i < len(lines); i++ {
		trimmed := strings.TrimRight(lines[i], " \t")
		if trimmed == "---" || trimmed == "..." {
			return i + 1
		}
	}
	return 0
}

// blankLines returns a copy of source with lines 1..through emptied,
// keeping every newline in place.
func blankLines(source []byte, lineStarts []int, through int) []byte {
	out := make([]byte, len(source))
	copy(out, source)

	end := len(source)
	if through < len(lineStarts) {
		end = lineStarts[through]
	}
	for i := 0; i < end; i++ {
		if out[i] != '\n' {
			out[i] = ' '
		}
	}
	return out
}
