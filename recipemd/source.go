package recipemd

import (
	"regexp"
	"sort"
	"strings"

	"github.com/yuin/goldmark/ast"
)

// source recovers verbatim substrings of the original document. The parser
// slices whole source lines instead of re-rendering AST nodes, so the
// author's inline formatting (emphasis markers, escapes, link syntax)
// survives untouched in titles, descriptions, names and instructions.
type source struct {
	data   []byte
	lines  []string // line contents without terminators
	starts []int    // byte offset of each line start
}

// closingFence matches the closing line of a fenced code block, which
// goldmark does not include in the block's line segments.
var closingFence = regexp.MustCompile("^ {0,3}(`{3,}|~{3,})\\s*$")

func newSource(data []byte) *source {
	s := &source{data: data}
	start := 0
	for i, b := range data {
		if b == '\n' {
			s.lines = append(s.lines, strings.TrimSuffix(string(data[start:i]), "\r"))
			s.starts = append(s.starts, start)
			start = i + 1
		}
	}
	if start < len(data) {
		s.lines = append(s.lines, string(data[start:]))
		s.starts = append(s.starts, start)
	}
	return s
}

// lineAt returns the index of the line containing the given byte offset.
func (s *source) lineAt(offset int) int {
	i := sort.Search(len(s.starts), func(i int) bool { return s.starts[i] > offset })
	return i - 1
}

// sliceLines returns the verbatim text of the inclusive line range,
// clamped to the document.
func (s *source) sliceLines(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end >= len(s.lines) {
		end = len(s.lines) - 1
	}
	if start > end {
		return ""
	}
	return strings.Join(s.lines[start:end+1], "\n")
}

// blockText concatenates the raw line segments of a block node. For a
// paragraph this is its source text with inline markup intact.
func (s *source) blockText(n ast.Node) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(s.data))
	}
	return b.String()
}

// nodeSpan reports the inclusive line range covered by a node and its
// descendants. ok is false when the node carries no source segments at all
// (e.g. a thematic break).
func (s *source) nodeSpan(n ast.Node) (first, last int, ok bool) {
	first, last = -1, -1
	record := func(start, stop int) {
		if start >= stop {
			return
		}
		sl := s.lineAt(start)
		el := s.lineAt(stop - 1)
		if first == -1 || sl < first {
			first = sl
		}
		if el > last {
			last = el
		}
	}

	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if node.Type() == ast.TypeInline {
			if t, isText := node.(*ast.Text); isText {
				record(t.Segment.Start, t.Segment.Stop)
			}
			return ast.WalkContinue, nil
		}
		lines := node.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			record(seg.Start, seg.Stop)
		}
		switch b := node.(type) {
		case *ast.FencedCodeBlock:
			if b.Info != nil {
				record(b.Info.Segment.Start, b.Info.Segment.Stop)
			}
			// The closing fence is not part of Lines().
			if last >= 0 && last+1 < len(s.lines) && closingFence.MatchString(s.lines[last+1]) {
				last++
			}
		case *ast.HTMLBlock:
			if b.HasClosure() {
				record(b.ClosureLine.Start, b.ClosureLine.Stop)
			}
		}
		return ast.WalkContinue, nil
	})

	return first, last, first != -1
}

// spanOf is nodeSpan over a run of sibling blocks.
func (s *source) spanOf(nodes []ast.Node) (first, last int, ok bool) {
	first, last = -1, -1
	for _, n := range nodes {
		f, l, nodeOK := s.nodeSpan(n)
		if !nodeOK {
			continue
		}
		if first == -1 || f < first {
			first = f
		}
		if l > last {
			last = l
		}
	}
	return first, last, first != -1
}

// spanText returns the verbatim whole-line text covered by a run of
// consecutive block nodes, or "" if none of them carry source segments.
func (s *source) spanText(nodes []ast.Node) string {
	first, last, ok := s.spanOf(nodes)
	if !ok {
		return ""
	}
	return s.sliceLines(first, last)
}
