package recipemd

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gtext "github.com/yuin/goldmark/text"
)

// md is the shared tokenizer. goldmark instances are stateless and safe for
// concurrent use; all per-parse state lives in a local cursor.
var md = goldmark.New()

// Parse parses a RecipeMD document into a Recipe. The grammar is strict:
// level-1 title, optional description, optional tags (*...*) and yields
// (**...**) paragraphs, a divider, the ingredient section, and optionally a
// second divider followed by free-form instructions. Any violation aborts
// the whole parse with one of the typed errors from this package.
func Parse(input string) (*Recipe, error) {
	src := newSource([]byte(input))
	doc := md.Parser().Parse(gtext.NewReader(src.data))

	cur := cursor{src: src}
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		cur.blocks = append(cur.blocks, n)
	}
	return cur.parseRecipe()
}

// cursor walks the document-level block nodes. It is stack-allocated per
// Parse call so concurrent parses never share state.
type cursor struct {
	src    *source
	blocks []ast.Node
	pos    int
}

func (c *cursor) peek() ast.Node {
	if c.pos < len(c.blocks) {
		return c.blocks[c.pos]
	}
	return nil
}

func (c *cursor) next() ast.Node {
	n := c.peek()
	if n != nil {
		c.pos++
	}
	return n
}

func kindName(n ast.Node) string {
	if n == nil {
		return "nothing"
	}
	return n.Kind().String()
}

func (c *cursor) parseRecipe() (*Recipe, error) {
	r := &Recipe{}

	title, err := c.parseTitle()
	if err != nil {
		return nil, err
	}
	r.Title = title

	r.Description = c.parseDescription()

	if err := c.parseTagsAndYields(r); err != nil {
		return nil, err
	}

	if n := c.peek(); n == nil || n.Kind() != ast.KindThematicBreak {
		return nil, &MissingDividerError{Before: "ingredient list", Got: kindName(n)}
	}
	c.next()

	if err := c.parseIngredients(&r.IngredientList); err != nil {
		return nil, err
	}

	if n := c.peek(); n != nil {
		if n.Kind() != ast.KindThematicBreak {
			return nil, &MissingDividerError{Before: "instructions", Got: kindName(n)}
		}
		c.next()
	}

	r.Instructions = c.src.spanText(c.remaining())
	return r, nil
}

func (c *cursor) parseTitle() (string, error) {
	n := c.peek()
	h, ok := n.(*ast.Heading)
	if !ok {
		return "", &MissingTitleError{Got: kindName(n)}
	}
	if h.Level != 1 {
		return "", &MissingTitleError{Got: fmt.Sprintf("level %d heading", h.Level)}
	}
	c.next()
	return strings.TrimSpace(c.src.blockText(h)), nil
}

// parseDescription consumes blocks up to the first divider, tags paragraph
// or yields paragraph and returns them verbatim.
func (c *cursor) parseDescription() string {
	var consumed []ast.Node
	for {
		n := c.peek()
		if n == nil || n.Kind() == ast.KindThematicBreak || c.peekEmphParagraph() != nil {
			break
		}
		consumed = append(consumed, c.next())
	}
	return c.src.spanText(consumed)
}

// emphParagraph is a paragraph whose sole inline content is a single
// emphasis (tags) or strong (yields) span.
type emphParagraph struct {
	strong  bool
	content string
}

// peekEmphParagraph inspects the next block without consuming it.
func (c *cursor) peekEmphParagraph() *emphParagraph {
	p, ok := c.peek().(*ast.Paragraph)
	if !ok {
		return nil
	}

	node := p.FirstChild()
	for node != nil && isBlankText(node, c.src.data) {
		node = node.NextSibling()
	}
	emph, ok := node.(*ast.Emphasis)
	if !ok {
		return nil
	}
	for node = node.NextSibling(); node != nil; node = node.NextSibling() {
		if !isBlankText(node, c.src.data) {
			return nil
		}
	}

	// The span covers the whole paragraph, so its verbatim content is the
	// raw paragraph text minus the markers.
	raw := strings.TrimSpace(c.src.blockText(p))
	if len(raw) < 2*emph.Level {
		return nil
	}
	return &emphParagraph{
		strong:  emph.Level >= 2,
		content: raw[emph.Level : len(raw)-emph.Level],
	}
}

func (c *cursor) parseTagsAndYields(r *Recipe) error {
	tagsSeen, yieldsSeen := false, false
	for ep := c.peekEmphParagraph(); ep != nil; ep = c.peekEmphParagraph() {
		if ep.strong {
			if yieldsSeen {
				return &DuplicateYieldsError{}
			}
			yieldsSeen = true
			for _, piece := range splitList(ep.content) {
				if a := ParseAmount(strings.TrimSpace(piece)); a != nil {
					r.Yields = append(r.Yields, *a)
				}
			}
		} else {
			if tagsSeen {
				return &DuplicateTagsError{}
			}
			tagsSeen = true
			for _, piece := range splitList(ep.content) {
				r.Tags = append(r.Tags, strings.TrimSpace(piece))
			}
		}
		c.next()
	}
	return nil
}

// splitList splits a tag or yield list on commas, except commas enclosed by
// digits on both sides so decimal commas ("1,5 l") survive. Go's regexp has
// no lookaround, hence the manual scan.
func splitList(s string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] != ',' {
			continue
		}
		digitBefore := i > 0 && isDigit(s[i-1])
		digitAfter := i+1 < len(s) && isDigit(s[i+1])
		if digitBefore && digitAfter {
			continue
		}
		parts = append(parts, s[start:i])
		start = i + 1
	}
	return append(parts, s[start:])
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// parseIngredients alternates between heading-introduced groups and flat
// lists until the ingredient section ends.
func (c *cursor) parseIngredients(list *IngredientList) error {
	for {
		switch c.peek().(type) {
		case *ast.Heading:
			if err := c.parseGroups(&list.Groups, 0); err != nil {
				return err
			}
		case *ast.List:
			if err := c.parseLists(&list.Ingredients); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// parseGroups consumes headings deeper than parentLevel, each opening a
// group that owns the immediately following lists and any deeper headings.
// Control returns when a heading at or above parentLevel appears.
func (c *cursor) parseGroups(groups *[]IngredientGroup, parentLevel int) error {
	for {
		h, ok := c.peek().(*ast.Heading)
		if !ok || h.Level <= parentLevel {
			return nil
		}
		c.next()

		group := IngredientGroup{Title: strings.TrimSpace(c.src.blockText(h))}
		if _, isList := c.peek().(*ast.List); isList {
			if err := c.parseLists(&group.Ingredients); err != nil {
				return err
			}
		}
		if err := c.parseGroups(&group.Groups, h.Level); err != nil {
			return err
		}
		*groups = append(*groups, group)
	}
}

// parseLists consumes consecutive list blocks, one ingredient per item.
func (c *cursor) parseLists(ingredients *[]Ingredient) error {
	for {
		list, ok := c.peek().(*ast.List)
		if !ok {
			return nil
		}
		c.next()
		for item := list.FirstChild(); item != nil; item = item.NextSibling() {
			ing, err := c.parseIngredient(item)
			if err != nil {
				return err
			}
			*ingredients = append(*ingredients, ing)
		}
	}
}

// parseIngredient parses one list item. A leading emphasis span in the first
// paragraph is the amount; a first paragraph that contains nothing but a
// single link (and no further blocks follow) names a linked ingredient;
// otherwise the remaining paragraph text plus any continuation blocks form
// the name.
func (c *cursor) parseIngredient(item ast.Node) (Ingredient, error) {
	var (
		amount *Amount
		name   string
		link   string
	)

	var firstBlock ast.Node
	if fc := item.FirstChild(); fc != nil &&
		(fc.Kind() == ast.KindParagraph || fc.Kind() == ast.KindTextBlock) {
		firstBlock = fc
	}

	if firstBlock != nil {
		rest := firstBlock.FirstChild()
		if emph, ok := rest.(*ast.Emphasis); ok && emph.Level == 1 {
			if raw, ok := c.inlineSource(emph); ok {
				amount = ParseAmount(raw)
			}
			name = c.textAfter(firstBlock, emph)
			rest = emph.NextSibling()
		} else {
			name = strings.TrimRight(c.src.blockText(firstBlock), "\r\n")
		}

		// Two-phase link rule: scan for a lone wrapping link first, then
		// decide, so partial matches never half-apply.
		canHaveLink := firstBlock.NextSibling() == nil
		dest, text, hasLink := c.wrappingLink(rest)
		if canHaveLink && hasLink {
			name = text
			link = dest
		}
	}

	// Continuation blocks join the name separated by a blank line.
	contFirst := item.FirstChild()
	if firstBlock != nil {
		contFirst = firstBlock.NextSibling()
	}
	if contFirst != nil {
		startLine := -1
		if firstBlock != nil {
			if _, end, ok := c.src.nodeSpan(firstBlock); ok {
				startLine = end + 1
			}
		}
		var blocks []ast.Node
		for n := contFirst; n != nil; n = n.NextSibling() {
			blocks = append(blocks, n)
		}
		if first, last, ok := c.src.spanOf(blocks); ok {
			if startLine < 0 {
				startLine = first
			}
			name += "\n" + c.src.sliceLines(startLine, last)
		}
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return Ingredient{}, &MissingIngredientNameError{}
	}
	return Ingredient{Name: name, Amount: amount, Link: link}, nil
}

// wrappingLink reports whether the inline nodes starting at n consist of
// nothing but whitespace and exactly one link, returning its destination
// and verbatim text.
func (c *cursor) wrappingLink(n ast.Node) (dest, text string, ok bool) {
	for n != nil && isBlankText(n, c.src.data) {
		n = n.NextSibling()
	}
	l, isLink := n.(*ast.Link)
	if !isLink {
		return "", "", false
	}
	for n = n.NextSibling(); n != nil; n = n.NextSibling() {
		if !isBlankText(n, c.src.data) {
			return "", "", false
		}
	}
	text, _ = c.inlineSource(l)
	return string(l.Destination), text, true
}

// inlineSource returns the verbatim source spanned by an inline subtree.
func (c *cursor) inlineSource(n ast.Node) (string, bool) {
	start, stop, ok := inlineSpan(n)
	if !ok {
		return "", false
	}
	return string(c.src.data[start:stop]), true
}

// textAfter returns the raw text of a block after the closing marker of a
// leading emphasis span.
func (c *cursor) textAfter(block ast.Node, emph *ast.Emphasis) string {
	lines := block.Lines()
	if lines.Len() == 0 {
		return ""
	}
	end := lines.At(lines.Len() - 1).Stop

	_, stop, ok := inlineSpan(emph)
	if !ok {
		return ""
	}
	stop += emph.Level // closing marker
	if stop > end {
		stop = end
	}
	return strings.TrimRight(string(c.src.data[stop:end]), "\r\n")
}

// inlineSpan finds the byte range covered by the text segments of an inline
// subtree.
func inlineSpan(n ast.Node) (start, stop int, ok bool) {
	start, stop = -1, -1
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, isText := node.(*ast.Text); isText && t.Segment.Len() > 0 {
			if start == -1 || t.Segment.Start < start {
				start = t.Segment.Start
			}
			if t.Segment.Stop > stop {
				stop = t.Segment.Stop
			}
		}
		return ast.WalkContinue, nil
	})
	return start, stop, start != -1
}

// isBlankText reports whether an inline node is a text node that is empty
// or all whitespace.
func isBlankText(n ast.Node, src []byte) bool {
	t, ok := n.(*ast.Text)
	if !ok {
		return false
	}
	return strings.TrimSpace(string(t.Segment.Value(src))) == ""
}

// remaining consumes and returns all blocks left on the cursor.
func (c *cursor) remaining() []ast.Node {
	var nodes []ast.Node
	for c.peek() != nil {
		nodes = append(nodes, c.next())
	}
	return nodes
}
