package vexml

import (
	"fmt"
	"unicode"
)

// Parser is a recursive descent parser for VEX markup files.
type Parser struct {
	input    string
	pos      int
	line     int
	col      int
	filename string
}

// NewParser creates a parser for one source file.
func NewParser(filename, input string) *Parser {
	return &Parser{
		input:    input,
		pos:      0,
		line:     1,
		col:      1,
		filename: filename,
	}
}

// Parse parses the entire file into a document tree.
func (p *Parser) Parse() (*Document, error) {
	doc := &Document{}
	doc.pos = Pos{Offset: 0, Line: 1, Col: 1}
	doc.src = p.input

	nodes, err := p.parseNodes(true)
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.input) {
		return nil, p.error("unexpected closing tag")
	}

	doc.Nodes = nodes
	for _, n := range nodes {
		setParent(n, doc)
	}
	return doc, nil
}

// parseNodes parses a sequence of sibling nodes. It stops at end of input
// or at a closing tag belonging to the enclosing construct.
func (p *Parser) parseNodes(topLevel bool) ([]Node, error) {
	var nodes []Node

	for p.pos < len(p.input) {
		if topLevel && p.col == 1 && p.peek("import ") {
			node, err := p.parseImport()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
		} else if p.peek("</") {
			// Closing tag for the parent element or fragment.
			break
		} else if p.peek("<!--") {
			node, err := p.parseComment()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
		} else if p.peek("<") {
			node, err := p.parseMarkup()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
		} else if p.peek("{") {
			node, err := p.parseExprContainer()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
		} else {
			node := p.parseText(topLevel)
			if node != nil {
				nodes = append(nodes, node)
			}
		}
	}

	return nodes, nil
}

// parseImport parses a top-level `import "path"` line.
func (p *Parser) parseImport() (*Import, error) {
	start := p.mark()

	if !p.consume("import") {
		return nil, p.error("expected import")
	}
	p.skipSpaces()

	if !p.consume("\"") {
		return nil, p.error("expected quoted module path")
	}
	module := p.parseUntil("\"")
	if !p.consume("\"") {
		return nil, p.error("unterminated module path")
	}

	// Swallow the rest of the line.
	for p.pos < len(p.input) && p.input[p.pos] != '\n' {
		p.advance()
	}
	if p.pos < len(p.input) {
		p.advance()
	}

	node := &Import{Module: module}
	p.finish(&node.base, start)
	return node, nil
}

// parseMarkup parses an element, a self-closing element, or a fragment.
func (p *Parser) parseMarkup() (Node, error) {
	start := p.mark()

	if !p.consume("<") {
		return nil, p.error("expected <")
	}

	// Fragment: <> ... </>
	if p.consume(">") {
		opening := &OpeningFragment{}
		opening.pos = start
		opening.src = "<>"

		children, err := p.parseNodes(false)
		if err != nil {
			return nil, err
		}

		closeStart := p.mark()
		if !p.consume("</>") {
			return nil, p.error("expected </>")
		}
		closing := &ClosingFragment{}
		closing.pos = closeStart
		closing.src = "</>"

		return p.assembleFragment(start, opening, children, closing), nil
	}

	tagName := p.parseTagName()
	if tagName == "" {
		return nil, p.error("expected tag name")
	}

	attrs, err := p.parseAttributes()
	if err != nil {
		return nil, err
	}

	p.skipWhitespace()
	if p.consume("/>") {
		node := &SelfClosingElement{Name: tagName, Attrs: attrs}
		p.finish(&node.base, start)
		for _, a := range attrs {
			a.parent = node
		}
		return node, nil
	}

	if !p.consume(">") {
		return nil, p.error("expected >")
	}

	opening := &OpeningTag{Name: tagName, Attrs: attrs}
	opening.pos = start
	opening.src = p.input[start.Offset:p.pos]
	for _, a := range attrs {
		a.parent = opening
	}

	children, err := p.parseNodes(false)
	if err != nil {
		return nil, err
	}

	closeStart := p.mark()
	if !p.consume("</") {
		return nil, p.error(fmt.Sprintf("expected closing tag for <%s>", tagName))
	}
	closingName := p.parseTagName()
	if closingName != tagName {
		return nil, p.error(fmt.Sprintf("mismatched tags: <%s> and </%s>", tagName, closingName))
	}
	if !p.consume(">") {
		return nil, p.error("expected >")
	}
	closing := &ClosingTag{Name: closingName}
	closing.pos = closeStart
	closing.src = p.input[closeStart.Offset:p.pos]

	node := &Element{Opening: opening, Body: p.newList(children), Closing: closing}
	p.finish(&node.base, start)
	opening.parent = node
	node.Body.parent = node
	closing.parent = node
	for _, c := range children {
		setParent(c, node)
	}
	return node, nil
}

func (p *Parser) assembleFragment(start Pos, opening *OpeningFragment, children []Node, closing *ClosingFragment) *Fragment {
	node := &Fragment{Opening: opening, Body: p.newList(children), Closing: closing}
	p.finish(&node.base, start)
	opening.parent = node
	node.Body.parent = node
	closing.parent = node
	for _, c := range children {
		setParent(c, node)
	}
	return node
}

func (p *Parser) newList(children []Node) *NodeList {
	list := &NodeList{Nodes: children}
	if len(children) > 0 {
		list.pos = children[0].Pos()
		first := children[0].Pos().Offset
		last := first
		if b := baseOf(children[len(children)-1]); b != nil {
			last = b.pos.Offset + len(b.src)
		}
		list.src = p.input[first:last]
	}
	return list
}

// parseAttributes parses the attribute list of an opening tag.
func (p *Parser) parseAttributes() ([]*Attribute, error) {
	var attrs []*Attribute

	for {
		p.skipWhitespace()

		if p.peek(">") || p.peek("/>") || p.pos >= len(p.input) {
			break
		}

		start := p.mark()
		name := p.parseAttributeName()
		if name == "" {
			return nil, p.error("expected attribute name")
		}

		attr := &Attribute{Name: name}
		if p.consume("=") {
			if p.peek("{") {
				value, err := p.parseExprContainer()
				if err != nil {
					return nil, err
				}
				attr.Value = value
			} else if p.consume("\"") {
				valueStart := p.mark()
				content := p.parseUntil("\"")
				if !p.consume("\"") {
					return nil, p.error("unterminated attribute value")
				}
				text := &Text{Value: content}
				text.pos = valueStart
				text.src = content
				attr.Value = text
			} else {
				return nil, p.error("expected attribute value")
			}
		}

		p.finish(&attr.base, start)
		if attr.Value != nil {
			setParent(attr.Value, attr)
		}
		attrs = append(attrs, attr)
	}

	return attrs, nil
}

// parseExprContainer parses a brace-delimited embedded expression,
// balancing nested braces and skipping over string literals.
func (p *Parser) parseExprContainer() (*ExprContainer, error) {
	start := p.mark()

	if !p.consume("{") {
		return nil, p.error("expected {")
	}

	innerStart := p.mark()
	depth := 1
	for p.pos < len(p.input) {
		ch := p.input[p.pos]
		switch ch {
		case '"', '\'', '`':
			if err := p.skipString(ch); err != nil {
				return nil, err
			}
			continue
		case '{':
			depth++
		case '}':
			depth--
		}
		if depth == 0 {
			break
		}
		p.advance()
	}
	if depth != 0 {
		return nil, p.error("unterminated expression")
	}

	code := p.input[innerStart.Offset:p.pos]
	p.consume("}")

	expr := &Expr{Code: code}
	expr.pos = innerStart
	expr.src = code

	node := &ExprContainer{Expr: expr}
	p.finish(&node.base, start)
	expr.parent = node
	return node, nil
}

func (p *Parser) skipString(quote byte) error {
	p.advance() // opening quote
	for p.pos < len(p.input) {
		ch := p.input[p.pos]
		if ch == '\\' && quote != '`' {
			p.advance()
			if p.pos < len(p.input) {
				p.advance()
			}
			continue
		}
		p.advance()
		if ch == quote {
			return nil
		}
	}
	return p.error("unterminated string in expression")
}

// parseComment parses an HTML-style comment.
func (p *Parser) parseComment() (*Comment, error) {
	start := p.mark()

	p.consume("<!--")
	content := p.parseUntil("-->")
	if !p.consume("-->") {
		return nil, p.error("unterminated comment")
	}

	node := &Comment{Value: content}
	p.finish(&node.base, start)
	return node, nil
}

// parseText parses plain text until the next markup construct.
func (p *Parser) parseText(topLevel bool) *Text {
	start := p.mark()

	for p.pos < len(p.input) {
		if p.peek("<") || p.peek("{") {
			break
		}
		if topLevel && p.col == 1 && p.peek("import ") {
			break
		}
		p.advance()
	}

	if p.pos == start.Offset {
		return nil
	}
	node := &Text{Value: p.input[start.Offset:p.pos]}
	p.finish(&node.base, start)
	return node
}

// Helper methods

func (p *Parser) mark() Pos {
	return Pos{Offset: p.pos, Line: p.line, Col: p.col}
}

func (p *Parser) finish(b *base, start Pos) {
	b.pos = start
	b.src = p.input[start.Offset:p.pos]
}

func (p *Parser) peek(s string) bool {
	if p.pos+len(s) > len(p.input) {
		return false
	}
	return p.input[p.pos:p.pos+len(s)] == s
}

func (p *Parser) consume(s string) bool {
	if p.peek(s) {
		for i := 0; i < len(s); i++ {
			p.advance()
		}
		return true
	}
	return false
}

func (p *Parser) advance() {
	if p.pos < len(p.input) {
		if p.input[p.pos] == '\n' {
			p.line++
			p.col = 1
		} else {
			p.col++
		}
		p.pos++
	}
}

func (p *Parser) skipWhitespace() {
	for p.pos < len(p.input) && unicode.IsSpace(rune(p.input[p.pos])) {
		p.advance()
	}
}

func (p *Parser) skipSpaces() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.advance()
	}
}

func (p *Parser) parseUntil(delimiter string) string {
	start := p.pos
	for p.pos < len(p.input) {
		if p.peek(delimiter) {
			return p.input[start:p.pos]
		}
		p.advance()
	}
	return p.input[start:p.pos]
}

func (p *Parser) parseTagName() string {
	start := p.pos
	for p.pos < len(p.input) {
		ch := rune(p.input[p.pos])
		if !unicode.IsLetter(ch) && !unicode.IsDigit(ch) && ch != '-' {
			break
		}
		p.advance()
	}
	return p.input[start:p.pos]
}

func (p *Parser) parseAttributeName() string {
	start := p.pos
	for p.pos < len(p.input) {
		ch := rune(p.input[p.pos])
		if !unicode.IsLetter(ch) && !unicode.IsDigit(ch) && ch != '-' && ch != ':' {
			break
		}
		p.advance()
	}
	return p.input[start:p.pos]
}

func (p *Parser) error(msg string) error {
	return fmt.Errorf("%s:%d:%d: %s", p.filename, p.line, p.col, msg)
}

// ParseFile is a convenience wrapper for parsing a named source string.
func ParseFile(filename, source string) (*Document, error) {
	return NewParser(filename, source).Parse()
}
