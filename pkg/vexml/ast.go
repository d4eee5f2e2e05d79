package vexml

// Pos is a position in the source file.
type Pos struct {
	Offset int
	Line   int
	Col    int
}

// Node is the interface for all syntax nodes.
//
// RawChildren returns the structural children exactly as the parser built
// them: elements and fragments decompose into three parts (opening marker,
// node list, closing marker). Parent is a non-owning back-reference to the
// nearest semantic parent (element, fragment or document), used for
// navigation only.
type Node interface {
	Kind() Kind
	Parent() Node
	RawChildren() []Node
	Pos() Pos
}

type base struct {
	parent Node
	pos    Pos
	src    string
}

func (b *base) Parent() Node { return b.parent }
func (b *base) Pos() Pos     { return b.pos }

// Document is the root of a parsed template file.
type Document struct {
	base
	Nodes []Node
}

// Text is plain text content between markup constructs.
type Text struct {
	base
	Value string
}

// Comment is an HTML-style <!-- --> comment.
type Comment struct {
	base
	Value string
}

// Import is a top-level `import "path"` line in a template header.
type Import struct {
	base
	Module string
}

// Attribute is a name/value pair on an opening tag. Value is a *Text for
// quoted literals, an *ExprContainer for ={expr} values, or nil for the
// bare boolean shorthand.
type Attribute struct {
	base
	Name  string
	Value Node
}

// OpeningTag is the <name attrs> part of an element.
type OpeningTag struct {
	base
	Name  string
	Attrs []*Attribute
}

// ClosingTag is the </name> part of an element.
type ClosingTag struct {
	base
	Name string
}

// OpeningFragment is the <> marker of a fragment. Origin links a
// synthesized fragment back to the node it was derived from; it is nil for
// fragments that appear literally in the source.
type OpeningFragment struct {
	base
	Origin Node
}

// ClosingFragment is the </> marker of a fragment.
type ClosingFragment struct {
	base
}

// NodeList is an ordered sequence of sibling nodes.
type NodeList struct {
	base
	Nodes []Node
}

// Element is a markup element with an opening tag, a body and a closing tag.
type Element struct {
	base
	Opening *OpeningTag
	Body    *NodeList
	Closing *ClosingTag
}

// Name returns the element's tag name.
func (n *Element) Name() string { return n.Opening.Name }

// Fragment is a grouping construct with no tag of its own, written
// <>…</>. Synthesized fragments carry provenance on their opening marker.
type Fragment struct {
	base
	Opening *OpeningFragment
	Body    *NodeList
	Closing *ClosingFragment
}

// SelfClosingElement is a <name attrs /> element with no body.
type SelfClosingElement struct {
	base
	Name  string
	Attrs []*Attribute
}

// Expr is a raw embedded expression, stored as source text. Its meaning is
// deferred to the host compiler after rewriting.
type Expr struct {
	base
	Code string
}

// ExprContainer wraps an embedded expression within markup, either as an
// attribute value or as inline computed content.
type ExprContainer struct {
	base
	Expr Node
}

// CondExpr is a ternary conditional expression. The three sub-expressions
// are exclusively owned by it.
type CondExpr struct {
	base
	Cond      Node
	WhenTrue  Node
	WhenFalse Node
}

// NullLit is the canonical "no value" expression, printed as nil.
type NullLit struct {
	base
}

func (n *Document) Kind() Kind           { return KindDocument }
func (n *Text) Kind() Kind               { return KindText }
func (n *Comment) Kind() Kind            { return KindComment }
func (n *Import) Kind() Kind             { return KindImport }
func (n *Attribute) Kind() Kind          { return KindAttribute }
func (n *OpeningTag) Kind() Kind         { return KindOpeningTag }
func (n *ClosingTag) Kind() Kind         { return KindClosingTag }
func (n *OpeningFragment) Kind() Kind    { return KindOpeningFragment }
func (n *ClosingFragment) Kind() Kind    { return KindClosingFragment }
func (n *NodeList) Kind() Kind           { return KindNodeList }
func (n *Element) Kind() Kind            { return KindElement }
func (n *Fragment) Kind() Kind           { return KindFragment }
func (n *SelfClosingElement) Kind() Kind { return KindSelfClosingElement }
func (n *Expr) Kind() Kind               { return KindExpr }
func (n *ExprContainer) Kind() Kind      { return KindExprContainer }
func (n *CondExpr) Kind() Kind           { return KindCondExpr }
func (n *NullLit) Kind() Kind            { return KindNullLit }

func (n *Document) RawChildren() []Node { return n.Nodes }
func (n *Text) RawChildren() []Node     { return nil }
func (n *Comment) RawChildren() []Node  { return nil }
func (n *Import) RawChildren() []Node   { return nil }

func (n *Attribute) RawChildren() []Node {
	if n.Value == nil {
		return nil
	}
	return []Node{n.Value}
}

func (n *OpeningTag) RawChildren() []Node {
	children := make([]Node, len(n.Attrs))
	for i, a := range n.Attrs {
		children[i] = a
	}
	return children
}

func (n *ClosingTag) RawChildren() []Node      { return nil }
func (n *OpeningFragment) RawChildren() []Node { return nil }
func (n *ClosingFragment) RawChildren() []Node { return nil }
func (n *NodeList) RawChildren() []Node        { return n.Nodes }

func (n *Element) RawChildren() []Node {
	return []Node{n.Opening, n.Body, n.Closing}
}

func (n *Fragment) RawChildren() []Node {
	return []Node{n.Opening, n.Body, n.Closing}
}

func (n *SelfClosingElement) RawChildren() []Node {
	children := make([]Node, len(n.Attrs))
	for i, a := range n.Attrs {
		children[i] = a
	}
	return children
}

func (n *Expr) RawChildren() []Node          { return nil }
func (n *ExprContainer) RawChildren() []Node { return []Node{n.Expr} }

func (n *CondExpr) RawChildren() []Node {
	return []Node{n.Cond, n.WhenTrue, n.WhenFalse}
}

func (n *NullLit) RawChildren() []Node { return nil }

// SourceText returns the original source of a parsed node, or the printed
// form for nodes synthesized during rewriting.
func SourceText(n Node) string {
	if b := baseOf(n); b != nil && b.src != "" {
		return b.src
	}
	return Print(n)
}

func baseOf(n Node) *base {
	switch n := n.(type) {
	case *Document:
		return &n.base
	case *Text:
		return &n.base
	case *Comment:
		return &n.base
	case *Import:
		return &n.base
	case *Attribute:
		return &n.base
	case *OpeningTag:
		return &n.base
	case *ClosingTag:
		return &n.base
	case *OpeningFragment:
		return &n.base
	case *ClosingFragment:
		return &n.base
	case *NodeList:
		return &n.base
	case *Element:
		return &n.base
	case *Fragment:
		return &n.base
	case *SelfClosingElement:
		return &n.base
	case *Expr:
		return &n.base
	case *ExprContainer:
		return &n.base
	case *CondExpr:
		return &n.base
	case *NullLit:
		return &n.base
	}
	return nil
}

func setParent(n Node, parent Node) {
	if b := baseOf(n); b != nil {
		b.parent = parent
	}
}
