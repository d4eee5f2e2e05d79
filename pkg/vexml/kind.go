package vexml

// Kind identifies the variant of a syntax node.
type Kind int

const (
	KindDocument Kind = iota
	KindText
	KindElement
	KindSelfClosingElement
	KindFragment
	KindOpeningTag
	KindClosingTag
	KindOpeningFragment
	KindClosingFragment
	KindNodeList
	KindAttribute
	KindExprContainer
	KindExpr
	KindCondExpr
	KindNullLit
	KindImport
	KindComment
)

var kindNames = map[Kind]string{
	KindDocument:           "document",
	KindText:               "text",
	KindElement:            "element",
	KindSelfClosingElement: "self-closing element",
	KindFragment:           "fragment",
	KindOpeningTag:         "opening tag",
	KindClosingTag:         "closing tag",
	KindOpeningFragment:    "opening fragment",
	KindClosingFragment:    "closing fragment",
	KindNodeList:           "node list",
	KindAttribute:          "attribute",
	KindExprContainer:      "expression container",
	KindExpr:               "expression",
	KindCondExpr:           "conditional expression",
	KindNullLit:            "null literal",
	KindImport:             "import",
	KindComment:            "comment",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}
