package vexml

import (
	"fmt"
	"strings"
)

// Print renders a node back to VEX source text. Parsed nodes round-trip
// verbatim apart from normalized attribute spacing; synthesized nodes print
// in their canonical form (conditionals as {cond ? whenTrue : whenFalse},
// the null literal as nil).
func Print(n Node) string {
	var b strings.Builder
	printNode(&b, n)
	return b.String()
}

func printNode(b *strings.Builder, n Node) {
	switch n := n.(type) {
	case *Document:
		for _, c := range n.Nodes {
			printNode(b, c)
		}

	case *Text:
		b.WriteString(n.Value)

	case *Comment:
		b.WriteString("<!--")
		b.WriteString(n.Value)
		b.WriteString("-->")

	case *Import:
		fmt.Fprintf(b, "import %q\n", n.Module)

	case *Element:
		printNode(b, n.Opening)
		printNode(b, n.Body)
		printNode(b, n.Closing)

	case *Fragment:
		b.WriteString("<>")
		printNode(b, n.Body)
		b.WriteString("</>")

	case *SelfClosingElement:
		b.WriteString("<")
		b.WriteString(n.Name)
		printAttrs(b, n.Attrs)
		b.WriteString(" />")

	case *OpeningTag:
		b.WriteString("<")
		b.WriteString(n.Name)
		printAttrs(b, n.Attrs)
		b.WriteString(">")

	case *ClosingTag:
		b.WriteString("</")
		b.WriteString(n.Name)
		b.WriteString(">")

	case *NodeList:
		for _, c := range n.Nodes {
			printNode(b, c)
		}

	case *Attribute:
		b.WriteString(n.Name)
		switch v := n.Value.(type) {
		case nil:
		case *Text:
			fmt.Fprintf(b, "=%q", v.Value)
		default:
			b.WriteString("=")
			printNode(b, v)
		}

	case *ExprContainer:
		b.WriteString("{")
		printNode(b, n.Expr)
		b.WriteString("}")

	case *Expr:
		b.WriteString(n.Code)

	case *CondExpr:
		printNode(b, n.Cond)
		b.WriteString(" ? ")
		printNode(b, n.WhenTrue)
		b.WriteString(" : ")
		printNode(b, n.WhenFalse)

	case *NullLit:
		b.WriteString("nil")
	}
}

func printAttrs(b *strings.Builder, attrs []*Attribute) {
	for _, a := range attrs {
		b.WriteString(" ")
		printNode(b, a)
	}
}
