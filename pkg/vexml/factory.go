package vexml

// Node factory for the rewrite pass. Synthesized nodes have no source text
// of their own; SourceText falls back to the printer for them.

// NewFragment builds a fragment wrapping children. origin is recorded on
// the opening marker as the node this fragment was derived from, so that
// downstream tooling can map the synthesized wrapper back to its source
// construct.
func NewFragment(origin Node, children []Node) *Fragment {
	fr := &Fragment{
		Opening: &OpeningFragment{Origin: origin},
		Body:    &NodeList{Nodes: children},
		Closing: &ClosingFragment{},
	}
	fr.Opening.parent = fr
	fr.Body.parent = fr
	fr.Closing.parent = fr
	for _, c := range children {
		setParent(c, fr)
	}
	return fr
}

// NewCondExpr builds a ternary conditional expression owning its three
// sub-expressions.
func NewCondExpr(cond, whenTrue, whenFalse Node) *CondExpr {
	ce := &CondExpr{Cond: cond, WhenTrue: whenTrue, WhenFalse: whenFalse}
	setParent(cond, ce)
	setParent(whenTrue, ce)
	setParent(whenFalse, ce)
	return ce
}

// NewExprContainer wraps an expression for embedding in markup.
func NewExprContainer(expr Node) *ExprContainer {
	ec := &ExprContainer{Expr: expr}
	setParent(expr, ec)
	return ec
}

// NewNullLit returns a fresh null literal expression.
func NewNullLit() *NullLit {
	return &NullLit{}
}

// MapChildren applies fn to each semantic child of n and rebuilds n when
// any child changed. A nil result from fn deletes the child (list contexts
// only). When every child maps to itself, n is returned untouched; the
// input tree is never mutated in place.
func MapChildren(n Node, fn func(Node) (Node, error)) (Node, error) {
	switch n := n.(type) {
	case *Document:
		nodes, changed, err := mapList(n.Nodes, fn)
		if err != nil {
			return nil, err
		}
		if !changed {
			return n, nil
		}
		doc := &Document{base: n.base, Nodes: nodes}
		for _, c := range nodes {
			setParent(c, doc)
		}
		return doc, nil

	case *Element:
		nodes, changed, err := mapList(n.Body.Nodes, fn)
		if err != nil {
			return nil, err
		}
		if !changed {
			return n, nil
		}
		// Markers are copied so the input element keeps its own parents.
		opening := *n.Opening
		closing := *n.Closing
		el := &Element{
			base:    n.base,
			Opening: &opening,
			Body:    &NodeList{base: n.Body.base, Nodes: nodes},
			Closing: &closing,
		}
		el.Opening.parent = el
		el.Body.parent = el
		el.Closing.parent = el
		for _, c := range nodes {
			setParent(c, el)
		}
		return el, nil

	case *Fragment:
		nodes, changed, err := mapList(n.Body.Nodes, fn)
		if err != nil {
			return nil, err
		}
		if !changed {
			return n, nil
		}
		opening := *n.Opening
		closing := *n.Closing
		fr := &Fragment{
			base:    n.base,
			Opening: &opening,
			Body:    &NodeList{base: n.Body.base, Nodes: nodes},
			Closing: &closing,
		}
		fr.Opening.parent = fr
		fr.Body.parent = fr
		fr.Closing.parent = fr
		for _, c := range nodes {
			setParent(c, fr)
		}
		return fr, nil

	case *ExprContainer:
		expr, err := fn(n.Expr)
		if err != nil {
			return nil, err
		}
		if expr == nil || expr == n.Expr {
			return n, nil
		}
		return NewExprContainer(expr), nil

	case *CondExpr:
		cond, err := fn(n.Cond)
		if err != nil {
			return nil, err
		}
		whenTrue, err := fn(n.WhenTrue)
		if err != nil {
			return nil, err
		}
		whenFalse, err := fn(n.WhenFalse)
		if err != nil {
			return nil, err
		}
		if cond == n.Cond && whenTrue == n.WhenTrue && whenFalse == n.WhenFalse {
			return n, nil
		}
		return NewCondExpr(cond, whenTrue, whenFalse), nil
	}

	// Leaf kinds and markers have no semantic children.
	return n, nil
}

func mapList(nodes []Node, fn func(Node) (Node, error)) ([]Node, bool, error) {
	out := make([]Node, 0, len(nodes))
	changed := false
	for _, c := range nodes {
		mapped, err := fn(c)
		if err != nil {
			return nil, false, err
		}
		if mapped == nil {
			changed = true
			continue
		}
		if mapped != c {
			changed = true
		}
		out = append(out, mapped)
	}
	return out, changed, nil
}
