package rewrite

import (
	"fmt"
	"strings"

	"github.com/recera/condex/pkg/vexml"
)

// Kinds allowed as branch-body children. Anything else (a comment, a stray
// marker) is a structural error.
var allowedBodyKinds = map[vexml.Kind]bool{
	vexml.KindText:               true,
	vexml.KindExprContainer:      true,
	vexml.KindElement:            true,
	vexml.KindSelfClosingElement: true,
	vexml.KindFragment:           true,
}

// bodyChildren returns the validated semantic children of a markup parent.
// The parent must decompose into the three-part shape the parser produces
// (opening marker, node list, closing marker), and every body entry must be
// a recognized branch-body kind. All offending kinds are reported together.
func bodyChildren(parent vexml.Node) ([]vexml.Node, error) {
	raw := parent.RawChildren()
	if len(raw) != 3 {
		return nil, &Error{Msg: fmt.Sprintf("%s decomposes into %d parts, expected 3", parentName(parent), len(raw))}
	}

	list, ok := raw[1].(*vexml.NodeList)
	if !ok {
		return nil, &Error{Msg: fmt.Sprintf("%s body is not a node list, got %s", parentName(parent), raw[1].Kind())}
	}

	var offending []string
	for _, c := range list.Nodes {
		if !allowedBodyKinds[c.Kind()] {
			offending = append(offending, c.Kind().String())
		}
	}
	if len(offending) > 0 {
		return nil, &Error{Msg: fmt.Sprintf("unsupported child kinds in %s: %s", parentName(parent), strings.Join(offending, ", "))}
	}

	return list.Nodes, nil
}

// parentName names a markup parent for error messages: <Tag /> for
// elements, "fragment" for fragments.
func parentName(parent vexml.Node) string {
	if el, ok := parent.(*vexml.Element); ok {
		return fmt.Sprintf("<%s />", el.Name())
	}
	return `"fragment"`
}
