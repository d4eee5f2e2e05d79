// Package rewrite turns <If condition={expr}>…</If> / <Else>…</Else>
// markup pairs into ternary conditional expressions. The pass is a single
// depth-first reconstruction of the tree: every visit returns the original
// node, a fresh replacement, or nothing at all.
package rewrite

import (
	"strings"

	"github.com/recera/condex/pkg/vexml"
)

// Tags recognized as control constructs. Classification is by tag name, so
// a user-authored element that happens to be called If or Else is
// indistinguishable from the control construct. That ambiguity is accepted;
// there is no namespace to disambiguate with.
const (
	ifTag   = "If"
	elseTag = "Else"
)

var controlTags = map[string]bool{
	ifTag:   true,
	elseTag: true,
}

// IsControlTag reports whether name is one of the recognized control tags.
func IsControlTag(name string) bool {
	return controlTags[name]
}

func isIf(n vexml.Node) bool {
	el, ok := n.(*vexml.Element)
	return ok && el.Name() == ifTag
}

func isElse(n vexml.Node) bool {
	el, ok := n.(*vexml.Element)
	return ok && el.Name() == elseTag
}

func isEmptyText(n vexml.Node) bool {
	t, ok := n.(*vexml.Text)
	return ok && strings.TrimSpace(t.Value) == ""
}

func isMarkupParent(n vexml.Node) bool {
	switch n.Kind() {
	case vexml.KindElement, vexml.KindFragment:
		return true
	}
	return false
}
