package rewrite

import "github.com/recera/condex/pkg/vexml"

// whenTrue wraps the If element's body in a fragment. The fragment's
// opening marker records the If element as its origin so source mapping
// can point back at the construct the fragment replaced.
func whenTrue(el *vexml.Element) (vexml.Node, error) {
	body, err := bodyChildren(el)
	if err != nil {
		return nil, err
	}
	return vexml.NewFragment(el, body), nil
}

// whenFalse builds the false branch: the body of a matched Else sibling
// wrapped in an origin-linked fragment, or a null literal when there is no
// Else. Only whitespace may sit between the If and its Else; the first
// other sibling ends the search without error.
func whenFalse(el *vexml.Element) (vexml.Node, error) {
	var elseBody []vexml.Node

	if parent := el.Parent(); parent != nil && isMarkupParent(parent) {
		siblings, err := bodyChildren(parent)
		if err != nil {
			return nil, err
		}

		idx := -1
		for i, s := range siblings {
			if s == vexml.Node(el) {
				idx = i
				break
			}
		}
		if idx == -1 {
			return nil, &Error{Msg: "If's parent does not contain it"}
		}

		for i := idx + 1; i < len(siblings); i++ {
			s := siblings[i]
			if isEmptyText(s) {
				continue
			}
			if isElse(s) {
				elseBody, err = bodyChildren(s)
				if err != nil {
					return nil, err
				}
			}
			break
		}
	}

	if len(elseBody) == 0 {
		return vexml.NewNullLit(), nil
	}
	return vexml.NewFragment(el, elseBody), nil
}
