package rewrite

import "github.com/recera/condex/pkg/vexml"

const orphanElseMsg = "Else has no matching If; only whitespace is allowed between them."

// validateElses confirms every Else child of parent has an If as its
// nearest non-whitespace preceding sibling. It runs on every markup parent
// the driver visits, before any of that parent's children are rewritten.
func validateElses(parent vexml.Node) error {
	children, err := bodyChildren(parent)
	if err != nil {
		return err
	}

	for i, c := range children {
		if !isElse(c) {
			continue
		}
		j := i - 1
		for j >= 0 && isEmptyText(children[j]) {
			j--
		}
		if j < 0 || !isIf(children[j]) {
			return &Error{Msg: orphanElseMsg}
		}
	}
	return nil
}
