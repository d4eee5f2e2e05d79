package rewrite

import (
	"fmt"

	"github.com/recera/condex/pkg/vexml"
)

// conditionAttr is matched exactly: case-sensitive, no trimming.
const conditionAttr = "condition"

// condition returns the expression wrapped by the If element's condition
// attribute. Every attribute node is examined explicitly; the first
// occurrence wins. The attribute value must be an expression container;
// the expression's type is not validated here, that is the host compiler's
// job after rewriting.
func condition(el *vexml.Element) (vexml.Node, error) {
	for _, attr := range el.Opening.Attrs {
		if attr.Name != conditionAttr {
			continue
		}
		container, ok := attr.Value.(*vexml.ExprContainer)
		if !ok {
			kind := "no value"
			if attr.Value != nil {
				kind = attr.Value.Kind().String()
			}
			return nil, &Error{Msg: fmt.Sprintf("'condition' property must be an expression container, got %s", kind)}
		}
		return container.Expr, nil
	}
	return nil, &Error{Msg: "Missing 'condition' property"}
}
