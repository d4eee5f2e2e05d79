package rewrite

import "github.com/recera/condex/pkg/vexml"

// MarkerModule is the library's own import. Templates import it so editors
// can resolve the If/Else names; the rewrite strips it from output by exact
// module-name match, however it was aliased.
const MarkerModule = "github.com/recera/condex/components"

// Rewriter is a per-file transform context. One instance per file; it
// carries no cross-file state.
type Rewriter struct {
	// File names the source file in enriched error messages.
	File string

	// MarkerModule overrides the import stripped from output. Defaults to
	// MarkerModule when New is used.
	MarkerModule string
}

// New creates a rewriter for one source file.
func New(file string) *Rewriter {
	return &Rewriter{File: file, MarkerModule: MarkerModule}
}

// Rewrite returns a new document, structurally isomorphic to the input
// except that If/Else subtrees are replaced by conditional expressions and
// the marker import is removed. On error no output is usable; the input
// tree itself is never mutated.
func (r *Rewriter) Rewrite(doc *vexml.Document) (*vexml.Document, error) {
	out, err := r.visit(doc)
	if err != nil {
		return nil, err
	}
	return out.(*vexml.Document), nil
}

// visit rewrites one node. A nil result deletes the node from its parent.
// Any error raised below is annotated here, once, with the file and the
// source of the node being visited.
func (r *Rewriter) visit(n vexml.Node) (out vexml.Node, err error) {
	defer func() {
		if err != nil {
			err = r.enrich(err, n)
		}
	}()

	switch {
	case n.Kind() == vexml.KindImport:
		if n.(*vexml.Import).Module == r.MarkerModule {
			return nil, nil
		}
		return n, nil

	case isIf(n):
		el := n.(*vexml.Element)
		cond, err := condition(el)
		if err != nil {
			return nil, err
		}
		trueBranch, err := whenTrue(el)
		if err != nil {
			return nil, err
		}
		falseBranch, err := whenFalse(el)
		if err != nil {
			return nil, err
		}
		repl := vexml.NewExprContainer(vexml.NewCondExpr(cond, trueBranch, falseBranch))
		// Re-enter the synthesized subtree so nested If/Else inside either
		// branch are rewritten by this same pass.
		return r.visit(repl)

	case isElse(n):
		// A matched Else was consumed when its If was processed; an
		// unmatched one was already rejected by validateElses. Either way
		// it vanishes here, unless it has no markup context at all.
		if parent := n.Parent(); parent != nil && isMarkupParent(parent) {
			return nil, nil
		}
		return nil, &Error{Msg: "Else is used as a top-level node and has no associated If condition"}

	case isMarkupParent(n):
		if err := validateElses(n); err != nil {
			return nil, err
		}
		return vexml.MapChildren(n, r.visit)
	}

	return vexml.MapChildren(n, r.visit)
}
