package rewrite

import (
	"errors"
	"fmt"

	"github.com/recera/condex/pkg/vexml"
)

// Error is a fatal transform error. File and Node are filled in exactly
// once, by the visit step enclosing the point of detection, so every
// failure carries a textual anchor without its classification changing as
// it propagates.
type Error struct {
	Msg  string
	File string
	Node string
}

func (e *Error) Error() string {
	if e.File == "" && e.Node == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s\n  file: %s\n  node: %s", e.Msg, e.File, e.Node)
}

// enrich annotates err with the file and the source text of the node being
// visited. Errors that already carry context pass through unchanged.
func (r *Rewriter) enrich(err error, n vexml.Node) error {
	var terr *Error
	if errors.As(err, &terr) {
		if terr.File != "" || terr.Node != "" {
			return err
		}
		terr.File = r.File
		terr.Node = vexml.SourceText(n)
		return terr
	}
	return &Error{Msg: err.Error(), File: r.File, Node: vexml.SourceText(n)}
}
