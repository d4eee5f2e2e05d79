// Package components declares the If and Else markers that templates
// import so editor tooling can resolve the names. The import is stripped
// by the rewrite pass; nothing in this package exists at runtime in
// compiled output.
package components

// Props carries the condition of an If marker.
type Props struct {
	Condition bool
}

// If marks a conditionally rendered subtree. It is rewritten at compile
// time and must never be called.
func If(Props) {
	panic("condex: If is a compile-time marker; run the rewrite pass")
}

// Else marks the false branch of the preceding If. It is rewritten at
// compile time and must never be called.
func Else() {
	panic("condex: Else is a compile-time marker; run the rewrite pass")
}
