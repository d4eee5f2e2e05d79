package vexml

import "testing"

func TestPrint_SynthesizedNodes(t *testing.T) {
	// Build {cond ? <>yes</> : nil} directly from the factories.
	whenTrue := NewFragment(nil, []Node{&Text{Value: "yes"}})
	cond := &Expr{Code: "cond"}
	container := NewExprContainer(NewCondExpr(cond, whenTrue, NewNullLit()))

	want := "{cond ? <>yes</> : nil}"
	if got := Print(container); got != want {
		t.Errorf("Print() = %q, want %q", got, want)
	}
}

func TestPrint_AttributeForms(t *testing.T) {
	tests := []struct {
		name string
		attr *Attribute
		want string
	}{
		{
			name: "bare",
			attr: &Attribute{Name: "disabled"},
			want: "disabled",
		},
		{
			name: "quoted",
			attr: &Attribute{Name: "class", Value: &Text{Value: "box"}},
			want: `class="box"`,
		},
		{
			name: "expression",
			attr: &Attribute{Name: "condition", Value: NewExprContainer(&Expr{Code: "ok"})},
			want: "condition={ok}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Print(tt.attr); got != tt.want {
				t.Errorf("Print() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewFragment_Origin(t *testing.T) {
	origin := &SelfClosingElement{Name: "Marker"}
	frag := NewFragment(origin, []Node{&Text{Value: "x"}})

	if frag.Opening.Origin != Node(origin) {
		t.Error("fragment opening does not record its origin node")
	}
	for _, c := range frag.Body.Nodes {
		if c.Parent() != Node(frag) {
			t.Error("adopted child does not point back at the fragment")
		}
	}
}

func TestMapChildren_RebuildsWithoutMutating(t *testing.T) {
	doc, err := ParseFile("test.vex", "<div>a<span>b</span></div>")
	if err != nil {
		t.Fatalf("ParseFile() failed: %v", err)
	}

	// Replace every text node, delete every span.
	var visit func(Node) (Node, error)
	visit = func(n Node) (Node, error) {
		switch n := n.(type) {
		case *Text:
			return &Text{Value: n.Value + "!"}, nil
		case *Element:
			if n.Name() == "span" {
				return nil, nil
			}
		}
		return MapChildren(n, visit)
	}
	out, err := MapChildren(doc, visit)
	if err != nil {
		t.Fatalf("MapChildren() failed: %v", err)
	}

	if got, want := Print(out), "<div>a!</div>"; got != want {
		t.Errorf("rebuilt tree prints %q, want %q", got, want)
	}
	if got, want := Print(doc), "<div>a<span>b</span></div>"; got != want {
		t.Errorf("input tree was mutated: %q, want %q", got, want)
	}
}
