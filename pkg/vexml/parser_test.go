package vexml

import (
	"strings"
	"testing"
)

func TestParser_Parse(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantErr bool
	}{
		{
			name:    "plain text",
			source:  "Hello World",
			wantErr: false,
		},
		{
			name:    "simple element",
			source:  "<div>Hello</div>",
			wantErr: false,
		},
		{
			name:    "nested elements",
			source:  "<div><span>a</span><span>b</span></div>",
			wantErr: false,
		},
		{
			name:    "self-closing element",
			source:  `<Avatar size="lg" />`,
			wantErr: false,
		},
		{
			name:    "fragment",
			source:  "<>one<span>two</span></>",
			wantErr: false,
		},
		{
			name:    "expression container",
			source:  "<div>{user.Name}</div>",
			wantErr: false,
		},
		{
			name:    "expression with nested braces",
			source:  "<div>{map[string]int{\"a\": 1}}</div>",
			wantErr: false,
		},
		{
			name:    "expression with brace in string",
			source:  "<div>{greet(\"}\")}</div>",
			wantErr: false,
		},
		{
			name: "import line",
			source: `import "github.com/recera/condex/components"
<div>ok</div>`,
			wantErr: false,
		},
		{
			name:    "comment",
			source:  "<div><!-- note --></div>",
			wantErr: false,
		},
		{
			name:    "attribute forms",
			source:  `<input type="text" disabled value={initial}>x</input>`,
			wantErr: false,
		},
		{
			name:    "mismatched tags",
			source:  "<div>oops</span>",
			wantErr: true,
		},
		{
			name:    "stray closing tag",
			source:  "hello</div>",
			wantErr: true,
		},
		{
			name:    "unterminated expression",
			source:  "<div>{user.Name</div>",
			wantErr: true,
		},
		{
			name:    "unterminated comment",
			source:  "<div><!-- note</div>",
			wantErr: true,
		},
		{
			name:    "unterminated attribute value",
			source:  `<div class="x>y</div>`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFile("test.vex", tt.source)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseFile() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParser_RoundTrip(t *testing.T) {
	// Parsed trees print back to their source text, modulo attribute
	// spacing normalization.
	sources := []string{
		"Hello World",
		"<div>Hello</div>",
		"<div><span>a</span>{count}<br /></div>",
		"<>one<span>two</span></>",
		"<div><!-- note --></div>",
		"import \"github.com/recera/condex/components\"\n<div>ok</div>",
		"<If condition={user.LoggedIn}>Welcome</If>",
	}

	for _, source := range sources {
		doc, err := ParseFile("test.vex", source)
		if err != nil {
			t.Fatalf("ParseFile(%q) failed: %v", source, err)
		}
		if got := Print(doc); got != source {
			t.Errorf("round trip mismatch:\n  source: %q\n  got:    %q", source, got)
		}
	}
}

func TestParser_ErrorPosition(t *testing.T) {
	_, err := ParseFile("page.vex", "<div>\n  {broken\n</div>")
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.HasPrefix(err.Error(), "page.vex:") {
		t.Errorf("error %q does not start with the file name", err)
	}
	if !strings.Contains(err.Error(), "unterminated expression") {
		t.Errorf("error %q missing cause", err)
	}
}

func TestParser_Structure(t *testing.T) {
	doc, err := ParseFile("test.vex", `<div class="box">{n}</div>`)
	if err != nil {
		t.Fatalf("ParseFile() failed: %v", err)
	}

	if len(doc.Nodes) != 1 {
		t.Fatalf("expected 1 top-level node, got %d", len(doc.Nodes))
	}
	el, ok := doc.Nodes[0].(*Element)
	if !ok {
		t.Fatalf("expected *Element, got %T", doc.Nodes[0])
	}
	if el.Name() != "div" {
		t.Errorf("element name = %q, want div", el.Name())
	}

	raw := el.RawChildren()
	if len(raw) != 3 {
		t.Fatalf("element decomposes into %d parts, want 3", len(raw))
	}
	if _, ok := raw[0].(*OpeningTag); !ok {
		t.Errorf("first part is %T, want *OpeningTag", raw[0])
	}
	body, ok := raw[1].(*NodeList)
	if !ok {
		t.Fatalf("second part is %T, want *NodeList", raw[1])
	}
	if _, ok := raw[2].(*ClosingTag); !ok {
		t.Errorf("third part is %T, want *ClosingTag", raw[2])
	}

	if len(body.Nodes) != 1 {
		t.Fatalf("body has %d nodes, want 1", len(body.Nodes))
	}
	container, ok := body.Nodes[0].(*ExprContainer)
	if !ok {
		t.Fatalf("body node is %T, want *ExprContainer", body.Nodes[0])
	}
	expr, ok := container.Expr.(*Expr)
	if !ok {
		t.Fatalf("container wraps %T, want *Expr", container.Expr)
	}
	if expr.Code != "n" {
		t.Errorf("expression code = %q, want n", expr.Code)
	}

	if len(el.Opening.Attrs) != 1 {
		t.Fatalf("expected 1 attribute, got %d", len(el.Opening.Attrs))
	}
	attr := el.Opening.Attrs[0]
	if attr.Name != "class" {
		t.Errorf("attribute name = %q, want class", attr.Name)
	}
	text, ok := attr.Value.(*Text)
	if !ok || text.Value != "box" {
		t.Errorf("attribute value = %#v, want text %q", attr.Value, "box")
	}
}

func TestParser_Parents(t *testing.T) {
	doc, err := ParseFile("test.vex", "<div><span>x</span></div>")
	if err != nil {
		t.Fatalf("ParseFile() failed: %v", err)
	}

	div := doc.Nodes[0].(*Element)
	if div.Parent() != Node(doc) {
		t.Error("top-level element's parent is not the document")
	}
	span := div.Body.Nodes[0].(*Element)
	if span.Parent() != Node(div) {
		t.Error("nested element's parent is not the enclosing element")
	}
}

func TestParser_ImportPosition(t *testing.T) {
	// import is only recognized at column 1 of top-level lines; elsewhere
	// it is plain text.
	doc, err := ParseFile("test.vex", "<div>import \"x\"</div>")
	if err != nil {
		t.Fatalf("ParseFile() failed: %v", err)
	}
	div := doc.Nodes[0].(*Element)
	if _, ok := div.Body.Nodes[0].(*Text); !ok {
		t.Errorf("indented import parsed as %T, want *Text", div.Body.Nodes[0])
	}

	doc, err = ParseFile("test.vex", "import \"a/b\"\n")
	if err != nil {
		t.Fatalf("ParseFile() failed: %v", err)
	}
	imp, ok := doc.Nodes[0].(*Import)
	if !ok {
		t.Fatalf("top-level import parsed as %T, want *Import", doc.Nodes[0])
	}
	if imp.Module != "a/b" {
		t.Errorf("import module = %q, want a/b", imp.Module)
	}
}
