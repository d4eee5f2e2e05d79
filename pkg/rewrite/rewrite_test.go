package rewrite

import (
	"errors"
	"strings"
	"testing"

	"github.com/recera/condex/pkg/vexml"
)

func rewriteSource(t *testing.T, source string) (string, error) {
	t.Helper()
	doc, err := vexml.ParseFile("test.vex", source)
	if err != nil {
		t.Fatalf("ParseFile() failed: %v", err)
	}
	out, err := New("test.vex").Rewrite(doc)
	if err != nil {
		return "", err
	}
	return vexml.Print(out), nil
}

func TestRewrite(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		want    string
		wantErr string
	}{
		{
			name:   "if without else",
			source: "<div><If condition={show}>Hi</If></div>",
			want:   "<div>{show ? <>Hi</> : nil}</div>",
		},
		{
			name:   "if with else",
			source: "<div><If condition={ok}>A</If><Else>B</Else></div>",
			want:   "<div>{ok ? <>A</> : <>B</>}</div>",
		},
		{
			name:   "whitespace between if and else",
			source: "<div><If condition={ok}>A</If>\n  <Else>B</Else></div>",
			want:   "<div>{ok ? <>A</> : <>B</>}\n  </div>",
		},
		{
			name:   "multi-child branches",
			source: "<div><If condition={ok}><b>A</b>{x}</If><Else><i>B</i></Else></div>",
			want:   "<div>{ok ? <><b>A</b>{x}</> : <><i>B</i></>}</div>",
		},
		{
			name:   "empty else becomes nil",
			source: "<div><If condition={ok}>A</If><Else></Else></div>",
			want:   "<div>{ok ? <>A</> : nil}</div>",
		},
		{
			name:   "nested if",
			source: "<If condition={a}><If condition={b}>X</If></If>",
			want:   "{a ? <>{b ? <>X</> : nil}</> : nil}",
		},
		{
			name:   "if inside else branch",
			source: "<div><If condition={a}>A</If><Else><If condition={b}>B</If></Else></div>",
			want:   "<div>{a ? <>A</> : <>{b ? <>B</> : nil}</>}</div>",
		},
		{
			name:   "if inside fragment",
			source: "<><If condition={ok}>A</If></>",
			want:   "<>{ok ? <>A</> : nil}</>",
		},
		{
			name:   "complex condition expression",
			source: "<div><If condition={len(items) > 0 && !hidden}>list</If></div>",
			want:   "<div>{len(items) > 0 && !hidden ? <>list</> : nil}</div>",
		},
		{
			name: "marker import stripped",
			source: "import \"github.com/recera/condex/components\"\n" +
				"import \"example.com/other\"\n" +
				"<div><If condition={ok}>A</If></div>",
			want: "import \"example.com/other\"\n<div>{ok ? <>A</> : nil}</div>",
		},
		{
			name:   "self-closing If passes through",
			source: "<div><If /></div>",
			want:   "<div><If /></div>",
		},
		{
			name:   "unrelated markup untouched",
			source: "<main><h1>Title</h1>{body}</main>",
			want:   "<main><h1>Title</h1>{body}</main>",
		},
		{
			name:    "orphan else",
			source:  "<div><Else>B</Else></div>",
			wantErr: "Else has no matching If",
		},
		{
			name:    "orphan else after text",
			source:  "<div><If condition={ok}>A</If>x<Else>B</Else></div>",
			wantErr: "Else has no matching If",
		},
		{
			name:    "orphan else deeply nested",
			source:  "<div><section><span><Else>B</Else></span></section></div>",
			wantErr: "Else has no matching If",
		},
		{
			name:    "top-level else",
			source:  "<Else>B</Else>",
			wantErr: "Else is used as a top-level node",
		},
		{
			name:    "missing condition",
			source:  "<div><If>A</If></div>",
			wantErr: "Missing 'condition' property",
		},
		{
			name:    "condition as string",
			source:  `<div><If condition="yes">A</If></div>`,
			wantErr: "'condition' property must be an expression container, got text",
		},
		{
			name:    "condition without value",
			source:  "<div><If condition>A</If></div>",
			wantErr: "'condition' property must be an expression container, got no value",
		},
		{
			name:    "comment in if body",
			source:  "<div><If condition={ok}>A<!-- note --></If></div>",
			wantErr: "unsupported child kinds in <If />: comment",
		},
		{
			name:    "comment in else body",
			source:  "<div><If condition={ok}>A</If><Else><!-- x --></Else></div>",
			wantErr: "unsupported child kinds in <Else />: comment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rewriteSource(t, tt.source)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("Rewrite() succeeded with %q, want error containing %q", got, tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("Rewrite() error = %q, want substring %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Rewrite() failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Rewrite() =\n  %q\nwant\n  %q", got, tt.want)
			}
		})
	}
}

func TestRewrite_ErrorEnrichment(t *testing.T) {
	doc, err := vexml.ParseFile("page.vex", "<div><If>body</If></div>")
	if err != nil {
		t.Fatalf("ParseFile() failed: %v", err)
	}

	_, err = New("page.vex").Rewrite(doc)
	if err == nil {
		t.Fatal("expected rewrite error")
	}

	var terr *Error
	if !errors.As(err, &terr) {
		t.Fatalf("error is %T, want *Error", err)
	}
	if terr.File != "page.vex" {
		t.Errorf("File = %q, want page.vex", terr.File)
	}
	if terr.Node != "<If>body</If>" {
		t.Errorf("Node = %q, want the If element's source", terr.Node)
	}

	// The rendered message carries both anchors.
	msg := err.Error()
	if !strings.Contains(msg, "file: page.vex") || !strings.Contains(msg, "node: <If>body</If>") {
		t.Errorf("rendered error missing anchors: %q", msg)
	}
}

func TestRewrite_EnrichmentHappensOnce(t *testing.T) {
	// The innermost visit annotates; outer visits must not overwrite with
	// their own, larger, node source.
	doc, err := vexml.ParseFile("page.vex", "<main><div><If>x</If></div></main>")
	if err != nil {
		t.Fatalf("ParseFile() failed: %v", err)
	}

	_, err = New("page.vex").Rewrite(doc)
	var terr *Error
	if !errors.As(err, &terr) {
		t.Fatalf("error is %T, want *Error", err)
	}
	if terr.Node != "<If>x</If>" {
		t.Errorf("Node = %q, want just the offending If element", terr.Node)
	}
}

func TestRewrite_InputNotMutated(t *testing.T) {
	source := "<div><If condition={ok}>A</If><Else>B</Else></div>"
	doc, err := vexml.ParseFile("test.vex", source)
	if err != nil {
		t.Fatalf("ParseFile() failed: %v", err)
	}

	if _, err := New("test.vex").Rewrite(doc); err != nil {
		t.Fatalf("Rewrite() failed: %v", err)
	}
	if got := vexml.Print(doc); got != source {
		t.Errorf("input tree changed after rewrite:\n  %q\nwant\n  %q", got, source)
	}
}

func TestRewrite_SecondPassIsNoOp(t *testing.T) {
	first, err := rewriteSource(t, "<div><If condition={ok}>A</If><Else>B</Else></div>")
	if err != nil {
		t.Fatalf("first pass failed: %v", err)
	}
	second, err := rewriteSource(t, first)
	if err != nil {
		t.Fatalf("second pass failed: %v", err)
	}
	if second != first {
		t.Errorf("second pass changed output:\n  first:  %q\n  second: %q", first, second)
	}
}

func TestRewrite_Provenance(t *testing.T) {
	doc, err := vexml.ParseFile("test.vex", "<div><If condition={ok}>A</If><Else>B</Else></div>")
	if err != nil {
		t.Fatalf("ParseFile() failed: %v", err)
	}

	out, err := New("test.vex").Rewrite(doc)
	if err != nil {
		t.Fatalf("Rewrite() failed: %v", err)
	}

	div := out.Nodes[0].(*vexml.Element)
	container := div.Body.Nodes[0].(*vexml.ExprContainer)
	cond := container.Expr.(*vexml.CondExpr)

	for _, branch := range []vexml.Node{cond.WhenTrue, cond.WhenFalse} {
		frag, ok := branch.(*vexml.Fragment)
		if !ok {
			t.Fatalf("branch is %T, want *vexml.Fragment", branch)
		}
		origin, ok := frag.Opening.Origin.(*vexml.Element)
		if !ok || origin.Name() != "If" {
			t.Errorf("fragment origin = %#v, want the source If element", frag.Opening.Origin)
		}
	}
}

func TestRewrite_CustomMarkerModule(t *testing.T) {
	doc, err := vexml.ParseFile("test.vex", "import \"example.com/markers\"\n<p>x</p>")
	if err != nil {
		t.Fatalf("ParseFile() failed: %v", err)
	}

	r := New("test.vex")
	r.MarkerModule = "example.com/markers"
	out, err := r.Rewrite(doc)
	if err != nil {
		t.Fatalf("Rewrite() failed: %v", err)
	}
	if got, want := vexml.Print(out), "<p>x</p>"; got != want {
		t.Errorf("Rewrite() = %q, want %q", got, want)
	}
}

func TestIsControlTag(t *testing.T) {
	for name, want := range map[string]bool{
		"If":   true,
		"Else": true,
		"if":   false,
		"IF":   false,
		"div":  false,
	} {
		if got := IsControlTag(name); got != want {
			t.Errorf("IsControlTag(%q) = %v, want %v", name, got, want)
		}
	}
}
