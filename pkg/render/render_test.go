package render

import (
	"context"
	"strings"
	"testing"

	"github.com/JHertz5/role-assignment/pkg/errors"
	"github.com/JHertz5/role-assignment/pkg/project"
)

func sampleReport() *project.Report {
	return &project.Report{
		Records: []project.Record{
			{Candidate: "Alice", Cost: 0, Role: "Ops"},
			{Candidate: "Bob", Cost: 3, Role: "Lab (2)"},
		},
		Unmatched:           []string{"Lab (1)"},
		UnmatchedCandidates: []string{"Zed"},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sampleReport(), Options{ShowCost: true})

	for _, want := range []string{
		"digraph assignment {",
		"rankdir=LR;",
		`"c:Alice" [label="Alice"];`,
		`"s:Lab (2)" [label="Lab (2)", fillcolor="#e3f2fd"];`,
		`"c:Alice" -> "s:Ops" [color="#2e7d32", penwidth=2, label="0"];`,
		`"c:Bob" -> "s:Lab (2)" [color="#c62828", penwidth=2, label="3"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "Lab (1)") || strings.Contains(dot, "Zed") {
		t.Error("unmatched nodes should be hidden by default")
	}
}

func TestToDOTUnmatched(t *testing.T) {
	dot := ToDOT(sampleReport(), Options{ShowUnmatched: true})
	if !strings.Contains(dot, `"s:Lab (1)"`) || !strings.Contains(dot, `"c:Zed"`) {
		t.Errorf("unmatched nodes missing:\n%s", dot)
	}
	if strings.Contains(dot, "label=\"0\"") {
		t.Error("edge costs should be hidden without ShowCost")
	}
}

func TestToDOTSharedTitle(t *testing.T) {
	rep := &project.Report{Records: []project.Record{{Candidate: "Ops", Cost: 1, Role: "Ops"}}}
	dot := ToDOT(rep, Options{})
	if !strings.Contains(dot, `"c:Ops" -> "s:Ops"`) {
		t.Errorf("candidate and slot with the same title must be distinct nodes:\n%s", dot)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"out.dot": FormatDOT,
		"out.gv":  FormatDOT,
		"out.SVG": FormatSVG,
		"a/b.pdf": FormatPDF,
		"x.png":   FormatPNG,
	}
	for path, want := range tests {
		got, err := FormatFromPath(path)
		if err != nil || got != want {
			t.Errorf("FormatFromPath(%q) = %q, %v; want %q", path, got, err, want)
		}
	}

	if _, err := FormatFromPath("out.txt"); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("out.txt: err = %v, want UNSUPPORTED", err)
	}
}

func TestRenderDOT(t *testing.T) {
	out, err := Render(context.Background(), sampleReport(), Options{}, FormatDOT)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(out), "digraph assignment {") {
		t.Errorf("unexpected DOT output: %s", out)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 100.50 200.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.50 200.00" width="100" height="200"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox =\n%s\nwant\n%s", got, want)
	}

	plain := []byte("<svg><g/></svg>")
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("svg without viewBox should be unchanged")
	}
}
