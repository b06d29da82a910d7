package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/JHertz5/role-assignment/pkg/project"
)

// Options configures assignment graph rendering.
type Options struct {
	// ShowUnmatched draws slots nobody was given and candidates left
	// without a slot.
	ShowUnmatched bool
	// ShowCost labels each edge with its cost.
	ShowCost bool
}

// rankColors colours edges by the rank the candidate gave the slot.
var rankColors = map[int]string{
	0: "#2e7d32",
	1: "#f9a825",
	2: "#ef6c00",
}

const defaultEdgeColor = "#c62828"

// ToDOT converts a report to a left-to-right bipartite Graphviz graph:
// candidates on the left, slots on the right and one edge per assignment.
// The result can be rendered with [RenderSVG].
func ToDOT(rep *project.Report, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph assignment {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("  ranksep=1.5;\n")
	buf.WriteString("  nodesep=0.2;\n\n")

	buf.WriteString("  subgraph candidates {\n    rank=same;\n")
	for _, r := range rep.Records {
		fmt.Fprintf(&buf, "    %q [label=%q];\n", candidateID(r.Candidate), r.Candidate)
	}
	if opts.ShowUnmatched {
		for _, name := range rep.UnmatchedCandidates {
			fmt.Fprintf(&buf, "    %q [label=%q, style=\"rounded,filled,dashed\", fillcolor=lightgrey];\n", candidateID(name), name)
		}
	}
	buf.WriteString("  }\n\n")

	buf.WriteString("  subgraph slots {\n    rank=same;\n")
	for _, r := range rep.Records {
		fmt.Fprintf(&buf, "    %q [label=%q, fillcolor=\"#e3f2fd\"];\n", slotID(r.Role), r.Role)
	}
	if opts.ShowUnmatched {
		for _, role := range rep.Unmatched {
			fmt.Fprintf(&buf, "    %q [label=%q, style=\"rounded,filled,dashed\", fillcolor=lightgrey];\n", slotID(role), role)
		}
	}
	buf.WriteString("  }\n\n")

	for _, r := range rep.Records {
		color, ok := rankColors[r.Cost]
		if !ok {
			color = defaultEdgeColor
		}
		attrs := fmt.Sprintf("color=%q, penwidth=2", color)
		if opts.ShowCost {
			attrs += fmt.Sprintf(", label=%q", strconv.Itoa(r.Cost))
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", candidateID(r.Candidate), slotID(r.Role), attrs)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// Candidate and slot titles may coincide, so node IDs are namespaced.
func candidateID(name string) string { return "c:" + name }

func slotID(title string) string { return "s:" + title }

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz svg tag with one whose viewBox
// starts at the origin and whose size matches it, so the image scales.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
