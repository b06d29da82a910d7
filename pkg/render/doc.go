// Package render draws an assignment as a graph.
//
// [ToDOT] lays a report out as a bipartite Graphviz graph with candidates on
// the left and slots on the right. Edges are coloured by the rank the
// candidate gave the slot: green for a first choice, amber for a second,
// orange for a third and red for an unranked slot.
//
//	dot := render.ToDOT(report, render.Options{ShowUnmatched: true})
//	svg, err := render.RenderSVG(ctx, dot)
//	png, err := render.ToPNG(ctx, svg, 2.0)
//
// [Render] picks the output by [Format]. SVG is produced in-process by
// go-graphviz; PDF and PNG are converted from it by the external
// rsvg-convert tool from librsvg.
package render
