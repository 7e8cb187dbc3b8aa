// Package render draws dependency graphs as Graphviz DOT and SVG.
//
// The renderer consumes an analysis report alongside the graph so the
// drawing reflects the structural results: nodes are ranked by
// dependency depth, collapsed cycles are visually distinct, and the
// critical path can be highlighted.
package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/proofscope/proofscope/pkg/analysis"
	"github.com/proofscope/proofscope/pkg/depgraph"
	"github.com/proofscope/proofscope/pkg/depgraph/condense"
)

// Options configures DOT rendering.
type Options struct {
	// CollapseCycles draws one node per strongly connected component
	// instead of every member.
	CollapseCycles bool

	// HighlightCriticalPath colors the report's critical path.
	HighlightCriticalPath bool

	// Detailed includes depth and width in node labels.
	Detailed bool
}

// ToDOT converts a graph and its report to Graphviz DOT. Nodes sharing
// a dependency depth are pinned to the same rank, so the drawing's
// vertical structure matches the report's layering. Members of a
// collapsed cycle (or the component node itself when CollapseCycles is
// set) are drawn dashed with a grey fill.
func ToDOT(g *depgraph.Graph, report *analysis.Report, opts Options) string {
	cond := condense.Condense(g)

	draw := g
	if opts.CollapseCycles {
		draw = cond.Graph
	}

	onPath := make(map[string]bool, len(report.CriticalPath))
	pathEdge := make(map[depgraph.Edge]bool)
	if opts.HighlightCriticalPath {
		for i, id := range report.CriticalPath {
			onPath[id] = true
			if i > 0 {
				pathEdge[depgraph.Edge{From: report.CriticalPath[i-1], To: id}] = true
			}
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph deps {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, id := range draw.Nodes() {
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(nodeAttrs(id, report, cond, opts, onPath[id]), ", "))
	}

	writeRanks(&buf, draw, report, cond, opts)

	buf.WriteString("\n")
	for _, from := range draw.Nodes() {
		for _, to := range draw.Successors(from) {
			if pathEdge[depgraph.Edge{From: from, To: to}] {
				fmt.Fprintf(&buf, "  %q -> %q [color=\"#C6504B\", penwidth=2.5];\n", from, to)
			} else {
				fmt.Fprintf(&buf, "  %q -> %q;\n", from, to)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(id string, report *analysis.Report, cond *condense.Condensation, opts Options, onPath bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", nodeLabel(id, report, cond, opts))}
	if size := cond.Size(id); size > 1 {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	}
	if onPath {
		attrs = append(attrs, "color=\"#C6504B\"", "penwidth=2.5")
	}
	return attrs
}

func nodeLabel(id string, report *analysis.Report, cond *condense.Condensation, opts Options) string {
	label := id
	if opts.CollapseCycles {
		if size := cond.Size(id); size > 1 {
			label = fmt.Sprintf("%s (+%d more)", id, size-1)
		}
	}
	if opts.Detailed {
		label += fmt.Sprintf("\ndepth: %d\nwidth: %d", report.Depths[id], report.Widths[id])
	}
	return label
}

// writeRanks pins every depth layer to one Graphviz rank.
func writeRanks(buf *bytes.Buffer, draw *depgraph.Graph, report *analysis.Report, cond *condense.Condensation, opts Options) {
	byDepth := make(map[int][]string)
	for _, id := range draw.Nodes() {
		byDepth[report.Depths[id]] = append(byDepth[report.Depths[id]], id)
	}
	depths := make([]int, 0, len(byDepth))
	for d := range byDepth {
		depths = append(depths, d)
	}
	sort.Ints(depths)

	buf.WriteString("\n")
	for _, d := range depths {
		ids := byDepth[d]
		if len(ids) < 2 {
			continue
		}
		quoted := make([]string, len(ids))
		for i, id := range ids {
			quoted[i] = strconv.Quote(id)
		}
		fmt.Fprintf(buf, "  { rank=same; %s }\n", strings.Join(quoted, "; "))
	}
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
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

// normalizeViewBox rewrites the SVG root element so the viewBox starts
// at the origin and the width/height match it, which keeps embedding
// predictable across Graphviz versions.
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

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
