package analysis

import (
	"slices"

	"github.com/proofscope/proofscope/pkg/depgraph"
	"github.com/proofscope/proofscope/pkg/depgraph/condense"
)

// SourceNodes returns the nodes nothing precedes, inside or outside
// their component: in-degree 0 on the original graph and no cross-
// component predecessors in the condensation. A member of a collapsed
// cycle always has an in-edge from another member, so it can never
// qualify.
func SourceNodes(g *depgraph.Graph, cond *condense.Condensation) []string {
	var sources []string
	for _, id := range g.Nodes() {
		if g.InDegree(id) == 0 && cond.Graph.InDegree(cond.Rep(id)) == 0 {
			sources = append(sources, id)
		}
	}
	slices.Sort(sources)
	return sources
}

// SinkNodes is the symmetric classification: out-degree 0 on the
// original graph and no cross-component successors.
func SinkNodes(g *depgraph.Graph, cond *condense.Condensation) []string {
	var sinks []string
	for _, id := range g.Nodes() {
		if g.OutDegree(id) == 0 && cond.Graph.OutDegree(cond.Rep(id)) == 0 {
			sinks = append(sinks, id)
		}
	}
	slices.Sort(sinks)
	return sinks
}

// Widths returns the dependency width of every node: its in-degree on
// the original graph. Width measures direct dependencies, so the
// condensation plays no part here.
func Widths(g *depgraph.Graph) map[string]int {
	widths := make(map[string]int, g.NodeCount())
	for _, id := range g.Nodes() {
		widths[id] = g.InDegree(id)
	}
	return widths
}

// ReachabilityCounts returns, for every node, the number of nodes
// reachable from it. Reachability is computed on the condensation and
// expanded: descendants of the owning component contribute their full
// member counts, and the node's own component contributes its size
// minus one, because members of a cycle reach each other even though
// the condensation records no edge between them. For acyclic input the
// correction is zero and the result equals plain descendant counting.
func ReachabilityCounts(g *depgraph.Graph, cond *condense.Condensation) map[string]int {
	descTotals := memberClosureTotals(cond, (*depgraph.Graph).Descendants)

	reach := make(map[string]int, g.NodeCount())
	for _, id := range g.Nodes() {
		rep := cond.Rep(id)
		reach[id] = descTotals[rep] + cond.Size(rep) - 1
	}
	return reach
}

// BottleneckScores returns the descendant/ancestor ratio of every node,
// using the same cycle-corrected counts as ReachabilityCounts on both
// sides. A node with no descendants scores 0; a node with descendants
// but no ancestors scores its raw descendant count, so foundational
// nodes get a positive score proportional to their downstream influence
// instead of an undefined ratio.
func BottleneckScores(g *depgraph.Graph, cond *condense.Condensation) map[string]float64 {
	descTotals := memberClosureTotals(cond, (*depgraph.Graph).Descendants)
	ancTotals := memberClosureTotals(cond, (*depgraph.Graph).Ancestors)

	scores := make(map[string]float64, g.NodeCount())
	for _, id := range g.Nodes() {
		rep := cond.Rep(id)
		correction := cond.Size(rep) - 1
		desc := descTotals[rep] + correction
		anc := ancTotals[rep] + correction

		switch {
		case desc == 0:
			scores[id] = 0
		case anc == 0:
			scores[id] = float64(desc)
		default:
			scores[id] = float64(desc) / float64(anc)
		}
	}
	return scores
}

// memberClosureTotals computes, per condensation node, the total member
// count of its forward or backward closure (excluding the component
// itself).
func memberClosureTotals(cond *condense.Condensation, closure func(*depgraph.Graph, string) map[string]struct{}) map[string]int {
	totals := make(map[string]int, cond.Graph.NodeCount())
	for _, rep := range cond.Graph.Nodes() {
		total := 0
		for other := range closure(cond.Graph, rep) {
			total += cond.Size(other)
		}
		totals[rep] = total
	}
	return totals
}
