package condense

import (
	"slices"
	"testing"

	"github.com/proofscope/proofscope/pkg/depgraph"
)

func mustGraph(t *testing.T, nodes []string, edges []depgraph.Edge) *depgraph.Graph {
	t.Helper()
	g, err := depgraph.New(nodes, edges)
	if err != nil {
		t.Fatalf("depgraph.New() error = %v", err)
	}
	return g
}

func edge(from, to string) depgraph.Edge {
	return depgraph.Edge{From: from, To: to}
}

func TestSCCAcyclic(t *testing.T) {
	g := mustGraph(t, []string{"a", "b", "c"}, []depgraph.Edge{
		edge("a", "b"), edge("b", "c"),
	})
	comps := SCC(g)

	if got := comps.Count(); got != 3 {
		t.Errorf("Count() = %d, want 3", got)
	}
	if got := comps.NontrivialCount(); got != 0 {
		t.Errorf("NontrivialCount() = %d, want 0", got)
	}
	if got := comps.LargestSize(); got != 1 {
		t.Errorf("LargestSize() = %d, want 1", got)
	}
	for _, id := range g.Nodes() {
		if got := comps.Rep(id); got != id {
			t.Errorf("Rep(%q) = %q, want itself", id, got)
		}
	}
}

func TestSCCThreeCycle(t *testing.T) {
	// a -> b -> c -> a, c -> d.
	g := mustGraph(t, []string{"a", "b", "c", "d"}, []depgraph.Edge{
		edge("a", "b"), edge("b", "c"), edge("c", "a"), edge("c", "d"),
	})
	comps := SCC(g)

	if got := comps.Count(); got != 2 {
		t.Errorf("Count() = %d, want 2", got)
	}
	if got := comps.NontrivialCount(); got != 1 {
		t.Errorf("NontrivialCount() = %d, want 1", got)
	}
	if got := comps.LargestSize(); got != 3 {
		t.Errorf("LargestSize() = %d, want 3", got)
	}
	for _, id := range []string{"a", "b", "c"} {
		if got := comps.Rep(id); got != "a" {
			t.Errorf("Rep(%q) = %q, want a", id, got)
		}
	}
	if got := comps.Rep("d"); got != "d" {
		t.Errorf("Rep(d) = %q, want d", got)
	}

	want := [][]string{{"a", "b", "c"}, {"d"}}
	got := comps.Groups()
	if len(got) != len(want) {
		t.Fatalf("Groups() = %v, want %v", got, want)
	}
	for i := range want {
		if !slices.Equal(got[i], want[i]) {
			t.Errorf("Groups()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSCCTwoSeparateCycles(t *testing.T) {
	g := mustGraph(t, []string{"a", "b", "x", "y"}, []depgraph.Edge{
		edge("a", "b"), edge("b", "a"),
		edge("x", "y"), edge("y", "x"),
	})
	comps := SCC(g)

	if got := comps.NontrivialCount(); got != 2 {
		t.Errorf("NontrivialCount() = %d, want 2", got)
	}
	if got := comps.Rep("b"); got != "a" {
		t.Errorf("Rep(b) = %q, want a", got)
	}
	if got := comps.Rep("y"); got != "x" {
		t.Errorf("Rep(y) = %q, want x", got)
	}
}

func TestSCCSelfLoop(t *testing.T) {
	g := mustGraph(t, []string{"a", "b"}, []depgraph.Edge{
		edge("a", "a"), edge("a", "b"),
	})
	comps := SCC(g)

	// A self-loop is a length-1 cycle even though the component has a
	// single member.
	if got := comps.NontrivialCount(); got != 1 {
		t.Errorf("NontrivialCount() = %d, want 1", got)
	}
	if got := comps.Count(); got != 2 {
		t.Errorf("Count() = %d, want 2", got)
	}
	if got := comps.LargestSize(); got != 1 {
		t.Errorf("LargestSize() = %d, want 1", got)
	}

	// The condensation drops the self-loop, leaving an acyclic graph.
	cond := Build(g, comps)
	if got := cond.Graph.EdgeCount(); got != 1 {
		t.Errorf("condensation EdgeCount() = %d, want 1", got)
	}
}

func TestCondenseCollapsesCycle(t *testing.T) {
	// a -> b -> c -> a, c -> d, e -> a.
	g := mustGraph(t, []string{"a", "b", "c", "d", "e"}, []depgraph.Edge{
		edge("a", "b"), edge("b", "c"), edge("c", "a"),
		edge("c", "d"), edge("e", "a"),
	})
	cond := Condense(g)

	wantNodes := []string{"a", "d", "e"}
	if got := cond.Graph.Nodes(); !slices.Equal(got, wantNodes) {
		t.Errorf("condensation nodes = %v, want %v", got, wantNodes)
	}
	// Internal cycle edges disappear; cross-component edges survive
	// rewritten onto representatives.
	if got, want := cond.Graph.Successors("a"), []string{"d"}; !slices.Equal(got, want) {
		t.Errorf("Successors(a) = %v, want %v", got, want)
	}
	if got, want := cond.Graph.Successors("e"), []string{"a"}; !slices.Equal(got, want) {
		t.Errorf("Successors(e) = %v, want %v", got, want)
	}
	if got, want := cond.Members("a"), []string{"a", "b", "c"}; !slices.Equal(got, want) {
		t.Errorf("Members(a) = %v, want %v", got, want)
	}
	if got := cond.Size("a"); got != 3 {
		t.Errorf("Size(a) = %d, want 3", got)
	}
}

func TestCondenseDeduplicatesCrossEdges(t *testing.T) {
	// Both a and b point into the {x, y} cycle from the {a, b} cycle:
	// the condensation keeps a single edge.
	g := mustGraph(t, []string{"a", "b", "x", "y"}, []depgraph.Edge{
		edge("a", "b"), edge("b", "a"),
		edge("x", "y"), edge("y", "x"),
		edge("a", "x"), edge("b", "y"),
	})
	cond := Condense(g)

	if got := cond.Graph.EdgeCount(); got != 1 {
		t.Errorf("condensation EdgeCount() = %d, want 1", got)
	}
	if got, want := cond.Graph.Successors("a"), []string{"x"}; !slices.Equal(got, want) {
		t.Errorf("Successors(a) = %v, want %v", got, want)
	}
}

func TestCondenseAcyclicIsIdentity(t *testing.T) {
	g := mustGraph(t, []string{"a", "b", "c"}, []depgraph.Edge{
		edge("a", "b"), edge("a", "c"),
	})
	cond := Condense(g)

	if got := cond.Graph.NodeCount(); got != g.NodeCount() {
		t.Errorf("condensation NodeCount() = %d, want %d", got, g.NodeCount())
	}
	if got := cond.Graph.EdgeCount(); got != g.EdgeCount() {
		t.Errorf("condensation EdgeCount() = %d, want %d", got, g.EdgeCount())
	}
}

func TestCondenseEmpty(t *testing.T) {
	cond := Condense(mustGraph(t, nil, nil))
	if got := cond.Graph.NodeCount(); got != 0 {
		t.Errorf("condensation NodeCount() = %d, want 0", got)
	}
	if got := cond.Components().Count(); got != 0 {
		t.Errorf("Count() = %d, want 0", got)
	}
}
