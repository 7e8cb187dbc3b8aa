package analysis

import (
	"errors"
	"maps"
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

func TestDepthsChain(t *testing.T) {
	g := mustGraph(t, []string{"a", "b", "c", "d"}, []depgraph.Edge{
		edge("a", "b"), edge("b", "c"), edge("c", "d"),
	})
	depths, err := Depths(g)
	if err != nil {
		t.Fatalf("Depths() error = %v", err)
	}
	want := map[string]int{"a": 0, "b": 1, "c": 2, "d": 3}
	if !maps.Equal(depths, want) {
		t.Errorf("Depths() = %v, want %v", depths, want)
	}
}

func TestDepthsDiamond(t *testing.T) {
	g := mustGraph(t, []string{"a", "b", "c", "d"}, []depgraph.Edge{
		edge("a", "b"), edge("a", "c"), edge("b", "d"), edge("c", "d"),
	})
	depths, err := Depths(g)
	if err != nil {
		t.Fatalf("Depths() error = %v", err)
	}
	want := map[string]int{"a": 0, "b": 1, "c": 1, "d": 2}
	if !maps.Equal(depths, want) {
		t.Errorf("Depths() = %v, want %v", depths, want)
	}
}

func TestDepthsLongestPathWins(t *testing.T) {
	// d is reachable both directly from a (length 1) and through b, c
	// (length 3). Depth takes the longest route.
	g := mustGraph(t, []string{"a", "b", "c", "d"}, []depgraph.Edge{
		edge("a", "d"), edge("a", "b"), edge("b", "c"), edge("c", "d"),
	})
	depths, err := Depths(g)
	if err != nil {
		t.Fatalf("Depths() error = %v", err)
	}
	if got := depths["d"]; got != 3 {
		t.Errorf("depth(d) = %d, want 3", got)
	}
}

func TestDepthsCycleError(t *testing.T) {
	g := mustGraph(t, []string{"a", "b"}, []depgraph.Edge{
		edge("a", "b"), edge("b", "a"),
	})
	_, err := Depths(g)
	if !errors.Is(err, ErrNotAcyclic) {
		t.Errorf("Depths() error = %v, want ErrNotAcyclic", err)
	}
}

func TestTopoOrderDeterministic(t *testing.T) {
	g := mustGraph(t, []string{"z", "m", "a"}, nil)
	order, err := TopoOrder(g)
	if err != nil {
		t.Fatalf("TopoOrder() error = %v", err)
	}
	// Three independent sources schedule in ID order.
	want := []string{"a", "m", "z"}
	if !slices.Equal(order, want) {
		t.Errorf("TopoOrder() = %v, want %v", order, want)
	}
}

func TestTopoOrderRespectsEdges(t *testing.T) {
	g := mustGraph(t, []string{"a", "b", "c", "d"}, []depgraph.Edge{
		edge("a", "b"), edge("a", "c"), edge("c", "d"), edge("b", "d"),
	})
	order, err := TopoOrder(g)
	if err != nil {
		t.Fatalf("TopoOrder() error = %v", err)
	}
	pos := make(map[string]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	for _, e := range g.Edges() {
		if pos[e.From] >= pos[e.To] {
			t.Errorf("order %v places %s after %s", order, e.From, e.To)
		}
	}
}

func TestLayers(t *testing.T) {
	depths := map[string]int{"a": 0, "b": 1, "c": 1, "d": 2}
	layers := Layers(depths)
	want := map[int][]string{0: {"a"}, 1: {"b", "c"}, 2: {"d"}}
	if len(layers) != len(want) {
		t.Fatalf("Layers() = %v, want %v", layers, want)
	}
	for d, ids := range want {
		if !slices.Equal(layers[d], ids) {
			t.Errorf("Layers()[%d] = %v, want %v", d, layers[d], ids)
		}
	}
	if got := NumLayers(depths); got != 3 {
		t.Errorf("NumLayers() = %d, want 3", got)
	}
}

func TestNumLayersEmpty(t *testing.T) {
	if got := NumLayers(map[string]int{}); got != 0 {
		t.Errorf("NumLayers() = %d, want 0", got)
	}
}
