package analysis

import (
	"fmt"
	"maps"
	"slices"
	"testing"

	"pgregory.net/rapid"

	"github.com/proofscope/proofscope/pkg/depgraph"
)

// drawDAG generates a random acyclic graph: edges only run from lower
// to higher node index, so no cycle can form.
func drawDAG(t *rapid.T) *depgraph.Graph {
	n := rapid.IntRange(1, 12).Draw(t, "n")
	nodes := make([]string, n)
	for i := range nodes {
		nodes[i] = fmt.Sprintf("n%02d", i)
	}

	var edges []depgraph.Edge
	m := rapid.IntRange(0, 3*n).Draw(t, "m")
	for i := 0; i < m; i++ {
		from := rapid.IntRange(0, n-1).Draw(t, "from")
		to := rapid.IntRange(0, n-1).Draw(t, "to")
		if from == to {
			continue
		}
		if from > to {
			from, to = to, from
		}
		edges = append(edges, depgraph.Edge{From: nodes[from], To: nodes[to]})
	}

	g, err := depgraph.New(nodes, edges)
	if err != nil {
		t.Fatalf("depgraph.New() error = %v", err)
	}
	return g
}

// drawAnyGraph generates a random directed graph, cycles included.
func drawAnyGraph(t *rapid.T) *depgraph.Graph {
	n := rapid.IntRange(0, 12).Draw(t, "n")
	nodes := make([]string, n)
	for i := range nodes {
		nodes[i] = fmt.Sprintf("n%02d", i)
	}

	var edges []depgraph.Edge
	if n > 0 {
		m := rapid.IntRange(0, 3*n).Draw(t, "m")
		for i := 0; i < m; i++ {
			from := rapid.SampledFrom(nodes).Draw(t, "from")
			to := rapid.SampledFrom(nodes).Draw(t, "to")
			edges = append(edges, depgraph.Edge{From: from, To: to})
		}
	}

	g, err := depgraph.New(nodes, edges)
	if err != nil {
		t.Fatalf("depgraph.New() error = %v", err)
	}
	return g
}

func TestDepthMonotonicProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g := drawDAG(t)

		depths, err := Depths(g)
		if err != nil {
			t.Fatalf("Depths() error = %v", err)
		}

		for _, e := range g.Edges() {
			if depths[e.To] < depths[e.From]+1 {
				t.Fatalf("edge %s -> %s: depth %d < %d+1",
					e.From, e.To, depths[e.To], depths[e.From])
			}
		}
	})
}

func TestReachabilityMatchesBruteForceProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g := drawDAG(t)
		report := Analyze(g)

		for _, id := range g.Nodes() {
			want := bruteForceDescendants(g, id)
			if got := report.Reachability[id]; got != want {
				t.Fatalf("reachability of %s = %d, brute force = %d", id, got, want)
			}
		}
	})
}

// bruteForceDescendants counts nodes reachable from id by restarting a
// plain DFS, independent of the engine's closure helpers.
func bruteForceDescendants(g *depgraph.Graph, id string) int {
	visited := map[string]bool{}
	var walk func(curr string)
	walk = func(curr string) {
		for _, next := range g.Successors(curr) {
			if !visited[next] {
				visited[next] = true
				walk(next)
			}
		}
	}
	walk(id)
	delete(visited, id)
	return len(visited)
}

func TestAnalyzeIdempotentProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g := drawAnyGraph(t)

		first := Analyze(g)
		second := Analyze(g)

		if !maps.Equal(first.Depths, second.Depths) {
			t.Fatalf("depths differ between runs: %v vs %v", first.Depths, second.Depths)
		}
		if !maps.Equal(first.Bottlenecks, second.Bottlenecks) {
			t.Fatalf("bottlenecks differ between runs")
		}
		if !maps.Equal(first.Reachability, second.Reachability) {
			t.Fatalf("reachability differs between runs")
		}
		if !slices.Equal(first.Sources, second.Sources) {
			t.Fatalf("sources differ: %v vs %v", first.Sources, second.Sources)
		}
		if !slices.Equal(first.Sinks, second.Sinks) {
			t.Fatalf("sinks differ: %v vs %v", first.Sinks, second.Sinks)
		}
		if !slices.Equal(first.CriticalPath, second.CriticalPath) {
			t.Fatalf("critical paths differ: %v vs %v", first.CriticalPath, second.CriticalPath)
		}
		for depth, layer := range first.Layers {
			if !slices.Equal(layer, second.Layers[depth]) {
				t.Fatalf("layer %d differs: %v vs %v", depth, layer, second.Layers[depth])
			}
		}
	})
}
