// Package analysis computes the structural report for a dependency
// graph: depths, topological layers, source/sink classification,
// dependency widths, reachability counts, bottleneck scores and critical
// paths.
//
// The depth and critical-path passes are defined only for acyclic
// graphs. [Analyze] handles arbitrary input by condensing strongly
// connected components first (pkg/depgraph/condense) and broadcasting
// component-level results back to member nodes, so cyclic input is a
// supported case rather than an error.
package analysis

import (
	"errors"
	"fmt"
	"slices"

	"github.com/proofscope/proofscope/pkg/depgraph"
)

var (
	// ErrNotAcyclic reports a cycle in a graph that a depth or
	// longest-path pass requires to be acyclic. It is an internal
	// invariant check: [Analyze] always condenses first, so this error
	// never escapes the public entry points.
	ErrNotAcyclic = errors.New("graph contains a cycle")

	// ErrTargetNotFound is returned by [CriticalPathTo] when the target
	// node is not in the graph.
	ErrTargetNotFound = errors.New("target node not in graph")
)

// Depths assigns every node its dependency depth: 0 for sources, and
// 1 + max(depth of predecessors) otherwise. Computed in a single pass
// over a topological order, never by recursion over paths.
//
// Returns ErrNotAcyclic if g contains a cycle. Callers with possibly
// cyclic input condense first; see the package comment.
func Depths(g *depgraph.Graph) (map[string]int, error) {
	order, err := TopoOrder(g)
	if err != nil {
		return nil, err
	}
	d := make(map[string]int, len(order))
	for _, id := range order {
		best := 0
		for _, pred := range g.Predecessors(id) {
			if d[pred]+1 > best {
				best = d[pred] + 1
			}
		}
		d[id] = best
	}
	return d, nil
}

// TopoOrder returns a topological order of g via Kahn's algorithm,
// seeded with the sources in sorted-ID order so the result is the same
// across runs. Returns ErrNotAcyclic if not every node can be scheduled.
func TopoOrder(g *depgraph.Graph) ([]string, error) {
	nodes := g.Nodes()
	inDegree := make(map[string]int, len(nodes))
	queue := make([]string, 0, len(nodes))
	for _, id := range nodes {
		deg := g.InDegree(id)
		inDegree[id] = deg
		if deg == 0 {
			queue = append(queue, id)
		}
	}

	order := make([]string, 0, len(nodes))
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		order = append(order, curr)

		for _, child := range g.Successors(curr) {
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	if len(order) != len(nodes) {
		return nil, fmt.Errorf("%w: %d of %d nodes stuck on a cycle",
			ErrNotAcyclic, len(nodes)-len(order), len(nodes))
	}
	return order, nil
}

// Layers groups nodes by depth value. Layer 0 is exactly the source
// set; nodes within a layer are sorted by ID.
func Layers(depths map[string]int) map[int][]string {
	layers := make(map[int][]string)
	for id, d := range depths {
		layers[d] = append(layers[d], id)
	}
	for _, ids := range layers {
		slices.Sort(ids)
	}
	return layers
}

// NumLayers returns the layer count implied by a depth assignment:
// max depth + 1, or 0 for an empty map.
func NumLayers(depths map[string]int) int {
	max := -1
	for _, d := range depths {
		if d > max {
			max = d
		}
	}
	return max + 1
}
