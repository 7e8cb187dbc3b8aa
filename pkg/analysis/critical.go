package analysis

import (
	"fmt"
	"slices"

	"github.com/proofscope/proofscope/pkg/depgraph"
)

// CriticalPath returns the longest directed path in an acyclic graph as
// an ordered slice of node IDs. Returns an empty path for an empty
// graph and a single-element path for an isolated node.
//
// The path is found by dynamic programming over a topological order:
// best(v) = 1 + max(best(u)) over predecessors u, with best(v) = 0 for
// sources, tracking a predecessor pointer for reconstruction. Ties -
// both for the predecessor pointer and for the path's final node - are
// broken toward the smallest node ID, so the result is reproducible
// across runs and implementations.
//
// Returns ErrNotAcyclic if g contains a cycle; callers with possibly
// cyclic input condense first.
func CriticalPath(g *depgraph.Graph) ([]string, error) {
	order, err := TopoOrder(g)
	if err != nil {
		return nil, err
	}
	if len(order) == 0 {
		return nil, nil
	}

	best := make(map[string]int, len(order))
	prev := make(map[string]string, len(order))
	for _, id := range order {
		for _, pred := range g.Predecessors(id) {
			// Predecessors are sorted, so strict > keeps the smallest
			// maximal predecessor.
			if best[pred]+1 > best[id] {
				best[id] = best[pred] + 1
				prev[id] = pred
			}
		}
	}

	end := ""
	endLen := -1
	for _, id := range g.Nodes() {
		if best[id] > endLen {
			end, endLen = id, best[id]
		}
	}

	path := []string{end}
	for {
		pred, ok := prev[path[len(path)-1]]
		if !ok {
			break
		}
		path = append(path, pred)
	}
	slices.Reverse(path)
	return path, nil
}

// CriticalPathTo returns the longest path ending at target, restricted
// to the subgraph induced by target and its ancestors. Within that
// subgraph target is the only sink (every ancestor keeps an outgoing
// edge toward it), so the longest path necessarily ends at target.
//
// Returns ErrTargetNotFound if target is not in the graph, and
// ErrNotAcyclic for cyclic input (condense first).
func CriticalPathTo(g *depgraph.Graph, target string) ([]string, error) {
	sub, err := AncestorClosure(g, target)
	if err != nil {
		return nil, err
	}
	return CriticalPath(sub)
}

// AncestorClosure returns the subgraph induced by target and all of its
// ancestors. Returns ErrTargetNotFound if target is not in the graph.
func AncestorClosure(g *depgraph.Graph, target string) (*depgraph.Graph, error) {
	if !g.Has(target) {
		return nil, fmt.Errorf("%w: %q", ErrTargetNotFound, target)
	}

	keep := g.Ancestors(target)
	keep[target] = struct{}{}

	nodes := make([]string, 0, len(keep))
	for id := range keep {
		nodes = append(nodes, id)
	}
	var edges []depgraph.Edge
	for id := range keep {
		for _, succ := range g.Successors(id) {
			if _, ok := keep[succ]; ok {
				edges = append(edges, depgraph.Edge{From: id, To: succ})
			}
		}
	}

	sub, err := depgraph.New(nodes, edges)
	if err != nil {
		// Unreachable: every edge endpoint is drawn from the kept set.
		panic(fmt.Sprintf("ancestor closure: %v", err))
	}
	return sub, nil
}

// GraphDepth returns the edge count of a critical path: len(path) - 1,
// clamped to 0 for empty or single-node paths.
func GraphDepth(path []string) int {
	if len(path) <= 1 {
		return 0
	}
	return len(path) - 1
}
