// Package condense collapses the strongly connected components of a
// dependency graph into a condensation graph.
//
// Formal-math extractors occasionally emit small cycles (mutual or
// structural definitions), which breaks every algorithm that assumes a
// DAG. Condensing by SCCs always yields an acyclic graph: an edge of the
// condensation pointing back into an earlier component would make the two
// components mutually reachable, contradicting SCC maximality. The rest
// of the engine therefore runs on the condensation and maps results back
// to member nodes afterwards.
package condense

import (
	"fmt"
	"slices"
	"strings"

	"github.com/proofscope/proofscope/pkg/depgraph"
)

// Components is the SCC partition of a graph's node set. Every node
// belongs to exactly one component; ordinary nodes form singleton
// components. Groups are ordered by smallest member ID so iteration is
// reproducible, but all lookups go through the membership index rather
// than group positions.
type Components struct {
	groups [][]string // each sorted; ordered by groups[i][0]
	owner  map[string]int
	cyclic int // groups with >1 member or a self-loop
}

// SCC computes the strongly connected components of g using an iterative
// Tarjan traversal. Nodes are visited in sorted-ID order, so component
// membership and group order are identical across runs.
func SCC(g *depgraph.Graph) *Components {
	nodes := g.Nodes()
	index := make(map[string]int, len(nodes)) // discovery index, 0 = unvisited
	low := make(map[string]int, len(nodes))
	onStack := make(map[string]bool, len(nodes))
	var stack []string
	next := 1

	var groups [][]string

	// Explicit DFS frames instead of recursion: extraction graphs reach
	// tens of thousands of nodes and a deep chain would overflow the
	// goroutine stack.
	type frame struct {
		node string
		succ []string
		i    int
	}

	for _, root := range nodes {
		if index[root] != 0 {
			continue
		}
		index[root], low[root] = next, next
		next++
		stack = append(stack, root)
		onStack[root] = true
		frames := []frame{{node: root, succ: g.Successors(root)}}

		for len(frames) > 0 {
			f := &frames[len(frames)-1]
			if f.i < len(f.succ) {
				w := f.succ[f.i]
				f.i++
				if index[w] == 0 {
					index[w], low[w] = next, next
					next++
					stack = append(stack, w)
					onStack[w] = true
					frames = append(frames, frame{node: w, succ: g.Successors(w)})
				} else if onStack[w] && index[w] < low[f.node] {
					low[f.node] = index[w]
				}
				continue
			}

			v := f.node
			frames = frames[:len(frames)-1]
			if len(frames) > 0 {
				if parent := frames[len(frames)-1].node; low[v] < low[parent] {
					low[parent] = low[v]
				}
			}
			if low[v] == index[v] {
				var members []string
				for {
					w := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					onStack[w] = false
					members = append(members, w)
					if w == v {
						break
					}
				}
				slices.Sort(members)
				groups = append(groups, members)
			}
		}
	}

	slices.SortFunc(groups, func(a, b []string) int {
		return strings.Compare(a[0], b[0])
	})

	owner := make(map[string]int)
	cyclic := 0
	for i, members := range groups {
		for _, id := range members {
			owner[id] = i
		}
		// A singleton is cyclic iff the node loops onto itself.
		if len(members) > 1 || slices.Contains(g.Successors(members[0]), members[0]) {
			cyclic++
		}
	}
	return &Components{groups: groups, owner: owner, cyclic: cyclic}
}

// Count returns the number of components.
func (c *Components) Count() int { return len(c.groups) }

// NontrivialCount returns the number of collapsed cycles: components
// with more than one member, plus singletons carrying a self-loop.
func (c *Components) NontrivialCount() int { return c.cyclic }

// LargestSize returns the size of the largest component, or 0 for an
// empty partition.
func (c *Components) LargestSize() int {
	max := 0
	for _, members := range c.groups {
		if len(members) > max {
			max = len(members)
		}
	}
	return max
}

// Groups returns the components, each a sorted slice of member IDs,
// ordered by smallest member.
func (c *Components) Groups() [][]string { return c.groups }

// Of returns the members of the component owning id, or nil if the node
// is unknown.
func (c *Components) Of(id string) []string {
	i, ok := c.owner[id]
	if !ok {
		return nil
	}
	return c.groups[i]
}

// Condensation is the DAG obtained by collapsing each component into a
// single node. Component nodes are identified by their representative:
// the smallest member ID. For an acyclic input every component is a
// singleton and the condensation is isomorphic to the input.
type Condensation struct {
	// Graph is the condensed graph. Acyclic by construction.
	Graph *depgraph.Graph

	comps *Components
}

// Condense computes the SCC partition of g and builds its condensation.
func Condense(g *depgraph.Graph) *Condensation {
	return Build(g, SCC(g))
}

// Build constructs the condensation of g for a previously computed
// partition. Intra-component edges are dropped; edges crossing component
// boundaries are projected onto the representatives and deduplicated.
func Build(g *depgraph.Graph, comps *Components) *Condensation {
	reps := make([]string, len(comps.groups))
	for i, members := range comps.groups {
		reps[i] = members[0]
	}

	crossing := make(map[depgraph.Edge]struct{})
	for _, u := range g.Nodes() {
		ru := comps.Rep(u)
		for _, v := range g.Successors(u) {
			rv := comps.Rep(v)
			if ru != rv {
				crossing[depgraph.Edge{From: ru, To: rv}] = struct{}{}
			}
		}
	}
	edges := make([]depgraph.Edge, 0, len(crossing))
	for e := range crossing {
		edges = append(edges, e)
	}

	cg, err := depgraph.New(reps, edges)
	if err != nil {
		// Unreachable: every projected endpoint is a representative.
		panic(fmt.Sprintf("condense: %v", err))
	}
	return &Condensation{Graph: cg, comps: comps}
}

// Components returns the partition the condensation was built from.
func (c *Condensation) Components() *Components { return c.comps }

// Rep returns the condensation node (representative member ID) owning
// the original node, or "" if the node is unknown.
func (c *Condensation) Rep(id string) string { return c.comps.Rep(id) }

// Members returns the original nodes collapsed into the given
// condensation node.
func (c *Condensation) Members(rep string) []string { return c.comps.Of(rep) }

// Size returns the member count of the component owning id, or 0 for an
// unknown node.
func (c *Condensation) Size(id string) int { return len(c.comps.Of(id)) }

// Rep returns the representative (smallest member ID) of the component
// owning id, or "" if the node is unknown.
func (c *Components) Rep(id string) string {
	i, ok := c.owner[id]
	if !ok {
		return ""
	}
	return c.groups[i][0]
}
