package depgraph

// Descendants returns the set of nodes reachable from id by following
// edges forward. The start node itself is not included.
// Returns an empty set for unknown nodes.
func (g *Graph) Descendants(id string) map[string]struct{} {
	return g.closure(id, g.succ)
}

// Ancestors returns the set of nodes that can reach id by following
// edges forward (equivalently, reachable from id over reversed edges).
// The start node itself is not included.
func (g *Graph) Ancestors(id string) map[string]struct{} {
	return g.closure(id, g.pred)
}

// closure is an iterative BFS over the given adjacency index.
func (g *Graph) closure(start string, adj map[string][]string) map[string]struct{} {
	seen := make(map[string]struct{})
	queue := []string{start}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, next := range adj[curr] {
			if _, ok := seen[next]; ok {
				continue
			}
			seen[next] = struct{}{}
			queue = append(queue, next)
		}
	}
	delete(seen, start)
	return seen
}

// WeakComponentCount returns the number of weakly connected components,
// treating every edge as undirected. Isolated nodes count as their own
// component.
func (g *Graph) WeakComponentCount() int {
	seen := make(map[string]struct{}, len(g.nodes))
	count := 0
	for _, id := range g.Nodes() {
		if _, ok := seen[id]; ok {
			continue
		}
		count++
		queue := []string{id}
		seen[id] = struct{}{}
		for len(queue) > 0 {
			curr := queue[0]
			queue = queue[1:]
			for _, next := range g.succ[curr] {
				if _, ok := seen[next]; !ok {
					seen[next] = struct{}{}
					queue = append(queue, next)
				}
			}
			for _, next := range g.pred[curr] {
				if _, ok := seen[next]; !ok {
					seen[next] = struct{}{}
					queue = append(queue, next)
				}
			}
		}
	}
	return count
}
