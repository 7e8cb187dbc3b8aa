// Package depgraph provides the immutable dependency-graph model that the
// analysis engine operates on.
//
// A Graph is built once from a node-ID set and an edge list and is never
// mutated afterwards, so a single instance can be shared by any number of
// concurrent analysis calls without locking. Node IDs are opaque strings
// (in practice fully qualified declaration names such as
// "Mathlib.Topology.Basic.continuous_id"); the graph attaches no meaning
// to them beyond identity.
//
// The graph may contain directed cycles. Nothing in this package assumes
// acyclicity - components that do (the depth and critical-path passes in
// pkg/analysis) run on a condensation built by pkg/depgraph/condense.
package depgraph

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// ErrUnknownEdgeEndpoint is returned by [New] when an edge references a
// node that is not in the node set. The upstream graph extractor is
// expected to guarantee endpoint membership; this check exists so a
// malformed input fails loudly instead of silently corrupting results.
var ErrUnknownEdgeEndpoint = errors.New("edge references unknown node")

// Edge is a directed edge between two nodes. Analysis is defined purely
// over arrow direction: sources are nodes with in-degree 0, descendants
// are the forward closure along edges.
type Edge struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
}

// Graph is an immutable directed graph with adjacency indexed both ways.
//
// Duplicate edges in the input are preserved in Edges but collapsed in
// the adjacency lists, so every traversal and degree query is set-based
// and edge multiplicity never affects results.
type Graph struct {
	nodes map[string]struct{}
	succ  map[string][]string // sorted, deduplicated
	pred  map[string][]string // sorted, deduplicated
	edges []Edge
}

// New builds a Graph from a node-ID set and an edge list.
// Returns ErrUnknownEdgeEndpoint (wrapped with the offending edge) if an
// edge references a node outside the node set.
func New(nodeIDs []string, edges []Edge) (*Graph, error) {
	g := &Graph{
		nodes: make(map[string]struct{}, len(nodeIDs)),
		succ:  make(map[string][]string),
		pred:  make(map[string][]string),
		edges: slices.Clone(edges),
	}
	for _, id := range nodeIDs {
		g.nodes[id] = struct{}{}
	}

	outSet := make(map[string]map[string]struct{})
	for _, e := range edges {
		if _, ok := g.nodes[e.From]; !ok {
			return nil, fmt.Errorf("edge %s→%s: %w", e.From, e.To, ErrUnknownEdgeEndpoint)
		}
		if _, ok := g.nodes[e.To]; !ok {
			return nil, fmt.Errorf("edge %s→%s: %w", e.From, e.To, ErrUnknownEdgeEndpoint)
		}
		set := outSet[e.From]
		if set == nil {
			set = make(map[string]struct{})
			outSet[e.From] = set
		}
		set[e.To] = struct{}{}
	}

	for from, tos := range outSet {
		sorted := slices.Sorted(maps.Keys(tos))
		g.succ[from] = sorted
		for _, to := range sorted {
			g.pred[to] = append(g.pred[to], from)
		}
	}
	for _, preds := range g.pred {
		slices.Sort(preds)
	}

	return g, nil
}

// Has reports whether the node is in the graph.
func (g *Graph) Has(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Nodes returns all node IDs in sorted order.
// Sorted iteration keeps every downstream computation reproducible.
func (g *Graph) Nodes() []string {
	return slices.Sorted(maps.Keys(g.nodes))
}

// Edges returns a copy of the original edge list, duplicates included.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of distinct directed edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, tos := range g.succ {
		n += len(tos)
	}
	return n
}

// Successors returns the distinct out-neighbors of the node in sorted
// order. The returned slice must not be modified.
func (g *Graph) Successors(id string) []string { return g.succ[id] }

// Predecessors returns the distinct in-neighbors of the node in sorted
// order. The returned slice must not be modified.
func (g *Graph) Predecessors(id string) []string { return g.pred[id] }

// InDegree returns the number of distinct incoming edges.
func (g *Graph) InDegree(id string) int { return len(g.pred[id]) }

// OutDegree returns the number of distinct outgoing edges.
func (g *Graph) OutDegree(id string) int { return len(g.succ[id]) }

// Sources returns nodes with no incoming edges, sorted.
func (g *Graph) Sources() []string {
	var sources []string
	for id := range g.nodes {
		if len(g.pred[id]) == 0 {
			sources = append(sources, id)
		}
	}
	slices.Sort(sources)
	return sources
}

// Sinks returns nodes with no outgoing edges, sorted.
func (g *Graph) Sinks() []string {
	var sinks []string
	for id := range g.nodes {
		if len(g.succ[id]) == 0 {
			sinks = append(sinks, id)
		}
	}
	slices.Sort(sinks)
	return sinks
}
