// Package graphio is the canonical serialization format for dependency
// graphs: a JSON document with a node list and an edge list. It is the
// on-disk input format of the CLI, the payload hashed for cache keys,
// and the shape stored alongside reports in the archive.
package graphio

import (
	"slices"

	"github.com/proofscope/proofscope/pkg/depgraph"
)

// Node kinds emitted by formal-math extractors. Kind is carried through
// serialization untouched; the analysis engine ignores it.
const (
	KindTheorem    = "theorem"
	KindDefinition = "definition"
	KindAxiom      = "axiom"
)

// Document is the serialized form of a dependency graph.
//
// The format is human-readable and round-trip stable: import then
// export produces the same document with nodes sorted by ID.
type Document struct {
	Nodes []Node          `json:"nodes" bson:"nodes"`
	Edges []depgraph.Edge `json:"edges" bson:"edges"`
}

// Node is one declaration in the graph. Only ID is required.
type Node struct {
	ID    string         `json:"id" bson:"id"`
	Label string         `json:"label,omitempty" bson:"label,omitempty"` // display label, defaults to ID
	Kind  string         `json:"kind,omitempty" bson:"kind,omitempty"`
	Meta  map[string]any `json:"meta,omitempty" bson:"meta,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// FromGraph converts a graph to its serialization format. Nodes are
// sorted by ID for deterministic output; labels and kinds are not
// recoverable from the graph model and come back empty.
func FromGraph(g *depgraph.Graph) Document {
	ids := g.Nodes()
	doc := Document{
		Nodes: make([]Node, len(ids)),
		Edges: g.Edges(),
	}
	for i, id := range ids {
		doc.Nodes[i] = Node{ID: id}
	}
	slices.SortFunc(doc.Edges, func(a, b depgraph.Edge) int {
		if a.From != b.From {
			if a.From < b.From {
				return -1
			}
			return 1
		}
		if a.To < b.To {
			return -1
		}
		if a.To > b.To {
			return 1
		}
		return 0
	})
	return doc
}

// ToGraph builds the analysis graph from a document. Returns
// depgraph.ErrUnknownEdgeEndpoint (wrapped) if an edge references a
// node missing from the node list.
func ToGraph(doc Document) (*depgraph.Graph, error) {
	ids := make([]string, len(doc.Nodes))
	for i, n := range doc.Nodes {
		ids[i] = n.ID
	}
	return depgraph.New(ids, doc.Edges)
}
