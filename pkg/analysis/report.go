package analysis

import (
	"fmt"
	"slices"
	"strings"

	"github.com/proofscope/proofscope/pkg/depgraph"
	"github.com/proofscope/proofscope/pkg/depgraph/condense"
)

// DefaultTopK is the number of entries in each of the report's top-node
// summaries when Options.TopK is unset.
const DefaultTopK = 20

// Options configures report assembly.
type Options struct {
	// TopK bounds the TopDepths/TopBottlenecks/TopReachability
	// summaries. Zero means DefaultTopK; negative disables them.
	TopK int
}

// NodeScore pairs a node with a metric value for the top-node summaries.
type NodeScore struct {
	ID    string  `json:"id" bson:"id"`
	Score float64 `json:"score" bson:"score"`
}

// Report is the complete structural analysis of one dependency graph.
// All per-node maps are keyed by original node IDs; component-level
// values (depth, reachability, bottleneck) are broadcast to every
// member of a collapsed cycle, while width stays node-local.
type Report struct {
	NodeCount int `json:"node_count" bson:"node_count"`
	EdgeCount int `json:"edge_count" bson:"edge_count"`

	Depths    map[string]int   `json:"depths" bson:"depths"`
	Layers    map[int][]string `json:"layers" bson:"layers"`
	NumLayers int              `json:"num_layers" bson:"num_layers"`

	Sources []string       `json:"sources" bson:"sources"`
	Sinks   []string       `json:"sinks" bson:"sinks"`
	Widths  map[string]int `json:"widths" bson:"widths"`

	Reachability map[string]int     `json:"reachability" bson:"reachability"`
	Bottlenecks  map[string]float64 `json:"bottlenecks" bson:"bottlenecks"`

	// CriticalPath is the longest directed path. When the input had
	// cycles the path runs over the condensation with one
	// representative member per collapsed component, so its length
	// undercounts by the internal size of any cycle it traverses.
	CriticalPath []string `json:"critical_path" bson:"critical_path"`
	GraphDepth   int      `json:"graph_depth" bson:"graph_depth"`

	HasCycles         bool `json:"has_cycles" bson:"has_cycles"`
	NumNontrivialSCCs int  `json:"num_nontrivial_sccs" bson:"num_nontrivial_sccs"`
	LargestSCCSize    int  `json:"largest_scc_size" bson:"largest_scc_size"`

	Density        float64 `json:"density" bson:"density"`
	WeakComponents int     `json:"weak_components" bson:"weak_components"`

	TopDepths       []NodeScore `json:"top_depths,omitempty" bson:"top_depths,omitempty"`
	TopBottlenecks  []NodeScore `json:"top_bottlenecks,omitempty" bson:"top_bottlenecks,omitempty"`
	TopReachability []NodeScore `json:"top_reachability,omitempty" bson:"top_reachability,omitempty"`
}

// Analyze runs the full structural analysis of g with default options.
func Analyze(g *depgraph.Graph) *Report {
	return AnalyzeWithOptions(g, Options{})
}

// AnalyzeWithOptions runs the full structural analysis.
//
// Cyclic input never fails: the graph is condensed by strongly
// connected components and the depth/critical-path passes run on the
// condensation, which is acyclic by construction. Empty and single-node
// graphs produce well-defined zero-valued reports.
func AnalyzeWithOptions(g *depgraph.Graph, opts Options) *Report {
	report := &Report{
		NodeCount: g.NodeCount(),
		EdgeCount: g.EdgeCount(),
	}
	if g.NodeCount() == 0 {
		report.Depths = map[string]int{}
		report.Layers = map[int][]string{}
		report.Widths = map[string]int{}
		report.Reachability = map[string]int{}
		report.Bottlenecks = map[string]float64{}
		return report
	}

	comps := condense.SCC(g)
	cond := condense.Build(g, comps)
	report.HasCycles = comps.NontrivialCount() > 0
	report.NumNontrivialSCCs = comps.NontrivialCount()
	report.LargestSCCSize = comps.LargestSize()

	// Pure graphs run directly on the input; collapsed ones on the
	// condensation. For pure input the two are isomorphic, but the
	// dispatch keeps the acyclic-only passes honest.
	dag := g
	if report.HasCycles {
		dag = cond.Graph
	}

	condDepths, err := Depths(dag)
	if err != nil {
		// Unreachable: a condensation is acyclic by construction.
		panic(fmt.Sprintf("analysis: %v", err))
	}
	report.Depths = broadcast(g, cond, condDepths)
	report.Layers = Layers(report.Depths)
	report.NumLayers = NumLayers(report.Depths)

	report.Sources = SourceNodes(g, cond)
	report.Sinks = SinkNodes(g, cond)
	report.Widths = Widths(g)
	report.Reachability = ReachabilityCounts(g, cond)
	report.Bottlenecks = BottleneckScores(g, cond)

	path, err := CriticalPath(dag)
	if err != nil {
		panic(fmt.Sprintf("analysis: %v", err))
	}
	report.CriticalPath = path
	report.GraphDepth = GraphDepth(path)

	report.Density = density(g)
	report.WeakComponents = g.WeakComponentCount()

	k := opts.TopK
	if k == 0 {
		k = DefaultTopK
	}
	if k > 0 {
		report.TopDepths = topNodes(intScores(report.Depths), k)
		report.TopBottlenecks = topNodes(report.Bottlenecks, k)
		report.TopReachability = topNodes(intScores(report.Reachability), k)
	}

	return report
}

// broadcast expands a per-component value map onto every member node.
func broadcast(g *depgraph.Graph, cond *condense.Condensation, perRep map[string]int) map[string]int {
	out := make(map[string]int, g.NodeCount())
	for _, id := range g.Nodes() {
		out[id] = perRep[cond.Rep(id)]
	}
	return out
}

// density is |E| / (|V| * (|V|-1)) over distinct edges, 0 when fewer
// than two nodes.
func density(g *depgraph.Graph) float64 {
	n := float64(g.NodeCount())
	if n <= 1 {
		return 0
	}
	return float64(g.EdgeCount()) / (n * (n - 1))
}

func intScores(values map[string]int) map[string]float64 {
	out := make(map[string]float64, len(values))
	for id, v := range values {
		out[id] = float64(v)
	}
	return out
}

// topNodes returns up to k entries sorted by score descending, ID
// ascending on ties.
func topNodes(scores map[string]float64, k int) []NodeScore {
	ranked := make([]NodeScore, 0, len(scores))
	for id, score := range scores {
		ranked = append(ranked, NodeScore{ID: id, Score: score})
	}
	slices.SortFunc(ranked, func(a, b NodeScore) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return strings.Compare(a.ID, b.ID)
		}
	})
	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}

// PathTo returns the longest dependency chain ending at target,
// tolerating cycles the same way Analyze does: the ancestor closure is
// condensed first and the path is reported over representatives.
// Returns ErrTargetNotFound if target is not in the graph.
func PathTo(g *depgraph.Graph, target string) ([]string, error) {
	sub, err := AncestorClosure(g, target)
	if err != nil {
		return nil, err
	}
	cond := condense.Condense(sub)
	path, err := CriticalPath(cond.Graph)
	if err != nil {
		panic(fmt.Sprintf("analysis: %v", err))
	}
	return path, nil
}
