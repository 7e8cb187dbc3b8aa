package render

import (
	"strings"
	"testing"

	"github.com/proofscope/proofscope/pkg/analysis"
	"github.com/proofscope/proofscope/pkg/depgraph"
)

func buildGraph(t *testing.T, nodes []string, edges []depgraph.Edge) (*depgraph.Graph, *analysis.Report) {
	t.Helper()
	g, err := depgraph.New(nodes, edges)
	if err != nil {
		t.Fatalf("depgraph.New() error = %v", err)
	}
	return g, analysis.Analyze(g)
}

func TestToDOTBasic(t *testing.T) {
	g, report := buildGraph(t, []string{"a", "b", "c"}, []depgraph.Edge{
		{From: "a", To: "b"}, {From: "b", To: "c"},
	})
	dot := ToDOT(g, report, Options{})

	if !strings.HasPrefix(dot, "digraph deps {") {
		t.Errorf("ToDOT() missing digraph header:\n%s", dot)
	}
	for _, want := range []string{`"a" [`, `"b" [`, `"c" [`, `"a" -> "b";`, `"b" -> "c";`} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTRanksByDepth(t *testing.T) {
	// Diamond: b and c share depth 1 and must share a rank.
	g, report := buildGraph(t, []string{"a", "b", "c", "d"}, []depgraph.Edge{
		{From: "a", To: "b"}, {From: "a", To: "c"},
		{From: "b", To: "d"}, {From: "c", To: "d"},
	})
	dot := ToDOT(g, report, Options{})

	if !strings.Contains(dot, `{ rank=same; "b"; "c" }`) {
		t.Errorf("ToDOT() missing shared rank for depth-1 layer:\n%s", dot)
	}
}

func TestToDOTCycleMembersDashed(t *testing.T) {
	g, report := buildGraph(t, []string{"a", "b", "c"}, []depgraph.Edge{
		{From: "a", To: "b"}, {From: "b", To: "a"}, {From: "b", To: "c"},
	})
	dot := ToDOT(g, report, Options{})

	if !strings.Contains(dot, "dashed") {
		t.Errorf("ToDOT() should dash cycle members:\n%s", dot)
	}
	// Ordinary nodes keep the default style attribute set.
	if strings.Count(dot, "dashed") != 2 {
		t.Errorf("ToDOT() dashed %d nodes, want the 2 cycle members:\n%s",
			strings.Count(dot, "dashed"), dot)
	}
}

func TestToDOTCollapseCycles(t *testing.T) {
	g, report := buildGraph(t, []string{"a", "b", "c"}, []depgraph.Edge{
		{From: "a", To: "b"}, {From: "b", To: "a"}, {From: "b", To: "c"},
	})
	dot := ToDOT(g, report, Options{CollapseCycles: true})

	if strings.Contains(dot, `"b" [`) {
		t.Errorf("ToDOT() should not draw collapsed member b:\n%s", dot)
	}
	if !strings.Contains(dot, "(+1 more)") {
		t.Errorf("ToDOT() should label the component with its member count:\n%s", dot)
	}
	if !strings.Contains(dot, `"a" -> "c"`) {
		t.Errorf("ToDOT() missing projected component edge:\n%s", dot)
	}
}

func TestToDOTCriticalPathHighlight(t *testing.T) {
	g, report := buildGraph(t, []string{"a", "b", "c"}, []depgraph.Edge{
		{From: "a", To: "b"}, {From: "b", To: "c"},
	})
	dot := ToDOT(g, report, Options{HighlightCriticalPath: true})

	if !strings.Contains(dot, `"a" -> "b" [color="#C6504B", penwidth=2.5];`) {
		t.Errorf("ToDOT() missing highlighted path edge:\n%s", dot)
	}
}

func TestToDOTDetailedLabels(t *testing.T) {
	g, report := buildGraph(t, []string{"a", "b"}, []depgraph.Edge{{From: "a", To: "b"}})
	dot := ToDOT(g, report, Options{Detailed: true})

	if !strings.Contains(dot, `depth: 1`) {
		t.Errorf("ToDOT() detailed labels missing depth:\n%s", dot)
	}
	if !strings.Contains(dot, `width: 1`) {
		t.Errorf("ToDOT() detailed labels missing width:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="10.00 5.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))

	if !strings.Contains(out, `viewBox="0 0 100.00 50.00"`) {
		t.Errorf("normalizeViewBox() viewBox not re-anchored: %s", out)
	}
	if !strings.Contains(out, `width="100" height="50"`) {
		t.Errorf("normalizeViewBox() dimensions not normalized: %s", out)
	}
}

func TestNormalizeViewBoxNoMatch(t *testing.T) {
	in := []byte(`<svg><g/></svg>`)
	if got := normalizeViewBox(in); string(got) != string(in) {
		t.Errorf("normalizeViewBox() altered SVG without a viewBox: %s", got)
	}
}
