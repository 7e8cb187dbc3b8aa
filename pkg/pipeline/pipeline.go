// Package pipeline provides the core analysis pipeline: load → analyze
// → render, shared by the CLI and any serving layer so caching and
// archiving behave identically at every entry point.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read the dependency graph from a JSON document
//  2. Analyze: run the structural analysis engine (pkg/analysis)
//  3. Render: produce output artifacts (report JSON, DOT, SVG)
//
// Each stage can be run independently or as part of the complete
// pipeline. The analyze and render stages are cached by the graph's
// content hash; the engine itself stays a pure function of its input.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:   "mathlib.json",
//	    Formats: []string{pipeline.FormatJSON, pipeline.FormatSVG},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts[pipeline.FormatSVG]
package pipeline

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/proofscope/proofscope/pkg/analysis"
	"github.com/proofscope/proofscope/pkg/depgraph"
)

// Format constants for output artifacts.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// DefaultTopK is the default size of the report's top-node summaries.
const DefaultTopK = analysis.DefaultTopK

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for job queues and API
// requests; runtime-only fields are excluded.
type Options struct {
	// Load options. Graph takes precedence over Input when both are
	// set; Input names a graph JSON file.
	Input string          `json:"input,omitempty"`
	Graph *depgraph.Graph `json:"-"`

	// Name labels the archive record, typically the input filename.
	Name string `json:"name,omitempty"`

	// Analyze options
	TopK    int    `json:"top_k,omitempty"`
	Target  string `json:"target,omitempty"` // compute the longest chain ending at this node
	Refresh bool   `json:"refresh,omitempty"`

	// Render options
	Formats        []string `json:"formats,omitempty"`
	CollapseCycles bool     `json:"collapse_cycles,omitempty"`
	HighlightPath  bool     `json:"highlight_path,omitempty"`
	Detailed       bool     `json:"detailed,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks the options and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Graph == nil && o.Input == "" {
		return fmt.Errorf("either Graph or Input must be set")
	}
	if o.TopK == 0 {
		o.TopK = DefaultTopK
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	for _, f := range o.Formats {
		if !ValidFormats[f] {
			return fmt.Errorf("unsupported format %q", f)
		}
	}
	o.validated = true
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the loaded dependency graph.
	Graph *depgraph.Graph

	// GraphHash is the content hash of the graph.
	GraphHash string

	// Report is the structural analysis.
	Report *analysis.Report

	// TargetPath is the longest chain ending at Options.Target, empty
	// when no target was requested.
	TargetPath []string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// RecordID is the archive record's ID when a store is configured.
	RecordID string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount   int
	EdgeCount   int
	LoadTime    time.Duration
	AnalyzeTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ReportHit bool
	RenderHit bool
}
