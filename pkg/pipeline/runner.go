package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/proofscope/proofscope/pkg/analysis"
	"github.com/proofscope/proofscope/pkg/cache"
	"github.com/proofscope/proofscope/pkg/depgraph"
	"github.com/proofscope/proofscope/pkg/graphio"
	"github.com/proofscope/proofscope/pkg/observability"
	"github.com/proofscope/proofscope/pkg/render"
	"github.com/proofscope/proofscope/pkg/store"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for its collaborators - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Store, when non-nil, archives every completed run.
	Store store.Store
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → analyze → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	g, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Graph = g
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()

	// Content hash for cache keys and the archive
	graphData, err := graphio.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("hash graph: %w", err)
	}
	result.GraphHash = cache.Hash(graphData)

	r.Logger.Info("loaded graph",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", result.Stats.LoadTime)

	// Stage 2: Analyze
	analyzeStart := time.Now()
	report, reportHit, err := r.AnalyzeWithCacheInfo(ctx, g, result.GraphHash, opts)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	result.Report = report
	result.Stats.AnalyzeTime = time.Since(analyzeStart)
	result.CacheInfo.ReportHit = reportHit

	r.Logger.Info("analyzed graph",
		"layers", report.NumLayers,
		"cycles", report.NumNontrivialSCCs,
		"cached", reportHit,
		"duration", result.Stats.AnalyzeTime)

	if opts.Target != "" {
		path, err := analysis.PathTo(g, opts.Target)
		if err != nil {
			return nil, fmt.Errorf("path to %s: %w", opts.Target, err)
		}
		result.TargetPath = path
	}

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, g, report, result.GraphHash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	if r.Store != nil {
		result.RecordID = uuid.NewString()
		rec := &store.Record{
			ID:        result.RecordID,
			GraphHash: result.GraphHash,
			Name:      opts.Name,
			NodeCount: g.NodeCount(),
			EdgeCount: g.EdgeCount(),
			Report:    report,
			CreatedAt: time.Now().UTC(),
		}
		if err := r.Store.Put(ctx, rec); err != nil {
			// Archiving is best effort; the run itself succeeded.
			r.Logger.Warn("archive report", "err", err)
			result.RecordID = ""
		}
	}

	return result, nil
}

// Load reads the graph named by the options, either pre-built or from
// the input file.
func (r *Runner) Load(ctx context.Context, opts Options) (*depgraph.Graph, error) {
	if opts.Graph != nil {
		return opts.Graph, nil
	}

	start := time.Now()
	observability.Analysis().OnLoadStart(ctx, opts.Input)
	g, err := graphio.ReadFile(opts.Input)
	if err != nil {
		observability.Analysis().OnLoadComplete(ctx, opts.Input, 0, 0, time.Since(start), err)
		return nil, err
	}
	observability.Analysis().OnLoadComplete(ctx, opts.Input, g.NodeCount(), g.EdgeCount(), time.Since(start), nil)
	return g, nil
}

// AnalyzeWithCacheInfo runs the analysis with caching and returns cache
// hit info. Refresh bypasses the cache read but still refreshes the
// entry.
func (r *Runner) AnalyzeWithCacheInfo(ctx context.Context, g *depgraph.Graph, graphHash string, opts Options) (*analysis.Report, bool, error) {
	cacheKey := r.Keyer.ReportKey(graphHash, cache.ReportKeyOpts{TopK: opts.TopK})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var report analysis.Report
			if err := json.Unmarshal(data, &report); err == nil {
				observability.Cache().OnCacheHit(ctx, "report")
				return &report, true, nil
			}
			// Undecodable entry, recompute
			_ = r.Cache.Delete(ctx, cacheKey)
		}
	}
	observability.Cache().OnCacheMiss(ctx, "report")

	start := time.Now()
	observability.Analysis().OnAnalyzeStart(ctx, graphHash, g.NodeCount())
	report := analysis.AnalyzeWithOptions(g, analysis.Options{TopK: opts.TopK})
	observability.Analysis().OnAnalyzeComplete(ctx, graphHash, report.HasCycles, time.Since(start), nil)

	if data, err := json.Marshal(report); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.DefaultReportTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "report", len(data))
		}
	}

	return report, false, nil
}

// Analyze is a convenience wrapper that discards the cache hit info.
func (r *Runner) Analyze(ctx context.Context, g *depgraph.Graph, graphHash string, opts Options) (*analysis.Report, error) {
	report, _, err := r.AnalyzeWithCacheInfo(ctx, g, graphHash, opts)
	return report, err
}

// RenderWithCacheInfo produces the requested artifacts. DOT and SVG are
// cached by graph hash and render options; the JSON report artifact is
// marshaled directly from the report.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g *depgraph.Graph, report *analysis.Report, graphHash string, opts Options) (map[string][]byte, bool, error) {
	start := time.Now()
	observability.Analysis().OnRenderStart(ctx, opts.Formats)

	artifacts := make(map[string][]byte, len(opts.Formats))
	allHit := len(opts.Formats) > 0
	var dot string

	for _, format := range opts.Formats {
		if format == FormatJSON {
			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				observability.Analysis().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
				return nil, false, fmt.Errorf("marshal report: %w", err)
			}
			artifacts[FormatJSON] = data
			allHit = false
			continue
		}

		cacheKey := r.Keyer.RenderKey(graphHash, cache.RenderKeyOpts{
			Format:        format,
			CollapseCycle: opts.CollapseCycles,
			Highlight:     opts.HighlightPath,
			Detailed:      opts.Detailed,
		})
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "render")
				artifacts[format] = data
				continue
			}
		}
		observability.Cache().OnCacheMiss(ctx, "render")
		allHit = false

		if dot == "" {
			dot = render.ToDOT(g, report, render.Options{
				CollapseCycles:        opts.CollapseCycles,
				HighlightCriticalPath: opts.HighlightPath,
				Detailed:              opts.Detailed,
			})
		}

		var data []byte
		switch format {
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			svg, err := render.RenderSVG(dot)
			if err != nil {
				observability.Analysis().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
				return nil, false, fmt.Errorf("render svg: %w", err)
			}
			data = svg
		}
		artifacts[format] = data
		if err := r.Cache.Set(ctx, cacheKey, data, cache.DefaultRenderTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "render", len(data))
		}
	}

	observability.Analysis().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return artifacts, allHit, nil
}
