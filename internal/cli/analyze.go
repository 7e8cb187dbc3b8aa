package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/proofscope/proofscope/pkg/analysis"
	"github.com/proofscope/proofscope/pkg/pipeline"
)

// analyzeCommand creates the analyze command.
func (c *CLI) analyzeCommand() *cobra.Command {
	var (
		topK    int
		outPath string
		name    string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <graph.json>",
		Short: "Compute the structural report for a dependency graph",
		Long: `Analyze reads a dependency graph from a JSON node/edge document and
computes its structural report: depth layers, sources and sinks, widths,
reachability counts, bottleneck scores, and the longest dependency chain.
Graphs with cycles are condensed first, so cyclic input never fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}

			opts := pipeline.Options{
				Input:   args[0],
				Name:    name,
				TopK:    c.topK(topK),
				Refresh: refresh,
				Formats: []string{pipeline.FormatJSON},
				Logger:  c.Logger,
			}
			if opts.Name == "" {
				opts.Name = filepath.Base(args[0])
			}

			spinner := newSpinnerWithContext(ctx, "Analyzing graph...")
			spinner.Start()
			result, err := runner.Execute(ctx, opts)
			if err != nil {
				spinner.StopWithError("Analysis failed")
				return err
			}
			spinner.StopWithSuccess("Analysis complete")

			printReport(result)

			if outPath != "" {
				if err := os.WriteFile(outPath, result.Artifacts[pipeline.FormatJSON], 0o644); err != nil {
					return fmt.Errorf("write report: %w", err)
				}
				printFile(outPath)
			}

			printNewline()
			printNextStep("Render it", fmt.Sprintf("proofscope render %s --format svg", args[0]))
			return nil
		},
	}

	cmd.Flags().IntVarP(&topK, "top", "k", 0, "size of the top-node summaries (0 = config default)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write the report JSON to this file")
	cmd.Flags().StringVar(&name, "name", "", "label for the archive record (default: input filename)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the analysis cache entirely")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if a cached report exists")

	return cmd
}

// topK resolves the effective top-k: flag first, then config, then the
// pipeline default.
func (c *CLI) topK(flag int) int {
	if flag != 0 {
		return flag
	}
	if c.Config.TopK != 0 {
		return c.Config.TopK
	}
	return pipeline.DefaultTopK
}

// printReport renders the structural report summary to stdout.
func printReport(result *pipeline.Result) {
	r := result.Report

	printStats(r.NodeCount, r.EdgeCount, result.CacheInfo.ReportHit)
	printNewline()

	printKeyValue("depth", fmt.Sprintf("%d", r.GraphDepth))
	printKeyValue("layers", fmt.Sprintf("%d", r.NumLayers))
	printKeyValue("sources", fmt.Sprintf("%d", len(r.Sources)))
	printKeyValue("sinks", fmt.Sprintf("%d", len(r.Sinks)))
	printKeyValue("density", fmt.Sprintf("%.4f", r.Density))
	printKeyValue("components", fmt.Sprintf("%d", r.WeakComponents))

	if r.HasCycles {
		printKeyValue("cycles", StyleWarning.Render(fmt.Sprintf("%d (largest %d nodes)", r.NumNontrivialSCCs, r.LargestSCCSize)))
	} else {
		printKeyValue("cycles", "none")
	}

	if len(r.CriticalPath) > 0 {
		printNewline()
		printInfo("Longest chain (%d steps)", r.GraphDepth)
		printChain(r.CriticalPath)
	}

	if len(r.TopBottlenecks) > 0 {
		printNewline()
		printInfo("Top bottlenecks")
		printScoreTable(r.TopBottlenecks)
	}

	if result.RecordID != "" {
		printNewline()
		printDetail("Archived as %s", result.RecordID)
	}
}

// printScoreTable prints ranked node scores as aligned rows.
func printScoreTable(scores []analysis.NodeScore) {
	shown := scores
	if len(shown) > 5 {
		shown = shown[:5]
	}
	for i, s := range shown {
		rank := StyleDim.Render(fmt.Sprintf("%2d.", i+1))
		fmt.Println("  " + rank + " " + StyleValue.Render(s.ID) + " " + StyleNumber.Render(fmt.Sprintf("%.2f", s.Score)))
	}
}
