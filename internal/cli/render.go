package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/proofscope/proofscope/pkg/pipeline"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formats   string
		outDir    string
		collapse  bool
		highlight bool
		detailed  bool
		noCache   bool
		refresh   bool
	)

	cmd := &cobra.Command{
		Use:   "render <graph.json>",
		Short: "Render the analyzed graph as DOT or SVG",
		Long: `Render analyzes the graph and draws it with Graphviz: nodes grouped
into same-rank layers by depth, cycle members dashed, and optionally the
longest chain highlighted. Collapsed mode draws one node per strongly
connected component.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}

			opts := pipeline.Options{
				Input:          args[0],
				Name:           filepath.Base(args[0]),
				TopK:           c.topK(0),
				Refresh:        refresh,
				Formats:        parseRenderFormats(formats),
				CollapseCycles: collapse,
				HighlightPath:  highlight,
				Detailed:       detailed,
				Logger:         c.Logger,
			}

			spinner := newSpinnerWithContext(ctx, "Rendering graph...")
			spinner.Start()
			result, err := runner.Execute(ctx, opts)
			if err != nil {
				spinner.StopWithError("Render failed")
				return err
			}
			spinner.StopWithSuccess("Render complete")

			printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.RenderHit)

			base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			for _, format := range opts.Formats {
				data, ok := result.Artifacts[format]
				if !ok {
					printWarning("no %s artifact produced", format)
					continue
				}
				path := filepath.Join(outDir, base+"."+format)
				if err := os.WriteFile(path, data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				printFile(path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&formats, "format", "f", pipeline.FormatSVG, "output formats, comma-separated (dot,svg)")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	cmd.Flags().BoolVar(&collapse, "collapse", false, "draw one node per strongly connected component")
	cmd.Flags().BoolVar(&highlight, "highlight", false, "highlight the longest dependency chain")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "annotate nodes with depth and width")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the analysis cache entirely")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "re-render even if cached artifacts exist")

	return cmd
}

// parseRenderFormats parses the --format flag, defaulting to SVG.
func parseRenderFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}
