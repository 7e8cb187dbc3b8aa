package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/proofscope/proofscope/pkg/pipeline"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "inspect <graph.json>",
		Short: "Browse per-node metrics interactively",
		Long: `Inspect analyzes the graph and opens an interactive browser over its
nodes, showing depth, width, reachability, bottleneck score, and role
for each one. Press "s" to cycle the sort column.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}

			opts := pipeline.Options{
				Input:   args[0],
				TopK:    c.topK(0),
				Formats: []string{pipeline.FormatJSON},
				Logger:  c.Logger,
			}

			spinner := newSpinnerWithContext(ctx, "Analyzing graph...")
			spinner.Start()
			result, err := runner.Execute(ctx, opts)
			spinner.Stop()
			if err != nil {
				return err
			}

			if result.Report.NodeCount == 0 {
				printInfo("Graph is empty, nothing to browse")
				return nil
			}

			model := NewNodeListModel(result.Report)
			if _, err := tea.NewProgram(model, tea.WithContext(ctx)).Run(); err != nil {
				return fmt.Errorf("node browser: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the analysis cache entirely")

	return cmd
}
