package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/proofscope/proofscope/pkg/analysis"
	"github.com/proofscope/proofscope/pkg/graphio"
)

// pathCommand creates the path command.
func (c *CLI) pathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path <graph.json> <node>",
		Short: "Show the longest dependency chain ending at a node",
		Long: `Path computes the longest chain of prerequisites ending at the given
node. Only the node's ancestors are considered, so the chain explains
what the node transitively builds on. Cycles along the way are condensed
and represented by one member each.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, target := args[0], args[1]

			g, err := graphio.ReadFile(input)
			if err != nil {
				return err
			}

			path, err := analysis.PathTo(g, target)
			if err != nil {
				if errors.Is(err, analysis.ErrTargetNotFound) {
					return fmt.Errorf("node %q not in graph", target)
				}
				return err
			}

			printSuccess("Chain to %s (%d steps)", StyleHighlight.Render(target), len(path)-1)
			printNewline()
			for i, node := range path {
				prefix := "  "
				if i > 0 {
					prefix = "  " + StyleDim.Render(iconArrow) + " "
				}
				fmt.Println(prefix + StyleValue.Render(node))
			}
			return nil
		},
	}
}
