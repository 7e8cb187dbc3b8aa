package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/proofscope/proofscope/pkg/pipeline"
	"github.com/proofscope/proofscope/pkg/store"
)

// errNoStore is returned when a history command runs without a
// configured archive store.
var errNoStore = errors.New("no archive store configured: set store.mongo_uri in config.toml")

// historyCommand creates the history command for browsing archived reports.
func (c *CLI) historyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse archived analysis reports",
	}

	cmd.AddCommand(c.historyListCommand())
	cmd.AddCommand(c.historyShowCommand())
	cmd.AddCommand(c.historyDeleteCommand())

	return cmd
}

// openStore opens the configured archive store or fails with errNoStore.
func (c *CLI) openStore(cmd *cobra.Command) (store.Store, error) {
	st, err := c.newStore(cmd.Context())
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, errNoStore
	}
	return st, nil
}

// historyListCommand creates the "history list" subcommand.
func (c *CLI) historyListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived reports, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			records, err := st.List(ctx, limit)
			if err != nil {
				return fmt.Errorf("list archive: %w", err)
			}
			if len(records) == 0 {
				printInfo("Archive is empty")
				return nil
			}

			for _, rec := range records {
				name := rec.Name
				if name == "" {
					name = rec.GraphHash[:12]
				}
				printInfo("%s", StyleHighlight.Render(name))
				printDetail("id: %s", rec.ID)
				printDetail("%d nodes, %d edges, archived %s", rec.NodeCount, rec.EdgeCount, rec.CreatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of records to show (0 = all)")

	return cmd
}

// historyShowCommand creates the "history show" subcommand.
func (c *CLI) historyShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show an archived report's summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			rec, err := st.Get(ctx, args[0])
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return fmt.Errorf("no archived report with id %q", args[0])
				}
				return err
			}

			if rec.Report == nil {
				return fmt.Errorf("record %s has no report", rec.ID)
			}
			printSuccess("Archived report %s", rec.ID)
			printReport(&pipeline.Result{
				Report:    rec.Report,
				GraphHash: rec.GraphHash,
			})
			printNewline()
			printKeyValue("archived", rec.CreatedAt.Format("2006-01-02 15:04:05"))
			printKeyValue("hash", rec.GraphHash[:12])
			return nil
		},
	}
}

// historyDeleteCommand creates the "history delete" subcommand.
func (c *CLI) historyDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an archived report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			if err := st.Delete(ctx, args[0]); err != nil {
				return fmt.Errorf("delete record: %w", err)
			}
			printSuccess("Deleted %s", args[0])
			return nil
		},
	}
}
