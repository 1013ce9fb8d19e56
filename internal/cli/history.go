package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	drawio "github.com/matzehuels/thrackle/pkg/io"
)

func (c *CLI) historyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"snapshots"},
		Short:   "Manage saved drawing snapshots",
		Long: `History lists and restores snapshots saved with "synth --save" or through
the HTTP API. The store is selected by history.backend (--history-backend).`,
	}

	cmd.AddCommand(c.historyListCommand())
	cmd.AddCommand(c.historyShowCommand())
	cmd.AddCommand(c.historyRestoreCommand())
	cmd.AddCommand(c.historyDeleteCommand())

	return cmd
}

func (c *CLI) historyListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List snapshots, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			snaps, err := store.List(ctx)
			if err != nil {
				return err
			}
			if len(snaps) == 0 {
				printInfo("No snapshots")
				return nil
			}
			tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tLABEL\tVERTICES\tEDGES\tCROSSINGS\tCREATED")
			for _, s := range snaps {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\n",
					s.ID, s.Label, s.Vertices, s.Edges, s.Crossings, s.CreatedAt.Local().Format("2006-01-02 15:04"))
			}
			return tw.Flush()
		},
	}
}

func (c *CLI) historyShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show the crossing statistics of a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			snap, err := store.Load(ctx, args[0])
			if err != nil {
				return fmt.Errorf("snapshot %s: %w", args[0], err)
			}
			g, err := snap.Graph(c.graphOptions())
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, StyleTitle.Render(snap.Label)+" "+StyleDim.Render(snap.ID))
			printSummary(g)
			return nil
		},
	}
}

func (c *CLI) historyRestoreCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "restore <id>",
		Short: "Write a snapshot's drawing as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			snap, err := store.Load(ctx, args[0])
			if err != nil {
				return fmt.Errorf("snapshot %s: %w", args[0], err)
			}
			g, err := snap.Graph(c.graphOptions())
			if err != nil {
				return err
			}
			if output == "" {
				return drawio.WriteJSON(g, stdout)
			}
			if err := drawio.ExportJSON(g, output); err != nil {
				return err
			}
			printSuccess("Restored %q", snap.Label)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func (c *CLI) historyDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete snapshots",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			for _, id := range args {
				if err := store.Delete(ctx, id); err != nil {
					return fmt.Errorf("snapshot %s: %w", id, err)
				}
				printSuccess("Deleted %s", id)
			}
			return nil
		},
	}
}
