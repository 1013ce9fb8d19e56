package cli

import (
	"context"
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/thrackle/pkg/history"
	"github.com/matzehuels/thrackle/pkg/thrackle"
	"github.com/matzehuels/thrackle/pkg/thrackle/synth"
)

func (c *CLI) viewCommand() *cobra.Command {
	var (
		k       int
		variant string
	)

	cmd := &cobra.Command{
		Use:   "view <path|cycle> <n>",
		Short: "Step through crossing targets interactively",
		Long: `View draws a path or cycle in the terminal and redraws it as you change the
vertex count, the crossing target and the variant. Press s to save the
current drawing as a snapshot.`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeShapes,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid vertex count %q", args[1])
			}
			req, err := synth.Request{Shape: args[0], N: n, K: k, Variant: variant}.Normalize()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			// Rejections show in the view; keep them out of the log.
			gopts := c.graphOptions()
			gopts.Advisor = nil
			sz := c.synthesizer()
			draw := func(ctx context.Context, r synth.Request) (*thrackle.Graph, error) {
				return sz.Synthesize(ctx, r, gopts)
			}

			m := newViewModel(ctx, req, draw, c.saveSnapshot)
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	}

	cmd.Flags().IntVarP(&k, "k", "k", 0, "initial number of crossings")
	cmd.Flags().StringVar(&variant, "variant", "", "initial drawing variant")
	_ = cmd.RegisterFlagCompletionFunc("variant", completeVariants)

	return cmd
}

func (c *CLI) saveSnapshot(ctx context.Context, g *thrackle.Graph, label string) (string, error) {
	store, err := c.openStore(ctx)
	if err != nil {
		return "", err
	}
	defer store.Close(ctx)
	snap := history.NewSnapshot(g, label)
	if err := store.Save(ctx, snap); err != nil {
		return "", err
	}
	return snap.ID, nil
}
