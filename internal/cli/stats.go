package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	drawio "github.com/matzehuels/thrackle/pkg/io"
)

func (c *CLI) statsCommand() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "stats <drawing.json|->",
		Short: "Show crossing statistics of a drawing",
		Long: `Stats recomputes the crossings of a drawing and classifies them as legal,
neighbor (edges sharing an endpoint), self (an edge crossing itself) and
repeated (a pair of edges crossing more than once).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(args[0])
			if err != nil {
				return err
			}
			defer in.Close()

			g, err := drawio.ReadJSON(in, c.graphOptions())
			if err != nil {
				return err
			}

			fmt.Fprintln(stdout, StyleTitle.Render(args[0]))
			printSummary(g)
			if list && len(g.Crossings()) > 0 {
				fmt.Fprintln(stdout, crossingTable(g.Crossings()))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "list every crossing")
	return cmd
}
