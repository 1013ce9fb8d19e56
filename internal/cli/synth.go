package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/thrackle/pkg/cache"
	"github.com/matzehuels/thrackle/pkg/history"
	drawio "github.com/matzehuels/thrackle/pkg/io"
	"github.com/matzehuels/thrackle/pkg/thrackle"
	"github.com/matzehuels/thrackle/pkg/thrackle/synth"
)

type synthOpts struct {
	k       int
	variant string
	output  string
	formats string
	save    string
}

func (c *CLI) synthCommand() *cobra.Command {
	var opts synthOpts

	cmd := &cobra.Command{
		Use:   "synth <path|cycle> <n>",
		Short: "Draw a path or cycle with exactly k crossings",
		Long: `Synth builds a path or cycle on n vertices and draws it with exactly k
crossings. Without -o the drawing is written to stdout as JSON.

Variants:
  path:  linear (default), circular
  cycle: circle (default), star, even-thrackle, max-rectilinear

The star, even-thrackle and max-rectilinear variants ignore --k.`,
		Example: `  thrackle synth path 6 --k 7 -o p6.json
  thrackle synth cycle 5 --k 5 --variant circle -o c5.json --render svg
  thrackle synth cycle 8 --variant even-thrackle --save "C8 thrackle"`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeShapes,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid vertex count %q", args[1])
			}
			req := synth.Request{Shape: args[0], N: n, K: opts.k, Variant: opts.variant}
			return c.runSynth(cmd.Context(), req, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.k, "k", "k", 0, "number of crossings")
	cmd.Flags().StringVar(&opts.variant, "variant", "", "drawing variant (default depends on the shape)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the drawing JSON to this file")
	cmd.Flags().StringVar(&opts.formats, "render", "", "also render to these formats next to -o (comma-separated)")
	cmd.Flags().StringVar(&opts.save, "save", "", "save the drawing as a snapshot with this label")
	_ = cmd.RegisterFlagCompletionFunc("variant", completeVariants)
	_ = cmd.RegisterFlagCompletionFunc("render", completeFormats)

	return cmd
}

func (c *CLI) runSynth(ctx context.Context, req synth.Request, opts synthOpts) error {
	var formats []string
	if opts.formats != "" {
		if opts.output == "" {
			return fmt.Errorf("--render needs --output")
		}
		formats = parseFormats(opts.formats)
		if err := validateFormats(formats); err != nil {
			return err
		}
	}

	ch, err := c.newCache(ctx)
	if err != nil {
		return err
	}
	defer ch.Close()

	g, cached, err := c.synthesize(ctx, ch, req)
	if err != nil {
		return err
	}

	if opts.output == "" {
		return drawio.WriteJSON(g, stdout)
	}
	if err := drawio.ExportJSON(g, opts.output); err != nil {
		return err
	}
	printSuccess("Drew %s %d with %d crossings", req.Shape, req.N, len(g.Crossings()))
	printStats(g, cached)
	printFile(opts.output)

	if len(formats) > 0 {
		base := strings.TrimSuffix(opts.output, ".json")
		if err := c.renderFormats(ctx, g, base, formats, defaultRenderOptions()); err != nil {
			return err
		}
	}

	if opts.save != "" {
		store, err := c.openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close(ctx)
		h := history.New(g, history.Options{Limit: c.config().History.Limit, Store: store})
		snap, err := h.Push(ctx, opts.save)
		if err != nil {
			return err
		}
		printDetail("snapshot %s", snap.ID)
	}

	if opts.formats == "" {
		printNextStep("Render it", fmt.Sprintf("%s render %s -f svg", appName, opts.output))
	}
	return nil
}

// synthesize returns the drawing for req, from the cache when possible. The
// cache holds drawings in their JSON shape.
func (c *CLI) synthesize(ctx context.Context, ch cache.Cache, req synth.Request) (*thrackle.Graph, bool, error) {
	req, err := req.Normalize()
	if err != nil {
		return nil, false, err
	}
	key := cache.NewDefaultKeyer().DrawingKey(c.config().DrawingKey(req))
	gopts := c.graphOptions()

	if data, ok, err := ch.Get(ctx, key); err != nil {
		c.Logger.Debug("cache read failed", "key", key, "err", err)
	} else if ok {
		var d drawio.Drawing
		if err := json.Unmarshal(data, &d); err == nil {
			if g, err := d.ToGraph(gopts); err == nil {
				c.Logger.Debug("cache hit", "key", key)
				return g, true, nil
			}
		}
		c.Logger.Debug("discarding unreadable cache entry", "key", key)
	}

	prog := newProgress(c.Logger)
	g, err := c.synthesizer().Synthesize(ctx, req, gopts)
	if err != nil {
		return nil, false, err
	}
	prog.done("synthesized", "shape", req.Shape, "n", req.N, "variant", req.Variant, "crossings", len(g.Crossings()))

	if data, err := json.Marshal(drawio.FromGraph(g)); err == nil {
		if err := ch.Set(ctx, key, data, c.config().Cache.TTL); err != nil {
			c.Logger.Debug("cache write failed", "key", key, "err", err)
		}
	}
	return g, false, nil
}
