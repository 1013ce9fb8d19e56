package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/thrackle/pkg/cache"
	drawio "github.com/matzehuels/thrackle/pkg/io"
	"github.com/matzehuels/thrackle/pkg/render"
	"github.com/matzehuels/thrackle/pkg/render/dot"
	"github.com/matzehuels/thrackle/pkg/thrackle"
)

type renderOpts struct {
	output  string
	formats string
	dot     dot.Options
}

func defaultRenderOptions() dot.Options {
	return dot.Options{Labels: true, Crossings: true, Scale: 1}
}

func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{dot: defaultRenderOptions()}

	cmd := &cobra.Command{
		Use:   "render <drawing.json>",
		Short: "Render a drawing with Graphviz",
		Long: `Render converts a drawing to DOT, SVG, PDF or PNG. Vertices, bends and
crossings keep their exact coordinates; crossings are marked green when
legal and red otherwise. PDF and PNG need rsvg-convert on PATH.`,
		Example: `  thrackle render c5.json
  thrackle render c5.json -f svg,png -o out/c5 --scale 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(opts.formats)
			if err := validateFormats(formats); err != nil {
				return err
			}
			g, err := drawio.ImportJSON(args[0], c.graphOptions())
			if err != nil {
				return err
			}
			c.Logger.Debug("loaded drawing", "vertices", g.VertexCount(), "edges", g.EdgeCount())
			return c.renderFormats(cmd.Context(), g, basePath(opts.output, args[0]), formats, opts.dot)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path (default: input without extension)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), dot, pdf, png (comma-separated)")
	cmd.Flags().BoolVar(&opts.dot.Labels, "labels", opts.dot.Labels, "show vertex labels")
	cmd.Flags().BoolVar(&opts.dot.Crossings, "crossings", opts.dot.Crossings, "mark crossings")
	cmd.Flags().Float64Var(&opts.dot.Scale, "scale", opts.dot.Scale, "coordinate scale factor")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

// parseFormats splits a comma-separated format list. Empty means svg.
func parseFormats(s string) []string {
	if s == "" {
		return []string{"svg"}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func validateFormats(formats []string) error {
	for _, f := range formats {
		if !slices.Contains(render.Formats, f) {
			return fmt.Errorf("invalid format: %s (must be one of %s)", f, strings.Join(render.Formats, ", "))
		}
	}
	return nil
}

// basePath derives the output path without extension. An empty output uses
// the input path; a known format extension on output is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if slices.Contains(render.Formats, strings.TrimPrefix(ext, ".")) || ext == ".json" {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// renderFormats writes base.<format> for each format, reusing cached
// artifacts of identical drawings.
func (c *CLI) renderFormats(ctx context.Context, g *thrackle.Graph, base string, formats []string, opts dot.Options) error {
	ch, err := c.newCache(ctx)
	if err != nil {
		return err
	}
	defer ch.Close()

	var buf strings.Builder
	if err := drawio.WriteJSON(g, &buf); err != nil {
		return err
	}
	drawingHash := cache.Hash([]byte(buf.String()))
	keyer := cache.NewDefaultKeyer()

	for _, format := range formats {
		key := keyer.RenderKey(drawingHash, cache.RenderKeyOpts{
			Format: format, Labels: opts.Labels, Crossings: opts.Crossings, Scale: opts.Scale,
		})
		data, ok, err := ch.Get(ctx, key)
		if err != nil || !ok {
			sp := newSpinner(ctx, "Rendering "+format)
			sp.Start()
			data, err = dot.Render(ctx, g, format, opts)
			sp.Stop()
			if err != nil {
				return fmt.Errorf("%s: %w", format, err)
			}
			if err := ch.Set(ctx, key, data, c.config().Cache.TTL); err != nil {
				c.Logger.Debug("cache write failed", "key", key, "err", err)
			}
		}

		path := base + "." + format
		if err := writeOutput(path, data); err != nil {
			return err
		}
		c.Logger.Debug("generated", "path", path, "bytes", len(data), "cached", ok)
		printFile(path)
	}
	return nil
}

func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// openInput returns stdin for "-" and the named file otherwise.
func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}
