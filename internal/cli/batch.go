package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/thrackle/pkg/cache"
	drawio "github.com/matzehuels/thrackle/pkg/io"
	"github.com/matzehuels/thrackle/pkg/thrackle/synth"
)

// batchFile is the TOML shape of a batch:
//
//	output = "out"
//	render = ["svg"]
//
//	[[job]]
//	shape = "cycle"
//	n = 7
//	k = 12
//	output = "c7.json"
type batchFile struct {
	Output string     `toml:"output"`
	Render []string   `toml:"render"`
	Jobs   []batchJob `toml:"job"`
}

type batchJob struct {
	synth.Request
	Output string `toml:"output"`
}

// name is the job's default output file name.
func (j batchJob) name() string {
	if j.Output != "" {
		return j.Output
	}
	name := fmt.Sprintf("%s%d_k%d", j.Shape, j.N, j.K)
	if j.Variant != "" {
		name += "_" + j.Variant
	}
	return name + ".json"
}

func loadBatch(path string) (*batchFile, error) {
	var b batchFile
	md, err := toml.DecodeFile(path, &b)
	if err != nil {
		return nil, fmt.Errorf("read batch %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("read batch %s: unknown keys %v", path, undecoded)
	}
	if len(b.Jobs) == 0 {
		return nil, fmt.Errorf("read batch %s: no [[job]] entries", path)
	}
	if err := validateFormats(b.Render); err != nil {
		return nil, err
	}
	return &b, nil
}

type batchResult struct {
	job       batchJob
	path      string
	crossings int
	cached    bool
	err       error
}

func (c *CLI) batchCommand() *cobra.Command {
	var (
		output   string
		parallel int
		keepOn   bool
	)

	cmd := &cobra.Command{
		Use:   "batch <jobs.toml>",
		Short: "Run the synthesis jobs listed in a TOML file",
		Long: `Batch reads [[job]] tables with shape, n, k, variant and an optional
output file name, synthesizes them concurrently and writes each drawing as
JSON into the output directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBatch(args[0])
			if err != nil {
				return err
			}
			if output != "" {
				b.Output = output
			}
			if b.Output == "" {
				b.Output = "."
			}
			results, err := c.runBatch(cmd.Context(), b, parallel, keepOn)
			printBatch(results)
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory (overrides the file's output)")
	cmd.Flags().IntVarP(&parallel, "parallel", "p", runtime.NumCPU(), "jobs to run at once")
	cmd.Flags().BoolVar(&keepOn, "keep-going", false, "run every job even after a failure")

	return cmd
}

// runBatch runs the jobs of b. Without keepGoing the first failure cancels
// the jobs still pending.
func (c *CLI) runBatch(ctx context.Context, b *batchFile, parallel int, keepGoing bool) ([]batchResult, error) {
	ch, err := c.newCache(ctx)
	if err != nil {
		return nil, err
	}
	defer ch.Close()

	results := make([]batchResult, len(b.Jobs))
	eg, egCtx := errgroup.WithContext(ctx)
	if parallel > 0 {
		eg.SetLimit(parallel)
	}

	var failures sync.Map
	for i, job := range b.Jobs {
		results[i].job = job
		eg.Go(func() error {
			res := c.runJob(egCtx, ch, b, job)
			results[i] = res
			if res.err == nil {
				return nil
			}
			failures.Store(i, res.err)
			if keepGoing {
				return nil
			}
			return fmt.Errorf("job %d (%s %d): %w", i+1, job.Shape, job.N, res.err)
		})
	}
	if err := eg.Wait(); err != nil {
		return results, err
	}

	var n int
	failures.Range(func(any, any) bool { n++; return true })
	if n > 0 {
		return results, fmt.Errorf("%d of %d jobs failed", n, len(b.Jobs))
	}
	return results, nil
}

func (c *CLI) runJob(ctx context.Context, ch cache.Cache, b *batchFile, job batchJob) batchResult {
	res := batchResult{job: job}
	if err := ctx.Err(); err != nil {
		res.err = err
		return res
	}

	g, cached, err := c.synthesize(ctx, ch, job.Request)
	if err != nil {
		res.err = err
		return res
	}
	res.crossings = len(g.Crossings())
	res.cached = cached
	res.path = filepath.Join(b.Output, job.name())

	var buf strings.Builder
	if err := drawio.WriteJSON(g, &buf); err != nil {
		res.err = err
		return res
	}
	if err := writeOutput(res.path, []byte(buf.String())); err != nil {
		res.err = err
		return res
	}
	if len(b.Render) > 0 {
		base := strings.TrimSuffix(res.path, ".json")
		res.err = c.renderFormats(ctx, g, base, b.Render, defaultRenderOptions())
	}
	return res
}

func printBatch(results []batchResult) {
	for _, r := range results {
		label := fmt.Sprintf("%s %d k=%d", r.job.Shape, r.job.N, r.job.K)
		switch {
		case errors.Is(r.err, context.Canceled):
			printWarning("%s: skipped", label)
		case r.err != nil:
			printError("%s: %s", label, r.err)
		default:
			status := iconFresh
			if r.cached {
				status = iconCached
			}
			printSuccess("%s: %d crossings (%s)", label, r.crossings, status)
			printFile(r.path)
		}
	}
}
