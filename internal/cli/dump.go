package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/ecsdump/pkg/ecs"
	"github.com/matzehuels/ecsdump/pkg/errors"
	"github.com/matzehuels/ecsdump/pkg/export"
	"github.com/matzehuels/ecsdump/pkg/pipeline"
)

// dumpOpts holds the flags of the dump command.
type dumpOpts struct {
	dir      string // output directory
	formats  string // comma-separated formats
	theme    string
	rawNames bool
	scale    float64
	noCache  bool
	jobs     int // concurrent renders
}

// dumpJob is one graph written by the dump command.
type dumpJob struct {
	name string // file name without extension
	opts pipeline.Options
}

// dumpCommand creates the dump command, which writes every graph of a
// manifest into a directory.
func (c *CLI) dumpCommand() *cobra.Command {
	opts := dumpOpts{
		dir:   "ecsdump-out",
		theme: pipeline.DefaultTheme,
		scale: pipeline.DefaultScale,
		jobs:  4,
	}

	cmd := &cobra.Command{
		Use:   "dump <manifest>",
		Short: "Write every schedule, data, event and render graph to a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDump(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.dir, "output", "o", opts.dir, "output directory")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): dot (default), svg, png, pdf (comma-separated)")
	cmd.Flags().StringVar(&opts.theme, "theme", opts.theme, "color theme")
	cmd.Flags().BoolVar(&opts.rawNames, "raw-names", false, "keep module paths in system and type names")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the exported-image cache")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", opts.jobs, "number of graphs rendered concurrently")

	return cmd
}

func (c *CLI) runDump(ctx context.Context, path string, opts dumpOpts) error {
	formats := splitList(opts.formats)
	if len(formats) == 0 {
		formats = []string{string(export.FormatDOT)}
	}
	if err := pipeline.ValidateFormats(formats); err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	app, err := runner.Load(path)
	if err != nil {
		return err
	}
	jobs, err := dumpJobs(app)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(opts.dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	prog := newProgress(c.Logger)
	var (
		mu      sync.Mutex
		written []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.jobs, 1))
	for _, job := range jobs {
		g.Go(func() error {
			p := job.opts
			p.Formats = slices.Clone(formats)
			p.Theme = opts.theme
			p.RawNames = opts.rawNames
			p.Scale = opts.scale

			result, err := runner.Execute(gctx, app, p)
			if err != nil {
				return fmt.Errorf("%s: %w", job.name, err)
			}
			for _, format := range formats {
				out := filepath.Join(opts.dir, job.name+"."+format)
				if err := c.writeArtifact(out, result.Artifacts[format], format == string(export.FormatDOT)); err != nil {
					return err
				}
				mu.Lock()
				written = append(written, out)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	prog.done(fmt.Sprintf("Wrote %d files to %s", len(written), opts.dir))
	return nil
}

// dumpJobs lists one job per schedule, then the data and event graphs, then
// the render graph if the app has one.
func dumpJobs(app ecs.App) ([]dumpJob, error) {
	labels, err := scheduleLabels(app)
	if err != nil {
		return nil, err
	}

	jobs := make([]dumpJob, 0, len(labels)+3)
	seen := make(map[string]ecs.Label, len(labels))
	for _, label := range labels {
		name := "schedule-" + fileSafe(string(label))
		if err := errors.ValidateOutputName(name); err != nil {
			return nil, err
		}
		if other, dup := seen[name]; dup {
			return nil, errors.New(errors.ErrCodeInvalidPath, "schedules %s and %s map to the same file name %s", other, label, name)
		}
		seen[name] = label
		jobs = append(jobs, dumpJob{
			name: name,
			opts: pipeline.Options{Kind: pipeline.KindSchedule, Schedule: string(label)},
		})
	}

	jobs = append(jobs,
		dumpJob{name: "data", opts: pipeline.Options{Kind: pipeline.KindData}},
		dumpJob{name: "events", opts: pipeline.Options{Kind: pipeline.KindEvents}},
	)
	if _, ok := app.RenderApp(); ok {
		jobs = append(jobs, dumpJob{name: "render-graph", opts: pipeline.Options{Kind: pipeline.KindRender}})
	}
	return jobs, nil
}

// fileSafe maps a label to a file name, keeping letters, digits, dashes,
// dots and underscores.
func fileSafe(label string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		}
		return '_'
	}, label)
}
