package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ecsdump/pkg/cache"
	"github.com/matzehuels/ecsdump/pkg/dump"
	"github.com/matzehuels/ecsdump/pkg/ecs"
	"github.com/matzehuels/ecsdump/pkg/ecs/memory"
	"github.com/matzehuels/ecsdump/pkg/errors"
	"github.com/matzehuels/ecsdump/pkg/manifest"
	"github.com/matzehuels/ecsdump/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger, so multiple
// goroutines can share one with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Load reads the manifest at path and builds its app.
func (r *Runner) Load(path string) (*memory.App, error) {
	m, err := manifest.LoadFile(path)
	if err != nil {
		return nil, err
	}
	app, err := m.Build()
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	r.Logger.Debug("loaded manifest",
		"path", path,
		"schedules", len(m.Schedules),
		"components", len(m.Components))
	return app, nil
}

// Execute runs the dump and export stages.
func (r *Runner) Execute(ctx context.Context, app ecs.App, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{Kind: opts.Kind}

	dumpStart := time.Now()
	out, err := r.Dump(ctx, app, opts)
	if err != nil {
		return nil, err
	}
	result.DOT = out
	result.Stats.DOTBytes = len(out)
	result.Stats.DumpTime = time.Since(dumpStart)

	exportStart := time.Now()
	artifacts, hit, err := r.ExportWithCacheInfo(ctx, out, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheHit = hit
	result.Stats.ExportTime = time.Since(exportStart)

	r.Logger.Info("exported graph",
		"kind", opts.Kind,
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.ExportTime)

	return result, nil
}

// Dump renders the graph opts.Kind selects.
func (r *Runner) Dump(ctx context.Context, app ecs.App, opts Options) (string, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return "", fmt.Errorf("invalid options: %w", err)
	}

	hooks := observability.Dump()
	hooks.OnDumpStart(ctx, opts.Kind)
	start := time.Now()

	var (
		out string
		err error
	)
	switch opts.Kind {
	case KindSchedule:
		out, err = dump.ScheduleGraphDOT(app, ecs.Label(opts.Schedule), opts.ScheduleSettings())
	case KindData:
		out, err = dump.DataGraphDOT(app, opts.DataSettings())
	case KindEvents:
		out, err = dump.EventsGraphDOT(app, opts.EventSettings())
	case KindRender:
		out, err = dump.RenderGraphDOT(app, opts.RenderGraphSettings())
	}

	elapsed := time.Since(start)
	hooks.OnDumpComplete(ctx, opts.Kind, len(out), elapsed, err)
	if err != nil {
		return "", err
	}

	r.Logger.Info("dumped graph",
		"kind", opts.Kind,
		"bytes", len(out),
		"duration", elapsed)
	return out, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
