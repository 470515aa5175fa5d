package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/ecsdump/pkg/cache"
	"github.com/matzehuels/ecsdump/pkg/export"
	"github.com/matzehuels/ecsdump/pkg/observability"
)

// ExportWithCacheInfo converts dot to every requested format and reports
// whether every converted format came from the cache. DOT itself is never
// cached, so a DOT-only export is never a hit.
func (r *Runner) ExportWithCacheInfo(ctx context.Context, dot string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, fmt.Errorf("invalid options: %w", err)
	}

	dotHash := cache.Hash([]byte(dot))
	artifacts := make(map[string][]byte, len(opts.Formats))
	var hits, misses int

	for _, format := range opts.Formats {
		if format == string(export.FormatDOT) {
			artifacts[format] = []byte(dot)
			continue
		}

		key := r.Keyer.ArtifactKey(dotHash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				artifacts[format] = data
				hits++
				continue
			}
		}

		misses++
		data, err := r.exportFormat(ctx, dot, export.Format(format), opts.Scale)
		if err != nil {
			return nil, false, err
		}
		artifacts[format] = data
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "error", err)
		}
	}
	return artifacts, hits > 0 && misses == 0, nil
}

// Export is a convenience wrapper that discards the cache hit info.
func (r *Runner) Export(ctx context.Context, dot string, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.ExportWithCacheInfo(ctx, dot, opts)
	return artifacts, err
}

func (r *Runner) exportFormat(ctx context.Context, dot string, f export.Format, scale float64) ([]byte, error) {
	hooks := observability.Export()
	hooks.OnExportStart(ctx, string(f))
	start := time.Now()

	data, err := export.Render(ctx, dot, f, scale)

	elapsed := time.Since(start)
	hooks.OnExportComplete(ctx, string(f), len(data), elapsed, err)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", f, err)
	}
	r.Logger.Debug("exported format",
		"format", string(f),
		"bytes", len(data),
		"duration", elapsed)
	return data, nil
}
