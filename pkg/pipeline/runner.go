package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/penpath/pkg/cache"
	"github.com/matzehuels/penpath/pkg/hpgl"
	"github.com/matzehuels/penpath/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
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

// plotEntry is the cached form of an optimized document.
type plotEntry struct {
	Text        string       `json:"text"`
	Stats       Stats        `json:"stats"`
	OutOfBounds []hpgl.Point `json:"out_of_bounds,omitempty"`
}

// Execute runs the complete pipeline with caching and renders opts.Formats.
func (r *Runner) Execute(ctx context.Context, doc []byte, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result, err := r.ProcessWithCacheInfo(ctx, doc, opts)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, result, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(start)
	result.CacheInfo.RenderHit = hit

	r.Logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ProcessWithCacheInfo runs [Process] through the plot cache.
func (r *Runner) ProcessWithCacheInfo(ctx context.Context, doc []byte, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	docHash := cache.Hash(doc)
	cacheKey := r.Keyer.PlotKey(docHash, opts.PlotKeyOpts())

	if !opts.Refresh {
		if res, ok := r.cachedPlot(ctx, cacheKey); ok {
			res.DocHash = docHash
			res.CacheInfo.PlotHit = true
			observability.Cache().OnCacheHit(ctx, "plot")
			r.Logger.Debug("plot cache hit", "doc", docHash[:12])
			return res, nil
		}
		observability.Cache().OnCacheMiss(ctx, "plot")
	}

	res, err := Process(ctx, doc, opts)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(plotEntry{Text: res.Text, Stats: res.Stats, OutOfBounds: res.OutOfBounds})
	if err == nil && r.Cache.Set(ctx, cacheKey, data, cache.TTLPlot) == nil {
		observability.Cache().OnCacheSet(ctx, "plot", len(data))
	}
	return res, nil
}

func (r *Runner) cachedPlot(ctx context.Context, key string) (*Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		return nil, false
	}
	var entry plotEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}
	res, err := fromText(entry.Text)
	if err != nil {
		return nil, false
	}
	res.Stats = entry.Stats
	res.OutOfBounds = entry.OutOfBounds
	return res, true
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, res *Result, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		if format == FormatHPGL {
			artifacts[format] = []byte(res.Text)
			continue
		}
		key := r.Keyer.ArtifactKey(res.PlotHash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				artifacts[format] = data
				observability.Cache().OnCacheHit(ctx, "artifact")
				continue
			}
		}
		allCached = false

		var data []byte
		_, err := stage(ctx, observability.StageRender, func() error {
			var err error
			data, err = RenderFormat(ctx, res, format, opts)
			return err
		})
		if err != nil {
			return nil, false, err
		}
		artifacts[format] = data
		if r.Cache.Set(ctx, key, data, cache.TTLArtifact) == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return artifacts, allCached, nil
}

// Optimize is a convenience wrapper returning only the optimized text.
func (r *Runner) Optimize(ctx context.Context, doc []byte, opts Options) (string, error) {
	res, err := r.ProcessWithCacheInfo(ctx, doc, opts)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
