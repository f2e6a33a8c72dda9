package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kitchenrun/pkg/cache"
	"github.com/matzehuels/kitchenrun/pkg/kitchen"
	"github.com/matzehuels/kitchenrun/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// The CLI, the API and the TUI all use it so caching behaves the same
// everywhere.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is how long rendered artifacts stay cached.
	TTL time.Duration
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
		TTL:    cache.TTLArtifact,
	}
}

// Execute runs the complete plan → price → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1 + 2: Plan and price
	planStart := time.Now()
	snap, err := r.Plan(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("plan: %w", err)
	}
	result.Snapshot = snap
	result.Stats.PlanTime = time.Since(planStart)
	result.Stats.ModuleCount = len(snap.Run.Plan.Lineup) - snap.Run.Plan.FillerCount()
	result.Stats.FillerCount = snap.Run.Plan.FillerCount()
	result.Stats.Total = snap.Run.Plan.Total

	r.Logger.Info("planned run",
		"modules", result.Stats.ModuleCount,
		"fillers", result.Stats.FillerCount,
		"total", fmt.Sprintf("%.2f", result.Stats.Total),
		"subtotal", snap.Price.Subtotal,
		"duration", result.Stats.PlanTime)
	if snap.Overflow {
		r.Logger.Warn("modules exceed the target length",
			"target", snap.Selection.TargetLength,
			"total", snap.Run.Plan.Total)
	}

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, hash, hit, err := r.render(ctx, snap, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.SnapshotHash = hash
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Plan builds a configurator from the options and returns its snapshot.
func (r *Runner) Plan(ctx context.Context, opts Options) (kitchen.Snapshot, error) {
	if err := opts.ValidateForPlan(); err != nil {
		return kitchen.Snapshot{}, err
	}
	hooks := observability.Pipeline()
	hooks.OnPlanStart(ctx, len(opts.Modules), opts.Selection.TargetLength)

	start := time.Now()
	k, err := kitchen.New(opts.Catalog, opts.Modules, *opts.Selection)
	if err != nil {
		return kitchen.Snapshot{}, err
	}
	snap := k.Snapshot()
	elapsed := time.Since(start)

	hooks.OnPlanComplete(ctx, snap.Run.Plan.FillerCount(), snap.Run.Plan.Total, elapsed)
	hooks.OnPriceComplete(ctx, snap.Price.Subtotal, elapsed)
	return snap, nil
}

// RenderWithCacheInfo generates artifacts for a snapshot with caching and
// returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, s kitchen.Snapshot, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	artifacts, _, hit, err := r.render(ctx, s, opts)
	return artifacts, hit, err
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, s kitchen.Snapshot, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, s, opts)
	return artifacts, err
}

func (r *Runner) render(ctx context.Context, s kitchen.Snapshot, opts Options) (map[string][]byte, string, bool, error) {
	hash, err := cache.HashJSON(s)
	if err != nil {
		return nil, "", false, fmt.Errorf("hash snapshot: %w", err)
	}
	keys := make(map[string]string, len(opts.Formats))
	for _, format := range opts.Formats {
		ko, err := opts.ArtifactKeyOpts(format)
		if err != nil {
			return nil, "", false, err
		}
		keys[format] = r.Keyer.ArtifactKey(hash, ko)
	}

	hooks := observability.Pipeline()
	cacheHooks := observability.Cache()

	// Try to get all formats from cache
	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			data, hit, err := r.Cache.Get(ctx, keys[format])
			if err != nil {
				r.Logger.Debug("cache read failed", "format", format, "err", err)
				break
			}
			if !hit {
				cacheHooks.OnCacheMiss(ctx, "artifact")
				break
			}
			cacheHooks.OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, hash, true, nil
		}
	}

	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := RenderSnapshot(s, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, "", false, err
	}

	for format, data := range rendered {
		if err := r.Cache.Set(ctx, keys[format], data, r.artifactTTL()); err != nil {
			r.Logger.Debug("cache write failed", "format", format, "err", err)
			continue
		}
		cacheHooks.OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, hash, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) artifactTTL() time.Duration {
	if r.TTL <= 0 {
		return cache.TTLArtifact
	}
	return r.TTL
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
