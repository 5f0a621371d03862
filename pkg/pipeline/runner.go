package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/live-image-tracking-tools/gefftracks/pkg/cache"
	"github.com/live-image-tracking-tools/gefftracks/pkg/geff"
	"github.com/live-image-tracking-tools/gefftracks/pkg/layer"
	"github.com/live-image-tracking-tools/gefftracks/pkg/render"
	"github.com/live-image-tracking-tools/gefftracks/pkg/tracklet"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Load runs the complete read → decompose → build pipeline with caching.
// Results are cached keyed by the content hash of the source document, so
// editing and re-loading a file never serves stale tracks.
func (r *Runner) Load(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	data, err := os.ReadFile(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", opts.Input, err)
	}
	contentHash := cache.Hash(data)
	cacheKey := cache.TracksKey(contentHash)

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if cached, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var env envelope
			if err := json.Unmarshal(cached, &env); err == nil && env.Tracks != nil {
				opts.Logger.Debug("tracks cache hit", "file", opts.Input, "hash", contentHash)
				return &Result{
					Tracks:      env.Tracks,
					ContentHash: contentHash,
					Stats:       env.Stats,
					CacheInfo:   CacheInfo{TracksHit: true},
				}, nil
			}
			// Corrupt entry, fall through to rebuild
		}
	}

	result := &Result{ContentHash: contentHash}

	// Stage 1: Read
	readStart := time.Now()
	g, axes, err := geff.ImportFile(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	result.Stats.ReadTime = time.Since(readStart)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()

	opts.Logger.Info("read lineage graph",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", result.Stats.ReadTime)

	// Stage 2: Decompose
	decomposeStart := time.Now()
	res, err := tracklet.Decompose(g)
	if err != nil {
		return nil, fmt.Errorf("decompose: %w", err)
	}
	result.Stats.DecomposeTime = time.Since(decomposeStart)
	result.Stats.TrackletCount = res.TrackletCount()
	result.Stats.Divisions = res.Divisions()
	result.Stats.Merges = res.Merges()

	opts.Logger.Info("decomposed into tracklets",
		"tracklets", res.TrackletCount(),
		"divisions", res.Divisions(),
		"merges", res.Merges(),
		"duration", result.Stats.DecomposeTime)

	// Stage 3: Build
	buildStart := time.Now()
	tracks, err := layer.Build(g, res, axes)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Tracks = tracks
	result.Stats.BuildTime = time.Since(buildStart)

	opts.Logger.Info("built tracks table",
		"rows", len(tracks.Rows),
		"duration", result.Stats.BuildTime)

	// Cache the result
	if data, err := json.Marshal(envelope{Tracks: tracks, Stats: result.Stats}); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLTracks)
	}

	return result, nil
}

// Render draws the tracklet parent diagram for a loaded result, with the
// artifact cached keyed by (content hash, format).
func (r *Runner) Render(ctx context.Context, result *Result, format string) ([]byte, bool, error) {
	if err := render.ValidateFormat(format); err != nil {
		return nil, false, err
	}
	cacheKey := cache.RenderKey(result.ContentHash, format)

	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		return data, true, nil
	}

	dot := render.ToDOT(result.Tracks)
	data, err := render.Render(ctx, dot, format)
	if err != nil {
		return nil, false, err
	}
	_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLRender)

	return data, false, nil
}

// Save reconstructs a lineage graph from a tracks table and writes it out
// as a geff document.
func (r *Runner) Save(ctx context.Context, tracks *layer.Tracks, path string) error {
	g, err := tracks.Graph()
	if err != nil {
		return fmt.Errorf("reconstruct: %w", err)
	}

	r.Logger.Info("reconstructed lineage graph",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount())

	if err := geff.ExportFile(path, g, tracks.Axes); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
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
