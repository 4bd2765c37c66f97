package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/legenda-dev/legenda/pkg/cache"
	"github.com/legenda-dev/legenda/pkg/chartfile"
	"github.com/legenda-dev/legenda/pkg/legend"
	"github.com/legenda-dev/legenda/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
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

// Execute runs the complete load → resolve → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}
	obs := observability.Pipeline()
	source := opts.SourceName()

	// Stage 1: Load
	loadStart := time.Now()
	obs.OnLoadStart(ctx, source)
	doc, loadHit, err := r.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		obs.OnLoadComplete(ctx, source, 0, time.Since(loadStart), err)
		return nil, fmt.Errorf("load: %w", err)
	}
	obs.OnLoadComplete(ctx, source, len(doc.Series), time.Since(loadStart), nil)
	result.Document = doc
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.SeriesCount = len(doc.Series)
	result.CacheInfo.LoadHit = loadHit

	// Compute document hash for cache keys and API responses
	if docHash, err := DocumentHash(doc); err == nil {
		result.DocHash = docHash
	}

	r.Logger.Info("loaded chart document",
		"series", len(doc.Series),
		"legends", len(doc.Legends),
		"duration", result.Stats.LoadTime)

	// Stage 2: Resolve
	resolveStart := time.Now()
	obs.OnResolveStart(ctx, opts.Legend)
	cfg, layoutHit, err := r.ResolveWithCacheInfo(ctx, doc, opts)
	if err != nil {
		obs.OnResolveComplete(ctx, opts.Legend, time.Since(resolveStart), err)
		return nil, fmt.Errorf("resolve: %w", err)
	}
	obs.OnResolveComplete(ctx, opts.Legend, time.Since(resolveStart), nil)
	result.Layout = cfg
	result.Stats.ResolveTime = time.Since(resolveStart)
	result.Stats.EntryCount = cfg.Items
	result.CacheInfo.LayoutHit = layoutHit

	if data, err := json.Marshal(cfg); err == nil {
		result.LayoutHash = cache.Hash(data)
	}

	r.Logger.Info("resolved layout",
		"columns", cfg.Columns,
		"items", cfg.Items,
		"fits", cfg.Fits,
		"duration", result.Stats.ResolveTime)

	// Stage 3: Render
	renderStart := time.Now()
	obs.OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, cfg, doc, opts)
	if err != nil {
		obs.OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
		return nil, fmt.Errorf("render: %w", err)
	}
	obs.OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), nil)
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadWithCacheInfo loads a chart document with caching and returns cache hit info.
// Cached documents are stored in their canonical JSON encoding, keyed by
// the raw source bytes.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) (*chartfile.Document, bool, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	raw, format, err := readSource(opts)
	if err != nil {
		return nil, false, err
	}
	cacheKey := r.Keyer.DocumentKey(cache.Hash(raw), cache.DocumentKeyOpts{Format: string(format)})

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			doc, err := chartfile.Decode(data, chartfile.FormatJSON)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "doc")
				return doc, true, nil // Cache hit
			}
		}
		observability.Cache().OnCacheMiss(ctx, "doc")
	}

	// Decode
	doc, err := chartfile.Decode(raw, format)
	if err != nil {
		return nil, false, err
	}

	// Cache the canonical encoding
	if !opts.Refresh {
		if data, err := doc.Encode(chartfile.FormatJSON); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLDocument)
			observability.Cache().OnCacheSet(ctx, "doc", len(data))
		}
	}

	return doc, false, nil // Cache miss
}

// Load is a convenience wrapper that calls LoadWithCacheInfo and discards the cache hit info.
func (r *Runner) Load(ctx context.Context, opts Options) (*chartfile.Document, error) {
	doc, _, err := r.LoadWithCacheInfo(ctx, opts)
	return doc, err
}

// ResolveWithCacheInfo solves the legend layout with caching and returns cache hit info.
func (r *Runner) ResolveWithCacheInfo(ctx context.Context, doc *chartfile.Document, opts Options) (legend.Configuration, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return legend.Configuration{}, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key
	docHash, err := DocumentHash(doc)
	if err != nil {
		return legend.Configuration{}, false, err
	}
	cacheKey := r.Keyer.LayoutKey(docHash, opts.LayoutKeyOpts())

	// Try cache first
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached legend.Configuration
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	// Resolve
	cfg, err := ResolveLayout(doc, opts)
	if err != nil {
		return legend.Configuration{}, false, err
	}

	// Cache the result
	if !opts.Refresh {
		if data, err := json.Marshal(cfg); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return cfg, false, nil // Cache miss
}

// Resolve is a convenience wrapper that calls ResolveWithCacheInfo and discards the cache hit info.
func (r *Runner) Resolve(ctx context.Context, doc *chartfile.Document, opts Options) (legend.Configuration, error) {
	cfg, _, err := r.ResolveWithCacheInfo(ctx, doc, opts)
	return cfg, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, cfg legend.Configuration, doc *chartfile.Document, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from layout data
	layoutData, err := json.Marshal(cfg)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	if !opts.Refresh {
		allCached := true
		artifacts := make(map[string][]byte)

		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}

		if allCached && len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil // All artifacts from cache
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	// Render all formats
	rendered, err := RenderArtifacts(cfg, doc, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	if !opts.Refresh {
		for format, data := range rendered {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, cfg legend.Configuration, doc *chartfile.Document, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, cfg, doc, opts)
	return artifacts, err
}

// DocumentHash returns the content hash of the canonical document
// encoding. Equivalent TOML and JSON sources hash the same.
func DocumentHash(doc *chartfile.Document) (string, error) {
	data, err := doc.Encode(chartfile.FormatJSON)
	if err != nil {
		return "", fmt.Errorf("encode document for hashing: %w", err)
	}
	return cache.Hash(data), nil
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
