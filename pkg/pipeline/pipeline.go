// Package pipeline provides the core rendering pipeline for Legenda.
//
// This package implements the complete load → resolve → render pipeline
// that can be used by CLI and API components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read and decode a chart document from a file or raw bytes
//  2. Resolve: Solve the legend layout against the offered box
//  3. Render: Generate output in various formats (SVG, PNG, JSON)
//
// Each stage can be run independently or as part of the complete
// pipeline. All three stages are deterministic, so every cache entry is
// content-addressed and never goes stale.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Path:    "chart.toml",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Load only
//	doc, err := runner.Load(ctx, opts)
//
//	// Resolve with an existing document
//	cfg, err := runner.Resolve(ctx, doc, opts)
//
//	// Render with an existing layout
//	artifacts, err := runner.Render(ctx, cfg, doc, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/legenda-dev/legenda/pkg/cache"
	"github.com/legenda-dev/legenda/pkg/chartfile"
	"github.com/legenda-dev/legenda/pkg/errors"
	"github.com/legenda-dev/legenda/pkg/legend"
	"github.com/legenda-dev/legenda/pkg/text"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default offered box width in layout units.
	// The rendered artifact shrinks to the solved legend size, so the
	// box only bounds the layout search.
	DefaultWidth = 800.0

	// DefaultHeight is the default offered box height in layout units.
	DefaultHeight = 600.0

	// DefaultScale is the default raster scale factor for PNG output.
	DefaultScale = 2.0

	// DefaultLegend is the legend rendered when none is named.
	DefaultLegend = legend.DefaultName
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the rendering pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Path         string           `json:"path,omitempty"`
	Source       []byte           `json:"source,omitempty"`
	SourceFormat chartfile.Format `json:"source_format,omitempty"`
	Refresh      bool             `json:"refresh,omitempty"`

	// Layout options
	Legend string  `json:"legend,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	Canvas  string   `json:"canvas,omitempty"`

	// Runtime options (not serialized)
	Logger   *log.Logger   `json:"-"`
	Measurer text.Measurer `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the decoded chart document.
	Document *chartfile.Document

	// DocHash is the content hash of the canonical document encoding.
	DocHash string

	// Layout is the solved legend configuration.
	Layout legend.Configuration

	// LayoutHash is the content hash of the serialized layout.
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	SeriesCount int
	EntryCount  int
	LoadTime    time.Duration
	ResolveTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LoadHit   bool // Whether the decoded document came from cache
	LayoutHit bool // Whether the solved layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for loading a document.
func (o *Options) ValidateForLoad() error {
	if o.Path == "" && len(o.Source) == 0 {
		return fmt.Errorf("path or source is required")
	}
	switch o.SourceFormat {
	case "", chartfile.FormatTOML, chartfile.FormatJSON:
	default:
		return fmt.Errorf("invalid source format: %q (must be toml or json)", o.SourceFormat)
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// SourceName names the document source for logs and instrumentation.
func (o *Options) SourceName() string {
	if o.Path != "" {
		return o.Path
	}
	return "inline"
}

// SetLayoutDefaults sets default values for layout resolution.
func (o *Options) SetLayoutDefaults() {
	if o.Legend == "" {
		o.Legend = DefaultLegend
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Measurer == nil {
		o.Measurer = text.NewFaceMeasurer(nil)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout resolution.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if o.Width < 0 || o.Height < 0 {
		return fmt.Errorf("offered box cannot be negative: %gx%g", o.Width, o.Height)
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale <= 0 {
		return fmt.Errorf("scale must be positive: %g", o.Scale)
	}
	return errors.ValidateColor(o.Canvas)
}

// LayoutKeyOpts returns cache key options for layout resolution.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Legend:   o.Legend,
		Width:    o.Width,
		Height:   o.Height,
		Measurer: measurerID(o.Measurer),
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
// Scale only changes raster output, so it is keyed for PNG alone.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format: format,
		Canvas: o.Canvas,
	}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}

// measurerID identifies the metric source in layout cache keys. Layouts
// solved from different metric sources must not share entries.
func measurerID(m text.Measurer) string {
	if m == nil {
		return ""
	}
	return fmt.Sprintf("%T", m)
}
