// Package pkg provides the core libraries for Legenda chart legend layout.
//
// # Overview
//
// Legenda arranges chart legend entries into a bounded rectangle: it searches
// row/column configurations, measures text with live font metrics, shrinks
// fonts and truncates entries until the legend fits, then hands absolute
// positions to a painter. The pkg directory is organized into three areas:
//
//  1. [legend] - The layout engine (collection, solving, auto-fit, placement)
//  2. [chart], [chartfile], [text], [geom] - The models the engine reads
//  3. [pipeline], [render], [cache], [store] - Orchestration and output
//
// # Architecture
//
// The typical data flow through Legenda:
//
//	Chart document (TOML/JSON)
//	         ↓
//	    [chartfile] package (decode + build the chart model)
//	         ↓
//	    [legend] package (collect entries, solve the layout)
//	         ↓
//	    [render] package (paint SVG/PNG/JSON artifacts)
//
// # Quick Start
//
// Collect entries from a chart and render a fitted legend:
//
//	import (
//	    "github.com/legenda-dev/legenda/pkg/chart"
//	    "github.com/legenda-dev/legenda/pkg/geom"
//	    "github.com/legenda-dev/legenda/pkg/legend"
//	    "github.com/legenda-dev/legenda/pkg/render"
//	    "github.com/legenda-dev/legenda/pkg/text"
//	)
//
//	// 1. Declare the chart
//	ch := &chart.Chart{Series: []*chart.Series{
//	    chart.NewSeries("Revenue", chart.KindLine).AddPoint(1, 10).AddPoint(2, 14),
//	    chart.NewSeries("Costs", chart.KindBar).AddPoint(1, 6).AddPoint(2, 8),
//	}}
//
//	// 2. Collect legend entries
//	lg := legend.New("default")
//	_ = lg.Collect(ch)
//
//	// 3. Solve the layout for the offered box
//	m := text.NewFixedMeasurer()
//	cfg := lg.Resolve(m, geom.Size{W: 300, H: 200})
//
//	// 4. Render to SVG
//	svg := render.RenderSVG(lg, m, geom.NewRect(0, 0, cfg.Size.W, cfg.Size.H))
//
// # Main Packages
//
// ## Layout Engine
//
// [legend] - The core. Entry collection from series (one entry per series, or
// per point when the kind demands it), the arrangement solver with its four
// policies (column, row, tall table, wide table), the fit evaluator that
// measures candidate grids, the auto-fit controller that shrinks fonts and
// truncates entries, and the position assigner that produces absolute rects.
// Painting and hot regions stay behind the [legend.Painter] and
// [legend.RegionRegistry] interfaces.
//
// ## Models
//
// [chart] - Series and data points as the read-only view legend collection
// runs over, plus the per-kind capability registry (per-point entries,
// stacking, default markers).
//
// [text] - Font descriptors and the [text.Measurer] interface. FaceMeasurer
// measures with real OpenType faces; FixedMeasurer gives deterministic
// glyph-grid metrics for tests and headless use.
//
// [geom] - Point/Size/Rect float64 value types shared by everything.
//
// [chartfile] - The chart document schema (TOML and JSON) and the builder
// that turns documents into charts and legends.
//
// ## Orchestration and Output
//
// [pipeline] - The load → resolve → render Runner used by CLI and server.
// Ensures consistent behavior across all entry points and caches every stage.
//
// [render] - Painter implementations: SVG markup, raster PNG, and a JSON
// layout export for programmatic consumers.
//
// [cache] - Content-addressed caching of documents, layouts, and artifacts.
// Memory, file, Redis, and null backends behind one interface.
//
// [store] - Chart document persistence for the HTTP API. Memory and MongoDB
// backends.
//
// ## Support
//
// [errors] - Structured error codes shared across packages.
//
// [observability] - Pluggable pipeline/cache/HTTP hooks, no-op by default.
//
// [buildinfo] - Version metadata injected at build time.
//
// # Common Workflows
//
// Load a chart document and run the full pipeline:
//
//	runner := pipeline.NewRunner(cache.NewMemoryCache(), nil, nil)
//	opts := pipeline.Options{Path: "chart.toml", Formats: []string{"svg"}}
//	opts.SetLayoutDefaults()
//	opts.SetRenderDefaults()
//	result, _ := runner.Execute(ctx, opts)
//
// Negotiate space with a chart area before docking:
//
//	size := lg.OptimalSize(m, geom.Size{W: 400, H: 300})
//
// Hit-test painted regions:
//
//	var regions legend.Regions
//	render.RenderSVG(lg, m, bounds, render.WithSVGRegions(&regions))
//	if r, ok := regions.HitTest(geom.Point{X: 12, Y: 30}); ok {
//	    fmt.Println("clicked", r.Kind)
//	}
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/legend/...   # The layout engine only
//	go test -run Example       # Examples only
//
// [legend]: https://pkg.go.dev/github.com/legenda-dev/legenda/pkg/legend
// [chart]: https://pkg.go.dev/github.com/legenda-dev/legenda/pkg/chart
// [chartfile]: https://pkg.go.dev/github.com/legenda-dev/legenda/pkg/chartfile
// [text]: https://pkg.go.dev/github.com/legenda-dev/legenda/pkg/text
// [geom]: https://pkg.go.dev/github.com/legenda-dev/legenda/pkg/geom
// [pipeline]: https://pkg.go.dev/github.com/legenda-dev/legenda/pkg/pipeline
// [render]: https://pkg.go.dev/github.com/legenda-dev/legenda/pkg/render
// [cache]: https://pkg.go.dev/github.com/legenda-dev/legenda/pkg/cache
// [store]: https://pkg.go.dev/github.com/legenda-dev/legenda/pkg/store
// [errors]: https://pkg.go.dev/github.com/legenda-dev/legenda/pkg/errors
// [observability]: https://pkg.go.dev/github.com/legenda-dev/legenda/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/legenda-dev/legenda/pkg/buildinfo
// [legend.Painter]: https://pkg.go.dev/github.com/legenda-dev/legenda/pkg/legend#Painter
// [legend.RegionRegistry]: https://pkg.go.dev/github.com/legenda-dev/legenda/pkg/legend#RegionRegistry
// [text.Measurer]: https://pkg.go.dev/github.com/legenda-dev/legenda/pkg/text#Measurer
package pkg
