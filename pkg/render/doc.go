// Package render provides the painter backends that turn an arranged
// legend into output artifacts.
//
// # Overview
//
// The layout engine in [pkg/legend] owns geometry only; this package
// implements its Painter interface for concrete formats:
//
//   - SVG: vector output built up element by element ([RenderSVG])
//   - PNG: raster output drawn with fogleman/gg ([RenderPNG])
//   - JSON: layout data export for embedding UIs ([RenderJSON])
//
// Each renderer runs the full resolve, arrange, paint sequence against
// the offered bounds. SVG and JSON output is byte-identical for
// identical inputs, which the render cache relies on.
//
// # Usage
//
//	svg := render.RenderSVG(lg, measurer, bounds,
//	    render.WithCanvas("#FFFFFF"),
//	)
//	png, err := render.RenderPNG(lg, measurer, bounds,
//	    render.WithScale(2),
//	)
//
// Hot regions for hit testing are collected through the WithSVGRegions
// and WithPNGRegions options; the JSON export carries element
// rectangles directly.
//
// [pkg/legend]: github.com/legenda-dev/legenda/pkg/legend
package render
