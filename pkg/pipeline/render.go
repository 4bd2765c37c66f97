package pipeline

import (
	"fmt"

	"github.com/legenda-dev/legenda/pkg/chart"
	"github.com/legenda-dev/legenda/pkg/chartfile"
	"github.com/legenda-dev/legenda/pkg/geom"
	"github.com/legenda-dev/legenda/pkg/legend"
	"github.com/legenda-dev/legenda/pkg/render"
)

// RenderArtifacts renders the requested formats from a solved
// configuration. All formats paint the same placement, so a multi-format
// run arranges once per backend but never re-solves.
func RenderArtifacts(cfg legend.Configuration, doc *chartfile.Document, opts Options) (map[string][]byte, error) {
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()

	lg, err := BuildLegend(doc, opts.Legend)
	if err != nil {
		return nil, err
	}

	bounds := geom.NewRect(0, 0, opts.Width, opts.Height)
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = render.RenderSVG(lg, opts.Measurer, bounds, buildSVGOptions(cfg, opts)...)
		case FormatPNG:
			data, err = render.RenderPNG(lg, opts.Measurer, bounds, buildPNGOptions(cfg, opts)...)
		case FormatJSON:
			data, err = render.RenderJSON(lg, opts.Measurer, bounds, render.WithJSONResolved(cfg))
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(cfg legend.Configuration, opts Options) []render.SVGOption {
	svgOpts := []render.SVGOption{render.WithResolved(cfg)}
	if opts.Canvas != "" {
		svgOpts = append(svgOpts, render.WithCanvas(chart.Color(opts.Canvas)))
	}
	return svgOpts
}

// buildPNGOptions builds PNG rendering options.
func buildPNGOptions(cfg legend.Configuration, opts Options) []render.PNGOption {
	pngOpts := []render.PNGOption{
		render.WithPNGResolved(cfg),
		render.WithScale(opts.Scale),
	}
	if opts.Canvas != "" {
		pngOpts = append(pngOpts, render.WithPNGCanvas(chart.Color(opts.Canvas)))
	}
	return pngOpts
}
