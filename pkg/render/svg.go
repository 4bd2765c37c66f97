package render

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/legenda-dev/legenda/pkg/chart"
	"github.com/legenda-dev/legenda/pkg/geom"
	"github.com/legenda-dev/legenda/pkg/legend"
	"github.com/legenda-dev/legenda/pkg/text"
)

// DefaultFontStack is the CSS font-family emitted when a font names no
// family of its own.
const DefaultFontStack = `'Helvetica Neue', Helvetica, Arial, sans-serif`

// baselineRatio places the text baseline inside a measured box; the
// ascent of common UI faces sits near 78% of the line height.
const baselineRatio = 0.78

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	fontStack string
	canvas    chart.Color
	regions   legend.RegionRegistry
	resolved  *legend.Configuration
}

// WithFontStack sets the font-family fallback stack appended after the
// legend's own family.
func WithFontStack(stack string) SVGOption {
	return func(r *svgRenderer) { r.fontStack = stack }
}

// WithCanvas fills the whole viewport with a color before the legend is
// painted. Without it the area outside the legend stays transparent.
func WithCanvas(color chart.Color) SVGOption {
	return func(r *svgRenderer) { r.canvas = color }
}

// WithSVGRegions registers the painted hot areas with rs for hit
// testing. The regions are not emitted into the SVG itself.
func WithSVGRegions(rs legend.RegionRegistry) SVGOption {
	return func(r *svgRenderer) { r.regions = rs }
}

// WithResolved reuses an already solved configuration instead of
// resolving again. The configuration must come from Resolve on the
// same legend, measurer and box.
func WithResolved(cfg legend.Configuration) SVGOption {
	return func(r *svgRenderer) { r.resolved = &cfg }
}

// RenderSVG resolves, arranges and paints the legend into bounds and
// returns the SVG document. Identical inputs produce identical bytes.
func RenderSVG(l *legend.Legend, m text.Measurer, bounds geom.Rect, opts ...SVGOption) []byte {
	r := svgRenderer{fontStack: DefaultFontStack}
	for _, opt := range opts {
		opt(&r)
	}

	p := &svgPainter{fontStack: r.fontStack}
	var pl *legend.Placement
	if r.resolved != nil {
		pl = l.RenderWith(p, m, *r.resolved, bounds, r.regions)
	} else {
		pl = l.Render(p, m, bounds, r.regions)
	}

	w, h := pl.Bounds.Right(), pl.Bounds.Bottom()
	if w <= 0 || h <= 0 {
		w, h = bounds.Right(), bounds.Bottom()
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	if r.canvas != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", r.canvas)
	}
	buf.Write(p.buf.Bytes())
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// svgPainter buffers one SVG element per draw call, in paint order.
type svgPainter struct {
	buf       bytes.Buffer
	fontStack string
}

func (p *svgPainter) FillRect(r geom.Rect, color chart.Color) {
	if r.Empty() || color == "" {
		return
	}
	fmt.Fprintf(&p.buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
		r.X, r.Y, r.W, r.H, color)
}

func (p *svgPainter) StrokeRect(r geom.Rect, color chart.Color, width float64) {
	if r.Empty() || color == "" || width <= 0 {
		return
	}
	fmt.Fprintf(&p.buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s" stroke-width="%.1f"/>`+"\n",
		r.X, r.Y, r.W, r.H, color, width)
}

func (p *svgPainter) Text(box legend.TextBox, color chart.Color) {
	if box.Text == "" || box.Rect.Empty() {
		return
	}
	x, anchor := box.Rect.X, "start"
	switch box.Align {
	case legend.AlignCenter:
		x, anchor = box.Rect.X+box.Rect.W/2, "middle"
	case legend.AlignRight:
		x, anchor = box.Rect.Right(), "end"
	}
	y := box.Rect.Y + box.Rect.H*baselineRatio

	family := p.fontStack
	if box.Font.Family != "" {
		family = fmt.Sprintf("'%s', %s", box.Font.Family, p.fontStack)
	}
	style := ""
	if box.Font.Bold {
		style += ` font-weight="bold"`
	}
	if box.Font.Italic {
		style += ` font-style="italic"`
	}
	fmt.Fprintf(&p.buf, `  <text x="%.1f" y="%.1f" text-anchor="%s" font-family="%s" font-size="%.1f" fill="%s"%s>%s</text>`+"\n",
		x, y, anchor, family, box.Font.SizePt, color, style, escapeXML(box.Text))
}

func (p *svgPainter) Marker(r geom.Rect, kind chart.MarkerKind, color chart.Color) {
	if r.Empty() || color == "" {
		return
	}
	switch kind {
	case chart.MarkerLine:
		y := markerLineY(r)
		fmt.Fprintf(&p.buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="2"/>`+"\n",
			r.X, y, r.Right(), y, color)
	case chart.MarkerLineDot:
		y := markerLineY(r)
		fmt.Fprintf(&p.buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="2"/>`+"\n",
			r.X, y, r.Right(), y, color)
		c := r.Center()
		fmt.Fprintf(&p.buf, `  <circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n",
			c.X, c.Y, markerDotRadius(r), color)
	case chart.MarkerDot:
		c := r.Center()
		fmt.Fprintf(&p.buf, `  <circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n",
			c.X, c.Y, markerDotRadius(r)*1.6, color)
	default:
		sq := markerSquare(r)
		fmt.Fprintf(&p.buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			sq.X, sq.Y, sq.W, sq.H, color)
	}
}

func (p *svgPainter) Image(r geom.Rect, ref string) {
	if r.Empty() {
		return
	}
	if ref == "" {
		fmt.Fprintf(&p.buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#C0C0C0" stroke-width="1" stroke-dasharray="2,2"/>`+"\n",
			r.X, r.Y, r.W, r.H)
		return
	}
	fmt.Fprintf(&p.buf, `  <image x="%.1f" y="%.1f" width="%.1f" height="%.1f" href="%s"/>`+"\n",
		r.X, r.Y, r.W, r.H, escapeXML(ref))
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
