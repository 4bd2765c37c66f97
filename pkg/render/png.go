package render

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/legenda-dev/legenda/pkg/chart"
	"github.com/legenda-dev/legenda/pkg/geom"
	"github.com/legenda-dev/legenda/pkg/legend"
	"github.com/legenda-dev/legenda/pkg/text"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale    float64
	faces    *text.FaceMeasurer
	canvas   chart.Color
	regions  legend.RegionRegistry
	resolved *legend.Configuration
}

// WithScale sets the raster scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithFaces supplies the face source text is drawn with. Without it the
// measurer is reused when it is a FaceMeasurer; otherwise a built-in
// bitmap face is used.
func WithFaces(fm *text.FaceMeasurer) PNGOption {
	return func(r *pngRenderer) { r.faces = fm }
}

// WithPNGCanvas fills the image with a color before the legend is
// painted. Without it the area outside the legend stays transparent.
func WithPNGCanvas(color chart.Color) PNGOption {
	return func(r *pngRenderer) { r.canvas = color }
}

// WithPNGRegions registers the painted hot areas with rs. Region
// coordinates are in layout units, not scaled pixels.
func WithPNGRegions(rs legend.RegionRegistry) PNGOption {
	return func(r *pngRenderer) { r.regions = rs }
}

// WithPNGResolved reuses an already solved configuration instead of
// resolving again. The configuration must come from Resolve on the
// same legend, measurer and box.
func WithPNGResolved(cfg legend.Configuration) PNGOption {
	return func(r *pngRenderer) { r.resolved = &cfg }
}

// RenderPNG resolves, arranges and paints the legend into bounds and
// encodes the result as PNG.
func RenderPNG(l *legend.Legend, m text.Measurer, bounds geom.Rect, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	if r.faces == nil {
		if fm, ok := m.(*text.FaceMeasurer); ok {
			r.faces = fm
		}
	}

	pl := &legend.Placement{}
	if l.Visible {
		var cfg legend.Configuration
		if r.resolved != nil {
			cfg = *r.resolved
		} else {
			cfg = l.Resolve(m, bounds.Size())
		}
		pl = l.Arrange(m, cfg, bounds)
	}
	w, h := pl.Bounds.Right(), pl.Bounds.Bottom()
	if w <= 0 || h <= 0 {
		w, h = bounds.Right(), bounds.Bottom()
	}

	dc := gg.NewContext(
		max(1, int(math.Ceil(w*r.scale))),
		max(1, int(math.Ceil(h*r.scale))),
	)
	dc.Scale(r.scale, r.scale)
	if r.canvas != "" {
		dc.SetHexColor(string(r.canvas))
		dc.Clear()
	}
	if l.Visible {
		l.Paint(&rasterPainter{dc: dc, faces: r.faces}, m, pl, r.regions)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// rasterPainter draws paint calls onto a gg context.
type rasterPainter struct {
	dc    *gg.Context
	faces *text.FaceMeasurer
}

func (p *rasterPainter) face(f text.Font) font.Face {
	if p.faces != nil {
		return p.faces.RenderFace(f)
	}
	return basicfont.Face7x13
}

func (p *rasterPainter) FillRect(r geom.Rect, color chart.Color) {
	if r.Empty() || color == "" {
		return
	}
	p.dc.SetHexColor(string(color))
	p.dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	p.dc.Fill()
}

func (p *rasterPainter) StrokeRect(r geom.Rect, color chart.Color, width float64) {
	if r.Empty() || color == "" || width <= 0 {
		return
	}
	p.dc.SetHexColor(string(color))
	p.dc.SetLineWidth(width)
	p.dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	p.dc.Stroke()
}

func (p *rasterPainter) Text(box legend.TextBox, color chart.Color) {
	if box.Text == "" || box.Rect.Empty() {
		return
	}
	p.dc.SetFontFace(p.face(box.Font))
	p.dc.SetHexColor(string(color))

	// Alignment uses the render face's own advance so glyphs land where
	// the eye expects even when layout ran on synthetic metrics.
	w, _ := p.dc.MeasureString(box.Text)
	x := box.Rect.X
	switch box.Align {
	case legend.AlignCenter:
		x = box.Rect.X + (box.Rect.W-w)/2
	case legend.AlignRight:
		x = box.Rect.Right() - w
	}
	p.dc.DrawString(box.Text, x, box.Rect.Y+box.Rect.H*baselineRatio)
}

func (p *rasterPainter) Marker(r geom.Rect, kind chart.MarkerKind, color chart.Color) {
	if r.Empty() || color == "" {
		return
	}
	p.dc.SetHexColor(string(color))
	switch kind {
	case chart.MarkerLine:
		y := markerLineY(r)
		p.dc.SetLineWidth(2)
		p.dc.DrawLine(r.X, y, r.Right(), y)
		p.dc.Stroke()
	case chart.MarkerLineDot:
		y := markerLineY(r)
		p.dc.SetLineWidth(2)
		p.dc.DrawLine(r.X, y, r.Right(), y)
		p.dc.Stroke()
		c := r.Center()
		p.dc.DrawCircle(c.X, c.Y, markerDotRadius(r))
		p.dc.Fill()
	case chart.MarkerDot:
		c := r.Center()
		p.dc.DrawCircle(c.X, c.Y, markerDotRadius(r)*1.6)
		p.dc.Fill()
	default:
		sq := markerSquare(r)
		p.dc.DrawRectangle(sq.X, sq.Y, sq.W, sq.H)
		p.dc.Fill()
	}
}

func (p *rasterPainter) Image(r geom.Rect, ref string) {
	if r.Empty() {
		return
	}
	if ref != "" {
		if im, err := gg.LoadImage(ref); err == nil {
			b := im.Bounds()
			if b.Dx() > 0 && b.Dy() > 0 {
				s := math.Min(r.W/float64(b.Dx()), r.H/float64(b.Dy()))
				p.dc.Push()
				p.dc.Translate(r.X, r.Y)
				p.dc.Scale(s, s)
				p.dc.DrawImage(im, 0, 0)
				p.dc.Pop()
				return
			}
		}
	}
	p.dc.SetHexColor("#C0C0C0")
	p.dc.SetLineWidth(1)
	p.dc.SetDash(2, 2)
	p.dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	p.dc.Stroke()
	p.dc.SetDash()
}
