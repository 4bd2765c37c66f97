package render

import "github.com/legenda-dev/legenda/pkg/geom"

// Marker geometry shared by the SVG and raster painters so both backends
// draw identical symbols for the same cell rectangle.

// markerSquare is the centered square a box marker fills: 70% of the
// cell's smaller dimension.
func markerSquare(r geom.Rect) geom.Rect {
	side := r.W
	if r.H < side {
		side = r.H
	}
	side *= 0.7
	c := r.Center()
	return geom.NewRect(c.X-side/2, c.Y-side/2, side, side)
}

// markerLineY is the vertical center a line marker runs through.
func markerLineY(r geom.Rect) float64 { return r.Center().Y }

// markerDotRadius sizes the dot on line-dot markers; plain dot markers
// scale it up.
func markerDotRadius(r geom.Rect) float64 {
	side := r.W
	if r.H < side {
		side = r.H
	}
	return side * 0.18
}
