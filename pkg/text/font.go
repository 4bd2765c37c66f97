// Package text provides font descriptions and text measurement for the
// layout engine. Measurement is behind the [Measurer] interface so layout
// code never touches font files directly: the engine works the same whether
// metrics come from real OpenType faces or from the synthetic fallback.
package text

// Font describes the face and size text is measured and painted with.
// Fonts are plain comparable values; the layout engine uses them as cache
// keys for measured cell sizes.
type Font struct {
	Family string // e.g. "DejaVu Sans"; empty selects the measurer default
	SizePt float64
	Bold   bool
	Italic bool
}

// Shrink returns the font reduced by the given number of points. The size
// never drops below 1pt so a misconfigured floor cannot produce a
// non-positive font.
func (f Font) Shrink(points int) Font {
	f.SizePt -= float64(points)
	if f.SizePt < 1 {
		f.SizePt = 1
	}
	return f
}

// Bolded returns a bold variant of the font. Legend titles and column
// headers default to this when no explicit font is configured.
func (f Font) Bolded() Font {
	f.Bold = true
	return f
}

// IsZero reports whether the font is unset.
func (f Font) IsZero() bool {
	return f == Font{}
}
