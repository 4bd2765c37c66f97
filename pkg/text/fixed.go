package text

import (
	"unicode/utf8"

	"github.com/legenda-dev/legenda/pkg/geom"
)

// FixedMeasurer reports synthetic metrics derived only from rune count and
// font size. It needs no font files, which makes it the measurer of choice
// for headless environments and for tests: identical inputs produce
// identical sizes on every platform.
type FixedMeasurer struct {
	WidthFactor  float64 // advance per rune as a fraction of the font size
	HeightFactor float64 // line height as a fraction of the font size
}

// NewFixedMeasurer returns a FixedMeasurer with factors that approximate a
// typical proportional face.
func NewFixedMeasurer() *FixedMeasurer {
	return &FixedMeasurer{WidthFactor: 0.6, HeightFactor: 1.25}
}

// Measure implements Measurer.
func (m FixedMeasurer) Measure(s string, f Font) geom.Size {
	return geom.Size{
		W: float64(utf8.RuneCountInString(s)) * f.SizePt * m.WidthFactor,
		H: f.SizePt * m.HeightFactor,
	}
}
