package text

import "github.com/legenda-dev/legenda/pkg/geom"

// Measurer reports the pixel size of a single line of text at a given font.
// Implementations must be deterministic: identical inputs return identical
// sizes for the lifetime of the process. The layout engine calls Measure
// many times per pass and relies on this to produce bit-identical repeat
// layouts.
type Measurer interface {
	Measure(text string, font Font) geom.Size
}

// MeasureBounded measures s and clamps the result to max. Dimensions of max
// that are zero or negative are treated as unbounded. Callers use this for
// text that is clipped rather than reflowed, such as titles.
func MeasureBounded(m Measurer, s string, font Font, max geom.Size) geom.Size {
	size := m.Measure(s, font)
	if max.W > 0 && size.W > max.W {
		size.W = max.W
	}
	if max.H > 0 && size.H > max.H {
		size.H = max.H
	}
	return size
}

// TruncateToWidth shortens s so it fits within maxWidth at the given font,
// appending ".." when anything was cut. It returns s unchanged when it
// already fits and the empty string when there is no room at all.
func TruncateToWidth(m Measurer, s string, font Font, maxWidth float64) string {
	if maxWidth <= 0 {
		return ""
	}
	if s == "" || m.Measure(s, font).W <= maxWidth {
		return s
	}
	runes := []rune(s)
	for n := len(runes) - 1; n > 0; n-- {
		candidate := string(runes[:n]) + ".."
		if m.Measure(candidate, font).W <= maxWidth {
			return candidate
		}
	}
	if m.Measure("..", font).W <= maxWidth {
		return ".."
	}
	return ""
}
