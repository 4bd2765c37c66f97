package legend

import (
	"github.com/legenda-dev/legenda/pkg/geom"
	"github.com/legenda-dev/legenda/pkg/text"
)

// Resolve finds the layout for the offered box. It first solves at the
// configured font; while the result overflows it shrinks the font one
// point at a time down to MinFontSize, then starts dropping trailing
// entries behind a truncation indicator. The returned configuration is
// the first fitting one, or the last attempt when nothing fits.
//
// Resolve is deterministic: the same legend, measurer and box always
// produce the same configuration, and re-resolving an already fitting
// legend changes nothing.
func (l *Legend) Resolve(m text.Measurer, avail geom.Size) Configuration {
	if avail.IsDegenerate() {
		return Configuration{}
	}
	if len(l.entries) == 0 {
		return Configuration{Fits: true}
	}
	policy := l.effectivePolicy(avail)
	items := len(l.entries)
	delta := 0
	for {
		font := l.Font.Shrink(delta)
		cfg := l.fitter(m, avail, font, items, policy).solve()
		cfg.FontDelta = delta
		if cfg.Fits {
			return cfg
		}
		if l.AutoFitText && l.Font.SizePt-float64(delta) > l.MinFontSize {
			delta++
			continue
		}
		// Keep at least two entries: a legend showing one entry plus a
		// truncation mark tells the reader nothing a missing legend
		// would not.
		if items > 2 && !degenerateOverflow(cfg) {
			items--
			continue
		}
		return cfg
	}
}

// OptimalSize reports the box the legend wants within the given bounds.
// Chart surfaces call this while negotiating space: dock the legend,
// offer the remaining area, and shrink the plot by what comes back.
func (l *Legend) OptimalSize(m text.Measurer, max geom.Size) geom.Size {
	cfg := l.Resolve(m, max)
	return cfg.Size.Min(max)
}
