package legend

import (
	"github.com/legenda-dev/legenda/pkg/chart"
)

// Collect rebuilds the legend's entries from the chart. Series attach to
// the legend they name, or to the default legend when they name none.
// Pie-family series contribute one entry per visible point; everything
// else contributes one entry per series. Custom entries are appended
// last and never reordered.
func (l *Legend) Collect(ch *chart.Chart) error {
	if err := l.Validate(); err != nil {
		return err
	}
	templates := l.columnTemplates()

	var collected []*Entry
	stacked := false
	for si, s := range ch.Series {
		if !l.accepts(s) || !s.Visible || !s.ShowInLegend {
			continue
		}
		caps := chart.CapabilitiesFor(s.Kind)
		if caps.Stacked {
			stacked = true
		}
		if caps.EntryPerPoint {
			for pi, pt := range s.Points {
				if !pt.Visible || !pt.ShowInLegend || pt.IsEmpty() {
					continue
				}
				color := pt.Color
				if color == "" {
					color = chart.PaletteColor(pi)
				}
				collected = append(collected, buildEntry(templates, Item{
					Series: s,
					Point:  pi,
					Text:   ch.PointLegendText(s, pi),
					Color:  color,
					Marker: caps.Marker,
				}))
			}
			continue
		}
		color := s.Color
		if color == "" {
			color = chart.PaletteColor(si)
		}
		label := s.LegendText
		if label == "" {
			label = s.Name
		}
		collected = append(collected, buildEntry(templates, Item{
			Series: s,
			Point:  -1,
			Text:   label,
			Color:  color,
			Marker: caps.Marker,
		}))
	}

	// Stacked series paint bottom-up, so the auto order lists them
	// top-down to match what the reader sees.
	if l.Order == OrderReversed || (l.Order == OrderAuto && stacked) {
		for i, j := 0, len(collected)-1; i < j; i, j = i+1, j-1 {
			collected[i], collected[j] = collected[j], collected[i]
		}
	}

	l.entries = append(collected, l.CustomEntries...)
	return nil
}

// accepts reports whether the series belongs to this legend.
func (l *Legend) accepts(s *chart.Series) bool {
	if s.Legend != "" {
		return s.Legend == l.Name
	}
	return l.Name == DefaultName
}

func buildEntry(templates []*Column, item Item) *Entry {
	cells := make([]*Cell, 0, len(templates))
	for _, t := range templates {
		cells = append(cells, t.build(item))
	}
	return &Entry{Cells: cells, Enabled: true, Series: item.Series, Point: item.Point}
}
