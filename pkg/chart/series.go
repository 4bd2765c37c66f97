package chart

import (
	"fmt"
	"strconv"
)

// Series is one plotted data series.
type Series struct {
	Name         string
	Kind         SeriesKind
	Legend       string // name of the legend the series reports to; empty means the default legend
	LegendText   string // overrides Name in the legend
	Color        Color
	Visible      bool
	ShowInLegend bool
	Points       []DataPoint
}

// NewSeries returns a visible series of the given kind.
func NewSeries(name string, kind SeriesKind) *Series {
	return &Series{Name: name, Kind: kind, Visible: true, ShowInLegend: true}
}

// AddPoint appends a visible point and returns the series for chaining.
func (s *Series) AddPoint(x float64, values ...float64) *Series {
	s.Points = append(s.Points, DataPoint{X: x, Values: values, Visible: true, ShowInLegend: true})
	return s
}

// DataPoint is one argument/value tuple in a series.
type DataPoint struct {
	X            float64
	Label        string
	LegendText   string
	Color        Color
	Values       []float64
	Visible      bool
	ShowInLegend bool
}

// IsEmpty reports whether the point carries no values. Empty points never
// produce legend entries.
func (p DataPoint) IsEmpty() bool { return len(p.Values) == 0 }

// Chart is the read-only view legend collection runs over.
type Chart struct {
	ID         string
	Title      string
	Series     []*Series
	AxisLabels map[float64]string // custom argument-axis labels keyed by X
}

// PointLegendText resolves the text a point shows in per-point legends.
// The fallback chain: the point's own legend text, its label, a matching
// axis label, the formatted argument when the series uses real arguments,
// and finally a positional fallback.
func (c *Chart) PointLegendText(s *Series, i int) string {
	p := s.Points[i]
	if p.LegendText != "" {
		return p.LegendText
	}
	if p.Label != "" {
		return p.Label
	}
	if c != nil && c.AxisLabels != nil {
		if label, ok := c.AxisLabels[p.X]; ok && label != "" {
			return label
		}
	}
	for _, q := range s.Points {
		if q.X != 0 {
			return strconv.FormatFloat(p.X, 'g', -1, 64)
		}
	}
	return fmt.Sprintf("Point %d", i+1)
}
