package legend

import (
	"github.com/legenda-dev/legenda/pkg/chart"
	"github.com/legenda-dev/legenda/pkg/geom"
	"github.com/legenda-dev/legenda/pkg/text"
)

// CellKind identifies what a cell displays.
type CellKind string

// Cell kinds.
const (
	CellSymbol CellKind = "symbol"
	CellText   CellKind = "text"
	CellImage  CellKind = "image"
)

// SeparatorKind selects the rule drawn under an entry's row. The rule
// lives inside the row gap, so it costs no extra height.
type SeparatorKind string

// Separator kinds.
const (
	SeparatorNone  SeparatorKind = ""
	SeparatorLine  SeparatorKind = "line"
	SeparatorThick SeparatorKind = "thick"
)

// Cell is one displayable unit of a legend entry, occupying one or more
// subcolumns. A cell with Span > 1 absorbs its following Span-1 sibling
// cells: they contribute no width and receive empty rectangles.
type Cell struct {
	Kind      CellKind
	Text      string
	Marker    chart.MarkerKind
	Color     chart.Color
	Image     string
	ImageSize geom.Size // zero means the 16x16 default
	Span      int       // subcolumns covered; at least 1

	// Rect is the cell's absolute content rectangle, assigned by
	// Arrange. Absorbed cells keep a zero rect.
	Rect geom.Rect

	column *Column

	measured    geom.Size
	measuredFor text.Font
	hasMeasured bool
}

// size returns the measured content size at the font. The result is
// cached until the font changes, so repeated evaluator passes over the
// same font are cheap.
func (c *Cell) size(m text.Measurer, f text.Font) geom.Size {
	if c.hasMeasured && c.measuredFor == f {
		return c.measured
	}
	c.measured = c.contentSize(m, f)
	c.measuredFor = f
	c.hasMeasured = true
	return c.measured
}

func (c *Cell) contentSize(m text.Measurer, f text.Font) geom.Size {
	switch c.Kind {
	case CellSymbol:
		// Marker glyphs track the text height so they shrink with
		// auto-fit; line markers are drawn twice as wide.
		h := m.Measure(refGlyph, f).H * 0.8
		w := h
		if c.Marker == chart.MarkerLine || c.Marker == chart.MarkerLineDot {
			w = 2 * h
		}
		return geom.Size{W: w, H: h}
	case CellImage:
		if c.ImageSize.W > 0 && c.ImageSize.H > 0 {
			return c.ImageSize
		}
		return geom.Size{W: 16, H: 16}
	default:
		return m.Measure(c.Text, f)
	}
}

// template resolves the column template governing the cell: the one
// that built it, or the template at its starting subcolumn for cells of
// custom entries.
func (c *Cell) template(templates []*Column, sub int) *Column {
	if c.column != nil {
		return c.column
	}
	if sub >= 0 && sub < len(templates) {
		return templates[sub]
	}
	return nil
}

// invalidate drops the measurement cache. Callers that mutate a cell's
// content after collection use this to force a remeasure.
func (c *Cell) invalidate() {
	c.hasMeasured = false
}

// SetText replaces the cell's text and invalidates its measurement.
func (c *Cell) SetText(s string) {
	c.Text = s
	c.invalidate()
}

// Entry is one legend row item: an ordered run of cells plus the
// provenance painters and hit testing report back with.
type Entry struct {
	Cells   []*Cell
	Enabled bool

	// Separator draws a rule under this entry's row even when the
	// legend's Separators setting is off.
	Separator SeparatorKind

	Series *chart.Series // nil for custom entries
	Point  int           // point index for per-point entries, -1 otherwise
	Custom bool
}

// NewCustomEntry builds a free-form entry from cells. Spans below 1 are
// raised to 1.
func NewCustomEntry(cells ...*Cell) *Entry {
	for _, c := range cells {
		if c.Span < 1 {
			c.Span = 1
		}
	}
	return &Entry{Cells: cells, Enabled: true, Point: -1, Custom: true}
}

// Label returns the entry's first text cell content, used by interactive
// surfaces to name the entry.
func (e *Entry) Label() string {
	for _, c := range e.Cells {
		if c.Kind == CellText && c.Text != "" {
			return c.Text
		}
	}
	return ""
}

// spanSum returns the number of subcolumns the entry covers. Cell index
// equals subcolumn index; a spanning cell can reach past the last cell.
func (e *Entry) spanSum() int {
	n := len(e.Cells)
	absorbed := 0
	for i, c := range e.Cells {
		if absorbed > 0 {
			absorbed--
			continue
		}
		span := c.Span
		if span < 1 {
			span = 1
		}
		if span > 1 {
			absorbed = span - 1
		}
		if end := i + span; end > n {
			n = end
		}
	}
	return n
}

// height returns the tallest non-absorbed cell at the font.
func (e *Entry) height(m text.Measurer, f text.Font) float64 {
	h := 0.0
	absorbed := 0
	for _, c := range e.Cells {
		if absorbed > 0 {
			absorbed--
			continue
		}
		if c.Span > 1 {
			absorbed = c.Span - 1
		}
		if s := c.size(m, f); s.H > h {
			h = s.H
		}
	}
	return h
}
