package legend

import (
	"github.com/legenda-dev/legenda/pkg/chart"
	"github.com/legenda-dev/legenda/pkg/errors"
	"github.com/legenda-dev/legenda/pkg/text"
)

// Item is the raw material a column turns into a cell: the series (and
// point, for per-point kinds) behind an entry plus its resolved label,
// color and marker.
type Item struct {
	Series *chart.Series
	Point  int // -1 for per-series entries
	Text   string
	Color  chart.Color
	Marker chart.MarkerKind
}

// CellFactory produces the cell a column shows for an item. Returning
// nil yields an empty text cell so the grid keeps its shape.
type CellFactory func(item Item) *Cell

// Column is a subcolumn template: every entry contributes one cell per
// template, built by the factory (or a kind-appropriate default).
type Column struct {
	Kind       CellKind
	Header     string
	HeaderFont text.Font // zero value means the legend font, bolded
	Align      Align

	// MinWidthPct and MaxWidthPct clamp single-span cell widths, as
	// percentages of the reference glyph width at the effective font.
	// Zero means unbounded.
	MinWidthPct float64
	MaxWidthPct float64

	// EquallySpaced forces this subcolumn to one shared width across
	// all layout columns.
	EquallySpaced bool

	Factory CellFactory
}

// defaultColumns is the two-column template used when a legend declares
// none: a marker swatch and the entry label.
func defaultColumns() []*Column {
	return []*Column{
		{Kind: CellSymbol, Align: AlignCenter},
		{Kind: CellText, Align: AlignLeft},
	}
}

// build produces the item's cell for this column.
func (t *Column) build(item Item) *Cell {
	var c *Cell
	if t.Factory != nil {
		c = t.Factory(item)
	} else {
		switch t.Kind {
		case CellSymbol:
			c = &Cell{Kind: CellSymbol, Marker: item.Marker, Color: item.Color}
		case CellImage:
			c = &Cell{Kind: CellImage}
		default:
			c = &Cell{Kind: CellText, Text: item.Text}
		}
	}
	if c == nil {
		c = &Cell{Kind: CellText}
	}
	if c.Span < 1 {
		c.Span = 1
	}
	c.column = t
	return c
}

func (t *Column) validate(i int) error {
	switch t.Kind {
	case CellSymbol, CellText, CellImage, "":
	default:
		return errors.New(errors.ErrCodeInvalidColumn, "column %d has unknown kind %q", i, t.Kind)
	}
	if t.MinWidthPct < 0 || t.MaxWidthPct < 0 {
		return errors.New(errors.ErrCodeInvalidColumn, "column %d has negative width bound", i)
	}
	if t.MaxWidthPct > 0 && t.MaxWidthPct < t.MinWidthPct {
		return errors.New(errors.ErrCodeInvalidColumn, "column %d max width %.1f%% below min %.1f%%", i, t.MaxWidthPct, t.MinWidthPct)
	}
	return nil
}

// headerFont resolves the font headers render with.
func (t *Column) headerFont(base text.Font) text.Font {
	if !t.HeaderFont.IsZero() {
		return t.HeaderFont
	}
	return base.Bolded()
}
