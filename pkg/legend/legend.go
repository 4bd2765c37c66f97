package legend

import (
	"github.com/legenda-dev/legenda/pkg/chart"
	"github.com/legenda-dev/legenda/pkg/errors"
	"github.com/legenda-dev/legenda/pkg/geom"
	"github.com/legenda-dev/legenda/pkg/text"
)

// DefaultName is the legend series attach to when they name none.
const DefaultName = "default"

// maxTableColumns caps the table layout search.
const maxTableColumns = 50

// refGlyph is the reference character spacing and clamps derive from.
const refGlyph = "W"

// truncationMark is painted where entries were dropped.
const truncationMark = "..."

// Dock places a legend relative to the plot area.
type Dock string

// Dock positions.
const (
	DockLeft   Dock = "left"
	DockRight  Dock = "right"
	DockTop    Dock = "top"
	DockBottom Dock = "bottom"
	DockFloat  Dock = "float"
)

// Arrangement selects the layout policy.
type Arrangement string

// Layout policies. Auto resolves to tall or wide from the dock position.
const (
	ArrangeAuto   Arrangement = "auto"
	ArrangeTall   Arrangement = "tall"
	ArrangeWide   Arrangement = "wide"
	ArrangeColumn Arrangement = "column" // single column, one entry per row
	ArrangeRow    Arrangement = "row"    // single row, one entry per column
)

// Order controls how collected entries are sequenced.
type Order string

// Entry order policies. Auto reverses when any included series stacks.
const (
	OrderSeries   Order = "series"
	OrderReversed Order = "reversed"
	OrderAuto     Order = "auto"
)

// Align is a horizontal alignment.
type Align string

// Alignments.
const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Legend holds the settings of one legend and, after Collect, its entries.
// The zero value is not usable; construct with New.
type Legend struct {
	Name        string
	Visible     bool
	Dock        Dock
	Arrangement Arrangement
	Order       Order

	Font       text.Font
	Title      string
	TitleFont  text.Font // zero derives a bold variant of Font
	TitleAlign Align

	// AutoFitText lets Resolve shrink the font (in whole points, down to
	// MinFontSize) before it starts dropping entries.
	AutoFitText bool
	MinFontSize float64
	MaxColumns  int // table column cap; clamped to 50

	// ColumnSpacing and RowSpacing are percentages of the reference
	// glyph's width and height. Values outside 0-100 are configuration
	// errors.
	ColumnSpacing int
	RowSpacing    int

	Background     chart.Color
	Border         bool
	BorderColor    chart.Color
	BorderWidth    float64
	TextColor      chart.Color
	Separators     bool
	SeparatorColor chart.Color

	// Columns are the cell templates every entry is built from. Empty
	// means the default marker+text pair.
	Columns []*Column

	// CustomEntries are appended after collected entries and never
	// reordered.
	CustomEntries []*Entry

	entries []*Entry
}

// New returns a legend with the default visual settings, docked right.
func New(name string) *Legend {
	return &Legend{
		Name:           name,
		Visible:        true,
		Dock:           DockRight,
		Arrangement:    ArrangeAuto,
		Order:          OrderAuto,
		Font:           text.Font{SizePt: 12},
		AutoFitText:    true,
		MinFontSize:    6,
		MaxColumns:     maxTableColumns,
		ColumnSpacing:  50,
		RowSpacing:     25,
		Background:     "#FFFFFF",
		Border:         true,
		BorderColor:    "#D0D0D0",
		BorderWidth:    1,
		TextColor:      "#222222",
		SeparatorColor: "#E4E4E4",
	}
}

// Validate checks the legend's configuration. Collect calls it before
// building entries; setters are plain fields, so callers composing legends
// by hand can also call it directly.
func (l *Legend) Validate() error {
	if err := errors.ValidateLegendName(l.Name); err != nil {
		return err
	}
	if err := errors.ValidateSpacingPercent("column", l.ColumnSpacing); err != nil {
		return err
	}
	if err := errors.ValidateSpacingPercent("row", l.RowSpacing); err != nil {
		return err
	}
	for i, col := range l.Columns {
		if err := col.validate(i); err != nil {
			return err
		}
	}
	return nil
}

// Entries returns the entry list built by the last Collect.
func (l *Legend) Entries() []*Entry { return l.entries }

func (l *Legend) columnTemplates() []*Column {
	if len(l.Columns) > 0 {
		return l.Columns
	}
	return defaultColumns()
}

func (l *Legend) titleFont() text.Font {
	if !l.TitleFont.IsZero() {
		return l.TitleFont
	}
	return l.Font.Bolded()
}

func (l *Legend) maxTableCols() int {
	if l.MaxColumns <= 0 || l.MaxColumns > maxTableColumns {
		return maxTableColumns
	}
	return l.MaxColumns
}

// effectivePolicy resolves the auto arrangement: tall beside the plot,
// wide above or below it, and for floating legends whatever the offered
// box is longer in.
func (l *Legend) effectivePolicy(avail geom.Size) Arrangement {
	if l.Arrangement != ArrangeAuto {
		return l.Arrangement
	}
	switch l.Dock {
	case DockLeft, DockRight:
		return ArrangeTall
	case DockTop, DockBottom:
		return ArrangeWide
	default:
		if avail.H > avail.W {
			return ArrangeTall
		}
		return ArrangeWide
	}
}

// metrics are the spacing values one layout pass works with, all derived
// from the reference glyph at the effective font so spacing scales with
// auto-fit.
type metrics struct {
	ref        geom.Size
	colSpacing float64
	rowSpacing float64
	subSpacing float64
	padX       float64
	padY       float64
	blockGap   float64 // below the title and the header band
	border     float64
}

func (l *Legend) metricsFor(m text.Measurer, font text.Font) metrics {
	ref := m.Measure(refGlyph, font)
	border := 0.0
	if l.Border {
		border = l.BorderWidth
	}
	return metrics{
		ref:        ref,
		colSpacing: ref.W * float64(l.ColumnSpacing) / 100,
		rowSpacing: ref.H * float64(l.RowSpacing) / 100,
		subSpacing: ref.W / 4,
		padX:       ref.W / 2,
		padY:       ref.H / 4,
		blockGap:   ref.H / 4,
		border:     border,
	}
}
