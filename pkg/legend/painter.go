package legend

import (
	"github.com/google/uuid"

	"github.com/legenda-dev/legenda/pkg/chart"
	"github.com/legenda-dev/legenda/pkg/geom"
	"github.com/legenda-dev/legenda/pkg/text"
)

// disabledColor greys out entries whose series was toggled off.
const disabledColor = chart.Color("#ADADAD")

// Painter is the drawing surface Paint issues calls against. The layout
// engine owns geometry only; backends implement this to rasterize or
// serialize it.
type Painter interface {
	FillRect(r geom.Rect, color chart.Color)
	StrokeRect(r geom.Rect, color chart.Color, width float64)
	Text(box TextBox, color chart.Color)
	Marker(r geom.Rect, kind chart.MarkerKind, color chart.Color)
	Image(r geom.Rect, ref string)
}

// RegionKind classifies interactive hot areas.
type RegionKind string

// Hot area kinds.
const (
	RegionBackground RegionKind = "background"
	RegionTitle      RegionKind = "title"
	RegionHeader     RegionKind = "header"
	RegionEntry      RegionKind = "entry"
	RegionIndicator  RegionKind = "indicator"
)

// Region is one interactive hot area of a painted legend.
type Region struct {
	ID    string
	Kind  RegionKind
	Rect  geom.Rect
	Entry *Entry // set for entry regions
}

// RegionRegistry receives hot areas as Paint emits them.
type RegionRegistry interface {
	Add(Region)
}

// Regions keeps hot areas in paint order and answers point queries.
// The zero value is ready to use.
type Regions struct {
	regions []Region
}

// Add implements RegionRegistry.
func (rs *Regions) Add(r Region) { rs.regions = append(rs.regions, r) }

// All returns the registered regions in paint order.
func (rs *Regions) All() []Region { return rs.regions }

// HitTest returns the topmost region containing p. Later registrations
// paint over earlier ones, so the scan runs back to front.
func (rs *Regions) HitTest(p geom.Point) (Region, bool) {
	for i := len(rs.regions) - 1; i >= 0; i-- {
		if rs.regions[i].Rect.Contains(p) {
			return rs.regions[i], true
		}
	}
	return Region{}, false
}

// Paint draws an arranged legend onto the painter: background, border,
// title, headers, separators, cells and the truncation indicator. When
// regions is not nil every interactive area is registered with it, one
// region per entry spanning all of the entry's cells.
func (l *Legend) Paint(pt Painter, m text.Measurer, pl *Placement, regions RegionRegistry) {
	if pl == nil || pl.Bounds.Empty() {
		return
	}
	if l.Background != "" {
		pt.FillRect(pl.Bounds, l.Background)
	}
	if l.Border && l.BorderWidth > 0 {
		pt.StrokeRect(pl.Bounds, l.BorderColor, l.BorderWidth)
	}
	register(regions, RegionBackground, pl.Bounds, nil)

	if pl.Title != nil {
		pt.Text(*pl.Title, l.TextColor)
		register(regions, RegionTitle, pl.Title.Rect, nil)
	}
	for _, h := range pl.Headers {
		pt.Text(h, l.TextColor)
		register(regions, RegionHeader, h.Rect, nil)
	}
	for _, s := range pl.Separators {
		if l.Separators || (s.Entry != nil && s.Entry.Separator != SeparatorNone) {
			pt.FillRect(s.Rect, l.SeparatorColor)
		}
	}

	var (
		cur  *Entry
		area geom.Rect
	)
	flush := func() {
		if cur != nil && !area.Empty() {
			register(regions, RegionEntry, area, cur)
		}
		cur, area = nil, geom.Rect{}
	}
	for _, cb := range pl.Cells {
		if cb.Entry != cur {
			flush()
			cur = cb.Entry
		}
		if cb.Rect.Empty() {
			continue
		}
		area = area.Union(cb.Rect)
		l.paintCell(pt, m, pl.Font, cb)
	}
	flush()

	if pl.Indicator != nil {
		pt.Text(*pl.Indicator, l.TextColor)
		register(regions, RegionIndicator, pl.Indicator.Rect, nil)
	}
}

func (l *Legend) paintCell(pt Painter, m text.Measurer, font text.Font, cb CellBox) {
	switch cb.Cell.Kind {
	case CellSymbol:
		color := cb.Cell.Color
		if !cb.Entry.Enabled {
			color = disabledColor
		}
		pt.Marker(cb.Rect, cb.Cell.Marker, color)
	case CellImage:
		pt.Image(cb.Rect, cb.Cell.Image)
	default:
		color := l.TextColor
		if !cb.Entry.Enabled {
			color = disabledColor
		}
		s := text.TruncateToWidth(m, cb.Cell.Text, font, cb.Rect.W)
		pt.Text(TextBox{Text: s, Font: font, Align: cb.Align, Rect: cb.Rect}, color)
	}
}

func register(rs RegionRegistry, kind RegionKind, rect geom.Rect, e *Entry) {
	if rs == nil {
		return
	}
	rs.Add(Region{ID: uuid.NewString(), Kind: kind, Rect: rect, Entry: e})
}

// Render runs the full pipeline for one legend against a target box:
// resolve, arrange, paint. It returns the placement for callers that
// need the geometry afterwards. Invisible legends paint nothing.
func (l *Legend) Render(pt Painter, m text.Measurer, bounds geom.Rect, regions RegionRegistry) *Placement {
	if !l.Visible {
		return &Placement{}
	}
	cfg := l.Resolve(m, bounds.Size())
	return l.RenderWith(pt, m, cfg, bounds, regions)
}

// RenderWith paints like Render but reuses an already solved
// configuration instead of resolving again. The configuration must
// come from Resolve on the same legend, measurer and box.
func (l *Legend) RenderWith(pt Painter, m text.Measurer, cfg Configuration, bounds geom.Rect, regions RegionRegistry) *Placement {
	if !l.Visible {
		return &Placement{}
	}
	pl := l.Arrange(m, cfg, bounds)
	l.Paint(pt, m, pl, regions)
	return pl
}
