package legend

import (
	"github.com/legenda-dev/legenda/pkg/geom"
	"github.com/legenda-dev/legenda/pkg/text"
)

// TextBox is a positioned run of text.
type TextBox struct {
	Text  string
	Font  text.Font
	Align Align
	Rect  geom.Rect
}

// CellBox ties a positioned cell back to its entry and grid slot.
type CellBox struct {
	Entry *Entry
	Cell  *Cell
	Col   int
	Row   int
	Sub   int
	Align Align
	Rect  geom.Rect
}

// SeparatorBox is one positioned rule. Row rules carry the entry they
// sit under; column rules carry none.
type SeparatorBox struct {
	Entry *Entry
	Rect  geom.Rect
}

// Placement is a fully positioned legend: every rectangle the painter
// touches, in paint order. Separators are emitted unconditionally;
// whether each is painted depends on the legend's Separators setting
// and the entry's own SeparatorKind.
type Placement struct {
	Bounds geom.Rect // outer box, border included
	Font   text.Font // effective entry font after auto-fit
	Config Configuration

	Title      *TextBox
	Headers    []TextBox
	Cells      []CellBox
	Separators []SeparatorBox
	Indicator  *TextBox
}

// Arrange assigns absolute rectangles to every element of a resolved
// configuration inside bounds: title, per-column headers, cells,
// separators and the truncation indicator. Absorbed cells appear in the
// result with empty rectangles so painters can walk entries uniformly.
func (l *Legend) Arrange(m text.Measurer, cfg Configuration, bounds geom.Rect) *Placement {
	font := l.Font.Shrink(cfg.FontDelta)
	met := l.metricsFor(m, font)

	size := cfg.Size.Min(bounds.Size())
	p := &Placement{
		Bounds: geom.NewRect(bounds.X, bounds.Y, size.W, size.H),
		Font:   font,
		Config: cfg,
	}
	if cfg.IsEmpty() {
		return p
	}

	content := p.Bounds.Inset(met.border).InsetXY(met.padX, met.padY)
	templates := l.columnTemplates()
	y := content.Y

	if l.Title != "" {
		tf := l.titleFont()
		ts := text.MeasureBounded(m, l.Title, tf, content.Size())
		align := l.TitleAlign
		if align == "" {
			align = AlignCenter
		}
		band := geom.NewRect(content.X, y, content.W, ts.H)
		p.Title = &TextBox{Text: l.Title, Font: tf, Align: align, Rect: alignIn(ts, band, align)}
		y += ts.H + met.blockGap
	}

	headerH := 0.0
	for _, tpl := range templates {
		if tpl.Header == "" {
			continue
		}
		if s := m.Measure(tpl.Header, tpl.headerFont(font)); s.H > headerH {
			headerH = s.H
		}
	}
	headerTop := y
	if headerH > 0 {
		y += headerH + met.blockGap
	}
	gridTop := y

	items := cfg.Items
	if items > len(l.entries) {
		items = len(l.entries)
	}
	slots := slotEntries(l.entries[:items], cfg.RowsPerColumn)

	gridH := 0.0
	for c := range slots {
		if c >= len(cfg.CellHeights) {
			break
		}
		if h := columnHeightOf(cfg.CellHeights[c], met.rowSpacing); h > gridH {
			gridH = h
		}
	}

	x := content.X
	lastX, lastBottom := content.X, gridTop
	for c, column := range slots {
		if c >= len(cfg.SubColumnWidths) {
			break
		}
		widths := cfg.SubColumnWidths[c]
		colW := columnWidthOf(widths, met.subSpacing)

		if headerH > 0 {
			sx := x
			for s, tpl := range templates {
				if s >= len(widths) {
					break
				}
				if tpl.Header != "" {
					hf := tpl.headerFont(font)
					hs := m.Measure(tpl.Header, hf)
					align := tpl.Align
					if align == "" {
						align = AlignLeft
					}
					band := geom.NewRect(sx, headerTop, widths[s], headerH)
					p.Headers = append(p.Headers, TextBox{Text: tpl.Header, Font: hf, Align: align, Rect: alignIn(hs, band, align)})
				}
				sx += widths[s] + met.subSpacing
			}
		}

		ry := gridTop
		for r, e := range column {
			rh := cfg.CellHeights[c][r]
			absorbed := 0
			for i, cell := range e.Cells {
				if absorbed > 0 || i >= len(widths) {
					if absorbed > 0 {
						absorbed--
					}
					cell.Rect = geom.Rect{}
					p.Cells = append(p.Cells, CellBox{Entry: e, Cell: cell, Col: c, Row: r, Sub: i})
					continue
				}
				span := cell.Span
				if span < 1 {
					span = 1
				}
				if span > 1 {
					absorbed = span - 1
				}
				end := i + span
				if end > len(widths) {
					end = len(widths)
				}
				sx := x
				for k := 0; k < i; k++ {
					sx += widths[k] + met.subSpacing
				}
				slotW := met.subSpacing * float64(end-i-1)
				for k := i; k < end; k++ {
					slotW += widths[k]
				}
				slot := geom.NewRect(sx, ry, slotW, rh)

				cs := cell.size(m, font)
				boxed := geom.Size{W: min(cs.W, slot.W), H: min(cs.H, slot.H)}
				align := AlignLeft
				if tpl := cell.template(templates, i); tpl != nil && tpl.Align != "" {
					align = tpl.Align
				}
				rect := alignIn(boxed, slot, align)
				cell.Rect = rect
				p.Cells = append(p.Cells, CellBox{Entry: e, Cell: cell, Col: c, Row: r, Sub: i, Align: align, Rect: rect})
			}

			if r < len(column)-1 {
				sepH := 1.0
				if e.Separator == SeparatorThick {
					sepH = 2
				}
				sepY := ry + rh + met.rowSpacing/2
				p.Separators = append(p.Separators, SeparatorBox{Entry: e, Rect: geom.NewRect(x, sepY, colW, sepH)})
			}
			ry += rh + met.rowSpacing
		}
		lastX, lastBottom = x, ry-met.rowSpacing

		if c < len(slots)-1 {
			sepX := x + colW + met.colSpacing/2
			p.Separators = append(p.Separators, SeparatorBox{Rect: geom.NewRect(sepX, gridTop, 1, gridH)})
		}
		x += colW + met.colSpacing
	}
	gridRight := x - met.colSpacing

	if cfg.Truncated {
		ind := cfg.Indicator
		var rect geom.Rect
		switch cfg.Policy {
		case ArrangeWide, ArrangeRow:
			rect = geom.NewRect(gridRight+met.colSpacing, gridTop, ind.W, ind.H)
		default:
			rect = geom.NewRect(lastX, lastBottom+met.rowSpacing, ind.W, ind.H)
		}
		p.Indicator = &TextBox{Text: truncationMark, Font: font, Align: AlignLeft, Rect: rect}
	}

	return p
}

// alignIn places a box of the given size inside the slot, horizontally
// per align and vertically centered.
func alignIn(s geom.Size, slot geom.Rect, align Align) geom.Rect {
	x := slot.X
	switch align {
	case AlignCenter:
		x = slot.X + (slot.W-s.W)/2
	case AlignRight:
		x = slot.Right() - s.W
	}
	return geom.NewRect(x, slot.Y+(slot.H-s.H)/2, s.W, s.H)
}
