package legend

import (
	"slices"

	"github.com/legenda-dev/legenda/pkg/geom"
	"github.com/legenda-dev/legenda/pkg/text"
)

// Configuration is one solved layout candidate: the column/row split,
// the per-column subcolumn widths and row heights, and the resulting
// size and slack against the offered box. Resolving the same legend
// against the same box always yields the same configuration.
type Configuration struct {
	Columns       int
	RowsPerColumn []int
	Policy        Arrangement

	// SubColumnWidths[c][s] is the width of subcolumn s inside layout
	// column c; CellHeights[c][r] the height of row r in column c.
	SubColumnWidths [][]float64
	CellHeights     [][]float64

	// Items is how many entries the configuration shows; Truncated is
	// set when that is fewer than were collected. FontDelta is the
	// whole points auto-fit subtracted from the configured font.
	Items     int
	FontDelta int
	Truncated bool
	Indicator geom.Size

	Size   geom.Size
	HSlack float64
	VSlack float64
	Fits   bool
}

// IsEmpty reports whether the configuration lays out nothing.
func (c Configuration) IsEmpty() bool { return c.Columns == 0 || c.Items == 0 }

// fitter measures layout candidates for one legend at one font against
// one offered box. Solvers call evaluate repeatedly with different
// column/row splits; cells cache their measurements per font, so the
// repeated passes stay cheap.
type fitter struct {
	legend    *Legend
	m         text.Measurer
	avail     geom.Size
	templates []*Column
	entries   []*Entry
	font      text.Font
	met       metrics
	items     int
	policy    Arrangement
}

func (l *Legend) fitter(m text.Measurer, avail geom.Size, font text.Font, items int, policy Arrangement) *fitter {
	return &fitter{
		legend:    l,
		m:         m,
		avail:     avail,
		templates: l.columnTemplates(),
		entries:   l.entries,
		font:      font,
		met:       l.metricsFor(m, font),
		items:     items,
		policy:    policy,
	}
}

// evaluate measures the candidate described by rowsPerColumn. Entries
// fill each column top to bottom before moving to the next; leftover
// entries pile into the last column so every entry is placed.
func (f *fitter) evaluate(rowsPerColumn []int) Configuration {
	used := f.entries[:f.items]
	truncated := f.items < len(f.entries)
	slots := slotEntries(used, rowsPerColumn)
	cols := len(slots)

	nSub := len(f.templates)
	for _, e := range used {
		if n := e.spanSum(); n > nSub {
			nSub = n
		}
	}

	// Pass one: per column, the widest single-span cell in each
	// subcolumn, clamped to the template bounds. Cell index equals
	// subcolumn index; a cell spanning past its index absorbs the
	// following sibling cells, which contribute nothing. Spanning
	// cells themselves are held back so a wide spanned label cannot
	// inflate the subcolumns it merely crosses.
	type spanReq struct {
		col, start, span int
		w                float64
	}
	var spans []spanReq
	subW := make([][]float64, cols)
	for c, column := range slots {
		subW[c] = make([]float64, nSub)
		for _, e := range column {
			absorbed := 0
			for i, cell := range e.Cells {
				if absorbed > 0 {
					absorbed--
					continue
				}
				span := cell.Span
				if span < 1 {
					span = 1
				}
				if span > 1 {
					absorbed = span - 1
				}
				w := cell.size(f.m, f.font).W
				if span == 1 {
					w = f.clampWidth(cell, i, w)
					if w > subW[c][i] {
						subW[c][i] = w
					}
				} else {
					spans = append(spans, spanReq{col: c, start: i, span: span, w: w})
				}
			}
		}
	}

	// Pass two: a spanning cell widens the grid only when the
	// subcolumns it covers, gaps included, cannot hold it; the excess
	// goes to the last covered subcolumn.
	for _, s := range spans {
		end := s.start + s.span
		if end > nSub {
			end = nSub
		}
		have := f.met.subSpacing * float64(end-s.start-1)
		for i := s.start; i < end; i++ {
			have += subW[s.col][i]
		}
		if over := s.w - have; over > 0 {
			subW[s.col][end-1] += over
		}
	}

	// Headers repeat atop every layout column, so each subcolumn must
	// hold its header text, still capped by the template maximum.
	if f.hasHeaders() {
		for s, tpl := range f.templates {
			if s >= nSub || tpl.Header == "" {
				continue
			}
			hw := f.m.Measure(tpl.Header, tpl.headerFont(f.font)).W
			if maxW := f.maxWidth(tpl); maxW > 0 && hw > maxW {
				hw = maxW
			}
			for c := range subW {
				if subW[c][s] < hw {
					subW[c][s] = hw
				}
			}
		}
	}

	// Equally spaced subcolumns share one width across all columns.
	// This runs last so it sees span and header adjustments.
	for s := 0; s < nSub && s < len(f.templates); s++ {
		if !f.templates[s].EquallySpaced {
			continue
		}
		shared := 0.0
		for c := range subW {
			if subW[c][s] > shared {
				shared = subW[c][s]
			}
		}
		for c := range subW {
			subW[c][s] = shared
		}
	}

	heights := make([][]float64, cols)
	rows := make([]int, cols)
	gridH := 0.0
	for c, column := range slots {
		rows[c] = len(column)
		heights[c] = make([]float64, len(column))
		for r, e := range column {
			heights[c][r] = e.height(f.m, f.font)
		}
		if h := columnHeightOf(heights[c], f.met.rowSpacing); h > gridH {
			gridH = h
		}
	}

	gridW := 0.0
	for c := range subW {
		gridW += columnWidthOf(subW[c], f.met.subSpacing)
	}
	if cols > 1 {
		gridW += f.met.colSpacing * float64(cols-1)
	}

	headerBlock := 0.0
	if f.hasHeaders() {
		hh := 0.0
		for _, tpl := range f.templates {
			if tpl.Header == "" {
				continue
			}
			if s := f.m.Measure(tpl.Header, tpl.headerFont(f.font)); s.H > hh {
				hh = s.H
			}
		}
		headerBlock = hh + f.met.blockGap
	}

	// The title keeps the configured font; auto-fit shrinks entries,
	// never the title.
	titleBlock, titleW := 0.0, 0.0
	if f.legend.Title != "" {
		ts := text.MeasureBounded(f.m, f.legend.Title, f.legend.titleFont(), f.avail)
		titleBlock = ts.H + f.met.blockGap
		titleW = ts.W
	}

	contentW := gridW
	if titleW > contentW {
		contentW = titleW
	}
	totalW := contentW + 2*(f.met.border+f.met.padX)
	totalH := titleBlock + headerBlock + gridH + 2*(f.met.border+f.met.padY)

	var ind geom.Size
	if truncated {
		ind = f.m.Measure(truncationMark, f.font)
		switch f.policy {
		case ArrangeWide, ArrangeRow:
			totalW += ind.W + f.met.colSpacing
		default:
			totalH += ind.H + f.met.rowSpacing
		}
	}

	hs := f.avail.W - totalW
	vs := f.avail.H - totalH
	return Configuration{
		Columns:         cols,
		RowsPerColumn:   rows,
		Policy:          f.policy,
		SubColumnWidths: subW,
		CellHeights:     heights,
		Items:           f.items,
		Truncated:       truncated,
		Indicator:       ind,
		Size:            geom.Size{W: totalW, H: totalH},
		HSlack:          hs,
		VSlack:          vs,
		Fits:            hs >= 0 && vs >= 0,
	}
}

// slotEntries distributes entries down each column in turn. Columns with
// no rows are dropped; entries beyond the requested split pile into the
// last column.
func slotEntries(entries []*Entry, rowsPerColumn []int) [][]*Entry {
	slots := make([][]*Entry, 0, len(rowsPerColumn))
	i := 0
	for _, rows := range rowsPerColumn {
		if i >= len(entries) {
			break
		}
		n := rows
		if rest := len(entries) - i; n > rest {
			n = rest
		}
		if n <= 0 {
			continue
		}
		slots = append(slots, entries[i:i+n:i+n])
		i += n
	}
	if i < len(entries) && len(slots) > 0 {
		last := len(slots) - 1
		slots[last] = append(slices.Clip(slots[last]), entries[i:]...)
	}
	return slots
}

func (f *fitter) hasHeaders() bool {
	for _, tpl := range f.templates {
		if tpl.Header != "" {
			return true
		}
	}
	return false
}

// clampWidth applies the template width bounds to a single-span cell.
// Bounds are percentages of the reference glyph width, so they scale
// with auto-fit shrinking.
func (f *fitter) clampWidth(cell *Cell, sub int, w float64) float64 {
	tpl := cell.template(f.templates, sub)
	if tpl == nil {
		return w
	}
	if min := f.minWidth(tpl); min > 0 && w < min {
		w = min
	}
	if max := f.maxWidth(tpl); max > 0 && w > max {
		w = max
	}
	return w
}

func (f *fitter) minWidth(tpl *Column) float64 {
	return tpl.MinWidthPct / 100 * f.met.ref.W
}

func (f *fitter) maxWidth(tpl *Column) float64 {
	return tpl.MaxWidthPct / 100 * f.met.ref.W
}

// columnWidthOf sums subcolumn widths plus the gaps between them.
func columnWidthOf(widths []float64, subSpacing float64) float64 {
	w := 0.0
	for _, sw := range widths {
		w += sw
	}
	if n := len(widths); n > 1 {
		w += subSpacing * float64(n-1)
	}
	return w
}

// columnHeightOf sums row heights plus the gaps between them.
func columnHeightOf(heights []float64, rowSpacing float64) float64 {
	h := 0.0
	for _, rh := range heights {
		h += rh
	}
	if n := len(heights); n > 1 {
		h += rowSpacing * float64(n-1)
	}
	return h
}

func (f *fitter) avgColumnWidth(cfg Configuration) float64 {
	if cfg.Columns == 0 {
		return 0
	}
	w := 0.0
	for c := range cfg.SubColumnWidths {
		w += columnWidthOf(cfg.SubColumnWidths[c], f.met.subSpacing)
	}
	return w / float64(cfg.Columns)
}

// columnHeight returns the stacked height of one layout column.
func (f *fitter) columnHeight(cfg Configuration, c int) float64 {
	return columnHeightOf(cfg.CellHeights[c], f.met.rowSpacing)
}
