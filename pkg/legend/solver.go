package legend

import "slices"

// solve picks a column/row split for the fitter's entries under its
// layout policy. Explicit column and row arrangements skip the search.
func (f *fitter) solve() Configuration {
	switch f.policy {
	case ArrangeColumn:
		return f.evaluate([]int{f.items})
	case ArrangeRow:
		rows := make([]int, f.items)
		for i := range rows {
			rows[i] = 1
		}
		return f.evaluate(rows)
	case ArrangeWide:
		return f.solveWide()
	default:
		return f.solveTall()
	}
}

// solveTall packs entries into columns, growing each column downward
// until it would overflow the box bottom, then opening the next one
// while meaningful width remains. Entries that fit nowhere pile into
// the last column so none are silently lost.
func (f *fitter) solveTall() Configuration {
	rows := []int{1}
	cfg := f.evaluate(rows)
	maxCols := f.legend.maxTableCols()
	for placed := 1; placed < f.items; placed++ {
		grown := slices.Clone(rows)
		grown[len(grown)-1]++
		gcfg := f.evaluate(grown)
		// Growing downward is acceptable while it fits, and also when
		// the box is too narrow anyway: stacking a too-wide legend
		// taller wastes nothing.
		if gcfg.Fits || (gcfg.HSlack < 0 && gcfg.VSlack >= 0) {
			rows, cfg = grown, gcfg
			continue
		}
		if len(rows) < maxCols && cfg.HSlack >= f.avgColumnWidth(cfg)/2 {
			rows = append(rows, 1)
			cfg = f.evaluate(rows)
		} else {
			rows, cfg = grown, gcfg
		}
	}
	return f.rebalanceTall(rows, cfg)
}

// rebalanceTall evens out column heights after packing: the last column
// opened often holds a short tail, so rows migrate into it from the
// tallest column as long as the legend gets no taller.
func (f *fitter) rebalanceTall(rows []int, cfg Configuration) Configuration {
	if cfg.Columns < 2 {
		return cfg
	}
	for moves := 0; moves < f.items; moves++ {
		last := cfg.Columns - 1
		donor, donorH := -1, 0.0
		for c := 0; c < cfg.Columns; c++ {
			if cfg.RowsPerColumn[c] < 2 || c == last {
				continue
			}
			if h := f.columnHeight(cfg, c); donor < 0 || h > donorH {
				donor, donorH = c, h
			}
		}
		if donor < 0 {
			return cfg
		}
		moved := slices.Clone(rows)
		moved[donor]--
		moved[last]++
		mcfg := f.evaluate(moved)
		if mcfg.Size.H > cfg.Size.H || (cfg.Fits && !mcfg.Fits) {
			return cfg
		}
		rows, cfg = moved, mcfg
	}
	return cfg
}

// solveWide lays entries out left to right, one per column, wrapping
// into the shortest existing column once the box width is spent.
func (f *fitter) solveWide() Configuration {
	rows := []int{1}
	cfg := f.evaluate(rows)
	maxCols := f.legend.maxTableCols()
	for placed := 1; placed < f.items; placed++ {
		if len(rows) < maxCols {
			widened := append(slices.Clone(rows), 1)
			wcfg := f.evaluate(widened)
			// A new column is acceptable while it fits, and also when
			// the box is too short anyway: a one-row legend cannot get
			// shorter by wrapping.
			if wcfg.Fits || (wcfg.VSlack < 0 && wcfg.HSlack >= 0) {
				rows, cfg = widened, wcfg
				continue
			}
		}
		target := 0
		targetH := f.columnHeight(cfg, 0)
		for c := 1; c < cfg.Columns; c++ {
			if h := f.columnHeight(cfg, c); h < targetH {
				target, targetH = c, h
			}
		}
		rows[target]++
		cfg = f.evaluate(rows)
	}
	return cfg
}

// degenerateOverflow reports overflow that dropping trailing entries
// cannot cure: a single column overflowing only horizontally, or a
// single row overflowing only vertically. Truncating more entries in
// those shapes shrinks nothing on the failing axis.
func degenerateOverflow(cfg Configuration) bool {
	if cfg.Columns == 1 && cfg.HSlack < 0 && cfg.VSlack >= 0 {
		return true
	}
	tallest := 0
	for _, r := range cfg.RowsPerColumn {
		if r > tallest {
			tallest = r
		}
	}
	return tallest == 1 && cfg.VSlack < 0 && cfg.HSlack >= 0
}
