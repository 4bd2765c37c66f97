package legend

import (
	"testing"

	"github.com/legenda-dev/legenda/pkg/chart"
	"github.com/legenda-dev/legenda/pkg/geom"
	"github.com/legenda-dev/legenda/pkg/text"
)

func sumRows(cfg Configuration) int {
	n := 0
	for _, r := range cfg.RowsPerColumn {
		n += r
	}
	return n
}

func TestResolveSingleColumn(t *testing.T) {
	ch := &chart.Chart{Series: []*chart.Series{
		chart.NewSeries("a", chart.KindLine),
		chart.NewSeries("b", chart.KindLine),
		chart.NewSeries("c", chart.KindLine),
	}}
	l := New(DefaultName)
	l.Arrangement = ArrangeColumn
	l.Font = text.Font{SizePt: 10}
	if err := l.Collect(ch); err != nil {
		t.Fatalf("Collect: %v", err)
	}

	cfg := l.Resolve(fixedM, geom.Size{W: 1000, H: 1000})
	if !cfg.Fits {
		t.Fatal("ample area must fit")
	}
	if cfg.Columns != 1 || len(cfg.RowsPerColumn) != 1 || cfg.RowsPerColumn[0] != 3 {
		t.Errorf("got %d columns %v, want one column of 3", cfg.Columns, cfg.RowsPerColumn)
	}
	if cfg.FontDelta != 0 || cfg.Truncated || cfg.Items != 3 {
		t.Errorf("unexpected auto-fit state: delta=%d truncated=%v items=%d",
			cfg.FontDelta, cfg.Truncated, cfg.Items)
	}
	if cfg.Policy != ArrangeColumn {
		t.Errorf("policy = %q, want %q", cfg.Policy, ArrangeColumn)
	}
}

func TestResolveSingleRow(t *testing.T) {
	l := New(DefaultName)
	l.Arrangement = ArrangeRow
	l.Font = text.Font{SizePt: 10}
	l.Columns = textColumns(1)
	l.entries = []*Entry{textEntry("a"), textEntry("b"), textEntry("c"), textEntry("d")}

	cfg := l.Resolve(fixedM, geom.Size{W: 1000, H: 1000})
	if cfg.Columns != 4 {
		t.Fatalf("columns = %d, want 4", cfg.Columns)
	}
	for c, r := range cfg.RowsPerColumn {
		if r != 1 {
			t.Errorf("column %d holds %d rows, want 1", c, r)
		}
	}
	if !cfg.Fits {
		t.Error("ample area must fit")
	}
}

func TestSolveTallOpensColumns(t *testing.T) {
	l := New(DefaultName)
	l.Font = text.Font{SizePt: 10}
	l.Border = false
	l.RowSpacing = 0
	l.Columns = textColumns(1)
	for i := 0; i < 7; i++ {
		l.entries = append(l.entries, textEntry("aaaa"))
	}

	// Inner height is 40-5 = 35: three 10 tall rows per column.
	cfg := l.Resolve(fixedM, geom.Size{W: 1000, H: 40})
	if !cfg.Fits {
		t.Fatalf("expected fit, got slack %v/%v", cfg.HSlack, cfg.VSlack)
	}
	if cfg.Columns != 3 {
		t.Errorf("columns = %d, want 3", cfg.Columns)
	}
	if got := sumRows(cfg); got != 7 {
		t.Errorf("rows cover %d items, want 7", got)
	}
	for c, r := range cfg.RowsPerColumn {
		if r > 3 {
			t.Errorf("column %d holds %d rows, more than the box fits", c, r)
		}
	}
}

func TestSolveTallColumnCap(t *testing.T) {
	l := New(DefaultName)
	l.Font = text.Font{SizePt: 10}
	l.Columns = textColumns(1)
	for i := 0; i < 60; i++ {
		l.entries = append(l.entries, textEntry("aa"))
	}

	f := l.fitter(fixedM, geom.Size{W: 100000, H: 16}, l.Font, 60, ArrangeTall)
	cfg := f.solve()
	if cfg.Columns != maxTableColumns {
		t.Errorf("columns = %d, want the %d cap", cfg.Columns, maxTableColumns)
	}
	if got := sumRows(cfg); got != 60 {
		t.Errorf("rows cover %d items, want all 60", got)
	}
}

func TestSolveTallNarrowBox(t *testing.T) {
	l := New(DefaultName)
	l.Font = text.Font{SizePt: 10}
	l.Border = false
	l.AutoFitText = false
	l.Columns = textColumns(1)
	for i := 0; i < 4; i++ {
		l.entries = append(l.entries, textEntry("aaaa"))
	}

	// 25 needed, 12 offered: too narrow for even one column, so the
	// solver stacks everything vertically rather than wrapping.
	cfg := l.Resolve(fixedM, geom.Size{W: 12, H: 1000})
	if cfg.Fits {
		t.Fatal("box is too narrow to fit")
	}
	if cfg.Columns != 1 || cfg.RowsPerColumn[0] != 4 {
		t.Errorf("got %d columns %v, want one column of 4", cfg.Columns, cfg.RowsPerColumn)
	}
	if cfg.HSlack >= 0 || cfg.VSlack < 0 {
		t.Errorf("expected pure horizontal overflow, got %v/%v", cfg.HSlack, cfg.VSlack)
	}
}

func TestSolveWideWrapsIntoShortestColumn(t *testing.T) {
	l := New(DefaultName)
	l.Arrangement = ArrangeWide
	l.Font = text.Font{SizePt: 10}
	l.Border = false
	l.RowSpacing = 0
	l.ColumnSpacing = 0
	l.Columns = textColumns(1)
	for i := 0; i < 5; i++ {
		l.entries = append(l.entries, textEntry("aa"))
	}

	// Three 10 wide columns fit in 40-5 = 35 inner width; the fourth
	// and fifth entries wrap, each into the lowest-index shortest
	// column.
	cfg := l.Resolve(fixedM, geom.Size{W: 40, H: 1000})
	if !cfg.Fits {
		t.Fatalf("expected fit, got slack %v/%v", cfg.HSlack, cfg.VSlack)
	}
	want := []int{2, 2, 1}
	if cfg.Columns != 3 || len(cfg.RowsPerColumn) != 3 {
		t.Fatalf("columns = %d %v, want 3", cfg.Columns, cfg.RowsPerColumn)
	}
	for c := range want {
		if cfg.RowsPerColumn[c] != want[c] {
			t.Errorf("rows = %v, want %v", cfg.RowsPerColumn, want)
			break
		}
	}
}

func TestSolveWideShortBox(t *testing.T) {
	l := New(DefaultName)
	l.Arrangement = ArrangeWide
	l.Font = text.Font{SizePt: 10}
	l.AutoFitText = false
	l.Columns = textColumns(1)
	l.entries = []*Entry{textEntry("a"), textEntry("b"), textEntry("c")}

	// Too short for even one row: entries keep spreading horizontally.
	cfg := l.Resolve(fixedM, geom.Size{W: 1000, H: 3})
	if cfg.Fits {
		t.Fatal("box is too short to fit")
	}
	if cfg.Columns != 3 {
		t.Errorf("columns = %d, want 3", cfg.Columns)
	}
	if cfg.VSlack >= 0 || cfg.HSlack < 0 {
		t.Errorf("expected pure vertical overflow, got %v/%v", cfg.HSlack, cfg.VSlack)
	}
}

func TestRowsAlwaysCoverItems(t *testing.T) {
	for _, policy := range []Arrangement{ArrangeColumn, ArrangeRow, ArrangeTall, ArrangeWide} {
		t.Run(string(policy), func(t *testing.T) {
			l := New(DefaultName)
			l.Arrangement = policy
			l.Font = text.Font{SizePt: 10}
			l.Columns = textColumns(1)
			for i := 0; i < 9; i++ {
				l.entries = append(l.entries, textEntry("abc"))
			}

			cfg := l.Resolve(fixedM, geom.Size{W: 2000, H: 2000})
			if cfg.Truncated {
				t.Fatal("generous box must not truncate")
			}
			if got := sumRows(cfg); got != 9 {
				t.Errorf("sum(rowsPerColumn) = %d, want 9", got)
			}
			if cfg.Policy != policy {
				t.Errorf("policy = %q, want %q", cfg.Policy, policy)
			}
		})
	}
}

func TestEffectivePolicyFollowsDock(t *testing.T) {
	tests := []struct {
		dock  Dock
		avail geom.Size
		want  Arrangement
	}{
		{DockLeft, geom.Size{W: 100, H: 100}, ArrangeTall},
		{DockRight, geom.Size{W: 100, H: 100}, ArrangeTall},
		{DockTop, geom.Size{W: 100, H: 100}, ArrangeWide},
		{DockBottom, geom.Size{W: 100, H: 100}, ArrangeWide},
		{DockFloat, geom.Size{W: 50, H: 200}, ArrangeTall},
		{DockFloat, geom.Size{W: 200, H: 50}, ArrangeWide},
	}
	for _, tt := range tests {
		l := New(DefaultName)
		l.Dock = tt.dock
		if got := l.effectivePolicy(tt.avail); got != tt.want {
			t.Errorf("dock %s with %vx%v: policy = %q, want %q",
				tt.dock, tt.avail.W, tt.avail.H, got, tt.want)
		}
	}
}
