package legend

import (
	"reflect"
	"testing"

	"github.com/legenda-dev/legenda/pkg/geom"
	"github.com/legenda-dev/legenda/pkg/text"
)

func rowLegend(fontSize float64) *Legend {
	l := New(DefaultName)
	l.Arrangement = ArrangeRow
	l.Font = text.Font{SizePt: fontSize}
	l.MinFontSize = 9
	l.Columns = textColumns(1)
	for i := 0; i < 10; i++ {
		l.entries = append(l.entries, textEntry("aaaa"))
	}
	return l
}

func TestResolveShrinksFontToFit(t *testing.T) {
	huge := geom.Size{W: 100000, H: 1000}
	w10 := rowLegend(10).Resolve(fixedM, huge).Size.W
	w11 := rowLegend(11).Resolve(fixedM, huge).Size.W
	if w10 >= w11 {
		t.Fatalf("row width must grow with font size: %v at 10pt, %v at 11pt", w10, w11)
	}

	// Wide enough for the 10 entries at 10pt but not at 11pt, so two
	// single-point reductions from the 12pt base are required.
	avail := geom.Size{W: w10 + 1, H: 1000}
	cfg := rowLegend(12).Resolve(fixedM, avail)
	if !cfg.Fits {
		t.Fatalf("expected fit after shrinking, slack %v/%v", cfg.HSlack, cfg.VSlack)
	}
	if cfg.FontDelta != 2 {
		t.Errorf("FontDelta = %d, want 2", cfg.FontDelta)
	}
	if cfg.Items != 10 || cfg.Truncated {
		t.Errorf("shrinking must keep all items: items=%d truncated=%v", cfg.Items, cfg.Truncated)
	}
}

func TestResolveFontFloor(t *testing.T) {
	l := New(DefaultName)
	l.Font = text.Font{SizePt: 12}
	l.MinFontSize = 10
	l.Columns = textColumns(1)
	l.entries = []*Entry{textEntry("a very long label that never fits")}

	cfg := l.Resolve(fixedM, geom.Size{W: 30, H: 1000})
	if cfg.Fits {
		t.Fatal("label cannot fit the box")
	}
	if cfg.FontDelta != 2 {
		t.Errorf("FontDelta = %d, want 2 (12pt base, 10pt floor)", cfg.FontDelta)
	}
}

func truncatingLegend() *Legend {
	l := New(DefaultName)
	l.Font = text.Font{SizePt: 12}
	l.AutoFitText = false
	l.RowSpacing = 0
	l.ColumnSpacing = 0
	l.MaxColumns = 2
	for i := 0; i < 20; i++ {
		l.entries = append(l.entries, buildEntry(l.columnTemplates(), Item{
			Point:  -1,
			Text:   "aaaa",
			Color:  "#336699",
			Marker: "line",
		}))
	}
	return l
}

func TestResolveTruncatesWithIndicator(t *testing.T) {
	// Two columns of six 12 tall rows fit the 80 box; reserving the
	// indicator row leaves five per column, so ten of twenty entries
	// survive.
	cfg := truncatingLegend().Resolve(fixedM, geom.Size{W: 120, H: 80})
	if !cfg.Truncated {
		t.Fatal("expected truncation")
	}
	if cfg.Items >= 20 {
		t.Errorf("items = %d, want fewer than collected", cfg.Items)
	}
	if cfg.Items != 10 {
		t.Errorf("items = %d, want 10", cfg.Items)
	}
	if cfg.Indicator.H <= 0 {
		t.Errorf("indicator reserve = %v, want > 0", cfg.Indicator.H)
	}
	if !cfg.Fits {
		t.Errorf("truncated layout should fit, slack %v/%v", cfg.HSlack, cfg.VSlack)
	}
	if got := sumRows(cfg); got != cfg.Items {
		t.Errorf("rows cover %d items, want %d", got, cfg.Items)
	}
}

func TestResolveKeepsAtLeastTwoItems(t *testing.T) {
	l := New(DefaultName)
	l.Font = text.Font{SizePt: 10}
	l.Border = false
	l.AutoFitText = false
	l.RowSpacing = 0
	l.Columns = textColumns(1)
	for i := 0; i < 5; i++ {
		l.entries = append(l.entries, textEntry("aaaa"))
	}

	// Overflows both axes, so truncation proceeds but must stop at two.
	cfg := l.Resolve(fixedM, geom.Size{W: 20, H: 25})
	if cfg.Fits {
		t.Fatal("box cannot fit")
	}
	if cfg.Items != 2 {
		t.Errorf("items = %d, want the floor of 2", cfg.Items)
	}
	if !cfg.Truncated {
		t.Error("expected truncated state")
	}
}

func TestResolveDegenerateOverflowSkipsTruncation(t *testing.T) {
	l := New(DefaultName)
	l.Font = text.Font{SizePt: 10}
	l.Border = false
	l.AutoFitText = false
	l.Arrangement = ArrangeColumn
	l.Columns = textColumns(1)
	for i := 0; i < 5; i++ {
		l.entries = append(l.entries, textEntry("aaaa"))
	}

	// A single column overflowing only horizontally gains nothing from
	// dropping rows, so every entry stays.
	cfg := l.Resolve(fixedM, geom.Size{W: 20, H: 1000})
	if cfg.Fits {
		t.Fatal("box cannot fit")
	}
	if cfg.Truncated || cfg.Items != 5 {
		t.Errorf("degenerate overflow must not truncate: items=%d truncated=%v",
			cfg.Items, cfg.Truncated)
	}
}

func TestResolveDegenerateArea(t *testing.T) {
	l := New(DefaultName)
	l.entries = []*Entry{textEntry("a")}
	for _, avail := range []geom.Size{{W: 0, H: 100}, {W: 100, H: 0}, {W: -5, H: 100}} {
		cfg := l.Resolve(fixedM, avail)
		if cfg.Fits || !cfg.IsEmpty() {
			t.Errorf("area %vx%v should yield an empty non-fitting layout", avail.W, avail.H)
		}
	}
}

func TestResolveNoEntries(t *testing.T) {
	l := New(DefaultName)
	cfg := l.Resolve(fixedM, geom.Size{W: 100, H: 100})
	if !cfg.Fits {
		t.Error("an empty legend trivially fits")
	}
	if !cfg.IsEmpty() {
		t.Error("an empty legend lays out nothing")
	}
}

func TestResolveIdempotent(t *testing.T) {
	legends := map[string]*Legend{
		"fitting":    rowLegend(12),
		"truncating": truncatingLegend(),
	}
	avail := map[string]geom.Size{
		"fitting":    {W: 100000, H: 1000},
		"truncating": {W: 120, H: 80},
	}
	for name, l := range legends {
		t.Run(name, func(t *testing.T) {
			first := l.Resolve(fixedM, avail[name])
			second := l.Resolve(fixedM, avail[name])
			if !reflect.DeepEqual(first, second) {
				t.Errorf("repeated Resolve diverged:\n%#v\n%#v", first, second)
			}
		})
	}
}

func TestOptimalSizeWithinBounds(t *testing.T) {
	l := New(DefaultName)
	l.Font = text.Font{SizePt: 10}
	l.Columns = textColumns(1)
	l.entries = []*Entry{textEntry("aa"), textEntry("bb")}

	max := geom.Size{W: 500, H: 500}
	opt := l.OptimalSize(fixedM, max)
	want := l.Resolve(fixedM, max).Size
	if opt != want {
		t.Errorf("OptimalSize = %v, want the resolved size %v", opt, want)
	}

	// A legend that cannot fit still reports a box within the bounds.
	l.AutoFitText = false
	l.entries = []*Entry{textEntry("an uncomfortably long legend label")}
	tight := geom.Size{W: 30, H: 18}
	opt = l.OptimalSize(fixedM, tight)
	if opt.W > tight.W || opt.H > tight.H {
		t.Errorf("OptimalSize %v exceeds the offered %v", opt, tight)
	}
}
