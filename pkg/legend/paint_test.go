package legend

import (
	"testing"

	"github.com/legenda-dev/legenda/pkg/chart"
	"github.com/legenda-dev/legenda/pkg/geom"
	"github.com/legenda-dev/legenda/pkg/text"
)

type paintOp struct {
	kind   string
	rect   geom.Rect
	color  chart.Color
	text   string
	marker chart.MarkerKind
	ref    string
	width  float64
}

// recordingPainter captures draw calls for assertions.
type recordingPainter struct {
	ops []paintOp
}

func (p *recordingPainter) FillRect(r geom.Rect, c chart.Color) {
	p.ops = append(p.ops, paintOp{kind: "fill", rect: r, color: c})
}

func (p *recordingPainter) StrokeRect(r geom.Rect, c chart.Color, w float64) {
	p.ops = append(p.ops, paintOp{kind: "stroke", rect: r, color: c, width: w})
}

func (p *recordingPainter) Text(b TextBox, c chart.Color) {
	p.ops = append(p.ops, paintOp{kind: "text", rect: b.Rect, color: c, text: b.Text})
}

func (p *recordingPainter) Marker(r geom.Rect, k chart.MarkerKind, c chart.Color) {
	p.ops = append(p.ops, paintOp{kind: "marker", rect: r, color: c, marker: k})
}

func (p *recordingPainter) Image(r geom.Rect, ref string) {
	p.ops = append(p.ops, paintOp{kind: "image", rect: r, ref: ref})
}

func (p *recordingPainter) count(kind string) int {
	n := 0
	for _, op := range p.ops {
		if op.kind == kind {
			n++
		}
	}
	return n
}

func twoSeriesLegend(t *testing.T) *Legend {
	t.Helper()
	ch := &chart.Chart{Series: []*chart.Series{
		chart.NewSeries("alpha", chart.KindLine),
		chart.NewSeries("beta", chart.KindLine),
	}}
	l := New(DefaultName)
	l.Font = text.Font{SizePt: 10}
	if err := l.Collect(ch); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	return l
}

func TestRenderPaintsInOrder(t *testing.T) {
	l := twoSeriesLegend(t)
	rec := &recordingPainter{}
	pl := l.Render(rec, fixedM, geom.NewRect(0, 0, 200, 200), nil)

	if pl.Bounds.Empty() {
		t.Fatal("expected a non-empty placement")
	}
	if len(rec.ops) == 0 {
		t.Fatal("no draw calls issued")
	}
	if rec.ops[0].kind != "fill" || rec.ops[0].color != l.Background {
		t.Errorf("first op = %+v, want the background fill", rec.ops[0])
	}
	if rec.ops[1].kind != "stroke" || rec.ops[1].color != l.BorderColor {
		t.Errorf("second op = %+v, want the border stroke", rec.ops[1])
	}
	if got := rec.count("marker"); got != 2 {
		t.Errorf("marker ops = %d, want 2", got)
	}
	if got := rec.count("text"); got != 2 {
		t.Errorf("text ops = %d, want 2", got)
	}
}

func TestRenderRegistersRegions(t *testing.T) {
	l := twoSeriesLegend(t)
	rec := &recordingPainter{}
	regions := &Regions{}
	pl := l.Render(rec, fixedM, geom.NewRect(0, 0, 200, 200), regions)

	all := regions.All()
	if len(all) != 3 {
		t.Fatalf("regions = %d, want background plus two entries", len(all))
	}
	if all[0].Kind != RegionBackground {
		t.Errorf("first region = %q, want background", all[0].Kind)
	}
	seen := map[string]bool{}
	for _, r := range all {
		if r.ID == "" {
			t.Error("region without an id")
		}
		if seen[r.ID] {
			t.Errorf("duplicate region id %q", r.ID)
		}
		seen[r.ID] = true
	}

	// A point inside the first entry's label hits the entry region,
	// not the background underneath it.
	probe := pl.Cells[1].Rect.Center()
	hit, ok := regions.HitTest(probe)
	if !ok || hit.Kind != RegionEntry {
		t.Fatalf("HitTest(%v) = %+v, want an entry region", probe, hit.Kind)
	}
	if hit.Entry == nil || hit.Entry.Series.Name != "alpha" {
		t.Errorf("hit the wrong entry: %+v", hit.Entry)
	}
	// The entry region spans the marker cell as well.
	if !hit.Rect.Contains(pl.Cells[0].Rect.Center()) {
		t.Error("entry region should cover the marker cell")
	}

	if _, ok := regions.HitTest(geom.Point{X: 199, Y: 199}); ok {
		t.Error("point outside the legend should miss")
	}
}

func TestPaintDisabledEntryGreyedOut(t *testing.T) {
	l := twoSeriesLegend(t)
	l.Entries()[1].Enabled = false
	rec := &recordingPainter{}
	l.Render(rec, fixedM, geom.NewRect(0, 0, 200, 200), nil)

	var markers []paintOp
	for _, op := range rec.ops {
		if op.kind == "marker" {
			markers = append(markers, op)
		}
	}
	if len(markers) != 2 {
		t.Fatalf("marker ops = %d, want 2", len(markers))
	}
	if markers[0].color == disabledColor {
		t.Error("enabled entry painted grey")
	}
	if markers[1].color != disabledColor {
		t.Errorf("disabled entry marker = %s, want %s", markers[1].color, disabledColor)
	}
}

func TestPaintSeparatorsGated(t *testing.T) {
	l := twoSeriesLegend(t)
	rec := &recordingPainter{}
	l.Render(rec, fixedM, geom.NewRect(0, 0, 200, 200), nil)
	base := rec.count("fill")

	l.Separators = true
	rec = &recordingPainter{}
	l.Render(rec, fixedM, geom.NewRect(0, 0, 200, 200), nil)
	if got := rec.count("fill"); got != base+1 {
		t.Errorf("fill ops with separators = %d, want %d", got, base+1)
	}
}

func TestPaintEntrySeparator(t *testing.T) {
	l := twoSeriesLegend(t)
	l.Entries()[0].Separator = SeparatorThick
	rec := &recordingPainter{}
	l.Render(rec, fixedM, geom.NewRect(0, 0, 200, 200), nil)

	// The entry's own rule paints even with the legend setting off.
	var sep *paintOp
	for i, op := range rec.ops {
		if op.kind == "fill" && op.color == l.SeparatorColor {
			sep = &rec.ops[i]
		}
	}
	if sep == nil {
		t.Fatal("entry separator not painted")
	}
	if sep.rect.H != 2 {
		t.Errorf("thick rule height = %v, want 2", sep.rect.H)
	}
}

func TestPaintTruncationIndicator(t *testing.T) {
	l := New(DefaultName)
	l.Font = text.Font{SizePt: 10}
	l.Border = false
	l.AutoFitText = false
	l.Arrangement = ArrangeColumn
	l.Columns = textColumns(1)
	for i := 0; i < 4; i++ {
		l.entries = append(l.entries, textEntry("aaaa"))
	}

	rec := &recordingPainter{}
	regions := &Regions{}
	l.Render(rec, fixedM, geom.NewRect(0, 0, 1000, 41), regions)

	found := false
	for _, op := range rec.ops {
		if op.kind == "text" && op.text == "..." {
			found = true
		}
	}
	if !found {
		t.Error("truncation indicator not painted")
	}
	last := regions.All()[len(regions.All())-1]
	if last.Kind != RegionIndicator {
		t.Errorf("last region = %q, want the indicator", last.Kind)
	}
}

func TestPaintTruncatesOverflowingCellText(t *testing.T) {
	l := New(DefaultName)
	l.Font = text.Font{SizePt: 10}
	l.Columns = []*Column{{Kind: CellText, MaxWidthPct: 200}} // cap 10
	l.entries = []*Entry{textEntry("aaaa")}                   // 20 wide

	rec := &recordingPainter{}
	l.Render(rec, fixedM, geom.NewRect(0, 0, 200, 200), nil)

	for _, op := range rec.ops {
		if op.kind == "text" {
			if op.text != ".." {
				t.Errorf("painted %q, want the clipped %q", op.text, "..")
			}
			return
		}
	}
	t.Fatal("no text op recorded")
}

func TestRenderInvisibleLegend(t *testing.T) {
	l := twoSeriesLegend(t)
	l.Visible = false
	rec := &recordingPainter{}
	pl := l.Render(rec, fixedM, geom.NewRect(0, 0, 200, 200), nil)

	if len(rec.ops) != 0 {
		t.Errorf("invisible legend issued %d draw calls", len(rec.ops))
	}
	if !pl.Bounds.Empty() {
		t.Errorf("invisible legend claimed bounds %+v", pl.Bounds)
	}
}
