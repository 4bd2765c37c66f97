package text

import (
	"testing"

	"github.com/legenda-dev/legenda/pkg/errors"
	"github.com/legenda-dev/legenda/pkg/geom"
)

func TestFontShrink(t *testing.T) {
	tests := []struct {
		name   string
		font   Font
		points int
		want   float64
	}{
		{"no shrink", Font{SizePt: 12}, 0, 12},
		{"two points", Font{SizePt: 12}, 2, 10},
		{"clamped at one", Font{SizePt: 3}, 10, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.font.Shrink(tt.points).SizePt; got != tt.want {
				t.Errorf("Shrink(%d).SizePt = %v, want %v", tt.points, got, tt.want)
			}
		})
	}
}

func TestFixedMeasurer(t *testing.T) {
	m := &FixedMeasurer{WidthFactor: 0.5, HeightFactor: 1}
	f := Font{SizePt: 10}

	tests := []struct {
		name string
		text string
		want geom.Size
	}{
		{"empty", "", geom.Size{W: 0, H: 10}},
		{"ascii", "abcd", geom.Size{W: 20, H: 10}},
		{"multibyte counted as runes", "héllo", geom.Size{W: 25, H: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Measure(tt.text, f); got != tt.want {
				t.Errorf("Measure(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestFixedMeasurerScalesWithFont(t *testing.T) {
	m := NewFixedMeasurer()
	small := m.Measure("series", Font{SizePt: 8})
	large := m.Measure("series", Font{SizePt: 16})
	if large.W <= small.W || large.H <= small.H {
		t.Errorf("larger font should measure larger: %v vs %v", large, small)
	}
}

func TestMeasureBounded(t *testing.T) {
	m := &FixedMeasurer{WidthFactor: 0.5, HeightFactor: 1}
	f := Font{SizePt: 10} // 5px per rune, 10px tall

	tests := []struct {
		name string
		text string
		max  geom.Size
		want geom.Size
	}{
		{"fits within box", "abc", geom.Size{W: 100, H: 100}, geom.Size{W: 15, H: 10}},
		{"width clamped", "abcdefgh", geom.Size{W: 25, H: 100}, geom.Size{W: 25, H: 10}},
		{"height clamped", "abc", geom.Size{W: 100, H: 6}, geom.Size{W: 15, H: 6}},
		{"zero max means unbounded", "abcdefgh", geom.Size{}, geom.Size{W: 40, H: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MeasureBounded(m, tt.text, f, tt.max); got != tt.want {
				t.Errorf("MeasureBounded(%q, %v) = %v, want %v", tt.text, tt.max, got, tt.want)
			}
		})
	}
}

func TestTruncateToWidth(t *testing.T) {
	m := &FixedMeasurer{WidthFactor: 0.5, HeightFactor: 1}
	f := Font{SizePt: 10} // 5px per rune

	tests := []struct {
		name     string
		text     string
		maxWidth float64
		want     string
	}{
		{"fits untouched", "abc", 15, "abc"},
		{"cut with marker", "abcdefgh", 25, "abc.."},
		{"exact fit", "abcd", 20, "abcd"},
		{"only marker fits", "abcdefgh", 10, ".."},
		{"no room", "abc", 0, ""},
		{"empty input", "", 100, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateToWidth(m, tt.text, f, tt.maxWidth); got != tt.want {
				t.Errorf("TruncateToWidth(%q, %v) = %q, want %q", tt.text, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestNormalizeFontKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"DejaVu Sans", "dejavusans"},
		{"Liberation-Serif", "liberationserif"},
		{"Noto_Sans", "notosans"},
	}
	for _, tt := range tests {
		if got := normalizeFontKey(tt.in); got != tt.want {
			t.Errorf("normalizeFontKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStyleCandidatesFallBackToPlainFamily(t *testing.T) {
	keys := styleCandidates("DejaVu Sans", true, false)
	if keys[0] != "dejavusansbold" {
		t.Errorf("first candidate = %q, want %q", keys[0], "dejavusansbold")
	}
	if keys[len(keys)-1] != "dejavusans" {
		t.Errorf("last candidate = %q, want plain family fallback", keys[len(keys)-1])
	}
}

func TestFontCacheLoadMissing(t *testing.T) {
	c := NewFontCache(t.TempDir())
	_, err := c.Load("No Such Family", false, false)
	if err == nil {
		t.Fatal("Load() on empty cache dir should fail")
	}
	if !errors.Is(err, errors.ErrCodeFontNotFound) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeFontNotFound)
	}
}

func TestFaceMeasurerFallbackFace(t *testing.T) {
	// A cache over an empty directory forces the built-in fallback face,
	// which has a fixed 7px advance and 13px line height.
	fm := NewFaceMeasurer(NewFontCache(t.TempDir()))
	got := fm.Measure("abc", Font{Family: "Missing", SizePt: 12})
	want := geom.Size{W: 21, H: 13}
	if got != want {
		t.Errorf("Measure() with fallback face = %v, want %v", got, want)
	}

	// Identical inputs must keep returning identical sizes.
	if again := fm.Measure("abc", Font{Family: "Missing", SizePt: 12}); again != got {
		t.Errorf("repeat Measure() = %v, want %v", again, got)
	}
}
