package geom

import "testing"

func TestRectInset(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		d    float64
		want Rect
	}{
		{"basic", NewRect(0, 0, 100, 50), 10, NewRect(10, 10, 80, 30)},
		{"zero inset", NewRect(5, 5, 20, 20), 0, NewRect(5, 5, 20, 20)},
		{"collapses width", NewRect(0, 0, 10, 100), 8, NewRect(8, 8, 0, 84)},
		{"collapses both", NewRect(0, 0, 4, 4), 10, NewRect(10, 10, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Inset(tt.d); got != tt.want {
				t.Errorf("Inset(%v) = %v, want %v", tt.d, got, tt.want)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 20)
	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"center", Point{20, 20}, true},
		{"top left edge", Point{10, 10}, true},
		{"bottom right edge", Point{30, 30}, false},
		{"outside", Point{5, 20}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestRectUnion(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want Rect
	}{
		{"disjoint", NewRect(0, 0, 10, 10), NewRect(20, 20, 10, 10), NewRect(0, 0, 30, 30)},
		{"nested", NewRect(0, 0, 100, 100), NewRect(10, 10, 5, 5), NewRect(0, 0, 100, 100)},
		{"empty left", Rect{}, NewRect(3, 4, 5, 6), NewRect(3, 4, 5, 6)},
		{"empty right", NewRect(3, 4, 5, 6), Rect{}, NewRect(3, 4, 5, 6)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Union(tt.b); got != tt.want {
				t.Errorf("Union = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSizeIsDegenerate(t *testing.T) {
	tests := []struct {
		name string
		s    Size
		want bool
	}{
		{"positive", Size{10, 10}, false},
		{"zero width", Size{0, 10}, true},
		{"negative height", Size{10, -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.IsDegenerate(); got != tt.want {
				t.Errorf("IsDegenerate() = %v, want %v", got, tt.want)
			}
		})
	}
}
