package core

import "testing"

func TestBoxOverlapsX(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{
			name:     "overlapping",
			a:        Box{X: 0, Y: 0, W: 40, H: 50},
			b:        Box{X: 30, Y: 500, W: 150, H: 20},
			expected: true,
		},
		{
			name:     "left of",
			a:        Box{X: 0, W: 40},
			b:        Box{X: 50, W: 100},
			expected: false,
		},
		{
			name:     "touching right edge",
			a:        Box{X: 0, W: 40},
			b:        Box{X: 40, W: 100},
			expected: false,
		},
		{
			name:     "touching left edge",
			a:        Box{X: 140, W: 40},
			b:        Box{X: 40, W: 100},
			expected: false,
		},
		{
			name:     "contained",
			a:        Box{X: 60, W: 10},
			b:        Box{X: 40, W: 100},
			expected: true,
		},
		{
			name:     "vertical position ignored",
			a:        Box{X: 10, Y: -900, W: 10},
			b:        Box{X: 0, Y: 900, W: 100},
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.OverlapsX(tc.b); got != tc.expected {
				t.Errorf("OverlapsX() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.OverlapsX(tc.a); got != tc.expected {
				t.Errorf("OverlapsX() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestBoxEdges(t *testing.T) {
	b := Box{X: 5, Y: 10, W: 20, H: 15}
	if b.Right() != 25 {
		t.Errorf("Right() = %v, expected 25", b.Right())
	}
	if b.Bottom() != 25 {
		t.Errorf("Bottom() = %v, expected 25", b.Bottom())
	}

	r := NewRect(5, 10, 20, 15)
	if r.Right() != 25 || r.Bottom() != 25 {
		t.Errorf("Rect edges = (%d, %d), expected (25, 25)", r.Right(), r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	ints := []struct {
		val, lo, hi, want int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{10, 0, 10, 10},
	}
	for _, tc := range ints {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.want {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.want)
		}
	}

	floats := []struct {
		val, lo, hi, want float64
	}{
		{5.5, 0, 10, 5.5},
		{-12, -10, 10, -10},
		{15.5, 0, 10, 10},
	}
	for _, tc := range floats {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, expected %v", tc.val, tc.lo, tc.hi, got, tc.want)
		}
	}
}

func TestLerp(t *testing.T) {
	for _, tc := range []struct{ t, want float64 }{{0, 12}, {1, 22}, {0.5, 17}} {
		if got := Lerp(12, 22, tc.t); got != tc.want {
			t.Errorf("Lerp(12, 22, %v) = %v, expected %v", tc.t, got, tc.want)
		}
	}
}
