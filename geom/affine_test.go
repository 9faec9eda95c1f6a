package geom

import (
	"image"
	"math"
	"testing"
)

const epsilon = 1e-10

func TestIdentity(t *testing.T) {
	a := Identity()

	x, y := a.TransformPoint(10, 20)
	if math.Abs(x-10) > epsilon || math.Abs(y-20) > epsilon {
		t.Errorf("Identity transform failed: got (%f, %f), want (10, 20)", x, y)
	}
}

func TestPostOperationsOrder(t *testing.T) {
	// Translate first, then scale: (1,1) -> (3,3) -> (6,9)
	a := Identity().PostTranslate(2, 2).PostScale(2, 3)
	x, y := a.TransformPoint(1, 1)
	if math.Abs(x-6) > epsilon || math.Abs(y-9) > epsilon {
		t.Errorf("TransformPoint = (%f, %f), want (6, 9)", x, y)
	}
}

func TestMapRect(t *testing.T) {
	a := Scale(-1, 2)
	got := a.MapRect(R(1, 1, 3, 2))
	want := R(-3, 2, -1, 4)
	if got != want {
		t.Errorf("MapRect = %v, want %v", got, want)
	}
}

func TestPageRect(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		bounds Rect
		want   image.Rectangle
	}{
		{"whole page", 300, 400, Unit, image.Rect(0, 0, 300, 400)},
		{"top right quarter", 256, 256, R(0.5, 0, 1, 0.5), image.Rect(-256, 0, 256, 512)},
		{"middle strip", 100, 50, R(0, 0.25, 1, 0.5), image.Rect(0, -50, 100, 150)},
		{"empty bounds", 100, 100, R(0.5, 0.5, 0.5, 0.5), image.Rectangle{}},
		{"zero size", 0, 100, Unit, image.Rectangle{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PageRect(tt.w, tt.h, tt.bounds); got != tt.want {
				t.Errorf("PageRect(%d, %d, %v) = %v, want %v", tt.w, tt.h, tt.bounds, got, tt.want)
			}
		})
	}
}

func TestRectRound(t *testing.T) {
	got := R(0.5, 1.49, 2.5, 3.5).Round()
	want := image.Rect(1, 1, 3, 4)
	if got != want {
		t.Errorf("Round = %v, want %v", got, want)
	}
}

func TestAff3RoundTrip(t *testing.T) {
	a := Translate(3, 4).Multiply(Scale(2, 2))
	m := a.Aff3()
	if m[0] != 2 || m[2] != 3 || m[4] != 2 || m[5] != 4 {
		t.Errorf("Aff3 = %v, want [2 0 3 0 2 4]", m)
	}
}
