package pixbuf

import (
	"errors"
	"image"
	"image/color"
	"sync"
	"testing"
)

func TestAllocFull(t *testing.T) {
	a := NewAllocator(0, 4)
	b, err := a.Alloc(16, 8, Full)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	if b.Width() != 16 || b.Height() != 8 {
		t.Errorf("size = %dx%d, want 16x8", b.Width(), b.Height())
	}
	if b.ByteSize() != 16*8*4 {
		t.Errorf("ByteSize() = %d, want %d", b.ByteSize(), 16*8*4)
	}
	if _, ok := b.Image().(*image.RGBA); !ok {
		t.Errorf("Image() = %T, want *image.RGBA", b.Image())
	}
	if got := a.Stats().LiveBytes; got != 16*8*4 {
		t.Errorf("LiveBytes = %d, want %d", got, 16*8*4)
	}
}

func TestAllocReduced(t *testing.T) {
	a := NewAllocator(0, 4)
	b, err := a.Alloc(10, 10, Reduced)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	if b.ByteSize() != 10*10*2 {
		t.Errorf("ByteSize() = %d, want %d", b.ByteSize(), 200)
	}
	img, ok := b.Image().(*RGB565)
	if !ok {
		t.Fatalf("Image() = %T, want *RGB565", b.Image())
	}
	img.Set(3, 4, color.RGBA{R: 255, G: 0, B: 255, A: 255})
	r, g, bl, al := img.At(3, 4).RGBA()
	if r != 0xffff || g != 0 || bl != 0xffff || al != 0xffff {
		t.Errorf("At(3,4) = (%x,%x,%x,%x), want magenta", r, g, bl, al)
	}
}

func TestAllocInvalid(t *testing.T) {
	a := NewAllocator(0, 4)
	tests := []struct {
		name string
		w, h int
	}{
		{"zero width", 0, 10},
		{"zero height", 10, 0},
		{"negative", -1, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := a.Alloc(tt.w, tt.h, Full); !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("Alloc(%d, %d) err = %v, want ErrInvalidDimensions", tt.w, tt.h, err)
			}
		})
	}
}

func TestAllocBudget(t *testing.T) {
	a := NewAllocator(100, 0)
	b, err := a.Alloc(5, 5, Full)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	if _, err := a.Alloc(1, 1, Full); !errors.Is(err, ErrBudgetExceeded) {
		t.Errorf("second Alloc err = %v, want ErrBudgetExceeded", err)
	}
	b.Release()
	if _, err := a.Alloc(1, 1, Full); err != nil {
		t.Errorf("Alloc after release: %v", err)
	}
}

func TestReleaseExactlyOnce(t *testing.T) {
	a := NewAllocator(0, 4)
	b, _ := a.Alloc(4, 4, Full)

	if !b.Release() {
		t.Error("first Release() = false, want true")
	}
	if b.Release() {
		t.Error("second Release() = true, want false")
	}
	if !b.Released() {
		t.Error("Released() = false after Release")
	}

	s := a.Stats()
	if s.Released != 1 || s.DoubleReleases != 1 || s.Live != 0 || s.LiveBytes != 0 {
		t.Errorf("Stats = %+v, want Released=1 DoubleReleases=1 Live=0 LiveBytes=0", s)
	}
}

func TestReleaseConcurrent(t *testing.T) {
	a := NewAllocator(0, 4)
	b, _ := a.Alloc(4, 4, Full)

	var wg sync.WaitGroup
	wins := make(chan bool, 8)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			wins <- b.Release()
		}()
	}
	wg.Wait()
	close(wins)

	n := 0
	for w := range wins {
		if w {
			n++
		}
	}
	if n != 1 {
		t.Errorf("%d goroutines won the release, want 1", n)
	}
}

func TestPoolReuse(t *testing.T) {
	a := NewAllocator(0, 1)
	b, _ := a.Alloc(8, 8, Full)
	b.Image().Set(0, 0, color.White)
	b.Release()

	b2, _ := a.Alloc(8, 8, Full)
	if a.Stats().Reused != 1 {
		t.Errorf("Reused = %d, want 1", a.Stats().Reused)
	}
	if _, _, _, al := b2.Image().At(0, 0).RGBA(); al != 0 {
		t.Error("reused buffer was not cleared")
	}

	// Different quality must not share the bucket.
	if _, err := a.Alloc(8, 8, Reduced); err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	if a.Stats().Reused != 1 {
		t.Errorf("Reused = %d after reduced alloc, want 1", a.Stats().Reused)
	}
}

func TestColor565(t *testing.T) {
	tests := []struct {
		name string
		in   color.Color
		want Color565
	}{
		{"black", color.Black, 0},
		{"white", color.White, 0xffff},
		{"red", color.RGBA{R: 255, A: 255}, 0xf800},
		{"green", color.RGBA{G: 255, A: 255}, 0x07e0},
		{"blue", color.RGBA{B: 255, A: 255}, 0x001f},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RGB565Model.Convert(tt.in).(Color565); got != tt.want {
				t.Errorf("Convert(%v) = %#04x, want %#04x", tt.in, got, tt.want)
			}
		})
	}
}
