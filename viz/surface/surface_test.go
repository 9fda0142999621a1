package surface

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

var (
	red  = color.RGBA{R: 255, A: 255}
	blue = color.RGBA{B: 255, A: 255}
)

func mustNew(t *testing.T, w, h int) *Surface {
	t.Helper()

	s, err := New(w, h)
	if err != nil {
		t.Fatalf("New(%d, %d): %v", w, h, err)
	}

	return s
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		w, h int
	}{
		{name: "zero width", w: 0, h: 10},
		{name: "zero height", w: 10, h: 0},
		{name: "negative", w: -1, h: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := New(tt.w, tt.h)
			if !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("New(%d, %d) error = %v, want ErrInvalidDimensions", tt.w, tt.h, err)
			}
		})
	}
}

func TestClearAndPixelAccess(t *testing.T) {
	t.Parallel()

	s := mustNew(t, 8, 8)
	s.Clear(red)

	if got := s.PixelAt(4, 4); got != red {
		t.Errorf("PixelAt(4,4) = %v, want %v", got, red)
	}

	s.SetPixel(2, 3, blue)

	if got := s.PixelAt(2, 3); got != blue {
		t.Errorf("PixelAt(2,3) = %v, want %v", got, blue)
	}

	// Out-of-bounds access is safe.
	s.SetPixel(-1, 100, blue)

	if got := s.PixelAt(-1, 100); got != (color.RGBA{}) {
		t.Errorf("out-of-bounds PixelAt = %v, want zero", got)
	}
}

func TestFillRectClipped(t *testing.T) {
	t.Parallel()

	s := mustNew(t, 4, 4)
	s.FillRect(2, 2, 10, 10, red)

	if got := s.PixelAt(3, 3); got != red {
		t.Errorf("inside rect = %v, want %v", got, red)
	}

	if got := s.PixelAt(1, 1); got != (color.RGBA{}) {
		t.Errorf("outside rect = %v, want zero", got)
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	t.Parallel()

	s := mustNew(t, 4, 4)
	s.Clear(red)

	snap := s.Snapshot()
	s.Clear(blue)

	if got := snap.RGBAAt(1, 1); got != red {
		t.Errorf("snapshot mutated with surface: %v, want %v", got, red)
	}
}

func TestDrawLineEndpoints(t *testing.T) {
	t.Parallel()

	s := mustNew(t, 10, 10)
	s.DrawLine(1, 1, 8, 8, red)

	if got := s.PixelAt(1, 1); got != red {
		t.Errorf("line start = %v, want %v", got, red)
	}

	if got := s.PixelAt(8, 8); got != red {
		t.Errorf("line end = %v, want %v", got, red)
	}

	if got := s.PixelAt(4, 4); got != red {
		t.Errorf("line middle = %v, want %v", got, red)
	}
}

func TestFillCircleCoversCenter(t *testing.T) {
	t.Parallel()

	s := mustNew(t, 20, 20)
	s.FillCircle(10, 10, 5, red)

	if got := s.PixelAt(10, 10); got != red {
		t.Errorf("circle center = %v, want %v", got, red)
	}

	if got := s.PixelAt(10, 14); got != red {
		t.Errorf("inside radius = %v, want %v", got, red)
	}

	if got := s.PixelAt(10, 16); got == red {
		t.Error("outside radius painted")
	}
}

func TestFillPolygonTriangle(t *testing.T) {
	t.Parallel()

	s := mustNew(t, 20, 20)
	s.FillPolygon([]image.Point{{X: 10, Y: 2}, {X: 18, Y: 18}, {X: 2, Y: 18}}, red)

	if got := s.PixelAt(10, 12); got != red {
		t.Errorf("triangle interior = %v, want %v", got, red)
	}

	if got := s.PixelAt(2, 2); got == red {
		t.Error("triangle exterior painted")
	}
}

func TestFillVerticalGradientEndpoints(t *testing.T) {
	t.Parallel()

	s := mustNew(t, 4, 10)
	s.FillVerticalGradient(red, blue)

	if got := s.PixelAt(0, 0); got != red {
		t.Errorf("top row = %v, want %v", got, red)
	}

	if got := s.PixelAt(0, 9); got != blue {
		t.Errorf("bottom row = %v, want %v", got, blue)
	}
}

func TestBlendFramesEndpoints(t *testing.T) {
	t.Parallel()

	from := image.NewRGBA(image.Rect(0, 0, 4, 4))
	to := image.NewRGBA(image.Rect(0, 0, 4, 4))

	for i := range from.Pix {
		from.Pix[i] = 10
		to.Pix[i] = 200
	}

	atZero := BlendFrames(from, to, 0)
	for i, v := range atZero.Pix {
		if v != 10 {
			t.Fatalf("BlendFrames p=0 pix[%d] = %d, want 10", i, v)
		}
	}

	atOne := BlendFrames(from, to, 1)
	for i, v := range atOne.Pix {
		if v != 200 {
			t.Fatalf("BlendFrames p=1 pix[%d] = %d, want 200", i, v)
		}
	}

	mid := BlendFrames(from, to, 0.5)
	for i, v := range mid.Pix {
		if v != 105 {
			t.Fatalf("BlendFrames p=0.5 pix[%d] = %d, want 105", i, v)
		}
	}
}

func TestPixelateUniformBlocks(t *testing.T) {
	t.Parallel()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := range 8 {
		for x := range 8 {
			v := uint8(x * 30)
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}

	out := Pixelate(img, 4)

	// Every pixel inside one block shares the block's sampled color.
	ref := out.RGBAAt(0, 0)

	for y := range 4 {
		for x := range 4 {
			if got := out.RGBAAt(x, y); got != ref {
				t.Fatalf("block not uniform at (%d,%d): %v != %v", x, y, got, ref)
			}
		}
	}

	if Pixelate(img, 1).RGBAAt(3, 3) != img.RGBAAt(3, 3) {
		t.Error("Pixelate block=1 altered the image")
	}
}

func TestBoxBlurPreservesFlatRegions(t *testing.T) {
	t.Parallel()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = 100
	}

	out := BoxBlur(img, 2)

	for i, v := range out.Pix {
		if v != 100 {
			t.Fatalf("flat region changed at %d: %d", i, v)
		}
	}
}

func TestBoxBlurSpreadsEnergy(t *testing.T) {
	t.Parallel()

	img := image.NewRGBA(image.Rect(0, 0, 9, 9))
	img.SetRGBA(4, 4, color.RGBA{R: 255, A: 255})

	out := BoxBlur(img, 1)

	if got := out.RGBAAt(4, 4).R; got >= 255 {
		t.Errorf("center not attenuated: %d", got)
	}

	if got := out.RGBAAt(5, 4).R; got == 0 {
		t.Error("neighbor received no energy")
	}
}

func BenchmarkBlendFrames(b *testing.B) {
	from := image.NewRGBA(image.Rect(0, 0, 640, 360))
	to := image.NewRGBA(image.Rect(0, 0, 640, 360))

	b.ResetTimer()

	for range b.N {
		BlendFrames(from, to, 0.5)
	}
}
