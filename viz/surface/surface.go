// Package surface implements the 2D raster target the pipeline draws into:
// fill and stroke primitives, gradients, affine image composition, blur, and
// frame snapshots for transition compositing and capture.
package surface

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// ErrInvalidDimensions is returned when a surface is created with a
// non-positive width or height.
var ErrInvalidDimensions = errors.New("surface: invalid dimensions")

// FrameSource produces frame snapshots; the capture handle of the export
// pipeline.
type FrameSource interface {
	Frame() *image.RGBA
}

// Surface is a CPU raster target backed by an RGBA image. It is exclusively
// owned by one renderer at a time; no internal locking.
type Surface struct {
	img *image.RGBA
	w   int
	h   int
}

// New creates a surface of the given pixel dimensions.
func New(width, height int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	return &Surface{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
		w:   width,
		h:   height,
	}, nil
}

// Width returns the pixel width.
func (s *Surface) Width() int {
	return s.w
}

// Height returns the pixel height.
func (s *Surface) Height() int {
	return s.h
}

// Bounds returns the pixel rectangle.
func (s *Surface) Bounds() image.Rectangle {
	return s.img.Bounds()
}

// Image exposes the backing image for direct composition. The caller shares
// ownership with the surface for the duration of the current tick only.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// Clear fills the whole surface with c.
func (s *Surface) Clear(c color.RGBA) {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// FillRect fills the axis-aligned rectangle, clipped to the surface.
func (s *Surface) FillRect(x, y, w, h int, c color.RGBA) {
	r := image.Rect(x, y, x+w, y+h).Intersect(s.img.Bounds())
	if r.Empty() {
		return
	}

	draw.Draw(s.img, r, image.NewUniform(c), image.Point{}, draw.Over)
}

// SetPixel writes one pixel; out-of-bounds writes are dropped.
func (s *Surface) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return
	}

	s.img.SetRGBA(x, y, c)
}

// PixelAt reads one pixel; out-of-bounds reads return zero.
func (s *Surface) PixelAt(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return color.RGBA{}
	}

	return s.img.RGBAAt(x, y)
}

// Snapshot returns a deep copy of the current frame.
func (s *Surface) Snapshot() *image.RGBA {
	out := image.NewRGBA(s.img.Bounds())
	copy(out.Pix, s.img.Pix)

	return out
}

// Frame implements FrameSource.
func (s *Surface) Frame() *image.RGBA {
	return s.Snapshot()
}

// Restore overwrites the surface content with frame, clipped to bounds.
func (s *Surface) Restore(frame *image.RGBA) {
	if frame == nil {
		return
	}

	draw.Draw(s.img, s.img.Bounds(), frame, frame.Bounds().Min, draw.Src)
}

// DrawImage composites src through the affine transform m (destination
// coordinates) with the given opacity in [0, 1].
func (s *Surface) DrawImage(src image.Image, m f64.Aff3, opacity float64) {
	if src == nil || opacity <= 0 {
		return
	}

	var opts *xdraw.Options
	if opacity < 1 {
		alpha := uint8(opacity*255 + 0.5)
		opts = &xdraw.Options{SrcMask: image.NewUniform(color.Alpha{A: alpha})}
	}

	xdraw.BiLinear.Transform(s.img, m, src, src.Bounds(), xdraw.Over, opts)
}
