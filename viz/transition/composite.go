package transition

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/cwbudde/algo-viz/viz/surface"
)

// Composite blends the outgoing and incoming frames at the engine's current
// progress. When idle it passes the incoming frame through unmodified. Both
// frames must share identical bounds.
func (e *Engine) Composite(from, to *image.RGBA) *image.RGBA {
	if !e.state.Active {
		return to
	}

	p := e.state.Progress

	switch e.state.Transition.Kind {
	case Fade:
		return surface.BlendFrames(from, to, p)
	case Slide:
		return e.slide(from, to, p)
	case Zoom:
		return e.zoom(from, to, p)
	case Rotation:
		return e.rotate(from, to, p)
	case Blur:
		blended := surface.BlendFrames(from, to, p)
		radius := int(math.Sin(p*math.Pi) * 10)

		return surface.BoxBlur(blended, radius)
	case Pixelate:
		blended := surface.BlendFrames(from, to, p)
		block := int(math.Sin(p*math.Pi)*20) + 1

		return surface.Pixelate(blended, block)
	case Wipe:
		return e.wipe(from, to, p)
	case Dissolve:
		return e.dissolve(from, to, p)
	default:
		return surface.BlendFrames(from, to, p)
	}
}

// slide pushes the outgoing frame off-canvas while the incoming frame
// follows from the opposite edge.
func (e *Engine) slide(from, to *image.RGBA, p float64) *image.RGBA {
	b := from.Bounds()
	w := b.Dx()
	h := b.Dy()

	var dx, dy int

	switch e.state.Transition.Direction {
	case DirRight:
		dx = int(float64(w) * p)
	case DirUp:
		dy = -int(float64(h) * p)
	case DirDown:
		dy = int(float64(h) * p)
	default: // left
		dx = -int(float64(w) * p)
	}

	out := image.NewRGBA(b)

	drawAt(out, from, dx, dy)

	// Incoming frame trails the outgoing one by a full frame extent.
	inDx, inDy := dx, dy

	switch {
	case dx < 0:
		inDx = dx + w
	case dx > 0:
		inDx = dx - w
	case dy < 0:
		inDy = dy + h
	case dy > 0:
		inDy = dy - h
	}

	drawAt(out, to, inDx, inDy)

	return out
}

// zoom scales the outgoing frame from 1.0 to 1.5 while fading it out and the
// incoming frame from 0.5 to 1.0 while fading it in.
func (e *Engine) zoom(from, to *image.RGBA, p float64) *image.RGBA {
	out := image.NewRGBA(from.Bounds())

	drawScaledRotated(out, from, 1+0.5*p, 0, 1-p)
	drawScaledRotated(out, to, 0.5+0.5*p, 0, p)

	return out
}

// rotate spins the outgoing frame away and the incoming frame in.
func (e *Engine) rotate(from, to *image.RGBA, p float64) *image.RGBA {
	out := image.NewRGBA(from.Bounds())

	drawScaledRotated(out, from, 1, -p*math.Pi, 1-p)
	drawScaledRotated(out, to, 1, math.Pi-p*math.Pi, p)

	return out
}

// wipe reveals the incoming frame inside a growing rectangle, or a growing
// circle for the center direction, over the untouched outgoing frame.
func (e *Engine) wipe(from, to *image.RGBA, p float64) *image.RGBA {
	out := surface.CloneFrame(from)

	b := from.Bounds()
	w := b.Dx()
	h := b.Dy()

	if e.state.Transition.Direction == DirCenter {
		cx := float64(w) / 2
		cy := float64(h) / 2
		maxR := math.Hypot(cx, cy)
		r := maxR * p
		rr := r * r

		for y := range h {
			for x := range w {
				dx := float64(x) + 0.5 - cx
				dy := float64(y) + 0.5 - cy

				if dx*dx+dy*dy <= rr {
					out.SetRGBA(x, y, to.RGBAAt(x, y))
				}
			}
		}

		return out
	}

	var reveal image.Rectangle

	switch e.state.Transition.Direction {
	case DirRight:
		reveal = image.Rect(w-int(float64(w)*p), 0, w, h)
	case DirUp:
		reveal = image.Rect(0, h-int(float64(h)*p), w, h)
	case DirDown:
		reveal = image.Rect(0, 0, w, int(float64(h)*p))
	default: // left
		reveal = image.Rect(0, 0, int(float64(w)*p), h)
	}

	draw.Draw(out, reveal, to, reveal.Min, draw.Src)

	return out
}

// dissolve picks each output pixel from the incoming frame with independent
// probability p. Intentionally spatially uncorrelated noise.
func (e *Engine) dissolve(from, to *image.RGBA, p float64) *image.RGBA {
	switch {
	case p <= 0:
		return surface.CloneFrame(from)
	case p >= 1:
		return surface.CloneFrame(to)
	}

	out := surface.CloneFrame(from)

	b := from.Bounds()

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if e.rng.Float64() < p {
				out.SetRGBA(x, y, to.RGBAAt(x, y))
			}
		}
	}

	return out
}

// drawAt composites src onto dst at an integer offset.
func drawAt(dst *image.RGBA, src *image.RGBA, dx, dy int) {
	r := src.Bounds().Add(image.Point{X: dx, Y: dy})
	draw.Draw(dst, r.Intersect(dst.Bounds()), src, src.Bounds().Min.Add(image.Point{X: maxInt(0, -dx), Y: maxInt(0, -dy)}), draw.Over)
}

// drawScaledRotated composites src onto dst scaled and rotated about the
// frame center with the given opacity.
func drawScaledRotated(dst *image.RGBA, src *image.RGBA, scale, angle, opacity float64) {
	if opacity <= 0 {
		return
	}

	b := src.Bounds()
	cx := float64(b.Dx()) / 2
	cy := float64(b.Dy()) / 2

	sin, cos := math.Sincos(angle)

	// Affine mapping source coordinates to destination: rotate and scale
	// about the center.
	m := f64.Aff3{
		scale * cos, -scale * sin, cx - scale*(cx*cos-cy*sin),
		scale * sin, scale * cos, cy - scale*(cx*sin+cy*cos),
	}

	var opts *xdraw.Options
	if opacity < 1 {
		alpha := uint8(opacity*255 + 0.5)
		opts = &xdraw.Options{SrcMask: image.NewUniform(color.Alpha{A: alpha})}
	}

	xdraw.BiLinear.Transform(dst, m, src, b, xdraw.Over, opts)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}

	return b
}
