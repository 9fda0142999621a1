package surface

import (
	"image"
	"image/color"

	"github.com/cwbudde/algo-viz/viz/core"
)

// DrawLine draws a one-pixel line from (x0, y0) to (x1, y1) using Bresenham
// stepping, blending c over the existing content.
func (s *Surface) DrawLine(x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)

	sx := 1
	if x0 > x1 {
		sx = -1
	}

	sy := 1
	if y0 > y1 {
		sy = -1
	}

	err := dx + dy

	for {
		s.blendPixel(x0, y0, c)

		if x0 == x1 && y0 == y1 {
			return
		}

		e2 := 2 * err

		if e2 >= dy {
			err += dy
			x0 += sx
		}

		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// StrokePolyline connects consecutive points with lines.
func (s *Surface) StrokePolyline(pts []image.Point, c color.RGBA) {
	for i := 1; i < len(pts); i++ {
		s.DrawLine(pts[i-1].X, pts[i-1].Y, pts[i].X, pts[i].Y, c)
	}
}

// FillCircle fills a disc of radius r centered at (cx, cy).
func (s *Surface) FillCircle(cx, cy, r int, c color.RGBA) {
	if r <= 0 {
		s.blendPixel(cx, cy, c)
		return
	}

	rr := r * r

	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= rr {
				s.blendPixel(cx+dx, cy+dy, c)
			}
		}
	}
}

// StrokeCircle draws a circle outline of radius r using the midpoint
// algorithm.
func (s *Surface) StrokeCircle(cx, cy, r int, c color.RGBA) {
	if r <= 0 {
		s.blendPixel(cx, cy, c)
		return
	}

	x, y := r, 0
	err := 1 - r

	for x >= y {
		s.blendPixel(cx+x, cy+y, c)
		s.blendPixel(cx+y, cy+x, c)
		s.blendPixel(cx-y, cy+x, c)
		s.blendPixel(cx-x, cy+y, c)
		s.blendPixel(cx-x, cy-y, c)
		s.blendPixel(cx-y, cy-x, c)
		s.blendPixel(cx+y, cy-x, c)
		s.blendPixel(cx+x, cy-y, c)

		y++

		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
}

// FillPolygon fills the polygon described by pts using even-odd scanline
// filling.
func (s *Surface) FillPolygon(pts []image.Point, c color.RGBA) {
	if len(pts) < 3 {
		return
	}

	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		if p.Y < minY {
			minY = p.Y
		}

		if p.Y > maxY {
			maxY = p.Y
		}
	}

	if minY < 0 {
		minY = 0
	}

	if maxY >= s.h {
		maxY = s.h - 1
	}

	var xs []float64

	for y := minY; y <= maxY; y++ {
		xs = xs[:0]

		fy := float64(y) + 0.5

		j := len(pts) - 1
		for i := range pts {
			yi := float64(pts[i].Y)
			yj := float64(pts[j].Y)

			if (yi <= fy && yj > fy) || (yj <= fy && yi > fy) {
				xi := float64(pts[i].X)
				xj := float64(pts[j].X)
				xs = append(xs, xi+(fy-yi)/(yj-yi)*(xj-xi))
			}

			j = i
		}

		sortFloats(xs)

		for k := 0; k+1 < len(xs); k += 2 {
			x0 := int(xs[k] + 0.5)
			x1 := int(xs[k+1] + 0.5)

			for x := x0; x < x1; x++ {
				s.blendPixel(x, y, c)
			}
		}
	}
}

// FillVerticalGradient paints a top-to-bottom gradient across the full
// surface.
func (s *Surface) FillVerticalGradient(top, bottom color.RGBA) {
	if s.h == 1 {
		s.FillRect(0, 0, s.w, 1, top)
		return
	}

	for y := range s.h {
		t := float64(y) / float64(s.h-1)
		c := core.Blend(top, bottom, t)

		for x := range s.w {
			s.img.SetRGBA(x, y, c)
		}
	}
}

// blendPixel writes c over the pixel at (x, y) with source-over alpha,
// dropping out-of-bounds writes.
func (s *Surface) blendPixel(x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return
	}

	if c.A == 255 {
		s.img.SetRGBA(x, y, c)
		return
	}

	if c.A == 0 {
		return
	}

	dst := s.img.RGBAAt(x, y)
	a := uint32(c.A)
	ia := 255 - a

	s.img.SetRGBA(x, y, color.RGBA{
		R: uint8((uint32(c.R)*a + uint32(dst.R)*ia) / 255),
		G: uint8((uint32(c.G)*a + uint32(dst.G)*ia) / 255),
		B: uint8((uint32(c.B)*a + uint32(dst.B)*ia) / 255),
		A: uint8(a + uint32(dst.A)*ia/255),
	})
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}

// sortFloats is an insertion sort; scanline crossing lists are tiny.
func sortFloats(xs []float64) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j] < xs[j-1]; j-- {
			xs[j], xs[j-1] = xs[j-1], xs[j]
		}
	}
}
