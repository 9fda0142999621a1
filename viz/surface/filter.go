package surface

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// CloneFrame returns a deep copy of img.
func CloneFrame(img *image.RGBA) *image.RGBA {
	out := image.NewRGBA(img.Bounds())
	copy(out.Pix, img.Pix)

	return out
}

// BlendFrames mixes two equally-sized frames per channel by p in [0, 1].
// p <= 0 returns a copy of from and p >= 1 a copy of to, exactly.
func BlendFrames(from, to *image.RGBA, p float64) *image.RGBA {
	switch {
	case p <= 0:
		return CloneFrame(from)
	case p >= 1:
		return CloneFrame(to)
	}

	out := image.NewRGBA(from.Bounds())

	fp := from.Pix
	tp := to.Pix
	op := out.Pix

	n := len(op)
	if len(fp) < n {
		n = len(fp)
	}

	if len(tp) < n {
		n = len(tp)
	}

	for i := range n {
		f := float64(fp[i])
		t := float64(tp[i])
		op[i] = uint8(f + (t-f)*p + 0.5)
	}

	return out
}

// BoxBlur applies an approximate Gaussian blur as two box passes with the
// given radius. Radius <= 0 returns a copy.
func BoxBlur(img *image.RGBA, radius int) *image.RGBA {
	if radius <= 0 {
		return CloneFrame(img)
	}

	tmp := blurPass(img, radius, true)

	return blurPass(tmp, radius, false)
}

// Pixelate downsamples then upsamples img at the given block size using
// nearest-neighbor sampling. Block <= 1 returns a copy.
func Pixelate(img *image.RGBA, block int) *image.RGBA {
	if block <= 1 {
		return CloneFrame(img)
	}

	b := img.Bounds()

	smallW := (b.Dx() + block - 1) / block
	smallH := (b.Dy() + block - 1) / block

	if smallW < 1 {
		smallW = 1
	}

	if smallH < 1 {
		smallH = 1
	}

	small := image.NewRGBA(image.Rect(0, 0, smallW, smallH))
	xdraw.NearestNeighbor.Scale(small, small.Bounds(), img, b, xdraw.Src, nil)

	out := image.NewRGBA(b)
	xdraw.NearestNeighbor.Scale(out, b, small, small.Bounds(), xdraw.Src, nil)

	return out
}

// blurPass runs one horizontal or vertical box pass with a sliding window.
func blurPass(img *image.RGBA, radius int, horizontal bool) *image.RGBA {
	b := img.Bounds()
	w := b.Dx()
	h := b.Dy()

	out := image.NewRGBA(b)

	outer, inner := h, w
	if !horizontal {
		outer, inner = w, h
	}

	at := func(line, i int) (int, int) {
		if horizontal {
			return i, line
		}

		return line, i
	}

	for line := range outer {
		var sum [4]int

		window := 0

		// Prime the window for index 0.
		for i := -radius; i <= radius; i++ {
			if i < 0 || i >= inner {
				continue
			}

			x, y := at(line, i)
			o := img.PixOffset(x+b.Min.X, y+b.Min.Y)

			for c := range 4 {
				sum[c] += int(img.Pix[o+c])
			}

			window++
		}

		for i := range inner {
			x, y := at(line, i)
			o := out.PixOffset(x+b.Min.X, y+b.Min.Y)

			for c := range 4 {
				out.Pix[o+c] = uint8(sum[c] / window)
			}

			// Slide: drop i-radius, add i+radius+1.
			drop := i - radius
			if drop >= 0 {
				dx, dy := at(line, drop)
				od := img.PixOffset(dx+b.Min.X, dy+b.Min.Y)

				for c := range 4 {
					sum[c] -= int(img.Pix[od+c])
				}

				window--
			}

			add := i + radius + 1
			if add < inner {
				ax, ay := at(line, add)
				oa := img.PixOffset(ax+b.Min.X, ay+b.Min.Y)

				for c := range 4 {
					sum[c] += int(img.Pix[oa+c])
				}

				window++
			}
		}
	}

	return out
}
