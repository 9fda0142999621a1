package overlay

import (
	"fmt"
	"image"
	"image/color"
	"math"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"

	"github.com/cwbudde/algo-viz/viz/core"
	"github.com/cwbudde/algo-viz/viz/surface"
)

const (
	defaultRasterCacheSize = 256

	// basicfont.Face7x13 metrics.
	glyphWidth  = 7
	glyphHeight = 13
	glyphAscent = 11
)

// rasterCache keeps recently rasterized text images keyed by content and
// color so repeated frames reuse the same pixels.
type rasterCache struct {
	lru *lru.Cache[string, *image.RGBA]
}

func newRasterCache(size int) (*rasterCache, error) {
	if size <= 0 {
		size = defaultRasterCacheSize
	}

	c, err := lru.New[string, *image.RGBA](size)
	if err != nil {
		return nil, err
	}

	return &rasterCache{lru: c}, nil
}

func (c *rasterCache) raster(text string, col color.RGBA) *image.RGBA {
	key := fmt.Sprintf("%s|%s", text, core.FormatHex(col))

	if img, ok := c.lru.Get(key); ok {
		return img
	}

	img := rasterize(text, col)
	c.lru.Add(key, img)

	return img
}

// rasterize draws text with the builtin 7x13 face into a tight RGBA image.
// Scaling to the overlay size happens at draw time.
func rasterize(text string, col color.RGBA) *image.RGBA {
	w := len([]rune(text)) * glyphWidth
	if w == 0 {
		w = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, w, glyphHeight))

	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(0, glyphAscent),
	}
	d.DrawString(text)

	return img
}

// draw composites one overlay at its animated state. slot is the index used
// for auto-positioned stacking.
func (r *Renderer) draw(s *surface.Surface, o *Overlay, st drawState, slot int) {
	runes := []rune(o.Text)

	reveal := st.reveal
	if reveal < 0 {
		reveal = 0
	}

	if reveal > len(runes) {
		reveal = len(runes)
	}

	text := string(runes[:reveal])
	if text == "" {
		return
	}

	scale := float64(o.Size) / glyphHeight * st.scale
	if scale <= 0 {
		return
	}

	textW := float64(len(runes)) * glyphWidth * scale
	textH := glyphHeight * scale

	x := o.X*float64(s.Width()) - textW/2 + st.offsetX
	y := o.Y*float64(s.Height()) - textH/2 + st.offsetY

	if o.Timing.AutoPosition {
		x = (float64(s.Width()) - textW) / 2
		y = float64(s.Height())*0.08 + float64(slot)*(textH+8)
	}

	if o.Style.Background {
		pad := int(textH * 0.3)
		s.FillRect(int(x)-pad, int(y)-pad, int(textW)+2*pad, int(textH)+2*pad, o.Style.BackgroundColor)
	}

	if st.wave {
		r.drawWave(s, o, st, runes[:reveal], x, y, scale)
		return
	}

	if o.Style.Shadow {
		shadow := r.cache.raster(text, shadowColor(o))
		s.DrawImage(shadow, placement(x+scale, y+scale, scale, o.Rotation), st.opacity*0.6)
	}

	raster := r.cache.raster(text, o.Color)
	s.DrawImage(raster, placement(x, y, scale, o.Rotation), st.opacity)
}

// drawWave renders each glyph separately with a phase-shifted vertical
// offset.
func (r *Renderer) drawWave(s *surface.Surface, o *Overlay, st drawState, runes []rune, x, y, scale float64) {
	for i, rn := range runes {
		gx := x + float64(i)*glyphWidth*scale
		gy := y + math.Sin(st.phase*3+float64(i)*0.6)*0.3*glyphHeight*scale

		raster := r.cache.raster(string(rn), o.Color)
		s.DrawImage(raster, placement(gx, gy, scale, o.Rotation), st.opacity)
	}
}

// placement builds the affine transform scaling the 7x13 raster up to the
// target size, rotating about the raster origin, then translating.
func placement(x, y, scale, rotation float64) f64.Aff3 {
	if rotation == 0 {
		return f64.Aff3{
			scale, 0, x,
			0, scale, y,
		}
	}

	sin, cos := math.Sincos(rotation)

	return f64.Aff3{
		scale * cos, -scale * sin, x,
		scale * sin, scale * cos, y,
	}
}

func shadowColor(o *Overlay) color.RGBA {
	c := o.Style.ShadowColor
	if c.A == 0 {
		c = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	}

	return c
}
