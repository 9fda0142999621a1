package effect

import (
	"image"
	"image/color"
	"math"

	"github.com/cwbudde/algo-viz/viz/core"
	"github.com/cwbudde/algo-viz/viz/params"
	"github.com/cwbudde/algo-viz/viz/surface"
)

func geometricDefinitions() []params.Definition {
	return []params.Definition{
		{Name: "sides", Kind: params.Number, Min: 3, Max: 12, Default: 6.0},
		{Name: "rings", Kind: params.Number, Min: 1, Max: 6, Default: 3.0},
		{Name: "color", Kind: params.Color, Default: "#ff4d8f"},
	}
}

// geometricFx draws nested regular polygons whose rotation advances with the
// mid band and whose scale pulses with bass.
type geometricFx struct {
	sides int
	rings int
	color color.RGBA

	phase float64
	pts   []image.Point
}

func newGeometric(initial params.Values) Effect {
	fx := &geometricFx{}
	fx.SetParams(initial)

	return fx
}

func (fx *geometricFx) SetParams(vals params.Values) {
	fx.sides = int(vals.GetNum("sides", 6))
	fx.rings = int(vals.GetNum("rings", 3))
	fx.color = vals.GetColor("color", core.MustParseHex("#ff4d8f"))
}

func (fx *geometricFx) Render(s *surface.Surface, ctx RenderContext) {
	s.Clear(ctx.Background)

	fx.phase += 0.01 + ctx.Bands.Mid*0.06

	cx := ctx.Width / 2
	cy := ctx.Height / 2

	maxR := float64(minInt(ctx.Width, ctx.Height)) * 0.42
	scale := 1 + ctx.Bands.Bass*0.4

	if ctx.Beat.IsBeat {
		scale += ctx.Beat.Intensity * 0.25
	}

	for ring := 1; ring <= fx.rings; ring++ {
		r := maxR * float64(ring) / float64(fx.rings) * scale
		rot := fx.phase * float64(ring)

		if ring%2 == 0 {
			rot = -rot
		}

		fx.strokePolygon(s, cx, cy, r, rot)
	}
}

func (fx *geometricFx) strokePolygon(s *surface.Surface, cx, cy int, radius, rot float64) {
	fx.pts = fx.pts[:0]

	for i := 0; i <= fx.sides; i++ {
		a := rot + 2*math.Pi*float64(i)/float64(fx.sides)
		fx.pts = append(fx.pts, image.Point{
			X: cx + int(math.Cos(a)*radius),
			Y: cy + int(math.Sin(a)*radius),
		})
	}

	s.StrokePolyline(fx.pts, fx.color)
}

func (fx *geometricFx) Dispose() {
	fx.pts = nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}

	return b
}
