package effect

import (
	"image"
	"math"

	"github.com/cwbudde/algo-viz/viz/core"
	"github.com/cwbudde/algo-viz/viz/params"
	"github.com/cwbudde/algo-viz/viz/surface"
)

func objectSceneDefinitions() []params.Definition {
	return []params.Definition{
		{Name: "orbit", Kind: params.Number, Min: 0.1, Max: 0.5, Default: 0.3},
		{Name: "trail", Kind: params.Boolean, Default: false},
	}
}

// objectSceneFx animates three orbiting objects, each keyed to one band:
// a disc on bass, a square on mids, a triangle on treble.
type objectSceneFx struct {
	orbitFrac float64
	trail     bool

	phases [3]float64
}

func newObjectScene(initial params.Values) Effect {
	fx := &objectSceneFx{}
	fx.SetParams(initial)

	return fx
}

func (fx *objectSceneFx) SetParams(vals params.Values) {
	fx.orbitFrac = vals.GetNum("orbit", 0.3)
	fx.trail = vals.GetBool("trail", false)
}

func (fx *objectSceneFx) Render(s *surface.Surface, ctx RenderContext) {
	if fx.trail {
		// Translucent clear leaves motion trails from previous ticks.
		bg := ctx.Background
		bg.A = 70
		s.FillRect(0, 0, ctx.Width, ctx.Height, bg)
	} else {
		s.Clear(ctx.Background)
	}

	levels := [3]float64{ctx.Bands.Bass, ctx.Bands.Mid, ctx.Bands.Treble}
	speeds := [3]float64{0.02, 0.035, 0.05}

	cx := float64(ctx.Width) / 2
	cy := float64(ctx.Height) / 2
	orbit := float64(minInt(ctx.Width, ctx.Height)) * fx.orbitFrac

	ring := core.HSVToRGB(220, 0.3, 0.18+ctx.AvgVolume*0.2)
	s.StrokeCircle(int(cx), int(cy), int(orbit), ring)

	for i := range fx.phases {
		fx.phases[i] += speeds[i] * (1 + levels[i]*3)

		a := fx.phases[i] + float64(i)*2*math.Pi/3
		x := int(cx + math.Cos(a)*orbit)
		y := int(cy + math.Sin(a)*orbit)

		size := 8 + int(levels[i]*24)
		if ctx.Beat.IsBeat && i == 0 {
			size += int(ctx.Beat.Intensity * 12)
		}

		c := core.HSVToRGB(float64(i)*120+fx.phases[i]*10, 0.75, 0.6+levels[i]*0.4)

		switch i {
		case 0:
			s.FillCircle(x, y, size, c)
		case 1:
			s.FillRect(x-size, y-size, 2*size, 2*size, c)
		default:
			s.FillPolygon([]image.Point{
				{X: x, Y: y - size},
				{X: x + size, Y: y + size},
				{X: x - size, Y: y + size},
			}, c)
		}
	}
}

func (fx *objectSceneFx) Dispose() {}
