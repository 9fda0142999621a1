package effect

import (
	"github.com/cwbudde/algo-viz/viz/core"
	"github.com/cwbudde/algo-viz/viz/params"
	"github.com/cwbudde/algo-viz/viz/surface"
)

func gradientDefinitions() []params.Definition {
	return []params.Definition{
		{Name: "hueSpread", Kind: params.Number, Min: 10, Max: 180, Default: 60.0},
		{Name: "saturation", Kind: params.Number, Min: 0, Max: 1, Default: 0.7},
	}
}

// gradientFx paints a full-frame vertical gradient whose hue rotates with
// treble energy and whose brightness follows the average volume.
type gradientFx struct {
	hueSpread  float64
	saturation float64

	hue float64
}

func newGradient(initial params.Values) Effect {
	fx := &gradientFx{}
	fx.SetParams(initial)

	return fx
}

func (fx *gradientFx) SetParams(vals params.Values) {
	fx.hueSpread = vals.GetNum("hueSpread", 60)
	fx.saturation = vals.GetNum("saturation", 0.7)
}

func (fx *gradientFx) Render(s *surface.Surface, ctx RenderContext) {
	fx.hue = core.Wrap(fx.hue+0.3+ctx.Bands.Treble*3, 360)

	brightness := 0.35 + 0.65*ctx.AvgVolume
	if ctx.Beat.IsBeat {
		brightness = core.Clamp01(brightness + ctx.Beat.Intensity*0.2)
	}

	top := core.HSVToRGB(fx.hue, fx.saturation, brightness)
	bottom := core.HSVToRGB(fx.hue+fx.hueSpread, fx.saturation, brightness*0.5)

	s.FillVerticalGradient(top, bottom)
}

func (fx *gradientFx) Dispose() {}
