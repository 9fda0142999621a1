package effect

import (
	"image"
	"image/color"

	"github.com/cwbudde/algo-viz/viz/core"
	"github.com/cwbudde/algo-viz/viz/params"
	"github.com/cwbudde/algo-viz/viz/surface"
)

func waveformDefinitions() []params.Definition {
	return []params.Definition{
		{Name: "intensity", Kind: params.Number, Min: 0, Max: 100, Default: 50.0},
		{Name: "style", Kind: params.Enum, Options: []string{"line", "bars", "filled"}, Default: "line"},
		{Name: "color", Kind: params.Color, Default: "#00e5a0"},
		{Name: "glow", Kind: params.Boolean, Default: true},
	}
}

// waveformFx draws the current time-domain waveform as a line, bar field, or
// filled shape, with a glow re-draw pass on beats.
type waveformFx struct {
	intensity float64
	style     string
	color     color.RGBA
	glow      bool

	pts []image.Point
}

func newWaveform(initial params.Values) Effect {
	fx := &waveformFx{}
	fx.SetParams(initial)

	return fx
}

func (fx *waveformFx) SetParams(vals params.Values) {
	fx.intensity = vals.GetNum("intensity", 50)
	fx.style = vals.GetEnum("style", "line")
	fx.color = vals.GetColor("color", core.MustParseHex("#00e5a0"))
	fx.glow = vals.GetBool("glow", true)
}

func (fx *waveformFx) Render(s *surface.Surface, ctx RenderContext) {
	s.Clear(ctx.Background)

	wf := ctx.Waveform
	if len(wf) == 0 {
		return
	}

	// The intensity parameter maps 0..100 onto a response multiplier.
	response := fx.intensity / 100

	midY := ctx.Height / 2
	amp := float64(ctx.Height) * 0.45 * response

	fx.pts = fx.pts[:0]
	for i, v := range wf {
		x := i * ctx.Width / len(wf)
		y := midY + int(v*amp)
		fx.pts = append(fx.pts, image.Point{X: x, Y: y})
	}

	switch fx.style {
	case "bars":
		fx.renderBars(s, ctx, amp)
	case "filled":
		fx.renderFilled(s, ctx)
	default:
		s.StrokePolyline(fx.pts, fx.color)
	}

	if fx.glow && ctx.Beat.IsBeat {
		fx.renderGlow(s, ctx, response)
	}
}

// renderBars draws one vertical bar per bucket of samples.
func (fx *waveformFx) renderBars(s *surface.Surface, ctx RenderContext, amp float64) {
	const barCount = 64

	wf := ctx.Waveform
	midY := ctx.Height / 2
	barW := ctx.Width / barCount

	if barW < 1 {
		barW = 1
	}

	for b := range barCount {
		lo := b * len(wf) / barCount
		hi := (b + 1) * len(wf) / barCount

		peak := 0.0
		for _, v := range wf[lo:hi] {
			if a := v; a < 0 {
				a = -a
				if a > peak {
					peak = a
				}
			} else if a > peak {
				peak = a
			}
		}

		barH := int(peak * amp)
		s.FillRect(b*barW, midY-barH, barW-1, 2*barH+1, fx.color)
	}
}

// renderFilled closes the waveform path along the center line and fills it.
func (fx *waveformFx) renderFilled(s *surface.Surface, ctx RenderContext) {
	midY := ctx.Height / 2

	poly := make([]image.Point, 0, len(fx.pts)+2)
	poly = append(poly, image.Point{X: 0, Y: midY})
	poly = append(poly, fx.pts...)
	poly = append(poly, image.Point{X: ctx.Width, Y: midY})

	s.FillPolygon(poly, fx.color)
}

// renderGlow re-draws the path with translucent discs whose radius scales
// with beat intensity and the response multiplier.
func (fx *waveformFx) renderGlow(s *surface.Surface, ctx RenderContext, response float64) {
	radius := int(ctx.Beat.Intensity * response * 10)
	if radius < 1 {
		radius = 1
	}

	glow := fx.color
	glow.A = 60

	// Sparse sampling keeps the pass cheap at high sample counts.
	step := len(fx.pts) / 48
	if step < 1 {
		step = 1
	}

	for i := 0; i < len(fx.pts); i += step {
		s.FillCircle(fx.pts[i].X, fx.pts[i].Y, radius, glow)
	}
}

func (fx *waveformFx) Dispose() {
	fx.pts = nil
}
