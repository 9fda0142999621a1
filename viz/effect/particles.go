package effect

import (
	"math"
	"math/rand/v2"

	"github.com/cwbudde/algo-viz/viz/core"
	"github.com/cwbudde/algo-viz/viz/params"
	"github.com/cwbudde/algo-viz/viz/surface"
)

func particlesDefinitions() []params.Definition {
	return []params.Definition{
		{Name: "count", Kind: params.Number, Min: 10, Max: 1000, Default: 300.0},
		{Name: "speed", Kind: params.Number, Min: 0.1, Max: 5, Default: 1.0},
		{Name: "size", Kind: params.Number, Min: 1, Max: 12, Default: 3.0},
	}
}

// particle state is owned exclusively by the particles effect; nothing
// outside the pool ever references one.
type particle struct {
	x, y   float64
	vx, vy float64
	life   float64
	size   float64
	hue    float64
}

type particlesFx struct {
	rng *rand.Rand

	maxCount int
	speed    float64
	baseSize float64

	pool []particle
	hue  float64
}

func newParticles(initial params.Values) Effect {
	fx := &particlesFx{
		rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	fx.SetParams(initial)

	return fx
}

func (fx *particlesFx) SetParams(vals params.Values) {
	fx.maxCount = int(vals.GetNum("count", 300))
	fx.speed = vals.GetNum("speed", 1)
	fx.baseSize = vals.GetNum("size", 3)
}

func (fx *particlesFx) Render(s *surface.Surface, ctx RenderContext) {
	s.Clear(ctx.Background)

	fx.hue += 0.8 + ctx.Bands.Mid*2

	fx.spawn(ctx)
	fx.step(ctx)
	fx.draw(s)
}

// spawn creates new particles proportionally to bass energy, with a burst on
// beats.
func (fx *particlesFx) spawn(ctx RenderContext) {
	budget := fx.maxCount - len(fx.pool)
	if budget <= 0 {
		return
	}

	want := int(ctx.Bands.Bass * 8)
	if ctx.Beat.IsBeat {
		want += int(ctx.Beat.Intensity * 20)
	}

	if want > budget {
		want = budget
	}

	for range want {
		angle := fx.rng.Float64() * 2 * math.Pi
		velocity := (0.5 + fx.rng.Float64()*1.5) * fx.speed * (1 + ctx.Bands.Bass)

		fx.pool = append(fx.pool, particle{
			x:    float64(ctx.Width) / 2,
			y:    float64(ctx.Height) / 2,
			vx:   math.Cos(angle) * velocity,
			vy:   math.Sin(angle) * velocity,
			life: 1,
			size: fx.baseSize * (0.5 + fx.rng.Float64()),
			hue:  core.Wrap(fx.hue+fx.rng.Float64()*40, 360),
		})
	}
}

// step advances positions and decays life, culling dead particles in place.
func (fx *particlesFx) step(ctx RenderContext) {
	alive := fx.pool[:0]

	decay := 0.01 + 0.01*(1-ctx.AvgVolume)

	for _, p := range fx.pool {
		p.x += p.vx
		p.y += p.vy
		p.life -= decay

		if p.life <= 0 {
			continue
		}

		if p.x < -p.size || p.y < -p.size ||
			p.x > float64(ctx.Width)+p.size || p.y > float64(ctx.Height)+p.size {
			continue
		}

		alive = append(alive, p)
	}

	fx.pool = alive
}

func (fx *particlesFx) draw(s *surface.Surface) {
	for _, p := range fx.pool {
		c := core.HSVToRGB(p.hue, 0.8, 1)
		c.A = uint8(core.Clamp01(p.life) * 255)

		s.FillCircle(int(p.x), int(p.y), int(p.size*p.life), c)
	}
}

func (fx *particlesFx) Dispose() {
	fx.pool = nil
}
