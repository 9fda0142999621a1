package transition

import (
	"math/rand/v2"
	"time"

	"github.com/cwbudde/algo-viz/viz/analysis"
	"github.com/cwbudde/algo-viz/viz/core"
	"github.com/cwbudde/algo-viz/viz/ease"
)

// Engine runs one transition at a time: Idle -> Running -> Idle,
// self-terminating when progress reaches 1. Starting while Running
// overwrites the in-flight transition; there is no queue.
type Engine struct {
	clock  core.Clock
	rng    *rand.Rand
	easing ease.Func
	state  State
}

// Option mutates engine construction.
type Option func(*Engine)

// WithClock sets the wall clock driving progress.
func WithClock(clock core.Clock) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithSeed makes the dissolve noise deterministic.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// NewEngine creates an idle engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		clock: core.SystemClock{},
		rng:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}

	return e
}

// Start begins tr between the two effect IDs, resetting progress to zero.
// A running transition is overwritten; the last call wins.
func (e *Engine) Start(tr Transition, fromID, toID string) {
	if tr.Duration <= 0 {
		tr.Duration = 500 * time.Millisecond
	}

	e.easing = ease.ForName(tr.Easing)
	e.state = State{
		Active:     true,
		Transition: tr,
		StartedAt:  e.clock.Now(),
		FromEffect: fromID,
		ToEffect:   toID,
	}
}

// Update advances progress from wall-clock time, applies bounded
// audio-reactive jitter, and self-terminates at completion. Returns the
// current progress; 1 when idle.
func (e *Engine) Update(bands analysis.FrequencyBands, beat analysis.BeatEvent) float64 {
	if !e.state.Active {
		return 1
	}

	elapsed := e.clock.Now().Sub(e.state.StartedAt)
	base := core.Clamp01(float64(elapsed) / float64(e.state.Transition.Duration))

	p := e.easing(base)

	if e.state.Transition.AudioReactive {
		if beat.IsBeat {
			p += beat.Intensity * 0.1
		}

		p += (e.rng.Float64()*2 - 1) * bands.Treble * 0.05
	}

	p = core.Clamp01(p)

	// Completion follows the un-jittered clock so jitter can never stall
	// the state machine.
	if base >= 1 {
		e.state = State{}
		return 1
	}

	e.state.Progress = p

	return p
}

// Active reports whether a transition is running.
func (e *Engine) Active() bool {
	return e.state.Active
}

// Progress returns the last computed progress in [0, 1].
func (e *Engine) Progress() float64 {
	if !e.state.Active {
		return 1
	}

	return e.state.Progress
}

// Snapshot returns the current state.
func (e *Engine) Snapshot() State {
	return e.state
}
