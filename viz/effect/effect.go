// Package effect hosts the visual generators driven by the audio analysis:
// the effect contract, an enum-keyed factory registry, the runtime lifecycle
// state machine, and the five built-in variants.
package effect

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/cwbudde/algo-viz/viz/analysis"
	"github.com/cwbudde/algo-viz/viz/params"
	"github.com/cwbudde/algo-viz/viz/surface"
)

// ErrUnknownKind is returned when a kind name or value has no registered
// factory. There is no silent fallback effect.
var ErrUnknownKind = errors.New("effect: unknown kind")

// Kind identifies one effect variant.
type Kind int

const (
	Waveform Kind = iota
	Particles
	Geometric
	Gradient
	ObjectScene
)

// Kinds lists all built-in variants in registration order.
func Kinds() []Kind {
	return []Kind{Waveform, Particles, Geometric, Gradient, ObjectScene}
}

// String returns the stable kind name used as the parameter-store key.
func (k Kind) String() string {
	switch k {
	case Waveform:
		return "waveform"
	case Particles:
		return "particles"
	case Geometric:
		return "geometric"
	case Gradient:
		return "gradient"
	case ObjectScene:
		return "objectscene"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind resolves a kind name. Unknown names are an error, not a fallback.
func ParseKind(name string) (Kind, error) {
	for _, k := range Kinds() {
		if k.String() == name {
			return k, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// RenderContext is the immutable per-tick snapshot an effect renders from:
// the current analysis results plus the shared frame environment. Effects
// hold no reference back to the engine; everything they may read arrives
// here.
type RenderContext struct {
	Bands      analysis.FrequencyBands
	Beat       analysis.BeatEvent
	Waveform   []float64
	AvgVolume  float64
	Background color.RGBA
	Width      int
	Height     int
	Elapsed    time.Duration
	Tick       uint64
}

// Effect is a self-contained stateful visual generator. Render performs
// exactly one paint pass per tick and must not block; private state persists
// across ticks until Dispose. The runtime calls SetParams and Render from
// the same goroutine, so variants need no internal locking.
type Effect interface {
	Render(s *surface.Surface, ctx RenderContext)
	SetParams(vals params.Values)
	Dispose()
}
