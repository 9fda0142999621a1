// Package transition blends two pre-rendered frames over wall-clock time
// using one of eight pixel compositing algorithms, with optional
// audio-modulated progress.
package transition

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownKind is returned when a transition kind name cannot be resolved.
var ErrUnknownKind = errors.New("transition: unknown kind")

// Kind selects the compositing algorithm.
type Kind int

const (
	Fade Kind = iota
	Slide
	Zoom
	Rotation
	Blur
	Pixelate
	Wipe
	Dissolve
)

// Kinds lists all compositing algorithms.
func Kinds() []Kind {
	return []Kind{Fade, Slide, Zoom, Rotation, Blur, Pixelate, Wipe, Dissolve}
}

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Fade:
		return "fade"
	case Slide:
		return "slide"
	case Zoom:
		return "zoom"
	case Rotation:
		return "rotation"
	case Blur:
		return "blur"
	case Pixelate:
		return "pixelate"
	case Wipe:
		return "wipe"
	case Dissolve:
		return "dissolve"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind resolves a kind name.
func ParseKind(name string) (Kind, error) {
	for _, k := range Kinds() {
		if k.String() == name {
			return k, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Direction steers slide and wipe compositing.
type Direction string

const (
	DirLeft   Direction = "left"
	DirRight  Direction = "right"
	DirUp     Direction = "up"
	DirDown   Direction = "down"
	DirCenter Direction = "center"
)

// Transition describes one effect-to-effect blend.
type Transition struct {
	ID            string
	Kind          Kind
	Duration      time.Duration
	Easing        string
	Direction     Direction
	AudioReactive bool
}

// State is the engine's public snapshot. Progress stays in [0, 1] and the
// state deactivates exactly once progress reaches 1.
type State struct {
	Active     bool
	Transition Transition
	Progress   float64
	StartedAt  time.Time
	FromEffect string
	ToEffect   string
}
