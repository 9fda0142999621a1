// Package overlay renders time-windowed, animated text on top of the effect
// output. Overlay visibility follows timing windows, animation progress is
// eased per overlay, and the wave/pulse/typewriter types additionally read a
// deterministic internal animation clock.
package overlay

import (
	"fmt"
	"image/color"
	"time"
)

// AnimationType selects how an overlay enters and behaves.
type AnimationType int

const (
	AnimNone AnimationType = iota
	AnimFade
	AnimSlide
	AnimBounce
	AnimPulse
	AnimTypewriter
	AnimWave
)

// String returns the animation type name.
func (a AnimationType) String() string {
	switch a {
	case AnimNone:
		return "none"
	case AnimFade:
		return "fade"
	case AnimSlide:
		return "slide"
	case AnimBounce:
		return "bounce"
	case AnimPulse:
		return "pulse"
	case AnimTypewriter:
		return "typewriter"
	case AnimWave:
		return "wave"
	default:
		return fmt.Sprintf("animation(%d)", int(a))
	}
}

// AnimationSpec describes the entry animation of an overlay.
type AnimationSpec struct {
	Type          AnimationType
	Duration      time.Duration
	Delay         time.Duration
	Easing        string
	AudioReactive bool
}

// TimingSpec bounds when an overlay is visible. EndMs <= 0 means open-ended.
// Loop renders the overlay regardless of the window and wraps animation
// progress by modulo.
type TimingSpec struct {
	StartMs      float64
	EndMs        float64
	Loop         bool
	AutoPosition bool
}

// visibleAt reports whether the overlay renders at the given timeline
// position in milliseconds.
func (ts TimingSpec) visibleAt(nowMs float64) bool {
	if ts.Loop {
		return true
	}

	if nowMs < ts.StartMs {
		return false
	}

	return ts.EndMs <= 0 || nowMs < ts.EndMs
}

// StyleSpec holds decoration settings.
type StyleSpec struct {
	Shadow      bool
	ShadowColor color.RGBA
	Background  bool
	BackgroundColor color.RGBA
}

// Overlay is one text layer. X and Y are fractions of the canvas in [0, 1].
type Overlay struct {
	ID       string
	Text     string
	X        float64
	Y        float64
	Size     int
	Color    color.RGBA
	Opacity  float64
	Rotation float64

	Animation AnimationSpec
	Timing    TimingSpec
	Style     StyleSpec
}
