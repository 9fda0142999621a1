package analysis

import (
	"time"

	"github.com/cwbudde/algo-viz/viz/buffer"
	"github.com/cwbudde/algo-viz/viz/core"
)

// beatDetector fires when the current bass sample exceeds a dynamic
// threshold derived from a rolling history, subject to an absolute floor and
// a cooldown interval.
type beatDetector struct {
	clock       core.Clock
	history     *buffer.Ring
	sensitivity float64
	floor       float64
	cooldown    time.Duration
	lastBeat    time.Time
	hasBeat     bool
}

func newBeatDetector(cfg Config) *beatDetector {
	return &beatDetector{
		clock:       cfg.Clock,
		history:     buffer.NewRing(cfg.HistorySize),
		sensitivity: cfg.Sensitivity,
		floor:       cfg.Floor,
		cooldown:    time.Duration(cfg.CooldownMs * float64(time.Millisecond)),
	}
}

func (d *beatDetector) detect(bass float64) BeatEvent {
	d.history.Push(bass)

	event := BeatEvent{Intensity: core.Clamp01(bass)}

	if d.history.Len() < 1 {
		return event
	}

	threshold := d.history.Mean() + d.sensitivity*d.history.StdDev()

	if bass <= threshold || bass <= d.floor {
		return event
	}

	now := d.clock.Now()
	if d.hasBeat && now.Sub(d.lastBeat) <= d.cooldown {
		return event
	}

	d.lastBeat = now
	d.hasBeat = true
	event.IsBeat = true

	return event
}
