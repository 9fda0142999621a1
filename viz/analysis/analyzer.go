package analysis

import (
	"github.com/cwbudde/algo-viz/viz/buffer"
	"github.com/cwbudde/algo-viz/viz/core"
	"github.com/cwbudde/algo-viz/viz/playback"
)

// maxByteAmplitude is the largest value a frequency-bin byte can hold.
const maxByteAmplitude = 255.0

// FrequencyBands holds the five perceptual band energies, each normalized
// to [0, 1]. Recomputed every tick, never persisted.
type FrequencyBands struct {
	Bass    float64
	LowMid  float64
	Mid     float64
	HighMid float64
	Treble  float64
}

// BeatEvent reports whether the current tick contains a bass transient and
// how strong it is.
type BeatEvent struct {
	IsBeat    bool
	Intensity float64
}

// bandEdges are the cumulative fractions splitting the spectrum into the
// bass / low-mid / mid / high-mid / treble ranges (10/10/20/30/30 percent).
var bandEdges = [6]float64{0, 0.10, 0.20, 0.40, 0.70, 1.00}

// Analyzer reduces the playback collaborator's per-tick sample snapshots to
// band energies, a normalized waveform, an average volume, and beat events.
// All query methods are pure functions of the latest snapshot except Beat,
// which owns the rolling history and cooldown timer.
//
// Degraded input (empty or missing sample buffers) yields neutral zeroed
// results; analysis never halts the render loop.
type Analyzer struct {
	source playback.SampleSource
	beat   *beatDetector
	wave   *buffer.Buffer
}

// Config holds analyzer tunables.
type Config struct {
	Clock       core.Clock
	HistorySize int
	Sensitivity float64
	Floor       float64
	CooldownMs  float64
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the tunables matching roughly one second of history
// at 60 ticks per second.
func DefaultConfig() Config {
	return Config{
		Clock:       core.SystemClock{},
		HistorySize: 43,
		Sensitivity: 1.15,
		Floor:       0.15,
		CooldownMs:  100,
	}
}

// WithClock sets the clock used for the beat cooldown.
func WithClock(clock core.Clock) Option {
	return func(cfg *Config) {
		if clock != nil {
			cfg.Clock = clock
		}
	}
}

// WithHistorySize sets the beat-history ring capacity.
func WithHistorySize(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.HistorySize = n
		}
	}
}

// WithSensitivity sets the multiplier k in the dynamic threshold mean + k·σ.
// Lower values fire more easily.
func WithSensitivity(k float64) Option {
	return func(cfg *Config) {
		if k > 0 {
			cfg.Sensitivity = k
		}
	}
}

// WithFloor sets the absolute bass level below which no beat fires.
func WithFloor(floor float64) Option {
	return func(cfg *Config) {
		if floor >= 0 {
			cfg.Floor = floor
		}
	}
}

// WithCooldown sets the minimum spacing between beats in milliseconds.
func WithCooldown(ms float64) Option {
	return func(cfg *Config) {
		if ms >= 0 {
			cfg.CooldownMs = ms
		}
	}
}

// New creates an Analyzer reading snapshots from source.
func New(source playback.SampleSource, opts ...Option) *Analyzer {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return &Analyzer{
		source: source,
		beat:   newBeatDetector(cfg),
		wave:   buffer.New(0),
	}
}

// Bands slices the current spectrum into five contiguous ranges and averages
// each, normalized by the maximum representable amplitude. An empty spectrum
// yields all zeros.
func (a *Analyzer) Bands() FrequencyBands {
	freq := a.source.FrequencySamples()
	if len(freq) == 0 {
		return FrequencyBands{}
	}

	var out [5]float64

	n := len(freq)

	for band := range out {
		lo := int(bandEdges[band] * float64(n))
		hi := int(bandEdges[band+1] * float64(n))

		if hi <= lo {
			hi = lo + 1
		}

		if hi > n {
			hi = n
		}

		sum := 0.0
		for _, v := range freq[lo:hi] {
			sum += float64(v)
		}

		out[band] = sum / float64(hi-lo) / maxByteAmplitude
	}

	return FrequencyBands{
		Bass:    out[0],
		LowMid:  out[1],
		Mid:     out[2],
		HighMid: out[3],
		Treble:  out[4],
	}
}

// Waveform returns the current time-domain snapshot normalized to [-1, 1].
// The returned slice is reused across calls; callers must not retain it
// beyond the current tick.
func (a *Analyzer) Waveform() []float64 {
	raw := a.source.TimeDomainSamples()

	a.wave.Resize(len(raw))

	out := a.wave.Samples()
	for i, v := range raw {
		out[i] = (float64(v) - 128) / 128
	}

	return out
}

// AverageVolume returns the mean of all frequency bins normalized to [0, 1].
func (a *Analyzer) AverageVolume() float64 {
	freq := a.source.FrequencySamples()
	if len(freq) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range freq {
		sum += float64(v)
	}

	return sum / float64(len(freq)) / maxByteAmplitude
}

// Beat pushes the current bass sample into the rolling history and reports
// whether it crosses the dynamic threshold. At most one beat fires per
// cooldown window.
func (a *Analyzer) Beat() BeatEvent {
	return a.beat.detect(a.Bands().Bass)
}
