package overlay

import (
	"errors"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cwbudde/algo-viz/viz/analysis"
	"github.com/cwbudde/algo-viz/viz/core"
	"github.com/cwbudde/algo-viz/viz/ease"
	"github.com/cwbudde/algo-viz/viz/surface"
)

// ErrDuplicateID is returned by Add when the overlay ID is already in use.
var ErrDuplicateID = errors.New("overlay: duplicate id")

const (
	defaultSize     = 24
	defaultDuration = 500 * time.Millisecond
	defaultTickStep = 16 * time.Millisecond

	// Audio-reactive modulation never exceeds this fraction of the
	// baseline value.
	reactiveCap = 0.10
)

// Renderer owns a set of overlays and draws the visible ones each tick.
type Renderer struct {
	mu       sync.Mutex
	overlays []*Overlay
	index    map[string]*Overlay

	animClock time.Duration
	tickStep  time.Duration

	cache *rasterCache
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTickStep sets the fixed step the internal animation clock advances by
// on every Render call.
func WithTickStep(step time.Duration) Option {
	return func(r *Renderer) {
		if step > 0 {
			r.tickStep = step
		}
	}
}

// WithCacheSize bounds the text raster cache.
func WithCacheSize(n int) Option {
	return func(r *Renderer) {
		if c, err := newRasterCache(n); err == nil {
			r.cache = c
		}
	}
}

// NewRenderer returns an empty overlay renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		index:    make(map[string]*Overlay),
		tickStep: defaultTickStep,
	}

	cache, _ := newRasterCache(defaultRasterCacheSize)
	r.cache = cache

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Add registers an overlay and returns its ID. A fresh UUID is assigned when
// the ID is empty. Zero Size and Opacity fall back to usable defaults.
func (r *Renderer) Add(o Overlay) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if o.ID == "" {
		o.ID = uuid.NewString()
	}

	if _, ok := r.index[o.ID]; ok {
		return "", ErrDuplicateID
	}

	normalize(&o)

	stored := o
	r.overlays = append(r.overlays, &stored)
	r.index[o.ID] = &stored

	return o.ID, nil
}

// Remove deletes the overlay with the given ID.
func (r *Renderer) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[id]; !ok {
		return false
	}

	delete(r.index, id)

	for i, o := range r.overlays {
		if o.ID == id {
			r.overlays = append(r.overlays[:i], r.overlays[i+1:]...)
			break
		}
	}

	return true
}

// Update replaces the stored overlay that shares o's ID.
func (r *Renderer) Update(o Overlay) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.index[o.ID]
	if !ok {
		return false
	}

	normalize(&o)
	*stored = o

	return true
}

// Get returns a copy of the overlay with the given ID.
func (r *Renderer) Get(id string) (Overlay, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.index[id]
	if !ok {
		return Overlay{}, false
	}

	return *o, true
}

// List returns copies of all overlays in insertion order.
func (r *Renderer) List() []Overlay {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Overlay, len(r.overlays))
	for i, o := range r.overlays {
		out[i] = *o
	}

	return out
}

func normalize(o *Overlay) {
	if o.Size <= 0 {
		o.Size = defaultSize
	}

	if o.Opacity <= 0 {
		o.Opacity = 1
	}

	o.Opacity = core.Clamp01(o.Opacity)
	o.X = core.Clamp01(o.X)
	o.Y = core.Clamp01(o.Y)

	if o.Animation.Type != AnimNone && o.Animation.Duration <= 0 {
		o.Animation.Duration = defaultDuration
	}

	if o.Color.A == 0 {
		if o.Color.R == 0 && o.Color.G == 0 && o.Color.B == 0 {
			o.Color.R, o.Color.G, o.Color.B = 255, 255, 255
		}

		o.Color.A = 255
	}
}

// Render draws all visible overlays onto the surface. nowMs is the playback
// position in milliseconds; bands and beat feed audio-reactive modifiers.
func (r *Renderer) Render(s *surface.Surface, nowMs float64, bands analysis.FrequencyBands, beat analysis.BeatEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.animClock += r.tickStep
	clockSec := r.animClock.Seconds()

	slot := 0

	for _, o := range r.overlays {
		if !o.Timing.visibleAt(nowMs) {
			continue
		}

		st := r.animate(o, nowMs, clockSec, s.Width(), bands, beat)
		if st.opacity <= 0 {
			slot++
			continue
		}

		r.draw(s, o, st, slot)
		slot++
	}
}

// drawState is the per-tick result of animation evaluation.
type drawState struct {
	opacity float64
	offsetX float64
	offsetY float64
	scale   float64
	reveal  int
	wave    bool
	phase   float64
}

func (r *Renderer) animate(o *Overlay, nowMs, clockSec float64, width int, bands analysis.FrequencyBands, beat analysis.BeatEvent) drawState {
	st := drawState{
		opacity: o.Opacity,
		scale:   1,
		reveal:  len([]rune(o.Text)),
		phase:   clockSec,
	}

	p := r.progress(o, nowMs)
	eased := ease.ForName(o.Animation.Easing)(p)

	switch o.Animation.Type {
	case AnimFade:
		st.opacity *= eased
	case AnimSlide:
		st.offsetX = -(1 - eased) * 0.2 * float64(width)
	case AnimBounce:
		st.offsetY = -math.Abs(math.Sin(eased*math.Pi*3)) * (1 - eased) * 40
	case AnimPulse:
		st.scale = 1 + 0.08*math.Sin(clockSec*2*math.Pi*1.5)
	case AnimTypewriter:
		st.reveal = int(eased * float64(st.reveal))
	case AnimWave:
		st.wave = true
	}

	if o.Animation.AudioReactive {
		boost := bands.Bass * reactiveCap
		if beat.IsBeat {
			boost = math.Max(boost, beat.Intensity*reactiveCap)
		}

		boost = math.Min(boost, reactiveCap)
		st.scale *= 1 + boost
		st.opacity = core.Clamp01(st.opacity * (1 + boost))
	}

	return st
}

// progress maps the timeline position to animation progress in [0, 1],
// wrapping when the overlay loops.
func (r *Renderer) progress(o *Overlay, nowMs float64) float64 {
	if o.Animation.Type == AnimNone {
		return 1
	}

	elapsed := nowMs - o.Timing.StartMs - float64(o.Animation.Delay.Milliseconds())
	if elapsed < 0 {
		return 0
	}

	dur := float64(o.Animation.Duration.Milliseconds())
	if dur <= 0 {
		return 1
	}

	if o.Timing.Loop {
		elapsed = math.Mod(elapsed, dur)
	}

	return core.Clamp01(elapsed / dur)
}
