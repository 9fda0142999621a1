// Package pipeline drives the render loop. A Scheduler owns the drawing
// surface and, once per tick, renders the active effect, paints overlays,
// applies any running transition, and hands the finished frame to a
// Presenter.
package pipeline

import (
	"errors"
	"image"
	"image/color"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-viz/viz/analysis"
	"github.com/cwbudde/algo-viz/viz/core"
	"github.com/cwbudde/algo-viz/viz/effect"
	"github.com/cwbudde/algo-viz/viz/overlay"
	"github.com/cwbudde/algo-viz/viz/params"
	"github.com/cwbudde/algo-viz/viz/playback"
	"github.com/cwbudde/algo-viz/viz/surface"
	"github.com/cwbudde/algo-viz/viz/transition"
)

// ErrClosed is returned by operations on a closed scheduler.
var ErrClosed = errors.New("pipeline: scheduler closed")

const defaultFPS = 60

// Presenter receives each finished frame.
type Presenter interface {
	Present(frame *image.RGBA)
}

// PresenterFunc adapts a function to the Presenter interface.
type PresenterFunc func(frame *image.RGBA)

// Present calls fn.
func (fn PresenterFunc) Present(frame *image.RGBA) {
	fn(frame)
}

type nopPresenter struct{}

func (nopPresenter) Present(*image.RGBA) {}

// Scheduler coordinates analysis, effects, overlays, and transitions into a
// fixed-cadence frame stream.
type Scheduler struct {
	mu sync.Mutex

	surf     *surface.Surface
	provider playback.Provider
	analyzer *analysis.Analyzer

	store       *params.Store
	registry    *effect.Registry
	effects     *effect.Runtime
	overlays    *overlay.Renderer
	transitions *transition.Engine
	presenter   Presenter

	analyzerOpts []analysis.Option

	clock      core.Clock
	log        *zap.Logger
	interval   time.Duration
	background color.RGBA

	running bool
	closed  bool
	cancel  chan struct{}

	startedAt time.Time
	tickCount uint64

	lastFrame *image.RGBA
	fromFrame *image.RGBA
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithFPS sets the tick cadence. Values outside (0, 240] keep the default.
func WithFPS(fps int) Option {
	return func(s *Scheduler) {
		if fps > 0 && fps <= 240 {
			s.interval = time.Second / time.Duration(fps)
		}
	}
}

// WithClock injects the time source.
func WithClock(c core.Clock) Option {
	return func(s *Scheduler) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Scheduler) {
		if log != nil {
			s.log = log
		}
	}
}

// WithBackground sets the idle and effect background color.
func WithBackground(c color.RGBA) Option {
	return func(s *Scheduler) {
		s.background = c
	}
}

// WithPresenter sets the frame consumer.
func WithPresenter(p Presenter) Option {
	return func(s *Scheduler) {
		if p != nil {
			s.presenter = p
		}
	}
}

// WithRegistry overrides the effect registry.
func WithRegistry(reg *effect.Registry) Option {
	return func(s *Scheduler) {
		if reg != nil {
			s.registry = reg
		}
	}
}

// WithAnalyzerOptions forwards options to the signal analyzer.
func WithAnalyzerOptions(opts ...analysis.Option) Option {
	return func(s *Scheduler) {
		s.analyzerOpts = append(s.analyzerOpts, opts...)
	}
}

// New builds a scheduler rendering width x height frames from the given
// playback provider.
func New(provider playback.Provider, width, height int, opts ...Option) (*Scheduler, error) {
	surf, err := surface.New(width, height)
	if err != nil {
		return nil, err
	}

	s := &Scheduler{
		surf:       surf,
		provider:   provider,
		store:      params.NewStore(),
		presenter:  nopPresenter{},
		clock:      core.SystemClock{},
		log:        zap.NewNop(),
		interval:   time.Second / defaultFPS,
		background: color.RGBA{R: 10, G: 10, B: 18, A: 255},
		registry:   effect.DefaultRegistry(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.analyzer = analysis.New(provider, append([]analysis.Option{analysis.WithClock(s.clock)}, s.analyzerOpts...)...)
	s.effects = effect.NewRuntime(surf, s.store, s.registry, s.log)
	s.overlays = overlay.NewRenderer()
	s.transitions = transition.NewEngine(transition.WithClock(s.clock))
	s.startedAt = s.clock.Now()

	return s, nil
}

// Params exposes the shared parameter store.
func (s *Scheduler) Params() *params.Store { return s.store }

// Overlays exposes the overlay renderer.
func (s *Scheduler) Overlays() *overlay.Renderer { return s.overlays }

// Transitions exposes the transition engine.
func (s *Scheduler) Transitions() *transition.Engine { return s.transitions }

// Effects exposes the effect runtime.
func (s *Scheduler) Effects() *effect.Runtime { return s.effects }

// Analyzer exposes the signal analyzer.
func (s *Scheduler) Analyzer() *analysis.Analyzer { return s.analyzer }

// ActivateEffect switches the active effect without a transition.
func (s *Scheduler) ActivateEffect(kind effect.Kind) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	return s.effects.Activate(kind)
}

// TransitionTo captures the current frame, activates the target effect, and
// starts the given transition between the two.
func (s *Scheduler) TransitionTo(kind effect.Kind, tr transition.Transition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	from := s.captureLocked()

	prevKind, active := s.effects.Active()
	fromID := ""
	if active {
		fromID = prevKind.String()
	}

	if err := s.effects.Activate(kind); err != nil {
		return err
	}

	s.fromFrame = from
	s.transitions.Start(tr, fromID, kind.String())

	s.log.Debug("transition started",
		zap.String("kind", tr.Kind.String()),
		zap.String("from", fromID),
		zap.String("to", kind.String()),
		zap.Duration("duration", tr.Duration))

	return nil
}

// Start launches the internal ticker loop. Idempotent while running.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	if s.running {
		return nil
	}

	s.running = true
	s.cancel = make(chan struct{})

	go s.loop(s.cancel)

	s.log.Info("scheduler started", zap.Duration("interval", s.interval))

	return nil
}

// Stop halts the ticker loop. The running flag flips before the loop is
// signalled so an in-flight tick cannot re-arm.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
}

func (s *Scheduler) stopLocked() {
	if !s.running {
		return
	}

	s.running = false
	close(s.cancel)
	s.cancel = nil

	s.log.Info("scheduler stopped", zap.Uint64("ticks", s.tickCount))
}

// Close stops the loop and disposes the active effect. Ticks after Close are
// no-ops.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.stopLocked()
	s.effects.Dispose()
	s.closed = true
}

func (s *Scheduler) loop(cancel chan struct{}) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-cancel:
			return
		case now := <-ticker.C:
			select {
			case <-cancel:
				return
			default:
			}

			s.Tick(now)
		}
	}
}

// Tick renders exactly one frame. Exported so tests and offline rendering
// can drive the loop deterministically.
func (s *Scheduler) Tick(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.tickCount++

	playing := s.provider.Playing()

	var (
		bands analysis.FrequencyBands
		beat  analysis.BeatEvent
	)

	if playing {
		bands = s.analyzer.Bands()
		beat = s.analyzer.Beat()
	}

	if _, active := s.effects.Active(); playing && active {
		s.effects.Tick(effect.RenderContext{
			Bands:      bands,
			Beat:       beat,
			Waveform:   s.analyzer.Waveform(),
			AvgVolume:  s.analyzer.AverageVolume(),
			Background: s.background,
			Width:      s.surf.Width(),
			Height:     s.surf.Height(),
			Elapsed:    now.Sub(s.startedAt),
			Tick:       s.tickCount,
		})
	} else {
		s.surf.Clear(s.background)
	}

	s.overlays.Render(s.surf, s.provider.CurrentTime()*1000, bands, beat)

	frame := s.surf.Frame()

	if s.transitions.Active() && s.fromFrame != nil {
		s.transitions.Update(bands, beat)
		frame = s.transitions.Composite(s.fromFrame, frame)

		if !s.transitions.Active() {
			s.fromFrame = nil
		}
	}

	s.lastFrame = frame
	s.presenter.Present(frame)
}

// Frame returns the most recently presented frame, satisfying
// surface.FrameSource for capture sinks. Nil before the first tick.
func (s *Scheduler) Frame() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastFrame
}

// CaptureFrame returns a copy of the most recent frame, falling back to the
// current surface contents before the first tick.
func (s *Scheduler) CaptureFrame() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.captureLocked()
}

func (s *Scheduler) captureLocked() *image.RGBA {
	if s.lastFrame != nil {
		return surface.CloneFrame(s.lastFrame)
	}

	return s.surf.Snapshot()
}

// Running reports whether the ticker loop is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}
