package export

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-viz/viz/core"
	"github.com/cwbudde/algo-viz/viz/playback"
	"github.com/cwbudde/algo-viz/viz/surface"
)

// ErrExportInProgress is returned by Start while a capture is running.
var ErrExportInProgress = errors.New("export: already in progress")

// State is the controller lifecycle phase.
type State int

const (
	Idle State = iota
	Preparing
	Recording
	Finalizing
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Preparing:
		return "preparing"
	case Recording:
		return "recording"
	case Finalizing:
		return "finalizing"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

const defaultPollInterval = 100 * time.Millisecond

// Controller records one playback pass at a time. It seeks playback to the
// start, plays, feeds the sink, and stops automatically when the audio
// duration elapses.
type Controller struct {
	mu sync.Mutex

	provider playback.Provider
	frames   surface.FrameSource
	sink     CaptureSink
	reporter Reporter
	clock    core.Clock
	log      *zap.Logger
	poll     time.Duration

	state     State
	jobID     string
	mime      string
	fps       int
	duration  time.Duration
	startedAt time.Time

	stopTimer *time.Timer
	pollDone  chan struct{}
	result    chan Result
}

// Option configures a Controller.
type Option func(*Controller)

// WithReporter sets the progress consumer.
func WithReporter(r Reporter) Option {
	return func(c *Controller) {
		if r != nil {
			c.reporter = r
		}
	}
}

// WithClock injects the time source.
func WithClock(clock core.Clock) Option {
	return func(c *Controller) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// WithPollInterval sets the progress reporting cadence.
func WithPollInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.poll = d
		}
	}
}

// New builds a controller capturing frames from the given source while the
// provider plays.
func New(provider playback.Provider, frames surface.FrameSource, sink CaptureSink, opts ...Option) *Controller {
	c := &Controller{
		provider: provider,
		frames:   frames,
		sink:     sink,
		reporter: NopReporter{},
		clock:    core.SystemClock{},
		log:      zap.NewNop(),
		poll:     defaultPollInterval,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// State returns the current lifecycle phase.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// JobID returns the identifier of the current or most recent capture.
func (c *Controller) JobID() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.jobID
}

// MIMEType returns the negotiated container/codec of the current or most
// recent capture.
func (c *Controller) MIMEType() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.mime
}

// Start begins a capture. It negotiates a container/codec, rewinds and
// starts playback, starts the sink, and arms an automatic stop at the audio
// duration. The returned channel delivers exactly one Result.
func (c *Controller) Start(settings Settings) (<-chan Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Idle {
		return nil, fmt.Errorf("%w: state %s", ErrExportInProgress, c.state)
	}

	c.state = Preparing
	c.jobID = uuid.NewString()

	settings.normalize()

	mime, err := negotiate(c.sink, settings.Format)
	if err != nil {
		c.state = Idle
		return nil, err
	}

	if err := c.provider.Seek(0); err != nil {
		c.state = Idle
		return nil, fmt.Errorf("export: rewind playback: %w", err)
	}

	if err := c.provider.Play(); err != nil {
		c.state = Idle
		return nil, fmt.Errorf("export: start playback: %w", err)
	}

	cfg := StreamConfig{
		Frames:        c.frames,
		Audio:         c.provider.AudioTap(),
		FPS:           settings.FPS,
		MIMEType:      mime,
		BitsPerSecond: settings.Quality.BitsPerSecond(),
	}

	if err := c.sink.Start(cfg); err != nil {
		c.provider.Stop()
		c.state = Idle

		return nil, fmt.Errorf("export: start sink: %w", err)
	}

	c.state = Recording
	c.mime = mime
	c.fps = settings.FPS
	c.duration = time.Duration(c.provider.Duration() * float64(time.Second))
	c.startedAt = c.clock.Now()
	c.result = make(chan Result, 1)
	c.pollDone = make(chan struct{})

	if c.duration > 0 {
		c.stopTimer = time.AfterFunc(c.duration, c.Stop)
	}

	go c.pollLoop(c.pollDone)

	c.log.Info("export started",
		zap.String("job", c.jobID),
		zap.String("mime", mime),
		zap.Int("fps", settings.FPS),
		zap.Int("bitrate", cfg.BitsPerSecond),
		zap.Duration("duration", c.duration))

	return c.result, nil
}

// Stop ends the capture early. The pending result channel still delivers
// whatever the sink encoded so far. No-op unless recording.
func (c *Controller) Stop() {
	c.mu.Lock()

	if c.state != Recording {
		c.mu.Unlock()
		return
	}

	c.state = Finalizing

	if c.stopTimer != nil {
		c.stopTimer.Stop()
		c.stopTimer = nil
	}

	close(c.pollDone)
	c.pollDone = nil

	out := c.result
	job := c.jobID

	c.mu.Unlock()

	// Playback and sink always stop together.
	c.provider.Stop()
	c.sink.Stop()

	go c.finalize(job, out)
}

func (c *Controller) finalize(job string, out chan Result) {
	res := <-c.sink.Done()

	if err := c.provider.Seek(0); err != nil {
		res.Err = multierr.Append(res.Err, fmt.Errorf("export: rewind after capture: %w", err))
	}

	if res.Err != nil {
		c.log.Warn("export failed", zap.String("job", job), zap.Error(res.Err))
	} else {
		c.log.Info("export finished",
			zap.String("job", job),
			zap.String("mime", res.MIMEType),
			zap.String("size", humanize.Bytes(uint64(len(res.Data)))))
	}

	out <- res

	c.mu.Lock()
	c.state = Idle
	c.mu.Unlock()
}

// Progress returns the wall-clock estimated status of the current capture.
// Frame counts are elapsed-time estimates, not encoder counts.
func (c *Controller) Progress() Progress {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := Progress{JobID: c.jobID}

	if c.state != Recording || c.duration <= 0 {
		return p
	}

	elapsed := c.clock.Now().Sub(c.startedAt)
	if elapsed < 0 {
		elapsed = 0
	}

	// Poll jitter can observe elapsed past the duration just before the
	// auto-stop fires; clamp so CurrentFrame never exceeds TotalFrames.
	if elapsed > c.duration {
		elapsed = c.duration
	}

	frac := core.Clamp01(float64(elapsed) / float64(c.duration))

	p.Percentage = frac * 100
	p.TimeRemaining = time.Duration((1 - frac) * float64(c.duration))
	p.CurrentFrame = int(elapsed.Seconds() * float64(c.fps))
	p.TotalFrames = int(c.duration.Seconds() * float64(c.fps))

	return p
}

func (c *Controller) pollLoop(done chan struct{}) {
	ticker := time.NewTicker(c.poll)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			c.reporter.Report(c.Progress())
		}
	}
}
