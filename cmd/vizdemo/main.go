// Command vizdemo renders an audio-reactive animation offline. It
// synthesizes a short two-tone signal, feeds it through the PCM analysis
// path, and writes the resulting frames as PNG files.
//
// Usage:
//
//	vizdemo [flags]
//
// Examples:
//
//	vizdemo -effect particles -frames 120 -out frames/
//	vizdemo -effect waveform -width 1280 -height 720
//	vizdemo -list
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-viz/viz/analysis"
	"github.com/cwbudde/algo-viz/viz/effect"
	"github.com/cwbudde/algo-viz/viz/overlay"
	"github.com/cwbudde/algo-viz/viz/pipeline"
)

const (
	sampleRate = 44100
	fftSize    = 1024
)

// toneProvider is an offline playback collaborator. It synthesizes a bass
// pulse plus a high tone and advances one frame of samples per tick.
type toneProvider struct {
	src     *analysis.PCMSource
	pos     float64
	dur     float64
	playing bool
}

func newToneProvider(durSeconds float64) (*toneProvider, error) {
	src, err := analysis.NewPCMSource(fftSize)
	if err != nil {
		return nil, err
	}

	return &toneProvider{src: src, dur: durSeconds}, nil
}

// advance synthesizes the next block of samples and pushes it through the
// FFT path.
func (p *toneProvider) advance(dt float64) {
	if !p.playing {
		return
	}

	p.pos += dt
	if p.pos >= p.dur {
		p.pos = 0
	}

	samples := make([]float64, fftSize)
	pulse := 0.3 + 0.7*math.Pow(math.Abs(math.Sin(p.pos*math.Pi*2)), 8)

	for i := range samples {
		t := p.pos + float64(i)/sampleRate
		samples[i] = 0.6*pulse*math.Sin(2*math.Pi*55*t) +
			0.25*math.Sin(2*math.Pi*3200*t)
	}

	p.src.Push(samples)
}

func (p *toneProvider) Play() error                { p.playing = true; return nil }
func (p *toneProvider) Pause()                     { p.playing = false }
func (p *toneProvider) Stop()                      { p.playing = false; p.pos = 0 }
func (p *toneProvider) Seek(seconds float64) error { p.pos = seconds; return nil }
func (p *toneProvider) CurrentTime() float64       { return p.pos }
func (p *toneProvider) Duration() float64          { return p.dur }
func (p *toneProvider) Playing() bool              { return p.playing }
func (p *toneProvider) FrequencySamples() []byte   { return p.src.FrequencySamples() }
func (p *toneProvider) TimeDomainSamples() []byte  { return p.src.TimeDomainSamples() }
func (p *toneProvider) AudioTap() io.Reader        { return nil }

// stepClock advances one frame interval per tick so beat cooldown and
// transition timing follow the simulated timeline instead of wall time.
// Offline rendering runs far faster than real time; on the system clock the
// 100 ms beat cooldown would swallow nearly every beat.
type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time {
	return c.now
}

func (c *stepClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func main() {
	var (
		effectName = flag.String("effect", "waveform", "effect to render")
		frames     = flag.Int("frames", 90, "number of frames to render")
		width      = flag.Int("width", 640, "frame width")
		height     = flag.Int("height", 360, "frame height")
		fps        = flag.Int("fps", 30, "simulated frame rate")
		outDir     = flag.String("out", "frames", "output directory")
		title      = flag.String("title", "", "overlay text")
		list       = flag.Bool("list", false, "list available effects")
		verbose    = flag.Bool("v", false, "verbose logging")
	)

	flag.Parse()

	if *list {
		for _, k := range effect.Kinds() {
			fmt.Println(k)
		}

		return
	}

	if err := run(*effectName, *frames, *width, *height, *fps, *outDir, *title, *verbose); err != nil {
		fmt.Fprintln(os.Stderr, "vizdemo:", err)
		os.Exit(1)
	}
}

func run(effectName string, frames, width, height, fps int, outDir, title string, verbose bool) error {
	log := zap.NewNop()
	if verbose {
		var err error

		log, err = zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer log.Sync()
	}

	kind, err := effect.ParseKind(effectName)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	prov, err := newToneProvider(float64(frames) / float64(fps))
	if err != nil {
		return err
	}

	written := 0
	presenter := pipeline.PresenterFunc(func(frame *image.RGBA) {
		name := filepath.Join(outDir, fmt.Sprintf("frame_%04d.png", written))

		f, err := os.Create(name)
		if err != nil {
			log.Warn("frame write failed", zap.Error(err))
			return
		}
		defer f.Close()

		if err := png.Encode(f, frame); err != nil {
			log.Warn("frame encode failed", zap.Error(err))
		}

		written++
	})

	clock := &stepClock{now: time.Unix(0, 0)}

	sched, err := pipeline.New(prov, width, height,
		pipeline.WithFPS(fps),
		pipeline.WithClock(clock),
		pipeline.WithLogger(log),
		pipeline.WithPresenter(presenter),
	)
	if err != nil {
		return err
	}
	defer sched.Close()

	if err := sched.ActivateEffect(kind); err != nil {
		return err
	}

	if title != "" {
		sched.Overlays().Add(overlay.Overlay{
			Text: title,
			X:    0.5,
			Y:    0.12,
			Size: 28,
			Animation: overlay.AnimationSpec{
				Type:     overlay.AnimFade,
				Duration: time.Second,
			},
		})
	}

	prov.Play()

	interval := time.Second / time.Duration(fps)
	dt := 1 / float64(fps)

	for i := 0; i < frames; i++ {
		prov.advance(dt)
		sched.Tick(clock.Now())
		clock.advance(interval)
	}

	fmt.Printf("wrote %d frames to %s\n", written, outDir)

	return nil
}
