package analysis

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-viz/viz/core"
)

// Decibel mapping range for quantizing magnitudes into frequency-bin bytes.
// Matches the convention of typical realtime analyser front-ends.
const (
	minDecibels = -100.0
	maxDecibels = -30.0
)

// ErrInvalidFFTSize is returned when the requested FFT size is not a power
// of two of at least 32.
var ErrInvalidFFTSize = errors.New("invalid fft size")

// PCMSource adapts raw PCM frames to the byte-bin SampleSource contract the
// Analyzer consumes. Each Push runs a Hann-windowed FFT and reduces the
// spectrum to magnitude bins quantized over a fixed decibel range.
//
// Offline rendering has no analyser node to lean on, so this is the
// in-process path from decoded audio to band energies.
type PCMSource struct {
	fftSize int
	plan    *algofft.Plan[complex128]
	window  []float64
	winGain float64

	in  []complex128
	out []complex128
	re  []float64
	im  []float64
	mag []float64

	freq    []byte
	timeDom []byte
}

// NewPCMSource creates a source with the given FFT size (power of two, ≥ 32).
func NewPCMSource(fftSize int) (*PCMSource, error) {
	if fftSize < 32 || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFFTSize, fftSize)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("analysis: fft plan: %w", err)
	}

	window := hannWindow(fftSize)

	sum := 0.0
	for _, w := range window {
		sum += w
	}

	bins := fftSize / 2

	return &PCMSource{
		fftSize: fftSize,
		plan:    plan,
		window:  window,
		winGain: sum / float64(fftSize),
		in:      make([]complex128, fftSize),
		out:     make([]complex128, fftSize),
		re:      make([]float64, bins),
		im:      make([]float64, bins),
		mag:     make([]float64, bins),
		freq:    make([]byte, bins),
		timeDom: make([]byte, fftSize),
	}, nil
}

// FFTSize returns the transform length.
func (s *PCMSource) FFTSize() int {
	return s.fftSize
}

// Push consumes the latest PCM frame (mono samples in [-1, 1]) and refreshes
// both snapshot buffers. Frames shorter than the FFT size are zero-padded;
// longer frames use the most recent samples.
func (s *PCMSource) Push(samples []float64) error {
	frame := samples
	if len(frame) > s.fftSize {
		frame = frame[len(frame)-s.fftSize:]
	}

	for i := range s.fftSize {
		v := 0.0
		if i < len(frame) {
			v = core.Clamp(frame[i], -1, 1)
		}

		s.in[i] = complex(v*s.window[i], 0)
		s.timeDom[i] = quantizeTimeSample(v)
	}

	err := s.plan.Forward(s.out, s.in)
	if err != nil {
		return fmt.Errorf("analysis: fft forward: %w", err)
	}

	for i := range s.re {
		s.re[i] = real(s.out[i])
		s.im[i] = imag(s.out[i])
	}

	vecmath.Magnitude(s.mag, s.re, s.im)

	// Normalize: single-sided amplitude compensated for window gain, then
	// quantize on the fixed dB range.
	scale := 2 / (float64(s.fftSize) * s.winGain)

	for i, m := range s.mag {
		s.freq[i] = quantizeMagnitude(m * scale)
	}

	return nil
}

// FrequencySamples returns the latest magnitude bins (0..255).
func (s *PCMSource) FrequencySamples() []byte {
	return s.freq
}

// TimeDomainSamples returns the latest time-domain snapshot centered at 128.
func (s *PCMSource) TimeDomainSamples() []byte {
	return s.timeDom
}

func quantizeTimeSample(v float64) byte {
	return byte(core.Clamp(math.Round(v*128+128), 0, 255))
}

func quantizeMagnitude(amp float64) byte {
	if amp <= 0 {
		return 0
	}

	db := 20 * math.Log10(amp)

	norm := (db - minDecibels) / (maxDecibels - minDecibels)

	return byte(core.Clamp(math.Round(norm*255), 0, 255))
}

// hannWindow returns periodic Hann coefficients for FFT framing.
func hannWindow(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n)))
	}

	return w
}
