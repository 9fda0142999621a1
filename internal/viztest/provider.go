package viztest

import (
	"bytes"
	"io"
)

// Provider is a scripted playback collaborator. Sample buffers and transport
// state are set directly by tests.
type Provider struct {
	Freq     []byte
	Time     []byte
	Audio    []byte
	Dur      float64
	Position float64
	IsOn     bool

	PlayCalls int
	StopCalls int
	SeekCalls []float64

	PlayErr error
	SeekErr error
}

// Play starts scripted playback.
func (p *Provider) Play() error {
	if p.PlayErr != nil {
		return p.PlayErr
	}

	p.PlayCalls++
	p.IsOn = true

	return nil
}

// Pause halts playback keeping position.
func (p *Provider) Pause() {
	p.IsOn = false
}

// Stop halts playback and rewinds.
func (p *Provider) Stop() {
	p.StopCalls++
	p.IsOn = false
	p.Position = 0
}

// Seek moves the playback position.
func (p *Provider) Seek(seconds float64) error {
	if p.SeekErr != nil {
		return p.SeekErr
	}

	p.SeekCalls = append(p.SeekCalls, seconds)
	p.Position = seconds

	return nil
}

// CurrentTime returns the scripted position.
func (p *Provider) CurrentTime() float64 {
	return p.Position
}

// Duration returns the scripted track length in seconds.
func (p *Provider) Duration() float64 {
	return p.Dur
}

// Playing reports the transport state.
func (p *Provider) Playing() bool {
	return p.IsOn
}

// FrequencySamples returns the scripted spectrum snapshot.
func (p *Provider) FrequencySamples() []byte {
	return p.Freq
}

// TimeDomainSamples returns the scripted waveform snapshot.
func (p *Provider) TimeDomainSamples() []byte {
	return p.Time
}

// AudioTap returns a reader over the scripted raw audio.
func (p *Provider) AudioTap() io.Reader {
	return bytes.NewReader(p.Audio)
}
