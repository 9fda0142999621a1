// Package playback defines the contract the rendering pipeline expects from
// the audio playback collaborator. The pipeline never owns decoding or output
// devices; it reads sample snapshots and transport state through these
// interfaces and injects fakes in tests.
package playback

import "io"

// SampleSource exposes per-tick sample snapshots in the byte conventions the
// analyzer consumes: frequency bins as magnitudes 0..255 and time-domain
// samples centered at 128. Returned slices are read-only snapshots; callers
// must not mutate them.
type SampleSource interface {
	FrequencySamples() []byte
	TimeDomainSamples() []byte
}

// Transport controls playback position and state.
type Transport interface {
	Play() error
	Pause()
	Stop()
	Seek(seconds float64) error
	CurrentTime() float64
	Duration() float64
	Playing() bool
}

// Provider is the full playback collaborator: transport control, sample
// access, and a raw audio tap for the capture sink.
type Provider interface {
	Transport
	SampleSource

	// AudioTap returns a reader over the raw audio stream for capture.
	// Each call returns an independent reader positioned at the current
	// playback position.
	AudioTap() io.Reader
}
