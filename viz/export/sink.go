// Package export drives a full playback pass while a capture sink pulls
// rendered frames and audio, and reports wall-clock estimated progress.
package export

import (
	"io"

	"github.com/cwbudde/algo-viz/viz/surface"
)

// StreamConfig describes the combined video and audio stream handed to a
// capture sink when recording starts.
type StreamConfig struct {
	Frames        surface.FrameSource
	Audio         io.Reader
	FPS           int
	MIMEType      string
	BitsPerSecond int
}

// Result is the terminal outcome of one capture. Either Data and MIMEType
// are set, or Err is.
type Result struct {
	Data     []byte
	MIMEType string
	Err      error
}

// CaptureSink encodes a live frame and audio stream into one binary object.
// Supports must be callable before Start. Done delivers exactly one Result
// after Stop.
type CaptureSink interface {
	Supports(mime string) bool
	Start(cfg StreamConfig) error
	Stop()
	Done() <-chan Result
}
