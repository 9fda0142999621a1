package export

import (
	"errors"
	"fmt"
)

// ErrNoSupportedMIME is returned when the sink supports none of the
// candidate container/codec combinations for the requested format.
var ErrNoSupportedMIME = errors.New("export: no supported container/codec")

// Format selects the output container.
type Format string

const (
	FormatWebM Format = "webm"
	FormatMP4  Format = "mp4"
)

// Quality maps a tier name to a target bitrate.
type Quality string

const (
	QualityLow    Quality = "low"
	QualityMedium Quality = "medium"
	QualityHigh   Quality = "high"
)

// BitsPerSecond returns the target video bitrate for the tier. Unknown
// tiers fall back to medium.
func (q Quality) BitsPerSecond() int {
	switch q {
	case QualityLow:
		return 2_500_000
	case QualityHigh:
		return 8_000_000
	default:
		return 5_000_000
	}
}

// Settings configures one export run.
type Settings struct {
	Format  Format
	Quality Quality
	FPS     int
}

func (s *Settings) normalize() {
	if s.Format == "" {
		s.Format = FormatWebM
	}

	if s.Quality == "" {
		s.Quality = QualityMedium
	}

	if s.FPS <= 0 || s.FPS > 120 {
		s.FPS = 30
	}
}

// candidates lists container/codec MIME strings for a format, most specific
// first and the bare container last.
func candidates(f Format) []string {
	switch f {
	case FormatMP4:
		return []string{
			"video/mp4;codecs=avc1.42E01E,mp4a.40.2",
			"video/mp4;codecs=h264,aac",
			"video/mp4",
		}
	default:
		return []string{
			"video/webm;codecs=vp9,opus",
			"video/webm;codecs=vp8,opus",
			"video/webm",
		}
	}
}

// negotiate picks the first candidate MIME the sink supports.
func negotiate(sink CaptureSink, f Format) (string, error) {
	for _, mime := range candidates(f) {
		if sink.Supports(mime) {
			return mime, nil
		}
	}

	return "", fmt.Errorf("%w: format %q", ErrNoSupportedMIME, f)
}
