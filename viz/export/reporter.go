package export

import "time"

// Progress is the periodic status of a recording. Frame counts are
// estimated from elapsed wall-clock time against the audio duration, not
// from encoder feedback; the sink reports only opaque completion.
type Progress struct {
	JobID         string
	Percentage    float64
	TimeRemaining time.Duration
	CurrentFrame  int
	TotalFrames   int
}

// Reporter receives progress updates during recording.
type Reporter interface {
	Report(p Progress)
}

// NopReporter discards all updates.
type NopReporter struct{}

func (NopReporter) Report(Progress) {}

// ChannelReporter fans progress out over a channel. Report never blocks;
// updates are dropped when the consumer lags.
type ChannelReporter struct {
	ch chan Progress
}

// NewChannelReporter returns a reporter with the given buffer size.
func NewChannelReporter(buffer int) *ChannelReporter {
	if buffer <= 0 {
		buffer = 16
	}

	return &ChannelReporter{ch: make(chan Progress, buffer)}
}

// Report delivers p if the channel has room.
func (r *ChannelReporter) Report(p Progress) {
	select {
	case r.ch <- p:
	default:
	}
}

// Updates exposes the progress stream.
func (r *ChannelReporter) Updates() <-chan Progress {
	return r.ch
}
