package core

import "time"

// Clock abstracts wall-clock access so time-dependent components (beat
// cooldown, transition progress, export progress) can be driven
// deterministically in tests. One-shot timers such as the export auto-stop
// stay on real time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
