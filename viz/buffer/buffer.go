// Package buffer provides reuse-friendly float64 storage for per-tick
// analysis: a resizable scratch buffer and a fixed-capacity ring used for
// rolling signal statistics.
package buffer

// Buffer wraps a float64 slice with reuse-friendly semantics so hot analysis
// paths avoid reallocating every tick.
type Buffer struct {
	samples []float64
}

// New returns a zero-filled Buffer of the given length.
func New(length int) *Buffer {
	if length < 0 {
		length = 0
	}

	return &Buffer{samples: make([]float64, length)}
}

// Samples returns the underlying slice.
func (b *Buffer) Samples() []float64 {
	return b.samples
}

// Len returns the current number of samples.
func (b *Buffer) Len() int {
	return len(b.samples)
}

// Resize sets the length to n, reusing existing capacity when possible.
// Newly exposed elements are zeroed.
func (b *Buffer) Resize(n int) {
	if n < 0 {
		n = 0
	}

	oldLen := len(b.samples)

	if n <= cap(b.samples) {
		b.samples = b.samples[:n]
	} else {
		s := make([]float64, n)
		copy(s, b.samples)
		b.samples = s
	}

	for i := oldLen; i < n; i++ {
		b.samples[i] = 0
	}
}

