package buffer

import "math"

// Ring is a fixed-capacity ring buffer of float64 samples. Pushing beyond
// capacity drops the oldest sample. It backs rolling statistics such as the
// beat detector's bass-energy history.
type Ring struct {
	data  []float64
	head  int
	count int
}

// NewRing returns an empty Ring holding at most capacity samples.
// A capacity below 1 is raised to 1.
func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}

	return &Ring{data: make([]float64, capacity)}
}

// Push appends v, evicting the oldest sample when full.
func (r *Ring) Push(v float64) {
	r.data[r.head] = v
	r.head = (r.head + 1) % len(r.data)

	if r.count < len(r.data) {
		r.count++
	}
}

// Len returns the number of samples currently held.
func (r *Ring) Len() int {
	return r.count
}

// Cap returns the fixed capacity.
func (r *Ring) Cap() int {
	return len(r.data)
}

// Reset discards all samples without releasing storage.
func (r *Ring) Reset() {
	r.head = 0
	r.count = 0
}

// Mean returns the arithmetic mean of the held samples, or 0 when empty.
func (r *Ring) Mean() float64 {
	if r.count == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range r.values() {
		sum += v
	}

	return sum / float64(r.count)
}

// StdDev returns the population standard deviation of the held samples,
// or 0 when empty.
func (r *Ring) StdDev() float64 {
	if r.count == 0 {
		return 0
	}

	mean := r.Mean()

	sumSq := 0.0

	for _, v := range r.values() {
		d := v - mean
		sumSq += d * d
	}

	return math.Sqrt(sumSq / float64(r.count))
}

// Values returns the held samples oldest-first as a fresh slice.
func (r *Ring) Values() []float64 {
	out := make([]float64, r.count)
	copy(out, r.values())

	return out
}

// values returns the held samples oldest-first. When the ring has wrapped
// the result is a fresh slice; before wrapping it aliases internal storage.
func (r *Ring) values() []float64 {
	if r.count < len(r.data) {
		return r.data[:r.count]
	}

	out := make([]float64, r.count)
	n := copy(out, r.data[r.head:])
	copy(out[n:], r.data[:r.head])

	return out
}
