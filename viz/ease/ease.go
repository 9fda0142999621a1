// Package ease provides the easing curves shared by text overlay animation
// and transition progress. All functions map [0, 1] to [0, 1] with exact
// endpoints.
package ease

// Func maps a normalized progress value in [0, 1] to an eased value.
type Func func(t float64) float64

// Linear returns t unchanged.
func Linear(t float64) float64 {
	return t
}

// InQuad accelerates from zero: t².
func InQuad(t float64) float64 {
	return t * t
}

// OutQuad decelerates to zero: 1-(1-t)².
func OutQuad(t float64) float64 {
	u := 1 - t
	return 1 - u*u
}

// InOutQuad accelerates through the first half and decelerates through the
// second.
func InOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}

	u := -2*t + 2

	return 1 - u*u/2
}

// ForName resolves an easing name. Unknown names fall back to Linear so a
// mistyped name degrades to a visible but un-eased animation instead of
// failing the tick.
func ForName(name string) Func {
	switch name {
	case "ease-in", "easeIn":
		return InQuad
	case "ease-out", "easeOut":
		return OutQuad
	case "ease-in-out", "easeInOut":
		return InOutQuad
	default:
		return Linear
	}
}
