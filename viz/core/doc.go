// Package core provides shared numeric, color, and clock primitives used
// across the rendering pipeline. All functions are allocation-free and safe
// for per-tick use.
package core
