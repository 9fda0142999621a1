// Package params provides per-effect parameter storage: typed, bounded
// definitions, runtime value sets, and synchronous change notification
// through cancellable subscription tokens.
package params

import (
	"image/color"
	"math"

	"github.com/cwbudde/algo-viz/viz/core"
)

// Kind enumerates the parameter value types an effect may declare.
type Kind int

const (
	Number Kind = iota
	Color
	Boolean
	Enum
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case Color:
		return "color"
	case Boolean:
		return "boolean"
	case Enum:
		return "enum"
	default:
		return "unknown"
	}
}

// Definition declares one parameter: its name, kind, bounds or options, and
// default value.
type Definition struct {
	Name    string
	Kind    Kind
	Min     float64  // Number only
	Max     float64  // Number only
	Options []string // Enum only
	Default any
}

// validate reports whether value is acceptable for this definition.
func (d Definition) validate(value any) bool {
	switch d.Kind {
	case Number:
		v, ok := toFloat(value)
		if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}

		return v >= d.Min && v <= d.Max
	case Color:
		s, ok := value.(string)
		if !ok {
			return false
		}

		_, err := core.ParseHex(s)

		return err == nil
	case Boolean:
		_, ok := value.(bool)

		return ok
	case Enum:
		s, ok := value.(string)
		if !ok {
			return false
		}

		for _, opt := range d.Options {
			if s == opt {
				return true
			}
		}

		return false
	default:
		return false
	}
}

// Values is a name-to-value map for one effect. Getters are nil-safe and
// fall back to the provided default on missing or mistyped entries.
type Values map[string]any

// GetNum extracts a numeric parameter, returning def if missing or invalid.
func (v Values) GetNum(name string, def float64) float64 {
	raw, ok := v[name]
	if !ok {
		return def
	}

	f, ok := toFloat(raw)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}

	return f
}

// GetColor extracts a hex color parameter, returning def if missing or
// unparseable.
func (v Values) GetColor(name string, def color.RGBA) color.RGBA {
	raw, ok := v[name]
	if !ok {
		return def
	}

	s, ok := raw.(string)
	if !ok {
		return def
	}

	c, err := core.ParseHex(s)
	if err != nil {
		return def
	}

	return c
}

// GetBool extracts a boolean parameter.
func (v Values) GetBool(name string, def bool) bool {
	raw, ok := v[name]
	if !ok {
		return def
	}

	b, ok := raw.(bool)
	if !ok {
		return def
	}

	return b
}

// GetEnum extracts an enum parameter as its string option.
func (v Values) GetEnum(name, def string) string {
	raw, ok := v[name]
	if !ok {
		return def
	}

	s, ok := raw.(string)
	if !ok {
		return def
	}

	return s
}

// Clone returns a defensive copy.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}

	return out
}

func toFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
