package params

import (
	"errors"
	"image/color"
	"sync"
	"testing"
)

func waveformDefs() []Definition {
	return []Definition{
		{Name: "intensity", Kind: Number, Min: 0, Max: 100, Default: 50.0},
		{Name: "color", Kind: Color, Default: "#00ff88"},
		{Name: "mirror", Kind: Boolean, Default: false},
		{Name: "style", Kind: Enum, Options: []string{"line", "bars", "filled"}, Default: "line"},
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s := NewStore()

	err := s.Register("waveform", waveformDefs())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	return s
}

func TestRegisterSeedsDefaults(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	vals := s.Values("waveform")

	if got := vals.GetNum("intensity", -1); got != 50 {
		t.Errorf("intensity = %v, want 50", got)
	}

	if got := vals.GetEnum("style", ""); got != "line" {
		t.Errorf("style = %q, want %q", got, "line")
	}

	if got := vals.GetBool("mirror", true); got != false {
		t.Errorf("mirror = %v, want false", got)
	}
}

func TestRegisterTwiceFails(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	err := s.Register("waveform", waveformDefs())
	if !errors.Is(err, ErrAlreadyRegistered) {
		t.Errorf("second Register error = %v, want ErrAlreadyRegistered", err)
	}
}

func TestRegisterRejectsInvalidDefault(t *testing.T) {
	t.Parallel()

	s := NewStore()

	err := s.Register("broken", []Definition{
		{Name: "gain", Kind: Number, Min: 0, Max: 1, Default: 5.0},
	})
	if err == nil {
		t.Fatal("Register accepted out-of-bounds default")
	}
}

func TestSetRoundTrip(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	if !s.Set("waveform", "intensity", 80.0) {
		t.Fatal("Set(intensity, 80) rejected")
	}

	if got := s.Values("waveform").GetNum("intensity", -1); got != 80 {
		t.Errorf("intensity after Set = %v, want 80", got)
	}
}

func TestSetRejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		key   string
		value any
	}{
		{name: "unknown name", key: "glow", value: 1.0},
		{name: "above max", key: "intensity", value: 150.0},
		{name: "below min", key: "intensity", value: -1.0},
		{name: "wrong type for number", key: "intensity", value: "loud"},
		{name: "bad hex color", key: "color", value: "#zzzzzz"},
		{name: "enum outside options", key: "style", value: "dots"},
		{name: "bool as string", key: "mirror", value: "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newTestStore(t)
			before := s.Values("waveform")

			notified := false
			sub := s.Subscribe("waveform", func(Values) { notified = true })
			defer sub.Cancel()

			if s.Set("waveform", tt.key, tt.value) {
				t.Fatalf("Set(%q, %v) accepted, want rejection", tt.key, tt.value)
			}

			if notified {
				t.Error("rejected Set notified subscribers")
			}

			after := s.Values("waveform")
			for k := range before {
				if before[k] != after[k] {
					t.Errorf("state mutated by rejected Set: %s %v -> %v", k, before[k], after[k])
				}
			}
		})
	}
}

func TestSetUnregisteredEffect(t *testing.T) {
	t.Parallel()

	s := NewStore()

	if s.Set("ghost", "intensity", 10.0) {
		t.Error("Set on unregistered effect accepted")
	}

	if vals := s.Values("ghost"); len(vals) != 0 {
		t.Errorf("Values on unregistered effect = %v, want empty", vals)
	}
}

func TestSubscribeReceivesFullSet(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	var got Values

	sub := s.Subscribe("waveform", func(v Values) { got = v })
	defer sub.Cancel()

	s.Set("waveform", "intensity", 75.0)

	if got == nil {
		t.Fatal("subscriber not notified")
	}

	if got.GetNum("intensity", -1) != 75 {
		t.Errorf("notified intensity = %v, want 75", got.GetNum("intensity", -1))
	}

	// Full set, not a diff: untouched keys are present too.
	if got.GetEnum("style", "") != "line" {
		t.Errorf("notified style = %q, want %q", got.GetEnum("style", ""), "line")
	}
}

func TestSubscriptionCancelStopsDelivery(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	calls := 0
	sub := s.Subscribe("waveform", func(Values) { calls++ })

	s.Set("waveform", "intensity", 10.0)
	sub.Cancel()
	s.Set("waveform", "intensity", 20.0)

	if calls != 1 {
		t.Errorf("callback invoked %d times, want 1", calls)
	}

	// Idempotent cancel.
	sub.Cancel()
	sub.Cancel()
}

func TestResetToDefaultsNotifies(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	s.Set("waveform", "intensity", 90.0)

	var got Values

	sub := s.Subscribe("waveform", func(v Values) { got = v })
	defer sub.Cancel()

	s.ResetToDefaults("waveform")

	if got == nil {
		t.Fatal("ResetToDefaults did not notify")
	}

	if got.GetNum("intensity", -1) != 50 {
		t.Errorf("intensity after reset = %v, want 50", got.GetNum("intensity", -1))
	}
}

func TestValuesCopyIsDefensive(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	vals := s.Values("waveform")
	vals["intensity"] = 999.0

	if got := s.Values("waveform").GetNum("intensity", -1); got != 50 {
		t.Errorf("store mutated through returned copy: intensity = %v", got)
	}
}

func TestGetColor(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	def := color.RGBA{R: 1, G: 2, B: 3, A: 255}

	got := s.Values("waveform").GetColor("color", def)
	want := color.RGBA{R: 0, G: 255, B: 136, A: 255}

	if got != want {
		t.Errorf("GetColor = %v, want %v", got, want)
	}

	if got := (Values{}).GetColor("color", def); got != def {
		t.Errorf("GetColor on empty set = %v, want default %v", got, def)
	}
}

func TestConcurrentSetDuringNotification(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	// Subscribers receive copies taken under the store lock; ranging over
	// them here must never observe a concurrent writer.
	s.Subscribe("waveform", func(vals Values) {
		for name := range vals {
			_ = vals.GetNum(name, 0)
		}
	})

	var wg sync.WaitGroup

	for w := range 4 {
		wg.Add(1)

		go func(w int) {
			defer wg.Done()

			names := []string{"intensity", "mirror"}

			for i := range 200 {
				switch names[w%len(names)] {
				case "intensity":
					s.Set("waveform", "intensity", float64(i%100))
				case "mirror":
					s.Set("waveform", "mirror", i%2 == 0)
				}
			}
		}(w)
	}

	wg.Wait()

	got := s.Values("waveform").GetNum("intensity", -1)
	if got < 0 || got > 100 {
		t.Errorf("intensity after concurrent sets = %v, want within [0, 100]", got)
	}
}
