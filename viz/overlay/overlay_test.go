package overlay

import (
	"image/color"
	"testing"
	"time"

	"github.com/cwbudde/algo-viz/viz/analysis"
	"github.com/cwbudde/algo-viz/viz/surface"
)

func testSurface(t *testing.T) *surface.Surface {
	t.Helper()

	s, err := surface.New(120, 80)
	if err != nil {
		t.Fatalf("surface.New(120, 80) returned %v", err)
	}

	return s
}

func hasInk(s *surface.Surface) bool {
	img := s.Image()
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 || img.Pix[i+1] != 0 || img.Pix[i+2] != 0 {
			return true
		}
	}

	return false
}

func TestAddAssignsID(t *testing.T) {
	t.Parallel()

	r := NewRenderer()

	id, err := r.Add(Overlay{Text: "hi"})
	if err != nil {
		t.Fatalf("Add returned %v", err)
	}

	if id == "" {
		t.Fatal("Add returned empty id")
	}

	if _, ok := r.Get(id); !ok {
		t.Errorf("Get(%q) did not find the overlay", id)
	}
}

func TestAddRejectsDuplicateID(t *testing.T) {
	t.Parallel()

	r := NewRenderer()

	if _, err := r.Add(Overlay{ID: "a", Text: "one"}); err != nil {
		t.Fatalf("first Add returned %v", err)
	}

	if _, err := r.Add(Overlay{ID: "a", Text: "two"}); err != ErrDuplicateID {
		t.Errorf("second Add returned %v, want ErrDuplicateID", err)
	}
}

func TestRemoveAndUpdate(t *testing.T) {
	t.Parallel()

	r := NewRenderer()

	id, _ := r.Add(Overlay{Text: "hello"})

	if !r.Update(Overlay{ID: id, Text: "world"}) {
		t.Error("Update returned false for existing overlay")
	}

	got, _ := r.Get(id)
	if got.Text != "world" {
		t.Errorf("Text after Update = %q, want %q", got.Text, "world")
	}

	if !r.Remove(id) {
		t.Error("Remove returned false for existing overlay")
	}

	if r.Remove(id) {
		t.Error("Remove returned true for already removed overlay")
	}

	if len(r.List()) != 0 {
		t.Errorf("List has %d overlays after Remove, want 0", len(r.List()))
	}
}

func TestOpenEndedWindow(t *testing.T) {
	t.Parallel()

	r := NewRenderer()
	r.Add(Overlay{
		Text:   "title",
		X:      0.5,
		Y:      0.5,
		Color:  color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Timing: TimingSpec{StartMs: 1000, EndMs: 0},
	})

	before := testSurface(t)
	r.Render(before, 500, analysis.FrequencyBands{}, analysis.BeatEvent{})

	if hasInk(before) {
		t.Error("overlay drew before its start time")
	}

	after := testSurface(t)
	r.Render(after, 1500, analysis.FrequencyBands{}, analysis.BeatEvent{})

	if !hasInk(after) {
		t.Error("open-ended overlay did not draw after its start time")
	}
}

func TestWindowEndIsExclusive(t *testing.T) {
	t.Parallel()

	ts := TimingSpec{StartMs: 100, EndMs: 200}

	cases := []struct {
		nowMs float64
		want  bool
	}{
		{50, false},
		{100, true},
		{199, true},
		{200, false},
		{500, false},
	}

	for _, c := range cases {
		if got := ts.visibleAt(c.nowMs); got != c.want {
			t.Errorf("visibleAt(%v) = %v, want %v", c.nowMs, got, c.want)
		}
	}
}

func TestLoopIgnoresWindow(t *testing.T) {
	t.Parallel()

	ts := TimingSpec{StartMs: 1000, EndMs: 2000, Loop: true}

	for _, now := range []float64{0, 500, 1500, 9000} {
		if !ts.visibleAt(now) {
			t.Errorf("visibleAt(%v) = false for looped overlay, want true", now)
		}
	}
}

func TestProgressClampsAndLoops(t *testing.T) {
	t.Parallel()

	r := NewRenderer()

	plain := &Overlay{
		Animation: AnimationSpec{Type: AnimFade, Duration: 400 * time.Millisecond},
		Timing:    TimingSpec{StartMs: 1000},
	}

	cases := []struct {
		nowMs float64
		want  float64
	}{
		{500, 0},
		{1000, 0},
		{1200, 0.5},
		{1400, 1},
		{5000, 1},
	}

	for _, c := range cases {
		if got := r.progress(plain, c.nowMs); got != c.want {
			t.Errorf("progress at %vms = %v, want %v", c.nowMs, got, c.want)
		}
	}

	looped := &Overlay{
		Animation: AnimationSpec{Type: AnimFade, Duration: 400 * time.Millisecond},
		Timing:    TimingSpec{StartMs: 0, Loop: true},
	}

	if got := r.progress(looped, 600); got != 0.5 {
		t.Errorf("looped progress at 600ms = %v, want 0.5", got)
	}
}

func TestFadeStartsInvisible(t *testing.T) {
	t.Parallel()

	r := NewRenderer()
	r.Add(Overlay{
		Text:      "fade",
		X:         0.5,
		Y:         0.5,
		Animation: AnimationSpec{Type: AnimFade, Duration: time.Second},
		Timing:    TimingSpec{StartMs: 0},
	})

	s := testSurface(t)
	r.Render(s, 0, analysis.FrequencyBands{}, analysis.BeatEvent{})

	if hasInk(s) {
		t.Error("fade overlay drew pixels at zero progress")
	}

	done := testSurface(t)
	r.Render(done, 2000, analysis.FrequencyBands{}, analysis.BeatEvent{})

	if !hasInk(done) {
		t.Error("fade overlay did not draw after its animation finished")
	}
}

func TestAudioReactiveBoostIsCapped(t *testing.T) {
	t.Parallel()

	r := NewRenderer()

	o := &Overlay{
		Text:      "beat",
		Opacity:   0.5,
		Size:      24,
		Animation: AnimationSpec{AudioReactive: true},
	}

	loud := analysis.FrequencyBands{Bass: 1}
	hit := analysis.BeatEvent{IsBeat: true, Intensity: 1}

	st := r.animate(o, 0, 0, 120, loud, hit)

	if st.scale > 1.1+1e-9 {
		t.Errorf("scale = %v, want at most 1.1", st.scale)
	}

	if st.opacity > 0.55+1e-9 {
		t.Errorf("opacity = %v, want at most 0.55", st.opacity)
	}
}

func TestTypewriterRevealGrows(t *testing.T) {
	t.Parallel()

	r := NewRenderer()

	o := &Overlay{
		Text:      "abcdefgh",
		Animation: AnimationSpec{Type: AnimTypewriter, Duration: 800 * time.Millisecond},
	}

	early := r.animate(o, 100, 0, 120, analysis.FrequencyBands{}, analysis.BeatEvent{})
	late := r.animate(o, 700, 0, 120, analysis.FrequencyBands{}, analysis.BeatEvent{})

	if early.reveal >= late.reveal {
		t.Errorf("reveal did not grow: early %d, late %d", early.reveal, late.reveal)
	}

	full := r.animate(o, 5000, 0, 120, analysis.FrequencyBands{}, analysis.BeatEvent{})
	if full.reveal != 8 {
		t.Errorf("reveal after animation end = %d, want 8", full.reveal)
	}
}

func TestRasterCacheReusesImages(t *testing.T) {
	t.Parallel()

	c, err := newRasterCache(8)
	if err != nil {
		t.Fatalf("newRasterCache returned %v", err)
	}

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}

	first := c.raster("cached", white)
	second := c.raster("cached", white)

	if first != second {
		t.Error("identical text and color did not hit the cache")
	}

	red := color.RGBA{R: 255, A: 255}
	if c.raster("cached", red) == first {
		t.Error("different color returned the cached raster")
	}
}

func BenchmarkRenderSingleOverlay(b *testing.B) {
	r := NewRenderer()
	r.Add(Overlay{
		Text:  "benchmark overlay",
		X:     0.5,
		Y:     0.5,
		Color: color.RGBA{R: 255, G: 255, B: 255, A: 255},
	})

	s, err := surface.New(640, 360)
	if err != nil {
		b.Fatalf("surface.New returned %v", err)
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		r.Render(s, float64(i)*16, analysis.FrequencyBands{}, analysis.BeatEvent{})
	}
}
