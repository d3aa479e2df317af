package scratch

import (
	"errors"
	"math"
	"testing"
)

// coatedSurface returns an opaque w×h surface.
func coatedSurface(t testing.TB, w, h int) *Surface {
	t.Helper()
	s := mustSurface(t, w, h)
	s.Clear(Silver)
	return s
}

// at builds an unscaled mouse input for a surface displayed at its native size.
func at(s *Surface, x, y float64) Input {
	return Input{X: x, Y: y, Bounds: Rect{W: float64(s.Width()), H: float64(s.Height())}}
}

func mustTracker(t testing.TB, r Raster, opts ...TrackerOption) *Tracker {
	t.Helper()
	tr, err := NewTracker(r, opts...)
	if err != nil {
		t.Fatalf("NewTracker() = %v", err)
	}
	return tr
}

func TestNewTrackerValidation(t *testing.T) {
	s := coatedSurface(t, 10, 10)

	tests := []struct {
		name  string
		r     Raster
		opts  []TrackerOption
		want  error
		field string
	}{
		{"zero threshold", s, []TrackerOption{WithThreshold(0)}, ErrInvalidThreshold, "threshold"},
		{"negative threshold", s, []TrackerOption{WithThreshold(-5)}, ErrInvalidThreshold, "threshold"},
		{"threshold above 100", s, []TrackerOption{WithThreshold(100.5)}, ErrInvalidThreshold, "threshold"},
		{"NaN threshold", s, []TrackerOption{WithThreshold(math.NaN())}, ErrInvalidThreshold, "threshold"},
		{"zero radius", s, []TrackerOption{WithBrushRadius(0)}, ErrInvalidRadius, "radius"},
		{"negative radius", s, []TrackerOption{WithBrushRadius(-1)}, ErrInvalidRadius, "radius"},
		{"NaN radius", s, []TrackerOption{WithBrushRadius(math.NaN())}, ErrInvalidRadius, "radius"},
		{"infinite radius", s, []TrackerOption{WithBrushRadius(math.Inf(1))}, ErrInvalidRadius, "radius"},
		{"nil raster", nil, nil, ErrNilRaster, "raster"},
		{"nil surface", (*Surface)(nil), nil, ErrNilRaster, "raster"},
		{"empty raster", &sliceRaster{}, nil, ErrInvalidDimensions, "size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := NewTracker(tt.r, tt.opts...)
			if tr != nil {
				t.Error("NewTracker returned a tracker for invalid config")
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("NewTracker() error = %v, want %v", err, tt.want)
			}
			var ce *ConfigError
			if !errors.As(err, &ce) || ce.Field != tt.field {
				t.Errorf("error = %#v, want *ConfigError{Field: %q}", err, tt.field)
			}
		})
	}
}

func TestNewTrackerDefaults(t *testing.T) {
	tr := mustTracker(t, coatedSurface(t, 10, 10), WithThreshold(100))
	if tr.State() != Covered || tr.IsRevealed() || tr.IsPointerActive() || tr.ErasedPercent() != 0 {
		t.Errorf("fresh tracker state = %v revealed=%v active=%v pct=%v",
			tr.State(), tr.IsRevealed(), tr.IsPointerActive(), tr.ErasedPercent())
	}
	if tr.BrushRadius() != DefaultBrushRadius || tr.Threshold() != 100 {
		t.Errorf("radius=%v threshold=%v", tr.BrushRadius(), tr.Threshold())
	}
}

func TestStateString(t *testing.T) {
	for s, want := range map[State]string{Covered: "covered", Revealing: "revealing", Revealed: "revealed", State(9): "unknown"} {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", s, got, want)
		}
	}
}

func TestSingleDiskCoverage(t *testing.T) {
	const w, h, r = 200.0, 150.0, 15.0
	s := coatedSurface(t, w, h)
	tr := mustTracker(t, s, WithBrushRadius(r), WithThreshold(90))

	tr.BeginGesture(at(s, 100, 75))
	want := 100 * math.Pi * r * r / (w * h)
	got := tr.ErasedPercent()
	if math.Abs(got-want) > want*0.03 {
		t.Errorf("ErasedPercent() = %.3f, want ~%.3f", got, want)
	}
	if tr.State() != Revealing {
		t.Errorf("State() = %v, want Revealing", tr.State())
	}
	if got != Coverage(s, 0) {
		t.Errorf("ErasedPercent %v differs from measured coverage %v", got, Coverage(s, 0))
	}
}

func TestOverlappingEraseNotDoubleCounted(t *testing.T) {
	s := coatedSurface(t, 100, 100)
	tr := mustTracker(t, s, WithBrushRadius(10), WithThreshold(90))

	tr.BeginGesture(at(s, 50, 50))
	first := tr.ErasedPercent()
	for range 20 {
		tr.ContinueGesture(at(s, 50, 50))
	}
	if tr.ErasedPercent() != first {
		t.Errorf("repeated erase at one spot changed percent %v -> %v", first, tr.ErasedPercent())
	}
}

func TestGestureLifecycle(t *testing.T) {
	s := coatedSurface(t, 100, 100)
	tr := mustTracker(t, s, WithBrushRadius(5), WithThreshold(99))

	// Moves without a preceding begin are ignored.
	tr.ContinueGesture(at(s, 20, 20))
	if tr.ErasedPercent() != 0 || tr.State() != Covered {
		t.Fatalf("move without begin erased: pct=%v state=%v", tr.ErasedPercent(), tr.State())
	}

	tr.BeginGesture(at(s, 20, 20))
	if !tr.IsPointerActive() {
		t.Error("pointer should be active after BeginGesture")
	}
	afterBegin := tr.ErasedPercent()

	tr.ContinueGesture(at(s, 60, 20))
	if tr.ErasedPercent() <= afterBegin {
		t.Error("ContinueGesture did not erase")
	}

	tr.EndGesture()
	if tr.IsPointerActive() {
		t.Error("pointer should be inactive after EndGesture")
	}
	afterEnd := tr.ErasedPercent()
	state := tr.State()

	tr.ContinueGesture(at(s, 80, 80))
	if tr.ErasedPercent() != afterEnd || tr.State() != state {
		t.Error("move after EndGesture changed the session")
	}
	if s.Alpha(80, 80) != 255 {
		t.Error("move after EndGesture erased pixels")
	}
}

func TestMonotonicity(t *testing.T) {
	s := coatedSurface(t, 120, 90)
	tr := mustTracker(t, s, WithBrushRadius(6), WithThreshold(100))

	// A deterministic pseudo-random walk mixing every operation.
	seed := uint32(7)
	next := func() uint32 {
		seed = seed*1664525 + 1013904223
		return seed >> 8
	}
	prev := tr.ErasedPercent()
	for i := range 2000 {
		x := float64(next()%160) - 20
		y := float64(next()%130) - 20
		switch next() % 4 {
		case 0:
			tr.BeginGesture(at(s, x, y))
		case 1, 2:
			tr.ContinueGesture(at(s, x, y))
		case 3:
			tr.EndGesture()
		}
		cur := tr.ErasedPercent()
		if cur < prev {
			t.Fatalf("step %d: percent decreased %v -> %v", i, prev, cur)
		}
		if cur < 0 || cur > 100 {
			t.Fatalf("step %d: percent %v out of range", i, cur)
		}
		prev = cur
	}
}

func TestRevealFiresOnce(t *testing.T) {
	s := coatedSurface(t, 40, 40)
	var reveals []Reveal
	tr := mustTracker(t, s,
		WithBrushRadius(10),
		WithThreshold(30),
		WithOnReveal(func(r Reveal) { reveals = append(reveals, r) }),
	)

	tr.BeginGesture(at(s, 20, 20))
	for x := 0.0; x <= 40; x += 2 {
		for y := 0.0; y <= 40; y += 10 {
			tr.ContinueGesture(at(s, x, y))
		}
	}
	tr.ForceReveal()
	tr.ForceReveal()
	tr.EndGesture()
	tr.BeginGesture(at(s, 5, 5))

	if len(reveals) != 1 {
		t.Fatalf("reveal callback fired %d times, want 1", len(reveals))
	}
	if reveals[0].Forced {
		t.Error("threshold reveal reported as forced")
	}
	if reveals[0].Percent < 30 {
		t.Errorf("reveal at %v%%, below threshold", reveals[0].Percent)
	}
	if !tr.IsRevealed() || tr.State() != Revealed {
		t.Errorf("state = %v, want Revealed", tr.State())
	}
	if tr.IsPointerActive() {
		t.Error("BeginGesture after reveal activated the pointer")
	}
}

func TestRevealOnCrossingCycle(t *testing.T) {
	s := coatedSurface(t, 100, 100)
	var fired int
	var firedAt float64
	tr := mustTracker(t, s,
		WithBrushRadius(8),
		WithThreshold(25),
		WithOnReveal(func(r Reveal) { fired++; firedAt = r.Percent }),
	)

	tr.BeginGesture(at(s, 0, 0))
	for y := 0.0; y <= 100 && fired == 0; y += 12 {
		for x := 0.0; x <= 100; x += 4 {
			before := tr.ErasedPercent()
			tr.ContinueGesture(at(s, x, y))
			after := tr.ErasedPercent()
			crossed := before < 25 && after >= 25
			if crossed && fired != 1 {
				t.Fatalf("crossed threshold at %v%% but callback fired %d times", after, fired)
			}
			if after < 25 && tr.IsRevealed() {
				t.Fatalf("revealed at %v%%, below threshold", after)
			}
			if crossed {
				if firedAt != after {
					t.Errorf("callback saw %v%%, tracker reports %v%%", firedAt, after)
				}
				break
			}
		}
	}
	if fired != 1 {
		t.Fatalf("callback fired %d times, want 1", fired)
	}
}

func TestThresholdHundred(t *testing.T) {
	s := coatedSurface(t, 20, 20)
	fired := 0
	tr := mustTracker(t, s, WithBrushRadius(30), WithThreshold(100),
		WithOnReveal(func(Reveal) { fired++ }))

	// A brush larger than the surface clears it in a single sample.
	tr.BeginGesture(at(s, 10, 10))
	if tr.ErasedPercent() != 100 || !tr.IsRevealed() || fired != 1 {
		t.Errorf("pct=%v revealed=%v fired=%d, want 100/true/1", tr.ErasedPercent(), tr.IsRevealed(), fired)
	}
}

func TestForceRevealFromCovered(t *testing.T) {
	s := coatedSurface(t, 50, 50)
	var reveals []Reveal
	tr := mustTracker(t, s, WithOnReveal(func(r Reveal) { reveals = append(reveals, r) }))

	tr.ForceReveal()
	if tr.State() != Revealed || !tr.IsRevealed() {
		t.Errorf("State() = %v, want Revealed", tr.State())
	}
	if tr.ErasedPercent() != 0 {
		t.Errorf("ForceReveal changed percent to %v", tr.ErasedPercent())
	}
	if len(reveals) != 1 || !reveals[0].Forced || reveals[0].Percent != 0 {
		t.Fatalf("reveals = %+v, want one forced reveal at 0%%", reveals)
	}

	tr.ForceReveal()
	if len(reveals) != 1 {
		t.Errorf("second ForceReveal fired the callback again")
	}
	if Coverage(s, 0) != 0 {
		t.Error("ForceReveal modified the surface")
	}
}

func TestForceRevealWithoutCallback(t *testing.T) {
	tr := mustTracker(t, coatedSurface(t, 5, 5))
	tr.ForceReveal()
	if !tr.IsRevealed() {
		t.Error("ForceReveal without callback did not reveal")
	}
}

func TestCallbackReentrancy(t *testing.T) {
	s := coatedSurface(t, 30, 30)
	fired := 0
	var tr *Tracker
	tr = mustTracker(t, s, WithBrushRadius(40), WithOnReveal(func(Reveal) {
		fired++
		tr.ForceReveal()
		tr.ContinueGesture(at(s, 1, 1))
	}))
	tr.BeginGesture(at(s, 15, 15))
	if fired != 1 {
		t.Errorf("callback fired %d times, want 1", fired)
	}
}

func TestCoordinateMapping(t *testing.T) {
	tests := []struct {
		name           string
		nw, nh         int
		bounds         Rect
		clientX, clntY float64
		wantX, wantY   float64
	}{
		{"unscaled", 200, 100, Rect{0, 0, 200, 100}, 50, 40, 50, 40},
		{"offset box", 200, 100, Rect{30, 10, 200, 100}, 80, 50, 50, 40},
		{"displayed at half size", 200, 100, Rect{0, 0, 100, 50}, 40, 20, 80, 40},
		{"anisotropic", 200, 100, Rect{10, 20, 100, 200}, 40, 120, 60, 50},
		{"zero displayed size", 200, 100, Rect{5, 5, 0, 0}, 25, 45, 20, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := MapToSurface(tt.clientX, tt.clntY, tt.bounds, tt.nw, tt.nh)
			if math.Abs(p.X-tt.wantX) > 1e-9 || math.Abs(p.Y-tt.wantY) > 1e-9 {
				t.Errorf("MapToSurface() = (%v, %v), want (%v, %v)", p.X, p.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestErasureCentroidFollowsDisplayScale(t *testing.T) {
	// Native 200×100, displayed at 100×200 with an offset: x is scaled by 2,
	// y by 0.5. Displayed point (30, 100) must erase around native (60, 50).
	s := coatedSurface(t, 200, 100)
	tr := mustTracker(t, s, WithBrushRadius(10), WithThreshold(90))

	bounds := Rect{X: 10, Y: 20, W: 100, H: 200}
	tr.BeginGesture(Input{X: 10 + 30, Y: 20 + 100, Bounds: bounds})

	var sx, sy, n float64
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Alpha(x, y) == 0 {
				sx += float64(x) + 0.5
				sy += float64(y) + 0.5
				n++
			}
		}
	}
	if n == 0 {
		t.Fatal("nothing erased")
	}
	cx, cy := sx/n, sy/n
	if math.Abs(cx-60) > 0.5 || math.Abs(cy-50) > 0.5 {
		t.Errorf("erased centroid = (%.2f, %.2f), want (60, 50)", cx, cy)
	}
}

func TestEraseOffSurfaceIsClipped(t *testing.T) {
	s := coatedSurface(t, 50, 50)
	tr := mustTracker(t, s, WithBrushRadius(10), WithThreshold(100))

	tr.BeginGesture(at(s, -200, -200))
	if tr.ErasedPercent() != 0 || tr.State() != Covered {
		t.Errorf("far off-surface sample erased: pct=%v state=%v", tr.ErasedPercent(), tr.State())
	}
	// Dragging past the edge erases only the visible part of the disk.
	tr.ContinueGesture(at(s, 55, 25))
	if tr.ErasedPercent() == 0 {
		t.Error("disk overlapping the edge erased nothing")
	}
	if s.Alpha(49, 25) != 0 || s.Alpha(40, 25) != 255 {
		t.Error("edge disk erased the wrong pixels")
	}
}

func TestScratchScenario(t *testing.T) {
	// 320×440 card, brush radius 40, threshold 50.
	s := coatedSurface(t, 320, 440)
	fired := 0
	tr := mustTracker(t, s, WithBrushRadius(40), WithThreshold(50),
		WithOnReveal(func(Reveal) { fired++ }))

	// First stroke: a 300px horizontal band near the top.
	tr.BeginGesture(at(s, 10, 60))
	for x := 10.0; x <= 310; x += 4 {
		tr.ContinueGesture(at(s, x, 60))
	}
	tr.EndGesture()

	if pct := tr.ErasedPercent(); pct < 15 || pct > 25 {
		t.Errorf("after one band ErasedPercent() = %.1f, want ~17-21", pct)
	}
	if tr.State() != Revealing || fired != 0 {
		t.Fatalf("after one band state=%v fired=%d, want Revealing/0", tr.State(), fired)
	}

	// Second stroke: zig-zag over the rest of the card until revealed.
	tr.BeginGesture(at(s, 10, 140))
	for y := 140.0; y <= 420; y += 70 {
		for x := 10.0; x <= 310; x += 4 {
			before := tr.ErasedPercent()
			tr.ContinueGesture(at(s, x, y))
			after := tr.ErasedPercent()
			if (after >= 50) != tr.IsRevealed() {
				t.Fatalf("at %.2f%% IsRevealed() = %v", after, tr.IsRevealed())
			}
			if before < 50 && after >= 50 && fired != 1 {
				t.Fatalf("crossing cycle fired %d callbacks, want 1", fired)
			}
		}
	}
	tr.EndGesture()

	if !tr.IsRevealed() {
		t.Fatalf("not revealed at %.1f%%", tr.ErasedPercent())
	}
	if fired != 1 {
		t.Errorf("reveal callback fired %d times, want 1", fired)
	}
}

func TestAlphaCutoff(t *testing.T) {
	s := coatedSurface(t, 10, 10)
	// A translucent coating: alpha 100 everywhere.
	d := s.Data()
	for i := 3; i < len(d); i += 4 {
		d[i] = 100
	}

	if got := Coverage(s, 0); got != 0 {
		t.Errorf("Coverage(cutoff 0) = %v, want 0", got)
	}
	if got := Coverage(s, 100); got != 100 {
		t.Errorf("Coverage(cutoff 100) = %v, want 100", got)
	}

	lax := mustTracker(t, s, WithThreshold(50), WithAlphaCutoff(100), WithBrushRadius(1))
	lax.BeginGesture(at(s, 5, 5))
	if !lax.IsRevealed() {
		t.Errorf("tracker with cutoff 100 not revealed at %v%%", lax.ErasedPercent())
	}
}

// sliceRaster is a minimal Raster without the bulk fast paths.
type sliceRaster struct {
	w, h  int
	alpha []uint8
}

func newSliceRaster(w, h int) *sliceRaster {
	r := &sliceRaster{w: w, h: h, alpha: make([]uint8, w*h)}
	for i := range r.alpha {
		r.alpha[i] = 255
	}
	return r
}

func (r *sliceRaster) Width() int  { return r.w }
func (r *sliceRaster) Height() int { return r.h }
func (r *sliceRaster) Alpha(x, y int) uint8 {
	if x < 0 || x >= r.w || y < 0 || y >= r.h {
		return 0
	}
	return r.alpha[y*r.w+x]
}
func (r *sliceRaster) ClearPixel(x, y int) {
	if x < 0 || x >= r.w || y < 0 || y >= r.h {
		return
	}
	r.alpha[y*r.w+x] = 0
}

func TestGenericRasterMatchesSurface(t *testing.T) {
	generic := newSliceRaster(90, 70)
	surface := coatedSurface(t, 90, 70)
	tg := mustTracker(t, generic, WithBrushRadius(9), WithThreshold(100))
	ts := mustTracker(t, surface, WithBrushRadius(9), WithThreshold(100))

	samples := []Point{{10, 10}, {45.3, 35.7}, {-3, 40}, {88, 69}, {60.5, 0.5}}
	tg.BeginGesture(Input{X: samples[0].X, Y: samples[0].Y})
	ts.BeginGesture(Input{X: samples[0].X, Y: samples[0].Y})
	for _, p := range samples[1:] {
		tg.ContinueGesture(Input{X: p.X, Y: p.Y})
		ts.ContinueGesture(Input{X: p.X, Y: p.Y})
	}

	if tg.ErasedPercent() != ts.ErasedPercent() {
		t.Errorf("generic raster %v%% != surface %v%%", tg.ErasedPercent(), ts.ErasedPercent())
	}
	for y := 0; y < 70; y++ {
		for x := 0; x < 90; x++ {
			if (generic.Alpha(x, y) == 0) != (surface.Alpha(x, y) == 0) {
				t.Fatalf("pixel (%d, %d) differs between raster implementations", x, y)
			}
		}
	}
}

func BenchmarkEraseAndMeasure(b *testing.B) {
	s := coatedSurface(b, 320, 440)
	tr := mustTracker(b, s, WithBrushRadius(20), WithThreshold(100))
	tr.BeginGesture(at(s, 0, 0))
	b.ReportAllocs()
	i := 0
	for b.Loop() {
		tr.ContinueGesture(at(s, float64(i%320), float64((i/320)%440)))
		i += 7
	}
}
