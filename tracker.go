package scratch

import (
	"log/slog"
	"math"
)

// State is the reveal state of a scratch session.
type State int

const (
	// Covered is the initial state: nothing has been erased.
	Covered State = iota
	// Revealing means some coating has been erased but less than the threshold.
	Revealing
	// Revealed is terminal. No transition leaves it.
	Revealed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Covered:
		return "covered"
	case Revealing:
		return "revealing"
	case Revealed:
		return "revealed"
	default:
		return "unknown"
	}
}

// Reveal describes the transition into the Revealed state.
type Reveal struct {
	// Percent is the erased percentage measured when the reveal happened.
	Percent float64
	// Forced is true when the reveal came from ForceReveal rather than
	// from crossing the threshold.
	Forced bool
}

// Tracker is the erasure tracker for one scratch session.
//
// It erases a disk at every input sample, re-measures the erased share of
// the whole surface by scanning its alpha channel, and moves to Revealed the
// first time the measurement reaches the threshold. The reveal callback
// fires at most once per Tracker.
//
// A Tracker is not safe for concurrent use; drive it from the goroutine that
// delivers input events. It must be the only writer to its surface.
type Tracker struct {
	raster    Raster
	radius    float64
	threshold float64
	cutoff    uint8
	onReveal  func(Reveal)

	state   State
	percent float64
	active  bool
	fired   bool
}

// NewTracker creates a tracker over r. Invalid options are rejected here so
// that gestures never fail: the threshold must be in (0, 100], the brush
// radius positive and finite, and r non-empty.
func NewTracker(r Raster, opts ...TrackerOption) (*Tracker, error) {
	o := defaultTrackerOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if s, ok := r.(*Surface); r == nil || (ok && s == nil) {
		return nil, &ConfigError{Field: "raster", Value: nil, Err: ErrNilRaster}
	}
	if r.Width() <= 0 || r.Height() <= 0 {
		return nil, &ConfigError{Field: "size", Value: [2]int{r.Width(), r.Height()}, Err: ErrInvalidDimensions}
	}
	if math.IsNaN(o.threshold) || o.threshold <= 0 || o.threshold > 100 {
		return nil, &ConfigError{Field: "threshold", Value: o.threshold, Err: ErrInvalidThreshold}
	}
	if math.IsNaN(o.radius) || math.IsInf(o.radius, 0) || o.radius <= 0 {
		return nil, &ConfigError{Field: "radius", Value: o.radius, Err: ErrInvalidRadius}
	}

	return &Tracker{
		raster:    r,
		radius:    o.radius,
		threshold: o.threshold,
		cutoff:    o.cutoff,
		onReveal:  o.onReveal,
		state:     Covered,
	}, nil
}

// State returns the current state.
func (t *Tracker) State() State { return t.state }

// ErasedPercent returns the last measured erased percentage in [0, 100].
// It never decreases.
func (t *Tracker) ErasedPercent() float64 { return t.percent }

// IsRevealed reports whether the session has reached Revealed.
func (t *Tracker) IsRevealed() bool { return t.state == Revealed }

// IsPointerActive reports whether a gesture is in progress.
func (t *Tracker) IsPointerActive() bool { return t.active }

// BrushRadius returns the erase radius in surface pixels.
func (t *Tracker) BrushRadius() float64 { return t.radius }

// Threshold returns the reveal threshold percentage.
func (t *Tracker) Threshold() float64 { return t.threshold }

// BeginGesture starts a gesture (pointer or touch down) and erases at in.
// It is ignored once the session is revealed.
func (t *Tracker) BeginGesture(in Input) {
	if t.state == Revealed {
		Logger().Debug("scratch: begin ignored after reveal", slog.String("source", in.Source.String()))
		return
	}
	t.active = true
	Logger().Debug("scratch: gesture begin",
		slog.String("source", in.Source.String()),
		slog.Float64("x", in.X), slog.Float64("y", in.Y))
	t.cycle(in)
}

// ContinueGesture erases at in while a gesture is active. Calls outside a
// gesture or after the reveal are ignored.
func (t *Tracker) ContinueGesture(in Input) {
	if !t.active || t.state == Revealed {
		return
	}
	t.cycle(in)
}

// EndGesture ends the current gesture (pointer or touch up). Erased pixels
// and the state are kept.
func (t *Tracker) EndGesture() {
	if t.active {
		Logger().Debug("scratch: gesture end", slog.Float64("percent", t.percent))
	}
	t.active = false
}

// ForceReveal moves the session to Revealed without erasing anything, for
// skip and accessibility flows. The erased percentage is unchanged. It fires
// the reveal callback unless it has already fired; repeated calls are no-ops.
func (t *Tracker) ForceReveal() {
	t.reveal(true)
}

// cycle runs one erase-and-measure step at in.
func (t *Tracker) cycle(in Input) {
	p := MapToSurface(in.X, in.Y, in.Bounds, t.raster.Width(), t.raster.Height())
	eraseDisk(t.raster, p, t.radius)

	if pct := Coverage(t.raster, t.cutoff); pct > t.percent {
		t.percent = pct
	}

	switch {
	case t.percent >= t.threshold:
		t.reveal(false)
	case t.percent > 0:
		t.state = Revealing
	}
}

func (t *Tracker) reveal(forced bool) {
	if t.fired {
		return
	}
	t.fired = true
	t.state = Revealed

	Logger().Info("scratch: revealed",
		slog.Float64("percent", t.percent),
		slog.Float64("threshold", t.threshold),
		slog.Bool("forced", forced))

	if t.onReveal != nil {
		t.onReveal(Reveal{Percent: t.percent, Forced: forced})
	}
}
