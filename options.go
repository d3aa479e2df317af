package scratch

import "github.com/gogpu/scratch/text"

// Defaults used when a Tracker is built without the corresponding option.
const (
	DefaultBrushRadius = 20.0
	DefaultThreshold   = 50.0
)

// TrackerOption configures a Tracker during creation.
//
// Example:
//
//	tr, err := scratch.NewTracker(surface,
//	    scratch.WithBrushRadius(40),
//	    scratch.WithThreshold(60),
//	    scratch.WithOnReveal(func(r scratch.Reveal) { showMessage() }),
//	)
type TrackerOption func(*trackerOptions)

// trackerOptions holds optional configuration for Tracker creation.
type trackerOptions struct {
	radius    float64
	threshold float64
	cutoff    uint8
	onReveal  func(Reveal)
}

// defaultTrackerOptions returns the default tracker options.
func defaultTrackerOptions() trackerOptions {
	return trackerOptions{
		radius:    DefaultBrushRadius,
		threshold: DefaultThreshold,
	}
}

// WithBrushRadius sets the radius, in surface pixels, of the disk erased at
// each input sample. The radius does not scale with the surface.
func WithBrushRadius(r float64) TrackerOption {
	return func(o *trackerOptions) {
		o.radius = r
	}
}

// WithThreshold sets the erased percentage in (0, 100] at which the surface
// counts as revealed.
func WithThreshold(pct float64) TrackerOption {
	return func(o *trackerOptions) {
		o.threshold = pct
	}
}

// WithOnReveal sets the callback fired, at most once per session, when the
// tracker enters the Revealed state.
func WithOnReveal(fn func(Reveal)) TrackerOption {
	return func(o *trackerOptions) {
		o.onReveal = fn
	}
}

// WithAlphaCutoff makes pixels with alpha at or below cutoff count as erased.
// The default of 0 counts only fully transparent pixels, which assumes the
// coating is painted fully opaque. Raise it for translucent coatings.
func WithAlphaCutoff(cutoff uint8) TrackerOption {
	return func(o *trackerOptions) {
		o.cutoff = cutoff
	}
}

// CoatingOption configures a Coating during creation.
type CoatingOption func(*coatingOptions)

type coatingOptions struct {
	font *text.Font
}

// WithCoatingFont sets the caption font. The default is Go Regular.
func WithCoatingFont(f *text.Font) CoatingOption {
	return func(o *coatingOptions) {
		o.font = f
	}
}
