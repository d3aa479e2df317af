package scratch

import (
	"image"
	"log/slog"
)

// Card is a complete scratch card: one surface, the coating painted on it
// and the tracker for the current session. Hosts forward input events to
// Begin, Move and End and poll Progress and IsRevealed when redrawing.
type Card struct {
	surface *Surface
	coating *Coating
	tracker *Tracker
	opts    []TrackerOption
	session int
}

// NewCard creates a width×height card, paints the coating and starts the
// first session. opts configure every session's tracker.
func NewCard(width, height int, cfg CoatingConfig, opts ...TrackerOption) (*Card, error) {
	s, err := NewSurface(width, height)
	if err != nil {
		return nil, err
	}
	coating, err := NewCoating(cfg)
	if err != nil {
		return nil, err
	}
	c := &Card{surface: s, coating: coating, opts: opts}
	if err := c.Reset(); err != nil {
		return nil, err
	}
	return c, nil
}

// Reset repaints the coating and starts a new session. The new session's
// reveal callback may fire again.
func (c *Card) Reset() error {
	c.coating.Initialize(c.surface)
	t, err := NewTracker(c.surface, c.opts...)
	if err != nil {
		return err
	}
	c.tracker = t
	c.session++
	Logger().Info("scratch: session started",
		slog.Int("session", c.session),
		slog.Int("width", c.surface.Width()),
		slog.Int("height", c.surface.Height()))
	return nil
}

// Begin forwards a pointer or touch down event.
func (c *Card) Begin(in Input) { c.tracker.BeginGesture(in) }

// Move forwards a pointer or touch move event.
func (c *Card) Move(in Input) { c.tracker.ContinueGesture(in) }

// End forwards a pointer or touch up event.
func (c *Card) End() { c.tracker.EndGesture() }

// ForceReveal reveals the card without scratching.
func (c *Card) ForceReveal() { c.tracker.ForceReveal() }

// Progress returns the erased percentage of the current session.
func (c *Card) Progress() float64 { return c.tracker.ErasedPercent() }

// IsRevealed reports whether the current session is revealed.
func (c *Card) IsRevealed() bool { return c.tracker.IsRevealed() }

// Session returns the 1-based session number.
func (c *Card) Session() int { return c.session }

// Surface returns the coating surface.
func (c *Card) Surface() *Surface { return c.surface }

// Tracker returns the current session's tracker.
func (c *Card) Tracker() *Tracker { return c.tracker }

// Render composites content and the coating at the displayed size w×h.
// Once revealed, the coating is hidden and only content is drawn.
func (c *Card) Render(content image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if c.tracker.IsRevealed() {
		Composite(dst, content, nil)
	} else {
		Composite(dst, content, c.surface)
	}
	return dst
}
