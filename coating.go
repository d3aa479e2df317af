package scratch

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/gogpu/scratch/text"
)

// MotifKind selects the shape of a decorative motif.
type MotifKind int

const (
	// MotifDot is a filled circle.
	MotifDot MotifKind = iota
	// MotifRing is a stroked circle.
	MotifRing
	// MotifDiamond is a square rotated by 45 degrees.
	MotifDiamond
	// MotifTile is a rounded rectangle, wider than tall.
	MotifTile
	// MotifSparkle is a four-pointed cross.
	MotifSparkle
)

var motifNames = [...]string{"dot", "ring", "diamond", "tile", "sparkle"}

// String returns the motif name.
func (k MotifKind) String() string {
	if k < 0 || int(k) >= len(motifNames) {
		return "unknown"
	}
	return motifNames[k]
}

// ParseMotifKind parses a motif name as returned by MotifKind.String.
func ParseMotifKind(s string) (MotifKind, error) {
	for i, name := range motifNames {
		if strings.EqualFold(s, name) {
			return MotifKind(i), nil
		}
	}
	return 0, fmt.Errorf("scratch: unknown motif %q", s)
}

// Motif is a decorative glyph on the coating. Position and size are
// fractions of the surface so the design scales with the surface.
type Motif struct {
	Kind MotifKind
	// X and Y locate the motif centre as fractions of width and height.
	X, Y float64
	// Size is the motif radius as a fraction of min(width, height).
	Size  float64
	Color RGBA
}

// CoatingConfig describes how a coating is painted.
type CoatingConfig struct {
	// Base fills the whole surface. Use an opaque color unless the tracker
	// is given a matching WithAlphaCutoff.
	Base   RGBA
	Motifs []Motif
	// Caption is drawn centred near the bottom edge. Empty means no caption.
	Caption      string
	CaptionColor RGBA
	// CaptionSize is the font size as a fraction of the surface height.
	CaptionSize float64
}

// DefaultCoatingConfig returns the stock silver coating.
func DefaultCoatingConfig() CoatingConfig {
	light := RGBA{R: 0.9, G: 0.9, B: 0.92, A: 0.9}
	dark := RGBA{R: 0.6, G: 0.6, B: 0.62, A: 0.8}
	return CoatingConfig{
		Base: Silver,
		Motifs: []Motif{
			{Kind: MotifSparkle, X: 0.18, Y: 0.16, Size: 0.07, Color: light},
			{Kind: MotifSparkle, X: 0.82, Y: 0.28, Size: 0.05, Color: light},
			{Kind: MotifDiamond, X: 0.5, Y: 0.42, Size: 0.12, Color: dark},
			{Kind: MotifRing, X: 0.5, Y: 0.42, Size: 0.2, Color: light},
			{Kind: MotifDot, X: 0.22, Y: 0.66, Size: 0.03, Color: dark},
			{Kind: MotifDot, X: 0.78, Y: 0.7, Size: 0.03, Color: dark},
			{Kind: MotifSparkle, X: 0.3, Y: 0.8, Size: 0.04, Color: light},
			{Kind: MotifTile, X: 0.72, Y: 0.86, Size: 0.05, Color: dark},
		},
		Caption:      "Scratch to reveal",
		CaptionColor: RGB(0.35, 0.35, 0.38),
		CaptionSize:  0.055,
	}
}

// Coating paints a CoatingConfig onto surfaces. It is the only writer of
// the coating; the tracker only erases it.
type Coating struct {
	cfg  CoatingConfig
	font *text.Font
}

// NewCoating creates a coating renderer. The caption font is resolved here
// so that Initialize cannot fail.
func NewCoating(cfg CoatingConfig, opts ...CoatingOption) (*Coating, error) {
	var o coatingOptions
	for _, opt := range opts {
		opt(&o)
	}

	cfg.Motifs = append([]Motif(nil), cfg.Motifs...)
	if cfg.Caption != "" && o.font == nil {
		f, err := text.Default()
		if err != nil {
			return nil, fmt.Errorf("scratch: load caption font: %w", err)
		}
		o.font = f
	}
	return &Coating{cfg: cfg, font: o.font}, nil
}

// Config returns a copy of the coating configuration.
func (c *Coating) Config() CoatingConfig {
	cfg := c.cfg
	cfg.Motifs = append([]Motif(nil), c.cfg.Motifs...)
	return cfg
}

// Initialize fully repaints s: base fill, motifs, then the caption.
// Calling it again overwrites any erasure. s must be non-nil.
func (c *Coating) Initialize(s *Surface) {
	if s == nil {
		panic("scratch: Initialize called with nil surface")
	}
	s.Clear(c.cfg.Base)
	for _, m := range c.cfg.Motifs {
		drawMotif(s, m)
	}
	c.drawCaption(s)
}

// drawMotif blends one motif over s using SDF coverage.
func drawMotif(s *Surface, m Motif) {
	w, h := float64(s.Width()), float64(s.Height())
	size := m.Size * math.Min(w, h)
	if !(size > 0) {
		return
	}
	cx, cy := m.X*w, m.Y*h

	var coverage func(px, py float64) float64
	switch m.Kind {
	case MotifDot:
		coverage = func(px, py float64) float64 { return circleCoverage(px, py, cx, cy, size) }
	case MotifRing:
		half := math.Max(1, size*0.08)
		coverage = func(px, py float64) float64 { return ringCoverage(px, py, cx, cy, size, half) }
	case MotifDiamond:
		coverage = func(px, py float64) float64 { return diamondCoverage(px, py, cx, cy, size) }
	case MotifTile:
		coverage = func(px, py float64) float64 {
			return rrectCoverage(px, py, cx, cy, size, size*0.6, size*0.25)
		}
	case MotifSparkle:
		arm := math.Max(0.75, size*0.15)
		coverage = func(px, py float64) float64 {
			return math.Max(
				rrectCoverage(px, py, cx, cy, size, arm, arm),
				rrectCoverage(px, py, cx, cy, arm, size, arm),
			)
		}
	default:
		return
	}

	reach := size + 2
	x0 := clampIndex(math.Floor(cx-reach), s.Width())
	x1 := clampIndex(math.Ceil(cx+reach), s.Width())
	y0 := clampIndex(math.Floor(cy-reach), s.Height())
	y1 := clampIndex(math.Ceil(cy+reach), s.Height())
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			s.BlendPixel(x, y, m.Color, coverage(float64(x)+0.5, float64(y)+0.5))
		}
	}
}

// drawCaption draws the caption centred horizontally near the bottom edge,
// shrinking it to fit 90% of the width.
func (c *Coating) drawCaption(s *Surface) {
	if c.cfg.Caption == "" || c.font == nil {
		return
	}
	w, h := float64(s.Width()), float64(s.Height())
	size := c.cfg.CaptionSize * h
	if !(size >= 1) {
		return
	}
	if adv := c.font.Measure(c.cfg.Caption, size); adv > 0.9*w {
		size *= 0.9 * w / adv
	}
	adv := c.font.Measure(c.cfg.Caption, size)
	m := c.font.Metrics(size)

	x := (w - adv) / 2
	y := h - math.Max(m.Descent+1, h*0.06)
	if err := c.font.Draw(s, c.cfg.Caption, x, y, size, c.cfg.CaptionColor); err != nil {
		Logger().Warn("scratch: caption not drawn", slog.String("caption", c.cfg.Caption), slog.Any("error", err))
	}
}
