package text

import (
	"math"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/text/unicode/bidi"
)

// Direction is the dominant writing direction of a string.
type Direction int

const (
	// LeftToRight is used for Latin, Cyrillic, CJK and most other scripts.
	LeftToRight Direction = iota
	// RightToLeft is used for Hebrew, Arabic and related scripts.
	RightToLeft
)

// String returns the direction name.
func (d Direction) String() string {
	if d == RightToLeft {
		return "rtl"
	}
	return "ltr"
}

// DetectDirection returns the direction of the first strong character in s,
// defaulting to LeftToRight.
func DetectDirection(s string) Direction {
	for _, r := range s {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.L:
			return LeftToRight
		case bidi.R, bidi.AL:
			return RightToLeft
		}
	}
	return LeftToRight
}

// Glyph is a positioned glyph in a shaped line. X is the pen position of the
// glyph origin relative to the line start; Y is the offset from the baseline.
type Glyph struct {
	ID      uint16
	X, Y    float64
	Advance float64
}

// Line is the result of shaping a string at a size.
type Line struct {
	Glyphs    []Glyph
	Width     float64
	Direction Direction
}

// Shape lays out s on a single line at size pixels per em.
// Glyphs are returned in visual (left to right) order.
func (f *Font) Shape(s string, size float64) Line {
	runes := []rune(s)
	dir := DetectDirection(s)
	if len(runes) == 0 || !(size > 0) {
		return Line{Direction: dir}
	}

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: mapDirection(dir),
		Face:      font.NewFace(f.shaper),
		Size:      floatToFixed(size),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	var hb shaping.HarfbuzzShaper
	out := hb.Shape(input)

	line := Line{Glyphs: make([]Glyph, len(out.Glyphs)), Direction: dir}
	var x float64
	for i, g := range out.Glyphs {
		adv := math.Abs(fixedToFloat(g.Advance))
		line.Glyphs[i] = Glyph{
			ID:      uint16(g.GlyphID), //nolint:gosec // sfnt glyph indices are 16-bit
			X:       x + fixedToFloat(g.XOffset),
			Y:       -fixedToFloat(g.YOffset),
			Advance: adv,
		}
		x += adv
	}
	line.Width = x
	return line
}

// Measure returns the advance width of s at size pixels per em.
func (f *Font) Measure(s string, size float64) float64 {
	return f.Shape(s, size).Width
}

// mapDirection converts a Direction to go-text's di.Direction.
func mapDirection(d Direction) di.Direction {
	if d == RightToLeft {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
