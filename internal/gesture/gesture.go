// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gesture replays scripted scratch gestures against a card.
//
// A script is a YAML document:
//
//	bounds: {x: 0, y: 0, w: 320, h: 440}
//	step: 6
//	strokes:
//	  - source: mouse
//	    points: [{x: 40, y: 60}, {x: 280, y: 60}]
//
// Points are client coordinates inside bounds. Each stroke is one
// press-drag-release; segments between points are sampled every step
// client units so that fast strokes still erase a continuous band.
package gesture

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/scratch"
)

// DefaultStep is the sample spacing used when a script does not set one.
const DefaultStep = 4.0

// ErrEmptyStroke is returned for a stroke without points.
var ErrEmptyStroke = errors.New("gesture: stroke has no points")

// Script is a parsed gesture script.
type Script struct {
	// Bounds is where the card is displayed. A nil Bounds means the card's
	// native size at the origin.
	Bounds  *Rect    `yaml:"bounds"`
	Step    float64  `yaml:"step"`
	Strokes []Stroke `yaml:"strokes"`
}

// Rect is the YAML form of scratch.Rect.
type Rect struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// Stroke is one continuous gesture.
type Stroke struct {
	Source string  `yaml:"source"`
	Points []Point `yaml:"points"`
}

// Point is a client-space sample.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Result records the card state after a stroke.
type Result struct {
	Stroke   int
	Samples  int
	Percent  float64
	State    scratch.State
	Revealed bool
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gesture: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("gesture: parse: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the step, bounds and strokes.
func (s *Script) Validate() error {
	if s.Step < 0 || math.IsNaN(s.Step) {
		return fmt.Errorf("gesture: step must not be negative, got %v", s.Step)
	}
	if s.Bounds != nil && (s.Bounds.W <= 0 || s.Bounds.H <= 0) {
		return fmt.Errorf("gesture: bounds must have positive size, got %vx%v", s.Bounds.W, s.Bounds.H)
	}
	for i, st := range s.Strokes {
		if len(st.Points) == 0 {
			return fmt.Errorf("gesture: stroke %d: %w", i, ErrEmptyStroke)
		}
		if _, err := parseSource(st.Source); err != nil {
			return fmt.Errorf("gesture: stroke %d: %w", i, err)
		}
	}
	return nil
}

// Replay plays every stroke against card and returns one Result per
// stroke. onStroke, if non-nil, is called after each stroke.
func (s *Script) Replay(card *scratch.Card, onStroke func(Result)) []Result {
	bounds := scratch.Rect{W: float64(card.Surface().Width()), H: float64(card.Surface().Height())}
	if s.Bounds != nil {
		bounds = scratch.Rect{X: s.Bounds.X, Y: s.Bounds.Y, W: s.Bounds.W, H: s.Bounds.H}
	}
	results := make([]Result, 0, len(s.Strokes))
	for i, st := range s.Strokes {
		src, _ := parseSource(st.Source)
		samples := Samples(st.Points, s.Step)
		for j, p := range samples {
			in := scratch.Input{X: p.X, Y: p.Y, Bounds: bounds, Source: src}
			if j == 0 {
				card.Begin(in)
			} else {
				card.Move(in)
			}
		}
		card.End()

		r := Result{
			Stroke:   i,
			Samples:  len(samples),
			Percent:  card.Progress(),
			State:    card.Tracker().State(),
			Revealed: card.IsRevealed(),
		}
		results = append(results, r)
		if onStroke != nil {
			onStroke(r)
		}
	}
	return results
}

// Samples expands a polyline into points no more than step apart. The
// first and last points are always included. A non-positive step means
// DefaultStep.
func Samples(points []Point, step float64) []Point {
	if len(points) == 0 {
		return nil
	}
	if step <= 0 || math.IsNaN(step) {
		step = DefaultStep
	}
	out := []Point{points[0]}
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		dist := math.Hypot(b.X-a.X, b.Y-a.Y)
		n := int(math.Ceil(dist / step))
		for k := 1; k <= n; k++ {
			t := float64(k) / float64(n)
			out = append(out, Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t})
		}
	}
	return out
}

func parseSource(s string) (scratch.Source, error) {
	if s == "" {
		return scratch.SourceMouse, nil
	}
	for _, src := range []scratch.Source{scratch.SourceMouse, scratch.SourceTouch, scratch.SourcePen} {
		if src.String() == s {
			return src, nil
		}
	}
	return 0, fmt.Errorf("unknown source %q", s)
}
