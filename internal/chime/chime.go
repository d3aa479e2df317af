// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package chime plays the short tone that announces a revealed card.
package chime

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Note lengths of the two-note tone.
const (
	firstNote  = 90 * time.Millisecond
	secondNote = 160 * time.Millisecond
)

// Player plays the reveal sound. A nil Player is not valid; use Silent.
type Player interface {
	Play()
}

// Silent is a Player that does nothing.
type Silent struct{}

// Play does nothing.
func (Silent) Play() {}

// Chime plays through the system speaker. Until Init succeeds Play is a
// no-op, so a host can run without audio.
type Chime struct {
	mu          sync.Mutex
	volume      float64
	initialized bool
}

// New returns a chime at the given volume in [0, 1].
func New(volume float64) *Chime {
	return &Chime{volume: volume}
}

// Init opens the speaker.
func (c *Chime) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("chime: init speaker: %w", err)
	}
	c.initialized = true
	return nil
}

// Play starts the tone without waiting for it to finish.
func (c *Chime) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	s, err := Tone(sampleRate, c.volume)
	if err != nil {
		return
	}
	speaker.Play(s)
}

// Close releases the speaker.
func (c *Chime) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Close()
	c.initialized = false
}

// Tone builds the reveal sound: A5 followed by E6 at volume in [0, 1].
func Tone(rate beep.SampleRate, volume float64) (beep.Streamer, error) {
	a5, err := generators.SineTone(rate, 880)
	if err != nil {
		return nil, fmt.Errorf("chime: %w", err)
	}
	e6, err := generators.SineTone(rate, 1318.51)
	if err != nil {
		return nil, fmt.Errorf("chime: %w", err)
	}
	seq := beep.Seq(
		beep.Take(rate.N(firstNote), a5),
		beep.Take(rate.N(secondNote), e6),
	)
	if volume <= 0 {
		return &effects.Volume{Streamer: seq, Base: 2, Silent: true}, nil
	}
	return &effects.Volume{Streamer: seq, Base: 2, Volume: math.Log2(math.Min(volume, 1))}, nil
}
