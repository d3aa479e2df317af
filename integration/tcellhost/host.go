// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package tcellhost runs a scratch card in a terminal.
//
// The card is drawn with half-block characters, so each terminal cell shows
// two vertically stacked pixels. Dragging with the left mouse button
// scratches. Keys: r starts a new session, s reveals without scratching,
// q or Esc quits.
package tcellhost

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/scratch"
	"github.com/gogpu/scratch/internal/chime"
)

// statusRows is the number of rows below the card used for the progress
// and help lines.
const statusRows = 2

// Host connects a card to a terminal screen. It does not own the screen:
// the caller initializes it and calls Fini afterwards.
type Host struct {
	screen  tcell.Screen
	card    *scratch.Card
	content image.Image
	chime   chime.Player

	// Card placement. x0 and y0 are in cells; w and h are in half-block
	// pixels, so the card spans w columns and h/2 rows.
	x0, y0, w, h int

	dragging bool
	chimed   int
}

// Option configures a Host.
type Option func(*Host)

// WithChime sets the sound played once per session when the card is
// revealed.
func WithChime(p chime.Player) Option {
	return func(h *Host) {
		h.chime = p
	}
}

// New creates a host showing card over content.
func New(screen tcell.Screen, card *scratch.Card, content image.Image, opts ...Option) *Host {
	h := &Host{
		screen:  screen,
		card:    card,
		content: content,
		chime:   chime.Silent{},
	}
	for _, opt := range opts {
		opt(h)
	}
	h.layout()
	return h
}

// Bounds returns where the card is displayed in half-block pixel space,
// the space mouse positions are mapped into.
func (h *Host) Bounds() scratch.Rect {
	return scratch.Rect{X: float64(h.x0), Y: float64(h.y0 * 2), W: float64(h.w), H: float64(h.h)}
}

// layout fits the card into the screen above the status rows, keeping the
// card's aspect ratio.
func (h *Host) layout() {
	cols, rows := h.screen.Size()
	rows -= statusRows
	if cols < 1 || rows < 1 {
		h.x0, h.y0, h.w, h.h = 0, 0, 1, 2
		return
	}
	s := h.card.Surface()
	nw, nh := float64(s.Width()), float64(s.Height())
	scale := min(float64(cols)/nw, float64(rows*2)/nh)

	h.w = max(1, int(nw*scale))
	h.h = max(2, int(nh*scale)&^1)
	h.x0 = (cols - h.w) / 2
	h.y0 = (rows - h.h/2) / 2

	scratch.Logger().Debug("tcellhost: layout",
		slog.Int("cols", cols), slog.Int("rows", rows),
		slog.Int("w", h.w), slog.Int("h", h.h))
}

// input converts a cell position to a card input at the cell's centre.
func (h *Host) input(cx, cy int) scratch.Input {
	return scratch.Input{
		X:      float64(cx) + 0.5,
		Y:      float64(cy*2) + 1,
		Bounds: h.Bounds(),
		Source: scratch.SourceMouse,
	}
}

// HandleEvent applies one terminal event and reports whether the host
// should quit.
func (h *Host) HandleEvent(ev tcell.Event) (quit bool) {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		x, y := ev.Position()
		switch {
		case ev.Buttons()&tcell.Button1 != 0 && !h.dragging:
			h.dragging = true
			h.card.Begin(h.input(x, y))
		case ev.Buttons()&tcell.Button1 != 0:
			h.card.Move(h.input(x, y))
		case h.dragging:
			h.dragging = false
			h.card.End()
		}

	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return true
		case ev.Key() != tcell.KeyRune:
		case ev.Rune() == 'q':
			return true
		case ev.Rune() == 'r':
			h.dragging = false
			if err := h.card.Reset(); err != nil {
				scratch.Logger().Error("tcellhost: reset failed", slog.String("err", err.Error()))
			}
		case ev.Rune() == 's':
			h.card.ForceReveal()
		}

	case *tcell.EventResize:
		h.screen.Sync()
		h.layout()
	}

	if h.card.IsRevealed() && h.chimed != h.card.Session() {
		h.chimed = h.card.Session()
		h.chime.Play()
	}
	return false
}

// Draw renders the card and the status lines and shows the screen.
func (h *Host) Draw() {
	h.screen.Clear()

	img := h.card.Render(h.content, h.w, h.h)
	for row := 0; row < h.h/2; row++ {
		for col := 0; col < h.w; col++ {
			style := tcell.StyleDefault.
				Foreground(cellColor(img.RGBAAt(col, row*2))).
				Background(cellColor(img.RGBAAt(col, row*2+1)))
			h.screen.SetContent(h.x0+col, h.y0+row, '▀', nil, style)
		}
	}

	_, rows := h.screen.Size()
	h.drawText(0, rows-2, h.status())
	h.drawText(0, rows-1, "drag to scratch   r reset   s skip   q quit")
	h.screen.Show()
}

func (h *Host) status() string {
	if h.card.IsRevealed() {
		return fmt.Sprintf("revealed! session %d", h.card.Session())
	}
	return fmt.Sprintf("%5.1f%% scratched   session %d", h.card.Progress(), h.card.Session())
}

func (h *Host) drawText(x, y int, s string) {
	for _, r := range s {
		h.screen.SetContent(x, y, r, nil, tcell.StyleDefault)
		x++
	}
}

func cellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Run draws the card and processes events until the user quits, the
// screen is finalized or ctx is done.
func (h *Host) Run(ctx context.Context) error {
	h.screen.EnableMouse()
	defer h.screen.DisableMouse()

	done := make(chan struct{})
	defer close(done)

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	h.Draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if h.HandleEvent(ev) {
				return nil
			}
			h.Draw()
		}
	}
}
