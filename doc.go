// Package scratch implements a scratch-to-reveal card.
//
// # Overview
//
// A card is an opaque coating painted onto a pixel surface that the user
// erases with a circular brush. Once enough of the coating is gone the card
// counts as revealed and a callback fires exactly once. The package is
// headless: hosts draw the surface over their own content and forward
// pointer or touch events.
//
// # Quick Start
//
//	import "github.com/gogpu/scratch"
//
//	card, err := scratch.NewCard(320, 440, scratch.DefaultCoatingConfig(),
//		scratch.WithBrushRadius(40),
//		scratch.WithThreshold(50),
//		scratch.WithOnReveal(func(r scratch.Reveal) {
//			fmt.Printf("revealed at %.1f%%\n", r.Percent)
//		}))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	bounds := scratch.Rect{W: 320, H: 440}
//	card.Begin(scratch.Input{X: 40, Y: 60, Bounds: bounds})
//	card.Move(scratch.Input{X: 280, Y: 60, Bounds: bounds})
//	card.End()
//
// # Coordinate System
//
// Events carry client coordinates together with the rectangle the surface
// is displayed in. They are mapped to native surface pixels with
//
//	x' = (x - bounds.X) * width / bounds.W
//
// and likewise for y. Brush radius is in native pixels. Disks that extend
// past the surface edge are clipped.
//
// # States
//
// A tracker starts Covered, moves to Revealing after the first erasure and
// ends in Revealed once the erased share reaches the threshold or
// ForceReveal is called. Revealed is terminal; start a new session with
// Card.Reset to scratch again.
//
// # Logging
//
// The package is silent by default. Call SetLogger to route its slog
// records to a handler.
package scratch

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
