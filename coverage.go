package scratch

import "math"

// Point is a 2D point. Depending on context it is in client (display) space
// or in surface-native pixel space.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned box in client space: where, and how large, the
// host currently displays the surface.
type Rect struct {
	X, Y, W, H float64
}

// Source identifies the kind of device that produced an input sample.
type Source int

const (
	// SourceMouse is a mouse or trackpad pointer.
	SourceMouse Source = iota
	// SourceTouch is a finger on a touch screen.
	SourceTouch
	// SourcePen is a stylus.
	SourcePen
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case SourceMouse:
		return "mouse"
	case SourceTouch:
		return "touch"
	case SourcePen:
		return "pen"
	default:
		return "unknown"
	}
}

// Input is a raw input sample: client-space coordinates together with the
// surface's on-screen bounding box at the time of the event.
type Input struct {
	X, Y   float64
	Bounds Rect
	Source Source
}

// TouchInput builds an Input from the active touch points of a touch event.
// Only the first touch scratches; ok is false when there are no touches.
func TouchInput(touches []Point, bounds Rect) (in Input, ok bool) {
	if len(touches) == 0 {
		return Input{}, false
	}
	return Input{X: touches[0].X, Y: touches[0].Y, Bounds: bounds, Source: SourceTouch}, true
}

// MapToSurface converts client coordinates to surface-native pixel
// coordinates. The offset from the bounding box origin is scaled by
// native/displayed size independently on each axis, so erasure follows the
// cursor when the surface is displayed larger or smaller than its buffer.
// A degenerate displayed size on an axis is treated as unscaled.
func MapToSurface(x, y float64, bounds Rect, nativeW, nativeH int) Point {
	sx, sy := 1.0, 1.0
	if bounds.W > 0 && !math.IsInf(bounds.W, 0) {
		sx = float64(nativeW) / bounds.W
	}
	if bounds.H > 0 && !math.IsInf(bounds.H, 0) {
		sy = float64(nativeH) / bounds.H
	}
	return Point{
		X: (x - bounds.X) * sx,
		Y: (y - bounds.Y) * sy,
	}
}

// Coverage returns the percentage of r's pixels whose alpha is at most
// cutoff. A cutoff of 0 counts only fully transparent pixels.
// The whole raster is scanned on every call.
func Coverage(r Raster, cutoff uint8) float64 {
	w, h := r.Width(), r.Height()
	total := w * h
	if total <= 0 {
		return 0
	}

	var n int
	if c, ok := r.(transparentCounter); ok {
		n = c.CountTransparent(cutoff)
	} else {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if r.Alpha(x, y) <= cutoff {
					n++
				}
			}
		}
	}
	return 100 * float64(n) / float64(total)
}

// eraseDisk clears the pixels of r whose centres lie within radius of c.
func eraseDisk(r Raster, c Point, radius float64) {
	if e, ok := r.(diskEraser); ok {
		e.EraseDisk(c.X, c.Y, radius)
		return
	}
	if !isFinite(c.X) || !isFinite(c.Y) {
		return
	}

	w, h := r.Width(), r.Height()
	y0 := clampIndex(math.Floor(c.Y-radius), h)
	y1 := clampIndex(math.Ceil(c.Y+radius), h)
	x0 := clampIndex(math.Floor(c.X-radius), w)
	x1 := clampIndex(math.Ceil(c.X+radius), w)
	r2 := radius * radius
	for y := y0; y <= y1; y++ {
		dy := float64(y) + 0.5 - c.Y
		for x := x0; x <= x1; x++ {
			dx := float64(x) + 0.5 - c.X
			if dx*dx+dy*dy <= r2 {
				r.ClearPixel(x, y)
			}
		}
	}
}
