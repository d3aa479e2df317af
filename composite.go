package scratch

import (
	"image"

	"golang.org/x/image/draw"
)

// Composite draws the card as the host displays it: content scaled to fill
// dst, then the coating scaled over it. Erased coating pixels let the
// content show through. A nil content leaves the area transparent; a nil
// coating draws the content alone, which is what a revealed card shows.
func Composite(dst draw.Image, content image.Image, coating *Surface) {
	r := dst.Bounds()
	if content != nil {
		scaleInto(dst, r, content, draw.Src)
	} else {
		draw.Draw(dst, r, image.Transparent, image.Point{}, draw.Src)
	}
	if coating != nil {
		scaleInto(dst, r, coating, draw.Over)
	}
}

// scaleInto draws src onto dst's rectangle r, scaling bilinearly when the
// sizes differ.
func scaleInto(dst draw.Image, r image.Rectangle, src image.Image, op draw.Op) {
	sr := src.Bounds()
	if sr.Size() == r.Size() {
		draw.Draw(dst, r, src, sr.Min, op)
		return
	}
	draw.BiLinear.Scale(dst, r, src, sr, op, nil)
}
