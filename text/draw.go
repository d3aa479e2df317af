package text

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/vector"
)

// Draw renders s onto dst with the left end of its baseline at (x, y).
// Pixels outside dst are clipped.
func (f *Font) Draw(dst draw.Image, s string, x, y, size float64, c color.Color) error {
	if !(size > 0) {
		return ErrInvalidSize
	}
	line := f.Shape(s, size)
	if len(line.Glyphs) == 0 {
		return nil
	}

	// Rasterize into a box covering the line, then composite that box.
	m := f.Metrics(size)
	pad := math.Ceil(size / 4)
	x0 := int(math.Floor(x - pad))
	y0 := int(math.Floor(y - m.Ascent - pad))
	x1 := int(math.Ceil(x + line.Width + pad))
	y1 := int(math.Ceil(y + m.Descent + pad))
	box := image.Rect(x0, y0, x1, y1)
	clip := box.Intersect(dst.Bounds())
	if clip.Empty() {
		return nil
	}

	z := vector.NewRasterizer(box.Dx(), box.Dy())
	z.DrawOp = draw.Over

	var buf sfnt.Buffer
	ppem := floatToFixed(size)
	for _, g := range line.Glyphs {
		segments, err := f.sfnt.LoadGlyph(&buf, sfnt.GlyphIndex(g.ID), ppem, nil)
		if err != nil {
			return fmt.Errorf("text: failed to load glyph %d: %w", g.ID, err)
		}
		ox := float32(x + g.X - float64(x0))
		oy := float32(y + g.Y - float64(y0))
		for _, seg := range segments {
			p := seg.Args
			switch seg.Op {
			case sfnt.SegmentOpMoveTo:
				z.MoveTo(ox+toF32(p[0].X), oy+toF32(p[0].Y))
			case sfnt.SegmentOpLineTo:
				z.LineTo(ox+toF32(p[0].X), oy+toF32(p[0].Y))
			case sfnt.SegmentOpQuadTo:
				z.QuadTo(ox+toF32(p[0].X), oy+toF32(p[0].Y), ox+toF32(p[1].X), oy+toF32(p[1].Y))
			case sfnt.SegmentOpCubeTo:
				z.CubeTo(ox+toF32(p[0].X), oy+toF32(p[0].Y),
					ox+toF32(p[1].X), oy+toF32(p[1].Y),
					ox+toF32(p[2].X), oy+toF32(p[2].Y))
			}
		}
		z.ClosePath()
	}

	mask := image.NewAlpha(image.Rect(0, 0, box.Dx(), box.Dy()))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	draw.DrawMask(dst, clip, image.NewUniform(c), image.Point{}, mask, clip.Min.Sub(box.Min), draw.Over)
	return nil
}

func toF32[T ~int32](v T) float32 {
	return float32(v) / 64
}
