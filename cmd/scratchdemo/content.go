package main

import (
	"image"
	"image/draw"

	"github.com/gogpu/scratch"
	"github.com/gogpu/scratch/text"
)

// prizeImage paints the content hidden under the coating: a vertical
// gradient with label centred on it.
func prizeImage(w, h int, label string) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	drawGradientBackground(img, w, h)

	if label == "" {
		return img, nil
	}
	f, err := text.Default()
	if err != nil {
		return nil, err
	}
	size := float64(h) * 0.12
	if adv := f.Measure(label, size); adv > float64(w)*0.9 {
		size *= float64(w) * 0.9 / adv
	}
	m := f.Metrics(size)
	x := (float64(w) - f.Measure(label, size)) / 2
	y := (float64(h) + m.Ascent - m.Descent) / 2
	if err := f.Draw(img, label, x, y, size, scratch.White); err != nil {
		return nil, err
	}
	return img, nil
}

func drawGradientBackground(dst draw.Image, w, h int) {
	top := scratch.RGB(0.95, 0.55, 0.15)
	bottom := scratch.RGB(0.75, 0.15, 0.35)
	steps := max(1, h)
	for i := 0; i < steps; i++ {
		c := top.Lerp(bottom, float64(i)/float64(steps))
		row := image.Rect(0, i*h/steps, w, (i+1)*h/steps)
		draw.Draw(dst, row, image.NewUniform(c), image.Point{}, draw.Src)
	}
}
