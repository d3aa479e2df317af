package scratch

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
)

// Surface is a fixed-size raster buffer holding the coating.
// Pixels are stored as non-premultiplied RGBA, 4 bytes per pixel, row-major.
// The dimensions never change after creation.
type Surface struct {
	width  int
	height int
	data   []uint8
}

// Raster is the pixel access a Tracker needs from its surface.
//
// Implementations may also provide EraseDisk(cx, cy, r float64) and
// CountTransparent(cutoff uint8) int; the Tracker uses them when present
// instead of going pixel by pixel.
type Raster interface {
	Width() int
	Height() int
	Alpha(x, y int) uint8
	ClearPixel(x, y int)
}

// diskEraser is implemented by rasters with a bulk disk erase.
type diskEraser interface {
	EraseDisk(cx, cy, r float64)
}

// transparentCounter is implemented by rasters that can count erased
// pixels without per-pixel interface calls.
type transparentCounter interface {
	CountTransparent(cutoff uint8) int
}

var (
	_ Raster             = (*Surface)(nil)
	_ diskEraser         = (*Surface)(nil)
	_ transparentCounter = (*Surface)(nil)
)

// NewSurface creates a fully transparent surface with the given dimensions.
func NewSurface(width, height int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, &ConfigError{Field: "size", Value: image.Pt(width, height), Err: ErrInvalidDimensions}
	}
	return &Surface{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}, nil
}

// Width returns the width of the surface in pixels.
func (s *Surface) Width() int {
	return s.width
}

// Height returns the height of the surface in pixels.
func (s *Surface) Height() int {
	return s.height
}

// Data returns the raw pixel data (non-premultiplied RGBA).
func (s *Surface) Data() []uint8 {
	return s.data
}

// SetPixel sets the color of a single pixel.
// Coordinates outside the surface are ignored.
func (s *Surface) SetPixel(x, y int, c RGBA) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	n := c.NRGBA()
	i := (y*s.width + x) * 4
	s.data[i+0] = n.R
	s.data[i+1] = n.G
	s.data[i+2] = n.B
	s.data[i+3] = n.A
}

// Pixel returns the color of a single pixel.
// Coordinates outside the surface read as Transparent.
func (s *Surface) Pixel(x, y int) RGBA {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return Transparent
	}
	i := (y*s.width + x) * 4
	return RGBA{
		R: float64(s.data[i+0]) / 255,
		G: float64(s.data[i+1]) / 255,
		B: float64(s.data[i+2]) / 255,
		A: float64(s.data[i+3]) / 255,
	}
}

// Alpha returns the alpha byte of a pixel, 0 outside the surface.
func (s *Surface) Alpha(x, y int) uint8 {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return 0
	}
	return s.data[(y*s.width+x)*4+3]
}

// ClearPixel makes a single pixel fully transparent.
// Coordinates outside the surface are ignored.
func (s *Surface) ClearPixel(x, y int) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	i := (y*s.width + x) * 4
	s.data[i+0] = 0
	s.data[i+1] = 0
	s.data[i+2] = 0
	s.data[i+3] = 0
}

// BlendPixel composites c over the pixel with the given coverage in [0, 1].
// An opaque destination stays opaque.
func (s *Surface) BlendPixel(x, y int, c RGBA, coverage float64) {
	if coverage <= 0 || x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	if coverage > 1 {
		coverage = 1
	}
	sa := c.A * coverage
	if sa == 0 {
		return
	}
	d := s.Pixel(x, y)
	outA := sa + d.A*(1-sa)
	if outA == 0 {
		s.ClearPixel(x, y)
		return
	}
	s.SetPixel(x, y, RGBA{
		R: (c.R*sa + d.R*d.A*(1-sa)) / outA,
		G: (c.G*sa + d.G*d.A*(1-sa)) / outA,
		B: (c.B*sa + d.B*d.A*(1-sa)) / outA,
		A: outA,
	})
}

// Clear fills the entire surface with a color.
func (s *Surface) Clear(c RGBA) {
	n := c.NRGBA()
	for i := 0; i < len(s.data); i += 4 {
		s.data[i+0] = n.R
		s.data[i+1] = n.G
		s.data[i+2] = n.B
		s.data[i+3] = n.A
	}
}

// EraseDisk clears every pixel whose centre lies within r of (cx, cy).
// The disk is clipped to the pixel grid, so centres off the surface are fine.
func (s *Surface) EraseDisk(cx, cy, r float64) {
	if !(r > 0) || !isFinite(cx) || !isFinite(cy) {
		return
	}
	y0 := clampIndex(math.Floor(cy-r), s.height)
	y1 := clampIndex(math.Ceil(cy+r), s.height)
	r2 := r * r
	for y := y0; y <= y1; y++ {
		dy := float64(y) + 0.5 - cy
		rem := r2 - dy*dy
		if rem < 0 {
			continue
		}
		// Span of pixel centres inside the disk on this row.
		half := math.Sqrt(rem)
		lo, hi := cx-half-0.5, cx+half-0.5
		if hi < 0 || lo > float64(s.width-1) {
			continue
		}
		x0 := clampIndex(math.Ceil(lo), s.width)
		x1 := clampIndex(math.Floor(hi), s.width)
		if x0 > x1 {
			continue
		}
		row := y * s.width * 4
		clear(s.data[row+x0*4 : row+(x1+1)*4])
	}
}

// clampIndex converts v to an index in [0, n-1].
func clampIndex(v float64, n int) int {
	if v <= 0 {
		return 0
	}
	if v >= float64(n-1) {
		return n - 1
	}
	return int(v)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// CountTransparent returns how many pixels have alpha <= cutoff.
func (s *Surface) CountTransparent(cutoff uint8) int {
	n := 0
	for i := 3; i < len(s.data); i += 4 {
		if s.data[i] <= cutoff {
			n++
		}
	}
	return n
}

// AlphaMask returns a copy of the surface's alpha channel.
func (s *Surface) AlphaMask() *image.Alpha {
	m := image.NewAlpha(s.Bounds())
	for i := range m.Pix {
		m.Pix[i] = s.data[i*4+3]
	}
	return m
}

// ToImage converts the surface to an image.NRGBA.
func (s *Surface) ToImage() *image.NRGBA {
	img := image.NewNRGBA(s.Bounds())
	copy(img.Pix, s.data)
	return img
}

// SavePNG saves the surface to a PNG file.
func (s *Surface) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return png.Encode(f, s.ToImage())
}

// At implements the image.Image interface.
func (s *Surface) At(x, y int) color.Color {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return color.NRGBA{}
	}
	i := (y*s.width + x) * 4
	return color.NRGBA{R: s.data[i], G: s.data[i+1], B: s.data[i+2], A: s.data[i+3]}
}

// Set implements the draw.Image interface.
func (s *Surface) Set(x, y int, c color.Color) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	i := (y*s.width + x) * 4
	s.data[i+0] = n.R
	s.data[i+1] = n.G
	s.data[i+2] = n.B
	s.data[i+3] = n.A
}

// Bounds implements the image.Image interface.
func (s *Surface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.width, s.height)
}

// ColorModel implements the image.Image interface.
func (s *Surface) ColorModel() color.Model {
	return color.NRGBAModel
}
