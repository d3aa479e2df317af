package text

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/font"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Font is a parsed TrueType/OpenType font.
//
// It holds two read-only views of the same font data: a go-text font.Font
// for shaping and an sfnt.Font for outlines and metrics. Both are safe for
// concurrent use, so a Font can be shared across goroutines.
type Font struct {
	name   string
	sfnt   *opentype.Font
	shaper *font.Font
}

// Metrics holds vertical font metrics in pixels at a given size.
type Metrics struct {
	// Ascent is the distance from the baseline to the top of the line (positive).
	Ascent float64
	// Descent is the distance from the baseline to the bottom of the line (positive).
	Descent float64
	// Height is the recommended line height.
	Height float64
}

// Parse parses TTF or OTF font data.
func Parse(data []byte) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}

	// ParseTTF returns a *Face which embeds the thread-safe *Font.
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font for shaping: %w", err)
	}

	name, _ := f.Name(nil, sfnt.NameIDFamily)
	return &Font{name: name, sfnt: f, shaper: face.Font}, nil
}

var (
	defaultOnce sync.Once
	defaultFont *Font
	defaultErr  error
)

// Default returns the Go Regular font. It is parsed on first use.
func Default() (*Font, error) {
	defaultOnce.Do(func() {
		defaultFont, defaultErr = Parse(goregular.TTF)
	})
	return defaultFont, defaultErr
}

// Name returns the font family name, or "" if the font has none.
func (f *Font) Name() string {
	return f.name
}

// Metrics returns the vertical metrics at size pixels per em.
func (f *Font) Metrics(size float64) Metrics {
	var buf sfnt.Buffer
	m, err := f.sfnt.Metrics(&buf, floatToFixed(size), xfont.HintingNone)
	if err != nil {
		return Metrics{}
	}
	return Metrics{
		Ascent:  fixedToFloat(m.Ascent),
		Descent: fixedToFloat(m.Descent),
		Height:  fixedToFloat(m.Height),
	}
}

// floatToFixed converts a float64 to fixed.Int26_6.
// The fixed-point representation uses 6 fractional bits, so we multiply by 64.
func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

// fixedToFloat converts a fixed.Int26_6 value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
