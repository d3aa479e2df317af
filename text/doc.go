// Package text renders single-line captions for scratch coatings.
//
// A Font is parsed once and shared. Shaping goes through go-text/typesetting
// (HarfBuzz), so kerning, ligatures and right-to-left scripts are laid out the
// way a browser would lay them out; glyph outlines come from
// golang.org/x/image/font/sfnt and are filled with golang.org/x/image/vector.
//
// # Example usage
//
//	f, err := text.Default()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	w := f.Measure("Scratch to reveal", 24)
//	_ = f.Draw(img, "Scratch to reveal", (320-w)/2, 400, 24, color.Black)
package text
