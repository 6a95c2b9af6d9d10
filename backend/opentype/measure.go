package opentype

import "golang.org/x/image/font"

// Measurer computes the advance width, in pixels, of text rendered in a
// face. The device's DrawString always rasterizes with the x/image
// drawer, so a Measurer must agree with the drawer about advances for
// layout to line up.
//
// The default engine sums per-glyph advances. NewHarfBuzzMeasurer is a
// drop-in replacement that runs full OpenType shaping.
type Measurer interface {
	Measure(f *Face, text []byte) int
}

// advanceMeasurer is the default measurement engine: per-glyph advances
// plus kerning pairs, exactly what font.Drawer applies when rendering.
type advanceMeasurer struct{}

func (advanceMeasurer) Measure(f *Face, text []byte) int {
	return font.MeasureString(f.face, string(text)).Round()
}
