package opentype

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"

	"github.com/gogpu/drawtext"
)

// Face is an opened font resource at a specific size. It implements
// drawtext.FontHandle.
//
// A Face is not safe for concurrent use: the underlying rasterizing face
// and the sfnt scratch buffer carry mutable state.
type Face struct {
	dev  *Device
	reg  *registeredFont
	size float64
	face font.Face
	buf  sfnt.Buffer
}

var _ drawtext.FontHandle = (*Face)(nil)

// GlyphExists implements drawtext.FontHandle.
func (f *Face) GlyphExists(r rune) bool {
	if f.face == nil {
		return false
	}
	idx, err := f.reg.font.GlyphIndex(&f.buf, r)
	return err == nil && idx != 0
}

// MeasureText implements drawtext.FontHandle via the device's
// measurement engine.
func (f *Face) MeasureText(text []byte) int {
	if f.face == nil {
		return 0
	}
	return f.dev.measurer.Measure(f, text)
}

// Metrics implements drawtext.FontHandle. Both values are positive
// pixel distances from the baseline.
func (f *Face) Metrics() (ascent, descent int) {
	if f.face == nil {
		return 0, 0
	}
	m := f.face.Metrics()
	return m.Ascent.Ceil(), m.Descent.Ceil()
}

// Family returns the family name the face was opened under.
func (f *Face) Family() string { return f.reg.family }

// Size returns the face's point size.
func (f *Face) Size() float64 { return f.size }

// Close implements drawtext.FontHandle.
func (f *Face) Close() error {
	if f.face == nil {
		return nil
	}
	err := f.face.Close()
	f.face = nil
	return err
}
