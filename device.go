package drawtext

import "image/color"

// FontHandle is an opened font resource owned by a Device.
// The core queries it for glyph coverage, string measurement and
// vertical metrics; everything else about the resource is opaque.
type FontHandle interface {
	// GlyphExists reports whether the font contains a glyph for r.
	GlyphExists(r rune) bool

	// MeasureText returns the horizontal advance, in pixels, of text
	// rendered in this font. Per-character advances only; no shaping
	// guarantees.
	MeasureText(text []byte) int

	// Metrics returns the ascent and descent of the font in pixels,
	// both positive.
	Metrics() (ascent, descent int)

	// Close releases the underlying resource. Close is idempotent on
	// the Device side only if documented; the core calls it exactly once.
	Close() error
}

// Device is the host graphics layer the core calls into. It covers the
// three font capabilities the engine consumes (open by spec, open by
// pattern, pattern matching) plus the thin drawing-surface operations
// the Surface wraps.
//
// Implementations are free to be backed by a window system, a GPU
// pipeline, or a plain in-memory image (see backend/opentype). Tests
// inject fakes.
type Device interface {
	// OpenFont opens a font resource from a textual spec.
	// The returned handle does not carry a reusable selection pattern;
	// callers derive one with ParsePattern.
	OpenFont(spec string) (FontHandle, error)

	// OpenFontPattern opens the concrete font resource a successful
	// MatchFont call described.
	OpenFontPattern(p Pattern) (FontHandle, error)

	// MatchFont applies the system's substitution rules to p and
	// returns the concrete pattern of the best installed font, or
	// ok=false when nothing matches.
	MatchFont(p Pattern) (match Pattern, ok bool)

	// Resize replaces the backing pixmap with one of the given size.
	Resize(w, h int)

	// FillRect fills the rectangle with the foreground color, or the
	// background color when invert is set.
	FillRect(x, y, w, h int, c color.Color)

	// StrokeRect outlines the rectangle.
	StrokeRect(x, y, w, h int, c color.Color)

	// DrawString renders text in the given font with its baseline at
	// (x, y).
	DrawString(f FontHandle, x, y int, text []byte, c color.Color)

	// AllocColor resolves a color name ("#rrggbb" or a known name) to a
	// concrete color value.
	AllocColor(name string) (color.Color, error)

	// CreateCursor creates a host cursor for the given shape id.
	CreateCursor(shape int) (Cursor, error)

	// Flush copies the given pixmap region out to the visible target.
	Flush(x, y, w, h int)

	// Close releases the pixmap and any other device resources.
	Close() error
}

// Cursor is a host cursor handle. Creation and release are thin Device
// calls; the core never inspects it.
type Cursor interface {
	Close() error
}
