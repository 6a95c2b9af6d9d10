package drawtext

// Font is one loaded entry of a FontCache: an open font resource plus
// the vertical metrics derived once at load time.
//
// Only fonts opened from a textual spec carry a match template. Fonts
// acquired through pattern matching (fallback fonts) do not, and can
// therefore never seed further fallback acquisition.
type Font struct {
	handle  FontHandle
	ascent  int
	descent int
	height  int

	// template is the selection pattern re-derived from the font spec,
	// nil for pattern-matched fonts.
	template *Pattern
}

// openFontSpec opens a font from its textual spec and derives its match
// template from the spec string. The template is parsed independently of
// the opened handle: the handle's internal pattern does not produce the
// same substitution results during fallback matching and leads to
// missing-glyph boxes for some inputs.
func openFontSpec(dev Device, spec string) (*Font, error) {
	tmpl, err := ParsePattern(spec)
	if err != nil {
		return nil, &FontLoadError{Spec: spec, Err: err}
	}
	handle, err := dev.OpenFont(spec)
	if err != nil {
		return nil, &FontLoadError{Spec: spec, Err: err}
	}
	return newFont(handle, &tmpl), nil
}

// openFontPattern opens the concrete font a match produced. The result
// carries no template.
func openFontPattern(dev Device, p Pattern) (*Font, error) {
	handle, err := dev.OpenFontPattern(p)
	if err != nil {
		return nil, &FontLoadError{Spec: p.String(), Err: err}
	}
	return newFont(handle, nil), nil
}

func newFont(handle FontHandle, template *Pattern) *Font {
	ascent, descent := handle.Metrics()
	return &Font{
		handle:   handle,
		ascent:   ascent,
		descent:  descent,
		height:   ascent + descent,
		template: template,
	}
}

// Ascent returns the distance from the baseline to the top of the font,
// in pixels.
func (f *Font) Ascent() int { return f.ascent }

// Descent returns the distance from the baseline to the bottom of the
// font, in pixels (positive).
func (f *Font) Descent() int { return f.descent }

// Height returns ascent + descent, the line height of the font.
func (f *Font) Height() int { return f.height }

// HasGlyph reports whether the font contains a glyph for r.
func (f *Font) HasGlyph(r rune) bool { return f.handle.GlyphExists(r) }

// Extents measures text rendered in this font and returns its advance
// width and the font's line height, in pixels.
func (f *Font) Extents(text []byte) (w, h int) {
	if f == nil || text == nil {
		return 0, 0
	}
	return f.handle.MeasureText(text), f.height
}

// Close releases the font's native handle. Safe to call on a nil Font.
func (f *Font) Close() error {
	if f == nil || f.handle == nil {
		return nil
	}
	err := f.handle.Close()
	f.handle = nil
	return err
}
