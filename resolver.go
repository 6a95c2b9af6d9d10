package drawtext

// Resolve finds the font that should render r, preferring cur so that
// runs extend as long as possible. It returns the chosen font and
// whether it differs from cur (the caller must then close out the
// current run and switch).
//
// Resolution scans cache entries in load order and picks the first one
// whose glyph table contains r. When no entry matches, a fallback font
// is acquired on demand: a selection pattern covering exactly r is
// derived from the primary font's template, handed to the Device's
// matcher, and the resulting font — if it really does contain the glyph;
// a match can lie — is appended to the cache and becomes the current
// font for the remainder of the surface's lifetime.
//
// Resolve never fails and never drops a character:
//   - cache at capacity with an unresolved glyph: cur is returned
//     unchanged and the codepoint renders as a missing-glyph box;
//   - match failure, or a matched font lacking the glyph: the primary
//     font is returned.
//
// A primary font without a match template is a fatal configuration
// error and panics.
func (c *FontCache) Resolve(r rune, cur *Font) (f *Font, switched bool) {
	for _, entry := range c.fonts {
		if entry.HasGlyph(r) {
			return entry, entry != cur
		}
	}

	if c.Full() {
		// Glyph unresolved but the character must still be drawn.
		return cur, false
	}

	primary := c.Primary()
	if primary.template == nil {
		// See openFontSpec: only spec-loaded fonts carry a template,
		// and slot 0 must hold one.
		panic("drawtext: the first font in the cache must be loaded from a font spec")
	}

	query := primary.template.WithRune(r)
	match, ok := c.dev.MatchFont(query)
	if !ok {
		Logger().Debug("drawtext: no fallback font matches", "rune", r)
		return primary, primary != cur
	}

	font, err := openFontPattern(c.dev, match)
	if err != nil {
		Logger().Warn("drawtext: cannot open matched fallback font", "pattern", match.String(), "error", err)
		return primary, primary != cur
	}
	if !font.HasGlyph(r) {
		// The matcher promised coverage it cannot deliver; discard the
		// font and render with the primary instead.
		Logger().Warn("drawtext: matched font lacks glyph", "pattern", match.String(), "rune", r)
		font.Close()
		return primary, primary != cur
	}

	if err := c.Append(font); err != nil {
		// The cache never grows past capacity.
		font.Close()
		return cur, false
	}
	Logger().Debug("drawtext: acquired fallback font", "pattern", match.String(), "rune", r)
	return font, font != cur
}
