package opentype

import (
	"bytes"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/drawtext"
)

// HarfBuzzMeasurer measures text through go-text/typesetting's HarfBuzz
// shaper instead of summing per-glyph advances. Shaped measurement
// accounts for ligatures and contextual substitutions, which matters for
// fonts whose drawer-visible advances already reflect them.
//
// Parsed fonts are cached per registered font for the measurer's
// lifetime. Like the Device it plugs into, a HarfBuzzMeasurer is
// single-threaded.
type HarfBuzzMeasurer struct {
	shaper shaping.HarfbuzzShaper
	fonts  map[*registeredFont]*font.Font
}

var _ Measurer = (*HarfBuzzMeasurer)(nil)

// NewHarfBuzzMeasurer creates a HarfBuzz-backed measurement engine.
// Install it with WithMeasurer.
func NewHarfBuzzMeasurer() *HarfBuzzMeasurer {
	return &HarfBuzzMeasurer{
		fonts: make(map[*registeredFont]*font.Font),
	}
}

// Measure implements Measurer.
func (m *HarfBuzzMeasurer) Measure(f *Face, text []byte) int {
	runes := []rune(string(text))
	if len(runes) == 0 {
		return 0
	}

	parsed, err := m.fontFor(f.reg)
	if err != nil {
		// The data already parsed as an sfnt font, so this is rare;
		// fall back to plain advance summing rather than reporting 0.
		drawtext.Logger().Warn("opentype: harfbuzz parse failed, using advance measurement",
			"family", f.reg.family, "error", err)
		return advanceMeasurer{}.Measure(f, text)
	}

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      font.NewFace(parsed),
		Size:      fixed.Int26_6(f.size * 64),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}
	output := m.shaper.Shape(input)

	var advance fixed.Int26_6
	for _, g := range output.Glyphs {
		advance += g.Advance
	}
	return advance.Round()
}

// fontFor returns the cached typesetting font for reg, parsing the raw
// data on first use. font.Font is read-only once parsed.
func (m *HarfBuzzMeasurer) fontFor(reg *registeredFont) (*font.Font, error) {
	if f, ok := m.fonts[reg]; ok {
		return f, nil
	}
	face, err := font.ParseTTF(bytes.NewReader(reg.data))
	if err != nil {
		return nil, err
	}
	m.fonts[reg] = face.Font
	return face.Font, nil
}

// detectScript returns the script of the first non-space rune, defaulting
// to Latin. Mixed-script runs are split upstream by the run fitter, so a
// single script per measurement call is enough.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
