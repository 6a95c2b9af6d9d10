package drawtext

import (
	"fmt"
	"image/color"
)

// fakeFontDef describes a fake font: per-rune advances plus metrics.
// Runes absent from glyphs are missing glyphs; when the engine draws
// them anyway (degraded rendering) they measure as missing.
type fakeFontDef struct {
	glyphs  map[rune]int
	ascent  int
	descent int
	missing int // advance of the missing-glyph box
}

type fakeHandle struct {
	dev    *fakeDevice
	family string
	def    fakeFontDef
	closed bool
}

func (h *fakeHandle) GlyphExists(r rune) bool {
	_, ok := h.def.glyphs[r]
	return ok
}

func (h *fakeHandle) MeasureText(text []byte) int {
	w := 0
	for pos := 0; pos < len(text); {
		r, size := DecodeRune(text[pos:])
		if size == 0 {
			size = len(text) - pos
		}
		if adv, ok := h.def.glyphs[r]; ok {
			w += adv
		} else {
			w += h.def.missing
		}
		pos += size
	}
	return w
}

func (h *fakeHandle) Metrics() (int, int) { return h.def.ascent, h.def.descent }

func (h *fakeHandle) Close() error {
	if h.closed {
		return fmt.Errorf("font %q closed twice", h.family)
	}
	h.closed = true
	h.dev.closeOrder = append(h.dev.closeOrder, h.family)
	return nil
}

type fillCall struct {
	x, y, w, h int
	c          color.Color
}

type drawCall struct {
	handle *fakeHandle
	x, y   int
	text   string
}

// fakeDevice is an in-memory Device: a registry of fakeFontDefs, a
// rune-to-family match table standing in for the system matcher, and
// recordings of every drawing call.
type fakeDevice struct {
	defs  map[string]fakeFontDef
	match map[rune]string

	matchCalls int
	opened     []*fakeHandle
	closeOrder []string

	fills   []fillCall
	strokes []fillCall
	draws   []drawCall
	resizes [][2]int
	flushes int
	closed  bool
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		defs:  make(map[string]fakeFontDef),
		match: make(map[rune]string),
	}
}

func (d *fakeDevice) addFont(family string, def fakeFontDef) {
	if def.missing == 0 {
		def.missing = 5
	}
	d.defs[family] = def
}

func (d *fakeDevice) openFamily(family string) (FontHandle, error) {
	def, ok := d.defs[family]
	if !ok {
		return nil, fmt.Errorf("no such family %q", family)
	}
	h := &fakeHandle{dev: d, family: family, def: def}
	d.opened = append(d.opened, h)
	return h, nil
}

func (d *fakeDevice) OpenFont(spec string) (FontHandle, error) {
	p, err := ParsePattern(spec)
	if err != nil {
		return nil, err
	}
	return d.openFamily(p.Family)
}

func (d *fakeDevice) OpenFontPattern(p Pattern) (FontHandle, error) {
	return d.openFamily(p.Family)
}

func (d *fakeDevice) MatchFont(p Pattern) (Pattern, bool) {
	d.matchCalls++
	family, ok := d.match[p.Coverage]
	if !ok {
		return Pattern{}, false
	}
	return Pattern{Family: family, Size: p.Size, Scalable: true}, true
}

func (d *fakeDevice) Resize(w, h int) {
	d.resizes = append(d.resizes, [2]int{w, h})
}

func (d *fakeDevice) FillRect(x, y, w, h int, c color.Color) {
	d.fills = append(d.fills, fillCall{x, y, w, h, c})
}

func (d *fakeDevice) StrokeRect(x, y, w, h int, c color.Color) {
	d.strokes = append(d.strokes, fillCall{x, y, w, h, c})
}

func (d *fakeDevice) DrawString(f FontHandle, x, y int, text []byte, c color.Color) {
	d.draws = append(d.draws, drawCall{handle: f.(*fakeHandle), x: x, y: y, text: string(text)})
}

func (d *fakeDevice) AllocColor(name string) (color.Color, error) {
	switch name {
	case "black":
		return color.RGBA{A: 0xFF}, nil
	case "white":
		return color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}, nil
	}
	return nil, fmt.Errorf("unknown color %q", name)
}

type fakeCursor struct{ shape int }

func (fakeCursor) Close() error { return nil }

func (d *fakeDevice) CreateCursor(shape int) (Cursor, error) {
	return fakeCursor{shape: shape}, nil
}

func (d *fakeDevice) Flush(x, y, w, h int) { d.flushes++ }

func (d *fakeDevice) Close() error {
	d.closed = true
	return nil
}

// latinDevice builds the device most tests use: a primary font covering
// ASCII letters and '.', a second font covering Greek, and a match table
// that resolves Cyrillic to a third, lazily loaded family.
func latinDevice() *fakeDevice {
	d := newFakeDevice()
	latin := map[rune]int{'.': 2}
	for r := rune('a'); r <= 'z'; r++ {
		latin[r] = 6
	}
	for r := rune('A'); r <= 'Z'; r++ {
		latin[r] = 7
	}
	latin[' '] = 3
	d.addFont("Latin", fakeFontDef{glyphs: latin, ascent: 8, descent: 2})

	greek := map[rune]int{'α': 9, 'β': 9, 'γ': 9}
	d.addFont("Greek", fakeFontDef{glyphs: greek, ascent: 9, descent: 3})

	cyrillic := map[rune]int{'д': 8, 'ж': 8}
	d.addFont("Cyrillic", fakeFontDef{glyphs: cyrillic, ascent: 8, descent: 2})
	d.match['д'] = "Cyrillic"
	d.match['ж'] = "Cyrillic"

	return d
}
