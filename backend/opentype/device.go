// Package opentype implements drawtext.Device over in-memory TTF/OTF
// fonts, rendering onto a plain image pixmap.
//
// Fonts are registered up front with RegisterFont; font matching then
// selects among the registered set, filtering on glyph coverage and
// scoring language affinity. Parsing and rasterization are built on
// golang.org/x/image/font/opentype; measurement is pluggable, with an
// optional HarfBuzz engine backed by go-text/typesetting (see Measurer).
package opentype

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/language"

	"github.com/gogpu/drawtext"
)

// DefaultSize is the point size substituted when a pattern leaves the
// size unspecified.
const DefaultSize = 12.0

// registeredFont is one font of the device's installed set.
type registeredFont struct {
	family string
	data   []byte
	font   *opentype.Font
	tags   []language.Tag
}

// Device implements drawtext.Device over an in-memory pixmap.
//
// Like the Surface that owns it, a Device is single-threaded state:
// callers serialize all calls against it.
type Device struct {
	fonts    []*registeredFont
	byFamily map[string]*registeredFont

	pixmap *image.RGBA
	target draw.Image

	defaultSize float64
	measurer    Measurer
}

var _ drawtext.Device = (*Device)(nil)

// DeviceOption configures Device creation.
type DeviceOption func(*Device)

// WithDefaultSize sets the point size used when a spec or pattern leaves
// it unspecified.
func WithDefaultSize(size float64) DeviceOption {
	return func(d *Device) {
		d.defaultSize = size
	}
}

// WithTarget sets the visible image Flush copies pixmap regions to.
// Without a target, Flush is a no-op.
func WithTarget(dst draw.Image) DeviceOption {
	return func(d *Device) {
		d.target = dst
	}
}

// WithMeasurer replaces the measurement engine. The default sums
// per-glyph advances; NewHarfBuzzMeasurer provides shaped measurement.
func WithMeasurer(m Measurer) DeviceOption {
	return func(d *Device) {
		d.measurer = m
	}
}

// NewDevice creates a Device with a pixmap of the given size and no
// fonts registered.
func NewDevice(w, h int, opts ...DeviceOption) *Device {
	d := &Device{
		byFamily:    make(map[string]*registeredFont),
		pixmap:      image.NewRGBA(image.Rect(0, 0, w, h)),
		defaultSize: DefaultSize,
		measurer:    advanceMeasurer{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// RegisterFont parses TTF/OTF data and installs it under the given
// family name. The optional BCP 47 language tags declare the scripts the
// font is intended for and feed the matcher's language scoring.
//
// Registration order matters: MatchFont breaks ties in favor of earlier
// fonts.
func (d *Device) RegisterFont(family string, data []byte, langs ...string) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("opentype: cannot parse font %q: %w", family, err)
	}
	tags := make([]language.Tag, 0, len(langs))
	for _, l := range langs {
		tag, err := language.Parse(l)
		if err != nil {
			return fmt.Errorf("opentype: bad language tag %q for font %q: %w", l, family, err)
		}
		tags = append(tags, tag)
	}
	reg := &registeredFont{family: family, data: data, font: f, tags: tags}
	d.fonts = append(d.fonts, reg)
	d.byFamily[strings.ToLower(family)] = reg
	return nil
}

// OpenFont implements drawtext.Device.
func (d *Device) OpenFont(spec string) (drawtext.FontHandle, error) {
	p, err := drawtext.ParsePattern(spec)
	if err != nil {
		return nil, err
	}
	return d.open(p)
}

// OpenFontPattern implements drawtext.Device.
func (d *Device) OpenFontPattern(p drawtext.Pattern) (drawtext.FontHandle, error) {
	return d.open(p)
}

func (d *Device) open(p drawtext.Pattern) (drawtext.FontHandle, error) {
	reg, ok := d.byFamily[strings.ToLower(p.Family)]
	if !ok {
		return nil, fmt.Errorf("opentype: font family %q is not registered", p.Family)
	}
	size := p.Size
	if size <= 0 {
		size = d.defaultSize
	}
	face, err := opentype.NewFace(reg.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("opentype: cannot create face for %q: %w", p.Family, err)
	}
	return &Face{dev: d, reg: reg, size: size, face: face}, nil
}

// MatchFont implements drawtext.Device. Candidates must contain the
// pattern's coverage codepoint (when one is set); among those, language
// affinity with the pattern's tag decides, then registration order.
func (d *Device) MatchFont(p drawtext.Pattern) (drawtext.Pattern, bool) {
	want := language.Und
	if p.Language != "" {
		if tag, err := language.Parse(p.Language); err == nil {
			want = tag
		}
	}

	var best *registeredFont
	bestScore := -1
	for _, reg := range d.fonts {
		if p.Coverage != 0 && !hasGlyph(reg.font, p.Coverage) {
			continue
		}
		score := 0
		if strings.EqualFold(reg.family, p.Family) {
			score += 8
		}
		score += languageScore(reg.tags, want)
		if score > bestScore {
			best, bestScore = reg, score
		}
	}
	if best == nil {
		return drawtext.Pattern{}, false
	}

	size := p.Size
	if size <= 0 {
		size = d.defaultSize
	}
	return drawtext.Pattern{
		Family:   best.family,
		Size:     size,
		Language: p.Language,
		Scalable: true,
	}, true
}

// languageScore rates how well a font's declared language tags cover the
// wanted tag, using the x/text matcher's confidence levels.
func languageScore(tags []language.Tag, want language.Tag) int {
	if want == language.Und || len(tags) == 0 {
		return 0
	}
	m := language.NewMatcher(tags)
	_, _, conf := m.Match(want)
	switch conf {
	case language.Exact:
		return 4
	case language.High:
		return 3
	case language.Low:
		return 1
	default:
		return 0
	}
}

func hasGlyph(f *opentype.Font, r rune) bool {
	var buf sfnt.Buffer
	idx, err := f.GlyphIndex(&buf, r)
	return err == nil && idx != 0
}

// Resize implements drawtext.Device.
func (d *Device) Resize(w, h int) {
	d.pixmap = image.NewRGBA(image.Rect(0, 0, w, h))
}

// Pixmap returns the backing pixmap. Useful for tests and for callers
// that blit it themselves instead of using Flush.
func (d *Device) Pixmap() *image.RGBA { return d.pixmap }

// FillRect implements drawtext.Device.
func (d *Device) FillRect(x, y, w, h int, c color.Color) {
	if d.pixmap == nil {
		return
	}
	draw.Draw(d.pixmap, image.Rect(x, y, x+w, y+h), image.NewUniform(c), image.Point{}, draw.Src)
}

// StrokeRect implements drawtext.Device.
func (d *Device) StrokeRect(x, y, w, h int, c color.Color) {
	d.FillRect(x, y, w, 1, c)
	d.FillRect(x, y+h-1, w, 1, c)
	d.FillRect(x, y, 1, h, c)
	d.FillRect(x+w-1, y, 1, h, c)
}

// DrawString implements drawtext.Device. The baseline of the first glyph
// is placed at (x, y).
func (d *Device) DrawString(f drawtext.FontHandle, x, y int, text []byte, c color.Color) {
	face, ok := f.(*Face)
	if !ok || d.pixmap == nil {
		drawtext.Logger().Warn("opentype: DrawString with a foreign font handle")
		return
	}
	drawer := font.Drawer{
		Dst:  d.pixmap,
		Src:  image.NewUniform(c),
		Face: face.face,
		Dot:  fixed.P(x, y),
	}
	drawer.DrawString(string(text))
}

// AllocColor implements drawtext.Device. It accepts "#rrggbb", "#rgb"
// and a small set of well-known names.
func (d *Device) AllocColor(name string) (color.Color, error) {
	return parseColor(name)
}

// CreateCursor implements drawtext.Device. The image backend has no host
// cursors, so the returned cursor only records the shape id.
func (d *Device) CreateCursor(shape int) (drawtext.Cursor, error) {
	return cursor{shape: shape}, nil
}

type cursor struct{ shape int }

func (cursor) Close() error { return nil }

// Flush implements drawtext.Device: it copies the region to the target
// image, if one was configured.
func (d *Device) Flush(x, y, w, h int) {
	if d.target == nil || d.pixmap == nil {
		return
	}
	draw.Draw(d.target, image.Rect(x, y, x+w, y+h), d.pixmap, image.Pt(x, y), draw.Src)
}

// Close implements drawtext.Device.
func (d *Device) Close() error {
	d.pixmap = nil
	return nil
}
