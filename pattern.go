package drawtext

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Pattern is a font-selection query: a family plus the properties a
// concrete font resource must satisfy. Patterns are plain values and can
// be copied freely.
//
// A Pattern parsed from a textual font spec serves as the match template
// for fallback acquisition. Fallback queries derived from it carry a
// single-codepoint coverage requirement (see WithRune).
type Pattern struct {
	// Family is the font family name, e.g. "Go Mono".
	Family string

	// Size is the requested point size. 0 means unspecified; Device
	// implementations substitute their default.
	Size float64

	// Language is a BCP 47 language tag the font should cover, e.g.
	// "ja". Empty means no language requirement.
	Language string

	// Coverage, when non-zero, requires the matched font to contain a
	// glyph for this one codepoint.
	Coverage rune

	// Scalable requires an outline (non-bitmap) font.
	Scalable bool
}

// ErrEmptyFontSpec is returned by ParsePattern for a spec with no family.
var ErrEmptyFontSpec = errors.New("drawtext: empty font spec")

// ParsePattern parses a textual font spec of the form
//
//	Family[-size][:key=value]...
//
// with keys "size", "lang" and "scalable". The trailing -size on the
// family element is shorthand for size=; a later size= overrides it.
//
// The pattern a spec parses to deliberately does not come from the
// opened font handle: the handle's own notion of its pattern yields
// different substitution results during fallback matching, so the
// template must always be re-derived from the spec string.
func ParsePattern(spec string) (Pattern, error) {
	var p Pattern
	elems := strings.Split(spec, ":")

	family := elems[0]
	if i := strings.LastIndex(family, "-"); i > 0 {
		if size, err := strconv.ParseFloat(family[i+1:], 64); err == nil {
			p.Size = size
			family = family[:i]
		}
	}
	p.Family = strings.TrimSpace(family)
	if p.Family == "" {
		return Pattern{}, ErrEmptyFontSpec
	}

	for _, elem := range elems[1:] {
		key, value, ok := strings.Cut(elem, "=")
		if !ok {
			return Pattern{}, fmt.Errorf("drawtext: malformed pattern element %q in %q", elem, spec)
		}
		switch key {
		case "size":
			size, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return Pattern{}, fmt.Errorf("drawtext: bad size %q in %q", value, spec)
			}
			p.Size = size
		case "lang":
			p.Language = value
		case "scalable":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return Pattern{}, fmt.Errorf("drawtext: bad scalable %q in %q", value, spec)
			}
			p.Scalable = b
		default:
			return Pattern{}, fmt.Errorf("drawtext: unknown pattern key %q in %q", key, spec)
		}
	}
	return p, nil
}

// WithRune returns a copy of p restricted to fonts containing a glyph
// for r. The result always requires a scalable font, matching the
// fallback-acquisition policy.
func (p Pattern) WithRune(r rune) Pattern {
	p.Coverage = r
	p.Scalable = true
	return p
}

// String renders the pattern in the spec syntax accepted by ParsePattern.
func (p Pattern) String() string {
	var sb strings.Builder
	sb.WriteString(p.Family)
	if p.Size > 0 {
		fmt.Fprintf(&sb, "-%g", p.Size)
	}
	if p.Language != "" {
		fmt.Fprintf(&sb, ":lang=%s", p.Language)
	}
	if p.Scalable {
		sb.WriteString(":scalable=true")
	}
	return sb.String()
}
