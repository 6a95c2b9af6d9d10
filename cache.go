package drawtext

import "errors"

// DefaultFontCacheSize is the fixed capacity of a FontCache unless
// overridden. Once the cache is full, fallback acquisition is skipped
// and unresolved codepoints render as missing-glyph boxes.
const DefaultFontCacheSize = 32

// FontCache is a bounded, append-only ordered sequence of loaded fonts.
//
// Entry 0 is the primary font: it is the template source for fallback
// pattern matching and must have been loaded from a textual spec. Fonts
// are never removed during the cache's lifetime; Close releases every
// entry in reverse order at teardown.
//
// FontCache is mutable state scoped to one Surface and is not safe for
// concurrent use.
type FontCache struct {
	dev      Device
	fonts    []*Font
	capacity int
}

// NewFontCache creates an empty cache backed by dev. A capacity of 0 or
// less selects DefaultFontCacheSize.
func NewFontCache(dev Device, capacity int) *FontCache {
	if capacity <= 0 {
		capacity = DefaultFontCacheSize
	}
	return &FontCache{
		dev:      dev,
		fonts:    make([]*Font, 0, capacity),
		capacity: capacity,
	}
}

// LoadPrimary loads the primary font from its textual spec into slot 0.
// The cache must be empty.
//
// An empty spec is a fatal configuration error: with no font
// specification there is nothing to render with and no template to match
// fallbacks against, so LoadPrimary panics rather than returning an
// error.
func (c *FontCache) LoadPrimary(spec string) error {
	if spec == "" {
		panic("drawtext: no font specified")
	}
	if len(c.fonts) != 0 {
		return errors.New("drawtext: primary font already loaded")
	}
	f, err := openFontSpec(c.dev, spec)
	if err != nil {
		return err
	}
	c.fonts = append(c.fonts, f)
	return nil
}

// Load opens additional fonts from their specs and appends them to the
// cache. Individual failures are logged and skipped; loading continues
// with the remaining specs. A full cache rejects the rest of the batch
// the same way. Load reports how many fonts were added.
func (c *FontCache) Load(specs ...string) int {
	loaded := 0
	for _, spec := range specs {
		f, err := openFontSpec(c.dev, spec)
		if err != nil {
			Logger().Warn("drawtext: cannot load font", "spec", spec, "error", err)
			continue
		}
		if err := c.Append(f); err != nil {
			Logger().Warn("drawtext: font cache full, skipping font", "spec", spec)
			f.Close()
			continue
		}
		loaded++
	}
	return loaded
}

// Append adds a loaded font to the end of the cache. It returns
// ErrCacheFull when the cache is at capacity; existing entries are never
// disturbed.
func (c *FontCache) Append(f *Font) error {
	if len(c.fonts) >= c.capacity {
		return ErrCacheFull
	}
	c.fonts = append(c.fonts, f)
	return nil
}

// Primary returns the primary font, or nil if none has been loaded.
func (c *FontCache) Primary() *Font {
	if len(c.fonts) == 0 {
		return nil
	}
	return c.fonts[0]
}

// Len returns the number of loaded fonts.
func (c *FontCache) Len() int { return len(c.fonts) }

// At returns the i-th font entry.
func (c *FontCache) At(i int) *Font { return c.fonts[i] }

// Full reports whether the cache has reached its capacity.
func (c *FontCache) Full() bool { return len(c.fonts) >= c.capacity }

// Close releases every cache entry in reverse load order. Each entry is
// released exactly once; no resolution may occur afterwards.
func (c *FontCache) Close() error {
	var errs []error
	for i := len(c.fonts) - 1; i >= 0; i-- {
		if err := c.fonts[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.fonts = c.fonts[:0]
	return errors.Join(errs...)
}
