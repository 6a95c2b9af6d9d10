package drawtext

import "testing"

func newTestCache(t *testing.T, dev *fakeDevice, capacity int, specs ...string) *FontCache {
	t.Helper()
	c := NewFontCache(dev, capacity)
	if err := c.LoadPrimary(specs[0]); err != nil {
		t.Fatalf("LoadPrimary failed: %v", err)
	}
	c.Load(specs[1:]...)
	return c
}

func TestResolveExtendsCurrentFont(t *testing.T) {
	dev := latinDevice()
	c := newTestCache(t, dev, 4, "Latin-12")

	cur := c.Primary()
	f, switched := c.Resolve('a', cur)
	if f != cur || switched {
		t.Errorf("Resolve('a') = (%p, %v), want current font unswitched", f, switched)
	}
}

func TestResolvePrefersEarlierEntries(t *testing.T) {
	dev := latinDevice()
	c := newTestCache(t, dev, 4, "Latin-12", "Greek-12")

	greek := c.At(1)
	f, switched := c.Resolve('α', c.Primary())
	if f != greek || !switched {
		t.Errorf("Resolve('α') = (%v, %v), want Greek entry with a switch", f, switched)
	}

	// From the Greek font, a Latin codepoint switches back to entry 0.
	f, switched = c.Resolve('a', greek)
	if f != c.Primary() || !switched {
		t.Errorf("Resolve('a') from Greek = (%v, %v), want primary with a switch", f, switched)
	}
}

func TestResolveAcquiresFallback(t *testing.T) {
	dev := latinDevice()
	c := newTestCache(t, dev, 4, "Latin-12")

	cur := c.Primary()
	f, switched := c.Resolve('д', cur)
	if !switched || f == cur {
		t.Fatalf("Resolve('д') = (%v, %v), want a new font", f, switched)
	}
	if c.Len() != 2 || c.At(1) != f {
		t.Fatalf("fallback font not appended to cache")
	}
	if f.template != nil {
		t.Error("pattern-matched font must not carry a template")
	}

	// The acquisition is memoized: the next resolution of the same rune
	// hits the cache without consulting the matcher again.
	calls := dev.matchCalls
	f2, switched := c.Resolve('д', f)
	if f2 != f || switched {
		t.Errorf("second Resolve('д') = (%v, %v), want cached font unswitched", f2, switched)
	}
	if dev.matchCalls != calls {
		t.Errorf("matcher consulted %d more times for a cached rune", dev.matchCalls-calls)
	}
}

func TestResolveCacheFull(t *testing.T) {
	dev := latinDevice()
	c := newTestCache(t, dev, 1, "Latin-12")

	cur := c.Primary()
	f, switched := c.Resolve('д', cur)
	if f != cur || switched {
		t.Errorf("Resolve on full cache = (%v, %v), want current font unswitched", f, switched)
	}
	if dev.matchCalls != 0 {
		t.Errorf("matcher consulted %d times with a full cache", dev.matchCalls)
	}
	if c.Len() != 1 {
		t.Errorf("cache grew to %d entries", c.Len())
	}
}

func TestResolveMatchFailure(t *testing.T) {
	dev := latinDevice()
	c := newTestCache(t, dev, 4, "Latin-12", "Greek-12")

	// 'б' has no match table entry: resolution falls back to the primary.
	greek := c.At(1)
	f, switched := c.Resolve('б', greek)
	if f != c.Primary() || !switched {
		t.Errorf("Resolve with match failure = (%v, %v), want primary with a switch", f, switched)
	}
	if c.Len() != 2 {
		t.Errorf("cache grew to %d entries after a failed match", c.Len())
	}
}

func TestResolveMatchedFontLacksGlyph(t *testing.T) {
	dev := latinDevice()
	// The matcher claims Greek covers 'б', but the Greek font does not.
	dev.match['б'] = "Greek"
	c := newTestCache(t, dev, 4, "Latin-12")

	cur := c.Primary()
	f, switched := c.Resolve('б', cur)
	if f != cur || switched {
		t.Errorf("Resolve with lying match = (%v, %v), want primary", f, switched)
	}
	if c.Len() != 1 {
		t.Fatalf("lying match was appended to the cache")
	}

	// The discarded font must have been released.
	last := dev.opened[len(dev.opened)-1]
	if last.family != "Greek" || !last.closed {
		t.Errorf("matched font %q not closed after discard", last.family)
	}
}

func TestResolvePrimaryWithoutTemplatePanics(t *testing.T) {
	dev := latinDevice()
	c := NewFontCache(dev, 4)

	// Force a pattern-loaded font into slot 0: a fatal configuration.
	f, err := openFontPattern(dev, Pattern{Family: "Latin"})
	if err != nil {
		t.Fatalf("openFontPattern failed: %v", err)
	}
	if err := c.Append(f); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("Resolve with template-less primary did not panic")
		}
	}()
	c.Resolve('д', c.Primary())
}
