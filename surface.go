package drawtext

import "image/color"

// Scheme is a foreground/background color pair. Inverted drawing swaps
// the two.
type Scheme struct {
	FG color.Color
	BG color.Color
}

// Surface is a drawing surface with text support: it owns a backing
// pixmap (through its Device), a bounded font cache and the current
// color scheme.
//
// A Surface exclusively owns its font cache and every entry within it;
// entries are released exactly once, at Close, after which no further
// resolution may occur. Surfaces are not safe for concurrent use:
// callers must serialize all calls against a given Surface.
type Surface struct {
	dev    Device
	w, h   int
	fonts  *FontCache
	scheme *Scheme
	closed bool
}

// New creates a Surface of the given pixel size on dev.
func New(dev Device, w, h int, opts ...Option) (*Surface, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	dev.Resize(w, h)
	s := &Surface{
		dev:    dev,
		w:      w,
		h:      h,
		fonts:  NewFontCache(dev, cfg.cacheSize),
		scheme: cfg.scheme,
	}

	if len(cfg.fonts) > 0 {
		if err := s.CreatePrimaryFont(cfg.fonts[0]); err != nil {
			return nil, err
		}
		s.LoadFonts(cfg.fonts[1:]...)
	}
	return s, nil
}

// CreatePrimaryFont loads the primary font from its textual spec. The
// primary font supplies the match template for fallback acquisition and
// the metrics the layout insets derive from.
//
// An empty spec is a fatal configuration error and panics.
func (s *Surface) CreatePrimaryFont(spec string) error {
	return s.fonts.LoadPrimary(spec)
}

// LoadFonts loads additional fonts into the cache. Individual load
// failures are logged and skipped rather than aborting the batch; a full
// cache likewise skips the remainder. It reports how many fonts were
// added.
func (s *Surface) LoadFonts(specs ...string) int {
	return s.fonts.Load(specs...)
}

// PrimaryFont returns the primary font, or nil before CreatePrimaryFont.
func (s *Surface) PrimaryFont() *Font { return s.fonts.Primary() }

// NumFonts returns the number of fonts currently in the cache, including
// dynamically acquired fallbacks.
func (s *Surface) NumFonts() int { return s.fonts.Len() }

// NewScheme allocates a foreground/background color pair by name.
func (s *Surface) NewScheme(fg, bg string) (*Scheme, error) {
	fgc, err := s.dev.AllocColor(fg)
	if err != nil {
		return nil, err
	}
	bgc, err := s.dev.AllocColor(bg)
	if err != nil {
		return nil, err
	}
	return &Scheme{FG: fgc, BG: bgc}, nil
}

// SetScheme makes scheme current for subsequent drawing calls.
func (s *Surface) SetScheme(scheme *Scheme) {
	if scheme != nil {
		s.scheme = scheme
	}
}

// FitText lays the text out into the box (x, y, w, h): it partitions the
// text into maximal runs renderable by a single font, measures each run,
// truncates runs that exceed the remaining width budget (marking dropped
// content with "..."), draws them vertically centered in the box and
// returns the final cursor x position.
//
// Passing an all-zero geometry selects measure-only mode: nothing is
// drawn, the width budget is unbounded, and the return value is the
// total advance width of the text. Decode and resolution failures never
// abort fitting; the fitter always makes forward progress and always
// returns a final cursor position.
func (s *Surface) FitText(text string, x, y, w, h int, invert bool) int {
	render := x != 0 || y != 0 || w != 0 || h != 0

	if s.closed || s.fonts.Len() == 0 {
		return 0
	}

	var fg color.Color
	if render {
		if s.scheme == nil {
			Logger().Warn("drawtext: FitText without a color scheme")
			return 0
		}
		fg = s.scheme.FG
		bg := s.scheme.BG
		if invert {
			fg, bg = bg, fg
		}
		s.dev.FillRect(x, y, w, h, bg)
	}

	budget := w
	if !render {
		budget = unboundedBudget
	}

	ft := &fitter{
		cache:  s.fonts,
		dev:    s.dev,
		text:   []byte(text),
		x:      x,
		budget: budget,
		render: render,
		y:      y,
		h:      h,
		fg:     fg,
	}
	return ft.run()
}

// MeasureText returns the total advance width of text without drawing
// it.
func (s *Surface) MeasureText(text string) int {
	return s.FitText(text, 0, 0, 0, 0, false)
}

// MeasureRun measures text rendered in a single font f and returns its
// advance width and the font's line height.
func (s *Surface) MeasureRun(f *Font, text []byte) (w, h int) {
	return f.Extents(text)
}

// DrawRect draws the small status square derived from the primary font's
// metrics at (x, y): filled, outlined, or nothing.
func (s *Surface) DrawRect(x, y int, filled, empty, invert bool) {
	if s.closed || s.fonts.Len() == 0 || s.scheme == nil {
		return
	}
	c := s.scheme.FG
	if invert {
		c = s.scheme.BG
	}
	primary := s.fonts.Primary()
	dx := (primary.Ascent() + primary.Descent() + 2) / 4
	if filled {
		s.dev.FillRect(x+1, y+1, dx+1, dx+1, c)
	} else if empty {
		s.dev.StrokeRect(x+1, y+1, dx, dx, c)
	}
}

// Resize replaces the backing pixmap with one of the given size. Fonts
// and scheme survive a resize.
func (s *Surface) Resize(w, h int) {
	if s.closed {
		return
	}
	s.w, s.h = w, h
	s.dev.Resize(w, h)
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.w }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.h }

// CreateCursor creates a host cursor for the given shape id.
func (s *Surface) CreateCursor(shape int) (Cursor, error) {
	return s.dev.CreateCursor(shape)
}

// Map copies the given region of the backing pixmap to the visible
// target.
func (s *Surface) Map(x, y, w, h int) {
	if s.closed {
		return
	}
	s.dev.Flush(x, y, w, h)
}

// Close releases the font cache (entries in reverse load order) and the
// device resources. Further calls on the surface are no-ops.
func (s *Surface) Close() error {
	if s.closed {
		return ErrSurfaceClosed
	}
	s.closed = true
	fontErr := s.fonts.Close()
	devErr := s.dev.Close()
	if fontErr != nil {
		return fontErr
	}
	return devErr
}
