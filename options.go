package drawtext

// Option configures Surface creation.
type Option func(*config)

// config holds configuration for a Surface.
type config struct {
	cacheSize int
	fonts     []string
	scheme    *Scheme
}

// defaultConfig returns the default Surface configuration.
func defaultConfig() config {
	return config{
		cacheSize: DefaultFontCacheSize,
	}
}

// WithFontCacheSize sets the fixed capacity of the surface's font cache.
// Values of 0 or less select DefaultFontCacheSize.
func WithFontCacheSize(n int) Option {
	return func(c *config) {
		c.cacheSize = n
	}
}

// WithFonts loads fonts at surface creation. The first spec becomes the
// primary font; failures among the remaining specs are logged and
// skipped.
func WithFonts(specs ...string) Option {
	return func(c *config) {
		c.fonts = specs
	}
}

// WithScheme sets the initial color scheme.
func WithScheme(s *Scheme) Option {
	return func(c *config) {
		c.scheme = s
	}
}
