// Package drawtext is a minimal text-rendering support layer for a
// graphical surface: it decodes raw byte text into Unicode codepoints,
// selects which loaded font can render each codepoint, and lays out and
// clips the resulting glyph run to fit a pixel-width budget.
//
// The engine follows a separation of concerns:
//
//   - DecodeRune: incremental UTF-8 decoding with replacement-character
//     canonicalization
//   - FontCache: a bounded, append-only sequence of loaded fonts; entry 0
//     is the primary font and the template for fallback matching
//   - FontCache.Resolve: per-codepoint font resolution, acquiring and
//     memoizing fallback fonts on demand
//   - Surface.FitText: run segmentation, measurement, width-constrained
//     truncation with an ellipsis marker, and cursor advancement
//
// The surrounding graphics layer is abstracted behind the Device and
// FontHandle interfaces. drawtext ships one real implementation in
// backend/opentype, built on golang.org/x/image; tests inject fakes.
//
// # Example usage
//
//	dev, err := opentype.NewDevice(800, 32)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	dev.RegisterFont("Go", goregular.TTF)
//
//	surf, err := drawtext.New(dev, 800, 32)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer surf.Close()
//
//	if err := surf.CreatePrimaryFont("Go-12"); err != nil {
//	    log.Fatal(err)
//	}
//	end := surf.FitText("Hello, world", 0, 0, 800, 32, false)
//
// A Surface and its font cache are single-threaded state: callers must
// serialize all text-fitting calls against a given Surface.
package drawtext
