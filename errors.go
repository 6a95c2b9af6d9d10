package drawtext

import (
	"errors"
	"fmt"
)

// Sentinel errors for the drawtext package.
var (
	// ErrCacheFull is returned when appending a font to a cache that has
	// reached its fixed capacity.
	ErrCacheFull = errors.New("drawtext: font cache full")

	// ErrNoMatch is returned by Device implementations when no installed
	// font satisfies a selection pattern.
	ErrNoMatch = errors.New("drawtext: no font matches pattern")

	// ErrSurfaceClosed is returned when operating on a closed Surface.
	ErrSurfaceClosed = errors.New("drawtext: surface is closed")
)

// FontLoadError reports that an individual font failed to open.
// Batch loading treats it as recoverable: the offending spec is skipped
// and loading continues with the remaining specs.
type FontLoadError struct {
	Spec string
	Err  error
}

func (e *FontLoadError) Error() string {
	return fmt.Sprintf("drawtext: cannot load font %q: %v", e.Spec, e.Err)
}

func (e *FontLoadError) Unwrap() error { return e.Err }
