package drawtext

import (
	"image/color"
	"math"
)

// maxRunBytes bounds the bytes of one emitted run. Longer runs are
// truncated and ellipsized like any run that overflows the width budget.
const maxRunBytes = 1024

// unboundedBudget is the width budget used in measure-only mode.
const unboundedBudget = math.MaxInt32

// fitState enumerates the phases of one text-fitting call. Keeping the
// segmentation loop as an explicit state machine makes the fallback and
// truncation edges independently testable.
type fitState int

const (
	// stateScanning resolves the font of the codepoint at the read
	// position and opens a run for it.
	stateScanning fitState = iota
	// stateRunOpen extends the open run while codepoints keep resolving
	// to the run's font.
	stateRunOpen
	// stateTruncating measures the closed run, shrinks it to the
	// remaining budget and emits it.
	stateTruncating
	// stateFontSwitch installs the pending font as current between runs.
	stateFontSwitch
	// stateDone terminates the machine; the cursor position is final.
	stateDone
)

// fitter holds the cursor state of one text-layout call: read position,
// open run, current font, accumulated x and remaining width budget. It
// is owned solely by the fitting call and never retained.
type fitter struct {
	cache *FontCache
	dev   Device
	text  []byte

	pos      int // next byte to decode
	runStart int // first byte of the open run
	runLen   int // bytes accumulated in the open run

	cur     *Font
	pending *Font // font to switch to after the run is emitted

	x      int // accumulated cursor position
	budget int // remaining width budget

	render bool
	y, h   int // text box geometry (render mode)
	fg     color.Color

	// buf is the bounded run buffer the emitted (possibly ellipsized)
	// bytes are staged in.
	buf [maxRunBytes]byte

	state fitState
}

// run executes the state machine to completion and returns the final
// cursor x position.
func (ft *fitter) run() int {
	ft.cur = ft.cache.Primary()
	ft.state = stateScanning
	for ft.state != stateDone {
		switch ft.state {
		case stateScanning:
			ft.scan()
		case stateRunOpen:
			ft.extend()
		case stateTruncating:
			ft.emit()
		case stateFontSwitch:
			ft.switchFont()
		}
	}
	return ft.x
}

// scan opens a run at the read position. With input exhausted it closes
// out whatever is pending.
func (ft *fitter) scan() {
	ft.runStart = ft.pos
	ft.runLen = 0
	if ft.pos >= len(ft.text) {
		ft.state = stateDone
		return
	}
	ft.state = stateRunOpen
}

// extend decodes codepoints and grows the run while each resolves to the
// current font. A font change leaves the codepoint unconsumed: the run
// is emitted first and the codepoint re-resolves (from the now-extended
// cache) under the new current font.
func (ft *fitter) extend() {
	for ft.pos < len(ft.text) {
		r, size := DecodeRune(ft.text[ft.pos:])
		if size == 0 {
			// Truncated trailing sequence: consume the rest as one
			// replacement codepoint and keep making progress.
			size = len(ft.text) - ft.pos
		}
		font, switched := ft.cache.Resolve(r, ft.cur)
		if switched {
			ft.pending = font
			ft.state = stateTruncating
			return
		}
		ft.runLen += size
		ft.pos += size
	}
	ft.state = stateTruncating
}

// emit measures the closed run, shrinks it to fit the remaining budget,
// writes the ellipsis marker when content was dropped, draws the run in
// render mode and advances the cursor.
func (ft *fitter) emit() {
	defer func() {
		if ft.pos >= len(ft.text) && ft.pending == nil {
			ft.state = stateDone
		} else {
			ft.state = stateFontSwitch
		}
	}()

	if ft.runLen == 0 {
		return
	}

	run := ft.text[ft.runStart : ft.runStart+ft.runLen]
	kept := min(len(run), maxRunBytes-1)

	// A fixed margin derived from the primary font's line height serves
	// as the left/right inset of the text box. The buffer ceiling caps
	// the drawn bytes only; an unshrunk run advances by its full width.
	margin := ft.cache.Primary().Height()
	width, _ := ft.cur.Extents(run)
	if ft.budget < margin {
		kept, width = 0, 0
	} else if avail := ft.budget - margin; width > avail {
		kept, width = ft.shrink(run[:kept], avail)
	}
	if kept == 0 {
		return
	}

	copy(ft.buf[:kept], run[:kept])
	if kept < len(run) {
		// Overwrite the tail of the kept prefix with an ellipsis mark,
		// never writing more periods than there is room for.
		for i := kept; i > 0 && i > kept-3; i-- {
			ft.buf[i-1] = '.'
		}
	}

	if ft.render {
		ty := ft.y + ft.h/2 - ft.cur.Height()/2 + ft.cur.Ascent()
		tx := ft.x + ft.h/2
		ft.dev.DrawString(ft.cur.handle, tx, ty, ft.buf[:kept], ft.fg)
	}

	ft.x += width
	ft.budget -= width
}

// shrink finds the longest rune-boundary prefix of run whose measured
// width fits avail, by binary search over the prefix lengths. It returns
// the kept byte length and its measured width; (0, 0) when nothing fits.
func (ft *fitter) shrink(run []byte, avail int) (kept, width int) {
	bounds := runeBoundaries(run)

	lo, hi := 0, len(bounds)-1 // bounds[lo] always fits (width 0)
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if w, _ := ft.cur.Extents(run[:bounds[mid]]); w <= avail {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	if bounds[lo] == 0 {
		return 0, 0
	}
	width, _ = ft.cur.Extents(run[:bounds[lo]])
	return bounds[lo], width
}

// switchFont makes the pending font current. Without a pending font the
// run closed over a cache-full degradation and the current font stands.
func (ft *fitter) switchFont() {
	if ft.pending != nil {
		ft.cur = ft.pending
		ft.pending = nil
	}
	ft.state = stateScanning
}

// runeBoundaries returns the byte offsets of the codepoint boundaries of
// run, starting with 0 and ending at the last complete codepoint.
func runeBoundaries(run []byte) []int {
	bounds := make([]int, 1, len(run)+1)
	pos := 0
	for pos < len(run) {
		_, size := DecodeRune(run[pos:])
		if size == 0 {
			break
		}
		pos += size
		bounds = append(bounds, pos)
	}
	return bounds
}
