// Package linescan locates every occurrence of a target byte up to and
// including the next newline, scanning a byte window either forward (Find)
// or backward (RFind). Matches are recorded as offsets into a caller-owned
// Result that is sized once and reused across calls, so walking a large
// buffer line by line allocates nothing.
//
// Both scanners test eight bytes at a time for the newline and the target
// and only fall back to byte comparisons around alignment boundaries, at the
// end of the window and inside words that contain a candidate.
package linescan

import (
	"errors"

	"github.com/mhr3/textscan/internal/swar"
)

var (
	// ErrInvalidArgument is returned for a nil buffer, a nil or released
	// Result, or a window length outside [0, len(buf)].
	ErrInvalidArgument = errors.New("linescan: invalid argument")

	// ErrCapacityExceeded is returned when a scan records more offsets than
	// the Result has slots for. A Result with n+2 slots never overflows on
	// an n-byte window.
	ErrCapacityExceeded = errors.New("linescan: result capacity exceeded")
)

// Outcome reports how a scan ended.
type Outcome int

const (
	// Error means the arguments were rejected or the Result overflowed.
	// The Result holds no readable state.
	Error Outcome = -1
	// NotFound means the whole window was scanned without meeting a newline.
	NotFound Outcome = 0
	// Found means a newline ended the scan. It is the last recorded offset.
	Found Outcome = 1
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "Found"
	case NotFound:
		return "NotFound"
	case Error:
		return "Error"
	}
	return "Outcome(?)"
}

const newline = '\n'

// newlineMask holds '\n' in every lane.
const newlineMask = Mask(0x0a0a0a0a0a0a0a0a)

// Mask is a target byte replicated into every byte lane of a word.
type Mask uint64

// NewMask returns the search mask for c.
func NewMask(c byte) Mask {
	return Mask(swar.Broadcast(c))
}

// Byte returns the target byte of m.
func (m Mask) Byte() byte {
	return byte(m)
}
