package linescan

import "fmt"

// Result accumulates the offsets recorded by a scan.
//
// A Result is created once with a fixed number of offset slots, then handed
// to Find or RFind repeatedly. Each call overwrites the first Len slots; the
// contents beyond Len are stale. A Result must not be used by two scans at
// the same time.
type Result struct {
	base     []byte
	consumed int
	offsets  []int
	count    int
	stats    Stats
	released bool
}

// Stats counts the work done by the three phases of the last scan.
// It is informational only.
type Stats struct {
	Head int // bytes compared individually before the first aligned word
	Body int // aligned words tested
	Tail int // bytes compared individually after the word phase
}

// NewResult returns a Result with room for capacity offsets.
// Sizing it to the largest window plus two guarantees no scan overflows.
func NewResult(capacity int) *Result {
	if capacity < 0 {
		panic(fmt.Sprintf("linescan: negative result capacity %d", capacity))
	}
	return &Result{offsets: make([]int, capacity)}
}

// Reset clears the outcome of the last scan. Offset storage is kept.
func (r *Result) Reset() {
	r.base = nil
	r.consumed = 0
	r.count = 0
	r.stats = Stats{}
}

// Release drops the offset storage. Scans with a released Result fail with
// ErrInvalidArgument. Releasing twice has no effect.
func (r *Result) Release() {
	r.Reset()
	r.offsets = nil
	r.released = true
}

// Base returns the window examined by the last scan.
func (r *Result) Base() []byte { return r.base }

// Consumed returns how many bytes of the window belong to the scanned span.
// For a forward scan the span is Base()[:Consumed()], for a backward scan it
// is Base()[len(Base())-Consumed():].
func (r *Result) Consumed() int { return r.consumed }

// Offsets returns the recorded offsets relative to Base. Entry 0 is the scan
// origin; a Found scan ends with the newline offset. The slice aliases the
// Result's storage and is only valid until the next scan.
func (r *Result) Offsets() []int { return r.offsets[:r.count] }

// Len returns the number of recorded offsets.
func (r *Result) Len() int { return r.count }

// Cap returns the number of offset slots.
func (r *Result) Cap() int { return len(r.offsets) }

// Stats returns the phase counters of the last scan.
func (r *Result) Stats() Stats { return r.stats }

func (r *Result) finish(base []byte, consumed, count int, st Stats) {
	r.base = base
	r.consumed = consumed
	r.count = count
	r.stats = st
}

func (r *Result) overflow() (Outcome, error) {
	r.Reset()
	return Error, fmt.Errorf("%w: %d slots", ErrCapacityExceeded, len(r.offsets))
}

func checkArgs(buf []byte, n int, r *Result) error {
	switch {
	case r == nil:
		return fmt.Errorf("%w: nil result", ErrInvalidArgument)
	case r.released:
		return fmt.Errorf("%w: released result", ErrInvalidArgument)
	case buf == nil:
		return fmt.Errorf("%w: nil buffer", ErrInvalidArgument)
	case n < 0 || n > len(buf):
		return fmt.Errorf("%w: window %d outside buffer of %d bytes", ErrInvalidArgument, n, len(buf))
	}
	return nil
}
