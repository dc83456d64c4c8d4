// Package swar holds the word-at-a-time byte tests used by the line scanners.
//
// Every function operates on a uint64 holding eight byte lanes. Detection is
// lane-symmetric, so results do not depend on the byte order the word was
// loaded with; Load still uses the host order so a word matches what a raw
// memory read would return.
package swar

import (
	"encoding/binary"

	"golang.org/x/sys/cpu"
)

// WordSize is the number of byte lanes in a word.
const WordSize = 8

const (
	// Lo holds 0x01 in every lane.
	Lo = uint64(0x0101010101010101)
	// Hi holds 0x80 in every lane.
	Hi = Lo << 7
	// Magic is the carry-propagation constant of the classic memrchr test.
	// Its zero bits are the "holes" a carry falls into.
	Magic = uint64(0x7efefefefefefeff)
)

var order binary.ByteOrder = binary.LittleEndian

func init() {
	if cpu.IsBigEndian {
		order = binary.BigEndian
	}
}

// Broadcast returns a word with c in every lane.
func Broadcast(c byte) uint64 {
	w := uint64(c)
	w |= w << 8
	w |= w << 16
	w |= w << 32
	return w
}

// HasZeroByte reports whether any lane of w is zero.
//
// Subtracting 0x01 from a zero lane borrows into its high bit, and the
// complement rules out lanes whose high bit was already set. The test is
// exact: it never fires on a word without a zero lane.
func HasZeroByte(w uint64) bool {
	return (w-Lo) & ^w & Hi != 0
}

// MayHaveZeroByte reports whether w might contain a zero lane.
//
// Adding Magic carries through every non-zero lane into the hole above it;
// a hole left unchanged means the lane below it was zero. A zero lane is
// never missed, but the test also fires when the most significant lane holds
// 0x80, so a hit must be confirmed byte by byte.
func MayHaveZeroByte(w uint64) bool {
	sum := w + Magic
	return (sum^^w)&^Magic != 0
}

// Load reads the first WordSize bytes of b as a word in host byte order.
// It panics if len(b) < WordSize.
func Load(b []byte) uint64 {
	return order.Uint64(b)
}
