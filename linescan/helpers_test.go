package linescan

import (
	"math/rand"
	"testing"
	"unsafe"

	segAscii "github.com/segmentio/asm/ascii"
	"github.com/stretchr/testify/require"
)

// alignedBuffer returns n zeroed bytes starting on a word boundary.
func alignedBuffer(n int) []byte {
	words := make([]uint64, n/8+1)
	return unsafe.Slice((*byte)(unsafe.Pointer(&words[0])), len(words)*8)[:n:n]
}

// alphabet returns an aligned buffer cycling 'a'..'z'.
func alphabet(n int) []byte {
	b := alignedBuffer(n)
	for i := range b {
		b[i] = byte('a' + i%26)
	}
	return b
}

// makeLines returns ASCII text of n bytes where roughly one byte in
// lineEvery is a newline and one in delimEvery is ';'.
func makeLines(t testing.TB, rng *rand.Rand, n, lineEvery, delimEvery int) []byte {
	b := alignedBuffer(n)
	for i := range b {
		switch {
		case rng.Intn(lineEvery) == 0:
			b[i] = '\n'
		case rng.Intn(delimEvery) == 0:
			b[i] = ';'
		default:
			b[i] = byte('a' + rng.Intn(26))
		}
	}
	require.True(t, segAscii.ValidString(string(b)), "generated corpus is not ASCII")
	return b
}

// forwardOracle computes the expected Find result byte by byte.
func forwardOracle(b []byte, c byte, n int) (Outcome, int, []int) {
	offs := []int{0}
	for i := 0; i < n; i++ {
		switch b[i] {
		case c:
			offs = append(offs, i)
		case '\n':
			return Found, i + 1, append(offs, i)
		}
	}
	return NotFound, n, offs
}

// backwardOracle computes the expected RFind result byte by byte.
func backwardOracle(b []byte, c byte, n int) (Outcome, int, []int) {
	offs := []int{n - 1}
	for i := n - 1; i >= 0; i-- {
		switch b[i] {
		case c:
			offs = append(offs, i)
		case '\n':
			return Found, n - i, append(offs, i)
		}
	}
	return NotFound, n, offs
}
