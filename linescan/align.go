package linescan

import (
	"unsafe"

	"github.com/mhr3/textscan/internal/swar"
)

// headLen returns how many bytes of b precede the first word-aligned
// address, capped at len(b).
func headLen(b []byte) int {
	if len(b) == 0 {
		return 0
	}
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	return min(int(-addr&(swar.WordSize-1)), len(b))
}

// tailLen returns how many bytes at the end of b follow the last
// word-aligned address, capped at len(b).
func tailLen(b []byte) int {
	if len(b) == 0 {
		return 0
	}
	end := uintptr(unsafe.Pointer(unsafe.SliceData(b))) + uintptr(len(b))
	return min(int(end&(swar.WordSize-1)), len(b))
}
