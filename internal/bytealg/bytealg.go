// Package bytealg contains straightforward line and byte search routines
// built on the standard library's IndexByte. They define the expected output
// of the word-at-a-time scanners and back the "naive" walker.
package bytealg

import "bytes"

// IndexAll returns the offset of every occurrence of c in b.
func IndexAll(b []byte, c byte) []int {
	var offs []int
	for pos := 0; ; {
		i := bytes.IndexByte(b[pos:], c)
		if i < 0 {
			return offs
		}
		offs = append(offs, pos+i)
		pos += i + 1
	}
}

// Count returns the number of occurrences of c in b.
func Count(b []byte, c byte) int {
	return bytes.Count(b, []byte{c})
}

// SplitLines splits b after every newline. The final element holds the
// bytes after the last newline and is omitted when empty.
func SplitLines(b []byte) [][]byte {
	var lines [][]byte
	for len(b) > 0 {
		i := bytes.IndexByte(b, '\n')
		if i < 0 {
			lines = append(lines, b)
			break
		}
		lines = append(lines, b[:i+1])
		b = b[i+1:]
	}
	return lines
}

// SplitLinesReverse partitions b from the end: every segment starts at a
// newline and runs to the start of the following segment. Segments are
// returned last first. The leading bytes before the first newline form the
// final segment, omitted when empty.
func SplitLinesReverse(b []byte) [][]byte {
	var segs [][]byte
	for len(b) > 0 {
		i := bytes.LastIndexByte(b, '\n')
		if i < 0 {
			segs = append(segs, b)
			break
		}
		segs = append(segs, b[i:])
		b = b[:i]
	}
	return segs
}
