package walk

import (
	"github.com/mhr3/textscan/linescan"
)

// split cuts buf into at most parts chunks. Every chunk except the last
// ends with a newline, so no line straddles two chunks.
func split(buf []byte, parts int, delim byte) ([][]byte, error) {
	if len(buf) == 0 {
		return nil, nil
	}
	if parts <= 1 {
		return [][]byte{buf}, nil
	}

	size := len(buf) / parts
	r := linescan.NewResult(linescan.DefaultWindow + 2)
	m := linescan.NewMask(delim)

	var chunks [][]byte
	start := 0
	for i := 1; i < parts; i++ {
		cut, err := lineStart(buf, max(start, i*size), start, m, r)
		if err != nil {
			return nil, err
		}
		if cut <= start {
			continue
		}
		chunks = append(chunks, buf[start:cut])
		start = cut
	}
	if start < len(buf) {
		chunks = append(chunks, buf[start:])
	}
	return chunks, nil
}

// lineStart returns the offset just past the last newline in buf[lo:at],
// or lo if there is none. The search runs backward in windows small enough
// for r.
func lineStart(buf []byte, at, lo int, m linescan.Mask, r *linescan.Result) (int, error) {
	for end := at; end > lo; {
		n := min(end-lo, r.Cap()-2)
		out, err := linescan.RFind(buf[end-n:end], m, n, r)
		if err != nil {
			return 0, err
		}
		if out == linescan.Found {
			offs := r.Offsets()
			return end - n + offs[len(offs)-1] + 1, nil
		}
		end -= n
	}
	return lo, nil
}
