package linescan

import "github.com/mhr3/textscan/internal/swar"

// Find scans buf[:n] left to right, recording the offset of every byte equal
// to the target of m, and stops after the first newline.
//
// On Found, r.Consumed() is the offset just past the newline and the newline
// offset is the last entry of r.Offsets(). On NotFound the whole window was
// consumed. Entry 0 of r.Offsets() is always 0.
//
// When the target is '\n' itself every newline is recorded as a match and
// the scan always runs to the end of the window.
func Find(buf []byte, m Mask, n int, r *Result) (Outcome, error) {
	if err := checkArgs(buf, n, r); err != nil {
		return Error, err
	}

	offs := r.offsets
	if len(offs) == 0 {
		return r.overflow()
	}

	b := buf[:n:n]
	c := m.Byte()
	var st Stats

	offs[0] = 0
	k := 1
	i := 0

	// Bytes before the first aligned word.
	for head := headLen(b); i < head; i++ {
		st.Head++
		switch b[i] {
		case c:
			if k == len(offs) {
				return r.overflow()
			}
			offs[k] = i
			k++
		case newline:
			if k == len(offs) {
				return r.overflow()
			}
			offs[k] = i
			r.finish(b, i+1, k+1, st)
			return Found, nil
		}
	}

	// Whole words. A word holding a newline is left for the tail loop so the
	// newline and any target before it are located byte by byte.
	for ; n-i >= swar.WordSize; i += swar.WordSize {
		st.Body++
		w := swar.Load(b[i:])
		if swar.HasZeroByte(w ^ uint64(newlineMask)) {
			break
		}
		if !swar.HasZeroByte(w ^ uint64(m)) {
			continue
		}
		for j := i; j < i+swar.WordSize; j++ {
			if b[j] != c {
				continue
			}
			if k == len(offs) {
				return r.overflow()
			}
			offs[k] = j
			k++
		}
	}

	for ; i < n; i++ {
		st.Tail++
		switch b[i] {
		case c:
			if k == len(offs) {
				return r.overflow()
			}
			offs[k] = i
			k++
		case newline:
			if k == len(offs) {
				return r.overflow()
			}
			offs[k] = i
			r.finish(b, i+1, k+1, st)
			return Found, nil
		}
	}

	r.finish(b, n, k, st)
	return NotFound, nil
}
