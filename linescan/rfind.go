package linescan

import "github.com/mhr3/textscan/internal/swar"

// RFind scans buf[:n] right to left, starting at buf[n-1], recording the
// offset of every byte equal to the target of m, and stops after the first
// newline it meets.
//
// Offsets are relative to buf and descending. Entry 0 is always n-1. On
// Found, the newline offset is the last entry and r.Consumed() is the length
// of the span from the newline to the end of the window.
func RFind(buf []byte, m Mask, n int, r *Result) (Outcome, error) {
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

	offs[0] = n - 1
	k := 1
	i := n

	// Bytes after the last aligned word.
	for stop := n - tailLen(b); i > stop; {
		i--
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
			r.finish(b, n-i, k+1, st)
			return Found, nil
		}
	}

	// Whole words, highest first. A word that may hold the target or a
	// newline is decoded from its top byte down, so a newline ends the scan
	// only after the targets above it are recorded.
	for i >= swar.WordSize {
		st.Body++
		i -= swar.WordSize
		w := swar.Load(b[i:])
		if !swar.MayHaveZeroByte(w^uint64(m)) && !swar.MayHaveZeroByte(w^uint64(newlineMask)) {
			continue
		}
		for j := i + swar.WordSize - 1; j >= i; j-- {
			switch b[j] {
			case c:
				if k == len(offs) {
					return r.overflow()
				}
				offs[k] = j
				k++
			case newline:
				if k == len(offs) {
					return r.overflow()
				}
				offs[k] = j
				r.finish(b, n-j, k+1, st)
				return Found, nil
			}
		}
	}

	for i > 0 {
		i--
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
			r.finish(b, n-i, k+1, st)
			return Found, nil
		}
	}

	r.finish(b, n, k, st)
	return NotFound, nil
}
