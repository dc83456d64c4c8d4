package linescan

import "fmt"

// DefaultWindow is the number of bytes a Scanner hands to one Find or RFind
// call unless WithWindow overrides it.
const DefaultWindow = 4096

// Scanner walks a buffer line by line, collecting the offsets of a target
// byte within each line.
//
// Lines longer than the window are assembled from several scans, so the
// Scanner's Result never needs more than window+2 slots.
type Scanner struct {
	buf     []byte
	mask    Mask
	res     *Result
	window  int
	reverse bool

	pos     int // forward: start of the unread bytes; reverse: end of them
	line    []byte
	matches []int
	found   bool
	err     error
}

// ScannerOption configures a Scanner.
type ScannerOption func(*Scanner)

// WithReverse makes the Scanner walk from the end of the buffer. Each
// segment then starts at a newline and extends to the start of the segment
// returned before it.
func WithReverse() ScannerOption {
	return func(s *Scanner) { s.reverse = true }
}

// WithWindow sets the maximum number of bytes examined per scan call.
func WithWindow(n int) ScannerOption {
	return func(s *Scanner) { s.window = n }
}

// NewScanner returns a Scanner over buf looking for target. A target of
// '\n' turns the whole buffer into a single line whose matches are its
// newlines.
func NewScanner(buf []byte, target byte, opts ...ScannerOption) *Scanner {
	s := &Scanner{
		buf:    buf,
		mask:   NewMask(target),
		window: DefaultWindow,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.window < 1 {
		panic(fmt.Sprintf("linescan: scanner window must be positive, got %d", s.window))
	}
	s.res = NewResult(s.window + 2)
	if s.reverse {
		s.pos = len(buf)
	}
	return s
}

// Reset points the Scanner at a new buffer, keeping its target, direction
// and storage.
func (s *Scanner) Reset(buf []byte) {
	s.buf = buf
	s.pos = 0
	if s.reverse {
		s.pos = len(buf)
	}
	s.line = nil
	s.matches = s.matches[:0]
	s.found = false
	s.err = nil
	s.res.Reset()
}

// Next advances to the next line. It returns false when the buffer is
// exhausted or a scan failed; Err distinguishes the two.
func (s *Scanner) Next() bool {
	if s.err != nil {
		return false
	}
	s.matches = s.matches[:0]
	s.found = false
	if s.reverse {
		return s.prev()
	}
	if s.pos >= len(s.buf) {
		return false
	}

	start := s.pos
	for s.pos < len(s.buf) && !s.found {
		rest := s.buf[s.pos:]
		out, err := Find(rest, s.mask, min(len(rest), s.window), s.res)
		if err != nil {
			s.err = err
			return false
		}
		offs := s.res.Offsets()[1:]
		if out == Found {
			offs = offs[:len(offs)-1]
			s.found = true
		}
		for _, o := range offs {
			s.matches = append(s.matches, s.pos-start+o)
		}
		s.pos += s.res.Consumed()
	}
	s.line = s.buf[start:s.pos]
	return true
}

func (s *Scanner) prev() bool {
	if s.pos <= 0 {
		return false
	}

	end := s.pos
	for s.pos > 0 && !s.found {
		n := min(s.pos, s.window)
		lo := s.pos - n
		out, err := RFind(s.buf[lo:s.pos], s.mask, n, s.res)
		if err != nil {
			s.err = err
			return false
		}
		offs := s.res.Offsets()[1:]
		if out == Found {
			offs = offs[:len(offs)-1]
			s.found = true
		}
		// absolute for now, rebased once the segment start is known
		for _, o := range offs {
			s.matches = append(s.matches, lo+o)
		}
		s.pos -= s.res.Consumed()
	}
	for i := range s.matches {
		s.matches[i] -= s.pos
	}
	s.line = s.buf[s.pos:end]
	return true
}

// Line returns the current line. Forward lines include their terminating
// newline; reverse segments start with theirs. The slice aliases the
// scanned buffer.
func (s *Scanner) Line() []byte { return s.line }

// Matches returns the target offsets within Line in scan order. The slice
// is reused by the next call to Next.
func (s *Scanner) Matches() []int { return s.matches }

// Found reports whether the current line was delimited by a newline.
func (s *Scanner) Found() bool { return s.found }

// Err returns the error that stopped the Scanner, if any.
func (s *Scanner) Err() error { return s.err }
