// Package walk drives the line scanners over a whole buffer, optionally
// splitting it into newline-aligned chunks processed in parallel.
package walk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/coregx/ahocorasick"
	"golang.org/x/sync/errgroup"

	"github.com/mhr3/textscan/linescan"
)

// Impl selects the line splitting implementation.
type Impl string

const (
	// SWAR walks lines with linescan.Scanner.
	SWAR Impl = "swar"
	// Naive walks lines with bytes.IndexByte.
	Naive Impl = "naive"
)

// Config controls a walk.
type Config struct {
	Delim    byte     // byte counted within each line
	Reverse  bool     // walk segments from the end of the buffer
	Workers  int      // parallel chunks; forced to 1 when Reverse is set
	Window   int      // linescan.Scanner window, 0 for the default
	Keywords []string // lines containing any keyword count as matched
	Impl     Impl
	Logger   *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.Reverse {
		c.Workers = 1
	}
	if c.Window <= 0 {
		c.Window = linescan.DefaultWindow
	}
	if c.Impl == "" {
		c.Impl = SWAR
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// Stats summarises the lines of a buffer.
type Stats struct {
	Lines     int // lines (segments when walking in reverse)
	Matched   int // lines containing one of the keywords
	Delims    int // occurrences of the delimiter
	MaxFields int // largest delimiter count in a line, plus one
	Bytes     int
}

// Merge folds o into s.
func (s *Stats) Merge(o Stats) {
	s.Lines += o.Lines
	s.Matched += o.Matched
	s.Delims += o.Delims
	s.MaxFields = max(s.MaxFields, o.MaxFields)
	s.Bytes += o.Bytes
}

func (s *Stats) add(fields int, n int, matched bool) {
	s.Lines++
	s.Delims += fields
	s.MaxFields = max(s.MaxFields, fields+1)
	s.Bytes += n
	if matched {
		s.Matched++
	}
}

func (s Stats) String() string {
	return fmt.Sprintf("lines=%d matched=%d delims=%d maxfields=%d bytes=%d",
		s.Lines, s.Matched, s.Delims, s.MaxFields, s.Bytes)
}

// Walk scans buf according to cfg and returns the combined statistics.
func Walk(ctx context.Context, buf []byte, cfg Config) (Stats, error) {
	cfg = cfg.withDefaults()
	if cfg.Impl != SWAR && cfg.Impl != Naive {
		return Stats{}, fmt.Errorf("unknown implementation %q", cfg.Impl)
	}
	if cfg.Delim == '\n' {
		return Stats{}, errors.New("delimiter must not be a newline")
	}

	var filter *ahocorasick.Automaton
	if len(cfg.Keywords) > 0 {
		builder := ahocorasick.NewBuilder()
		for _, kw := range cfg.Keywords {
			builder.AddPattern([]byte(kw))
		}
		auto, err := builder.Build()
		if err != nil {
			return Stats{}, fmt.Errorf("failed to build keyword filter: %w", err)
		}
		filter = auto
	}

	chunks, err := split(buf, cfg.Workers, cfg.Delim)
	if err != nil {
		return Stats{}, err
	}
	cfg.Logger.Debug("walk", "bytes", len(buf), "chunks", len(chunks), "impl", cfg.Impl, "reverse", cfg.Reverse)

	results := make([]Stats, len(chunks))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i, chunk := range chunks {
		g.Go(func() error {
			w := newWorker(cfg, filter)
			st, err := w.run(ctx, chunk)
			if err != nil {
				return fmt.Errorf("chunk %d: %w", i, err)
			}
			cfg.Logger.Debug("chunk done", "chunk", i, "bytes", len(chunk), "lines", st.Lines)
			results[i] = st
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}

	var total Stats
	for _, st := range results {
		total.Merge(st)
	}
	return total, nil
}
