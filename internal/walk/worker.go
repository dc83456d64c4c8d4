package walk

import (
	"context"

	"github.com/coregx/ahocorasick"

	"github.com/mhr3/textscan/internal/bytealg"
	"github.com/mhr3/textscan/linescan"
)

// checkEvery is how many lines a worker handles between context checks.
const checkEvery = 1024

// worker owns the scanner state of one chunk. Workers never share a
// linescan.Result.
type worker struct {
	cfg    Config
	filter *ahocorasick.Automaton
}

func newWorker(cfg Config, filter *ahocorasick.Automaton) *worker {
	return &worker{cfg: cfg, filter: filter}
}

func (w *worker) matched(line []byte) bool {
	return w.filter != nil && w.filter.IsMatch(line)
}

func (w *worker) run(ctx context.Context, chunk []byte) (Stats, error) {
	if w.cfg.Impl == Naive {
		return w.runNaive(ctx, chunk)
	}

	var opts []linescan.ScannerOption
	opts = append(opts, linescan.WithWindow(w.cfg.Window))
	if w.cfg.Reverse {
		opts = append(opts, linescan.WithReverse())
	}

	var st Stats
	s := linescan.NewScanner(chunk, w.cfg.Delim, opts...)
	for n := 1; s.Next(); n++ {
		if n%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return Stats{}, err
			}
		}
		st.add(len(s.Matches()), len(s.Line()), w.matched(s.Line()))
	}
	return st, s.Err()
}

func (w *worker) runNaive(ctx context.Context, chunk []byte) (Stats, error) {
	lines := bytealg.SplitLines(chunk)
	if w.cfg.Reverse {
		lines = bytealg.SplitLinesReverse(chunk)
	}

	var st Stats
	for i, line := range lines {
		if (i+1)%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return Stats{}, err
			}
		}
		st.add(bytealg.Count(line, w.cfg.Delim), len(line), w.matched(line))
	}
	return st, nil
}
