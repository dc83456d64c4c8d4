// Command linescan walks the lines of a file and reports how many lines,
// delimiters and keyword matches it holds.
//
//	linescan [flags] FILE
//
// A FILE of "-" reads standard input.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"strings"

	"github.com/mhr3/textscan/internal/source"
	"github.com/mhr3/textscan/internal/walk"
)

type options struct {
	delim      string
	reverse    bool
	workers    int
	window     int
	match      string
	impl       string
	cpuprofile string
	verbose    bool
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// run parses args and walks the named input. Failures after flag parsing
// are logged to stderr through the same handler as the debug output.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var opts options
	fs := flag.NewFlagSet("linescan", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.delim, "delim", ";", "delimiter byte counted within each line")
	fs.BoolVar(&opts.reverse, "reverse", false, "walk lines from the end of the file")
	fs.IntVar(&opts.workers, "workers", runtime.GOMAXPROCS(0), "number of parallel chunks")
	fs.IntVar(&opts.window, "window", 0, "bytes examined per scan call (0 for the default)")
	fs.StringVar(&opts.match, "match", "", "comma separated keywords; lines containing any are counted as matched")
	fs.StringVar(&opts.impl, "impl", string(walk.SWAR), "line splitter: swar or naive")
	fs.StringVar(&opts.cpuprofile, "cpuprofile", "", "write cpu profile to file")
	fs.BoolVar(&opts.verbose, "v", false, "debug logging")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: linescan [flags] FILE")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if err := execute(fs, opts, stdin, stdout, logger); err != nil {
		logger.Error("linescan failed", "err", err)
		return err
	}
	return nil
}

func execute(fs *flag.FlagSet, opts options, stdin io.Reader, stdout io.Writer, logger *slog.Logger) error {
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("expected exactly one file")
	}
	if len(opts.delim) != 1 {
		return fmt.Errorf("delimiter must be a single byte, got %q", opts.delim)
	}

	if opts.cpuprofile != "" {
		f, err := os.Create(opts.cpuprofile)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := walk.Config{
		Delim:    opts.delim[0],
		Reverse:  opts.reverse,
		Workers:  opts.workers,
		Window:   opts.window,
		Keywords: keywords(opts.match),
		Impl:     walk.Impl(opts.impl),
		Logger:   logger,
	}
	return process(ctx, stdin, stdout, fs.Arg(0), cfg)
}

func process(ctx context.Context, input io.Reader, output io.Writer, fileName string, cfg walk.Config) error {
	src, err := open(input, fileName)
	if err != nil {
		return err
	}
	defer src.Close()
	cfg.Logger.Debug("opened input", "file", src.Name(), "bytes", len(src.Bytes()), "mapped", src.Mapped())

	st, err := walk.Walk(ctx, src.Bytes(), cfg)
	if err != nil {
		return fmt.Errorf("%s: %w", fileName, err)
	}
	_, err = fmt.Fprintln(output, st)
	return err
}

func open(input io.Reader, fileName string) (*source.Source, error) {
	if fileName != "-" {
		return source.Open(fileName)
	}
	data, err := io.ReadAll(input)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return source.FromBytes("stdin", data), nil
}

func keywords(s string) []string {
	var kws []string
	for _, kw := range strings.Split(s, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			kws = append(kws, kw)
		}
	}
	return kws
}
