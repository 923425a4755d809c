// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"oligotools/internal/cli"
	"oligotools/internal/fasta"
	"oligotools/internal/overlap"
	"oligotools/internal/report"
	"oligotools/internal/runner"
	"oligotools/internal/version"
)

// Exit codes: 0 success, 1 no overlaps found, 2 usage/input error,
// 3 runtime error, 130 interrupted.
const (
	exitOK        = 0
	exitNoMatches = 1
	exitUsage     = 2
	exitRuntime   = 3
	exitInterrupt = 130
)

func isBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}

// newLogger builds the stderr progress logger. Quiet runs log nothing.
func newLogger(stderr io.Writer, quiet bool) *zap.Logger {
	if quiet {
		return zap.NewNop()
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = "" // progress lines, not an audit trail
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(enc),
		zapcore.AddSync(zapWriter{stderr}),
		zapcore.InfoLevel,
	)
	return zap.New(core)
}

type zapWriter struct{ io.Writer }

func (zapWriter) Sync() error { return nil }

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("overlap")
	fs.SetOutput(io.Discard)

	usage := func() int {
		fs.SetOutput(outw)
		fs.Usage()
		if err := outw.Flush(); isBrokenPipe(err) {
			return exitOK
		} else if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return exitRuntime
		}
		return exitOK
	}

	if len(argv) == 0 {
		_, _ = cli.ParseArgs(fs, []string{"-h"})
		return usage()
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return usage()
		}
		_, _ = fmt.Fprintln(stderr, err)
		if code := usage(); code != exitOK {
			return code
		}
		return exitUsage
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "overlap version %s\n", version.Version)
		if e := outw.Flush(); isBrokenPipe(e) {
			return exitOK
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return exitRuntime
		}
		return exitOK
	}

	if opts.NoColor {
		color.NoColor = true
	}
	log := newLogger(stderr, opts.Quiet)
	defer func() { _ = log.Sync() }()

	set, err := fasta.ReadAllFiles(parent, opts.SeqFiles)
	if err != nil {
		if parent.Err() != nil {
			return exitInterrupt
		}
		_, _ = fmt.Fprintln(stderr, err)
		return exitUsage
	}
	log.Info("sequences loaded", zap.Int("count", len(set)), zap.Strings("files", opts.SeqFiles))

	r := runner.New(set, opts.Params, runner.Options{
		OutDir:  opts.OutDir,
		Threads: opts.Threads,
		Log:     log,
	})
	res := r.Run(parent)
	if res.Err != nil {
		switch {
		case errors.Is(res.Err, context.Canceled) || parent.Err() != nil:
			return exitInterrupt
		case errors.Is(res.Err, runner.ErrEmptyInput),
			errors.Is(res.Err, overlap.ErrInvalidParameters):
			_, _ = fmt.Fprintln(stderr, res.Err)
			return exitUsage
		default:
			_, _ = fmt.Fprintln(stderr, res.Err)
			return exitRuntime
		}
	}

	if opts.OutDir == "" {
		info := report.RunInfo{Sequences: res.Sequences, PairsScanned: res.PairsScanned, Params: opts.Params}
		if err := report.WriteNarrative(outw, info, res.Results); err != nil {
			if isBrokenPipe(err) {
				return exitOK
			}
			_, _ = fmt.Fprintln(stderr, err)
			return exitRuntime
		}
	} else {
		printTally(outw, res)
	}

	if err := outw.Flush(); isBrokenPipe(err) {
		return exitOK
	} else if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return exitRuntime
	}
	if res.Flagged == 0 {
		return exitNoMatches
	}
	return exitOK
}

// printTally writes the risk breakdown and artifact locations after a run
// that persisted artifacts.
func printTally(w io.Writer, res runner.Result) {
	_, _ = fmt.Fprintf(w, "scanned %d pairs across %d sequences\n", res.PairsScanned, res.Sequences)
	_, _ = fmt.Fprintf(w, "flagged %d overlap(s): %s %s %s\n",
		res.Flagged,
		color.New(color.FgRed, color.Bold).Sprintf("HIGH=%d", res.High),
		color.New(color.FgYellow).Sprintf("MEDIUM=%d", res.Medium),
		color.New(color.FgGreen).Sprintf("LOW=%d", res.Low),
	)
	_, _ = fmt.Fprintf(w, "report:  %s\nsummary: %s\n", res.ReportPath, res.SummaryPath)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
