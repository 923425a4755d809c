// internal/appshell/shell.go

// Package appshell wires a Run-style entry point to the process: signal
// handling, os.Args, stdio, and the exit code. Empty argv is the app's to
// interpret (both CLIs show usage for it).
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// RunFunc is the app entry point shape shared by the CLIs.
type RunFunc func(ctx context.Context, argv []string, stdout, stderr io.Writer) int

// Main runs the app under SIGINT/SIGTERM cancellation and exits the
// process with its code, normalized to 130 when the run was interrupted.
func Main(run RunFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	if ctx.Err() != nil && code == 0 {
		code = 130
	}

	stop()
	os.Exit(code)
}
