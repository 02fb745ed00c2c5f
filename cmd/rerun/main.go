package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nguyentantai21042004/rerun/internal/config"
	"github.com/nguyentantai21042004/rerun/internal/dispatch"
	"github.com/nguyentantai21042004/rerun/internal/logger"
	"github.com/nguyentantai21042004/rerun/internal/runner"
	"github.com/nguyentantai21042004/rerun/internal/watcher"
	"github.com/nguyentantai21042004/rerun/pkg/executor"
)

func main() {
	if err := newRootCommand(run).Execute(); err != nil {
		// The dispatcher already reported the failed run.
		if !errors.Is(err, dispatch.ErrStopOnError) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// run wires the watch source, dispatcher and loop for cfg and blocks until a
// shutdown signal or a stop-on-error exit.
func run(ctx context.Context, cfg *config.Config) error {
	log := logger.New(cfg.Logging.Level)

	w, err := watcher.New(watcher.Options{
		Path:      cfg.Path,
		Recursive: cfg.Recursive,
		Debounce:  cfg.RateLimit,
		Notices:   cfg.Notices,
		Poll:      cfg.Poll,
		Logger:    log,
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", cfg.Path, err)
	}
	defer w.Close()

	exec := executor.New(executor.Options{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Dir:    cfg.Exec.Dir,
		Env:    cfg.Exec.Env,
		PTY:    cfg.Exec.PTY,
	})
	d := dispatch.New(cfg.Command, cfg.StopOnError, exec, os.Stdout, log)
	r := runner.New(w, d, cfg.Immediate, os.Stdout, log)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info(ctx, "Watching %s (recursive: %v, rate limit: %s)", cfg.Path, cfg.Recursive, cfg.RateLimit)

	if err := r.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	log.Info(ctx, "Shutting down")
	return nil
}
