package dispatch

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// Dispatch runs the command in the foreground and waits for it. The exit code
// is not inspected: only a command that could not be started or run counts
// as a Failure.
func (d *implDispatcher) Dispatch(ctx context.Context) (Outcome, error) {
	startTime := time.Now()
	d.logger.Debug(ctx, "Running %v", d.command)

	// An in-flight command is never cancelled by the caller's context.
	err := d.executor.Run(context.WithoutCancel(ctx), d.command[0], d.command[1:]...)

	var exitErr *exec.ExitError
	if err == nil || errors.As(err, &exitErr) {
		if exitErr != nil {
			d.logger.Debug(ctx, "Command exited with status %d", exitErr.ExitCode())
		}
		d.logger.Debug(ctx, "Run finished in %s", time.Since(startTime))
		fmt.Fprintln(d.out, "run successful")
		return Outcome{Status: Success}, nil
	}

	d.logger.Error(ctx, "Failed to run %s: %v", d.command[0], err)
	fmt.Fprintln(d.out, "failed")

	outcome := Outcome{Status: Failure, Err: err}
	if d.stopOnError {
		return outcome, ErrStopOnError
	}
	return outcome, nil
}
