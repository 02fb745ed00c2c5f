package executor

import (
	"context"
	"io"
)

// Executor defines the interface for executing external commands
type Executor interface {
	// Run starts name with args and blocks until it exits. A command that
	// started but exited non-zero yields an error wrapping *exec.ExitError.
	Run(ctx context.Context, name string, args ...string) error
}

// Options configures how commands are attached to the terminal and environment
type Options struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Dir is the working directory; empty inherits ours.
	Dir string
	// Env is appended to the current environment as KEY=VALUE pairs.
	Env map[string]string
	// PTY runs the command attached to a pseudo-terminal whose output is
	// copied to Stdout.
	PTY bool
}
