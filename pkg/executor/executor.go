package executor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sort"
)

type implExecutor struct {
	opts Options
	env  []string
}

// New creates a new Executor instance
func New(opts Options) Executor {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	return &implExecutor{
		opts: opts,
		env:  buildEnv(opts.Env),
	}
}

// Run executes the command in the foreground, inheriting the configured stdio
func (e *implExecutor) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = e.opts.Dir
	cmd.Env = e.env

	if e.opts.PTY {
		if err := runPTY(cmd, e.opts.Stdout); err != nil {
			return fmt.Errorf("command '%s' failed: %w", name, err)
		}
		return nil
	}

	cmd.Stdin = e.opts.Stdin
	cmd.Stdout = e.opts.Stdout
	cmd.Stderr = e.opts.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("command '%s' failed: %w", name, err)
	}

	return nil
}

// buildEnv returns nil when there is nothing to add so exec inherits os.Environ
func buildEnv(extra map[string]string) []string {
	if len(extra) == 0 {
		return nil
	}

	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	env := os.Environ()
	for _, k := range keys {
		env = append(env, k+"="+extra[k])
	}
	return env
}
