//go:build !windows

package executor

import (
	"errors"
	"io"
	"os/exec"
	"syscall"

	"github.com/creack/pty"
)

// runPTY starts cmd on a new pseudo-terminal and copies its output to out
// until the process exits.
func runPTY(cmd *exec.Cmd, out io.Writer) error {
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return err
	}
	defer ptmx.Close()

	// Reading the master after the child exits returns EIO on Linux.
	if _, err := io.Copy(out, ptmx); err != nil && !errors.Is(err, syscall.EIO) {
		_ = cmd.Wait()
		return err
	}

	return cmd.Wait()
}
