//go:build windows

package executor

import (
	"errors"
	"io"
	"os/exec"
)

var errPTYUnsupported = errors.New("pty is not supported on windows")

func runPTY(cmd *exec.Cmd, out io.Writer) error {
	return errPTYUnsupported
}
