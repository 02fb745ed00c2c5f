package dispatch

import (
	"io"
	"os"

	"github.com/nguyentantai21042004/rerun/internal/logger"
	"github.com/nguyentantai21042004/rerun/pkg/executor"
)

type implDispatcher struct {
	command     []string
	stopOnError bool
	executor    executor.Executor
	out         io.Writer
	logger      logger.Logger
}

// New creates a Dispatcher for command. Run notices are written to out,
// or stdout when out is nil. command must already be validated non-empty.
func New(command []string, stopOnError bool, exec executor.Executor, out io.Writer, log logger.Logger) Dispatcher {
	if out == nil {
		out = os.Stdout
	}

	return &implDispatcher{
		command:     append([]string(nil), command...),
		stopOnError: stopOnError,
		executor:    exec,
		out:         out,
		logger:      log,
	}
}
