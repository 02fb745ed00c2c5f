package runner

import (
	"io"
	"os"

	"github.com/nguyentantai21042004/rerun/internal/dispatch"
	"github.com/nguyentantai21042004/rerun/internal/logger"
)

type implRunner struct {
	source     Source
	dispatcher dispatch.Dispatcher
	immediate  bool
	out        io.Writer
	logger     logger.Logger
}

// New creates a Runner. Notifications and watch errors are echoed to out,
// or stdout when out is nil.
func New(source Source, dispatcher dispatch.Dispatcher, immediate bool, out io.Writer, log logger.Logger) Runner {
	if out == nil {
		out = os.Stdout
	}

	return &implRunner{
		source:     source,
		dispatcher: dispatcher,
		immediate:  immediate,
		out:        out,
		logger:     log,
	}
}
