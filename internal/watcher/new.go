package watcher

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/rerun/internal/logger"
)

const defaultBufferSize = 64

// New creates a Watcher for opts.Path. It fails when the backend cannot be
// created or the path cannot be watched.
func New(opts Options) (Watcher, error) {
	var source backend
	if opts.Poll > 0 {
		source = newPollBackend(opts.Poll)
	} else {
		fs, err := newFsnotifyBackend()
		if err != nil {
			return nil, err
		}
		source = fs
	}

	if err := source.watch(opts.Path, opts.Recursive); err != nil {
		source.close()
		return nil, err
	}

	return newWithBackend(opts, source), nil
}

func newWithBackend(opts Options, source backend) *implWatcher {
	bufferSize := opts.BufferSize
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}

	log := opts.Logger
	if log == nil {
		log = logger.New("info")
	}

	w := &implWatcher{
		backend: source,
		logger:  log,
		notices: make(chan Notice, bufferSize),
		errors:  make(chan error, 4),
		done:    make(chan struct{}),
	}
	w.coalescer = newCoalescer(opts.Debounce, opts.Notices, w.deliver)

	ctx := context.Background()
	mode := "fsnotify"
	if opts.Poll > 0 {
		mode = fmt.Sprintf("poll every %s", opts.Poll)
	}
	w.logger.Debug(ctx, "Watching %s (recursive: %v, debounce: %s, backend: %s)", opts.Path, opts.Recursive, opts.Debounce, mode)

	source.start(w.coalescer.push, w.fail)
	return w
}
