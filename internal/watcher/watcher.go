package watcher

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/nguyentantai21042004/rerun/internal/logger"
)

// ErrClosed is returned by Recv once the watcher has been closed.
var ErrClosed = errors.New("watcher closed")

type implWatcher struct {
	backend   backend
	coalescer *coalescer
	logger    logger.Logger
	notices   chan Notice
	errors    chan error
	done      chan struct{}
	closeOnce sync.Once
	dropped   atomic.Uint64
}

// Recv blocks until the next notification or watch error
func (w *implWatcher) Recv(ctx context.Context) (Notice, error) {
	select {
	case <-ctx.Done():
		return Notice{}, ctx.Err()
	case <-w.done:
		return Notice{}, ErrClosed
	case notice := <-w.notices:
		return notice, nil
	case err := <-w.errors:
		return Notice{}, err
	}
}

// Close stops the backend and discards pending notifications
func (w *implWatcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		w.coalescer.stop()
		err = w.backend.close()
		w.logger.Debug(context.Background(), "Closed watcher (%d notifications dropped while busy)", w.dropped.Load())
	})
	return err
}

// deliver never blocks; a busy consumer loses the notification.
func (w *implWatcher) deliver(notice Notice) {
	select {
	case w.notices <- notice:
	default:
		w.dropped.Add(1)
		w.logger.Debug(context.Background(), "Dropped notification while busy: %s", notice)
	}
}

func (w *implWatcher) fail(err error) {
	select {
	case w.errors <- err:
	case <-w.done:
	default:
		w.logger.Debug(context.Background(), "Dropped watch error while busy: %v", err)
	}
}
