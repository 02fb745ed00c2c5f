package watcher

import (
	"fmt"
	"time"

	poll "github.com/radovskyb/watcher"
)

// pollBackend stats the watched tree on an interval. It needs no kernel
// support, which makes it usable on network and container mounts.
type pollBackend struct {
	watcher  *poll.Watcher
	interval time.Duration
}

func newPollBackend(interval time.Duration) *pollBackend {
	return &pollBackend{
		watcher:  poll.New(),
		interval: interval,
	}
}

func (b *pollBackend) watch(path string, recursive bool) error {
	if recursive {
		if err := b.watcher.AddRecursive(path); err != nil {
			return fmt.Errorf("add watch path: %w", err)
		}
		return nil
	}
	if err := b.watcher.Add(path); err != nil {
		return fmt.Errorf("add watch path: %w", err)
	}
	return nil
}

func (b *pollBackend) start(onEvent func(rawEvent), onError func(error)) {
	go func() {
		for {
			select {
			case event := <-b.watcher.Event:
				if raw, ok := translatePoll(event); ok {
					onEvent(raw)
				}
			case err := <-b.watcher.Error:
				onError(err)
			case <-b.watcher.Closed:
				return
			}
		}
	}()

	go func() {
		if err := b.watcher.Start(b.interval); err != nil {
			onError(fmt.Errorf("start poller: %w", err))
		}
	}()
}

func (b *pollBackend) close() error {
	b.watcher.Close()
	return nil
}

func translatePoll(event poll.Event) (rawEvent, bool) {
	switch event.Op {
	case poll.Create:
		return rawEvent{Op: opCreate, Path: event.Path}, true
	case poll.Write:
		// A directory's mtime moves with every child create or remove, and
		// the child already has its own event.
		if event.FileInfo != nil && event.IsDir() {
			return rawEvent{}, false
		}
		return rawEvent{Op: opWrite, Path: event.Path}, true
	case poll.Remove:
		return rawEvent{Op: opRemove, Path: event.Path}, true
	case poll.Rename, poll.Move:
		return rawEvent{Op: opRename, Path: event.Path, OldPath: event.OldPath}, true
	case poll.Chmod:
		return rawEvent{Op: opChmod, Path: event.Path}, true
	default:
		return rawEvent{}, false
	}
}
