package watcher

import (
	"errors"
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
)

type fsnotifyBackend struct {
	watcher   *fsnotify.Watcher
	recursive bool
	done      chan struct{}
}

func newFsnotifyBackend() (*fsnotifyBackend, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	return &fsnotifyBackend{
		watcher: watcher,
		done:    make(chan struct{}),
	}, nil
}

func (b *fsnotifyBackend) watch(path string, recursive bool) error {
	b.recursive = recursive
	if err := b.watcher.Add(path); err != nil {
		return fmt.Errorf("add watch path: %w", err)
	}
	if !recursive {
		return nil
	}

	dirs, err := collectRecursiveDirs(path)
	if err != nil {
		return fmt.Errorf("walk %s: %w", path, err)
	}
	for _, dir := range dirs {
		if err := b.watcher.Add(dir); err != nil {
			return fmt.Errorf("add watch path %s: %w", dir, err)
		}
	}
	return nil
}

func (b *fsnotifyBackend) start(onEvent func(rawEvent), onError func(error)) {
	go func() {
		for {
			select {
			case <-b.done:
				return

			case event, ok := <-b.watcher.Events:
				if !ok {
					return
				}
				if b.recursive && event.Has(fsnotify.Create) {
					b.addCreatedDir(event.Name, onError)
				}
				for _, raw := range translateFsnotify(event) {
					onEvent(raw)
				}

			case err, ok := <-b.watcher.Errors:
				if !ok {
					return
				}
				if errors.Is(err, fsnotify.ErrEventOverflow) {
					onEvent(rawEvent{Op: opOverflow})
					continue
				}
				onError(err)
			}
		}
	}()
}

// addCreatedDir registers a directory created under a recursive watch,
// including any subdirectories made before the watch was in place.
func (b *fsnotifyBackend) addCreatedDir(path string, onError func(error)) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if err := b.watcher.Add(path); err != nil {
		onError(fmt.Errorf("add watch path %s: %w", path, err))
		return
	}
	dirs, err := collectRecursiveDirs(path)
	if err != nil {
		onError(fmt.Errorf("walk %s: %w", path, err))
		return
	}
	for _, dir := range dirs {
		if err := b.watcher.Add(dir); err != nil {
			onError(fmt.Errorf("add watch path %s: %w", dir, err))
		}
	}
}

func (b *fsnotifyBackend) close() error {
	select {
	case <-b.done:
		return nil
	default:
		close(b.done)
	}
	return b.watcher.Close()
}

// translateFsnotify splits an fsnotify bitmask into one raw event per op.
func translateFsnotify(event fsnotify.Event) []rawEvent {
	var out []rawEvent
	if event.Has(fsnotify.Create) {
		out = append(out, rawEvent{Op: opCreate, Path: event.Name})
	}
	if event.Has(fsnotify.Write) {
		out = append(out, rawEvent{Op: opWrite, Path: event.Name})
	}
	if event.Has(fsnotify.Remove) {
		out = append(out, rawEvent{Op: opRemove, Path: event.Name})
	}
	if event.Has(fsnotify.Rename) {
		out = append(out, rawEvent{Op: opRename, Path: event.Name})
	}
	if event.Has(fsnotify.Chmod) {
		out = append(out, rawEvent{Op: opChmod, Path: event.Name})
	}
	return out
}
