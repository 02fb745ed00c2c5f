package watcher

import (
	"sync"
	"time"
)

// pendingState is what a path will flush as once its window expires.
type pendingState uint8

const (
	pendCreate pendingState = iota
	pendWrite
	pendRemove
	pendChmod
	// pendMovedFrom is the source side of a rename still waiting for its target.
	pendMovedFrom
	// pendRename is the target side of a paired rename.
	pendRename
	// pendCreatedMoved is a path created and moved away inside one window.
	// It flushes as nothing and its rename target flushes as a Create.
	pendCreatedMoved
)

type pendingEntry struct {
	state pendingState
	from  string
	timer *time.Timer
	// generation guards against a timer that fired while the entry was
	// being updated.
	generation uint64
}

// coalescer merges raw events per path. With a zero window every event is
// emitted as it arrives.
type coalescer struct {
	mutex     sync.Mutex
	window    time.Duration
	notices   bool
	entries   map[string]*pendingEntry
	movedFrom string
	emit      func(Notice)
	stopped   bool
	nextGen   uint64
}

func newCoalescer(window time.Duration, notices bool, emit func(Notice)) *coalescer {
	return &coalescer{
		window:  window,
		notices: notices,
		entries: make(map[string]*pendingEntry),
		emit:    emit,
	}
}

func (c *coalescer) push(event rawEvent) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.stopped {
		return
	}

	if event.Op == opOverflow {
		c.emit(Notice{Kind: KindRescan})
		return
	}

	if c.window <= 0 {
		c.emit(rawNotice(event))
		return
	}

	if event.Op == opRename && event.OldPath != "" {
		c.applyLocked(rawEvent{Op: opRename, Path: event.OldPath})
		c.applyLocked(rawEvent{Op: opCreate, Path: event.Path})
		return
	}
	c.applyLocked(event)
}

func rawNotice(event rawEvent) Notice {
	switch event.Op {
	case opCreate:
		return Notice{Kind: KindCreate, Path: event.Path}
	case opWrite:
		return Notice{Kind: KindWrite, Path: event.Path}
	case opRemove:
		return Notice{Kind: KindRemove, Path: event.Path}
	case opRename:
		if event.OldPath != "" {
			return Notice{Kind: KindRename, Path: event.Path, From: event.OldPath, To: event.Path}
		}
		return Notice{Kind: KindRename, Path: event.Path, From: event.Path}
	case opChmod:
		return Notice{Kind: KindChmod, Path: event.Path}
	default:
		return Notice{Kind: KindOther, Path: event.Path}
	}
}

func (c *coalescer) applyLocked(event rawEvent) {
	path := event.Path
	entry, exists := c.entries[path]

	switch event.Op {
	case opCreate:
		if c.movedFrom == path {
			c.movedFrom = ""
		}
		if c.movedFrom != "" {
			from := c.movedFrom
			created := c.entries[from] != nil && c.entries[from].state == pendCreatedMoved
			c.dropLocked(from)
			if created {
				c.setLocked(path, pendCreate, "")
			} else {
				c.setLocked(path, pendRename, from)
			}
			return
		}
		if !exists || entry.state == pendChmod || entry.state == pendCreatedMoved {
			c.setLocked(path, pendCreate, "")
			return
		}
		if entry.state == pendRemove || entry.state == pendMovedFrom {
			c.setLocked(path, pendWrite, "")
			return
		}
		c.setLocked(path, entry.state, entry.from)

	case opWrite:
		if exists && entry.state == pendCreatedMoved {
			c.setLocked(path, pendCreate, "")
			return
		}
		if !exists || entry.state == pendChmod {
			if c.notices {
				c.emit(Notice{Kind: KindNoticeWrite, Path: path})
			}
			c.setLocked(path, pendWrite, "")
			return
		}
		switch entry.state {
		case pendRemove, pendMovedFrom:
			c.setLocked(path, pendWrite, "")
		default:
			c.setLocked(path, entry.state, entry.from)
		}

	case opRemove:
		if exists && (entry.state == pendCreate || entry.state == pendCreatedMoved) {
			c.dropLocked(path)
			return
		}
		if c.notices && (!exists || (entry.state != pendRemove && entry.state != pendMovedFrom)) {
			c.emit(Notice{Kind: KindNoticeRemove, Path: path})
		}
		c.setLocked(path, pendRemove, "")

	case opRename:
		if exists && entry.state == pendRemove {
			c.setLocked(path, pendRemove, "")
			return
		}
		if exists && (entry.state == pendCreate || entry.state == pendCreatedMoved) {
			c.setLocked(path, pendCreatedMoved, "")
			c.movedFrom = path
			return
		}
		c.setLocked(path, pendMovedFrom, "")
		c.movedFrom = path

	case opChmod:
		if !exists {
			c.setLocked(path, pendChmod, "")
			return
		}
		c.setLocked(path, entry.state, entry.from)
	}
}

// setLocked records the pending state for path and restarts its window.
func (c *coalescer) setLocked(path string, state pendingState, from string) {
	entry, ok := c.entries[path]
	if !ok {
		entry = &pendingEntry{}
		c.entries[path] = entry
	}
	entry.state = state
	entry.from = from
	if entry.timer != nil && entry.timer.Stop() {
		entry.timer.Reset(c.window)
		return
	}
	c.nextGen++
	generation := c.nextGen
	entry.generation = generation
	entry.timer = time.AfterFunc(c.window, func() {
		c.flush(path, generation)
	})
}

func (c *coalescer) dropLocked(path string) {
	entry, ok := c.entries[path]
	if !ok {
		return
	}
	if entry.timer != nil {
		entry.timer.Stop()
	}
	delete(c.entries, path)
	if c.movedFrom == path {
		c.movedFrom = ""
	}
}

func (c *coalescer) flush(path string, generation uint64) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.stopped {
		return
	}

	entry, ok := c.entries[path]
	if !ok || entry.generation != generation {
		return
	}
	delete(c.entries, path)
	if c.movedFrom == path {
		c.movedFrom = ""
	}

	switch entry.state {
	case pendCreate:
		c.emit(Notice{Kind: KindCreate, Path: path})
	case pendWrite:
		c.emit(Notice{Kind: KindWrite, Path: path})
	case pendRemove, pendMovedFrom:
		c.emit(Notice{Kind: KindRemove, Path: path})
	case pendChmod:
		c.emit(Notice{Kind: KindChmod, Path: path})
	case pendRename:
		c.emit(Notice{Kind: KindRename, Path: path, From: entry.from, To: path})
	}
}

func (c *coalescer) stop() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.stopped = true
	for _, entry := range c.entries {
		if entry.timer != nil {
			entry.timer.Stop()
		}
	}
	c.entries = nil
}
