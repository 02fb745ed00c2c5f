package watcher

import (
	"time"

	"github.com/nguyentantai21042004/rerun/internal/logger"
)

// Options controls how a Watcher observes its path
type Options struct {
	Path      string
	Recursive bool
	// Debounce is the coalescing window; zero delivers raw events.
	Debounce time.Duration
	// Notices enables early NoticeWrite/NoticeRemove delivery when Debounce > 0.
	Notices bool
	// Poll selects the polling backend with this interval when > 0.
	Poll time.Duration
	// BufferSize bounds undelivered notifications; extra ones are dropped.
	BufferSize int
	Logger     logger.Logger
}

// rawOp is a single backend operation before coalescing.
type rawOp uint8

const (
	opCreate rawOp = iota
	opWrite
	opRemove
	opRename
	opChmod
	opOverflow
)

// rawEvent is what a backend reports. For opRename, OldPath is set only when
// the backend already knows both ends of the move.
type rawEvent struct {
	Op      rawOp
	Path    string
	OldPath string
}

// backend is a raw filesystem event producer.
type backend interface {
	watch(path string, recursive bool) error
	start(onEvent func(rawEvent), onError func(error))
	close() error
}
