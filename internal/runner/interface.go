package runner

import (
	"context"

	"github.com/nguyentantai21042004/rerun/internal/watcher"
)

// Runner drives the watch-and-run loop until shutdown or a stop-on-error exit
type Runner interface {
	Run(ctx context.Context) error
}

// Source yields change notifications, blocking between them
type Source interface {
	Recv(ctx context.Context) (watcher.Notice, error)
}
