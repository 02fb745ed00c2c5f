package watcher

import "context"

// Watcher delivers coalesced change notifications for one watched path
type Watcher interface {
	// Recv blocks until a notification, a watch error or ctx cancellation.
	Recv(ctx context.Context) (Notice, error)
	Close() error
}
