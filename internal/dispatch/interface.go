package dispatch

import (
	"context"
	"errors"
)

// ErrStopOnError is returned by Dispatch when a run failed and the
// stop-on-error policy asks the whole process to terminate.
var ErrStopOnError = errors.New("command failed with stop-on-error set")

// Dispatcher runs the configured command once per call
type Dispatcher interface {
	Dispatch(ctx context.Context) (Outcome, error)
}
