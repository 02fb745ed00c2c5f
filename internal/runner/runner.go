package runner

import (
	"context"
	"fmt"
)

// Run dispatches once up front when immediate is set, then waits for
// notifications and dispatches on every qualifying one. Commands run one at a
// time; changes made while a command runs are not queued behind it.
//
// Run returns ctx.Err() on shutdown, or the dispatcher's error when it asks
// to stop.
func (r *implRunner) Run(ctx context.Context) error {
	if r.immediate {
		r.logger.Debug(ctx, "Immediate run before watching")
		if _, err := r.dispatcher.Dispatch(ctx); err != nil {
			return err
		}
	}

	for {
		notice, err := r.source.Recv(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			// Receive errors never end the loop.
			fmt.Fprintf(r.out, "watch error: %v\n", err)
			continue
		}

		fmt.Fprintln(r.out, notice)
		if !notice.Qualifies() {
			r.logger.Debug(ctx, "Ignoring %s", notice.Kind)
			continue
		}

		if _, err := r.dispatcher.Dispatch(ctx); err != nil {
			return err
		}
	}
}
