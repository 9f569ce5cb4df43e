package app

import (
	"context"

	"go.trai.ch/zerr"
)

// waitFor blocks until the state of a scope satisfies done.
// The current state is checked after subscribing, so no change is missed.
func waitFor[S any](
	ctx context.Context,
	subscribe func(func(S)) func(),
	current func() S,
	done func(S) bool,
) (S, error) {
	ch := make(chan S, 1)
	offer := func(st S) {
		if !done(st) {
			return
		}
		select {
		case ch <- st:
		default:
		}
	}

	unsubscribe := subscribe(offer)
	defer unsubscribe()
	offer(current())

	select {
	case st := <-ch:
		return st, nil
	case <-ctx.Done():
		var zero S
		return zero, zerr.Wrap(ctx.Err(), "interrupted while waiting for the job API")
	}
}
