/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storekit

import "context"

// AsyncResult carries the single outcome of an asynchronous execution.
type AsyncResult[R any] struct {
	Result R
	Err    error
}

// executeAsync runs the blocking execution on a fresh goroutine and
// delivers its single outcome on a fresh buffered channel, then closes it.
// Every call performs fresh work: nothing is cached across calls, and
// concurrent calls are independent.
func executeAsync[R any](ctx context.Context, run func(context.Context) (R, error)) <-chan AsyncResult[R] {
	ch := make(chan AsyncResult[R], 1)
	go func() {
		defer close(ch)
		r, err := run(ctx)
		ch <- AsyncResult[R]{Result: r, Err: err}
	}()
	return ch
}
