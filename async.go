// Copyright 2013 The wdlite Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wdlite

import "context"

//Result is the outcome of a command run with Go: either Value or Err is set.
type Result[T any] struct {
	Value T
	Err   error
}

//Go runs fn on its own goroutine and delivers its outcome on the returned
//channel, which receives exactly one Result and is never closed. Cancelling
//ctx aborts the request in flight; the Result then carries a *TransportError.
//
//	title := wdlite.Go(ctx, session.Title)
//	source := wdlite.Go(ctx, session.PageSource)
//	t, s := <-title, <-source
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) <-chan Result[T] {
	ch := make(chan Result[T], 1)
	go func() {
		v, err := fn(ctx)
		ch <- Result[T]{Value: v, Err: err}
	}()
	return ch
}
