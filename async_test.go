// Copyright 2013 The wdlite Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wdlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestGo(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	r := <-Go(context.Background(), func(context.Context) (string, error) {
		return "Example Domain", nil
	})
	assert.Equal(t, "Example Domain", r.Value)
	assert.NoError(t, r.Err)

	boom := errors.New("boom")
	r2 := <-Go(context.Background(), func(context.Context) (int, error) {
		return 0, boom
	})
	assert.ErrorIs(t, r2.Err, boom)
}

func TestGo_UnreadResultDoesNotLeak(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	// nobody receives; the buffered channel lets the goroutine exit anyway
	done := make(chan struct{})
	_ = Go(context.Background(), func(context.Context) (bool, error) {
		defer close(done)
		return true, nil
	})
	<-done
}

func TestGo_Cancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ctx, cancel := context.WithCancel(context.Background())
	ch := Go(ctx, func(ctx context.Context) (string, error) {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(time.Minute):
			return "late", nil
		}
	})
	cancel()

	r := <-ch
	assert.ErrorIs(t, r.Err, context.Canceled)
	assert.Empty(t, r.Value)
}
