// Copyright 2013 The wdlite Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wdlite

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// request is what the fake driver saw of one command.
type request struct {
	Method string
	Path   string
	Body   string
	Header http.Header
}

type reply struct {
	status int
	body   string
}

// fakeDriver is a scriptable WebDriver remote end. Routes are keyed by
// "METHOD /path"; unknown routes answer 404 "unknown command".
type fakeDriver struct {
	*httptest.Server

	mu       sync.Mutex
	routes   map[string]reply
	requests []request
}

func newFakeDriver(t *testing.T) *fakeDriver {
	t.Helper()
	d := &fakeDriver{routes: map[string]reply{}}
	d.Server = httptest.NewServer(http.HandlerFunc(d.serve))
	t.Cleanup(d.Close)
	return d
}

func (d *fakeDriver) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	key := r.Method + " " + r.URL.EscapedPath()

	d.mu.Lock()
	d.requests = append(d.requests, request{Method: r.Method, Path: r.URL.EscapedPath(), Body: string(body), Header: r.Header.Clone()})
	rep, found := d.routes[key]
	d.mu.Unlock()

	if !found {
		rep = reply{http.StatusNotFound, `{"value":{"error":"unknown command","message":"` + key + `","stacktrace":""}}`}
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(rep.status)
	_, _ = io.WriteString(w, rep.body)
}

// on makes the driver answer method path with status and body.
func (d *fakeDriver) on(method, path string, status int, body string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.routes[method+" "+path] = reply{status, body}
}

func (d *fakeDriver) Requests() []request {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]request(nil), d.requests...)
}

// Last returns the most recent request.
func (d *fakeDriver) Last(t *testing.T) request {
	t.Helper()
	requests := d.Requests()
	require.NotEmpty(t, requests, "no request was sent")
	return requests[len(requests)-1]
}

func (d *fakeDriver) reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.requests = nil
}

func (d *fakeDriver) newClient(t *testing.T, opts ...ClientOption) *Client {
	t.Helper()
	opts = append([]ClientOption{WithLogger(zaptest.NewLogger(t))}, opts...)
	c := NewClient(d.URL, opts...)
	// teardown requests must finish while the test, and its logger, is alive
	t.Cleanup(c.Wait)
	return c
}

// newSession opens session "abc123" and forgets the requests sent so far.
func (d *fakeDriver) newSession(t *testing.T, opts ...ClientOption) *Session {
	t.Helper()
	d.on("POST", "/session", http.StatusOK, `{"value":{"sessionId":"abc123","capabilities":{"browserName":"chrome"}}}`)
	s, err := d.newClient(t, opts...).NewSession(context.Background(), nil)
	require.NoError(t, err)
	d.reset()
	return s
}
