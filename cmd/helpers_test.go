// Copyright 2013 The wdlite Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	json "github.com/json-iterator/go"
)

const w3cElement = "element-6066-11e4-a52e-4f735466cecf"

// fakeDriver is a minimal WebDriver server holding a single session "s1" on
// a page with two links.
type fakeDriver struct {
	*httptest.Server

	mu       sync.Mutex
	requests []string
	bodies   map[string][]byte
	ready    bool
}

func newFakeDriver(t *testing.T) *fakeDriver {
	t.Helper()
	d := &fakeDriver{bodies: map[string][]byte{}, ready: true}
	d.Server = httptest.NewServer(http.HandlerFunc(d.serve))
	t.Cleanup(d.Close)
	return d
}

func (d *fakeDriver) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	key := r.Method + " " + r.URL.Path

	d.mu.Lock()
	d.requests = append(d.requests, key)
	d.bodies[key] = body
	ready := d.ready
	d.mu.Unlock()

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	var value interface{}
	switch key {
	case "GET /status":
		value = map[string]interface{}{"ready": ready, "message": "ChromeDriver ready for new sessions."}
	case "POST /session":
		value = map[string]interface{}{"sessionId": "s1", "capabilities": map[string]interface{}{"browserName": "chrome"}}
	case "POST /session/s1/url", "DELETE /session/s1/window":
		value = nil
	case "GET /session/s1/title":
		value = "Example Domain"
	case "GET /session/s1/source":
		value = "<html><body><a href=\"/one\">one</a><a>two</a></body></html>"
	case "GET /session/s1/screenshot":
		value = base64.StdEncoding.EncodeToString([]byte("\x89PNG fake"))
	case "POST /session/s1/elements":
		value = []interface{}{
			map[string]string{w3cElement: "e1"},
			map[string]string{w3cElement: "e2"},
		}
	case "GET /session/s1/element/e1/text":
		value = "one"
	case "GET /session/s1/element/e2/text":
		value = "two"
	case "GET /session/s1/element/e1/attribute/href":
		value = "/one"
	case "GET /session/s1/element/e2/attribute/href":
		value = nil
	case "POST /session/s1/execute/sync", "POST /session/s1/execute/async":
		var p struct {
			Args []interface{} `json:"args"`
		}
		_ = json.Unmarshal(body, &p)
		value = p.Args
	default:
		w.WriteHeader(http.StatusNotFound)
		value = map[string]interface{}{"error": "unknown command", "message": key, "stacktrace": ""}
	}
	out, _ := json.Marshal(map[string]interface{}{"value": value})
	_, _ = w.Write(out)
}

func (d *fakeDriver) setReady(ready bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ready = ready
}

func (d *fakeDriver) Requests() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.requests...)
}

func (d *fakeDriver) Body(key string) []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.bodies[key]
}

// runCommand executes a fresh wdctl command tree against the fake driver.
func runCommand(t *testing.T, d *fakeDriver, args ...string) (string, error) {
	t.Helper()
	rootCmd := NewRootCommand()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	if d != nil {
		args = append([]string{"--endpoint", d.URL}, args...)
	}
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}
