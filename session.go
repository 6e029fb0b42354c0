// Copyright 2013 The wdlite Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wdlite

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strings"
	"sync/atomic"

	json "github.com/json-iterator/go"
	"go.uber.org/zap"
)

//A session on the remote end. Sessions are only handed out once the remote
//end has assigned an id, so every command is issued against a live id.
type Session struct {
	client *Client
	id     string
	//"session/<id>", the root of every session command
	prefix string
	closed atomic.Bool
}

//NewSession creates a Client for endpoint and opens a session on it.
//capabilities is sent verbatim under the "capabilities" key; see
//MatchCapabilities for a W3C shaped payload.
func NewSession(ctx context.Context, endpoint string, capabilities interface{}, opts ...ClientOption) (*Session, error) {
	return NewClient(endpoint, opts...).NewSession(ctx, capabilities)
}

//Create a new session. On failure no Session is returned.
func (c *Client) NewSession(ctx context.Context, capabilities interface{}) (*Session, error) {
	if capabilities == nil {
		capabilities = params{}
	}
	p := params{"capabilities": capabilities}
	session, err := execute(ctx, c, command{method: http.MethodPost, path: "session", params: p, structured: true},
		func(data json.RawMessage) (*Session, error) {
			var created struct {
				SessionID string `json:"sessionId"`
			}
			if err := json.Unmarshal(data, &created); err != nil {
				return nil, err
			}
			if created.SessionID == "" {
				return nil, errors.New("response carries no sessionId")
			}
			return newSession(c, created.SessionID), nil
		})
	if err != nil {
		c.logger.Debug("session not created", zap.Error(err))
		return nil, err
	}
	c.logger.Debug("session created", zap.String("session_id", session.id))
	return session, nil
}

func newSession(c *Client, id string) *Session {
	return &Session{client: c, id: id, prefix: sessionPrefix(id)}
}

//The WebDriver session id.
func (s *Session) ID() string { return s.id }

//The path prefix of the session commands, "session/<id>".
func (s *Session) Prefix() string { return s.prefix }

func (s *Session) Client() *Client { return s.client }

//Close releases the session: "DELETE <prefix>/window" is dispatched without
//waiting for its outcome. Closing the last window ends the remote session.
//Only the first call sends the request; it always returns nil. Client.Wait
//blocks until the request completed.
func (s *Session) Close() error {
	if s.closed.CompareAndSwap(false, true) {
		s.client.dispatch(command{method: http.MethodDelete, path: s.prefix + "/window"})
	}
	return nil
}

//Delete the session and wait for the remote end to acknowledge it. A later
//Close is a no-op.
func (s *Session) Quit(ctx context.Context) error {
	s.closed.Store(true)
	_, err := execute(ctx, s.client, command{method: http.MethodDelete, path: s.prefix}, ignore)
	return err
}

//dispatch sends cmd on its own goroutine; failures are only logged.
func (c *Client) dispatch(cmd command) {
	c.teardown.Add(1)
	go func() {
		defer c.teardown.Done()
		ctx := context.Background()
		if c.teardownTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, c.teardownTimeout)
			defer cancel()
		}
		if _, err := c.do(ctx, cmd); err != nil {
			c.logger.Warn("teardown request failed",
				zap.String("method", cmd.method),
				zap.String("path", cmd.path),
				zap.Error(err))
		}
	}()
}

//Navigate to a new URL.
func (s *Session) Navigate(ctx context.Context, url string) error {
	p := params{"url": url}
	_, err := execute(ctx, s.client, command{method: http.MethodPost, path: s.prefix + "/url", params: p}, ignore)
	return err
}

//Retrieve the URL of the current page. The remote end serves it from the
//title endpoint, so this issues the same request as Title.
func (s *Session) CurrentURL(ctx context.Context) (string, error) {
	return s.getString(ctx, s.prefix+"/title")
}

//Get the current page title.
func (s *Session) Title(ctx context.Context) (string, error) {
	return s.getString(ctx, s.prefix+"/title")
}

//Get the current page source.
func (s *Session) PageSource(ctx context.Context) (string, error) {
	return s.getString(ctx, s.prefix+"/source")
}

//Navigate backwards in the browser history, if possible.
func (s *Session) Back(ctx context.Context) error {
	return s.post(ctx, s.prefix+"/back", nil)
}

//Navigate forwards in the browser history, if possible.
func (s *Session) Forward(ctx context.Context) error {
	return s.post(ctx, s.prefix+"/forward", nil)
}

//Refresh the current page.
func (s *Session) Refresh(ctx context.Context) error {
	return s.post(ctx, s.prefix+"/refresh", nil)
}

//Configure the script, page load and implicit wait timeouts.
func (s *Session) SetTimeouts(ctx context.Context, t Timeouts) error {
	return s.post(ctx, s.prefix+"/timeouts", t.params())
}

//Take a screenshot of the current page. The result is base64 encoded PNG data.
func (s *Session) TakeScreenshot(ctx context.Context) (string, error) {
	return s.getString(ctx, s.prefix+"/screenshot")
}

//Get the element on the page that currently has focus.
func (s *Session) ActiveElement(ctx context.Context) (*Element, error) {
	return execute(ctx, s.client, command{method: http.MethodGet, path: s.prefix + "/element/active", structured: true},
		func(data json.RawMessage) (*Element, error) {
			id, err := elementID(data)
			if err != nil {
				return nil, err
			}
			return newElement(s, id), nil
		})
}

//Search for an element on the page, starting from the document root.
//A nil Element and a nil error are returned when nothing matches.
func (s *Session) FindElement(ctx context.Context, using FindElementStrategy, value string) (*Element, error) {
	return s.findElement(ctx, s.prefix, using, value)
}

//Search for multiple elements on the page, starting from the document root.
//Elements are in document order as returned by the remote end.
func (s *Session) FindElements(ctx context.Context, using FindElementStrategy, value string) ([]*Element, error) {
	return s.findElements(ctx, s.prefix, using, value)
}

//Execute a synchronous script in the current browsing context and return the
//JSON encoded result.
func (s *Session) ExecuteScript(ctx context.Context, script string, args ...interface{}) (json.RawMessage, error) {
	if args == nil {
		args = []interface{}{}
	}
	p := params{"script": script, "args": args}
	return execute(ctx, s.client, command{method: http.MethodPost, path: s.prefix + "/execute/sync", params: p}, decodeRaw)
}

//Execute script as the body of an async function. Each entry of arguments
//becomes a named parameter of that function, in sorted key order. The
//function's result, or the error it throws, is the command's result.
func (s *Session) ExecuteAsyncScript(ctx context.Context, script string, arguments map[string]interface{}) (json.RawMessage, error) {
	wrapped, args := wrapAsyncScript(script, arguments)
	p := params{"script": wrapped, "args": args}
	return execute(ctx, s.client, command{method: http.MethodPost, path: s.prefix + "/execute/async", params: p}, decodeRaw)
}

//The last argument of an async script is the completion callback.
const asyncScriptTrailer = ").apply(null, arguments).then(arguments[arguments.length - 1], arguments[arguments.length - 1])"

func wrapAsyncScript(script string, arguments map[string]interface{}) (string, []interface{}) {
	names := make([]string, 0, len(arguments))
	for name := range arguments {
		names = append(names, name)
	}
	sort.Strings(names)
	args := make([]interface{}, len(names))
	for i, name := range names {
		args[i] = arguments[name]
	}

	var b strings.Builder
	b.Grow(len(script) + len(asyncScriptTrailer) + 32)
	b.WriteString("(async function(")
	b.WriteString(strings.Join(names, ","))
	b.WriteString("){")
	b.WriteString(script)
	b.WriteString("}")
	b.WriteString(asyncScriptTrailer)
	return b.String(), args
}

func (s *Session) findElement(ctx context.Context, prefix string, using FindElementStrategy, value string) (*Element, error) {
	p := params{"using": using, "value": value}
	element, err := execute(ctx, s.client, command{method: http.MethodPost, path: prefix + "/element", params: p, structured: true},
		func(data json.RawMessage) (*Element, error) {
			id, err := elementID(data)
			if err != nil {
				return nil, err
			}
			return newElement(s, id), nil
		})
	if errors.Is(err, NoSuchElement) {
		return nil, nil
	}
	return element, err
}

func (s *Session) findElements(ctx context.Context, prefix string, using FindElementStrategy, value string) ([]*Element, error) {
	p := params{"using": using, "value": value}
	elements, err := execute(ctx, s.client, command{method: http.MethodPost, path: prefix + "/elements", params: p, structured: true},
		func(data json.RawMessage) ([]*Element, error) {
			var refs []json.RawMessage
			if err := json.Unmarshal(data, &refs); err != nil {
				return nil, err
			}
			elements := make([]*Element, len(refs))
			for i, ref := range refs {
				id, err := elementID(ref)
				if err != nil {
					return nil, err
				}
				elements[i] = newElement(s, id)
			}
			return elements, nil
		})
	if err != nil {
		return []*Element{}, err
	}
	return elements, nil
}

func (s *Session) getString(ctx context.Context, path string) (string, error) {
	return execute(ctx, s.client, command{method: http.MethodGet, path: path}, decodeString)
}

func (s *Session) post(ctx context.Context, path string, p params) error {
	if p == nil {
		p = params{}
	}
	_, err := execute(ctx, s.client, command{method: http.MethodPost, path: path, params: p}, ignore)
	return err
}
