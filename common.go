// Copyright 2013 The wdlite Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wdlite

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	json "github.com/json-iterator/go"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/terrakuh/wdlite/internal/transport"
)

//Doer sends an HTTP request and returns its response. *http.Client satisfies it.
//It must be safe for concurrent use: every command of every session created
//from the same Client goes through it.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

//Client is the handle on a remote WebDriver endpoint. It owns the transport
//shared by all the sessions it creates. A Client is safe for concurrent use.
type Client struct {
	endpoint        string
	http            Doer
	logger          *zap.Logger
	limiter         *rate.Limiter
	teardownTimeout time.Duration
	teardown        sync.WaitGroup
}

type ClientOption func(*Client)

//Use d instead of the default pooled HTTP client.
func WithHTTPClient(d Doer) ClientOption {
	return func(c *Client) {
		if d != nil {
			c.http = d
		}
	}
}

func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

//Pace outgoing commands to r per second with the given burst. The wait
//happens before the request is started and honors the command's context.
func WithRateLimit(r rate.Limit, burst int) ClientOption {
	return func(c *Client) {
		if r > 0 {
			if burst < 1 {
				burst = 1
			}
			c.limiter = rate.NewLimiter(r, burst)
		}
	}
}

//Bound the fire-and-forget requests issued by Session.Close. Zero means no bound.
func WithTeardownTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.teardownTimeout = d
	}
}

//NewClient returns a Client for the WebDriver server at endpoint, for example
//"http://localhost:9515". No request is sent.
func NewClient(endpoint string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint: normalizeEndpoint(endpoint),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = transport.NewHTTPClient(transport.DefaultConfig())
	}
	return c
}

//The normalized (slash terminated) endpoint URL.
func (c *Client) Endpoint() string { return c.endpoint }

//Wait blocks until every teardown request dispatched by Session.Close has
//completed. Call it before the process exits if their delivery matters.
func (c *Client) Wait() {
	c.teardown.Wait()
}

//Query the server's status.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	return execute(ctx, c, command{method: http.MethodGet, path: "status", structured: true},
		func(data json.RawMessage) (*Status, error) {
			status := &Status{}
			err := json.Unmarshal(data, status)
			return status, err
		})
}

//typing saver
type params map[string]interface{}

//One logical WebDriver command.
type command struct {
	method string
	//Relative to the endpoint, or an absolute URL.
	path   string
	params interface{}
	//The payload must be a JSON object or array.
	structured bool
	//A response without a "value" member means an absent value.
	optional bool
}

func newRequest(ctx context.Context, method, url string, data []byte) (*http.Request, error) {
	var body io.Reader
	if data != nil {
		body = bytes.NewReader(data)
	}
	request, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	if data != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	request.Header.Set("Accept", "application/json")
	return request, nil
}

//execute runs cmd and hands the payload of a successful response to decode.
//decode is never called when the command failed.
func execute[T any](ctx context.Context, c *Client, cmd command, decode func(json.RawMessage) (T, error)) (T, error) {
	var zero T
	data, err := c.do(ctx, cmd)
	if err != nil {
		return zero, err
	}
	v, err := decode(data)
	if err != nil {
		return zero, newMalformedError(0, "decode %s %s: %w", cmd.method, cmd.path, err)
	}
	return v, nil
}

//communicate with the server. Exactly one request is sent per call.
func (c *Client) do(ctx context.Context, cmd command) (json.RawMessage, error) {
	switch cmd.method {
	case http.MethodGet, http.MethodPost, http.MethodDelete:
	default:
		return nil, fmt.Errorf("%w: invalid method: %s", ErrInvalidCommand, cmd.method)
	}
	url := c.resolve(cmd.path)
	logger := c.logger.With(
		zap.String("command_id", uuid.NewString()),
		zap.String("method", cmd.method),
		zap.String("url", url),
	)

	var data []byte
	if cmd.method == http.MethodPost && cmd.params == nil {
		cmd.params = params{}
	}
	if cmd.params != nil {
		var err error
		if data, err = json.Marshal(cmd.params); err != nil {
			return nil, fmt.Errorf("%w: encode %s %s: %v", ErrInvalidCommand, cmd.method, url, err)
		}
		logger.Debug("sending", zap.ByteString("body", head(data)))
	}
	request, err := newRequest(ctx, cmd.method, url, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCommand, err)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &TransportError{Op: "start", Method: cmd.method, URL: url, Err: err}
		}
	}

	start := time.Now()
	response, err := c.http.Do(request)
	if err != nil {
		logger.Debug("request failed", zap.Error(err))
		return nil, &TransportError{Op: "start", Method: cmd.method, URL: url, Err: err}
	}
	defer response.Body.Close()

	buf, err := io.ReadAll(response.Body)
	if err != nil {
		logger.Debug("reading response failed", zap.Error(err))
		return nil, &TransportError{Op: "read", Method: cmd.method, URL: url, Err: err}
	}
	logger.Debug("received",
		zap.Int("status", response.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
		zap.ByteString("body", head(buf)),
	)
	return parseResponse(response.StatusCode, buf, cmd)
}

//parseResponse classifies a buffered response body and returns the payload of
//a successful command.
func parseResponse(status int, buf []byte, cmd command) (json.RawMessage, error) {
	buf = bytes.TrimSpace(buf)
	if !json.Valid(buf) {
		return nil, newMalformedError(status, "response is not valid JSON")
	}
	//the payload of "find elements" may arrive bare
	if isArray(buf) {
		return json.RawMessage(buf), nil
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(buf, &envelope); err != nil {
		return nil, newMalformedError(status, "response must be a JSON object")
	}
	value, found := envelope["value"]
	if found && isObject(value) {
		if err := parseError(status, value); err != nil {
			return nil, err
		}
	}
	if status >= http.StatusBadRequest {
		return nil, newMalformedError(status, "error status without error payload")
	}
	if !found {
		if cmd.optional {
			return nil, nil
		}
		return nil, newMalformedError(status, "response has no value")
	}
	if cmd.structured && !(isObject(value) || isArray(value)) {
		return nil, newMalformedError(status, "response value must be a JSON object or array")
	}
	if bytes.Equal(value, []byte("null")) {
		return nil, nil
	}
	return value, nil
}

//parseError returns a *CommandError if value carries a string "error" field.
func parseError(status int, value json.RawMessage) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(value, &fields); err != nil {
		return nil
	}
	raw, found := fields["error"]
	if !found {
		return nil
	}
	var identifier string
	if err := json.Unmarshal(raw, &identifier); err != nil || !isString(raw) {
		return nil
	}
	commandError := &CommandError{
		Code:       ParseCode(identifier),
		ErrorType:  identifier,
		StatusCode: status,
	}
	// message and stacktrace are informative only
	_ = json.Unmarshal(fields["message"], &commandError.Message)
	_ = json.Unmarshal(fields["stacktrace"], &commandError.Stacktrace)
	return commandError
}
