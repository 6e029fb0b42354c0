// Copyright 2013 The wdlite Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wdlite

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseResponse(t *testing.T) {
	var (
		scalar     = command{}
		structured = command{structured: true}
		optional   = command{optional: true}
	)
	tests := []struct {
		name   string
		status int
		body   string
		cmd    command
		want   string // payload, "" for none
		code   Code   // Success when no error is expected
	}{
		{"object value", 200, `{"value":{"a":1}}`, structured, `{"a":1}`, Success},
		{"array value", 200, `{"value":[1,2]}`, structured, `[1,2]`, Success},
		{"bare array", 200, `[{"ELEMENT":"a"}]`, structured, `[{"ELEMENT":"a"}]`, Success},
		{"scalar for scalar command", 200, `{"value":"Example"}`, scalar, `"Example"`, Success},
		{"null value", 200, `{"value":null}`, scalar, "", Success},
		{"missing value", 200, `{"sessionId":"x"}`, scalar, "", UnknownWebDriverError},
		{"missing value for optional command", 200, `{"sessionId":"x"}`, optional, "", Success},
		{"null for optional command", 200, `{"value":null}`, optional, "", Success},
		{"empty object", 200, `{}`, scalar, "", UnknownWebDriverError},
		{"surrounding whitespace", 200, " \n{\"value\":true}\n", scalar, `true`, Success},
		{"scalar for structured command", 200, `{"value":5}`, structured, "", UnknownWebDriverError},
		{"missing value for structured command", 200, `{"novalue":{}}`, structured, "", UnknownWebDriverError},
		{"null for structured command", 200, `{"value":null}`, structured, "", UnknownWebDriverError},
		{"not json", 200, `<html></html>`, scalar, "", UnknownWebDriverError},
		{"empty body", 200, ``, scalar, "", UnknownWebDriverError},
		{"top level scalar", 200, `"value"`, scalar, "", UnknownWebDriverError},
		{"webdriver error", 404, `{"value":{"error":"no such frame","message":"m"}}`, scalar, "", NoSuchFrame},
		{"error reported with 200", 200, `{"value":{"error":"timeout","message":"slow"}}`, scalar, "", Timeout},
		{"error status without payload", 500, `{"value":null}`, scalar, "", UnknownWebDriverError},
		{"non string error field is data", 200, `{"value":{"error":3}}`, structured, `{"error":3}`, Success},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := parseResponse(tt.status, []byte(tt.body), tt.cmd)
			if tt.code != Success {
				require.Error(t, err)
				assert.Equal(t, tt.code, CodeOf(err))
				assert.Nil(t, payload)
				return
			}
			require.NoError(t, err)
			if tt.want == "" {
				assert.Nil(t, payload)
				return
			}
			assert.JSONEq(t, tt.want, string(payload))
		})
	}
}

func TestInvalidMethod(t *testing.T) {
	d := newFakeDriver(t)
	c := d.newClient(t)

	_, err := c.do(context.Background(), command{method: http.MethodPut, path: "status"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid method: PUT")
	assert.ErrorIs(t, err, ErrInvalidCommand)
	assert.Equal(t, ConditionCaller, ConditionOf(err))
	assert.Empty(t, d.Requests())

	_, err = c.do(context.Background(), command{method: http.MethodPost, path: "status", params: params{"bad": make(chan int)}})
	assert.ErrorIs(t, err, ErrInvalidCommand)
	assert.Empty(t, d.Requests())
}

func TestAbsoluteCommandURL(t *testing.T) {
	d := newFakeDriver(t)
	d.on("GET", "/elsewhere/status", http.StatusOK, `{"value":{"ready":true,"message":""}}`)
	c := NewClient("http://127.0.0.1:1/", WithLogger(zap.NewNop()))

	_, err := c.do(context.Background(), command{method: http.MethodGet, path: d.URL + "/elsewhere/status"})
	require.NoError(t, err)
	assert.Equal(t, "/elsewhere/status", d.Last(t).Path)
}

// failingBody errors on the first read.
type failingBody struct{}

func (failingBody) Read([]byte) (int, error) { return 0, errors.New("connection reset") }
func (failingBody) Close() error             { return nil }

type doerFunc func(*http.Request) (*http.Response, error)

func (f doerFunc) Do(r *http.Request) (*http.Response, error) { return f(r) }

func TestReadFailure(t *testing.T) {
	c := NewClient("http://driver.invalid", WithHTTPClient(doerFunc(func(r *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusOK, Body: failingBody{}, Request: r}, nil
	})))

	_, err := c.Status(context.Background())
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "read", te.Op)
	assert.Equal(t, "http://driver.invalid/status", te.URL)
	assert.Equal(t, ConditionTransport, ConditionOf(err))
}

func TestCustomDoer(t *testing.T) {
	var seen *http.Request
	c := NewClient("http://driver.invalid/", WithHTTPClient(doerFunc(func(r *http.Request) (*http.Response, error) {
		seen = r
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(`{"value":{"ready":false,"message":"busy"}}`)),
			Request:    r,
		}, nil
	})))

	status, err := c.Status(context.Background())
	require.NoError(t, err)
	assert.False(t, status.Ready)
	assert.Equal(t, "busy", status.Message)
	require.NotNil(t, seen)
	assert.Equal(t, "http://driver.invalid/status", seen.URL.String())
}

func TestHead(t *testing.T) {
	short := []byte("short")
	assert.Equal(t, short, head(short))

	long := []byte(strings.Repeat("x", headSize+10))
	got := string(head(long))
	assert.True(t, strings.HasPrefix(got, strings.Repeat("x", headSize)))
	assert.True(t, strings.HasSuffix(got, " ...10 more bytes"))
}
