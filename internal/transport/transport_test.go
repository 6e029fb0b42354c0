// Copyright 2013 The wdlite Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transport

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Zero(t, cfg.RequestTimeout, "commands are not bounded by default")
	assert.Equal(t, DefaultDialTimeout, cfg.DialTimeout)
	assert.Equal(t, DefaultMaxIdleConnsPerHost, cfg.MaxIdleConnsPerHost)
	assert.False(t, cfg.IgnoreTLSErrors)
}

func TestNewHTTPTransport(t *testing.T) {
	t.Run("applies config", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.ResponseHeaderTimeout = 3 * time.Second
		cfg.MaxIdleConnsPerHost = 2
		cfg.IgnoreTLSErrors = true

		tr := NewHTTPTransport(cfg)
		assert.Equal(t, 3*time.Second, tr.ResponseHeaderTimeout)
		assert.Equal(t, 2, tr.MaxIdleConnsPerHost)
		assert.Equal(t, DefaultIdleConnTimeout, tr.IdleConnTimeout)
		require.NotNil(t, tr.TLSClientConfig)
		assert.True(t, tr.TLSClientConfig.InsecureSkipVerify)
	})

	t.Run("nil config uses defaults", func(t *testing.T) {
		tr := NewHTTPTransport(nil)
		assert.Equal(t, DefaultMaxIdleConns, tr.MaxIdleConns)
		assert.False(t, tr.TLSClientConfig.InsecureSkipVerify)
	})

	t.Run("force http2 registers h2", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.ForceHTTP2 = true
		cfg.Logger = zaptest.NewLogger(t)

		tr := NewHTTPTransport(cfg)
		assert.Contains(t, tr.TLSClientConfig.NextProtos, "h2")
	})
}

func TestNewHTTPClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"value":{"ready":true,"message":""}}`)
	}))
	defer server.Close()

	cfg := DefaultConfig()
	cfg.RequestTimeout = 5 * time.Second
	client := NewHTTPClient(cfg)
	assert.Equal(t, 5*time.Second, client.Timeout)

	resp, err := client.Get(server.URL + "/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":{"ready":true,"message":""}}`, string(body))
}
