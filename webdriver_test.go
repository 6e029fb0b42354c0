// Copyright 2013 The wdlite Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wdlite

import (
	"testing"
	"time"
	"unicode/utf8"

	json "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeoutsParams(t *testing.T) {
	tests := []struct {
		name     string
		timeouts Timeouts
		want     string
	}{
		{"none", Timeouts{}, `{}`},
		{"all", Timeouts{Script: 30 * time.Second, PageLoad: 5 * time.Minute, Implicit: 0}, `{"script":30000,"pageLoad":300000}`},
		{"sub millisecond is truncated", Timeouts{Implicit: 1500 * time.Microsecond}, `{"implicit":1}`},
		{"negative is ignored", Timeouts{Script: -time.Second}, `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.timeouts.params())
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}

func TestDecodeScreenshot(t *testing.T) {
	png, err := DecodeScreenshot("iVBORw0KGgo=")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, png)

	_, err = DecodeScreenshot("not base64!")
	assert.Error(t, err)
}

func TestKeys(t *testing.T) {
	keys := []string{KeyNull, KeyCancel, KeyBackSpace, KeyTab, KeyReturn, KeyEnter, KeyShift, KeyControl, KeyAlt, KeyEscape, KeyCommand}
	for _, k := range keys {
		r, size := utf8.DecodeRuneInString(k)
		assert.Equal(t, len(k), size, "%q is a single code point", k)
		assert.True(t, r >= 0xE000 && r <= 0xE03D, "%U is in the WebDriver key range", r)
	}
	assert.Equal(t, "\uE000", KeyNull)
	assert.Equal(t, "\uE03D", KeyCommand)
}

func TestEndpointNormalization(t *testing.T) {
	c := NewClient("http://localhost:9515")
	assert.Equal(t, "http://localhost:9515/", c.Endpoint())
	assert.Equal(t, "http://localhost:9515/session/abc123/title", c.resolve("session/abc123/title"))
	assert.Equal(t, "http://localhost:9515/status", c.resolve("/status"))
	assert.Equal(t, "https://grid.example/wd/hub/status", c.resolve("https://grid.example/wd/hub/status"))

	assert.Equal(t, "session/abc123", sessionPrefix("abc123"))
	assert.Equal(t, "session/abc123/element/e1", elementPrefix("session/abc123", "e1"))
}
