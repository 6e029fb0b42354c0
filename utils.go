// Copyright 2013 The wdlite Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wdlite

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	json "github.com/json-iterator/go"
)

//W3C key of a web element reference. Older drivers use "ELEMENT".
const (
	webElementKey       = "element-6066-11e4-a52e-4f735466cecf"
	legacyWebElementKey = "ELEMENT"
)

//maximum number of body bytes written to the debug log
const headSize = 1024

func normalizeEndpoint(endpoint string) string {
	if endpoint != "" && !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}
	return endpoint
}

func (c *Client) resolve(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.endpoint + strings.TrimPrefix(path, "/")
}

func sessionPrefix(sessionID string) string {
	return "session/" + sessionID
}

func elementPrefix(sessionPrefix, elementID string) string {
	return sessionPrefix + "/element/" + elementID
}

func head(buf []byte) []byte {
	if len(buf) <= headSize {
		return buf
	}
	out := make([]byte, 0, headSize+32)
	out = append(out, buf[:headSize]...)
	return append(out, fmt.Sprintf(" ...%d more bytes", len(buf)-headSize)...)
}

func firstByte(data []byte) byte {
	if len(data) == 0 {
		return 0
	}
	return data[0]
}

func isObject(data []byte) bool { return firstByte(data) == '{' }
func isArray(data []byte) bool  { return firstByte(data) == '[' }
func isString(data []byte) bool { return firstByte(data) == '"' }

//elementID extracts the remote id from a web element reference. The id lives
//under an implementation defined key; only a single value is expected.
func elementID(data json.RawMessage) (string, error) {
	var ref map[string]json.RawMessage
	if err := json.Unmarshal(data, &ref); err != nil {
		return "", err
	}
	raw, found := ref[webElementKey]
	if !found {
		raw, found = ref[legacyWebElementKey]
	}
	if !found {
		keys := make([]string, 0, len(ref))
		for k := range ref {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		if len(keys) == 0 {
			return "", errors.New("empty element reference")
		}
		raw = ref[keys[0]]
	}
	if !isString(raw) {
		return "", fmt.Errorf("element reference is not a string: %s", raw)
	}
	var id string
	err := json.Unmarshal(raw, &id)
	return id, err
}

func decodeString(data json.RawMessage) (string, error) {
	if !isString(data) {
		return "", fmt.Errorf("expected a string value, got %q", head(data))
	}
	var s string
	err := json.Unmarshal(data, &s)
	return s, err
}

//decodeOptionalString treats a missing or null value as absent. Non string
//values are returned as their JSON text.
func decodeOptionalString(data json.RawMessage) (*string, error) {
	if data == nil {
		return nil, nil
	}
	if !isString(data) {
		s := string(data)
		return &s, nil
	}
	s, err := decodeString(data)
	return &s, err
}

func decodeBool(data json.RawMessage) (bool, error) {
	var b bool
	if data == nil {
		return false, errors.New("expected a boolean value, got nothing")
	}
	err := json.Unmarshal(data, &b)
	return b, err
}

func decodeRaw(data json.RawMessage) (json.RawMessage, error) {
	if data == nil {
		return json.RawMessage("null"), nil
	}
	return data, nil
}

func ignore(json.RawMessage) (struct{}, error) { return struct{}{}, nil }
