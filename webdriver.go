// Copyright 2013 The wdlite Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wdlite

import (
	"encoding/base64"
	"time"
)

//Server readiness as reported by GET /status.
type Status struct {
	Ready   bool   `json:"ready"`
	Message string `json:"message"`
}

type FindElementStrategy string

const (
	//Returns an element matching a CSS selector.
	CSSSelector = FindElementStrategy("css selector")
	//Returns an anchor element whose visible text matches the search value.
	LinkText = FindElementStrategy("link text")
	//Returns an anchor element whose visible text partially matches the search value.
	PartialLinkText = FindElementStrategy("partial link text")
	//Returns an element whose tag name matches the search value.
	TagName = FindElementStrategy("tag name")
	//Returns an element matching an XPath expression.
	XPath = FindElementStrategy("xpath")
)

//Position and size of an element in CSS pixels.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

//Session timeouts. Zero values are left untouched on the remote end.
type Timeouts struct {
	Script   time.Duration
	PageLoad time.Duration
	Implicit time.Duration
}

func (t Timeouts) params() params {
	p := params{}
	if t.Script > 0 {
		p["script"] = t.Script.Milliseconds()
	}
	if t.PageLoad > 0 {
		p["pageLoad"] = t.PageLoad.Milliseconds()
	}
	if t.Implicit > 0 {
		p["implicit"] = t.Implicit.Milliseconds()
	}
	return p
}

//DecodeScreenshot turns the base64 payload of a screenshot command into PNG bytes.
func DecodeScreenshot(encoded string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(encoded)
}
