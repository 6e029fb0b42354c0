// Copyright 2013 The wdlite Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wdlite

import (
	json "github.com/json-iterator/go"
)

//Capabilities is a free form capability object.
type Capabilities map[string]interface{}

//BrowserCapabilities are the general W3C capabilities plus the vendor specific
//options. Fields left at their zero value are not sent.
//See https://w3c.github.io/webdriver/#capabilities.
type BrowserCapabilities struct {
	//Identifies the user agent. Defaults to "chrome" when Chrome is set.
	BrowserName string `json:"browserName,omitempty"`
	//Identifies the version of the user agent.
	BrowserVersion      string `json:"browserVersion,omitempty"`
	PlatformName        string `json:"platformName,omitempty"`
	AcceptInsecureCerts bool   `json:"acceptInsecureCerts,omitempty"`
	//"none", "eager" or "normal".
	PageLoadStrategy string `json:"pageLoadStrategy,omitempty"`

	Chrome *ChromeOptions `json:"goog:chromeOptions,omitempty"`
}

type browserCapabilities BrowserCapabilities

func (c BrowserCapabilities) MarshalJSON() ([]byte, error) {
	v := browserCapabilities(c)
	if v.BrowserName == "" && v.Chrome != nil {
		v.BrowserName = "chrome"
	}
	return json.Marshal(v)
}

//CapabilityRequest is the W3C capability negotiation payload: the remote end
//merges AlwaysMatch with each FirstMatch entry in turn and uses the first
//combination it can satisfy.
type CapabilityRequest struct {
	AlwaysMatch interface{}   `json:"alwaysMatch,omitempty"`
	FirstMatch  []interface{} `json:"firstMatch,omitempty"`
}

//MatchCapabilities builds the value passed to NewSession. A nil alwaysMatch is omitted.
func MatchCapabilities(alwaysMatch interface{}, firstMatch ...interface{}) CapabilityRequest {
	return CapabilityRequest{AlwaysMatch: alwaysMatch, FirstMatch: firstMatch}
}
