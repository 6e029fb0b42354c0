// Copyright 2013 The wdlite Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wdlite

//ChromeOptions is the "goog:chromeOptions" capability understood by
//ChromeDriver. Empty fields are not sent.
//See https://chromedriver.chromium.org/capabilities.
type ChromeOptions struct {
	//Command-line arguments to use when starting Chrome. Arguments with an
	//associated value should be separated by a '=' sign, e.g.
	//"user-data-dir=/tmp/temp_profile".
	Args []string `json:"args,omitempty"`
	//Path to the Chrome executable to use.
	Binary string `json:"binary,omitempty"`
	//Base64 encoded packed extensions (.crx) to install on startup.
	Extensions []string `json:"extensions,omitempty"`
	//Preferences applied to the Local State file in the user data folder.
	LocalState map[string]interface{} `json:"localState,omitempty"`
	//Preferences applied to the user profile in use.
	Prefs map[string]interface{} `json:"prefs,omitempty"`
	//If true, Chrome is only quit when the session is quit, not when
	//ChromeDriver is killed.
	Detach bool `json:"detach,omitempty"`
	//Address of a Chrome debugger server to connect to, e.g. "127.0.0.1:38947".
	DebuggerAddress string `json:"debuggerAddress,omitempty"`
	//Switches ChromeDriver passes by default that should be left out. No "--" prefix.
	ExcludeSwitches []string `json:"excludeSwitches,omitempty"`
	//Directory to store Chrome minidumps (Linux only).
	MinidumpPath string `json:"minidumpPath,omitempty"`
	//Either "deviceName", or "deviceMetrics" and "userAgent".
	MobileEmulation map[string]interface{} `json:"mobileEmulation,omitempty"`
	PerfLoggingPrefs *PerfLoggingPrefs     `json:"perfLoggingPrefs,omitempty"`
	//Window types listed in the window handles, e.g. "webview".
	WindowTypes []string `json:"windowTypes,omitempty"`
}

//Performance logging preferences of ChromeOptions.
type PerfLoggingPrefs struct {
	//Collect events from the Network domain.
	EnableNetwork bool `json:"enableNetwork"`
	//Collect events from the Page domain.
	EnablePage bool `json:"enablePage"`
	//Comma separated Chrome tracing categories. Empty disables tracing.
	TraceCategories string `json:"traceCategories,omitempty"`
	//Milliseconds between DevTools trace buffer usage events.
	BufferUsageReportingInterval int `json:"bufferUsageReportingInterval"`
}

//ChromeDriver's own defaults.
func DefaultPerfLoggingPrefs() *PerfLoggingPrefs {
	return &PerfLoggingPrefs{
		EnableNetwork:                true,
		EnablePage:                   true,
		BufferUsageReportingInterval: 1000,
	}
}

//Chrome capabilities that start the browser with args.
func ChromeCapabilities(args ...string) BrowserCapabilities {
	return BrowserCapabilities{Chrome: &ChromeOptions{Args: args}}
}
