// Copyright 2013 The wdlite Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wdlite implements a client for the W3C WebDriver protocol. It talks to
// an already running driver (chromedriver, geckodriver, a Selenium grid...) over
// HTTP; starting the driver is left to the caller.
//
// See https://www.w3.org/TR/webdriver2/
//
// Every command takes a context and blocks until the remote end answered.
// Commands are independent: run them on goroutines (or with Go) to have several
// in flight, on the same session or not. Errors reported by the remote end are
// *CommandError values and can be matched against their Code:
//
//	caps := wdlite.MatchCapabilities(wdlite.ChromeCapabilities("--headless=new"))
//	session, err := wdlite.NewSession(ctx, "http://localhost:9515", caps)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer session.Close()
//	if err = session.Navigate(ctx, "https://go.dev"); err != nil {
//		log.Fatal(err)
//	}
//	elem, err := session.FindElement(ctx, wdlite.CSSSelector, "#nav")
//	switch {
//	case errors.Is(err, wdlite.StaleElementReference):
//		// retry the lookup
//	case err != nil:
//		log.Fatal(err)
//	case elem == nil:
//		// no such element
//	}
//
// Session.Close does not wait for the remote window to be closed; call
// Client.Wait before exiting if that matters.
package wdlite
