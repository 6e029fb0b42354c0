// Copyright 2013 The wdlite Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/terrakuh/wdlite"
	"github.com/terrakuh/wdlite/internal/config"
	"github.com/terrakuh/wdlite/internal/transport"
)

// newClient builds a wdlite.Client from the webdriver section of the config.
func (a *app) newClient() *wdlite.Client {
	wd := a.cfg.WebDriver
	tc := transport.DefaultConfig()
	tc.RequestTimeout = wd.RequestTimeout
	tc.IgnoreTLSErrors = wd.IgnoreTLSErrors
	tc.ForceHTTP2 = wd.ForceHTTP2
	if wd.MaxIdleConnsPerHost > 0 {
		tc.MaxIdleConnsPerHost = wd.MaxIdleConnsPerHost
	}
	tc.Logger = a.logger

	return wdlite.NewClient(wd.Endpoint,
		wdlite.WithHTTPClient(transport.NewHTTPClient(tc)),
		wdlite.WithLogger(a.logger.Named("webdriver")),
		wdlite.WithRateLimit(rate.Limit(wd.RateLimit), wd.Burst),
		wdlite.WithTeardownTimeout(wd.TeardownTimeout),
	)
}

// withSession opens a session, navigates to url unless it is empty and hands
// the session to fn. The session is closed, and its teardown awaited, before
// withSession returns.
func (a *app) withSession(ctx context.Context, url string, fn func(context.Context, *wdlite.Session) error) error {
	client := a.newClient()
	session, err := client.NewSession(ctx, browserCapabilities(a.cfg.Browser))
	if err != nil {
		return fmt.Errorf("failed to create session at %s: %w", client.Endpoint(), err)
	}
	defer client.Wait()
	defer session.Close()
	a.logger.Debug("Session created", zap.String("session_id", session.ID()))

	if url != "" {
		if err := session.Navigate(ctx, url); err != nil {
			return fmt.Errorf("failed to navigate to %s: %w", url, err)
		}
	}
	return fn(ctx, session)
}

// browserCapabilities turns the browser section of the config into a W3C
// capability request.
func browserCapabilities(b config.BrowserConfig) wdlite.CapabilityRequest {
	name := strings.ToLower(b.Name)
	switch name {
	case "", "chrome", "chromium":
		args := append([]string(nil), b.Args...)
		if b.Headless {
			args = append(args, "--headless=new")
		}
		caps := wdlite.ChromeCapabilities(args...)
		caps.Chrome.Binary = b.Binary
		return wdlite.MatchCapabilities(caps)
	case "firefox":
		args := append([]string(nil), b.Args...)
		if b.Headless {
			args = append(args, "-headless")
		}
		options := wdlite.Capabilities{}
		if len(args) > 0 {
			options["args"] = args
		}
		if b.Binary != "" {
			options["binary"] = b.Binary
		}
		return wdlite.MatchCapabilities(wdlite.Capabilities{
			"browserName":        "firefox",
			"moz:firefoxOptions": options,
		})
	default:
		return wdlite.MatchCapabilities(wdlite.BrowserCapabilities{BrowserName: b.Name})
	}
}
