// Copyright 2013 The wdlite Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/terrakuh/wdlite"
)

func newTitleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "title <url>",
		Short: "Print the title of a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd.Context(), args[0], func(ctx context.Context, s *wdlite.Session) error {
				title, err := s.Title(ctx)
				if err != nil {
					return fmt.Errorf("failed to get title: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), title)
				return nil
			})
		},
	}
}

func newSourceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "source <url>",
		Short: "Print the serialized DOM of a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd.Context(), args[0], func(ctx context.Context, s *wdlite.Session) error {
				source, err := s.PageSource(ctx)
				if err != nil {
					return fmt.Errorf("failed to get page source: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), source)
				return nil
			})
		},
	}
}

func newScreenshotCmd(a *app) *cobra.Command {
	var output string
	screenshotCmd := &cobra.Command{
		Use:   "screenshot <url>",
		Short: "Save a PNG screenshot of a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd.Context(), args[0], func(ctx context.Context, s *wdlite.Session) error {
				encoded, err := s.TakeScreenshot(ctx)
				if err != nil {
					return fmt.Errorf("failed to take screenshot: %w", err)
				}
				png, err := wdlite.DecodeScreenshot(encoded)
				if err != nil {
					return err
				}
				if err := os.WriteFile(output, png, 0o644); err != nil {
					return fmt.Errorf("failed to write screenshot: %w", err)
				}
				a.logger.Info("Screenshot saved", zap.String("path", output), zap.Int("bytes", len(png)))
				fmt.Fprintln(cmd.OutOrStdout(), output)
				return nil
			})
		},
	}
	screenshotCmd.Flags().StringVarP(&output, "output", "o", "screenshot.png", "file the PNG is written to")
	return screenshotCmd
}
