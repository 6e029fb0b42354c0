// Copyright 2013 The wdlite Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/terrakuh/wdlite"
)

// maxElementReads bounds the concurrent element reads of one find.
const maxElementReads = 8

var strategies = map[string]wdlite.FindElementStrategy{
	"css":          wdlite.CSSSelector,
	"xpath":        wdlite.XPath,
	"link":         wdlite.LinkText,
	"partial-link": wdlite.PartialLinkText,
	"tag":          wdlite.TagName,
}

// parseStrategy accepts the short names above as well as the W3C names.
func parseStrategy(name string) (wdlite.FindElementStrategy, error) {
	if s, ok := strategies[strings.ToLower(name)]; ok {
		return s, nil
	}
	for _, s := range strategies {
		if string(s) == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown locator strategy %q (use css, xpath, link, partial-link or tag)", name)
}

func newFindCmd(a *app) *cobra.Command {
	var strategy string
	var attributes []string

	findCmd := &cobra.Command{
		Use:   "find <url> <selector>",
		Short: "Print the text of every element matching selector",
		Long: `Find prints one line per matching element, in document order: its
visible text followed by name=value for each requested attribute the
element carries.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			using, err := parseStrategy(strategy)
			if err != nil {
				return err
			}
			return a.withSession(cmd.Context(), args[0], func(ctx context.Context, s *wdlite.Session) error {
				elements, err := s.FindElements(ctx, using, args[1])
				if err != nil {
					return fmt.Errorf("failed to find %q: %w", args[1], err)
				}
				a.logger.Debug("Elements found", zap.String("selector", args[1]), zap.Int("count", len(elements)))

				lines, err := describeElements(ctx, elements, attributes)
				if err != nil {
					return err
				}
				for _, line := range lines {
					fmt.Fprintln(cmd.OutOrStdout(), line)
				}
				return nil
			})
		},
	}
	findCmd.Flags().StringVarP(&strategy, "strategy", "s", "css", "locator strategy: css, xpath, link, partial-link or tag")
	findCmd.Flags().StringSliceVarP(&attributes, "attr", "a", nil, "attribute to print after the text, may be repeated")
	return findCmd
}

// describeElements reads the text and attributes of all elements concurrently
// and renders one line per element, keeping the order of elements.
func describeElements(ctx context.Context, elements []*wdlite.Element, attributes []string) ([]string, error) {
	lines := make([]string, len(elements))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxElementReads)

	for i, e := range elements {
		i, e := i, e
		g.Go(func() error {
			text, err := e.Text(ctx)
			if err != nil {
				return fmt.Errorf("failed to read text of element %s: %w", e.ID(), err)
			}
			var b strings.Builder
			b.WriteString(text)
			for _, name := range attributes {
				value, found, err := e.Attribute(ctx, name)
				if err != nil {
					return fmt.Errorf("failed to read attribute %q of element %s: %w", name, e.ID(), err)
				}
				if found {
					fmt.Fprintf(&b, "\t%s=%s", name, value)
				}
			}
			lines[i] = b.String()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return lines, nil
}
