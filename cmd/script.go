// Copyright 2013 The wdlite Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"context"
	"fmt"
	"strings"

	json "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/terrakuh/wdlite"
)

func newScriptCmd(a *app) *cobra.Command {
	var async bool
	var rawArgs []string

	scriptCmd := &cobra.Command{
		Use:   "script <url> <script>",
		Short: "Run JavaScript in a page and print its JSON result",
		Long: `Script runs a function body in the page and prints the JSON encoded result.

Without --async every --arg is a positional argument, available as
arguments[0], arguments[1], ... With --async the body runs inside an async
function and every --arg must be key=value, key becoming a parameter name.
Values that are valid JSON are passed decoded, anything else as a string.`,
		Example: `  wdctl script https://example.com 'return document.title'
  wdctl script https://example.com 'return arguments[0] * 2' --arg 21
  wdctl script --async https://example.com 'return await fetch(u).then(r => r.status)' --arg u=/robots.txt`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var run func(context.Context, *wdlite.Session) (json.RawMessage, error)
			if async {
				named, err := parseNamedArgs(rawArgs)
				if err != nil {
					return err
				}
				run = func(ctx context.Context, s *wdlite.Session) (json.RawMessage, error) {
					return s.ExecuteAsyncScript(ctx, args[1], named)
				}
			} else {
				positional := make([]interface{}, len(rawArgs))
				for i, raw := range rawArgs {
					positional[i] = parseArgValue(raw)
				}
				run = func(ctx context.Context, s *wdlite.Session) (json.RawMessage, error) {
					return s.ExecuteScript(ctx, args[1], positional...)
				}
			}

			return a.withSession(cmd.Context(), args[0], func(ctx context.Context, s *wdlite.Session) error {
				result, err := run(ctx, s)
				if err != nil {
					return fmt.Errorf("script failed: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(result))
				return nil
			})
		},
	}
	scriptCmd.Flags().BoolVar(&async, "async", false, "run the script as the body of an async function")
	scriptCmd.Flags().StringArrayVar(&rawArgs, "arg", nil, "script argument, may be repeated")
	return scriptCmd
}

func parseNamedArgs(raw []string) (map[string]interface{}, error) {
	named := make(map[string]interface{}, len(raw))
	for _, entry := range raw {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid argument %q: async arguments must be key=value", entry)
		}
		named[key] = parseArgValue(value)
	}
	return named, nil
}

func parseArgValue(raw string) interface{} {
	var v interface{}
	if json.Valid([]byte(raw)) && json.Unmarshal([]byte(raw), &v) == nil {
		return v
	}
	return raw
}
