// Copyright 2013 The wdlite Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// status does not open a session, it only asks the server whether it could.
func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report whether the WebDriver server accepts new sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := a.newClient()
			status, err := client.Status(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to query %s: %w", client.Endpoint(), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ready: %t\nmessage: %s\n", status.Ready, status.Message)
			if !status.Ready {
				return fmt.Errorf("server at %s is not ready", client.Endpoint())
			}
			return nil
		},
	}
}
