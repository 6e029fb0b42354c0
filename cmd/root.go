// Copyright 2013 The wdlite Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmd implements wdctl, a command line front end of wdlite.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/terrakuh/wdlite/internal/config"
	"github.com/terrakuh/wdlite/internal/observability"
)

// app is the state shared by the commands of one root command instance.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	logger  *zap.Logger
}

// NewRootCommand builds a fresh command tree with its own viper instance, so
// flags of one invocation never leak into the next.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New(), logger: zap.NewNop()}
	config.SetDefaults(a.v)

	rootCmd := &cobra.Command{
		Use:           "wdctl",
		Short:         "wdctl drives a browser through a W3C WebDriver server.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialize()
		},
	}
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./wdctl.yaml)")
	flags.StringP("endpoint", "e", "", "WebDriver server URL (default http://localhost:9515)")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.Bool("headless", true, "start the browser without a window")
	flags.Duration("request-timeout", 0, "bound every WebDriver command, 0 means no bound")
	for key, name := range map[string]string{
		"webdriver.endpoint":        "endpoint",
		"logger.level":              "log-level",
		"browser.headless":          "headless",
		"webdriver.request_timeout": "request-timeout",
	} {
		// Lookup cannot fail, the flags are declared right above.
		_ = a.v.BindPFlag(key, flags.Lookup(name))
	}

	rootCmd.AddCommand(
		newTitleCmd(a),
		newSourceCmd(a),
		newScreenshotCmd(a),
		newFindCmd(a),
		newScriptCmd(a),
		newStatusCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs wdctl with the process arguments.
func Execute(ctx context.Context) error {
	defer observability.Sync()
	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		return err
	}
	return nil
}

// initialize reads the config file and WDLITE_* variables, then sets up logging.
func (a *app) initialize() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.AddConfigPath(".")
		a.v.SetConfigName("wdctl")
		a.v.SetConfigType("yaml")
	}
	a.v.SetEnvPrefix("WDLITE")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		// an explicit --config must exist, ./wdctl.yaml is optional
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg, err := config.NewConfigFromViper(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	observability.InitializeLogger(cfg.Logger)
	a.logger = observability.GetLogger()
	a.logger.Debug("Configuration loaded",
		zap.String("endpoint", cfg.WebDriver.Endpoint),
		zap.String("config_file", a.v.ConfigFileUsed()))
	return nil
}
