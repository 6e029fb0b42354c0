// Copyright 2013 The wdlite Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the wdctl configuration from defaults, an optional
// YAML file, WDLITE_* environment variables and command line flags.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

// Config holds the entire application configuration.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger" yaml:"logger"`
	WebDriver WebDriverConfig `mapstructure:"webdriver" yaml:"webdriver"`
	Browser   BrowserConfig   `mapstructure:"browser" yaml:"browser"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color names used for the console level column.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// WebDriverConfig describes the remote end and how commands are sent to it.
type WebDriverConfig struct {
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`
	// Zero means commands are not bounded by the transport.
	RequestTimeout      time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
	TeardownTimeout     time.Duration `mapstructure:"teardown_timeout" yaml:"teardown_timeout"`
	RateLimit           float64       `mapstructure:"rate_limit" yaml:"rate_limit"`
	Burst               int           `mapstructure:"burst" yaml:"burst"`
	MaxIdleConnsPerHost int           `mapstructure:"max_idle_conns_per_host" yaml:"max_idle_conns_per_host"`
	IgnoreTLSErrors     bool          `mapstructure:"ignore_tls_errors" yaml:"ignore_tls_errors"`
	ForceHTTP2          bool          `mapstructure:"force_http2" yaml:"force_http2"`
}

// BrowserConfig is turned into the capabilities of new sessions.
type BrowserConfig struct {
	Name     string   `mapstructure:"name" yaml:"name"`
	Headless bool     `mapstructure:"headless" yaml:"headless"`
	Binary   string   `mapstructure:"binary" yaml:"binary"`
	Args     []string `mapstructure:"args" yaml:"args"`
}

// NewDefaultConfig creates a new configuration struct populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for all configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "wdctl")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")

	// -- WebDriver --
	v.SetDefault("webdriver.endpoint", "http://localhost:9515")
	v.SetDefault("webdriver.request_timeout", "0s")
	v.SetDefault("webdriver.teardown_timeout", "10s")
	v.SetDefault("webdriver.rate_limit", 0.0)
	v.SetDefault("webdriver.burst", 1)
	v.SetDefault("webdriver.max_idle_conns_per_host", 8)
	v.SetDefault("webdriver.ignore_tls_errors", false)
	v.SetDefault("webdriver.force_http2", false)

	// -- Browser --
	v.SetDefault("browser.name", "chrome")
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.binary", "")
	v.SetDefault("browser.args", []string{})
}

// NewConfigFromViper creates a new configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	if c.WebDriver.Endpoint == "" {
		return fmt.Errorf("webdriver.endpoint is a required configuration field")
	}
	u, err := url.Parse(c.WebDriver.Endpoint)
	if err != nil {
		return fmt.Errorf("webdriver.endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("webdriver.endpoint must be an http or https URL, got %q", c.WebDriver.Endpoint)
	}
	if c.WebDriver.RequestTimeout < 0 || c.WebDriver.TeardownTimeout < 0 {
		return fmt.Errorf("webdriver timeouts must not be negative")
	}
	if c.WebDriver.RateLimit < 0 {
		return fmt.Errorf("webdriver.rate_limit must not be negative")
	}
	if c.WebDriver.RateLimit > 0 && c.WebDriver.Burst <= 0 {
		return fmt.Errorf("webdriver.burst must be a positive integer when rate_limit is set")
	}
	return nil
}
