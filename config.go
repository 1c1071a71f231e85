package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

const envPrefix = "DOCS_MCP"

const (
	transportStdio = "stdio"
	transportSSE   = "sse"
	transportHTTP  = "http"
)

// Config holds the server settings. Values come from, in increasing order of
// precedence: defaults, the config file, the environment (DOCS_MCP_*, with an
// optional .env file) and command-line flags.
type Config struct {
	Transport string `mapstructure:"transport"`
	Addr      string `mapstructure:"addr"`
	BaseURL   string `mapstructure:"base_url"`
	Endpoint  string `mapstructure:"endpoint"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// flag name -> config key
var configFlags = map[string]string{
	"transport":  "transport",
	"addr":       "addr",
	"base-url":   "base_url",
	"endpoint":   "endpoint",
	"log-level":  "log_level",
	"log-format": "log_format",
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("transport", transportStdio)
	v.SetDefault("addr", ":8080")
	v.SetDefault("base_url", "http://localhost:8080")
	v.SetDefault("endpoint", "/mcp")
	v.SetDefault("log_level", "error")
	v.SetDefault("log_format", "json")
	return v
}

// addConfigFlags registers the server flags on cmd and its subcommands.
func addConfigFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.String("transport", transportStdio, "Transport to serve on: stdio, sse or http")
	f.String("addr", ":8080", "Listen address for the sse and http transports")
	f.String("base-url", "http://localhost:8080", "Public base URL advertised by the sse transport")
	f.String("endpoint", "/mcp", "Endpoint path for the http transport")
	f.String("log-level", "error", "Log level: debug, info, warn or error")
	f.String("log-format", "json", "Log format: json or console")
}

// bindConfigFlags makes flags set on cmd override every other source.
func bindConfigFlags(v *viper.Viper, cmd *cobra.Command) error {
	for flag, key := range configFlags {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}
	return nil
}

// loadDotEnv loads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// loadConfig reads the optional config file and returns the validated config.
func loadConfig(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Transport {
	case transportStdio:
	case transportSSE, transportHTTP:
		if c.Addr == "" {
			return fmt.Errorf("addr is required for the %s transport", c.Transport)
		}
	default:
		return fmt.Errorf("unknown transport %q: valid transports: stdio, sse, http", c.Transport)
	}

	if c.Transport == transportHTTP && !strings.HasPrefix(c.Endpoint, "/") {
		return fmt.Errorf("endpoint %q must start with /", c.Endpoint)
	}

	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("unknown log format %q: valid formats: json, console", c.LogFormat)
	}
	return nil
}
