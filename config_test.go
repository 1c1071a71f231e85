package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(newViper(), "")
	require.NoError(t, err)

	assert.Equal(t, &Config{
		Transport: "stdio",
		Addr:      ":8080",
		BaseURL:   "http://localhost:8080",
		Endpoint:  "/mcp",
		LogLevel:  "error",
		LogFormat: "json",
	}, cfg)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("DOCS_MCP_TRANSPORT", "http")
	t.Setenv("DOCS_MCP_ADDR", "127.0.0.1:9090")
	t.Setenv("DOCS_MCP_LOG_LEVEL", "debug")

	cfg, err := loadConfig(newViper(), "")
	require.NoError(t, err)

	assert.Equal(t, "http", cfg.Transport)
	assert.Equal(t, "127.0.0.1:9090", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/mcp", cfg.Endpoint)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs-mcp.yaml")
	require.NoError(t, os.WriteFile(path, []byte("transport: sse\nbase_url: http://docs.internal:8080\nlog_format: console\n"), 0o600))

	cfg, err := loadConfig(newViper(), path)
	require.NoError(t, err)

	assert.Equal(t, "sse", cfg.Transport)
	assert.Equal(t, "http://docs.internal:8080", cfg.BaseURL)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := loadConfig(newViper(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.yaml")
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("DOCS_MCP_TRANSPORT", "sse")

	cmd := &cobra.Command{Use: "test"}
	addConfigFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--transport", "http", "--endpoint", "/docs"}))

	v := newViper()
	require.NoError(t, bindConfigFlags(v, cmd))

	cfg, err := loadConfig(v, "")
	require.NoError(t, err)
	assert.Equal(t, "http", cfg.Transport)
	assert.Equal(t, "/docs", cfg.Endpoint)
}

func TestLoadConfig_UnsetFlagsDoNotMaskEnv(t *testing.T) {
	t.Setenv("DOCS_MCP_LOG_LEVEL", "info")

	cmd := &cobra.Command{Use: "test"}
	addConfigFlags(cmd)
	require.NoError(t, cmd.ParseFlags(nil))

	v := newViper()
	require.NoError(t, bindConfigFlags(v, cmd))

	cfg, err := loadConfig(v, "")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestConfigValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Transport: "stdio",
			Addr:      ":8080",
			Endpoint:  "/mcp",
			LogLevel:  "error",
			LogFormat: "json",
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "unknown transport", mutate: func(c *Config) { c.Transport = "grpc" }, wantErr: `unknown transport "grpc"`},
		{name: "http without addr", mutate: func(c *Config) { c.Transport = "http"; c.Addr = "" }, wantErr: "addr is required"},
		{name: "stdio ignores addr", mutate: func(c *Config) { c.Addr = "" }},
		{name: "relative endpoint", mutate: func(c *Config) { c.Transport = "http"; c.Endpoint = "mcp" }, wantErr: "must start with /"},
		{name: "bad level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: "invalid log level"},
		{name: "bad format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: `unknown log format "xml"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DOCS_MCP_LOG_FORMAT=console\n"), 0o600))
	// registered so the variable is restored after the test
	t.Setenv("DOCS_MCP_LOG_FORMAT", "")
	require.NoError(t, os.Unsetenv("DOCS_MCP_LOG_FORMAT"))

	require.NoError(t, loadDotEnv(path))

	cfg, err := loadConfig(newViper(), "")
	require.NoError(t, err)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoadDotEnv_DoesNotOverrideEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DOCS_MCP_ENDPOINT=/from-file\n"), 0o600))
	t.Setenv("DOCS_MCP_ENDPOINT", "/from-env")

	require.NoError(t, loadDotEnv(path))
	assert.Equal(t, "/from-env", os.Getenv("DOCS_MCP_ENDPOINT"))
}

func TestLoadDotEnv_MissingFileIgnored(t *testing.T) {
	assert.NoError(t, loadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
	assert.NoError(t, loadDotEnv(""))
}
