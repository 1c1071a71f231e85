package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/stroppy-io/docs-mcp/internal/docstore"
)

// version is set by ldflags during release builds.
var version = "0.1.0"

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := newViper()
	var configFile, envFile string

	run := func(cmd *cobra.Command, _ []string) error {
		return runServe(cmd, v, configFile, envFile)
	}

	root := &cobra.Command{
		Use:   "docs-mcp",
		Short: "MCP server exposing an in-memory document set",
		Long: `docs-mcp serves a fixed set of documents over the Model Context Protocol.

Documents can be read and edited through tools, listed and fetched through
docs:// resources, and the format and summarize prompts produce canned
instructions for an agent. Running without a subcommand is the same as "serve".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          run,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "Path to a config file (yaml, json or toml)")
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path to a .env file; ignored when missing")
	addConfigFlags(root)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the documents over stdio, sse or http",
		Args:  cobra.NoArgs,
		RunE:  run,
	}

	root.AddCommand(serveCmd, newDocsCmd(), newVersionCmd())
	return root
}

func runServe(cmd *cobra.Command, v *viper.Viper, configFile, envFile string) error {
	if err := loadDotEnv(envFile); err != nil {
		return err
	}
	if err := bindConfigFlags(v, cmd); err != nil {
		return err
	}
	cfg, err := loadConfig(v, configFile)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg, zapcore.Lock(os.Stderr))
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := docstore.NewDefault()
	logger.Debug("document store ready", zap.Int("documents", store.Len()))

	return serve(ctx, cfg, newMCPServer(store, logger), logger, cmd.InOrStdin(), cmd.OutOrStdout())
}

func newDocsCmd() *cobra.Command {
	var showContent bool

	cmd := &cobra.Command{
		Use:   "docs",
		Short: "List the documents the server starts with",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, d := range docstore.Seed() {
				if showContent {
					fmt.Fprintf(out, "%-17s %s\n", d.ID, d.Content)
					continue
				}
				fmt.Fprintln(out, d.ID)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showContent, "content", false, "Print each document's content next to its ID")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the server version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", serverName, version)
		},
	}
}
