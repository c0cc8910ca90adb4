// Package main provides the CLI entrypoint for glimt.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/glimt/internal/config"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		logLevel   string
		configPath string
	}
	logger *slog.Logger
)

// rootCmd represents the base command. Called with four integers it draws a
// highlight rectangle; annotation kinds beyond that are subcommands.
var rootCmd = &cobra.Command{
	Use:   "glimt X Y WIDTH HEIGHT",
	Short: "Ephemeral visual annotations for Linux desktops",
	Long: `glimt draws short-lived, click-through annotations on top of the
desktop: a highlighted rectangle, or a small text popup anchored to a
screen region. Annotations fade in, hold for a moment, fade out and
disappear on their own.

Coordinates are global desktop pixels.

Examples:
  # Highlight a 400x300 region at 100,200
  glimt 100 200 400 300

  # Show a popup above the same region
  glimt popup "saved!" 100 200 400 300

  # List detected screens
  glimt screens`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	Args:    cobra.ExactArgs(4),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
	RunE: runHighlight,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&globalOpts.logLevel, "log-level", "warn",
		"Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/glimt/config.toml)")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	switch strings.ToLower(globalOpts.logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger = slog.New(handler)
	slog.SetDefault(logger)
}
