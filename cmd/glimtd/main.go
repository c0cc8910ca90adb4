// Package main is the entry point for the glimtd annotation daemon.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jmylchreest/glimt/internal/config"
	"github.com/jmylchreest/glimt/internal/daemon"
	"github.com/jmylchreest/glimt/internal/dbus"
)

var (
	// Build-time variables
	version = "dev"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to config file (default: ~/.config/glimt/config.toml)")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("glimtd version", version)
		os.Exit(0)
	}

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(*logLevel),
	}))
	slog.SetDefault(logger)

	logger.Info("starting glimtd", "version", version)

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	d := daemon.New(cfg, version, logger)
	if err := d.Start(); err != nil {
		logger.Error("failed to start daemon", "error", err)
		os.Exit(1)
	}

	// Watch the config file for hot-reload
	watchPath := *configPath
	if watchPath == "" {
		watchPath = config.ConfigPath()
	}
	watcher, err := daemon.NewConfigWatcher(watchPath, logger, d.ApplyConfig, nil)
	if err != nil {
		logger.Warn("config hot-reload disabled", "error", err)
		watcher = nil
	} else if err := watcher.Start(); err != nil {
		logger.Warn("config hot-reload disabled", "error", err)
		_ = watcher.Stop()
		watcher = nil
	}

	logger.Info("glimtd ready", "dbus_interface", dbus.DBusInterface)

	// Set up signal handling for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Wait for shutdown signal
	sig := <-sigCh
	logger.Info("received signal, shutting down", "signal", sig)

	if watcher != nil {
		if err := watcher.Stop(); err != nil {
			logger.Warn("error stopping config watcher", "error", err)
		}
	}
	d.Stop()

	logger.Info("glimtd stopped")
}

// parseLevel maps a -log-level value to a slog level, defaulting to info.
func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
