package main

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jonathan/cv-ranker/internal/config"
	"github.com/jonathan/cv-ranker/internal/db"
	"github.com/jonathan/cv-ranker/internal/ingestion"
	"github.com/jonathan/cv-ranker/internal/observability"
)

var (
	configPath string
	verbose    bool
	logLevel   string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: trace, debug, info, warn, error (overrides config)")
}

// setup resolves the configuration and builds the logger for a command.
// Logs go to the command's error stream so stdout carries only results.
func setup(cmd *cobra.Command) (*config.Config, *logrus.Entry, error) {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return nil, nil, err
	}

	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	if verbose {
		level = "debug"
	}

	log, err := observability.NewLogger(level, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return cfg, log.WithField("command", cmd.Name()), nil
}

// openStore connects to the configured database and applies migrations.
func openStore(ctx context.Context, cfg *config.Config, log *logrus.Entry) (*db.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("database URL is required: set %s or database_url in the config file", config.EnvDatabaseURL)
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Debug("database ready")
	return database, nil
}

func reportFailures(w io.Writer, failures []ingestion.FileFailure) {
	for _, f := range failures {
		fmt.Fprintf(w, "Skipped %s: %v\n", f.Path, f.Err)
	}
}
