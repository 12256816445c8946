package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-ranker/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: "Start an HTTP server that ranks résumés posted to /rank. " +
		"When a database URL is configured, runs are saved and served under /runs.",
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}

	port := cfg.Port
	if servePort != 0 {
		port = servePort
	}

	srvCfg := server.Config{
		Port:    port,
		Ranking: cfg,
		Log:     log,
	}

	if cfg.DatabaseURL != "" {
		database, err := openStore(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer database.Close()
		srvCfg.Store = database
	} else {
		log.Warn("no database configured, run storage is disabled")
	}

	srv, err := server.New(srvCfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
