package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/resume-builder/internal/atsclient"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/server"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/workspace"
	"github.com/spf13/cobra"
)

var (
	serveAddr        string
	serveStorage     string
	serveStoragePath string
	serveDatabaseURL string
	serveAnalyzerURL string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that holds the live builder document and exposes REST
endpoints for editing, serializing, analyzing and saving it as drafts.

Drafts are enabled when a PostgreSQL URL is configured.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default :8080)")
	serveCmd.Flags().StringVar(&serveStorage, "storage", "", "Storage backend: memory, file, sqlite or postgres (default file)")
	serveCmd.Flags().StringVar(&serveStoragePath, "storage-path", "", "File or SQLite path for the storage backend")
	serveCmd.Flags().StringVar(&serveDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	serveCmd.Flags().StringVar(&serveAnalyzerURL, "analyzer-url", "", "Base URL of the ATS analysis service (defaults to ATS_SERVICE_URL env var)")
	rootCmd.AddCommand(serveCmd)
}

func applyServeFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("addr") {
		cfg.Addr = serveAddr
	}
	if cmd.Flags().Changed("storage") {
		cfg.Storage = serveStorage
	}
	if cmd.Flags().Changed("storage-path") {
		cfg.StoragePath = serveStoragePath
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = serveDatabaseURL
	}
	if cmd.Flags().Changed("analyzer-url") {
		cfg.AnalyzerURL = serveAnalyzerURL
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(cmd, os.Getenv)
	if err != nil {
		return err
	}
	applyServeFlags(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()

	// Drafts and the postgres backend share one pool
	var database *db.DB
	if cfg.DatabaseURL != "" {
		database, err = db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()

		if err := database.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("failed to prepare database schema: %w", err)
		}
	}

	store, closeStore, err := storage.Open(ctx, storage.Options{
		Backend: cfg.Storage,
		Path:    cfg.StoragePath,
		DB:      database,
	})
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", cfg.Storage, err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: failed to close storage: %v\n", err)
		}
	}()

	analyzer := atsclient.New(cfg.AnalyzerURL, atsclient.WithRateLimit(cfg.AnalyzerRPS, cfg.AnalyzerBurst))
	ws := workspace.New(ctx, store, analyzer)

	if cfg.Verbose {
		_, _ = fmt.Fprintf(os.Stdout, "Storage:  %s %s\n", cfg.Storage, cfg.StoragePath)
		_, _ = fmt.Fprintf(os.Stdout, "Analyzer: %s\n", analyzer.BaseURL())
		_, _ = fmt.Fprintf(os.Stdout, "Drafts:   %t\n", database != nil)
		state := ws.Snapshot()
		observability.NewPrinter(os.Stdout).PrintBuilderState(&state, ws.TemplateKey())
	}

	srvCfg := server.Config{
		Addr:      cfg.Addr,
		Workspace: ws,
	}
	if database != nil {
		srvCfg.Drafts = database
	}

	srv, err := server.New(srvCfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
