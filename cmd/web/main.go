package main

import (
	"fmt"
	"net"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/pbi-atlas/pkg/server"
	"github.com/de-tools/pbi-atlas/pkg/services/config"
	"github.com/de-tools/pbi-atlas/pkg/services/reports"
	"github.com/de-tools/pbi-atlas/pkg/store/duckdb"
	"github.com/de-tools/pbi-atlas/pkg/store/duckdb/catalog"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for PBI Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "pbi-atlas.yaml",
		"Path to the configuration file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	parsed, err := reports.ParseAll(ctx, cfg.ExtractedDir)
	if err != nil {
		return fmt.Errorf("failed to parse reports: %w", err)
	}
	logger.Info().Int("count", len(parsed)).Msg("reports loaded")

	explorer := reports.NewExplorer(parsed)

	db, err := duckdb.NewDB(duckdb.Settings{
		DbPath: cfg.CatalogPath,
	})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	defer db.Close()

	catalogStore, err := catalog.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create catalog store: %w", err)
	}

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	api := server.NewWebAPI(server.Config{
		Addr: net.JoinHostPort(host, port),
		Dependencies: server.Dependencies{
			Explorer: explorer,
			Catalog:  catalogStore,
			Logger:   logger,
		},
	})

	return api.Start()
}
