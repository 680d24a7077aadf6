package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	handlers "github.com/de-tools/commerce-atlas/pkg/handlers/dashboard"
	"github.com/de-tools/commerce-atlas/pkg/server"
	"github.com/de-tools/commerce-atlas/pkg/services/config"
	"github.com/de-tools/commerce-atlas/pkg/services/dataset"
	"github.com/de-tools/commerce-atlas/pkg/services/metrics"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the commerce analytics API server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the dashboard config file (defaults apply when omitted)")

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

	cache := dataset.NewCache()
	sessions := dataset.NewSessionStore()

	if cfg.Data.Dir != "" {
		provider := dataset.LocalFiles{Dir: cfg.Data.Dir}
		ds, err := cache.Load(ctx, provider)
		if err != nil {
			return fmt.Errorf("failed to load dataset from %q: %w", cfg.Data.Dir, err)
		}
		logger.Info().
			Str("dir", cfg.Data.Dir).
			Int("orders", len(ds.Orders)).
			Msg("local dataset loaded")
	} else {
		logger.Info().Msg("no data directory configured, waiting for an upload")
	}

	settings := metrics.Settings{TopCategories: cfg.Metrics.TopCategories}

	api := server.NewWebAPI(logger, server.Config{
		Addr:            net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		ShutdownTimeout: time.Duration(cfg.Server.ShutdownSeconds) * time.Second,
		Dependencies: server.Dependencies{
			Dashboard: handlers.NewHandler(cache, sessions, settings),
		},
	})

	return api.Start()
}
