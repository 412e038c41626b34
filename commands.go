package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/isdelr/shopsmart-be/internal/api"
	"github.com/isdelr/shopsmart-be/internal/auth"
	"github.com/isdelr/shopsmart-be/internal/config"
	"github.com/isdelr/shopsmart-be/internal/database"
	"github.com/isdelr/shopsmart-be/internal/logger"
	"github.com/isdelr/shopsmart-be/internal/maintenance"
	"github.com/isdelr/shopsmart-be/internal/metrics"
	"github.com/isdelr/shopsmart-be/internal/services"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var (
	portOverride int
	logLevel     string
)

// NewRootCmd creates the root command. Running it without a subcommand serves the API.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "shopsmart-be",
		Short:         "ShopSmart storefront authentication API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}

	cmd.PersistentFlags().IntVar(&portOverride, "port", 0, "listen port (overrides PORT)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")

	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  runServe,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE:  runMigrate,
	})

	return cmd
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	if portOverride > 0 {
		cfg.ServerPort = portOverride
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	logger.Init(cfg.LogLevel, !cfg.Production)
	return cfg, nil
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer db.Close()

	return database.Migrate(cmd.Context(), db)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(cmd.Context(), db); err != nil {
		return err
	}

	m := metrics.New()

	// Set up services
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	users := services.NewUserService(db)
	authService := services.NewAuthService(users, auth.NewBcryptHasher(auth.DefaultHashCost), tokens)

	scheduler := maintenance.NewScheduler(db, m)
	if cfg.MaintenanceSchedule != "" {
		if err := scheduler.Start(cfg.MaintenanceSchedule); err != nil {
			return err
		}
		defer scheduler.Stop()
	}

	router := api.NewRouter(api.Options{
		AuthService:    authService,
		Tokens:         tokens,
		Metrics:        m,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-quit:
	}
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("Server exiting")
	return nil
}
