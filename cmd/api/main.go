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

	"github.com/piyush-pb/Personal-Finance-Tracker/internal/config"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/database"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/logger"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/server"
)

// @title           Personal Finance Tracker API
// @version         1.0
// @description     Track spending transactions and monthly category budgets.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api

const shutdownTimeout = 10 * time.Second

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(ctx, appConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := dbManager.Close(closeCtx); err != nil {
			log.Warnf("failed to close store: %v", err)
		}
	}()

	// Run migrations
	if err := dbManager.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	tel, err := newTelemetry(appConfig, log)
	if err != nil {
		return fmt.Errorf("failed to set up telemetry: %w", err)
	}
	defer tel.Close()

	router := server.NewRouter(server.Deps{
		Stores:          dbManager.Stores(),
		Events:          tel.Events,
		Reporter:        tel.Reporter,
		CORSAllowOrigin: appConfig.CORSAllowOrigin,
	})

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting finance API on port %s (store: %s)", appConfig.Port, appConfig.StoreDriver)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
