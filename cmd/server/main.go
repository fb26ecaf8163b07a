// Package main provides the entry point for the HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	athleteRouter "github.com/perftrack/perftrack/internal/athlete/router"
	"github.com/perftrack/perftrack/internal/config"
	"github.com/perftrack/perftrack/internal/database/database"
	"github.com/perftrack/perftrack/internal/database/migrate"
	"github.com/perftrack/perftrack/internal/health"
	measurementRouter "github.com/perftrack/perftrack/internal/measurement/router"
	"github.com/perftrack/perftrack/internal/middleware"
	orgRouter "github.com/perftrack/perftrack/internal/organization/router"
	rosterRouter "github.com/perftrack/perftrack/internal/roster/router"
	statisticsRouter "github.com/perftrack/perftrack/internal/statistics/router"
	teamRouter "github.com/perftrack/perftrack/internal/team/router"
	"github.com/perftrack/perftrack/pkg/logger"
)

func main() {
	// .env is optional; real deployments set variables directly.
	_ = godotenv.Load()

	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	appLogger, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		_ = appLogger.Sync()
	}()

	db, err := database.New()
	if err != nil {
		appLogger.Fatalw("failed to connect to database", "error", err)
	}
	defer func() {
		if closeErr := database.Close(db); closeErr != nil {
			appLogger.Errorw("failed to close database connection", "error", closeErr)
		}
	}()

	if err := migrate.Migrate(db); err != nil {
		appLogger.Fatalw("failed to apply migrations", "error", err)
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(middleware.Recovery(appLogger))
	r.Use(middleware.Logger(appLogger))

	healthHandler := health.New(db, appLogger)
	r.GET("/health", healthHandler.Check)

	orgRouter.RegisterRoutes(r, db, appLogger)
	athleteRouter.RegisterRoutes(r, db, appLogger)
	teamRouter.RegisterRoutes(r, db, appLogger)
	rosterRouter.RegisterRoutes(r, db, appLogger)
	measurementRouter.RegisterRoutes(r, db, appLogger)
	statisticsRouter.RegisterRoutes(r, db, appLogger)

	srv := &http.Server{
		Addr:         cfg.Server.GetAddress(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Infow("starting server", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatalw("server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	appLogger.Infow("shutting down", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Errorw("graceful shutdown failed", "error", err)
	}
}
