package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"newsroom-api/config"
	"newsroom-api/database"
	"newsroom-api/jobs"
	"newsroom-api/middleware"
	"newsroom-api/routes"
	"newsroom-api/services"
)

func main() {
	cfg := config.Load()

	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	db, err := database.Initialize(cfg)
	if err != nil {
		fatal("failed to connect to database", err)
	}

	if err := database.Migrate(db); err != nil {
		fatal("failed to migrate database", err)
	}

	if err := database.SeedData(db, cfg); err != nil {
		slog.Warn("failed to seed database", "error", err)
	}

	emailService := services.NewEmailService(cfg)
	if !emailService.Enabled() {
		slog.Warn("SMTP_HOST is empty, approval emails will only be logged")
	}

	svc, err := routes.NewServices(db, cfg, emailService)
	if err != nil {
		fatal("failed to build services", err)
	}

	gin.SetMode(cfg.GinMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(routes.SetupCORS(cfg.CORSOrigins))
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.ErrorHandler())

	stop := make(chan struct{})
	routes.SetupRoutes(router, svc, cfg, stop)

	publicationJob := jobs.NewPublicationJob(svc.Publication, cfg.JobInterval)
	publicationJob.Start()

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go func() {
		slog.Info("starting newsroom API server", "port", cfg.Port, "db_driver", cfg.DBDriver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal("failed to start server", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown", "error", err)
	}

	publicationJob.Stop()
	close(stop)

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
