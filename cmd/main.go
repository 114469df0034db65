package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vidtube/internal/config"
	"vidtube/internal/handlers"
	"vidtube/internal/logger"
	"vidtube/internal/repository"
	"vidtube/internal/server"
	"vidtube/internal/service"
	"vidtube/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// @title           vidtube API
// @version         1.0
// @description     Video sharing backend: registration, auth with rotating refresh tokens, channels and watch history.
// @BasePath        /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		// logger level comes from config; fall back to a default logger here
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	log := logger.Get(cfg.LogLevel)

	db, err := repository.InitDB(cfg.DB.Path)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	uploader, err := storage.NewS3Uploader(context.Background(), cfg.S3)
	if err != nil {
		log.Fatalw("failed to init object storage", "err", err)
	}

	// wire dependencies
	repos := repository.NewRepository(db)
	services := service.NewService(repos, uploader, cfg.JWT)
	apiHandler := handlers.NewHandler(services, log, cfg.JWT)

	srv := &server.Server{}
	go func() {
		if err := srv.Run(cfg.Port, apiHandler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
	log.Infow("server started", "port", cfg.Port)

	waitForShutdown(srv, log)
}

// waitForShutdown blocks on termination signals, then drains in-flight requests.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
