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

	"views-prediction-api/config"
	"views-prediction-api/handlers"
	"views-prediction-api/logger"
	"views-prediction-api/predictor"
	"views-prediction-api/services"

	"github.com/gin-gonic/gin"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if cfg.Log.Mode != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Load the model once; it is shared read-only by every request
	model, err := predictor.Load(cfg.Model.Path, predictor.Options{
		ID:            cfg.Model.ID,
		RemoteURL:     cfg.Model.RemoteURL,
		RemoteTimeout: cfg.Model.RemoteTimeout,
	})
	if err != nil {
		log.Fatal("failed to load model", "path", cfg.Model.Path, "error", err)
	}
	log.Info("model loaded", "id", model.ID, "kind", model.Kind)

	// Redis is optional
	cache, err := services.NewCacheService(cfg.Redis, log)
	if err != nil {
		log.Warn("redis unavailable, running without cache", "addr", cfg.Redis.Addr(), "error", err)
	}
	defer cache.Close()

	svc := services.NewPredictionService(model.ID, model, cache, log)

	router, err := handlers.NewRouter(handlers.RouterOptions{
		Config:  cfg,
		Service: svc,
		Model:   handlers.ModelInfo{ID: model.ID, Kind: model.Kind},
		Cache:   cache,
		Log:     log,
	})
	if err != nil {
		log.Fatal("failed to build router", "error", err)
	}

	// Start server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("starting server", "addr", srv.Addr, "layout", cfg.UI.Layout)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
