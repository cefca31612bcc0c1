package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/jwebster45206/castle-clerk/internal/analytics"
	"github.com/jwebster45206/castle-clerk/internal/config"
	"github.com/jwebster45206/castle-clerk/internal/geo"
	"github.com/jwebster45206/castle-clerk/internal/handlers"
	"github.com/jwebster45206/castle-clerk/internal/logger"
	"github.com/jwebster45206/castle-clerk/internal/storage"
)

const (
	analyticsQueueSize = 1024
	sessionTTL         = 30 * time.Minute
	sweepInterval      = time.Minute
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting Castle Clerk API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"analytics", cfg.RedisURL != "")

	// Analytics go to Redis when configured, otherwise to the log.
	var sink analytics.Sink = analytics.NewLogSink(log)
	var reader handlers.EventReader
	var snapshots storage.Snapshots
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		redisSink, err := analytics.NewRedisSink(ctx, cfg.RedisURL, log)
		if err != nil {
			cancel()
			log.Error("Failed to connect to analytics storage", "error", err)
			os.Exit(1)
		}
		snaps, err := storage.NewRedisSnapshots(ctx, cfg.RedisURL, log)
		cancel()
		if err != nil {
			log.Error("Failed to connect to session storage", "error", err)
			os.Exit(1)
		}
		defer snaps.Close()

		sink = analytics.NewAsyncSink(redisSink, analyticsQueueSize, log)
		reader = redisSink
		snapshots = snaps
		log.Info("Redis connection established successfully")
	}
	defer func() {
		if err := sink.Close(); err != nil {
			log.Error("Error closing analytics sink", "error", err)
		}
	}()

	store := storage.NewMemoryStore()
	locator := geo.NewClient(cfg.GeoURL, cfg.GeoTimeout, log)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/ping"))

	r.Handle("/health", handlers.NewHealthHandler(sink, store, snapshots, log))
	handlers.NewSessionHandler(cfg, store, snapshots, sink, locator, log).RegisterRoutes(r)
	handlers.NewRecordsHandler(log).RegisterRoutes(r)
	handlers.NewStatsHandler(reader, log).RegisterRoutes(r)

	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		// No WriteTimeout: the websocket stream stays open for the whole game.
		IdleTimeout: 60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store.StartSweeper(ctx, sweepInterval, sessionTTL, log)

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	stop()

	log.Info("Server is shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}
	store.StopAll()

	log.Info("Server exited")
}
