package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/courtsidehq/courtside/internal/auth"
	"github.com/courtsidehq/courtside/internal/chats"
	"github.com/courtsidehq/courtside/internal/config"
	"github.com/courtsidehq/courtside/internal/database"
	server "github.com/courtsidehq/courtside/internal/http"
	"github.com/courtsidehq/courtside/internal/metrics"
	"github.com/courtsidehq/courtside/internal/players"
	"github.com/courtsidehq/courtside/internal/tournaments"
)

func main() {
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()

	db, dbTeardown, err := database.InitDB(cfg.DBPath, cfg.DatabaseURL, cfg.MigrationsDir)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	playerStore := players.New(db)
	tournamentStore := tournaments.New(db)
	chatStore := chats.New(db)
	authSvc := auth.New(playerStore, chatStore)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()

	s := server.NewServer(
		playerStore,
		tournamentStore,
		chatStore,
		authSvc,
		metricsSvc,
		metricsHandler,
		cfg,
	)

	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		// Create a context with a timeout for the shutdown.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Attempt to gracefully shut down the server.
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
