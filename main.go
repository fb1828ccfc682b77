package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/shuttle-bracket/internal/activity"
	"github.com/mauv0809/shuttle-bracket/internal/config"
	"github.com/mauv0809/shuttle-bracket/internal/database"
	server "github.com/mauv0809/shuttle-bracket/internal/http"
	"github.com/mauv0809/shuttle-bracket/internal/metrics"
	"github.com/mauv0809/shuttle-bracket/internal/notifier"
	"github.com/mauv0809/shuttle-bracket/internal/notifier/slack"
	"github.com/mauv0809/shuttle-bracket/internal/notifier/websocket"
	"github.com/mauv0809/shuttle-bracket/internal/processor"
	"github.com/mauv0809/shuttle-bracket/internal/pubsub"
	"github.com/mauv0809/shuttle-bracket/internal/store"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	tournamentStore := store.New(db)
	if _, err := store.Seed(ctx, tournamentStore, cfg.SeedFile); err != nil {
		// An empty tournament is still served; data can be restored from a backup.
		log.Warn("Failed to seed tournament data", "error", err, "path", cfg.SeedFile)
	}

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()

	hub := websocket.NewHub(metricsSvc)
	go hub.Run(ctx)

	// Slack is either called directly or, when events are published, fed by
	// the Pub/Sub push endpoints so a slow Slack API never holds up a write.
	var (
		publisher pubsub.PubSubClient
		relay     notifier.Notifier
		announcer server.Announcer
	)
	notifiers := []notifier.Notifier{hub}
	if cfg.PubSub.Enabled() {
		client, teardown, err := pubsub.New(ctx, cfg.PubSub.ProjectID, cfg.PubSub.TopicPrefix)
		if err != nil {
			log.Fatalf("Failed to initialize pubsub: %s", err)
		}
		defer teardown()
		publisher = client
	}
	if cfg.Slack.Enabled() {
		slackNotifier := slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
		announcer = slackNotifier
		if publisher != nil {
			relay = slackNotifier
		} else {
			notifiers = append(notifiers, slackNotifier)
		}
	}

	proc := processor.New(tournamentStore, notifier.NewMulti(notifiers...), metricsSvc, publisher, activity.New(db))
	s := server.NewServer(proc, metricsHandler, hub, relay, announcer, publisher)

	// --- Record startup time ---
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
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server error", "error", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		// Create a context with a timeout for the shutdown.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Websocket connections are hijacked and not closed by Shutdown.
		stop()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
