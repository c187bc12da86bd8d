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

	"github.com/joho/godotenv"

	"github.com/prplkane/umazona-website/config"
	envnames "github.com/prplkane/umazona-website/env"
	"github.com/prplkane/umazona-website/internal/bootstrap"
	"github.com/prplkane/umazona-website/internal/drive"
	"github.com/prplkane/umazona-website/internal/events"
	"github.com/prplkane/umazona-website/internal/handlers"
	"github.com/prplkane/umazona-website/internal/ingest"
	"github.com/prplkane/umazona-website/internal/mailer"
	"github.com/prplkane/umazona-website/internal/mirror"
	"github.com/prplkane/umazona-website/internal/repositories"
	"github.com/prplkane/umazona-website/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if os.Getenv(envnames.EnvGoEnvironment) != "production" {
			slog.Info("no .env file found, using process environment")
		}
	}

	opts, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := bootstrap.InitLogger(bootstrap.LoggerOptions{Level: opts.LogLevel})

	db, err := bootstrap.InitDatabase(bootstrap.DatabaseOptions{Path: opts.DatabasePath}, logger, opts.LogLevel)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	if err := bootstrap.CreateSchema(ctx, db); err != nil {
		logger.Error("failed to create database schema", "error", err)
		os.Exit(1)
	}

	eventRepo := repositories.NewBunEventRepository(db)
	contactRepo := repositories.NewBunContactRepository(db)

	bus := events.NewBus(logger)
	defer bus.Close()

	if opts.SMTP.Enabled() && opts.ContactNotifyTo != "" {
		m, err := mailer.New(opts.SMTP, logger.With("component", "mailer"))
		if err != nil {
			logger.Error("failed to configure mailer", "error", err)
			os.Exit(1)
		}
		if err := bus.Subscribe(events.TopicContactCreated, "contact-mailer",
			mailer.ContactNotifier(m, opts.ContactNotifyTo)); err != nil {
			logger.Error("failed to subscribe contact mailer", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Info("SMTP not configured, contact notifications disabled")
	}

	if opts.MirrorDir != "" {
		mir := mirror.New(opts.MirrorDir, logger.With("component", "mirror"))
		if err := bus.Subscribe(events.TopicFoldersDiscovered, "folder-mirror", mir.Handler()); err != nil {
			logger.Error("failed to subscribe folder mirror", "error", err)
			os.Exit(1)
		}
	}

	eventService := services.NewEventService(eventRepo, logger.With("component", "events"))
	contactService := services.NewContactService(contactRepo, bus, logger.With("component", "contacts"))

	deps := handlers.Deps{
		Logger:   logger,
		Options:  opts,
		Events:   eventService,
		Contacts: contactService,
	}

	creds, err := drive.ResolveCredentials(ctx)
	switch {
	case errors.Is(err, drive.ErrNoCredentials):
		logger.Warn("photo features disabled", "reason", err)
	case err != nil:
		// Present but unparseable credentials abort startup.
		logger.Error("failed to resolve Drive credentials", "error", err)
		os.Exit(1)
	default:
		driveLogger := logger.With("component", "drive")
		store := drive.NewClient(ctx, creds, driveLogger)
		cache := drive.NewFolderCache(store, opts.DefaultParentFolderID, bus, driveLogger)
		games := drive.NewGameMap(cache, driveLogger)
		resolver := drive.NewResolver(store, cache, games, driveLogger)

		deps.Store = store
		deps.Cache = cache
		deps.Games = games
		deps.Resolver = resolver

		go func() {
			if _, err := games.Initialize(ctx); err != nil {
				driveLogger.Error("initial folder discovery failed", "error", err)
			}
		}()
	}

	watcher, err := ingest.NewWatcher(opts.UploadsDir, eventRepo, logger.With("component", "ingest"))
	if err != nil {
		logger.Error("failed to set up CSV watcher", "error", err)
		os.Exit(1)
	}
	if err := watcher.Start(); err != nil {
		logger.Error("failed to start CSV watcher", "error", err)
		os.Exit(1)
	}
	defer watcher.Close()

	retention, err := services.NewRetentionCron(eventService, logger.With("component", "retention"))
	if err != nil {
		logger.Error("failed to schedule retention sweep", "error", err)
		os.Exit(1)
	}
	retention.Start()
	defer retention.Stop()

	server := &http.Server{
		Addr:         ":" + opts.Port,
		Handler:      handlers.NewRouter(deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server is running", "port", opts.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-shutdownChan
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
