// Package main is the entry point for the kindred server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kindred/internal/api"
	"kindred/internal/config"
	"kindred/internal/holiday"
	"kindred/internal/logger"
	"kindred/internal/reminder"
	"kindred/internal/store"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	// Setup structured logging
	log := logger.Setup(cfg)

	log.Info("starting kindred",
		slog.String("env", cfg.Env),
		slog.Int("port", cfg.Port),
		slog.String("log_level", cfg.LogLevel),
	)

	loc := cfg.Location()

	// Holiday catalog loads before anything else: a bad catalog is a
	// configuration error and the process must not come up.
	catalog, err := holiday.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("load holiday catalog: %w", err)
	}
	log.Info("holiday catalog loaded", slog.Int("definitions", catalog.Len()))

	resolver := holiday.NewResolver(catalog, loc, log)

	// Database
	dbCfg := store.DefaultConfig(cfg.DatabasePath)
	db, err := store.Open(dbCfg, log)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	applied, err := db.Migrate(context.Background())
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	if applied > 0 {
		log.Info("migrations applied", slog.Int("count", applied))
	}

	// Reminder service and scheduler
	notifier := reminder.NewLogNotifier(log)
	reminders := reminder.NewService(db, resolver, notifier, loc, log)

	scheduler, err := reminder.NewScheduler(reminders, loc, cfg.ReminderHour, cfg.ReminderMinute, log)
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// HTTP server
	handlers := api.NewHandlers(db, resolver, reminders, cfg, log)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.SetupRoutes(handlers, cfg, log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case sig := <-stop:
		log.Info("shutting down", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	log.Info("kindred stopped")
	return nil
}
