// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the resume tailor server. It
// loads configuration, prepares the data directory, seeds the default
// template, sets up routing, and starts the HTTP server with graceful
// shutdown support.
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

	"resumetailor/internal/config"
	"resumetailor/internal/fetch"
	"resumetailor/internal/handlers"
	"resumetailor/internal/models"
	"resumetailor/internal/router"
	"resumetailor/internal/store"
	"resumetailor/internal/tailor"
	"resumetailor/web"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"data_dir", cfg.DataDir,
	)

	if err := cfg.EnsureDirs(); err != nil {
		slog.Error("failed to prepare data directories", "error", err)
		os.Exit(1)
	}

	templateStore := store.NewTemplateStore(cfg.TemplatesDir(), cfg.UploadsDir())

	// Every flow assumes the sentinel default template exists, so a
	// missing seed is fatal.
	if err := seedDefaultTemplate(templateStore); err != nil {
		slog.Error("failed to seed default template", "error", err)
		os.Exit(1)
	}

	api := handlers.New(
		cfg,
		templateStore,
		store.NewCrawlStore(cfg.CrawlsDir()),
		store.NewSettingsStore(cfg.SettingsFile()),
		fetch.New(fetch.Config{Timeout: cfg.FetchTimeout}),
		tailor.New(templateStore),
	)

	r := router.New(api)

	// WriteTimeout must accommodate the AI endpoints: the streaming
	// rewrite of a large template can run well past a minute.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

// seedDefaultTemplate writes the embedded starter template when the
// sentinel default is missing. Existing files are never overwritten.
func seedDefaultTemplate(templates *store.TemplateStore) error {
	_, err := templates.Read(models.DefaultTemplateFilename)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	if _, err := templates.Write(models.DefaultTemplateFilename, string(web.DefaultTemplate)); err != nil {
		return err
	}
	slog.Info("seeded default resume template")
	return nil
}
