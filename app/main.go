package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vkarpenko/deadline-sync/app/api"
	"github.com/vkarpenko/deadline-sync/app/cfg"
	"github.com/vkarpenko/deadline-sync/app/database"
	"github.com/vkarpenko/deadline-sync/app/gcal"
	"github.com/vkarpenko/deadline-sync/app/ocr"
	"github.com/vkarpenko/deadline-sync/app/planner"
	"github.com/vkarpenko/deadline-sync/app/schedule"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	setupLogger(appCfg.Debug)
	slog.Info("Starting deadline-sync server...", "version", appCfg.Version)

	if err := os.MkdirAll(appCfg.UploadDir, 0755); err != nil {
		slog.Error("Failed to create upload directory", "path", appCfg.UploadDir, "error", err)
		os.Exit(1)
	}

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	migrationVersion, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "migration", migrationVersion, "dirty", dirty)

	docRepo := database.NewDocumentRepository(db)
	eventRepo := database.NewEventRepository(db)

	rules, err := schedule.LoadRules(appCfg.RulesFile)
	if err != nil {
		slog.Error("Failed to load extraction rules", "path", appCfg.RulesFile, "error", err)
		os.Exit(1)
	}
	if len(rules) > 0 {
		slog.Info("Loaded extraction rules", "path", appCfg.RulesFile, "count", len(rules))
	}
	extractor := schedule.NewExtractor(rules...)

	// The calendar session is acquired up front; the first run prompts for
	// the OAuth consent code on stdin.
	ctx := context.Background()
	authenticator := gcal.NewAuthenticator(appCfg.CredentialsFile, appCfg.TokenFile)
	httpClient, err := authenticator.Client(ctx)
	if err != nil {
		slog.Error("Calendar authorization failed", "error", err)
		os.Exit(1)
	}

	writer, err := gcal.NewClient(ctx, httpClient, appCfg.CalendarID)
	if err != nil {
		slog.Error("Failed to create calendar client", "error", err)
		os.Exit(1)
	}
	slog.Info("Calendar session ready", "calendar", appCfg.CalendarID)

	coordinator := schedule.NewCoordinator(extractor, writer)
	recognizer := ocr.NewClient(appCfg.OCRLanguage)

	var studyPlanner api.Planner
	if appCfg.OpenAIKey != "" {
		studyPlanner = planner.New(appCfg.OpenAIKey, appCfg.OpenAIModel)
		slog.Info("Planner enabled", "model", appCfg.OpenAIModel)
	} else {
		slog.Info("Planner disabled (OPENAI_API_KEY not set)")
	}

	handler := api.NewHandler(recognizer, studyPlanner, coordinator, docRepo, eventRepo)
	server := api.NewServer(handler)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
}
