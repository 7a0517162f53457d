package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/utsavlabs/eventplanner/internal/auth"
	"github.com/utsavlabs/eventplanner/internal/catalog"
	"github.com/utsavlabs/eventplanner/internal/config"
	"github.com/utsavlabs/eventplanner/internal/mcptools"
	"github.com/utsavlabs/eventplanner/internal/planner"
	"github.com/utsavlabs/eventplanner/internal/search/serpapi"
	"github.com/utsavlabs/eventplanner/internal/server"
	"github.com/utsavlabs/eventplanner/internal/storage/sqlite"
	"github.com/utsavlabs/eventplanner/internal/telemetry"
	"github.com/utsavlabs/eventplanner/internal/vendors"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the optional YAML config file")
	flag.Parse()

	// Load .env file if it exists
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize OpenTelemetry
	shutdown, err := telemetry.InitTracer("event-planner", logger)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Error("failed to shutdown tracer", slog.String("error", err.Error()))
		}
	}()

	events := catalog.LoadFile(cfg.Catalog.EventsPath, "events", catalog.DefaultEvents(), logger)
	locations := catalog.LoadFile(cfg.Catalog.LocationsPath, "locations", catalog.DefaultLocations(), logger)

	store, err := sqlite.New(cfg.Storage.Path)
	if err != nil {
		log.Fatalf("Failed to open tool-call store: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close tool-call store", slog.String("error", err.Error()))
		}
	}()

	searchClient := serpapi.NewClient(cfg.SerpAPI.APIKey)

	mcpServer := mcptools.NewServer(mcptools.Deps{
		Extractor: planner.NewExtractor(events, locations),
		Finder:    vendors.NewFinder(searchClient),
		MyNumber:  cfg.Auth.MyNumber,
		Store:     store,
		Logger:    logger,
	})
	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return mcpServer
	}, nil)

	srv := server.New(cfg.Server.Port, logger, auth.NewAuthenticator(cfg.Auth.Token), mcpHandler)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	logger.Info("event planner started",
		slog.Int("port", cfg.Server.Port),
		slog.String("events_catalog", cfg.Catalog.EventsPath),
		slog.String("locations_catalog", cfg.Catalog.LocationsPath),
		slog.String("storage", cfg.Storage.Path))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("Server failed: %v", err)
		}
		return
	case sig := <-sigChan:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("event planner shutdown complete")
}
