package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/net/html"

	"github.com/mplewis/dominion-strategy-wiki/internal/adapters/cache"
	"github.com/mplewis/dominion-strategy-wiki/internal/adapters/catalog"
	"github.com/mplewis/dominion-strategy-wiki/internal/adapters/htmldom"
	httpadapter "github.com/mplewis/dominion-strategy-wiki/internal/adapters/http"
	"github.com/mplewis/dominion-strategy-wiki/internal/adapters/watch"
	"github.com/mplewis/dominion-strategy-wiki/internal/adapters/wiki"
	"github.com/mplewis/dominion-strategy-wiki/internal/app"
	"github.com/mplewis/dominion-strategy-wiki/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	cachePath := cfg.CachePath
	if cachePath == "" {
		if cachePath, err = cache.DefaultPath(); err != nil {
			logger.Error("failed to locate cache", "error", err)
			os.Exit(1)
		}
	}
	pageCache, err := cache.Open(cachePath, cfg.CacheTTL)
	if err != nil {
		logger.Error("failed to open cache", "path", cachePath, "error", err)
		os.Exit(1)
	}
	defer pageCache.Close()

	wikiClient := wiki.NewClient(
		&http.Client{Timeout: cfg.WikiTimeout},
		cfg.WikiBaseURL,
		cfg.WikiUserAgent,
		logger,
	)

	svc := app.NewPageService[*html.Node](
		catalog.NewEmbeddedStore(),
		wikiClient,
		pageCache,
		htmldom.ParseDocument,
		cfg.WikiBaseURL,
		cfg.ScrapeConcurrency,
		logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var watchStats httpadapter.WatchStats
	if cfg.WatchDir != "" {
		w, err := watch.New(cfg.WatchDir, logger)
		if err != nil {
			logger.Error("failed to watch", "dir", cfg.WatchDir, "error", err)
			os.Exit(1)
		}
		go w.Run(ctx)
		watchStats = func() any { return w.Stats() }
		logger.Info("watching wiki sources", "dir", cfg.WatchDir)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(httpadapter.RequestIDMiddleware())
	e.Use(httpadapter.LoggingMiddleware(logger))

	handler := httpadapter.NewHandler(svc, pageCache, watchStats)
	handler.Register(e)

	go func() {
		logger.Info("starting server", "addr", cfg.HTTPAddr, "cache", cachePath)
		if err := e.Start(cfg.HTTPAddr); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
