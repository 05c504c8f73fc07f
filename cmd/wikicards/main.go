// Command wikicards parses, sorts and collects card cost classes from the
// Dominion Strategy wiki galleries.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/net/html"

	"github.com/mplewis/dominion-strategy-wiki/internal/adapters/cache"
	"github.com/mplewis/dominion-strategy-wiki/internal/adapters/catalog"
	"github.com/mplewis/dominion-strategy-wiki/internal/adapters/htmldom"
	"github.com/mplewis/dominion-strategy-wiki/internal/adapters/wiki"
	"github.com/mplewis/dominion-strategy-wiki/internal/app"
	"github.com/mplewis/dominion-strategy-wiki/internal/config"
)

var (
	logLevel string
	logger   *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "wikicards",
	Short:         "Card cost tooling for the Dominion Strategy wiki",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := config.ParseLogLevel(logLevel)
		if err != nil {
			return err
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "debug, info, warn or error")
	rootCmd.AddCommand(parseCmd, sortCmd, costClassesCmd, galleryCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

// newPageService wires the scraper the same way the dev server does.
func newPageService() (*app.PageService[*html.Node], func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	path := cfg.CachePath
	if path == "" {
		if path, err = cache.DefaultPath(); err != nil {
			return nil, nil, err
		}
	}
	pageCache, err := cache.Open(path, cfg.CacheTTL)
	if err != nil {
		return nil, nil, err
	}

	client := wiki.NewClient(&http.Client{Timeout: cfg.WikiTimeout}, cfg.WikiBaseURL, cfg.WikiUserAgent, logger)
	svc := app.NewPageService[*html.Node](
		catalog.NewEmbeddedStore(),
		client,
		pageCache,
		htmldom.ParseDocument,
		cfg.WikiBaseURL,
		cfg.ScrapeConcurrency,
		logger,
	)
	return svc, func() { pageCache.Close() }, nil
}
