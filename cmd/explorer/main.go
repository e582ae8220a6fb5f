// Command explorer is an interactive terminal client for browsing the
// country directory, viewing country details with live weather and news,
// and keeping a persistent list of favorite countries.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"country-explorer/internal/config"
	"country-explorer/internal/infra/countrycode"
	"country-explorer/internal/observability/logging"
	"country-explorer/internal/usecase/explore"
	"country-explorer/internal/usecase/favorites"
	"country-explorer/internal/usecase/listing"
)

func main() {
	logger := logging.New()
	slog.SetDefault(logger)

	cfg, err := config.LoadExplorerConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded",
		slog.String("news_provider", cfg.NewsProvider),
		slog.String("favorites_backend", cfg.FavoritesBackend),
		slog.Bool("parallel_enrichment", cfg.ParallelEnrichment),
		slog.Duration("http_timeout", cfg.HTTPTimeout),
		slog.Int("metrics_port", cfg.MetricsPort))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, os.Stdin, os.Stdout); err != nil {
		logger.Error("explorer stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
}

// run wires the explorer from cfg and serves commands from in until EOF,
// quit, or ctx is done.
func run(ctx context.Context, cfg config.ExplorerConfig, logger *slog.Logger, in io.Reader, out io.Writer) error {
	mapper, err := countrycode.NewWithOverrides(cfg.CountryCodeMapFile)
	if err != nil {
		return fmt.Errorf("load country codes: %w", err)
	}
	logger.Debug("country code table loaded", slog.Int("entries", mapper.Len()))

	slots, closeSlots, err := openSlotStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open favorites storage: %w", err)
	}
	defer closeSlots()

	remote := newRemotes(cfg)
	svc := explore.NewService(
		remote.countries,
		remote.weather,
		remote.news,
		mapper,
		explore.Config{ParallelEnrichment: cfg.ParallelEnrichment},
		logger,
	)
	store := favorites.Load(ctx, slots, logger)

	if cfg.MetricsPort > 0 {
		startMetricsServer(ctx, logger, cfg.MetricsPort, healthUpstreams(remote.clients, slots))
	}

	a := newApp(svc, store, listing.Engine{Collation: cfg.Collation()}, out, logger)
	return a.run(ctx, in)
}
