package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"country-explorer/internal/config"
	"country-explorer/internal/infra/adapter/persistence/file"
	"country-explorer/internal/infra/adapter/persistence/memory"
	pgRepo "country-explorer/internal/infra/adapter/persistence/postgres"
	sqliteRepo "country-explorer/internal/infra/adapter/persistence/sqlite"
	"country-explorer/internal/infra/apiclient"
	"country-explorer/internal/infra/db"
	"country-explorer/internal/infra/newsapi"
	"country-explorer/internal/infra/newsrss"
	"country-explorer/internal/infra/openweather"
	"country-explorer/internal/infra/restcountries"
	"country-explorer/internal/repository"
	"country-explorer/internal/resilience/circuitbreaker"
	"country-explorer/internal/usecase/explore"
	envcfg "country-explorer/pkg/config"
)

// remotes holds the outbound clients. clients lists every underlying
// apiclient for health reporting.
type remotes struct {
	countries *restcountries.Client
	weather   *openweather.Client
	news      explore.NewsSource
	clients   []*apiclient.Client
}

func newRemotes(cfg config.ExplorerConfig) remotes {
	newClient := func(service, baseURL string, breaker circuitbreaker.Config) *apiclient.Client {
		return apiclient.New(apiclient.Config{
			Service:   service,
			BaseURL:   baseURL,
			Timeout:   cfg.HTTPTimeout,
			RateLimit: cfg.OutboundRateLimit,
			Burst:     cfg.OutboundBurst,
			Breaker:   breaker,
		})
	}

	countriesAPI := newClient("restcountries", cfg.RestCountriesBaseURL, circuitbreaker.RestCountriesConfig())
	weatherAPI := newClient("openweather", cfg.OpenWeatherBaseURL, circuitbreaker.OpenWeatherConfig())

	var (
		newsAPI *apiclient.Client
		news    explore.NewsSource
	)
	switch cfg.NewsProvider {
	case config.NewsProviderRSS:
		newsAPI = newClient("news-rss", "", circuitbreaker.NewsFeedConfig())
		news = newsrss.New(newsAPI, cfg.NewsRSSURLTemplate)
	default:
		newsAPI = newClient("newsapi", cfg.NewsAPIBaseURL, circuitbreaker.NewsAPIConfig())
		news = newsapi.New(newsAPI, envcfg.KeyFromEnv(config.NewsAPIKeyEnv), config.NewsAPIKeyEnv)
	}

	return remotes{
		countries: restcountries.New(countriesAPI),
		weather:   openweather.New(weatherAPI, envcfg.KeyFromEnv(config.WeatherAPIKeyEnv), config.WeatherAPIKeyEnv),
		news:      news,
		clients:   []*apiclient.Client{countriesAPI, weatherAPI, newsAPI},
	}
}

// openSlotStore opens the favorites backend chosen by cfg. The returned
// close function is always safe to call.
func openSlotStore(ctx context.Context, cfg config.ExplorerConfig, logger *slog.Logger) (repository.SlotStore, func(), error) {
	noop := func() {}

	switch cfg.FavoritesBackend {
	case config.FavoritesBackendMemory:
		logger.Warn("favorites are kept in memory and will not survive a restart")
		return memory.NewSlotStore(), noop, nil

	case config.FavoritesBackendSQLite:
		database, err := db.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		if err := db.MigrateUp(ctx, database); err != nil {
			closeDB(logger, database)
			return nil, noop, fmt.Errorf("migrate sqlite: %w", err)
		}
		logger.Info("favorites backend ready", slog.String("backend", "sqlite"), slog.String("path", cfg.SQLitePath))
		return sqliteRepo.NewSlotRepo(database), func() { closeDB(logger, database) }, nil

	case config.FavoritesBackendPostgres:
		database, err := db.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		if err := db.MigrateUp(ctx, database); err != nil {
			closeDB(logger, database)
			return nil, noop, fmt.Errorf("migrate postgres: %w", err)
		}
		logger.Info("favorites backend ready", slog.String("backend", "postgres"))
		return pgRepo.NewSlotRepo(database), func() { closeDB(logger, database) }, nil

	default:
		logger.Info("favorites backend ready", slog.String("backend", "file"), slog.String("dir", cfg.FavoritesDir))
		return file.NewSlotStore(cfg.FavoritesDir), noop, nil
	}
}

func closeDB(logger *slog.Logger, database *sql.DB) {
	if err := database.Close(); err != nil {
		logger.Error("failed to close database", slog.Any("error", err))
	}
}
