package explore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"country-explorer/internal/domain/entity"
	"country-explorer/internal/observability/logging"
	"country-explorer/internal/observability/metrics"
	"country-explorer/internal/observability/tracing"
)

// MaxHeadlines is how many news articles a detail keeps.
const MaxHeadlines = 3

const (
	chainDirectory = "directory"
	chainDetail    = "detail"
)

// Config tunes the detail chain.
type Config struct {
	// ParallelEnrichment runs the weather and news stages concurrently once
	// the country is known. Both stages then always run and a failure is
	// reported after both finish. Off by default.
	ParallelEnrichment bool
}

// Service runs directory and detail chains against the remote sources.
type Service struct {
	countries CountrySource
	weather   WeatherSource
	news      NewsSource
	codes     CodeMapper
	cfg       Config
	logger    *slog.Logger
}

// NewService creates a Service. logger may be nil to use slog.Default().
func NewService(
	countries CountrySource,
	weather WeatherSource,
	news NewsSource,
	codes CodeMapper,
	cfg Config,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		countries: countries,
		weather:   weather,
		news:      news,
		codes:     codes,
		cfg:       cfg,
		logger:    logger,
	}
}

// ListCountries reads the whole directory in one call. Any failure returns
// ErrDirectoryFetchFailed wrapping the cause and no data.
func (s *Service) ListCountries(ctx context.Context) ([]entity.Country, error) {
	ctx, logger := s.beginChain(ctx)
	ctx, span := tracing.GetTracer().Start(ctx, "explore.ListCountries")
	defer span.End()

	start := time.Now()
	countries, err := s.countries.ListAll(ctx)
	duration := time.Since(start)
	metrics.RecordChain(chainDirectory, err == nil, duration)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "directory fetch failed")
		logger.Error("directory fetch failed",
			slog.Duration("duration", duration),
			slog.Any("error", err))
		return nil, fmt.Errorf("%w: %w", ErrDirectoryFetchFailed, err)
	}

	span.SetAttributes(attribute.Int("countries.count", len(countries)))
	logger.Info("directory fetched",
		slog.Int("count", len(countries)),
		slog.Duration("duration", duration))
	return countries, nil
}

// RunDetailChain runs the country, weather and news stages for code and
// returns every stage outcome. It never returns an error itself; see
// DetailResult.Fold.
//
// Stages run in order and a failed stage stops the chain unless
// Config.ParallelEnrichment is set. A country without a capital skips the
// weather stage.
func (s *Service) RunDetailChain(ctx context.Context, code string) DetailResult {
	code = entity.NormalizeCountryCode(code)
	ctx, logger := s.beginChain(ctx)
	logger = logger.With(slog.String("code", code))
	ctx = logging.WithLogger(ctx, logger)

	ctx, span := tracing.GetTracer().Start(ctx, "explore.DetailChain",
		trace.WithAttributes(
			attribute.String("country.code", code),
			attribute.Bool("chain.parallel", s.cfg.ParallelEnrichment),
		))
	defer span.End()

	start := time.Now()
	result := newDetailResult(code, logging.ChainIDFromContext(ctx))

	result.Country = runStage(ctx, StageCountry, func(ctx context.Context) (*entity.Country, bool, error) {
		return s.fetchCountry(ctx, code)
	})
	if result.Country.Status == StatusOK {
		country := result.Country.Value
		if s.cfg.ParallelEnrichment {
			var g errgroup.Group
			g.Go(func() error {
				result.Weather = s.weatherStage(ctx, country)
				return nil
			})
			g.Go(func() error {
				result.News = s.newsStage(ctx, country)
				return nil
			})
			_ = g.Wait()
		} else {
			result.Weather = s.weatherStage(ctx, country)
			if !result.Weather.Failed() {
				result.News = s.newsStage(ctx, country)
			}
		}
	}

	duration := time.Since(start)
	stageErr, failed := result.FirstFailure()
	metrics.RecordChain(chainDetail, !failed, duration)
	if failed {
		span.RecordError(stageErr)
		span.SetStatus(codes.Error, "detail chain failed")
		logger.Warn("detail chain failed",
			slog.String("stage", string(stageErr.Stage)),
			slog.Duration("duration", duration),
			slog.Any("error", stageErr.Err))
		return result
	}

	logger.Info("detail chain completed",
		slog.String("weather", string(result.Weather.Status)),
		slog.Int("headlines", len(result.News.Value)),
		slog.Duration("duration", duration))
	return result
}

// LoadDetail runs the detail chain and folds it. Any failed stage yields
// ErrCountryFetchFailed.
func (s *Service) LoadDetail(ctx context.Context, code string) (*Detail, error) {
	return s.RunDetailChain(ctx, code).Fold()
}

func (s *Service) beginChain(ctx context.Context) (context.Context, *slog.Logger) {
	ctx, _ = logging.NewChainID(ctx)
	logger := logging.WithChainID(ctx, s.logger)
	return logging.WithLogger(ctx, logger), logger
}

func (s *Service) fetchCountry(ctx context.Context, code string) (*entity.Country, bool, error) {
	if err := entity.ValidateCountryCode(code); err != nil {
		return nil, false, err
	}
	country, err := s.countries.GetByCode(ctx, code)
	if err != nil {
		return nil, false, err
	}
	return country, false, nil
}

func (s *Service) weatherStage(ctx context.Context, country *entity.Country) Stage[*entity.WeatherSnapshot] {
	return runStage(ctx, StageWeather, func(ctx context.Context) (*entity.WeatherSnapshot, bool, error) {
		if !country.HasCapital() {
			return nil, true, nil
		}
		w, err := s.weather.Current(ctx, country.Capital)
		return w, false, err
	})
}

func (s *Service) newsStage(ctx context.Context, country *entity.Country) Stage[[]entity.NewsArticle] {
	return runStage(ctx, StageNews, func(ctx context.Context) ([]entity.NewsArticle, bool, error) {
		alpha2, ok := s.codes.Alpha2(country.Code)
		if !ok {
			return nil, false, fmt.Errorf("%w: %s", ErrCodeUnmapped, country.Code)
		}
		articles, err := s.news.Headlines(ctx, alpha2)
		if err != nil {
			return nil, false, err
		}
		if len(articles) > MaxHeadlines {
			articles = articles[:MaxHeadlines:MaxHeadlines]
		}
		if articles == nil {
			articles = []entity.NewsArticle{}
		}
		return articles, false, nil
	})
}

// runStage wraps one stage in a span, a log line and a stage metric.
// fn reports skip=true for a valid absence.
func runStage[T any](ctx context.Context, name StageName, fn func(ctx context.Context) (T, bool, error)) Stage[T] {
	ctx, span := tracing.GetTracer().Start(ctx, "explore.stage."+string(name))
	defer span.End()

	start := time.Now()
	value, skipped, err := fn(ctx)
	duration := time.Since(start)

	var stage Stage[T]
	switch {
	case err != nil:
		stage = failedStage[T](err)
		span.RecordError(err)
		span.SetStatus(codes.Error, string(name)+" stage failed")
	case skipped:
		stage = Stage[T]{Status: StatusSkipped}
	default:
		stage = okStage(value)
	}

	span.SetAttributes(attribute.String("stage.status", string(stage.Status)))
	metrics.RecordStageOutcome(string(name), string(stage.Status))
	logging.FromContext(ctx).Debug("stage finished",
		slog.String("stage", string(name)),
		slog.String("status", string(stage.Status)),
		slog.Duration("duration", duration))
	return stage
}
