package explore_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"country-explorer/internal/domain/entity"
	"country-explorer/internal/observability/metrics"
	"country-explorer/internal/usecase/explore"
)

/* ───────── stubs ───────── */

type stubCountries struct {
	list    []entity.Country
	listErr error
	byCode  map[string]*entity.Country
	getErr  error
	gets    atomic.Int32
}

func (s *stubCountries) ListAll(context.Context) ([]entity.Country, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.list, nil
}

func (s *stubCountries) GetByCode(_ context.Context, code string) (*entity.Country, error) {
	s.gets.Add(1)
	if s.getErr != nil {
		return nil, s.getErr
	}
	c, ok := s.byCode[code]
	if !ok {
		return nil, errors.New("country not found")
	}
	return c, nil
}

type stubWeather struct {
	snap *entity.WeatherSnapshot
	err  error

	mu     sync.Mutex
	cities []string
}

func (s *stubWeather) Current(_ context.Context, city string) (*entity.WeatherSnapshot, error) {
	s.mu.Lock()
	s.cities = append(s.cities, city)
	s.mu.Unlock()
	return s.snap, s.err
}

func (s *stubWeather) calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.cities...)
}

type stubNews struct {
	articles []entity.NewsArticle
	err      error

	mu    sync.Mutex
	codes []string
}

func (s *stubNews) Headlines(_ context.Context, alpha2 string) ([]entity.NewsArticle, error) {
	s.mu.Lock()
	s.codes = append(s.codes, alpha2)
	s.mu.Unlock()
	return s.articles, s.err
}

func (s *stubNews) calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.codes...)
}

type stubCodes map[string]string

func (m stubCodes) Alpha2(alpha3 string) (string, bool) {
	v, ok := m[alpha3]
	return v, ok
}

/* ───────── fixtures ───────── */

var (
	france = &entity.Country{Code: "FRA", CommonName: "France", Capital: "Paris", Region: "Europe"}
	nocap  = &entity.Country{Code: "ATA", CommonName: "Antarctica", Region: "Antarctic"}
	paris  = &entity.WeatherSnapshot{Location: "Paris", TempC: 18, Condition: "Clouds"}
)

func headlines(n int) []entity.NewsArticle {
	out := make([]entity.NewsArticle, n)
	for i := range out {
		out[i] = entity.NewsArticle{Title: string(rune('A' + i))}
	}
	return out
}

type fixture struct {
	countries *stubCountries
	weather   *stubWeather
	news      *stubNews
	codes     stubCodes
}

func newFixture() *fixture {
	return &fixture{
		countries: &stubCountries{byCode: map[string]*entity.Country{"FRA": france, "ATA": nocap}},
		weather:   &stubWeather{snap: paris},
		news:      &stubNews{articles: headlines(5)},
		codes:     stubCodes{"FRA": "fr", "ATA": "aq"},
	}
}

func (f *fixture) service(cfg explore.Config) *explore.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return explore.NewService(f.countries, f.weather, f.news, f.codes, cfg, logger)
}

/* ───────── ListCountries ───────── */

func TestListCountries(t *testing.T) {
	f := newFixture()
	f.countries.list = []entity.Country{*france, *nocap}

	got, err := f.service(explore.Config{}).ListCountries(context.Background())

	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestListCountries_Failure(t *testing.T) {
	f := newFixture()
	cause := errors.New("connection refused")
	f.countries.list = []entity.Country{*france}
	f.countries.listErr = cause

	got, err := f.service(explore.Config{}).ListCountries(context.Background())

	assert.Nil(t, got, "no partial directory")
	assert.ErrorIs(t, err, explore.ErrDirectoryFetchFailed)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Failed to fetch countries. Please try again later.", explore.UserMessage(err))
}

/* ───────── detail chain, sequential ───────── */

func TestRunDetailChain_AllStagesSucceed(t *testing.T) {
	f := newFixture()

	res := f.service(explore.Config{}).RunDetailChain(context.Background(), "fra")

	assert.Equal(t, "FRA", res.Code)
	assert.NotEmpty(t, res.ChainID)
	assert.Equal(t, explore.StatusOK, res.Country.Status)
	assert.Equal(t, explore.StatusOK, res.Weather.Status)
	assert.Equal(t, explore.StatusOK, res.News.Status)
	assert.Equal(t, []string{"Paris"}, f.weather.calls())
	assert.Equal(t, []string{"fr"}, f.news.calls())

	detail, err := res.Fold()
	require.NoError(t, err)
	assert.Same(t, france, detail.Country)
	assert.Same(t, paris, detail.Weather)
	require.Len(t, detail.News, explore.MaxHeadlines)
	assert.Equal(t, []string{"A", "B", "C"}, []string{detail.News[0].Title, detail.News[1].Title, detail.News[2].Title})
	assert.Equal(t, explore.NewsAvailable, detail.NewsStatus())
}

func TestRunDetailChain_NoCapitalSkipsWeather(t *testing.T) {
	f := newFixture()

	res := f.service(explore.Config{}).RunDetailChain(context.Background(), "ATA")

	assert.Equal(t, explore.StatusSkipped, res.Weather.Status)
	assert.NoError(t, res.Weather.Err)
	assert.Empty(t, f.weather.calls(), "no weather fetch without a capital")
	assert.Equal(t, []string{"aq"}, f.news.calls())

	detail, err := res.Fold()
	require.NoError(t, err)
	assert.Nil(t, detail.Weather)
}

func TestRunDetailChain_WeatherFailureFailsChain(t *testing.T) {
	f := newFixture()
	f.weather.err = errors.New("weather down")

	res := f.service(explore.Config{}).RunDetailChain(context.Background(), "FRA")

	assert.Equal(t, explore.StatusOK, res.Country.Status)
	assert.Same(t, france, res.Country.Value, "country is kept in the result")
	assert.Equal(t, explore.StatusFailed, res.Weather.Status)
	assert.Equal(t, explore.StatusNotRun, res.News.Status)
	assert.Empty(t, f.news.calls())

	detail, err := res.Fold()
	assert.Nil(t, detail, "partial data never reaches the view")
	assert.ErrorIs(t, err, explore.ErrCountryFetchFailed)
	assert.ErrorIs(t, err, f.weather.err)

	var stageErr *explore.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, explore.StageWeather, stageErr.Stage)
	assert.Equal(t, "Failed to fetch country details. Please try again later.", explore.UserMessage(err))
}

func TestRunDetailChain_NewsFailureFailsChain(t *testing.T) {
	f := newFixture()
	f.news.err = errors.New("rate limited")

	detail, err := f.service(explore.Config{}).LoadDetail(context.Background(), "FRA")

	assert.Nil(t, detail)
	var stageErr *explore.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, explore.StageNews, stageErr.Stage)
}

func TestRunDetailChain_UnmappedCodeFailsNewsStage(t *testing.T) {
	f := newFixture()
	f.codes = stubCodes{}

	res := f.service(explore.Config{}).RunDetailChain(context.Background(), "FRA")

	assert.Equal(t, explore.StatusFailed, res.News.Status)
	assert.ErrorIs(t, res.News.Err, explore.ErrCodeUnmapped)
	assert.Empty(t, f.news.calls())
}

func TestRunDetailChain_CountryFailureStopsChain(t *testing.T) {
	f := newFixture()
	f.countries.getErr = errors.New("timeout")

	res := f.service(explore.Config{}).RunDetailChain(context.Background(), "FRA")

	assert.Equal(t, explore.StatusFailed, res.Country.Status)
	assert.Equal(t, explore.StatusNotRun, res.Weather.Status)
	assert.Equal(t, explore.StatusNotRun, res.News.Status)
	assert.Empty(t, f.weather.calls())

	_, err := res.Fold()
	assert.ErrorIs(t, err, explore.ErrCountryFetchFailed)
}

func TestRunDetailChain_InvalidCodeNeverCallsRemote(t *testing.T) {
	for _, code := range []string{"", "FR", "FRAN", "F1A"} {
		t.Run(code, func(t *testing.T) {
			f := newFixture()

			res := f.service(explore.Config{}).RunDetailChain(context.Background(), code)

			assert.Equal(t, explore.StatusFailed, res.Country.Status)
			assert.ErrorIs(t, res.Country.Err, entity.ErrValidationFailed)
			assert.Zero(t, f.countries.gets.Load())
		})
	}
}

func TestRunDetailChain_EmptyNewsIsNotAnError(t *testing.T) {
	f := newFixture()
	f.news.articles = nil

	detail, err := f.service(explore.Config{}).LoadDetail(context.Background(), "FRA")

	require.NoError(t, err)
	assert.NotNil(t, detail.News)
	assert.Empty(t, detail.News)
	assert.Equal(t, explore.NewsEmpty, detail.NewsStatus())
}

func TestRunDetailChain_FewerThanMaxHeadlines(t *testing.T) {
	f := newFixture()
	f.news.articles = headlines(2)

	detail, err := f.service(explore.Config{}).LoadDetail(context.Background(), "FRA")

	require.NoError(t, err)
	assert.Len(t, detail.News, 2)
}

/* ───────── detail chain, parallel enrichment ───────── */

func TestRunDetailChain_ParallelRunsBothStages(t *testing.T) {
	f := newFixture()
	f.weather.err = errors.New("weather down")

	res := f.service(explore.Config{ParallelEnrichment: true}).RunDetailChain(context.Background(), "FRA")

	assert.Equal(t, explore.StatusFailed, res.Weather.Status)
	assert.Equal(t, explore.StatusOK, res.News.Status, "news runs even though weather failed")
	assert.Equal(t, []string{"fr"}, f.news.calls())

	_, err := res.Fold()
	assert.ErrorIs(t, err, explore.ErrCountryFetchFailed)
}

func TestRunDetailChain_ParallelSuccessMatchesSequential(t *testing.T) {
	seq, err := newFixture().service(explore.Config{}).LoadDetail(context.Background(), "FRA")
	require.NoError(t, err)
	par, err := newFixture().service(explore.Config{ParallelEnrichment: true}).LoadDetail(context.Background(), "FRA")
	require.NoError(t, err)

	assert.Equal(t, seq, par)
}

/* ───────── observability ───────── */

func TestRunDetailChain_RecordsStageMetrics(t *testing.T) {
	f := newFixture()
	skipped := metrics.StageOutcomesTotal.WithLabelValues("weather", "skipped")
	before := testutil.ToFloat64(skipped)

	f.service(explore.Config{}).RunDetailChain(context.Background(), "ATA")

	assert.Equal(t, before+1, testutil.ToFloat64(skipped))
}

func TestRunDetailChain_Spans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter)))
	t.Cleanup(func() {
		otel.SetTracerProvider(sdktrace.NewTracerProvider())
	})

	f := newFixture()
	f.news.err = errors.New("news down")
	f.service(explore.Config{}).RunDetailChain(context.Background(), "FRA")

	spans := exporter.GetSpans()
	byName := make(map[string]tracetest.SpanStub, len(spans))
	for _, s := range spans {
		byName[s.Name] = s
	}
	require.Contains(t, byName, "explore.DetailChain")
	require.Contains(t, byName, "explore.stage.country")
	require.Contains(t, byName, "explore.stage.weather")
	require.Contains(t, byName, "explore.stage.news")

	chain := byName["explore.DetailChain"]
	assert.Equal(t, codes.Error, chain.Status.Code)
	assert.Equal(t, codes.Error, byName["explore.stage.news"].Status.Code)
	assert.Equal(t, chain.SpanContext.SpanID(), byName["explore.stage.country"].Parent.SpanID())
}

func TestUserMessage(t *testing.T) {
	assert.Empty(t, explore.UserMessage(nil))
	assert.Equal(t, "Failed to fetch country details. Please try again later.",
		explore.UserMessage(errors.New("anything else")))
}
