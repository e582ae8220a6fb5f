package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"country-explorer/internal/domain/entity"
	"country-explorer/internal/infra/adapter/persistence/memory"
	"country-explorer/internal/usecase/explore"
	"country-explorer/internal/usecase/favorites"
	"country-explorer/internal/usecase/listing"
)

/* ───────── stubs ───────── */

type stubExplorer struct {
	mu           sync.Mutex
	countries    []entity.Country
	listFailures int
	failDetail   map[string]bool
	listCalls    int
	detailCalls  []string
}

func (s *stubExplorer) ListCountries(context.Context) ([]entity.Country, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	if s.listFailures > 0 {
		s.listFailures--
		return nil, explore.ErrDirectoryFetchFailed
	}
	return s.countries, nil
}

func (s *stubExplorer) RunDetailChain(_ context.Context, code string) explore.DetailResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detailCalls = append(s.detailCalls, code)

	res := explore.DetailResult{Code: code}
	if s.failDetail[code] {
		res.Country = explore.Stage[*entity.Country]{Status: explore.StatusFailed, Err: errors.New("timeout")}
		return res
	}
	for i := range s.countries {
		if s.countries[i].Code == code {
			c := s.countries[i]
			res.Country = explore.Stage[*entity.Country]{Status: explore.StatusOK, Value: &c}
			res.Weather = explore.Stage[*entity.WeatherSnapshot]{Status: explore.StatusOK, Value: &entity.WeatherSnapshot{
				Location: c.Capital, TempC: 21, Condition: "Clear", Description: "clear sky",
			}}
			res.News = explore.Stage[[]entity.NewsArticle]{Status: explore.StatusOK, Value: []entity.NewsArticle{}}
			return res
		}
	}
	res.Country = explore.Stage[*entity.Country]{Status: explore.StatusFailed, Err: errors.New("not found")}
	return res
}

func sampleCountries() []entity.Country {
	area := 551695.0
	return []entity.Country{
		{Code: "FRA", CommonName: "France", Capital: "Paris", Region: "Europe", Population: 67391582, Area: &area},
		{Code: "JPN", CommonName: "Japan", Capital: "Tokyo", Region: "Asia", Population: 125836021},
		{Code: "ATA", CommonName: "Antarctica", Region: "Antarctic", Population: 1000},
	}
}

type harness struct {
	svc   *stubExplorer
	store *favorites.Store
	app   *app
	out   *syncBuffer
}

// syncBuffer is a bytes.Buffer safe for the app's concurrent writers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := &stubExplorer{countries: sampleCountries(), failDetail: map[string]bool{}}
	store := favorites.Load(context.Background(), memory.NewSlotStore(), logger)
	out := &syncBuffer{}
	return &harness{
		svc:   svc,
		store: store,
		app:   newApp(svc, store, listing.Engine{Collation: language.English}, out, logger),
		out:   out,
	}
}

func (h *harness) run(t *testing.T, script string) string {
	t.Helper()
	require.NoError(t, h.app.run(context.Background(), strings.NewReader(script)))
	return h.out.String()
}

/* ───────── tests ───────── */

func TestApp_ListsDirectoryOnStart(t *testing.T) {
	h := newHarness(t)

	out := h.run(t, "quit\n")

	assert.Contains(t, out, "Showing 1-3 of 3 countries")
	assert.Less(t, strings.Index(out, "Antarctica"), strings.Index(out, "France"), "sorted by name")
	assert.Contains(t, out, "N/A", "missing capital is shown as N/A")
}

func TestApp_FilterCommands(t *testing.T) {
	h := newHarness(t)

	out := h.run(t, "region asia\nsearch zzz\nregion mars\nsort gdp\n")

	assert.Contains(t, out, "Showing 1-1 of 1 countries")
	assert.Contains(t, out, "No countries found. Try adjusting your filters.")
	assert.Contains(t, out, "invalid region")
	assert.Contains(t, out, "invalid sort key")
}

func TestApp_FavoritesFlow(t *testing.T) {
	h := newHarness(t)

	out := h.run(t, "view favorites\nfav fra\nview favorites\nfavs\nfav FRA\nfavs\nfav XX\n")

	assert.Contains(t, out, "No favorites yet.")
	assert.Contains(t, out, "Added FRA to favorites.")
	assert.Contains(t, out, "Favorites (1): FRA")
	assert.Contains(t, out, "Removed FRA from favorites.")
	assert.Contains(t, out, `Invalid country code "XX"`)
	assert.Zero(t, h.store.Count())
}

func TestApp_ShowDetail(t *testing.T) {
	h := newHarness(t)

	out := h.run(t, "fav FRA\nshow fra\n")

	assert.Contains(t, out, "France * (FRA)")
	assert.Contains(t, out, "Paris: 21°C, Clear (clear sky)")
	assert.Contains(t, out, "No news data available")
	assert.Contains(t, out, "Area:          551,695 km²")
}

func TestApp_DirectoryFailureAndRetry(t *testing.T) {
	h := newHarness(t)
	h.svc.listFailures = 1

	out := h.run(t, "list\nretry\nretry\n")

	assert.Contains(t, out, "Failed to fetch countries. Please try again later. Type 'retry' to try again.")
	assert.Contains(t, out, "The country list is not loaded.")
	assert.Contains(t, out, "Showing 1-3 of 3 countries")
	assert.Contains(t, out, "Nothing to retry.")
	assert.Equal(t, 2, h.svc.listCalls)
}

func TestApp_DetailFailureAndRetry(t *testing.T) {
	h := newHarness(t)
	h.svc.failDetail["JPN"] = true

	h.app.dispatch(context.Background(), "show JPN")
	h.svc.mu.Lock()
	h.svc.failDetail["JPN"] = false
	h.svc.mu.Unlock()
	h.app.dispatch(context.Background(), "retry")

	out := h.out.String()
	assert.Contains(t, out, "Failed to fetch country details. Please try again later.")
	assert.Contains(t, out, "Japan (JPN)")
	assert.Equal(t, []string{"JPN", "JPN"}, h.svc.detailCalls)
}

func TestApp_DirectoryRetrySurvivesDetailFailure(t *testing.T) {
	h := newHarness(t)
	h.svc.listFailures = 1
	h.svc.failDetail["JPN"] = true
	ctx := context.Background()

	h.app.loadDirectory(ctx)
	h.app.dispatch(ctx, "show JPN")
	h.svc.mu.Lock()
	h.svc.failDetail["JPN"] = false
	h.svc.mu.Unlock()
	h.app.dispatch(ctx, "retry")
	h.app.dispatch(ctx, "retry")
	h.app.dispatch(ctx, "list")

	out := h.out.String()
	assert.Contains(t, out, "Japan (JPN)")
	assert.Equal(t, 2, strings.Count(out, "Showing 1-3 of 3 countries"), "reloaded by retry, then listed")
	assert.Contains(t, out, "Nothing to retry.")
	assert.Equal(t, 2, h.svc.listCalls)
	assert.Equal(t, []string{"JPN", "JPN"}, h.svc.detailCalls)
}

func TestApp_SuccessfulDetailClearsRetry(t *testing.T) {
	h := newHarness(t)
	h.svc.failDetail["JPN"] = true

	out := h.run(t, "show JPN\nshow FRA\nretry\n")

	assert.Contains(t, out, "Failed to fetch country details.")
	assert.Contains(t, out, "France (FRA)")
	assert.Contains(t, out, "Nothing to retry.")
	assert.Equal(t, []string{"JPN", "FRA"}, h.svc.detailCalls)
}

func TestApp_PageHints(t *testing.T) {
	h := newHarness(t)
	h.svc.countries = nil
	for i := 0; i < 14; i++ {
		h.svc.countries = append(h.svc.countries, entity.Country{
			Code: fmt.Sprintf("C%02d", i), CommonName: fmt.Sprintf("Country %02d", i), Region: "Europe",
		})
	}

	out := h.run(t, "next\n")

	first, second, ok := strings.Cut(out, "Showing 13-14 of 14 countries (page 2 of 2)")
	require.True(t, ok, out)
	assert.Contains(t, first, "Type 'next' for the next page.")
	assert.NotContains(t, first, "'prev'")
	assert.Contains(t, second, "Type 'prev' for the previous page.")
	assert.NotContains(t, second, "'next'")
}

func TestApp_OpenRendersWhenReady(t *testing.T) {
	h := newHarness(t)

	h.app.dispatch(context.Background(), "open JPN")

	assert.Eventually(t, func() bool {
		return strings.Contains(h.out.String(), "Japan (JPN)")
	}, time.Second, 5*time.Millisecond)
	h.app.nav.Wait()
}

func TestApp_UnknownCommand(t *testing.T) {
	h := newHarness(t)

	out := h.run(t, "dance\nhelp\nexit\nlist\n")

	assert.Contains(t, out, `Unknown command "dance"`)
	assert.Contains(t, out, "Commands:")
	assert.Equal(t, 1, strings.Count(out, "Showing 1-3 of 3 countries"), "nothing runs after exit")
}
