package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/message"

	"country-explorer/internal/domain/entity"
	"country-explorer/internal/usecase/explore"
	"country-explorer/internal/usecase/favorites"
	"country-explorer/internal/usecase/listing"
)

const prompt = "> "

// explorer is what the app needs from explore.Service.
type explorer interface {
	ListCountries(ctx context.Context) ([]entity.Country, error)
	explore.DetailRunner
}

// app is the terminal view: it reads commands, invokes the core and renders
// the results. It holds no logic of its own beyond dispatch.
type app struct {
	svc     explorer
	store   *favorites.Store
	engine  listing.Engine
	state   *listing.State
	nav     *explore.Navigator
	printer *message.Printer
	logger  *slog.Logger

	countries []entity.Country
	loaded    bool

	// mu guards out and failedCode; detail results arrive from chain goroutines.
	mu         sync.Mutex
	out        io.Writer
	failedCode string // last detail chain that failed, cleared by any later success
}

func newApp(svc explorer, store *favorites.Store, engine listing.Engine, out io.Writer, logger *slog.Logger) *app {
	a := &app{
		svc:     svc,
		store:   store,
		engine:  engine,
		state:   listing.NewState(),
		printer: message.NewPrinter(engine.Collation),
		logger:  logger,
		out:     out,
	}
	a.nav = explore.NewNavigator(svc, explore.NewTracker(logger), a.deliverDetail)
	return a
}

func (a *app) run(ctx context.Context, in io.Reader) error {
	unsubscribe := a.store.Subscribe(func(entity.FavoriteSet) {
		a.state.FavoritesChanged()
	})
	defer unsubscribe()
	defer a.nav.Wait()

	a.printf("Country Explorer. Type 'help' for commands.\n")
	a.loadDirectory(ctx)

	scanner := bufio.NewScanner(in)
	for {
		a.printf(prompt)
		if !scanner.Scan() {
			break
		}
		if ctx.Err() != nil {
			break
		}
		if quit := a.dispatch(ctx, scanner.Text()); quit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read commands: %w", err)
	}
	return nil
}

// dispatch runs one command line and reports whether the user asked to quit.
func (a *app) dispatch(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd := strings.ToLower(fields[0])
	arg := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))

	switch cmd {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		a.printf("%s", helpText)
	case "list", "ls":
		a.showListing()
	case "search":
		a.state.SetSearch(arg)
		a.showListing()
	case "region":
		region, err := listing.ParseRegion(arg)
		if err != nil {
			a.printf("%v. Regions: all, Africa, Americas, Asia, Europe, Oceania.\n", err)
			return false
		}
		a.state.SetRegion(region)
		a.showListing()
	case "sort":
		key, err := listing.ParseSortKey(arg)
		if err != nil {
			a.printf("%v. Sort by name, population or area.\n", err)
			return false
		}
		a.state.SetSort(key)
		a.showListing()
	case "view", "tab":
		view, err := listing.ParseView(arg)
		if err != nil {
			a.printf("%v. Views: all, favorites.\n", err)
			return false
		}
		a.state.SetView(view)
		a.showListing()
	case "page":
		n, err := strconv.Atoi(arg)
		if err != nil {
			a.printf("Page must be a number.\n")
			return false
		}
		a.state.SetPage(n)
		a.showListing()
	case "next", "n":
		a.state.NextPage()
		a.showListing()
	case "prev", "p":
		a.state.PrevPage()
		a.showListing()
	case "fav":
		a.toggleFavorite(ctx, arg)
	case "favs":
		a.listFavorites()
	case "show":
		if code, ok := a.code(arg); ok {
			a.nav.Navigate(ctx, code)
			a.nav.Wait()
		}
	case "open":
		if code, ok := a.code(arg); ok {
			a.nav.Navigate(ctx, code)
			a.printf("Loading %s in the background.\n", code)
		}
	case "retry":
		a.retryFailed(ctx)
	default:
		a.printf("Unknown command %q. Type 'help' for commands.\n", cmd)
	}
	return false
}

func (a *app) loadDirectory(ctx context.Context) {
	countries, err := a.svc.ListCountries(ctx)
	if err != nil {
		a.printf("%s Type 'retry' to try again.\n", explore.UserMessage(err))
		return
	}
	a.countries = countries
	a.loaded = true
	a.showListing()
}

// retryFailed re-runs the last failed detail chain, then reloads the
// directory while it is not loaded. Each is a fresh invocation.
func (a *app) retryFailed(ctx context.Context) {
	a.mu.Lock()
	code := a.failedCode
	a.failedCode = ""
	a.mu.Unlock()

	if code == "" && a.loaded {
		a.printf("Nothing to retry.\n")
		return
	}
	if code != "" {
		a.nav.Navigate(ctx, code)
		a.nav.Wait()
	}
	if !a.loaded {
		a.loadDirectory(ctx)
	}
}

func (a *app) showListing() {
	if !a.loaded {
		a.printf("The country list is not loaded. Type 'retry' to fetch it again.\n")
		return
	}
	page := a.engine.Apply(a.countries, a.state.Query(), a.store.Snapshot())
	a.state.Observe(page)

	a.mu.Lock()
	defer a.mu.Unlock()
	renderPage(a.out, a.printer, page, a.state.Query(), a.store.Snapshot())
}

func (a *app) toggleFavorite(ctx context.Context, arg string) {
	code, ok := a.code(arg)
	if !ok {
		return
	}
	if a.store.Toggle(ctx, code) {
		a.printf("Added %s to favorites.\n", code)
	} else {
		a.printf("Removed %s from favorites.\n", code)
	}
}

func (a *app) listFavorites() {
	codes := a.store.List()
	if len(codes) == 0 {
		a.printf("No favorites yet. Start exploring and save your favorite countries!\n")
		return
	}
	a.printf("Favorites (%d): %s\n", len(codes), strings.Join(codes, ", "))
}

// deliverDetail is the navigator sink. It runs on the chain's goroutine.
func (a *app) deliverDetail(ticket explore.Ticket, result explore.DetailResult) {
	detail, err := result.Fold()

	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil {
		a.failedCode = ticket.Code
		fmt.Fprintf(a.out, "%s Type 'retry' to try again.\n", explore.UserMessage(err))
		return
	}
	a.failedCode = ""
	renderDetail(a.out, a.printer, detail, a.store.IsFavorite(detail.Country.Code))
}

// code normalizes and validates a country identifier typed by the user.
func (a *app) code(arg string) (string, bool) {
	code := entity.NormalizeCountryCode(arg)
	if err := entity.ValidateCountryCode(code); err != nil {
		a.printf("Invalid country code %q: use a 3-letter code such as FRA.\n", arg)
		return "", false
	}
	return code, true
}

func (a *app) printf(format string, args ...any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fmt.Fprintf(a.out, format, args...)
}

const helpText = `Commands:
  list                 show the current page
  search TEXT          filter by name or capital (empty clears)
  region NAME          all, Africa, Americas, Asia, Europe, Oceania
  sort KEY             name, population, area
  view all|favorites   switch between all countries and favorites
  page N, next, prev   move between pages
  fav CODE             add or remove a favorite, e.g. fav FRA
  favs                 list favorites
  show CODE            show details, weather and news for a country
  open CODE            like show, but returns to the prompt immediately
  retry                repeat the failed detail view or country list fetch
  quit                 exit
`
