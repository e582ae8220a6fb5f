// Package favorites keeps the user's favorite countries in one durable
// key-value slot. The set survives restarts; storage problems never reach
// the caller and degrade to an empty or unsaved set.
package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"country-explorer/internal/domain/entity"
	"country-explorer/internal/observability/metrics"
	"country-explorer/internal/repository"
)

// SlotKey is the fixed key the set is stored under.
const SlotKey = "global-explorer-favorites"

// Store is a persisted, ordered set of country identifiers.
// It is safe for concurrent use.
type Store struct {
	slots  repository.SlotStore
	logger *slog.Logger

	mu      sync.Mutex
	order   []string
	members map[string]struct{}

	subMu   sync.Mutex
	subs    map[int]func(entity.FavoriteSet)
	nextSub int
}

// Load reads the stored set. A missing slot is a first run. Read errors and
// malformed values are logged and yield an empty set.
func Load(ctx context.Context, slots repository.SlotStore, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		slots:   slots,
		logger:  logger,
		members: make(map[string]struct{}),
		subs:    make(map[int]func(entity.FavoriteSet)),
	}

	raw, err := slots.Get(ctx, SlotKey)
	switch {
	case errors.Is(err, repository.ErrSlotNotFound):
		logger.Debug("no stored favorites", slog.String("key", SlotKey))
	case err != nil:
		metrics.RecordFavoritesPersistenceFailure("read")
		logger.Warn("favorites persistence unavailable, starting empty",
			slog.String("key", SlotKey),
			slog.Any("error", err))
	default:
		codes, perr := decode(raw)
		if perr != nil {
			metrics.RecordFavoritesPersistenceFailure("parse")
			logger.Warn("stored favorites are malformed, starting empty",
				slog.String("key", SlotKey),
				slog.Any("error", perr))
			break
		}
		for _, code := range codes {
			s.add(code)
		}
		if len(s.order) < len(codes) {
			logger.Debug("collapsed duplicate favorites",
				slog.Int("stored", len(codes)),
				slog.Int("kept", len(s.order)))
		}
	}

	metrics.UpdateFavoritesCount(len(s.order))
	return s
}

// Toggle removes code if present, otherwise appends it, then persists the
// whole set before returning. It reports whether code is a favorite after
// the toggle. A persist failure is logged and the in-memory change is kept.
func (s *Store) Toggle(ctx context.Context, code string) bool {
	code = entity.NormalizeCountryCode(code)
	if code == "" {
		return false
	}

	s.mu.Lock()
	added := !s.contains(code)
	if added {
		s.add(code)
	} else {
		s.remove(code)
	}
	s.persist(ctx)
	snapshot := s.snapshotLocked()
	count := len(s.order)
	s.mu.Unlock()

	metrics.RecordFavoriteToggle(added, count)
	s.logger.Debug("favorite toggled",
		slog.String("code", code),
		slog.Bool("favorite", added),
		slog.Int("count", count))
	s.notify(snapshot)
	return added
}

// IsFavorite reports whether code is in the set.
func (s *Store) IsFavorite(code string) bool {
	code = entity.NormalizeCountryCode(code)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contains(code)
}

// List returns the identifiers in insertion order.
func (s *Store) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.order)
}

// Snapshot returns a copy of the set.
func (s *Store) Snapshot() entity.FavoriteSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Count returns the number of favorites.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Subscribe registers fn to receive the set after every change. The returned
// function removes the subscription. fn runs on the toggling goroutine and
// must not call Toggle.
func (s *Store) Subscribe(fn func(entity.FavoriteSet)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

func (s *Store) notify(set entity.FavoriteSet) {
	s.subMu.Lock()
	fns := make([]func(entity.FavoriteSet), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(set)
	}
}

// persist writes the current order. Caller holds s.mu.
func (s *Store) persist(ctx context.Context) {
	raw, err := json.Marshal(s.order)
	if err != nil {
		metrics.RecordFavoritesPersistenceFailure("encode")
		s.logger.Error("encode favorites", slog.Any("error", err))
		return
	}
	if err := s.slots.Set(ctx, SlotKey, string(raw)); err != nil {
		metrics.RecordFavoritesPersistenceFailure("write")
		s.logger.Warn("favorites persistence unavailable, change kept in memory only",
			slog.String("key", SlotKey),
			slog.Any("error", err))
	}
}

func (s *Store) contains(code string) bool {
	_, ok := s.members[code]
	return ok
}

func (s *Store) add(code string) {
	if code == "" || s.contains(code) {
		return
	}
	s.members[code] = struct{}{}
	s.order = append(s.order, code)
}

func (s *Store) remove(code string) {
	delete(s.members, code)
	s.order = slices.DeleteFunc(s.order, func(c string) bool { return c == code })
}

func (s *Store) snapshotLocked() entity.FavoriteSet {
	return entity.NewFavoriteSet(s.order...)
}

// decode parses a JSON array of strings. Entries are normalized; order and
// duplicates are left to the caller.
func decode(raw string) ([]string, error) {
	var codes []string
	if err := json.Unmarshal([]byte(raw), &codes); err != nil {
		return nil, err
	}
	for i := range codes {
		codes[i] = entity.NormalizeCountryCode(codes[i])
	}
	return codes, nil
}
