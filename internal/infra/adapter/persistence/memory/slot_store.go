// Package memory provides an in-process SlotStore. Values do not survive a restart.
package memory

import (
	"context"
	"fmt"
	"sync"

	"country-explorer/internal/repository"
)

type SlotStore struct {
	mu    sync.RWMutex
	slots map[string]string
}

func NewSlotStore() *SlotStore {
	return &SlotStore{slots: make(map[string]string)}
}

func (s *SlotStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.slots[key]
	if !ok {
		return "", fmt.Errorf("get slot %q: %w", key, repository.ErrSlotNotFound)
	}
	return v, nil
}

func (s *SlotStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.slots[key] = value
	return nil
}
