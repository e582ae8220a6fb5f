package repository

import (
	"context"
	"errors"
)

// ErrSlotNotFound is returned by SlotStore.Get when nothing was ever written under the key.
var ErrSlotNotFound = errors.New("slot not found")

// SlotStore is a durable string key-value slot. Values are opaque to the store.
type SlotStore interface {
	// Get returns the value stored under key, or ErrSlotNotFound.
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key, replacing any previous value. It returns
	// only after the value is durable for the backend.
	Set(ctx context.Context, key, value string) error
}
