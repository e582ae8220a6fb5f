// Package file stores slots as one JSON-encoded file per key in a directory.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"country-explorer/internal/observability/metrics"
	"country-explorer/internal/repository"
)

const backendName = "file"

var validKey = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// ErrInvalidKey is returned for keys that cannot be used as file names.
var ErrInvalidKey = errors.New("invalid slot key")

type SlotStore struct {
	dir string
}

// NewSlotStore returns a store rooted at dir. The directory is created on first write.
func NewSlotStore(dir string) *SlotStore {
	return &SlotStore{dir: dir}
}

func (s *SlotStore) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

func (s *SlotStore) Get(ctx context.Context, key string) (string, error) {
	start := time.Now()
	defer func() { metrics.RecordSlotOperation(backendName, "get", time.Since(start)) }()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	p, err := s.path(key)
	if err != nil {
		return "", err
	}

	b, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("get slot %q: %w", key, repository.ErrSlotNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("get slot %q: %w", key, err)
	}
	return string(b), nil
}

// Set writes value to a temporary file in the same directory, syncs it and
// renames it over the slot file, so readers never observe a partial write.
func (s *SlotStore) Set(ctx context.Context, key, value string) error {
	start := time.Now()
	defer func() { metrics.RecordSlotOperation(backendName, "set", time.Since(start)) }()

	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("set slot %q: create dir: %w", key, err)
	}

	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("set slot %q: create temp: %w", key, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("set slot %q: write: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("set slot %q: sync: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("set slot %q: close: %w", key, err)
	}
	if err := os.Rename(tmpName, p); err != nil {
		return fmt.Errorf("set slot %q: rename: %w", key, err)
	}
	return nil
}
