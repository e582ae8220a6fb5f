// Package explore coordinates the remote reads behind the explorer: the
// directory listing and the three-stage detail chain (country, weather at
// the capital, national headlines). Each chain reduces to one result or one
// user-facing failure.
package explore

import (
	"errors"
	"fmt"
)

// Sentinel errors for explore use case operations.
var (
	// ErrDirectoryFetchFailed indicates the directory listing could not be read.
	// No partial directory is ever returned with it.
	ErrDirectoryFetchFailed = errors.New("directory fetch failed")

	// ErrCountryFetchFailed indicates the detail chain did not complete. Any
	// failed stage produces it, including weather and news after the country
	// itself was read.
	ErrCountryFetchFailed = errors.New("country fetch failed")

	// ErrCodeUnmapped indicates the country has no two-letter code for the news source.
	ErrCodeUnmapped = errors.New("no two-letter code for country")
)

const (
	directoryFailureMessage = "Failed to fetch countries. Please try again later."
	detailFailureMessage    = "Failed to fetch country details. Please try again later."
)

// StageError records which stage of the detail chain failed.
type StageError struct {
	Stage StageName
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// UserMessage returns the single message shown for a failed chain. Causes
// are never shown to the user. It returns "" for a nil error.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrDirectoryFetchFailed):
		return directoryFailureMessage
	default:
		return detailFailureMessage
	}
}
