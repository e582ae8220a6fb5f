// Package listing turns the country directory into one page of results for
// the current search, region, sort order and view.
package listing

import "errors"

// Sentinel errors for query parsing.
var (
	// ErrInvalidRegion indicates a region outside the fixed enumeration.
	ErrInvalidRegion = errors.New("invalid region")

	// ErrInvalidSortKey indicates a sort key other than name, population or area.
	ErrInvalidSortKey = errors.New("invalid sort key")

	// ErrInvalidView indicates a view other than all or favorites.
	ErrInvalidView = errors.New("invalid view")
)
