package listing

import (
	"fmt"
	"strings"
)

// Region is a continent filter. RegionAll disables filtering.
type Region string

const (
	RegionAll      Region = "all"
	RegionAfrica   Region = "Africa"
	RegionAmericas Region = "Americas"
	RegionAsia     Region = "Asia"
	RegionEurope   Region = "Europe"
	RegionOceania  Region = "Oceania"
)

// Regions lists the selectable regions in display order.
var Regions = []Region{RegionAll, RegionAfrica, RegionAmericas, RegionAsia, RegionEurope, RegionOceania}

// ParseRegion accepts any case. An empty string means RegionAll.
func ParseRegion(s string) (Region, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RegionAll, nil
	}
	for _, r := range Regions {
		if strings.EqualFold(s, string(r)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRegion, s)
}

// SortKey selects the ordering of the listing.
type SortKey string

const (
	SortByName       SortKey = "name"       // ascending, locale-aware
	SortByPopulation SortKey = "population" // descending
	SortByArea       SortKey = "area"       // descending, unknown area sorts as 0
)

var sortKeys = []SortKey{SortByName, SortByPopulation, SortByArea}

// ParseSortKey accepts any case. An empty string means SortByName.
func ParseSortKey(s string) (SortKey, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return SortByName, nil
	}
	for _, k := range sortKeys {
		if strings.EqualFold(s, string(k)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSortKey, s)
}

// View selects between the whole directory and favorites only.
type View string

const (
	ViewAll       View = "all"
	ViewFavorites View = "favorites"
)

// ParseView accepts any case and "favs" for ViewFavorites. An empty string means ViewAll.
func ParseView(s string) (View, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return ViewAll, nil
	case "favorites", "favs":
		return ViewFavorites, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidView, s)
}

// Query is the full input of one listing evaluation. The zero value lists
// every country by name, page 1.
type Query struct {
	Search string
	Region Region
	Sort   SortKey
	View   View
	Page   int // 1-based
}

// DefaultQuery returns the initial query.
func DefaultQuery() Query {
	return Query{Region: RegionAll, Sort: SortByName, View: ViewAll, Page: 1}
}

func (q Query) region() Region {
	if q.Region == "" {
		return RegionAll
	}
	return q.Region
}

func (q Query) sortKey() SortKey {
	if q.Sort == "" {
		return SortByName
	}
	return q.Sort
}

func (q Query) view() View {
	if q.View == "" {
		return ViewAll
	}
	return q.View
}
