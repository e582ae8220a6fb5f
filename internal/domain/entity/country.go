// Package entity defines the core domain entities and validation logic for the explorer.
// It contains the country directory record, the weather and news data layered on top of
// a country detail view, and the favorites set, along with domain-specific errors.
package entity

import (
	"fmt"
	"slices"
	"strings"
)

// Currency is a single currency in use in a country.
type Currency struct {
	Name   string
	Symbol string
}

// Country represents one record of the country directory.
// Code (the 3-letter identifier) is the primary key across all entities.
// Records are immutable once fetched.
type Country struct {
	Code         string
	CommonName   string
	OfficialName string
	Capital      string // empty when the country has no capital
	Region       string
	Subregion    string
	Population   int64
	Area         *float64 // nil when the source omits it
	Languages    map[string]string
	Currencies   map[string]Currency
	Borders      []string
	FlagURL      string
	FlagPNG      string
	FlagAlt      string
	LatLng       []float64
}

// HasCapital reports whether the country has a capital city.
func (c *Country) HasCapital() bool {
	return c.Capital != ""
}

// AreaOrZero returns the area in km², treating an absent area as 0.
func (c *Country) AreaOrZero() float64 {
	if c.Area == nil {
		return 0
	}
	return *c.Area
}

// LanguageNames returns the display names of the country's languages sorted by language code.
func (c *Country) LanguageNames() []string {
	codes := make([]string, 0, len(c.Languages))
	for code := range c.Languages {
		codes = append(codes, code)
	}
	slices.Sort(codes)

	names := make([]string, 0, len(codes))
	for _, code := range codes {
		names = append(names, c.Languages[code])
	}
	return names
}

// CurrencyLabels returns "Name (Symbol)" labels sorted by currency code.
func (c *Country) CurrencyLabels() []string {
	codes := make([]string, 0, len(c.Currencies))
	for code := range c.Currencies {
		codes = append(codes, code)
	}
	slices.Sort(codes)

	labels := make([]string, 0, len(codes))
	for _, code := range codes {
		cur := c.Currencies[code]
		if cur.Symbol == "" {
			labels = append(labels, cur.Name)
			continue
		}
		labels = append(labels, fmt.Sprintf("%s (%s)", cur.Name, cur.Symbol))
	}
	return labels
}

// NormalizeCountryCode upper-cases and trims a country identifier.
func NormalizeCountryCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
