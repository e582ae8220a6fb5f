package listing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"country-explorer/internal/usecase/listing"
)

func TestParseRegion(t *testing.T) {
	tests := []struct {
		in      string
		want    listing.Region
		wantErr bool
	}{
		{in: "Asia", want: listing.RegionAsia},
		{in: "asia", want: listing.RegionAsia},
		{in: " EUROPE ", want: listing.RegionEurope},
		{in: "All", want: listing.RegionAll},
		{in: "all", want: listing.RegionAll},
		{in: "", want: listing.RegionAll},
		{in: "Antarctic", wantErr: true},
		{in: "Atlantis", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := listing.ParseRegion(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, listing.ErrInvalidRegion)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		in      string
		want    listing.SortKey
		wantErr bool
	}{
		{in: "name", want: listing.SortByName},
		{in: "Population", want: listing.SortByPopulation},
		{in: "AREA", want: listing.SortByArea},
		{in: "", want: listing.SortByName},
		{in: "gdp", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := listing.ParseSortKey(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, listing.ErrInvalidSortKey)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseView(t *testing.T) {
	tests := []struct {
		in      string
		want    listing.View
		wantErr bool
	}{
		{in: "all", want: listing.ViewAll},
		{in: "", want: listing.ViewAll},
		{in: "Favorites", want: listing.ViewFavorites},
		{in: "favs", want: listing.ViewFavorites},
		{in: "recent", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := listing.ParseView(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, listing.ErrInvalidView)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
