// Package restcountries reads the country directory and single country
// records from the REST Countries v3.1 API.
package restcountries

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"country-explorer/internal/domain/entity"
	"country-explorer/internal/infra/apiclient"
	"country-explorer/internal/observability/logging"
)

const (
	directoryFields = "name,flags,capital,region,subregion,population,cca3,area"
	detailFields    = directoryFields + ",languages,currencies,borders,latlng"
)

var (
	// ErrCountryNotFound is returned when the lookup yields zero records.
	ErrCountryNotFound = errors.New("country not found")

	// ErrMalformedCountry is returned when a record has no identifier.
	ErrMalformedCountry = errors.New("malformed country record")
)

// Client wraps an apiclient.Client configured for the REST Countries base URL.
type Client struct {
	api *apiclient.Client
}

func New(api *apiclient.Client) *Client {
	return &Client{api: api}
}

// ListAll fetches the whole directory with the listing fields only.
// Records without a cca3 identifier cannot be navigated to and are dropped.
func (c *Client) ListAll(ctx context.Context) ([]entity.Country, error) {
	var dtos []countryDTO
	if err := c.api.GetJSON(ctx, "/all", url.Values{"fields": {directoryFields}}, &dtos); err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}

	countries := make([]entity.Country, 0, len(dtos))
	dropped := 0
	for i := range dtos {
		country, err := dtos[i].toEntity()
		if err != nil {
			dropped++
			continue
		}
		countries = append(countries, country)
	}
	if dropped > 0 {
		logging.FromContext(ctx).Warn("dropped directory records without identifier",
			slog.Int("dropped", dropped),
			slog.Int("kept", len(countries)))
	}
	return countries, nil
}

// GetByCode fetches one country with the detail fields. The endpoint answers
// with either a bare object or a single-element array; both are accepted.
func (c *Client) GetByCode(ctx context.Context, code string) (*entity.Country, error) {
	var raw json.RawMessage
	path := "/alpha/" + url.PathEscape(code)
	if err := c.api.GetJSON(ctx, path, url.Values{"fields": {detailFields}}, &raw); err != nil {
		return nil, fmt.Errorf("get country %s: %w", code, err)
	}

	dto, err := normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("get country %s: %w", code, err)
	}
	country, err := dto.toEntity()
	if err != nil {
		return nil, fmt.Errorf("get country %s: %w", code, err)
	}
	return &country, nil
}

func normalize(raw json.RawMessage) (*countryDTO, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, ErrCountryNotFound
	}

	if trimmed[0] == '[' {
		var list []countryDTO
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("%w: %v", apiclient.ErrDecode, err)
		}
		if len(list) == 0 {
			return nil, ErrCountryNotFound
		}
		return &list[0], nil
	}

	var one countryDTO
	if err := json.Unmarshal(trimmed, &one); err != nil {
		return nil, fmt.Errorf("%w: %v", apiclient.ErrDecode, err)
	}
	return &one, nil
}

type countryDTO struct {
	Name struct {
		Common   string `json:"common"`
		Official string `json:"official"`
	} `json:"name"`
	Flags struct {
		PNG string `json:"png"`
		SVG string `json:"svg"`
		Alt string `json:"alt"`
	} `json:"flags"`
	Capital    []string               `json:"capital"`
	Region     string                 `json:"region"`
	Subregion  string                 `json:"subregion"`
	Population int64                  `json:"population"`
	CCA3       string                 `json:"cca3"`
	Area       *float64               `json:"area"`
	Languages  map[string]string      `json:"languages"`
	Currencies map[string]currencyDTO `json:"currencies"`
	Borders    []string               `json:"borders"`
	LatLng     []float64              `json:"latlng"`
}

type currencyDTO struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

func (d *countryDTO) toEntity() (entity.Country, error) {
	code := strings.ToUpper(strings.TrimSpace(d.CCA3))
	if code == "" {
		return entity.Country{}, ErrMalformedCountry
	}

	c := entity.Country{
		Code:         code,
		CommonName:   d.Name.Common,
		OfficialName: d.Name.Official,
		Region:       d.Region,
		Subregion:    d.Subregion,
		Population:   d.Population,
		Area:         d.Area,
		Languages:    d.Languages,
		Borders:      d.Borders,
		FlagURL:      d.Flags.SVG,
		FlagPNG:      d.Flags.PNG,
		FlagAlt:      d.Flags.Alt,
		LatLng:       d.LatLng,
	}
	if len(d.Currencies) > 0 {
		c.Currencies = make(map[string]entity.Currency, len(d.Currencies))
		for code, cur := range d.Currencies {
			c.Currencies[code] = entity.Currency{Name: cur.Name, Symbol: cur.Symbol}
		}
	}
	if c.FlagURL == "" {
		c.FlagURL = d.Flags.PNG
	}
	if len(d.Capital) > 0 {
		c.Capital = d.Capital[0]
	}
	if c.Population < 0 {
		c.Population = 0
	}
	return c, nil
}
