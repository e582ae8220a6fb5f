// Package openweather reads current weather by city name from the
// OpenWeatherMap current-weather endpoint.
package openweather

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"country-explorer/internal/domain/entity"
	"country-explorer/internal/infra/apiclient"
)

// ErrNoCity is returned when the city name is blank.
var ErrNoCity = errors.New("city name is required")

// Client fetches weather snapshots. The API key is resolved on every call.
type Client struct {
	api    *apiclient.Client
	key    func() string
	keyEnv string
}

// New creates a Client. key is called once per request; keyEnv names the
// variable it reads so a missing key can be reported.
func New(api *apiclient.Client, key func() string, keyEnv string) *Client {
	return &Client{api: api, key: key, keyEnv: keyEnv}
}

// Current returns the current weather for city in metric units.
func (c *Client) Current(ctx context.Context, city string) (*entity.WeatherSnapshot, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, ErrNoCity
	}

	key := c.key()
	if key == "" {
		return nil, c.api.MissingKey(c.keyEnv)
	}

	query := url.Values{
		"q":     {city},
		"appid": {key},
		"units": {"metric"},
	}
	var resp weatherResponse
	if err := c.api.GetJSON(ctx, "/weather", query, &resp); err != nil {
		return nil, fmt.Errorf("weather for %q: %w", city, err)
	}
	return resp.toEntity(city), nil
}

type weatherResponse struct {
	Name string `json:"name"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
}

func (r *weatherResponse) toEntity(city string) *entity.WeatherSnapshot {
	w := &entity.WeatherSnapshot{
		Location:   r.Name,
		TempC:      r.Main.Temp,
		FeelsLikeC: r.Main.FeelsLike,
		Humidity:   r.Main.Humidity,
		WindSpeed:  r.Wind.Speed,
	}
	if w.Location == "" {
		w.Location = city
	}
	if len(r.Weather) > 0 {
		w.Condition = r.Weather[0].Main
		w.Description = r.Weather[0].Description
		w.Icon = r.Weather[0].Icon
	}
	return w
}
