package explore

import (
	"context"

	"country-explorer/internal/domain/entity"
)

// CountrySource reads country records.
type CountrySource interface {
	ListAll(ctx context.Context) ([]entity.Country, error)
	GetByCode(ctx context.Context, code string) (*entity.Country, error)
}

// WeatherSource reads current weather for a city.
type WeatherSource interface {
	Current(ctx context.Context, city string) (*entity.WeatherSnapshot, error)
}

// NewsSource reads headlines for a two-letter country code, in source order.
type NewsSource interface {
	Headlines(ctx context.Context, alpha2 string) ([]entity.NewsArticle, error)
}

// CodeMapper translates a three-letter identifier to the news source's
// two-letter code.
type CodeMapper interface {
	Alpha2(alpha3 string) (string, bool)
}
