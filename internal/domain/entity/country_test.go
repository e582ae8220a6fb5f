package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountry_AreaOrZero(t *testing.T) {
	area := 551695.0

	withArea := Country{Code: "FRA", Area: &area}
	withoutArea := Country{Code: "XXX"}

	assert.Equal(t, 551695.0, withArea.AreaOrZero())
	assert.Equal(t, 0.0, withoutArea.AreaOrZero())
}

func TestCountry_HasCapital(t *testing.T) {
	assert.True(t, (&Country{Capital: "Paris"}).HasCapital())
	assert.False(t, (&Country{}).HasCapital())
}

func TestCountry_LanguageNamesAndCurrencyLabels(t *testing.T) {
	c := Country{
		Languages: map[string]string{"fra": "French", "bre": "Breton"},
		Currencies: map[string]Currency{
			"EUR": {Name: "Euro", Symbol: "€"},
			"XPF": {Name: "CFP franc"},
		},
	}

	assert.Equal(t, []string{"Breton", "French"}, c.LanguageNames())
	assert.Equal(t, []string{"Euro (€)", "CFP franc"}, c.CurrencyLabels())
}

func TestWeatherSnapshot_IconURL(t *testing.T) {
	w := WeatherSnapshot{Icon: "01d"}
	assert.Equal(t, "https://openweathermap.org/img/wn/01d@4x.png", w.IconURL())
	assert.Equal(t, "", (&WeatherSnapshot{}).IconURL())
}

func TestFavoriteSet(t *testing.T) {
	set := NewFavoriteSet("FRA", "DEU")
	assert.True(t, set.Contains("FRA"))
	assert.False(t, set.Contains("ITA"))
	assert.Equal(t, 2, set.Len())

	var empty FavoriteSet
	assert.False(t, empty.Contains("FRA"))
}
