package entity

import "fmt"

// weatherIconURLFormat is the OpenWeatherMap icon location for the large (4x) icon set.
const weatherIconURLFormat = "https://openweathermap.org/img/wn/%s@4x.png"

// WeatherSnapshot is the current weather at a country's capital.
// It is created per detail view and discarded on navigation away.
type WeatherSnapshot struct {
	Location    string
	TempC       float64
	FeelsLikeC  float64
	Humidity    int // percent
	WindSpeed   float64
	Condition   string
	Description string
	Icon        string
}

// IconURL returns the image URL for the condition icon, or "" if there is no icon.
func (w *WeatherSnapshot) IconURL() string {
	if w.Icon == "" {
		return ""
	}
	return fmt.Sprintf(weatherIconURLFormat, w.Icon)
}
