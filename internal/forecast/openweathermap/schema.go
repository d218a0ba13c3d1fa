package openweathermap

import (
	"fmt"
	"time"

	"github.com/i474232898/weather-forecast-collection/internal/forecast"
)

// Location echoes the point the one call response was computed for.
type Location struct {
	Latitude  float64 `src:"lat" json:"lat" validate:"latitude"`
	Longitude float64 `src:"lon" json:"lon" validate:"longitude"`
	Timezone  string  `src:"timezone" json:"timezone"`
}

// WeatherSummary is the condition group of an entry. OpenWeatherMap wraps it
// in a list that always holds exactly one element.
type WeatherSummary struct {
	ID          int    `src:"id" json:"id"`
	Main        string `src:"main" json:"main" validate:"required"`
	Description string `src:"description" json:"description"`
	Icon        string `src:"icon" json:"icon"`
}

type Current struct {
	Time        time.Time      `src:"dt,unix" json:"time" validate:"required"`
	Sunrise     *time.Time     `src:"sunrise,unix" json:"sunrise,omitempty"`
	Sunset      *time.Time     `src:"sunset,unix" json:"sunset,omitempty"`
	Temperature float64        `src:"temp" json:"temperature"`
	FeelsLike   float64        `src:"feels_like" json:"feelsLike"`
	Humidity    float64        `src:"humidity" json:"humidity" validate:"gte=0,lte=100"`
	Clouds      float64        `src:"clouds" json:"clouds" validate:"gte=0,lte=100"`
	Visibility  float64        `src:"visibility" json:"visibility" validate:"gte=0"`
	WindSpeed   float64        `src:"wind_speed" json:"windSpeed" validate:"gte=0"`
	Weather     WeatherSummary `src:"weather" json:"weather"`
}

type Hourly struct {
	Time                     time.Time            `src:"dt,unix" json:"time" validate:"required"`
	Temperature              float64              `src:"temp" json:"temperature"`
	FeelsLike                float64              `src:"feels_like" json:"feelsLike"`
	Humidity                 float64              `src:"humidity" json:"humidity" validate:"gte=0,lte=100"`
	Clouds                   float64              `src:"clouds" json:"clouds" validate:"gte=0,lte=100"`
	Visibility               *float64             `src:"visibility" json:"visibility,omitempty" validate:"omitempty,gte=0"`
	WindSpeed                float64              `src:"wind_speed" json:"windSpeed" validate:"gte=0"`
	PrecipitationProbability forecast.Probability `src:"pop" json:"precipitationProbability" validate:"gte=0,lte=1"`
	Weather                  WeatherSummary       `src:"weather" json:"weather"`
}

// DailyTemperature splits a day into its reported parts.
type DailyTemperature struct {
	Day     float64 `src:"day" json:"day"`
	Minimum float64 `src:"min" json:"min"`
	Maximum float64 `src:"max" json:"max"`
	Night   float64 `src:"night" json:"night"`
	Evening float64 `src:"eve" json:"evening"`
	Morning float64 `src:"morn" json:"morning"`
}

type DailyFeelsLike struct {
	Day     float64 `src:"day" json:"day"`
	Night   float64 `src:"night" json:"night"`
	Evening float64 `src:"eve" json:"evening"`
	Morning float64 `src:"morn" json:"morning"`
}

type Daily struct {
	Time                     time.Time            `src:"dt,unix" json:"time" validate:"required"`
	Sunrise                  *time.Time           `src:"sunrise,unix" json:"sunrise,omitempty"`
	Sunset                   *time.Time           `src:"sunset,unix" json:"sunset,omitempty"`
	Temperature              DailyTemperature     `src:"temp" json:"temperature"`
	FeelsLike                DailyFeelsLike       `src:"feels_like" json:"feelsLike"`
	Humidity                 float64              `src:"humidity" json:"humidity" validate:"gte=0,lte=100"`
	Clouds                   float64              `src:"clouds" json:"clouds" validate:"gte=0,lte=100"`
	WindSpeed                float64              `src:"wind_speed" json:"windSpeed" validate:"gte=0"`
	Rain                     *float64             `src:"rain" json:"rain,omitempty" validate:"omitempty,gte=0"`
	PrecipitationProbability forecast.Probability `src:"pop" json:"precipitationProbability" validate:"gte=0,lte=1"`
	Weather                  WeatherSummary       `src:"weather" json:"weather"`
}

// Forecast is the aggregate returned by the OpenWeatherMap pipeline.
type Forecast struct {
	CollectedAt time.Time `json:"collectedAt"`
	Location    Location  `json:"location"`
	Current     Current   `json:"current"`
	Hourly      []Hourly  `json:"hourly"`
	Daily       []Daily   `json:"daily"`
}

func (f *Forecast) ProviderName() string  { return Name }
func (f *Forecast) Collected() time.Time { return f.CollectedAt }

func (f *Forecast) String() string {
	return fmt.Sprintf("OpenWeatherMap forecast (collected at %s): %d hours and %d days plus the current conditions",
		f.CollectedAt.Format("06-01-02 15:04"), len(f.Hourly), len(f.Daily))
}

var _ forecast.Forecast = (*Forecast)(nil)

var _ = forecast.MustRegister(Location{}, Current{}, Hourly{}, Daily{})
