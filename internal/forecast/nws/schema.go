package nws

import (
	"time"

	"github.com/i474232898/weather-forecast-collection/internal/forecast"
)

// GridPoint locates the forecast office grid cell covering a coordinate pair.
type GridPoint struct {
	Office string `src:"gridId" json:"office" validate:"required"`
	X      int    `src:"gridX" json:"x" validate:"gte=0"`
	Y      int    `src:"gridY" json:"y" validate:"gte=0"`
}

// QuantitativeValue is a WMO-coded measurement whose value may be null.
type QuantitativeValue struct {
	UnitCode string   `src:"unitCode" json:"unitCode" validate:"required"`
	Value    *float64 `src:"value" json:"value,omitempty"`
}

// Period is one entry of either the seven day or the hourly forecast.
type Period struct {
	Number              int                `src:"number" json:"number" validate:"gte=1"`
	Name                string             `src:"name" json:"name"`
	StartTime           time.Time          `src:"startTime" json:"startTime" validate:"required"`
	EndTime             time.Time          `src:"endTime" json:"endTime" validate:"required,gtfield=StartTime"`
	IsDaytime           bool               `src:"isDaytime" json:"isDaytime"`
	Temperature         float64            `src:"temperature" json:"temperature"`
	TemperatureUnit     string             `src:"temperatureUnit" json:"temperatureUnit" validate:"oneof=F C"`
	TemperatureTrend    *string            `src:"temperatureTrend" json:"temperatureTrend,omitempty"`
	PrecipitationChance *QuantitativeValue `src:"probabilityOfPrecipitation" json:"precipitationChance,omitempty"`
	WindSpeed           string             `src:"windSpeed" json:"windSpeed"`
	WindDirection       string             `src:"windDirection" json:"windDirection"`
	Icon                string             `src:"icon" json:"icon" validate:"url"`
	ShortForecast       string             `src:"shortForecast" json:"shortForecast"`
	DetailedForecast    string             `src:"detailedForecast" json:"detailedForecast"`
}

// SevenDayForecast alternates day and night periods.
type SevenDayForecast struct {
	Periods []Period `src:"periods" json:"periods" validate:"dive"`
}

// HourlyForecast keeps the generation metadata of the hourly document.
// GeneratedAt is informational; the forecast timestamp is assigned locally.
type HourlyForecast struct {
	Updated           time.Time `src:"updated" json:"updated" validate:"required"`
	ForecastGenerator string    `src:"forecastGenerator" json:"forecastGenerator"`
	GeneratedAt       time.Time `src:"generatedAt" json:"generatedAt" validate:"required"`
	Periods           []Period  `src:"periods" json:"periods" validate:"dive"`
}

// Forecast is the aggregate returned by the NWS pipeline.
type Forecast struct {
	CollectedAt time.Time        `json:"collectedAt"`
	GridPoint   GridPoint        `json:"gridPoint"`
	SevenDay    SevenDayForecast `json:"sevenDay"`
	Hourly      HourlyForecast   `json:"hourly"`
}

func (f *Forecast) ProviderName() string  { return Name }
func (f *Forecast) Collected() time.Time { return f.CollectedAt }

var _ forecast.Forecast = (*Forecast)(nil)

var _ = forecast.MustRegister(
	GridPoint{},
	SevenDayForecast{},
	HourlyForecast{},
)
