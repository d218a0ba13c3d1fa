package climacell

import (
	"fmt"
	"strings"
	"time"

	"github.com/i474232898/weather-forecast-collection/internal/forecast"
)

// Fields lists the data fields requested for every interval.
var Fields = []string{
	"temperature",
	"temperatureApparent",
	"precipitationIntensity",
	"precipitationProbability",
	"precipitationType",
	"visibility",
	"cloudCover",
	"weatherCode",
	"humidity",
	"windSpeed",
}

// Values are the measurements of one interval, in metric units.
type Values struct {
	Temperature              float64              `src:"temperature" json:"temperature"`
	TemperatureApparent      float64              `src:"temperatureApparent" json:"temperatureApparent"`
	PrecipitationIntensity   float64              `src:"precipitationIntensity" json:"precipitationIntensity" validate:"gte=0"`
	PrecipitationProbability forecast.Probability `src:"precipitationProbability,percent" json:"precipitationProbability" validate:"gte=0,lte=1"`
	PrecipitationType        PrecipitationType    `src:"precipitationType" json:"precipitationType"`
	Visibility               float64              `src:"visibility" json:"visibility" validate:"gte=0"`
	CloudCover               float64              `src:"cloudCover" json:"cloudCover" validate:"gte=0,lte=100"`
	WeatherCode              WeatherCode          `src:"weatherCode" json:"weatherCode"`
	Humidity                 float64              `src:"humidity" json:"humidity" validate:"gte=0,lte=100"`
	WindSpeed                float64              `src:"windSpeed" json:"windSpeed" validate:"gte=0"`
}

type Interval struct {
	StartTime time.Time `src:"startTime" json:"startTime" validate:"required"`
	Values    Values    `src:"values" json:"values"`
}

// Timeline is an ordered run of intervals at one resolution. Timestep is
// filled in by the adapter from the timeline's identity in the document.
type Timeline struct {
	Timestep  TimeStep   `src:"-" json:"timestep"`
	StartTime time.Time  `src:"startTime" json:"startTime" validate:"required"`
	EndTime   time.Time  `src:"endTime" json:"endTime" validate:"required,gtefield=StartTime"`
	Intervals []Interval `src:"intervals" json:"intervals" validate:"dive"`
}

type timelineHeader struct {
	Timestep TimeStep `src:"timestep"`
}

// Forecast is the aggregate returned by the ClimaCell pipeline.
type Forecast struct {
	CollectedAt time.Time `json:"collectedAt"`
	Current     Timeline  `json:"current"`
	OneHour     Timeline  `json:"oneHour"`
	OneDay      Timeline  `json:"oneDay"`
}

func (f *Forecast) ProviderName() string  { return Name }
func (f *Forecast) Collected() time.Time { return f.CollectedAt }

func (f *Forecast) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ClimaCell forecast collected %s\n", f.CollectedAt.Format(time.DateTime))
	fmt.Fprintf(&b, "  %d measures of current weather\n", len(f.Current.Intervals))
	fmt.Fprintf(&b, "  %d measures at 1 hour intervals\n", len(f.OneHour.Intervals))
	fmt.Fprintf(&b, "  %d measures at 1 day intervals\n", len(f.OneDay.Intervals))
	return b.String()
}

var _ forecast.Forecast = (*Forecast)(nil)

var _ = forecast.MustRegister(Timeline{}, timelineHeader{})
