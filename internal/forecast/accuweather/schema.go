package accuweather

import (
	"time"

	"github.com/i474232898/weather-forecast-collection/internal/forecast"
)

// Location is the geoposition search result; only the key is consumed.
type Location struct {
	Key string `src:"Key" json:"key" validate:"required"`
}

// Conditions is the current-conditions snapshot.
type Conditions struct {
	ObservedAt               time.Time                       `src:"LocalObservationDateTime" json:"observedAt" validate:"required"`
	WeatherText              string                          `src:"WeatherText" json:"weatherText"`
	HasPrecipitation         bool                            `src:"HasPrecipitation" json:"hasPrecipitation"`
	PrecipitationType        *string                         `src:"PrecipitationType" json:"precipitationType,omitempty"`
	IsDayTime                bool                            `src:"IsDayTime" json:"isDayTime"`
	Temperature              forecast.MultimetricTemperature `src:"Temperature" json:"temperature"`
	ApparentTemperature      forecast.MultimetricTemperature `src:"ApparentTemperature" json:"apparentTemperature"`
	RealFeelTemperature      forecast.MultimetricTemperature `src:"RealFeelTemperature" json:"realFeelTemperature"`
	RealFeelTemperatureShade forecast.MultimetricTemperature `src:"RealFeelTemperatureShade" json:"realFeelTemperatureShade"`
	RelativeHumidity         float64                         `src:"RelativeHumidity" json:"relativeHumidity" validate:"gte=0,lte=100"`
	CloudCover               float64                         `src:"CloudCover" json:"cloudCover" validate:"gte=0,lte=100"`
}

// PeriodSummary describes the day or night half of a daily forecast.
type PeriodSummary struct {
	IconPhrase               string               `src:"IconPhrase" json:"iconPhrase"`
	HasPrecipitation         bool                 `src:"HasPrecipitation" json:"hasPrecipitation"`
	ShortPhrase              string               `src:"ShortPhrase" json:"shortPhrase"`
	LongPhrase               string               `src:"LongPhrase" json:"longPhrase"`
	PrecipitationProbability forecast.Probability `src:"PrecipitationProbability,percent" json:"precipitationProbability" validate:"gte=0,lte=1"`
	ThunderstormProbability  forecast.Probability `src:"ThunderstormProbability,percent" json:"thunderstormProbability" validate:"gte=0,lte=1"`
	RainProbability          forecast.Probability `src:"RainProbability,percent" json:"rainProbability" validate:"gte=0,lte=1"`
	SnowProbability          forecast.Probability `src:"SnowProbability,percent" json:"snowProbability" validate:"gte=0,lte=1"`
	IceProbability           forecast.Probability `src:"IceProbability,percent" json:"iceProbability" validate:"gte=0,lte=1"`
	TotalLiquid              forecast.ValueUnit   `src:"TotalLiquid" json:"totalLiquid"`
	Rain                     forecast.ValueUnit   `src:"Rain" json:"rain"`
	Snow                     forecast.ValueUnit   `src:"Snow" json:"snow"`
	Ice                      forecast.ValueUnit   `src:"Ice" json:"ice"`
	HoursOfPrecipitation     float64              `src:"HoursOfPrecipitation" json:"hoursOfPrecipitation" validate:"gte=0"`
	HoursOfRain              float64              `src:"HoursOfRain" json:"hoursOfRain" validate:"gte=0"`
	HoursOfSnow              float64              `src:"HoursOfSnow" json:"hoursOfSnow" validate:"gte=0"`
	HoursOfIce               float64              `src:"HoursOfIce" json:"hoursOfIce" validate:"gte=0"`
	CloudCover               float64              `src:"CloudCover" json:"cloudCover" validate:"gte=0,lte=100"`
}

// DailyForecast is one calendar day.
type DailyForecast struct {
	Date                     time.Time                  `src:"Date" json:"date" validate:"required"`
	Temperature              forecast.MinMaxTemperature `src:"Temperature" json:"temperature"`
	RealFeelTemperature      forecast.MinMaxTemperature `src:"RealFeelTemperature" json:"realFeelTemperature"`
	RealFeelTemperatureShade forecast.MinMaxTemperature `src:"RealFeelTemperatureShade" json:"realFeelTemperatureShade"`
	Day                      PeriodSummary              `src:"Day" json:"day"`
	Night                    PeriodSummary              `src:"Night" json:"night"`
}

// Headline carries the top-level fields of the multi-day document.
type Headline struct {
	EffectiveDate time.Time  `src:"EffectiveDate" json:"effectiveDate" validate:"required"`
	EndDate       *time.Time `src:"EndDate" json:"endDate,omitempty"`
	Text          *string    `src:"Text" json:"text,omitempty"`
}

// DailyForecastSet zips the headline section with the daily forecasts array.
type DailyForecastSet struct {
	EffectiveDate  time.Time       `src:"-" json:"effectiveDate"`
	EndDate        *time.Time      `src:"-" json:"endDate,omitempty"`
	Headline       *string         `src:"-" json:"headline,omitempty"`
	DailyForecasts []DailyForecast `src:"DailyForecasts" json:"dailyForecasts" validate:"dive"`
}

// HourlyForecast is one hour of the 12-hour forecast.
type HourlyForecast struct {
	DateTime                 time.Time            `src:"DateTime" json:"dateTime" validate:"required"`
	IsDaylight               bool                 `src:"IsDaylight" json:"isDaylight"`
	Temperature              forecast.ValueUnit   `src:"Temperature" json:"temperature"`
	RealFeelTemperature      forecast.ValueUnit   `src:"RealFeelTemperature" json:"realFeelTemperature"`
	IconPhrase               string               `src:"IconPhrase" json:"iconPhrase"`
	HasPrecipitation         bool                 `src:"HasPrecipitation" json:"hasPrecipitation"`
	PrecipitationProbability forecast.Probability `src:"PrecipitationProbability,percent" json:"precipitationProbability" validate:"gte=0,lte=1"`
	RainProbability          forecast.Probability `src:"RainProbability,percent" json:"rainProbability" validate:"gte=0,lte=1"`
	SnowProbability          forecast.Probability `src:"SnowProbability,percent" json:"snowProbability" validate:"gte=0,lte=1"`
	IceProbability           forecast.Probability `src:"IceProbability,percent" json:"iceProbability" validate:"gte=0,lte=1"`
	TotalLiquid              forecast.ValueUnit   `src:"TotalLiquid" json:"totalLiquid"`
	Rain                     forecast.ValueUnit   `src:"Rain" json:"rain"`
	Snow                     forecast.ValueUnit   `src:"Snow" json:"snow"`
	Ice                      forecast.ValueUnit   `src:"Ice" json:"ice"`
	CloudCover               float64              `src:"CloudCover" json:"cloudCover" validate:"gte=0,lte=100"`
}

// HourlyForecastSet is the 12-hour forecast.
type HourlyForecastSet struct {
	Periods []HourlyForecast `src:"-" json:"periods"`
}

// Forecast is the aggregate returned by the AccuWeather pipeline.
type Forecast struct {
	CollectedAt time.Time         `json:"collectedAt"`
	LocationKey string            `json:"locationKey"`
	Conditions  Conditions        `json:"conditions"`
	FiveDay     DailyForecastSet  `json:"fiveDay"`
	Hourly      HourlyForecastSet `json:"hourly"`
}

func (f *Forecast) ProviderName() string  { return Name }
func (f *Forecast) Collected() time.Time { return f.CollectedAt }

var _ forecast.Forecast = (*Forecast)(nil)

var _ = forecast.MustRegister(
	Location{},
	Conditions{},
	Headline{},
	DailyForecastSet{},
	HourlyForecast{},
	HourlyForecastSet{},
)
