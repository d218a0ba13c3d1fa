package climacell

import (
	"fmt"
	"math"

	"github.com/i474232898/weather-forecast-collection/internal/forecast"
)

// WeatherCode is the categorical sky condition of an interval.
type WeatherCode int

const (
	WeatherUnknown           WeatherCode = 0
	WeatherClear             WeatherCode = 1000
	WeatherCloudy            WeatherCode = 1001
	WeatherMostlyClear       WeatherCode = 1100
	WeatherPartlyCloudy      WeatherCode = 1101
	WeatherMostlyCloudy      WeatherCode = 1102
	WeatherFog               WeatherCode = 2000
	WeatherLightFog          WeatherCode = 2100
	WeatherLightWind         WeatherCode = 3000
	WeatherWind              WeatherCode = 3001
	WeatherStrongWind        WeatherCode = 3002
	WeatherDrizzle           WeatherCode = 4000
	WeatherRain              WeatherCode = 4001
	WeatherLightRain         WeatherCode = 4200
	WeatherHeavyRain         WeatherCode = 4201
	WeatherSnow              WeatherCode = 5000
	WeatherFlurries          WeatherCode = 5001
	WeatherLightSnow         WeatherCode = 5100
	WeatherHeavySnow         WeatherCode = 5101
	WeatherFreezingDrizzle   WeatherCode = 6000
	WeatherFreezingRain      WeatherCode = 6001
	WeatherLightFreezingRain WeatherCode = 6200
	WeatherHeavyFreezingRain WeatherCode = 6201
	WeatherIcePellets        WeatherCode = 7000
	WeatherHeavyIcePellets   WeatherCode = 7101
	WeatherLightIcePellets   WeatherCode = 7102
	WeatherThunderstorm      WeatherCode = 8000
)

// 0 is the only code accepted without a named condition.
var weatherCodeNames = map[WeatherCode]string{
	WeatherUnknown:           "unknown",
	WeatherClear:             "clear",
	WeatherCloudy:            "cloudy",
	WeatherMostlyClear:       "mostly_clear",
	WeatherPartlyCloudy:      "partly_cloudy",
	WeatherMostlyCloudy:      "mostly_cloudy",
	WeatherFog:               "fog",
	WeatherLightFog:          "light_fog",
	WeatherLightWind:         "light_wind",
	WeatherWind:              "wind",
	WeatherStrongWind:        "strong_wind",
	WeatherDrizzle:           "drizzle",
	WeatherRain:              "rain",
	WeatherLightRain:         "light_rain",
	WeatherHeavyRain:         "heavy_rain",
	WeatherSnow:              "snow",
	WeatherFlurries:          "flurries",
	WeatherLightSnow:         "light_snow",
	WeatherHeavySnow:         "heavy_snow",
	WeatherFreezingDrizzle:   "freezing_drizzle",
	WeatherFreezingRain:      "freezing_rain",
	WeatherLightFreezingRain: "light_freezing_rain",
	WeatherHeavyFreezingRain: "heavy_freezing_rain",
	WeatherIcePellets:        "ice_pellets",
	WeatherHeavyIcePellets:   "heavy_ice_pellets",
	WeatherLightIcePellets:   "light_ice_pellets",
	WeatherThunderstorm:      "thunderstorm",
}

func (c WeatherCode) String() string {
	if name, ok := weatherCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("WeatherCode(%d)", int(c))
}

// MarshalText renders the condition name in API responses.
func (c WeatherCode) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *WeatherCode) DecodeValue(raw any) error {
	v, err := decodeCode(raw, weatherCodeNames, "weather code")
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func (c WeatherCode) EncodeValue() any {
	return float64(c)
}

// PrecipitationType is the kind of precipitation expected in an interval.
type PrecipitationType int

const (
	PrecipitationNone PrecipitationType = iota
	PrecipitationRain
	PrecipitationSnow
	PrecipitationFreezingRain
	PrecipitationIcePellets
)

var precipitationTypeNames = map[PrecipitationType]string{
	PrecipitationNone:         "none",
	PrecipitationRain:         "rain",
	PrecipitationSnow:         "snow",
	PrecipitationFreezingRain: "freezing_rain",
	PrecipitationIcePellets:   "ice_pellets",
}

func (p PrecipitationType) String() string {
	if name, ok := precipitationTypeNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PrecipitationType(%d)", int(p))
}

func (p PrecipitationType) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *PrecipitationType) DecodeValue(raw any) error {
	v, err := decodeCode(raw, precipitationTypeNames, "precipitation type")
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func (p PrecipitationType) EncodeValue() any {
	return float64(p)
}

// TimeStep is the resolution of a timeline.
type TimeStep string

const (
	TimeStepBest       TimeStep = "best"
	TimeStepOneDay     TimeStep = "1d"
	TimeStepOneHour    TimeStep = "1h"
	TimeStepThirtyMin  TimeStep = "30m"
	TimeStepFifteenMin TimeStep = "15m"
	TimeStepFiveMin    TimeStep = "5m"
	TimeStepOneMin     TimeStep = "1m"
	TimeStepCurrent    TimeStep = "current"
)

var timeSteps = map[TimeStep]bool{
	TimeStepBest: true, TimeStepOneDay: true, TimeStepOneHour: true, TimeStepThirtyMin: true,
	TimeStepFifteenMin: true, TimeStepFiveMin: true, TimeStepOneMin: true, TimeStepCurrent: true,
}

func (s *TimeStep) DecodeValue(raw any) error {
	str, ok := raw.(string)
	if !ok {
		return fmt.Errorf("%w: timestep must be a string", forecast.ErrSchemaValidation)
	}
	if !timeSteps[TimeStep(str)] {
		return fmt.Errorf("unmapped timestep %q", str)
	}
	*s = TimeStep(str)
	return nil
}

func (s TimeStep) EncodeValue() any {
	return string(s)
}

// decodeCode looks raw up in a fixed code table. A non-integer is a schema
// violation; an integer missing from the table is reported as unmapped.
func decodeCode[T ~int](raw any, names map[T]string, what string) (T, error) {
	f, ok := forecast.Number(raw)
	if !ok || f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: %s must be an integer, got %v", forecast.ErrSchemaValidation, what, raw)
	}
	if f < math.MinInt32 || f > math.MaxInt32 {
		return 0, fmt.Errorf("unmapped %s %v", what, raw)
	}
	code := T(f)
	if _, ok := names[code]; !ok {
		return 0, fmt.Errorf("unmapped %s %d", what, int(code))
	}
	return code, nil
}
