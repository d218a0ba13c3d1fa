package nws

import (
	"time"

	"github.com/i474232898/weather-forecast-collection/internal/forecast"
)

// Name identifies the provider in errors and API responses.
const Name = "nws"

// Documents are the raw GeoJSON responses of one pipeline run.
type Documents struct {
	Points   any
	SevenDay any
	Hourly   any
}

// NormalizeGridPoint reads the grid cell out of a points response.
func NormalizeGridPoint(doc any) (GridPoint, error) {
	props, err := forecast.Section(Name, "points", doc, "properties")
	if err != nil {
		return GridPoint{}, err
	}
	var g GridPoint
	if err := forecast.Decode(Name, "points.properties", props, &g); err != nil {
		return GridPoint{}, err
	}
	return g, nil
}

// NormalizeSevenDay decodes a gridpoint forecast response.
func NormalizeSevenDay(doc any) (SevenDayForecast, error) {
	const path = "sevenDay.properties"

	props, err := forecast.Section(Name, "sevenDay", doc, "properties")
	if err != nil {
		return SevenDayForecast{}, err
	}
	var f SevenDayForecast
	if err := forecast.Decode(Name, path, props, &f); err != nil {
		return SevenDayForecast{}, err
	}
	if err := checkPeriods(forecast.JoinPath(path, "periods"), f.Periods); err != nil {
		return SevenDayForecast{}, err
	}
	return f, nil
}

// NormalizeHourly decodes a gridpoint hourly forecast response.
func NormalizeHourly(doc any) (HourlyForecast, error) {
	const path = "hourly.properties"

	props, err := forecast.Section(Name, "hourly", doc, "properties")
	if err != nil {
		return HourlyForecast{}, err
	}
	var f HourlyForecast
	if err := forecast.Decode(Name, path, props, &f); err != nil {
		return HourlyForecast{}, err
	}
	if err := checkPeriods(forecast.JoinPath(path, "periods"), f.Periods); err != nil {
		return HourlyForecast{}, err
	}
	return f, nil
}

func checkPeriods(path string, periods []Period) error {
	starts := make([]time.Time, len(periods))
	for i, p := range periods {
		starts[i] = p.StartTime
	}
	return forecast.CheckAscending(Name, path, starts)
}

// Normalize assembles a Forecast from the raw documents.
func Normalize(docs Documents, collectedAt time.Time) (*Forecast, error) {
	grid, err := NormalizeGridPoint(docs.Points)
	if err != nil {
		return nil, err
	}
	sevenDay, err := NormalizeSevenDay(docs.SevenDay)
	if err != nil {
		return nil, err
	}
	hourly, err := NormalizeHourly(docs.Hourly)
	if err != nil {
		return nil, err
	}
	return &Forecast{
		CollectedAt: collectedAt,
		GridPoint:   grid,
		SevenDay:    sevenDay,
		Hourly:      hourly,
	}, nil
}

// Encode renders f back into NWS GeoJSON documents.
func Encode(f *Forecast) Documents {
	return Documents{
		Points:   feature(forecast.MustEncode(f.GridPoint)),
		SevenDay: feature(forecast.MustEncode(f.SevenDay)),
		Hourly:   feature(forecast.MustEncode(f.Hourly)),
	}
}

func feature(props map[string]any) map[string]any {
	return map[string]any{"type": "Feature", "properties": props}
}
