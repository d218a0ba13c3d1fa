package openweathermap

import (
	"time"

	"github.com/i474232898/weather-forecast-collection/internal/forecast"
)

// Name identifies the provider in errors and API responses.
const Name = "openweathermap"

const weatherKey = "weather"

// Normalize decodes a one call response into its current, hourly and daily sections.
func Normalize(doc any, collectedAt time.Time) (*Forecast, error) {
	var f Forecast
	if err := forecast.Decode(Name, "", doc, &f.Location); err != nil {
		return nil, err
	}

	current, err := forecast.Section(Name, "", doc, "current")
	if err != nil {
		return nil, err
	}
	if err := decodeEntry("current", current, &f.Current); err != nil {
		return nil, err
	}

	if f.Hourly, err = decodeSection[Hourly](doc, "hourly"); err != nil {
		return nil, err
	}
	if err := checkOrder("hourly", f.Hourly, func(h Hourly) time.Time { return h.Time }); err != nil {
		return nil, err
	}

	if f.Daily, err = decodeSection[Daily](doc, "daily"); err != nil {
		return nil, err
	}
	if err := checkOrder("daily", f.Daily, func(d Daily) time.Time { return d.Time }); err != nil {
		return nil, err
	}

	f.CollectedAt = collectedAt
	return &f, nil
}

// decodeEntry collapses the single-element weather list before binding.
func decodeEntry(path string, obj map[string]any, dst any) error {
	return forecast.DecodeUnwrapped(Name, path, obj, weatherKey, dst)
}

func decodeSection[T any](doc any, key string) ([]T, error) {
	items, err := forecast.SectionList(Name, "", doc, key)
	if err != nil {
		return nil, err
	}
	out := make([]T, len(items))
	for i, item := range items {
		path := forecast.IndexPath(key, i)
		obj, err := forecast.Object(Name, path, item)
		if err != nil {
			return nil, err
		}
		if err := decodeEntry(path, obj, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func checkOrder[T any](path string, entries []T, at func(T) time.Time) error {
	times := make([]time.Time, len(entries))
	for i, e := range entries {
		times[i] = at(e)
	}
	return forecast.CheckAscending(Name, path, times)
}

// Encode renders f back into a one call response.
func Encode(f *Forecast) map[string]any {
	doc := forecast.MustEncode(f.Location)
	doc["current"] = forecast.WrapField(forecast.MustEncode(f.Current), weatherKey)

	hourly := make([]any, len(f.Hourly))
	for i, h := range f.Hourly {
		hourly[i] = forecast.WrapField(forecast.MustEncode(h), weatherKey)
	}
	doc["hourly"] = hourly

	daily := make([]any, len(f.Daily))
	for i, d := range f.Daily {
		daily[i] = forecast.WrapField(forecast.MustEncode(d), weatherKey)
	}
	doc["daily"] = daily
	return doc
}
