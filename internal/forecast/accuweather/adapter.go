package accuweather

import (
	"time"

	"github.com/i474232898/weather-forecast-collection/internal/forecast"
)

// Name identifies the provider in errors and API responses.
const Name = "accuweather"

// Documents are the raw responses of one pipeline run.
type Documents struct {
	LocationKey string
	Conditions  any
	FiveDay     any
	Hourly      any
}

// NormalizeLocationKey extracts the location identifier from a geoposition search result.
func NormalizeLocationKey(doc any) (string, error) {
	var loc Location
	if err := forecast.Decode(Name, "location", doc, &loc); err != nil {
		return "", err
	}
	return loc.Key, nil
}

// NormalizeConditions decodes the current-conditions document, which wraps
// the single observation in a list.
func NormalizeConditions(doc any) (Conditions, error) {
	first, err := forecast.UnwrapSingleton(Name, "conditions", doc)
	if err != nil {
		return Conditions{}, err
	}
	var c Conditions
	if err := forecast.Decode(Name, "conditions[0]", first, &c); err != nil {
		return Conditions{}, err
	}
	return c, nil
}

// NormalizeDailyForecast zips the Headline section and the DailyForecasts
// array into one set.
func NormalizeDailyForecast(doc any) (DailyForecastSet, error) {
	const path = "fiveDay"

	section, err := forecast.Section(Name, path, doc, "Headline")
	if err != nil {
		return DailyForecastSet{}, err
	}
	var h Headline
	if err := forecast.Decode(Name, forecast.JoinPath(path, "Headline"), section, &h); err != nil {
		return DailyForecastSet{}, err
	}
	if h.EndDate != nil && h.EndDate.Before(h.EffectiveDate) {
		return DailyForecastSet{}, forecast.Invalid(Name, forecast.JoinPath(path, "Headline.EndDate"),
			"end date precedes effective date")
	}

	var set DailyForecastSet
	if err := forecast.Decode(Name, path, doc, &set); err != nil {
		return DailyForecastSet{}, err
	}
	set.EffectiveDate = h.EffectiveDate
	set.EndDate = h.EndDate
	set.Headline = h.Text

	dates := make([]time.Time, len(set.DailyForecasts))
	for i, d := range set.DailyForecasts {
		dates[i] = d.Date
	}
	if err := forecast.CheckAscending(Name, forecast.JoinPath(path, "DailyForecasts"), dates); err != nil {
		return DailyForecastSet{}, err
	}
	return set, nil
}

// NormalizeHourlyForecast decodes the bare list of hourly entries.
func NormalizeHourlyForecast(doc any) (HourlyForecastSet, error) {
	const path = "hourly"

	items, err := forecast.List(Name, path, doc)
	if err != nil {
		return HourlyForecastSet{}, err
	}
	set := HourlyForecastSet{Periods: make([]HourlyForecast, len(items))}
	times := make([]time.Time, len(items))
	for i, item := range items {
		if err := forecast.Decode(Name, forecast.IndexPath(path, i), item, &set.Periods[i]); err != nil {
			return HourlyForecastSet{}, err
		}
		times[i] = set.Periods[i].DateTime
	}
	if err := forecast.CheckAscending(Name, path, times); err != nil {
		return HourlyForecastSet{}, err
	}
	return set, nil
}

// Normalize assembles a Forecast from the raw documents. collectedAt becomes
// the forecast timestamp.
func Normalize(docs Documents, collectedAt time.Time) (*Forecast, error) {
	if docs.LocationKey == "" {
		return nil, forecast.Invalid(Name, "location.Key", "empty location key")
	}
	conditions, err := NormalizeConditions(docs.Conditions)
	if err != nil {
		return nil, err
	}
	fiveDay, err := NormalizeDailyForecast(docs.FiveDay)
	if err != nil {
		return nil, err
	}
	hourly, err := NormalizeHourlyForecast(docs.Hourly)
	if err != nil {
		return nil, err
	}
	return &Forecast{
		CollectedAt: collectedAt,
		LocationKey: docs.LocationKey,
		Conditions:  conditions,
		FiveDay:     fiveDay,
		Hourly:      hourly,
	}, nil
}

// Encode renders f back into AccuWeather's raw documents.
func Encode(f *Forecast) Documents {
	headline := forecast.MustEncode(Headline{
		EffectiveDate: f.FiveDay.EffectiveDate,
		EndDate:       f.FiveDay.EndDate,
		Text:          f.FiveDay.Headline,
	})
	fiveDay := forecast.MustEncode(f.FiveDay)
	fiveDay["Headline"] = headline

	hourly := make([]any, len(f.Hourly.Periods))
	for i, h := range f.Hourly.Periods {
		hourly[i] = forecast.MustEncode(h)
	}

	return Documents{
		LocationKey: f.LocationKey,
		Conditions:  []any{forecast.MustEncode(f.Conditions)},
		FiveDay:     fiveDay,
		Hourly:      hourly,
	}
}
