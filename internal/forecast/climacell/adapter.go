package climacell

import (
	"time"

	"github.com/i474232898/weather-forecast-collection/internal/forecast"
)

// Name identifies the provider in errors and API responses.
const Name = "climacell"

// Timesteps are requested in one call and assigned to the Forecast by identity.
var Timesteps = []TimeStep{TimeStepCurrent, TimeStepOneHour, TimeStepOneDay}

const timelinesPath = "data.timelines"

// Normalize decodes a timelines response. The timelines may arrive as a list
// of objects carrying a "timestep" key or as an object keyed by timestep; in
// both forms they are matched by timestep, never by position.
func Normalize(doc any, collectedAt time.Time) (*Forecast, error) {
	data, err := forecast.Section(Name, "", doc, "data")
	if err != nil {
		return nil, err
	}
	raw, ok := data["timelines"]
	if !ok || raw == nil {
		return nil, forecast.Malformed(Name, timelinesPath, "missing section")
	}

	var found map[TimeStep]Timeline
	switch v := raw.(type) {
	case []any:
		found, err = timelinesFromList(v)
	case map[string]any:
		found, err = timelinesFromObject(v)
	default:
		return nil, forecast.Malformed(Name, timelinesPath, "expected list or object")
	}
	if err != nil {
		return nil, err
	}

	for _, step := range Timesteps {
		if _, ok := found[step]; !ok {
			return nil, forecast.Malformed(Name, timelinesPath, "missing %q timeline", step)
		}
	}
	return &Forecast{
		CollectedAt: collectedAt,
		Current:     found[TimeStepCurrent],
		OneHour:     found[TimeStepOneHour],
		OneDay:      found[TimeStepOneDay],
	}, nil
}

func timelinesFromList(items []any) (map[TimeStep]Timeline, error) {
	found := make(map[TimeStep]Timeline, len(items))
	for i, item := range items {
		path := forecast.IndexPath(timelinesPath, i)

		var h timelineHeader
		if err := forecast.Decode(Name, path, item, &h); err != nil {
			return nil, err
		}
		if _, dup := found[h.Timestep]; dup {
			return nil, forecast.Malformed(Name, path, "duplicate %q timeline", h.Timestep)
		}
		tl, err := decodeTimeline(path, item, h.Timestep)
		if err != nil {
			return nil, err
		}
		found[h.Timestep] = tl
	}
	return found, nil
}

func timelinesFromObject(obj map[string]any) (map[TimeStep]Timeline, error) {
	found := make(map[TimeStep]Timeline, len(obj))
	for _, step := range Timesteps {
		item, ok := obj[string(step)]
		if !ok {
			continue
		}
		path := forecast.JoinPath(timelinesPath, string(step))

		if entry, ok := item.(map[string]any); ok {
			if declared, ok := entry["timestep"]; ok && declared != string(step) {
				return nil, forecast.Malformed(Name, forecast.JoinPath(path, "timestep"),
					"timeline keyed %q declares timestep %v", step, declared)
			}
		}
		tl, err := decodeTimeline(path, item, step)
		if err != nil {
			return nil, err
		}
		found[step] = tl
	}
	return found, nil
}

func decodeTimeline(path string, doc any, step TimeStep) (Timeline, error) {
	var tl Timeline
	if err := forecast.Decode(Name, path, doc, &tl); err != nil {
		return Timeline{}, err
	}
	tl.Timestep = step

	starts := make([]time.Time, len(tl.Intervals))
	for i, in := range tl.Intervals {
		starts[i] = in.StartTime
	}
	if err := forecast.CheckAscending(Name, forecast.JoinPath(path, "intervals"), starts); err != nil {
		return Timeline{}, err
	}
	return tl, nil
}

// Encode renders f back into a timelines response in list form.
func Encode(f *Forecast) map[string]any {
	timelines := make([]any, 0, len(Timesteps))
	for _, tl := range []Timeline{f.Current, f.OneHour, f.OneDay} {
		doc := forecast.MustEncode(tl)
		doc["timestep"] = tl.Timestep.EncodeValue()
		timelines = append(timelines, doc)
	}
	return map[string]any{"data": map[string]any{"timelines": timelines}}
}
