package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func requireError(t *testing.T, err error, kind error, path string) {
	t.Helper()
	require.ErrorIs(t, err, kind)
	fe, ok := AsError(err)
	require.True(t, ok)
	require.Equal(t, path, fe.Path)
}

func TestUnwrapSingleton(t *testing.T) {
	first, err := UnwrapSingleton("p", "conditions", []any{"a", "b"})
	require.NoError(t, err)
	require.Equal(t, "a", first)

	_, err = UnwrapSingleton("p", "conditions", []any{})
	requireError(t, err, ErrMalformedResponse, "conditions")

	_, err = UnwrapSingleton("p", "conditions", map[string]any{})
	requireError(t, err, ErrMalformedResponse, "conditions")
}

func TestUnwrapFieldCopies(t *testing.T) {
	obj := map[string]any{"weather": []any{map[string]any{"main": "Rain"}}, "temp": 3.0}

	out, err := UnwrapField("p", "current", obj, "weather")
	require.NoError(t, err)
	require.Equal(t, map[string]any{"main": "Rain"}, out["weather"])
	require.Equal(t, 3.0, out["temp"])
	require.IsType(t, []any{}, obj["weather"])

	require.Equal(t, obj, WrapField(out, "weather"))

	_, err = UnwrapField("p", "current", map[string]any{}, "weather")
	requireError(t, err, ErrMalformedResponse, "current.weather")
}

type station struct {
	Name    string    `src:"name"`
	Reading ValueUnit `src:"reading"`
}

func TestDecodeUnwrapped(t *testing.T) {
	obj := map[string]any{
		"name":    "BOX",
		"reading": []any{map[string]any{"Value": 2.5, "Unit": "C"}},
	}
	var s station
	require.NoError(t, DecodeUnwrapped("p", "hourly[2]", obj, "reading", &s))
	require.Equal(t, ValueUnit{Value: 2.5, Unit: "C"}, s.Reading)

	obj["reading"] = []any{map[string]any{"Value": "warm", "Unit": "C"}}
	err := DecodeUnwrapped("p", "hourly[2]", obj, "reading", &s)
	requireError(t, err, ErrSchemaValidation, "hourly[2].reading[0].Value")

	obj["reading"] = []any{map[string]any{"Value": 1.0, "Unit": ""}}
	err = DecodeUnwrapped("p", "hourly[2]", obj, "reading", &s)
	requireError(t, err, ErrSchemaValidation, "hourly[2].reading[0].Unit")

	obj["reading"] = []any{map[string]any{"Value": 1.0, "Unit": "C"}}
	obj["name"] = 4.0
	err = DecodeUnwrapped("p", "hourly[2]", obj, "reading", &s)
	requireError(t, err, ErrSchemaValidation, "hourly[2].name")
}

func TestReindexPath(t *testing.T) {
	require.Equal(t, "a.weather[0].main", reindexPath("a.weather.main", "a.weather"))
	require.Equal(t, "a.weather[0]", reindexPath("a.weather", "a.weather"))
	require.Equal(t, "a.weatherCode", reindexPath("a.weatherCode", "a.weather"))
	require.Equal(t, "a.temp", reindexPath("a.temp", "a.weather"))
}

func TestSection(t *testing.T) {
	doc := map[string]any{"Headline": map[string]any{"Text": "x"}, "list": []any{}}

	s, err := Section("p", "fiveDay", doc, "Headline")
	require.NoError(t, err)
	require.Equal(t, "x", s["Text"])

	_, err = Section("p", "fiveDay", doc, "Missing")
	requireError(t, err, ErrMalformedResponse, "fiveDay.Missing")

	_, err = Section("p", "fiveDay", doc, "list")
	requireError(t, err, ErrMalformedResponse, "fiveDay.list")

	l, err := SectionList("p", "", doc, "list")
	require.NoError(t, err)
	require.Empty(t, l)

	_, err = SectionList("p", "", []any{}, "list")
	requireError(t, err, ErrMalformedResponse, "")
}

func TestCheckAscending(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, CheckAscending("p", "hourly", nil))
	require.NoError(t, CheckAscending("p", "hourly", []time.Time{t0, t0.Add(time.Hour)}))

	err := CheckAscending("p", "hourly", []time.Time{t0, t0.Add(time.Hour), t0.Add(time.Hour)})
	requireError(t, err, ErrSchemaValidation, "hourly[2]")
}

func TestErrorMessage(t *testing.T) {
	err := Malformed("accuweather", "conditions", "expected one entry, list is empty")
	require.Equal(t, "accuweather: malformed response at conditions: expected one entry, list is empty", err.Error())

	tf := TransportFailure("nws", "https://api.weather.gov/points/1,2", 503, nil)
	require.Equal(t, "nws: transport failure at https://api.weather.gov/points/1,2 (status 503)", tf.Error())
	require.ErrorIs(t, tf, ErrTransport)
	require.NotErrorIs(t, tf, ErrMalformedResponse)
}
