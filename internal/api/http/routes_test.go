package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-forecast-collection/internal/forecast"
	"github.com/i474232898/weather-forecast-collection/internal/forecast/climacell"
	"github.com/i474232898/weather-forecast-collection/internal/forecast/weatherchannel"
)

var boston = forecast.Coordinates{Latitude: 42.3601, Longitude: -71.0589}

type stubForecast struct {
	Provider string               `json:"provider"`
	At       forecast.Coordinates `json:"at"`
}

func (f stubForecast) ProviderName() string  { return f.Provider }
func (f stubForecast) Collected() time.Time { return time.Time{} }

type stubProvider struct {
	name string
	f    forecast.Forecast
	err  error
}

func (p stubProvider) Name() string { return p.name }

func (p stubProvider) Forecast(_ context.Context, at forecast.Coordinates) (forecast.Forecast, error) {
	if p.err != nil {
		return nil, p.err
	}
	if p.f != nil {
		return p.f, nil
	}
	return stubForecast{Provider: p.name, At: at}, nil
}

func newTestApp(providers ...forecast.Provider) *fiber.App {
	return NewApp(forecast.NewService(nil, providers...), boston)
}

func get(t *testing.T, app *fiber.App, target string) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return resp.StatusCode, out
}

func TestHealth(t *testing.T) {
	status, body := get(t, newTestApp(), "/health")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "ok", body["status"])
}

func TestListProviders(t *testing.T) {
	app := newTestApp(stubProvider{name: "nws"}, stubProvider{name: "climacell"})

	status, body := get(t, app, "/api/v1/providers")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, []any{"nws", "climacell"}, body["providers"])
}

func TestProviderForecastUsesDefaultLocation(t *testing.T) {
	app := newTestApp(stubProvider{name: "nws"})

	status, body := get(t, app, "/api/v1/forecasts/nws")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "nws", body["provider"])
	require.Equal(t, map[string]any{"lat": 42.3601, "lon": -71.0589}, body["at"])
}

func TestProviderForecastLocationQuery(t *testing.T) {
	app := newTestApp(stubProvider{name: "nws"})

	status, body := get(t, app, "/api/v1/forecasts/nws?lat=40.7128&lon=-74.006")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, map[string]any{"lat": 40.7128, "lon": -74.006}, body["at"])
}

func TestProviderForecastBadLocation(t *testing.T) {
	app := newTestApp(stubProvider{name: "nws"})

	for _, target := range []string{
		"/api/v1/forecasts/nws?lat=91&lon=0",
		"/api/v1/forecasts/nws?lat=10&lon=181",
		"/api/v1/forecasts/nws?lat=north&lon=0",
		"/api/v1/forecasts/nws?lat=10",
	} {
		status, body := get(t, app, target)
		require.Equal(t, http.StatusBadRequest, status, target)
		require.Equal(t, true, body["error"], target)
	}
}

func TestProviderForecastErrorStatus(t *testing.T) {
	app := newTestApp(
		weatherchannel.NewClient(),
		stubProvider{name: "broken", err: forecast.Malformed("broken", "hourly", "expected a list")},
		stubProvider{name: "invalid", err: forecast.Invalid("invalid", "daily[0].temp", "out of range")},
		stubProvider{name: "down", err: forecast.TransportFailure("down", "/x", 503, nil)},
		stubProvider{name: "nokey", err: forecast.ErrMissingCredentials},
		stubProvider{name: "slow", err: context.DeadlineExceeded},
		stubProvider{name: "bug", err: errors.New("boom")},
	)

	cases := map[string]int{
		"weatherchannel": http.StatusNotImplemented,
		"broken":         http.StatusBadGateway,
		"invalid":        http.StatusBadGateway,
		"down":           http.StatusBadGateway,
		"nokey":          http.StatusServiceUnavailable,
		"slow":           http.StatusGatewayTimeout,
		"bug":            http.StatusInternalServerError,
		"missing":        http.StatusNotFound,
	}
	for name, want := range cases {
		status, body := get(t, app, "/api/v1/forecasts/"+name)
		require.Equal(t, want, status, name)
		require.Equal(t, true, body["error"], name)
		require.NotEmpty(t, body["message"], name)
	}
}

func TestProviderForecastRaw(t *testing.T) {
	cc := &climacell.Forecast{
		Current: climacell.Timeline{Timestep: climacell.TimeStepCurrent},
		OneHour: climacell.Timeline{Timestep: climacell.TimeStepOneHour},
		OneDay:  climacell.Timeline{Timestep: climacell.TimeStepOneDay},
	}
	app := newTestApp(stubProvider{name: climacell.Name, f: cc}, stubProvider{name: "plain"})

	status, body := get(t, app, "/api/v1/forecasts/climacell?format=raw")
	require.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]any)
	require.Len(t, data["timelines"], 3)

	status, _ = get(t, app, "/api/v1/forecasts/plain?format=raw")
	require.Equal(t, http.StatusBadRequest, status)
}

func TestCollectForecasts(t *testing.T) {
	app := newTestApp(
		stubProvider{name: "nws"},
		weatherchannel.NewClient(),
		stubProvider{name: "broken", err: forecast.Malformed("broken", "hourly", "expected a list")},
	)

	status, body := get(t, app, "/api/v1/forecasts")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, map[string]any{"lat": 42.3601, "lon": -71.0589}, body["coordinates"])

	results := body["results"].([]any)
	require.Len(t, results, 3)

	ok := results[0].(map[string]any)
	require.Equal(t, "nws", ok["provider"])
	require.NotNil(t, ok["forecast"])
	require.Nil(t, ok["error"])

	unsupported := results[1].(map[string]any)
	require.Equal(t, "weatherchannel", unsupported["provider"])
	require.Nil(t, unsupported["forecast"])
	require.Equal(t, "unsupported", unsupported["error"].(map[string]any)["kind"])

	broken := results[2].(map[string]any)["error"].(map[string]any)
	require.Equal(t, "malformed_response", broken["kind"])
	require.Equal(t, "hourly", broken["path"])
}

func TestCollectForecastsSelection(t *testing.T) {
	app := newTestApp(stubProvider{name: "nws"}, stubProvider{name: "climacell"})

	status, body := get(t, app, "/api/v1/forecasts?providers=ClimaCell,%20climacell")
	require.Equal(t, http.StatusOK, status)
	results := body["results"].([]any)
	require.Len(t, results, 1)
	require.Equal(t, "climacell", results[0].(map[string]any)["provider"])

	status, body = get(t, app, "/api/v1/forecasts?providers=darksky")
	require.Equal(t, http.StatusNotFound, status)
	require.Contains(t, body["message"], "darksky")
}

func TestCollectForecastsWithoutProviders(t *testing.T) {
	status, _ := get(t, newTestApp(), "/api/v1/forecasts")
	require.Equal(t, http.StatusServiceUnavailable, status)
}
