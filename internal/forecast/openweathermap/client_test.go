package openweathermap

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-forecast-collection/internal/forecast"
)

type fetchFunc func(ctx context.Context, req forecast.Request) (any, error)

func (f fetchFunc) Fetch(ctx context.Context, req forecast.Request) (any, error) {
	return f(ctx, req)
}

func TestClientFetch(t *testing.T) {
	var got forecast.Request
	fetcher := fetchFunc(func(_ context.Context, req forecast.Request) (any, error) {
		got = req
		return loadOneCall(t), nil
	})
	client := NewClient(fetcher, "secret", WithBaseURL("http://owm.test"),
		WithClock(func() time.Time { return collected }))

	f, err := client.Fetch(context.Background(), forecast.Coordinates{Latitude: 42.3601, Longitude: -71.0589})
	require.NoError(t, err)
	require.Equal(t, collected, f.CollectedAt)

	require.Equal(t, "http://owm.test/data/2.5/onecall", got.Endpoint)
	require.Equal(t, "42.3601", got.Query.Get("lat"))
	require.Equal(t, "-71.0589", got.Query.Get("lon"))
	require.Equal(t, "secret", got.Query.Get("appid"))
	require.Equal(t, "metric", got.Query.Get("units"))
}

func TestClientMalformedDocument(t *testing.T) {
	fetcher := fetchFunc(func(context.Context, forecast.Request) (any, error) {
		return []any{}, nil
	})

	f, err := NewClient(fetcher, "secret").Forecast(context.Background(), forecast.Coordinates{})
	require.Nil(t, f)
	require.ErrorIs(t, err, forecast.ErrMalformedResponse)
}

func TestClientMissingAPIKey(t *testing.T) {
	_, err := NewClient(nil, "").Fetch(context.Background(), forecast.Coordinates{})
	require.ErrorIs(t, err, forecast.ErrMissingCredentials)
}
