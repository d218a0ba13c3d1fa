package nws

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-forecast-collection/internal/forecast"
)

const testBaseURL = "http://nws.test"

type stubFetcher struct {
	mu    sync.Mutex
	docs  map[string]any
	calls []forecast.Request
}

func (s *stubFetcher) Fetch(_ context.Context, req forecast.Request) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, req)
	doc, ok := s.docs[strings.TrimPrefix(req.Endpoint, testBaseURL)]
	if !ok {
		return nil, forecast.TransportFailure(Name, req.Endpoint, 404, nil)
	}
	return doc, nil
}

func newStub(t *testing.T) *stubFetcher {
	return &stubFetcher{docs: map[string]any{
		"/points/42.3601,-71.0589":            loadFixture(t, "points.json"),
		"/gridpoints/BOX/71,90/forecast":        loadFixture(t, "forecast.json"),
		"/gridpoints/BOX/71,90/forecast/hourly": loadFixture(t, "hourly.json"),
	}}
}

var boston = forecast.Coordinates{Latitude: 42.3601, Longitude: -71.0589}

func TestClientFetch(t *testing.T) {
	stub := newStub(t)
	at := time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC)
	client := NewClient(stub, WithBaseURL(testBaseURL), WithUserAgent("tests (ops@example.com)"),
		WithClock(func() time.Time { return at }))

	f, err := client.Fetch(context.Background(), boston)
	require.NoError(t, err)
	require.Equal(t, at, f.CollectedAt)
	require.Equal(t, "BOX", f.GridPoint.Office)
	require.Len(t, f.SevenDay.Periods, 6)
	require.Len(t, f.Hourly.Periods, 6)

	require.Len(t, stub.calls, 3)
	for _, c := range stub.calls {
		require.Equal(t, "tests (ops@example.com)", c.Header.Get("User-Agent"))
	}
}

func TestClientUsesOfficeFromPoints(t *testing.T) {
	stub := newStub(t)
	points := stub.docs["/points/42.3601,-71.0589"]
	properties(points)["gridId"] = "OKX"
	stub.docs["/gridpoints/OKX/71,90/forecast"] = stub.docs["/gridpoints/BOX/71,90/forecast"]
	stub.docs["/gridpoints/OKX/71,90/forecast/hourly"] = stub.docs["/gridpoints/BOX/71,90/forecast/hourly"]

	f, err := NewClient(stub, WithBaseURL(testBaseURL)).Fetch(context.Background(), boston)
	require.NoError(t, err)
	require.Equal(t, "OKX", f.GridPoint.Office)
}

func TestClientPointsFailureAborts(t *testing.T) {
	stub := newStub(t)
	delete(stub.docs, "/points/42.3601,-71.0589")

	_, err := NewClient(stub, WithBaseURL(testBaseURL)).Fetch(context.Background(), boston)
	require.ErrorIs(t, err, forecast.ErrTransport)
	require.Len(t, stub.calls, 1)
}

func TestClientHourlyFailure(t *testing.T) {
	stub := newStub(t)
	delete(stub.docs, "/gridpoints/BOX/71,90/forecast/hourly")

	f, err := NewClient(stub, WithBaseURL(testBaseURL)).Forecast(context.Background(), boston)
	require.Nil(t, f)
	require.ErrorIs(t, err, forecast.ErrTransport)
}

func TestClientDefaultUserAgent(t *testing.T) {
	stub := newStub(t)
	_, err := NewClient(stub, WithBaseURL(testBaseURL), WithUserAgent("")).Fetch(context.Background(), boston)
	require.NoError(t, err)
	require.Equal(t, DefaultUserAgent, stub.calls[0].Header.Get("User-Agent"))
}
