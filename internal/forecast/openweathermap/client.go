package openweathermap

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/i474232898/weather-forecast-collection/internal/forecast"
)

// DefaultBaseURL is the OpenWeatherMap API host.
const DefaultBaseURL = "https://api.openweathermap.org"

// Client requests the one call document, which carries every section at once.
type Client struct {
	baseURL string
	apiKey  string
	fetcher forecast.Fetcher
	now     func() time.Time
}

// Option customises a Client.
type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

func NewClient(fetcher forecast.Fetcher, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		fetcher: fetcher,
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Name() string {
	return Name
}

// Forecast implements forecast.Provider.
func (c *Client) Forecast(ctx context.Context, at forecast.Coordinates) (forecast.Forecast, error) {
	f, err := c.Fetch(ctx, at)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (c *Client) Fetch(ctx context.Context, at forecast.Coordinates) (*Forecast, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%s: %w", Name, forecast.ErrMissingCredentials)
	}

	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(at.Latitude, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(at.Longitude, 'f', -1, 64))
	query.Set("appid", c.apiKey)
	query.Set("units", "metric")

	doc, err := c.fetcher.Fetch(ctx, forecast.Request{
		Endpoint: c.baseURL + "/data/2.5/onecall",
		Query:    query,
	})
	if err != nil {
		return nil, err
	}
	return Normalize(doc, c.now())
}

var _ forecast.Provider = (*Client)(nil)
