package nws

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/i474232898/weather-forecast-collection/internal/forecast"
)

const (
	// DefaultBaseURL is the public api.weather.gov endpoint.
	DefaultBaseURL = "https://api.weather.gov"
	// DefaultUserAgent identifies the application; api.weather.gov rejects requests without one.
	DefaultUserAgent = "weather-forecast-collection"
)

// Client resolves the grid cell for a point and fetches both gridpoint forecasts.
type Client struct {
	baseURL   string
	userAgent string
	fetcher   forecast.Fetcher
	now       func() time.Time
}

// Option customises a Client.
type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithUserAgent sets the User-Agent header. NWS asks for contact details in it.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// NewClient creates an NWS pipeline. No API key is required.
func NewClient(fetcher forecast.Fetcher, opts ...Option) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent,
		fetcher:   fetcher,
		now:       func() time.Time { return time.Now().UTC() },
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

// Fetch resolves the grid cell, then requests the seven day and hourly
// forecasts for it concurrently.
func (c *Client) Fetch(ctx context.Context, at forecast.Coordinates) (*Forecast, error) {
	docs := Documents{}

	points, err := c.get(ctx, "/points/"+at.String())
	if err != nil {
		return nil, err
	}
	grid, err := NormalizeGridPoint(points)
	if err != nil {
		return nil, err
	}
	docs.Points = points

	base := fmt.Sprintf("/gridpoints/%s/%d,%d/forecast", grid.Office, grid.X, grid.Y)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		doc, err := c.get(gctx, base)
		docs.SevenDay = doc
		return err
	})
	g.Go(func() error {
		doc, err := c.get(gctx, base+"/hourly")
		docs.Hourly = doc
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Normalize(docs, c.now())
}

func (c *Client) get(ctx context.Context, path string) (any, error) {
	header := http.Header{}
	header.Set("User-Agent", c.userAgent)
	header.Set("Accept", "application/geo+json")
	return c.fetcher.Fetch(ctx, forecast.Request{
		Endpoint: c.baseURL + path,
		Header:   header,
	})
}

var _ forecast.Provider = (*Client)(nil)
