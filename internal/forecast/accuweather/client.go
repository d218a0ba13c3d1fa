package accuweather

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/i474232898/weather-forecast-collection/internal/forecast"
)

// DefaultBaseURL is the public AccuWeather data service.
const DefaultBaseURL = "http://dataservice.accuweather.com"

const geopositionPath = "/locations/v1/cities/geoposition/search"

// Client resolves a location key and then requests conditions, the five day
// forecast and the twelve hour forecast for it.
type Client struct {
	baseURL string
	apiKey  string
	fetcher forecast.Fetcher
	cache   forecast.KeyCache
	now     func() time.Time

	resolving singleflight.Group
}

// Option customises a Client.
type Option func(*Client)

// WithBaseURL points the client at a different host.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithKeyCache memoizes location keys per coordinate pair.
func WithKeyCache(cache forecast.KeyCache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithClock overrides the normalization clock.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// NewClient creates an AccuWeather pipeline.
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

// Fetch runs the full pipeline. A failure at any step aborts the others.
func (c *Client) Fetch(ctx context.Context, at forecast.Coordinates) (*Forecast, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%s: %w", Name, forecast.ErrMissingCredentials)
	}

	key, err := c.LocationKey(ctx, at)
	if err != nil {
		return nil, err
	}

	docs := Documents{LocationKey: key}
	escaped := url.PathEscape(key)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		doc, err := c.get(gctx, "/currentconditions/v1/"+escaped, nil)
		docs.Conditions = doc
		return err
	})
	g.Go(func() error {
		doc, err := c.get(gctx, "/forecasts/v1/daily/5day/"+escaped, nil)
		docs.FiveDay = doc
		return err
	})
	g.Go(func() error {
		doc, err := c.get(gctx, "/forecasts/v1/hourly/12hour/"+escaped, nil)
		docs.Hourly = doc
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Normalize(docs, c.now())
}

// LocationKey resolves the coordinates to AccuWeather's location identifier.
// Keys never change for a point, so they are memoized indefinitely when a
// cache is configured. Concurrent lookups of the same point share one fetch,
// which runs detached from any single caller's cancellation; each caller
// still stops waiting when its own context ends.
func (c *Client) LocationKey(ctx context.Context, at forecast.Coordinates) (string, error) {
	cacheKey := LocationCacheKey(at)
	shared := context.WithoutCancel(ctx)

	ch := c.resolving.DoChan(cacheKey, func() (any, error) {
		return c.resolveLocationKey(shared, at, cacheKey)
	})
	select {
	case <-ctx.Done():
		return "", forecast.TransportFailure(Name, c.baseURL+geopositionPath, 0, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (c *Client) resolveLocationKey(ctx context.Context, at forecast.Coordinates, cacheKey string) (string, error) {
	if c.cache != nil {
		key, ok, err := c.cache.Get(ctx, cacheKey)
		if err != nil {
			return "", fmt.Errorf("%s: read location key cache: %w", Name, err)
		}
		if ok {
			return key, nil
		}
	}

	query := url.Values{}
	query.Set("q", at.String())
	doc, err := c.get(ctx, geopositionPath, query)
	if err != nil {
		return "", err
	}
	key, err := NormalizeLocationKey(doc)
	if err != nil {
		return "", err
	}

	if c.cache != nil {
		if err := c.cache.Put(ctx, cacheKey, key); err != nil {
			return "", fmt.Errorf("%s: write location key cache: %w", Name, err)
		}
	}
	return key, nil
}

// LocationCacheKey encodes the resolution call and its arguments.
func LocationCacheKey(at forecast.Coordinates) string {
	return "accuweather.location_key:" + at.String()
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (any, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("apikey", c.apiKey)
	query.Set("details", "true")
	return c.fetcher.Fetch(ctx, forecast.Request{
		Endpoint: c.baseURL + path,
		Query:    query,
	})
}

var _ forecast.Provider = (*Client)(nil)
