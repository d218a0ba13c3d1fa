package forecast

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrMissingCredentials is returned by pipelines whose API key is not configured.
var ErrMissingCredentials = errors.New("provider credentials not configured")

// Coordinates identify the point a forecast is requested for.
type Coordinates struct {
	Latitude  float64 `json:"lat" validate:"latitude"`
	Longitude float64 `json:"lon" validate:"longitude"`
}

// String renders the coordinates the way most providers accept them in a query.
func (c Coordinates) String() string {
	return strconv.FormatFloat(c.Latitude, 'f', -1, 64) + "," + strconv.FormatFloat(c.Longitude, 'f', -1, 64)
}

// Request describes one raw GET a provider pipeline needs.
type Request struct {
	Endpoint string
	Query    url.Values
	Header   http.Header
}

// URL returns the endpoint with the encoded query attached.
func (r Request) URL() string {
	if len(r.Query) == 0 {
		return r.Endpoint
	}
	return fmt.Sprintf("%s?%s", r.Endpoint, r.Query.Encode())
}

// Fetcher performs a raw request and returns the decoded JSON document
// (map[string]any, []any or a scalar). Non-success responses are reported as
// ErrTransport errors.
type Fetcher interface {
	Fetch(ctx context.Context, req Request) (any, error)
}

// KeyCache memoizes resolved identifiers. Get reports whether the key was found.
type KeyCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
}

// Forecast is the provider-specific aggregate returned by a pipeline.
type Forecast interface {
	ProviderName() string
	// Collected is the normalization time, never a provider-supplied value.
	Collected() time.Time
}

// Provider runs one provider's fetch chain and adapters.
type Provider interface {
	Name() string
	Forecast(ctx context.Context, at Coordinates) (Forecast, error)
}
