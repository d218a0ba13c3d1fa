// Package weatherchannel reserves a slot for The Weather Channel. Its hourly
// forecast endpoint is restricted to personal weather station owners, so the
// pipeline refuses every request.
package weatherchannel

import (
	"context"

	"github.com/i474232898/weather-forecast-collection/internal/forecast"
)

const (
	Name = "weatherchannel"
	// DefaultBaseURL is kept for when access becomes available.
	DefaultBaseURL = "https://api.weather.com"
)

type Client struct{}

func NewClient() *Client {
	return &Client{}
}

func (c *Client) Name() string {
	return Name
}

// Forecast always fails with forecast.ErrUnsupported.
func (c *Client) Forecast(context.Context, forecast.Coordinates) (forecast.Forecast, error) {
	return nil, forecast.Unsupported(Name, "this API is not ready for use")
}

var _ forecast.Provider = (*Client)(nil)
