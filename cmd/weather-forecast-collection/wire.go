package main

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/i474232898/weather-forecast-collection/internal/config"
	"github.com/i474232898/weather-forecast-collection/internal/forecast"
	"github.com/i474232898/weather-forecast-collection/internal/forecast/accuweather"
	"github.com/i474232898/weather-forecast-collection/internal/forecast/climacell"
	"github.com/i474232898/weather-forecast-collection/internal/forecast/nws"
	"github.com/i474232898/weather-forecast-collection/internal/forecast/openweathermap"
	"github.com/i474232898/weather-forecast-collection/internal/forecast/weatherchannel"
	"github.com/i474232898/weather-forecast-collection/internal/store"
	"github.com/i474232898/weather-forecast-collection/internal/transport"
)

// buildService wires the enabled providers. The returned close function
// releases the location key cache.
func buildService(cfg *config.AppConfig, logger *slog.Logger) (*forecast.Service, func() error, error) {
	cache, closeCache, err := store.New(store.Options{
		Backend:     cfg.Cache.Backend,
		FilePath:    cfg.Cache.Path,
		RedisAddr:   cfg.Cache.RedisAddr,
		RedisPrefix: store.DefaultRedisPrefix,
	})
	if err != nil {
		return nil, closeCache, fmt.Errorf("location key cache: %w", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{Timeout: cfg.HTTP.Timeout}
	tcfg := transport.Config{
		Timeout: cfg.HTTP.Timeout,
		RPS:     cfg.HTTP.RPS,
		Burst:   cfg.HTTP.Burst,
		Backoff: transport.BackoffConfig{
			MaxRetries:      cfg.HTTP.RetryMax,
			InitialInterval: cfg.HTTP.RetryInitial,
			MaxInterval:     cfg.HTTP.RetryMaxInterval,
		},
	}
	fetcher := func(name string) forecast.Fetcher {
		return transport.New(name, httpClient, tcfg, logger)
	}

	var provs []forecast.Provider
	for _, name := range cfg.Providers {
		switch name {
		case accuweather.Name:
			provs = append(provs, accuweather.NewClient(fetcher(name), cfg.AccuWeatherAPIKey, accuweather.WithKeyCache(cache)))
		case nws.Name:
			provs = append(provs, nws.NewClient(fetcher(name), nws.WithUserAgent(cfg.NWSUserAgent)))
		case climacell.Name:
			provs = append(provs, climacell.NewClient(fetcher(name), cfg.ClimaCellAPIKey))
		case openweathermap.Name:
			provs = append(provs, openweathermap.NewClient(fetcher(name), cfg.OpenWeatherMapAPIKey))
		case weatherchannel.Name:
			provs = append(provs, weatherchannel.NewClient())
		default:
			return nil, closeCache, fmt.Errorf("unknown provider %q", name)
		}
		if missingCredentials(cfg, name) {
			logger.Warn("provider enabled without an API key", "provider", name)
		}
	}

	return forecast.NewService(logger, provs...), closeCache, nil
}

func missingCredentials(cfg *config.AppConfig, name string) bool {
	switch name {
	case accuweather.Name:
		return cfg.AccuWeatherAPIKey == ""
	case climacell.Name:
		return cfg.ClimaCellAPIKey == ""
	case openweathermap.Name:
		return cfg.OpenWeatherMapAPIKey == ""
	}
	return false
}

func defaultLocation(cfg *config.AppConfig) forecast.Coordinates {
	return forecast.Coordinates{Latitude: cfg.Location.Latitude, Longitude: cfg.Location.Longitude}
}
