// Package store provides forecast.KeyCache backends for memoizing resolved
// provider identifiers such as AccuWeather location keys.
package store

import (
	"errors"
	"fmt"

	"github.com/i474232898/weather-forecast-collection/internal/forecast"
)

// ErrEmptyKey is returned when Put is called without a key.
var ErrEmptyKey = errors.New("cache key must not be empty")

const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Options selects and configures a cache backend.
type Options struct {
	Backend   string
	FilePath  string
	RedisAddr string
	// RedisPrefix namespaces keys in a shared Redis.
	RedisPrefix string
}

// New builds the configured backend. The returned close function releases
// backend resources and is never nil.
func New(opts Options) (forecast.KeyCache, func() error, error) {
	noop := func() error { return nil }

	switch opts.Backend {
	case "", BackendMemory:
		return NewMemoryKeyCache(), noop, nil
	case BackendFile:
		c, err := NewFileKeyCache(opts.FilePath)
		if err != nil {
			return nil, noop, err
		}
		return c, noop, nil
	case BackendRedis:
		c, err := NewRedisKeyCache(opts.RedisAddr, opts.RedisPrefix)
		if err != nil {
			return nil, noop, err
		}
		return c, c.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown location cache backend %q", opts.Backend)
	}
}
