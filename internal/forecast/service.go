package forecast

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

var (
	// ErrUnknownProvider is returned when a caller names a provider that is not configured.
	ErrUnknownProvider = errors.New("unknown provider")
	// ErrNoProviders is returned by Collect when nothing is configured.
	ErrNoProviders = errors.New("no forecast providers configured")
)

// Result is one provider's outcome within a Collect call.
type Result struct {
	Provider string
	Forecast Forecast
	Err      error
	Elapsed  time.Duration
}

// Service dispatches forecast requests to the configured providers.
type Service struct {
	providers map[string]Provider
	order     []string
	logger    *slog.Logger
}

// NewService creates a new Service. Providers are reported in the given order.
func NewService(logger *slog.Logger, providers ...Provider) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		providers: make(map[string]Provider, len(providers)),
		logger:    logger,
	}
	for _, p := range providers {
		if _, dup := s.providers[p.Name()]; dup {
			continue
		}
		s.providers[p.Name()] = p
		s.order = append(s.order, p.Name())
	}
	return s
}

// Providers lists the configured provider names.
func (s *Service) Providers() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Fetch runs a single provider pipeline.
func (s *Service) Fetch(ctx context.Context, name string, at Coordinates) (Forecast, error) {
	p, ok := s.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
	}
	return p.Forecast(ctx, at)
}

// Collect runs the named providers (all of them when names is empty)
// concurrently. Each pipeline is independent: one provider's failure is
// reported in its Result and never affects the others.
func (s *Service) Collect(ctx context.Context, at Coordinates, names ...string) ([]Result, error) {
	if len(names) == 0 {
		names = s.order
	}
	if len(names) == 0 {
		return nil, ErrNoProviders
	}

	selected := make([]Provider, 0, len(names))
	for _, name := range names {
		p, ok := s.providers[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
		}
		selected = append(selected, p)
	}

	s.logger.Debug("collecting forecasts", "providers", len(selected), "coordinates", at.String())

	results := make([]Result, len(selected))
	var wg sync.WaitGroup
	for i, p := range selected {
		wg.Add(1)
		go func() {
			defer wg.Done()

			start := time.Now()
			f, err := p.Forecast(ctx, at)
			results[i] = Result{Provider: p.Name(), Forecast: f, Err: err, Elapsed: time.Since(start)}
			if err != nil {
				s.logger.Warn("provider forecast failed", "provider", p.Name(), "coordinates", at.String(), "error", err)
			}
		}()
	}
	wg.Wait()

	return results, nil
}
