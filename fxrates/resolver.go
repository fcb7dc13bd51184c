package fxrates

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/rustyeddy/notional/metrics"
)

// ErrUnknownCurrency means neither the API nor the fallback table had a rate.
var ErrUnknownCurrency = errors.New("unknown currency")

// Resolver returns currency to USD rates with provenance:
//
//  1. USD is always 1.0 (Direct), no cache or network.
//  2. A cached API rate for the same day (APICached).
//  3. A live API call (API), stored in the cache on success.
//  4. The static fallback table (Fallback).
//
// API failures never surface as errors. Concurrent lookups of the same key
// share one API call.
type Resolver struct {
	api      RateSource
	cache    *Cache
	fallback map[string]float64
	group    singleflight.Group
	metrics  *metrics.Metrics
	log      zerolog.Logger
}

type Option func(*Resolver)

// WithCache shares a cache between resolvers.
func WithCache(c *Cache) Option {
	return func(r *Resolver) { r.cache = c }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Resolver) { r.metrics = m }
}

func WithLogger(l zerolog.Logger) Option {
	return func(r *Resolver) { r.log = l }
}

// NewResolver builds a resolver. A nil api disables the live tier.
func NewResolver(api RateSource, fallback map[string]float64, opts ...Option) *Resolver {
	r := &Resolver{
		api:      api,
		fallback: make(map[string]float64, len(fallback)),
		log:      zerolog.Nop(),
	}
	for ccy, rate := range fallback {
		r.fallback[strings.ToUpper(ccy)] = rate
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.cache == nil {
		r.cache = NewCache()
	}
	r.log = r.log.With().Str("component", "fxrates").Logger()
	return r
}

// Rate converts one unit of currency to USD as of date. date may use ".",
// "-" or "/" separators and may carry a time of day.
func (r *Resolver) Rate(ctx context.Context, currency, date string) (float64, Source, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "USD" {
		r.metrics.ObserveLookup(string(Direct))
		return 1.0, Direct, nil
	}

	day := NormalizeDate(date)

	if rate, ok := r.cache.Get(day, currency); ok {
		r.observe(currency, day, rate, APICached)
		return rate, APICached, nil
	}

	if r.api != nil && !r.cache.failed(day, currency) {
		rate, fresh, err := r.fetch(ctx, day, currency)
		if err == nil {
			src := APICached
			if fresh {
				src = API
			}
			r.observe(currency, day, rate, src)
			return rate, src, nil
		}
		r.log.Warn().Err(err).
			Str("currency", currency).
			Str("date", day).
			Msg("historical rate unavailable, trying fallback table")
	}

	if rate, ok := r.fallback[currency]; ok {
		r.observe(currency, day, rate, Fallback)
		return rate, Fallback, nil
	}

	return 0, "", fmt.Errorf("%w: %s (no API rate or fallback available)", ErrUnknownCurrency, currency)
}

// fetch calls the API once per key no matter how many goroutines ask. fresh
// is true only for the caller whose request actually went out.
func (r *Resolver) fetch(ctx context.Context, day, currency string) (rate float64, fresh bool, err error) {
	leader := false
	v, err, _ := r.group.Do(cacheKey(day, currency), func() (any, error) {
		if rate, ok := r.cache.Get(day, currency); ok {
			return rate, nil
		}
		leader = true

		rate, err := r.api.Historical(ctx, day, currency)
		r.metrics.ObserveAPIRequest(err == nil)
		if err != nil {
			r.cache.markFailed(day, currency)
			return nil, err
		}
		r.cache.Set(day, currency, rate)
		return rate, nil
	})
	if err != nil {
		return 0, false, err
	}
	return v.(float64), leader, nil
}

func (r *Resolver) observe(currency, day string, rate float64, src Source) {
	r.metrics.ObserveLookup(string(src))

	ev := r.log.Debug()
	if src == Fallback {
		ev = r.log.Info()
	}
	ev.Str("currency", currency).
		Str("date", day).
		Float64("rate", rate).
		Str("source", string(src)).
		Msg("resolved fx rate")
}

// Reset clears cached rates and remembered API failures.
func (r *Resolver) Reset() {
	r.cache.Reset()
}

func (r *Resolver) CacheStats() CacheStats {
	return r.cache.Stats()
}
