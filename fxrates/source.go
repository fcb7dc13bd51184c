// Package fxrates resolves historical currency to USD conversion rates with
// an in-process cache and a static fallback table.
package fxrates

import (
	"strings"
	"time"
)

// Source tags where a rate came from.
type Source string

const (
	Direct    Source = "direct"     // currency is USD, no conversion
	API       Source = "api"        // fresh historical API call
	APICached Source = "api_cached" // earlier API result for the same day
	Fallback  Source = "fallback"   // static table, API unavailable
)

// Sources lists every provenance in report order.
var Sources = []Source{Direct, API, APICached, Fallback}

var dateSeparators = strings.NewReplacer(".", "-", "/", "-")

// NormalizeDate turns "2026.01.19", "2026/01/19 10:30:00" or
// "2026-01-19T10:30:00" into "2026-01-19". Unparseable input is returned with
// separators normalized and the time of day dropped.
func NormalizeDate(s string) string {
	s = dateSeparators.Replace(strings.TrimSpace(s))
	if i := strings.IndexAny(s, " T"); i >= 0 {
		s = s[:i]
	}
	if t, err := time.Parse("2006-1-2", s); err == nil {
		return t.Format(time.DateOnly)
	}
	return s
}

// FallbackRates are approximate currency to USD rates used when the API
// cannot answer.
var FallbackRates = map[string]float64{
	"GBP": 1.345,
	"EUR": 1.08,
	"AUD": 0.67,
	"JPY": 0.0067,
	"CAD": 0.74,
	"CHF": 1.12,
	"NZD": 0.62,
}

// DefaultFallbackRates returns a copy of FallbackRates.
func DefaultFallbackRates() map[string]float64 {
	out := make(map[string]float64, len(FallbackRates))
	for k, v := range FallbackRates {
		out[k] = v
	}
	return out
}
