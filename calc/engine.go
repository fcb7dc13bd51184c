// Package calc prices uniform trades in USD notional and summarizes the
// result.
package calc

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rustyeddy/notional/fxrates"
	"github.com/rustyeddy/notional/market"
	"github.com/rustyeddy/notional/metrics"
	"github.com/rustyeddy/notional/trade"
)

const DefaultWorkers = 4

// Enriched is a trade with everything used to price it.
type Enriched struct {
	trade.Trade
	Class        market.Class   `json:"-"`
	ContractSize float64        `json:"contract_size"`
	BaseCurrency string         `json:"base_currency"`
	FXRate       float64        `json:"fx_rate"`
	FXSource     fxrates.Source `json:"fx_source"`
	NotionalUSD  float64        `json:"notional_usd"`
}

// Result of one Calculate call. Skipped counts, per symbol, the trades that
// could not be priced because no USD rate exists for their currency.
type Result struct {
	Trades  []Enriched
	Skipped map[string]int
}

// SkippedCount is the total number of skipped trades.
func (r *Result) SkippedCount() int {
	n := 0
	for _, c := range r.Skipped {
		n += c
	}
	return n
}

// RateResolver is satisfied by *fxrates.Resolver.
type RateResolver interface {
	Rate(ctx context.Context, currency, date string) (float64, fxrates.Source, error)
}

type Engine struct {
	classifier *market.Classifier
	rates      RateResolver
	workers    int
	metrics    *metrics.Metrics
	log        zerolog.Logger
}

type Option func(*Engine)

// WithWorkers bounds how many trades are priced concurrently.
func WithWorkers(n int) Option {
	return func(e *Engine) { e.workers = n }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

func NewEngine(classifier *market.Classifier, rates RateResolver, opts ...Option) *Engine {
	e := &Engine{
		classifier: classifier,
		rates:      rates,
		workers:    DefaultWorkers,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.workers < 1 {
		e.workers = 1
	}
	e.log = e.log.With().Str("component", "calc").Logger()
	return e
}

// priced is the per-trade outcome: either an Enriched trade or the reason it
// was skipped.
type priced struct {
	trade   Enriched
	skipErr error
}

// Calculate prices every trade, keeping input order. A trade whose currency
// has no rate is skipped and counted; it never fails the batch. Any other
// resolver error, or ctx being cancelled, does.
func (e *Engine) Calculate(ctx context.Context, trades []trade.Trade) (*Result, error) {
	out := make([]priced, len(trades))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := range trades {
		i := i
		g.Go(func() error {
			en, err := e.Price(gctx, trades[i])
			switch {
			case err == nil:
				out[i] = priced{trade: en}
			case errors.Is(err, fxrates.ErrUnknownCurrency):
				out[i] = priced{trade: en, skipErr: err}
			default:
				return fmt.Errorf("price %s closed %s: %w", trades[i].Symbol, trades[i].CloseDate(), err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{
		Trades:  make([]Enriched, 0, len(trades)),
		Skipped: make(map[string]int),
	}
	for _, p := range out {
		if p.skipErr != nil {
			res.Skipped[p.trade.Symbol]++
			e.metrics.ObserveSkipped(p.trade.Symbol)
			e.log.Warn().Err(p.skipErr).
				Str("symbol", p.trade.Symbol).
				Str("currency", p.trade.BaseCurrency).
				Str("close_date", p.trade.CloseDate()).
				Msg("skipping trade, no USD rate")
			continue
		}
		e.metrics.ObservePriced()
		res.Trades = append(res.Trades, p.trade)
	}

	e.log.Info().
		Int("priced", len(res.Trades)).
		Int("skipped", res.SkippedCount()).
		Msg("calculation complete")
	return res, nil
}

// Price enriches a single trade. On error the returned Enriched still carries
// the classification so callers can report what was attempted.
func (e *Engine) Price(ctx context.Context, t trade.Trade) (Enriched, error) {
	inst := e.classifier.Instrument(t.Symbol)
	en := Enriched{
		Trade:        t,
		Class:        inst.Class,
		ContractSize: inst.ContractSize,
		BaseCurrency: inst.BaseCurrency,
	}

	rate, src, err := e.rates.Rate(ctx, inst.BaseCurrency, t.CloseDate())
	if err != nil {
		return en, err
	}
	en.FXRate = rate
	en.FXSource = src
	en.NotionalUSD = Notional(inst.Class, t.Lots, inst.ContractSize, t.ClosePrice, rate)
	return en, nil
}

// Notional is the USD exposure of a position:
//
//	forex_usd_base   lots * size
//	forex_usd_quote  lots * size * closePrice
//	forex_cross      lots * size * fxRate
//	commodity        lots * size * closePrice * fxRate
func Notional(class market.Class, lots, contractSize, closePrice, fxRate float64) float64 {
	switch class {
	case market.ForexUSDBase:
		return lots * contractSize
	case market.ForexUSDQuote:
		return lots * contractSize * closePrice
	case market.ForexCross:
		return lots * contractSize * fxRate
	default:
		return lots * contractSize * closePrice * fxRate
	}
}
