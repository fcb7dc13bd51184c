// Package metrics provides Prometheus instrumentation for notional runs.
//
// Each Metrics owns its registry so a batch run can dump exactly what it
// observed in the node_exporter textfile format.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Registry *prometheus.Registry

	// FXLookups counts resolved rates, partitioned by provenance.
	FXLookups *prometheus.CounterVec

	// FXAPIRequests counts historical rate API calls by result (ok, error).
	FXAPIRequests *prometheus.CounterVec

	// TradesPriced counts trades that received a notional value.
	TradesPriced prometheus.Counter

	// TradesSkipped counts trades the engine could not price, by symbol.
	TradesSkipped *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		FXLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "notional_fx_lookups_total",
			Help: "FX rate lookups by rate source",
		}, []string{"source"}),
		FXAPIRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "notional_fx_api_requests_total",
			Help: "Historical FX API requests by result",
		}, []string{"result"}),
		TradesPriced: f.NewCounter(prometheus.CounterOpts{
			Name: "notional_trades_priced_total",
			Help: "Trades priced by the calculation engine",
		}),
		TradesSkipped: f.NewCounterVec(prometheus.CounterOpts{
			Name: "notional_trades_skipped_total",
			Help: "Trades skipped because no FX rate was available",
		}, []string{"symbol"}),
	}
}

// The observe helpers accept a nil receiver so components can run without
// instrumentation.

func (m *Metrics) ObserveLookup(source string) {
	if m == nil {
		return
	}
	m.FXLookups.WithLabelValues(source).Inc()
}

func (m *Metrics) ObserveAPIRequest(ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.FXAPIRequests.WithLabelValues(result).Inc()
}

func (m *Metrics) ObservePriced() {
	if m == nil {
		return
	}
	m.TradesPriced.Inc()
}

func (m *Metrics) ObserveSkipped(symbol string) {
	if m == nil {
		return
	}
	m.TradesSkipped.WithLabelValues(symbol).Inc()
}

// WriteTextfile writes every metric to path atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
