package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	t.Parallel()

	m := New()
	m.ObserveLookup("direct")
	m.ObserveLookup("direct")
	m.ObserveLookup("fallback")
	m.ObserveAPIRequest(true)
	m.ObserveAPIRequest(false)
	m.ObserveAPIRequest(false)
	m.ObservePriced()
	m.ObserveSkipped("HK50")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.FXLookups.WithLabelValues("direct")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FXLookups.WithLabelValues("fallback")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FXAPIRequests.WithLabelValues("ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.FXAPIRequests.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TradesPriced))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TradesSkipped.WithLabelValues("HK50")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	t.Parallel()

	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveLookup("api")
		m.ObserveAPIRequest(true)
		m.ObservePriced()
		m.ObserveSkipped("X")
	})
}

func TestWriteTextfile(t *testing.T) {
	t.Parallel()

	m := New()
	m.ObserveLookup("api")

	path := filepath.Join(t.TempDir(), "notional.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `notional_fx_lookups_total{source="api"} 1`)
}
