package calc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/notional/fxrates"
	"github.com/rustyeddy/notional/trade"
)

func enriched(symbol string, lots, notional float64, src fxrates.Source, day int) Enriched {
	return Enriched{
		Trade: trade.Trade{
			Symbol:    symbol,
			Lots:      lots,
			CloseTime: time.Date(2026, time.January, day, 12, 0, 0, 0, time.UTC),
		},
		FXSource:    src,
		NotionalUSD: notional,
	}
}

func TestSummarizeBySymbol(t *testing.T) {
	t.Parallel()

	trades := []Enriched{
		enriched("EURUSD", 1, 110000, fxrates.Direct, 19),
		enriched("XAUUSD", 2, 400000, fxrates.Direct, 20),
		enriched("EURUSD", 0.5, 55000, fxrates.Direct, 21),
		enriched("GBPJPY", 1, 135000, fxrates.Fallback, 22),
	}
	rows := SummarizeBySymbol(trades)
	require.Len(t, rows, 3)

	assert.Equal(t, "XAUUSD", rows[0].Symbol)
	assert.Equal(t, "EURUSD", rows[1].Symbol)
	assert.Equal(t, 1.5, rows[1].TotalLots)
	assert.InDelta(t, 165000, rows[1].NotionalUSD, 1e-9)
	assert.Equal(t, "GBPJPY", rows[2].Symbol)

	var sum float64
	for _, r := range rows {
		sum += r.Percentage
	}
	assert.InDelta(t, 100.0, sum, 1e-9)
	assert.InDelta(t, 400000.0/700000*100, rows[0].Percentage, 1e-9)
}

func TestSummarizeBySymbol_TiesInSymbolOrder(t *testing.T) {
	t.Parallel()

	rows := SummarizeBySymbol([]Enriched{
		enriched("B", 1, 100, fxrates.Direct, 1),
		enriched("A", 1, 100, fxrates.Direct, 1),
		enriched("C", 1, 300, fxrates.Direct, 1),
	})
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"C", "A", "B"}, []string{rows[0].Symbol, rows[1].Symbol, rows[2].Symbol})

	rows = SummarizeBySymbol([]Enriched{
		enriched("XAUUSD", 1, 100, fxrates.Direct, 1),
		enriched("EURUSD", 1, 100, fxrates.Direct, 1),
	})
	require.Len(t, rows, 2)
	assert.Equal(t, "EURUSD", rows[0].Symbol)
	assert.Equal(t, "XAUUSD", rows[1].Symbol)
}

func TestSummarizeBySymbol_ZeroTotal(t *testing.T) {
	t.Parallel()

	rows := SummarizeBySymbol([]Enriched{
		enriched("EURUSD", 0, 0, fxrates.Direct, 1),
		enriched("GBPUSD", 0, 0, fxrates.Direct, 1),
	})
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Zero(t, r.Percentage)
	}

	assert.Empty(t, SummarizeBySymbol(nil))
}

func TestFXSourceSummary(t *testing.T) {
	t.Parallel()

	counts := FXSourceSummary([]Enriched{
		enriched("EURUSD", 1, 1, fxrates.Direct, 1),
		enriched("GBPJPY", 1, 1, fxrates.Fallback, 1),
		enriched("GBPJPY", 1, 1, fxrates.Fallback, 2),
	})
	assert.Equal(t, map[fxrates.Source]int{
		fxrates.Direct:    1,
		fxrates.API:       0,
		fxrates.APICached: 0,
		fxrates.Fallback:  2,
	}, counts)

	assert.Len(t, FXSourceSummary(nil), 4)
}

func TestTotal(t *testing.T) {
	t.Parallel()

	got := Total([]Enriched{
		enriched("EURUSD", 1, 110000, fxrates.Direct, 20),
		enriched("XAUUSD", 2, 400000, fxrates.Direct, 5),
		enriched("EURUSD", 0.5, 55000, fxrates.Direct, 28),
	})
	assert.Equal(t, 3, got.Trades)
	assert.InDelta(t, 565000, got.Notional, 1e-9)
	assert.InDelta(t, 3.5, got.Lots, 1e-12)
	assert.Equal(t, 5, got.PeriodStart.Day())
	assert.Equal(t, 28, got.PeriodEnd.Day())

	assert.Equal(t, Totals{}, Total(nil))
}
