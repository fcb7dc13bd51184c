package calc

import (
	"sort"
	"time"

	"github.com/rustyeddy/notional/fxrates"
)

// SymbolSummary is one row of the per-instrument breakdown.
type SymbolSummary struct {
	Symbol      string  `json:"symbol"`
	TotalLots   float64 `json:"total_lots"`
	NotionalUSD float64 `json:"notional_usd"`
	Percentage  float64 `json:"percentage"`
}

// SummarizeBySymbol groups trades by symbol, largest notional first. Ties are
// broken by symbol name. Percentages are shares of the
// grand total and are all zero when the total is zero.
func SummarizeBySymbol(trades []Enriched) []SymbolSummary {
	var rows []SymbolSummary
	pos := make(map[string]int)
	var total float64

	for _, t := range trades {
		i, ok := pos[t.Symbol]
		if !ok {
			i = len(rows)
			pos[t.Symbol] = i
			rows = append(rows, SymbolSummary{Symbol: t.Symbol})
		}
		rows[i].TotalLots += t.Lots
		rows[i].NotionalUSD += t.NotionalUSD
		total += t.NotionalUSD
	}

	if total > 0 {
		for i := range rows {
			rows[i].Percentage = rows[i].NotionalUSD / total * 100
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Symbol < rows[j].Symbol
	})
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].NotionalUSD > rows[j].NotionalUSD
	})
	return rows
}

// FXSourceSummary counts trades per rate source. Every source is present.
func FXSourceSummary(trades []Enriched) map[fxrates.Source]int {
	counts := make(map[fxrates.Source]int, len(fxrates.Sources))
	for _, s := range fxrates.Sources {
		counts[s] = 0
	}
	for _, t := range trades {
		counts[t.FXSource]++
	}
	return counts
}

// Totals are the grand totals over a priced set.
type Totals struct {
	Notional    float64   `json:"total_notional_usd"`
	Trades      int       `json:"total_trades"`
	Lots        float64   `json:"total_lots"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
}

// Total sums notional and lots and finds the close-time range.
func Total(trades []Enriched) Totals {
	t := Totals{Trades: len(trades)}
	for i, tr := range trades {
		t.Notional += tr.NotionalUSD
		t.Lots += tr.Lots
		if i == 0 || tr.CloseTime.Before(t.PeriodStart) {
			t.PeriodStart = tr.CloseTime
		}
		if i == 0 || tr.CloseTime.After(t.PeriodEnd) {
			t.PeriodEnd = tr.CloseTime
		}
	}
	return t
}
