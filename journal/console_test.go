package journal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintConsole(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	PrintConsole(&buf, Console{
		File:         "/tmp/exports/ReportHistory.xlsx",
		Platform:     "MetaTrader 5",
		AutoDetected: true,
		Filter:       "last 30 days",
		Trades:       sampleResult().Trades,
	})
	out := buf.String()

	assert.Contains(t, out, "NOTIONAL VOLUME REPORT")
	assert.Contains(t, out, "File: ReportHistory.xlsx\n")
	assert.Contains(t, out, "Platform: MetaTrader 5 (auto-detected)")
	assert.Contains(t, out, "Period: 19-01-2026 to 21-01-2026")
	assert.Contains(t, out, "Filter: last 30 days")
	assert.Contains(t, out, "TRADE DETAILS:")
	assert.Contains(t, out, "$110,000.00")
	assert.Contains(t, out, "2,000.00")
	assert.Contains(t, out, "SUMMARY BY SYMBOL:")
	assert.Contains(t, out, "62.1%")
	assert.Contains(t, out, "2 trade(s) using direct USD quote (no conversion needed)")
	assert.Contains(t, out, "1 trade(s) using FALLBACK rates (API unavailable)")
	assert.Contains(t, out, "WARNING: Fallback rates are approximate")
	assert.NotContains(t, out, "historical API rates")
	assert.Contains(t, out, "GRAND TOTAL: $644,500.00 USD")
	assert.Contains(t, out, "Total Trades: 3 | Total Lots: 4.00")
}

func TestPrintConsoleSpecifiedNoFallback(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	PrintConsole(&buf, Console{
		File:     "history.csv",
		Platform: "cTrader",
		Trades:   sampleResult().Trades[:2],
	})
	out := buf.String()

	assert.Contains(t, out, "Platform: cTrader (specified)")
	assert.NotContains(t, out, "Filter:")
	assert.NotContains(t, out, "FALLBACK")
	assert.NotContains(t, out, "WARNING")
}

func TestPrintSkipped(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	PrintSkipped(&buf, map[string]int{"SING30": 1, "HK50": 3})
	out := buf.String()

	assert.Contains(t, out, "WARNING: Skipped unsupported symbols (no USD rate available):")
	assert.Contains(t, out, "  - HK50: 3 trades")
	assert.Contains(t, out, "  - SING30: 1 trades")
	assert.Less(t, strings.Index(out, "HK50"), strings.Index(out, "SING30"))
}

func TestPrintSkippedEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	PrintSkipped(&buf, nil)
	assert.Empty(t, buf.String())
}
