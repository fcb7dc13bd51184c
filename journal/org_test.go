package journal

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordsFor(runID string) []TradeRecord {
	var out []TradeRecord
	for i, e := range sampleResult().Trades {
		out = append(out, TradeRecord{RunID: runID, Seq: i, Enriched: e})
	}
	return out
}

func TestFormatRunOrg(t *testing.T) {
	t.Parallel()

	res := sampleResult()
	created := time.Date(2026, 2, 1, 8, 5, 0, 0, time.UTC)
	run := NewRunRecord("MetaTrader 5", "ReportHistory.xlsx", "last 30 days", res, created)

	out, err := FormatRunOrg(run, recordsFor(run.RunID), res.Skipped)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "* NOTIONAL: MetaTrader 5 ReportHistory.xlsx\n"))
	assert.Contains(t, out, ":PROPERTIES:")
	assert.Contains(t, out, ":RUN_ID:      "+run.RunID)
	assert.Contains(t, out, ":FILTER:      last 30 days")
	assert.Contains(t, out, ":START_DATE:  2026-01-19")
	assert.Contains(t, out, ":END_DATE:    2026-01-21")
	assert.Contains(t, out, ":TRADES:      3")
	assert.Contains(t, out, ":LOTS:        4.00")
	assert.Contains(t, out, ":NOTIONAL:    644500.00")
	assert.Contains(t, out, ":SKIPPED:     2")
	assert.Contains(t, out, ":CREATED:     [2026-02-01 Sun 08:05]")
	assert.Contains(t, out, ":END:")

	assert.Contains(t, out, "** Summary by Symbol")
	assert.Contains(t, out, "| XAUUSD | 2.00 | $400,000.00 | 62.1 |")
	assert.Contains(t, out, "| GBPJPY | 1.00 | $134,500.00 | 20.9 |")
	assert.Contains(t, out, "| EURUSD | 1.00 | $110,000.00 | 17.1 |")
	assert.Less(t, strings.Index(out, "| XAUUSD"), strings.Index(out, "| EURUSD"))

	assert.Contains(t, out, "** FX Rate Sources")
	assert.Contains(t, out, "| direct | 2 |")
	assert.Contains(t, out, "| api | 0 |")
	assert.Contains(t, out, "| api_cached | 0 |")
	assert.Contains(t, out, "| fallback | 1 |")

	assert.Contains(t, out, "** Skipped Symbols\n- HK50: 2")
}

func TestFormatRunOrgNoFilterNoSkips(t *testing.T) {
	t.Parallel()

	res := sampleResult()
	res.Skipped = nil
	run := NewRunRecord("cTrader", "history.csv", "", res, time.Now())

	out, err := FormatRunOrg(run, recordsFor(run.RunID), nil)
	require.NoError(t, err)

	assert.NotContains(t, out, ":FILTER:")
	assert.NotContains(t, out, "Skipped Symbols")
	assert.Contains(t, out, ":SKIPPED:     0")
}
