package journal

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/notional/calc"
	"github.com/rustyeddy/notional/fxrates"
	"github.com/rustyeddy/notional/trade"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	j, err := NewSQLite(path)
	require.NoError(t, err)

	return j, path
}

func enrichedTrade(symbol string, side trade.Side, lots, closePrice, rate float64, src fxrates.Source, notional float64, day int) calc.Enriched {
	closeT := time.Date(2026, 1, day, 15, 30, 0, 0, time.UTC)
	return calc.Enriched{
		Trade: trade.Trade{
			OpenTime:   closeT.Add(-2 * time.Hour),
			CloseTime:  closeT,
			Symbol:     symbol,
			Side:       side,
			Lots:       lots,
			OpenPrice:  closePrice,
			ClosePrice: closePrice,
			Commission: -3.5,
			Swap:       -0.25,
			Profit:     42,
		},
		ContractSize: 100000,
		BaseCurrency: "USD",
		FXRate:       rate,
		FXSource:     src,
		NotionalUSD:  notional,
	}
}

func sampleResult() *calc.Result {
	return &calc.Result{
		Trades: []calc.Enriched{
			enrichedTrade("EURUSD", trade.Buy, 1, 1.10, 1, fxrates.Direct, 110000, 19),
			enrichedTrade("XAUUSD", trade.Sell, 2, 2000, 1, fxrates.Direct, 400000, 20),
			enrichedTrade("GBPJPY", trade.Buy, 1, 199, 1.345, fxrates.Fallback, 134500, 21),
		},
		Skipped: map[string]int{"HK50": 2},
	}
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('runs','run_trades','run_skipped')`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		assert.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	assert.NoError(t, rows.Err())

	assert.True(t, found["runs"])
	assert.True(t, found["run_trades"])
	assert.True(t, found["run_skipped"])
}

func TestSQLiteReopenKeepsData(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	res := sampleResult()
	run := NewRunRecord("MetaTrader 5", "ReportHistory.xlsx", "", res, time.Now())
	require.NoError(t, j.RecordRun(context.Background(), run, res.Trades, res.Skipped))
	require.NoError(t, j.Close())

	j2, err := NewSQLite(path)
	require.NoError(t, err)
	defer j2.Close()

	got, err := j2.GetRun(context.Background(), run.RunID)
	require.NoError(t, err)
	assert.Equal(t, run.RunID, got.RunID)
}

func TestSQLiteRecordRun(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)

	res := sampleResult()
	created := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	run := NewRunRecord("cTrader", "history.csv", "last 30 days", res, created)

	require.NoError(t, j.RecordRun(context.Background(), run, res.Trades, res.Skipped))
	require.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var (
		runID    string
		platform string
		notional float64
		trades   int
		lots     float64
		skipped  int
	)
	err = db.QueryRow(`
        SELECT run_id, platform, total_notional, total_trades, total_lots, skipped
        FROM runs LIMIT 1`).Scan(&runID, &platform, &notional, &trades, &lots, &skipped)
	require.NoError(t, err)

	assert.Equal(t, run.RunID, runID)
	assert.Equal(t, "cTrader", platform)
	assert.InDelta(t, 644500, notional, 1e-6)
	assert.Equal(t, 3, trades)
	assert.InDelta(t, 4.0, lots, 1e-9)
	assert.Equal(t, 2, skipped)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM run_trades WHERE run_id = ?`, run.RunID).Scan(&n))
	assert.Equal(t, 3, n)
	require.NoError(t, db.QueryRow(`SELECT count FROM run_skipped WHERE run_id = ? AND symbol = 'HK50'`, run.RunID).Scan(&n))
	assert.Equal(t, 2, n)
}

func TestSQLiteRecordRunDuplicateRollsBack(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	ctx := context.Background()
	res := sampleResult()
	run := NewRunRecord("cTrader", "history.csv", "", res, time.Now())
	require.NoError(t, j.RecordRun(ctx, run, res.Trades, res.Skipped))

	err := j.RecordRun(ctx, run, res.Trades, res.Skipped)
	require.Error(t, err)

	trades, err := j.ListRunTrades(ctx, run.RunID)
	require.NoError(t, err)
	assert.Len(t, trades, 3)
}

func TestNewRunRecord(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, 2, 1, 8, 0, 0, 0, time.FixedZone("AEST", 10*3600))
	run := NewRunRecord("MetaTrader 5", "r.xlsx", "this month", sampleResult(), created)

	assert.Len(t, run.RunID, 26)
	assert.Equal(t, time.UTC, run.Created.Location())
	assert.True(t, created.Equal(run.Created))
	assert.Equal(t, 3, run.TotalTrades)
	assert.Equal(t, 2, run.Skipped)
	assert.Equal(t, 19, run.PeriodStart.Day())
	assert.Equal(t, 21, run.PeriodEnd.Day())
	assert.Equal(t, "this month", run.Filter)
}
