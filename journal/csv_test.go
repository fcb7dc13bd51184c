package journal

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/notional/fxrates"
	"github.com/rustyeddy/notional/trade"
)

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleResult().Trades))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, ExportColumns, records[0])
	assert.Equal(t, []string{
		"2026-01-19 15:30:00", "EURUSD", "buy", "1", "1.1", "1.1",
		"-3.5", "-0.25", "42", "1", "direct", "110000",
	}, records[1])
	assert.Equal(t, "sell", records[2][2])
	assert.Equal(t, "fallback", records[3][10])
	assert.Equal(t, "1.345", records[3][9])
}

func TestWriteCSVEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, ExportColumns, records[0])
}

func TestExportCSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.csv")
	trades := sampleResult().Trades[:1]
	trades[0].FXSource = fxrates.APICached
	trades[0].Side = trade.Sell

	require.NoError(t, ExportCSV(path, trades))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "sell", records[1][2])
	assert.Equal(t, "api_cached", records[1][10])
}

func TestExportCSVBadPath(t *testing.T) {
	t.Parallel()

	err := ExportCSV(filepath.Join(t.TempDir(), "missing", "out.csv"), nil)
	assert.Error(t, err)
}
