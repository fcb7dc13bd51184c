package parsers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want float64
	}{
		{"1.5", 1.5},
		{" 150000 ", 150000},
		{"1 234.50", 1234.5},
		{"1 234 567", 1234567},
		{"-7", -7},
		{"", 0},
	}
	for _, tt := range tests {
		got, err := parseNumber(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"n/a", "0.1 / 0.1", "1,5"} {
		_, err := parseNumber(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseTime(t *testing.T) {
	t.Parallel()

	want := time.Date(2026, time.January, 19, 10, 30, 45, 0, time.UTC)
	for _, in := range []string{
		"2026.01.19 10:30:45",
		"2026-01-19 10:30:45",
		"2026-01-19T10:30:45",
		"2026/01/19 10:30:45",
		"19/01/2026 10:30:45",
		"19.01.2026 10:30:45",
		"19-01-2026 10:30:45",
	} {
		got, err := parseTime(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	// day first when ambiguous
	got, err := parseTime("02/03/2026")
	require.NoError(t, err)
	assert.Equal(t, time.March, got.Month())
	assert.Equal(t, 2, got.Day())

	got, err = parseTime("46041.5")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.January, 19, 12, 0, 0, 0, time.UTC), got)

	_, err = parseTime("")
	assert.Error(t, err)
	_, err = parseTime("yesterday")
	assert.Error(t, err)
}

func TestDedupeHeader(t *testing.T) {
	t.Parallel()

	got := dedupeHeader([]string{"Time", "Position", " Symbol ", "Price", "", "Time", "Price", "Time"})
	assert.Equal(t, []string{"Time", "Position", "Symbol", "Price", "Unnamed: 4", "Time.1", "Price.1", "Time.2"}, got)
}

func TestCell(t *testing.T) {
	t.Parallel()

	row := []string{" a ", "b"}
	assert.Equal(t, "a", cell(row, 0))
	assert.Equal(t, "", cell(row, 5))
	assert.Equal(t, "", cell(row, -1))
}
