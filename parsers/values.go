package parsers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/rustyeddy/notional/trade"
)

var thousands = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "")

// parseNumber converts a cell to float64 after removing space and no-break
// space thousands separators. An empty cell is zero.
func parseNumber(s string) (float64, error) {
	s = thousands.Replace(strings.TrimSpace(s))
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// Layouts are tried in order. Ambiguous numeric dates are read day first
// (19/01/2026, 02.01.2026) since both supported platforms export that way
// outside the US.
var timeLayouts = []string{
	"2006.01.02 15:04:05",
	"2006.01.02 15:04",
	"2006.01.02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006/01/02",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2/1/2006",
	"2.1.2006 15:04:05",
	"2.1.2006 15:04",
	"2.1.2006",
	"2-1-2006 15:04:05",
	"2-1-2006 15:04",
	"2-1-2006",
	time.RFC3339,
}

var errEmptyTime = errors.New("empty timestamp")

// parseTime reads a timezone-naive timestamp. Spreadsheet serial dates
// (e.g. 46041.4375) are accepted as well.
func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errEmptyTime
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err == nil {
			return t.Round(time.Second), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

// fillAmounts parses the price and cash columns of row into tr. A column
// index of -1 (optional column not present) leaves the field zero.
func fillAmounts(tr *trade.Trade, row []string, cols map[string]int) error {
	fields := []struct {
		name string
		dst  *float64
	}{
		{"open_price", &tr.OpenPrice},
		{"close_price", &tr.ClosePrice},
		{"commission", &tr.Commission},
		{"swap", &tr.Swap},
		{"profit", &tr.Profit},
	}
	for _, f := range fields {
		v, err := parseNumber(cell(row, cols[f.name]))
		if err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = v
	}
	return nil
}
