package parsers

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rustyeddy/notional/market"
	"github.com/rustyeddy/notional/trade"
)

const (
	mt5Title = "Trade History Report"

	// mt5FallbackHeaderRow is used when no row carries both "Type" and
	// "Symbol".
	mt5FallbackHeaderRow = 6
)

// mt5SectionMarkers end the Positions table when seen in a row's first cell.
var mt5SectionMarkers = []string{"Orders", "Deals", "Working Orders", "Summary"}

// Duplicate headers are suffixed, so the second Time and Price columns of the
// Positions table are "Time.1" and "Price.1".
var mt5Columns = map[string][]string{
	"open_time":   {"Open Time", "Time"},
	"close_time":  {"Close Time", "Time.1"},
	"symbol":      {"Symbol"},
	"type":        {"Type"},
	"lots":        {"Volume"},
	"open_price":  {"Open Price", "Price"},
	"close_price": {"Close Price", "Price.1"},
	"commission":  {"Commission"},
	"swap":        {"Swap"},
	"profit":      {"Profit"},
}

// MT5 reads the Positions section of a MetaTrader 5 "Trade History Report".
type MT5 struct {
	log zerolog.Logger
}

func NewMT5(log zerolog.Logger) *MT5 {
	return &MT5{log: log.With().Str("component", "parsers").Str("platform", "mt5").Logger()}
}

func (p *MT5) ID() string   { return "mt5" }
func (p *MT5) Name() string { return "MetaTrader 5" }

func (p *MT5) CanParse(f RawFile) bool {
	if !f.Supported() {
		return false
	}
	rows, err := readRows(f, 1)
	if err != nil || len(rows) == 0 {
		return false
	}
	return strings.Contains(cell(rows[0], 0), mt5Title)
}

func (p *MT5) Parse(f RawFile) ([]trade.Trade, string, error) {
	rows, err := readRows(f, 0)
	if err != nil {
		return nil, "", err
	}
	if len(rows) == 0 {
		return nil, "", fmt.Errorf("%w: %s is empty", ErrNoTradesFound, f.Name)
	}

	header, end := mt5Section(rows)
	if header >= len(rows) {
		return nil, "", fmt.Errorf("%w: no positions table in %s", ErrNoTradesFound, f.Name)
	}
	t := newTable(rows[header], rows[header+1:end])

	cols := make(map[string]int, len(mt5Columns))
	for _, field := range []string{"type", "lots", "open_time", "close_time", "symbol", "open_price", "close_price"} {
		i, err := t.require(field, mt5Columns[field])
		if err != nil {
			return nil, "", err
		}
		cols[field] = i
	}
	for _, field := range []string{"commission", "swap", "profit"} {
		i, _ := t.lookup(mt5Columns[field])
		cols[field] = i
	}

	var trades []trade.Trade
	for n, row := range t.rows {
		side, ok := trade.ParseSide(cell(row, cols["type"]))
		if !ok {
			continue
		}
		volume := cell(row, cols["lots"])
		if volume == "" {
			continue
		}
		lots, err := parseNumber(volume)
		if err != nil {
			// balance operations and other sections reuse the Volume column
			continue
		}

		tr, err := p.trade(row, cols, side, lots)
		if err == nil {
			err = tr.Validate()
		}
		if err != nil {
			p.log.Debug().Err(err).Int("row", header+2+n).Msg("dropping row")
			continue
		}
		trades = append(trades, tr)
	}

	if len(trades) == 0 {
		return nil, "", fmt.Errorf("%w in %s", ErrNoTradesFound, f.Name)
	}
	p.log.Debug().Int("trades", len(trades)).Int("header_row", header).Msg("parsed positions")
	return trades, p.Name(), nil
}

func (p *MT5) trade(row []string, cols map[string]int, side trade.Side, lots float64) (trade.Trade, error) {
	tr := trade.Trade{
		Symbol: market.CleanSymbol(cell(row, cols["symbol"])),
		Side:   side,
		Lots:   lots,
	}

	var err error
	if tr.OpenTime, err = parseTime(cell(row, cols["open_time"])); err != nil {
		return tr, fmt.Errorf("open time: %w", err)
	}
	if tr.CloseTime, err = parseTime(cell(row, cols["close_time"])); err != nil {
		return tr, fmt.Errorf("close time: %w", err)
	}
	err = fillAmounts(&tr, row, cols)
	return tr, err
}

// mt5Section finds the Positions header row and the exclusive end of its data
// rows. The header is the first row with both "Type" and "Symbol"; the end is
// the first later row whose first cell is a section marker.
func mt5Section(rows [][]string) (header, end int) {
	header = -1
	end = len(rows)
	for i, row := range rows {
		if header < 0 {
			values := trimmed(row)
			if slices.Contains(values, "Type") && slices.Contains(values, "Symbol") {
				header = i
			}
			continue
		}
		if slices.Contains(mt5SectionMarkers, cell(row, 0)) {
			end = i
			break
		}
	}
	if header < 0 {
		header = mt5FallbackHeaderRow
	}
	if end < header+1 {
		end = header + 1
	}
	return header, end
}
