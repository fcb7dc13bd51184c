package parsers

import (
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/rustyeddy/notional/market"
	"github.com/rustyeddy/notional/trade"
)

// cTrader exports volume either in lots or in units. When the largest volume
// in a file exceeds ctraderUnitsThreshold every volume is divided by
// ctraderUnitsPerLot. A file with genuine lot sizes above the threshold would
// be misread; the constants are kept as the platform export has always been
// interpreted.
const (
	ctraderUnitsThreshold = 100
	ctraderUnitsPerLot    = 100000
)

var ctraderIndicators = []string{
	"Position ID", "Order ID", "Opening direction", "Closing Quantity", "Entry price",
}

var ctraderColumns = map[string][]string{
	"position_id": {"Position ID", "Order ID"},
	"symbol":      {"Symbol"},
	"direction":   {"Direction", "Opening direction"},
	"open_time":   {"Opening Time", "Opening time"},
	"close_time":  {"Closing Time", "Closing time"},
	"open_price":  {"Opening Price", "Entry price"},
	"close_price": {"Closing Price", "Closing price"},
	"volume":      {"Volume", "Closing Quantity"},
	"commission":  {"Commission"},
	"swap":        {"Swap"},
	"profit":      {"Net Profit", "Net AUD", "Net USD", "Net EUR", "Gross Profit"},
}

// CTrader reads a cTrader position history export: one header row followed
// by one row per closed position.
type CTrader struct {
	log zerolog.Logger
}

func NewCTrader(log zerolog.Logger) *CTrader {
	return &CTrader{log: log.With().Str("component", "parsers").Str("platform", "ctrader").Logger()}
}

func (p *CTrader) ID() string   { return "ctrader" }
func (p *CTrader) Name() string { return "cTrader" }

func (p *CTrader) CanParse(f RawFile) bool {
	if !f.Supported() {
		return false
	}
	rows, err := readRows(f, 1)
	if err != nil || len(rows) == 0 {
		return false
	}
	header := trimmed(rows[0])
	for _, col := range ctraderIndicators {
		if slices.Contains(header, col) {
			return true
		}
	}
	return false
}

type ctraderRow struct {
	row    []string
	side   trade.Side
	volume float64
	line   int
}

func (p *CTrader) Parse(f RawFile) ([]trade.Trade, string, error) {
	rows, err := readRows(f, 0)
	if err != nil {
		return nil, "", err
	}
	if len(rows) < 2 {
		return nil, "", fmt.Errorf("%w: no data in %s", ErrNoTradesFound, f.Name)
	}
	t := newTable(rows[0], rows[1:])

	cols := make(map[string]int, len(ctraderColumns))
	for _, field := range []string{"symbol", "direction", "volume", "close_price", "close_time"} {
		i, err := t.require(field, ctraderColumns[field])
		if err != nil {
			return nil, "", err
		}
		cols[field] = i
	}
	for _, field := range []string{"open_price", "open_time", "commission", "swap", "profit"} {
		i, _ := t.lookup(ctraderColumns[field])
		cols[field] = i
	}

	var (
		candidates []ctraderRow
		maxVolume  float64
	)
	for n, row := range t.rows {
		raw := cell(row, cols["volume"])
		if raw == "" {
			continue
		}
		volume, err := parseNumber(raw)
		if err != nil {
			continue
		}
		maxVolume = max(maxVolume, volume)

		side, ok := trade.ParseSide(cell(row, cols["direction"]))
		if !ok {
			continue
		}
		candidates = append(candidates, ctraderRow{row: row, side: side, volume: volume, line: n + 2})
	}

	divisor := 1.0
	if maxVolume > ctraderUnitsThreshold {
		divisor = ctraderUnitsPerLot
		p.log.Debug().Float64("max_volume", maxVolume).Msg("volume reported in units, converting to lots")
	}

	var trades []trade.Trade
	for _, c := range candidates {
		tr, err := p.trade(c.row, cols, c.side, c.volume/divisor)
		if err == nil {
			err = tr.Validate()
		}
		if err != nil {
			p.log.Debug().Err(err).Int("row", c.line).Msg("dropping row")
			continue
		}
		trades = append(trades, tr)
	}

	if len(trades) == 0 {
		return nil, "", fmt.Errorf("%w in %s", ErrNoTradesFound, f.Name)
	}
	return trades, p.Name(), nil
}

func (p *CTrader) trade(row []string, cols map[string]int, side trade.Side, lots float64) (trade.Trade, error) {
	tr := trade.Trade{
		Symbol: market.CleanSymbol(cell(row, cols["symbol"])),
		Side:   side,
		Lots:   lots,
	}

	var err error
	if tr.CloseTime, err = parseTime(cell(row, cols["close_time"])); err != nil {
		return tr, fmt.Errorf("close time: %w", err)
	}
	tr.OpenTime = tr.CloseTime
	if open := cell(row, cols["open_time"]); open != "" {
		if tr.OpenTime, err = parseTime(open); err != nil {
			return tr, fmt.Errorf("open time: %w", err)
		}
	}
	err = fillAmounts(&tr, row, cols)
	return tr, err
}
