// Package trade holds the uniform trade record every platform parser
// produces and the calculation engine consumes.
package trade

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

// ParseSide accepts "buy" or "sell" in any case. Anything else (balance,
// deposit, credit, pending order types) is not a trade.
func ParseSide(s string) (Side, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy":
		return Buy, true
	case "sell":
		return Sell, true
	}
	return "", false
}

// Trade is a closed position normalized from a broker export.
//
// Times are calendar timestamps as printed in the export. They are stored in
// UTC but carry no timezone meaning.
type Trade struct {
	OpenTime   time.Time `json:"open_time"`
	CloseTime  time.Time `json:"close_time"`
	Symbol     string    `json:"symbol"`
	Side       Side      `json:"type"`
	Lots       float64   `json:"lots"`
	OpenPrice  float64   `json:"open_price"`
	ClosePrice float64   `json:"close_price"`
	Commission float64   `json:"commission"`
	Swap       float64   `json:"swap"`
	Profit     float64   `json:"profit"`
}

// CloseDate is the calendar day used for the FX lookup.
func (t Trade) CloseDate() string {
	return t.CloseTime.Format("2006-01-02")
}

// Validate reports the first reason a row cannot be used as a trade.
func (t Trade) Validate() error {
	if t.Symbol == "" {
		return errors.New("empty symbol")
	}
	if t.Side != Buy && t.Side != Sell {
		return fmt.Errorf("invalid side %q", t.Side)
	}
	if t.Lots < 0 {
		return fmt.Errorf("negative size %v", t.Lots)
	}
	if t.ClosePrice <= 0 {
		return fmt.Errorf("close price must be positive, got %v", t.ClosePrice)
	}
	if t.OpenTime.IsZero() || t.CloseTime.IsZero() {
		return errors.New("missing open or close time")
	}
	if t.CloseTime.Before(t.OpenTime) {
		return fmt.Errorf("close time %s before open time %s",
			t.CloseTime.Format(time.DateTime), t.OpenTime.Format(time.DateTime))
	}
	return nil
}
