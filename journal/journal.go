// journal/journal.go
package journal

import (
	"context"
	"time"

	"github.com/rustyeddy/notional/calc"
	"github.com/rustyeddy/notional/pkg/id"
)

// RunRecord mirrors the runs table: one calculated trade-history file.
type RunRecord struct {
	RunID      string
	Platform   string
	SourceFile string
	Filter     string
	Created    time.Time

	TotalNotional float64
	TotalTrades   int
	TotalLots     float64
	PeriodStart   time.Time
	PeriodEnd     time.Time

	// Skipped is the number of trades that could not be priced.
	Skipped int
}

// TradeRecord is one priced trade of a run, in file order.
type TradeRecord struct {
	RunID string
	Seq   int
	calc.Enriched
}

type Journal interface {
	RecordRun(ctx context.Context, run RunRecord, trades []calc.Enriched, skipped map[string]int) error
	Close() error
}

// NewRunRecord summarizes a calculation result under a fresh run ID.
func NewRunRecord(platform, sourceFile, filter string, res *calc.Result, created time.Time) RunRecord {
	totals := calc.Total(res.Trades)
	return RunRecord{
		RunID:         id.New(created),
		Platform:      platform,
		SourceFile:    sourceFile,
		Filter:        filter,
		Created:       created.UTC(),
		TotalNotional: totals.Notional,
		TotalTrades:   totals.Trades,
		TotalLots:     totals.Lots,
		PeriodStart:   totals.PeriodStart,
		PeriodEnd:     totals.PeriodEnd,
		Skipped:       res.SkippedCount(),
	}
}
