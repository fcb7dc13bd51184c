package journal

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/notional/calc"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

// RecordRun stores a run, its priced trades and its skip counts in one
// transaction.
func (j *SQLite) RecordRun(ctx context.Context, run RunRecord, trades []calc.Enriched, skipped map[string]int) (err error) {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs
		(run_id, platform, source_file, filter, created_at, total_notional, total_trades, total_lots, period_start, period_end, skipped)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.Platform, run.SourceFile, run.Filter, run.Created,
		run.TotalNotional, run.TotalTrades, run.TotalLots,
		run.PeriodStart, run.PeriodEnd, run.Skipped,
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", run.RunID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO run_trades
		(run_id, seq, symbol, side, lots, open_time, close_time, open_price, close_price,
		 commission, swap, profit, contract_size, base_currency, fx_rate, fx_source, notional_usd)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, t := range trades {
		_, err = stmt.ExecContext(ctx,
			run.RunID, i, t.Symbol, string(t.Side), t.Lots, t.OpenTime, t.CloseTime,
			t.OpenPrice, t.ClosePrice, t.Commission, t.Swap, t.Profit,
			t.ContractSize, t.BaseCurrency, t.FXRate, string(t.FXSource), t.NotionalUSD,
		)
		if err != nil {
			return fmt.Errorf("insert trade %d of run %s: %w", i, run.RunID, err)
		}
	}

	for symbol, n := range skipped {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO run_skipped (run_id, symbol, count) VALUES (?, ?, ?)`,
			run.RunID, symbol, n)
		if err != nil {
			return fmt.Errorf("insert skipped %s of run %s: %w", symbol, run.RunID, err)
		}
	}

	return tx.Commit()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
