package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var ErrRunNotFound = errors.New("run not found")

const runColumns = `run_id, platform, source_file, filter, created_at, total_notional, total_trades, total_lots, period_start, period_end, skipped`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (RunRecord, error) {
	var rec RunRecord
	err := s.Scan(
		&rec.RunID,
		&rec.Platform,
		&rec.SourceFile,
		&rec.Filter,
		&rec.Created,
		&rec.TotalNotional,
		&rec.TotalTrades,
		&rec.TotalLots,
		&rec.PeriodStart,
		&rec.PeriodEnd,
		&rec.Skipped,
	)
	return rec, err
}

// GetRun returns a single run by ID.
func (j *SQLite) GetRun(ctx context.Context, runID string) (RunRecord, error) {
	row := j.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID)

	rec, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RunRecord{}, fmt.Errorf("%w: %q", ErrRunNotFound, runID)
		}
		return RunRecord{}, err
	}
	return rec, nil
}

// ListRuns returns the most recent runs first. limit <= 0 returns all.
func (j *SQLite) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := j.db.QueryContext(ctx, `
		SELECT `+runColumns+`
		FROM runs
		ORDER BY created_at DESC, run_id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListRunTrades returns a run's priced trades in file order.
func (j *SQLite) ListRunTrades(ctx context.Context, runID string) ([]TradeRecord, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT run_id, seq, symbol, side, lots, open_time, close_time, open_price, close_price,
		       commission, swap, profit, contract_size, base_currency, fx_rate, fx_source, notional_usd
		FROM run_trades
		WHERE run_id = ?
		ORDER BY seq ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var rec TradeRecord
		if err := rows.Scan(
			&rec.RunID,
			&rec.Seq,
			&rec.Symbol,
			&rec.Side,
			&rec.Lots,
			&rec.OpenTime,
			&rec.CloseTime,
			&rec.OpenPrice,
			&rec.ClosePrice,
			&rec.Commission,
			&rec.Swap,
			&rec.Profit,
			&rec.ContractSize,
			&rec.BaseCurrency,
			&rec.FXRate,
			&rec.FXSource,
			&rec.NotionalUSD,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListRunSkipped returns the per-symbol skip counts of a run.
func (j *SQLite) ListRunSkipped(ctx context.Context, runID string) (map[string]int, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT symbol, count FROM run_skipped WHERE run_id = ?`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var (
			symbol string
			n      int
		)
		if err := rows.Scan(&symbol, &n); err != nil {
			return nil, err
		}
		out[symbol] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
