// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	platform TEXT NOT NULL,
	source_file TEXT NOT NULL,
	filter TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	total_notional REAL NOT NULL,
	total_trades INTEGER NOT NULL,
	total_lots REAL NOT NULL,
	period_start DATETIME NOT NULL,
	period_end DATETIME NOT NULL,
	skipped INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS run_trades (
	run_id TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
	seq INTEGER NOT NULL,
	symbol TEXT NOT NULL,
	side TEXT NOT NULL,
	lots REAL NOT NULL,
	open_time DATETIME NOT NULL,
	close_time DATETIME NOT NULL,
	open_price REAL NOT NULL,
	close_price REAL NOT NULL,
	commission REAL NOT NULL,
	swap REAL NOT NULL,
	profit REAL NOT NULL,
	contract_size REAL NOT NULL,
	base_currency TEXT NOT NULL,
	fx_rate REAL NOT NULL,
	fx_source TEXT NOT NULL,
	notional_usd REAL NOT NULL,
	PRIMARY KEY (run_id, seq)
);

CREATE TABLE IF NOT EXISTS run_skipped (
	run_id TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
	symbol TEXT NOT NULL,
	count INTEGER NOT NULL,
	PRIMARY KEY (run_id, symbol)
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
`
