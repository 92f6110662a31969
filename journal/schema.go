package journal

const Schema = `
CREATE TABLE IF NOT EXISTS backtest_runs (
	run_id TEXT PRIMARY KEY,
	currency_pair TEXT NOT NULL,
	timeframe TEXT NOT NULL,
	model_type TEXT NOT NULL,
	start_date DATETIME NOT NULL,
	end_date DATETIME NOT NULL,
	initial_balance REAL NOT NULL,
	final_balance REAL NOT NULL,
	total_profit_loss REAL NOT NULL,
	total_trades INTEGER NOT NULL,
	winning_trades INTEGER NOT NULL,
	losing_trades INTEGER NOT NULL,
	win_rate REAL NOT NULL,
	max_drawdown REAL NOT NULL,
	sharpe_ratio REAL NOT NULL,
	created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	run_id TEXT NOT NULL REFERENCES backtest_runs(run_id),
	currency_pair TEXT NOT NULL,
	direction TEXT NOT NULL,
	entry_price REAL NOT NULL,
	exit_price REAL NOT NULL,
	lot_size REAL NOT NULL,
	profit_loss REAL NOT NULL,
	profit_pips REAL NOT NULL,
	open_time DATETIME NOT NULL,
	close_time DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS predictions (
	prediction_id TEXT PRIMARY KEY,
	currency_pair TEXT NOT NULL,
	timeframe TEXT NOT NULL,
	model_type TEXT NOT NULL,
	predicted_price REAL NOT NULL,
	price_change REAL NOT NULL,
	confidence REAL NOT NULL,
	model_version TEXT NOT NULL,
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON backtest_runs(created_at);
CREATE INDEX IF NOT EXISTS idx_trades_run ON trades(run_id);
CREATE INDEX IF NOT EXISTS idx_trades_close ON trades(close_time);
CREATE INDEX IF NOT EXISTS idx_predictions_created ON predictions(created_at);
`
