package journal

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type SQLite struct {
	db *sql.DB
}

var _ Journal = (*SQLite)(nil)

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open journal %s: %w", path, err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply journal schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// RecordBacktest stores a run and its trade ledger in one transaction.
func (j *SQLite) RecordBacktest(ctx context.Context, run BacktestRecord, trades []TradeRecord) error {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO backtest_runs
		(run_id, currency_pair, timeframe, model_type, start_date, end_date,
		 initial_balance, final_balance, total_profit_loss, total_trades,
		 winning_trades, losing_trades, win_rate, max_drawdown, sharpe_ratio, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.Pair, run.Timeframe, run.ModelType, run.StartDate, run.EndDate,
		run.InitialBalance, run.FinalBalance, run.TotalProfit, run.TotalTrades,
		run.WinningTrades, run.LosingTrades, run.WinRate, run.MaxDrawdown,
		run.SharpeRatio, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", run.RunID, err)
	}

	for _, t := range trades {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO trades
			(trade_id, run_id, currency_pair, direction, entry_price, exit_price,
			 lot_size, profit_loss, profit_pips, open_time, close_time)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.TradeID, t.RunID, t.Pair, t.Direction, t.EntryPrice, t.ExitPrice,
			t.LotSize, t.ProfitLoss, t.ProfitPips, t.OpenTime, t.CloseTime,
		)
		if err != nil {
			return fmt.Errorf("insert trade %s: %w", t.TradeID, err)
		}
	}

	return tx.Commit()
}

func (j *SQLite) GetBacktest(ctx context.Context, runID string) (BacktestRecord, error) {
	row := j.db.QueryRowContext(ctx, `
		SELECT run_id, currency_pair, timeframe, model_type, start_date, end_date,
		       initial_balance, final_balance, total_profit_loss, total_trades,
		       winning_trades, losing_trades, win_rate, max_drawdown, sharpe_ratio, created_at
		FROM backtest_runs
		WHERE run_id = ?`, runID)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return BacktestRecord{}, fmt.Errorf("backtest %q not found", runID)
	}
	return run, err
}

func (j *SQLite) ListBacktests(ctx context.Context, f BacktestFilter) ([]BacktestRecord, error) {
	q := `
		SELECT run_id, currency_pair, timeframe, model_type, start_date, end_date,
		       initial_balance, final_balance, total_profit_loss, total_trades,
		       winning_trades, losing_trades, win_rate, max_drawdown, sharpe_ratio, created_at
		FROM backtest_runs
		WHERE 1=1`
	var args []any

	if f.Pair != "" {
		q += " AND currency_pair = ?"
		args = append(args, f.Pair)
	}
	if f.ModelType != "" {
		q += " AND model_type = ?"
		args = append(args, f.ModelType)
	}
	q += " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, clampLimit(f.Limit), f.Offset)

	rows, err := j.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []BacktestRecord{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

func (j *SQLite) RecordPrediction(ctx context.Context, p PredictionRecord) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO predictions
		(prediction_id, currency_pair, timeframe, model_type, predicted_price,
		 price_change, confidence, model_version, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.PredictionID, p.Pair, p.Timeframe, p.ModelType, p.PredictedPrice,
		p.PriceChange, p.Confidence, p.ModelVersion, p.CreatedAt,
	)
	return err
}

func (j *SQLite) ListPredictions(ctx context.Context, f PredictionFilter) ([]PredictionRecord, error) {
	q := `
		SELECT prediction_id, currency_pair, timeframe, model_type, predicted_price,
		       price_change, confidence, model_version, created_at
		FROM predictions
		WHERE 1=1`
	var args []any

	if f.Pair != "" {
		q += " AND currency_pair = ?"
		args = append(args, f.Pair)
	}
	if f.ModelType != "" {
		q += " AND model_type = ?"
		args = append(args, f.ModelType)
	}
	q += " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, clampLimit(f.Limit), f.Offset)

	rows, err := j.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []PredictionRecord{}
	for rows.Next() {
		var p PredictionRecord
		if err := rows.Scan(
			&p.PredictionID, &p.Pair, &p.Timeframe, &p.ModelType, &p.PredictedPrice,
			&p.PriceChange, &p.Confidence, &p.ModelVersion, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (BacktestRecord, error) {
	var run BacktestRecord
	err := s.Scan(
		&run.RunID, &run.Pair, &run.Timeframe, &run.ModelType, &run.StartDate,
		&run.EndDate, &run.InitialBalance, &run.FinalBalance, &run.TotalProfit,
		&run.TotalTrades, &run.WinningTrades, &run.LosingTrades, &run.WinRate,
		&run.MaxDrawdown, &run.SharpeRatio, &run.CreatedAt,
	)
	return run, err
}

func clampLimit(n int) int {
	if n <= 0 {
		return defaultLimit
	}
	if n > maxLimit {
		return maxLimit
	}
	return n
}
