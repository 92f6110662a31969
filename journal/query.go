package journal

import (
	"context"
	"database/sql"
	"fmt"
)

const tradeColumns = `trade_id, run_id, currency_pair, direction, entry_price,
	exit_price, lot_size, profit_loss, profit_pips, open_time, close_time`

// GetTrade returns a single trade record by ID.
func (j *SQLite) GetTrade(ctx context.Context, tradeID string) (TradeRecord, error) {
	row := j.db.QueryRowContext(ctx, `
		SELECT `+tradeColumns+`
		FROM trades
		WHERE trade_id = ?`, tradeID)

	rec, err := scanTrade(row)
	if err == sql.ErrNoRows {
		return TradeRecord{}, fmt.Errorf("trade %q not found", tradeID)
	}
	return rec, err
}

// ListTradesByRun returns a run's full ledger in close order.
func (j *SQLite) ListTradesByRun(ctx context.Context, runID string) ([]TradeRecord, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT `+tradeColumns+`
		FROM trades
		WHERE run_id = ?
		ORDER BY close_time ASC`, runID)
	if err != nil {
		return nil, err
	}
	return collectTrades(rows)
}

// ListTrades returns recent trades across all runs, filtered and paged.
func (j *SQLite) ListTrades(ctx context.Context, f TradeFilter) ([]TradeRecord, error) {
	q := `
		SELECT ` + tradeColumns + `
		FROM trades
		WHERE 1=1`
	var args []any

	if f.Pair != "" {
		q += " AND currency_pair = ?"
		args = append(args, f.Pair)
	}
	if f.Direction != "" {
		q += " AND direction = ?"
		args = append(args, f.Direction)
	}
	q += " ORDER BY close_time DESC LIMIT ? OFFSET ?"
	args = append(args, clampLimit(f.Limit), f.Offset)

	rows, err := j.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return collectTrades(rows)
}

// SummaryByPair aggregates the trade ledger per currency pair.
func (j *SQLite) SummaryByPair(ctx context.Context) ([]PairSummary, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT currency_pair,
		       COUNT(*),
		       SUM(CASE WHEN profit_loss > 0 THEN 1 ELSE 0 END),
		       SUM(profit_loss)
		FROM trades
		GROUP BY currency_pair
		ORDER BY SUM(profit_loss) DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []PairSummary{}
	for rows.Next() {
		var s PairSummary
		if err := rows.Scan(&s.Pair, &s.TotalTrades, &s.WinningTrades, &s.TotalProfit); err != nil {
			return nil, err
		}
		if s.TotalTrades > 0 {
			s.WinRate = float64(s.WinningTrades) / float64(s.TotalTrades)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Metrics reduces the whole journal to headline numbers.
func (j *SQLite) Metrics(ctx context.Context) (Metrics, error) {
	var m Metrics
	var wins int

	err := j.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(total_trades), 0),
		       COALESCE(SUM(winning_trades), 0),
		       COALESCE(SUM(total_profit_loss), 0)
		FROM backtest_runs`).Scan(&m.TotalBacktests, &m.TotalTrades, &wins, &m.TotalProfit)
	if err != nil {
		return Metrics{}, err
	}
	if m.TotalTrades > 0 {
		m.OverallWinRate = float64(wins) / float64(m.TotalTrades)
	}

	if err := j.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM predictions`).Scan(&m.TotalPredictions); err != nil {
		return Metrics{}, err
	}

	// Best pair and model by summed run P&L. No rows when the journal is empty.
	var best string
	err = j.db.QueryRowContext(ctx, `
		SELECT currency_pair FROM backtest_runs
		GROUP BY currency_pair
		ORDER BY SUM(total_profit_loss) DESC
		LIMIT 1`).Scan(&best)
	if err != nil && err != sql.ErrNoRows {
		return Metrics{}, err
	}
	m.BestPair = best

	best = ""
	err = j.db.QueryRowContext(ctx, `
		SELECT model_type FROM backtest_runs
		GROUP BY model_type
		ORDER BY SUM(total_profit_loss) DESC
		LIMIT 1`).Scan(&best)
	if err != nil && err != sql.ErrNoRows {
		return Metrics{}, err
	}
	m.BestModel = best

	return m, nil
}

func scanTrade(s scanner) (TradeRecord, error) {
	var rec TradeRecord
	err := s.Scan(
		&rec.TradeID, &rec.RunID, &rec.Pair, &rec.Direction, &rec.EntryPrice,
		&rec.ExitPrice, &rec.LotSize, &rec.ProfitLoss, &rec.ProfitPips,
		&rec.OpenTime, &rec.CloseTime,
	)
	return rec, err
}

func collectTrades(rows *sql.Rows) ([]TradeRecord, error) {
	defer rows.Close()

	out := []TradeRecord{}
	for rows.Next() {
		rec, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
