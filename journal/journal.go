// Package journal persists backtest runs, their trade ledgers and
// one-shot predictions in SQLite.
package journal

import (
	"context"
	"time"
)

// BacktestRecord mirrors the backtest_runs table.
type BacktestRecord struct {
	RunID          string    `json:"run_id"`
	Pair           string    `json:"currency_pair"`
	Timeframe      string    `json:"timeframe"`
	ModelType      string    `json:"model_type"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	InitialBalance float64   `json:"initial_balance"`
	FinalBalance   float64   `json:"final_balance"`
	TotalProfit    float64   `json:"total_profit_loss"`
	TotalTrades    int       `json:"total_trades"`
	WinningTrades  int       `json:"winning_trades"`
	LosingTrades   int       `json:"losing_trades"`
	WinRate        float64   `json:"win_rate"`
	MaxDrawdown    float64   `json:"max_drawdown"`
	SharpeRatio    float64   `json:"sharpe_ratio"`
	CreatedAt      time.Time `json:"created_at"`
}

// TradeRecord mirrors the trades table.
type TradeRecord struct {
	TradeID    string    `json:"trade_id"`
	RunID      string    `json:"run_id"`
	Pair       string    `json:"currency_pair"`
	Direction  string    `json:"direction"`
	EntryPrice float64   `json:"entry_price"`
	ExitPrice  float64   `json:"exit_price"`
	LotSize    float64   `json:"lot_size"`
	ProfitLoss float64   `json:"profit_loss"`
	ProfitPips float64   `json:"profit_pips"`
	OpenTime   time.Time `json:"open_time"`
	CloseTime  time.Time `json:"close_time"`
}

// PredictionRecord mirrors the predictions table.
type PredictionRecord struct {
	PredictionID   string    `json:"prediction_id"`
	Pair           string    `json:"currency_pair"`
	Timeframe      string    `json:"timeframe"`
	ModelType      string    `json:"model_type"`
	PredictedPrice float64   `json:"predicted_price"`
	PriceChange    float64   `json:"price_change"`
	Confidence     float64   `json:"confidence"`
	ModelVersion   string    `json:"model_version"`
	CreatedAt      time.Time `json:"created_at"`
}

// BacktestFilter narrows ListBacktests. Zero fields match everything.
type BacktestFilter struct {
	Pair      string
	ModelType string
	Limit     int
	Offset    int
}

// TradeFilter narrows ListTrades. Zero fields match everything.
type TradeFilter struct {
	Pair      string
	Direction string
	Limit     int
	Offset    int
}

// PredictionFilter narrows ListPredictions.
type PredictionFilter struct {
	Pair      string
	ModelType string
	Limit     int
	Offset    int
}

// PairSummary aggregates closed trades per currency pair.
type PairSummary struct {
	Pair          string  `json:"currency_pair"`
	TotalTrades   int     `json:"total_trades"`
	WinningTrades int     `json:"winning_trades"`
	TotalProfit   float64 `json:"total_profit_loss"`
	WinRate       float64 `json:"win_rate"`
}

// Metrics summarizes everything the journal holds.
type Metrics struct {
	TotalBacktests   int     `json:"total_backtests"`
	TotalTrades      int     `json:"total_trades"`
	TotalPredictions int     `json:"total_predictions"`
	TotalProfit      float64 `json:"total_profit_loss"`
	OverallWinRate   float64 `json:"overall_win_rate"`
	BestPair         string  `json:"best_pair"`
	BestModel        string  `json:"best_model"`
}

type Journal interface {
	RecordBacktest(ctx context.Context, run BacktestRecord, trades []TradeRecord) error
	GetBacktest(ctx context.Context, runID string) (BacktestRecord, error)
	ListBacktests(ctx context.Context, f BacktestFilter) ([]BacktestRecord, error)
	ListTradesByRun(ctx context.Context, runID string) ([]TradeRecord, error)
	ListTrades(ctx context.Context, f TradeFilter) ([]TradeRecord, error)
	GetTrade(ctx context.Context, tradeID string) (TradeRecord, error)
	RecordPrediction(ctx context.Context, p PredictionRecord) error
	ListPredictions(ctx context.Context, f PredictionFilter) ([]PredictionRecord, error)
	SummaryByPair(ctx context.Context) ([]PairSummary, error)
	Metrics(ctx context.Context) (Metrics, error)
	Close() error
}
