package backtest

import (
	"math"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/rustyeddy/fxsim/sim"
)

// tradingDaysPerYear annualizes the per-trade Sharpe proxy.
const tradingDaysPerYear = 252

// TradeResult is one closed trade in the report ledger.
type TradeResult struct {
	Type       string    `json:"type"`
	EntryPrice float64   `json:"entry_price"`
	ExitPrice  float64   `json:"exit_price"`
	EntryTime  time.Time `json:"entry_time"`
	ExitTime   time.Time `json:"exit_time"`
	LotSize    float64   `json:"lot_size"`
	TakeProfit float64   `json:"take_profit"`
	StopLoss   float64   `json:"stop_loss"`
	ProfitLoss float64   `json:"profit_loss"`
	ProfitPips float64   `json:"profit_pips"`
}

// Report is the structured output of a full run.
type Report struct {
	Pair           string        `json:"currency_pair"`
	Timeframe      string        `json:"timeframe"`
	ModelType      string        `json:"model_type"`
	StartDate      time.Time     `json:"start_date"`
	EndDate        time.Time     `json:"end_date"`
	InitialBalance float64       `json:"initial_balance"`
	FinalBalance   float64       `json:"final_balance"`
	TotalTrades    int           `json:"total_trades"`
	WinningTrades  int           `json:"winning_trades"`
	LosingTrades   int           `json:"losing_trades"`
	TotalProfit    float64       `json:"total_profit_loss"`
	WinRate        float64       `json:"win_rate"`
	MaxDrawdown    float64       `json:"max_drawdown"`
	SharpeRatio    float64       `json:"sharpe_ratio"`
	Trades         []TradeResult `json:"trades"`
}

// Compile reduces the run's closed orders into summary statistics. It
// reads state without mutating it, so compiling twice yields identical
// reports.
func Compile(s *sim.State, p Params) Report {
	trades := make([]TradeResult, 0, len(s.ClosedOrders))
	returns := make([]float64, 0, len(s.ClosedOrders))

	winning := 0
	totalPL := 0.0

	for _, o := range s.ClosedOrders {
		if o.ProfitLoss > 0 {
			winning++
		}
		totalPL += o.ProfitLoss
		returns = append(returns, o.ProfitLoss)

		trades = append(trades, TradeResult{
			Type:       string(o.Direction),
			EntryPrice: o.EntryPrice,
			ExitPrice:  o.ExitPrice,
			EntryTime:  o.EntryTime,
			ExitTime:   o.ExitTime,
			LotSize:    o.LotSize,
			TakeProfit: o.TakeProfit,
			StopLoss:   o.StopLoss,
			ProfitLoss: o.ProfitLoss,
			ProfitPips: o.ProfitPips,
		})
	}

	total := len(s.ClosedOrders)
	winRate := 0.0
	if total > 0 {
		winRate = float64(winning) / float64(total)
	}

	return Report{
		Pair:           p.Pair,
		Timeframe:      p.Timeframe,
		ModelType:      p.ModelType,
		StartDate:      p.Start,
		EndDate:        p.End,
		InitialBalance: p.InitialBalance,
		FinalBalance:   s.Balance,
		TotalTrades:    total,
		WinningTrades:  winning,
		LosingTrades:   total - winning,
		TotalProfit:    totalPL,
		WinRate:        winRate,
		MaxDrawdown:    s.MaxDrawdown,
		SharpeRatio:    sharpeRatio(returns),
		Trades:         trades,
	}
}

// sharpeRatio is a per-trade proxy: mean/stdev of trade P&L annualized
// by sqrt(252). Not a return-based Sharpe; zero for degenerate inputs.
func sharpeRatio(returns []float64) float64 {
	if len(returns) < 2 {
		return 0
	}

	mean, err := stats.Mean(returns)
	if err != nil {
		return 0
	}
	stdev, err := stats.StandardDeviation(returns)
	if err != nil || stdev == 0 {
		return 0
	}

	return mean / stdev * math.Sqrt(tradingDaysPerYear)
}
