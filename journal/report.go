package journal

import (
	"time"

	"github.com/rustyeddy/fxsim/backtest"
	"github.com/rustyeddy/fxsim/internal/id"
)

// FromReport flattens a compiled backtest report into journal records,
// assigning fresh ULIDs to the run and every trade.
func FromReport(r backtest.Report) (BacktestRecord, []TradeRecord) {
	run := BacktestRecord{
		RunID:          id.New(),
		Pair:           r.Pair,
		Timeframe:      r.Timeframe,
		ModelType:      r.ModelType,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		InitialBalance: r.InitialBalance,
		FinalBalance:   r.FinalBalance,
		TotalProfit:    r.TotalProfit,
		TotalTrades:    r.TotalTrades,
		WinningTrades:  r.WinningTrades,
		LosingTrades:   r.LosingTrades,
		WinRate:        r.WinRate,
		MaxDrawdown:    r.MaxDrawdown,
		SharpeRatio:    r.SharpeRatio,
		CreatedAt:      time.Now().UTC(),
	}

	trades := make([]TradeRecord, 0, len(r.Trades))
	for _, t := range r.Trades {
		trades = append(trades, TradeRecord{
			TradeID:    id.New(),
			RunID:      run.RunID,
			Pair:       r.Pair,
			Direction:  t.Type,
			EntryPrice: t.EntryPrice,
			ExitPrice:  t.ExitPrice,
			LotSize:    t.LotSize,
			ProfitLoss: t.ProfitLoss,
			ProfitPips: t.ProfitPips,
			OpenTime:   t.EntryTime,
			CloseTime:  t.ExitTime,
		})
	}
	return run, trades
}
