package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/fxsim/backtest"
	"github.com/rustyeddy/fxsim/internal/id"
)

func openTestJournal(t *testing.T) *SQLite {
	t.Helper()

	j, err := NewSQLite(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func sampleRun(pair, model string, pl float64) (BacktestRecord, []TradeRecord) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	run := BacktestRecord{
		RunID:          id.New(),
		Pair:           pair,
		Timeframe:      "H1",
		ModelType:      model,
		StartDate:      start,
		EndDate:        start.AddDate(0, 1, 0),
		InitialBalance: 10000,
		FinalBalance:   10000 + pl,
		TotalProfit:    pl,
		TotalTrades:    2,
		WinningTrades:  1,
		LosingTrades:   1,
		WinRate:        0.5,
		MaxDrawdown:    0.01,
		SharpeRatio:    1.2,
		CreatedAt:      time.Now().UTC(),
	}

	trades := []TradeRecord{
		{
			TradeID: id.New(), RunID: run.RunID, Pair: pair, Direction: "BUY",
			EntryPrice: 1.1000, ExitPrice: 1.1050, LotSize: 0.01,
			ProfitLoss: pl + 2, ProfitPips: 50,
			OpenTime: start.Add(1 * time.Hour), CloseTime: start.Add(3 * time.Hour),
		},
		{
			TradeID: id.New(), RunID: run.RunID, Pair: pair, Direction: "SELL",
			EntryPrice: 1.1050, ExitPrice: 1.1070, LotSize: 0.01,
			ProfitLoss: -2, ProfitPips: -20,
			OpenTime: start.Add(5 * time.Hour), CloseTime: start.Add(6 * time.Hour),
		},
	}
	return run, trades
}

func TestRecordAndGetBacktest(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	run, trades := sampleRun("EURUSD", "cnn", 3.0)
	require.NoError(t, j.RecordBacktest(ctx, run, trades))

	got, err := j.GetBacktest(ctx, run.RunID)
	require.NoError(t, err)
	assert.Equal(t, run.RunID, got.RunID)
	assert.Equal(t, "EURUSD", got.Pair)
	assert.Equal(t, 2, got.TotalTrades)
	assert.InDelta(t, 3.0, got.TotalProfit, 1e-9)

	ledger, err := j.ListTradesByRun(ctx, run.RunID)
	require.NoError(t, err)
	require.Len(t, ledger, 2)
	assert.Equal(t, "BUY", ledger[0].Direction)
	assert.Equal(t, "SELL", ledger[1].Direction)
}

func TestGetBacktestNotFound(t *testing.T) {
	j := openTestJournal(t)

	_, err := j.GetBacktest(context.Background(), "no-such-run")
	assert.ErrorContains(t, err, "not found")
}

func TestListBacktestsFilters(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	for _, tc := range []struct {
		pair, model string
	}{
		{"EURUSD", "cnn"},
		{"EURUSD", "rnn"},
		{"USDJPY", "cnn"},
	} {
		run, trades := sampleRun(tc.pair, tc.model, 1.0)
		require.NoError(t, j.RecordBacktest(ctx, run, trades))
	}

	all, err := j.ListBacktests(ctx, BacktestFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	eur, err := j.ListBacktests(ctx, BacktestFilter{Pair: "EURUSD"})
	require.NoError(t, err)
	assert.Len(t, eur, 2)

	cnnJPY, err := j.ListBacktests(ctx, BacktestFilter{Pair: "USDJPY", ModelType: "cnn"})
	require.NoError(t, err)
	require.Len(t, cnnJPY, 1)
	assert.Equal(t, "USDJPY", cnnJPY[0].Pair)
}

func TestListTradesPaging(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	run, trades := sampleRun("GBPUSD", "tcn", 0.5)
	require.NoError(t, j.RecordBacktest(ctx, run, trades))

	page, err := j.ListTrades(ctx, TradeFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, page, 1)

	rest, err := j.ListTrades(ctx, TradeFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.NotEqual(t, page[0].TradeID, rest[0].TradeID)

	buys, err := j.ListTrades(ctx, TradeFilter{Direction: "BUY"})
	require.NoError(t, err)
	require.Len(t, buys, 1)
	assert.Equal(t, "BUY", buys[0].Direction)
}

func TestGetTrade(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	run, trades := sampleRun("EURUSD", "cnn", 1.0)
	require.NoError(t, j.RecordBacktest(ctx, run, trades))

	got, err := j.GetTrade(ctx, trades[0].TradeID)
	require.NoError(t, err)
	assert.Equal(t, run.RunID, got.RunID)
	assert.InDelta(t, 50, got.ProfitPips, 1e-9)

	_, err = j.GetTrade(ctx, "missing")
	assert.ErrorContains(t, err, "not found")
}

func TestPredictions(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	p := PredictionRecord{
		PredictionID:   id.New(),
		Pair:           "EURUSD",
		Timeframe:      "H1",
		ModelType:      "cnn",
		PredictedPrice: 1.0862,
		PriceChange:    0.0011,
		Confidence:     0.81,
		ModelVersion:   "cnn-1.0",
		CreatedAt:      time.Now().UTC(),
	}
	require.NoError(t, j.RecordPrediction(ctx, p))

	got, err := j.ListPredictions(ctx, PredictionFilter{Pair: "EURUSD"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, p.PredictionID, got[0].PredictionID)
	assert.InDelta(t, 0.81, got[0].Confidence, 1e-9)

	none, err := j.ListPredictions(ctx, PredictionFilter{ModelType: "rnn"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSummaryByPair(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	r1, t1 := sampleRun("EURUSD", "cnn", 10.0)
	r2, t2 := sampleRun("USDJPY", "cnn", 1.0)
	require.NoError(t, j.RecordBacktest(ctx, r1, t1))
	require.NoError(t, j.RecordBacktest(ctx, r2, t2))

	sums, err := j.SummaryByPair(ctx)
	require.NoError(t, err)
	require.Len(t, sums, 2)

	// Ordered by total P&L descending.
	assert.Equal(t, "EURUSD", sums[0].Pair)
	assert.Equal(t, 2, sums[0].TotalTrades)
	assert.InDelta(t, 0.5, sums[0].WinRate, 1e-9)
}

func TestMetrics(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	empty, err := j.Metrics(ctx)
	require.NoError(t, err)
	assert.Zero(t, empty.TotalBacktests)
	assert.Zero(t, empty.OverallWinRate)
	assert.Empty(t, empty.BestPair)

	r1, t1 := sampleRun("EURUSD", "cnn", 10.0)
	r2, t2 := sampleRun("USDJPY", "rnn", -2.0)
	require.NoError(t, j.RecordBacktest(ctx, r1, t1))
	require.NoError(t, j.RecordBacktest(ctx, r2, t2))

	m, err := j.Metrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, m.TotalBacktests)
	assert.Equal(t, 4, m.TotalTrades)
	assert.InDelta(t, 8.0, m.TotalProfit, 1e-9)
	assert.InDelta(t, 0.5, m.OverallWinRate, 1e-9)
	assert.Equal(t, "EURUSD", m.BestPair)
	assert.Equal(t, "cnn", m.BestModel)
}

func TestFromReport(t *testing.T) {
	r := backtest.Report{
		Pair:           "EURUSD",
		Timeframe:      "H1",
		ModelType:      "cnn",
		InitialBalance: 10000,
		FinalBalance:   10005,
		TotalProfit:    5,
		TotalTrades:    1,
		WinningTrades:  1,
		WinRate:        1,
		Trades: []backtest.TradeResult{
			{Type: "BUY", EntryPrice: 1.1, ExitPrice: 1.105, LotSize: 0.01, ProfitLoss: 5, ProfitPips: 50},
		},
	}

	run, trades := FromReport(r)
	assert.NotEmpty(t, run.RunID)
	require.Len(t, trades, 1)
	assert.Equal(t, run.RunID, trades[0].RunID)
	assert.Equal(t, "EURUSD", trades[0].Pair)
	assert.NotEmpty(t, trades[0].TradeID)
	assert.NotEqual(t, run.RunID, trades[0].TradeID)
}
