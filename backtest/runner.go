// Package backtest drives a simulation run over a price series and
// compiles the results.
package backtest

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/rustyeddy/fxsim/market"
	"github.com/rustyeddy/fxsim/signal"
	"github.com/rustyeddy/fxsim/sim"
)

// Fixed signal cadence: a forecast is requested every SignalInterval
// bars, once more than WarmupBars bars have been seen, from a trailing
// WarmupBars-close window.
const (
	SignalInterval = 5
	WarmupBars     = 28
)

// Params configures a single backtest run.
type Params struct {
	Pair      string
	Timeframe string
	ModelType string
	Start     time.Time
	End       time.Time

	InitialBalance float64
	Leverage       float64
	RiskFactor     float64
	LotSize        float64
	SpreadPips     float64
}

// DefaultParams returns run parameters matching the standard account
// setup.
func DefaultParams() Params {
	return Params{
		Timeframe:      "H1",
		ModelType:      "cnn",
		InitialBalance: 10000,
		Leverage:       100,
		RiskFactor:     1.0,
		LotSize:        0.01,
		SpreadPips:     2.0,
	}
}

// SeriesFunc yields the price series for a run. The default generator
// produces a deterministic synthetic series; tests and other providers
// can substitute their own.
type SeriesFunc func(pair, timeframe string, start, end time.Time) []market.Candle

// Runner executes backtests against a predictor. Each Run owns its
// state exclusively; a single Runner may serve concurrent runs.
type Runner struct {
	predictor signal.Predictor
	series    SeriesFunc
}

func NewRunner(p signal.Predictor) *Runner {
	return &Runner{predictor: p, series: market.GenerateSeries}
}

// WithSeries overrides the price series source.
func (r *Runner) WithSeries(fn SeriesFunc) *Runner {
	r.series = fn
	return r
}

// Run executes one linear pass over the series: per bar, check exits,
// periodically request a signal and open at most one order, then mark
// equity. Remaining orders are force-closed on the final bar.
func (r *Runner) Run(ctx context.Context, p Params) (Report, error) {
	engine, err := sim.NewEngine(sim.Config{
		Leverage:   p.Leverage,
		RiskFactor: p.RiskFactor,
		LotSize:    p.LotSize,
		SpreadPips: p.SpreadPips,
	})
	if err != nil {
		return Report{}, err
	}

	series := r.series(p.Pair, p.Timeframe, p.Start, p.End)
	if len(series) == 0 {
		return Report{}, fmt.Errorf("backtest: empty price series for %s %s", p.Pair, p.Timeframe)
	}

	gen := signal.NewGenerator(r.predictor)
	state := sim.NewState(p.InitialBalance)

	closes := make([]float64, len(series))
	for i, c := range series {
		closes[i] = c.Close
	}

	for i, bar := range series {
		engine.CheckExits(state, bar)

		if i%SignalInterval == 0 && i > WarmupBars {
			lookback := closes[i-WarmupBars : i]
			if sig := gen.Generate(ctx, p.ModelType, p.Pair, p.Timeframe, lookback); sig != nil {
				engine.OpenOrder(state, sig.Direction, bar)
			}
		}

		engine.MarkEquity(state, bar.Close)
	}

	last := series[len(series)-1]
	engine.CloseAll(state, last.Close, last.Time)
	engine.MarkEquity(state, last.Close)

	report := Compile(state, p)

	log.WithFields(log.Fields{
		"pair":    p.Pair,
		"model":   p.ModelType,
		"bars":    len(series),
		"trades":  report.TotalTrades,
		"balance": report.FinalBalance,
	}).Info("backtest complete")

	return report, nil
}
