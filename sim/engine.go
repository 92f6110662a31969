package sim

import (
	"fmt"
	"time"

	"github.com/rustyeddy/fxsim/internal/id"
	"github.com/rustyeddy/fxsim/market"
)

// MaxOpenOrders caps concurrent open positions per run.
const MaxOpenOrders = 3

// TP/SL distances as multiples of the triggering bar's high-low range.
// The single-bar range stands in for a smoothed ATR.
const (
	takeProfitRangeMult = 2.0
	stopLossRangeMult   = 1.5
)

const unitsPerLot = 100000

// Config holds the fixed trading parameters for an Engine.
type Config struct {
	Leverage   float64
	RiskFactor float64
	LotSize    float64
	SpreadPips float64
}

// Validate fails fast on parameters that would make the margin or
// TP/SL math degenerate.
func (c Config) Validate() error {
	if c.Leverage <= 0 {
		return fmt.Errorf("sim: leverage must be positive, got %v", c.Leverage)
	}
	if c.LotSize <= 0 {
		return fmt.Errorf("sim: lot size must be positive, got %v", c.LotSize)
	}
	if c.RiskFactor <= 0 {
		return fmt.Errorf("sim: risk factor must be positive, got %v", c.RiskFactor)
	}
	return nil
}

// Engine opens orders with computed TP/SL, checks open orders against
// each bar for exits, and keeps State balance/equity/margin consistent.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg}, nil
}

// OpenOrder opens a position on the triggering bar if capacity allows.
// TP/SL distances derive from the bar's high-low range; BUY entries are
// offset by the configured spread to model the ask-side fill, SELL
// entries are not.
func (e *Engine) OpenOrder(s *State, dir Direction, bar market.Candle) *Order {
	if len(s.OpenOrders) >= MaxOpenOrders {
		return nil
	}

	entry := bar.Close
	barRange := bar.Range()
	tpDist := barRange * takeProfitRangeMult * e.cfg.RiskFactor
	slDist := barRange * stopLossRangeMult * e.cfg.RiskFactor

	var tp, sl float64
	if dir == Buy {
		tp = entry + tpDist
		sl = entry - slDist
		entry += market.PipsToPrice(e.cfg.SpreadPips, entry)
	} else {
		tp = entry - tpDist
		sl = entry + slDist
	}

	o := &Order{
		ID:         id.New(),
		Direction:  dir,
		EntryPrice: entry,
		EntryTime:  bar.Time,
		LotSize:    e.cfg.LotSize,
		TakeProfit: tp,
		StopLoss:   sl,
	}

	s.OpenOrders = append(s.OpenOrders, o)
	s.MarginUsed += e.Margin(o)
	return o
}

// Margin returns the capital reserved for an order under the configured
// leverage.
func (e *Engine) Margin(o *Order) float64 {
	return o.LotSize * unitsPerLot / e.cfg.Leverage
}

// CheckExits closes every open order whose TP or SL level falls inside
// the bar. Take-profit is checked first: when a bar spans both levels,
// the order closes at TP. Returns the orders closed on this bar.
func (e *Engine) CheckExits(s *State, bar market.Candle) []*Order {
	var closed []*Order
	remaining := s.OpenOrders[:0]

	for _, o := range s.OpenOrders {
		exit, hit := exitPrice(o, bar)
		if !hit {
			remaining = append(remaining, o)
			continue
		}
		e.close(s, o, exit, bar.Time)
		closed = append(closed, o)
	}

	s.OpenOrders = remaining
	return closed
}

// CloseAll force-closes every open order at the given price and time,
// through the same accounting path as a TP/SL exit.
func (e *Engine) CloseAll(s *State, price float64, t time.Time) []*Order {
	closed := make([]*Order, 0, len(s.OpenOrders))
	for _, o := range s.OpenOrders {
		e.close(s, o, price, t)
		closed = append(closed, o)
	}
	s.OpenOrders = s.OpenOrders[:0]
	return closed
}

// MarkEquity recomputes equity as balance plus unrealized P&L of open
// orders at the mark price, using the same pip convention as realized
// P&L.
func (e *Engine) MarkEquity(s *State, mark float64) {
	unrealized := 0.0
	for _, o := range s.OpenOrders {
		unrealized += o.UnrealizedPips(mark) * o.LotSize * pipValuePerLot
	}
	s.Equity = s.Balance + unrealized
}

func (e *Engine) close(s *State, o *Order, exit float64, t time.Time) {
	o.Close(exit, t)
	s.ClosedOrders = append(s.ClosedOrders, o)
	s.Balance += o.ProfitLoss
	s.MarginUsed -= e.Margin(o)
	s.updateDrawdown()
}

func exitPrice(o *Order, bar market.Candle) (float64, bool) {
	if o.Direction == Buy {
		if bar.High >= o.TakeProfit {
			return o.TakeProfit, true
		}
		if bar.Low <= o.StopLoss {
			return o.StopLoss, true
		}
		return 0, false
	}

	if bar.Low <= o.TakeProfit {
		return o.TakeProfit, true
	}
	if bar.High >= o.StopLoss {
		return o.StopLoss, true
	}
	return 0, false
}
