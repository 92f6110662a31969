// Package sim implements the trading simulation core: orders, account
// state and the per-bar order lifecycle.
package sim

import (
	"time"

	"github.com/rustyeddy/fxsim/market"
)

// Direction is the side of an order.
type Direction string

const (
	Buy  Direction = "BUY"
	Sell Direction = "SELL"
)

// Order represents one position from open to close. Exit fields are
// zero until Close() runs; the transition is one-way and happens exactly
// once.
type Order struct {
	ID         string
	Direction  Direction
	EntryPrice float64
	EntryTime  time.Time
	LotSize    float64
	TakeProfit float64
	StopLoss   float64

	// Set once, at close.
	ExitPrice  float64
	ExitTime   time.Time
	ProfitLoss float64
	ProfitPips float64
	Closed     bool
}

// pipValuePerLot is the fixed $10-per-pip-per-lot convention.
const pipValuePerLot = 10.0

// Close realizes the order at exitPrice, computing pip and currency
// P&L. Closing an already-closed order is a no-op.
func (o *Order) Close(exitPrice float64, exitTime time.Time) {
	if o.Closed {
		return
	}

	var pips float64
	if o.Direction == Buy {
		pips = market.PriceToPips(exitPrice-o.EntryPrice, o.EntryPrice)
	} else {
		pips = market.PriceToPips(o.EntryPrice-exitPrice, o.EntryPrice)
	}

	o.ExitPrice = exitPrice
	o.ExitTime = exitTime
	o.ProfitPips = pips
	o.ProfitLoss = pips * o.LotSize * pipValuePerLot
	o.Closed = true
}

// UnrealizedPips returns the favorable-direction pip P&L at the given
// mark price. Zero for closed orders.
func (o *Order) UnrealizedPips(mark float64) float64 {
	if o.Closed {
		return 0
	}
	if o.Direction == Buy {
		return market.PriceToPips(mark-o.EntryPrice, o.EntryPrice)
	}
	return market.PriceToPips(o.EntryPrice-mark, o.EntryPrice)
}
