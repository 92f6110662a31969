package sim

// State is the mutable account aggregate for one simulation run. A run
// owns its State exclusively; there is no cross-run sharing.
type State struct {
	Balance    float64
	Equity     float64
	MarginUsed float64

	OpenOrders   []*Order
	ClosedOrders []*Order

	// High-water-mark and worst relative decline from it.
	MaxBalance  float64
	MaxDrawdown float64
}

// NewState returns a State with balance, equity and the balance
// high-water-mark all at the initial balance.
func NewState(initialBalance float64) *State {
	return &State{
		Balance:    initialBalance,
		Equity:     initialBalance,
		MaxBalance: initialBalance,
	}
}

// updateDrawdown refreshes the high-water-mark and max drawdown after a
// balance change. MaxDrawdown never decreases.
func (s *State) updateDrawdown() {
	if s.Balance > s.MaxBalance {
		s.MaxBalance = s.Balance
	}
	if s.MaxBalance <= 0 {
		return
	}
	dd := (s.MaxBalance - s.Balance) / s.MaxBalance
	if dd > s.MaxDrawdown {
		s.MaxDrawdown = dd
	}
}
