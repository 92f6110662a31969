package sim

import (
	"math"
	"testing"
	"time"

	"github.com/rustyeddy/fxsim/market"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(Config{
		Leverage:   100,
		RiskFactor: 1.0,
		LotSize:    0.01,
		SpreadPips: 0,
	})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return e
}

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func bar(high, low, closeP float64, t time.Time) market.Candle {
	return market.Candle{Open: closeP, High: high, Low: low, Close: closeP, Time: t}
}

func TestConfigValidate(t *testing.T) {
	bad := []Config{
		{Leverage: 0, RiskFactor: 1, LotSize: 0.01},
		{Leverage: -100, RiskFactor: 1, LotSize: 0.01},
		{Leverage: 100, RiskFactor: 0, LotSize: 0.01},
		{Leverage: 100, RiskFactor: 1, LotSize: 0},
	}
	for _, cfg := range bad {
		if _, err := NewEngine(cfg); err == nil {
			t.Fatalf("expected error for config %+v", cfg)
		}
	}
	if _, err := NewEngine(Config{Leverage: 100, RiskFactor: 1, LotSize: 0.01}); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestBuyTakeProfitScenario(t *testing.T) {
	// BUY entry=1.1000 TP=1.1050 SL=1.0950 lot=0.01; bar 1.1060/1.0990
	// must close at TP for +50 pips = $5.00.
	e := newTestEngine(t)
	s := NewState(10000)

	t0 := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	o := &Order{
		ID:         "t1",
		Direction:  Buy,
		EntryPrice: 1.1000,
		EntryTime:  t0,
		LotSize:    0.01,
		TakeProfit: 1.1050,
		StopLoss:   1.0950,
	}
	s.OpenOrders = append(s.OpenOrders, o)
	s.MarginUsed += e.Margin(o)

	closed := e.CheckExits(s, bar(1.1060, 1.0990, 1.1040, t0.Add(time.Hour)))

	if len(closed) != 1 {
		t.Fatalf("expected 1 closed order, got %d", len(closed))
	}
	if !approxEqual(o.ExitPrice, 1.1050, 1e-9) {
		t.Fatalf("exit price: got %v want 1.1050", o.ExitPrice)
	}
	if !approxEqual(o.ProfitPips, 50, 1e-6) {
		t.Fatalf("profit pips: got %v want 50", o.ProfitPips)
	}
	if !approxEqual(o.ProfitLoss, 5.0, 1e-9) {
		t.Fatalf("profit loss: got %v want 5.0", o.ProfitLoss)
	}
	if !approxEqual(s.Balance, 10005, 1e-9) {
		t.Fatalf("balance: got %v want 10005", s.Balance)
	}
}

func TestBuyTieBreakTakeProfitWins(t *testing.T) {
	// Bar spans both TP and SL; the order must close at TP.
	e := newTestEngine(t)
	s := NewState(10000)

	o := &Order{
		ID:         "t1",
		Direction:  Buy,
		EntryPrice: 1.1000,
		LotSize:    0.01,
		TakeProfit: 1.1050,
		StopLoss:   1.0950,
	}
	s.OpenOrders = append(s.OpenOrders, o)

	e.CheckExits(s, bar(1.1060, 1.0940, 1.1000, time.Now()))

	if !o.Closed {
		t.Fatal("order should be closed")
	}
	if !approxEqual(o.ExitPrice, o.TakeProfit, 1e-9) {
		t.Fatalf("tie-break: closed at %v, want TP %v", o.ExitPrice, o.TakeProfit)
	}
}

func TestSellTieBreakTakeProfitWins(t *testing.T) {
	e := newTestEngine(t)
	s := NewState(10000)

	o := &Order{
		ID:         "t1",
		Direction:  Sell,
		EntryPrice: 1.1000,
		LotSize:    0.01,
		TakeProfit: 1.0950,
		StopLoss:   1.1050,
	}
	s.OpenOrders = append(s.OpenOrders, o)

	e.CheckExits(s, bar(1.1060, 1.0940, 1.1000, time.Now()))

	if !o.Closed || !approxEqual(o.ExitPrice, 1.0950, 1e-9) {
		t.Fatalf("sell tie-break: closed=%v exit=%v, want TP 1.0950", o.Closed, o.ExitPrice)
	}
}

func TestSellJPYScalePips(t *testing.T) {
	// SELL at 149.50 closing at 149.00 is +50 pips on the 0.01 scale.
	o := &Order{
		Direction:  Sell,
		EntryPrice: 149.50,
		LotSize:    0.01,
	}
	o.Close(149.00, time.Now())

	if !approxEqual(o.ProfitPips, 50, 1e-6) {
		t.Fatalf("profit pips: got %v want 50", o.ProfitPips)
	}
	if !approxEqual(o.ProfitLoss, 5.0, 1e-9) {
		t.Fatalf("profit loss: got %v want 5.0", o.ProfitLoss)
	}
}

func TestStopLossExit(t *testing.T) {
	e := newTestEngine(t)
	s := NewState(10000)

	o := &Order{
		ID:         "t1",
		Direction:  Buy,
		EntryPrice: 1.1000,
		LotSize:    0.01,
		TakeProfit: 1.1050,
		StopLoss:   1.0950,
	}
	s.OpenOrders = append(s.OpenOrders, o)
	s.MarginUsed = e.Margin(o)

	e.CheckExits(s, bar(1.1010, 1.0940, 1.0960, time.Now()))

	if !o.Closed || !approxEqual(o.ExitPrice, 1.0950, 1e-9) {
		t.Fatalf("expected stop loss exit at 1.0950, got closed=%v exit=%v", o.Closed, o.ExitPrice)
	}
	if !approxEqual(o.ProfitPips, -50, 1e-6) {
		t.Fatalf("profit pips: got %v want -50", o.ProfitPips)
	}
	if !approxEqual(s.MarginUsed, 0, 1e-9) {
		t.Fatalf("margin not released: %v", s.MarginUsed)
	}
	if s.MaxDrawdown <= 0 || s.MaxDrawdown > 1 {
		t.Fatalf("drawdown out of range: %v", s.MaxDrawdown)
	}
}

func TestOpenOrderSpreadAsymmetry(t *testing.T) {
	e, err := NewEngine(Config{Leverage: 100, RiskFactor: 1, LotSize: 0.01, SpreadPips: 2})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	s := NewState(10000)
	b := bar(1.1020, 1.0980, 1.1000, time.Now())

	buy := e.OpenOrder(s, Buy, b)
	sell := e.OpenOrder(s, Sell, b)

	// BUY entry shifts up by the spread; TP/SL are computed before the
	// shift. SELL entry stays at the bar close.
	if !approxEqual(buy.EntryPrice, 1.1000+0.0002, 1e-9) {
		t.Fatalf("buy entry: got %v", buy.EntryPrice)
	}
	if !approxEqual(buy.TakeProfit, 1.1000+0.0040*2, 1e-9) {
		t.Fatalf("buy tp: got %v", buy.TakeProfit)
	}
	if !approxEqual(buy.StopLoss, 1.1000-0.0040*1.5, 1e-9) {
		t.Fatalf("buy sl: got %v", buy.StopLoss)
	}
	if !approxEqual(sell.EntryPrice, 1.1000, 1e-9) {
		t.Fatalf("sell entry: got %v", sell.EntryPrice)
	}
	if !approxEqual(sell.TakeProfit, 1.1000-0.0080, 1e-9) {
		t.Fatalf("sell tp: got %v", sell.TakeProfit)
	}
	if !approxEqual(sell.StopLoss, 1.1000+0.0060, 1e-9) {
		t.Fatalf("sell sl: got %v", sell.StopLoss)
	}
}

func TestOpenOrderCapacityCap(t *testing.T) {
	e := newTestEngine(t)
	s := NewState(10000)
	b := bar(1.1020, 1.0980, 1.1000, time.Now())

	for i := 0; i < MaxOpenOrders; i++ {
		if o := e.OpenOrder(s, Buy, b); o == nil {
			t.Fatalf("open %d rejected below cap", i)
		}
	}
	if o := e.OpenOrder(s, Buy, b); o != nil {
		t.Fatal("open above cap should be rejected")
	}
	if len(s.OpenOrders) != MaxOpenOrders {
		t.Fatalf("open orders: got %d want %d", len(s.OpenOrders), MaxOpenOrders)
	}
}

func TestMarginAccounting(t *testing.T) {
	e := newTestEngine(t)
	s := NewState(10000)
	b := bar(1.1020, 1.0980, 1.1000, time.Now())

	o := e.OpenOrder(s, Buy, b)
	want := 0.01 * 100000 / 100.0
	if !approxEqual(s.MarginUsed, want, 1e-9) {
		t.Fatalf("margin used: got %v want %v", s.MarginUsed, want)
	}

	e.CloseAll(s, b.Close, b.Time)
	if !approxEqual(s.MarginUsed, 0, 1e-9) {
		t.Fatalf("margin not released: %v", s.MarginUsed)
	}
	if !o.Closed {
		t.Fatal("force-closed order should be closed")
	}
}

func TestMarkEquityUnrealized(t *testing.T) {
	e := newTestEngine(t)
	s := NewState(10000)

	o := &Order{
		Direction:  Buy,
		EntryPrice: 1.1000,
		LotSize:    0.01,
		TakeProfit: 2.0,
		StopLoss:   0.5,
	}
	s.OpenOrders = append(s.OpenOrders, o)

	e.MarkEquity(s, 1.1010)

	// +10 pips * 0.01 lot * $10 = $1
	if !approxEqual(s.Equity, 10001, 1e-9) {
		t.Fatalf("equity: got %v want 10001", s.Equity)
	}
}

func TestCloseIsOneWay(t *testing.T) {
	o := &Order{Direction: Buy, EntryPrice: 1.1000, LotSize: 0.01}
	t1 := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)
	o.Close(1.1050, t1)

	first := *o
	o.Close(1.0900, t1.Add(time.Hour))

	if *o != first {
		t.Fatal("second Close must not change a closed order")
	}
}

func TestExitFieldsSetIffClosed(t *testing.T) {
	o := &Order{Direction: Buy, EntryPrice: 1.1000, LotSize: 0.01}
	if o.Closed || !o.ExitTime.IsZero() || o.ExitPrice != 0 {
		t.Fatal("open order must have zero exit fields")
	}

	o.Close(1.1010, time.Now())
	if !o.Closed || o.ExitTime.IsZero() || o.ExitPrice == 0 {
		t.Fatal("closed order must have exit fields set")
	}
}

func TestDrawdownMonotonic(t *testing.T) {
	e := newTestEngine(t)
	s := NewState(10000)
	t0 := time.Now()

	losing := func() *Order {
		return &Order{
			Direction:  Buy,
			EntryPrice: 1.1000,
			LotSize:    0.01,
			TakeProfit: 1.2000,
			StopLoss:   1.0900,
		}
	}

	prev := 0.0
	for i := 0; i < 5; i++ {
		o := losing()
		s.OpenOrders = append(s.OpenOrders, o)
		s.MarginUsed += e.Margin(o)
		e.CheckExits(s, bar(1.1010, 1.0890, 1.0900, t0))

		if s.MaxDrawdown < prev {
			t.Fatalf("drawdown decreased: %v -> %v", prev, s.MaxDrawdown)
		}
		if s.MaxDrawdown < 0 || s.MaxDrawdown > 1 {
			t.Fatalf("drawdown out of [0,1]: %v", s.MaxDrawdown)
		}
		prev = s.MaxDrawdown
	}
}
