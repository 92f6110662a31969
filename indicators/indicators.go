// Package indicators provides technical analysis indicators computed
// over candle series. All functions are pure; positions inside the
// warm-up window are NaN and are zeroed at the API boundary.
package indicators

import (
	"fmt"
	"math"
	"time"

	"github.com/rustyeddy/fxsim/market"
)

// Available lists every indicator name Calculate accepts.
var Available = []string{
	// Moving averages
	"sma", "ema", "wma", "hma",
	// Momentum
	"rsi", "macd", "macd_signal", "macd_hist", "roc", "ppo", "kst",
	// Volatility
	"bollinger_upper", "bollinger_middle", "bollinger_lower", "atr",
	// Oscillators
	"stochastic_k", "stochastic_d", "cci",
	// Trend
	"adx", "aroon_up", "aroon_down",
}

// Point is a timestamped indicator value.
type Point struct {
	Time  time.Time `json:"timestamp"`
	Value float64   `json:"value"`
}

// Valid reports whether name is a known indicator.
func Valid(name string) bool {
	for _, n := range Available {
		if n == name {
			return true
		}
	}
	return false
}

// Calculate computes the named indicator over the candles, aligned to
// the input (one value per bar, NaN during warm-up).
func Calculate(name string, candles []market.Candle) ([]float64, error) {
	closes := make([]float64, len(candles))
	highs := make([]float64, len(candles))
	lows := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
		highs[i] = c.High
		lows[i] = c.Low
	}

	switch name {
	case "sma":
		return SMA(closes, 20), nil
	case "ema":
		return EMA(closes, 20), nil
	case "wma":
		return WMA(closes, 20), nil
	case "hma":
		return HMA(closes, 20), nil
	case "rsi":
		return RSI(closes, 14), nil
	case "macd":
		line, _, _ := MACD(closes)
		return line, nil
	case "macd_signal":
		_, sig, _ := MACD(closes)
		return sig, nil
	case "macd_hist":
		_, _, hist := MACD(closes)
		return hist, nil
	case "roc":
		return ROC(closes, 10), nil
	case "ppo":
		return PPO(closes), nil
	case "kst":
		return KST(closes), nil
	case "bollinger_middle":
		mid, _, _ := Bollinger(closes, 20, 2.0)
		return mid, nil
	case "bollinger_upper":
		_, up, _ := Bollinger(closes, 20, 2.0)
		return up, nil
	case "bollinger_lower":
		_, _, lo := Bollinger(closes, 20, 2.0)
		return lo, nil
	case "atr":
		return ATR(highs, lows, closes, 14), nil
	case "stochastic_k":
		k, _ := Stochastic(highs, lows, closes, 14)
		return k, nil
	case "stochastic_d":
		_, d := Stochastic(highs, lows, closes, 14)
		return d, nil
	case "cci":
		return CCI(highs, lows, closes, 20), nil
	case "adx":
		return ADX(highs, lows, closes, 14), nil
	case "aroon_up":
		up, _ := Aroon(highs, lows, 25)
		return up, nil
	case "aroon_down":
		_, down := Aroon(highs, lows, 25)
		return down, nil
	default:
		return nil, fmt.Errorf("indicators: unknown indicator %q", name)
	}
}

// Series computes the named indicator and pairs each value with its
// bar timestamp. NaN warm-up values become 0.
func Series(name string, candles []market.Candle) ([]Point, error) {
	values, err := Calculate(name, candles)
	if err != nil {
		return nil, err
	}

	points := make([]Point, len(values))
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		points[i] = Point{Time: candles[i].Time, Value: v}
	}
	return points, nil
}

// nans returns a slice of n NaN values.
func nans(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
