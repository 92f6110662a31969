package indicators

import "math"

// Stochastic returns the %K oscillator over period bars and its
// 3-period SMA smoothing (%D).
func Stochastic(highs, lows, closes []float64, period int) (k, d []float64) {
	k = nans(len(closes))
	if period <= 0 || len(closes) < period {
		return k, nans(len(closes))
	}

	for i := period - 1; i < len(closes); i++ {
		highest := highs[i]
		lowest := lows[i]
		for j := i - period + 1; j <= i; j++ {
			highest = math.Max(highest, highs[j])
			lowest = math.Min(lowest, lows[j])
		}
		if highest != lowest {
			k[i] = (closes[i] - lowest) / (highest - lowest) * 100
		}
	}

	return k, SMA(k, 3)
}

// CCI is the commodity channel index over the typical price.
func CCI(highs, lows, closes []float64, period int) []float64 {
	out := nans(len(closes))
	if period <= 0 || len(closes) < period {
		return out
	}

	tp := make([]float64, len(closes))
	for i := range tp {
		tp[i] = (highs[i] + lows[i] + closes[i]) / 3
	}
	smaTP := SMA(tp, period)

	for i := period - 1; i < len(tp); i++ {
		// Mean absolute deviation of the window around its SMA.
		mad := 0.0
		for j := i - period + 1; j <= i; j++ {
			mad += math.Abs(tp[j] - smaTP[i])
		}
		mad /= float64(period)

		if mad == 0 {
			out[i] = 0
			continue
		}
		out[i] = (tp[i] - smaTP[i]) / (0.015 * mad)
	}
	return out
}
