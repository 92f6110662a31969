package indicators

import "math"

// RSI is Wilder's relative strength index.
func RSI(data []float64, period int) []float64 {
	out := nans(len(data))
	if period <= 0 || len(data) <= period {
		return out
	}

	gains := make([]float64, len(data)-1)
	losses := make([]float64, len(data)-1)
	for i := 1; i < len(data); i++ {
		delta := data[i] - data[i-1]
		if delta > 0 {
			gains[i-1] = delta
		} else {
			losses[i-1] = -delta
		}
	}

	avgGain, avgLoss := 0.0, 0.0
	for i := 0; i < period; i++ {
		avgGain += gains[i]
		avgLoss += losses[i]
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	for i := period; i < len(data); i++ {
		avgGain = (avgGain*float64(period-1) + gains[i-1]) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + losses[i-1]) / float64(period)

		if avgLoss == 0 {
			out[i] = 100
		} else {
			rs := avgGain / avgLoss
			out[i] = 100 - 100/(1+rs)
		}
	}
	return out
}

// MACD returns the MACD line (EMA12−EMA26), its 9-period signal line
// and the histogram.
func MACD(data []float64) (line, signal, hist []float64) {
	ema12 := EMA(data, 12)
	ema26 := EMA(data, 26)

	line = make([]float64, len(data))
	for i := range line {
		line[i] = ema12[i] - ema26[i]
	}

	signal = emaOverValid(line, 9)

	hist = make([]float64, len(data))
	for i := range hist {
		hist[i] = line[i] - signal[i]
	}
	return line, signal, hist
}

// ROC is the rate of change in percent over period bars.
func ROC(data []float64, period int) []float64 {
	out := nans(len(data))
	for i := period; i < len(data); i++ {
		if data[i-period] != 0 {
			out[i] = (data[i] - data[i-period]) / data[i-period] * 100
		}
	}
	return out
}

// PPO is the percentage price oscillator.
func PPO(data []float64) []float64 {
	ema12 := EMA(data, 12)
	ema26 := EMA(data, 26)

	out := make([]float64, len(data))
	for i := range out {
		if ema26[i] != 0 {
			out[i] = (ema12[i] - ema26[i]) / ema26[i] * 100
		}
	}
	return out
}

// KST is the Know Sure Thing oscillator: a weighted sum of four
// smoothed rate-of-change series.
func KST(data []float64) []float64 {
	roc1 := SMA(ROC(data, 10), 10)
	roc2 := SMA(ROC(data, 15), 10)
	roc3 := SMA(ROC(data, 20), 10)
	roc4 := SMA(ROC(data, 30), 15)

	out := make([]float64, len(data))
	for i := range out {
		out[i] = roc1[i] + 2*roc2[i] + 3*roc3[i] + 4*roc4[i]
	}
	return out
}

// emaOverValid applies an EMA to the non-NaN suffix of data, leaving
// the NaN warm-up prefix intact.
func emaOverValid(data []float64, period int) []float64 {
	first := 0
	for first < len(data) && math.IsNaN(data[first]) {
		first++
	}

	out := nans(len(data))
	valid := EMA(data[first:], period)
	copy(out[first:], valid)
	return out
}
