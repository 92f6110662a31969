package indicators

import "math"

// SMA is the simple moving average; values before the first full
// window are NaN. NaN inputs inside a window propagate so smoothing a
// warm-up-padded series stays honest.
func SMA(data []float64, period int) []float64 {
	out := nans(len(data))
	if period <= 0 || len(data) < period {
		return out
	}

	for i := period - 1; i < len(data); i++ {
		sum := 0.0
		for j := i - period + 1; j <= i; j++ {
			sum += data[j]
		}
		out[i] = sum / float64(period)
	}
	return out
}

// EMA is the exponential moving average, seeded with the SMA of the
// first full window.
func EMA(data []float64, period int) []float64 {
	out := nans(len(data))
	if period <= 0 || len(data) < period {
		return out
	}

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += data[i]
	}
	ema := sum / float64(period)
	out[period-1] = ema

	multiplier := 2.0 / float64(period+1)
	for i := period; i < len(data); i++ {
		ema = (data[i]-ema)*multiplier + ema
		out[i] = ema
	}
	return out
}

// WMA is the linearly weighted moving average. NaN inputs inside a
// window propagate, which keeps derived indicators (HMA) honest about
// their warm-up.
func WMA(data []float64, period int) []float64 {
	out := nans(len(data))
	if period <= 0 || len(data) < period {
		return out
	}

	weightSum := float64(period*(period+1)) / 2
	for i := period - 1; i < len(data); i++ {
		sum := 0.0
		for j := 0; j < period; j++ {
			sum += data[i-period+1+j] * float64(j+1)
		}
		out[i] = sum / weightSum
	}
	return out
}

// HMA is the Hull moving average: WMA(2*WMA(n/2) − WMA(n), sqrt(n)).
func HMA(data []float64, period int) []float64 {
	half := period / 2
	sqrtP := int(math.Sqrt(float64(period)))

	wmaHalf := WMA(data, half)
	wmaFull := WMA(data, period)

	diff := make([]float64, len(data))
	for i := range diff {
		diff[i] = 2*wmaHalf[i] - wmaFull[i]
	}
	return WMA(diff, sqrtP)
}
