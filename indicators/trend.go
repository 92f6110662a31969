package indicators

import "math"

// ADX is the average directional index: smoothed directional movement
// relative to the true range.
func ADX(highs, lows, closes []float64, period int) []float64 {
	n := len(closes)
	if n == 0 {
		return nil
	}

	tr := make([]float64, n)
	plusDM := make([]float64, n)
	minusDM := make([]float64, n)

	tr[0] = highs[0] - lows[0]
	for i := 1; i < n; i++ {
		tr[i] = trueRange(highs[i], lows[i], closes[i-1])
		plusDM[i] = math.Max(highs[i]-highs[i-1], 0)
		minusDM[i] = math.Max(lows[i-1]-lows[i], 0)
	}

	emaTR := EMA(tr, period)
	emaPlus := EMA(plusDM, period)
	emaMinus := EMA(minusDM, period)

	dx := nans(n)
	for i := range dx {
		if math.IsNaN(emaTR[i]) || emaTR[i] == 0 {
			continue
		}
		plusDI := 100 * emaPlus[i] / emaTR[i]
		minusDI := 100 * emaMinus[i] / emaTR[i]
		dx[i] = 100 * math.Abs(plusDI-minusDI) / (plusDI + minusDI + 1e-10)
	}

	return emaOverValid(dx, period)
}

// Aroon returns the up and down lines: how recently the period's
// highest high and lowest low occurred, scaled to [0, 100].
func Aroon(highs, lows []float64, period int) (up, down []float64) {
	up = nans(len(highs))
	down = nans(len(lows))

	for i := period; i < len(highs); i++ {
		highIdx, lowIdx := 0, 0
		for j := 0; j <= period; j++ {
			k := i - period + j
			if highs[k] > highs[i-period+highIdx] {
				highIdx = j
			}
			if lows[k] < lows[i-period+lowIdx] {
				lowIdx = j
			}
		}
		up[i] = float64(highIdx) / float64(period) * 100
		down[i] = float64(lowIdx) / float64(period) * 100
	}
	return up, down
}
