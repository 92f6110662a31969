package indicators

import (
	"math"

	"github.com/montanaflynn/stats"
)

// Bollinger returns the middle band (SMA), and upper/lower bands at
// stdDev population standard deviations.
func Bollinger(data []float64, period int, stdDev float64) (middle, upper, lower []float64) {
	middle = SMA(data, period)
	upper = nans(len(data))
	lower = nans(len(data))

	if period <= 0 || len(data) < period {
		return middle, upper, lower
	}

	for i := period - 1; i < len(data); i++ {
		sd, err := stats.StandardDeviation(data[i-period+1 : i+1])
		if err != nil {
			continue
		}
		upper[i] = middle[i] + stdDev*sd
		lower[i] = middle[i] - stdDev*sd
	}
	return middle, upper, lower
}

// ATR is the average true range smoothed with an SMA, with the first
// bar's true range taken as high−low.
func ATR(highs, lows, closes []float64, period int) []float64 {
	if len(closes) == 0 {
		return nil
	}

	tr := make([]float64, len(closes))
	tr[0] = highs[0] - lows[0]
	for i := 1; i < len(closes); i++ {
		tr[i] = trueRange(highs[i], lows[i], closes[i-1])
	}
	return SMA(tr, period)
}

func trueRange(high, low, prevClose float64) float64 {
	return math.Max(high-low, math.Max(math.Abs(high-prevClose), math.Abs(low-prevClose)))
}
