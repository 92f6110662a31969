package market

import (
	"hash/fnv"
	"math"
	"math/rand"
	"time"
)

// MaxSeriesBars caps generated series length to bound backtest run time.
const MaxSeriesBars = 5000

// Per-bar random-walk parameters for synthetic series.
const (
	changeStdDev     = 0.002
	volatilityStdDev = 0.001
)

// GenerateSeries produces a deterministic OHLCV series for the pair and
// timeframe over [start, end]. The walk is seeded from the pair and
// start date, so repeated calls yield identical series.
func GenerateSeries(pair, timeframe string, start, end time.Time) []Candle {
	minutes := TimeframeMinutes(timeframe)

	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)

	totalMinutes := int(endDay.Sub(startDay).Minutes())
	if totalMinutes <= 0 {
		return nil
	}

	bars := totalMinutes / minutes
	if bars > MaxSeriesBars {
		bars = MaxSeriesBars
	}

	rng := rand.New(rand.NewSource(seriesSeed(pair, startDay)))

	price := BasePrice(pair)
	ts := startDay
	series := make([]Candle, 0, bars)

	for i := 0; i < bars; i++ {
		change := rng.NormFloat64() * changeStdDev
		volatility := math.Abs(rng.NormFloat64() * volatilityStdDev)

		open := price
		closeP := price * (1 + change)
		high := math.Max(open, closeP) * (1 + volatility)
		low := math.Min(open, closeP) * (1 - volatility)

		series = append(series, Candle{
			Open:   open,
			High:   high,
			Low:    low,
			Close:  closeP,
			Time:   ts,
			Volume: float64(1000 + rng.Intn(9000)),
		})

		price = closeP
		ts = ts.Add(time.Duration(minutes) * time.Minute)
	}

	return series
}

func seriesSeed(pair string, start time.Time) int64 {
	h := fnv.New64a()
	h.Write([]byte(pair))
	h.Write([]byte(start.Format("2006-01-02")))
	return int64(h.Sum64() & math.MaxInt64)
}
