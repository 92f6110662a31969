package market

import "sort"

// BasePrices maps supported currency pairs to a representative spot
// price used to seed synthetic series. Unknown pairs fall back to
// DefaultBasePrice.
var BasePrices = map[string]float64{
	"EURUSD": 1.0850,
	"GBPUSD": 1.2650,
	"USDJPY": 149.50,
	"AUDUSD": 0.6550,
	"USDCHF": 0.8750,
	"USDCAD": 1.3550,
	"NZDUSD": 0.6150,
	"EURGBP": 0.8550,
	"EURJPY": 162.25,
	"GBPJPY": 189.25,
	"AUDJPY": 97.85,
}

// DefaultBasePrice is used for pairs without an entry in BasePrices.
const DefaultBasePrice = 1.0

// BasePrice returns the seed price for a pair.
func BasePrice(pair string) float64 {
	if p, ok := BasePrices[pair]; ok {
		return p
	}
	return DefaultBasePrice
}

// ValidPair reports whether the pair is one of the supported
// instruments.
func ValidPair(pair string) bool {
	_, ok := BasePrices[pair]
	return ok
}

// Pairs returns the supported pair codes in sorted order.
func Pairs() []string {
	out := make([]string, 0, len(BasePrices))
	for p := range BasePrices {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
