package market

// Pip sizes by quote currency scale. JPY-quoted pairs trade near 100+
// while everything else trades near 1, so a reference price above 10 is
// used as a stand-in for "quote currency is JPY". This is a heuristic,
// not an instrument lookup, and is kept deliberately.
const (
	pipJPY      = 0.01
	pipStandard = 0.0001

	// jpyThreshold separates JPY-quoted reference prices from the rest.
	jpyThreshold = 10.0
)

// PipSize returns the pip unit for the given reference price.
func PipSize(referencePrice float64) float64 {
	if referencePrice > jpyThreshold {
		return pipJPY
	}
	return pipStandard
}

// PipsToPrice converts a pip count to a price delta at the given
// reference price.
func PipsToPrice(pips, referencePrice float64) float64 {
	return pips * PipSize(referencePrice)
}

// PriceToPips converts a price delta to pips at the given reference
// price.
func PriceToPips(delta, referencePrice float64) float64 {
	return delta / PipSize(referencePrice)
}
