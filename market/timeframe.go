package market

// Timeframe codes supported by the series generator and API.
var timeframeMinutes = map[string]int{
	"M1":  1,
	"M5":  5,
	"M15": 15,
	"M30": 30,
	"H1":  60,
	"H4":  240,
	"D1":  1440,
}

// TimeframeMinutes returns the bar duration in minutes for a timeframe
// code. Unknown codes default to H1 (60 minutes).
func TimeframeMinutes(tf string) int {
	if m, ok := timeframeMinutes[tf]; ok {
		return m
	}
	return 60
}

// ValidTimeframe reports whether tf is a supported timeframe code.
func ValidTimeframe(tf string) bool {
	_, ok := timeframeMinutes[tf]
	return ok
}

// Timeframes returns the supported timeframe codes, shortest first.
func Timeframes() []string {
	return []string{"M1", "M5", "M15", "M30", "H1", "H4", "D1"}
}
