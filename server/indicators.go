package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/rustyeddy/fxsim/indicators"
	"github.com/rustyeddy/fxsim/market"
)

const (
	defaultIndicatorDays = 30
	maxIndicatorDays     = 90
)

func (s *Server) handleListIndicators(w http.ResponseWriter, r *http.Request) {
	setResponse(map[string]interface{}{"indicators": indicators.Available}, w)
}

// handleIndicatorSeries computes one indicator over a synthetic series
// for the pair: GET /api/indicators/{pair}?name=rsi&timeframe=H1&days=30
func (s *Server) handleIndicatorSeries(w http.ResponseWriter, r *http.Request) {
	pair := mux.Vars(r)["pair"]
	if err := validatePair(pair); err != nil {
		setErrorResponse("indicatorSeries: invalid request", 400, err, w)
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "sma"
	}
	if !indicators.Valid(name) {
		setErrorResponse("indicatorSeries: invalid request", 400,
			fmt.Errorf("unknown indicator %q", name), w)
		return
	}

	timeframe := r.URL.Query().Get("timeframe")
	if timeframe == "" {
		timeframe = "H1"
	}
	if err := validateTimeframe(timeframe); err != nil {
		setErrorResponse("indicatorSeries: invalid request", 400, err, w)
		return
	}

	days := defaultIndicatorDays
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			setErrorResponse("indicatorSeries: invalid request", 400,
				fmt.Errorf("days must be a positive integer"), w)
			return
		}
		days = n
	}
	if days > maxIndicatorDays {
		days = maxIndicatorDays
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -days)

	candles := market.GenerateSeries(pair, timeframe, start, end)
	points, err := indicators.Series(name, candles)
	if err != nil {
		setErrorResponse("indicatorSeries: calculation failed", 500, err, w)
		return
	}

	setResponse(map[string]interface{}{
		"currency_pair": pair,
		"indicator":     name,
		"timeframe":     timeframe,
		"points":        points,
	}, w)
}
