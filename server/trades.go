package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rustyeddy/fxsim/journal"
)

func (s *Server) handleListTrades(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePaging(r)
	f := journal.TradeFilter{
		Pair:      r.URL.Query().Get("currency_pair"),
		Direction: r.URL.Query().Get("direction"),
		Limit:     limit,
		Offset:    offset,
	}

	trades, err := s.journal.ListTrades(r.Context(), f)
	if err != nil {
		setErrorResponse("listTrades: query failed", 500, err, w)
		return
	}

	setResponse(map[string]interface{}{"trades": trades}, w)
}

func (s *Server) handleGetTrade(w http.ResponseWriter, r *http.Request) {
	tradeID := mux.Vars(r)["id"]

	trade, err := s.journal.GetTrade(r.Context(), tradeID)
	if err != nil {
		setErrorResponse("getTrade: not found", 404, err, w)
		return
	}

	setResponse(trade, w)
}

func (s *Server) handleTradeSummary(w http.ResponseWriter, r *http.Request) {
	sums, err := s.journal.SummaryByPair(r.Context())
	if err != nil {
		setErrorResponse("tradeSummary: query failed", 500, err, w)
		return
	}

	setResponse(map[string]interface{}{"summary": sums}, w)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	m, err := s.journal.Metrics(r.Context())
	if err != nil {
		setErrorResponse("metrics: query failed", 500, err, w)
		return
	}

	setResponse(m, w)
}

// handleMetricsSummary combines the headline metrics with the per-pair
// breakdown in one round trip.
func (s *Server) handleMetricsSummary(w http.ResponseWriter, r *http.Request) {
	m, err := s.journal.Metrics(r.Context())
	if err != nil {
		setErrorResponse("metricsSummary: query failed", 500, err, w)
		return
	}

	sums, err := s.journal.SummaryByPair(r.Context())
	if err != nil {
		setErrorResponse("metricsSummary: query failed", 500, err, w)
		return
	}

	setResponse(map[string]interface{}{
		"metrics": m,
		"by_pair": sums,
	}, w)
}
