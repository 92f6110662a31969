package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rustyeddy/fxsim/backtest"
	"github.com/rustyeddy/fxsim/journal"
)

// BacktestRequest is the POST /api/backtest body. Zero account fields
// fall back to the configured simulation defaults.
type BacktestRequest struct {
	Pair      string `json:"currency_pair"`
	Timeframe string `json:"timeframe"`
	ModelType string `json:"model_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	InitialBalance float64 `json:"initial_balance,omitempty"`
	Leverage       float64 `json:"leverage,omitempty"`
	RiskFactor     float64 `json:"risk_factor,omitempty"`
	LotSize        float64 `json:"lot_size,omitempty"`
	SpreadPips     float64 `json:"spread_pips,omitempty"`
}

// BacktestResponse pairs the stored run ID with the full report.
type BacktestResponse struct {
	RunID  string          `json:"run_id"`
	Report backtest.Report `json:"report"`
}

func (s *Server) params(req BacktestRequest) (backtest.Params, error) {
	if err := validatePair(req.Pair); err != nil {
		return backtest.Params{}, err
	}

	if req.Timeframe == "" {
		req.Timeframe = "H1"
	}
	if err := validateTimeframe(req.Timeframe); err != nil {
		return backtest.Params{}, err
	}

	if req.ModelType == "" {
		req.ModelType = "cnn"
	}
	if _, err := s.models.Get(req.ModelType); err != nil {
		return backtest.Params{}, err
	}

	start, err := parseDate(req.StartDate, "start_date")
	if err != nil {
		return backtest.Params{}, err
	}
	end, err := parseDate(req.EndDate, "end_date")
	if err != nil {
		return backtest.Params{}, err
	}
	if !end.After(start) {
		return backtest.Params{}, fmt.Errorf("end_date must be after start_date")
	}

	p := backtest.Params{
		Pair:           req.Pair,
		Timeframe:      req.Timeframe,
		ModelType:      req.ModelType,
		Start:          start,
		End:            end,
		InitialBalance: req.InitialBalance,
		Leverage:       req.Leverage,
		RiskFactor:     req.RiskFactor,
		LotSize:        req.LotSize,
		SpreadPips:     req.SpreadPips,
	}

	if p.InitialBalance <= 0 {
		p.InitialBalance = s.defaults.InitialBalance
	}
	if p.Leverage <= 0 {
		p.Leverage = s.defaults.Leverage
	}
	if p.RiskFactor <= 0 {
		p.RiskFactor = s.defaults.RiskFactor
	}
	if p.LotSize <= 0 {
		p.LotSize = s.defaults.LotSize
	}
	if p.SpreadPips <= 0 {
		p.SpreadPips = s.defaults.SpreadPips
	}

	return p, nil
}

func (s *Server) handleRunBacktest(w http.ResponseWriter, r *http.Request) {
	var req BacktestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		setErrorResponse("runBacktest: failed to decode request", 400, err, w)
		return
	}

	p, err := s.params(req)
	if err != nil {
		setErrorResponse("runBacktest: invalid request", 400, err, w)
		return
	}

	report, err := s.runner.Run(r.Context(), p)
	if err != nil {
		setErrorResponse("runBacktest: run failed", 500, err, w)
		return
	}

	run, trades := journal.FromReport(report)
	if err := s.journal.RecordBacktest(r.Context(), run, trades); err != nil {
		setErrorResponse("runBacktest: failed to persist run", 500, err, w)
		return
	}

	setResponse(BacktestResponse{RunID: run.RunID, Report: report}, w)
}

func (s *Server) handleListBacktests(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePaging(r)
	f := journal.BacktestFilter{
		Pair:      r.URL.Query().Get("currency_pair"),
		ModelType: r.URL.Query().Get("model_type"),
		Limit:     limit,
		Offset:    offset,
	}

	runs, err := s.journal.ListBacktests(r.Context(), f)
	if err != nil {
		setErrorResponse("listBacktests: query failed", 500, err, w)
		return
	}

	setResponse(map[string]interface{}{"backtests": runs}, w)
}

func (s *Server) handleGetBacktest(w http.ResponseWriter, r *http.Request) {
	runID := mux.Vars(r)["id"]

	run, err := s.journal.GetBacktest(r.Context(), runID)
	if err != nil {
		setErrorResponse("getBacktest: not found", 404, err, w)
		return
	}

	setResponse(run, w)
}

func (s *Server) handleBacktestTrades(w http.ResponseWriter, r *http.Request) {
	runID := mux.Vars(r)["id"]

	if _, err := s.journal.GetBacktest(r.Context(), runID); err != nil {
		setErrorResponse("backtestTrades: not found", 404, err, w)
		return
	}

	trades, err := s.journal.ListTradesByRun(r.Context(), runID)
	if err != nil {
		setErrorResponse("backtestTrades: query failed", 500, err, w)
		return
	}

	setResponse(map[string]interface{}{"run_id": runID, "trades": trades}, w)
}
