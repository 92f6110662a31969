// Package server exposes the simulator over HTTP: backtests, models,
// predictions, indicators and the journal query surface.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/rustyeddy/fxsim/backtest"
	"github.com/rustyeddy/fxsim/config"
	"github.com/rustyeddy/fxsim/journal"
	"github.com/rustyeddy/fxsim/models"
)

type Server struct {
	journal  journal.Journal
	models   *models.Manager
	runner   *backtest.Runner
	defaults config.SimulationConfig
	router   *mux.Router
}

func New(j journal.Journal, m *models.Manager, defaults config.SimulationConfig) *Server {
	s := &Server{
		journal:  j,
		models:   m,
		runner:   backtest.NewRunner(m),
		defaults: defaults,
		router:   mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/backtest", s.handleRunBacktest).Methods("POST")
	api.HandleFunc("/backtest", s.handleListBacktests).Methods("GET")
	api.HandleFunc("/backtest/{id}", s.handleGetBacktest).Methods("GET")
	api.HandleFunc("/backtest/{id}/trades", s.handleBacktestTrades).Methods("GET")

	api.HandleFunc("/models", s.handleListModels).Methods("GET")
	api.HandleFunc("/models/{id}", s.handleGetModel).Methods("GET")

	api.HandleFunc("/predictions", s.handleCreatePrediction).Methods("POST")
	api.HandleFunc("/predictions", s.handleListPredictions).Methods("GET")

	api.HandleFunc("/indicators", s.handleListIndicators).Methods("GET")
	api.HandleFunc("/indicators/{pair}", s.handleIndicatorSeries).Methods("GET")

	api.HandleFunc("/trades", s.handleListTrades).Methods("GET")
	api.HandleFunc("/trades/summary/by-pair", s.handleTradeSummary).Methods("GET")
	api.HandleFunc("/trades/{id}", s.handleGetTrade).Methods("GET")

	api.HandleFunc("/metrics", s.handleMetrics).Methods("GET")
	api.HandleFunc("/metrics/summary", s.handleMetricsSummary).Methods("GET")

	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
}

// Handler returns the configured route tree, ready to serve.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	log.WithField("addr", addr).Info("http server listening")
	return srv.ListenAndServe()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	setResponse(map[string]string{"status": "ok"}, w)
}

type errorResponse struct {
	Type string `json:"type"`
	Msg  string `json:"message"`
}

func setResponse(response interface{}, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.WithError(err).Warn("encode response")
		return err
	}
	return nil
}

func setErrorResponse(errType string, statusCode int, err error, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := errorResponse{Type: errType, Msg: err.Error()}
	if encodeErr := json.NewEncoder(w).Encode(resp); encodeErr != nil {
		log.WithError(encodeErr).Warn("encode error response")
	}
}
