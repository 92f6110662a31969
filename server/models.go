package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/rustyeddy/fxsim/internal/id"
	"github.com/rustyeddy/fxsim/journal"
)

func (s *Server) handleListModels(w http.ResponseWriter, r *http.Request) {
	setResponse(map[string]interface{}{"models": s.models.List()}, w)
}

func (s *Server) handleGetModel(w http.ResponseWriter, r *http.Request) {
	modelID := mux.Vars(r)["id"]

	info, err := s.models.Get(modelID)
	if err != nil {
		setErrorResponse("getModel: not found", 404, err, w)
		return
	}

	setResponse(info, w)
}

// PredictionRequest is the POST /api/predictions body.
type PredictionRequest struct {
	Pair      string `json:"currency_pair"`
	Timeframe string `json:"timeframe"`
	ModelType string `json:"model_type"`
}

func (s *Server) handleCreatePrediction(w http.ResponseWriter, r *http.Request) {
	var req PredictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		setErrorResponse("createPrediction: failed to decode request", 400, err, w)
		return
	}

	if err := validatePair(req.Pair); err != nil {
		setErrorResponse("createPrediction: invalid request", 400, err, w)
		return
	}
	if req.Timeframe == "" {
		req.Timeframe = "H1"
	}
	if err := validateTimeframe(req.Timeframe); err != nil {
		setErrorResponse("createPrediction: invalid request", 400, err, w)
		return
	}
	if req.ModelType == "" {
		req.ModelType = "cnn"
	}

	pred, err := s.models.Predict(r.Context(), req.ModelType, req.Pair, req.Timeframe, nil)
	if err != nil {
		setErrorResponse("createPrediction: predict failed", 400, err, w)
		return
	}

	rec := journal.PredictionRecord{
		PredictionID:   id.New(),
		Pair:           req.Pair,
		Timeframe:      req.Timeframe,
		ModelType:      req.ModelType,
		PredictedPrice: pred.PredictedPrice,
		PriceChange:    pred.PriceChange,
		Confidence:     pred.Confidence,
		ModelVersion:   pred.ModelVersion,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.journal.RecordPrediction(r.Context(), rec); err != nil {
		setErrorResponse("createPrediction: failed to persist", 500, err, w)
		return
	}

	setResponse(rec, w)
}

func (s *Server) handleListPredictions(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePaging(r)
	f := journal.PredictionFilter{
		Pair:      r.URL.Query().Get("currency_pair"),
		ModelType: r.URL.Query().Get("model_type"),
		Limit:     limit,
		Offset:    offset,
	}

	preds, err := s.journal.ListPredictions(r.Context(), f)
	if err != nil {
		setErrorResponse("listPredictions: query failed", 500, err, w)
		return
	}

	setResponse(map[string]interface{}{"predictions": preds}, w)
}
