// Package models provides the forecast model registry. The models here
// are deterministic-seedable mock stand-ins with the metadata shape of
// the real networks; the registry satisfies signal.Predictor so the
// simulator never knows the difference.
package models

import "math/rand"

// Model is one forecasting model. Predict returns the next-price
// estimate for a window of close prices. Mock models draw their
// variation from the supplied rng so callers control determinism.
type Model interface {
	ID() string
	Version() string
	Description() string
	InputShape() []int
	Predict(window []float64, rng *rand.Rand) float64
}

// Info is the API-facing description of a registered model.
type Info struct {
	ModelID             string   `json:"model_id"`
	ModelType           string   `json:"model_type"`
	Version             string   `json:"version"`
	Description         string   `json:"description"`
	InputShape          []int    `json:"input_shape"`
	SupportedPairs      []string `json:"supported_pairs"`
	SupportedTimeframes []string `json:"supported_timeframes"`
}

func lastValue(window []float64) float64 {
	if len(window) == 0 {
		return 0
	}
	return window[len(window)-1]
}
