// Package signal turns external model forecasts into directional order
// intents.
package signal

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/rustyeddy/fxsim/sim"
)

// Policy constants. Forecasts below the confidence threshold or inside
// the dead zone produce no signal.
const (
	ConfidenceThreshold = 0.6
	DeadZone            = 0.001
)

// Prediction is the forecast returned by an external predictor.
type Prediction struct {
	PredictedPrice float64 `json:"predicted_price"`
	PriceChange    float64 `json:"price_change"`
	Confidence     float64 `json:"confidence"`
	ModelVersion   string  `json:"model_version"`
	LastPrice      float64 `json:"last_price"`
}

// Predictor is the external signal source. Implementations may do I/O;
// the generator treats every failure as "no signal".
type Predictor interface {
	Predict(ctx context.Context, modelType, pair, timeframe string, lookback []float64) (Prediction, error)
}

// Signal is a directional order intent.
type Signal struct {
	Direction  sim.Direction
	Confidence float64
	Magnitude  float64 // |predicted fractional change|
}

// Generator wraps a Predictor and applies the confidence threshold and
// dead-zone policy.
type Generator struct {
	predictor Predictor
}

func NewGenerator(p Predictor) *Generator {
	return &Generator{predictor: p}
}

// Generate asks the predictor for a forecast and maps it to an order
// intent. Returns nil for low-confidence or dead-zone forecasts.
// Predictor errors are swallowed: a failed forecast is "no signal for
// this bar", never an aborted run.
func (g *Generator) Generate(ctx context.Context, modelType, pair, timeframe string, lookback []float64) *Signal {
	pred, err := g.predictor.Predict(ctx, modelType, pair, timeframe, lookback)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"model": modelType,
			"pair":  pair,
		}).Debug("predictor failed, no signal")
		return nil
	}

	if pred.Confidence < ConfidenceThreshold {
		return nil
	}

	switch {
	case pred.PriceChange > DeadZone:
		return &Signal{
			Direction:  sim.Buy,
			Confidence: pred.Confidence,
			Magnitude:  pred.PriceChange,
		}
	case pred.PriceChange < -DeadZone:
		return &Signal{
			Direction:  sim.Sell,
			Confidence: pred.Confidence,
			Magnitude:  -pred.PriceChange,
		}
	}

	return nil
}
