package signal

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/fxsim/sim"
)

// fakePredictor returns a fixed prediction or error.
type fakePredictor struct {
	pred Prediction
	err  error
}

func (f fakePredictor) Predict(_ context.Context, _, _, _ string, _ []float64) (Prediction, error) {
	return f.pred, f.err
}

func gen(change, confidence float64) *Generator {
	return NewGenerator(fakePredictor{pred: Prediction{
		PriceChange: change,
		Confidence:  confidence,
	}})
}

func TestGenerateBuy(t *testing.T) {
	s := gen(0.005, 0.8).Generate(context.Background(), "cnn", "EURUSD", "H1", nil)
	require.NotNil(t, s)
	assert.Equal(t, sim.Buy, s.Direction)
	assert.Equal(t, 0.005, s.Magnitude)
	assert.Equal(t, 0.8, s.Confidence)
}

func TestGenerateSell(t *testing.T) {
	s := gen(-0.004, 0.7).Generate(context.Background(), "rnn", "USDJPY", "H1", nil)
	require.NotNil(t, s)
	assert.Equal(t, sim.Sell, s.Direction)
	assert.Equal(t, 0.004, s.Magnitude)
}

func TestLowConfidenceNeverSignals(t *testing.T) {
	// 0.55 is below the 0.6 threshold regardless of magnitude.
	assert.Nil(t, gen(0.5, 0.55).Generate(context.Background(), "cnn", "EURUSD", "H1", nil))
	assert.Nil(t, gen(-0.5, 0.55).Generate(context.Background(), "cnn", "EURUSD", "H1", nil))
}

func TestDeadZone(t *testing.T) {
	assert.Nil(t, gen(0.0005, 0.9).Generate(context.Background(), "cnn", "EURUSD", "H1", nil))
	assert.Nil(t, gen(-0.0005, 0.9).Generate(context.Background(), "cnn", "EURUSD", "H1", nil))
	assert.Nil(t, gen(0, 0.9).Generate(context.Background(), "cnn", "EURUSD", "H1", nil))
}

func TestPredictorErrorIsNoSignal(t *testing.T) {
	g := NewGenerator(fakePredictor{err: errors.New("model not loaded")})
	assert.Nil(t, g.Generate(context.Background(), "cnn", "EURUSD", "H1", nil))
}
