package models

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerRegistersBuiltins(t *testing.T) {
	m := NewManagerSeeded(1)

	infos := m.List()
	require.Len(t, infos, 3)
	assert.Equal(t, "cnn", infos[0].ModelID)
	assert.Equal(t, "rnn", infos[1].ModelID)
	assert.Equal(t, "tcn", infos[2].ModelID)

	for _, info := range infos {
		assert.NotEmpty(t, info.Version)
		assert.NotEmpty(t, info.SupportedPairs)
		assert.NotEmpty(t, info.SupportedTimeframes)
	}
}

func TestManagerGetUnknown(t *testing.T) {
	m := NewManagerSeeded(1)

	_, err := m.Get("gru")
	assert.Error(t, err)
}

func TestPredictUnknownModel(t *testing.T) {
	m := NewManagerSeeded(1)

	_, err := m.Predict(context.Background(), "gru", "EURUSD", "H1", nil)
	assert.Error(t, err)
}

func TestPredictWithLookback(t *testing.T) {
	m := NewManagerSeeded(42)

	lookback := []float64{1.10, 1.101, 1.102, 1.103}
	pred, err := m.Predict(context.Background(), "cnn", "EURUSD", "H1", lookback)
	require.NoError(t, err)

	assert.Equal(t, 1.103, pred.LastPrice)
	assert.InDelta(t, 0, pred.PriceChange, 0.005+1e-9)
	assert.GreaterOrEqual(t, pred.Confidence, 0.5)
	assert.LessOrEqual(t, pred.Confidence, 0.95)
	assert.Equal(t, "1.0.0", pred.ModelVersion)
}

func TestPredictEmptyLookbackSynthesizesWindow(t *testing.T) {
	m := NewManagerSeeded(42)

	pred, err := m.Predict(context.Background(), "tcn", "USDJPY", "H1", nil)
	require.NoError(t, err)

	// Synthetic window orbits the pair base price.
	assert.InDelta(t, 149.50, pred.LastPrice, 149.50*0.1)
	assert.NotZero(t, pred.PredictedPrice)
}

func TestPredictDeterministicWithSeed(t *testing.T) {
	lookback := []float64{1.10, 1.11, 1.12}

	a, err := NewManagerSeeded(7).Predict(context.Background(), "rnn", "EURUSD", "H1", lookback)
	require.NoError(t, err)
	b, err := NewManagerSeeded(7).Predict(context.Background(), "rnn", "EURUSD", "H1", lookback)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}
