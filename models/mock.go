package models

import "math/rand"

// The three mock architectures differ only in metadata and in how far
// their forecasts stray from the last observed price.

type cnnModel struct{}

func (cnnModel) ID() string          { return "cnn" }
func (cnnModel) Version() string     { return "1.0.0" }
func (cnnModel) Description() string { return "Convolutional network for forex price prediction" }
func (cnnModel) InputShape() []int   { return []int{28, 28, 1} }

func (cnnModel) Predict(window []float64, rng *rand.Rand) float64 {
	return forecast(window, rng, 0.005)
}

type rnnModel struct{}

func (rnnModel) ID() string          { return "rnn" }
func (rnnModel) Version() string     { return "1.0.0" }
func (rnnModel) Description() string { return "LSTM recurrent network for forex price prediction" }
func (rnnModel) InputShape() []int   { return []int{28, 28} }

func (rnnModel) Predict(window []float64, rng *rand.Rand) float64 {
	return forecast(window, rng, 0.002)
}

type tcnModel struct{}

func (tcnModel) ID() string          { return "tcn" }
func (tcnModel) Version() string     { return "1.0.0" }
func (tcnModel) Description() string { return "Temporal convolutional network for forex price prediction" }
func (tcnModel) InputShape() []int   { return []int{784, 1} }

func (tcnModel) Predict(window []float64, rng *rand.Rand) float64 {
	return forecast(window, rng, 0.003)
}

// forecast perturbs the last window value by a uniform fractional
// change in (-spread, +spread).
func forecast(window []float64, rng *rand.Rand, spread float64) float64 {
	last := lastValue(window)
	change := (rng.Float64()*2 - 1) * spread
	return last * (1 + change)
}
