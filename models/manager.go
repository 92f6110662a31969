package models

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/rustyeddy/fxsim/market"
	"github.com/rustyeddy/fxsim/signal"
)

// Manager is the model registry. It is an explicitly constructed
// collaborator: build one and pass it where a signal.Predictor is
// needed. No process-wide registry exists.
type Manager struct {
	mu     sync.Mutex
	models map[string]Model
	rng    *rand.Rand
}

var _ signal.Predictor = (*Manager)(nil)

// NewManager registers the built-in mock models with entropy drawn
// from the current time.
func NewManager() *Manager {
	return NewManagerSeeded(time.Now().UnixNano())
}

// NewManagerSeeded registers the built-in mock models with a fixed
// seed, giving fully reproducible forecasts. Used by tests and
// deterministic backtests.
func NewManagerSeeded(seed int64) *Manager {
	m := &Manager{
		models: make(map[string]Model),
		rng:    rand.New(rand.NewSource(seed)),
	}
	for _, mdl := range []Model{cnnModel{}, rnnModel{}, tcnModel{}} {
		m.models[mdl.ID()] = mdl
	}
	return m
}

// Predict generates a forecast with the named model. The lookback is a
// window of close prices; when empty, a synthetic window is derived
// from the pair's base price so one-shot API predictions still work.
func (m *Manager) Predict(ctx context.Context, modelType, pair, timeframe string, lookback []float64) (signal.Prediction, error) {
	_ = ctx

	m.mu.Lock()
	defer m.mu.Unlock()

	mdl, ok := m.models[modelType]
	if !ok {
		return signal.Prediction{}, fmt.Errorf("models: unknown model type %q", modelType)
	}

	window := lookback
	if len(window) == 0 {
		window = syntheticWindow(pair, timeframe)
	}

	last := window[len(window)-1]
	predicted := mdl.Predict(window, m.rng)

	change := 0.0
	if last != 0 {
		change = (predicted - last) / last
	}

	// Confidence clamp around 0.75, mirroring the mock inference stack.
	confidence := 0.75 + (m.rng.Float64()*0.2 - 0.1)
	if confidence > 0.95 {
		confidence = 0.95
	}
	if confidence < 0.5 {
		confidence = 0.5
	}

	return signal.Prediction{
		PredictedPrice: predicted,
		PriceChange:    change,
		Confidence:     confidence,
		ModelVersion:   mdl.Version(),
		LastPrice:      last,
	}, nil
}

// List returns Info for every registered model, sorted by ID.
func (m *Manager) List() []Info {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Info, 0, len(m.models))
	for _, mdl := range m.models {
		out = append(out, info(mdl))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ModelID < out[j].ModelID })
	return out
}

// Get returns Info for one model.
func (m *Manager) Get(modelID string) (Info, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	mdl, ok := m.models[modelID]
	if !ok {
		return Info{}, fmt.Errorf("models: unknown model %q", modelID)
	}
	return info(mdl), nil
}

func info(mdl Model) Info {
	return Info{
		ModelID:             mdl.ID(),
		ModelType:           mdl.ID(),
		Version:             mdl.Version(),
		Description:         mdl.Description(),
		InputShape:          mdl.InputShape(),
		SupportedPairs:      market.Pairs(),
		SupportedTimeframes: market.Timeframes(),
	}
}

// syntheticWindow builds a 28-close random-walk window around the
// pair's base price, seeded from pair and timeframe.
func syntheticWindow(pair, timeframe string) []float64 {
	const periods = 28

	h := fnv.New64a()
	h.Write([]byte(pair))
	h.Write([]byte(timeframe))

	rng := rand.New(rand.NewSource(int64(h.Sum64() & math.MaxInt64)))
	price := market.BasePrice(pair)

	window := make([]float64, periods)
	for i := range window {
		price *= 1 + rng.NormFloat64()*0.001
		window[i] = price
	}
	return window
}
