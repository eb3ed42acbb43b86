// Package rack implements the ingestion-and-derivation pipeline: parsing
// loosely structured tabular input into normalized sensor readings,
// classifying sensors into categories, and rolling readings up into rack,
// server and datacenter health metrics.
package rack

import (
	"math"
	"math/rand"
	"time"
)

// Engine derives health metrics from normalized sensor readings. All tuned
// thresholds come from the Thresholds it was built with, and all randomized
// placeholder values are drawn from its injected source so tests can pin a
// seed.
type Engine struct {
	thresholds Thresholds
	rng        *rand.Rand
}

// New creates an Engine. A nil rng gets a time-seeded source.
func New(thresholds Thresholds, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{thresholds: thresholds, rng: rng}
}

// Thresholds returns the thresholds the engine was built with.
func (e *Engine) Thresholds() Thresholds {
	return e.thresholds
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
