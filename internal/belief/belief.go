// Package belief implements the trader belief model: archetype-based
// initial belief assignment and the per-tick drift of beliefs toward
// market consensus.
package belief

import (
	"math"
	"math/rand"

	"github.com/alanyoungcy/marketsim/internal/domain"
)

const (
	// Min and Max bound every belief a trader can hold.
	Min = 0.05
	Max = 0.95

	// driftRate controls how fast beliefs converge on the market price.
	driftRate = 0.05
	// noiseAmplitude is the half-width of the uniform noise added on top
	// of the consensus drift each tick.
	noiseAmplitude = 0.01
)

// archetype is a starting-belief range. Traders cycle through the five
// archetypes by index so the population is guaranteed to disagree, which
// gives the intelligent strategy a material edge to trade on.
type archetype struct {
	low, high float64
}

var archetypes = []archetype{
	{0.75, 0.95}, // strong optimist
	{0.05, 0.25}, // strong pessimist
	{0.55, 0.75}, // moderate optimist
	{0.25, 0.45}, // moderate pessimist
	{0.45, 0.55}, // neutral
}

// Initial assigns a belief for every market to the trader at position
// traderIdx. The archetype fixes the base range; a bounded per-market
// offset derived from the two indices spreads traders of the same
// archetype apart across markets.
func Initial(rng *rand.Rand, traderIdx int, markets []domain.Market) map[string]float64 {
	arch := archetypes[traderIdx%len(archetypes)]
	beliefs := make(map[string]float64, len(markets))
	for marketIdx, m := range markets {
		base := arch.low + rng.Float64()*(arch.high-arch.low)
		offset := 0.08 * math.Sin(float64(traderIdx*7+marketIdx*13))
		beliefs[m.ID] = Clamp(base + offset)
	}
	return beliefs
}

// Evolve drifts every trader's beliefs toward the current market prices
// and returns a new trader slice; the inputs are left untouched. Each
// belief moves by (price-belief)*driftRate*(1-confidence) plus uniform
// noise in [-noiseAmplitude, +noiseAmplitude], clamped to [Min, Max].
// High-confidence traders drift less.
//
// The trades argument is accepted for future belief updates keyed off
// realized executions; the current model ignores it.
func Evolve(rng *rand.Rand, traders []domain.Trader, markets []domain.Market, trades []domain.Trade) []domain.Trader {
	_ = trades

	out := make([]domain.Trader, len(traders))
	for i, t := range traders {
		next := t
		next.Beliefs = make(map[string]float64, len(t.Beliefs))
		for id, b := range t.Beliefs {
			next.Beliefs[id] = b
		}
		for _, m := range markets {
			current := next.BeliefFor(m.ID)
			adjustment := (m.YesPrice - current) * driftRate * (1 - t.ConfidenceLevel)
			noise := (rng.Float64()*2 - 1) * noiseAmplitude
			next.Beliefs[m.ID] = Clamp(current + adjustment + noise)
		}
		out[i] = next
	}
	return out
}

// Clamp bounds a belief to [Min, Max].
func Clamp(b float64) float64 {
	return math.Max(Min, math.Min(Max, b))
}
