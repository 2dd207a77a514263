package belief

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanyoungcy/marketsim/internal/domain"
)

func testMarkets(yesPrices ...float64) []domain.Market {
	markets := make([]domain.Market, len(yesPrices))
	for i, p := range yesPrices {
		markets[i] = domain.Market{
			ID:       "market-" + string(rune('a'+i)),
			YesPrice: p,
			NoPrice:  domain.Round2(1 - p),
			Active:   true,
		}
	}
	return markets
}

func TestEvolveDriftIsBoundedByConfidence(t *testing.T) {
	markets := testMarkets(0.50)
	trader := domain.Trader{
		ID:              "trader-1",
		Beliefs:         map[string]float64{markets[0].ID: 0.80},
		ConfidenceLevel: 0.9,
	}

	// Max movement per tick: 0.30*0.05*0.1 drift plus 0.01 noise = 0.0115,
	// comfortably inside the 0.015 contract bound.
	for seed := int64(0); seed < 100; seed++ {
		rng := rand.New(rand.NewSource(seed))
		evolved := Evolve(rng, []domain.Trader{trader}, markets, nil)
		moved := math.Abs(evolved[0].Beliefs[markets[0].ID] - 0.80)
		assert.LessOrEqual(t, moved, 0.015+1e-9, "seed %d", seed)
	}
}

func TestEvolveDriftsTowardMarketPrice(t *testing.T) {
	markets := testMarkets(0.20)
	trader := domain.Trader{
		ID:              "trader-1",
		Beliefs:         map[string]float64{markets[0].ID: 0.90},
		ConfidenceLevel: 0.4, // low confidence drifts fastest
	}

	rng := rand.New(rand.NewSource(1))
	current := trader
	for i := 0; i < 200; i++ {
		current = Evolve(rng, []domain.Trader{current}, markets, nil)[0]
	}

	// After many ticks the belief should have converged near the price;
	// noise keeps it wandering within a small band.
	assert.InDelta(t, 0.20, current.Beliefs[markets[0].ID], 0.15)
}

func TestEvolveClampsToBounds(t *testing.T) {
	markets := testMarkets(0.99)
	trader := domain.Trader{
		ID:              "trader-1",
		Beliefs:         map[string]float64{markets[0].ID: Max},
		ConfidenceLevel: 0.4,
	}

	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		trader = Evolve(rng, []domain.Trader{trader}, markets, nil)[0]
		b := trader.Beliefs[markets[0].ID]
		require.LessOrEqual(t, b, Max)
		require.GreaterOrEqual(t, b, Min)
	}
}

func TestEvolveDoesNotMutateInput(t *testing.T) {
	markets := testMarkets(0.30)
	traders := []domain.Trader{{
		ID:              "trader-1",
		Beliefs:         map[string]float64{markets[0].ID: 0.80},
		ConfidenceLevel: 0.5,
	}}

	rng := rand.New(rand.NewSource(5))
	evolved := Evolve(rng, traders, markets, nil)

	assert.Equal(t, 0.80, traders[0].Beliefs[markets[0].ID])
	assert.NotEqual(t, evolved[0].Beliefs[markets[0].ID], traders[0].Beliefs[markets[0].ID])
}

func TestInitialCoversEveryMarketWithinBounds(t *testing.T) {
	markets := testMarkets(0.30, 0.50, 0.70)
	rng := rand.New(rand.NewSource(9))

	for traderIdx := 0; traderIdx < 10; traderIdx++ {
		beliefs := Initial(rng, traderIdx, markets)
		require.Len(t, beliefs, len(markets))
		for _, m := range markets {
			b, ok := beliefs[m.ID]
			require.True(t, ok)
			assert.GreaterOrEqual(t, b, Min)
			assert.LessOrEqual(t, b, Max)
		}
	}
}

func TestInitialArchetypesDisagree(t *testing.T) {
	markets := testMarkets(0.50)
	rng := rand.New(rand.NewSource(13))

	// Index 0 is a strong optimist, index 1 a strong pessimist; even with
	// the per-market offset they must land on opposite sides of neutral.
	optimist := Initial(rng, 0, markets)[markets[0].ID]
	pessimist := Initial(rng, 1, markets)[markets[0].ID]

	assert.Greater(t, optimist, 0.60)
	assert.Less(t, pessimist, 0.40)
}
