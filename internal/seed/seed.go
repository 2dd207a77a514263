// Package seed builds the initial simulation population: a fixed set of
// markets with randomized starting prices and a roster of traders with
// heterogeneous beliefs, risk appetites, and bankrolls.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/alanyoungcy/marketsim/internal/belief"
	"github.com/alanyoungcy/marketsim/internal/domain"
)

var traderNames = []string{
	"Alice", "Bob", "Charlie", "Diana", "Eve",
	"Frank", "Grace", "Henry", "Ivy", "Jack",
}

var marketQuestions = []struct {
	question    string
	description string
}{
	{
		question:    "Will Bitcoin reach $100,000 by end of 2024?",
		description: "Resolves YES if Bitcoin (BTC) reaches or exceeds $100,000 USD at any point before January 1, 2025.",
	},
	{
		question:    "Will AI achieve AGI by 2025?",
		description: "Resolves YES if a widely recognized AI system demonstrates general intelligence capabilities by December 31, 2025.",
	},
	{
		question:    "Will SpaceX land humans on Mars by 2030?",
		description: "Resolves YES if SpaceX successfully lands human astronauts on Mars before January 1, 2030.",
	},
}

var styles = []domain.TradingStyle{
	domain.StyleConservative,
	domain.StyleModerate,
	domain.StyleAggressive,
}

// Markets creates the three simulated markets. The initial YES price is
// drawn uniformly from [0.20, 0.80] and NO is its exact complement, so
// the YES+NO=1 invariant holds from the first tick.
func Markets(rng *rand.Rand) []domain.Market {
	now := time.Now().UTC()
	markets := make([]domain.Market, 0, len(marketQuestions))
	for i, q := range marketQuestions {
		yes := domain.Round2(0.20 + rng.Float64()*0.60)
		markets = append(markets, domain.Market{
			ID:          fmt.Sprintf("market-%d", i+1),
			Question:    q.question,
			Description: q.description,
			EndDate:     now.AddDate(0, 0, 30+i*10),
			TotalVolume: 50_000 + rng.Int63n(100_000),
			YesPrice:    yes,
			NoPrice:     domain.Round2(1 - yes),
			Active:      true,
		})
	}
	return markets
}

// Traders creates the ten simulated traders. Beliefs are assigned per
// market from the archetype cycle in the belief package; everything else
// besides Beliefs stays constant for the trader's lifetime.
func Traders(rng *rand.Rand, markets []domain.Market) []domain.Trader {
	traders := make([]domain.Trader, 0, len(traderNames))
	for i, name := range traderNames {
		balance := 5_000 + rng.Float64()*10_000
		risk := rng.Float64()
		traders = append(traders, domain.Trader{
			ID:              fmt.Sprintf("trader-%d", i+1),
			Name:            name,
			Balance:         balance,
			Beliefs:         belief.Initial(rng, i, markets),
			RiskTolerance:   risk,
			Style:           styles[rng.Intn(len(styles))],
			MaxOrderSize:    balance * risk,
			ConfidenceLevel: 0.4 + rng.Float64()*0.5,
		})
	}
	return traders
}
