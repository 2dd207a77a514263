package strategy

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanyoungcy/marketsim/internal/domain"
)

func makerTraders(balances ...float64) []domain.Trader {
	traders := make([]domain.Trader, len(balances))
	for i, b := range balances {
		traders[i] = domain.Trader{
			ID:      "trader-" + string(rune('a'+i)),
			Balance: b,
			Beliefs: map[string]float64{"market-1": 0.5},
		}
	}
	return traders
}

func TestMarketMakerQuotesAroundPrice(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	s := NewMarketMaker(MakerConfig{}, rng, testLogger())
	markets := oneMarket(0.50)

	for i := 0; i < 200; i++ {
		order, err := s.Generate(makerTraders(10_000), markets)
		require.NoError(t, err)
		require.NotNil(t, order)

		price := markets[0].PriceFor(order.Side)
		offset := math.Abs(order.Price - price)
		// Rounding to 2dp can shave the configured spread bounds by half
		// a cent either way.
		assert.GreaterOrEqual(t, offset, 0.02-0.005, "iteration %d", i)
		assert.LessOrEqual(t, offset, 0.05+0.005, "iteration %d", i)

		if order.Type == domain.OrderTypeBuy {
			assert.Less(t, order.Price, price)
		} else {
			assert.Greater(t, order.Price, price)
		}
	}
}

func TestMarketMakerPicksWellCapitalizedTrader(t *testing.T) {
	rng := rand.New(rand.NewSource(33))
	s := NewMarketMaker(MakerConfig{}, rng, testLogger())
	// Five traders; only the top three balances may make markets.
	traders := makerTraders(1_000, 9_000, 5_000, 12_000, 3_000)
	eligible := map[string]bool{"trader-b": true, "trader-c": true, "trader-d": true}

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		order, err := s.Generate(traders, oneMarket(0.50))
		require.NoError(t, err)
		require.True(t, eligible[order.TraderID], "maker %s is not in the top three", order.TraderID)
		seen[order.TraderID] = true
	}
	// Uniform pick among three over 200 draws reaches all of them.
	assert.Len(t, seen, 3)
}

func TestMarketMakerSizing(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	s := NewMarketMaker(MakerConfig{}, rng, testLogger())

	// 2% of 10k + 200 shares = 400, under the 10% cap.
	order, err := s.Generate(makerTraders(10_000), oneMarket(0.50))
	require.NoError(t, err)
	assert.Equal(t, int64(400), order.Amount)

	// 2% of 1k + 200 = 220, capped at 10% of balance = 100.
	order, err = s.Generate(makerTraders(1_000), oneMarket(0.50))
	require.NoError(t, err)
	assert.Equal(t, int64(100), order.Amount)
}

func TestMarketMakerEmptyInputs(t *testing.T) {
	s := NewMarketMaker(MakerConfig{}, rand.New(rand.NewSource(1)), testLogger())

	_, err := s.Generate(nil, oneMarket(0.50))
	assert.ErrorIs(t, err, domain.ErrNoTraders)

	_, err = s.Generate(makerTraders(10_000), nil)
	assert.ErrorIs(t, err, domain.ErrNoMarkets)
}

func TestRegistry(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	registry := NewRegistry()
	registry.Register(NewIntelligent(IntelligentConfig{}, rng, testLogger()))
	registry.Register(NewMarketMaker(MakerConfig{}, rng, testLogger()))

	assert.Equal(t, []string{"intelligent", "market_maker"}, registry.List())

	g, err := registry.Get("market_maker")
	require.NoError(t, err)
	assert.Equal(t, "market_maker", g.Name())

	_, err = registry.Get("missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
