package engine

import (
	"fmt"
	"math/rand"
	"testing"
	"testing/quick"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanyoungcy/marketsim/internal/domain"
)

func pendingOrder(id string, side domain.Side, typ domain.OrderType, price float64, amount int64) domain.Order {
	return domain.Order{
		ID:        id,
		TraderID:  "trader-" + id,
		MarketID:  "market-1",
		Side:      side,
		Type:      typ,
		Price:     price,
		Amount:    amount,
		Status:    domain.OrderStatusPending,
		CreatedAt: time.Now().UTC(),
	}
}

func TestMatchCrossedOrders(t *testing.T) {
	orders := []domain.Order{
		pendingOrder("buy", domain.SideYes, domain.OrderTypeBuy, 0.60, 500),
		pendingOrder("sell", domain.SideYes, domain.OrderTypeSell, 0.50, 300),
	}

	result := Match(orders)

	require.Len(t, result.Trades, 1)
	trade := result.Trades[0]
	assert.Equal(t, 0.55, trade.Price)
	assert.Equal(t, int64(300), trade.Amount)
	assert.Equal(t, domain.SideYes, trade.Side)
	assert.Equal(t, "trader-buy", trade.BuyerID)
	assert.Equal(t, "trader-sell", trade.SellerID)

	require.Len(t, result.Orders, 2)
	buy, sell := result.Orders[0], result.Orders[1]
	assert.Equal(t, domain.OrderStatusPending, buy.Status)
	assert.Equal(t, int64(200), buy.Amount)
	assert.Equal(t, domain.OrderStatusFilled, sell.Status)
	assert.Equal(t, int64(0), sell.Amount)
}

func TestMatchNoCross(t *testing.T) {
	orders := []domain.Order{
		pendingOrder("buy", domain.SideYes, domain.OrderTypeBuy, 0.40, 500),
		pendingOrder("sell", domain.SideYes, domain.OrderTypeSell, 0.50, 300),
	}

	result := Match(orders)

	assert.Empty(t, result.Trades)
	for _, o := range result.Orders {
		assert.Equal(t, domain.OrderStatusPending, o.Status)
	}
}

func TestMatchSidesAreIndependent(t *testing.T) {
	// A YES buy must never match a NO sell, however attractive the prices.
	orders := []domain.Order{
		pendingOrder("buy", domain.SideYes, domain.OrderTypeBuy, 0.90, 500),
		pendingOrder("sell", domain.SideNo, domain.OrderTypeSell, 0.10, 500),
	}

	result := Match(orders)
	assert.Empty(t, result.Trades)
}

func TestMatchPricePriority(t *testing.T) {
	// The cheapest ask fills first.
	orders := []domain.Order{
		pendingOrder("sell-high", domain.SideYes, domain.OrderTypeSell, 0.50, 300),
		pendingOrder("sell-low", domain.SideYes, domain.OrderTypeSell, 0.45, 300),
		pendingOrder("buy", domain.SideYes, domain.OrderTypeBuy, 0.55, 300),
	}

	result := Match(orders)

	require.Len(t, result.Trades, 1)
	assert.Equal(t, "trader-sell-low", result.Trades[0].SellerID)
	assert.Equal(t, 0.50, result.Trades[0].Price)
}

func TestMatchPartialFillAcrossSells(t *testing.T) {
	orders := []domain.Order{
		pendingOrder("buy", domain.SideYes, domain.OrderTypeBuy, 0.60, 500),
		pendingOrder("sell-a", domain.SideYes, domain.OrderTypeSell, 0.40, 200),
		pendingOrder("sell-b", domain.SideYes, domain.OrderTypeSell, 0.50, 200),
	}

	result := Match(orders)

	require.Len(t, result.Trades, 2)
	assert.Equal(t, int64(200), result.Trades[0].Amount)
	assert.Equal(t, int64(200), result.Trades[1].Amount)

	buy := result.Orders[0]
	assert.Equal(t, domain.OrderStatusPending, buy.Status)
	assert.Equal(t, int64(100), buy.Amount)
	assert.Equal(t, domain.OrderStatusFilled, result.Orders[1].Status)
	assert.Equal(t, domain.OrderStatusFilled, result.Orders[2].Status)
}

func TestMatchDoesNotMutateInput(t *testing.T) {
	orders := []domain.Order{
		pendingOrder("buy", domain.SideYes, domain.OrderTypeBuy, 0.60, 500),
		pendingOrder("sell", domain.SideYes, domain.OrderTypeSell, 0.50, 300),
	}
	before := make([]domain.Order, len(orders))
	copy(before, orders)

	Match(orders)

	assert.Equal(t, before, orders)
}

func TestMatchSkipsTerminalOrders(t *testing.T) {
	filled := pendingOrder("sell", domain.SideYes, domain.OrderTypeSell, 0.50, 0)
	filled.Status = domain.OrderStatusFilled
	cancelled := pendingOrder("sell-2", domain.SideYes, domain.OrderTypeSell, 0.50, 300)
	cancelled.Status = domain.OrderStatusCancelled
	orders := []domain.Order{
		pendingOrder("buy", domain.SideYes, domain.OrderTypeBuy, 0.60, 500),
		filled,
		cancelled,
	}

	result := Match(orders)
	assert.Empty(t, result.Trades)
}

// randomPool builds a pool of pending orders across two markets and both
// sides from a seeded source, so quick.Check failures are replayable.
func randomPool(rng *rand.Rand) []domain.Order {
	n := 5 + rng.Intn(40)
	orders := make([]domain.Order, 0, n)
	for i := 0; i < n; i++ {
		side := domain.SideYes
		if rng.Intn(2) == 0 {
			side = domain.SideNo
		}
		typ := domain.OrderTypeBuy
		if rng.Intn(2) == 0 {
			typ = domain.OrderTypeSell
		}
		o := pendingOrder(fmt.Sprintf("o%d", i), side, typ, domain.Round2(0.01+rng.Float64()*0.98), 1+rng.Int63n(1000))
		o.MarketID = fmt.Sprintf("market-%d", 1+rng.Intn(2))
		orders = append(orders, o)
	}
	return orders
}

func TestMatchConservationProperty(t *testing.T) {
	property := func(seed int64) bool {
		rng := rand.New(rand.NewSource(seed))
		orders := randomPool(rng)
		result := Match(orders)

		originals := make(map[string]domain.Order, len(orders))
		for _, o := range orders {
			originals[o.ID] = o
		}

		// Per (market, side): shares bought == shares sold == shares traded.
		type key struct {
			market string
			side   domain.Side
		}
		bought := make(map[key]int64)
		sold := make(map[key]int64)
		traded := make(map[key]int64)

		for _, o := range result.Orders {
			orig := originals[o.ID]
			if o.Amount < 0 || o.Amount > orig.Amount {
				return false
			}
			// PENDING with zero remaining, or FILLED with shares left,
			// would both break the state machine.
			if (o.Amount == 0) != (o.Status == domain.OrderStatusFilled) {
				return false
			}
			k := key{o.MarketID, o.Side}
			if o.Type == domain.OrderTypeBuy {
				bought[k] += orig.Amount - o.Amount
			} else {
				sold[k] += orig.Amount - o.Amount
			}
		}
		for _, trade := range result.Trades {
			if trade.Amount <= 0 {
				return false
			}
			if trade.Price < domain.PriceMin || trade.Price > domain.PriceMax {
				return false
			}
			traded[key{trade.MarketID, trade.Side}] += trade.Amount
		}
		for k, amt := range traded {
			if bought[k] != amt || sold[k] != amt {
				return false
			}
		}
		return true
	}

	if err := quick.Check(property, &quick.Config{MaxCount: 200}); err != nil {
		t.Fatal(err)
	}
}
