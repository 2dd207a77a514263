// Package engine implements the order-matching engine: it pairs
// price-compatible pending buy and sell orders per market and side into
// executed trades.
package engine

import (
	"sort"
	"time"

	"github.com/alanyoungcy/marketsim/internal/domain"
)

// Result is the outcome of one matching pass: the trades produced and
// the full order collection with fill state applied.
type Result struct {
	Trades []domain.Trade
	Orders []domain.Order
}

// bucketKey identifies one matchable queue pair: all orders for a single
// market and outcome side.
type bucketKey struct {
	marketID string
	side     domain.Side
}

type bucket struct {
	buys  []*domain.Order
	sells []*domain.Order
}

// Match runs one matching pass over the whole order pool. It takes
// ownership of the input for the duration of the call and returns a new
// order slice; the caller's slice is never mutated.
//
// Within each market/side bucket, buys are walked from the highest price
// and sells from the lowest, matching while buy.Price >= sell.Price. A
// trade executes at the midpoint of the two limit prices (rounded to two
// decimals) for the smaller of the two remaining amounts; an order whose
// amount reaches exactly zero becomes FILLED, anything else stays
// PENDING with the reduced amount. Among equally-priced orders the
// insertion order acts as the tie-break (the sorts are stable). Nothing
// prevents a trader from matching its own resting order.
func Match(orders []domain.Order) Result {
	updated := make([]domain.Order, len(orders))
	copy(updated, orders)

	// Partition the pending orders into per-(market, side) buy/sell
	// queues. Keys are tracked in first-seen order so the trade sequence
	// is deterministic for a given input ordering.
	buckets := make(map[bucketKey]*bucket)
	keys := make([]bucketKey, 0)
	for i := range updated {
		o := &updated[i]
		if !o.IsPending() {
			continue
		}
		key := bucketKey{marketID: o.MarketID, side: o.Side}
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
			keys = append(keys, key)
		}
		if o.Type == domain.OrderTypeBuy {
			b.buys = append(b.buys, o)
		} else {
			b.sells = append(b.sells, o)
		}
	}

	var trades []domain.Trade
	now := time.Now().UTC()
	for _, key := range keys {
		b := buckets[key]
		sort.SliceStable(b.buys, func(i, j int) bool { return b.buys[i].Price > b.buys[j].Price })
		sort.SliceStable(b.sells, func(i, j int) bool { return b.sells[i].Price < b.sells[j].Price })

		for _, buy := range b.buys {
			for _, sell := range b.sells {
				if !buy.IsPending() {
					break
				}
				if !sell.IsPending() {
					continue
				}
				// Sells are ascending: once the cheapest remaining ask is
				// above the bid, no later ask can cross.
				if buy.Price < sell.Price {
					break
				}

				amount := buy.Amount
				if sell.Amount < amount {
					amount = sell.Amount
				}
				if amount <= 0 {
					continue
				}

				trades = append(trades, domain.Trade{
					ID:        domain.NewID("trade"),
					MarketID:  key.marketID,
					BuyerID:   buy.TraderID,
					SellerID:  sell.TraderID,
					Side:      key.side,
					Price:     domain.Round2((buy.Price + sell.Price) / 2),
					Amount:    amount,
					Timestamp: now,
				})

				buy.Amount -= amount
				sell.Amount -= amount
				if buy.Amount == 0 {
					buy.Status = domain.OrderStatusFilled
				}
				if sell.Amount == 0 {
					sell.Status = domain.OrderStatusFilled
				}
			}
		}
	}

	return Result{Trades: trades, Orders: updated}
}
