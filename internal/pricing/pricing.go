// Package pricing derives market prices from the resting order book and
// builds the read-only order-book projection.
package pricing

import (
	"math"
	"sort"

	"github.com/alanyoungcy/marketsim/internal/domain"
)

const (
	// bidOnlyFactor and askOnlyFactor nudge a one-sided quote toward the
	// resting interest: slightly below the best bid, slightly above the
	// best ask.
	bidOnlyFactor = 0.95
	askOnlyFactor = 1.05

	// sumTolerance is how far YES+NO may drift from 1.00 before the
	// second normalization pass kicks in.
	sumTolerance = 0.01
)

// BuildBook projects the pending orders for a market into four
// price-sorted queues: bids descending, asks ascending. It is a pure
// filter and sort; the input is never mutated.
func BuildBook(orders []domain.Order, marketID string) domain.OrderBook {
	book := domain.OrderBook{MarketID: marketID}
	for _, o := range orders {
		if o.MarketID != marketID || !o.IsPending() {
			continue
		}
		switch {
		case o.Side == domain.SideYes && o.Type == domain.OrderTypeBuy:
			book.YesBids = append(book.YesBids, o)
		case o.Side == domain.SideYes && o.Type == domain.OrderTypeSell:
			book.YesAsks = append(book.YesAsks, o)
		case o.Side == domain.SideNo && o.Type == domain.OrderTypeBuy:
			book.NoBids = append(book.NoBids, o)
		default:
			book.NoAsks = append(book.NoAsks, o)
		}
	}
	sortBids(book.YesBids)
	sortAsks(book.YesAsks)
	sortBids(book.NoBids)
	sortAsks(book.NoAsks)
	return book
}

// UpdateMarket recomputes a market's YES and NO prices from the pending
// order book and accumulates the tick's traded volume. Each side is
// quoted independently from its spread (midpoint when both a bid and an
// ask rest, a damped one-sided quote otherwise, unchanged on an empty
// book), then the pair is renormalized so YES+NO sums to 1.00.
//
// The normalization is deliberately two-pass: divide by the raw sum,
// clamp into [0.01, 0.99], and divide again by the clamped sum when it
// still misses 1.00 by more than the tolerance. A single pass can leave
// a clamped pair summing outside the tolerance.
func UpdateMarket(market domain.Market, trades []domain.Trade, orders []domain.Order) domain.Market {
	book := BuildBook(orders, market.ID)

	yes := sideQuote(book, domain.SideYes, market.YesPrice)
	no := sideQuote(book, domain.SideNo, market.NoPrice)

	if total := yes + no; total > 0 {
		yes /= total
		no /= total
	}
	yes = domain.ClampPrice(yes)
	no = domain.ClampPrice(no)
	if total := yes + no; math.Abs(total-1.0) > sumTolerance {
		yes /= total
		no /= total
	}

	updated := market
	updated.YesPrice = domain.Round2(yes)
	updated.NoPrice = domain.Round2(no)
	for _, t := range trades {
		if t.MarketID == market.ID {
			updated.TotalVolume += t.Amount
		}
	}
	return updated
}

// sideQuote derives one side's raw price from its best bid and ask.
func sideQuote(book domain.OrderBook, side domain.Side, current float64) float64 {
	bid := book.BestBid(side)
	ask := book.BestAsk(side)
	switch {
	case bid > 0 && ask > 0:
		return (bid + ask) / 2
	case bid > 0:
		return bid * bidOnlyFactor
	case ask > 0:
		return ask * askOnlyFactor
	default:
		return current
	}
}

func sortBids(orders []domain.Order) {
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].Price > orders[j].Price })
}

func sortAsks(orders []domain.Order) {
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].Price < orders[j].Price })
}
