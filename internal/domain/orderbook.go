package domain

// OrderBook is a derived, read-only projection of the pending orders for a
// single market: four price-sorted queues, bids descending and asks
// ascending. It has no lifecycle of its own and is recomputed on demand.
type OrderBook struct {
	MarketID string
	YesBids  []Order
	YesAsks  []Order
	NoBids   []Order
	NoAsks   []Order
}

// BestBid returns the highest pending bid price for a side, or 0 when the
// bid queue is empty.
func (b OrderBook) BestBid(side Side) float64 {
	bids := b.YesBids
	if side == SideNo {
		bids = b.NoBids
	}
	if len(bids) == 0 {
		return 0
	}
	return bids[0].Price
}

// BestAsk returns the lowest pending ask price for a side, or 0 when the
// ask queue is empty.
func (b OrderBook) BestAsk(side Side) float64 {
	asks := b.YesAsks
	if side == SideNo {
		asks = b.NoAsks
	}
	if len(asks) == 0 {
		return 0
	}
	return asks[0].Price
}
