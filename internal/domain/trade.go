package domain

import "time"

// Trade is a single execution produced by the matching engine. Price is the
// midpoint of the matched buy and sell prices rounded to two decimals.
// Trades are immutable once created.
type Trade struct {
	ID        string
	MarketID  string
	BuyerID   string
	SellerID  string
	Side      Side
	Price     float64
	Amount    int64
	Timestamp time.Time
}
