package domain

import (
	"fmt"
	"time"
)

// Side is the market outcome an order trades on.
type Side string

const (
	SideYes Side = "YES"
	SideNo  Side = "NO"
)

// OrderType indicates whether this is a buy or sell.
type OrderType string

const (
	OrderTypeBuy  OrderType = "BUY"
	OrderTypeSell OrderType = "SELL"
)

// OrderStatus tracks the order lifecycle. A PENDING order transitions to
// FILLED when its remaining amount reaches zero during matching, or to
// CANCELLED externally; both are terminal.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusFilled    OrderStatus = "FILLED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Order represents a resting limit order in the simulated order pool.
// Amount is the remaining unfilled quantity in shares; it only ever
// decreases, and the matching engine is its sole mutator.
type Order struct {
	ID        string
	TraderID  string
	MarketID  string
	Side      Side
	Type      OrderType
	Price     float64 // clamped to [0.01, 0.99]
	Amount    int64   // remaining shares, non-negative
	Status    OrderStatus
	CreatedAt time.Time
}

// IsPending reports whether the order can still participate in matching.
func (o Order) IsPending() bool {
	return o.Status == OrderStatusPending
}

// Validate checks the order fields against the pool's invariants.
func (o Order) Validate() error {
	if o.TraderID == "" || o.MarketID == "" {
		return fmt.Errorf("%w: missing trader or market id", ErrInvalidOrder)
	}
	if o.Side != SideYes && o.Side != SideNo {
		return fmt.Errorf("%w: side %q", ErrInvalidOrder, o.Side)
	}
	if o.Type != OrderTypeBuy && o.Type != OrderTypeSell {
		return fmt.Errorf("%w: type %q", ErrInvalidOrder, o.Type)
	}
	if o.Price < PriceMin || o.Price > PriceMax {
		return fmt.Errorf("%w: price %.2f outside [%.2f, %.2f]", ErrInvalidOrder, o.Price, PriceMin, PriceMax)
	}
	if o.Amount <= 0 {
		return fmt.Errorf("%w: amount %d", ErrInvalidOrder, o.Amount)
	}
	return nil
}
