package domain

import "time"

// Market represents a binary-outcome prediction market. YesPrice and
// NoPrice always stay inside [0.01, 0.99] and sum to 1.00 within a 0.01
// tolerance; price discovery is the only mutator.
type Market struct {
	ID          string
	Question    string
	Description string
	EndDate     time.Time
	TotalVolume int64 // cumulative traded shares, not notional
	YesPrice    float64
	NoPrice     float64
	Active      bool
}

// PriceFor returns the market price for the given outcome side.
func (m Market) PriceFor(side Side) float64 {
	if side == SideYes {
		return m.YesPrice
	}
	return m.NoPrice
}
