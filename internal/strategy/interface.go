// Package strategy contains the order-generation strategies that drive
// the simulation: belief-driven intelligent traders and a liquidity
// providing market maker. Each strategy draws all randomness from an
// injected *rand.Rand so runs can be seeded and replayed in tests.
package strategy

import (
	"github.com/alanyoungcy/marketsim/internal/domain"
)

// Generator is the contract for order-generation strategies. Generate
// inspects the current population and market state and returns at most
// one new PENDING order; a nil order with a nil error means the strategy
// chose to sit this tick out.
type Generator interface {
	Name() string
	Generate(traders []domain.Trader, markets []domain.Market) (*domain.Order, error)
}
