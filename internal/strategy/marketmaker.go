package strategy

import (
	"log/slog"
	"math/rand"
	"sort"
	"time"

	"github.com/alanyoungcy/marketsim/internal/domain"
)

const (
	defaultMinSpread    = 0.02
	defaultMaxSpread    = 0.05
	defaultBaseFraction = 0.02
	defaultBaseShares   = 200
	defaultCapFraction  = 0.10
	makerPoolSize       = 3
)

// MakerConfig tunes the market-maker strategy. Zero values fall back to
// the defaults above via the accessor methods.
type MakerConfig struct {
	MinSpread    float64 // lower bound of the quoted half-spread
	MaxSpread    float64 // upper bound of the quoted half-spread
	BaseFraction float64 // base order size as a fraction of balance
	BaseShares   int64   // flat share count added to the base size
	CapFraction  float64 // order-size ceiling as a fraction of balance
}

func (c MakerConfig) minSpread() float64 {
	if c.MinSpread > 0 {
		return c.MinSpread
	}
	return defaultMinSpread
}

func (c MakerConfig) maxSpread() float64 {
	if c.MaxSpread > 0 {
		return c.MaxSpread
	}
	return defaultMaxSpread
}

func (c MakerConfig) baseFraction() float64 {
	if c.BaseFraction > 0 {
		return c.BaseFraction
	}
	return defaultBaseFraction
}

func (c MakerConfig) baseShares() int64 {
	if c.BaseShares > 0 {
		return c.BaseShares
	}
	return defaultBaseShares
}

func (c MakerConfig) capFraction() float64 {
	if c.CapFraction > 0 {
		return c.CapFraction
	}
	return defaultCapFraction
}

// MarketMaker posts resting orders on both sides of the current price so
// there is always depth to trade against, even when every intelligent
// trader agrees and would otherwise leave one side of the book empty.
// The maker role rotates among the best-capitalized traders.
type MarketMaker struct {
	cfg    MakerConfig
	rng    *rand.Rand
	logger *slog.Logger
}

// NewMarketMaker creates the market-maker strategy.
func NewMarketMaker(cfg MakerConfig, rng *rand.Rand, logger *slog.Logger) *MarketMaker {
	return &MarketMaker{
		cfg:    cfg,
		rng:    rng,
		logger: logger.With(slog.String("strategy", "market_maker")),
	}
}

// Name returns the strategy identifier.
func (s *MarketMaker) Name() string { return "market_maker" }

// Generate picks a maker uniformly from the three highest-balance
// traders, a random market and side, and quotes one order a random
// spread away from the current price: a bid below it or an ask above it,
// with equal probability.
func (s *MarketMaker) Generate(traders []domain.Trader, markets []domain.Market) (*domain.Order, error) {
	if len(traders) == 0 {
		return nil, domain.ErrNoTraders
	}
	if len(markets) == 0 {
		return nil, domain.ErrNoMarkets
	}

	// Rank by bankroll and pick among the top three.
	ranked := make([]domain.Trader, len(traders))
	copy(ranked, traders)
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].Balance > ranked[j].Balance })
	pool := makerPoolSize
	if len(ranked) < pool {
		pool = len(ranked)
	}
	maker := ranked[s.rng.Intn(pool)]

	market := markets[s.rng.Intn(len(markets))]
	side := domain.SideYes
	if s.rng.Float64() < 0.5 {
		side = domain.SideNo
	}

	spread := s.cfg.minSpread() + s.rng.Float64()*(s.cfg.maxSpread()-s.cfg.minSpread())
	price := market.PriceFor(side)

	orderType := domain.OrderTypeBuy
	quote := price - spread
	if s.rng.Float64() >= 0.5 {
		orderType = domain.OrderTypeSell
		quote = price + spread
	}
	quote = domain.Round2(domain.ClampPrice(quote))

	size := maker.Balance*s.cfg.baseFraction() + float64(s.cfg.baseShares())
	if cap := maker.Balance * s.cfg.capFraction(); size > cap {
		size = cap
	}
	amount := int64(size)

	order := &domain.Order{
		ID:        domain.NewID("order"),
		TraderID:  maker.ID,
		MarketID:  market.ID,
		Side:      side,
		Type:      orderType,
		Price:     quote,
		Amount:    amount,
		Status:    domain.OrderStatusPending,
		CreatedAt: time.Now().UTC(),
	}

	s.logger.Debug("maker quote generated",
		slog.String("trader", maker.ID),
		slog.String("market", market.ID),
		slog.String("side", string(side)),
		slog.String("type", string(orderType)),
		slog.Float64("spread", spread),
		slog.Float64("price", quote),
		slog.Int64("amount", amount),
	)
	return order, nil
}
