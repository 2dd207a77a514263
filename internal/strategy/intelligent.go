package strategy

import (
	"log/slog"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/alanyoungcy/marketsim/internal/domain"
)

const (
	defaultMinEdge       = 0.02
	defaultBuyInterp     = 0.7
	defaultSellInterp    = 0.3
	defaultMinOrderSize  = 100
	defaultBalanceCap    = 0.5
	defaultEdgeSizeScale = 2.0
)

// IntelligentConfig tunes the intelligent-trader strategy. Zero values
// fall back to the defaults above via the accessor methods.
type IntelligentConfig struct {
	MinEdge       float64 // minimum exploitable |edge| before acting
	BuyInterp     float64 // interpolation toward max willingness to pay
	SellInterp    float64 // interpolation toward the trader's implied value
	MinOrderSize  int64   // order-size floor in shares
	BalanceCap    float64 // order-size ceiling as a fraction of balance
	EdgeSizeScale float64 // multiplier applied to |edge| when sizing
}

func (c IntelligentConfig) minEdge() float64 {
	if c.MinEdge > 0 {
		return c.MinEdge
	}
	return defaultMinEdge
}

func (c IntelligentConfig) buyInterp() float64 {
	if c.BuyInterp > 0 {
		return c.BuyInterp
	}
	return defaultBuyInterp
}

func (c IntelligentConfig) sellInterp() float64 {
	if c.SellInterp > 0 {
		return c.SellInterp
	}
	return defaultSellInterp
}

func (c IntelligentConfig) minOrderSize() int64 {
	if c.MinOrderSize > 0 {
		return c.MinOrderSize
	}
	return defaultMinOrderSize
}

func (c IntelligentConfig) balanceCap() float64 {
	if c.BalanceCap > 0 {
		return c.BalanceCap
	}
	return defaultBalanceCap
}

func (c IntelligentConfig) edgeSizeScale() float64 {
	if c.EdgeSizeScale > 0 {
		return c.EdgeSizeScale
	}
	return defaultEdgeSizeScale
}

// opportunity is one market/side pair where a trader's belief disagrees
// with the quoted price.
type opportunity struct {
	market domain.Market
	side   domain.Side
	value  float64 // the larger of the YES and NO edges
}

// Intelligent emits orders for a randomly chosen trader wherever that
// trader's belief diverges from the quoted price by more than the minimum
// edge. The trader buys when it thinks a side is underpriced and sells
// when overpriced, with price and size scaled by confidence, risk
// tolerance, and trading style.
type Intelligent struct {
	cfg    IntelligentConfig
	rng    *rand.Rand
	logger *slog.Logger
}

// NewIntelligent creates the intelligent-trader strategy.
func NewIntelligent(cfg IntelligentConfig, rng *rand.Rand, logger *slog.Logger) *Intelligent {
	return &Intelligent{
		cfg:    cfg,
		rng:    rng,
		logger: logger.With(slog.String("strategy", "intelligent")),
	}
}

// Name returns the strategy identifier.
func (s *Intelligent) Name() string { return "intelligent" }

// Generate picks one trader uniformly at random, scans every market for
// an exploitable edge, and emits an order targeting the best one. It
// returns (nil, nil) when no edge clears the threshold or the trader
// randomly sits the tick out (low risk tolerance sits out more often).
func (s *Intelligent) Generate(traders []domain.Trader, markets []domain.Market) (*domain.Order, error) {
	if len(traders) == 0 {
		return nil, domain.ErrNoTraders
	}
	if len(markets) == 0 {
		return nil, domain.ErrNoMarkets
	}

	trader := traders[s.rng.Intn(len(traders))]

	// Collect every market/side where the trader sees enough edge.
	opps := make([]opportunity, 0, len(markets))
	for _, m := range markets {
		b := trader.BeliefFor(m.ID)
		yesEdge := b - m.YesPrice
		noEdge := (1 - b) - m.NoPrice

		opp := opportunity{market: m, side: domain.SideYes, value: yesEdge}
		if noEdge > yesEdge {
			opp.side = domain.SideNo
			opp.value = noEdge
		}
		if math.Abs(opp.value) > s.cfg.minEdge() {
			opps = append(opps, opp)
		}
	}
	if len(opps) == 0 {
		return nil, nil
	}

	// Risk-scaled participation: even with an edge on the table, timid
	// traders frequently stay flat.
	participation := trader.RiskTolerance*0.8 + 0.2
	if s.rng.Float64() > participation {
		return nil, nil
	}

	// Strongest conviction first.
	sort.Slice(opps, func(i, j int) bool {
		return math.Abs(opps[i].value)*trader.ConfidenceLevel > math.Abs(opps[j].value)*trader.ConfidenceLevel
	})
	best := opps[0]

	implied := trader.ImpliedProbability(best.market.ID, best.side)
	marketPrice := best.market.PriceFor(best.side)

	var orderType domain.OrderType
	var target float64
	if implied > marketPrice {
		// Underpriced: buy toward the max willingness to pay, which is
		// itself damped by confidence.
		orderType = domain.OrderTypeBuy
		maxPay := marketPrice + (implied-marketPrice)*trader.ConfidenceLevel
		target = marketPrice + s.cfg.buyInterp()*(maxPay-marketPrice)
	} else {
		// Overpriced: sell just below the quote, leaning toward the
		// trader's own valuation.
		orderType = domain.OrderTypeSell
		target = marketPrice + s.cfg.sellInterp()*(implied-marketPrice)
	}
	target = domain.Round2(domain.ClampPrice(target))

	size := trader.MaxOrderSize * trader.ConfidenceLevel * math.Abs(best.value) *
		s.cfg.edgeSizeScale() * trader.Style.SizeMultiplier()
	amount := clampAmount(size, s.cfg.minOrderSize(), trader.Balance*s.cfg.balanceCap())

	order := &domain.Order{
		ID:        domain.NewID("order"),
		TraderID:  trader.ID,
		MarketID:  best.market.ID,
		Side:      best.side,
		Type:      orderType,
		Price:     target,
		Amount:    amount,
		Status:    domain.OrderStatusPending,
		CreatedAt: time.Now().UTC(),
	}

	s.logger.Debug("edge order generated",
		slog.String("trader", trader.ID),
		slog.String("market", best.market.ID),
		slog.String("side", string(best.side)),
		slog.String("type", string(orderType)),
		slog.Float64("edge", best.value),
		slog.Float64("price", target),
		slog.Int64("amount", amount),
	)
	return order, nil
}

// clampAmount bounds a float share size to [floor, cap] and truncates to
// whole shares.
func clampAmount(size float64, floor int64, cap float64) int64 {
	amount := int64(math.Floor(size))
	if float64(amount) > cap {
		amount = int64(math.Floor(cap))
	}
	if amount < floor {
		amount = floor
	}
	return amount
}
