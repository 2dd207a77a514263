// Package sim is the simulation driver: it seeds the population, runs
// the tick loop on a fixed cadence, and feeds each tick's state back
// into the next. A tick is atomic and the loop is single-threaded; all
// state mutation happens inside Tick, so ticks must never run
// concurrently over the same Simulation.
package sim

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/alanyoungcy/marketsim/internal/belief"
	"github.com/alanyoungcy/marketsim/internal/config"
	"github.com/alanyoungcy/marketsim/internal/domain"
	"github.com/alanyoungcy/marketsim/internal/engine"
	"github.com/alanyoungcy/marketsim/internal/pricing"
	"github.com/alanyoungcy/marketsim/internal/seed"
	"github.com/alanyoungcy/marketsim/internal/strategy"
)

// TickReport summarizes one completed tick for the reporting layer.
type TickReport struct {
	Tick      int
	NewOrders int
	NewTrades int
	Pending   int
	Filled    int
	Markets   []domain.Market
}

// Simulation owns the full in-memory state of one simulated market
// session. Construct it with New and drive it with Run (or Tick directly
// in tests). All state mutation happens inside Tick.
type Simulation struct {
	cfg    config.SimulationConfig
	rng    *rand.Rand
	logger *slog.Logger

	registry    *strategy.Registry
	intelligent strategy.Generator
	maker       strategy.Generator

	traders []domain.Trader
	markets []domain.Market
	orders  []domain.Order
	trades  []domain.Trade
	tick    int
}

// New seeds markets and traders, wires the order generators, and places
// the initial burst of orders so the first matching pass has a book to
// work with. A zero configured seed derives one from the clock;
// otherwise runs are reproducible.
func New(cfg *config.Config, logger *slog.Logger) *Simulation {
	seedVal := cfg.Simulation.Seed
	if seedVal == 0 {
		seedVal = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seedVal))

	markets := seed.Markets(rng)
	traders := seed.Traders(rng, markets)

	registry := strategy.NewRegistry()
	intelligent := strategy.NewIntelligent(strategy.IntelligentConfig{
		MinEdge:       cfg.Intelligent.MinEdge,
		BuyInterp:     cfg.Intelligent.BuyInterp,
		SellInterp:    cfg.Intelligent.SellInterp,
		MinOrderSize:  cfg.Intelligent.MinOrderSize,
		BalanceCap:    cfg.Intelligent.BalanceCap,
		EdgeSizeScale: cfg.Intelligent.EdgeSizeScale,
	}, rng, logger)
	maker := strategy.NewMarketMaker(strategy.MakerConfig{
		MinSpread:    cfg.MarketMaker.MinSpread,
		MaxSpread:    cfg.MarketMaker.MaxSpread,
		BaseFraction: cfg.MarketMaker.BaseFraction,
		BaseShares:   cfg.MarketMaker.BaseShares,
		CapFraction:  cfg.MarketMaker.CapFraction,
	}, rng, logger)
	registry.Register(intelligent)
	registry.Register(maker)

	s := &Simulation{
		cfg:         cfg.Simulation,
		rng:         rng,
		logger:      logger.With(slog.String("component", "sim")),
		registry:    registry,
		intelligent: intelligent,
		maker:       maker,
		traders:     traders,
		markets:     markets,
	}
	s.bootstrap()

	s.logger.Info("simulation seeded",
		slog.Int64("seed", seedVal),
		slog.Int("markets", len(markets)),
		slog.Int("traders", len(traders)),
		slog.Int("initial_orders", len(s.orders)),
	)
	return s
}

// bootstrap places the opening batch of orders: a wave of intelligent
// orders for initial disagreement and a wave of maker quotes for initial
// depth.
func (s *Simulation) bootstrap() {
	for i := 0; i < s.cfg.InitialIntelligentOrders; i++ {
		s.generate(s.intelligent)
	}
	for i := 0; i < s.cfg.InitialMakerOrders; i++ {
		s.generate(s.maker)
	}
}

// generate runs one generator pass and appends the resulting order, if
// any, to the pool.
func (s *Simulation) generate(g strategy.Generator) bool {
	order, err := g.Generate(s.traders, s.markets)
	if err != nil {
		s.logger.Warn("order generation failed",
			slog.String("strategy", g.Name()),
			slog.String("error", err.Error()),
		)
		return false
	}
	if order == nil {
		return false
	}
	if err := order.Validate(); err != nil {
		s.logger.Warn("generated order rejected",
			slog.String("strategy", g.Name()),
			slog.String("error", err.Error()),
		)
		return false
	}
	s.orders = append(s.orders, *order)
	return true
}

// Tick runs one full simulation step: generate a small batch of orders,
// match the whole pending pool, reprice every market from the post-match
// book, evolve trader beliefs toward the new prices, and compact the
// pool. It returns a report of what happened.
func (s *Simulation) Tick() TickReport {
	s.tick++

	batch := s.cfg.MinOrdersPerTick
	if spread := s.cfg.MaxOrdersPerTick - s.cfg.MinOrdersPerTick; spread > 0 {
		batch += s.rng.Intn(spread + 1)
	}
	generated := 0
	for i := 0; i < batch; i++ {
		g := s.maker
		if s.rng.Float64() < s.cfg.IntelligentRatio {
			g = s.intelligent
		}
		if s.generate(g) {
			generated++
		}
	}

	result := engine.Match(s.orders)

	s.trades = append(s.trades, result.Trades...)
	if over := len(s.trades) - s.cfg.TradeHistoryLimit; over > 0 {
		s.trades = append(s.trades[:0:0], s.trades[over:]...)
	}

	for i, m := range s.markets {
		s.markets[i] = pricing.UpdateMarket(m, result.Trades, result.Orders)
	}

	s.traders = belief.Evolve(s.rng, s.traders, s.markets, result.Trades)

	pending, filled := s.compact(result.Orders)

	report := TickReport{
		Tick:      s.tick,
		NewOrders: generated,
		NewTrades: len(result.Trades),
		Pending:   pending,
		Filled:    filled,
		Markets:   s.Markets(),
	}
	if s.cfg.SummaryEvery > 0 && s.tick%s.cfg.SummaryEvery == 0 {
		s.logSummary(report)
	}
	return report
}

// compact rebuilds the pool from a matching result: every PENDING order
// survives, FILLED orders are retained (oldest evicted first) up to the
// trade-history limit, and CANCELLED orders drop out. It returns the
// pending and filled counts of the new pool.
func (s *Simulation) compact(orders []domain.Order) (pending, filled int) {
	next := make([]domain.Order, 0, len(orders))
	var filledOrders []domain.Order
	for _, o := range orders {
		switch o.Status {
		case domain.OrderStatusPending:
			next = append(next, o)
		case domain.OrderStatusFilled:
			filledOrders = append(filledOrders, o)
		}
	}
	if over := len(filledOrders) - s.cfg.TradeHistoryLimit; over > 0 {
		filledOrders = filledOrders[over:]
	}
	s.orders = append(next, filledOrders...)
	return len(next), len(filledOrders)
}

// Run drives the tick loop on the configured cadence until the context
// is cancelled or the configured tick count is reached. Every tick's
// report is sent on reports, which is closed on return; the send blocks,
// so a slow consumer slows the simulation rather than losing reports.
func (s *Simulation) Run(ctx context.Context, reports chan<- TickReport) error {
	defer close(reports)

	ticker := time.NewTicker(s.cfg.TickInterval.Duration)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			report := s.Tick()
			select {
			case reports <- report:
			case <-ctx.Done():
				return ctx.Err()
			}
			if s.cfg.Ticks > 0 && s.tick >= s.cfg.Ticks {
				return nil
			}
		}
	}
}

// Markets returns a copy of the current market state.
func (s *Simulation) Markets() []domain.Market {
	out := make([]domain.Market, len(s.markets))
	copy(out, s.markets)
	return out
}

// Traders returns a copy of the current trader population.
func (s *Simulation) Traders() []domain.Trader {
	out := make([]domain.Trader, len(s.traders))
	copy(out, s.traders)
	return out
}

// Orders returns a copy of the current order pool.
func (s *Simulation) Orders() []domain.Order {
	out := make([]domain.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// RecentTrades returns up to limit most recent trades, newest last.
func (s *Simulation) RecentTrades(limit int) []domain.Trade {
	if limit <= 0 || limit > len(s.trades) {
		limit = len(s.trades)
	}
	out := make([]domain.Trade, limit)
	copy(out, s.trades[len(s.trades)-limit:])
	return out
}

// OrderBook projects the current pool into the order book for one market.
func (s *Simulation) OrderBook(marketID string) domain.OrderBook {
	return pricing.BuildBook(s.orders, marketID)
}

// Strategies returns the names of the registered order generators.
func (s *Simulation) Strategies() []string {
	return s.registry.List()
}

// logSummary emits the periodic market-activity snapshot.
func (s *Simulation) logSummary(report TickReport) {
	attrs := []any{
		slog.Int("tick", report.Tick),
		slog.Int("pending_orders", report.Pending),
		slog.Int("filled_orders", report.Filled),
		slog.Int("trades", len(s.trades)),
	}
	for _, m := range report.Markets {
		attrs = append(attrs, slog.Group(m.ID,
			slog.Float64("yes", m.YesPrice),
			slog.Float64("no", m.NoPrice),
			slog.Int64("volume", m.TotalVolume),
		))
	}
	s.logger.Info("market summary", attrs...)
}
