// Package config defines the top-level configuration for the market
// simulator and provides validation helpers.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Duration wraps time.Duration so TOML values like "500ms" decode
// directly into config fields.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Config is the root configuration structure. Fields are populated from
// a TOML file and then optionally overridden by MARKETSIM_* environment
// variables.
type Config struct {
	Simulation  SimulationConfig  `toml:"simulation"`
	Intelligent IntelligentConfig `toml:"intelligent"`
	MarketMaker MarketMakerConfig `toml:"market_maker"`
	LogLevel    string            `toml:"log_level"`
}

// SimulationConfig controls the driver: tick cadence, order mix, and how
// much history is retained.
type SimulationConfig struct {
	TickInterval             Duration `toml:"tick_interval"`
	Ticks                    int      `toml:"ticks"` // 0 runs until interrupted
	Seed                     int64    `toml:"seed"`  // 0 seeds from the clock
	InitialIntelligentOrders int      `toml:"initial_intelligent_orders"`
	InitialMakerOrders       int      `toml:"initial_maker_orders"`
	MinOrdersPerTick         int      `toml:"min_orders_per_tick"`
	MaxOrdersPerTick         int      `toml:"max_orders_per_tick"`
	IntelligentRatio         float64  `toml:"intelligent_ratio"` // share of generated orders from the intelligent strategy
	TradeHistoryLimit        int      `toml:"trade_history_limit"`
	SummaryEvery             int      `toml:"summary_every"` // log a market summary every N ticks
}

// IntelligentConfig tunes the intelligent-trader order generator.
type IntelligentConfig struct {
	MinEdge       float64 `toml:"min_edge"`
	BuyInterp     float64 `toml:"buy_interp"`
	SellInterp    float64 `toml:"sell_interp"`
	MinOrderSize  int64   `toml:"min_order_size"`
	BalanceCap    float64 `toml:"balance_cap"`
	EdgeSizeScale float64 `toml:"edge_size_scale"`
}

// MarketMakerConfig tunes the market-maker order generator.
type MarketMakerConfig struct {
	MinSpread    float64 `toml:"min_spread"`
	MaxSpread    float64 `toml:"max_spread"`
	BaseFraction float64 `toml:"base_fraction"`
	BaseShares   int64   `toml:"base_shares"`
	CapFraction  float64 `toml:"cap_fraction"`
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Defaults returns the built-in configuration, matching the reference
// simulation cadence: a 500ms tick with 2-4 orders per tick, 70% of them
// from the intelligent strategy.
func Defaults() Config {
	return Config{
		Simulation: SimulationConfig{
			TickInterval:             Duration{500 * time.Millisecond},
			Ticks:                    0,
			Seed:                     0,
			InitialIntelligentOrders: 15,
			InitialMakerOrders:       10,
			MinOrdersPerTick:         2,
			MaxOrdersPerTick:         4,
			IntelligentRatio:         0.7,
			TradeHistoryLimit:        1000,
			SummaryEvery:             10,
		},
		Intelligent: IntelligentConfig{
			MinEdge:       0.02,
			BuyInterp:     0.7,
			SellInterp:    0.3,
			MinOrderSize:  100,
			BalanceCap:    0.5,
			EdgeSizeScale: 2.0,
		},
		MarketMaker: MarketMakerConfig{
			MinSpread:    0.02,
			MaxSpread:    0.05,
			BaseFraction: 0.02,
			BaseShares:   200,
			CapFraction:  0.10,
		},
		LogLevel: "info",
	}
}

// Validate checks the configuration for internal consistency. It gathers
// every problem instead of stopping at the first one.
func (c *Config) Validate() error {
	var errs []string

	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Sprintf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel))
	}

	s := c.Simulation
	if s.TickInterval.Duration <= 0 {
		errs = append(errs, "simulation: tick_interval must be positive")
	}
	if s.Ticks < 0 {
		errs = append(errs, "simulation: ticks must not be negative")
	}
	if s.MinOrdersPerTick < 0 || s.MaxOrdersPerTick < s.MinOrdersPerTick {
		errs = append(errs, "simulation: orders per tick must satisfy 0 <= min <= max")
	}
	if s.IntelligentRatio < 0 || s.IntelligentRatio > 1 {
		errs = append(errs, "simulation: intelligent_ratio must be within [0, 1]")
	}
	if s.TradeHistoryLimit <= 0 {
		errs = append(errs, "simulation: trade_history_limit must be positive")
	}

	if c.Intelligent.MinEdge < 0 || c.Intelligent.MinEdge >= 1 {
		errs = append(errs, "intelligent: min_edge must be within [0, 1)")
	}
	if c.Intelligent.BalanceCap <= 0 || c.Intelligent.BalanceCap > 1 {
		errs = append(errs, "intelligent: balance_cap must be within (0, 1]")
	}

	mm := c.MarketMaker
	if mm.MinSpread <= 0 || mm.MaxSpread < mm.MinSpread {
		errs = append(errs, "market_maker: spreads must satisfy 0 < min <= max")
	}
	if mm.CapFraction <= 0 || mm.CapFraction > 1 {
		errs = append(errs, "market_maker: cap_fraction must be within (0, 1]")
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
