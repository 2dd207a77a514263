package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies MARKETSIM_* environment variable overrides,
// and returns the final Config. A missing file is not an error; the
// defaults plus environment are used instead. The returned Config has
// NOT been validated; the caller should invoke Config.Validate() after
// Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known MARKETSIM_* environment variables
// and overwrites the corresponding Config fields when a variable is set
// (i.e. not empty). This lets a run be tweaked without touching the TOML
// file.
func applyEnvOverrides(cfg *Config) {
	// ── Simulation ──
	setDuration(&cfg.Simulation.TickInterval, "MARKETSIM_TICK_INTERVAL")
	setInt(&cfg.Simulation.Ticks, "MARKETSIM_TICKS")
	setInt64(&cfg.Simulation.Seed, "MARKETSIM_SEED")
	setInt(&cfg.Simulation.InitialIntelligentOrders, "MARKETSIM_INITIAL_INTELLIGENT_ORDERS")
	setInt(&cfg.Simulation.InitialMakerOrders, "MARKETSIM_INITIAL_MAKER_ORDERS")
	setInt(&cfg.Simulation.MinOrdersPerTick, "MARKETSIM_MIN_ORDERS_PER_TICK")
	setInt(&cfg.Simulation.MaxOrdersPerTick, "MARKETSIM_MAX_ORDERS_PER_TICK")
	setFloat64(&cfg.Simulation.IntelligentRatio, "MARKETSIM_INTELLIGENT_RATIO")
	setInt(&cfg.Simulation.TradeHistoryLimit, "MARKETSIM_TRADE_HISTORY_LIMIT")
	setInt(&cfg.Simulation.SummaryEvery, "MARKETSIM_SUMMARY_EVERY")

	// ── Intelligent strategy ──
	setFloat64(&cfg.Intelligent.MinEdge, "MARKETSIM_INTELLIGENT_MIN_EDGE")
	setFloat64(&cfg.Intelligent.BuyInterp, "MARKETSIM_INTELLIGENT_BUY_INTERP")
	setFloat64(&cfg.Intelligent.SellInterp, "MARKETSIM_INTELLIGENT_SELL_INTERP")
	setInt64(&cfg.Intelligent.MinOrderSize, "MARKETSIM_INTELLIGENT_MIN_ORDER_SIZE")
	setFloat64(&cfg.Intelligent.BalanceCap, "MARKETSIM_INTELLIGENT_BALANCE_CAP")
	setFloat64(&cfg.Intelligent.EdgeSizeScale, "MARKETSIM_INTELLIGENT_EDGE_SIZE_SCALE")

	// ── Market maker ──
	setFloat64(&cfg.MarketMaker.MinSpread, "MARKETSIM_MARKET_MAKER_MIN_SPREAD")
	setFloat64(&cfg.MarketMaker.MaxSpread, "MARKETSIM_MARKET_MAKER_MAX_SPREAD")
	setFloat64(&cfg.MarketMaker.BaseFraction, "MARKETSIM_MARKET_MAKER_BASE_FRACTION")
	setInt64(&cfg.MarketMaker.BaseShares, "MARKETSIM_MARKET_MAKER_BASE_SHARES")
	setFloat64(&cfg.MarketMaker.CapFraction, "MARKETSIM_MARKET_MAKER_CAP_FRACTION")

	// ── Top-level ──
	setStr(&cfg.LogLevel, "MARKETSIM_LOG_LEVEL")
}

// ---------------------------------------------------------------------------
// Typed env-var helpers. Each only mutates the target when the environment
// variable is present and non-empty.
// ---------------------------------------------------------------------------

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setFloat64(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setDuration(dst *Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}
