package domain

// TradingStyle scales how aggressively a trader sizes its orders.
type TradingStyle string

const (
	StyleConservative TradingStyle = "conservative"
	StyleModerate     TradingStyle = "moderate"
	StyleAggressive   TradingStyle = "aggressive"
)

// SizeMultiplier returns the order-size scaling factor for the style.
func (s TradingStyle) SizeMultiplier() float64 {
	switch s {
	case StyleConservative:
		return 0.6
	case StyleAggressive:
		return 1.2
	default:
		return 0.8
	}
}

// Trader is a synthetic market participant. Beliefs maps market ID to the
// trader's subjective probability that the market resolves YES, clamped to
// [0.05, 0.95]. The belief model rewrites Beliefs every tick; every other
// field is fixed at creation (settlement never touches Balance).
type Trader struct {
	ID              string
	Name            string
	Balance         float64
	Beliefs         map[string]float64 // keyed by unique market ID
	RiskTolerance   float64            // [0, 1]
	Style           TradingStyle
	MaxOrderSize    float64 // derived from Balance * RiskTolerance
	ConfidenceLevel float64 // [0.4, 0.9], resistance to belief drift
}

// BeliefFor returns the trader's YES probability for a market, falling back
// to 0.5 when the market is unknown.
func (t Trader) BeliefFor(marketID string) float64 {
	if b, ok := t.Beliefs[marketID]; ok {
		return b
	}
	return 0.5
}

// ImpliedProbability is the trader's subjective probability that the given
// side pays out: the belief itself for YES, its complement for NO.
func (t Trader) ImpliedProbability(marketID string, side Side) float64 {
	b := t.BeliefFor(marketID)
	if side == SideYes {
		return b
	}
	return 1 - b
}
