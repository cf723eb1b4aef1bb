package game

import "fmt"

// ResponseCurve selects how the market splits in response to a price
// differential.
type ResponseCurve string

// Supported response curves.
const (
	// CurveSigmoid is the canonical cost-aware model: a bounded sigmoid
	// share response with per-tier operating costs and extreme-differential
	// penalties.
	CurveSigmoid ResponseCurve = "sigmoid"

	// CurveLinear is the simpler legacy model: a linear share response with
	// revenue treated as profit directly.
	CurveLinear ResponseCurve = "linear"
)

// Params configures the market model. All analysis output is a pure function
// of these values; changing any of them requires rebuilding the payoff
// matrix and everything downstream.
type Params struct {
	PriceTiers       PriceTiers    `json:"price_tiers"`
	DemandElasticity float64       `json:"demand_elasticity"`
	MarketSize       float64       `json:"market_size"`
	RateOfReturn     float64       `json:"rate_of_return"`
	Windfall         float64       `json:"windfall"`
	Curve            ResponseCurve `json:"curve"`
}

// DefaultParams returns the baseline scenario: $25/$20/$15 tiers, elasticity
// 0.3, a one million ride market, 5% rate of return, no windfall.
func DefaultParams() Params {
	return Params{
		PriceTiers:       DefaultPriceTiers(),
		DemandElasticity: 0.3,
		MarketSize:       1_000_000,
		RateOfReturn:     0.05,
		Windfall:         0,
		Curve:            CurveSigmoid,
	}
}

// Validate checks all parameters. Errors wrap ErrInvalidConfiguration.
func (p Params) Validate() error {
	if err := p.PriceTiers.validate(); err != nil {
		return err
	}
	if p.DemandElasticity <= 0 {
		return fmt.Errorf("%w: demand elasticity must be positive, got %v", ErrInvalidConfiguration, p.DemandElasticity)
	}
	if p.MarketSize <= 0 {
		return fmt.Errorf("%w: market size must be positive, got %v", ErrInvalidConfiguration, p.MarketSize)
	}
	if p.Windfall < 0 {
		return fmt.Errorf("%w: windfall must be non-negative, got %v", ErrInvalidConfiguration, p.Windfall)
	}
	switch p.Curve {
	case CurveSigmoid, CurveLinear:
	default:
		return fmt.Errorf("%w: unknown response curve %q", ErrInvalidConfiguration, p.Curve)
	}
	return nil
}
