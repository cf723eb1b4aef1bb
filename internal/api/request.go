package api

import (
	"fmt"

	"rideshare-pricing-lab/internal/analysis"
	"rideshare-pricing-lab/internal/game"
	"rideshare-pricing-lab/internal/reporting"
)

// AnalysisRequest carries engine parameters for one analysis. Omitted
// fields fall back to the default scenario, matching the dashboard's
// initial slider positions.
type AnalysisRequest struct {
	PriceTiers       map[string]float64 `json:"price_tiers,omitempty"`
	DemandElasticity *float64           `json:"demand_elasticity,omitempty"`
	MarketSize       *float64           `json:"market_size,omitempty"`
	RateOfReturn     *float64           `json:"rate_of_return,omitempty"`
	Windfall         *float64           `json:"windfall,omitempty"`
	Curve            string             `json:"curve,omitempty"`
	DiscountFactor   *float64           `json:"discount_factor,omitempty"`
	Horizon          string             `json:"horizon,omitempty"`
	RepeatedStrategy string             `json:"repeated_strategy,omitempty"`
}

// defaultDiscountFactor matches the dashboard's initial slider position.
const defaultDiscountFactor = 0.9

// toReportRequest merges the request over defaults and validates the
// display-level fields. Engine-level validation happens in the engine.
func (r *AnalysisRequest) toReportRequest() (reporting.Request, error) {
	params := game.DefaultParams()

	if len(r.PriceTiers) > 0 {
		tiers := make(game.PriceTiers, len(r.PriceTiers))
		for name, price := range r.PriceTiers {
			tiers[game.Strategy(name)] = price
		}
		params.PriceTiers = tiers
	}
	if r.DemandElasticity != nil {
		params.DemandElasticity = *r.DemandElasticity
	}
	if r.MarketSize != nil {
		params.MarketSize = *r.MarketSize
	}
	if r.RateOfReturn != nil {
		params.RateOfReturn = *r.RateOfReturn
	}
	if r.Windfall != nil {
		params.Windfall = *r.Windfall
	}
	if r.Curve != "" {
		params.Curve = game.ResponseCurve(r.Curve)
	}

	discountFactor := defaultDiscountFactor
	if r.DiscountFactor != nil {
		discountFactor = *r.DiscountFactor
	}

	horizon := reporting.HorizonShortTerm
	switch r.Horizon {
	case "", string(reporting.HorizonShortTerm):
	case string(reporting.HorizonLongTerm):
		horizon = reporting.HorizonLongTerm
	default:
		return reporting.Request{}, fmt.Errorf("%w: unknown horizon %q", game.ErrInvalidParameter, r.Horizon)
	}

	strategy := analysis.GrimTrigger
	if r.RepeatedStrategy != "" {
		strategy = analysis.RepeatedStrategy(r.RepeatedStrategy)
	}

	return reporting.Request{
		Params:           params,
		DiscountFactor:   discountFactor,
		Horizon:          horizon,
		RepeatedStrategy: strategy,
	}, nil
}
