package game

import "math"

// Market mechanics constants.
const (
	// maxShareAdjustment bounds how far the sigmoid response can move a
	// share away from the 50/50 split.
	maxShareAdjustment = 0.4

	// Shares are clamped to this band regardless of the response curve.
	minShare = 0.1
	maxShare = 0.9

	// A player pricing Low whose gross revenue falls below this fraction of
	// full market capture at the top tier takes a fixed loss.
	lossRevenueFraction = 0.8
	lossPenalty         = 50_000

	// Extreme price differentials dampen Waymo's payoff (sigmoid curve
	// only). Triggered when |priceDiff| exceeds this fraction of the top
	// tier price.
	extremeDiffFraction    = 0.4
	undercutPenaltyFactor  = 0.9
	overpricePenaltyFactor = 0.85
)

// costFactors is the fraction of revenue consumed by operating cost per
// tier. Applied only under the sigmoid curve; the linear curve treats
// revenue as profit.
var costFactors = map[Strategy]float64{
	High:   0.6,
	Medium: 0.7,
	Low:    0.8,
}

// Outcome is the full market result for one strategy profile: shares, gross
// revenues and net payoffs for both players. Payoffs may be negative.
type Outcome struct {
	Profile Profile `json:"profile"`

	WaymoShare  float64 `json:"waymo_share"`
	CruiseShare float64 `json:"cruise_share"`

	// Gross revenue before cost, windfall and rate-of-return adjustments.
	WaymoRevenue  float64 `json:"waymo_revenue"`
	CruiseRevenue float64 `json:"cruise_revenue"`

	WaymoPayoff  float64 `json:"waymo_payoff"`
	CruisePayoff float64 `json:"cruise_payoff"`
}

// PayoffFor returns the net payoff for the given player.
func (o Outcome) PayoffFor(p Player) float64 {
	if p == Waymo {
		return o.WaymoPayoff
	}
	return o.CruisePayoff
}

// Model converts strategy profiles into market outcomes. A Model is
// immutable after construction; concurrent callers must construct their own
// instance per parameter set rather than sharing one across mutations.
type Model struct {
	params Params
}

// NewModel validates params and creates a market model.
func NewModel(params Params) (*Model, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Model{params: params}, nil
}

// Params returns the model's configuration.
func (m *Model) Params() Params {
	return m.params
}

// Payoff computes the outcome for one strategy profile.
func (m *Model) Payoff(w, c Strategy) Outcome {
	p := m.params
	priceDiff := p.PriceTiers[c] - p.PriceTiers[w]

	wShare := m.waymoShare(priceDiff)
	cShare := 1 - wShare

	wRevenue := wShare * p.MarketSize * p.PriceTiers[w]
	cRevenue := cShare * p.MarketSize * p.PriceTiers[c]

	wPayoff := m.netPayoff(w, wRevenue)
	cPayoff := m.netPayoff(c, cRevenue)

	if p.Curve == CurveSigmoid {
		wPayoff = m.applyDifferentialPenalty(wPayoff, priceDiff)
	}

	return Outcome{
		Profile:       Profile{Waymo: w, Cruise: c},
		WaymoShare:    wShare,
		CruiseShare:   cShare,
		WaymoRevenue:  wRevenue,
		CruiseRevenue: cRevenue,
		WaymoPayoff:   wPayoff,
		CruisePayoff:  cPayoff,
	}
}

// waymoShare maps a price differential (cruisePrice - waymoPrice) to Waymo's
// market share via the configured response curve, clamped to
// [minShare, maxShare].
func (m *Model) waymoShare(priceDiff float64) float64 {
	p := m.params
	var share float64
	switch p.Curve {
	case CurveLinear:
		share = 0.5 + priceDiff*p.DemandElasticity
	default:
		normalized := priceDiff / p.PriceTiers.MeanPrice()
		share = 0.5 + maxShareAdjustment*(2/(1+math.Exp(-p.DemandElasticity*normalized))-1)
	}
	return clamp(share, minShare, maxShare)
}

// netPayoff applies cost, windfall, rate-of-return and the low-price loss
// penalty to one player's gross revenue.
func (m *Model) netPayoff(s Strategy, revenue float64) float64 {
	p := m.params

	profit := revenue
	if p.Curve == CurveSigmoid {
		profit = revenue * (1 - costFactors[s])
	}

	if s == High {
		profit += p.Windfall
	}

	payoff := profit * (1 + p.RateOfReturn)

	// Strategic-pricing loss condition: charging Low without enough volume
	// to cover it. Checked against gross revenue, applied after scaling.
	if s == Low && revenue < lossRevenueFraction*p.MarketSize*p.PriceTiers.MaxPrice() {
		payoff -= lossPenalty
	}

	return payoff
}

// applyDifferentialPenalty dampens Waymo's payoff when the price gap between
// the players is extreme. The penalty is asymmetric: it applies to Waymo
// only, never Cruise.
func (m *Model) applyDifferentialPenalty(payoff, priceDiff float64) float64 {
	if math.Abs(priceDiff) <= extremeDiffFraction*m.params.PriceTiers.MaxPrice() {
		return payoff
	}
	if priceDiff > 0 {
		// Waymo undercuts a much higher Cruise price.
		return payoff * undercutPenaltyFactor
	}
	// Waymo overprices against a much lower Cruise price.
	return payoff * overpricePenaltyFactor
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
