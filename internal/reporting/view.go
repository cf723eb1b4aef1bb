// Package reporting projects engine output into display form: per-profile
// views with normalized scores for node coloring, and Markdown/CSV report
// rendering. Everything here is a display concern layered on top of raw
// payoffs; none of it feeds back into the equilibrium math.
package reporting

import (
	"rideshare-pricing-lab/internal/analysis"
	"rideshare-pricing-lab/internal/game"
)

// Horizon selects the revenue horizon applied to display values.
type Horizon string

// Supported horizons.
const (
	HorizonShortTerm Horizon = "short-term"
	HorizonLongTerm  Horizon = "long-term"
)

// Months returns the number of months displayed revenue accumulates over.
func (h Horizon) Months() float64 {
	if h == HorizonLongTerm {
		return 12
	}
	return 1
}

// Deviation describes how one player's normalized score would change under a
// unilateral strategy switch.
type Deviation struct {
	Strategy    game.Strategy `json:"strategy"`
	ScoreChange int           `json:"score_change"`
}

// ProfileView is the display projection of one matrix outcome: market
// shares, horizon-scaled gross revenue, prices and a 0-100 normalized payoff
// score. Negative scores clamp to 0, so two different loss magnitudes can
// display identically; raw payoffs stay in game.Outcome.
type ProfileView struct {
	Profile game.Profile `json:"profile"`

	WaymoShare  float64 `json:"waymo_share"`
	CruiseShare float64 `json:"cruise_share"`

	WaymoRevenue  float64 `json:"waymo_revenue"`
	CruiseRevenue float64 `json:"cruise_revenue"`

	WaymoPrice  float64 `json:"waymo_price"`
	CruisePrice float64 `json:"cruise_price"`

	WaymoPayoff  float64 `json:"waymo_payoff"`
	CruisePayoff float64 `json:"cruise_payoff"`

	WaymoScore  int `json:"waymo_score"`
	CruiseScore int `json:"cruise_score"`

	IsNash bool `json:"is_nash"`

	WaymoDeviations  []Deviation `json:"waymo_deviations"`
	CruiseDeviations []Deviation `json:"cruise_deviations"`
}

// normalizedScore maps a raw payoff to the 0-100 display scale:
// payoff / maxPossibleRevenue * 100, truncated to int, clamped to >= 0.
func normalizedScore(payoff, maxPossibleRevenue float64) int {
	score := int(payoff / maxPossibleRevenue * 100)
	if score < 0 {
		return 0
	}
	return score
}

// BuildViews projects every matrix outcome into a ProfileView, in fixed
// enumeration order. Equilibria mark the matching views; the horizon scales
// displayed revenue but never the score's payoff-to-capacity ratio.
func BuildViews(m *game.PayoffMatrix, params game.Params, horizon Horizon, equilibria []analysis.Equilibrium) []ProfileView {
	maxRevenue := params.MarketSize * params.PriceTiers.MaxPrice()
	months := horizon.Months()

	nash := make(map[game.Profile]bool, len(equilibria))
	for _, eq := range equilibria {
		nash[eq.Profile] = true
	}

	scores := make(map[game.Profile][2]int, m.Len())
	for _, o := range m.Outcomes() {
		scores[o.Profile] = [2]int{
			normalizedScore(o.WaymoPayoff, maxRevenue),
			normalizedScore(o.CruisePayoff, maxRevenue),
		}
	}

	views := make([]ProfileView, 0, m.Len())
	for _, o := range m.Outcomes() {
		score := scores[o.Profile]
		view := ProfileView{
			Profile:       o.Profile,
			WaymoShare:    o.WaymoShare,
			CruiseShare:   o.CruiseShare,
			WaymoRevenue:  o.WaymoRevenue * months,
			CruiseRevenue: o.CruiseRevenue * months,
			WaymoPrice:    params.PriceTiers[o.Profile.Waymo],
			CruisePrice:   params.PriceTiers[o.Profile.Cruise],
			WaymoPayoff:   o.WaymoPayoff,
			CruisePayoff:  o.CruisePayoff,
			WaymoScore:    score[0],
			CruiseScore:   score[1],
			IsNash:        nash[o.Profile],
		}

		for _, alt := range game.Strategies {
			if alt != o.Profile.Waymo {
				altScore := scores[game.Profile{Waymo: alt, Cruise: o.Profile.Cruise}]
				view.WaymoDeviations = append(view.WaymoDeviations, Deviation{
					Strategy:    alt,
					ScoreChange: altScore[0] - score[0],
				})
			}
			if alt != o.Profile.Cruise {
				altScore := scores[game.Profile{Waymo: o.Profile.Waymo, Cruise: alt}]
				view.CruiseDeviations = append(view.CruiseDeviations, Deviation{
					Strategy:    alt,
					ScoreChange: altScore[1] - score[1],
				})
			}
		}

		views = append(views, view)
	}

	return views
}
