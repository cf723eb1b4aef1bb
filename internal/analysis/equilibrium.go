// Package analysis derives game-theoretic results from a completed payoff
// matrix: Nash equilibria, dominant strategies and repeated-game
// (Grim Trigger) cooperation thresholds. The matrix is read-only input;
// analyzers never mutate it and may run concurrently over the same matrix.
package analysis

import (
	"rideshare-pricing-lab/internal/game"
)

// DefaultTolerance bounds how much a deviation must improve a payoff before
// it disqualifies an equilibrium or establishes strict dominance.
const DefaultTolerance = 1e-6

// Equilibrium is a strategy profile from which neither player can
// unilaterally deviate to strictly improve their own payoff.
type Equilibrium struct {
	Profile      game.Profile `json:"profile"`
	WaymoPayoff  float64      `json:"waymo_payoff"`
	CruisePayoff float64      `json:"cruise_payoff"`
}

// FindNashEquilibria returns every profile where both players are playing a
// best response, in fixed enumeration order (outer loop over Waymo
// strategies, inner loop over Cruise strategies). Ties within tolerance do
// not disqualify a profile. Zero, one or several equilibria may be returned.
func FindNashEquilibria(m *game.PayoffMatrix, tolerance float64) ([]Equilibrium, error) {
	var equilibria []Equilibrium

	for _, w := range game.Strategies {
		for _, c := range game.Strategies {
			o, err := m.Outcome(w, c)
			if err != nil {
				return nil, err
			}

			waymoBest, err := isBestResponse(m, game.Waymo, w, c, tolerance)
			if err != nil {
				return nil, err
			}
			if !waymoBest {
				continue
			}

			cruiseBest, err := isBestResponse(m, game.Cruise, w, c, tolerance)
			if err != nil {
				return nil, err
			}
			if !cruiseBest {
				continue
			}

			equilibria = append(equilibria, Equilibrium{
				Profile:      o.Profile,
				WaymoPayoff:  o.WaymoPayoff,
				CruisePayoff: o.CruisePayoff,
			})
		}
	}

	return equilibria, nil
}

// isBestResponse reports whether player's strategy in profile (w, c) cannot
// be improved beyond tolerance by any unilateral deviation.
func isBestResponse(m *game.PayoffMatrix, player game.Player, w, c game.Strategy, tolerance float64) (bool, error) {
	current, err := m.Outcome(w, c)
	if err != nil {
		return false, err
	}
	payoff := current.PayoffFor(player)

	for _, alt := range game.Strategies {
		aw, ac := alt, c
		if player == game.Cruise {
			aw, ac = w, alt
		}
		deviated, err := m.Outcome(aw, ac)
		if err != nil {
			return false, err
		}
		if deviated.PayoffFor(player) > payoff+tolerance {
			return false, nil
		}
	}
	return true, nil
}

// DominantStrategies holds each player's strictly dominant strategy. The
// empty string means the player has none. Strict dominance is mutually
// exclusive, so at most one strategy per player can qualify.
type DominantStrategies struct {
	Waymo  game.Strategy `json:"waymo,omitempty"`
	Cruise game.Strategy `json:"cruise,omitempty"`
}

// FindDominantStrategies returns, per player, the strategy that strictly
// beats every alternative by more than tolerance against every possible
// opponent strategy, or the empty string when none qualifies. The search
// follows the fixed enumeration order for determinism.
func FindDominantStrategies(m *game.PayoffMatrix, tolerance float64) (DominantStrategies, error) {
	var result DominantStrategies

	for _, player := range []game.Player{game.Waymo, game.Cruise} {
		dominant, err := findDominantFor(m, player, tolerance)
		if err != nil {
			return DominantStrategies{}, err
		}
		if player == game.Waymo {
			result.Waymo = dominant
		} else {
			result.Cruise = dominant
		}
	}

	return result, nil
}

func findDominantFor(m *game.PayoffMatrix, player game.Player, tolerance float64) (game.Strategy, error) {
	for _, candidate := range game.Strategies {
		dominant := true
		for _, alt := range game.Strategies {
			if alt == candidate {
				continue
			}
			for _, opponent := range game.Strategies {
				candidatePayoff, err := payoffFor(m, player, candidate, opponent)
				if err != nil {
					return "", err
				}
				altPayoff, err := payoffFor(m, player, alt, opponent)
				if err != nil {
					return "", err
				}
				if candidatePayoff <= altPayoff+tolerance {
					dominant = false
					break
				}
			}
			if !dominant {
				break
			}
		}
		if dominant {
			return candidate, nil
		}
	}
	return "", nil
}

// payoffFor looks up the payoff for player choosing own against opponent,
// orienting the profile correctly for either side.
func payoffFor(m *game.PayoffMatrix, player game.Player, own, opponent game.Strategy) (float64, error) {
	w, c := own, opponent
	if player == game.Cruise {
		w, c = opponent, own
	}
	o, err := m.Outcome(w, c)
	if err != nil {
		return 0, err
	}
	return o.PayoffFor(player), nil
}
