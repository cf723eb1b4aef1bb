package analysis

import (
	"encoding/json"
	"fmt"
	"math"

	"rideshare-pricing-lab/internal/game"
)

// RepeatedStrategy names a repeated-game strategy.
type RepeatedStrategy string

// Supported repeated-game strategies. Only Grim Trigger is derived
// analytically from the payoff matrix; the others are simplified stand-ins
// kept for the dashboard's strategy selector.
const (
	GrimTrigger     RepeatedStrategy = "grim-trigger"
	TitForTat       RepeatedStrategy = "tit-for-tat"
	AlwaysDefect    RepeatedStrategy = "always-defect"
	AlwaysCooperate RepeatedStrategy = "always-cooperate"
)

// degenerateDenominator is the threshold below which the critical discount
// factor denominator is treated as zero, making cooperation unsustainable
// via deterrence.
const degenerateDenominator = 1e-10

// titForTatThreshold is the fixed stand-in critical discount factor reported
// for Tit-for-Tat. Not derived from the matrix.
const titForTatThreshold = 0.85

// PlayerResult holds one player's repeated-game analysis.
type PlayerResult struct {
	// CriticalDiscountFactor is the minimum discount factor at which the
	// deterrence threat sustains cooperation. +Inf when temptation equals
	// punishment and deterrence degenerates.
	CriticalDiscountFactor float64

	// CanSustainCooperation is true when the supplied discount factor is at
	// or above the critical value.
	CanSustainCooperation bool

	// LongRunValue is the infinite-horizon discounted value under the
	// resulting regime: cooperation payoff when both players sustain,
	// punishment payoff otherwise. Zero for non-analytic strategies.
	LongRunValue float64
}

// MarshalJSON renders an infinite critical discount factor as null so
// results survive JSON encoding.
func (p PlayerResult) MarshalJSON() ([]byte, error) {
	out := struct {
		CriticalDiscountFactor *float64 `json:"critical_discount_factor"`
		CanSustainCooperation  bool     `json:"can_sustain_cooperation"`
		LongRunValue           float64  `json:"long_run_value"`
	}{
		CanSustainCooperation: p.CanSustainCooperation,
		LongRunValue:          p.LongRunValue,
	}
	if !math.IsInf(p.CriticalDiscountFactor, 0) {
		v := p.CriticalDiscountFactor
		out.CriticalDiscountFactor = &v
	}
	return json.Marshal(out)
}

// RepeatedGameResult is the outcome of a repeated-game analysis.
type RepeatedGameResult struct {
	Strategy       RepeatedStrategy `json:"strategy"`
	DiscountFactor float64          `json:"discount_factor"`

	Waymo  PlayerResult `json:"waymo"`
	Cruise PlayerResult `json:"cruise"`

	// Analytic is true when the thresholds were derived from the payoff
	// matrix. False marks a simplified stand-in.
	Analytic    bool   `json:"analytic"`
	Explanation string `json:"explanation"`
}

// AnalyzeGrimTrigger computes per-player critical discount factors and
// sustainability verdicts for the Grim Trigger strategy.
//
// Reference profiles: cooperation (High, High), Waymo defects (Low, High),
// Cruise defects (High, Low), mutual punishment (Low, Low). The critical
// discount factor is (temptation - cooperation) / (temptation - punishment);
// a near-zero denominator yields +Inf. The verdict uses >=, so a discount
// factor exactly at the critical value sustains cooperation.
func AnalyzeGrimTrigger(m *game.PayoffMatrix, discountFactor float64) (*RepeatedGameResult, error) {
	if discountFactor < 0 || discountFactor >= 1 {
		return nil, fmt.Errorf("%w: discount factor %v must lie in [0, 1)", game.ErrInvalidParameter, discountFactor)
	}

	cooperation, err := m.Outcome(game.High, game.High)
	if err != nil {
		return nil, err
	}
	waymoDefects, err := m.Outcome(game.Low, game.High)
	if err != nil {
		return nil, err
	}
	cruiseDefects, err := m.Outcome(game.High, game.Low)
	if err != nil {
		return nil, err
	}
	punishment, err := m.Outcome(game.Low, game.Low)
	if err != nil {
		return nil, err
	}

	waymoCritical := criticalDiscountFactor(waymoDefects.WaymoPayoff, cooperation.WaymoPayoff, punishment.WaymoPayoff)
	cruiseCritical := criticalDiscountFactor(cruiseDefects.CruisePayoff, cooperation.CruisePayoff, punishment.CruisePayoff)

	waymoSustains := discountFactor >= waymoCritical
	cruiseSustains := discountFactor >= cruiseCritical

	// Long-run regime: cooperation only if both players sustain it.
	waymoBase, cruiseBase := punishment.WaymoPayoff, punishment.CruisePayoff
	if waymoSustains && cruiseSustains {
		waymoBase, cruiseBase = cooperation.WaymoPayoff, cooperation.CruisePayoff
	}

	return &RepeatedGameResult{
		Strategy:       GrimTrigger,
		DiscountFactor: discountFactor,
		Waymo: PlayerResult{
			CriticalDiscountFactor: waymoCritical,
			CanSustainCooperation:  waymoSustains,
			LongRunValue:           waymoBase / (1 - discountFactor),
		},
		Cruise: PlayerResult{
			CriticalDiscountFactor: cruiseCritical,
			CanSustainCooperation:  cruiseSustains,
			LongRunValue:           cruiseBase / (1 - discountFactor),
		},
		Analytic:    true,
		Explanation: "Grim Trigger: if any player defects, the other defects forever.",
	}, nil
}

// criticalDiscountFactor computes the Grim Trigger threshold for one player.
func criticalDiscountFactor(temptation, cooperation, punishment float64) float64 {
	denominator := temptation - punishment
	if math.Abs(denominator) <= degenerateDenominator {
		// No gap between temptation and punishment: the threat carries no
		// weight and cooperation can never be sustained by it.
		return math.Inf(1)
	}
	return (temptation - cooperation) / denominator
}

// AnalyzeRepeated dispatches to the requested repeated-game strategy.
// Strategies other than Grim Trigger are simplified stand-ins, not
// game-theoretic derivations; their results carry Analytic=false.
func AnalyzeRepeated(m *game.PayoffMatrix, discountFactor float64, strategy RepeatedStrategy) (*RepeatedGameResult, error) {
	if discountFactor < 0 || discountFactor >= 1 {
		return nil, fmt.Errorf("%w: discount factor %v must lie in [0, 1)", game.ErrInvalidParameter, discountFactor)
	}

	switch strategy {
	case GrimTrigger:
		return AnalyzeGrimTrigger(m, discountFactor)

	case TitForTat:
		sustains := discountFactor >= titForTatThreshold
		return &RepeatedGameResult{
			Strategy:       TitForTat,
			DiscountFactor: discountFactor,
			Waymo:          PlayerResult{CriticalDiscountFactor: titForTatThreshold, CanSustainCooperation: sustains},
			Cruise:         PlayerResult{CriticalDiscountFactor: titForTatThreshold, CanSustainCooperation: sustains},
			Analytic:       false,
			Explanation:    "Tit for Tat: players reciprocate each other's previous move. Threshold is a fixed stand-in.",
		}, nil

	case AlwaysDefect:
		return &RepeatedGameResult{
			Strategy:       AlwaysDefect,
			DiscountFactor: discountFactor,
			Analytic:       false,
			Explanation:    "Always Defect: players defect regardless of the opponent's move. No thresholds apply.",
		}, nil

	case AlwaysCooperate:
		return &RepeatedGameResult{
			Strategy:       AlwaysCooperate,
			DiscountFactor: discountFactor,
			Analytic:       false,
			Explanation:    "Always Cooperate: players cooperate regardless of the opponent's move. No thresholds apply.",
		}, nil

	default:
		return nil, fmt.Errorf("%w: unknown repeated-game strategy %q", game.ErrInvalidParameter, strategy)
	}
}
