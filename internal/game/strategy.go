// Package game implements the pricing-game engine: the market model that
// turns a pair of pricing strategies into shares, revenues and net payoffs,
// and the payoff matrix built over the full strategy space.
package game

import "fmt"

// Strategy is one of the discrete price tiers a player may choose.
type Strategy string

// Strategy tiers, from highest price to lowest.
const (
	High   Strategy = "High"
	Medium Strategy = "Medium"
	Low    Strategy = "Low"
)

// Strategies lists all tiers in fixed enumeration order. Matrix iteration
// and analyzer output ordering both follow this order, so results are
// deterministic across runs.
var Strategies = []Strategy{High, Medium, Low}

// Player identifies one of the two competitors.
type Player string

// Player constants.
const (
	Waymo  Player = "Waymo"
	Cruise Player = "Cruise"
)

// Profile is a simultaneous strategy choice by both players.
type Profile struct {
	Waymo  Strategy `json:"waymo"`
	Cruise Strategy `json:"cruise"`
}

// PriceTiers maps each strategy tier to its price.
type PriceTiers map[Strategy]float64

// DefaultPriceTiers returns the standard tier prices used by the dashboard.
func DefaultPriceTiers() PriceTiers {
	return PriceTiers{High: 25, Medium: 20, Low: 15}
}

// MaxPrice returns the highest tier price.
func (p PriceTiers) MaxPrice() float64 {
	max := 0.0
	for _, price := range p {
		if price > max {
			max = price
		}
	}
	return max
}

// MeanPrice returns the arithmetic mean of all tier prices.
func (p PriceTiers) MeanPrice() float64 {
	if len(p) == 0 {
		return 0
	}
	sum := 0.0
	for _, price := range p {
		sum += price
	}
	return sum / float64(len(p))
}

// validate checks that every tier is present with a positive price and that
// prices strictly decrease from High to Low.
func (p PriceTiers) validate() error {
	if len(p) < 2 {
		return fmt.Errorf("%w: price tiers require at least 2 entries, got %d", ErrInvalidConfiguration, len(p))
	}
	for _, s := range Strategies {
		price, ok := p[s]
		if !ok {
			return fmt.Errorf("%w: missing price for tier %s", ErrInvalidConfiguration, s)
		}
		if price <= 0 {
			return fmt.Errorf("%w: tier %s price must be positive, got %v", ErrInvalidConfiguration, s, price)
		}
	}
	for i := 1; i < len(Strategies); i++ {
		hi, lo := Strategies[i-1], Strategies[i]
		if p[hi] <= p[lo] {
			return fmt.Errorf("%w: tier prices must strictly decrease, %s (%v) <= %s (%v)",
				ErrInvalidConfiguration, hi, p[hi], lo, p[lo])
		}
	}
	return nil
}
