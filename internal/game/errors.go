package game

import "errors"

// Engine errors.
var (
	// ErrInvalidConfiguration is returned when engine parameters fail
	// validation (non-positive market size, bad price tiers, negative
	// elasticity).
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInvalidParameter is returned when a per-call parameter is out of
	// range, such as a discount factor outside [0, 1).
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrIncompleteMatrix is returned when a payoff matrix is missing a
	// profile it must contain. The matrix builder always produces a total
	// matrix, so hitting this on a built matrix indicates a programming
	// error, never a recoverable runtime condition.
	ErrIncompleteMatrix = errors.New("incomplete payoff matrix")
)
