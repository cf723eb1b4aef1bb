package game

import "fmt"

// PayoffMatrix maps every strategy profile to its market outcome. A matrix
// is built once per parameter set and never mutated afterward; analyzers
// read it concurrently without coordination.
type PayoffMatrix struct {
	outcomes map[Profile]Outcome
}

// BuildMatrix validates params and computes the outcome for every
// Waymo x Cruise strategy pair. Deterministic: identical params always
// produce an identical matrix.
func BuildMatrix(params Params) (*PayoffMatrix, error) {
	model, err := NewModel(params)
	if err != nil {
		return nil, err
	}
	return model.BuildMatrix(), nil
}

// BuildMatrix enumerates the full strategy space through the model.
func (m *Model) BuildMatrix() *PayoffMatrix {
	outcomes := make(map[Profile]Outcome, len(Strategies)*len(Strategies))
	for _, w := range Strategies {
		for _, c := range Strategies {
			outcomes[Profile{Waymo: w, Cruise: c}] = m.Payoff(w, c)
		}
	}
	return &PayoffMatrix{outcomes: outcomes}
}

// NewPayoffMatrix builds a matrix directly from precomputed outcomes.
// Intended for consumers that derive payoffs outside the market model; a
// matrix assembled this way may be incomplete, which lookups report as
// ErrIncompleteMatrix.
func NewPayoffMatrix(outcomes []Outcome) *PayoffMatrix {
	m := make(map[Profile]Outcome, len(outcomes))
	for _, o := range outcomes {
		m[o.Profile] = o
	}
	return &PayoffMatrix{outcomes: m}
}

// Outcome returns the outcome for one profile.
func (pm *PayoffMatrix) Outcome(w, c Strategy) (Outcome, error) {
	o, ok := pm.outcomes[Profile{Waymo: w, Cruise: c}]
	if !ok {
		return Outcome{}, fmt.Errorf("%w: profile (%s, %s)", ErrIncompleteMatrix, w, c)
	}
	return o, nil
}

// Payoff returns the net payoff pair for one profile.
func (pm *PayoffMatrix) Payoff(w, c Strategy) (waymo, cruise float64, err error) {
	o, err := pm.Outcome(w, c)
	if err != nil {
		return 0, 0, err
	}
	return o.WaymoPayoff, o.CruisePayoff, nil
}

// Outcomes returns all outcomes in fixed enumeration order (outer loop over
// Waymo strategies, inner loop over Cruise strategies).
func (pm *PayoffMatrix) Outcomes() []Outcome {
	out := make([]Outcome, 0, len(pm.outcomes))
	for _, w := range Strategies {
		for _, c := range Strategies {
			if o, ok := pm.outcomes[Profile{Waymo: w, Cruise: c}]; ok {
				out = append(out, o)
			}
		}
	}
	return out
}

// Len returns the number of profiles in the matrix.
func (pm *PayoffMatrix) Len() int {
	return len(pm.outcomes)
}
