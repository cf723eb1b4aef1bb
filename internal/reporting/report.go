package reporting

import (
	"time"

	"rideshare-pricing-lab/internal/analysis"
	"rideshare-pricing-lab/internal/game"
)

// Report is a complete analysis of one parameter set.
type Report struct {
	GeneratedAt time.Time `json:"generated_at"`

	Params         game.Params `json:"params"`
	DiscountFactor float64     `json:"discount_factor"`
	Horizon        Horizon     `json:"horizon"`

	Views      []ProfileView                `json:"views"`
	Equilibria []analysis.Equilibrium       `json:"equilibria"`
	Dominant   analysis.DominantStrategies  `json:"dominant"`
	Repeated   *analysis.RepeatedGameResult `json:"repeated"`
}

// Request bundles everything needed to generate one report.
type Request struct {
	Params           game.Params
	DiscountFactor   float64
	Horizon          Horizon
	RepeatedStrategy analysis.RepeatedStrategy
}

// Generator produces reports from engine parameters. Each Generate call
// builds a fresh matrix; nothing is cached or shared between calls, so a
// single Generator is safe for concurrent use.
type Generator struct {
	now func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a report generator.
func NewGenerator() *Generator {
	return &Generator{now: func() time.Time { return time.Now().UTC() }}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate runs the full analysis chain: matrix, equilibria, dominant
// strategies, repeated game, profile views.
func (g *Generator) Generate(req Request) (*Report, error) {
	matrix, err := game.BuildMatrix(req.Params)
	if err != nil {
		return nil, err
	}

	equilibria, err := analysis.FindNashEquilibria(matrix, analysis.DefaultTolerance)
	if err != nil {
		return nil, err
	}

	dominant, err := analysis.FindDominantStrategies(matrix, analysis.DefaultTolerance)
	if err != nil {
		return nil, err
	}

	strategy := req.RepeatedStrategy
	if strategy == "" {
		strategy = analysis.GrimTrigger
	}
	repeated, err := analysis.AnalyzeRepeated(matrix, req.DiscountFactor, strategy)
	if err != nil {
		return nil, err
	}

	horizon := req.Horizon
	if horizon == "" {
		horizon = HorizonShortTerm
	}
	views := BuildViews(matrix, req.Params, horizon, equilibria)

	return &Report{
		GeneratedAt:    g.now(),
		Params:         req.Params,
		DiscountFactor: req.DiscountFactor,
		Horizon:        horizon,
		Views:          views,
		Equilibria:     equilibria,
		Dominant:       dominant,
		Repeated:       repeated,
	}, nil
}
