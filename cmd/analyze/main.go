// Package main runs a one-shot analysis and writes the Markdown report and
// payoff matrix CSV to an output directory.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"rideshare-pricing-lab/internal/analysis"
	"rideshare-pricing-lab/internal/game"
	"rideshare-pricing-lab/internal/reporting"
)

func main() {
	defaults := game.DefaultParams()

	elasticity := flag.Float64("elasticity", defaults.DemandElasticity, "Demand elasticity (price sensitivity)")
	marketSize := flag.Float64("market-size", defaults.MarketSize, "Total market size in rides")
	rateOfReturn := flag.Float64("rate-of-return", defaults.RateOfReturn, "Rate of return as a decimal fraction")
	windfall := flag.Float64("windfall", defaults.Windfall, "Windfall revenue for the High tier")
	curve := flag.String("curve", string(defaults.Curve), "Market response curve: sigmoid or linear")
	discountFactor := flag.Float64("discount-factor", 0.9, "Repeated-game discount factor in [0, 1)")
	strategy := flag.String("repeated-strategy", string(analysis.GrimTrigger), "Repeated-game strategy")
	horizon := flag.String("horizon", string(reporting.HorizonShortTerm), "Display horizon: short-term or long-term")
	outputDir := flag.String("output-dir", "output", "Output directory for generated files")
	flag.Parse()

	params := defaults
	params.DemandElasticity = *elasticity
	params.MarketSize = *marketSize
	params.RateOfReturn = *rateOfReturn
	params.Windfall = *windfall
	params.Curve = game.ResponseCurve(*curve)

	generator := reporting.NewGenerator()
	report, err := generator.Generate(reporting.Request{
		Params:           params,
		DiscountFactor:   *discountFactor,
		Horizon:          reporting.Horizon(*horizon),
		RepeatedStrategy: analysis.RepeatedStrategy(*strategy),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating report: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	mdPath := filepath.Join(*outputDir, "ANALYSIS.md")
	if err := os.WriteFile(mdPath, []byte(reporting.RenderMarkdown(report)), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", mdPath, err)
		os.Exit(1)
	}

	csvPath := filepath.Join(*outputDir, "payoff_matrix.csv")
	if err := os.WriteFile(csvPath, []byte(reporting.RenderCSV(report.Views)), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", csvPath, err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s and %s\n", mdPath, csvPath)
	fmt.Printf("Nash equilibria: %d\n", len(report.Equilibria))
	for _, eq := range report.Equilibria {
		fmt.Printf("  Waymo %s / Cruise %s\n", eq.Profile.Waymo, eq.Profile.Cruise)
	}
	if report.Repeated != nil && report.Repeated.Analytic {
		fmt.Printf("Cooperation sustainable: Waymo=%t Cruise=%t\n",
			report.Repeated.Waymo.CanSustainCooperation,
			report.Repeated.Cruise.CanSustainCooperation)
	}
}
