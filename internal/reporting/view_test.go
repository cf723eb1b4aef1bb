package reporting

import (
	"testing"

	"rideshare-pricing-lab/internal/analysis"
	"rideshare-pricing-lab/internal/game"
)

func linearParams() game.Params {
	p := game.DefaultParams()
	p.Curve = game.CurveLinear
	return p
}

func buildLinear(t *testing.T) (*game.PayoffMatrix, game.Params, []analysis.Equilibrium) {
	t.Helper()
	p := linearParams()
	m, err := game.BuildMatrix(p)
	if err != nil {
		t.Fatalf("BuildMatrix failed: %v", err)
	}
	equilibria, err := analysis.FindNashEquilibria(m, analysis.DefaultTolerance)
	if err != nil {
		t.Fatalf("FindNashEquilibria failed: %v", err)
	}
	return m, p, equilibria
}

func TestBuildViews_NormalizedScores(t *testing.T) {
	m, p, equilibria := buildLinear(t)

	views := BuildViews(m, p, HorizonShortTerm, equilibria)
	if len(views) != 9 {
		t.Fatalf("expected 9 views, got %d", len(views))
	}

	// (High, High): payoff 13,125,000 over max revenue 25,000,000 →
	// 52.5% truncated to 52.
	v := views[0]
	if v.Profile != (game.Profile{Waymo: game.High, Cruise: game.High}) {
		t.Fatalf("expected first view to be (High, High), got %+v", v.Profile)
	}
	if v.WaymoScore != 52 || v.CruiseScore != 52 {
		t.Errorf("expected scores 52/52, got %d/%d", v.WaymoScore, v.CruiseScore)
	}

	// (Low, Low) is the linear-default Nash equilibrium:
	// 7,825,000 / 25M → 31.
	last := views[8]
	if last.Profile != (game.Profile{Waymo: game.Low, Cruise: game.Low}) {
		t.Fatalf("expected last view to be (Low, Low), got %+v", last.Profile)
	}
	if !last.IsNash {
		t.Error("expected (Low, Low) marked as Nash")
	}
	if last.WaymoScore != 31 {
		t.Errorf("expected score 31, got %d", last.WaymoScore)
	}
	if v.IsNash {
		t.Error("(High, High) must not be marked as Nash under the linear default")
	}
}

func TestBuildViews_NegativeScoresClampToZero(t *testing.T) {
	p := linearParams()
	matrix := game.NewPayoffMatrix([]game.Outcome{
		{
			Profile:      game.Profile{Waymo: game.High, Cruise: game.High},
			WaymoPayoff:  -2_000_000,
			CruisePayoff: 1_000_000,
		},
	})

	views := BuildViews(matrix, p, HorizonShortTerm, nil)
	if len(views) != 1 {
		t.Fatalf("expected 1 view, got %d", len(views))
	}
	if views[0].WaymoScore != 0 {
		t.Errorf("expected negative payoff clamped to score 0, got %d", views[0].WaymoScore)
	}
	if views[0].CruiseScore != 4 {
		t.Errorf("expected Cruise score 4 (1M/25M), got %d", views[0].CruiseScore)
	}
	// The raw payoff survives untouched next to the clamped score.
	if views[0].WaymoPayoff != -2_000_000 {
		t.Errorf("expected raw payoff preserved, got %f", views[0].WaymoPayoff)
	}
}

func TestBuildViews_DeviationDeltas(t *testing.T) {
	m, p, equilibria := buildLinear(t)

	views := BuildViews(m, p, HorizonShortTerm, equilibria)

	// At (High, High) Waymo's alternatives score: Medium 75 (18.9M/25M),
	// Low 56 (14.125M/25M) against the current 52.
	v := views[0]
	if len(v.WaymoDeviations) != 2 {
		t.Fatalf("expected 2 Waymo deviations, got %d", len(v.WaymoDeviations))
	}
	if v.WaymoDeviations[0].Strategy != game.Medium || v.WaymoDeviations[0].ScoreChange != 23 {
		t.Errorf("expected Medium deviation +23, got %+v", v.WaymoDeviations[0])
	}
	if v.WaymoDeviations[1].Strategy != game.Low || v.WaymoDeviations[1].ScoreChange != 4 {
		t.Errorf("expected Low deviation +4, got %+v", v.WaymoDeviations[1])
	}
}

func TestBuildViews_LongTermHorizonScalesRevenueOnly(t *testing.T) {
	m, p, equilibria := buildLinear(t)

	short := BuildViews(m, p, HorizonShortTerm, equilibria)
	long := BuildViews(m, p, HorizonLongTerm, equilibria)

	for i := range short {
		if long[i].WaymoRevenue != short[i].WaymoRevenue*12 {
			t.Errorf("view %d: expected 12x revenue, got %f vs %f", i, long[i].WaymoRevenue, short[i].WaymoRevenue)
		}
		// Scores normalize by horizon capacity as well, so they match.
		if long[i].WaymoScore != short[i].WaymoScore {
			t.Errorf("view %d: horizon changed score %d -> %d", i, short[i].WaymoScore, long[i].WaymoScore)
		}
	}
}
