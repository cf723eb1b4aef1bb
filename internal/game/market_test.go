package game

import (
	"errors"
	"math"
	"testing"
)

// closeTo compares money-scale floats with a tolerance far above
// accumulated rounding error but far below a cent.
func closeTo(a, b float64) bool {
	return math.Abs(a-b) < 1e-3
}

func linearParams() Params {
	p := DefaultParams()
	p.Curve = CurveLinear
	return p
}

func TestPayoff_EqualPricesSplitMarketEvenly(t *testing.T) {
	for _, curve := range []ResponseCurve{CurveLinear, CurveSigmoid} {
		p := DefaultParams()
		p.Curve = curve
		model, err := NewModel(p)
		if err != nil {
			t.Fatalf("NewModel failed: %v", err)
		}

		o := model.Payoff(High, High)
		// Zero price difference → exact 50/50 split.
		if o.WaymoShare != 0.5 || o.CruiseShare != 0.5 {
			t.Errorf("curve %s: expected 0.5/0.5 shares, got %f/%f", curve, o.WaymoShare, o.CruiseShare)
		}
		// 0.5 * 1,000,000 * $25 = $12,500,000 gross for each player.
		if o.WaymoRevenue != 12_500_000 || o.CruiseRevenue != 12_500_000 {
			t.Errorf("curve %s: expected $12.5M gross revenue, got %f/%f", curve, o.WaymoRevenue, o.CruiseRevenue)
		}
	}
}

func TestPayoff_LinearEndToEnd(t *testing.T) {
	model, err := NewModel(linearParams())
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}

	// (High, High): 12.5M gross * 1.05 = 13,125,000 each.
	o := model.Payoff(High, High)
	if !closeTo(o.WaymoPayoff, 13_125_000) || !closeTo(o.CruisePayoff, 13_125_000) {
		t.Errorf("(High,High): expected 13,125,000 payoffs, got %f/%f", o.WaymoPayoff, o.CruisePayoff)
	}

	// (Low, Low): 0.5 * 1M * $15 = 7.5M gross, below 0.8*25M, so each
	// player takes the 50,000 loss: 7.5M*1.05 - 50,000 = 7,825,000.
	o = model.Payoff(Low, Low)
	if !closeTo(o.WaymoPayoff, 7_825_000) || !closeTo(o.CruisePayoff, 7_825_000) {
		t.Errorf("(Low,Low): expected 7,825,000 payoffs, got %f/%f", o.WaymoPayoff, o.CruisePayoff)
	}

	// (Low, High): priceDiff = 25-15 = 10, share = 0.5 + 10*0.3 = 3.5,
	// clamped to 0.9. Waymo: 0.9*1M*15 = 13.5M gross, still below 20M →
	// 13.5M*1.05 - 50,000 = 14,125,000.
	o = model.Payoff(Low, High)
	if o.WaymoShare != 0.9 {
		t.Errorf("(Low,High): expected Waymo share clamped to 0.9, got %f", o.WaymoShare)
	}
	if !closeTo(o.WaymoPayoff, 14_125_000) {
		t.Errorf("(Low,High): expected Waymo payoff 14,125,000, got %f", o.WaymoPayoff)
	}
	// Cruise: 0.1*1M*25 = 2.5M gross → 2,625,000.
	if !closeTo(o.CruisePayoff, 2_625_000) {
		t.Errorf("(Low,High): expected Cruise payoff 2,625,000, got %f", o.CruisePayoff)
	}
}

func TestPayoff_SigmoidAppliesCostFactors(t *testing.T) {
	model, err := NewModel(DefaultParams())
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}

	// (High, High): 12.5M gross, High cost factor 0.6 → profit 5M,
	// scaled by 1.05 → 5,250,000 each. No penalties at zero differential.
	o := model.Payoff(High, High)
	if !closeTo(o.WaymoPayoff, 5_250_000) || !closeTo(o.CruisePayoff, 5_250_000) {
		t.Errorf("expected 5,250,000 payoffs, got %f/%f", o.WaymoPayoff, o.CruisePayoff)
	}

	// (Medium, Medium): 0.5*1M*$20 = 10M gross, cost factor 0.7 → profit
	// 3M, scaled → 3,150,000.
	o = model.Payoff(Medium, Medium)
	if !closeTo(o.WaymoPayoff, 3_150_000) {
		t.Errorf("expected Medium payoff 3,150,000, got %f", o.WaymoPayoff)
	}
}

func TestPayoff_WindfallAppliesToHighOnly(t *testing.T) {
	p := linearParams()
	p.Windfall = 100_000
	model, err := NewModel(p)
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}

	// (High, High): (12.5M + 100k) * 1.05 = 13,230,000.
	o := model.Payoff(High, High)
	if !closeTo(o.WaymoPayoff, 13_230_000) {
		t.Errorf("expected High payoff 13,230,000 with windfall, got %f", o.WaymoPayoff)
	}

	// Medium never receives the windfall: 10M * 1.05 = 10,500,000.
	o = model.Payoff(Medium, Medium)
	if !closeTo(o.WaymoPayoff, 10_500_000) {
		t.Errorf("expected Medium payoff 10,500,000 without windfall, got %f", o.WaymoPayoff)
	}
}

func TestPayoff_SharesAlwaysSumToOneWithinClampBand(t *testing.T) {
	for _, curve := range []ResponseCurve{CurveLinear, CurveSigmoid} {
		p := DefaultParams()
		p.Curve = curve
		p.DemandElasticity = 5 // extreme elasticity still respects the clamp
		model, err := NewModel(p)
		if err != nil {
			t.Fatalf("NewModel failed: %v", err)
		}

		for _, w := range Strategies {
			for _, c := range Strategies {
				o := model.Payoff(w, c)
				if sum := o.WaymoShare + o.CruiseShare; math.Abs(sum-1.0) > 1e-12 {
					t.Errorf("curve %s (%s,%s): shares sum to %f, want 1.0", curve, w, c, sum)
				}
				if o.WaymoShare < 0.1 || o.WaymoShare > 0.9 {
					t.Errorf("curve %s (%s,%s): Waymo share %f outside [0.1, 0.9]", curve, w, c, o.WaymoShare)
				}
			}
		}
	}
}

func TestPayoff_ExtremeDifferentialPenalizesWaymoOnly(t *testing.T) {
	// Wide tiers so |priceDiff| = 20 exceeds 0.4 * maxPrice = 12.
	p := DefaultParams()
	p.PriceTiers = PriceTiers{High: 30, Medium: 20, Low: 10}
	model, err := NewModel(p)
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}

	undercut := model.Payoff(Low, High)
	unpenalized := model.netPayoff(Low, undercut.WaymoRevenue)
	if got, want := undercut.WaymoPayoff, unpenalized*undercutPenaltyFactor; !closeTo(got, want) {
		t.Errorf("undercut: expected Waymo payoff %f (x0.9), got %f", want, got)
	}

	overprice := model.Payoff(High, Low)
	unpenalized = model.netPayoff(High, overprice.WaymoRevenue)
	if got, want := overprice.WaymoPayoff, unpenalized*overpricePenaltyFactor; !closeTo(got, want) {
		t.Errorf("overprice: expected Waymo payoff %f (x0.85), got %f", want, got)
	}

	// Cruise is never penalized, even in the mirrored profile.
	cruiseRaw := model.netPayoff(High, undercut.CruiseRevenue)
	if undercut.CruisePayoff != cruiseRaw {
		t.Errorf("expected Cruise payoff untouched at %f, got %f", cruiseRaw, undercut.CruisePayoff)
	}
}

func TestPayoff_MirroredProfilesAreSymmetricBeforeWaymoPenalty(t *testing.T) {
	// With the default tiers the differential penalty never triggers
	// (max |priceDiff| = 10 = 0.4 * 25), so swapping the players must
	// mirror shares and payoffs exactly. Catches sign errors in the share
	// computation.
	model, err := NewModel(DefaultParams())
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}

	for _, w := range Strategies {
		for _, c := range Strategies {
			a := model.Payoff(w, c)
			b := model.Payoff(c, w)
			if math.Abs(a.WaymoShare-b.CruiseShare) > 1e-12 {
				t.Errorf("(%s,%s): Waymo share %f != mirrored Cruise share %f", w, c, a.WaymoShare, b.CruiseShare)
			}
			if !closeTo(a.WaymoPayoff, b.CruisePayoff) {
				t.Errorf("(%s,%s): Waymo payoff %f != mirrored Cruise payoff %f", w, c, a.WaymoPayoff, b.CruisePayoff)
			}
		}
	}
}

func TestNewModel_RejectsInvalidConfiguration(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Params)
	}{
		{"zero market size", func(p *Params) { p.MarketSize = 0 }},
		{"negative market size", func(p *Params) { p.MarketSize = -1 }},
		{"zero elasticity", func(p *Params) { p.DemandElasticity = 0 }},
		{"negative elasticity", func(p *Params) { p.DemandElasticity = -0.3 }},
		{"negative windfall", func(p *Params) { p.Windfall = -1 }},
		{"missing tier", func(p *Params) { p.PriceTiers = PriceTiers{High: 25, Medium: 20} }},
		{"non-positive price", func(p *Params) { p.PriceTiers = PriceTiers{High: 25, Medium: 0, Low: -5} }},
		{"non-decreasing prices", func(p *Params) { p.PriceTiers = PriceTiers{High: 20, Medium: 20, Low: 15} }},
		{"unknown curve", func(p *Params) { p.Curve = "cubic" }},
	}

	for _, tc := range cases {
		p := DefaultParams()
		tc.mutate(&p)
		if _, err := NewModel(p); !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("%s: expected ErrInvalidConfiguration, got %v", tc.name, err)
		}
	}
}
