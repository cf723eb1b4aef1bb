package reporting

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// RenderMarkdown renders a report as a Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Pricing Strategy Analysis\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Curve: %s | Elasticity: %.2f | Market Size: %.0f | Rate of Return: %.2f%% | Windfall: $%.0f\n\n",
		r.Params.Curve, r.Params.DemandElasticity, r.Params.MarketSize, r.Params.RateOfReturn*100, r.Params.Windfall))

	// Payoff Matrix
	sb.WriteString("## Payoff Matrix\n\n")
	sb.WriteString("Nash equilibria are marked with **bold** cells. Payoffs in millions.\n\n")
	sb.WriteString("| Waymo \\ Cruise | High | Medium | Low |\n")
	sb.WriteString("|----------------|------|--------|-----|\n")

	cells := make(map[string]string, len(r.Views))
	rowOrder := []string{}
	seen := map[string]bool{}
	for _, v := range r.Views {
		cell := fmt.Sprintf("($%.2fM, $%.2fM)", v.WaymoPayoff/1e6, v.CruisePayoff/1e6)
		if v.IsNash {
			cell = "**" + cell + "**"
		}
		key := string(v.Profile.Waymo) + "/" + string(v.Profile.Cruise)
		cells[key] = cell
		if !seen[string(v.Profile.Waymo)] {
			seen[string(v.Profile.Waymo)] = true
			rowOrder = append(rowOrder, string(v.Profile.Waymo))
		}
	}
	for _, w := range rowOrder {
		sb.WriteString(fmt.Sprintf("| **%s** | %s | %s | %s |\n",
			w, cells[w+"/High"], cells[w+"/Medium"], cells[w+"/Low"]))
	}
	sb.WriteString("\n")

	// Nash Equilibria
	sb.WriteString("## Nash Equilibria\n\n")
	if len(r.Equilibria) > 0 {
		for _, eq := range r.Equilibria {
			sb.WriteString(fmt.Sprintf("- Waymo: %s, Cruise: %s (Payoffs: Waymo $%.2fM, Cruise $%.2fM)\n",
				eq.Profile.Waymo, eq.Profile.Cruise, eq.WaymoPayoff/1e6, eq.CruisePayoff/1e6))
		}
	} else {
		sb.WriteString("No pure-strategy Nash equilibrium found.\n")
	}
	sb.WriteString("\n")

	// Dominant Strategies
	sb.WriteString("## Dominant Strategies\n\n")
	if r.Dominant.Waymo != "" {
		sb.WriteString(fmt.Sprintf("- Waymo's dominant strategy: %s\n", r.Dominant.Waymo))
	} else {
		sb.WriteString("- Waymo has no dominant strategy\n")
	}
	if r.Dominant.Cruise != "" {
		sb.WriteString(fmt.Sprintf("- Cruise's dominant strategy: %s\n", r.Dominant.Cruise))
	} else {
		sb.WriteString("- Cruise has no dominant strategy\n")
	}
	sb.WriteString("\n")

	// Repeated Game
	if r.Repeated != nil {
		sb.WriteString(fmt.Sprintf("## Repeated Game (%s)\n\n", r.Repeated.Strategy))
		if r.Repeated.Analytic || r.Repeated.Waymo.CriticalDiscountFactor != 0 {
			sb.WriteString(fmt.Sprintf("- Waymo's critical discount factor: %s\n", formatFactor(r.Repeated.Waymo.CriticalDiscountFactor)))
			sb.WriteString(fmt.Sprintf("- Cruise's critical discount factor: %s\n", formatFactor(r.Repeated.Cruise.CriticalDiscountFactor)))
			sb.WriteString(fmt.Sprintf("- Current discount factor: %.2f\n", r.Repeated.DiscountFactor))
			sb.WriteString(fmt.Sprintf("- Can sustain cooperation (Waymo): %s\n", yesNo(r.Repeated.Waymo.CanSustainCooperation)))
			sb.WriteString(fmt.Sprintf("- Can sustain cooperation (Cruise): %s\n", yesNo(r.Repeated.Cruise.CanSustainCooperation)))
			if r.Repeated.Analytic {
				sb.WriteString(fmt.Sprintf("- Long-run value (Waymo): $%.2fM\n", r.Repeated.Waymo.LongRunValue/1e6))
				sb.WriteString(fmt.Sprintf("- Long-run value (Cruise): $%.2fM\n", r.Repeated.Cruise.LongRunValue/1e6))
			}
		}
		sb.WriteString(fmt.Sprintf("\n*%s*\n\n", r.Repeated.Explanation))
		if !r.Repeated.Analytic {
			sb.WriteString("Note: simplified stand-in, not derived from the payoff matrix.\n\n")
		}
	}

	// Profile Views
	sb.WriteString(fmt.Sprintf("## Market Detail (%s horizon)\n\n", r.Horizon))
	sb.WriteString("| Waymo | Cruise | Waymo Share | Cruise Share | Waymo Revenue | Cruise Revenue | Waymo Score | Cruise Score | Nash |\n")
	sb.WriteString("|-------|--------|-------------|--------------|---------------|----------------|-------------|--------------|------|\n")
	for _, v := range r.Views {
		nash := ""
		if v.IsNash {
			nash = "yes"
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %.1f%% | %.1f%% | $%s | $%s | %d | %d | %s |\n",
			v.Profile.Waymo, v.Profile.Cruise,
			v.WaymoShare*100, v.CruiseShare*100,
			formatMoney(v.WaymoRevenue), formatMoney(v.CruiseRevenue),
			v.WaymoScore, v.CruiseScore, nash))
	}
	sb.WriteString("\n")

	return sb.String()
}

// formatFactor renders a critical discount factor, spelling out the
// degenerate infinite case.
func formatFactor(f float64) string {
	if math.IsInf(f, 1) {
		return "unattainable (no deterrence gap)"
	}
	return fmt.Sprintf("%.2f", f)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// formatMoney renders a dollar amount with thousands separators.
func formatMoney(v float64) string {
	neg := v < 0
	s := fmt.Sprintf("%.0f", math.Abs(v))
	var out strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(r)
	}
	if neg {
		return "-" + out.String()
	}
	return out.String()
}
