package reporting

import (
	"fmt"
	"strings"
)

// RenderCSV renders profile views as a CSV string.
func RenderCSV(views []ProfileView) string {
	var sb strings.Builder

	// Header
	sb.WriteString("waymo_strategy,cruise_strategy,waymo_price,cruise_price,")
	sb.WriteString("waymo_share,cruise_share,waymo_revenue,cruise_revenue,")
	sb.WriteString("waymo_payoff,cruise_payoff,waymo_score,cruise_score,is_nash\n")

	// Rows
	for _, v := range views {
		sb.WriteString(fmt.Sprintf("%s,%s,%.2f,%.2f,%.6f,%.6f,%.2f,%.2f,%.2f,%.2f,%d,%d,%t\n",
			v.Profile.Waymo,
			v.Profile.Cruise,
			v.WaymoPrice,
			v.CruisePrice,
			v.WaymoShare,
			v.CruiseShare,
			v.WaymoRevenue,
			v.CruiseRevenue,
			v.WaymoPayoff,
			v.CruisePayoff,
			v.WaymoScore,
			v.CruiseScore,
			v.IsNash,
		))
	}

	return sb.String()
}
