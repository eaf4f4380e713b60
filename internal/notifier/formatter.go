package notifier

import (
	"fmt"
	"strings"

	"StrataScan/internal/model"
)

// FormatRunAlert renders a completed run as a Telegram HTML message. Returns
// an empty string when there is nothing worth alerting on.
func FormatRunAlert(result *model.AnalysisResult) string {
	if result.Recommendations == nil || len(result.Recommendations.TopPicks) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("<b>📊 Analysis Run Complete</b>\n")
	if result.Macro != nil {
		fmt.Fprintf(&b, "Market: %s / %s risk appetite\n",
			result.Macro.MarketPhase, result.Macro.RiskAppetite)
	}
	if result.Strategy != nil {
		fmt.Fprintf(&b, "Strategy: %s\n", result.Strategy.PrimaryFocus)
	}
	if result.Degraded {
		b.WriteString("⚠️ run degraded: some data sources were unavailable\n")
	}

	b.WriteString("\n<b>Top picks</b>\n")
	for _, pick := range result.Recommendations.TopPicks {
		line := fmt.Sprintf("• %s  rating %.0f", pick.Symbol, pick.FinalRating)
		if pick.Strength != nil {
			line += fmt.Sprintf("  %s (%.0f%% confidence)", pick.Strength.Signal, pick.Strength.Confidence)
		}
		b.WriteString(line + "\n")
	}

	strong := strongBuys(result.Recommendations.TopPicks)
	if len(strong) > 0 {
		fmt.Fprintf(&b, "\n🔥 strong buy: %s\n", strings.Join(strong, ", "))
	}
	return b.String()
}

func strongBuys(picks []*model.Candidate) []string {
	var symbols []string
	for _, p := range picks {
		if p.Strength != nil && p.Strength.Signal == model.SignalStrongBuy {
			symbols = append(symbols, p.Symbol)
		}
	}
	return symbols
}
