package layer

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"StrataScan/internal/collector"
	"StrataScan/internal/model"
)

// MacroAnalyzer is the environment layer: it turns the macro snapshot into a
// market phase, a risk appetite and a strategy profile for the screen.
type MacroAnalyzer struct {
	fetcher collector.MacroFetcher
	log     zerolog.Logger
}

func NewMacroAnalyzer(fetcher collector.MacroFetcher, log zerolog.Logger) *MacroAnalyzer {
	return &MacroAnalyzer{
		fetcher: fetcher,
		log:     log.With().Str("layer", "macro").Logger(),
	}
}

// Analyze fetches the macro snapshot and derives the report. A fetch failure
// degrades to the neutral snapshot rather than failing the run.
func (a *MacroAnalyzer) Analyze(ctx context.Context) *model.MacroReport {
	snap, err := a.fetcher.FetchMacro(ctx)
	if err != nil {
		a.log.Warn().Err(err).Msg("macro fetch failed, using neutral defaults")
		snap = model.MacroSnapshot{
			SentimentIndex:   50,
			SentimentLabel:   "Neutral",
			GDPGrowth:        2.0,
			UnemploymentRate: 4.0,
			InflationRate:    3.0,
			Degraded:         true,
		}
	}

	phase := determinePhase(snap)
	appetite := determineAppetite(snap.SentimentIndex, phase)

	report := &model.MacroReport{
		Snapshot:       snap,
		Interpretation: interpretSentiment(snap.SentimentIndex),
		EconomicHealth: assessEconomicHealth(snap),
		MarketPhase:    phase,
		RiskAppetite:   appetite,
		Environment:    assessEnvironment(phase, appetite),
		KeyFactors:     keyFactors(snap),
	}

	a.log.Info().
		Str("phase", string(phase)).
		Str("appetite", string(appetite)).
		Float64("sentiment", snap.SentimentIndex).
		Bool("degraded", snap.Degraded).
		Msg("macro analysis complete")
	return report
}

func determinePhase(s model.MacroSnapshot) model.MarketPhase {
	switch {
	case s.SentimentIndex > 75 && s.GDPGrowth > 3.0:
		return model.PhaseBullLate
	case s.SentimentIndex > 60 && s.GDPGrowth > 2.0:
		return model.PhaseBullMid
	case s.SentimentIndex < 25 && s.UnemploymentRate > 5.0:
		return model.PhaseBear
	case s.SentimentIndex < 40:
		return model.PhaseBearRecovery
	default:
		return model.PhaseSideways
	}
}

func determineAppetite(sentiment float64, phase model.MarketPhase) model.RiskAppetite {
	switch {
	case (phase == model.PhaseBullMid || phase == model.PhaseBearRecovery) && sentiment > 40:
		return model.AppetiteAggressive
	case phase == model.PhaseBullLate || sentiment > 80:
		return model.AppetiteCautious
	case phase == model.PhaseBear || sentiment < 25:
		return model.AppetiteConservative
	default:
		return model.AppetiteNeutral
	}
}

// DeriveStrategy maps the macro report onto a screening strategy profile.
func DeriveStrategy(report *model.MacroReport) *model.StrategyProfile {
	switch report.RiskAppetite {
	case model.AppetiteAggressive:
		return &model.StrategyProfile{
			PrimaryFocus:     model.FocusGrowth,
			RiskLevel:        "high",
			PositionSizing:   "aggressive",
			SectorPreference: []string{"Technology", "Consumer Cyclical", "Healthcare"},
			ScreeningCriteria: model.ScreeningCriteria{
				MinMarketCap:     1e9,
				MinVolume:        1e6,
				MaxPERatio:       40,
				MinRevenueGrowth: 10,
			},
		}
	case model.AppetiteConservative:
		return &model.StrategyProfile{
			PrimaryFocus:     model.FocusValue,
			RiskLevel:        "low",
			PositionSizing:   "conservative",
			SectorPreference: []string{"Financial Services", "Utilities", "Consumer Defensive"},
			ScreeningCriteria: model.ScreeningCriteria{
				MinMarketCap:     10e9,
				MinVolume:        2e6,
				MaxPERatio:       20,
				MinDividendYield: 2,
			},
		}
	default:
		return &model.StrategyProfile{
			PrimaryFocus:     model.FocusBalanced,
			RiskLevel:        "medium",
			PositionSizing:   "balanced",
			SectorPreference: []string{"Technology", "Healthcare", "Financial Services", "Industrials"},
			ScreeningCriteria: model.ScreeningCriteria{
				MinMarketCap:     5e9,
				MinVolume:        1.5e6,
				MaxPERatio:       30,
				MinRevenueGrowth: 5,
			},
		}
	}
}

func interpretSentiment(score float64) string {
	switch {
	case score > 75:
		return "extreme greed, stay cautious"
	case score > 60:
		return "greed leaning, participate moderately"
	case score > 40:
		return "neutral sentiment, balanced positioning"
	case score > 25:
		return "fear leaning, look for opportunities"
	default:
		return "extreme fear, accumulate selectively"
	}
}

func assessEconomicHealth(s model.MacroSnapshot) string {
	switch {
	case s.GDPGrowth > 3 && s.UnemploymentRate < 4 && s.InflationRate < 3:
		return "strong"
	case s.GDPGrowth > 2 && s.UnemploymentRate < 5 && s.InflationRate < 4:
		return "stable"
	case s.GDPGrowth < 1 || s.UnemploymentRate > 6 || s.InflationRate > 5:
		return "weak"
	default:
		return "moderate"
	}
}

func assessEnvironment(phase model.MarketPhase, appetite model.RiskAppetite) string {
	switch {
	case phase == model.PhaseBullMid && appetite == model.AppetiteAggressive:
		return "very optimistic"
	case phase == model.PhaseBearRecovery &&
		(appetite == model.AppetiteAggressive || appetite == model.AppetiteNeutral):
		return "cautiously optimistic"
	case phase == model.PhaseBear || appetite == model.AppetiteConservative:
		return "cautiously pessimistic"
	default:
		return "neutral, wait and see"
	}
}

func keyFactors(s model.MacroSnapshot) []string {
	factors := []string{
		fmt.Sprintf("fear & greed index at %.0f (%s)", s.SentimentIndex, s.SentimentLabel),
		fmt.Sprintf("GDP growth %.1f%%", s.GDPGrowth),
		fmt.Sprintf("unemployment %.1f%%", s.UnemploymentRate),
		fmt.Sprintf("inflation %.1f%%", s.InflationRate),
	}
	if s.FedFundsRate > 0 {
		factors = append(factors, fmt.Sprintf("fed funds rate %.2f%%", s.FedFundsRate))
	}
	if s.Degraded {
		factors = append(factors, "one or more macro sources unavailable, defaults in use")
	}
	return factors
}
