package pipeline

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"StrataScan/internal/layer"
	"StrataScan/internal/model"
)

const (
	maxTopPicks       = 5
	fundamentalWeight = 0.6
	technicalWeight   = 0.4
)

// Analyzer sequences the three layers into one analysis run. Layers run
// strictly macro, then screening, then confirmation: each consumes only the
// previous layer's output.
type Analyzer struct {
	macro     *layer.MacroAnalyzer
	screener  *layer.Screener
	confirmer *layer.Confirmer
	log       zerolog.Logger
}

func NewAnalyzer(macro *layer.MacroAnalyzer, screener *layer.Screener, confirmer *layer.Confirmer, log zerolog.Logger) *Analyzer {
	return &Analyzer{
		macro:     macro,
		screener:  screener,
		confirmer: confirmer,
		log:       log.With().Str("component", "pipeline").Logger(),
	}
}

// Run executes one full analysis pass. Individual layers degrade internally;
// Run errors only when the pipeline ends with nothing to recommend and no
// fallback either.
func (a *Analyzer) Run(ctx context.Context) (*model.AnalysisResult, error) {
	runID := uuid.NewString()
	started := time.Now()
	a.log.Info().Str("run_id", runID).Msg("analysis run started")

	macroReport := a.macro.Analyze(ctx)
	strategy := layer.DeriveStrategy(macroReport)

	screening := a.screener.Screen(ctx, strategy)
	if len(screening.SelectedStocks) == 0 {
		return nil, fmt.Errorf("%w: screening produced no candidates", ErrPipelineFailure)
	}

	confirmation := a.confirmer.Confirm(ctx, screening.SelectedStocks)

	recommendations := a.buildRecommendations(macroReport, strategy, confirmation)

	result := &model.AnalysisResult{
		RunID:           runID,
		AnalysisTime:    started,
		Macro:           macroReport,
		Screening:       screening,
		Confirmation:    confirmation,
		Strategy:        strategy,
		Recommendations: recommendations,
		Summary:         buildSummary(recommendations),
		Degraded:        macroReport.Snapshot.Degraded || screening.Degraded,
	}

	a.log.Info().
		Str("run_id", runID).
		Dur("elapsed", time.Since(started)).
		Int("picks", len(recommendations.TopPicks)).
		Bool("degraded", result.Degraded).
		Msg("analysis run complete")
	return result, nil
}

// buildRecommendations ranks the confirmed stocks by the blended final rating
// and derives the advisory payload.
func (a *Analyzer) buildRecommendations(macro *model.MacroReport, strategy *model.StrategyProfile, confirmation *model.ConfirmationReport) *model.Recommendations {
	// Rank over copies: the confirmation report keeps its candidates as the
	// layer produced them.
	picks := make([]*model.Candidate, len(confirmation.ConfirmedStocks))
	for i, c := range confirmation.ConfirmedStocks {
		dup := *c
		dup.FinalRating = finalRating(dup.Scores)
		picks[i] = &dup
	}
	sort.Slice(picks, func(i, j int) bool {
		return picks[i].FinalRating > picks[j].FinalRating
	})
	if len(picks) > maxTopPicks {
		picks = picks[:maxTopPicks]
	}

	return &model.Recommendations{
		TopPicks:         picks,
		InvestmentThesis: investmentThesis(macro, strategy),
		RiskWarnings:     riskWarnings(macro, picks),
		PositionSizing:   positionSizing(picks),
		ExitStrategy:     exitStrategy(picks),
		MonitoringPoints: monitoringPoints(macro, picks),
	}
}

// finalRating blends the fundamental and technical sub-scores, each first
// normalized to 0-100 against its maximum weight.
func finalRating(s model.ScoreBreakdown) float64 {
	fundamental := s.Fundamentals / 30 * 100
	technical := s.Technical / 25 * 100
	return fundamentalWeight*fundamental + technicalWeight*technical
}

func investmentThesis(macro *model.MacroReport, strategy *model.StrategyProfile) string {
	return fmt.Sprintf("market in %s phase with %s risk appetite: apply a %s strategy focused on %v",
		macro.MarketPhase, macro.RiskAppetite, strategy.PrimaryFocus, strategy.SectorPreference)
}

func riskWarnings(macro *model.MacroReport, picks []*model.Candidate) []string {
	warnings := []string{"market volatility risk", "single-stock concentration risk"}

	if macro.MarketPhase == model.PhaseBullLate {
		warnings = append(warnings, "late-cycle market: valuations stretched, reversals sharpen")
	}
	if macro.MarketPhase == model.PhaseBear {
		warnings = append(warnings, "bear market: rallies may not hold")
	}
	if macro.Snapshot.InflationRate > 4 {
		warnings = append(warnings, fmt.Sprintf("elevated inflation at %.1f%%", macro.Snapshot.InflationRate))
	}
	for _, c := range picks {
		if c.Risk != nil && c.Risk.RiskLevel == "high" {
			warnings = append(warnings, fmt.Sprintf("%s carries high volatility and drawdown risk", c.Symbol))
		}
	}
	return warnings
}

// positionSizing suggests a per-symbol allocation band tiered by annualized
// volatility.
func positionSizing(picks []*model.Candidate) map[string]string {
	sizing := make(map[string]string, len(picks))
	for _, c := range picks {
		switch vol := pickVolatility(c); {
		case vol > 30:
			sizing[c.Symbol] = "3-5% of portfolio"
		case vol > 20:
			sizing[c.Symbol] = "5-8% of portfolio"
		default:
			sizing[c.Symbol] = "8-12% of portfolio"
		}
	}
	return sizing
}

// exitStrategy suggests stop-loss bands: tighter stops for the more volatile
// names.
func exitStrategy(picks []*model.Candidate) map[string]string {
	exits := make(map[string]string, len(picks))
	for _, c := range picks {
		switch vol := pickVolatility(c); {
		case vol > 30:
			exits[c.Symbol] = "tight stop loss at 5-7%"
		case vol > 20:
			exits[c.Symbol] = "standard stop loss at 8-10%"
		default:
			exits[c.Symbol] = "wide stop loss at 10-15%"
		}
	}
	return exits
}

func pickVolatility(c *model.Candidate) float64 {
	if c.Risk != nil {
		return c.Risk.Volatility
	}
	return c.Indicators.Volatility
}

func monitoringPoints(macro *model.MacroReport, picks []*model.Candidate) []string {
	points := []string{
		"watch for technical indicator reversals on held positions",
		"re-check fundamentals after each earnings release",
		fmt.Sprintf("macro phase is %s: re-run the analysis if sentiment shifts by more than 15 points", macro.MarketPhase),
	}
	for _, c := range picks {
		if c.SupportResistance != nil && len(c.SupportResistance.Support) > 0 {
			points = append(points, fmt.Sprintf("%s: key support at %.2f", c.Symbol, c.SupportResistance.Support[0]))
		}
	}
	return points
}

func buildSummary(rec *model.Recommendations) *model.ExecutiveSummary {
	summary := &model.ExecutiveSummary{
		TotalRecommendations: len(rec.TopPicks),
	}

	var confidence float64
	seen := make(map[string]bool)
	for i, c := range rec.TopPicks {
		if c.Strength != nil {
			if c.Strength.Signal == model.SignalStrongBuy {
				summary.StrongBuyCount++
			}
			confidence += c.Strength.Confidence
		}
		if i < 3 {
			sector := c.Sector
			if sector == "" {
				sector = "Unknown"
			}
			if !seen[sector] {
				seen[sector] = true
				summary.PrimarySectors = append(summary.PrimarySectors, sector)
			}
		}
	}
	if len(rec.TopPicks) > 0 {
		summary.AverageConfidence = confidence / float64(len(rec.TopPicks))
		summary.KeyMessage = fmt.Sprintf("%d candidates confirmed across %d sectors, %d with strong buy signals",
			len(rec.TopPicks), len(summary.PrimarySectors), summary.StrongBuyCount)
	} else {
		summary.KeyMessage = "no candidates confirmed this run, stay in cash and monitor"
	}
	return summary
}
