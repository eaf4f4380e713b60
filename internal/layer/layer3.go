package layer

import (
	"context"
	"math"
	"sort"

	"github.com/rs/zerolog"

	"StrataScan/internal/calculator"
	"StrataScan/internal/collector"
	"StrataScan/internal/model"
	"StrataScan/internal/scoring"
)

const (
	confirmDays  = 365 // roughly one trading year of calendar days
	maxConfirmed = 8
	riskFreeRate = 0.02
)

// Confirmer is the confirmation layer: it re-examines the screened candidates
// over a year of history, attaches risk metrics, key levels and strength
// signals, and keeps only the entry signals.
type Confirmer struct {
	fetcher collector.MarketDataFetcher
	policy  scoring.Policy
	log     zerolog.Logger
}

func NewConfirmer(fetcher collector.MarketDataFetcher, policy scoring.Policy, log zerolog.Logger) *Confirmer {
	return &Confirmer{
		fetcher: fetcher,
		policy:  policy,
		log:     log.With().Str("layer", "confirmation").Logger(),
	}
}

// Confirm deep-dives the screened candidates. Symbols whose history cannot be
// fetched are dropped, not defaulted: confirmation must not promote a symbol
// it could not inspect.
func (c *Confirmer) Confirm(ctx context.Context, screened []*model.Candidate) *model.ConfirmationReport {
	benchmark := c.benchmarkReturns(ctx)

	var confirmed []*model.Candidate
	for _, candidate := range screened {
		enriched, err := c.inspect(ctx, candidate, benchmark)
		if err != nil {
			c.log.Debug().Err(err).Str("symbol", candidate.Symbol).Msg("confirmation skipped")
			continue
		}
		if enriched.Strength != nil && enriched.Strength.Signal.IsBuy() {
			confirmed = append(confirmed, enriched)
		}
	}

	sort.Slice(confirmed, func(i, j int) bool {
		return confirmed[i].Strength.Confidence > confirmed[j].Strength.Confidence
	})
	if len(confirmed) > maxConfirmed {
		confirmed = confirmed[:maxConfirmed]
	}

	report := &model.ConfirmationReport{ConfirmedStocks: confirmed}
	for _, cand := range confirmed {
		if cand.Strength.Signal == model.SignalStrongBuy {
			report.StrongSignals++
		}
		report.AvgConfidence += cand.Strength.Confidence
		if cand.Risk != nil && cand.Risk.RiskLevel == "high" {
			report.HighRiskStocks++
		}
	}
	if len(confirmed) > 0 {
		report.AvgConfidence /= float64(len(confirmed))
	}

	c.log.Info().
		Int("in", len(screened)).
		Int("confirmed", len(confirmed)).
		Int("strong", report.StrongSignals).
		Msg("confirmation complete")
	return report
}

// inspect re-fetches a year of history and fills in the confirmation fields
// on a copy of the candidate.
func (c *Confirmer) inspect(ctx context.Context, candidate *model.Candidate, benchmark []float64) (*model.Candidate, error) {
	series, err := c.fetcher.FetchPriceSeries(ctx, candidate.Symbol, confirmDays)
	if err != nil {
		return nil, err
	}

	enriched := *candidate
	enriched.CurrentPrice = series.CurrentPrice
	enriched.Indicators = calculator.ComputeIndicatorSet(series)

	risk := c.riskMetrics(series, benchmark, candidate.Fundamentals.AvgVolume)
	enriched.Risk = &risk

	sr := calculator.SupportResistance(series.Bars, series.CurrentPrice)
	enriched.SupportResistance = &sr

	strength := scoring.SignalStrength(enriched.Indicators, series.CurrentPrice, sr)
	enriched.Strength = &strength

	target := heuristicTarget(series.CurrentPrice, enriched.Indicators, sr)
	signal := scoring.ClassifyTarget(series.CurrentPrice, target)
	enriched.Signal = &signal

	return &enriched, nil
}

// heuristicTarget estimates a near-term price objective from the key levels:
// the nearest resistance when the price trades above its 20-day average, the
// nearest support when below, otherwise the average itself.
func heuristicTarget(price float64, ind model.IndicatorSet, sr model.SupportResistance) float64 {
	ma20 := ind.MovingAverages.MA20
	switch {
	case price > ma20 && len(sr.Resistance) > 0:
		return sr.Resistance[0]
	case price < ma20 && len(sr.Support) > 0:
		return sr.Support[0]
	default:
		return ma20
	}
}

func (c *Confirmer) benchmarkReturns(ctx context.Context) []float64 {
	spy, err := c.fetcher.FetchPriceSeries(ctx, "SPY", confirmDays)
	if err != nil {
		c.log.Warn().Err(err).Msg("benchmark unavailable, betas default to 1.0")
		return nil
	}
	return calculator.DailyReturns(spy.Closes())
}

func (c *Confirmer) riskMetrics(series *model.PriceSeries, benchmark []float64, avgVolume float64) model.RiskMetrics {
	returns := calculator.DailyReturns(series.Closes())

	m := model.RiskMetrics{
		Volatility:  calculator.AnnualizedVolatility(returns),
		MaxDrawdown: calculator.MaxDrawdown(returns),
		VaR95:       calculator.ValueAtRisk95(returns),
		SharpeRatio: calculator.SharpeRatio(returns, riskFreeRate),
		Beta:        calculator.Beta(returns, benchmark),
	}
	if avgVolume == 0 {
		avgVolume = calculator.AvgVolume(series.Bars, 20)
	}
	m.LiquidityScore = c.liquidityScore(avgVolume)
	m.RiskLevel = riskLevel(m)
	return m
}

func (c *Confirmer) liquidityScore(avgVolume float64) float64 {
	for _, tier := range c.policy.Liquidity.Tiers {
		if avgVolume > tier.Threshold {
			return tier.Points
		}
	}
	return 2
}

// riskLevel buckets the combined volatility, drawdown and beta pressure.
func riskLevel(m model.RiskMetrics) string {
	score := 0

	switch vol := m.Volatility; {
	case vol > 40:
		score += 3
	case vol > 25:
		score += 2
	case vol > 15:
		score++
	}

	switch dd := math.Abs(m.MaxDrawdown); {
	case dd > 30:
		score += 3
	case dd > 20:
		score += 2
	case dd > 10:
		score++
	}

	switch {
	case m.Beta > 1.5:
		score += 2
	case m.Beta > 1.2:
		score++
	}

	switch {
	case score >= 6:
		return "high"
	case score >= 3:
		return "medium"
	default:
		return "low"
	}
}
