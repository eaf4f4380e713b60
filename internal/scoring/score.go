package scoring

import (
	"fmt"

	"StrataScan/internal/calculator"
	"StrataScan/internal/model"
)

const (
	monthOffset = 21 // trading days
	weekOffset  = 5
)

// Inputs bundles everything the score builder needs for one symbol.
type Inputs struct {
	Series       *model.PriceSeries
	Fundamentals model.Fundamentals
	Indicators   model.IndicatorSet
	Criteria     model.ScreeningCriteria
}

// Score computes the five-part screening score for one symbol. Every
// sub-score is clamped to its policy maximum, so the total is always in
// [0,100]. The returned reasons describe which tiers fired.
func Score(in Inputs, p Policy) (model.ScoreBreakdown, []string) {
	var reasons []string
	closes := in.Series.Closes()

	momentum, r := momentumScore(closes, p.Momentum)
	reasons = append(reasons, r...)

	fundamentals, r := fundamentalsScore(in.Fundamentals, in.Criteria, p.Fundamentals)
	reasons = append(reasons, r...)

	technical, r := technicalScore(in.Indicators, in.Series.CurrentPrice, p.Technical)
	reasons = append(reasons, r...)

	liquidity := clamp(award(p.Liquidity.Tiers, in.Fundamentals.AvgVolume), p.Liquidity.Max)
	if liquidity > 0 {
		reasons = append(reasons, fmt.Sprintf("liquid: %.0f avg daily volume", in.Fundamentals.AvgVolume))
	}

	quality := qualityScore(in.Fundamentals, p.Quality)
	if quality > 0 {
		reasons = append(reasons, "solid balance sheet quality")
	}

	return model.ScoreBreakdown{
		Momentum:     momentum,
		Fundamentals: fundamentals,
		Technical:    technical,
		Liquidity:    liquidity,
		Quality:      quality,
	}, reasons
}

func momentumScore(closes []float64, p MomentumPolicy) (float64, []string) {
	var score float64
	var reasons []string

	month := calculator.PeriodReturn(closes, monthOffset)
	if pts := award(p.MonthTiers, month); pts > 0 {
		score += pts
		reasons = append(reasons, fmt.Sprintf("1-month return %.1f%%", month))
	}

	week := calculator.PeriodReturn(closes, weekOffset)
	if pts := award(p.WeekTiers, week); pts > 0 {
		score += pts
		reasons = append(reasons, fmt.Sprintf("1-week return %.1f%%", week))
	}

	return clamp(score, p.Max), reasons
}

func fundamentalsScore(f model.Fundamentals, c model.ScreeningCriteria, p FundamentalsPolicy) (float64, []string) {
	var score float64
	var reasons []string

	if f.TrailingPE > 0 && c.MaxPERatio > 0 {
		switch {
		case f.TrailingPE < c.MaxPERatio*0.5:
			score += p.PEWellUnder
			reasons = append(reasons, fmt.Sprintf("attractive PE %.1f", f.TrailingPE))
		case f.TrailingPE < c.MaxPERatio:
			score += p.PEUnderCeiling
			reasons = append(reasons, fmt.Sprintf("acceptable PE %.1f", f.TrailingPE))
		}
	}

	if c.MinRevenueGrowth > 0 {
		switch {
		case f.RevenueGrowth > c.MinRevenueGrowth*2:
			score += p.GrowthDoubleMin
			reasons = append(reasons, fmt.Sprintf("strong revenue growth %.1f%%", f.RevenueGrowth))
		case f.RevenueGrowth > c.MinRevenueGrowth:
			score += p.GrowthOverMin
			reasons = append(reasons, fmt.Sprintf("revenue growth %.1f%%", f.RevenueGrowth))
		}
	}

	if pts := award(p.MarginTiers, f.ProfitMargin); pts > 0 {
		score += pts
		reasons = append(reasons, fmt.Sprintf("profit margin %.1f%%", f.ProfitMargin))
	}

	return clamp(score, p.Max), reasons
}

func technicalScore(ind model.IndicatorSet, price float64, p TechnicalPolicy) (float64, []string) {
	var score float64
	var reasons []string

	rsi := ind.RSI
	switch {
	case rsi >= p.RSIIdealLow && rsi <= p.RSIIdealHigh:
		score += p.RSIIdealPoints
		reasons = append(reasons, fmt.Sprintf("RSI %.0f in healthy range", rsi))
	case rsi >= p.RSIAcceptLow && rsi <= p.RSIAcceptHigh:
		score += p.RSIAcceptPoints
	}

	ma := ind.MovingAverages
	switch {
	case price > ma.MA20 && ma.MA20 > ma.MA50:
		score += p.TrendAligned
		reasons = append(reasons, "price above aligned MA20/MA50")
	case price > ma.MA20:
		score += p.AboveMA20
		reasons = append(reasons, "price above MA20")
	}

	if ind.VolumeRatio > p.VolumeSurgeRatio {
		score += p.VolumeSurgePoints
		reasons = append(reasons, fmt.Sprintf("volume surge %.2fx", ind.VolumeRatio))
	}

	return clamp(score, p.Max), reasons
}

func qualityScore(f model.Fundamentals, p QualityPolicy) float64 {
	score := award(p.ROETiers, f.ReturnOnEquity)
	score += awardBelow(p.DebtTiers, f.DebtToEquity)
	return clamp(score, p.Max)
}

func clamp(v, max float64) float64 {
	if v > max {
		return max
	}
	return v
}
