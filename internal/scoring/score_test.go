package scoring

import (
	"testing"

	"StrataScan/internal/calculator"
	"StrataScan/internal/model"
)

func risingSeries(n int, start, step float64) *model.PriceSeries {
	bars := make([]model.OHLCV, n)
	price := start
	for i := range bars {
		bars[i] = model.OHLCV{
			Open:   price,
			High:   price * 1.01,
			Low:    price * 0.99,
			Close:  price,
			Volume: 6_000_000,
		}
		price += step
	}
	return &model.PriceSeries{
		Symbol:       "TEST",
		Bars:         bars,
		CurrentPrice: bars[n-1].Close,
	}
}

func strongInputs() Inputs {
	series := risingSeries(120, 100, 1)
	return Inputs{
		Series: series,
		Fundamentals: model.Fundamentals{
			TrailingPE:     12,
			RevenueGrowth:  25,
			ProfitMargin:   28,
			ReturnOnEquity: 22,
			DebtToEquity:   15,
			AvgVolume:      6_000_000,
		},
		Indicators: calculator.ComputeIndicatorSet(series),
		Criteria: model.ScreeningCriteria{
			MaxPERatio:       30,
			MinRevenueGrowth: 5,
		},
	}
}

func TestScore_TotalWithinBounds(t *testing.T) {
	p := DefaultPolicy()
	breakdown, _ := Score(strongInputs(), p)
	total := breakdown.Total()
	if total < 0 || total > 100 {
		t.Fatalf("total out of [0,100]: %.2f", total)
	}
	if breakdown.Momentum > p.Momentum.Max {
		t.Errorf("momentum exceeds max: %.2f", breakdown.Momentum)
	}
	if breakdown.Fundamentals > p.Fundamentals.Max {
		t.Errorf("fundamentals exceeds max: %.2f", breakdown.Fundamentals)
	}
	if breakdown.Technical > p.Technical.Max {
		t.Errorf("technical exceeds max: %.2f", breakdown.Technical)
	}
}

func TestScore_Deterministic(t *testing.T) {
	in := strongInputs()
	p := DefaultPolicy()
	first, _ := Score(in, p)
	second, _ := Score(in, p)
	if first != second {
		t.Errorf("same inputs produced different scores: %+v vs %+v", first, second)
	}
}

func TestScore_StrongStockPasses(t *testing.T) {
	p := DefaultPolicy()
	breakdown, reasons := Score(strongInputs(), p)
	if breakdown.Total() < p.PassThreshold {
		t.Errorf("expected strong stock to pass threshold %.0f, got %.2f (%v)",
			p.PassThreshold, breakdown.Total(), reasons)
	}
	if len(reasons) == 0 {
		t.Error("expected non-empty reasons for a passing stock")
	}
}

func TestScore_EmptyFundamentals(t *testing.T) {
	in := strongInputs()
	in.Fundamentals = model.Fundamentals{}
	breakdown, _ := Score(in, DefaultPolicy())
	if breakdown.Fundamentals != 0 {
		t.Errorf("expected zero fundamentals score for empty data, got %.2f", breakdown.Fundamentals)
	}
	if breakdown.Quality != 0 {
		t.Errorf("expected zero quality score for empty data, got %.2f", breakdown.Quality)
	}
}

func TestScore_NegativePENotRewarded(t *testing.T) {
	in := strongInputs()
	in.Fundamentals.TrailingPE = -8
	with, _ := Score(in, DefaultPolicy())
	in.Fundamentals.TrailingPE = 12
	without, _ := Score(in, DefaultPolicy())
	if with.Fundamentals >= without.Fundamentals {
		t.Errorf("negative PE must not earn PE points: %.2f vs %.2f",
			with.Fundamentals, without.Fundamentals)
	}
}

func TestLiquidityTiers(t *testing.T) {
	p := DefaultPolicy()
	cases := []struct {
		volume float64
		want   float64
	}{
		{6_000_000, 10},
		{5_000_000, 7}, // boundary is strict
		{2_500_000, 7},
		{1_500_000, 5},
		{500_000, 0},
	}
	for _, c := range cases {
		if got := award(p.Liquidity.Tiers, c.volume); got != c.want {
			t.Errorf("volume %.0f: expected %.0f points, got %.0f", c.volume, c.want, got)
		}
	}
}

func TestQualityDebtTiers(t *testing.T) {
	p := DefaultPolicy()
	cases := []struct {
		debt float64
		want float64
	}{
		{20, 5},
		{30, 3}, // boundary is strict
		{45, 3},
		{60, 0},
		{80, 0},
		{0, 0}, // missing data earns nothing
	}
	for _, c := range cases {
		if got := awardBelow(p.Quality.DebtTiers, c.debt); got != c.want {
			t.Errorf("debt/equity %.0f: expected %.0f points, got %.0f", c.debt, c.want, got)
		}
	}
}
