package layer

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"StrataScan/internal/collector"
	"StrataScan/internal/model"
	"StrataScan/internal/scoring"
)

func strongSeries(symbol string) *model.PriceSeries {
	bars := make([]model.OHLCV, 120)
	price := 100.0
	for i := range bars {
		bars[i] = model.OHLCV{
			Open: price, High: price * 1.01, Low: price * 0.99,
			Close: price, Volume: 6_000_000,
		}
		price += 1
	}
	return &model.PriceSeries{Symbol: symbol, Bars: bars, CurrentPrice: bars[119].Close}
}

func flatSeries(symbol string) *model.PriceSeries {
	bars := make([]model.OHLCV, 120)
	for i := range bars {
		bars[i] = model.OHLCV{
			Open: 100, High: 101, Low: 99, Close: 100, Volume: 500_000,
		}
	}
	return &model.PriceSeries{Symbol: symbol, Bars: bars, CurrentPrice: 100}
}

func strongFundamentals(name string) model.Fundamentals {
	return model.Fundamentals{
		Name:           name,
		TrailingPE:     12,
		MarketCap:      8e9,
		RevenueGrowth:  25,
		ProfitMargin:   28,
		ReturnOnEquity: 22,
		DebtToEquity:   15,
		AvgVolume:      6_000_000,
		Sector:         "Technology",
	}
}

func balancedStrategy() *model.StrategyProfile {
	return DeriveStrategy(&model.MacroReport{RiskAppetite: model.AppetiteNeutral})
}

func TestScreen_SelectsAndRanks(t *testing.T) {
	fetcher := &collector.MockFetcher{
		Series: map[string]*model.PriceSeries{
			"GOOD": strongSeries("GOOD"),
			"WEAK": flatSeries("WEAK"),
		},
		Fundamentals: map[string]model.Fundamentals{
			"GOOD": strongFundamentals("Good Corp"),
			"WEAK": {Name: "Weak Corp", MarketCap: 6e9, AvgVolume: 2e6},
		},
	}
	screener := NewScreener(fetcher, scoring.DefaultPolicy(), []string{"GOOD", "WEAK"}, zerolog.Nop())

	report := screener.Screen(context.Background(), balancedStrategy())
	if report.Degraded {
		t.Fatal("screen with passing data must not be degraded")
	}
	if report.TotalScreened != 2 {
		t.Errorf("expected 2 screened, got %d", report.TotalScreened)
	}
	if len(report.SelectedStocks) != 1 || report.SelectedStocks[0].Symbol != "GOOD" {
		t.Fatalf("expected only GOOD to pass, got %+v", report.SelectedStocks)
	}
	pick := report.SelectedStocks[0]
	if !pick.Passes || pick.TotalScore < 60 {
		t.Errorf("selected stock must pass the threshold, got %.1f", pick.TotalScore)
	}
	if report.SectorDistribution["Technology"] != 1 {
		t.Errorf("unexpected sector distribution: %v", report.SectorDistribution)
	}
}

func TestScreen_HardGates(t *testing.T) {
	smallCap := strongFundamentals("Tiny Corp")
	smallCap.MarketCap = 1e8 // below every strategy floor

	fetcher := &collector.MockFetcher{
		Series:       map[string]*model.PriceSeries{"TINY": strongSeries("TINY")},
		Fundamentals: map[string]model.Fundamentals{"TINY": smallCap},
	}
	screener := NewScreener(fetcher, scoring.DefaultPolicy(), []string{"TINY"}, zerolog.Nop())

	report := screener.Screen(context.Background(), balancedStrategy())
	if !report.Degraded {
		t.Error("an empty screen must fall back and be marked degraded")
	}
}

func TestScreen_FallbackOnTotalFailure(t *testing.T) {
	fetcher := &collector.MockFetcher{Err: errors.New("all providers down")}
	screener := NewScreener(fetcher, scoring.DefaultPolicy(), nil, zerolog.Nop())

	report := screener.Screen(context.Background(), balancedStrategy())
	if !report.Degraded {
		t.Fatal("total failure must degrade the report")
	}
	if len(report.SelectedStocks) != len(fallbackBalanced) {
		t.Fatalf("expected %d fallback picks, got %d", len(fallbackBalanced), len(report.SelectedStocks))
	}
	for _, c := range report.SelectedStocks {
		if c.TotalScore != fallbackScore {
			t.Errorf("fallback pick %s must carry score %d, got %.0f", c.Symbol, fallbackScore, c.TotalScore)
		}
		if !c.Degraded {
			t.Errorf("fallback pick %s must be marked degraded", c.Symbol)
		}
	}
}

func TestScreen_FallbackListsPerFocus(t *testing.T) {
	fetcher := &collector.MockFetcher{Err: errors.New("down")}
	screener := NewScreener(fetcher, scoring.DefaultPolicy(), nil, zerolog.Nop())

	growth := DeriveStrategy(&model.MacroReport{RiskAppetite: model.AppetiteAggressive})
	report := screener.Screen(context.Background(), growth)
	if report.SelectedStocks[0].Symbol != "AAPL" || len(report.SelectedStocks) != 5 {
		t.Errorf("unexpected growth fallback: %+v", report.SelectedStocks)
	}

	value := DeriveStrategy(&model.MacroReport{RiskAppetite: model.AppetiteConservative})
	report = screener.Screen(context.Background(), value)
	if report.SelectedStocks[0].Symbol != "JPM" {
		t.Errorf("unexpected value fallback lead: %s", report.SelectedStocks[0].Symbol)
	}
}

func TestDefaultUniverse(t *testing.T) {
	universe := DefaultUniverse()
	seen := make(map[string]bool)
	for _, s := range universe {
		if seen[s] {
			t.Errorf("duplicate symbol in universe: %s", s)
		}
		seen[s] = true
	}
	if len(universe) < 50 {
		t.Errorf("universe unexpectedly small: %d", len(universe))
	}
}

func TestSectorRotation(t *testing.T) {
	fetcher := &collector.MockFetcher{}
	screener := NewScreener(fetcher, scoring.DefaultPolicy(), []string{"AAPL"}, zerolog.Nop())

	rotation := screener.SectorRotation(context.Background())
	if rotation.Degraded {
		t.Fatal("rotation with working fetcher must not be degraded")
	}
	if len(rotation.Sectors) != len(sectorETFs) {
		t.Fatalf("expected %d sectors, got %d", len(sectorETFs), len(rotation.Sectors))
	}
	if rotation.MarketBreadth != "strong" && rotation.MarketBreadth != "weak" {
		t.Errorf("breadth must be classified, got %q", rotation.MarketBreadth)
	}
	if len(rotation.TopPerforming) != 3 || len(rotation.Underperforming) != 3 {
		t.Errorf("expected top/bottom three sectors, got %v / %v",
			rotation.TopPerforming, rotation.Underperforming)
	}
	for i := 1; i < len(rotation.Sectors); i++ {
		if rotation.Sectors[i-1].RelativeStrength < rotation.Sectors[i].RelativeStrength {
			t.Fatal("sectors must be sorted by relative strength descending")
		}
	}
}
