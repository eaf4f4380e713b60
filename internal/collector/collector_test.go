package collector

import (
	"context"
	"testing"

	"StrataScan/internal/model"
)

func TestGenerateSeries_Deterministic(t *testing.T) {
	first := GenerateSeries("AAPL", 100)
	second := GenerateSeries("AAPL", 100)
	if first.Len() != 100 {
		t.Fatalf("expected 100 bars, got %d", first.Len())
	}
	for i := range first.Bars {
		if first.Bars[i].Close != second.Bars[i].Close {
			t.Fatalf("bar %d differs between runs: %.4f vs %.4f",
				i, first.Bars[i].Close, second.Bars[i].Close)
		}
	}
	other := GenerateSeries("MSFT", 100)
	if other.CurrentPrice == first.CurrentPrice {
		t.Error("distinct symbols should not share the same generated price")
	}
}

func TestGenerateSeries_DegenerateWindow(t *testing.T) {
	for _, days := range []int{0, -5} {
		got := GenerateSeries("AAPL", days)
		if got.Len() != 1 {
			t.Errorf("days=%d: expected a single-bar series, got %d bars", days, got.Len())
		}
		if got.CurrentPrice <= 0 {
			t.Errorf("days=%d: expected a positive price, got %.2f", days, got.CurrentPrice)
		}
	}
}

func TestMockFetcher_Overrides(t *testing.T) {
	custom := &model.PriceSeries{Symbol: "TEST", CurrentPrice: 42}
	m := &MockFetcher{Series: map[string]*model.PriceSeries{"TEST": custom}}
	got, err := m.FetchPriceSeries(context.Background(), "TEST", 100)
	if err != nil {
		t.Fatal(err)
	}
	if got.CurrentPrice != 42 {
		t.Errorf("expected override series, got price %.2f", got.CurrentPrice)
	}
}

func TestMockFetcher_MacroDefaults(t *testing.T) {
	m := &MockFetcher{}
	snap, err := m.FetchMacro(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if snap.SentimentIndex != 50 || snap.GDPGrowth != 2.0 {
		t.Errorf("expected neutral defaults, got %+v", snap)
	}
	if snap.Degraded {
		t.Error("mock macro snapshot should not be degraded")
	}
}

func TestMergeFundamentals(t *testing.T) {
	base := model.Fundamentals{
		Name:       "Apple Inc.",
		TrailingPE: 28,
		MarketCap:  3e12,
	}
	rich := model.Fundamentals{
		Name:           "Apple",
		TrailingPE:     27,
		RevenueGrowth:  6,
		ProfitMargin:   24,
		ReturnOnEquity: 45,
		DebtToEquity:   55,
		Industry:       "Technology",
	}
	mergeFundamentals(&base, rich)

	if base.Name != "Apple Inc." {
		t.Errorf("base name must win: got %s", base.Name)
	}
	if base.TrailingPE != 28 {
		t.Errorf("base PE must win: got %.1f", base.TrailingPE)
	}
	if base.RevenueGrowth != 6 || base.ProfitMargin != 24 {
		t.Error("enrichment fields must be filled from the rich source")
	}
	if base.Industry != "Technology" {
		t.Errorf("empty industry must be filled: got %s", base.Industry)
	}
}
