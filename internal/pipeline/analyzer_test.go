package pipeline

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"StrataScan/internal/collector"
	"StrataScan/internal/layer"
	"StrataScan/internal/model"
	"StrataScan/internal/scoring"
)

// recordingFetcher wraps the mock and records which symbols each consumer
// asked for.
type recordingFetcher struct {
	collector.MockFetcher
	mu      sync.Mutex
	fetched []string
}

func (r *recordingFetcher) FetchPriceSeries(ctx context.Context, symbol string, days int) (*model.PriceSeries, error) {
	r.mu.Lock()
	r.fetched = append(r.fetched, symbol)
	r.mu.Unlock()
	return r.MockFetcher.FetchPriceSeries(ctx, symbol, days)
}

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

func newTestAnalyzer(fetcher collector.MarketDataFetcher, macro collector.MacroFetcher, universe []string) *Analyzer {
	log := zerolog.Nop()
	policy := scoring.DefaultPolicy()
	return NewAnalyzer(
		layer.NewMacroAnalyzer(macro, log),
		layer.NewScreener(fetcher, policy, universe, log),
		layer.NewConfirmer(fetcher, policy, log),
		log,
	)
}

func TestRun_FullPipeline(t *testing.T) {
	mock := &collector.MockFetcher{
		Series: map[string]*model.PriceSeries{
			"GOOD": strongSeries("GOOD"),
		},
		Fundamentals: map[string]model.Fundamentals{
			"GOOD": strongFundamentals("Good Corp"),
		},
	}
	analyzer := newTestAnalyzer(mock, mock, []string{"GOOD"})

	result, err := analyzer.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if result.RunID == "" {
		t.Error("run must carry an ID")
	}
	if result.Macro == nil || result.Screening == nil || result.Confirmation == nil {
		t.Fatal("all three layer reports must be present")
	}
	if result.Strategy == nil || result.Recommendations == nil || result.Summary == nil {
		t.Fatal("strategy, recommendations and summary must be present")
	}
	if len(result.Recommendations.TopPicks) > 5 {
		t.Errorf("top picks capped at 5, got %d", len(result.Recommendations.TopPicks))
	}
	for _, pick := range result.Recommendations.TopPicks {
		if _, ok := result.Recommendations.PositionSizing[pick.Symbol]; !ok {
			t.Errorf("pick %s missing position sizing", pick.Symbol)
		}
		if _, ok := result.Recommendations.ExitStrategy[pick.Symbol]; !ok {
			t.Errorf("pick %s missing exit rule", pick.Symbol)
		}
	}
}

func TestRun_LayerSequencing(t *testing.T) {
	fetcher := &recordingFetcher{
		MockFetcher: collector.MockFetcher{
			Series: map[string]*model.PriceSeries{
				"GOOD": strongSeries("GOOD"),
			},
			Fundamentals: map[string]model.Fundamentals{
				"GOOD": strongFundamentals("Good Corp"),
			},
		},
	}
	analyzer := newTestAnalyzer(fetcher, &collector.MockFetcher{}, []string{"GOOD", "NOPE"})

	result, err := analyzer.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	// The confirmation layer may only fetch symbols the screening layer
	// selected, plus the benchmark.
	selected := make(map[string]bool)
	for _, c := range result.Screening.SelectedStocks {
		selected[c.Symbol] = true
	}
	screenedUniverse := map[string]bool{"GOOD": true, "NOPE": true}
	for _, etf := range []string{"XLK", "XLF", "XLV", "XLY", "XLP", "XLE", "XLI", "XLB", "XLRE", "XLU", "XLC", "SPY"} {
		screenedUniverse[etf] = true
	}
	for _, symbol := range fetcher.fetched {
		if !screenedUniverse[symbol] && !selected[symbol] {
			t.Errorf("confirmation fetched %s which the screen never selected", symbol)
		}
	}

	for _, c := range result.Confirmation.ConfirmedStocks {
		if !selected[c.Symbol] {
			t.Errorf("confirmed %s was not in the screening output", c.Symbol)
		}
	}
}

func TestBuildRecommendations_DoesNotMutateConfirmation(t *testing.T) {
	confirmed := []*model.Candidate{
		{Symbol: "ALPHA", Scores: model.ScoreBreakdown{Fundamentals: 30, Technical: 25}},
		{Symbol: "BETA", Scores: model.ScoreBreakdown{Fundamentals: 15, Technical: 10}},
	}
	report := &model.ConfirmationReport{ConfirmedStocks: confirmed}

	a := &Analyzer{log: zerolog.Nop()}
	rec := a.buildRecommendations(&model.MacroReport{}, &model.StrategyProfile{}, report)

	for _, c := range confirmed {
		if c.FinalRating != 0 {
			t.Errorf("%s: ranking leaked into the confirmation report (rating %.1f)", c.Symbol, c.FinalRating)
		}
	}
	if len(rec.TopPicks) != 2 {
		t.Fatalf("expected 2 picks, got %d", len(rec.TopPicks))
	}
	if rec.TopPicks[0].Symbol != "ALPHA" || math.Abs(rec.TopPicks[0].FinalRating-100) > 1e-9 {
		t.Errorf("expected ALPHA rated 100 first, got %s %.1f",
			rec.TopPicks[0].Symbol, rec.TopPicks[0].FinalRating)
	}
	for _, pick := range rec.TopPicks {
		for _, c := range confirmed {
			if c.Symbol == pick.Symbol && c == pick {
				t.Errorf("%s: pick shares a pointer with the confirmation report", pick.Symbol)
			}
		}
	}
}

func TestRun_DegradedPropagation(t *testing.T) {
	mock := &collector.MockFetcher{
		Macro: &model.MacroSnapshot{
			SentimentIndex: 50, GDPGrowth: 2.0,
			UnemploymentRate: 4.0, InflationRate: 3.0,
			Degraded: true,
		},
		Series: map[string]*model.PriceSeries{
			"GOOD": strongSeries("GOOD"),
		},
		Fundamentals: map[string]model.Fundamentals{
			"GOOD": strongFundamentals("Good Corp"),
		},
	}
	analyzer := newTestAnalyzer(mock, mock, []string{"GOOD"})

	result, err := analyzer.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !result.Degraded {
		t.Error("a degraded macro snapshot must mark the whole run degraded")
	}
}

func TestFinalRating(t *testing.T) {
	full := model.ScoreBreakdown{Fundamentals: 30, Technical: 25}
	if got := finalRating(full); math.Abs(got-100) > 1e-9 {
		t.Errorf("max sub-scores must rate 100, got %.2f", got)
	}

	fundOnly := model.ScoreBreakdown{Fundamentals: 30}
	if got := finalRating(fundOnly); math.Abs(got-60) > 1e-9 {
		t.Errorf("fundamentals alone must rate 60, got %.2f", got)
	}

	techOnly := model.ScoreBreakdown{Technical: 25}
	if got := finalRating(techOnly); math.Abs(got-40) > 1e-9 {
		t.Errorf("technical alone must rate 40, got %.2f", got)
	}
}

func TestBuildSummary_Empty(t *testing.T) {
	summary := buildSummary(&model.Recommendations{})
	if summary.TotalRecommendations != 0 {
		t.Errorf("expected zero recommendations, got %d", summary.TotalRecommendations)
	}
	if summary.KeyMessage == "" {
		t.Error("empty run still needs a key message")
	}
}
