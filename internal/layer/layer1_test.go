package layer

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"StrataScan/internal/collector"
	"StrataScan/internal/model"
)

func TestDeterminePhase(t *testing.T) {
	cases := []struct {
		name string
		snap model.MacroSnapshot
		want model.MarketPhase
	}{
		{"euphoric growth", model.MacroSnapshot{SentimentIndex: 80, GDPGrowth: 3.5}, model.PhaseBullLate},
		{"healthy bull", model.MacroSnapshot{SentimentIndex: 65, GDPGrowth: 2.5}, model.PhaseBullMid},
		{"fear with job losses", model.MacroSnapshot{SentimentIndex: 20, UnemploymentRate: 6}, model.PhaseBear},
		{"fear but jobs hold", model.MacroSnapshot{SentimentIndex: 30, UnemploymentRate: 4}, model.PhaseBearRecovery},
		{"neutral", model.MacroSnapshot{SentimentIndex: 50, GDPGrowth: 2.0}, model.PhaseSideways},
		{"greed without growth", model.MacroSnapshot{SentimentIndex: 80, GDPGrowth: 1.0}, model.PhaseSideways},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := determinePhase(c.snap); got != c.want {
				t.Errorf("expected %s, got %s", c.want, got)
			}
		})
	}
}

func TestDetermineAppetite(t *testing.T) {
	cases := []struct {
		name      string
		sentiment float64
		phase     model.MarketPhase
		want      model.RiskAppetite
	}{
		{"bull mid with confidence", 65, model.PhaseBullMid, model.AppetiteAggressive},
		{"recovery with confidence", 45, model.PhaseBearRecovery, model.AppetiteAggressive},
		{"late bull", 78, model.PhaseBullLate, model.AppetiteCautious},
		{"bear", 20, model.PhaseBear, model.AppetiteConservative},
		{"deep fear sideways", 20, model.PhaseSideways, model.AppetiteConservative},
		{"plain sideways", 50, model.PhaseSideways, model.AppetiteNeutral},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := determineAppetite(c.sentiment, c.phase); got != c.want {
				t.Errorf("expected %s, got %s", c.want, got)
			}
		})
	}
}

func TestDeriveStrategy(t *testing.T) {
	growth := DeriveStrategy(&model.MacroReport{RiskAppetite: model.AppetiteAggressive})
	if growth.PrimaryFocus != model.FocusGrowth {
		t.Errorf("aggressive appetite must map to growth, got %s", growth.PrimaryFocus)
	}
	if growth.ScreeningCriteria.MaxPERatio != 40 || growth.ScreeningCriteria.MinRevenueGrowth != 10 {
		t.Errorf("unexpected growth criteria: %+v", growth.ScreeningCriteria)
	}

	value := DeriveStrategy(&model.MacroReport{RiskAppetite: model.AppetiteConservative})
	if value.PrimaryFocus != model.FocusValue {
		t.Errorf("conservative appetite must map to value, got %s", value.PrimaryFocus)
	}
	if value.ScreeningCriteria.MinDividendYield != 2 || value.ScreeningCriteria.MinMarketCap != 10e9 {
		t.Errorf("unexpected value criteria: %+v", value.ScreeningCriteria)
	}

	balanced := DeriveStrategy(&model.MacroReport{RiskAppetite: model.AppetiteNeutral})
	if balanced.PrimaryFocus != model.FocusBalanced {
		t.Errorf("neutral appetite must map to balanced, got %s", balanced.PrimaryFocus)
	}
	if balanced.ScreeningCriteria.MaxPERatio != 30 {
		t.Errorf("unexpected balanced criteria: %+v", balanced.ScreeningCriteria)
	}
}

func TestMacroAnalyze_DegradesOnFetchFailure(t *testing.T) {
	fetcher := &collector.MockFetcher{Err: errors.New("provider down")}
	analyzer := NewMacroAnalyzer(fetcher, zerolog.Nop())

	report := analyzer.Analyze(context.Background())
	if !report.Snapshot.Degraded {
		t.Error("snapshot must be marked degraded after a fetch failure")
	}
	if report.Snapshot.SentimentIndex != 50 {
		t.Errorf("expected neutral sentiment default, got %.0f", report.Snapshot.SentimentIndex)
	}
	if report.MarketPhase != model.PhaseSideways {
		t.Errorf("neutral defaults must classify sideways, got %s", report.MarketPhase)
	}
	if report.RiskAppetite != model.AppetiteNeutral {
		t.Errorf("neutral defaults must classify neutral appetite, got %s", report.RiskAppetite)
	}
}
