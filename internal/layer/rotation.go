package layer

import (
	"context"
	"sort"

	"StrataScan/internal/calculator"
	"StrataScan/internal/model"
)

// Sector ETFs swept for the rotation picture, benchmarked against SPY.
var sectorETFs = []struct {
	Symbol string
	Sector string
}{
	{"XLK", "Technology"},
	{"XLF", "Financial Services"},
	{"XLV", "Healthcare"},
	{"XLY", "Consumer Cyclical"},
	{"XLP", "Consumer Defensive"},
	{"XLE", "Energy"},
	{"XLI", "Industrials"},
	{"XLB", "Materials"},
	{"XLRE", "Real Estate"},
	{"XLU", "Utilities"},
	{"XLC", "Communication Services"},
}

const (
	rotationDays    = 40 // enough history for a one-month return
	strongBreadthAt = 6  // sectors beating SPY for "strong" breadth
)

// SectorRotation sweeps the sector ETFs against SPY. Missing ETFs are
// skipped; a missing benchmark degrades the whole rotation.
func (s *Screener) SectorRotation(ctx context.Context) *model.SectorRotation {
	rotation := &model.SectorRotation{MarketBreadth: "unknown"}

	spy, err := s.fetcher.FetchPriceSeries(ctx, "SPY", rotationDays)
	if err != nil {
		s.log.Warn().Err(err).Msg("benchmark unavailable, sector rotation degraded")
		rotation.Degraded = true
		return rotation
	}
	spyReturn := calculator.PeriodReturn(spy.Closes(), 21)

	advancing := 0
	for _, etf := range sectorETFs {
		series, err := s.fetcher.FetchPriceSeries(ctx, etf.Symbol, rotationDays)
		if err != nil {
			s.log.Debug().Err(err).Str("etf", etf.Symbol).Msg("sector ETF skipped")
			rotation.Degraded = true
			continue
		}
		closes := series.Closes()
		perf := calculator.PeriodReturn(closes, 21)
		rs := perf - spyReturn
		if rs > 0 {
			advancing++
		}
		rotation.Sectors = append(rotation.Sectors, model.SectorPerformance{
			Sector:           etf.Sector,
			Symbol:           etf.Symbol,
			Performance1M:    perf,
			Volatility:       calculator.AnnualizedVolatility(calculator.DailyReturns(closes)),
			RelativeStrength: rs,
			CurrentPrice:     series.CurrentPrice,
		})
	}

	if len(rotation.Sectors) == 0 {
		return rotation
	}

	sort.Slice(rotation.Sectors, func(i, j int) bool {
		return rotation.Sectors[i].RelativeStrength > rotation.Sectors[j].RelativeStrength
	})
	for i, sec := range rotation.Sectors {
		if i < 3 {
			rotation.TopPerforming = append(rotation.TopPerforming, sec.Sector)
		}
		if i >= len(rotation.Sectors)-3 {
			rotation.Underperforming = append(rotation.Underperforming, sec.Sector)
		}
	}

	if advancing > strongBreadthAt {
		rotation.MarketBreadth = "strong"
	} else {
		rotation.MarketBreadth = "weak"
	}
	return rotation
}
