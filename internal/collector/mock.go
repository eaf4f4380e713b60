package collector

import (
	"context"
	"time"

	"StrataScan/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// Unset fields fall back to a deterministic generated series seeded by the
// symbol, so repeated calls always agree.
type MockFetcher struct {
	Series       map[string]*model.PriceSeries
	Fundamentals map[string]model.Fundamentals
	Macro        *model.MacroSnapshot
	Err          error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchPriceSeries(_ context.Context, symbol string, days int) (*model.PriceSeries, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if s, ok := m.Series[symbol]; ok {
		return s, nil
	}
	return GenerateSeries(symbol, days), nil
}

func (m *MockFetcher) FetchFundamentals(_ context.Context, symbol string) (model.Fundamentals, error) {
	if m.Err != nil {
		return model.Fundamentals{}, m.Err
	}
	if f, ok := m.Fundamentals[symbol]; ok {
		return f, nil
	}
	return model.Fundamentals{
		Name:           symbol,
		TrailingPE:     18,
		MarketCap:      8e9,
		RevenueGrowth:  8,
		ProfitMargin:   15,
		ReturnOnEquity: 12,
		DebtToEquity:   40,
		AvgVolume:      3_000_000,
		Sector:         "Unknown",
		Industry:       "Unknown",
	}, nil
}

func (m *MockFetcher) FetchMacro(_ context.Context) (model.MacroSnapshot, error) {
	if m.Err != nil {
		return model.MacroSnapshot{}, m.Err
	}
	if m.Macro != nil {
		return *m.Macro, nil
	}
	return model.MacroSnapshot{
		SentimentIndex:   defaultSentiment,
		SentimentLabel:   "Neutral",
		GDPGrowth:        defaultGDPGrowth,
		UnemploymentRate: defaultUnemployment,
		InflationRate:    defaultInflation,
	}, nil
}

// GenerateSeries produces a deterministic synthetic price series. The symbol
// seeds the base price and drift so distinct symbols stay distinguishable.
func GenerateSeries(symbol string, days int) *model.PriceSeries {
	if days < 1 {
		days = 1
	}
	seed := 0
	for _, r := range symbol {
		seed += int(r)
	}
	base := 50.0 + float64(seed%200)
	drift := 0.0005 * float64(seed%7-3)

	bars := make([]model.OHLCV, days)
	price := base
	for i := range bars {
		// small deterministic oscillation around the drifting base
		wave := 0.01 * float64((seed+i*7)%11-5)
		price = price * (1 + drift + wave/10)
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(days - i)),
			Open:   price * 0.998,
			High:   price * 1.006,
			Low:    price * 0.994,
			Close:  price,
			Volume: float64(2_000_000 + (seed+i)%5*500_000),
		}
	}
	return &model.PriceSeries{
		Symbol:       symbol,
		Bars:         bars,
		CurrentPrice: bars[days-1].Close,
		FetchedAt:    time.Now(),
	}
}
