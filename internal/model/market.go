package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// PriceSeries holds raw price data for one symbol, chronologically ordered.
// It is immutable once fetched for a given analysis run.
type PriceSeries struct {
	Symbol       string    `json:"symbol"`
	Bars         []OHLCV   `json:"bars"`
	CurrentPrice float64   `json:"current_price"`
	FetchedAt    time.Time `json:"fetched_at"`
}

// Closes extracts the close prices in chronological order.
func (p *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(p.Bars))
	for i, b := range p.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Volumes extracts the volumes in chronological order.
func (p *PriceSeries) Volumes() []float64 {
	vols := make([]float64, len(p.Bars))
	for i, b := range p.Bars {
		vols[i] = b.Volume
	}
	return vols
}

// Len returns the number of bars.
func (p *PriceSeries) Len() int { return len(p.Bars) }

// Fundamentals is a sparse mapping of per-symbol metrics.
// Any field may be absent: numeric fields default to 0, labels to "Unknown".
type Fundamentals struct {
	Name           string  `json:"name"`
	TrailingPE     float64 `json:"trailing_pe"`
	MarketCap      float64 `json:"market_cap"`
	RevenueGrowth  float64 `json:"revenue_growth"`   // percent
	ProfitMargin   float64 `json:"profit_margin"`    // percent
	ReturnOnEquity float64 `json:"return_on_equity"` // percent
	DebtToEquity   float64 `json:"debt_to_equity"`
	DividendYield  float64 `json:"dividend_yield"` // percent
	AvgVolume      float64 `json:"avg_volume"`
	Sector         string  `json:"sector"`
	Industry       string  `json:"industry"`
}
