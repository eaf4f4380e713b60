package calculator

import "StrataScan/internal/model"

const rsiPeriod = 14

// ComputeIndicatorSet derives the full indicator bundle for a price series.
// Every indicator degrades to a documented neutral default when the series is
// too short, so callers never receive a partial set.
func ComputeIndicatorSet(series *model.PriceSeries) model.IndicatorSet {
	bars := series.Bars
	closes := series.Closes()
	price := series.CurrentPrice

	rsi, err := CalculateRSI(bars, rsiPeriod)
	if err != nil {
		rsi = 50.0
	}

	set := model.IndicatorSet{
		RSI:       rsi,
		MACD:      CalculateMACD(bars),
		Bollinger: CalculateBollinger(bars, price),
		MovingAverages: model.MovingAverages{
			MA5:  smaOrPrice(closes, 5, price),
			MA20: smaOrPrice(closes, 20, price),
			MA50: smaOrPrice(closes, 50, price),
		},
		VolumeRatio: VolumeRatio(bars),
		Volatility:  AnnualizedVolatility(DailyReturns(closes)),
	}
	return set
}

// smaOrPrice falls back to the current price when the window is too short, so
// moving-average comparisons stay neutral instead of failing.
func smaOrPrice(closes []float64, period int, price float64) float64 {
	ma, err := CalculateSMA(closes, period)
	if err != nil {
		return price
	}
	return ma
}
