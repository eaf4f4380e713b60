package calculator

import "StrataScan/internal/model"

const (
	macdFast   = 12
	macdSlow   = 26
	macdSignal = 9
)

// CalculateMACD computes the MACD line (EMA12-EMA26), its EMA9 signal line and
// the histogram for the most recent bar. Series shorter than slow+signal
// periods yield the zero value rather than an error.
func CalculateMACD(bars []model.OHLCV) model.MACDValues {
	n := len(bars)
	if n < macdSlow+macdSignal {
		return model.MACDValues{}
	}
	closes := extractCloses(bars)

	emaFast := EMASeries(closes, macdFast)
	emaSlow := EMASeries(closes, macdSlow)

	dif := make([]float64, n)
	for i := macdSlow - 1; i < n; i++ {
		dif[i] = emaFast[i] - emaSlow[i]
	}
	// dea[j] corresponds to dif[macdSlow-1+j]
	dea := EMASeries(dif[macdSlow-1:], macdSignal)
	if dea == nil {
		return model.MACDValues{}
	}

	last := n - 1
	macd := dif[last]
	signal := dea[last-(macdSlow-1)]
	return model.MACDValues{
		MACD:      macd,
		Signal:    signal,
		Histogram: macd - signal,
	}
}
