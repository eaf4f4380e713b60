package calculator

import (
	"errors"

	"StrataScan/internal/model"
)

// CalculateSMA computes the simple moving average of the given prices over the
// specified period.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// EMASeries computes the exponential moving average series. The first period-1
// entries are zero; the value at index period-1 seeds with the SMA. Returns
// nil when there is not enough data.
func EMASeries(data []float64, period int) []float64 {
	if period <= 0 || len(data) < period {
		return nil
	}
	out := make([]float64, len(data))
	mult := 2.0 / float64(period+1)
	var sum float64
	for i := 0; i < period; i++ {
		sum += data[i]
	}
	out[period-1] = sum / float64(period)
	for i := period; i < len(data); i++ {
		out[i] = (data[i]-out[i-1])*mult + out[i-1]
	}
	return out
}

func extractCloses(bars []model.OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
