package calculator

import (
	"math"

	"StrataScan/internal/model"
)

const bollingerPeriod = 20

// CalculateBollinger computes the 20-period Bollinger bands at ±2 standard
// deviations and the normalized position of the current price inside them.
// With fewer than 20 bars the bands collapse around the current price
// (±10%/-10%) and the position defaults to 0.5.
func CalculateBollinger(bars []model.OHLCV, currentPrice float64) model.BollingerBands {
	closes := extractCloses(bars)
	if len(closes) < bollingerPeriod {
		return model.BollingerBands{
			Upper:    currentPrice * 1.1,
			Middle:   currentPrice,
			Lower:    currentPrice * 0.9,
			Position: 0.5,
		}
	}

	window := closes[len(closes)-bollingerPeriod:]
	var sum float64
	for _, c := range window {
		sum += c
	}
	mean := sum / float64(bollingerPeriod)

	var sq float64
	for _, c := range window {
		d := c - mean
		sq += d * d
	}
	std := math.Sqrt(sq / float64(bollingerPeriod))

	upper := mean + 2*std
	lower := mean - 2*std

	position := 0.5
	if upper != lower {
		position = (currentPrice - lower) / (upper - lower)
	}

	return model.BollingerBands{
		Upper:    upper,
		Middle:   mean,
		Lower:    lower,
		Position: position,
	}
}
