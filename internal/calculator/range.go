package calculator

import (
	"math"
	"sort"

	"StrataScan/internal/model"
)

const rangePeriod = 20

// SupportResistance derives support and resistance levels from the recent
// trading range, the 50-day moving average and nearby round numbers, plus the
// position of the current price inside the 20-bar range.
func SupportResistance(bars []model.OHLCV, currentPrice float64) model.SupportResistance {
	sr := model.SupportResistance{CurrentPrice: currentPrice, RangePosition: 0.5}
	if len(bars) == 0 {
		return sr
	}

	window := bars
	if len(bars) > rangePeriod {
		window = bars[len(bars)-rangePeriod:]
	}
	high := window[0].High
	low := window[0].Low
	for _, b := range window[1:] {
		if b.High > high {
			high = b.High
		}
		if b.Low < low {
			low = b.Low
		}
	}

	if high > currentPrice {
		sr.Resistance = append(sr.Resistance, high)
	}
	if low < currentPrice {
		sr.Support = append(sr.Support, low)
	}

	// MA50 acts as a dynamic level on whichever side of price it sits.
	closes := extractCloses(bars)
	if ma50, err := CalculateSMA(closes, 50); err == nil {
		if ma50 > currentPrice {
			sr.Resistance = append(sr.Resistance, ma50)
		} else if ma50 < currentPrice {
			sr.Support = append(sr.Support, ma50)
		}
	}

	// Round-number levels at the nearest multiples of 10.
	roundAbove := math.Ceil(currentPrice/10) * 10
	roundBelow := math.Floor(currentPrice/10) * 10
	if roundAbove > currentPrice {
		sr.Resistance = append(sr.Resistance, roundAbove)
	}
	if roundBelow < currentPrice && roundBelow > 0 {
		sr.Support = append(sr.Support, roundBelow)
	}

	sort.Float64s(sr.Resistance)
	sort.Sort(sort.Reverse(sort.Float64Slice(sr.Support)))

	if high > low {
		sr.RangePosition = (currentPrice - low) / (high - low)
	}
	return sr
}
