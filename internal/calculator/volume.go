package calculator

import "StrataScan/internal/model"

// VolumeRatio computes the ratio of the 5-day average volume to the 20-day
// average volume. Returns 1.0 when the series is too short or the long-window
// average is zero.
func VolumeRatio(bars []model.OHLCV) float64 {
	if len(bars) < 20 {
		return 1.0
	}
	short := avgVolume(bars, 5)
	long := avgVolume(bars, 20)
	if long == 0 {
		return 1.0
	}
	return short / long
}

func avgVolume(bars []model.OHLCV, period int) float64 {
	if len(bars) < period || period <= 0 {
		return 0
	}
	var sum float64
	for i := len(bars) - period; i < len(bars); i++ {
		sum += float64(bars[i].Volume)
	}
	return sum / float64(period)
}

// AvgVolume exposes the trailing average volume over the given period, used by
// the liquidity scoring tier. Returns 0 when the series is too short.
func AvgVolume(bars []model.OHLCV, period int) float64 {
	return avgVolume(bars, period)
}
