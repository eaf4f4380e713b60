package scoring

import (
	"fmt"
	"math"

	"StrataScan/internal/model"
)

// ClassifyTarget maps the expected move to the current target price onto a
// discrete signal. Boundaries are strict: an expected change of exactly 2.0%
// is a buy, not a strong buy.
func ClassifyTarget(currentPrice, targetPrice float64) model.TradingSignal {
	if currentPrice <= 0 {
		return model.TradingSignal{Signal: model.SignalHold, Confidence: 40}
	}
	pct := (targetPrice - currentPrice) / currentPrice * 100

	sig := model.TradingSignal{ExpectedChangePct: pct}
	switch {
	case pct > 2:
		sig.Signal, sig.Confidence = model.SignalStrongBuy, 80
	case pct > 0.5:
		sig.Signal, sig.Confidence = model.SignalBuy, 60
	case pct < -2:
		sig.Signal, sig.Confidence = model.SignalSell, 80
	case pct < -0.5:
		sig.Signal, sig.Confidence = model.SignalCaution, 60
	default:
		sig.Signal, sig.Confidence = model.SignalHold, 40
	}
	return sig
}

// SignalStrength accumulates bullish and bearish indicator observations into
// an integer strength, then maps it to a signal. Cut points are inclusive:
// strength +4 is already a strong buy.
func SignalStrength(ind model.IndicatorSet, price float64, sr model.SupportResistance) model.StrengthSignal {
	strength := 0
	var reasons []string

	switch rsi := ind.RSI; {
	case rsi < 30:
		strength += 2
		reasons = append(reasons, fmt.Sprintf("RSI oversold (%.0f)", rsi))
	case rsi > 70:
		strength -= 2
		reasons = append(reasons, fmt.Sprintf("RSI overbought (%.0f)", rsi))
	case rsi < 45:
		strength++
		reasons = append(reasons, fmt.Sprintf("RSI leaning oversold (%.0f)", rsi))
	case rsi > 55:
		strength--
		reasons = append(reasons, fmt.Sprintf("RSI leaning overbought (%.0f)", rsi))
	}

	macd := ind.MACD
	if macd.Histogram > 0 && macd.MACD > macd.Signal {
		strength += 2
		reasons = append(reasons, "MACD bullish crossover")
	} else if macd.Histogram < 0 && macd.MACD < macd.Signal {
		strength -= 2
		reasons = append(reasons, "MACD bearish crossover")
	}

	switch ind.Bollinger.Zone() {
	case model.ZoneLower:
		strength++
		reasons = append(reasons, "price near lower Bollinger band")
	case model.ZoneUpper:
		strength--
		reasons = append(reasons, "price near upper Bollinger band")
	}

	ma := ind.MovingAverages
	if price > ma.MA20 && ma.MA20 > ma.MA50 {
		strength++
		reasons = append(reasons, "uptrend: price above MA20 above MA50")
	} else if price < ma.MA20 && ma.MA20 < ma.MA50 {
		strength--
		reasons = append(reasons, "downtrend: price below MA20 below MA50")
	}

	if ind.VolumeRatio > 1.5 {
		strength++
		reasons = append(reasons, fmt.Sprintf("elevated volume (%.2fx)", ind.VolumeRatio))
	}

	// Resistance levels are sorted ascending, support descending, so the
	// nearest level is always first.
	if len(sr.Resistance) > 0 && price >= sr.Resistance[0]*0.98 {
		strength--
		reasons = append(reasons, "price near resistance")
	}
	if len(sr.Support) > 0 && price <= sr.Support[0]*1.02 {
		strength++
		reasons = append(reasons, "price near support")
	}

	return model.StrengthSignal{
		Signal:     mapStrength(strength),
		Strength:   strength,
		Confidence: math.Min(math.Abs(float64(strength))*10, 100),
		Reasons:    reasons,
	}
}

func mapStrength(strength int) model.Signal {
	switch {
	case strength >= 4:
		return model.SignalStrongBuy
	case strength >= 2:
		return model.SignalBuy
	case strength <= -4:
		return model.SignalStrongSell
	case strength <= -2:
		return model.SignalSell
	default:
		return model.SignalHold
	}
}
