package model

// Signal is a discrete trading recommendation.
type Signal string

const (
	SignalStrongBuy  Signal = "strong_buy"
	SignalBuy        Signal = "buy"
	SignalHold       Signal = "hold"
	SignalCaution    Signal = "caution"
	SignalSell       Signal = "sell"
	SignalStrongSell Signal = "strong_sell"
)

// IsBuy reports whether the signal is an entry signal.
func (s Signal) IsBuy() bool {
	return s == SignalBuy || s == SignalStrongBuy
}

// TradingSignal is the target-price classification for one symbol.
type TradingSignal struct {
	Signal            Signal  `json:"signal"`
	Confidence        float64 `json:"confidence"` // 0-100
	ExpectedChangePct float64 `json:"expected_change_pct"`
}

// StrengthSignal is the indicator-state classification used by the
// confirmation layer: an integer accumulator mapped to a signal, with the
// contributing observations retained for reporting.
type StrengthSignal struct {
	Signal     Signal   `json:"signal"`
	Strength   int      `json:"strength"`
	Confidence float64  `json:"confidence"` // 0-100
	Reasons    []string `json:"reasons"`
}
