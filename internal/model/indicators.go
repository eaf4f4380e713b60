package model

// BandZone labels where the current price sits relative to the Bollinger bands.
type BandZone string

const (
	ZoneUpper  BandZone = "upper"
	ZoneMiddle BandZone = "middle"
	ZoneLower  BandZone = "lower"
)

// MACDValues holds the MACD line, its signal line and the histogram.
type MACDValues struct {
	MACD      float64 `json:"macd"`
	Signal    float64 `json:"signal"`
	Histogram float64 `json:"histogram"`
}

// BollingerBands holds the 20-period bands and the normalized position of the
// current price inside them (0 at the lower band, 1 at the upper band).
type BollingerBands struct {
	Upper    float64 `json:"upper"`
	Middle   float64 `json:"middle"`
	Lower    float64 `json:"lower"`
	Position float64 `json:"position"`
}

// Zone maps the normalized position to a band zone. Strictly above 0.8 is
// upper, strictly below 0.2 is lower.
func (b BollingerBands) Zone() BandZone {
	switch {
	case b.Position > 0.8:
		return ZoneUpper
	case b.Position < 0.2:
		return ZoneLower
	default:
		return ZoneMiddle
	}
}

// MovingAverages holds the simple 5/20/50-day averages.
type MovingAverages struct {
	MA5  float64 `json:"ma5"`
	MA20 float64 `json:"ma20"`
	MA50 float64 `json:"ma50"`
}

// IndicatorSet holds all technical indicators for one symbol at the most
// recent bar. Recomputed fresh on every analysis call, never persisted.
type IndicatorSet struct {
	RSI            float64        `json:"rsi"`
	MACD           MACDValues     `json:"macd"`
	Bollinger      BollingerBands `json:"bollinger"`
	MovingAverages MovingAverages `json:"moving_averages"`
	VolumeRatio    float64        `json:"volume_ratio"`
	Volatility     float64        `json:"volatility"` // annualized, percent
}
