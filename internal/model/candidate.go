package model

// RiskMetrics is the per-symbol risk assessment computed by the confirmation
// layer from roughly one year of history.
type RiskMetrics struct {
	Volatility     float64 `json:"volatility"`   // annualized, percent
	MaxDrawdown    float64 `json:"max_drawdown"` // percent, negative
	VaR95          float64 `json:"var_95"`       // percent, daily
	SharpeRatio    float64 `json:"sharpe_ratio"`
	Beta           float64 `json:"beta"`
	LiquidityScore float64 `json:"liquidity_score"` // 0-10
	RiskLevel      string  `json:"risk_level"`      // low|medium|high
}

// SupportResistance holds the key price levels around the current price.
type SupportResistance struct {
	Resistance    []float64 `json:"resistance"`
	Support       []float64 `json:"support"`
	CurrentPrice  float64   `json:"current_price"`
	RangePosition float64   `json:"range_position"` // 0-1 within the recent range
}

// Candidate is a scored, signal-classified symbol produced by one analysis
// run. Created per run, never mutated after creation.
type Candidate struct {
	Symbol       string         `json:"symbol"`
	Name         string         `json:"name"`
	CurrentPrice float64        `json:"current_price"`
	Sector       string         `json:"sector"`
	Industry     string         `json:"industry"`
	Fundamentals Fundamentals   `json:"fundamentals"`
	Indicators   IndicatorSet   `json:"indicators"`
	Scores       ScoreBreakdown `json:"score_breakdown"`
	TotalScore   float64        `json:"total_score"`
	Passes       bool           `json:"passes_screening"`
	Reasons      []string       `json:"selection_reasons,omitempty"`

	// Populated by the confirmation layer.
	Signal            *TradingSignal     `json:"trading_signal,omitempty"`
	Strength          *StrengthSignal    `json:"strength_signal,omitempty"`
	Risk              *RiskMetrics       `json:"risk_metrics,omitempty"`
	SupportResistance *SupportResistance `json:"support_resistance,omitempty"`
	FinalRating       float64            `json:"final_rating,omitempty"`

	// Degraded marks candidates built from fallback data so consumers can
	// tell a real low score from a missing-data default.
	Degraded bool `json:"degraded,omitempty"`
}
