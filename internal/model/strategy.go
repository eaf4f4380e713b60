package model

// MarketPhase classifies the macro environment.
type MarketPhase string

const (
	PhaseBullMid      MarketPhase = "bull_mid"
	PhaseBullLate     MarketPhase = "bull_late"
	PhaseBear         MarketPhase = "bear"
	PhaseBearRecovery MarketPhase = "bear_recovery"
	PhaseSideways     MarketPhase = "sideways"
)

// RiskAppetite is the derived tolerance for risk in the current environment.
type RiskAppetite string

const (
	AppetiteAggressive   RiskAppetite = "aggressive"
	AppetiteCautious     RiskAppetite = "cautious"
	AppetiteConservative RiskAppetite = "conservative"
	AppetiteNeutral      RiskAppetite = "neutral"
)

// Focus is the primary strategy focus derived from the macro layer.
type Focus string

const (
	FocusGrowth   Focus = "growth"
	FocusValue    Focus = "value"
	FocusBalanced Focus = "balanced"
)

// MacroSnapshot holds the raw macro inputs for one analysis run. When a
// provider is unavailable the neutral defaults are substituted and Degraded
// is set.
type MacroSnapshot struct {
	SentimentIndex   float64 `json:"sentiment_index"` // fear & greed, 0-100
	SentimentLabel   string  `json:"sentiment_label"`
	GDPGrowth        float64 `json:"gdp_growth"`
	UnemploymentRate float64 `json:"unemployment_rate"`
	InflationRate    float64 `json:"inflation_rate"`
	FedFundsRate     float64 `json:"fed_funds_rate"`
	Degraded         bool    `json:"degraded"`
}

// ScreeningCriteria are the numeric gates threaded from the strategy profile
// into the screening layer.
type ScreeningCriteria struct {
	MinMarketCap     float64 `json:"min_market_cap"`
	MinVolume        float64 `json:"min_volume"`
	MaxPERatio       float64 `json:"max_pe_ratio"`
	MinRevenueGrowth float64 `json:"min_revenue_growth"`
	MinDividendYield float64 `json:"min_dividend_yield"`
}

// StrategyProfile is derived once per analysis run from macro inputs and
// threaded read-only into the screening stage.
type StrategyProfile struct {
	PrimaryFocus      Focus             `json:"primary_focus"`
	RiskLevel         string            `json:"risk_level"`
	PositionSizing    string            `json:"position_sizing"`
	SectorPreference  []string          `json:"sector_preference"`
	ScreeningCriteria ScreeningCriteria `json:"screening_criteria"`
}
