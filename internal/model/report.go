package model

import "time"

// SectorPerformance is one sector ETF's one-month showing versus the benchmark.
type SectorPerformance struct {
	Sector           string  `json:"sector"`
	Symbol           string  `json:"symbol"`
	Performance1M    float64 `json:"performance_1m"` // percent
	Volatility       float64 `json:"volatility"`     // annualized, percent
	RelativeStrength float64 `json:"relative_strength"`
	CurrentPrice     float64 `json:"current_price"`
}

// SectorRotation summarizes the sector ETF sweep.
type SectorRotation struct {
	Sectors         []SectorPerformance `json:"sectors"`
	TopPerforming   []string            `json:"top_performing"`
	Underperforming []string            `json:"underperforming"`
	MarketBreadth   string              `json:"market_breadth"` // strong|weak|unknown
	Degraded        bool                `json:"degraded,omitempty"`
}

// MacroReport is the output of the macro/sentiment layer.
type MacroReport struct {
	Snapshot       MacroSnapshot `json:"snapshot"`
	Interpretation string        `json:"interpretation"`
	EconomicHealth string        `json:"economic_health"`
	MarketPhase    MarketPhase   `json:"market_phase"`
	RiskAppetite   RiskAppetite  `json:"risk_appetite"`
	Environment    string        `json:"investment_environment"`
	KeyFactors     []string      `json:"key_factors"`
}

// ScreeningReport is the output of the sector/catalyst screening layer.
type ScreeningReport struct {
	StrategyApplied    Focus             `json:"strategy_applied"`
	Criteria           ScreeningCriteria `json:"screening_criteria"`
	TotalScreened      int               `json:"total_screened"`
	SelectedStocks     []*Candidate      `json:"selected_stocks"`
	SectorDistribution map[string]int    `json:"sector_distribution"`
	SectorRotation     *SectorRotation   `json:"sector_rotation,omitempty"`
	Degraded           bool              `json:"degraded,omitempty"`
}

// ConfirmationReport is the output of the technical/risk confirmation layer.
type ConfirmationReport struct {
	ConfirmedStocks []*Candidate `json:"confirmed_stocks"`
	StrongSignals   int          `json:"strong_signals"`
	AvgConfidence   float64      `json:"avg_confidence"`
	HighRiskStocks  int          `json:"high_risk_stocks"`
}

// Recommendations bundles the final advice derived from the three layers.
type Recommendations struct {
	TopPicks         []*Candidate      `json:"top_picks"`
	InvestmentThesis string            `json:"investment_thesis"`
	RiskWarnings     []string          `json:"risk_warnings"`
	PositionSizing   map[string]string `json:"position_sizing"`
	ExitStrategy     map[string]string `json:"exit_strategy"`
	MonitoringPoints []string          `json:"monitoring_points"`
}

// ExecutiveSummary condenses a run for dashboards.
type ExecutiveSummary struct {
	TotalRecommendations int      `json:"total_recommendations"`
	StrongBuyCount       int      `json:"strong_buy_count"`
	AverageConfidence    float64  `json:"average_confidence"`
	PrimarySectors       []string `json:"primary_sectors"`
	KeyMessage           string   `json:"key_message"`
}

// AnalysisResult is the full output of one orchestrated run.
type AnalysisResult struct {
	RunID           string             `json:"run_id"`
	AnalysisTime    time.Time          `json:"analysis_time"`
	Macro           *MacroReport       `json:"layer1_analysis"`
	Screening       *ScreeningReport   `json:"layer2_analysis"`
	Confirmation    *ConfirmationReport `json:"layer3_analysis"`
	Strategy        *StrategyProfile   `json:"investment_strategy"`
	Recommendations *Recommendations   `json:"final_recommendations"`
	Summary         *ExecutiveSummary  `json:"summary"`
	Degraded        bool               `json:"degraded,omitempty"`
}
