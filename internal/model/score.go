package model

// ScoreBreakdown holds the five sub-scores of the screening score. Each
// sub-score is clamped to its maximum before summation, so Total is always
// in [0,100].
type ScoreBreakdown struct {
	Momentum     float64 `json:"momentum"`     // max 25
	Fundamentals float64 `json:"fundamentals"` // max 30
	Technical    float64 `json:"technical"`    // max 25
	Liquidity    float64 `json:"liquidity"`    // max 10
	Quality      float64 `json:"quality"`      // max 10
}

// Total returns the literal sum of the five sub-scores.
func (s ScoreBreakdown) Total() float64 {
	return s.Momentum + s.Fundamentals + s.Technical + s.Liquidity + s.Quality
}
