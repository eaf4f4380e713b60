package scoring

// Tier awards Points when the observed value strictly exceeds Threshold.
// Tiers are evaluated in order, first match wins, so they must be listed
// from the highest threshold down.
type Tier struct {
	Threshold float64 `yaml:"threshold"`
	Points    float64 `yaml:"points"`
}

// MomentumPolicy scores recent price momentum, max 25 points.
type MomentumPolicy struct {
	Max        float64 `yaml:"max"`
	MonthTiers []Tier  `yaml:"month_tiers"` // 1-month return, percent
	WeekTiers  []Tier  `yaml:"week_tiers"`  // 1-week return, percent
}

// FundamentalsPolicy scores valuation and growth, max 30 points. The PE and
// growth gates are relative to the active strategy's screening criteria, so
// only the award sizes live here.
type FundamentalsPolicy struct {
	Max             float64 `yaml:"max"`
	PEWellUnder     float64 `yaml:"pe_well_under"`     // PE below half the ceiling
	PEUnderCeiling  float64 `yaml:"pe_under_ceiling"`  // PE below the ceiling
	GrowthDoubleMin float64 `yaml:"growth_double_min"` // revenue growth above twice the floor
	GrowthOverMin   float64 `yaml:"growth_over_min"`   // revenue growth above the floor
	MarginTiers     []Tier  `yaml:"margin_tiers"`      // profit margin, percent
}

// TechnicalPolicy scores indicator posture, max 25 points.
type TechnicalPolicy struct {
	Max               float64 `yaml:"max"`
	RSIIdealLow       float64 `yaml:"rsi_ideal_low"`
	RSIIdealHigh      float64 `yaml:"rsi_ideal_high"`
	RSIIdealPoints    float64 `yaml:"rsi_ideal_points"`
	RSIAcceptLow      float64 `yaml:"rsi_accept_low"`
	RSIAcceptHigh     float64 `yaml:"rsi_accept_high"`
	RSIAcceptPoints   float64 `yaml:"rsi_accept_points"`
	TrendAligned      float64 `yaml:"trend_aligned"` // price > MA20 > MA50
	AboveMA20         float64 `yaml:"above_ma20"`
	VolumeSurgeRatio  float64 `yaml:"volume_surge_ratio"` // 5d avg over 20d avg
	VolumeSurgePoints float64 `yaml:"volume_surge_points"`
}

// LiquidityPolicy scores average daily volume, max 10 points.
type LiquidityPolicy struct {
	Max   float64 `yaml:"max"`
	Tiers []Tier  `yaml:"tiers"` // shares per day
}

// QualityPolicy scores balance-sheet quality, max 10 points. Debt tiers award
// when debt-to-equity is strictly BELOW the threshold.
type QualityPolicy struct {
	Max       float64 `yaml:"max"`
	ROETiers  []Tier  `yaml:"roe_tiers"`
	DebtTiers []Tier  `yaml:"debt_tiers"`
}

// Policy holds every threshold and award used by the screening score. All
// values are externalized so they can be tuned from configuration without
// touching the scoring code.
type Policy struct {
	PassThreshold float64            `yaml:"pass_threshold"`
	Momentum      MomentumPolicy     `yaml:"momentum"`
	Fundamentals  FundamentalsPolicy `yaml:"fundamentals"`
	Technical     TechnicalPolicy    `yaml:"technical"`
	Liquidity     LiquidityPolicy    `yaml:"liquidity"`
	Quality       QualityPolicy      `yaml:"quality"`
}

// DefaultPolicy returns the standard 25/30/25/10/10 weighting with a pass
// threshold of 60.
func DefaultPolicy() Policy {
	return Policy{
		PassThreshold: 60,
		Momentum: MomentumPolicy{
			Max: 25,
			MonthTiers: []Tier{
				{Threshold: 10, Points: 15},
				{Threshold: 5, Points: 10},
				{Threshold: 0, Points: 5},
			},
			WeekTiers: []Tier{
				{Threshold: 3, Points: 10},
				{Threshold: 0, Points: 5},
			},
		},
		Fundamentals: FundamentalsPolicy{
			Max:             30,
			PEWellUnder:     10,
			PEUnderCeiling:  5,
			GrowthDoubleMin: 10,
			GrowthOverMin:   5,
			MarginTiers: []Tier{
				{Threshold: 20, Points: 10},
				{Threshold: 10, Points: 5},
			},
		},
		Technical: TechnicalPolicy{
			Max:               25,
			RSIIdealLow:       30,
			RSIIdealHigh:      70,
			RSIIdealPoints:    8,
			RSIAcceptLow:      20,
			RSIAcceptHigh:     80,
			RSIAcceptPoints:   5,
			TrendAligned:      10,
			AboveMA20:         5,
			VolumeSurgeRatio:  1.2,
			VolumeSurgePoints: 7,
		},
		Liquidity: LiquidityPolicy{
			Max: 10,
			Tiers: []Tier{
				{Threshold: 5_000_000, Points: 10},
				{Threshold: 2_000_000, Points: 7},
				{Threshold: 1_000_000, Points: 5},
			},
		},
		Quality: QualityPolicy{
			Max: 10,
			ROETiers: []Tier{
				{Threshold: 15, Points: 5},
				{Threshold: 10, Points: 3},
			},
			DebtTiers: []Tier{
				{Threshold: 30, Points: 5},
				{Threshold: 60, Points: 3},
			},
		},
	}
}

// award walks the tiers and returns the points of the first tier whose
// threshold the value strictly exceeds.
func award(tiers []Tier, value float64) float64 {
	for _, t := range tiers {
		if value > t.Threshold {
			return t.Points
		}
	}
	return 0
}

// awardBelow is the mirror of award for metrics where lower is better. Tiers
// must be listed from the lowest threshold up; a non-positive value earns
// nothing.
func awardBelow(tiers []Tier, value float64) float64 {
	if value <= 0 {
		return 0
	}
	for _, t := range tiers {
		if value < t.Threshold {
			return t.Points
		}
	}
	return 0
}
