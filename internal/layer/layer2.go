package layer

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"StrataScan/internal/calculator"
	"StrataScan/internal/collector"
	"StrataScan/internal/model"
	"StrataScan/internal/scoring"
)

const (
	maxUniverseSize = 100
	batchSize       = 10
	earlyStopCount  = 20
	maxSelected     = 15
	screenDays      = 90
	fallbackScore   = 70
)

// Screener is the selection layer: it sweeps the universe in concurrent
// batches, scores each symbol against the strategy criteria and keeps the
// best passing candidates.
type Screener struct {
	fetcher  collector.MarketDataFetcher
	policy   scoring.Policy
	universe []string
	log      zerolog.Logger
}

func NewScreener(fetcher collector.MarketDataFetcher, policy scoring.Policy, universe []string, log zerolog.Logger) *Screener {
	if len(universe) == 0 {
		universe = DefaultUniverse()
	}
	if len(universe) > maxUniverseSize {
		universe = universe[:maxUniverseSize]
	}
	return &Screener{
		fetcher:  fetcher,
		policy:   policy,
		universe: universe,
		log:      log.With().Str("layer", "screening").Logger(),
	}
}

// Screen runs the full sweep for the given strategy. An empty result degrades
// to the strategy's fallback list so downstream layers always have input.
func (s *Screener) Screen(ctx context.Context, strategy *model.StrategyProfile) *model.ScreeningReport {
	criteria := strategy.ScreeningCriteria
	var selected []*model.Candidate
	screened := 0

	for start := 0; start < len(s.universe); start += batchSize {
		end := start + batchSize
		if end > len(s.universe) {
			end = len(s.universe)
		}
		batch := s.screenBatch(ctx, s.universe[start:end], criteria)
		screened += end - start
		selected = append(selected, batch...)

		if len(selected) >= earlyStopCount {
			s.log.Debug().Int("selected", len(selected)).Msg("early stop, enough candidates")
			break
		}
		if ctx.Err() != nil {
			break
		}
	}

	report := &model.ScreeningReport{
		StrategyApplied: strategy.PrimaryFocus,
		Criteria:        criteria,
		TotalScreened:   screened,
	}

	if len(selected) == 0 {
		s.log.Warn().Str("focus", string(strategy.PrimaryFocus)).Msg("screen came back empty, using fallback list")
		report.SelectedStocks = s.fallbackCandidates(ctx, strategy.PrimaryFocus)
		report.Degraded = true
	} else {
		sort.Slice(selected, func(i, j int) bool {
			return selected[i].TotalScore > selected[j].TotalScore
		})
		if len(selected) > maxSelected {
			selected = selected[:maxSelected]
		}
		report.SelectedStocks = selected
	}

	report.SectorDistribution = sectorDistribution(report.SelectedStocks)
	report.SectorRotation = s.SectorRotation(ctx)

	s.log.Info().
		Int("screened", report.TotalScreened).
		Int("selected", len(report.SelectedStocks)).
		Bool("degraded", report.Degraded).
		Msg("screening complete")
	return report
}

// screenBatch evaluates one batch of symbols concurrently. Per-symbol
// failures are logged and skipped, never fatal.
func (s *Screener) screenBatch(ctx context.Context, symbols []string, criteria model.ScreeningCriteria) []*model.Candidate {
	var (
		mu       sync.Mutex
		selected []*model.Candidate
		wg       sync.WaitGroup
	)

	for _, symbol := range symbols {
		wg.Add(1)
		go func(symbol string) {
			defer wg.Done()
			candidate, err := s.evaluate(ctx, symbol, criteria)
			if err != nil {
				s.log.Debug().Err(err).Str("symbol", symbol).Msg("symbol skipped")
				return
			}
			if candidate == nil || !candidate.Passes {
				return
			}
			mu.Lock()
			selected = append(selected, candidate)
			mu.Unlock()
		}(symbol)
	}
	wg.Wait()
	return selected
}

// evaluate fetches, filters and scores one symbol. Returns nil without error
// when the symbol fails the hard criteria gates.
func (s *Screener) evaluate(ctx context.Context, symbol string, criteria model.ScreeningCriteria) (*model.Candidate, error) {
	series, err := s.fetcher.FetchPriceSeries(ctx, symbol, screenDays)
	if err != nil {
		return nil, err
	}
	fundamentals, err := s.fetcher.FetchFundamentals(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if fundamentals.AvgVolume == 0 {
		fundamentals.AvgVolume = calculator.AvgVolume(series.Bars, 20)
	}

	// Hard gates before any scoring.
	if criteria.MinMarketCap > 0 && fundamentals.MarketCap < criteria.MinMarketCap {
		return nil, nil
	}
	if criteria.MinVolume > 0 && fundamentals.AvgVolume < criteria.MinVolume {
		return nil, nil
	}
	if criteria.MinDividendYield > 0 && fundamentals.DividendYield < criteria.MinDividendYield {
		return nil, nil
	}

	indicators := calculator.ComputeIndicatorSet(series)
	breakdown, reasons := scoring.Score(scoring.Inputs{
		Series:       series,
		Fundamentals: fundamentals,
		Indicators:   indicators,
		Criteria:     criteria,
	}, s.policy)

	total := breakdown.Total()
	return &model.Candidate{
		Symbol:       symbol,
		Name:         fundamentals.Name,
		CurrentPrice: series.CurrentPrice,
		Sector:       fundamentals.Sector,
		Industry:     fundamentals.Industry,
		Fundamentals: fundamentals,
		Indicators:   indicators,
		Scores:       breakdown,
		TotalScore:   total,
		Passes:       total >= s.policy.PassThreshold,
		Reasons:      reasons,
	}, nil
}

// fallbackCandidates builds placeholder candidates from the strategy's
// documented fallback list, with live prices when the fetcher cooperates.
func (s *Screener) fallbackCandidates(ctx context.Context, focus model.Focus) []*model.Candidate {
	var symbols []string
	switch focus {
	case model.FocusGrowth:
		symbols = fallbackGrowth
	case model.FocusValue:
		symbols = fallbackValue
	default:
		symbols = fallbackBalanced
	}

	candidates := make([]*model.Candidate, 0, len(symbols))
	for _, symbol := range symbols {
		c := &model.Candidate{
			Symbol:     symbol,
			TotalScore: fallbackScore,
			Passes:     true,
			Reasons:    []string{"fallback pick: screening data unavailable"},
			Degraded:   true,
		}
		if series, err := s.fetcher.FetchPriceSeries(ctx, symbol, screenDays); err == nil {
			c.CurrentPrice = series.CurrentPrice
			c.Indicators = calculator.ComputeIndicatorSet(series)
		}
		candidates = append(candidates, c)
	}
	return candidates
}

func sectorDistribution(candidates []*model.Candidate) map[string]int {
	dist := make(map[string]int)
	for _, c := range candidates {
		sector := c.Sector
		if sector == "" {
			sector = "Unknown"
		}
		dist[sector]++
	}
	return dist
}
