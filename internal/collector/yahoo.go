package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/equity"
	"github.com/piquette/finance-go/quote"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"StrataScan/internal/model"
)

const (
	yahooRateLimit = 5 // requests per second
	yahooRetries   = 3
)

// YahooFetcher pulls quotes and daily history from Yahoo Finance. Calls are
// rate limited and retried with a short backoff; fundamentals come from the
// quote endpoint so they carry valuation fields only.
type YahooFetcher struct {
	limiter *rate.Limiter
	log     zerolog.Logger
}

func NewYahooFetcher(log zerolog.Logger) *YahooFetcher {
	return &YahooFetcher{
		limiter: rate.NewLimiter(rate.Limit(yahooRateLimit), yahooRateLimit),
		log:     log.With().Str("fetcher", "yahoo").Logger(),
	}
}

func (y *YahooFetcher) Name() string { return "yahoo" }

func (y *YahooFetcher) FetchPriceSeries(ctx context.Context, symbol string, days int) (*model.PriceSeries, error) {
	if err := y.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	end := time.Now()
	start := end.AddDate(0, 0, -days)

	var bars []model.OHLCV
	err := y.withRetry(ctx, func() error {
		params := &chart.Params{
			Symbol:   symbol,
			Start:    datetime.New(&start),
			End:      datetime.New(&end),
			Interval: datetime.OneDay,
		}
		iter := chart.Get(params)

		bars = bars[:0]
		for iter.Next() {
			b := iter.Bar()
			bars = append(bars, model.OHLCV{
				Time:   time.Unix(int64(b.Timestamp), 0),
				Open:   b.Open.InexactFloat64(),
				High:   b.High.InexactFloat64(),
				Low:    b.Low.InexactFloat64(),
				Close:  b.Close.InexactFloat64(),
				Volume: float64(b.Volume),
			})
		}
		if err := iter.Err(); err != nil {
			return fmt.Errorf("chart %s: %w", symbol, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("chart %s: %w", symbol, ErrNoData)
	}

	series := &model.PriceSeries{
		Symbol:       symbol,
		Bars:         bars,
		CurrentPrice: bars[len(bars)-1].Close,
		FetchedAt:    time.Now(),
	}

	// The live quote supersedes the last bar close when available.
	if q, err := quote.Get(symbol); err == nil && q != nil && q.RegularMarketPrice > 0 {
		series.CurrentPrice = q.RegularMarketPrice
	}

	y.log.Debug().Str("symbol", symbol).Int("bars", len(bars)).Msg("fetched price series")
	return series, nil
}

func (y *YahooFetcher) FetchFundamentals(ctx context.Context, symbol string) (model.Fundamentals, error) {
	if err := y.limiter.Wait(ctx); err != nil {
		return model.Fundamentals{}, err
	}

	var f model.Fundamentals
	err := y.withRetry(ctx, func() error {
		eq, err := equity.Get(symbol)
		if err != nil {
			return fmt.Errorf("equity %s: %w", symbol, err)
		}
		if eq == nil {
			return fmt.Errorf("equity %s: %w", symbol, ErrNoData)
		}
		f = model.Fundamentals{
			Name:          eq.ShortName,
			TrailingPE:    eq.TrailingPE,
			MarketCap:     float64(eq.MarketCap),
			DividendYield: eq.TrailingAnnualDividendYield * 100,
			AvgVolume:     float64(eq.AverageDailyVolume3Month),
		}
		return nil
	})
	return f, err
}

func (y *YahooFetcher) withRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; attempt < yahooRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}
		if err = fn(); err == nil {
			return nil
		}
		y.log.Warn().Err(err).Int("attempt", attempt+1).Msg("yahoo request failed")
	}
	return err
}
