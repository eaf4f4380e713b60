package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"StrataScan/internal/model"
)

const finnhubBaseURL = "https://finnhub.io/api/v1"

// FinnhubClient pulls company profiles and financial metrics from Finnhub.
// The free tier allows 60 requests per minute, so the limiter stays at one
// request per second.
type FinnhubClient struct {
	client  *resty.Client
	apiKey  string
	limiter *rate.Limiter
	log     zerolog.Logger
}

func NewFinnhubClient(apiKey string, log zerolog.Logger) *FinnhubClient {
	client := resty.New().
		SetBaseURL(finnhubBaseURL).
		SetTimeout(30 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)

	return &FinnhubClient{
		client:  client,
		apiKey:  apiKey,
		limiter: rate.NewLimiter(rate.Limit(1), 2),
		log:     log.With().Str("fetcher", "finnhub").Logger(),
	}
}

// Fundamentals fetches profile and metric data for the symbol. Metrics that
// Finnhub does not report stay zero.
func (c *FinnhubClient) Fundamentals(ctx context.Context, symbol string) (model.Fundamentals, error) {
	var f model.Fundamentals
	if c.apiKey == "" {
		return f, fmt.Errorf("finnhub: API key not configured")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return f, err
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"symbol": symbol, "token": c.apiKey}).
		Get("/stock/profile2")
	if err != nil {
		return f, fmt.Errorf("finnhub profile %s: %w", symbol, err)
	}
	profile := string(resp.Body())
	f.Name = gjson.Get(profile, "name").String()
	f.Industry = gjson.Get(profile, "finnhubIndustry").String()
	// Finnhub reports market cap in millions.
	f.MarketCap = gjson.Get(profile, "marketCapitalization").Float() * 1e6

	if err := c.limiter.Wait(ctx); err != nil {
		return f, err
	}
	resp, err = c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"symbol": symbol, "metric": "all", "token": c.apiKey}).
		Get("/stock/metric")
	if err != nil {
		return f, fmt.Errorf("finnhub metric %s: %w", symbol, err)
	}
	metrics := string(resp.Body())
	f.TrailingPE = gjson.Get(metrics, "metric.peTTM").Float()
	f.RevenueGrowth = gjson.Get(metrics, "metric.revenueGrowthTTMYoy").Float()
	f.ProfitMargin = gjson.Get(metrics, "metric.netProfitMarginTTM").Float()
	f.ReturnOnEquity = gjson.Get(metrics, "metric.roeTTM").Float()
	f.DebtToEquity = gjson.Get(metrics, `metric.totalDebt/totalEquityQuarterly`).Float()
	f.DividendYield = gjson.Get(metrics, "metric.currentDividendYieldTTM").Float()

	return f, nil
}

// EnrichedFetcher layers Finnhub fundamentals on top of a base market-data
// fetcher. A Finnhub failure degrades to the base fundamentals instead of
// failing the symbol.
type EnrichedFetcher struct {
	base MarketDataFetcher
	fin  *FinnhubClient
	log  zerolog.Logger
}

func NewEnrichedFetcher(base MarketDataFetcher, fin *FinnhubClient, log zerolog.Logger) *EnrichedFetcher {
	return &EnrichedFetcher{base: base, fin: fin, log: log}
}

func (e *EnrichedFetcher) Name() string { return e.base.Name() + "+finnhub" }

func (e *EnrichedFetcher) FetchPriceSeries(ctx context.Context, symbol string, days int) (*model.PriceSeries, error) {
	return e.base.FetchPriceSeries(ctx, symbol, days)
}

func (e *EnrichedFetcher) FetchFundamentals(ctx context.Context, symbol string) (model.Fundamentals, error) {
	f, err := e.base.FetchFundamentals(ctx, symbol)
	if err != nil {
		return f, err
	}
	if e.fin == nil {
		return f, nil
	}

	rich, err := e.fin.Fundamentals(ctx, symbol)
	if err != nil {
		e.log.Warn().Err(err).Str("symbol", symbol).Msg("fundamentals enrichment failed")
		return f, nil
	}
	mergeFundamentals(&f, rich)
	return f, nil
}

// mergeFundamentals fills only the fields the base fetcher left empty.
func mergeFundamentals(dst *model.Fundamentals, src model.Fundamentals) {
	if dst.Name == "" {
		dst.Name = src.Name
	}
	if dst.TrailingPE == 0 {
		dst.TrailingPE = src.TrailingPE
	}
	if dst.MarketCap == 0 {
		dst.MarketCap = src.MarketCap
	}
	if dst.DividendYield == 0 {
		dst.DividendYield = src.DividendYield
	}
	if dst.Industry == "" {
		dst.Industry = src.Industry
	}
	dst.RevenueGrowth = src.RevenueGrowth
	dst.ProfitMargin = src.ProfitMargin
	dst.ReturnOnEquity = src.ReturnOnEquity
	dst.DebtToEquity = src.DebtToEquity
}
