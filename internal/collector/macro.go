package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"StrataScan/internal/model"
)

// Neutral defaults substituted when a macro provider is unavailable.
const (
	defaultSentiment    = 50.0
	defaultGDPGrowth    = 2.0
	defaultUnemployment = 4.0
	defaultInflation    = 3.0
)

const (
	fearGreedURL = "https://api.alternative.me/fng/"
	fredBaseURL  = "https://api.stlouisfed.org/fred"
)

// FRED series IDs for the macro snapshot.
const (
	seriesGDPGrowth    = "A191RL1Q225SBEA" // real GDP growth, quarterly annualized
	seriesUnemployment = "UNRATE"
	seriesInflation    = "CPIAUCSL" // used as 12-month percent change
	seriesFedFunds     = "FEDFUNDS"
)

// MacroClient assembles the macro snapshot from the Fear & Greed index and
// FRED economic series. Each metric degrades to its neutral default
// independently; the snapshot is marked Degraded if any did.
type MacroClient struct {
	client     *resty.Client
	fredAPIKey string
	log        zerolog.Logger
}

func NewMacroClient(fredAPIKey string, log zerolog.Logger) *MacroClient {
	return &MacroClient{
		client: resty.New().
			SetTimeout(20 * time.Second).
			SetRetryCount(2).
			SetRetryWaitTime(500 * time.Millisecond),
		fredAPIKey: fredAPIKey,
		log:        log.With().Str("fetcher", "macro").Logger(),
	}
}

func (m *MacroClient) Name() string { return "macro" }

func (m *MacroClient) FetchMacro(ctx context.Context) (model.MacroSnapshot, error) {
	snap := model.MacroSnapshot{
		SentimentIndex:   defaultSentiment,
		SentimentLabel:   "Neutral",
		GDPGrowth:        defaultGDPGrowth,
		UnemploymentRate: defaultUnemployment,
		InflationRate:    defaultInflation,
	}

	if value, label, err := m.fearGreed(ctx); err != nil {
		snap.Degraded = true
		m.log.Warn().Err(err).Msg("fear & greed unavailable, using neutral default")
	} else {
		snap.SentimentIndex = value
		snap.SentimentLabel = label
	}

	if m.fredAPIKey == "" {
		snap.Degraded = true
		m.log.Warn().Msg("FRED API key not configured, using macro defaults")
		return snap, nil
	}

	assign := func(series string, dst *float64, transform func(float64) float64) {
		v, err := m.fredLatest(ctx, series)
		if err != nil {
			snap.Degraded = true
			m.log.Warn().Err(err).Str("series", series).Msg("FRED series unavailable")
			return
		}
		if transform != nil {
			v = transform(v)
		}
		*dst = v
	}

	assign(seriesGDPGrowth, &snap.GDPGrowth, nil)
	assign(seriesUnemployment, &snap.UnemploymentRate, nil)
	assign(seriesFedFunds, &snap.FedFundsRate, nil)

	if yoy, err := m.fredYoYChange(ctx, seriesInflation); err != nil {
		snap.Degraded = true
		m.log.Warn().Err(err).Msg("inflation series unavailable")
	} else {
		snap.InflationRate = yoy
	}

	return snap, nil
}

func (m *MacroClient) fearGreed(ctx context.Context) (float64, string, error) {
	resp, err := m.client.R().SetContext(ctx).Get(fearGreedURL)
	if err != nil {
		return 0, "", fmt.Errorf("fear & greed: %w", err)
	}
	body := string(resp.Body())
	value := gjson.Get(body, "data.0.value")
	if !value.Exists() {
		return 0, "", fmt.Errorf("fear & greed: %w", ErrNoData)
	}
	return value.Float(), gjson.Get(body, "data.0.value_classification").String(), nil
}

// fredLatest fetches the most recent observation of a FRED series.
func (m *MacroClient) fredLatest(ctx context.Context, series string) (float64, error) {
	body, err := m.fredObservations(ctx, series, 1)
	if err != nil {
		return 0, err
	}
	obs := gjson.Get(body, "observations.0.value")
	if !obs.Exists() || obs.String() == "." {
		return 0, fmt.Errorf("fred %s: %w", series, ErrNoData)
	}
	return obs.Float(), nil
}

// fredYoYChange computes the 12-month percent change of a monthly index
// series, used for CPI inflation.
func (m *MacroClient) fredYoYChange(ctx context.Context, series string) (float64, error) {
	body, err := m.fredObservations(ctx, series, 13)
	if err != nil {
		return 0, err
	}
	observations := gjson.Get(body, "observations").Array()
	if len(observations) < 13 {
		return 0, fmt.Errorf("fred %s: %w", series, ErrNoData)
	}
	latest := observations[0].Get("value").Float()
	yearAgo := observations[12].Get("value").Float()
	if yearAgo == 0 {
		return 0, fmt.Errorf("fred %s: %w", series, ErrNoData)
	}
	return (latest - yearAgo) / yearAgo * 100, nil
}

func (m *MacroClient) fredObservations(ctx context.Context, series string, limit int) (string, error) {
	resp, err := m.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"series_id":  series,
			"api_key":    m.fredAPIKey,
			"file_type":  "json",
			"sort_order": "desc",
			"limit":      fmt.Sprintf("%d", limit),
		}).
		Get(fredBaseURL + "/series/observations")
	if err != nil {
		return "", fmt.Errorf("fred %s: %w", series, err)
	}
	return string(resp.Body()), nil
}
