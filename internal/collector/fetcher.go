package collector

import (
	"context"
	"errors"

	"StrataScan/internal/model"
)

// ErrNoData is returned when a provider answers but has nothing usable for
// the symbol.
var ErrNoData = errors.New("no data available")

// MarketDataFetcher supplies price history and per-symbol fundamentals.
// Implementations must be safe for concurrent use: the screening layer calls
// them from a worker pool.
type MarketDataFetcher interface {
	// FetchPriceSeries returns up to `days` daily bars for the symbol,
	// chronologically ordered, with the current price filled in.
	FetchPriceSeries(ctx context.Context, symbol string, days int) (*model.PriceSeries, error)

	// FetchFundamentals returns the sparse fundamentals for the symbol.
	// Missing metrics stay zero; only a total provider failure errors.
	FetchFundamentals(ctx context.Context, symbol string) (model.Fundamentals, error)

	Name() string
}

// MacroFetcher supplies the macro snapshot for the environment layer.
// Implementations degrade to neutral defaults per metric rather than failing
// the whole snapshot.
type MacroFetcher interface {
	FetchMacro(ctx context.Context) (model.MacroSnapshot, error)

	Name() string
}
