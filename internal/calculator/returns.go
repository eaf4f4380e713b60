package calculator

import (
	"math"
	"sort"
)

// DailyReturns computes the day-over-day fractional returns of a close series.
func DailyReturns(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] == 0 {
			continue
		}
		returns = append(returns, (closes[i]-closes[i-1])/closes[i-1])
	}
	return returns
}

// PeriodReturn computes the percent change between the last close and the
// close `offset` bars before it. Returns 0 when the series is too short.
func PeriodReturn(closes []float64, offset int) float64 {
	n := len(closes)
	if offset <= 0 || n < offset+1 {
		return 0
	}
	base := closes[n-1-offset]
	if base == 0 {
		return 0
	}
	return (closes[n-1] - base) / base * 100
}

// AnnualizedVolatility computes the annualized standard deviation of daily
// returns, in percent.
func AnnualizedVolatility(returns []float64) float64 {
	std := stddev(returns)
	return std * math.Sqrt(252) * 100
}

// MaxDrawdown computes the worst peak-to-trough decline of the cumulative
// return path, in percent (negative).
func MaxDrawdown(returns []float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	cumulative := 1.0
	peak := 1.0
	worst := 0.0
	for _, r := range returns {
		cumulative *= 1 + r
		if cumulative > peak {
			peak = cumulative
		}
		dd := (cumulative - peak) / peak
		if dd < worst {
			worst = dd
		}
	}
	return worst * 100
}

// ValueAtRisk95 computes the 5th percentile of daily returns, in percent.
func ValueAtRisk95(returns []float64) float64 {
	return percentile(returns, 5) * 100
}

// SharpeRatio computes the annualized Sharpe ratio with the given risk-free
// rate (fractional, e.g. 0.02). Returns 0 for a zero-variance series.
func SharpeRatio(returns []float64, riskFree float64) float64 {
	std := stddev(returns)
	if std == 0 {
		return 0
	}
	excess := mean(returns)*252 - riskFree
	return excess / (std * math.Sqrt(252))
}

// Beta computes the regression beta of the asset returns against benchmark
// returns over their common length. Defaults to 1.0 when there are fewer than
// 20 aligned observations or the benchmark has no variance.
func Beta(asset, benchmark []float64) float64 {
	n := len(asset)
	if len(benchmark) < n {
		n = len(benchmark)
	}
	if n < 20 {
		return 1.0
	}
	a := asset[len(asset)-n:]
	b := benchmark[len(benchmark)-n:]

	meanA := mean(a)
	meanB := mean(b)
	var cov, varB float64
	for i := 0; i < n; i++ {
		cov += (a[i] - meanA) * (b[i] - meanB)
		varB += (b[i] - meanB) * (b[i] - meanB)
	}
	if varB == 0 {
		return 1.0
	}
	return cov / varB
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func stddev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	var sq float64
	for _, x := range xs {
		sq += (x - m) * (x - m)
	}
	return math.Sqrt(sq / float64(len(xs)-1))
}

// percentile computes the p-th percentile with linear interpolation.
func percentile(xs []float64, p float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
