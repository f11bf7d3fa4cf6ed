// Package analysis implements the metrics engine: a pure, deterministic
// transformation of a price series into derived metric series and summary
// statistics. It performs no I/O and holds no state between runs.
package analysis

import (
	"fmt"

	"github.com/openfolio/marketlens/internal/types"
	"github.com/openfolio/marketlens/pkg/errors"
)

// Metric series names produced by the engine. Moving averages are named
// dynamically as "ma_<window>".
const (
	MetricDailyReturn      = "daily_return"
	MetricCumulativeReturn = "cumulative_return"
	MetricVolatility       = "volatility"
	MetricUpperBand        = "upper_band"
	MetricLowerBand        = "lower_band"
	MetricDrawdown         = "drawdown"
	MetricRSI              = "rsi"
)

// MetricMA returns the series name for a moving average of the given window.
func MetricMA(window int) string {
	return fmt.Sprintf("ma_%d", window)
}

// Engine computes derived metrics over a validated price series.
type Engine struct {
	config Config
}

// Result holds the output of one engine run.
type Result struct {
	// Series is the input price series the metrics are aligned to.
	Series types.PriceSeries
	// Metrics holds the derived series in a fixed order.
	Metrics []types.MetricSeries
	// Summary holds the scalar statistics for the whole series.
	Summary types.SummaryStats
}

// Metric returns the named metric series.
func (r Result) Metric(name string) (types.MetricSeries, bool) {
	for _, m := range r.Metrics {
		if m.Name == name {
			return m, true
		}
	}

	return types.MetricSeries{}, false
}

// NewEngine creates a metrics engine with the given configuration.
func NewEngine(config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid analysis configuration: %w", err)
	}

	return &Engine{config: config}, nil
}

// Run computes all metric series and summary statistics for the series.
// It rejects an empty series and any series violating the price invariants.
// A series shorter than a rolling window still produces that window's series,
// with every point marked no-value.
func (e *Engine) Run(series types.PriceSeries) (Result, error) {
	if series.Len() == 0 {
		return Result{}, errors.NewInsufficientDataErrorf(1, 0, series.Symbol,
			"empty price series for %s", series.Symbol)
	}

	if err := series.Validate(); err != nil {
		return Result{}, err
	}

	closes := series.Closes()

	returns := dailyReturns(series)

	metrics := []types.MetricSeries{
		returns,
		cumulativeReturns(series, returns),
	}

	for _, window := range e.config.MAWindows {
		metrics = append(metrics, rollingMean(series, closes, window))
	}

	volatility := rollingReturnStd(series, returns, e.config.VolatilityWindow)
	upper, lower := bollingerBands(series, closes, volatility, e.config.VolatilityWindow)

	metrics = append(metrics,
		volatility,
		upper,
		lower,
		drawdowns(series),
		rsi(series, closes, e.config.RSIPeriod),
	)

	summary := summarize(series, returns, e.config.RiskFreeRate)

	return Result{
		Series:  series,
		Metrics: metrics,
		Summary: summary,
	}, nil
}
