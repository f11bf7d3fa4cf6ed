package analysis

import (
	"math"
	"time"

	"github.com/openfolio/marketlens/internal/types"
)

// summarize computes the scalar summary statistics for the whole series.
// Caller guarantees the series is non-empty.
func summarize(series types.PriceSeries, returns types.MetricSeries, riskFreeRate float64) types.SummaryStats {
	first := series.Bars[0]
	last := series.Bars[series.Len()-1]

	stats := types.SummaryStats{
		Symbol:      series.Symbol,
		StartDate:   first.Time,
		EndDate:     last.Time,
		StartPrice:  first.Close,
		EndPrice:    last.Close,
		TotalReturn: last.Close/first.Close - 1,
	}

	days := last.Time.Sub(first.Time).Hours() / 24
	if days > 0 {
		stats.AnnualizedReturn = math.Pow(1+stats.TotalReturn, 365/days) - 1
	}

	definedReturns := make([]float64, 0, series.Len())

	var (
		bestDay, worstDay   float64
		bestDate, worstDate time.Time
		positive            int
	)

	for i := range series.Bars {
		r, ok := returns.ValueAt(i)
		if !ok {
			continue
		}

		if len(definedReturns) == 0 || r > bestDay {
			bestDay = r
			bestDate = series.Bars[i].Time
		}

		if len(definedReturns) == 0 || r < worstDay {
			worstDay = r
			worstDate = series.Bars[i].Time
		}

		if r > 0 {
			positive++
		}

		definedReturns = append(definedReturns, r)
	}

	if len(definedReturns) > 0 {
		stats.BestDay = bestDay
		stats.BestDayDate = bestDate
		stats.WorstDay = worstDay
		stats.WorstDayDate = worstDate
		// Denominator counts only days with a defined return; the first
		// bar has none.
		stats.PositiveDays = float64(positive) / float64(len(definedReturns))
	}

	stats.DailyVolatility = sampleStd(definedReturns)
	stats.AnnualizedVolatility = stats.DailyVolatility * math.Sqrt(TradingDaysPerYear)

	if stats.AnnualizedVolatility > 0 {
		stats.SharpeRatio = (stats.AnnualizedReturn - riskFreeRate) / stats.AnnualizedVolatility
	}

	peak := 0.0

	for _, bar := range series.Bars {
		if bar.Close > peak {
			peak = bar.Close
		}

		dd := (bar.Close - peak) / peak
		if dd < stats.MaxDrawdown {
			stats.MaxDrawdown = dd
		}
	}

	return stats
}
