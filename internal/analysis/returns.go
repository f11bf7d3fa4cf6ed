package analysis

import (
	"github.com/moznion/go-optional"

	"github.com/openfolio/marketlens/internal/types"
)

// dailyReturns computes (close[t] - close[t-1]) / close[t-1] for each bar
// after the first. The first date has no prior close and is marked no-value.
func dailyReturns(series types.PriceSeries) types.MetricSeries {
	points := make([]types.MetricPoint, series.Len())

	for i, bar := range series.Bars {
		if i == 0 {
			points[i] = types.MetricPoint{Time: bar.Time, Value: optional.None[float64]()}

			continue
		}

		prev := series.Bars[i-1].Close
		points[i] = types.MetricPoint{
			Time:  bar.Time,
			Value: optional.Some((bar.Close - prev) / prev),
		}
	}

	return types.MetricSeries{Name: MetricDailyReturn, Points: points}
}

// cumulativeReturns computes the running product of (1 + daily return) minus
// one, seeded at 0 for the first date.
func cumulativeReturns(series types.PriceSeries, returns types.MetricSeries) types.MetricSeries {
	points := make([]types.MetricPoint, series.Len())
	growth := 1.0

	for i, bar := range series.Bars {
		if r, ok := returns.ValueAt(i); ok {
			growth *= 1 + r
		}

		points[i] = types.MetricPoint{Time: bar.Time, Value: optional.Some(growth - 1)}
	}

	return types.MetricSeries{Name: MetricCumulativeReturn, Points: points}
}
