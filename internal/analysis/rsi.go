package analysis

import (
	"github.com/moznion/go-optional"

	"github.com/openfolio/marketlens/internal/types"
)

// rsi computes the relative strength index over the given period using
// simple rolling means of gains and losses. Deltas start at the second bar
// and the first window uses only real deltas, so the value is defined from
// index period onward; the first bar never contributes a phantom zero delta.
// A window with losses but no gains yields 0, gains but no losses yields
// 100, and a completely flat window has no defined relative strength and is
// marked no-value.
func rsi(series types.PriceSeries, closes []float64, period int) types.MetricSeries {
	points := make([]types.MetricPoint, series.Len())

	for i, bar := range series.Bars {
		if i < period {
			points[i] = types.MetricPoint{Time: bar.Time, Value: optional.None[float64]()}

			continue
		}

		gains := 0.0
		losses := 0.0

		for j := i - period + 1; j <= i; j++ {
			delta := closes[j] - closes[j-1]
			if delta > 0 {
				gains += delta
			} else {
				losses -= delta
			}
		}

		avgGain := gains / float64(period)
		avgLoss := losses / float64(period)

		switch {
		case avgLoss == 0 && avgGain == 0:
			points[i] = types.MetricPoint{Time: bar.Time, Value: optional.None[float64]()}
		case avgLoss == 0:
			points[i] = types.MetricPoint{Time: bar.Time, Value: optional.Some(100.0)}
		default:
			rs := avgGain / avgLoss
			points[i] = types.MetricPoint{Time: bar.Time, Value: optional.Some(100 - 100/(1+rs))}
		}
	}

	return types.MetricSeries{Name: MetricRSI, Points: points}
}
