package analysis

import (
	"math"

	"github.com/moznion/go-optional"

	"github.com/openfolio/marketlens/internal/types"
)

// mean returns the arithmetic mean of xs. Caller guarantees xs is non-empty.
func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}

	return sum / float64(len(xs))
}

// sampleStd returns the sample standard deviation (n-1 denominator) of xs.
// Fewer than two observations have no spread and return 0.
func sampleStd(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}

	m := mean(xs)
	sum := 0.0

	for _, x := range xs {
		d := x - m
		sum += d * d
	}

	return math.Sqrt(sum / float64(len(xs)-1))
}

// rollingMean computes the trailing mean of the closes over the given window.
// The first window-1 dates are inside the warm-up period and marked no-value.
func rollingMean(series types.PriceSeries, closes []float64, window int) types.MetricSeries {
	points := make([]types.MetricPoint, series.Len())

	for i, bar := range series.Bars {
		if i < window-1 {
			points[i] = types.MetricPoint{Time: bar.Time, Value: optional.None[float64]()}

			continue
		}

		points[i] = types.MetricPoint{
			Time:  bar.Time,
			Value: optional.Some(mean(closes[i-window+1 : i+1])),
		}
	}

	return types.MetricSeries{Name: MetricMA(window), Points: points}
}

// rollingReturnStd computes the trailing sample standard deviation of daily
// returns over the given window. Since the first date has no return, the
// value is defined from index window onward.
func rollingReturnStd(series types.PriceSeries, returns types.MetricSeries, window int) types.MetricSeries {
	points := make([]types.MetricPoint, series.Len())
	buf := make([]float64, 0, window)

	for i, bar := range series.Bars {
		if i < window {
			points[i] = types.MetricPoint{Time: bar.Time, Value: optional.None[float64]()}

			continue
		}

		buf = buf[:0]

		for j := i - window + 1; j <= i; j++ {
			r, ok := returns.ValueAt(j)
			if !ok {
				continue
			}

			buf = append(buf, r)
		}

		points[i] = types.MetricPoint{Time: bar.Time, Value: optional.Some(sampleStd(buf))}
	}

	return types.MetricSeries{Name: MetricVolatility, Points: points}
}

// bollingerBands computes upper and lower bands around the window-sized
// moving average, offset by two rolling standard deviations of returns
// scaled by the average itself. Points where either input is inside its
// warm-up period are no-value.
func bollingerBands(series types.PriceSeries, closes []float64, volatility types.MetricSeries, window int) (types.MetricSeries, types.MetricSeries) {
	baseline := rollingMean(series, closes, window)

	upper := make([]types.MetricPoint, series.Len())
	lower := make([]types.MetricPoint, series.Len())

	for i, bar := range series.Bars {
		m, okMean := baseline.ValueAt(i)
		sigma, okStd := volatility.ValueAt(i)

		if !okMean || !okStd {
			upper[i] = types.MetricPoint{Time: bar.Time, Value: optional.None[float64]()}
			lower[i] = types.MetricPoint{Time: bar.Time, Value: optional.None[float64]()}

			continue
		}

		offset := 2 * sigma * m
		upper[i] = types.MetricPoint{Time: bar.Time, Value: optional.Some(m + offset)}
		lower[i] = types.MetricPoint{Time: bar.Time, Value: optional.Some(m - offset)}
	}

	return types.MetricSeries{Name: MetricUpperBand, Points: upper},
		types.MetricSeries{Name: MetricLowerBand, Points: lower}
}
