package analysis

import (
	"github.com/moznion/go-optional"

	"github.com/openfolio/marketlens/internal/types"
)

// drawdowns computes (close - runningMax) / runningMax for each date, where
// runningMax is the highest close seen so far. Values are always <= 0 and
// equal 0 whenever the close sets a new high.
func drawdowns(series types.PriceSeries) types.MetricSeries {
	points := make([]types.MetricPoint, series.Len())
	peak := 0.0

	for i, bar := range series.Bars {
		if bar.Close > peak {
			peak = bar.Close
		}

		points[i] = types.MetricPoint{
			Time:  bar.Time,
			Value: optional.Some((bar.Close - peak) / peak),
		}
	}

	return types.MetricSeries{Name: MetricDrawdown, Points: points}
}
