package types

import (
	"time"

	"github.com/openfolio/marketlens/pkg/errors"
)

// PriceBar is one day's open/high/low/close/volume record for an instrument.
// Bars are immutable once fetched.
type PriceBar struct {
	Time   time.Time `csv:"time"`
	Open   float64   `csv:"open"`
	High   float64   `csv:"high"`
	Low    float64   `csv:"low"`
	Close  float64   `csv:"close"`
	Volume float64   `csv:"volume"`
}

// PriceSeries is an ordered sequence of daily bars for one symbol over one
// contiguous date range. Dates are strictly increasing; calendar gaps from
// market holidays are legal and not filled.
type PriceSeries struct {
	Symbol string
	Bars   []PriceBar
}

// Len returns the number of bars in the series.
func (s PriceSeries) Len() int {
	return len(s.Bars)
}

// Validate checks the series invariants: strictly increasing dates,
// positive OHLC prices and non-negative volume.
func (s PriceSeries) Validate() error {
	for i, bar := range s.Bars {
		if bar.Open <= 0 || bar.High <= 0 || bar.Low <= 0 || bar.Close <= 0 {
			return errors.Newf(errors.ErrCodeNonPositivePrice,
				"non-positive price in bar %d (%s) for %s", i, bar.Time.Format("2006-01-02"), s.Symbol)
		}

		if bar.Volume < 0 {
			return errors.Newf(errors.ErrCodeInvalidSeries,
				"negative volume in bar %d (%s) for %s", i, bar.Time.Format("2006-01-02"), s.Symbol)
		}

		if i > 0 && !s.Bars[i-1].Time.Before(bar.Time) {
			return errors.Newf(errors.ErrCodeInvalidSeries,
				"bar %d (%s) is not after bar %d (%s) for %s",
				i, bar.Time.Format("2006-01-02"), i-1, s.Bars[i-1].Time.Format("2006-01-02"), s.Symbol)
		}
	}

	return nil
}

// Closes returns the close prices in date order.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, bar := range s.Bars {
		closes[i] = bar.Close
	}

	return closes
}
