package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"
)

type RollingTestSuite struct {
	suite.Suite
}

func TestRollingSuite(t *testing.T) {
	suite.Run(t, new(RollingTestSuite))
}

func (suite *RollingTestSuite) TestMean() {
	suite.Equal(2.0, mean([]float64{1, 2, 3}))
	suite.Equal(5.0, mean([]float64{5}))
}

func (suite *RollingTestSuite) TestSampleStd() {
	// Sample standard deviation of [2, 4, 4, 4, 5, 5, 7, 9] with n-1
	// denominator is sqrt(32/7).
	suite.InDelta(math.Sqrt(32.0/7.0), sampleStd([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-12)
}

func (suite *RollingTestSuite) TestSampleStdDegenerate() {
	suite.Zero(sampleStd(nil))
	suite.Zero(sampleStd([]float64{3.14}))
}

func (suite *RollingTestSuite) TestSampleStdConstant() {
	suite.Zero(sampleStd([]float64{5, 5, 5, 5}))
}

func (suite *RollingTestSuite) TestRollingMeanValues() {
	series := seriesFromCloses("SPY", []float64{10, 20, 30, 40})
	ma := rollingMean(series, series.Closes(), 2)

	_, ok := ma.ValueAt(0)
	suite.False(ok)

	v, ok := ma.ValueAt(1)
	suite.True(ok)
	suite.Equal(15.0, v)

	v, ok = ma.ValueAt(3)
	suite.True(ok)
	suite.Equal(35.0, v)
}

func (suite *RollingTestSuite) TestRollingMeanWindowOne() {
	// A one-bar window has no warm-up and mirrors the closes.
	series := seriesFromCloses("SPY", []float64{10, 20, 30})
	ma := rollingMean(series, series.Closes(), 1)
	suite.Equal(3, ma.DefinedCount())

	v, ok := ma.ValueAt(0)
	suite.True(ok)
	suite.Equal(10.0, v)
}

func (suite *RollingTestSuite) TestVolatilityWarmUp() {
	series := seriesFromCloses("SPY", []float64{100, 101, 103, 102, 104, 106})
	returns := dailyReturns(series)
	vol := rollingReturnStd(series, returns, 3)

	// Returns start at index 1, so a 3-return window first fills at index 3.
	for i := 0; i < 3; i++ {
		_, ok := vol.ValueAt(i)
		suite.False(ok)
	}

	v, ok := vol.ValueAt(3)
	suite.True(ok)

	r1 := 101.0/100.0 - 1
	r2 := 103.0/101.0 - 1
	r3 := 102.0/103.0 - 1
	suite.InDelta(sampleStd([]float64{r1, r2, r3}), v, 1e-12)
}

func (suite *RollingTestSuite) TestBollingerBandsSymmetry() {
	series := seriesFromCloses("SPY", []float64{100, 101, 103, 102, 104, 106})
	closes := series.Closes()
	returns := dailyReturns(series)
	vol := rollingReturnStd(series, returns, 3)
	upper, lower := bollingerBands(series, closes, vol, 3)
	baseline := rollingMean(series, closes, 3)

	suite.Equal(upper.DefinedCount(), lower.DefinedCount())

	for i := range series.Bars {
		u, okU := upper.ValueAt(i)
		l, okL := lower.ValueAt(i)
		suite.Equal(okU, okL)

		if !okU {
			continue
		}

		m, ok := baseline.ValueAt(i)
		suite.Require().True(ok)

		// Bands sit symmetrically around the moving average.
		suite.InDelta(m, (u+l)/2, 1e-9)
		suite.GreaterOrEqual(u, l)
	}
}

func (suite *RollingTestSuite) TestRSIBounds() {
	series := seriesFromCloses("SPY", []float64{100, 102, 101, 103, 104, 102, 105, 106})
	r := rsi(series, series.Closes(), 3)

	for i := range series.Bars {
		v, ok := r.ValueAt(i)
		if i < 3 {
			suite.False(ok)

			continue
		}

		suite.True(ok)
		suite.GreaterOrEqual(v, 0.0)
		suite.LessOrEqual(v, 100.0)
	}
}

func (suite *RollingTestSuite) TestRSIAllGains() {
	series := seriesFromCloses("SPY", []float64{100, 101, 102, 103, 104})
	r := rsi(series, series.Closes(), 3)

	v, ok := r.ValueAt(4)
	suite.True(ok)
	suite.Equal(100.0, v)
}

func (suite *RollingTestSuite) TestRSIFlatWindowUndefined() {
	series := seriesFromCloses("SPY", []float64{100, 100, 100, 100, 100})
	r := rsi(series, series.Closes(), 3)
	suite.Equal(0, r.DefinedCount())
}
