package types

import (
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/suite"
)

type MetricsTestSuite struct {
	suite.Suite
}

func TestMetricsSuite(t *testing.T) {
	suite.Run(t, new(MetricsTestSuite))
}

func (suite *MetricsTestSuite) metricSeries() MetricSeries {
	base := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)

	return MetricSeries{
		Name: "ma_3",
		Points: []MetricPoint{
			{Time: base, Value: optional.None[float64]()},
			{Time: base.AddDate(0, 0, 1), Value: optional.None[float64]()},
			{Time: base.AddDate(0, 0, 2), Value: optional.Some(101.5)},
			{Time: base.AddDate(0, 0, 3), Value: optional.Some(102.0)},
		},
	}
}

func (suite *MetricsTestSuite) TestDefinedCount() {
	suite.Equal(2, suite.metricSeries().DefinedCount())
}

func (suite *MetricsTestSuite) TestValueAtWarmUp() {
	_, ok := suite.metricSeries().ValueAt(0)
	suite.False(ok)
}

func (suite *MetricsTestSuite) TestValueAtDefined() {
	v, ok := suite.metricSeries().ValueAt(2)
	suite.True(ok)
	suite.Equal(101.5, v)
}

func (suite *MetricsTestSuite) TestValueAtOutOfRange() {
	_, ok := suite.metricSeries().ValueAt(99)
	suite.False(ok)

	_, ok = suite.metricSeries().ValueAt(-1)
	suite.False(ok)
}

func (suite *MetricsTestSuite) TestLast() {
	v, ok := suite.metricSeries().Last()
	suite.True(ok)
	suite.Equal(102.0, v)
}

func (suite *MetricsTestSuite) TestLastEmpty() {
	empty := MetricSeries{Name: "empty", Points: nil}
	_, ok := empty.Last()
	suite.False(ok)
}
