package types

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"
)

type SummaryTestSuite struct {
	suite.Suite
}

func TestSummarySuite(t *testing.T) {
	suite.Run(t, new(SummaryTestSuite))
}

func (suite *SummaryTestSuite) TestWriteSummaryStats() {
	stats := SummaryStats{
		Symbol:               "SPY",
		StartDate:            time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC),
		EndDate:              time.Date(2023, 12, 29, 0, 0, 0, 0, time.UTC),
		StartPrice:           380.82,
		EndPrice:             475.31,
		TotalReturn:          0.2481,
		AnnualizedReturn:     0.2502,
		DailyVolatility:      0.0082,
		AnnualizedVolatility: 0.1302,
		SharpeRatio:          1.77,
		MaxDrawdown:          -0.1012,
		BestDay:              0.0229,
		BestDayDate:          time.Date(2023, 11, 14, 0, 0, 0, 0, time.UTC),
		WorstDay:             -0.0196,
		WorstDayDate:         time.Date(2023, 2, 21, 0, 0, 0, 0, time.UTC),
		PositiveDays:         0.54,
	}

	path := filepath.Join(suite.T().TempDir(), "summary.yaml")
	suite.NoError(WriteSummaryStats(path, stats))

	data, err := os.ReadFile(path)
	suite.NoError(err)

	var loaded SummaryStats
	suite.NoError(yaml.Unmarshal(data, &loaded))
	suite.Equal(stats.Symbol, loaded.Symbol)
	suite.Equal(stats.TotalReturn, loaded.TotalReturn)
	suite.Equal(stats.MaxDrawdown, loaded.MaxDrawdown)
	suite.True(stats.BestDayDate.Equal(loaded.BestDayDate))
}

func (suite *SummaryTestSuite) TestWriteSummaryStatsBadPath() {
	err := WriteSummaryStats(filepath.Join(suite.T().TempDir(), "missing", "summary.yaml"), SummaryStats{})
	suite.Error(err)
}
