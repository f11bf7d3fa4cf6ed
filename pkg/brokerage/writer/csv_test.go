package writer

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/suite"

	"github.com/openfolio/marketlens/internal/types"
)

type CSVWriterTestSuite struct {
	suite.Suite

	dataDir string
	writer  *CSVWriter
}

func TestCSVWriterSuite(t *testing.T) {
	suite.Run(t, new(CSVWriterTestSuite))
}

func (suite *CSVWriterTestSuite) SetupTest() {
	suite.dataDir = suite.T().TempDir()

	writer, err := NewCSVWriter(suite.dataDir)
	suite.Require().NoError(err)
	suite.writer = writer
}

func (suite *CSVWriterTestSuite) series() types.PriceSeries {
	base := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)

	return types.PriceSeries{
		Symbol: "SPY",
		Bars: []types.PriceBar{
			{Time: base, Open: 449, High: 451, Low: 448, Close: 450, Volume: 5000000},
			{Time: base.AddDate(0, 0, 1), Open: 450, High: 453, Low: 449, Close: 452, Volume: 4800000},
			{Time: base.AddDate(0, 0, 2), Open: 452, High: 452, Low: 447, Close: 449, Volume: 5100000},
		},
	}
}

func (suite *CSVWriterTestSuite) readAll(path string) [][]string {
	file, err := os.Open(path)
	suite.Require().NoError(err)

	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	suite.Require().NoError(err)

	return rows
}

func (suite *CSVWriterTestSuite) TestNewCSVWriterCreatesDirectory() {
	nested := filepath.Join(suite.dataDir, "output", "data")
	_, err := NewCSVWriter(nested)
	suite.NoError(err)
	suite.DirExists(nested)
}

func (suite *CSVWriterTestSuite) TestWriteBars() {
	barWriter, err := NewCSVBarWriter(suite.dataDir, "SPY")
	suite.Require().NoError(err)
	suite.Require().NoError(barWriter.Initialize())

	defer barWriter.Close()

	for _, bar := range suite.series().Bars {
		suite.Require().NoError(barWriter.Write(bar))
	}

	path, err := barWriter.Finalize()
	suite.Require().NoError(err)
	suite.Equal(filepath.Join(suite.dataDir, "spy_bars.csv"), path)
	suite.Equal(path, barWriter.GetOutputPath())

	rows := suite.readAll(path)
	suite.Require().Len(rows, 4)
	suite.Equal([]string{"date", "open", "high", "low", "close", "volume"}, rows[0])
	suite.Equal("2023-06-01", rows[1][0])
	suite.Equal("450", rows[1][4])
	suite.Equal("5000000", rows[1][5])
}

func (suite *CSVWriterTestSuite) TestBarWriterWriteBeforeInitialize() {
	barWriter, err := NewCSVBarWriter(suite.dataDir, "SPY")
	suite.Require().NoError(err)

	suite.Error(barWriter.Write(suite.series().Bars[0]))

	_, err = barWriter.Finalize()
	suite.Error(err)
}

func (suite *CSVWriterTestSuite) TestBarWriterCloseIsIdempotent() {
	barWriter, err := NewCSVBarWriter(suite.dataDir, "SPY")
	suite.Require().NoError(err)
	suite.Require().NoError(barWriter.Initialize())

	suite.NoError(barWriter.Close())
	suite.NoError(barWriter.Close())
}

func (suite *CSVWriterTestSuite) TestWriteMetricsWarmUpCellsEmpty() {
	series := suite.series()
	base := series.Bars[0].Time

	metrics := []types.MetricSeries{
		{
			Name: "daily_return",
			Points: []types.MetricPoint{
				{Time: base, Value: optional.None[float64]()},
				{Time: base.AddDate(0, 0, 1), Value: optional.Some(0.0044444444444444444)},
				{Time: base.AddDate(0, 0, 2), Value: optional.Some(-0.0066371681415929205)},
			},
		},
		{
			Name: "ma_3",
			Points: []types.MetricPoint{
				{Time: base, Value: optional.None[float64]()},
				{Time: base.AddDate(0, 0, 1), Value: optional.None[float64]()},
				{Time: base.AddDate(0, 0, 2), Value: optional.Some(450.3333333333333)},
			},
		},
	}

	path, err := suite.writer.WriteMetrics(series, metrics)
	suite.Require().NoError(err)

	rows := suite.readAll(path)
	suite.Require().Len(rows, 4)
	suite.Equal([]string{"date", "daily_return", "ma_3"}, rows[0])

	// Warm-up cells stay empty, never zero.
	suite.Equal("", rows[1][1])
	suite.Equal("", rows[1][2])
	suite.Equal("", rows[2][2])
	suite.NotEmpty(rows[2][1])
	suite.NotEmpty(rows[3][2])
}

func (suite *CSVWriterTestSuite) TestWriteSummary() {
	stats := types.SummaryStats{
		Symbol:      "SPY",
		StartDate:   time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2023, 6, 3, 0, 0, 0, 0, time.UTC),
		StartPrice:  450,
		EndPrice:    449,
		TotalReturn: -0.0022222222222222222,
	}

	path, err := suite.writer.WriteSummary(stats)
	suite.Require().NoError(err)
	suite.Equal(filepath.Join(suite.dataDir, "spy_summary.yaml"), path)
	suite.FileExists(path)
}
