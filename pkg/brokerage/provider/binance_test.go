package provider

import (
	"testing"
	"time"

	binance "github.com/adshao/go-binance/v2"
	"github.com/stretchr/testify/suite"
)

type BinanceTestSuite struct {
	suite.Suite
}

func TestBinanceSuite(t *testing.T) {
	suite.Run(t, new(BinanceTestSuite))
}

func (suite *BinanceTestSuite) TestNewBinanceClient() {
	client, err := NewBinanceClient()
	suite.NoError(err)
	suite.NotNil(client)
}

func (suite *BinanceTestSuite) TestConvertKlines() {
	open := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	klines := []*binance.Kline{
		{
			OpenTime:  open.UnixMilli(),
			CloseTime: open.AddDate(0, 0, 1).UnixMilli() - 1,
			Open:      "26500.10",
			High:      "27100.00",
			Low:       "26300.50",
			Close:     "27000.25",
			Volume:    "12345.678",
		},
		{
			OpenTime:  open.AddDate(0, 0, 1).UnixMilli(),
			CloseTime: open.AddDate(0, 0, 2).UnixMilli() - 1,
			Open:      "27000.25",
			High:      "27500.00",
			Low:       "26900.00",
			Close:     "27400.75",
			Volume:    "9876.543",
		},
	}

	bars := convertKlines(klines)
	suite.Require().Len(bars, 2)

	suite.True(bars[0].Time.Equal(open))
	suite.Equal(26500.10, bars[0].Open)
	suite.Equal(27000.25, bars[0].Close)
	suite.Equal(12345.678, bars[0].Volume)
	suite.True(bars[1].Time.After(bars[0].Time))
}

func (suite *BinanceTestSuite) TestConvertKlinesEmpty() {
	suite.Empty(convertKlines(nil))
}
