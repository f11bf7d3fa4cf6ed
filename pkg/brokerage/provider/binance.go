package provider

import (
	"context"
	"strconv"
	"time"

	binance "github.com/adshao/go-binance/v2"

	"github.com/openfolio/marketlens/internal/types"
	"github.com/openfolio/marketlens/pkg/errors"
)

// binancePageSize is the maximum number of klines Binance returns per request.
const binancePageSize = 500

// BinanceClient fetches daily klines from the Binance public API. Historical
// klines need no credentials.
type BinanceClient struct {
	client *binance.Client
}

// NewBinanceClient creates a new Binance market data provider.
func NewBinanceClient() (Provider, error) {
	return &BinanceClient{
		client: binance.NewClient("", ""),
	}, nil
}

// FetchDailyBars retrieves daily klines for the symbol between start and end,
// paginating through the API's page-size limit.
func (c *BinanceClient) FetchDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]types.PriceBar, error) {
	startMillis := start.UnixMilli()
	endMillis := end.UnixMilli()

	var bars []types.PriceBar

	currentStart := startMillis

	for {
		klines, err := c.client.NewKlinesService().
			Symbol(symbol).
			Interval("1d").
			StartTime(currentStart).
			EndTime(endMillis).
			Do(ctx)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeFetchFailed, err,
				"failed to fetch klines from Binance for %s", symbol)
		}

		bars = append(bars, convertKlines(klines)...)

		// Less than a full page means this was the last one.
		if len(klines) < binancePageSize {
			break
		}

		// Start the next page just past the last kline to avoid duplicates.
		currentStart = klines[len(klines)-1].CloseTime + 1
		if currentStart >= endMillis {
			break
		}
	}

	if len(bars) == 0 {
		return nil, errors.Newf(errors.ErrCodeDataNotFound,
			"no klines returned for %s between %s and %s",
			symbol, start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	return bars, nil
}

// convertKlines maps Binance klines, which carry prices as decimal strings,
// onto price bars.
func convertKlines(klines []*binance.Kline) []types.PriceBar {
	bars := make([]types.PriceBar, 0, len(klines))

	for _, k := range klines {
		open, _ := strconv.ParseFloat(k.Open, 64)
		high, _ := strconv.ParseFloat(k.High, 64)
		low, _ := strconv.ParseFloat(k.Low, 64)
		closePrice, _ := strconv.ParseFloat(k.Close, 64)
		volume, _ := strconv.ParseFloat(k.Volume, 64)

		bars = append(bars, types.PriceBar{
			Time:   time.UnixMilli(k.OpenTime).UTC(),
			Open:   open,
			High:   high,
			Low:    low,
			Close:  closePrice,
			Volume: volume,
		})
	}

	return bars
}
