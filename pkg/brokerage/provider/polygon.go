package provider

import (
	"context"
	"fmt"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/schollz/progressbar/v3"

	"github.com/openfolio/marketlens/internal/types"
	"github.com/openfolio/marketlens/pkg/errors"
)

// PolygonClient fetches daily aggregates from the Polygon API.
type PolygonClient struct {
	client *polygon.Client
}

// NewPolygonClient creates a new Polygon market data provider.
func NewPolygonClient(apiKey string) (Provider, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeMissingCredential, "polygon provider requires an API key")
	}

	return &PolygonClient{
		client: polygon.New(apiKey),
	}, nil
}

// FetchDailyBars retrieves daily aggregates for the ticker between start and end.
func (c *PolygonClient) FetchDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]types.PriceBar, error) {
	//nolint:exhaustruct // third-party struct with many optional fields
	params := models.ListAggsParams{
		Ticker:     symbol,
		Multiplier: 1,
		Timespan:   models.Day,
		From:       models.Millis(start),
		To:         models.Millis(end),
	}.WithLimit(50000).WithAdjusted(true)

	totalDays := int(end.Sub(start).Hours()/24) + 1
	bar := progressbar.NewOptions(totalDays,
		progressbar.OptionSetDescription(fmt.Sprintf("Fetching %s", symbol)),
		progressbar.OptionShowCount())

	iter := c.client.ListAggs(ctx, params)

	var bars []types.PriceBar

	for iter.Next() {
		agg := iter.Item()
		bars = append(bars, types.PriceBar{
			Time:   time.Time(agg.Timestamp).UTC(),
			Open:   agg.Open,
			High:   agg.High,
			Low:    agg.Low,
			Close:  agg.Close,
			Volume: agg.Volume,
		})

		bar.Add(1)
	}

	if iter.Err() != nil {
		return nil, errors.Wrapf(errors.ErrCodeFetchFailed, iter.Err(),
			"error iterating polygon aggregates for %s", symbol)
	}

	bar.Finish()

	if len(bars) == 0 {
		return nil, errors.Newf(errors.ErrCodeDataNotFound,
			"no aggregates returned for %s between %s and %s",
			symbol, start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	return bars, nil
}
