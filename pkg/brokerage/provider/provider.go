// Package provider implements historical market data providers. Each
// provider fetches an ordered sequence of daily price bars for one symbol
// over one date range.
package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/openfolio/marketlens/internal/types"
)

// ProviderType defines the type of market data provider.
type ProviderType string

const (
	ProviderSchwab  ProviderType = "schwab"
	ProviderPolygon ProviderType = "polygon"
	ProviderBinance ProviderType = "binance"
)

// Provider fetches historical daily price bars from a brokerage or market
// data API. Implementations return bars in ascending date order; a failed
// fetch is fatal to the run and returns an error instead of partial data.
type Provider interface {
	// FetchDailyBars retrieves daily bars for the symbol between start and
	// end (inclusive). The context can be used to cancel the request.
	FetchDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]types.PriceBar, error)
}

// Config carries the provider-specific settings needed by the factory.
type Config struct {
	// Schwab holds the OAuth credentials for the Schwab provider.
	Schwab SchwabConfig
	// PolygonAPIKey is the API key for the Polygon provider.
	PolygonAPIKey string
}

// NewProvider creates a market data provider based on the provider type.
func NewProvider(providerType ProviderType, config Config) (Provider, error) {
	switch providerType {
	case ProviderSchwab:
		return NewSchwabClient(config.Schwab)
	case ProviderPolygon:
		return NewPolygonClient(config.PolygonAPIKey)
	case ProviderBinance:
		return NewBinanceClient()
	default:
		return nil, fmt.Errorf("unsupported market data provider: %s", providerType)
	}
}
