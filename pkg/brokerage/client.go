// Package brokerage exposes the market data client: a validated
// configuration surface over the providers that fetch historical daily
// price bars.
package brokerage

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/openfolio/marketlens/internal/types"
	"github.com/openfolio/marketlens/pkg/brokerage/provider"
)

// ClientConfig holds the configuration for the market data client.
type ClientConfig struct {
	ProviderType       provider.ProviderType `validate:"required,oneof=schwab polygon binance"`
	SchwabClientID     string                `validate:"required_if=ProviderType schwab"`
	SchwabClientSecret string                `validate:"required_if=ProviderType schwab"`
	SchwabRedirectURI  string                `validate:"required_if=ProviderType schwab"`
	SchwabTokenPath    string
	PolygonAPIKey      string `validate:"required_if=ProviderType polygon"`
}

// FetchParams holds the parameters for one price history fetch.
type FetchParams struct {
	Symbol    string    `validate:"required"`
	StartDate time.Time `validate:"required"`
	EndDate   time.Time `validate:"required,gtfield=StartDate"`
}

// Client is the market data client responsible for fetching price history
// from the configured provider.
type Client struct {
	provider provider.Provider
	config   ClientConfig
	validate *validator.Validate
}

// NewClient creates a new market data client with the given configuration.
func NewClient(config ClientConfig) (*Client, error) {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("invalid client configuration: %w", err)
	}

	marketProvider, err := provider.NewProvider(config.ProviderType, provider.Config{
		Schwab: provider.SchwabConfig{
			ClientID:     config.SchwabClientID,
			ClientSecret: config.SchwabClientSecret,
			RedirectURI:  config.SchwabRedirectURI,
			TokenPath:    config.SchwabTokenPath,
		},
		PolygonAPIKey: config.PolygonAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s provider: %w", config.ProviderType, err)
	}

	return &Client{
		provider: marketProvider,
		config:   config,
		validate: validate,
	}, nil
}

// Fetch retrieves the price series for the given parameters and validates
// the series invariants before handing it to the caller.
func (c *Client) Fetch(ctx context.Context, params FetchParams) (types.PriceSeries, error) {
	if err := c.validate.Struct(params); err != nil {
		return types.PriceSeries{}, fmt.Errorf("invalid fetch parameters: %w", err)
	}

	bars, err := c.provider.FetchDailyBars(ctx, params.Symbol, params.StartDate, params.EndDate)
	if err != nil {
		return types.PriceSeries{}, fmt.Errorf("fetch failed: %w", err)
	}

	series := types.PriceSeries{
		Symbol: params.Symbol,
		Bars:   bars,
	}

	if err := series.Validate(); err != nil {
		return types.PriceSeries{}, fmt.Errorf("provider returned an invalid series: %w", err)
	}

	return series, nil
}
