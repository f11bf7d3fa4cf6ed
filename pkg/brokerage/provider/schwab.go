package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/oauth2"

	"github.com/openfolio/marketlens/internal/types"
	"github.com/openfolio/marketlens/pkg/errors"
)

const (
	// SchwabBaseURL is the production Schwab trader API host.
	SchwabBaseURL = "https://api.schwabapi.com"

	schwabAuthorizePath    = "/v1/oauth/authorize"
	schwabTokenPath        = "/v1/oauth/token"
	schwabPriceHistoryPath = "/marketdata/v1/pricehistory"

	// DefaultTokenPath is where the cached OAuth token is stored when the
	// configuration does not name one.
	DefaultTokenPath = "token.json"

	schwabRetryCount   = 3
	schwabRetryWait    = 1 * time.Second
	schwabRetryMaxWait = 10 * time.Second
)

// SchwabConfig holds the OAuth client credentials for the Schwab API.
type SchwabConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	// TokenPath is the JSON file holding a previously issued OAuth token.
	// The token is refreshed automatically when expired and the refreshed
	// token is written back.
	TokenPath string
}

// SchwabClient fetches daily price history from the Schwab trader API.
type SchwabClient struct {
	config     SchwabConfig
	baseURL    string
	httpClient *http.Client
}

// SchwabOption customizes a SchwabClient.
type SchwabOption func(*SchwabClient)

// WithBaseURL overrides the API host. Used by tests to point the client at
// a mock server.
func WithBaseURL(baseURL string) SchwabOption {
	return func(c *SchwabClient) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient overrides the HTTP client, bypassing the OAuth transport.
func WithHTTPClient(client *http.Client) SchwabOption {
	return func(c *SchwabClient) {
		c.httpClient = client
	}
}

// NewSchwabClient creates a new Schwab API client.
func NewSchwabClient(config SchwabConfig, opts ...SchwabOption) (Provider, error) {
	if config.ClientID == "" || config.ClientSecret == "" || config.RedirectURI == "" {
		return nil, errors.New(errors.ErrCodeMissingCredential,
			"schwab provider requires client id, client secret and redirect uri")
	}

	if config.TokenPath == "" {
		config.TokenPath = DefaultTokenPath
	}

	client := &SchwabClient{
		config:     config,
		baseURL:    SchwabBaseURL,
		httpClient: nil,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// schwabCandle is one OHLCV record in the price history response. Datetime
// is epoch milliseconds.
type schwabCandle struct {
	Open     float64 `json:"open"`
	High     float64 `json:"high"`
	Low      float64 `json:"low"`
	Close    float64 `json:"close"`
	Volume   float64 `json:"volume"`
	Datetime int64   `json:"datetime"`
}

// priceHistoryResponse is the body of the price history endpoint.
type priceHistoryResponse struct {
	Symbol  string         `json:"symbol"`
	Empty   bool           `json:"empty"`
	Candles []schwabCandle `json:"candles"`
}

// FetchDailyBars retrieves daily bars for the symbol between start and end.
// Transient failures (5xx, 429) are retried with exponential backoff; an
// authentication failure is not retried and fails the run.
func (c *SchwabClient) FetchDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]types.PriceBar, error) {
	httpClient, tokenSource, err := c.authenticate(ctx)
	if err != nil {
		return nil, err
	}

	rest := resty.NewWithClient(httpClient).
		SetBaseURL(c.baseURL).
		SetRetryCount(schwabRetryCount).
		SetRetryWaitTime(schwabRetryWait).
		SetRetryMaxWaitTime(schwabRetryMaxWait).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}

			return r.StatusCode() >= http.StatusInternalServerError || r.StatusCode() == http.StatusTooManyRequests
		})

	resp, err := rest.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"symbol":                symbol,
			"periodType":            "year",
			"frequencyType":         "daily",
			"frequency":             "1",
			"startDate":             strconv.FormatInt(start.UnixMilli(), 10),
			"endDate":               strconv.FormatInt(end.UnixMilli(), 10),
			"needExtendedHoursData": "false",
		}).
		SetResult(&priceHistoryResponse{}).
		Get(schwabPriceHistoryPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeFetchFailed, err, "price history request failed for %s", symbol)
	}

	if resp.IsError() {
		if resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden {
			return nil, errors.Newf(errors.ErrCodeAuthFailed,
				"price history request for %s rejected with status %d", symbol, resp.StatusCode())
		}

		return nil, errors.Newf(errors.ErrCodeFetchFailed,
			"price history request for %s returned status %d", symbol, resp.StatusCode())
	}

	body, ok := resp.Result().(*priceHistoryResponse)
	if !ok {
		return nil, errors.New(errors.ErrCodeResponseParseFailed, "unexpected price history response shape")
	}

	if body.Empty || len(body.Candles) == 0 {
		return nil, errors.Newf(errors.ErrCodeDataNotFound,
			"no price history returned for %s between %s and %s",
			symbol, start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	bar := progressbar.NewOptions(len(body.Candles),
		progressbar.OptionSetDescription(fmt.Sprintf("Fetching %s", symbol)),
		progressbar.OptionShowCount())

	bars := make([]types.PriceBar, 0, len(body.Candles))

	for _, candle := range body.Candles {
		bars = append(bars, types.PriceBar{
			Time:   time.UnixMilli(candle.Datetime).UTC(),
			Open:   candle.Open,
			High:   candle.High,
			Low:    candle.Low,
			Close:  candle.Close,
			Volume: candle.Volume,
		})

		bar.Add(1)
	}

	bar.Finish()

	if tokenSource != nil {
		c.persistToken(tokenSource)
	}

	return bars, nil
}

// authenticate builds the OAuth-authenticated HTTP client from the cached
// token, refreshing it through the token endpoint when expired. When the
// client was constructed with WithHTTPClient, that client is used as is.
func (c *SchwabClient) authenticate(ctx context.Context) (*http.Client, oauth2.TokenSource, error) {
	if c.httpClient != nil {
		return c.httpClient, nil, nil
	}

	token, err := c.loadToken()
	if err != nil {
		return nil, nil, err
	}

	conf := &oauth2.Config{
		ClientID:     c.config.ClientID,
		ClientSecret: c.config.ClientSecret,
		RedirectURL:  c.config.RedirectURI,
		Endpoint: oauth2.Endpoint{
			AuthURL:  c.baseURL + schwabAuthorizePath,
			TokenURL: c.baseURL + schwabTokenPath,
		},
	}

	tokenSource := conf.TokenSource(ctx, token)

	return oauth2.NewClient(ctx, tokenSource), tokenSource, nil
}

// loadToken reads the cached OAuth token from the token file.
func (c *SchwabClient) loadToken() (*oauth2.Token, error) {
	data, err := os.ReadFile(c.config.TokenPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeTokenLoadFailed, err,
			"cannot read token cache %s; complete the authorization flow once to seed it", c.config.TokenPath)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeTokenLoadFailed, err,
			"token cache %s is not a valid OAuth token", c.config.TokenPath)
	}

	return &token, nil
}

// persistToken writes the possibly refreshed token back to the token file.
// A write failure is logged but does not fail the run; the fetched data is
// already in hand.
func (c *SchwabClient) persistToken(tokenSource oauth2.TokenSource) {
	token, err := tokenSource.Token()
	if err != nil {
		return
	}

	data, err := json.Marshal(token)
	if err != nil {
		log.Printf("Warning: failed to marshal refreshed token: %v", err)

		return
	}

	if err := os.WriteFile(c.config.TokenPath, data, 0600); err != nil {
		log.Printf("Warning: failed to write refreshed token to %s: %v", c.config.TokenPath, err)
	}
}
