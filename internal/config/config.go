// Package config loads brokerage credentials from the environment and
// analysis settings from an optional YAML file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/openfolio/marketlens/internal/analysis"
	"github.com/openfolio/marketlens/internal/version"
	"github.com/openfolio/marketlens/pkg/errors"
)

// Environment variables holding the Schwab credentials.
const (
	EnvSchwabClientID     = "SCHWAB_CLIENT_ID"
	EnvSchwabClientSecret = "SCHWAB_CLIENT_SECRET"
	EnvSchwabRedirectURI  = "SCHWAB_REDIRECT_URI"
	EnvSchwabTokenPath    = "SCHWAB_TOKEN_PATH"
	EnvPolygonAPIKey      = "POLYGON_API_KEY"
)

// DefaultTokenPath is used when SCHWAB_TOKEN_PATH is not set.
const DefaultTokenPath = "token.json"

// Credentials holds the secrets read from the environment.
type Credentials struct {
	SchwabClientID     string
	SchwabClientSecret string
	SchwabRedirectURI  string
	SchwabTokenPath    string
	PolygonAPIKey      string
}

// LoadSchwabCredentials reads the Schwab credentials from the environment.
// The error names every missing variable so a first run can be fixed in
// one pass.
func LoadSchwabCredentials() (Credentials, error) {
	creds := Credentials{
		SchwabClientID:     os.Getenv(EnvSchwabClientID),
		SchwabClientSecret: os.Getenv(EnvSchwabClientSecret),
		SchwabRedirectURI:  os.Getenv(EnvSchwabRedirectURI),
		SchwabTokenPath:    os.Getenv(EnvSchwabTokenPath),
		PolygonAPIKey:      os.Getenv(EnvPolygonAPIKey),
	}
	if creds.SchwabTokenPath == "" {
		creds.SchwabTokenPath = DefaultTokenPath
	}

	var missing []string
	if creds.SchwabClientID == "" {
		missing = append(missing, EnvSchwabClientID)
	}
	if creds.SchwabClientSecret == "" {
		missing = append(missing, EnvSchwabClientSecret)
	}
	if creds.SchwabRedirectURI == "" {
		missing = append(missing, EnvSchwabRedirectURI)
	}
	if len(missing) > 0 {
		return Credentials{}, errors.Newf(errors.ErrCodeMissingCredential,
			"missing environment variables: %s", strings.Join(missing, ", "))
	}

	return creds, nil
}

// AnalysisFileConfig is the YAML shape of the analysis configuration file.
type AnalysisFileConfig struct {
	MAWindows        []int   `yaml:"ma_windows" validate:"omitempty,min=1,dive,min=1"`
	VolatilityWindow int     `yaml:"volatility_window" validate:"omitempty,min=2"`
	RSIPeriod        int     `yaml:"rsi_period" validate:"omitempty,min=1"`
	RiskFreeRate     float64 `yaml:"risk_free_rate" validate:"gte=0,lt=1"`
	MinCLIVersion    string  `yaml:"min_cli_version"`
}

// ParseAnalysisConfig parses and validates a YAML analysis configuration.
// Fields left unset fall back to the defaults.
func ParseAnalysisConfig(raw []byte) (analysis.Config, error) {
	var fileConfig AnalysisFileConfig
	if err := yaml.Unmarshal(raw, &fileConfig); err != nil {
		return analysis.Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse analysis config", err)
	}

	validate := validator.New()
	if err := validate.Struct(fileConfig); err != nil {
		return analysis.Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid analysis config", err)
	}

	if err := version.CheckMinimumVersion(version.GetVersion(), fileConfig.MinCLIVersion); err != nil {
		return analysis.Config{}, errors.Wrap(errors.ErrCodeConfigVersion,
			fmt.Sprintf("config requires cli version %s or newer", fileConfig.MinCLIVersion), err)
	}

	config := analysis.DefaultConfig()
	if len(fileConfig.MAWindows) > 0 {
		config.MAWindows = fileConfig.MAWindows
	}
	if fileConfig.VolatilityWindow > 0 {
		config.VolatilityWindow = fileConfig.VolatilityWindow
	}
	if fileConfig.RSIPeriod > 0 {
		config.RSIPeriod = fileConfig.RSIPeriod
	}
	if fileConfig.RiskFreeRate > 0 {
		config.RiskFreeRate = fileConfig.RiskFreeRate
	}

	if err := config.Validate(); err != nil {
		return analysis.Config{}, err
	}

	return config, nil
}

// LoadAnalysisConfig loads the analysis configuration from a YAML file.
// An empty path returns the defaults.
func LoadAnalysisConfig(path string) (analysis.Config, error) {
	if path == "" {
		return analysis.DefaultConfig(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return analysis.Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration,
			fmt.Sprintf("failed to read analysis config %s", path), err)
	}

	return ParseAnalysisConfig(raw)
}
