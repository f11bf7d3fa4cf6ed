package analysis

import (
	"github.com/openfolio/marketlens/pkg/errors"
)

// TradingDaysPerYear is the conventional number of US equity trading days
// used to annualize daily volatility.
const TradingDaysPerYear = 252

// Config holds the tunable parameters of the metrics engine.
type Config struct {
	// MAWindows are the rolling-average window sizes, in trading days.
	MAWindows []int
	// VolatilityWindow is the window for rolling volatility and the
	// Bollinger band baseline, in trading days.
	VolatilityWindow int
	// RSIPeriod is the lookback for the relative strength index.
	RSIPeriod int
	// RiskFreeRate is the annual risk-free rate used for the Sharpe ratio,
	// as a fraction (0.02 means 2%).
	RiskFreeRate float64
}

// DefaultConfig returns the engine configuration matching the standard
// 20/50/200-day moving averages, 20-day volatility and RSI-14.
func DefaultConfig() Config {
	return Config{
		MAWindows:        []int{20, 50, 200},
		VolatilityWindow: 20,
		RSIPeriod:        14,
		RiskFreeRate:     0.02,
	}
}

// Validate checks that all windows are usable.
func (c Config) Validate() error {
	if len(c.MAWindows) == 0 {
		return errors.New(errors.ErrCodeInvalidWindow, "at least one moving-average window is required")
	}

	for _, w := range c.MAWindows {
		if w < 1 {
			return errors.Newf(errors.ErrCodeInvalidWindow, "moving-average window must be positive, got %d", w)
		}
	}

	if c.VolatilityWindow < 2 {
		return errors.Newf(errors.ErrCodeInvalidWindow, "volatility window must be at least 2, got %d", c.VolatilityWindow)
	}

	if c.RSIPeriod < 1 {
		return errors.Newf(errors.ErrCodeInvalidWindow, "RSI period must be positive, got %d", c.RSIPeriod)
	}

	return nil
}
