package types

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// SummaryStats is the scalar summary of one analysis run. Return and
// volatility fields are fractions (0.10 means 10%).
type SummaryStats struct {
	// Symbol of the analyzed instrument.
	Symbol string `yaml:"symbol"`
	// StartDate is the date of the first bar.
	StartDate time.Time `yaml:"start_date"`
	// EndDate is the date of the last bar.
	EndDate time.Time `yaml:"end_date"`
	// StartPrice is the close of the first bar.
	StartPrice float64 `yaml:"start_price"`
	// EndPrice is the close of the last bar.
	EndPrice float64 `yaml:"end_price"`
	// TotalReturn is (end_price / start_price) - 1.
	TotalReturn float64 `yaml:"total_return"`
	// AnnualizedReturn scales TotalReturn to a 365-day year.
	AnnualizedReturn float64 `yaml:"annualized_return"`
	// DailyVolatility is the sample standard deviation of daily returns.
	DailyVolatility float64 `yaml:"daily_volatility"`
	// AnnualizedVolatility is DailyVolatility scaled by sqrt(252).
	AnnualizedVolatility float64 `yaml:"annualized_volatility"`
	// SharpeRatio is (AnnualizedReturn - risk-free rate) / AnnualizedVolatility.
	SharpeRatio float64 `yaml:"sharpe_ratio"`
	// MaxDrawdown is the minimum of the drawdown series. Always <= 0.
	MaxDrawdown float64 `yaml:"max_drawdown"`
	// BestDay is the largest daily return.
	BestDay float64 `yaml:"best_day"`
	// BestDayDate is the date on which BestDay occurred.
	BestDayDate time.Time `yaml:"best_day_date"`
	// WorstDay is the smallest daily return.
	WorstDay float64 `yaml:"worst_day"`
	// WorstDayDate is the date on which WorstDay occurred.
	WorstDayDate time.Time `yaml:"worst_day_date"`
	// PositiveDays is the fraction of days with a positive daily return,
	// out of the days that have a defined return. The first bar carries no
	// return and is excluded from the denominator.
	PositiveDays float64 `yaml:"positive_days"`
}

// WriteSummaryStats writes the summary record to a YAML file.
func WriteSummaryStats(path string, stats SummaryStats) error {
	// Marshal the struct to YAML
	data, err := yaml.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal summary stats to YAML: %w", err)
	}

	// Write the YAML data to the file
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write summary stats to file: %w", err)
	}

	return nil
}
