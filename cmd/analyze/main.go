package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/openfolio/marketlens/internal/analysis"
	"github.com/openfolio/marketlens/internal/chart"
	"github.com/openfolio/marketlens/internal/config"
	"github.com/openfolio/marketlens/internal/logger"
	"github.com/openfolio/marketlens/internal/types"
	"github.com/openfolio/marketlens/internal/version"
	"github.com/openfolio/marketlens/pkg/brokerage"
	"github.com/openfolio/marketlens/pkg/brokerage/provider"
	"github.com/openfolio/marketlens/pkg/brokerage/writer"
)

// analyzeAction is the core logic executed by the CLI command.
// It loads credentials and configuration, fetches the price history,
// runs the metrics engine, and writes the exports.
func analyzeAction(ctx context.Context, cmd *cli.Command) error {
	symbol := strings.ToUpper(cmd.String("symbol"))
	days := cmd.Int("days")
	window := cmd.Int("window")
	providerFlag := cmd.String("provider")
	writerFlag := cmd.String("writer")
	dataDir := cmd.String("output-data")
	chartPath := cmd.String("output-chart")
	configPath := cmd.String("config")

	log, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	if days <= 0 {
		return fmt.Errorf("days must be positive, got %d", days)
	}

	analysisConfig, err := config.LoadAnalysisConfig(configPath)
	if err != nil {
		return err
	}
	if window > 0 {
		analysisConfig.MAWindows = []int{int(window)}
	}

	clientConfig, err := buildClientConfig(provider.ProviderType(providerFlag))
	if err != nil {
		return err
	}

	client, err := brokerage.NewClient(clientConfig)
	if err != nil {
		return fmt.Errorf("failed to create market data client: %w", err)
	}

	endDate := time.Now().UTC()
	startDate := endDate.AddDate(0, 0, -int(days))

	log.Info("fetching price history",
		zap.String("symbol", symbol),
		zap.String("provider", providerFlag),
		zap.String("start", startDate.Format("2006-01-02")),
		zap.String("end", endDate.Format("2006-01-02")),
	)

	series, err := client.Fetch(ctx, brokerage.FetchParams{
		Symbol:    symbol,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		return err
	}

	log.Info("fetched bars", zap.Int("count", series.Len()))

	engine, err := analysis.NewEngine(analysisConfig)
	if err != nil {
		return err
	}

	result, err := engine.Run(series)
	if err != nil {
		return err
	}

	if err := writeExports(log, result, writer.WriterType(writerFlag), dataDir); err != nil {
		return err
	}

	if chartPath == "" {
		chartPath = filepath.Join(dataDir, fmt.Sprintf("%s_chart.html", strings.ToLower(symbol)))
	}
	renderer := chart.NewRenderer(chartPath)
	if err := renderer.Render(&result); err != nil {
		return err
	}
	log.Info("wrote chart", zap.String("path", renderer.GetOutputPath()))

	printSummary(result.Summary)

	return nil
}

// buildClientConfig assembles the client configuration for the chosen
// provider from the environment. Only the chosen provider's credentials
// are required.
func buildClientConfig(providerType provider.ProviderType) (brokerage.ClientConfig, error) {
	clientConfig := brokerage.ClientConfig{ProviderType: providerType}

	switch providerType {
	case provider.ProviderSchwab:
		creds, err := config.LoadSchwabCredentials()
		if err != nil {
			return brokerage.ClientConfig{}, err
		}
		clientConfig.SchwabClientID = creds.SchwabClientID
		clientConfig.SchwabClientSecret = creds.SchwabClientSecret
		clientConfig.SchwabRedirectURI = creds.SchwabRedirectURI
		clientConfig.SchwabTokenPath = creds.SchwabTokenPath
	case provider.ProviderPolygon:
		clientConfig.PolygonAPIKey = os.Getenv(config.EnvPolygonAPIKey)
	}

	return clientConfig, nil
}

// statsReporter is implemented by bar writers that can describe their
// export after Finalize.
type statsReporter interface {
	Stats() (writer.ExportStats, error)
}

// writeExports writes the bar, metric and summary files. Bars always go to
// CSV; the parquet writer adds a columnar bar export next to it.
func writeExports(log *logger.Logger, result analysis.Result, writerType writer.WriterType, dataDir string) error {
	csvWriter, err := writer.NewCSVWriter(dataDir)
	if err != nil {
		return err
	}

	barWriterTypes := []writer.WriterType{writer.WriterCSV}

	switch writerType {
	case writer.WriterCSV:
	case writer.WriterParquet:
		barWriterTypes = append(barWriterTypes, writer.WriterParquet)
	default:
		return fmt.Errorf("unsupported bar data writer: %s", writerType)
	}

	for _, barWriterType := range barWriterTypes {
		barWriter, err := writer.NewBarWriter(barWriterType, dataDir, result.Series.Symbol)
		if err != nil {
			return err
		}

		if err := exportBars(log, barWriter, result.Series.Bars); err != nil {
			return err
		}
	}

	metricsPath, err := csvWriter.WriteMetrics(result.Series, result.Metrics)
	if err != nil {
		return err
	}
	log.Info("wrote metrics", zap.String("path", metricsPath))

	summaryPath, err := csvWriter.WriteSummary(result.Summary)
	if err != nil {
		return err
	}
	log.Info("wrote summary", zap.String("path", summaryPath))

	return nil
}

// exportBars streams the bars through one writer. Stats, when the writer
// reports them, are only queried once Finalize has committed the rows.
func exportBars(log *logger.Logger, barWriter writer.BarWriter, bars []types.PriceBar) error {
	if err := barWriter.Initialize(); err != nil {
		return err
	}
	defer barWriter.Close()

	for _, bar := range bars {
		if err := barWriter.Write(bar); err != nil {
			return err
		}
	}

	outputPath, err := barWriter.Finalize()
	if err != nil {
		return err
	}

	fields := []zap.Field{zap.String("path", outputPath)}

	if reporter, ok := barWriter.(statsReporter); ok {
		stats, err := reporter.Stats()
		if err != nil {
			return err
		}

		fields = append(fields,
			zap.Int64("rows", stats.TotalRows),
			zap.String("first", stats.FirstDate.Format("2006-01-02")),
			zap.String("last", stats.LastDate.Format("2006-01-02")),
		)
	}

	log.Info("wrote bars", fields...)

	return nil
}

// printSummary prints the headline statistics to stdout.
func printSummary(summary types.SummaryStats) {
	fmt.Printf("Summary for %s (%s to %s)\n", summary.Symbol,
		summary.StartDate.Format("2006-01-02"), summary.EndDate.Format("2006-01-02"))
	fmt.Printf("- Total return: %.2f%%\n", summary.TotalReturn*100)
	fmt.Printf("- Annualized return: %.2f%%\n", summary.AnnualizedReturn*100)
	fmt.Printf("- Annualized volatility: %.2f%%\n", summary.AnnualizedVolatility*100)
	fmt.Printf("- Sharpe ratio: %.2f\n", summary.SharpeRatio)
	fmt.Printf("- Max drawdown: %.2f%%\n", summary.MaxDrawdown*100)
	fmt.Printf("- Best day: %.2f%% (%s)\n", summary.BestDay*100, summary.BestDayDate.Format("2006-01-02"))
	fmt.Printf("- Worst day: %.2f%% (%s)\n", summary.WorstDay*100, summary.WorstDayDate.Format("2006-01-02"))
	fmt.Printf("- Positive days: %.1f%%\n", summary.PositiveDays*100)
}

func main() {
	// Load .env if present so credentials can live next to the binary.
	_ = godotenv.Load()

	cmd := &cli.Command{
		Name:    "analyze",
		Usage:   "Fetch daily price history for a symbol and export return metrics",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "symbol",
				Aliases: []string{"s"},
				Usage:   "Ticker symbol to analyze",
				Value:   "SPY",
			},
			&cli.IntFlag{
				Name:    "days",
				Aliases: []string{"d"},
				Usage:   "Number of calendar days of history to fetch",
				Value:   365,
			},
			&cli.IntFlag{
				Name:  "window",
				Usage: "Override the moving average windows with a single window",
			},
			&cli.StringFlag{
				Name:    "provider",
				Aliases: []string{"p"},
				Usage: fmt.Sprintf("Data provider to use (%s, %s, %s)",
					provider.ProviderSchwab, provider.ProviderPolygon, provider.ProviderBinance),
				Value: string(provider.ProviderSchwab),
			},
			&cli.StringFlag{
				Name:    "writer",
				Aliases: []string{"w"},
				Usage:   fmt.Sprintf("Bar data writer (%s, %s)", writer.WriterCSV, writer.WriterParquet),
				Value:   string(writer.WriterCSV),
			},
			&cli.StringFlag{
				Name:  "output-data",
				Usage: "Directory for the exported data files",
				Value: "data",
			},
			&cli.StringFlag{
				Name:  "output-chart",
				Usage: "Path for the HTML chart. Defaults to <output-data>/<symbol>_chart.html",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML analysis configuration file",
			},
		},
		Action: analyzeAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
