package writer

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/openfolio/marketlens/internal/types"
)

const csvDateLayout = "2006-01-02"

// CSVWriter writes the derived metrics and summary statistics as flat files
// under a data directory. One row per date; metric cells inside a warm-up
// period are left empty so downstream tools do not mistake them for zeros.
// Raw bars go through CSVBarWriter.
type CSVWriter struct {
	dataDir string
}

// NewCSVWriter creates a CSV writer rooted at dataDir, creating the
// directory if needed.
func NewCSVWriter(dataDir string) (*CSVWriter, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dataDir, err)
	}

	return &CSVWriter{dataDir: dataDir}, nil
}

// CSVBarWriter implements BarWriter on a <symbol>_bars.csv file
// (date,open,high,low,close,volume), one row per bar as it is written.
type CSVBarWriter struct {
	outputPath string
	file       *os.File
	cw         *csv.Writer
}

// NewCSVBarWriter creates a CSV bar writer under dataDir, creating the
// directory if needed.
func NewCSVBarWriter(dataDir, symbol string) (*CSVBarWriter, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dataDir, err)
	}

	return &CSVBarWriter{
		outputPath: filepath.Join(dataDir, fmt.Sprintf("%s_bars.csv", strings.ToLower(symbol))),
	}, nil
}

// Initialize creates the output file and writes the header row.
func (w *CSVBarWriter) Initialize() error {
	file, err := os.Create(w.outputPath)
	if err != nil {
		return fmt.Errorf("failed to create bars file: %w", err)
	}

	w.file = file
	w.cw = csv.NewWriter(file)

	if err := w.cw.Write([]string{"date", "open", "high", "low", "close", "volume"}); err != nil {
		return fmt.Errorf("failed to write bars header: %w", err)
	}

	return nil
}

// Write appends a single bar row.
func (w *CSVBarWriter) Write(bar types.PriceBar) error {
	if w.cw == nil {
		return fmt.Errorf("writer not initialized")
	}

	record := []string{
		bar.Time.Format(csvDateLayout),
		formatFloat(bar.Open),
		formatFloat(bar.High),
		formatFloat(bar.Low),
		formatFloat(bar.Close),
		formatFloat(bar.Volume),
	}
	if err := w.cw.Write(record); err != nil {
		return fmt.Errorf("failed to write bar row: %w", err)
	}

	return nil
}

// Finalize flushes buffered rows and returns the file path.
func (w *CSVBarWriter) Finalize() (string, error) {
	if w.cw == nil {
		return "", fmt.Errorf("writer not initialized")
	}

	w.cw.Flush()

	if err := w.cw.Error(); err != nil {
		return "", fmt.Errorf("failed to flush bars file: %w", err)
	}

	return w.outputPath, nil
}

// GetOutputPath returns the CSV file path the bars are written to.
func (w *CSVBarWriter) GetOutputPath() string {
	return w.outputPath
}

// Close closes the underlying file.
func (w *CSVBarWriter) Close() error {
	if w.file == nil {
		return nil
	}

	err := w.file.Close()
	w.file = nil
	w.cw = nil

	return err
}

// WriteMetrics writes the derived metric series to <symbol>_metrics.csv,
// one column per metric aligned by date to the price series.
func (w *CSVWriter) WriteMetrics(series types.PriceSeries, metrics []types.MetricSeries) (string, error) {
	path := filepath.Join(w.dataDir, fmt.Sprintf("%s_metrics.csv", strings.ToLower(series.Symbol)))

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create metrics file: %w", err)
	}
	defer file.Close()

	cw := csv.NewWriter(file)

	header := make([]string, 0, len(metrics)+1)
	header = append(header, "date")

	for _, m := range metrics {
		header = append(header, m.Name)
	}

	if err := cw.Write(header); err != nil {
		return "", fmt.Errorf("failed to write metrics header: %w", err)
	}

	for i, bar := range series.Bars {
		record := make([]string, 0, len(metrics)+1)
		record = append(record, bar.Time.Format(csvDateLayout))

		for _, m := range metrics {
			if v, ok := m.ValueAt(i); ok {
				record = append(record, formatFloat(v))
			} else {
				record = append(record, "")
			}
		}

		if err := cw.Write(record); err != nil {
			return "", fmt.Errorf("failed to write metrics row: %w", err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("failed to flush metrics file: %w", err)
	}

	return path, nil
}

// WriteSummary writes the summary statistics to <symbol>_summary.yaml.
func (w *CSVWriter) WriteSummary(stats types.SummaryStats) (string, error) {
	path := filepath.Join(w.dataDir, fmt.Sprintf("%s_summary.yaml", strings.ToLower(stats.Symbol)))

	if err := types.WriteSummaryStats(path, stats); err != nil {
		return "", err
	}

	return path, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
