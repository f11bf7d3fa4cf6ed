// Package writer implements the file exporters: CSV flat files for raw bars,
// derived metrics and summary stats, and a DuckDB-backed Parquet export.
package writer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/openfolio/marketlens/internal/types"
	"github.com/openfolio/marketlens/pkg/errors"
)

// WriterType defines the type of bar data writer.
type WriterType string

const (
	WriterCSV     WriterType = "csv"
	WriterParquet WriterType = "parquet"
)

// BarWriter defines the interface for writing price bars to a destination.
type BarWriter interface {
	// Initialize sets up the writer, potentially creating tables or files.
	Initialize() error
	// Write persists a single price bar.
	Write(bar types.PriceBar) error
	// Finalize completes the writing process (e.g., commits transactions, exports files).
	Finalize() (outputPath string, err error)
	// Close releases any resources held by the writer.
	Close() error
	// GetOutputPath returns the configured output file path.
	GetOutputPath() string
}

// NewBarWriter creates a bar data writer based on the writer type. The
// output file lands under dataDir, named after the lowercased symbol.
func NewBarWriter(writerType WriterType, dataDir, symbol string) (BarWriter, error) {
	switch writerType {
	case WriterCSV:
		return NewCSVBarWriter(dataDir, symbol)
	case WriterParquet:
		path := filepath.Join(dataDir, fmt.Sprintf("%s_bars.parquet", strings.ToLower(symbol)))

		return NewDuckDBWriter(path, symbol), nil
	default:
		return nil, errors.Newf(errors.ErrCodeWriterUnsupported, "unsupported bar data writer: %s", writerType)
	}
}
