package writer

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"

	"github.com/openfolio/marketlens/internal/types"
)

// DuckDBWriter implements BarWriter on an in-memory DuckDB database and
// exports the accumulated bars as a Parquet file on Finalize.
type DuckDBWriter struct {
	db         *sql.DB
	tx         *sql.Tx
	stmt       *sql.Stmt
	symbol     string
	outputPath string
}

// ExportStats summarizes an exported bar table.
type ExportStats struct {
	TotalRows int64
	FirstDate time.Time
	LastDate  time.Time
}

// NewDuckDBWriter creates a new DuckDBWriter for one symbol.
// outputPath is the Parquet file the bars are exported to.
func NewDuckDBWriter(outputPath, symbol string) *DuckDBWriter {
	return &DuckDBWriter{
		symbol:     symbol,
		outputPath: outputPath,
	}
}

// Initialize opens the database connection, creates the bar table, begins a
// transaction and prepares the insert statement.
func (w *DuckDBWriter) Initialize() (err error) {
	w.db, err = sql.Open("duckdb", ":memory:")
	if err != nil {
		return fmt.Errorf("failed to open DuckDB connection: %w", err)
	}

	_, err = w.db.Exec(`
		CREATE TABLE IF NOT EXISTS price_bars (
			id TEXT,
			time TIMESTAMP,
			symbol TEXT,
			open DOUBLE,
			high DOUBLE,
			low DOUBLE,
			close DOUBLE,
			volume DOUBLE
		)
	`)
	if err != nil {
		w.db.Close()

		return fmt.Errorf("failed to create table: %w", err)
	}

	w.tx, err = w.db.Begin()
	if err != nil {
		w.db.Close()

		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	w.stmt, err = w.tx.Prepare(`
		INSERT INTO price_bars (id, time, symbol, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		w.tx.Rollback()
		w.db.Close()

		return fmt.Errorf("failed to prepare statement: %w", err)
	}

	return nil
}

// Write persists a single bar using the prepared statement within the transaction.
func (w *DuckDBWriter) Write(bar types.PriceBar) error {
	if w.stmt == nil {
		return fmt.Errorf("writer not initialized or statement is nil")
	}

	_, err := w.stmt.Exec(
		uuid.New().String(),
		bar.Time,
		w.symbol,
		bar.Open,
		bar.High,
		bar.Low,
		bar.Close,
		bar.Volume,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bar: %w", err)
	}

	return nil
}

// Finalize commits the transaction and exports the bars to a Parquet file.
func (w *DuckDBWriter) Finalize() (outputPath string, err error) {
	if w.tx == nil {
		return "", fmt.Errorf("writer not initialized or transaction is nil")
	}

	if err = w.tx.Commit(); err != nil {
		w.tx.Rollback()

		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}

	w.tx = nil

	_, err = w.db.Exec(fmt.Sprintf(`COPY (SELECT * FROM price_bars ORDER BY time) TO '%s' (FORMAT PARQUET)`, w.outputPath))
	if err != nil {
		return "", fmt.Errorf("failed to export to Parquet: %w", err)
	}

	return w.outputPath, nil
}

// Stats returns row count and date range of the exported bars. Valid after
// Finalize and before Close; before Finalize the inserts are still pinned to
// the transaction's connection and invisible to this query.
func (w *DuckDBWriter) Stats() (ExportStats, error) {
	if w.db == nil {
		return ExportStats{}, fmt.Errorf("writer not initialized or already closed")
	}

	if w.tx != nil {
		return ExportStats{}, fmt.Errorf("stats are only available after finalize")
	}

	query, args, err := sq.Select("count(*)", "min(time)", "max(time)").
		From("price_bars").
		ToSql()
	if err != nil {
		return ExportStats{}, fmt.Errorf("failed to build stats query: %w", err)
	}

	var stats ExportStats
	if err := w.db.QueryRow(query, args...).Scan(&stats.TotalRows, &stats.FirstDate, &stats.LastDate); err != nil {
		return ExportStats{}, fmt.Errorf("failed to query stats: %w", err)
	}

	return stats, nil
}

// GetOutputPath returns the configured Parquet output path.
func (w *DuckDBWriter) GetOutputPath() string {
	return w.outputPath
}

// Close cleans up resources used by the writer, including closing the
// statement and the database connection.
func (w *DuckDBWriter) Close() error {
	var closeErrors []error

	if w.stmt != nil {
		if err := w.stmt.Close(); err != nil {
			closeErrors = append(closeErrors, fmt.Errorf("failed to close statement: %w", err))
		}

		w.stmt = nil
	}

	// If the transaction is still active (e.g., Finalize wasn't called or failed), roll back
	if w.tx != nil {
		if err := w.tx.Rollback(); err != nil {
			log.Printf("Warning: failed to rollback transaction during close: %v", err)
		}

		w.tx = nil
	}

	if w.db != nil {
		if err := w.db.Close(); err != nil {
			closeErrors = append(closeErrors, fmt.Errorf("failed to close db connection: %w", err))
		}

		w.db = nil
	}

	if len(closeErrors) > 0 {
		errMsg := "errors occurred during close:"
		for _, e := range closeErrors {
			errMsg += fmt.Sprintf("\n- %v", e)
		}

		return fmt.Errorf("%s", errMsg)
	}

	return nil
}
