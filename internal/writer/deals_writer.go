package writer

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/trade-analyzer/internal/types"
	"github.com/rxtech-lab/trade-analyzer/pkg/errors"
)

// DealsWriter writes deals in the MT5 export layout to a CSV or Parquet
// file. The format follows the file extension.
type DealsWriter struct {
	db         *sql.DB
	outputPath string
	format     string
	mu         sync.Mutex
}

// NewDealsWriter creates a new DealsWriter.
// outputPath is the full path to the .csv or .parquet file.
func NewDealsWriter(outputPath string) (*DealsWriter, error) {
	var format string

	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".csv":
		format = "CSV, HEADER"
	case ".parquet", ".pq":
		format = "PARQUET"
	default:
		return nil, errors.Newf(errors.ErrCodeUnsupportedFormat, "unsupported deals file %s", outputPath)
	}

	return &DealsWriter{
		db:         nil,
		outputPath: outputPath,
		format:     format,
		mu:         sync.Mutex{},
	}, nil
}

// Initialize sets up the deals writer with DuckDB.
func (w *DealsWriter) Initialize() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if dir := filepath.Dir(w.outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(errors.ErrCodeGeneratorWriteFailed, "failed to create data directory", err)
		}
	}

	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return errors.Wrap(errors.ErrCodeGeneratorWriteFailed, "failed to open DuckDB connection", err)
	}

	w.db = db

	// Column names match the deal history export read by the analyzer.
	_, err = w.db.Exec(`
		CREATE TABLE IF NOT EXISTS deals (
			ticket BIGINT,
			"time" BIGINT,
			time_msc BIGINT,
			"type" INTEGER,
			entry INTEGER,
			magic BIGINT,
			position_id BIGINT,
			reason INTEGER,
			volume DOUBLE,
			price DOUBLE,
			commission DOUBLE,
			swap DOUBLE,
			profit DOUBLE,
			fee DOUBLE,
			symbol TEXT,
			comment TEXT,
			external_id TEXT
		)
	`)
	if err != nil {
		w.db.Close()
		w.db = nil

		return errors.Wrap(errors.ErrCodeGeneratorWriteFailed, "failed to create deals table", err)
	}

	return nil
}

// Write stores deals in the table. Call Flush to export them.
func (w *DealsWriter) Write(deals ...types.TradeRecord) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.db == nil {
		return errors.New(errors.ErrCodeGeneratorWriteFailed, "writer not initialized")
	}

	tx, err := w.db.Begin()
	if err != nil {
		return errors.Wrap(errors.ErrCodeGeneratorWriteFailed, "failed to begin transaction", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO deals (ticket, "time", time_msc, "type", entry, magic, position_id, reason,
			volume, price, commission, swap, profit, fee, symbol, comment, external_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		_ = tx.Rollback()

		return errors.Wrap(errors.ErrCodeGeneratorWriteFailed, "failed to prepare insert", err)
	}
	defer stmt.Close()

	for _, deal := range deals {
		_, err := stmt.Exec(deal.Ticket, deal.Time.Unix(), deal.Time.UnixMilli(),
			int(deal.Type), deal.Entry, deal.Magic, deal.PositionID, deal.Reason,
			deal.Volume, deal.Price,
			deal.Commission.InexactFloat64(), deal.Swap.InexactFloat64(),
			deal.Profit.InexactFloat64(), deal.Fee.InexactFloat64(),
			deal.Symbol, deal.Comment, deal.ExternalID)
		if err != nil {
			_ = tx.Rollback()

			return errors.Wrapf(errors.ErrCodeGeneratorWriteFailed, err, "failed to insert deal %d", deal.Ticket)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(errors.ErrCodeGeneratorWriteFailed, "failed to commit deals", err)
	}

	return nil
}

// Flush exports the stored deals to the output file, ordered by time.
func (w *DealsWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.db == nil {
		return errors.New(errors.ErrCodeGeneratorWriteFailed, "writer not initialized")
	}

	_, err := w.db.Exec(fmt.Sprintf(`
		COPY (SELECT * FROM deals ORDER BY time_msc ASC, ticket ASC)
		TO '%s' (FORMAT %s)
	`, strings.ReplaceAll(w.outputPath, "'", "''"), w.format))
	if err != nil {
		return errors.Wrapf(errors.ErrCodeGeneratorWriteFailed, err, "failed to export deals to %s", w.outputPath)
	}

	return nil
}

// GetOutputPath returns the output file path.
func (w *DealsWriter) GetOutputPath() string {
	return w.outputPath
}

// GetDealCount returns the number of deals stored.
func (w *DealsWriter) GetDealCount() (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.db == nil {
		return 0, errors.New(errors.ErrCodeGeneratorWriteFailed, "writer not initialized")
	}

	var count int

	if err := w.db.QueryRow("SELECT COUNT(*) FROM deals").Scan(&count); err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to count deals", err)
	}

	return count, nil
}

// Close releases database resources.
func (w *DealsWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.db != nil {
		if err := w.db.Close(); err != nil {
			return errors.Wrap(errors.ErrCodeGeneratorWriteFailed, "failed to close database", err)
		}

		w.db = nil
	}

	return nil
}
