package datasource

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/trade-analyzer/internal/logger"
	"github.com/rxtech-lab/trade-analyzer/internal/types"
	"github.com/rxtech-lab/trade-analyzer/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// fileFormat is the on-disk format of a trade history file.
type fileFormat string

const (
	formatCSV     fileFormat = "csv"
	formatParquet fileFormat = "parquet"
)

// dealColumn is a known column of a deal export and the value used when a
// file does not have it.
type dealColumn struct {
	name     string
	sqlType  string
	fallback string
}

// dealColumns lists the deal export columns in scan order.
var dealColumns = []dealColumn{
	{name: "ticket", sqlType: "BIGINT", fallback: "0"},
	{name: "time", sqlType: "BIGINT", fallback: "0"},
	{name: "time_msc", sqlType: "BIGINT", fallback: "0"},
	{name: "type", sqlType: "BIGINT", fallback: "0"},
	{name: "entry", sqlType: "BIGINT", fallback: "0"},
	{name: "magic", sqlType: "BIGINT", fallback: "0"},
	{name: "position_id", sqlType: "BIGINT", fallback: "0"},
	{name: "reason", sqlType: "BIGINT", fallback: "0"},
	{name: "volume", sqlType: "DOUBLE", fallback: "0"},
	{name: "price", sqlType: "DOUBLE", fallback: "0"},
	{name: "commission", sqlType: "DOUBLE", fallback: "0"},
	{name: "swap", sqlType: "DOUBLE", fallback: "0"},
	{name: "profit", sqlType: "DOUBLE", fallback: "0"},
	{name: "fee", sqlType: "DOUBLE", fallback: "0"},
	{name: "symbol", sqlType: "VARCHAR", fallback: "''"},
	{name: "comment", sqlType: "VARCHAR", fallback: "''"},
	{name: "external_id", sqlType: "VARCHAR", fallback: "''"},
}

// DuckDBSource reads deal exports (CSV or Parquet) through an in-memory
// DuckDB connection. Several files are read as one table, matched by
// column name, so an entry export and an exit export can be combined.
type DuckDBSource struct {
	name   string
	paths  []string
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewDuckDBSource creates a source over the given files.
func NewDuckDBSource(name string, paths []string, logger *logger.Logger) (*DuckDBSource, error) {
	if len(paths) == 0 {
		return nil, errors.Newf(errors.ErrCodeMissingParameter, "source %q has no files", name)
	}

	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open DuckDB connection", err)
	}

	return &DuckDBSource{
		name:   name,
		paths:  paths,
		db:     db,
		logger: logger,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// Name implements Source.
func (d *DuckDBSource) Name() string {
	return d.name
}

// Close implements Source.
func (d *DuckDBSource) Close() error {
	if d.db == nil {
		return nil
	}

	err := d.db.Close()
	d.db = nil

	return err
}

// Load implements Source.
func (d *DuckDBSource) Load(ctx context.Context, query Query) (Batch, error) {
	if d.db == nil {
		return Batch{}, errors.Newf(errors.ErrCodeDataSourceUnavailable, "source %q is closed", d.name)
	}

	paths := d.existingPaths()
	if len(paths) == 0 {
		return Batch{}, errors.Newf(errors.ErrCodeDataNotFound, "no trade history files found for source %q: %s",
			d.name, strings.Join(d.paths, ", "))
	}

	table, err := tableExpression(paths)
	if err != nil {
		return Batch{}, err
	}

	columnTypes, err := d.describe(ctx, table)
	if err != nil {
		return Batch{}, err
	}

	if _, ok := columnTypes["profit"]; !ok {
		return Batch{}, errors.Newf(errors.ErrCodeMissingColumn, "source %q has no profit column", d.name)
	}

	sqlQuery, args, err := d.buildQuery(table, columnTypes, query)
	if err != nil {
		return Batch{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build trade history query", err)
	}

	d.logger.Debug("Loading trade history",
		zap.String("source", d.name),
		zap.Strings("paths", paths),
		zap.String("query", sqlQuery),
	)

	records, err := d.scan(ctx, sqlQuery, args)
	if err != nil {
		return Batch{}, err
	}

	if len(records) == 0 {
		return Batch{}, errors.Newf(errors.ErrCodeNoDataFound, "source %q has no deals matching the query", d.name)
	}

	d.logger.Info("Trade history loaded",
		zap.String("source", d.name),
		zap.Int("records", len(records)),
	)

	return Batch{Source: d.name, Records: records}, nil
}

// existingPaths drops missing files with a warning, so a source made of an
// entry and an exit export still loads when only one of them exists.
func (d *DuckDBSource) existingPaths() []string {
	paths := make([]string, 0, len(d.paths))

	for _, path := range d.paths {
		if _, err := os.Stat(path); err != nil {
			d.logger.Warn("Trade history file not found",
				zap.String("source", d.name),
				zap.String("path", path),
			)

			continue
		}

		paths = append(paths, path)
	}

	return paths
}

// describe returns the columns of the table expression and their database types.
func (d *DuckDBSource) describe(ctx context.Context, table string) (map[string]string, error) {
	rows, err := d.db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s LIMIT 0", table))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to read trade history for source %q", d.name)
	}
	defer rows.Close()

	described, err := rows.ColumnTypes()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to read trade history columns", err)
	}

	columns := make(map[string]string, len(described))
	for _, columnType := range described {
		columns[strings.ToLower(columnType.Name())] = strings.ToUpper(columnType.DatabaseTypeName())
	}

	return columns, nil
}

func (d *DuckDBSource) buildQuery(table string, columnTypes map[string]string, query Query) (string, []interface{}, error) {
	selects := make([]string, 0, len(dealColumns))

	for _, column := range dealColumns {
		selects = append(selects, selectExpression(column, columnTypes))
	}

	builder := d.sq.Select(selects...).From(table)

	if query.Symbol.IsSome() {
		if _, ok := columnTypes["symbol"]; ok {
			builder = builder.Where(squirrel.Eq{quoteIdentifier("symbol"): query.Symbol.Unwrap()})
		} else {
			d.logger.Warn("Symbol filter ignored, source has no symbol column", zap.String("source", d.name))
		}
	}

	timeType, hasTime := columnTypes["time"]

	if query.Since.IsSome() {
		since := query.Since.Unwrap()

		switch {
		case !hasTime:
			d.logger.Warn("Lookback filter ignored, source has no time column", zap.String("source", d.name))
		case isTimestamp(timeType):
			builder = builder.Where(squirrel.GtOrEq{quoteIdentifier("time"): since})
		default:
			builder = builder.Where(squirrel.GtOrEq{quoteIdentifier("time"): since.Unix()})
		}
	}

	// Deals are analyzed in the order they closed. Without timestamps the
	// file order is kept.
	_, hasTimeMsc := columnTypes["time_msc"]

	switch {
	case hasTimeMsc:
		builder = builder.OrderBy(quoteIdentifier("time_msc") + " ASC")
	case hasTime:
		builder = builder.OrderBy(quoteIdentifier("time") + " ASC")
	}

	if _, ok := columnTypes["ticket"]; ok && (hasTime || hasTimeMsc) {
		builder = builder.OrderBy(quoteIdentifier("ticket") + " ASC")
	}

	return builder.ToSql()
}

func (d *DuckDBSource) scan(ctx context.Context, sqlQuery string, args []interface{}) ([]types.TradeRecord, error) {
	rows, err := d.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to query trade history for source %q", d.name)
	}
	defer rows.Close()

	var records []types.TradeRecord

	for rows.Next() {
		var (
			ticket, timeSec, timeMsc, dealType, entry, magic, positionID, reason int64
			volume, price, commission, swap, profit, fee                           float64
			symbol, comment, externalID                                            string
		)

		err := rows.Scan(&ticket, &timeSec, &timeMsc, &dealType, &entry, &magic, &positionID, &reason,
			&volume, &price, &commission, &swap, &profit, &fee,
			&symbol, &comment, &externalID)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan deal", err)
		}

		records = append(records, types.TradeRecord{
			Ticket:     ticket,
			Time:       dealTime(timeSec, timeMsc),
			Type:       types.DealType(dealType),
			Entry:      int(entry),
			Magic:      magic,
			PositionID: positionID,
			Reason:     int(reason),
			Volume:     volume,
			Price:      price,
			Commission: decimal.NewFromFloat(commission),
			Swap:       decimal.NewFromFloat(swap),
			Profit:     decimal.NewFromFloat(profit),
			Fee:        decimal.NewFromFloat(fee),
			Symbol:     symbol,
			Comment:    comment,
			ExternalID: externalID,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating deals", err)
	}

	return records, nil
}

// tableExpression returns the DuckDB table function reading all paths.
func tableExpression(paths []string) (string, error) {
	format, err := detectFormat(paths)
	if err != nil {
		return "", err
	}

	quoted := make([]string, 0, len(paths))
	for _, path := range paths {
		quoted = append(quoted, quoteLiteral(path))
	}

	list := "[" + strings.Join(quoted, ", ") + "]"

	if format == formatParquet {
		return fmt.Sprintf("read_parquet(%s, union_by_name = true)", list), nil
	}

	return fmt.Sprintf("read_csv_auto(%s, header = true, union_by_name = true)", list), nil
}

func detectFormat(paths []string) (fileFormat, error) {
	var format fileFormat

	for _, path := range paths {
		var current fileFormat

		switch strings.ToLower(filepath.Ext(path)) {
		case ".csv", ".tsv", ".txt":
			current = formatCSV
		case ".parquet", ".pq":
			current = formatParquet
		default:
			return "", errors.Newf(errors.ErrCodeUnsupportedFormat, "unsupported trade history file %s", path)
		}

		if format != "" && format != current {
			return "", errors.New(errors.ErrCodeUnsupportedFormat, "cannot mix CSV and Parquet files in one source")
		}

		format = current
	}

	return format, nil
}

func selectExpression(column dealColumn, columnTypes map[string]string) string {
	name := quoteIdentifier(column.name)

	columnType, ok := columnTypes[column.name]
	if !ok {
		return fmt.Sprintf("CAST(%s AS %s) AS %s", column.fallback, column.sqlType, name)
	}

	source := name

	if isTimestamp(columnType) {
		switch column.name {
		case "time":
			source = fmt.Sprintf("epoch(%s)", name)
		case "time_msc":
			source = fmt.Sprintf("epoch_ms(%s)", name)
		}
	}

	return fmt.Sprintf("COALESCE(CAST(%s AS %s), %s) AS %s", source, column.sqlType, column.fallback, name)
}

// dealTime prefers the millisecond timestamp and falls back to seconds.
func dealTime(seconds, milliseconds int64) time.Time {
	if milliseconds > 0 {
		return time.UnixMilli(milliseconds).UTC()
	}

	if seconds > 0 {
		return time.Unix(seconds, 0).UTC()
	}

	return time.Time{}
}

func isTimestamp(databaseType string) bool {
	return strings.HasPrefix(databaseType, "TIMESTAMP") || databaseType == "DATE"
}

func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func quoteLiteral(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}
