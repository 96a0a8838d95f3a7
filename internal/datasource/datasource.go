package datasource

import (
	"context"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/trade-analyzer/internal/types"
)

// Query narrows the trade history a source returns.
type Query struct {
	// Symbol keeps only deals on this symbol.
	Symbol optional.Option[string]
	// Since keeps only deals closed at or after this time.
	Since optional.Option[time.Time]
}

// NewQuery builds a Query from plain values. An empty symbol and a
// non-positive lookback leave the corresponding filter unset.
func NewQuery(symbol string, lookbackDays int, now time.Time) Query {
	query := Query{
		Symbol: optional.None[string](),
		Since:  optional.None[time.Time](),
	}

	if symbol != "" {
		query.Symbol = optional.Some(symbol)
	}

	if lookbackDays > 0 {
		query.Since = optional.Some(now.AddDate(0, 0, -lookbackDays))
	}

	return query
}

// Batch is a trade history read from one source.
type Batch struct {
	// Source is the name of the source that produced the records.
	Source string
	// Records are in chronological order when the source has timestamps.
	Records []types.TradeRecord
}

type Source interface {
	// Name identifies the source in logs and reports
	Name() string
	// Load reads the trade history matching the query. A source with no
	// matching deals returns an error coded ErrCodeNoDataFound.
	Load(ctx context.Context, query Query) (Batch, error)
	// Close releases any resources held by the source
	Close() error
}
