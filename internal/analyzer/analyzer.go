package analyzer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rxtech-lab/trade-analyzer/internal/datasource"
	"github.com/rxtech-lab/trade-analyzer/internal/logger"
	"github.com/rxtech-lab/trade-analyzer/internal/report"
	"github.com/rxtech-lab/trade-analyzer/internal/stats"
	"github.com/rxtech-lab/trade-analyzer/internal/types"
	"go.uber.org/zap"
)

// Analyzer loads a trade history, computes its statistics and grades them.
type Analyzer struct {
	source datasource.Source
	policy report.Policy
	logger *logger.Logger
	now    func() time.Time
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithPolicy sets the verdict policy. The default is report.DefaultPolicy.
func WithPolicy(policy report.Policy) Option {
	return func(a *Analyzer) {
		a.policy = policy
	}
}

// WithClock sets the clock used for analysis timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		a.now = now
	}
}

// NewAnalyzer creates an analyzer reading from source.
func NewAnalyzer(source datasource.Source, logger *logger.Logger, opts ...Option) *Analyzer {
	a := &Analyzer{
		source: source,
		policy: report.DefaultPolicy(),
		logger: logger,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Run analyzes the deals matching query. It returns an EmptyDataError when
// the loaded history has no realized trades.
func (a *Analyzer) Run(ctx context.Context, query datasource.Query) (*types.TradeAnalysis, error) {
	batch, err := a.source.Load(ctx, query)
	if err != nil {
		return nil, err
	}

	statistics, err := stats.Compute(batch.Records)
	if err != nil {
		a.logger.Warn("No realized trades to analyze",
			zap.String("source", batch.Source),
			zap.Int("records", len(batch.Records)),
		)

		return nil, err
	}

	verdict := a.policy.Evaluate(statistics)

	symbol := ""
	if query.Symbol.IsSome() {
		symbol = query.Symbol.Unwrap()
	}

	analysis := &types.TradeAnalysis{
		ID:        uuid.New().String(),
		Timestamp: a.now(),
		Symbol:    symbol,
		Source:    batch.Source,
		Report:    statistics,
		Verdict:   verdict,
		Records:   realized(batch.Records),
	}

	a.logger.Info("Trade history analyzed",
		zap.String("id", analysis.ID),
		zap.String("source", analysis.Source),
		zap.Int("trades", statistics.TotalTrades),
		zap.String("win_rate_pct", statistics.WinRatePct.String()),
		zap.String("profit_factor", statistics.ProfitFactor.String()),
		zap.String("verdict", string(verdict)),
	)

	return analysis, nil
}

// realized keeps the records that count as trades.
func realized(records []types.TradeRecord) []types.TradeRecord {
	kept := make([]types.TradeRecord, 0, len(records))

	for _, record := range records {
		if record.IsRealized() {
			kept = append(kept, record)
		}
	}

	return kept
}
