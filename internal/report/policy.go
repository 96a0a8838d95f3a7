package report

import (
	"github.com/rxtech-lab/trade-analyzer/internal/types"
	"github.com/shopspring/decimal"
)

// Threshold is the minimum performance for a verdict.
type Threshold struct {
	// MinWinRatePct is compared against StatisticsReport.WinRatePct (0-100).
	MinWinRatePct float64 `yaml:"min_win_rate_pct" json:"min_win_rate_pct"`
	// MinProfitFactor is compared against StatisticsReport.ProfitFactor.
	MinProfitFactor float64 `yaml:"min_profit_factor" json:"min_profit_factor"`
}

// Met reports whether the report reaches both minimums. An unbounded
// profit factor reaches any minimum.
func (t Threshold) Met(report types.StatisticsReport) bool {
	if report.WinRatePct.LessThan(decimal.NewFromFloat(t.MinWinRatePct)) {
		return false
	}

	return report.ProfitFactor.AtLeast(decimal.NewFromFloat(t.MinProfitFactor))
}

// Policy maps a report to a verdict.
type Policy struct {
	Good     Threshold `yaml:"good" json:"good"`
	Marginal Threshold `yaml:"marginal" json:"marginal"`
}

// DefaultPolicy returns the stock thresholds: good at 50% win rate and a
// profit factor of 1.5, marginal at 40% and 1.2.
func DefaultPolicy() Policy {
	return Policy{
		Good: Threshold{
			MinWinRatePct:   50,
			MinProfitFactor: 1.5,
		},
		Marginal: Threshold{
			MinWinRatePct:   40,
			MinProfitFactor: 1.2,
		},
	}
}

// Evaluate returns the verdict for a report.
func (p Policy) Evaluate(report types.StatisticsReport) types.Verdict {
	switch {
	case p.Good.Met(report):
		return types.VerdictGood
	case p.Marginal.Met(report):
		return types.VerdictMarginal
	default:
		return types.VerdictNeedsRevision
	}
}
