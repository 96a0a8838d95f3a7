package types

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// StatisticsReport is the performance summary of a trade history.
// All decimal values are rounded to two places.
type StatisticsReport struct {
	// Count of trades with a nonzero profit.
	TotalTrades int `yaml:"total_trades" json:"total_trades"`
	// Count of trades with a positive profit.
	WinningTrades int `yaml:"winning_trades" json:"winning_trades"`
	// Count of trades with a negative profit.
	LosingTrades int `yaml:"losing_trades" json:"losing_trades"`
	// Winning trades as a percentage of all trades, 0 to 100.
	WinRatePct decimal.Decimal `yaml:"win_rate_pct" json:"win_rate_pct"`
	// Sum of all profits.
	TotalProfit decimal.Decimal `yaml:"total_profit" json:"total_profit"`
	// Mean profit per trade.
	MeanProfit decimal.Decimal `yaml:"mean_profit" json:"mean_profit"`
	// Largest single profit.
	MaxProfit decimal.Decimal `yaml:"max_profit" json:"max_profit"`
	// Smallest single profit, usually the largest loss.
	MinProfit decimal.Decimal `yaml:"min_profit" json:"min_profit"`
	// Mean profit of the winning trades, 0 without winners.
	MeanWin decimal.Decimal `yaml:"mean_win" json:"mean_win"`
	// Mean profit of the losing trades (negative), 0 without losers.
	MeanLoss decimal.Decimal `yaml:"mean_loss" json:"mean_loss"`
	// Gross profit divided by gross loss. Unbounded without losses.
	ProfitFactor Ratio `yaml:"profit_factor" json:"profit_factor"`
	// Worst peak-to-trough decline of the cumulative profit curve, 0 or negative.
	MaxDrawdown decimal.Decimal `yaml:"max_drawdown" json:"max_drawdown"`
	// Mean win divided by the absolute mean loss. Unbounded without losses.
	RiskRewardRatio Ratio `yaml:"risk_reward_ratio" json:"risk_reward_ratio"`
}

// Verdict is the qualitative assessment attached to a report.
type Verdict string

const (
	VerdictGood          Verdict = "good"
	VerdictMarginal      Verdict = "marginal"
	VerdictNeedsRevision Verdict = "needs_revision"
)

// Description returns the sentence shown to users for the verdict.
func (v Verdict) Description() string {
	switch v {
	case VerdictGood:
		return "Trading performance is good"
	case VerdictMarginal:
		return "Profitable, but there is room for improvement"
	case VerdictNeedsRevision:
		return "The trading strategy needs revision"
	default:
		return string(v)
	}
}

// TradeAnalysis is one analyzer run: the report plus where it came from.
type TradeAnalysis struct {
	// ID is the unique identifier for this analysis run.
	ID string `yaml:"id" json:"id"`
	// Timestamp is when the analysis was executed.
	Timestamp time.Time `yaml:"timestamp" json:"timestamp"`
	// Symbol the history was filtered to. Empty means every symbol.
	Symbol string `yaml:"symbol" json:"symbol"`
	// Source is the name of the data source that supplied the records.
	Source string `yaml:"source" json:"source"`
	// Report holds the computed statistics.
	Report StatisticsReport `yaml:"report" json:"report"`
	// Verdict is the policy assessment of the report.
	Verdict Verdict `yaml:"verdict" json:"verdict"`
	// Records are the trades the report was computed from, in input order.
	Records []TradeRecord `yaml:"-" json:"-"`
}

// WriteTradeAnalysis writes the analysis to path as YAML.
func WriteTradeAnalysis(path string, analysis TradeAnalysis) error {
	data, err := yaml.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to marshal trade analysis to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write trade analysis to file: %w", err)
	}

	return nil
}
