// Package stats computes performance statistics from a closed-trade history.
//
// Compute is a pure function over its input: it performs no I/O, does not
// log and keeps no state between calls, so it is safe to call concurrently.
package stats

import (
	"github.com/rxtech-lab/trade-analyzer/internal/types"
	"github.com/rxtech-lab/trade-analyzer/pkg/errors"
	"github.com/shopspring/decimal"
)

// reportPrecision is the number of decimal places kept in a report.
const reportPrecision = 2

var hundred = decimal.NewFromInt(100)

// accumulator holds the running totals of a single pass over the history.
type accumulator struct {
	totalTrades   int
	winningTrades int
	losingTrades  int
	totalProfit   decimal.Decimal
	grossWin      decimal.Decimal
	grossLoss     decimal.Decimal
	maxProfit     decimal.Decimal
	minProfit     decimal.Decimal
	cumulative    decimal.Decimal
	peak          decimal.Decimal
	maxDrawdown   decimal.Decimal
}

// add folds one realized trade into the accumulator. Records must be added
// in chronological order for the drawdown to be meaningful.
func (a *accumulator) add(profit decimal.Decimal) {
	if a.totalTrades == 0 {
		a.maxProfit = profit
		a.minProfit = profit
	} else {
		a.maxProfit = decimal.Max(a.maxProfit, profit)
		a.minProfit = decimal.Min(a.minProfit, profit)
	}

	a.totalTrades++
	a.totalProfit = a.totalProfit.Add(profit)

	if profit.IsPositive() {
		a.winningTrades++
		a.grossWin = a.grossWin.Add(profit)
	} else {
		a.losingTrades++
		a.grossLoss = a.grossLoss.Add(profit)
	}

	// The running maximum starts at the first cumulative value, not at zero.
	a.cumulative = a.cumulative.Add(profit)
	if a.totalTrades == 1 || a.cumulative.GreaterThan(a.peak) {
		a.peak = a.cumulative
	}

	drawdown := a.cumulative.Sub(a.peak)
	if drawdown.LessThan(a.maxDrawdown) {
		a.maxDrawdown = drawdown
	}
}

// Compute builds a StatisticsReport from records in chronological order.
// Records with a zero profit are ignored. When no record has a nonzero
// profit it returns an *errors.EmptyDataError and no report.
func Compute(records []types.TradeRecord) (types.StatisticsReport, error) {
	acc := accumulator{
		totalTrades:   0,
		winningTrades: 0,
		losingTrades:  0,
		totalProfit:   decimal.Zero,
		grossWin:      decimal.Zero,
		grossLoss:     decimal.Zero,
		maxProfit:     decimal.Zero,
		minProfit:     decimal.Zero,
		cumulative:    decimal.Zero,
		peak:          decimal.Zero,
		maxDrawdown:   decimal.Zero,
	}

	for _, record := range records {
		if !record.IsRealized() {
			continue
		}

		acc.add(record.Profit)
	}

	if acc.totalTrades == 0 {
		return types.StatisticsReport{}, errors.NewEmptyDataErrorf(len(records),
			"no realized profit/loss data to analyze (%d records, none with a nonzero profit)", len(records))
	}

	return acc.report(), nil
}

func (a *accumulator) report() types.StatisticsReport {
	total := decimal.NewFromInt(int64(a.totalTrades))

	meanWin := mean(a.grossWin, a.winningTrades)
	meanLoss := mean(a.grossLoss, a.losingTrades)

	return types.StatisticsReport{
		TotalTrades:     a.totalTrades,
		WinningTrades:   a.winningTrades,
		LosingTrades:    a.losingTrades,
		WinRatePct:      round(decimal.NewFromInt(int64(a.winningTrades)).Div(total).Mul(hundred)),
		TotalProfit:     round(a.totalProfit),
		MeanProfit:      round(a.totalProfit.Div(total)),
		MaxProfit:       round(a.maxProfit),
		MinProfit:       round(a.minProfit),
		MeanWin:         round(meanWin),
		MeanLoss:        round(meanLoss),
		ProfitFactor:    ratio(a.grossWin, a.grossLoss.Abs()),
		MaxDrawdown:     round(a.maxDrawdown),
		RiskRewardRatio: ratio(meanWin, meanLoss.Abs()),
	}
}

// ratio divides numerator by denominator. A zero denominator yields
// Unbounded when the numerator is positive and Finite(0) otherwise.
func ratio(numerator, denominator decimal.Decimal) types.Ratio {
	if denominator.IsZero() {
		if numerator.IsPositive() {
			return types.UnboundedRatio()
		}

		return types.FiniteRatio(decimal.Zero)
	}

	return types.FiniteRatio(round(numerator.Div(denominator)))
}

func mean(sum decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}

	return sum.Div(decimal.NewFromInt(int64(count)))
}

// round applies round-half-to-even at report precision.
func round(value decimal.Decimal) decimal.Decimal {
	return value.RoundBank(reportPrecision)
}
