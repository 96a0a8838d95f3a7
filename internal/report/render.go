// Package report renders a TradeAnalysis for people and writes it to disk.
package report

import (
	"strings"

	"github.com/rxtech-lab/trade-analyzer/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	ruleWidth = 60
	// timestampLayout is used for the "Analyzed at" line.
	timestampLayout = "2006-01-02 15:04:05"
	// noLossesText replaces an unbounded ratio in user-facing text.
	noLossesText = "∞ (no losses)"
)

var printer = message.NewPrinter(language.English)

// section is a titled group of label/value lines.
type section struct {
	title string
	lines [][2]string
}

// RenderText returns the plain-text report for an analysis.
func RenderText(analysis types.TradeAnalysis) string {
	var b strings.Builder

	rule := strings.Repeat("=", ruleWidth)

	b.WriteString(rule + "\n")
	b.WriteString(Title(analysis) + "\n")
	b.WriteString(rule + "\n")
	b.WriteString("Analyzed at: " + analysis.Timestamp.Format(timestampLayout) + "\n")

	if analysis.Source != "" {
		b.WriteString("Source: " + analysis.Source + "\n")
	}

	for _, s := range sections(analysis.Report) {
		b.WriteString("\n[" + s.title + "]\n")

		for _, line := range s.lines {
			b.WriteString("  " + line[0] + ": " + line[1] + "\n")
		}
	}

	b.WriteString("\n[Verdict]\n")
	b.WriteString("  " + VerdictMark(analysis.Verdict) + " " + analysis.Verdict.Description() + "\n")
	b.WriteString(rule + "\n")

	return b.String()
}

// Title is the report heading, prefixed with the symbol when there is one.
func Title(analysis types.TradeAnalysis) string {
	if analysis.Symbol == "" {
		return "Trade History Report"
	}

	return analysis.Symbol + " Trade History Report"
}

// VerdictMark is the one-character marker printed before a verdict.
func VerdictMark(verdict types.Verdict) string {
	switch verdict {
	case types.VerdictGood:
		return "✓"
	case types.VerdictMarginal:
		return "△"
	default:
		return "⚠"
	}
}

func sections(report types.StatisticsReport) []section {
	return []section{
		{
			title: "Summary",
			lines: [][2]string{
				{"Total trades", printer.Sprint(report.TotalTrades)},
				{"Winning trades", printer.Sprint(report.WinningTrades)},
				{"Losing trades", printer.Sprint(report.LosingTrades)},
				{"Win rate", report.WinRatePct.StringFixed(2) + "%"},
			},
		},
		{
			title: "Profit and Loss",
			lines: [][2]string{
				{"Total profit", FormatAmount(report.TotalProfit)},
				{"Mean profit", FormatAmount(report.MeanProfit)},
				{"Max profit", FormatAmount(report.MaxProfit)},
				{"Max loss", FormatAmount(report.MinProfit)},
				{"Mean win", FormatAmount(report.MeanWin)},
				{"Mean loss", FormatAmount(report.MeanLoss)},
			},
		},
		{
			title: "Performance",
			lines: [][2]string{
				{"Profit factor", FormatRatio(report.ProfitFactor)},
				{"Risk/reward ratio", FormatRatio(report.RiskRewardRatio)},
				{"Max drawdown", FormatAmount(report.MaxDrawdown)},
			},
		},
	}
}

// FormatAmount formats a money value with two decimals and thousands separators.
func FormatAmount(value decimal.Decimal) string {
	return printer.Sprint(number.Decimal(value.InexactFloat64(), number.Scale(2)))
}

// FormatRatio formats a ratio with two decimals, or the no-losses marker.
func FormatRatio(ratio types.Ratio) string {
	value, ok := ratio.Value()
	if !ok {
		return noLossesText
	}

	return value.StringFixed(2)
}
