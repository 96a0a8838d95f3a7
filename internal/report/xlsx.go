package report

import (
	"github.com/rxtech-lab/trade-analyzer/internal/stats"
	"github.com/rxtech-lab/trade-analyzer/internal/types"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	tradesSheet  = "Trades"
)

var tradeColumns = []interface{}{
	"Ticket", "Time", "Symbol", "Type", "Volume", "Price", "Profit", "Cumulative", "Drawdown",
}

// WriteXLSX writes a workbook with a Summary sheet holding the report and a
// Trades sheet listing every realized trade with its cumulative profit.
func WriteXLSX(path string, analysis types.TradeAnalysis) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}

	if err := writeSummary(f, analysis); err != nil {
		return err
	}

	if _, err := f.NewSheet(tradesSheet); err != nil {
		return err
	}

	if err := writeTrades(f, analysis.Records); err != nil {
		return err
	}

	return f.SaveAs(path)
}

func writeSummary(f *excelize.File, analysis types.TradeAnalysis) error {
	r := analysis.Report
	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Symbol", analysis.Symbol},
		{"Source", analysis.Source},
		{"Analyzed at", analysis.Timestamp.Format(timestampLayout)},
		{"Total trades", r.TotalTrades},
		{"Winning trades", r.WinningTrades},
		{"Losing trades", r.LosingTrades},
		{"Win rate (%)", r.WinRatePct.InexactFloat64()},
		{"Total profit", r.TotalProfit.InexactFloat64()},
		{"Mean profit", r.MeanProfit.InexactFloat64()},
		{"Max profit", r.MaxProfit.InexactFloat64()},
		{"Max loss", r.MinProfit.InexactFloat64()},
		{"Mean win", r.MeanWin.InexactFloat64()},
		{"Mean loss", r.MeanLoss.InexactFloat64()},
		{"Profit factor", ratioCell(r.ProfitFactor)},
		{"Risk/reward ratio", ratioCell(r.RiskRewardRatio)},
		{"Max drawdown", r.MaxDrawdown.InexactFloat64()},
		{"Verdict", analysis.Verdict.Description()},
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}

		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
	}

	return nil
}

func writeTrades(f *excelize.File, records []types.TradeRecord) error {
	if err := f.SetSheetRow(tradesSheet, "A1", &tradeColumns); err != nil {
		return err
	}

	for i, point := range stats.Curve(records) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		record := point.Record
		row := []interface{}{
			record.Ticket,
			record.Time.UTC().Format(timestampLayout),
			record.Symbol,
			record.Type.String(),
			record.Volume,
			record.Price,
			record.Profit.InexactFloat64(),
			point.Cumulative.InexactFloat64(),
			point.Drawdown.InexactFloat64(),
		}

		if err := f.SetSheetRow(tradesSheet, cell, &row); err != nil {
			return err
		}
	}

	return nil
}

// ratioCell keeps finite ratios numeric so spreadsheets can chart them.
func ratioCell(ratio types.Ratio) interface{} {
	value, ok := ratio.Value()
	if !ok {
		return noLossesText
	}

	return value.InexactFloat64()
}
