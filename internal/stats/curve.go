package stats

import (
	"github.com/rxtech-lab/trade-analyzer/internal/types"
	"github.com/shopspring/decimal"
)

// CurvePoint is one realized trade on the cumulative profit curve.
type CurvePoint struct {
	Record     types.TradeRecord
	Cumulative decimal.Decimal
	RunningMax decimal.Decimal
	// Drawdown is Cumulative minus RunningMax, 0 or negative.
	Drawdown decimal.Decimal
}

// Curve returns the cumulative profit curve of the realized trades in
// records, in input order. Zero-profit records are skipped as in Compute.
func Curve(records []types.TradeRecord) []CurvePoint {
	points := make([]CurvePoint, 0, len(records))
	cumulative := decimal.Zero
	peak := decimal.Zero

	for _, record := range records {
		if !record.IsRealized() {
			continue
		}

		cumulative = cumulative.Add(record.Profit)
		if len(points) == 0 || cumulative.GreaterThan(peak) {
			peak = cumulative
		}

		points = append(points, CurvePoint{
			Record:     record,
			Cumulative: cumulative,
			RunningMax: peak,
			Drawdown:   cumulative.Sub(peak),
		})
	}

	return points
}
