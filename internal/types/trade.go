package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// DealType is the direction of a closed deal.
type DealType int

const (
	DealTypeBuy  DealType = 0
	DealTypeSell DealType = 1
)

func (d DealType) String() string {
	switch d {
	case DealTypeBuy:
		return "buy"
	case DealTypeSell:
		return "sell"
	default:
		return "unknown"
	}
}

// TradeRecord is one closed deal from a trade history export.
// Only Profit takes part in statistics; the other columns are carried
// through unchanged so reports can list the trades they were built from.
type TradeRecord struct {
	Ticket     int64     `csv:"ticket" yaml:"ticket" json:"ticket"`
	Time       time.Time `csv:"time" yaml:"time" json:"time"`
	Type       DealType  `csv:"type" yaml:"type" json:"type"`
	Entry      int       `csv:"entry" yaml:"entry" json:"entry"`
	Magic      int64     `csv:"magic" yaml:"magic" json:"magic"`
	PositionID int64     `csv:"position_id" yaml:"position_id" json:"position_id"`
	Reason     int       `csv:"reason" yaml:"reason" json:"reason"`
	Volume     float64   `csv:"volume" yaml:"volume" json:"volume"`
	Price      float64   `csv:"price" yaml:"price" json:"price"`
	// Commission, Swap and Fee are reported separately by the terminal and
	// are not part of Profit.
	Commission decimal.Decimal `csv:"commission" yaml:"commission" json:"commission"`
	Swap       decimal.Decimal `csv:"swap" yaml:"swap" json:"swap"`
	// Profit is the net realized result of the deal in account currency.
	// Zero means the deal carries no realized result (an opening deal or
	// a break-even close).
	Profit decimal.Decimal `csv:"profit" yaml:"profit" json:"profit"`
	Fee        decimal.Decimal `csv:"fee" yaml:"fee" json:"fee"`
	Symbol     string          `csv:"symbol" yaml:"symbol" json:"symbol"`
	Comment    string          `csv:"comment" yaml:"comment" json:"comment"`
	ExternalID string          `csv:"external_id" yaml:"external_id" json:"external_id"`
}

// IsRealized reports whether the record has a nonzero profit.
func (t TradeRecord) IsRealized() bool {
	return !t.Profit.IsZero()
}

// IsWin reports whether the record closed with a positive profit.
func (t TradeRecord) IsWin() bool {
	return t.Profit.IsPositive()
}

// IsLoss reports whether the record closed with a negative profit.
func (t TradeRecord) IsLoss() bool {
	return t.Profit.IsNegative()
}
