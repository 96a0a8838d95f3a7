package types

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TradeTestSuite struct {
	suite.Suite
}

func TestTradeSuite(t *testing.T) {
	suite.Run(t, new(TradeTestSuite))
}

func (suite *TradeTestSuite) TestRecordOutcome() {
	tests := []struct {
		name       string
		profit     string
		isRealized bool
		isWin      bool
		isLoss     bool
	}{
		{name: "winning trade", profit: "20.5", isRealized: true, isWin: true, isLoss: false},
		{name: "losing trade", profit: "-0.01", isRealized: true, isWin: false, isLoss: true},
		{name: "opening deal", profit: "0", isRealized: false, isWin: false, isLoss: false},
		{name: "zero with trailing digits", profit: "0.00", isRealized: false, isWin: false, isLoss: false},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			record := TradeRecord{Profit: decimal.RequireFromString(tc.profit)}
			suite.Equal(tc.isRealized, record.IsRealized())
			suite.Equal(tc.isWin, record.IsWin())
			suite.Equal(tc.isLoss, record.IsLoss())
		})
	}
}

func (suite *TradeTestSuite) TestDealTypeString() {
	suite.Equal("buy", DealTypeBuy.String())
	suite.Equal("sell", DealTypeSell.String())
	suite.Equal("unknown", DealType(7).String())
}
