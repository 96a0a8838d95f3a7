package types

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"
)

type StatisticsTestSuite struct {
	suite.Suite
	tempDir string
}

func TestStatisticsSuite(t *testing.T) {
	suite.Run(t, new(StatisticsTestSuite))
}

func (suite *StatisticsTestSuite) SetupTest() {
	suite.tempDir = suite.T().TempDir()
}

func (suite *StatisticsTestSuite) TestWriteTradeAnalysis() {
	analysis := TradeAnalysis{
		ID:        "run-1",
		Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Symbol:    "USDJPY",
		Source:    "sample",
		Report: StatisticsReport{
			TotalTrades:     5,
			WinningTrades:   3,
			LosingTrades:    2,
			WinRatePct:      decimal.RequireFromString("60"),
			TotalProfit:     decimal.RequireFromString("5"),
			MeanProfit:      decimal.RequireFromString("1"),
			MaxProfit:       decimal.RequireFromString("30"),
			MinProfit:       decimal.RequireFromString("-40"),
			MeanWin:         decimal.RequireFromString("18.33"),
			MeanLoss:        decimal.RequireFromString("-25"),
			ProfitFactor:    FiniteRatio(decimal.RequireFromString("1.1")),
			MaxDrawdown:     decimal.RequireFromString("-40"),
			RiskRewardRatio: FiniteRatio(decimal.RequireFromString("0.73")),
		},
		Verdict: VerdictNeedsRevision,
		Records: []TradeRecord{{Ticket: 1}},
	}

	filePath := filepath.Join(suite.tempDir, "analysis.yaml")
	err := WriteTradeAnalysis(filePath, analysis)
	suite.Require().NoError(err)

	data, err := os.ReadFile(filePath)
	suite.Require().NoError(err)
	suite.NotContains(string(data), "ticket")

	var read TradeAnalysis
	err = yaml.Unmarshal(data, &read)
	suite.Require().NoError(err)

	suite.Equal("run-1", read.ID)
	suite.Equal("USDJPY", read.Symbol)
	suite.Equal(VerdictNeedsRevision, read.Verdict)
	suite.Equal(5, read.Report.TotalTrades)
	suite.True(read.Report.TotalProfit.Equal(decimal.RequireFromString("5")))
	suite.True(read.Report.MaxDrawdown.Equal(decimal.RequireFromString("-40")))
	suite.True(read.Report.ProfitFactor.Equal(FiniteRatio(decimal.RequireFromString("1.1"))))
	suite.Nil(read.Records)
}

func (suite *StatisticsTestSuite) TestWriteTradeAnalysisInvalidPath() {
	err := WriteTradeAnalysis(filepath.Join(suite.tempDir, "missing", "analysis.yaml"), TradeAnalysis{})
	suite.Error(err)
}

func (suite *StatisticsTestSuite) TestVerdictDescription() {
	suite.Equal("Trading performance is good", VerdictGood.Description())
	suite.Equal("Profitable, but there is room for improvement", VerdictMarginal.Description())
	suite.Equal("The trading strategy needs revision", VerdictNeedsRevision.Description())
	suite.Equal("other", Verdict("other").Description())
}
