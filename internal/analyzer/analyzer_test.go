package analyzer_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rxtech-lab/trade-analyzer/internal/analyzer"
	"github.com/rxtech-lab/trade-analyzer/internal/datasource"
	"github.com/rxtech-lab/trade-analyzer/internal/logger"
	"github.com/rxtech-lab/trade-analyzer/internal/report"
	"github.com/rxtech-lab/trade-analyzer/internal/types"
	"github.com/rxtech-lab/trade-analyzer/mocks"
	"github.com/rxtech-lab/trade-analyzer/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AnalyzerTestSuite struct {
	suite.Suite
	ctrl   *gomock.Controller
	source *mocks.MockSource
	now    time.Time
}

func TestAnalyzerSuite(t *testing.T) {
	suite.Run(t, new(AnalyzerTestSuite))
}

func (suite *AnalyzerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.source = mocks.NewMockSource(suite.ctrl)
	suite.now = time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
}

func (suite *AnalyzerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *AnalyzerTestSuite) newAnalyzer(opts ...analyzer.Option) *analyzer.Analyzer {
	opts = append([]analyzer.Option{analyzer.WithClock(func() time.Time { return suite.now })}, opts...)

	return analyzer.NewAnalyzer(suite.source, logger.NewNopLogger(), opts...)
}

func records(profits ...string) []types.TradeRecord {
	result := make([]types.TradeRecord, 0, len(profits))
	for i, profit := range profits {
		result = append(result, types.TradeRecord{
			Ticket: int64(1000000 + i),
			Profit: decimal.RequireFromString(profit),
			Symbol: "USDJPY",
		})
	}

	return result
}

func (suite *AnalyzerTestSuite) TestRun() {
	query := datasource.NewQuery("USDJPY", 0, suite.now)
	suite.source.EXPECT().Load(gomock.Any(), query).Return(datasource.Batch{
		Source:  "sample",
		Records: records("20", "-10", "0", "30", "-40", "5"),
	}, nil)

	analysis, err := suite.newAnalyzer().Run(context.Background(), query)
	suite.Require().NoError(err)

	_, err = uuid.Parse(analysis.ID)
	suite.NoError(err)
	suite.Equal(suite.now, analysis.Timestamp)
	suite.Equal("USDJPY", analysis.Symbol)
	suite.Equal("sample", analysis.Source)

	suite.Equal(5, analysis.Report.TotalTrades)
	suite.Equal(3, analysis.Report.WinningTrades)
	suite.True(analysis.Report.WinRatePct.Equal(decimal.NewFromInt(60)))
	suite.True(analysis.Report.ProfitFactor.Equal(types.FiniteRatio(decimal.RequireFromString("1.1"))))
	suite.True(analysis.Report.MaxDrawdown.Equal(decimal.NewFromInt(-40)))

	// 60% win rate but profit factor 1.1 is below both thresholds
	suite.Equal(types.VerdictNeedsRevision, analysis.Verdict)
	suite.Len(analysis.Records, 5, "zero-profit records are not trades")
}

func (suite *AnalyzerTestSuite) TestRunWithCustomPolicy() {
	suite.source.EXPECT().Load(gomock.Any(), gomock.Any()).Return(datasource.Batch{
		Source:  "sample",
		Records: records("20", "-10", "30", "-40", "5"),
	}, nil)

	policy := report.Policy{
		Good:     report.Threshold{MinWinRatePct: 60, MinProfitFactor: 1.1},
		Marginal: report.Threshold{MinWinRatePct: 50, MinProfitFactor: 1},
	}

	analysis, err := suite.newAnalyzer(analyzer.WithPolicy(policy)).Run(context.Background(), datasource.Query{})
	suite.Require().NoError(err)
	suite.Equal(types.VerdictGood, analysis.Verdict)
	suite.Empty(analysis.Symbol)
}

func (suite *AnalyzerTestSuite) TestRunNoLosses() {
	suite.source.EXPECT().Load(gomock.Any(), gomock.Any()).Return(datasource.Batch{
		Source:  "sample",
		Records: records("10", "15"),
	}, nil)

	analysis, err := suite.newAnalyzer().Run(context.Background(), datasource.Query{})
	suite.Require().NoError(err)
	suite.True(analysis.Report.ProfitFactor.IsUnbounded())
	suite.Equal(types.VerdictGood, analysis.Verdict)
}

func (suite *AnalyzerTestSuite) TestRunOnlyZeroProfit() {
	suite.source.EXPECT().Load(gomock.Any(), gomock.Any()).Return(datasource.Batch{
		Source:  "training",
		Records: records("0", "0"),
	}, nil)

	_, err := suite.newAnalyzer().Run(context.Background(), datasource.Query{})
	suite.Require().Error(err)
	suite.True(errors.IsEmptyDataError(err))
	suite.Equal(errors.ErrCodeEmptyData, errors.GetCode(err))
}

func (suite *AnalyzerTestSuite) TestRunSourceError() {
	loadErr := errors.New(errors.ErrCodeDataSourceUnavailable, "all trade history sources failed")
	suite.source.EXPECT().Load(gomock.Any(), gomock.Any()).Return(datasource.Batch{}, loadErr)

	_, err := suite.newAnalyzer().Run(context.Background(), datasource.Query{})
	suite.ErrorIs(err, loadErr)
}

func (suite *AnalyzerTestSuite) TestRunIDsAreUnique() {
	suite.source.EXPECT().Load(gomock.Any(), gomock.Any()).Return(datasource.Batch{
		Source:  "sample",
		Records: records("1"),
	}, nil).Times(2)

	a := suite.newAnalyzer()

	first, err := a.Run(context.Background(), datasource.Query{})
	suite.Require().NoError(err)

	second, err := a.Run(context.Background(), datasource.Query{})
	suite.Require().NoError(err)

	suite.NotEqual(first.ID, second.ID)
}
