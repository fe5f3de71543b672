package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittipos/setval/internal/common"
	"github.com/kittipos/setval/internal/interfaces"
	"github.com/kittipos/setval/internal/models"
)

// mockClient is a scriptable MarketDataClient for service tests.
type mockClient struct {
	fundamentals *models.RawFundamentals
	ratios       models.HistoricalSeries
	earnings     *models.EarningsDeltas
	dividends    []float64

	fundamentalsErr error
	ratiosErr       error
	earningsErr     error
	dividendsErr    error
}

func (m *mockClient) GetFundamentals(ctx context.Context, symbol string) (*models.RawFundamentals, error) {
	return m.fundamentals, m.fundamentalsErr
}

func (m *mockClient) GetRatioHistory(ctx context.Context, symbol string, years int) (models.HistoricalSeries, error) {
	return m.ratios, m.ratiosErr
}

func (m *mockClient) GetEarningsDeltas(ctx context.Context, symbol string) (*models.EarningsDeltas, error) {
	return m.earnings, m.earningsErr
}

func (m *mockClient) GetDividendHistory(ctx context.Context, symbol string, years int) ([]float64, error) {
	return m.dividends, m.dividendsErr
}

func healthyClient() *mockClient {
	return &mockClient{
		fundamentals: &models.RawFundamentals{
			Symbol:            "CPALL",
			CurrentPrice:      62.5,
			EPS:               2.8,
			DividendPerShare:  1.0,
			FreeCashFlow:      28000,
			SharesOutstanding: 8983,
			PERatio:           22.3,
			PBRatio:           6.1,
			ReturnOnEquity:    24.5,
		},
		ratios: models.HistoricalSeries{
			{FiscalYear: 2025, PE: 22.3, PBV: 6.1, ROE: 24.5, ROA: 9.1, ROIC: 12.0},
			{FiscalYear: 2024, PE: 25.0, PBV: 6.5, ROE: 23.0, ROA: 8.8, ROIC: 11.5},
			{FiscalYear: 2023, PE: 28.0, PBV: 7.0, ROE: 21.0, ROA: 8.0, ROIC: 10.8},
		},
		earnings: &models.EarningsDeltas{
			Quarterly: &models.EarningsDelta{Current: 0.75, Prior: 0.6, Supplied: true},
			Annual:    &models.EarningsDelta{Current: 26000, Prior: 13000, Supplied: true},
		},
		dividends: []float64{1.0, 0.9, 0.8},
	}
}

func testConfig() common.ValuationConfig {
	return common.ValuationConfig{
		HistoricalPEFallback: []float64{15, 18, 20},
		RequiredReturn:       0.10,
		DividendGrowthRate:   0.03,
		FCFGrowthRate:        0.05,
		DiscountRate:         0.10,
		TerminalGrowthRate:   0.025,
		ProjectionYears:      5,
		LiquidationDiscount:  0.30,
	}
}

func newTestService(client interfaces.MarketDataClient) *Service {
	return NewService(client, testConfig(), common.NewSilentLogger())
}

func TestAnalyzeSymbol(t *testing.T) {
	service := newTestService(healthyClient())

	report, err := service.AnalyzeSymbol(context.Background(), "cpall.bk", interfaces.AnalyzeOptions{})
	require.NoError(t, err)

	assert.NotEmpty(t, report.ID)
	assert.Equal(t, "CPALL", report.Symbol)
	assert.False(t, report.GeneratedAt.IsZero())
	assert.Len(t, report.Models, 5)
	assert.Len(t, report.Scores, 5)
	require.NotNil(t, report.Verdict)
	require.NotNil(t, report.Assessment)
	assert.NotEmpty(t, report.Verdict.ContributingModels)
}

func TestAnalyzeSymbolFundamentalsFailureIsFatal(t *testing.T) {
	client := healthyClient()
	client.fundamentalsErr = errors.New("upstream down")

	service := newTestService(client)
	_, err := service.AnalyzeSymbol(context.Background(), "CPALL", interfaces.AnalyzeOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream down")
}

func TestAnalyzeSymbolOptionalFetchesDegrade(t *testing.T) {
	client := healthyClient()
	client.ratiosErr = errors.New("ratios down")
	client.earningsErr = errors.New("earnings down")
	client.dividendsErr = errors.New("dividends down")

	service := newTestService(client)
	report, err := service.AnalyzeSymbol(context.Background(), "CPALL", interfaces.AnalyzeOptions{})
	require.NoError(t, err)

	// Analysis still completes on the configured PE fallback.
	assert.Len(t, report.Models, 5)
	assert.Len(t, report.Scores, 5)
}

func TestAnalyzeSymbolInvalidSymbol(t *testing.T) {
	service := newTestService(healthyClient())

	_, err := service.AnalyzeSymbol(context.Background(), "123!!", interfaces.AnalyzeOptions{})
	var invalid *models.InvalidSymbolError
	assert.ErrorAs(t, err, &invalid)
}

func TestAnalyzeSymbolMissingRequiredInput(t *testing.T) {
	client := healthyClient()
	client.fundamentals.EPS = 0

	service := newTestService(client)
	_, err := service.AnalyzeSymbol(context.Background(), "CPALL", interfaces.AnalyzeOptions{})

	var missing *models.MissingRequiredInputError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "eps", missing.Field)
}

func TestRunValuations(t *testing.T) {
	service := newTestService(healthyClient())

	results, verdict, err := service.RunValuations(context.Background(), "CPALL")
	require.NoError(t, err)
	assert.Len(t, results, 5)
	require.NotNil(t, verdict)
	assert.Equal(t, "CPALL", verdict.Symbol)
}

func TestRunScores(t *testing.T) {
	service := newTestService(healthyClient())

	scores, err := service.RunScores(context.Background(), "CPALL", interfaces.AnalyzeOptions{
		MarketDirection: "uptrend",
	})
	require.NoError(t, err)
	assert.Len(t, scores, 5)
}

func TestAnalyzeHistory(t *testing.T) {
	service := newTestService(healthyClient())

	stats, err := service.AnalyzeHistory(context.Background(), "CPALL", 10)
	require.NoError(t, err)
	require.Len(t, stats, 5)

	assert.Equal(t, "PE", stats[0].Ratio)
	assert.Equal(t, 22.3, stats[0].Current)
	assert.Equal(t, 3, stats[0].Periods)
}

func TestAnalyzeHistoryEmpty(t *testing.T) {
	client := healthyClient()
	client.ratios = nil

	service := newTestService(client)
	_, err := service.AnalyzeHistory(context.Background(), "CPALL", 10)
	assert.Error(t, err)
}
