package valuation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittipos/setval/internal/common"
	"github.com/kittipos/setval/internal/models"
)

func testDefaults() common.ValuationConfig {
	return common.ValuationConfig{
		HistoricalPEFallback: []float64{10, 15, 20},
		RequiredReturn:       0.10,
		DividendGrowthRate:   0.03,
		FCFGrowthRate:        0.05,
		DiscountRate:         0.10,
		TerminalGrowthRate:   0.025,
		ProjectionYears:      5,
		LiquidationDiscount:  0.30,
	}
}

func TestEngineRunAll(t *testing.T) {
	engine := NewEngine(testDefaults(), common.NewSilentLogger())
	results := engine.RunAll(fundamentals(nil), Options{})

	require.Len(t, results, 5)
	names := make([]string, 0, 5)
	for _, r := range results {
		names = append(names, r.ModelName)
	}
	assert.ElementsMatch(t, names,
		[]string{ModelPEBand, ModelDDM, ModelDCF, ModelGraham, ModelAsset})
}

func TestEngineIsolatesModelFailure(t *testing.T) {
	engine := NewEngine(testDefaults(), common.NewSilentLogger())

	// Invalid DDM parameters fail only that model.
	results := engine.RunAll(fundamentals(nil), Options{
		DDM: &DDMParams{RequiredReturn: 0.05, GrowthRate: 0.05},
	})

	require.Len(t, results, 5)
	for _, r := range results {
		if r.ModelName == ModelDDM {
			assert.Equal(t, models.NotApplicable, r.Recommendation)
			assert.Contains(t, r.Rationale, "Excluded")
			continue
		}
		assert.NotContains(t, r.Rationale, "Excluded")
	}
}

func TestEngineUsesFallbackPESeries(t *testing.T) {
	engine := NewEngine(testDefaults(), common.NewSilentLogger())

	results := engine.RunAll(fundamentals(nil), Options{})
	require.Equal(t, ModelPEBand, results[0].ModelName)

	// Fallback series {10,15,20} with EPS 5 gives fair value 75.
	require.NotNil(t, results[0].IntrinsicValue)
	assert.InDelta(t, 75.0, *results[0].IntrinsicValue, 0.001)
}

func TestAggregate(t *testing.T) {
	f := fundamentals(func(f *models.CanonicalFundamentals) { f.CurrentPrice = 50 })

	results := []*models.ModelResult{
		{ModelName: ModelPEBand, IntrinsicValue: ptr(100), Recommendation: models.Buy},
		{ModelName: ModelDDM, IntrinsicValue: ptr(80), Recommendation: models.Buy},
		{ModelName: ModelGraham, IntrinsicValue: ptr(60), Recommendation: models.Sell},
		{ModelName: ModelDCF, Recommendation: models.NotApplicable},
	}

	verdict := Aggregate(f, results)

	assert.Equal(t, "CPALL", verdict.Symbol)
	assert.InDelta(t, 80.0, verdict.AverageIntrinsicValue, 0.001)
	assert.InDelta(t, 37.5, verdict.MarginOfSafetyPct, 0.01)
	assert.Equal(t, models.Buy, verdict.OverallRecommendation)
	assert.Equal(t, models.RiskLow, verdict.RiskTier)
	assert.Len(t, verdict.ContributingModels, 3)
	assert.Equal(t, []string{ModelDCF}, verdict.ExcludedModels)
}

func TestAggregateMajorityVote(t *testing.T) {
	tests := []struct {
		name     string
		votes    []models.Recommendation
		expected models.Recommendation
	}{
		{
			name:     "buy majority",
			votes:    []models.Recommendation{models.Buy, models.Buy, models.Sell},
			expected: models.Buy,
		},
		{
			name:     "sell majority",
			votes:    []models.Recommendation{models.Sell, models.Sell, models.Buy},
			expected: models.Sell,
		},
		{
			name:     "tie resolves to hold",
			votes:    []models.Recommendation{models.Buy, models.Sell, models.Hold},
			expected: models.Hold,
		},
		{
			name:     "strong votes collapse",
			votes:    []models.Recommendation{models.StrongBuy, models.Buy, models.Sell},
			expected: models.Buy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := make([]*models.ModelResult, 0, len(tt.votes))
			for i, v := range tt.votes {
				results = append(results, &models.ModelResult{
					ModelName:      ModelPEBand,
					IntrinsicValue: ptr(float64(100 + i)),
					Recommendation: v,
				})
			}

			verdict := Aggregate(fundamentals(nil), results)
			assert.Equal(t, tt.expected, verdict.OverallRecommendation)
		})
	}
}

func TestAggregateNoApplicableModels(t *testing.T) {
	results := []*models.ModelResult{
		{ModelName: ModelDDM, Recommendation: models.NotApplicable},
		{ModelName: ModelDCF, Recommendation: models.NotApplicable},
	}

	verdict := Aggregate(fundamentals(nil), results)

	assert.Equal(t, models.Hold, verdict.OverallRecommendation)
	assert.Equal(t, models.RiskVeryHigh, verdict.RiskTier)
	assert.Equal(t, models.StrongSell, verdict.RiskRecommendation)
	assert.Empty(t, verdict.ContributingModels)
	assert.Len(t, verdict.ExcludedModels, 2)
}

func TestRiskFromMargin(t *testing.T) {
	tests := []struct {
		margin float64
		tier   models.RiskTier
		rec    models.Recommendation
	}{
		{60, models.RiskVeryLow, models.StrongBuy},
		{35, models.RiskLow, models.Buy},
		{15, models.RiskMedium, models.Hold},
		{-5, models.RiskHigh, models.Sell},
		{-25, models.RiskVeryHigh, models.StrongSell},
	}

	for _, tt := range tests {
		tier, rec := riskFromMargin(tt.margin)
		assert.Equal(t, tt.tier, tier)
		assert.Equal(t, tt.rec, rec)
	}
}
