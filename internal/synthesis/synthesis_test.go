package synthesis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittipos/setval/internal/models"
	"github.com/kittipos/setval/internal/scoring"
	"github.com/kittipos/setval/internal/valuation"
)

func fullVerdict() *models.AggregateVerdict {
	return &models.AggregateVerdict{
		Symbol:                "CPALL",
		OverallRecommendation: models.Buy,
		ContributingModels: []string{
			valuation.ModelPEBand, valuation.ModelDDM, valuation.ModelDCF,
			valuation.ModelGraham, valuation.ModelAsset,
		},
	}
}

func corroboratingScores() []*models.CompositeScore {
	return []*models.CompositeScore{
		{ScoreName: scoring.ScoreAltman, Tier: "Very Low"},
		{ScoreName: scoring.ScorePiotroski, RawScore: 7},
		{ScoreName: scoring.ScoreDuPont, Tier: scoring.DuPontImproving},
	}
}

func TestSynthesizeHighConfidence(t *testing.T) {
	f := &models.CanonicalFundamentals{Symbol: "CPALL"}

	a := Synthesize(fullVerdict(), corroboratingScores(), f)

	assert.Equal(t, models.TierHigh, a.Confidence)
	assert.Equal(t, models.TierHigh, a.DataQuality)
	assert.Empty(t, a.Warnings)
}

func TestSynthesizeExcludedModelLowersConfidence(t *testing.T) {
	verdict := fullVerdict()
	verdict.ContributingModels = verdict.ContributingModels[:4]
	verdict.ExcludedModels = []string{valuation.ModelDDM}

	f := &models.CanonicalFundamentals{Symbol: "CPALL"}
	a := Synthesize(verdict, corroboratingScores(), f)

	assert.Equal(t, models.TierMedium, a.Confidence)
	require.Len(t, a.Warnings, 1)
	assert.Equal(t, models.WarnModelExcluded, a.Warnings[0].Code)
	assert.Equal(t, valuation.ModelDDM, a.Warnings[0].Source)
}

func TestSynthesizeLowConfidenceWhenMinorityContributes(t *testing.T) {
	verdict := fullVerdict()
	verdict.ContributingModels = []string{valuation.ModelPEBand, valuation.ModelGraham}
	verdict.ExcludedModels = []string{valuation.ModelDDM, valuation.ModelDCF, valuation.ModelAsset}

	f := &models.CanonicalFundamentals{Symbol: "CPALL"}
	a := Synthesize(verdict, nil, f)

	assert.Equal(t, models.TierLow, a.Confidence)
}

func TestSynthesizeNoApplicableModels(t *testing.T) {
	verdict := &models.AggregateVerdict{
		Symbol:                "CPALL",
		OverallRecommendation: models.Hold,
		ExcludedModels: []string{
			valuation.ModelPEBand, valuation.ModelDDM, valuation.ModelDCF,
			valuation.ModelGraham, valuation.ModelAsset,
		},
	}

	f := &models.CanonicalFundamentals{Symbol: "CPALL"}
	a := Synthesize(verdict, nil, f)

	assert.Equal(t, models.TierLow, a.Confidence)
	assert.Len(t, a.Warnings, 5)
}

func TestSynthesizeDataQuality(t *testing.T) {
	f := &models.CanonicalFundamentals{
		Symbol:          "CPALL",
		DefaultedFields: []string{"total_assets", "net_income", "sales", "ebit", "working_capital"},
	}

	a := Synthesize(fullVerdict(), corroboratingScores(), f)

	assert.Equal(t, models.TierLow, a.DataQuality)
	assert.Len(t, a.Warnings, 5)
	for _, w := range a.Warnings {
		assert.Equal(t, models.WarnDefaultedField, w.Code)
		assert.Equal(t, "normalizer", w.Source)
	}
}

func TestSynthesizeMissingInputWarnings(t *testing.T) {
	scores := []*models.CompositeScore{
		{ScoreName: scoring.ScorePiotroski, MissingInputs: []string{"improving_roa", "current_ratio_above_1.5"}},
	}

	f := &models.CanonicalFundamentals{Symbol: "CPALL"}
	a := Synthesize(fullVerdict(), scores, f)

	require.Len(t, a.Warnings, 2)
	assert.Equal(t, models.WarnMissingInput, a.Warnings[0].Code)
	assert.Equal(t, scoring.ScorePiotroski, a.Warnings[0].Source)
	assert.Equal(t, models.TierMedium, a.DataQuality)
}

func TestCorroborates(t *testing.T) {
	tests := []struct {
		name      string
		score     *models.CompositeScore
		direction models.Recommendation
		expected  bool
	}{
		{
			name:      "low bankruptcy risk backs a buy",
			score:     &models.CompositeScore{ScoreName: scoring.ScoreAltman, Tier: "Low"},
			direction: models.Buy,
			expected:  true,
		},
		{
			name:      "high bankruptcy risk backs a sell",
			score:     &models.CompositeScore{ScoreName: scoring.ScoreAltman, Tier: "Very High"},
			direction: models.Sell,
			expected:  true,
		},
		{
			name:      "strong F-Score does not back a sell",
			score:     &models.CompositeScore{ScoreName: scoring.ScorePiotroski, RawScore: 8},
			direction: models.Sell,
			expected:  false,
		},
		{
			name:      "declining DuPont backs a sell",
			score:     &models.CompositeScore{ScoreName: scoring.ScoreDuPont, Tier: scoring.DuPontDeclining},
			direction: models.Sell,
			expected:  true,
		},
		{
			name:      "unknown score never corroborates",
			score:     &models.CompositeScore{ScoreName: "Unknown"},
			direction: models.Buy,
			expected:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, corroborates(tt.score, tt.direction))
		})
	}
}
