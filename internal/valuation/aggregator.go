package valuation

import (
	"github.com/kittipos/setval/internal/models"
)

// Aggregate reconciles the model results for one symbol into a single
// verdict. NotApplicable models are excluded from both the average and
// the vote. The majority vote and the risk-tier recommendation are two
// separate signals and both are reported.
func Aggregate(f *models.CanonicalFundamentals, results []*models.ModelResult) *models.AggregateVerdict {
	verdict := &models.AggregateVerdict{
		Symbol:       f.Symbol,
		CurrentPrice: f.CurrentPrice,
	}

	var applicable []*models.ModelResult
	for _, r := range results {
		if r.Recommendation == models.NotApplicable || r.IntrinsicValue == nil {
			verdict.ExcludedModels = append(verdict.ExcludedModels, r.ModelName)
			continue
		}
		applicable = append(applicable, r)
		verdict.ContributingModels = append(verdict.ContributingModels, r.ModelName)
	}

	if len(applicable) == 0 {
		// Nothing to average or vote on: neutral verdict, maximum caution.
		verdict.OverallRecommendation = models.Hold
		verdict.RiskTier = models.RiskVeryHigh
		verdict.RiskRecommendation = models.StrongSell
		return verdict
	}

	sum := 0.0
	for _, r := range applicable {
		sum += *r.IntrinsicValue
	}
	verdict.AverageIntrinsicValue = sum / float64(len(applicable))

	if verdict.AverageIntrinsicValue != 0 {
		verdict.MarginOfSafetyPct = (verdict.AverageIntrinsicValue - f.CurrentPrice) / verdict.AverageIntrinsicValue * 100
	}

	verdict.OverallRecommendation = majorityVote(applicable)
	verdict.RiskTier, verdict.RiskRecommendation = riskFromMargin(verdict.MarginOfSafetyPct)

	return verdict
}

// majorityVote collapses each recommendation to Buy/Hold/Sell and applies
// a strict majority rule: ties and all-Hold both resolve to Hold.
func majorityVote(applicable []*models.ModelResult) models.Recommendation {
	buys, sells := 0, 0
	for _, r := range applicable {
		switch r.Recommendation.Collapse() {
		case models.Buy:
			buys++
		case models.Sell:
			sells++
		}
	}

	switch {
	case buys > sells:
		return models.Buy
	case sells > buys:
		return models.Sell
	default:
		return models.Hold
	}
}

// riskFromMargin maps the overall margin of safety to the five risk bands.
// This finer-grained recommendation is reported alongside the majority
// vote, never merged into it.
func riskFromMargin(margin float64) (models.RiskTier, models.Recommendation) {
	switch {
	case margin >= 50:
		return models.RiskVeryLow, models.StrongBuy
	case margin >= 30:
		return models.RiskLow, models.Buy
	case margin >= 10:
		return models.RiskMedium, models.Hold
	case margin >= -10:
		return models.RiskHigh, models.Sell
	default:
		return models.RiskVeryHigh, models.StrongSell
	}
}
