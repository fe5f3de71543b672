package valuation

import (
	"fmt"

	"github.com/kittipos/setval/internal/models"
)

// DDMParams configures the Gordon Growth dividend discount model.
type DDMParams struct {
	RequiredReturn float64
	GrowthRate     float64
}

// DividendDiscount values the stock as a perpetuity of growing dividends.
// A company that pays no dividend is not an error: the model reports
// itself NotApplicable and stays out of the aggregate.
func DividendDiscount(f *models.CanonicalFundamentals, params DDMParams) (*models.ModelResult, error) {
	if f.DividendPerShare < 0 {
		return nil, &models.InvalidParameterError{Model: ModelDDM, Invariant: "dividend per share must not be negative"}
	}
	if params.RequiredReturn <= params.GrowthRate {
		return nil, &models.InvalidParameterError{
			Model: ModelDDM,
			Invariant: fmt.Sprintf("required return (%.4f) must exceed growth rate (%.4f)",
				params.RequiredReturn, params.GrowthRate),
		}
	}

	if f.DividendPerShare == 0 {
		return &models.ModelResult{
			ModelName:      ModelDDM,
			Recommendation: models.NotApplicable,
			Rationale:      "No dividend paid; dividend discount model does not apply.",
		}, nil
	}

	d1 := f.DividendPerShare * (1 + params.GrowthRate)
	intrinsic := d1 / (params.RequiredReturn - params.GrowthRate)
	margin := (f.CurrentPrice - intrinsic) / intrinsic * 100

	return &models.ModelResult{
		ModelName:         ModelDDM,
		IntrinsicValue:    ptr(intrinsic),
		MarginOfSafetyPct: ptr(margin),
		Recommendation:    marginRecommendation(margin),
		Rationale: fmt.Sprintf(
			"Next dividend %.4f at r=%.2f%%, g=%.2f%% gives intrinsic value %.2f vs price %.2f (%.1f%%).",
			d1, params.RequiredReturn*100, params.GrowthRate*100, intrinsic, f.CurrentPrice, margin),
	}, nil
}

// marginRecommendation applies the shared +/-20% price-vs-value bands used
// by the discount models. Margin here is (price-value)/value: deeply
// negative means the price sits well below intrinsic value.
func marginRecommendation(margin float64) models.Recommendation {
	switch {
	case margin < -20:
		return models.Buy
	case margin > 20:
		return models.Sell
	default:
		return models.Hold
	}
}
