package valuation

import (
	"fmt"
	"math"

	"github.com/kittipos/setval/internal/models"
)

// DCFParams configures the discounted cash flow model.
type DCFParams struct {
	GrowthRate         float64
	DiscountRate       float64
	TerminalGrowthRate float64
	Years              int
}

// DiscountedCashFlow projects free cash flow forward, discounts the
// projection and a Gordon-growth terminal value, and divides by shares
// outstanding. Zero free cash flow makes the model NotApplicable;
// negative free cash flow is a caller error, not an applicability case.
func DiscountedCashFlow(f *models.CanonicalFundamentals, params DCFParams) (*models.ModelResult, error) {
	if f.FreeCashFlow < 0 {
		return nil, &models.InvalidParameterError{Model: ModelDCF, Invariant: "free cash flow must be positive"}
	}
	if f.SharesOutstanding <= 0 {
		return nil, &models.InvalidParameterError{Model: ModelDCF, Invariant: "shares outstanding must be positive"}
	}
	if params.DiscountRate <= params.TerminalGrowthRate {
		return nil, &models.InvalidParameterError{
			Model: ModelDCF,
			Invariant: fmt.Sprintf("discount rate (%.4f) must exceed terminal growth rate (%.4f)",
				params.DiscountRate, params.TerminalGrowthRate),
		}
	}
	if params.Years < 0 {
		return nil, &models.InvalidParameterError{Model: ModelDCF, Invariant: "projection years must not be negative"}
	}

	if f.FreeCashFlow == 0 {
		return &models.ModelResult{
			ModelName:      ModelDCF,
			Recommendation: models.NotApplicable,
			Rationale:      "No free cash flow reported; discounted cash flow model does not apply.",
		}, nil
	}

	// Explicit projection: grow FCF each year and discount it back.
	fcf := f.FreeCashFlow
	npv := 0.0
	for year := 1; year <= params.Years; year++ {
		fcf *= 1 + params.GrowthRate
		npv += fcf / math.Pow(1+params.DiscountRate, float64(year))
	}

	// Terminal value on the final projected FCF, discounted back. With
	// years=0 this degenerates to a single-stage Gordon valuation.
	terminal := fcf * (1 + params.TerminalGrowthRate) / (params.DiscountRate - params.TerminalGrowthRate)
	npvTerminal := terminal / math.Pow(1+params.DiscountRate, float64(params.Years))

	intrinsic := (npv + npvTerminal) / f.SharesOutstanding
	margin := (f.CurrentPrice - intrinsic) / intrinsic * 100

	return &models.ModelResult{
		ModelName:         ModelDCF,
		IntrinsicValue:    ptr(intrinsic),
		MarginOfSafetyPct: ptr(margin),
		Recommendation:    marginRecommendation(margin),
		Rationale: fmt.Sprintf(
			"%d-year projection at g=%.2f%%, d=%.2f%%, terminal g=%.2f%% gives intrinsic value %.2f vs price %.2f (%.1f%%).",
			params.Years, params.GrowthRate*100, params.DiscountRate*100, params.TerminalGrowthRate*100,
			intrinsic, f.CurrentPrice, margin),
	}, nil
}
