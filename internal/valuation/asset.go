package valuation

import (
	"fmt"

	"github.com/kittipos/setval/internal/models"
)

// AssetParams configures the asset-based model.
type AssetParams struct {
	// LiquidationDiscount is the haircut applied to book value, in [0,1).
	LiquidationDiscount float64
}

// AssetBased values the stock on what its balance sheet would fetch: the
// floor of book value, discounted liquidation value, and (when balance
// sheet figures are present) Graham's net-net working capital.
func AssetBased(f *models.CanonicalFundamentals, params AssetParams) (*models.ModelResult, error) {
	if params.LiquidationDiscount < 0 || params.LiquidationDiscount >= 1 {
		return nil, &models.InvalidParameterError{Model: ModelAsset, Invariant: "liquidation discount must be in [0,1)"}
	}

	if f.BookValuePerShare <= 0 {
		return &models.ModelResult{
			ModelName:      ModelAsset,
			Recommendation: models.NotApplicable,
			Rationale:      "Requires positive book value per share.",
		}, nil
	}

	liquidation := f.BookValuePerShare * (1 - params.LiquidationDiscount)
	intrinsic := f.BookValuePerShare
	if liquidation < intrinsic {
		intrinsic = liquidation
	}

	detail := ""
	if f.TotalAssets > 0 && f.TotalLiabilities > 0 {
		netNet := (0.5*f.TotalAssets - f.TotalLiabilities) / f.SharesOutstanding
		if netNet > 0 && netNet < intrinsic {
			intrinsic = netNet
		}
		detail = fmt.Sprintf(" Net-net working capital %.2f/share.", netNet)
	}

	margin := (intrinsic - f.CurrentPrice) / intrinsic * 100

	var rec models.Recommendation
	switch {
	case margin >= 50:
		rec = models.Buy
	case margin >= 0:
		rec = models.Hold
	default:
		rec = models.Sell
	}

	return &models.ModelResult{
		ModelName:         ModelAsset,
		IntrinsicValue:    ptr(intrinsic),
		MarginOfSafetyPct: ptr(margin),
		Recommendation:    rec,
		Rationale: fmt.Sprintf(
			"Book value %.2f, liquidation value %.2f (%.0f%% discount); asset floor %.2f vs price %.2f (%.1f%%).%s",
			f.BookValuePerShare, liquidation, params.LiquidationDiscount*100, intrinsic, f.CurrentPrice, margin, detail),
	}, nil
}
