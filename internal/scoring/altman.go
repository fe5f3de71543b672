// Package scoring implements the composite financial-health and growth
// scorers. Scorers are best-effort: a missing optional input is recorded,
// never fatal, and never counted as a failed test.
package scoring

import (
	"fmt"

	"github.com/kittipos/setval/internal/models"
)

// Score names as reported in results.
const (
	ScoreAltman    = "Altman Z-Score"
	ScorePiotroski = "Piotroski F-Score"
	ScoreDuPont    = "DuPont ROE"
	ScoreDividend  = "Dividend Safety"
	ScoreCANSLIM   = "CANSLIM"
)

// Altman Z-Score term weights (Altman 1968, public manufacturing form).
const (
	altmanW1 = 1.2 // working capital / total assets
	altmanW2 = 1.4 // retained earnings / total assets
	altmanW3 = 3.3 // EBIT / total assets
	altmanW4 = 0.6 // market value of equity / total liabilities
	altmanW5 = 1.0 // sales / total assets
)

// AltmanZ computes the five-term bankruptcy-risk score. Terms with absent
// inputs contribute zero and are reported in MissingInputs.
func AltmanZ(f *models.CanonicalFundamentals) *models.CompositeScore {
	score := &models.CompositeScore{ScoreName: ScoreAltman}

	// Market value of equity falls back to price x shares, both of which
	// the normalizer guarantees.
	mve := f.MarketValueEquity
	if mve == 0 {
		mve = f.CurrentPrice * f.SharesOutstanding
	}

	z := 0.0
	z += altmanTerm(score, "working_capital/total_assets", altmanW1, f.WorkingCapital, f.TotalAssets)
	z += altmanTerm(score, "retained_earnings/total_assets", altmanW2, f.RetainedEarnings, f.TotalAssets)
	z += altmanTerm(score, "ebit/total_assets", altmanW3, f.EBIT, f.TotalAssets)
	z += altmanTerm(score, "market_value_equity/total_liabilities", altmanW4, mve, f.TotalLiabilities)
	z += altmanTerm(score, "sales/total_assets", altmanW5, f.Sales, f.TotalAssets)

	score.RawScore = z
	score.Tier = altmanTier(z)
	score.Rationale = fmt.Sprintf("Z-Score %.2f: %s bankruptcy risk.", z, score.Tier)
	if len(score.MissingInputs) > 0 {
		score.Rationale += fmt.Sprintf(" Computed without %d of 5 terms.", len(score.MissingInputs))
	}

	return score
}

// altmanTerm evaluates one weighted ratio, recording it as missing when
// the numerator is absent or the denominator is not positive.
func altmanTerm(score *models.CompositeScore, name string, weight, numerator, denominator float64) float64 {
	if numerator == 0 || denominator <= 0 {
		score.MissingInputs = append(score.MissingInputs, name)
		score.Checks = append(score.Checks, models.ScoreCheck{Name: name, Status: models.CheckMissing})
		return 0
	}

	term := weight * numerator / denominator
	score.Checks = append(score.Checks, models.ScoreCheck{
		Name:   name,
		Status: models.CheckPass,
		Value:  fmt.Sprintf("%.3f", term),
	})
	return term
}

// altmanTier maps Z to the five bankruptcy-risk bands.
func altmanTier(z float64) string {
	switch {
	case z >= 3.0:
		return "Very Low"
	case z >= 2.5:
		return "Low"
	case z >= 1.8:
		return "Medium"
	case z >= 1.0:
		return "High"
	default:
		return "Very High"
	}
}
