package valuation

import (
	"fmt"
	"math"

	"github.com/kittipos/setval/internal/models"
)

// grahamMultiplier is Graham's heuristic ceiling: max PE 15 x max P/B 1.5.
const grahamMultiplier = 22.5

// GrahamNumber computes Benjamin Graham's defensive fair value,
// sqrt(22.5 * EPS * book value per share). Without a usable book value
// the model is NotApplicable.
func GrahamNumber(f *models.CanonicalFundamentals) (*models.ModelResult, error) {
	if f.EPS <= 0 || f.BookValuePerShare <= 0 {
		return &models.ModelResult{
			ModelName:      ModelGraham,
			Recommendation: models.NotApplicable,
			Rationale:      "Requires positive EPS and book value per share.",
		}, nil
	}

	value := math.Sqrt(grahamMultiplier * f.EPS * f.BookValuePerShare)
	margin := (value - f.CurrentPrice) / value * 100

	var rec models.Recommendation
	switch {
	case margin >= 30:
		rec = models.Buy
	case margin >= 0:
		rec = models.Hold
	default:
		rec = models.Sell
	}

	return &models.ModelResult{
		ModelName:         ModelGraham,
		IntrinsicValue:    ptr(value),
		MarginOfSafetyPct: ptr(margin),
		Recommendation:    rec,
		Rationale: fmt.Sprintf(
			"Graham number %.2f from EPS %.2f and book value %.2f; price %.2f leaves %.1f%% margin of safety.",
			value, f.EPS, f.BookValuePerShare, f.CurrentPrice, margin),
	}, nil
}
