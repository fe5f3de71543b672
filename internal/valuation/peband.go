// Package valuation implements the independent intrinsic-value models and
// the aggregator that reconciles their results. Every model is a pure
// function over canonical fundamentals; none holds state between calls.
package valuation

import (
	"fmt"

	"github.com/kittipos/setval/internal/history"
	"github.com/kittipos/setval/internal/models"
)

// Model names as reported in results.
const (
	ModelPEBand = "PE Band"
	ModelDDM    = "Dividend Discount"
	ModelDCF    = "Discounted Cash Flow"
	ModelGraham = "Graham Number"
	ModelAsset  = "Asset Based"
)

// PEBandParams configures the PE-Band model.
type PEBandParams struct {
	// HistoricalPEs is the per-period PE series used to build the band.
	// The engine substitutes the configured market fallback when empty.
	HistoricalPEs []float64
}

// PEBand values the stock against its historical PE range. The fair-value
// band is [minPE*eps, maxPE*eps]; prices outside the band are under- or
// overvalued, prices on a bound are fairly valued.
func PEBand(f *models.CanonicalFundamentals, params PEBandParams) (*models.ModelResult, error) {
	if len(params.HistoricalPEs) == 0 {
		return nil, &models.InvalidParameterError{Model: ModelPEBand, Invariant: "historical PE series must not be empty"}
	}

	currentPE := f.CurrentPrice / f.EPS
	averagePE := history.Mean(params.HistoricalPEs)
	minPE, maxPE := history.MinMax(params.HistoricalPEs)
	rank := history.PercentileRank(currentPE, params.HistoricalPEs)

	bandLow := minPE * f.EPS
	bandHigh := maxPE * f.EPS
	fairValue := averagePE * f.EPS

	var band string
	var rec models.Recommendation
	switch {
	case f.CurrentPrice < bandLow:
		band = "Undervalued"
		rec = models.Buy
	case f.CurrentPrice > bandHigh:
		band = "Overvalued"
		rec = models.Sell
	default:
		band = "Fairly Valued"
		rec = models.Hold
	}

	margin := (fairValue - f.CurrentPrice) / fairValue * 100

	return &models.ModelResult{
		ModelName:         ModelPEBand,
		IntrinsicValue:    ptr(fairValue),
		MarginOfSafetyPct: ptr(margin),
		Recommendation:    rec,
		Rationale: fmt.Sprintf(
			"%s: current PE %.2f vs historical avg %.2f (range %.2f-%.2f, percentile %.0f). Fair-value band %.2f-%.2f, price %.2f.",
			band, currentPE, averagePE, minPE, maxPE, rank, bandLow, bandHigh, f.CurrentPrice),
	}, nil
}

func ptr(v float64) *float64 { return &v }
