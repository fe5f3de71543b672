// Package interfaces defines service contracts for Setval
package interfaces

import (
	"context"

	"github.com/kittipos/setval/internal/models"
)

// MarketDataClient provides access to the market-data API. The engine
// never talks to it directly; the analysis service does, and tests
// substitute a mock.
type MarketDataClient interface {
	// GetFundamentals retrieves the raw fundamentals record for a symbol
	GetFundamentals(ctx context.Context, symbol string) (*models.RawFundamentals, error)

	// GetRatioHistory retrieves the per-period ratio series, most recent
	// period first
	GetRatioHistory(ctx context.Context, symbol string, years int) (models.HistoricalSeries, error)

	// GetEarningsDeltas retrieves the quarterly/annual earnings
	// comparisons used by the growth checklist; both sides are optional
	GetEarningsDeltas(ctx context.Context, symbol string) (*models.EarningsDeltas, error)

	// GetDividendHistory retrieves per-year dividend per share, most
	// recent year first
	GetDividendHistory(ctx context.Context, symbol string, years int) ([]float64, error)
}
