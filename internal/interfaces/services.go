package interfaces

import (
	"context"

	"github.com/kittipos/setval/internal/models"
)

// AnalyzeOptions configures a full symbol analysis.
type AnalyzeOptions struct {
	// HistoryYears bounds the historical ratio series (default 10).
	HistoryYears int
	// MarketDirection and MacroFactors feed the informational CANSLIM
	// letters; they are reported, never scored.
	MarketDirection string
	MacroFactors    string
}

// AnalysisService produces investment signals for a symbol.
type AnalysisService interface {
	// AnalyzeSymbol runs the full pipeline: fetch, normalize, valuation
	// models, composite scores, aggregation, assessment
	AnalyzeSymbol(ctx context.Context, symbol string, opts AnalyzeOptions) (*models.AnalysisReport, error)

	// RunValuations runs only the valuation model set and its aggregate
	RunValuations(ctx context.Context, symbol string) ([]*models.ModelResult, *models.AggregateVerdict, error)

	// RunScores runs only the composite scorers
	RunScores(ctx context.Context, symbol string, opts AnalyzeOptions) ([]*models.CompositeScore, error)

	// AnalyzeHistory summarizes the historical ratio series
	AnalyzeHistory(ctx context.Context, symbol string, years int) ([]models.RatioStats, error)
}
