// Package analysis orchestrates the full pipeline for one symbol: fetch,
// normalize, valuation models, composite scores, aggregation, assessment.
package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/kittipos/setval/internal/common"
	"github.com/kittipos/setval/internal/history"
	"github.com/kittipos/setval/internal/interfaces"
	"github.com/kittipos/setval/internal/models"
	"github.com/kittipos/setval/internal/normalize"
	"github.com/kittipos/setval/internal/scoring"
	"github.com/kittipos/setval/internal/synthesis"
	"github.com/kittipos/setval/internal/valuation"
)

// DefaultHistoryYears bounds the ratio and dividend series when the
// caller does not specify a window.
const DefaultHistoryYears = 10

// Service implements the AnalysisService interface.
type Service struct {
	client interfaces.MarketDataClient
	engine *valuation.Engine
	scorer *scoring.Scorer
	logger *common.Logger
}

// NewService creates an analysis service.
func NewService(client interfaces.MarketDataClient, cfg common.ValuationConfig, logger *common.Logger) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Service{
		client: client,
		engine: valuation.NewEngine(cfg, logger),
		scorer: scoring.NewScorer(logger),
		logger: logger,
	}
}

// symbolData is everything fetched for one analysis. Fundamentals are
// mandatory; the other three are best-effort collaborator inputs.
type symbolData struct {
	fundamentals *models.CanonicalFundamentals
	ratios       models.HistoricalSeries
	earnings     *models.EarningsDeltas
	dividends    []float64
}

// fetch retrieves all inputs for a symbol concurrently. A failed
// fundamentals fetch fails the whole analysis; failures on the history,
// earnings and dividend endpoints degrade to missing data.
func (s *Service) fetch(ctx context.Context, symbol string, years int) (*symbolData, error) {
	clean, err := normalize.Symbol(symbol)
	if err != nil {
		return nil, err
	}
	if years <= 0 {
		years = DefaultHistoryYears
	}

	data := &symbolData{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		raw, err := s.client.GetFundamentals(gctx, clean)
		if err != nil {
			return fmt.Errorf("fetch fundamentals for %s: %w", clean, err)
		}
		canon, err := normalize.Fundamentals(raw)
		if err != nil {
			return err
		}
		data.fundamentals = canon
		return nil
	})

	g.Go(func() error {
		series, err := s.client.GetRatioHistory(gctx, clean, years)
		if err != nil {
			s.logger.Warn().Str("symbol", clean).Err(err).Msg("Ratio history unavailable")
			return nil
		}
		data.ratios = series
		return nil
	})

	g.Go(func() error {
		deltas, err := s.client.GetEarningsDeltas(gctx, clean)
		if err != nil {
			s.logger.Warn().Str("symbol", clean).Err(err).Msg("Earnings deltas unavailable")
			return nil
		}
		data.earnings = deltas
		return nil
	})

	g.Go(func() error {
		dividends, err := s.client.GetDividendHistory(gctx, clean, years)
		if err != nil {
			s.logger.Warn().Str("symbol", clean).Err(err).Msg("Dividend history unavailable")
			return nil
		}
		data.dividends = dividends
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}

// AnalyzeSymbol runs the full pipeline and assembles the report.
func (s *Service) AnalyzeSymbol(ctx context.Context, symbol string, opts interfaces.AnalyzeOptions) (*models.AnalysisReport, error) {
	start := time.Now()

	data, err := s.fetch(ctx, symbol, opts.HistoryYears)
	if err != nil {
		return nil, err
	}
	f := data.fundamentals

	results := s.engine.RunAll(f, valuation.Options{HistoricalPEs: data.ratios.PEs()})
	verdict := valuation.Aggregate(f, results)

	scores := s.scorer.RunAll(f, scoring.Inputs{
		History:         data.ratios,
		DividendHistory: data.dividends,
		CANSLIM:         s.canslimInputs(data, opts),
	})

	report := &models.AnalysisReport{
		ID:          uuid.New().String(),
		Symbol:      f.Symbol,
		GeneratedAt: time.Now(),
		Verdict:     verdict,
		Models:      results,
		Scores:      scores,
		Assessment:  synthesis.Synthesize(verdict, scores, f),
	}

	s.logger.Info().Str("symbol", f.Symbol).
		Str("recommendation", string(verdict.OverallRecommendation)).
		Dur("elapsed", time.Since(start)).
		Msg("Analysis complete")

	return report, nil
}

// RunValuations runs only the valuation model set and its aggregate.
func (s *Service) RunValuations(ctx context.Context, symbol string) ([]*models.ModelResult, *models.AggregateVerdict, error) {
	data, err := s.fetch(ctx, symbol, DefaultHistoryYears)
	if err != nil {
		return nil, nil, err
	}

	results := s.engine.RunAll(data.fundamentals, valuation.Options{HistoricalPEs: data.ratios.PEs()})
	verdict := valuation.Aggregate(data.fundamentals, results)
	return results, verdict, nil
}

// RunScores runs only the composite scorers.
func (s *Service) RunScores(ctx context.Context, symbol string, opts interfaces.AnalyzeOptions) ([]*models.CompositeScore, error) {
	data, err := s.fetch(ctx, symbol, opts.HistoryYears)
	if err != nil {
		return nil, err
	}

	return s.scorer.RunAll(data.fundamentals, scoring.Inputs{
		History:         data.ratios,
		DividendHistory: data.dividends,
		CANSLIM:         s.canslimInputs(data, opts),
	}), nil
}

// AnalyzeHistory summarizes the historical ratio series for a symbol.
func (s *Service) AnalyzeHistory(ctx context.Context, symbol string, years int) ([]models.RatioStats, error) {
	clean, err := normalize.Symbol(symbol)
	if err != nil {
		return nil, err
	}
	if years <= 0 {
		years = DefaultHistoryYears
	}

	series, err := s.client.GetRatioHistory(ctx, clean, years)
	if err != nil {
		return nil, fmt.Errorf("fetch ratio history for %s: %w", clean, err)
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("no ratio history for %s", clean)
	}

	columns := []struct {
		name   string
		values []float64
	}{
		{"PE", series.PEs()},
		{"PBV", series.PBVs()},
		{"ROE", series.ROEs()},
		{"ROA", series.ROAs()},
		{"ROIC", series.ROICs()},
	}

	stats := make([]models.RatioStats, 0, len(columns))
	for _, col := range columns {
		if len(col.values) == 0 {
			continue
		}
		stats = append(stats, history.Analyze(col.name, col.values[0], col.values))
	}
	return stats, nil
}

// canslimInputs maps fetched collaborator data into the CANSLIM checklist
// inputs.
func (s *Service) canslimInputs(data *symbolData, opts interfaces.AnalyzeOptions) scoring.CANSLIMInputs {
	in := scoring.CANSLIMInputs{
		MarketDirection: opts.MarketDirection,
		MacroFactors:    opts.MacroFactors,
	}
	if data.earnings != nil {
		in.QuarterlyEPS = data.earnings.Quarterly
		in.AnnualNetIncome = data.earnings.Annual
	}
	return in
}

// Ensure Service implements AnalysisService
var _ interfaces.AnalysisService = (*Service)(nil)
