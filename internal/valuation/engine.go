package valuation

import (
	"fmt"

	"github.com/kittipos/setval/internal/common"
	"github.com/kittipos/setval/internal/models"
)

// Engine runs the full model set for one symbol. It carries only the
// configured market defaults and a logger; every invocation is
// independent, so the engine is safe to share across goroutines.
type Engine struct {
	defaults common.ValuationConfig
	logger   *common.Logger
}

// NewEngine creates an engine with the given market defaults.
func NewEngine(defaults common.ValuationConfig, logger *common.Logger) *Engine {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Engine{defaults: defaults, logger: logger}
}

// Options carries caller overrides for individual models. Nil fields fall
// back to the configured defaults.
type Options struct {
	HistoricalPEs []float64
	DDM           *DDMParams
	DCF           *DCFParams
	Asset         *AssetParams
}

// RunAll executes every valuation model, isolating failures: a model that
// returns an error or panics is converted into a NotApplicable result
// carrying the failure note, and the remaining models still run.
func (e *Engine) RunAll(f *models.CanonicalFundamentals, opts Options) []*models.ModelResult {
	peSeries := opts.HistoricalPEs
	if len(peSeries) == 0 {
		peSeries = e.defaults.HistoricalPEFallback
	}

	ddm := DDMParams{RequiredReturn: e.defaults.RequiredReturn, GrowthRate: e.defaults.DividendGrowthRate}
	if opts.DDM != nil {
		ddm = *opts.DDM
	}

	dcf := DCFParams{
		GrowthRate:         e.defaults.FCFGrowthRate,
		DiscountRate:       e.defaults.DiscountRate,
		TerminalGrowthRate: e.defaults.TerminalGrowthRate,
		Years:              e.defaults.ProjectionYears,
	}
	if opts.DCF != nil {
		dcf = *opts.DCF
	}

	asset := AssetParams{LiquidationDiscount: e.defaults.LiquidationDiscount}
	if opts.Asset != nil {
		asset = *opts.Asset
	}

	results := []*models.ModelResult{
		e.run(f, ModelPEBand, func() (*models.ModelResult, error) {
			return PEBand(f, PEBandParams{HistoricalPEs: peSeries})
		}),
		e.run(f, ModelDDM, func() (*models.ModelResult, error) {
			return DividendDiscount(f, ddm)
		}),
		e.run(f, ModelDCF, func() (*models.ModelResult, error) {
			return DiscountedCashFlow(f, dcf)
		}),
		e.run(f, ModelGraham, func() (*models.ModelResult, error) {
			return GrahamNumber(f)
		}),
		e.run(f, ModelAsset, func() (*models.ModelResult, error) {
			return AssetBased(f, asset)
		}),
	}

	return results
}

// run executes one model with panic and error isolation.
func (e *Engine) run(f *models.CanonicalFundamentals, name string, fn func() (*models.ModelResult, error)) (result *models.ModelResult) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error().Str("symbol", f.Symbol).Str("model", name).Any("panic", r).Msg("Valuation model panicked")
			result = excludedResult(name, fmt.Sprintf("model panicked: %v", r))
		}
	}()

	result, err := fn()
	if err != nil {
		e.logger.Warn().Str("symbol", f.Symbol).Str("model", name).Err(err).Msg("Valuation model failed")
		return excludedResult(name, err.Error())
	}
	return result
}

func excludedResult(name, note string) *models.ModelResult {
	return &models.ModelResult{
		ModelName:      name,
		Recommendation: models.NotApplicable,
		Rationale:      "Excluded: " + note,
	}
}
