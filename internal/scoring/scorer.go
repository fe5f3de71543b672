package scoring

import (
	"fmt"

	"github.com/kittipos/setval/internal/common"
	"github.com/kittipos/setval/internal/models"
)

// Scorer runs the full composite set for one symbol, deriving trend
// inputs from the historical ratio series where the caller has not
// supplied them directly.
type Scorer struct {
	logger *common.Logger
}

// NewScorer creates a scorer.
func NewScorer(logger *common.Logger) *Scorer {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Scorer{logger: logger}
}

// Inputs carries the optional collaborator data for the composite set.
type Inputs struct {
	History         models.HistoricalSeries
	Piotroski       *PiotroskiInputs
	PriorROE        *float64
	DividendHistory []float64
	CANSLIM         CANSLIMInputs
}

// RunAll executes every composite scorer with panic isolation: a scorer
// that panics yields a zero score with the failure noted, and its
// siblings still run.
func (s *Scorer) RunAll(f *models.CanonicalFundamentals, in Inputs) []*models.CompositeScore {
	priorROE := in.PriorROE
	if priorROE == nil && len(in.History) > 1 {
		prior := in.History[1].ROE
		if prior != 0 {
			priorROE = &prior
		}
	}

	canslim := in.CANSLIM
	if canslim.DividendGrowthPct == nil && len(in.DividendHistory) >= 2 && in.DividendHistory[1] > 0 {
		growth := (in.DividendHistory[0] - in.DividendHistory[1]) / in.DividendHistory[1] * 100
		canslim.DividendGrowthPct = &growth
	}

	return []*models.CompositeScore{
		s.run(f, ScoreAltman, func() *models.CompositeScore { return AltmanZ(f) }),
		s.run(f, ScorePiotroski, func() *models.CompositeScore { return Piotroski(f, in.Piotroski) }),
		s.run(f, ScoreDuPont, func() *models.CompositeScore { return DuPont(f, priorROE) }),
		s.run(f, ScoreDividend, func() *models.CompositeScore { return DividendSafety(f, in.DividendHistory) }),
		s.run(f, ScoreCANSLIM, func() *models.CompositeScore { return CANSLIM(f, canslim) }),
	}
}

func (s *Scorer) run(f *models.CanonicalFundamentals, name string, fn func() *models.CompositeScore) (score *models.CompositeScore) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Str("symbol", f.Symbol).Str("score", name).Any("panic", r).Msg("Composite scorer panicked")
			score = &models.CompositeScore{
				ScoreName: name,
				Tier:      "Not Rated",
				Rationale: fmt.Sprintf("Scorer failed: %v", r),
			}
		}
	}()

	return fn()
}
