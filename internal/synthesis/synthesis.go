// Package synthesis maps the engine's numeric outputs into the
// confidence, data-quality and warning structure consumed by the
// presentation layer.
package synthesis

import (
	"fmt"

	"github.com/kittipos/setval/internal/models"
	"github.com/kittipos/setval/internal/scoring"
)

// Synthesize derives the assessment for one analysis: confidence from how
// complete and corroborated the verdict is, data quality from how much
// input was missing, and one structured warning per gap.
func Synthesize(verdict *models.AggregateVerdict, scores []*models.CompositeScore, f *models.CanonicalFundamentals) *models.Assessment {
	a := &models.Assessment{}

	for _, name := range verdict.ExcludedModels {
		a.Warnings = append(a.Warnings, models.Warning{
			Code:    models.WarnModelExcluded,
			Source:  name,
			Message: fmt.Sprintf("%s excluded from aggregation", name),
		})
	}

	missingInputs := 0
	for _, s := range scores {
		for _, field := range s.MissingInputs {
			missingInputs++
			a.Warnings = append(a.Warnings, models.Warning{
				Code:    models.WarnMissingInput,
				Source:  s.ScoreName,
				Field:   field,
				Message: fmt.Sprintf("%s computed without %s", s.ScoreName, field),
			})
		}
	}

	for _, field := range f.DefaultedFields {
		a.Warnings = append(a.Warnings, models.Warning{
			Code:    models.WarnDefaultedField,
			Source:  "normalizer",
			Field:   field,
			Message: fmt.Sprintf("optional field %s absent, defaulted to 0", field),
		})
	}

	a.Confidence = confidenceTier(verdict, scores)
	a.DataQuality = dataQualityTier(missingInputs + len(f.DefaultedFields))

	return a
}

// confidenceTier: high needs a full model set and at least two composite
// scores pointing the same way as the verdict; low means the vote rested
// on a minority of models.
func confidenceTier(verdict *models.AggregateVerdict, scores []*models.CompositeScore) models.Tier {
	applicable := len(verdict.ContributingModels)
	excluded := len(verdict.ExcludedModels)

	if applicable == 0 || excluded > applicable {
		return models.TierLow
	}

	corroborating := 0
	direction := verdict.OverallRecommendation.Collapse()
	for _, s := range scores {
		if corroborates(s, direction) {
			corroborating++
		}
	}

	if excluded == 0 && corroborating >= 2 {
		return models.TierHigh
	}
	return models.TierMedium
}

// corroborates reports whether a composite score points the same way as
// the aggregate direction.
func corroborates(s *models.CompositeScore, direction models.Recommendation) bool {
	switch s.ScoreName {
	case scoring.ScoreAltman:
		switch direction {
		case models.Buy:
			return s.Tier == "Very Low" || s.Tier == "Low"
		case models.Sell:
			return s.Tier == "High" || s.Tier == "Very High"
		default:
			return s.Tier == "Medium"
		}
	case scoring.ScorePiotroski:
		switch direction {
		case models.Buy:
			return s.RawScore >= 6
		case models.Sell:
			return s.RawScore <= 3
		default:
			return s.RawScore >= 4 && s.RawScore <= 5
		}
	case scoring.ScoreDuPont:
		switch direction {
		case models.Buy:
			return s.Tier == scoring.DuPontImproving
		case models.Sell:
			return s.Tier == scoring.DuPontDeclining
		default:
			return s.Tier == scoring.DuPontStable
		}
	case scoring.ScoreDividend:
		switch direction {
		case models.Buy:
			return s.Tier == "Very Safe" || s.Tier == "Safe"
		case models.Sell:
			return s.Tier == "Risky" || s.Tier == "Very Risky"
		default:
			return s.Tier == "Borderline"
		}
	case scoring.ScoreCANSLIM:
		switch direction {
		case models.Buy:
			return s.Tier == "A+" || s.Tier == "A" || s.Tier == "B"
		case models.Sell:
			return s.Tier == "D" || s.Tier == "F"
		default:
			return s.Tier == "C"
		}
	default:
		return false
	}
}

// dataQualityTier: every missing composite input or defaulted field
// erodes quality.
func dataQualityTier(gaps int) models.Tier {
	switch {
	case gaps == 0:
		return models.TierHigh
	case gaps <= 4:
		return models.TierMedium
	default:
		return models.TierLow
	}
}
