package scoring

import (
	"fmt"
	"math"

	"github.com/kittipos/setval/internal/models"
)

// DividendSafety scores how defensible the dividend is, starting from 100
// and applying penalties for stretched payout ratios and bonuses for
// growth. Every threshold is checked independently and all that match are
// applied. dividendHistory is per-year dividend per share, index 0 most
// recent; an empty history skips the growth bonuses.
func DividendSafety(f *models.CanonicalFundamentals, dividendHistory []float64) *models.CompositeScore {
	score := &models.CompositeScore{ScoreName: ScoreDividend}

	if f.DividendPerShare == 0 {
		score.Tier = "No Dividend"
		score.Rationale = "No dividend paid; safety not rated."
		return score
	}

	points := 100.0

	// Earnings payout penalties
	payout := f.DividendPerShare / f.EPS * 100
	points += payoutPenalty(score, "earnings_payout", payout)

	// Free-cash-flow payout penalties
	if f.FreeCashFlow > 0 {
		fcfPerShare := f.FreeCashFlow / f.SharesOutstanding
		fcfPayout := f.DividendPerShare / fcfPerShare * 100
		points += payoutPenalty(score, "fcf_payout", fcfPayout)
	} else {
		score.MissingInputs = append(score.MissingInputs, "free_cash_flow")
	}

	// Growth bonuses from the dividend history
	if len(dividendHistory) >= 2 {
		points += growthBonus(score, dividendHistory)
	} else {
		score.MissingInputs = append(score.MissingInputs, "dividend_history")
	}

	if points < 0 {
		points = 0
	}
	if points > 100 {
		points = 100
	}

	score.RawScore = points
	score.Tier = dividendTier(points)
	score.Rationale = fmt.Sprintf("Safety %.0f/100 (%s); earnings payout %.1f%%.", points, score.Tier, payout)

	return score
}

// payoutPenalty applies the tiered payout-ratio penalties. Thresholds are
// checked independently; an 85% payout takes all three.
func payoutPenalty(score *models.CompositeScore, name string, payout float64) float64 {
	penalty := 0.0
	if payout > 80 {
		penalty -= 40
	}
	if payout > 60 {
		penalty -= 20
	}
	if payout > 50 {
		penalty -= 10
	}

	status := models.CheckPass
	if penalty < 0 {
		status = models.CheckFail
	}
	score.Checks = append(score.Checks, models.ScoreCheck{
		Name:   name,
		Status: status,
		Value:  fmt.Sprintf("%.1f%% (%.0f)", payout, penalty),
	})
	return penalty
}

// growthBonus awards points for dividend CAGR and for consecutive years
// of growth, again with every threshold checked independently.
func growthBonus(score *models.CompositeScore, history []float64) float64 {
	bonus := 0.0

	oldest := history[len(history)-1]
	if oldest > 0 {
		cagr := (math.Pow(history[0]/oldest, 1/float64(len(history)-1)) - 1) * 100
		if cagr > 10 {
			bonus += 10
		}
		if cagr > 5 {
			bonus += 5
		}
		score.Checks = append(score.Checks, models.ScoreCheck{
			Name:   "dividend_cagr",
			Status: models.CheckInfo,
			Value:  fmt.Sprintf("%.1f%%", cagr),
		})
	}

	growthYears := 0
	for i := 0; i+1 < len(history); i++ {
		if history[i] <= history[i+1] {
			break
		}
		growthYears++
	}
	if growthYears >= 5 {
		bonus += 10
	}
	if growthYears >= 3 {
		bonus += 5
	}
	score.Checks = append(score.Checks, models.ScoreCheck{
		Name:   "consecutive_growth_years",
		Status: models.CheckInfo,
		Value:  fmt.Sprintf("%d", growthYears),
	})

	return bonus
}

func dividendTier(points float64) string {
	switch {
	case points >= 80:
		return "Very Safe"
	case points >= 60:
		return "Safe"
	case points >= 40:
		return "Borderline"
	case points >= 20:
		return "Risky"
	default:
		return "Very Risky"
	}
}
