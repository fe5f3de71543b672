package scoring

import (
	"fmt"

	"github.com/kittipos/setval/internal/models"
)

// PiotroskiInputs carries the prior-period figures the F-Score tests need
// beyond the canonical fundamentals. Nil pointers mark inputs the
// collaborator could not supply; the affected tests are reported missing
// rather than failed.
type PiotroskiInputs struct {
	PriorROA           *float64
	PriorGrossMargin   *float64
	PriorAssetTurnover *float64
	LongTermDebt       *float64
	PriorLongTermDebt  *float64
	CurrentRatio       *float64
}

// Piotroski computes the nine-point fundamental quality checklist. Each
// test contributes 0 or 1; tests with absent inputs contribute nothing
// and are listed in MissingInputs.
func Piotroski(f *models.CanonicalFundamentals, inputs *PiotroskiInputs) *models.CompositeScore {
	if inputs == nil {
		inputs = &PiotroskiInputs{}
	}

	score := &models.CompositeScore{ScoreName: ScorePiotroski}
	points := 0

	// Profitability
	points += test(score, "positive_net_income", f.NetIncome != 0,
		f.NetIncome > 0, fmt.Sprintf("%.0f", f.NetIncome))
	points += test(score, "positive_operating_cash_flow", f.OperatingCashFlow != 0,
		f.OperatingCashFlow > 0, fmt.Sprintf("%.0f", f.OperatingCashFlow))
	points += testROADelta(score, f, inputs)
	points += test(score, "cash_flow_exceeds_net_income", f.OperatingCashFlow != 0 && f.NetIncome != 0,
		f.OperatingCashFlow > f.NetIncome, "")

	// Leverage and liquidity
	points += testDebtDelta(score, inputs)
	points += testCurrentRatio(score, inputs)
	points += testDilution(score, f)

	// Operating efficiency
	points += testGrossMarginDelta(score, f, inputs)
	points += testTurnoverDelta(score, f, inputs)

	score.RawScore = float64(points)
	score.Tier = piotroskiTier(points)
	score.Rationale = fmt.Sprintf("F-Score %d/9: %s.", points, score.Tier)
	if n := len(score.MissingInputs); n > 0 {
		score.Rationale += fmt.Sprintf(" %d tests lacked inputs.", n)
	}

	return score
}

// test records one binary check. available=false marks the test missing.
func test(score *models.CompositeScore, name string, available, pass bool, value string) int {
	if !available {
		score.MissingInputs = append(score.MissingInputs, name)
		score.Checks = append(score.Checks, models.ScoreCheck{Name: name, Status: models.CheckMissing})
		return 0
	}

	status := models.CheckFail
	earned := 0
	if pass {
		status = models.CheckPass
		earned = 1
	}
	score.Checks = append(score.Checks, models.ScoreCheck{Name: name, Status: status, Value: value})
	return earned
}

func testROADelta(score *models.CompositeScore, f *models.CanonicalFundamentals, in *PiotroskiInputs) int {
	if f.NetIncome == 0 || f.TotalAssets <= 0 || in.PriorROA == nil {
		return test(score, "improving_roa", false, false, "")
	}
	roa := f.NetIncome / f.TotalAssets
	return test(score, "improving_roa", true, roa > *in.PriorROA, fmt.Sprintf("%.4f", roa))
}

func testDebtDelta(score *models.CompositeScore, in *PiotroskiInputs) int {
	if in.LongTermDebt == nil || in.PriorLongTermDebt == nil {
		return test(score, "lower_long_term_debt", false, false, "")
	}
	return test(score, "lower_long_term_debt", true, *in.LongTermDebt <= *in.PriorLongTermDebt,
		fmt.Sprintf("%.0f", *in.LongTermDebt))
}

func testCurrentRatio(score *models.CompositeScore, in *PiotroskiInputs) int {
	if in.CurrentRatio == nil {
		return test(score, "current_ratio_above_1.5", false, false, "")
	}
	return test(score, "current_ratio_above_1.5", true, *in.CurrentRatio > 1.5,
		fmt.Sprintf("%.2f", *in.CurrentRatio))
}

func testDilution(score *models.CompositeScore, f *models.CanonicalFundamentals) int {
	// Zero here is ambiguous: only trust it when the field was reported,
	// not defaulted by the normalizer.
	if wasDefaulted(f, "shares_change_yoy_pct") {
		return test(score, "no_share_dilution", false, false, "")
	}
	return test(score, "no_share_dilution", true, f.SharesChangeYoYPct <= 0,
		fmt.Sprintf("%+.2f%%", f.SharesChangeYoYPct))
}

func testGrossMarginDelta(score *models.CompositeScore, f *models.CanonicalFundamentals, in *PiotroskiInputs) int {
	if f.GrossMargin == 0 || in.PriorGrossMargin == nil {
		return test(score, "improving_gross_margin", false, false, "")
	}
	return test(score, "improving_gross_margin", true, f.GrossMargin > *in.PriorGrossMargin,
		fmt.Sprintf("%.2f%%", f.GrossMargin))
}

func testTurnoverDelta(score *models.CompositeScore, f *models.CanonicalFundamentals, in *PiotroskiInputs) int {
	if f.Sales == 0 || f.TotalAssets <= 0 || in.PriorAssetTurnover == nil {
		return test(score, "improving_asset_turnover", false, false, "")
	}
	turnover := f.Sales / f.TotalAssets
	return test(score, "improving_asset_turnover", true, turnover > *in.PriorAssetTurnover,
		fmt.Sprintf("%.3f", turnover))
}

func piotroskiTier(points int) string {
	switch {
	case points >= 8:
		return "Excellent"
	case points >= 6:
		return "Strong"
	case points >= 4:
		return "Moderate"
	case points >= 2:
		return "Weak"
	default:
		return "Poor"
	}
}

// wasDefaulted reports whether the normalizer substituted a default for
// the named optional field.
func wasDefaulted(f *models.CanonicalFundamentals, field string) bool {
	for _, d := range f.DefaultedFields {
		if d == field {
			return true
		}
	}
	return false
}
