package scoring

import (
	"fmt"
	"math"

	"github.com/kittipos/setval/internal/models"
)

// missingValue is reported for any letter whose required input is absent.
const missingValue = "Data not available"

// CANSLIMInputs carries the collaborator-provided context the checklist
// needs beyond the canonical fundamentals. All fields are optional;
// letters without their input report MISSING DATA instead of failing.
type CANSLIMInputs struct {
	// QuarterlyEPS compares the latest quarter against the same quarter a
	// year earlier (letter C).
	QuarterlyEPS *models.EarningsDelta
	// AnnualNetIncome compares the latest full year against three years
	// earlier (letter A).
	AnnualNetIncome *models.EarningsDelta
	// DividendGrowthPct is the year-over-year dividend growth (letter E).
	DividendGrowthPct *float64
	// MarketDirection and MacroFactors are informational only and never
	// scored (letters M and X).
	MarketDirection string
	MacroFactors    string
}

// CANSLIM evaluates O'Neil's growth checklist: seven scored letters worth
// one point each, plus two informational letters reported but never
// counted. A letter with absent input goes to MissingInputs and does not
// reduce the score earned by the remaining letters.
func CANSLIM(f *models.CanonicalFundamentals, inputs CANSLIMInputs) *models.CompositeScore {
	score := &models.CompositeScore{ScoreName: ScoreCANSLIM}
	points := 0

	points += letterC(score, inputs.QuarterlyEPS)
	points += letterA(score, inputs.AnnualNetIncome)
	points += letterN(score, f)
	points += letterS(score, f)
	points += letterL(score, f)
	points += letterI(score, f)
	points += letterE(score, f, inputs.DividendGrowthPct)

	infoLetter(score, "M: market direction", inputs.MarketDirection)
	infoLetter(score, "X: external factors", inputs.MacroFactors)

	grade, rec := canslimGrade(points)
	score.RawScore = float64(points)
	score.Tier = grade
	score.Rationale = fmt.Sprintf("Score %d/7, grade %s: %s.", points, grade, rec)
	if n := len(score.MissingInputs); n > 0 {
		score.Rationale += fmt.Sprintf(" %d letters lacked data.", n)
	}

	return score
}

// letter records one scored letter; available=false marks it missing.
func letter(score *models.CompositeScore, name string, available, pass bool, value string) int {
	if !available {
		score.MissingInputs = append(score.MissingInputs, name)
		score.Checks = append(score.Checks, models.ScoreCheck{Name: name, Status: models.CheckMissing, Value: missingValue})
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

func infoLetter(score *models.CompositeScore, name, value string) {
	if value == "" {
		score.MissingInputs = append(score.MissingInputs, name)
		score.Checks = append(score.Checks, models.ScoreCheck{Name: name, Status: models.CheckMissing, Value: missingValue})
		return
	}
	score.Checks = append(score.Checks, models.ScoreCheck{Name: name, Status: models.CheckInfo, Value: value})
}

// C: current quarterly EPS up at least 18% year over year.
func letterC(score *models.CompositeScore, delta *models.EarningsDelta) int {
	name := "C: quarterly EPS growth"
	if delta == nil || !delta.Supplied || delta.Prior == 0 {
		return letter(score, name, false, false, "")
	}
	growth := (delta.Current - delta.Prior) / math.Abs(delta.Prior) * 100
	return letter(score, name, true, growth >= 18, fmt.Sprintf("%+.1f%%", growth))
}

// A: annual earnings compounding at 25% or better over three years.
func letterA(score *models.CompositeScore, delta *models.EarningsDelta) int {
	name := "A: annual earnings growth"
	if delta == nil || !delta.Supplied || delta.Prior <= 0 || delta.Current <= 0 {
		return letter(score, name, false, false, "")
	}
	cagr := (math.Pow(delta.Current/delta.Prior, 1.0/3.0) - 1) * 100
	return letter(score, name, true, cagr >= 25, fmt.Sprintf("%.1f%% CAGR", cagr))
}

// N: new high ground — positive 52-week price change.
func letterN(score *models.CompositeScore, f *models.CanonicalFundamentals) int {
	name := "N: 52-week price strength"
	if wasDefaulted(f, "price_change_52w_pct") {
		return letter(score, name, false, false, "")
	}
	return letter(score, name, true, f.PriceChange52WeekPct > 0,
		fmt.Sprintf("%+.1f%%", f.PriceChange52WeekPct))
}

// S: supply — share count shrinking or growing under 5%.
func letterS(score *models.CompositeScore, f *models.CanonicalFundamentals) int {
	name := "S: share supply"
	if wasDefaulted(f, "shares_change_yoy_pct") && wasDefaulted(f, "shares_change_qoq_pct") {
		return letter(score, name, false, false, "")
	}
	pass := f.SharesChangeYoYPct < 5 && f.SharesChangeQoQPct < 5
	return letter(score, name, true, pass,
		fmt.Sprintf("YoY %+.1f%%, QoQ %+.1f%%", f.SharesChangeYoYPct, f.SharesChangeQoQPct))
}

// L: leader — return on equity of 15% or better.
func letterL(score *models.CompositeScore, f *models.CanonicalFundamentals) int {
	name := "L: return on equity"
	if f.ReturnOnEquity == 0 {
		return letter(score, name, false, false, "")
	}
	return letter(score, name, true, f.ReturnOnEquity >= 15, fmt.Sprintf("%.1f%%", f.ReturnOnEquity))
}

// I: institutional sponsorship between 5% and 80%.
func letterI(score *models.CompositeScore, f *models.CanonicalFundamentals) int {
	name := "I: institutional ownership"
	if f.InstitutionalOwnershipPct == 0 {
		return letter(score, name, false, false, "")
	}
	pass := f.InstitutionalOwnershipPct >= 5 && f.InstitutionalOwnershipPct <= 80
	return letter(score, name, true, pass, fmt.Sprintf("%.1f%%", f.InstitutionalOwnershipPct))
}

// E: earnings durability — dividend holding steady and a real margin.
func letterE(score *models.CompositeScore, f *models.CanonicalFundamentals, dividendGrowth *float64) int {
	name := "E: earnings durability"
	if dividendGrowth == nil || f.ProfitMargin == 0 {
		return letter(score, name, false, false, "")
	}
	pass := *dividendGrowth >= 0 && f.ProfitMargin > 5
	return letter(score, name, true, pass,
		fmt.Sprintf("dividend %+.1f%%, margin %.1f%%", *dividendGrowth, f.ProfitMargin))
}

// canslimGrade maps the 0-7 total to a letter grade and its suggested
// stance.
func canslimGrade(points int) (grade string, rec models.Recommendation) {
	switch points {
	case 7:
		return "A+", models.StrongBuy
	case 6:
		return "A", models.Buy
	case 5:
		return "B", models.Hold
	case 4:
		return "C", models.Hold
	case 3:
		return "D", models.Sell
	default:
		return "F", models.Avoid
	}
}
