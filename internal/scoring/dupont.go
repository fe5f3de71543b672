package scoring

import (
	"fmt"
	"math"

	"github.com/kittipos/setval/internal/models"
)

// DuPont trend labels.
const (
	DuPontImproving = "Improving"
	DuPontDeclining = "Declining"
	DuPontStable    = "Stable"
)

// DuPont decomposes return on equity into net profit margin, asset
// turnover and financial leverage, and classifies the trend against a
// caller-supplied prior-period ROE. RawScore is the decomposed ROE in
// percent.
func DuPont(f *models.CanonicalFundamentals, priorROE *float64) *models.CompositeScore {
	score := &models.CompositeScore{ScoreName: ScoreDuPont, Tier: DuPontStable}

	if f.Sales == 0 || f.NetIncome == 0 {
		score.MissingInputs = append(score.MissingInputs, "net_income/revenue")
	}
	if f.TotalAssets <= 0 {
		score.MissingInputs = append(score.MissingInputs, "total_assets")
	}
	equity := f.TotalAssets - f.TotalLiabilities
	if f.TotalAssets > 0 && equity <= 0 {
		score.MissingInputs = append(score.MissingInputs, "shareholder_equity")
	}

	if len(score.MissingInputs) > 0 {
		// Fall back to the reported ROE when the decomposition inputs are
		// incomplete.
		score.RawScore = f.ReturnOnEquity
		score.Rationale = fmt.Sprintf("Decomposition unavailable; reported ROE %.2f%%.", f.ReturnOnEquity)
		classifyROETrend(score, f.ReturnOnEquity, priorROE)
		return score
	}

	netProfitMargin := f.NetIncome / f.Sales
	assetTurnover := f.Sales / f.TotalAssets
	financialLeverage := f.TotalAssets / equity
	roe := netProfitMargin * assetTurnover * financialLeverage * 100

	score.RawScore = roe
	score.Checks = []models.ScoreCheck{
		{Name: "net_profit_margin", Status: models.CheckInfo, Value: fmt.Sprintf("%.2f%%", netProfitMargin*100)},
		{Name: "asset_turnover", Status: models.CheckInfo, Value: fmt.Sprintf("%.3f", assetTurnover)},
		{Name: "financial_leverage", Status: models.CheckInfo, Value: fmt.Sprintf("%.2fx", financialLeverage)},
	}
	score.Rationale = fmt.Sprintf("ROE %.2f%% = margin %.2f%% x turnover %.3f x leverage %.2fx.",
		roe, netProfitMargin*100, assetTurnover, financialLeverage)
	classifyROETrend(score, roe, priorROE)

	return score
}

// classifyROETrend sets the tier from the relative change against the
// prior period: beyond +/-5% is a direction, inside the band is stable.
func classifyROETrend(score *models.CompositeScore, roe float64, priorROE *float64) {
	if priorROE == nil || *priorROE == 0 {
		score.MissingInputs = append(score.MissingInputs, "prior_roe")
		return
	}

	change := (roe - *priorROE) / math.Abs(*priorROE)
	switch {
	case change > 0.05:
		score.Tier = DuPontImproving
	case change < -0.05:
		score.Tier = DuPontDeclining
	default:
		score.Tier = DuPontStable
	}
	score.Rationale += fmt.Sprintf(" %s vs prior ROE %.2f%%.", score.Tier, *priorROE)
}
