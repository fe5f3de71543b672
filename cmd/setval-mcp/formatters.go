package main

import (
	"fmt"
	"strings"

	"github.com/kittipos/setval/internal/models"
)

// formatAnalysisReport formats a full analysis report as markdown
func formatAnalysisReport(report *models.AnalysisReport) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Analysis: %s\n\n", report.Symbol))
	sb.WriteString(fmt.Sprintf("**Generated:** %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("**Report ID:** %s\n\n", report.ID))

	sb.WriteString(formatVerdict(report.Verdict))
	sb.WriteString(formatModelTable(report.Models))
	sb.WriteString(formatScoreTable(report.Scores))
	sb.WriteString(formatAssessment(report.Assessment))

	return sb.String()
}

// formatValuations formats the model-only run as markdown
func formatValuations(results []*models.ModelResult, verdict *models.AggregateVerdict) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Valuation Models: %s\n\n", verdict.Symbol))
	sb.WriteString(formatVerdict(verdict))
	sb.WriteString(formatModelTable(results))

	return sb.String()
}

// formatScores formats the score-only run as markdown
func formatScores(symbol string, scores []*models.CompositeScore) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Composite Scores: %s\n\n", strings.ToUpper(strings.TrimSpace(symbol))))
	sb.WriteString(formatScoreTable(scores))

	for _, s := range scores {
		if len(s.Checks) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("### %s Checks\n\n", s.ScoreName))
		sb.WriteString("| Check | Status | Value |\n")
		sb.WriteString("|-------|--------|-------|\n")
		for _, c := range s.Checks {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n", c.Name, c.Status, c.Value))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRatioStats formats the historical ratio summary as markdown
func formatRatioStats(symbol string, stats []models.RatioStats) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Historical Ratios: %s\n\n", strings.ToUpper(strings.TrimSpace(symbol))))
	sb.WriteString("| Ratio | Current | Mean | Min | Max | Percentile | Trend | Periods |\n")
	sb.WriteString("|-------|---------|------|-----|-----|------------|-------|--------|\n")
	for _, s := range stats {
		sb.WriteString(fmt.Sprintf("| %s | %.2f | %.2f | %.2f | %.2f | %.0f | %s | %d |\n",
			s.Ratio, s.Current, s.Mean, s.Min, s.Max, s.PercentileRank, s.Trend, s.Periods))
	}
	sb.WriteString("\n")

	return sb.String()
}

// formatVerdict formats the aggregate verdict section
func formatVerdict(v *models.AggregateVerdict) string {
	var sb strings.Builder

	sb.WriteString("## Verdict\n\n")
	sb.WriteString(fmt.Sprintf("**Recommendation:** %s\n", v.OverallRecommendation))
	sb.WriteString(fmt.Sprintf("**Current Price:** %.2f\n", v.CurrentPrice))
	if len(v.ContributingModels) > 0 {
		sb.WriteString(fmt.Sprintf("**Average Intrinsic Value:** %.2f\n", v.AverageIntrinsicValue))
		sb.WriteString(fmt.Sprintf("**Margin of Safety:** %s\n", formatSignedPct(v.MarginOfSafetyPct)))
	}
	sb.WriteString(fmt.Sprintf("**Risk Tier:** %s (%s)\n", v.RiskTier, v.RiskRecommendation))
	sb.WriteString(fmt.Sprintf("**Contributing Models:** %d of %d\n",
		len(v.ContributingModels), len(v.ContributingModels)+len(v.ExcludedModels)))
	if len(v.ExcludedModels) > 0 {
		sb.WriteString(fmt.Sprintf("**Excluded:** %s\n", strings.Join(v.ExcludedModels, ", ")))
	}
	sb.WriteString("\n")

	return sb.String()
}

// formatModelTable formats the per-model results table
func formatModelTable(results []*models.ModelResult) string {
	var sb strings.Builder

	sb.WriteString("## Valuation Models\n\n")
	sb.WriteString("| Model | Intrinsic Value | Margin of Safety | Recommendation |\n")
	sb.WriteString("|-------|-----------------|------------------|----------------|\n")
	for _, r := range results {
		iv := "-"
		if r.IntrinsicValue != nil {
			iv = fmt.Sprintf("%.2f", *r.IntrinsicValue)
		}
		mos := "-"
		if r.MarginOfSafetyPct != nil {
			mos = formatSignedPct(*r.MarginOfSafetyPct)
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n", r.ModelName, iv, mos, r.Recommendation))
	}
	sb.WriteString("\n")

	for _, r := range results {
		sb.WriteString(fmt.Sprintf("- **%s**: %s\n", r.ModelName, r.Rationale))
	}
	sb.WriteString("\n")

	return sb.String()
}

// formatScoreTable formats the composite-score summary table
func formatScoreTable(scores []*models.CompositeScore) string {
	var sb strings.Builder

	sb.WriteString("## Composite Scores\n\n")
	sb.WriteString("| Score | Value | Tier | Missing Inputs |\n")
	sb.WriteString("|-------|-------|------|----------------|\n")
	for _, s := range scores {
		missing := "-"
		if len(s.MissingInputs) > 0 {
			missing = strings.Join(s.MissingInputs, ", ")
		}
		sb.WriteString(fmt.Sprintf("| %s | %.2f | %s | %s |\n", s.ScoreName, s.RawScore, s.Tier, missing))
	}
	sb.WriteString("\n")

	for _, s := range scores {
		sb.WriteString(fmt.Sprintf("- **%s**: %s\n", s.ScoreName, s.Rationale))
	}
	sb.WriteString("\n")

	return sb.String()
}

// formatAssessment formats the confidence and data-quality section
func formatAssessment(a *models.Assessment) string {
	var sb strings.Builder

	sb.WriteString("## Assessment\n\n")
	sb.WriteString(fmt.Sprintf("**Confidence:** %s\n", a.Confidence))
	sb.WriteString(fmt.Sprintf("**Data Quality:** %s\n\n", a.DataQuality))

	if len(a.Warnings) > 0 {
		sb.WriteString("### Warnings\n\n")
		for _, w := range a.Warnings {
			sb.WriteString(fmt.Sprintf("- [%s] %s\n", w.Code, w.Message))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatSignedPct formats a percentage with an explicit sign
func formatSignedPct(v float64) string {
	if v >= 0 {
		return fmt.Sprintf("+%.1f%%", v)
	}
	return fmt.Sprintf("%.1f%%", v)
}
