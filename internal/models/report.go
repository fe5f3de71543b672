package models

import "time"

// Tier is a coarse High/Medium/Low classification used for confidence and
// data quality.
type Tier string

const (
	TierHigh   Tier = "High"
	TierMedium Tier = "Medium"
	TierLow    Tier = "Low"
)

// Warning codes understood by the presentation layer.
const (
	WarnModelExcluded  = "model_excluded"
	WarnMissingInput   = "missing_input"
	WarnDefaultedField = "defaulted_field"
)

// Warning is a machine-readable caveat attached to an assessment.
type Warning struct {
	Code    string `json:"code"`
	Source  string `json:"source"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Assessment maps the numeric verdict into confidence and data-quality
// tiers plus structured warnings. This is the engine's only coupling point
// to the presentation layer.
type Assessment struct {
	Confidence  Tier      `json:"confidence"`
	DataQuality Tier      `json:"data_quality"`
	Warnings    []Warning `json:"warnings,omitempty"`
}

// RatioStats summarizes one historical ratio column.
type RatioStats struct {
	Ratio          string  `json:"ratio"`
	Current        float64 `json:"current"`
	Mean           float64 `json:"mean"`
	Min            float64 `json:"min"`
	Max            float64 `json:"max"`
	PercentileRank float64 `json:"percentile_rank"`
	Trend          string  `json:"trend"`
	Periods        int     `json:"periods"`
}

// AnalysisReport is the full output of one symbol analysis.
type AnalysisReport struct {
	ID          string            `json:"id"`
	Symbol      string            `json:"symbol"`
	GeneratedAt time.Time         `json:"generated_at"`
	Verdict     *AggregateVerdict `json:"verdict"`
	Models      []*ModelResult    `json:"models"`
	Scores      []*CompositeScore `json:"scores"`
	Assessment  *Assessment       `json:"assessment"`
}
