package models

// Recommendation is the verdict vocabulary used across models. Individual
// models emit a subset; the widened values (Strong Buy, Strong Sell, Avoid)
// collapse to the core Buy/Hold/Sell set at the aggregation boundary only.
type Recommendation string

const (
	StrongBuy     Recommendation = "Strong Buy"
	Buy           Recommendation = "Buy"
	Hold          Recommendation = "Hold"
	Sell          Recommendation = "Sell"
	StrongSell    Recommendation = "Strong Sell"
	Avoid         Recommendation = "Avoid"
	NotApplicable Recommendation = "Not Applicable"
)

// Collapse maps the widened vocabulary onto Buy/Hold/Sell for majority
// voting. NotApplicable collapses to itself; callers exclude it first.
func (r Recommendation) Collapse() Recommendation {
	switch r {
	case StrongBuy:
		return Buy
	case StrongSell, Avoid:
		return Sell
	case Buy, Hold, Sell, NotApplicable:
		return r
	default:
		return Hold
	}
}

// RiskTier classifies downside exposure from the overall margin of safety.
type RiskTier string

const (
	RiskVeryLow  RiskTier = "Very Low"
	RiskLow      RiskTier = "Low"
	RiskMedium   RiskTier = "Medium"
	RiskHigh     RiskTier = "High"
	RiskVeryHigh RiskTier = "Very High"
)

// ModelResult is the output of one valuation model for one invocation.
// Results are created fresh per call and never shared or persisted.
// IntrinsicValue and MarginOfSafetyPct are nil when the model is not
// applicable to the input.
type ModelResult struct {
	ModelName         string         `json:"model_name"`
	IntrinsicValue    *float64       `json:"intrinsic_value"`
	MarginOfSafetyPct *float64       `json:"margin_of_safety_pct"`
	Recommendation    Recommendation `json:"recommendation"`
	Rationale         string         `json:"rationale"`
}

// AggregateVerdict reconciles the applicable model results for one symbol
// into a single signal. The risk-tier recommendation is a second,
// finer-grained signal alongside the majority vote; the two are exposed
// separately, never merged.
type AggregateVerdict struct {
	Symbol                string         `json:"symbol"`
	CurrentPrice          float64        `json:"current_price"`
	AverageIntrinsicValue float64        `json:"average_intrinsic_value"`
	MarginOfSafetyPct     float64        `json:"margin_of_safety_pct"`
	OverallRecommendation Recommendation `json:"overall_recommendation"`
	RiskTier              RiskTier       `json:"risk_tier"`
	RiskRecommendation    Recommendation `json:"risk_recommendation"`
	ContributingModels    []string       `json:"contributing_models"`
	ExcludedModels        []string       `json:"excluded_models"`
}
