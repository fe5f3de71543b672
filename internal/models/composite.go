package models

// CheckStatus is the outcome of a single scored criterion.
type CheckStatus string

const (
	CheckPass CheckStatus = "pass"
	CheckFail CheckStatus = "fail"
	// CheckMissing marks a criterion whose required input was absent.
	// Missing is distinct from fail: it never reduces the earned score.
	CheckMissing CheckStatus = "missing"
	// CheckInfo marks an informational, non-scored criterion.
	CheckInfo CheckStatus = "info"
)

// ScoreCheck is one criterion within a composite score (a Piotroski test,
// a CANSLIM letter, an Altman term).
type ScoreCheck struct {
	Name   string      `json:"name"`
	Status CheckStatus `json:"status"`
	Value  string      `json:"value,omitempty"`
}

// CompositeScore is the output of one composite scorer for one invocation.
// Tier is a scorer-specific enumeration (bankruptcy risk for Altman,
// letter grade for CANSLIM, safety label for dividend safety).
type CompositeScore struct {
	ScoreName     string       `json:"score_name"`
	RawScore      float64      `json:"raw_score"`
	Tier          string       `json:"tier"`
	MissingInputs []string     `json:"missing_inputs,omitempty"`
	Checks        []ScoreCheck `json:"checks,omitempty"`
	Rationale     string       `json:"rationale"`
}
