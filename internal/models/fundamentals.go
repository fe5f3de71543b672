// Package models defines the data structures exchanged between the
// engine, the market-data client, and the tool layer.
package models

import "time"

// RawFundamentals is the per-company fundamentals record as delivered by
// the market-data API, before validation. Zero values may mean either
// "zero" or "not reported"; the normalizer applies the required/optional
// policy that disambiguates them.
type RawFundamentals struct {
	Symbol            string  `json:"symbol"`
	CurrentPrice      float64 `json:"current_price"`
	EPS               float64 `json:"eps"`
	DividendPerShare  float64 `json:"dividend_per_share"`
	FreeCashFlow      float64 `json:"free_cash_flow"`
	SharesOutstanding float64 `json:"shares_outstanding"`
	PERatio           float64 `json:"pe_ratio"`
	PBRatio           float64 `json:"pb_ratio"`
	ReturnOnEquity    float64 `json:"return_on_equity"`
	DebtToEquity      float64 `json:"debt_to_equity"`
	GrossMargin       float64 `json:"gross_margin"`
	OperatingMargin   float64 `json:"operating_margin"`
	ProfitMargin      float64 `json:"profit_margin"`

	// Altman Z-Score inputs
	WorkingCapital    float64 `json:"working_capital"`
	TotalAssets       float64 `json:"total_assets"`
	RetainedEarnings  float64 `json:"retained_earnings"`
	EBIT              float64 `json:"ebit"`
	MarketValueEquity float64 `json:"market_value_equity"`
	TotalLiabilities  float64 `json:"total_liabilities"`
	Sales             float64 `json:"sales"`

	// Cash-flow statement inputs
	OperatingCashFlow   float64 `json:"operating_cash_flow"`
	CapitalExpenditures float64 `json:"capital_expenditures"`
	NetIncome           float64 `json:"net_income"`

	// Growth / ownership context
	InstitutionalOwnershipPct float64 `json:"institutional_ownership_pct"`
	PriceChange52WeekPct      float64 `json:"price_change_52w_pct"`
	SharesChangeYoYPct        float64 `json:"shares_change_yoy_pct"`
	SharesChangeQoQPct        float64 `json:"shares_change_qoq_pct"`
}

// CanonicalFundamentals is the validated record every model consumes.
// Required fields (EPS, PERatio, SharesOutstanding) are guaranteed nonzero
// and finite; optional fields default to 0, with the defaulted field names
// recorded for data-quality reporting.
type CanonicalFundamentals struct {
	Symbol            string  `json:"symbol"`
	CurrentPrice      float64 `json:"current_price"`
	EPS               float64 `json:"eps"`
	DividendPerShare  float64 `json:"dividend_per_share"`
	FreeCashFlow      float64 `json:"free_cash_flow"`
	SharesOutstanding float64 `json:"shares_outstanding"`
	PERatio           float64 `json:"pe_ratio"`
	PBRatio           float64 `json:"pb_ratio"`
	ReturnOnEquity    float64 `json:"return_on_equity"`
	DebtToEquity      float64 `json:"debt_to_equity"`
	GrossMargin       float64 `json:"gross_margin"`
	OperatingMargin   float64 `json:"operating_margin"`
	ProfitMargin      float64 `json:"profit_margin"`

	WorkingCapital    float64 `json:"working_capital"`
	TotalAssets       float64 `json:"total_assets"`
	RetainedEarnings  float64 `json:"retained_earnings"`
	EBIT              float64 `json:"ebit"`
	MarketValueEquity float64 `json:"market_value_equity"`
	TotalLiabilities  float64 `json:"total_liabilities"`
	Sales             float64 `json:"sales"`

	OperatingCashFlow   float64 `json:"operating_cash_flow"`
	CapitalExpenditures float64 `json:"capital_expenditures"`
	NetIncome           float64 `json:"net_income"`

	InstitutionalOwnershipPct float64 `json:"institutional_ownership_pct"`
	PriceChange52WeekPct      float64 `json:"price_change_52w_pct"`
	SharesChangeYoYPct        float64 `json:"shares_change_yoy_pct"`
	SharesChangeQoQPct        float64 `json:"shares_change_qoq_pct"`

	// BookValuePerShare is derived at normalization time from
	// CurrentPrice / PBRatio when PBRatio is present, otherwise 0.
	BookValuePerShare float64 `json:"book_value_per_share"`

	// DefaultedFields lists the optional field names that were absent in
	// the raw record and substituted with 0.
	DefaultedFields []string `json:"defaulted_fields,omitempty"`

	NormalizedAt time.Time `json:"normalized_at"`
}

// EarningsDelta carries a pair of earnings figures for growth-rate tests.
// Supplied is false when the collaborator could not provide the pair.
type EarningsDelta struct {
	Current  float64 `json:"current"`
	Prior    float64 `json:"prior"`
	Supplied bool    `json:"supplied"`
}

// EarningsDeltas bundles the optional growth comparisons the CANSLIM
// checklist consumes.
type EarningsDeltas struct {
	// Quarterly compares the latest quarter EPS with the same quarter a
	// year earlier.
	Quarterly *EarningsDelta `json:"quarterly,omitempty"`
	// Annual compares the latest full-year net income with three years
	// earlier.
	Annual *EarningsDelta `json:"annual,omitempty"`
}
