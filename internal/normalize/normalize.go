// Package normalize validates and coerces raw fundamentals records into
// the canonical form the valuation and scoring engines consume.
package normalize

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/kittipos/setval/internal/models"
)

// Field policy: required fields must be present, nonzero and finite, or
// the whole symbol fails; optional fields default to 0 and are recorded
// as defaulted. The table is the single source of truth — individual
// models never re-implement presence checks on these fields.
type fieldPolicy struct {
	name     string
	required bool
	get      func(*models.RawFundamentals) float64
	set      func(*models.CanonicalFundamentals, float64)
}

var policyTable = []fieldPolicy{
	{"current_price", true,
		func(r *models.RawFundamentals) float64 { return r.CurrentPrice },
		func(c *models.CanonicalFundamentals, v float64) { c.CurrentPrice = v }},
	{"eps", true,
		func(r *models.RawFundamentals) float64 { return r.EPS },
		func(c *models.CanonicalFundamentals, v float64) { c.EPS = v }},
	{"pe_ratio", true,
		func(r *models.RawFundamentals) float64 { return r.PERatio },
		func(c *models.CanonicalFundamentals, v float64) { c.PERatio = v }},
	{"shares_outstanding", true,
		func(r *models.RawFundamentals) float64 { return r.SharesOutstanding },
		func(c *models.CanonicalFundamentals, v float64) { c.SharesOutstanding = v }},
	{"dividend_per_share", false,
		func(r *models.RawFundamentals) float64 { return r.DividendPerShare },
		func(c *models.CanonicalFundamentals, v float64) { c.DividendPerShare = v }},
	{"free_cash_flow", false,
		func(r *models.RawFundamentals) float64 { return r.FreeCashFlow },
		func(c *models.CanonicalFundamentals, v float64) { c.FreeCashFlow = v }},
	{"pb_ratio", false,
		func(r *models.RawFundamentals) float64 { return r.PBRatio },
		func(c *models.CanonicalFundamentals, v float64) { c.PBRatio = v }},
	{"return_on_equity", false,
		func(r *models.RawFundamentals) float64 { return r.ReturnOnEquity },
		func(c *models.CanonicalFundamentals, v float64) { c.ReturnOnEquity = v }},
	{"debt_to_equity", false,
		func(r *models.RawFundamentals) float64 { return r.DebtToEquity },
		func(c *models.CanonicalFundamentals, v float64) { c.DebtToEquity = v }},
	{"gross_margin", false,
		func(r *models.RawFundamentals) float64 { return r.GrossMargin },
		func(c *models.CanonicalFundamentals, v float64) { c.GrossMargin = v }},
	{"operating_margin", false,
		func(r *models.RawFundamentals) float64 { return r.OperatingMargin },
		func(c *models.CanonicalFundamentals, v float64) { c.OperatingMargin = v }},
	{"profit_margin", false,
		func(r *models.RawFundamentals) float64 { return r.ProfitMargin },
		func(c *models.CanonicalFundamentals, v float64) { c.ProfitMargin = v }},
	{"working_capital", false,
		func(r *models.RawFundamentals) float64 { return r.WorkingCapital },
		func(c *models.CanonicalFundamentals, v float64) { c.WorkingCapital = v }},
	{"total_assets", false,
		func(r *models.RawFundamentals) float64 { return r.TotalAssets },
		func(c *models.CanonicalFundamentals, v float64) { c.TotalAssets = v }},
	{"retained_earnings", false,
		func(r *models.RawFundamentals) float64 { return r.RetainedEarnings },
		func(c *models.CanonicalFundamentals, v float64) { c.RetainedEarnings = v }},
	{"ebit", false,
		func(r *models.RawFundamentals) float64 { return r.EBIT },
		func(c *models.CanonicalFundamentals, v float64) { c.EBIT = v }},
	{"market_value_equity", false,
		func(r *models.RawFundamentals) float64 { return r.MarketValueEquity },
		func(c *models.CanonicalFundamentals, v float64) { c.MarketValueEquity = v }},
	{"total_liabilities", false,
		func(r *models.RawFundamentals) float64 { return r.TotalLiabilities },
		func(c *models.CanonicalFundamentals, v float64) { c.TotalLiabilities = v }},
	{"sales", false,
		func(r *models.RawFundamentals) float64 { return r.Sales },
		func(c *models.CanonicalFundamentals, v float64) { c.Sales = v }},
	{"operating_cash_flow", false,
		func(r *models.RawFundamentals) float64 { return r.OperatingCashFlow },
		func(c *models.CanonicalFundamentals, v float64) { c.OperatingCashFlow = v }},
	{"capital_expenditures", false,
		func(r *models.RawFundamentals) float64 { return r.CapitalExpenditures },
		func(c *models.CanonicalFundamentals, v float64) { c.CapitalExpenditures = v }},
	{"net_income", false,
		func(r *models.RawFundamentals) float64 { return r.NetIncome },
		func(c *models.CanonicalFundamentals, v float64) { c.NetIncome = v }},
	{"institutional_ownership_pct", false,
		func(r *models.RawFundamentals) float64 { return r.InstitutionalOwnershipPct },
		func(c *models.CanonicalFundamentals, v float64) { c.InstitutionalOwnershipPct = v }},
	{"price_change_52w_pct", false,
		func(r *models.RawFundamentals) float64 { return r.PriceChange52WeekPct },
		func(c *models.CanonicalFundamentals, v float64) { c.PriceChange52WeekPct = v }},
	{"shares_change_yoy_pct", false,
		func(r *models.RawFundamentals) float64 { return r.SharesChangeYoYPct },
		func(c *models.CanonicalFundamentals, v float64) { c.SharesChangeYoYPct = v }},
	{"shares_change_qoq_pct", false,
		func(r *models.RawFundamentals) float64 { return r.SharesChangeQoQPct },
		func(c *models.CanonicalFundamentals, v float64) { c.SharesChangeQoQPct = v }},
}

var symbolPattern = regexp.MustCompile(`^[A-Z]{2,6}$`)

// Symbol trims, uppercases and validates a ticker symbol, stripping a
// trailing market suffix (e.g. "cpall.bk" -> "CPALL").
func Symbol(raw string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return "", &models.InvalidSymbolError{Symbol: raw, Reason: "empty symbol"}
	}

	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		s = s[:idx]
	}

	if !symbolPattern.MatchString(s) {
		return "", &models.InvalidSymbolError{Symbol: raw, Reason: "symbol must be 2-6 alphabetic characters"}
	}

	return s, nil
}

// Fundamentals validates a raw record against the field policy table.
// It fails with MissingRequiredInputError on the first absent required
// field, defaults absent optional fields to 0, and derives the book value
// per share from the P/B ratio when available.
func Fundamentals(raw *models.RawFundamentals) (*models.CanonicalFundamentals, error) {
	symbol, err := Symbol(raw.Symbol)
	if err != nil {
		return nil, err
	}

	canon := &models.CanonicalFundamentals{
		Symbol:       symbol,
		NormalizedAt: time.Now(),
	}

	for _, p := range policyTable {
		v := p.get(raw)
		if p.required {
			// Required fields must be strictly positive: price-derived
			// calculations are undefined at zero or below, and downstream
			// models (PE-Band in particular) rely on this invariant.
			if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, &models.MissingRequiredInputError{Field: p.name, Symbol: symbol}
			}
			p.set(canon, v)
			continue
		}
		if absent(v) {
			p.set(canon, 0)
			canon.DefaultedFields = append(canon.DefaultedFields, p.name)
			continue
		}
		p.set(canon, v)
	}

	if canon.PBRatio > 0 {
		canon.BookValuePerShare = canon.CurrentPrice / canon.PBRatio
	}

	return canon, nil
}

// absent reports whether a numeric field should be treated as missing:
// zero, NaN and infinities all count.
func absent(v float64) bool {
	return v == 0 || math.IsNaN(v) || math.IsInf(v, 0)
}
