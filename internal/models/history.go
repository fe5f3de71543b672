package models

// RatioPeriod holds the valuation and profitability ratios for one
// reporting period.
type RatioPeriod struct {
	FiscalYear int     `json:"fiscal_year"`
	PE         float64 `json:"pe"`
	PBV        float64 `json:"pbv"`
	ROE        float64 `json:"roe"`
	ROA        float64 `json:"roa"`
	ROIC       float64 `json:"roic"`
}

// HistoricalSeries is an ordered sequence of periodic ratio records.
// Index 0 is the most recent period; the caller guarantees
// reverse-chronological order and the engine never re-sorts by date.
type HistoricalSeries []RatioPeriod

// PEs extracts the PE column, preserving order.
func (s HistoricalSeries) PEs() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.PE
	}
	return out
}

// PBVs extracts the PBV column, preserving order.
func (s HistoricalSeries) PBVs() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.PBV
	}
	return out
}

// ROEs extracts the ROE column, preserving order.
func (s HistoricalSeries) ROEs() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.ROE
	}
	return out
}

// ROAs extracts the ROA column, preserving order.
func (s HistoricalSeries) ROAs() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.ROA
	}
	return out
}

// ROICs extracts the ROIC column, preserving order.
func (s HistoricalSeries) ROICs() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.ROIC
	}
	return out
}
