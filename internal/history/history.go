// Package history provides statistics over ordered historical ratio series.
// Series are reverse-chronological: index 0 is the most recent period.
package history

import (
	"math"
	"sort"

	"github.com/kittipos/setval/internal/models"
)

// Trend classifies the direction of a ratio over a recent window.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// ProfitTrend is the profitability-oriented label pair. Same math as
// Trend, different vocabulary.
type ProfitTrend string

const (
	ProfitImproving ProfitTrend = "improving"
	ProfitDeclining ProfitTrend = "declining"
	ProfitStable    ProfitTrend = "stable"
)

// DefaultTrendWindow is the number of recent periods compared when the
// caller does not specify a window.
const DefaultTrendWindow = 3

// stableBand is the relative change below which a series is considered
// flat (5%).
const stableBand = 0.05

// Mean returns the arithmetic mean of the series, or 0 for an empty series.
func Mean(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range series {
		sum += v
	}
	return sum / float64(len(series))
}

// MinMax returns the smallest and largest values in the series.
func MinMax(series []float64) (min, max float64) {
	if len(series) == 0 {
		return 0, 0
	}
	min, max = series[0], series[0]
	for _, v := range series[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// PercentileRank returns where value sits within the sorted series as a
// percentage of position (0 = lowest, 100 = highest). A series with fewer
// than 2 distinct entries has no defined rank and returns 50.
func PercentileRank(value float64, series []float64) float64 {
	if distinctCount(series) < 2 {
		return 50
	}

	sorted := make([]float64, len(series))
	copy(sorted, series)
	sort.Float64s(sorted)

	below := 0
	for _, v := range sorted {
		if v < value {
			below++
		}
	}

	rank := float64(below) / float64(len(sorted)-1) * 100
	if rank < 0 {
		return 0
	}
	if rank > 100 {
		return 100
	}
	return rank
}

// Classify compares the most recent value against the oldest value of the
// recent window and classifies the direction. A window larger than the
// series falls back to the oldest available point.
func Classify(series []float64, window int) Trend {
	change, ok := windowChange(series, window)
	if !ok {
		return TrendStable
	}
	if math.Abs(change) < stableBand {
		return TrendStable
	}
	if change > 0 {
		return TrendIncreasing
	}
	return TrendDecreasing
}

// ClassifyProfitability is Classify with the improving/declining label
// pair used for profitability ratios.
func ClassifyProfitability(series []float64, window int) ProfitTrend {
	switch Classify(series, window) {
	case TrendIncreasing:
		return ProfitImproving
	case TrendDecreasing:
		return ProfitDeclining
	default:
		return ProfitStable
	}
}

// Analyze summarizes one ratio column: current value, mean/min/max,
// percentile rank of the current value, and trend over the default window.
func Analyze(name string, current float64, series []float64) models.RatioStats {
	min, max := MinMax(series)
	return models.RatioStats{
		Ratio:          name,
		Current:        current,
		Mean:           Mean(series),
		Min:            min,
		Max:            max,
		PercentileRank: PercentileRank(current, series),
		Trend:          string(Classify(series, DefaultTrendWindow)),
		Periods:        len(series),
	}
}

// windowChange computes the relative change between series[0] and the
// oldest value inside the window. ok is false when the series is too
// short or the baseline is zero.
func windowChange(series []float64, window int) (change float64, ok bool) {
	if len(series) < 2 {
		return 0, false
	}
	if window < 2 {
		window = DefaultTrendWindow
	}

	idx := window - 1
	if idx >= len(series) {
		idx = len(series) - 1
	}

	baseline := series[idx]
	if baseline == 0 {
		return 0, false
	}

	return (series[0] - baseline) / math.Abs(baseline), true
}

func distinctCount(series []float64) int {
	seen := make(map[float64]struct{}, len(series))
	for _, v := range series {
		seen[v] = struct{}{}
	}
	return len(seen)
}
