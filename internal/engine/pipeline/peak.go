package pipeline

import (
	"slices"

	"go.trai.ch/chroma/internal/core/domain"
)

// isPeak reports whether series[i] compares strictly with both neighbours
// according to beats. Boundary rows and rows next to a null are never peaks.
func isPeak(series []domain.Optional[float64], i int, beats func(a, b float64) bool) bool {
	if i <= 0 || i >= len(series)-1 {
		return false
	}
	prev, cur, next := series[i-1], series[i], series[i+1]
	if !prev.Valid || !cur.Valid || !next.Valid {
		return false
	}
	return beats(cur.Value, prev.Value) && beats(cur.Value, next.Value)
}

func isLocalMax(series []domain.Optional[float64], i int) bool {
	return isPeak(series, i, func(a, b float64) bool { return a > b })
}

func isLocalMin(series []domain.Optional[float64], i int) bool {
	return isPeak(series, i, func(a, b float64) bool { return a < b })
}

// median of the valid values; the mean of the two middle values for an even
// count.
func median(series []domain.Optional[float64]) domain.Optional[float64] {
	values := make([]float64, 0, len(series))
	for _, v := range series {
		if v.Valid {
			values = append(values, v.Value)
		}
	}
	if len(values) == 0 {
		return domain.None[float64]()
	}
	slices.Sort(values)
	mid := len(values) / 2
	if len(values)%2 == 1 {
		return domain.Some(values[mid])
	}
	return domain.Some((values[mid-1] + values[mid]) / 2)
}

func mean(series []domain.Optional[float64]) domain.Optional[float64] {
	var (
		sum float64
		n   int
	)
	for _, v := range series {
		if v.Valid {
			sum += v.Value
			n++
		}
	}
	if n == 0 {
		return domain.None[float64]()
	}
	return finite(sum / float64(n))
}

// peakMask evaluates the peak policy over series:
//
//	min  max
//	no   yes  local maximum above the median
//	yes  no   local minimum
//	yes  yes  local maximum or local minimum
//	no   no   every row
func peakMask(series []domain.Optional[float64], peakMin, peakMax bool) []bool {
	mask := make([]bool, len(series))
	switch {
	case !peakMin && peakMax:
		m := median(series)
		for i := range series {
			mask[i] = isLocalMax(series, i) && m.Valid && series[i].Value > m.Value
		}
	case peakMin && !peakMax:
		for i := range series {
			mask[i] = isLocalMin(series, i)
		}
	case peakMin && peakMax:
		for i := range series {
			mask[i] = isLocalMax(series, i) || isLocalMin(series, i)
		}
	default:
		for i := range mask {
			mask[i] = true
		}
	}
	return mask
}

// applyPeakFilter tags every row with its inclusion flag. Rows are never
// dropped.
func applyPeakFilter(rows []domain.DerivedRow, peakMin, peakMax bool) {
	series := make([]domain.Optional[float64], len(rows))
	for i, row := range rows {
		series[i] = row.SignalSum()
	}
	for i, keep := range peakMask(series, peakMin, peakMax) {
		rows[i].Filter = keep
	}
}
