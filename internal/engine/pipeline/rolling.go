package pipeline

import (
	"math"

	"go.trai.ch/chroma/internal/core/domain"
)

// moments keeps the running mean and sum of squared deviations of a window.
// Values can be removed again, so a sliding window costs O(1) per step.
type moments struct {
	n    int
	mean float64
	m2   float64
}

func (m *moments) add(v float64) {
	m.n++
	d := v - m.mean
	m.mean += d / float64(m.n)
	m.m2 += d * (v - m.mean)
}

func (m *moments) remove(v float64) {
	if m.n <= 1 {
		*m = moments{}
		return
	}
	d := v - m.mean
	m.mean -= d / float64(m.n-1)
	m.n--
	m.m2 -= d * (v - m.mean)
	if m.m2 < 0 {
		m.m2 = 0
	}
}

// cancellation is the fraction of m2 below which a removal is considered to
// have wiped out the significant digits of the running state.
const cancellation = 1e-4

// rebuild recomputes the moments of the valid values in window.
func rebuild(window []domain.Optional[float64]) moments {
	var m moments
	for _, v := range window {
		if v.Valid {
			m.add(v.Value)
		}
	}
	return m
}

// std is the sample standard deviation.
func (m *moments) std() domain.Optional[float64] {
	if m.n < 2 {
		return domain.None[float64]()
	}
	return finite(math.Sqrt(m.m2 / float64(m.n-1)))
}

// window is a centered fixed-size window. Row i covers
// [i-size/2, i+(size+1)/2) clipped to the series.
type window struct {
	size       int
	minPeriods int
}

func (w window) bounds(i, n int) (lo, hi int) {
	return max(i-w.size/2, 0), min(i+(w.size+1)/2, n)
}

// roll computes the centered rolling mean and, when withStd is set, the
// rolling sample standard deviation of values. A result is null unless the
// window holds at least minPeriods valid values.
//
// Removing a value from the running moments leaves its rounding error behind.
// The moments are rebuilt from the live window after every size removals, and
// immediately when a removal cancels most of m2, as happens when a peak leaves
// the window. Error therefore never outlives one window.
func (w window) roll(values []domain.Optional[float64], withStd bool) (means, stds []domain.Optional[float64]) {
	n := len(values)
	means = make([]domain.Optional[float64], n)
	if withStd {
		stds = make([]domain.Optional[float64], n)
	}

	var (
		m       moments
		lo, hi  int
		removed int
	)
	for i := range n {
		nextLo, nextHi := w.bounds(i, n)
		for ; hi < nextHi; hi++ {
			if v := values[hi]; v.Valid {
				m.add(v.Value)
			}
		}
		for ; lo < nextLo; lo++ {
			v := values[lo]
			if !v.Valid {
				continue
			}
			before := m.m2
			m.remove(v.Value)
			removed++
			if removed >= w.size || (before > 0 && m.m2 <= before*cancellation) {
				m = rebuild(values[lo+1 : hi])
				removed = 0
			}
		}
		if m.n == 0 || m.n < w.minPeriods {
			continue
		}
		means[i] = finite(m.mean)
		if withStd {
			stds[i] = m.std()
		}
	}
	return means, stds
}

// applyRolling fills the rolling statistics of rows. x is the grouping key and
// y the summed signal; rows without a summary contribute a null y.
func applyRolling(rows []domain.DerivedRow, w window) {
	n := len(rows)
	xs := make([]domain.Optional[float64], n)
	ys := make([]domain.Optional[float64], n)
	xys := make([]domain.Optional[float64], n)
	for i, row := range rows {
		xs[i] = row.Key
		ys[i] = row.SignalSum()
		xys[i] = mul(xs[i], ys[i])
	}

	meanX, stdX := w.roll(xs, true)
	meanY, stdY := w.roll(ys, true)
	meanXY, _ := w.roll(xys, false)

	for i := range rows {
		cov := sub(meanXY[i], mul(meanX[i], meanY[i]))
		corr := div(cov, mul(stdX[i], stdY[i]))
		slope := mul(corr, div(stdY[i], stdX[i]))
		rows[i].Rolling = domain.Rolling{
			MeanX:       meanX[i],
			MeanY:       meanY[i],
			MeanXY:      meanXY[i],
			StdX:        stdX[i],
			StdY:        stdY[i],
			Covariance:  cov,
			Correlation: corr,
			Slope:       slope,
			Intercept:   sub(meanY[i], mul(slope, meanX[i])),
		}
	}
}
