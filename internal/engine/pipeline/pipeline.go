// Package pipeline derives the grouped table and the plot value from raw
// chromatography records.
//
// Both entry points are pure: equal inputs produce equal outputs, and neither
// mutates its arguments. Stages run in a fixed order: null filter, normalize,
// group, summarize, roll, peak filter, project.
package pipeline

import (
	"go.trai.ch/chroma/internal/core/domain"
)

// ComputeTable aggregates raw records into the derived table and annotates it
// with rolling statistics and the peak filter.
func ComputeTable(raw domain.RawTable, s domain.Settings) (domain.DerivedTable, error) {
	if s.MinPeriods < 1 {
		return domain.DerivedTable{}, domain.InvalidSetting("min_periods", s.MinPeriods)
	}
	if s.WindowSize < s.MinPeriods {
		return domain.DerivedTable{}, domain.InvalidSetting("window_size", s.WindowSize)
	}

	rows := aggregate(raw, s)
	applyRolling(rows, window{size: s.WindowSize, minPeriods: s.MinPeriods})
	applyPeakFilter(rows, s.PeakMin[0], s.PeakMax[0])
	return domain.NewDerivedTable(rows), nil
}

// ComputePlot projects a derived table into a plot value.
func ComputePlot(derived domain.DerivedTable, s domain.Settings) (domain.PlotValue, error) {
	return project(derived, s)
}
