package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/chroma/internal/core/domain"
)

type override = func(*domain.Settings)

// addSettingsFlags registers the flags that override the settings file.
func addSettingsFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("sort", "", "Group by retention time (rt) or mass-to-charge (mz)")
	f.Bool("explode", false, "Keep one row per ion instead of summarizing each group")
	f.Bool("filter-null", false, "Drop ions with a null mass-to-charge or signal")
	f.Bool("normalize", false, "Scale every signal by the largest one")
	f.Bool("peak-min", false, "Keep rows whose signal sum is at or above the rolling mean minus one std")
	f.Bool("peak-max", false, "Keep rows whose signal sum is at or below the rolling mean plus one std")
	f.Int("window", 0, "Rolling window size")
	f.Int("min-periods", 0, "Values a window needs before it produces a result")
	f.String("bar-sort", "", "Order stacked bars by mass-to-charge (mz) or signal")
	f.Float64("bar-width", 0, "Plot bar width")
	f.Bool("stack", false, "Stack bars and add the mean and median lines")
	f.Bool("legend", false, "Show the bar legend")
	f.String("units", "", "Display retention times in ms, s or min")
}

// settingsOverrides turns every flag the user set into an override.
//
//nolint:cyclop,funlen // one branch per flag
func settingsOverrides(cmd *cobra.Command) ([]override, error) {
	f := cmd.Flags()
	var overrides []override

	if f.Changed("sort") {
		v, _ := f.GetString("sort")
		var sort domain.Sort
		if err := sort.UnmarshalText([]byte(v)); err != nil {
			return nil, err
		}
		overrides = append(overrides, func(s *domain.Settings) { s.Sort = sort })
	}
	if f.Changed("explode") {
		v, _ := f.GetBool("explode")
		overrides = append(overrides, func(s *domain.Settings) { s.Explode = v })
	}
	if f.Changed("filter-null") {
		v, _ := f.GetBool("filter-null")
		overrides = append(overrides, func(s *domain.Settings) { s.FilterNull = v })
	}
	if f.Changed("normalize") {
		v, _ := f.GetBool("normalize")
		overrides = append(overrides, func(s *domain.Settings) { s.NormalizeSignal = v })
	}
	if f.Changed("peak-min") {
		v, _ := f.GetBool("peak-min")
		overrides = append(overrides, func(s *domain.Settings) { s.PeakMin[0] = v })
	}
	if f.Changed("peak-max") {
		v, _ := f.GetBool("peak-max")
		overrides = append(overrides, func(s *domain.Settings) { s.PeakMax[0] = v })
	}
	if f.Changed("window") {
		v, _ := f.GetInt("window")
		overrides = append(overrides, func(s *domain.Settings) { s.WindowSize = v })
	}
	if f.Changed("min-periods") {
		v, _ := f.GetInt("min-periods")
		overrides = append(overrides, func(s *domain.Settings) { s.MinPeriods = v })
	}
	if f.Changed("bar-sort") {
		v, _ := f.GetString("bar-sort")
		var barSort domain.BarSort
		if err := barSort.UnmarshalText([]byte(v)); err != nil {
			return nil, err
		}
		overrides = append(overrides, func(s *domain.Settings) { s.Plot.BarSort = barSort })
	}
	if f.Changed("bar-width") {
		v, _ := f.GetFloat64("bar-width")
		overrides = append(overrides, func(s *domain.Settings) { s.Plot.BarWidth = v })
	}
	if f.Changed("stack") {
		v, _ := f.GetBool("stack")
		overrides = append(overrides, func(s *domain.Settings) { s.Plot.Stack = v })
	}
	if f.Changed("legend") {
		v, _ := f.GetBool("legend")
		overrides = append(overrides, func(s *domain.Settings) { s.Plot.Legend = v })
	}
	if f.Changed("units") {
		v, _ := f.GetString("units")
		var units domain.TimeUnits
		if err := units.UnmarshalText([]byte(v)); err != nil {
			return nil, err
		}
		overrides = append(overrides, func(s *domain.Settings) { s.Display.RetentionTimeUnits = units })
	}
	return overrides, nil
}
