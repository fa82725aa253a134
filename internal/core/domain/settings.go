package domain

import (
	"math"
	"strings"

	"go.trai.ch/zerr"
)

// Sort selects the axis records are grouped by.
type Sort uint8

const (
	// SortRetentionTime groups ions into one mass spectrum per retention time.
	SortRetentionTime Sort = iota
	// SortMassToCharge groups ions into one extracted ion chromatogram per rounded mass-to-charge.
	SortMassToCharge
)

func (s Sort) String() string {
	switch s {
	case SortRetentionTime:
		return "retention_time"
	case SortMassToCharge:
		return "mass_to_charge"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Sort) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Sort) UnmarshalText(text []byte) error {
	switch normalizeName(string(text)) {
	case "retentiontime", "rt":
		*s = SortRetentionTime
	case "masstocharge", "mz":
		*s = SortMassToCharge
	default:
		return InvalidSetting("sort", string(text))
	}
	return nil
}

// BarSort selects how the ions of one spectrum are ordered before stacking.
type BarSort uint8

const (
	// BarSortMassToCharge orders bars by ascending mass-to-charge.
	BarSortMassToCharge BarSort = iota
	// BarSortSignal orders bars by ascending signal.
	BarSortSignal
)

func (b BarSort) String() string {
	switch b {
	case BarSortMassToCharge:
		return "mass_to_charge"
	case BarSortSignal:
		return "signal"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (b BarSort) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *BarSort) UnmarshalText(text []byte) error {
	switch normalizeName(string(text)) {
	case "masstocharge", "mz":
		*b = BarSortMassToCharge
	case "signal":
		*b = BarSortSignal
	default:
		return InvalidSetting("bar_sort", string(text))
	}
	return nil
}

// TimeUnits is the unit retention times are displayed in.
type TimeUnits uint8

const (
	// Second is the default display unit.
	Second TimeUnits = iota
	// Millisecond displays raw retention times.
	Millisecond
	// Minute displays retention times in minutes.
	Minute
)

func (u TimeUnits) String() string {
	switch u {
	case Millisecond:
		return "ms"
	case Second:
		return "s"
	case Minute:
		return "min"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (u TimeUnits) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *TimeUnits) UnmarshalText(text []byte) error {
	switch normalizeName(string(text)) {
	case "ms", "millisecond", "milliseconds":
		*u = Millisecond
	case "s", "second", "seconds":
		*u = Second
	case "min", "minute", "minutes":
		*u = Minute
	default:
		return InvalidSetting("units", string(text))
	}
	return nil
}

// FromMinutes converts a retention time in minutes to u.
func (u TimeUnits) FromMinutes(minutes float64) float64 {
	switch u {
	case Millisecond:
		return minutes * MillisecondsPerMinute
	case Second:
		return minutes * 60
	default:
		return minutes
	}
}

// MillisecondsPerMinute converts raw retention times to minutes.
const MillisecondsPerMinute = 60_000.0

// PlotSettings configures the plot projection.
type PlotSettings struct {
	BarSort  BarSort
	BarWidth float64
	// Legend only affects rendering.
	Legend bool
	Stack  bool
}

// DisplaySettings only affect how values are formatted for humans.
// None of them participate in a cache key.
type DisplaySettings struct {
	RetentionTimeUnits     TimeUnits
	RetentionTimePrecision int
	MassToChargePrecision  int
	SignalPrecision        int
}

// Settings is an immutable snapshot of everything that shapes the derived
// table and the plot.
type Settings struct {
	Sort            Sort
	Explode         bool
	FilterNull      bool
	NormalizeSignal bool
	// PeakMin and PeakMax select the peak filter policy. Only index 0 is
	// operational; index 1 toggles the label in the settings form.
	PeakMin [2]bool
	PeakMax [2]bool
	// WindowSize is the length of the centered rolling window.
	WindowSize int
	// MinPeriods is the number of non-null values a window needs before it
	// produces a result.
	MinPeriods int
	Plot       PlotSettings
	Display    DisplaySettings
}

// DefaultSettings returns the settings a fresh session starts with.
func DefaultSettings() Settings {
	return Settings{
		Sort:       SortRetentionTime,
		WindowSize: 3,
		MinPeriods: 1,
		Plot: PlotSettings{
			BarSort:  BarSortMassToCharge,
			BarWidth: 0.05,
			Legend:   true,
		},
		Display: DisplaySettings{
			RetentionTimeUnits:     Second,
			RetentionTimePrecision: 2,
			MassToChargePrecision:  1,
			SignalPrecision:        2,
		},
	}
}

// MaxPrecision bounds every display precision.
const MaxPrecision = 16

// Validate reports the first inconsistency in s.
func (s Settings) Validate() error {
	if s.MinPeriods < 1 {
		return InvalidSetting("min_periods", s.MinPeriods)
	}
	if s.WindowSize < s.MinPeriods {
		return zerr.With(InvalidSetting("window_size", s.WindowSize), "min_periods", s.MinPeriods)
	}
	if math.IsNaN(s.Plot.BarWidth) || math.IsInf(s.Plot.BarWidth, 0) || s.Plot.BarWidth < 0 {
		return InvalidSetting("bar_width", s.Plot.BarWidth)
	}
	precisions := []struct {
		name  string
		value int
	}{
		{"retention_time_precision", s.Display.RetentionTimePrecision},
		{"mass_to_charge_precision", s.Display.MassToChargePrecision},
		{"signal_precision", s.Display.SignalPrecision},
	}
	for _, p := range precisions {
		if p.value < 0 || p.value > MaxPrecision {
			return InvalidSetting(p.name, p.value)
		}
	}
	return nil
}

func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(s)
}
