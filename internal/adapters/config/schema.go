package config

// Settingsfile represents the structure of the chroma.yaml settings file.
// Absent fields keep their default value.
type Settingsfile struct {
	Sort            *string    `yaml:"sort"`
	Explode         *bool      `yaml:"explode"`
	FilterNull      *bool      `yaml:"filter_null"`
	NormalizeSignal *bool      `yaml:"normalize_signal"`
	Peak            PeakDTO    `yaml:"peak"`
	Rolling         RollingDTO `yaml:"rolling"`
	Plot            PlotDTO    `yaml:"plot"`
	Display         DisplayDTO `yaml:"display"`
}

// PeakDTO selects the peak filter policy. The second element of each pair
// only toggles the label in the settings form.
type PeakDTO struct {
	Min []bool `yaml:"min"`
	Max []bool `yaml:"max"`
}

// RollingDTO configures the rolling window.
type RollingDTO struct {
	WindowSize *int `yaml:"window_size"`
	MinPeriods *int `yaml:"min_periods"`
}

// PlotDTO configures the plot projection.
type PlotDTO struct {
	BarSort  *string  `yaml:"bar_sort"`
	BarWidth *float64 `yaml:"bar_width"`
	Stack    *bool    `yaml:"stack"`
	Legend   *bool    `yaml:"legend"`
}

// DisplayDTO configures number formatting.
type DisplayDTO struct {
	RetentionTimeUnits     *string `yaml:"retention_time_units"`
	RetentionTimePrecision *int    `yaml:"retention_time_precision"`
	MassToChargePrecision  *int    `yaml:"mass_to_charge_precision"`
	SignalPrecision        *int    `yaml:"signal_precision"`
}
