package domain

// Bar is one rectangle of the bar chart.
type Bar struct {
	// Name labels the bar with its mass-to-charge.
	Name   string  `json:"name"`
	X      float64 `json:"x"`
	Height float64 `json:"height"`
	Width  float64 `json:"width"`
	// Base is the vertical offset the bar starts at; zero unless stacking.
	Base float64 `json:"base"`
}

// BarGroup collects the bars of one mass-to-charge across retention times.
type BarGroup struct {
	MassToCharge float32 `json:"mass_to_charge"`
	Bars         []Bar   `json:"bars"`
}

// MassSpectrum is the list of ions plotted at one retention time.
type MassSpectrum struct {
	RetentionTime float64 `json:"retention_time"`
	Points        []Point `json:"points"`
}

// Point is a plain (x, y) pair.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PlotValue is the render-ready output of the plot stage. Groups keep the order
// their keys were first seen in.
type PlotValue struct {
	Bars        []BarGroup        `json:"bars"`
	MassSpectra []MassSpectrum    `json:"mass_spectra"`
	Mean        Optional[float64] `json:"mean"`
	Median      Optional[float64] `json:"median"`
	RollingMean []Point           `json:"rolling_mean"`
}
