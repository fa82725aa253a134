package domain

import (
	"slices"

	"github.com/cespare/xxhash/v2"
)

// SpectrumPoint is one ion of a grouped mass spectrum. Signal is widened to
// float64 so that normalized values fit.
type SpectrumPoint struct {
	MassToCharge Optional[float32] `json:"mass_to_charge"`
	Signal       Optional[float64] `json:"signal"`
}

// ChromatogramPoint is one sample of an extracted ion chromatogram.
// RetentionTime is in milliseconds, as recorded.
type ChromatogramPoint struct {
	RetentionTime float64           `json:"retention_time"`
	Signal        Optional[float64] `json:"signal"`
}

// Range is the minimum and maximum of a column, absent when the column has no
// valid values.
type Range struct {
	Min Optional[float64] `json:"min"`
	Max Optional[float64] `json:"max"`
}

// Summary aggregates one group.
type Summary struct {
	// Count is the number of entries in the group, nulls included.
	Count int `json:"count"`
	// Complement is the range of the field the group is not keyed by:
	// mass-to-charge when sorted by retention time, retention time otherwise.
	Complement Range   `json:"complement"`
	Signal     Range   `json:"signal"`
	SignalSum  float64 `json:"signal_sum"`
}

// Rolling holds the centered rolling statistics of a row. x is the grouping key
// and y is the summed signal.
type Rolling struct {
	MeanX       Optional[float64] `json:"mean_x"`
	MeanY       Optional[float64] `json:"mean_y"`
	MeanXY      Optional[float64] `json:"mean_xy"`
	StdX        Optional[float64] `json:"std_x"`
	StdY        Optional[float64] `json:"std_y"`
	Covariance  Optional[float64] `json:"covariance"`
	Correlation Optional[float64] `json:"correlation"`
	Slope       Optional[float64] `json:"slope"`
	Intercept   Optional[float64] `json:"intercept"`
}

// DerivedRow is one group of the derived table.
//
// Exactly one of MassSpectrum and Chromatogram is populated, depending on the
// sort the table was computed with. Key is the retention time in minutes or the
// mass-to-charge rounded to two decimals.
type DerivedRow struct {
	Key          Optional[float64]   `json:"key"`
	MassSpectrum []SpectrumPoint     `json:"mass_spectrum,omitempty"`
	Chromatogram []ChromatogramPoint `json:"chromatogram,omitempty"`
	Summary      Optional[Summary]   `json:"summary"`
	Rolling      Rolling             `json:"rolling"`
	Filter       bool                `json:"filter"`
}

// DerivedTable is the hashed output of the table stage.
type DerivedTable = HashedTable[DerivedRow]

// NewDerivedTable hashes the given rows.
func NewDerivedTable(rows []DerivedRow) DerivedTable {
	return NewHashedTable(rows)
}

// SignalSum returns the summed signal, absent when the row carries no summary.
func (r DerivedRow) SignalSum() Optional[float64] {
	if !r.Summary.Valid {
		return None[float64]()
	}
	return Some(r.Summary.Value.SignalSum)
}

func (r DerivedRow) writeHash(d *xxhash.Digest, w *hashWriter) {
	w.putOptionalFloat64(d, r.Key)

	w.putUint64(d, uint64(len(r.MassSpectrum)))
	for _, p := range r.MassSpectrum {
		w.putOptionalFloat32(d, p.MassToCharge)
		w.putOptionalFloat64(d, p.Signal)
	}
	w.putUint64(d, uint64(len(r.Chromatogram)))
	for _, p := range r.Chromatogram {
		w.putFloat64(d, p.RetentionTime)
		w.putOptionalFloat64(d, p.Signal)
	}

	w.putBool(d, r.Summary.Valid)
	if s := r.Summary.Value; r.Summary.Valid {
		w.putUint64(d, uint64(s.Count))
		w.putOptionalFloat64(d, s.Complement.Min)
		w.putOptionalFloat64(d, s.Complement.Max)
		w.putOptionalFloat64(d, s.Signal.Min)
		w.putOptionalFloat64(d, s.Signal.Max)
		w.putFloat64(d, s.SignalSum)
	}

	for _, v := range []Optional[float64]{
		r.Rolling.MeanX, r.Rolling.MeanY, r.Rolling.MeanXY,
		r.Rolling.StdX, r.Rolling.StdY,
		r.Rolling.Covariance, r.Rolling.Correlation,
		r.Rolling.Slope, r.Rolling.Intercept,
	} {
		w.putOptionalFloat64(d, v)
	}
	w.putBool(d, r.Filter)
}

func (r DerivedRow) clone() DerivedRow {
	r.MassSpectrum = slices.Clone(r.MassSpectrum)
	r.Chromatogram = slices.Clone(r.Chromatogram)
	return r
}
