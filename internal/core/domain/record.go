package domain

import (
	"slices"

	"github.com/cespare/xxhash/v2"
)

// Ion is a single mass-to-charge/signal observation inside a mass spectrum.
// Either field may be absent when the source did not record it.
type Ion struct {
	MassToCharge Optional[float32] `json:"mass_to_charge"`
	Signal       Optional[uint16]  `json:"signal"`
}

// Record is one input row: a retention time in milliseconds and the mass
// spectrum observed at that time.
type Record struct {
	RetentionTime float64 `json:"retention_time"`
	MassSpectrum  []Ion   `json:"mass_spectrum"`
}

// RawTable is the hashed table of input records.
type RawTable = HashedTable[Record]

// NewRawTable hashes the given records.
func NewRawTable(records []Record) RawTable {
	return NewHashedTable(records)
}

func (r Record) writeHash(d *xxhash.Digest, w *hashWriter) {
	w.putFloat64(d, r.RetentionTime)
	w.putUint64(d, uint64(len(r.MassSpectrum)))
	for _, ion := range r.MassSpectrum {
		w.putOptionalFloat32(d, ion.MassToCharge)
		w.putOptionalFloat64(d, Optional[float64]{Value: float64(ion.Signal.Value), Valid: ion.Signal.Valid})
	}
}

func (r Record) clone() Record {
	r.MassSpectrum = slices.Clone(r.MassSpectrum)
	return r
}
