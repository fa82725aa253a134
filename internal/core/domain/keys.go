package domain

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// KeyVersion is bumped whenever the output of a stage changes for the same
// inputs, so that persisted or long-lived memo entries stop matching.
const KeyVersion = 1

// TableKey identifies one computation of the derived table.
//
// It lists exactly the settings that influence the table stage. Construct it
// with NewTableKey only.
type TableKey struct {
	Version         int
	InputHash       uint64
	Sort            Sort
	Explode         bool
	FilterNull      bool
	NormalizeSignal bool
	PeakMin         bool
	PeakMax         bool
	WindowSize      int
	MinPeriods      int
}

// NewTableKey builds the key of the table stage. The second peak selectors are
// labels only and do not take part.
func NewTableKey(raw RawTable, s Settings) TableKey {
	return TableKey{
		Version:         KeyVersion,
		InputHash:       raw.Hash(),
		Sort:            s.Sort,
		Explode:         s.Explode,
		FilterNull:      s.FilterNull,
		NormalizeSignal: s.NormalizeSignal,
		PeakMin:         s.PeakMin[0],
		PeakMax:         s.PeakMax[0],
		WindowSize:      s.WindowSize,
		MinPeriods:      s.MinPeriods,
	}
}

// String returns a stable hex digest of the key.
func (k TableKey) String() string {
	var e keyEncoder
	e.uint64(uint64(k.Version))
	e.uint64(k.InputHash)
	e.uint64(uint64(k.Sort))
	e.bool(k.Explode)
	e.bool(k.FilterNull)
	e.bool(k.NormalizeSignal)
	e.bool(k.PeakMin)
	e.bool(k.PeakMax)
	e.uint64(uint64(k.WindowSize))
	e.uint64(uint64(k.MinPeriods))
	return "table-" + e.sum()
}

// PlotKey identifies one computation of the plot value. It is seeded with the
// hash of the derived table, never the raw input.
type PlotKey struct {
	Version     int
	DerivedHash uint64
	Sort        Sort
	BarSort     BarSort
	// BarWidth is stored as its bit pattern so that the key stays comparable
	// even for NaN.
	BarWidth uint64
	Stack    bool
}

// NewPlotKey builds the key of the plot stage. Legend only affects rendering
// and does not take part.
func NewPlotKey(derived DerivedTable, s Settings) PlotKey {
	width := s.Plot.BarWidth
	if width == 0 {
		// Fold -0 onto +0.
		width = 0
	}
	return PlotKey{
		Version:     KeyVersion,
		DerivedHash: derived.Hash(),
		Sort:        s.Sort,
		BarSort:     s.Plot.BarSort,
		BarWidth:    math.Float64bits(width),
		Stack:       s.Plot.Stack,
	}
}

// String returns a stable hex digest of the key.
func (k PlotKey) String() string {
	var e keyEncoder
	e.uint64(uint64(k.Version))
	e.uint64(k.DerivedHash)
	e.uint64(uint64(k.Sort))
	e.uint64(uint64(k.BarSort))
	e.uint64(k.BarWidth)
	e.bool(k.Stack)
	return "plot-" + e.sum()
}

type keyEncoder struct {
	buf []byte
}

func (e *keyEncoder) uint64(v uint64) {
	e.buf = binary.LittleEndian.AppendUint64(e.buf, v)
}

func (e *keyEncoder) bool(v bool) {
	if v {
		e.buf = append(e.buf, 1)
		return
	}
	e.buf = append(e.buf, 0)
}

func (e *keyEncoder) sum() string {
	return strconv.FormatUint(xxhash.Sum64(e.buf), 16)
}
