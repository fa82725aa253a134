package pipeline

import (
	"cmp"
	"math"
	"slices"

	"go.trai.ch/chroma/internal/core/domain"
)

// ion is one flattened (retention time, mass-to-charge, signal) observation.
type ion struct {
	retentionTime float64
	massToCharge  domain.Optional[float32]
	signal        domain.Optional[float64]
}

// explode flattens records into one row per ion. A record with an empty
// spectrum still yields a single row with null mass-to-charge and signal.
func explode(raw domain.RawTable) []ion {
	ions := make([]ion, 0, raw.Len())
	for _, record := range raw.All() {
		if len(record.MassSpectrum) == 0 {
			ions = append(ions, ion{retentionTime: record.RetentionTime})
			continue
		}
		for _, i := range record.MassSpectrum {
			ions = append(ions, ion{
				retentionTime: record.RetentionTime,
				massToCharge:  i.MassToCharge,
				signal:        domain.Optional[float64]{Value: float64(i.Signal.Value), Valid: i.Signal.Valid},
			})
		}
	}
	return ions
}

func dropNulls(ions []ion) []ion {
	return slices.DeleteFunc(ions, func(i ion) bool {
		return !i.massToCharge.Valid || !i.signal.Valid
	})
}

// normalize divides every signal by the global maximum. When the maximum is
// zero or there is no valid signal at all, every signal becomes null.
func normalize(ions []ion) {
	peak := domain.None[float64]()
	for _, i := range ions {
		if i.signal.Valid && (!peak.Valid || i.signal.Value > peak.Value) {
			peak = domain.Some(i.signal.Value)
		}
	}
	for k := range ions {
		if !ions[k].signal.Valid {
			continue
		}
		ions[k].signal = div(ions[k].signal, peak)
	}
}

// aggregate runs the null filter, normalization, grouping and summaries.
func aggregate(raw domain.RawTable, s domain.Settings) []domain.DerivedRow {
	ions := explode(raw)
	if s.FilterNull {
		ions = dropNulls(ions)
	}
	if s.NormalizeSignal {
		normalize(ions)
	}
	switch s.Sort {
	case domain.SortMassToCharge:
		return groupByMassToCharge(ions, !s.Explode)
	default:
		return groupByRetentionTime(ions, !s.Explode)
	}
}

// groupByRetentionTime builds one mass spectrum per distinct retention time.
// Ions inside a spectrum are ordered by mass-to-charge; the key is converted
// from milliseconds to minutes.
func groupByRetentionTime(ions []ion, summarize bool) []domain.DerivedRow {
	slices.SortStableFunc(ions, func(a, b ion) int {
		return compareOptional(a.massToCharge, b.massToCharge)
	})

	type group struct {
		retentionTime float64
		spectrum      []domain.SpectrumPoint
	}
	var groups []*group
	index := make(map[uint64]*group)
	for _, i := range ions {
		k := floatKey(i.retentionTime)
		g, ok := index[k]
		if !ok {
			g = &group{retentionTime: i.retentionTime}
			index[k] = g
			groups = append(groups, g)
		}
		g.spectrum = append(g.spectrum, domain.SpectrumPoint{
			MassToCharge: i.massToCharge,
			Signal:       i.signal,
		})
	}
	slices.SortStableFunc(groups, func(a, b *group) int {
		return cmp.Compare(a.retentionTime, b.retentionTime)
	})

	rows := make([]domain.DerivedRow, len(groups))
	for k, g := range groups {
		rows[k] = domain.DerivedRow{
			Key:          domain.Some(g.retentionTime / domain.MillisecondsPerMinute),
			MassSpectrum: g.spectrum,
		}
		if summarize {
			rows[k].Summary = domain.Some(summarizeSpectrum(g.spectrum))
		}
	}
	return rows
}

// groupByMassToCharge builds one extracted ion chromatogram per mass-to-charge
// rounded to two decimals. Samples are ordered by retention time and ions
// without a mass-to-charge share a single null group.
func groupByMassToCharge(ions []ion, summarize bool) []domain.DerivedRow {
	slices.SortStableFunc(ions, func(a, b ion) int {
		return cmp.Compare(a.retentionTime, b.retentionTime)
	})

	type group struct {
		key          domain.Optional[float64]
		chromatogram []domain.ChromatogramPoint
	}
	var (
		groups []*group
		null   *group
	)
	index := make(map[uint64]*group)
	for _, i := range ions {
		var g *group
		if !i.massToCharge.Valid {
			if null == nil {
				null = &group{}
				groups = append(groups, null)
			}
			g = null
		} else {
			key := roundHalfEven(float64(i.massToCharge.Value), 2)
			k := floatKey(key)
			var ok bool
			if g, ok = index[k]; !ok {
				g = &group{key: domain.Some(key)}
				index[k] = g
				groups = append(groups, g)
			}
		}
		g.chromatogram = append(g.chromatogram, domain.ChromatogramPoint{
			RetentionTime: i.retentionTime,
			Signal:        i.signal,
		})
	}
	slices.SortStableFunc(groups, func(a, b *group) int {
		return compareOptional(a.key, b.key)
	})

	rows := make([]domain.DerivedRow, len(groups))
	for k, g := range groups {
		rows[k] = domain.DerivedRow{
			Key:          g.key,
			Chromatogram: g.chromatogram,
		}
		if summarize {
			rows[k].Summary = domain.Some(summarizeChromatogram(g.chromatogram))
		}
	}
	return rows
}

func summarizeSpectrum(points []domain.SpectrumPoint) domain.Summary {
	var mz, signal accumulator
	for _, p := range points {
		if p.MassToCharge.Valid {
			mz.add(float64(p.MassToCharge.Value))
		}
		if p.Signal.Valid {
			signal.add(p.Signal.Value)
		}
	}
	return domain.Summary{
		Count:      len(points),
		Complement: mz.span(),
		Signal:     signal.span(),
		SignalSum:  signal.sum,
	}
}

func summarizeChromatogram(points []domain.ChromatogramPoint) domain.Summary {
	var rt, signal accumulator
	for _, p := range points {
		rt.add(p.RetentionTime)
		if p.Signal.Valid {
			signal.add(p.Signal.Value)
		}
	}
	return domain.Summary{
		Count:      len(points),
		Complement: rt.span(),
		Signal:     signal.span(),
		SignalSum:  signal.sum,
	}
}

// accumulator tracks min, max and sum of the valid values of a column.
type accumulator struct {
	min, max domain.Optional[float64]
	sum      float64
}

func (a *accumulator) add(v float64) {
	if !a.min.Valid || v < a.min.Value {
		a.min = domain.Some(v)
	}
	if !a.max.Valid || v > a.max.Value {
		a.max = domain.Some(v)
	}
	a.sum += v
}

func (a *accumulator) span() domain.Range {
	return domain.Range{Min: a.min, Max: a.max}
}

// roundHalfEven rounds v to the given number of decimals, ties to even.
func roundHalfEven(v float64, decimals int) float64 {
	scale := math.Pow10(decimals)
	return math.RoundToEven(v*scale) / scale
}

// floatKey maps equal floats onto equal map keys: -0 joins +0 and every NaN
// joins a single NaN.
func floatKey(v float64) uint64 {
	switch {
	case v == 0:
		return 0
	case math.IsNaN(v):
		return math.Float64bits(math.NaN())
	default:
		return math.Float64bits(v)
	}
}

// compareOptional orders nulls first, then values ascending.
func compareOptional[T cmp.Ordered](a, b domain.Optional[T]) int {
	switch {
	case !a.Valid && !b.Valid:
		return 0
	case !a.Valid:
		return -1
	case !b.Valid:
		return 1
	default:
		return cmp.Compare(a.Value, b.Value)
	}
}
