package pipeline

import (
	"math"
	"slices"
	"strconv"

	"go.trai.ch/chroma/internal/core/domain"
	"go.trai.ch/zerr"
)

// project builds the plot value of a derived table.
func project(derived domain.DerivedTable, s domain.Settings) (domain.PlotValue, error) {
	switch s.Sort {
	case domain.SortRetentionTime:
		return projectByRetentionTime(derived, s.Plot)
	default:
		return domain.PlotValue{}, zerr.With(
			zerr.Wrap(domain.ErrUnsupported, "plot by mass-to-charge"),
			"sort", s.Sort.String(),
		)
	}
}

// sortSpectrum orders the ions of one spectrum before they are stacked.
func sortSpectrum(points []domain.SpectrumPoint, by domain.BarSort) {
	slices.SortStableFunc(points, func(a, b domain.SpectrumPoint) int {
		if by == domain.BarSortSignal {
			return compareOptional(a.Signal, b.Signal)
		}
		return compareOptional(a.MassToCharge, b.MassToCharge)
	})
}

func projectByRetentionTime(derived domain.DerivedTable, p domain.PlotSettings) (domain.PlotValue, error) {
	var (
		value   domain.PlotValue
		bars    = make(map[uint32]int)
		spectra = make(map[uint64]int)
		// Running stack height per retention time, scoped to this call.
		offsets = make(map[uint64]float64)
	)

	rows := derived.Rows()
	for _, row := range rows {
		if !row.Filter {
			continue
		}
		rt, ok := row.Key.Get()
		if !ok {
			return domain.PlotValue{}, domain.MissingField("retention_time")
		}
		sortSpectrum(row.MassSpectrum, p.BarSort)

		for _, point := range row.MassSpectrum {
			mz, ok := point.MassToCharge.Get()
			if !ok {
				return domain.PlotValue{}, domain.MissingField("mass_to_charge")
			}
			signal, ok := point.Signal.Get()
			if !ok {
				return domain.PlotValue{}, domain.MissingField("signal")
			}

			rtKey := floatKey(rt)
			si, ok := spectra[rtKey]
			if !ok {
				si = len(value.MassSpectra)
				spectra[rtKey] = si
				value.MassSpectra = append(value.MassSpectra, domain.MassSpectrum{RetentionTime: rt})
			}
			value.MassSpectra[si].Points = append(value.MassSpectra[si].Points, domain.Point{
				X: float64(mz),
				Y: signal,
			})

			bar := domain.Bar{
				Name:   strconv.FormatFloat(float64(mz), 'f', -1, 32),
				X:      rt,
				Height: signal,
				Width:  p.BarWidth,
			}
			if p.Stack {
				bar.Base = offsets[rtKey]
			}
			offsets[rtKey] += signal

			mzKey := float32Key(mz)
			bi, ok := bars[mzKey]
			if !ok {
				bi = len(value.Bars)
				bars[mzKey] = bi
				value.Bars = append(value.Bars, domain.BarGroup{MassToCharge: mz})
			}
			value.Bars[bi].Bars = append(value.Bars[bi].Bars, bar)
		}
	}

	if !p.Stack {
		return value, nil
	}

	sums := make([]domain.Optional[float64], len(rows))
	for i, row := range rows {
		sums[i] = row.SignalSum()
	}
	value.Mean = mean(sums)
	value.Median = median(sums)
	for _, row := range rows {
		rt, ok := row.Key.Get()
		if !ok {
			return domain.PlotValue{}, domain.MissingField("retention_time")
		}
		y, ok := row.Rolling.MeanY.Get()
		if !ok {
			continue
		}
		value.RollingMean = append(value.RollingMean, domain.Point{X: rt, Y: y})
	}
	return value, nil
}

func float32Key(v float32) uint32 {
	switch {
	case v == 0:
		return 0
	case math.IsNaN(float64(v)):
		return math.Float32bits(float32(math.NaN()))
	default:
		return math.Float32bits(v)
	}
}
