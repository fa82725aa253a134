package report

import (
	"strconv"

	"go.trai.ch/chroma/internal/core/domain"
	"go.trai.ch/chroma/internal/ui/style"
)

// formatter applies the display settings. Retention times arrive either as
// minutes (grouping keys) or as recorded milliseconds (chromatogram samples).
type formatter struct {
	display domain.DisplaySettings
}

func number(v domain.Optional[float64], precision int) string {
	if !v.Valid {
		return null
	}
	return strconv.FormatFloat(v.Value, 'f', precision, 64)
}

func (f formatter) minutes(v domain.Optional[float64]) string {
	if !v.Valid {
		return null
	}
	return number(domain.Some(f.display.RetentionTimeUnits.FromMinutes(v.Value)), f.display.RetentionTimePrecision)
}

func (f formatter) milliseconds(v domain.Optional[float64]) string {
	if !v.Valid {
		return null
	}
	return f.minutes(domain.Some(v.Value / domain.MillisecondsPerMinute))
}

func (f formatter) massToCharge(v domain.Optional[float64]) string {
	return number(v, f.display.MassToChargePrecision)
}

func (f formatter) signal(v domain.Optional[float64]) string {
	return number(v, f.display.SignalPrecision)
}

// summaryCells renders the complement range, the signal summary, the rolling
// signal statistics and the peak flag.
func (f formatter) summaryCells(row domain.DerivedRow, complement func(domain.Optional[float64]) string) []string {
	cells := []string{null, null, null, null, null}
	if row.Summary.Valid {
		sum := row.Summary.Value
		cells = []string{
			complement(sum.Complement.Min),
			complement(sum.Complement.Max),
			f.signal(sum.Signal.Min),
			f.signal(sum.Signal.Max),
			f.signal(domain.Some(sum.SignalSum)),
		}
	}
	peak := ""
	if row.Filter {
		peak = style.Peak
	}
	return append(cells, f.signal(row.Rolling.MeanY), f.signal(row.Rolling.StdY), peak)
}
