package domain_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/chroma/internal/core/domain"
)

func TestNewTableKey_Sensitivity(t *testing.T) {
	raw := domain.NewRawTable(sampleRecords())
	base := domain.DefaultSettings()
	key := domain.NewTableKey(raw, base)

	changes := map[string]func(*domain.Settings){
		"Sort":            func(s *domain.Settings) { s.Sort = domain.SortMassToCharge },
		"Explode":         func(s *domain.Settings) { s.Explode = true },
		"FilterNull":      func(s *domain.Settings) { s.FilterNull = true },
		"NormalizeSignal": func(s *domain.Settings) { s.NormalizeSignal = true },
		"PeakMin":         func(s *domain.Settings) { s.PeakMin[0] = true },
		"PeakMax":         func(s *domain.Settings) { s.PeakMax[0] = true },
		"WindowSize":      func(s *domain.Settings) { s.WindowSize = 5 },
		"MinPeriods":      func(s *domain.Settings) { s.MinPeriods = 2 },
	}
	for name, change := range changes {
		t.Run(name, func(t *testing.T) {
			s := base
			change(&s)
			other := domain.NewTableKey(raw, s)
			assert.NotEqual(t, key, other)
			assert.NotEqual(t, key.String(), other.String())
		})
	}

	t.Run("Input", func(t *testing.T) {
		records := sampleRecords()
		records[0].RetentionTime++
		assert.NotEqual(t, key, domain.NewTableKey(domain.NewRawTable(records), base))
	})
}

func TestNewTableKey_IgnoresPresentationFields(t *testing.T) {
	raw := domain.NewRawTable(sampleRecords())
	base := domain.DefaultSettings()

	s := base
	s.PeakMin[1] = true
	s.PeakMax[1] = true
	s.Plot.Legend = !s.Plot.Legend
	s.Plot.Stack = true
	s.Plot.BarWidth = 1
	s.Display.RetentionTimeUnits = domain.Minute
	s.Display.SignalPrecision = 5

	assert.Equal(t, domain.NewTableKey(raw, base), domain.NewTableKey(raw, s))
	assert.Equal(t, domain.NewTableKey(raw, base).String(), domain.NewTableKey(raw, s).String())
}

func TestNewPlotKey_Sensitivity(t *testing.T) {
	derived := domain.NewDerivedTable([]domain.DerivedRow{{Key: domain.Some(1.0), Filter: true}})
	base := domain.DefaultSettings()
	key := domain.NewPlotKey(derived, base)

	changes := map[string]func(*domain.Settings){
		"Sort":     func(s *domain.Settings) { s.Sort = domain.SortMassToCharge },
		"BarSort":  func(s *domain.Settings) { s.Plot.BarSort = domain.BarSortSignal },
		"BarWidth": func(s *domain.Settings) { s.Plot.BarWidth = 0.5 },
		"Stack":    func(s *domain.Settings) { s.Plot.Stack = true },
	}
	for name, change := range changes {
		t.Run(name, func(t *testing.T) {
			s := base
			change(&s)
			assert.NotEqual(t, key, domain.NewPlotKey(derived, s))
		})
	}

	t.Run("DerivedTable", func(t *testing.T) {
		other := domain.NewDerivedTable([]domain.DerivedRow{{Key: domain.Some(1.0)}})
		assert.NotEqual(t, key, domain.NewPlotKey(other, base))
	})
}

func TestNewPlotKey_IgnoresPresentationFields(t *testing.T) {
	derived := domain.NewDerivedTable(nil)
	base := domain.DefaultSettings()

	s := base
	s.Plot.Legend = !s.Plot.Legend
	s.PeakMin[1] = true
	s.Display.MassToChargePrecision = 4

	assert.Equal(t, domain.NewPlotKey(derived, base), domain.NewPlotKey(derived, s))
}

func TestNewPlotKey_NegativeZeroWidth(t *testing.T) {
	derived := domain.NewDerivedTable(nil)
	pos, neg := domain.DefaultSettings(), domain.DefaultSettings()
	pos.Plot.BarWidth = 0
	neg.Plot.BarWidth = math.Copysign(0, -1)

	assert.Equal(t, domain.NewPlotKey(derived, pos), domain.NewPlotKey(derived, neg))
}

func TestKeyString_Stable(t *testing.T) {
	raw := domain.NewRawTable(sampleRecords())
	s := domain.DefaultSettings()

	assert.Equal(t, domain.NewTableKey(raw, s).String(), domain.NewTableKey(raw, s).String())
	assert.Regexp(t, `^table-[0-9a-f]+$`, domain.NewTableKey(raw, s).String())
	assert.Regexp(t, `^plot-[0-9a-f]+$`, domain.NewPlotKey(domain.NewDerivedTable(nil), s).String())
}
