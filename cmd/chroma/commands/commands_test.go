package commands_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/chroma/cmd/chroma/commands"
	"go.trai.ch/chroma/internal/adapters/memo"
	"go.trai.ch/chroma/internal/adapters/telemetry"
	"go.trai.ch/chroma/internal/app"
	"go.trai.ch/chroma/internal/core/domain"
	"go.trai.ch/chroma/internal/core/ports/mocks"
	"go.trai.ch/chroma/internal/engine/computer"
	"go.uber.org/mock/gomock"
)

type harness struct {
	cli      *commands.CLI
	settings *mocks.MockSettingsLoader
	records  *mocks.MockRecordSource
	renderer *mocks.MockRenderer
}

func newHarness(t *testing.T) harness {
	t.Helper()
	ctrl := gomock.NewController(t)

	reg := prometheus.NewRegistry()
	metrics := memo.NewMetrics(reg)
	tables, err := memo.New[domain.TableKey, domain.DerivedTable]("table", 8, metrics)
	require.NoError(t, err)
	plots, err := memo.New[domain.PlotKey, domain.PlotValue]("plot", 8, metrics)
	require.NoError(t, err)

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()

	h := harness{
		settings: mocks.NewMockSettingsLoader(ctrl),
		records:  mocks.NewMockRecordSource(ctrl),
		renderer: mocks.NewMockRenderer(ctrl),
	}
	comp := computer.New(tables, plots, telemetry.NewNoOpTracer(), logger)
	a := app.New(h.settings, h.records, comp, mocks.NewMockWatcher(ctrl), logger, reg).
		WithRenderer(h.renderer).
		WithOutput(&bytes.Buffer{})
	h.cli = commands.New(a)
	return h
}

func rawTable() domain.RawTable {
	return domain.NewRawTable([]domain.Record{{
		RetentionTime: 60_000,
		MassSpectrum: []domain.Ion{
			{MassToCharge: domain.Some[float32](100), Signal: domain.Some[uint16](10)},
		},
	}})
}

func TestTable_Overrides(t *testing.T) {
	h := newHarness(t)

	fromFile := domain.DefaultSettings()
	fromFile.WindowSize = 7
	h.settings.EXPECT().Load("custom.yaml").Return(fromFile, nil)
	h.records.EXPECT().Load(gomock.Any(), "records.db").Return(rawTable(), nil)
	h.renderer.EXPECT().
		RenderTable(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, _ domain.DerivedTable, s domain.Settings) error {
			assert.Equal(t, domain.SortMassToCharge, s.Sort)
			assert.True(t, s.Explode)
			assert.True(t, s.FilterNull)
			assert.True(t, s.PeakMin[0])
			assert.False(t, s.PeakMax[0])
			assert.Equal(t, 7, s.WindowSize)
			assert.Equal(t, 2, s.MinPeriods)
			assert.Equal(t, domain.Minute, s.Display.RetentionTimeUnits)
			return nil
		})

	h.cli.SetArgs([]string{
		"table", "records.db", "-c", "custom.yaml",
		"--sort", "mz", "--explode", "--filter-null", "--peak-min",
		"--min-periods", "2", "--units", "min",
	})
	require.NoError(t, h.cli.Execute(context.Background()))
}

func TestPlot_Overrides(t *testing.T) {
	h := newHarness(t)

	h.settings.EXPECT().Load("").Return(domain.DefaultSettings(), nil)
	h.records.EXPECT().Load(gomock.Any(), "records.json").Return(rawTable(), nil)
	h.renderer.EXPECT().
		RenderPlot(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, _ domain.PlotValue, s domain.Settings) error {
			assert.Equal(t, domain.BarSortSignal, s.Plot.BarSort)
			assert.InDelta(t, 0.2, s.Plot.BarWidth, 1e-12)
			assert.True(t, s.Plot.Stack)
			assert.False(t, s.Plot.Legend)
			return nil
		})

	h.cli.SetArgs([]string{
		"plot", "records.json",
		"--bar-sort", "signal", "--bar-width", "0.2", "--stack", "--legend=false",
	})
	require.NoError(t, h.cli.Execute(context.Background()))
}

func TestTable_InvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "sort", args: []string{"table", "r.json", "--sort", "intensity"}},
		{name: "bar sort", args: []string{"plot", "r.json", "--bar-sort", "height"}},
		{name: "units", args: []string{"table", "r.json", "--units", "hours"}},
		{name: "format", args: []string{"table", "r.json", "--format", "xml"}},
		{name: "view", args: []string{"watch", "r.json", "--view", "chart"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.cli.SetArgs(tt.args)

			err := h.cli.Execute(context.Background())
			require.ErrorIs(t, err, domain.ErrInvalidSettings)
		})
	}
}

func TestTable_RequiresRecords(t *testing.T) {
	h := newHarness(t)
	h.cli.SetArgs([]string{"table"})

	require.Error(t, h.cli.Execute(context.Background()))
}

func TestLogHook(t *testing.T) {
	h := newHarness(t)

	var json, verbose bool
	h.cli.SetLogHook(func(j, v bool) { json, verbose = j, v })
	h.cli.SetArgs([]string{"version", "--json", "-v"})

	require.NoError(t, h.cli.Execute(context.Background()))
	assert.True(t, json)
	assert.True(t, verbose)
}

func TestRoot_Help(t *testing.T) {
	h := newHarness(t)
	h.cli.SetArgs([]string{"--help"})

	assert.NoError(t, h.cli.Execute(context.Background()))
}
