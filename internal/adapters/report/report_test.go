package report_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/chroma/internal/adapters/report"
	"go.trai.ch/chroma/internal/core/domain"
	"go.trai.ch/chroma/internal/engine/pipeline"
)

func sampleRaw() domain.RawTable {
	return domain.NewRawTable([]domain.Record{
		{RetentionTime: 60_000, MassSpectrum: []domain.Ion{
			{MassToCharge: domain.Some[float32](101), Signal: domain.Some[uint16](30)},
			{MassToCharge: domain.Some[float32](100), Signal: domain.Some[uint16](10)},
		}},
		{RetentionTime: 120_000, MassSpectrum: []domain.Ion{
			{MassToCharge: domain.Some[float32](100), Signal: domain.Some[uint16](50)},
		}},
	})
}

func computeTable(t *testing.T, s domain.Settings) domain.DerivedTable {
	t.Helper()
	derived, err := pipeline.ComputeTable(sampleRaw(), s)
	require.NoError(t, err)
	return derived
}

func computePlot(t *testing.T, s domain.Settings) domain.PlotValue {
	t.Helper()
	plot, err := pipeline.ComputePlot(computeTable(t, s), s)
	require.NoError(t, err)
	return plot
}

func plainText() *report.TextRenderer {
	return report.NewTextRenderer(func(io.Writer) termenv.Profile { return termenv.Ascii })
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want report.Format
	}{
		{"", report.FormatAuto},
		{"auto", report.FormatAuto},
		{"TEXT", report.FormatText},
		{"json", report.FormatJSON},
	}
	for _, tt := range tests {
		got, err := report.ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := report.ParseFormat("yaml")
	assert.ErrorIs(t, err, domain.ErrInvalidSettings)
}

func TestNew(t *testing.T) {
	assert.IsType(t, &report.JSONRenderer{}, report.New(report.FormatJSON))
	assert.IsType(t, &report.TextRenderer{}, report.New(report.FormatAuto))
	assert.IsType(t, &report.TextRenderer{}, report.New(report.FormatText))
}

func TestDetectProfile_NonTerminal(t *testing.T) {
	assert.Equal(t, termenv.Ascii, report.DetectProfile(&bytes.Buffer{}))
}

func TestTextRenderer_SpectrumTable(t *testing.T) {
	s := domain.DefaultSettings()
	derived := computeTable(t, s)

	var buf bytes.Buffer
	require.NoError(t, plainText().RenderTable(&buf, derived, s))

	out := buf.String()
	assert.Contains(t, out, "Mass spectra by retention time")
	assert.Contains(t, out, "RT (s)")
	assert.Contains(t, out, "60.00")
	assert.Contains(t, out, "120.00")
	assert.Contains(t, out, "100.0")
	assert.Contains(t, out, "101.0")
	assert.Contains(t, out, "40.00")
	assert.Contains(t, out, fmt.Sprintf("2 groups, 2 selected, table %016x", derived.Hash()))
	assert.NotContains(t, out, "\x1b[")
}

func TestTextRenderer_DisplayUnits(t *testing.T) {
	s := domain.DefaultSettings()
	s.Display.RetentionTimeUnits = domain.Minute
	s.Display.RetentionTimePrecision = 1

	var buf bytes.Buffer
	require.NoError(t, plainText().RenderTable(&buf, computeTable(t, s), s))

	assert.Contains(t, buf.String(), "RT (min)")
	assert.Contains(t, buf.String(), "2.0")
	assert.NotContains(t, buf.String(), "120.00")
}

func TestTextRenderer_ChromatogramTable(t *testing.T) {
	s := domain.DefaultSettings()
	s.Sort = domain.SortMassToCharge

	var buf bytes.Buffer
	require.NoError(t, plainText().RenderTable(&buf, computeTable(t, s), s))

	out := buf.String()
	assert.Contains(t, out, "Extracted ion chromatograms by m/z")
	assert.Contains(t, out, "RT min (s)")
	// m/z 100 is seen at 60 s and 120 s with a summed signal of 60.
	assert.Contains(t, out, "60.00")
	assert.Contains(t, out, "120.00")
}

func TestTextRenderer_ExplodedTable(t *testing.T) {
	s := domain.DefaultSettings()
	s.Explode = true

	var buf bytes.Buffer
	require.NoError(t, plainText().RenderTable(&buf, computeTable(t, s), s))

	out := buf.String()
	assert.Contains(t, out, "Ions")
	assert.Contains(t, out, "30.00")
	assert.Contains(t, out, "50.00")
	assert.NotContains(t, out, "Signal sum")
}

func TestTextRenderer_Plot(t *testing.T) {
	s := domain.DefaultSettings()
	s.Plot.Stack = true

	var buf bytes.Buffer
	require.NoError(t, plainText().RenderPlot(&buf, computePlot(t, s), s))

	out := buf.String()
	assert.Contains(t, out, "Mass spectra")
	assert.Contains(t, out, "Base peak m/z")
	assert.Contains(t, out, "Bars")
	assert.Contains(t, out, "mean 45.00, median 45.00")
	assert.Contains(t, out, "Rolling mean")
}

func TestTextRenderer_PlotWithoutLegend(t *testing.T) {
	s := domain.DefaultSettings()
	s.Plot.Legend = false

	var buf bytes.Buffer
	require.NoError(t, plainText().RenderPlot(&buf, computePlot(t, s), s))

	assert.NotContains(t, buf.String(), "Max height")
	assert.NotContains(t, buf.String(), "median")
}

func TestJSONRenderer_Table(t *testing.T) {
	s := domain.DefaultSettings()
	derived := computeTable(t, s)

	var buf bytes.Buffer
	require.NoError(t, report.NewJSONRenderer().RenderTable(&buf, derived, s))

	var doc struct {
		Hash string `json:"hash"`
		Sort string `json:"sort"`
		Rows []struct {
			Key     *float64 `json:"key"`
			Summary struct {
				Count     int     `json:"count"`
				SignalSum float64 `json:"signal_sum"`
			} `json:"summary"`
			Filter bool `json:"filter"`
		} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, fmt.Sprintf("%016x", derived.Hash()), doc.Hash)
	assert.Equal(t, "retention_time", doc.Sort)
	require.Len(t, doc.Rows, 2)
	require.NotNil(t, doc.Rows[0].Key)
	assert.InDelta(t, 1.0, *doc.Rows[0].Key, 1e-12)
	assert.Equal(t, 2, doc.Rows[0].Summary.Count)
	assert.InDelta(t, 40.0, doc.Rows[0].Summary.SignalSum, 1e-12)
}

func TestJSONRenderer_EmptyTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.NewJSONRenderer().RenderTable(&buf, domain.NewDerivedTable(nil), domain.DefaultSettings()))

	assert.Contains(t, buf.String(), `"rows": []`)
}

func TestJSONRenderer_Plot(t *testing.T) {
	s := domain.DefaultSettings()
	s.Plot.Stack = true

	var buf bytes.Buffer
	require.NoError(t, report.NewJSONRenderer().RenderPlot(&buf, computePlot(t, s), s))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.InDelta(t, 45.0, doc["mean"], 1e-12)
	assert.Len(t, doc["bars"], 2)
	assert.Len(t, doc["mass_spectra"], 2)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRenderers_WriteFailure(t *testing.T) {
	s := domain.DefaultSettings()
	derived := computeTable(t, s)

	err := plainText().RenderTable(failingWriter{}, derived, s)
	require.ErrorIs(t, err, domain.ErrRenderFailed)

	err = report.NewJSONRenderer().RenderTable(failingWriter{}, derived, s)
	require.ErrorIs(t, err, domain.ErrRenderFailed)
}
