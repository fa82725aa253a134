package ports

import (
	"io"

	"go.trai.ch/chroma/internal/core/domain"
)

// Renderer writes computed views for humans or machines.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// RenderTable writes the derived table.
	RenderTable(w io.Writer, table domain.DerivedTable, settings domain.Settings) error
	// RenderPlot writes the plot value.
	RenderPlot(w io.Writer, plot domain.PlotValue, settings domain.Settings) error
}
