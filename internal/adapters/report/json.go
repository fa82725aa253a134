package report

import (
	"encoding/json"
	"fmt"
	"io"

	"go.trai.ch/chroma/internal/core/domain"
	"go.trai.ch/chroma/internal/core/ports"
	"go.trai.ch/zerr"
)

// JSONRenderer writes views as indented JSON documents.
type JSONRenderer struct{}

var _ ports.Renderer = (*JSONRenderer)(nil)

// NewJSONRenderer creates a new JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

type tableDocument struct {
	Hash string              `json:"hash"`
	Sort domain.Sort         `json:"sort"`
	Rows []domain.DerivedRow `json:"rows"`
}

// RenderTable writes the table with its content hash.
func (JSONRenderer) RenderTable(w io.Writer, table domain.DerivedTable, s domain.Settings) error {
	rows := table.Rows()
	if rows == nil {
		rows = []domain.DerivedRow{}
	}
	return encode(w, tableDocument{
		Hash: fmt.Sprintf("%016x", table.Hash()),
		Sort: s.Sort,
		Rows: rows,
	})
}

// RenderPlot writes the plot value.
func (JSONRenderer) RenderPlot(w io.Writer, plot domain.PlotValue, _ domain.Settings) error {
	return encode(w, plot)
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return zerr.Wrap(domain.ErrRenderFailed, err.Error())
	}
	return nil
}
